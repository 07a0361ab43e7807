package outbound

import (
	"context"

	"github.com/pookie/pookie/domain/entity"
)

// AssistantContext is everything the responder may reference in a reply.
type AssistantContext struct {
	UserName string
	Stats    entity.TaskStats
}

// Assistant generates a reply to a chat message. Implementations are treated
// as opaque text generators; the use case only relies on a non-empty reply.
type Assistant interface {
	Reply(ctx context.Context, message string, actx AssistantContext) (string, error)
}
