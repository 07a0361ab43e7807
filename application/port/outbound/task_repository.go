package outbound

import (
	"context"
	"errors"

	"github.com/pookie/pookie/domain/entity"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	FindByID(ctx context.Context, id string) (*entity.Task, error)
	FindByUser(ctx context.Context, userID string, filter entity.TaskFilter) ([]*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id string) error
}
