package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pookie/pookie/domain/entity"
	"github.com/pookie/pookie/infrastructure/persistence/logstore"
	"github.com/pookie/pookie/infrastructure/service/logger"
)

// ActivityOptions carries optional request metadata for an activity entry
type ActivityOptions struct {
	UserID    string
	UserAgent string
	IPAddress string
}

// ActivityQuery selects entries for an admin read
type ActivityQuery struct {
	Action entity.ActionType // empty = all actions
	Limit  int               // <= 0 = no limit
}

// ActivityUseCase records login/signup events into the activity log store
// and serves filtered, newest-first reads of it.
type ActivityUseCase struct {
	store  *logstore.Store[entity.ActivityEntry]
	logger logger.Logger
}

func NewActivityUseCase(store *logstore.Store[entity.ActivityEntry], log logger.Logger) *ActivityUseCase {
	return &ActivityUseCase{
		store:  store,
		logger: log,
	}
}

// LogActivity appends a login or signup entry. Email, action and provider are
// recorded as given; enum membership is the caller's contract.
func (uc *ActivityUseCase) LogActivity(ctx context.Context, email string, action entity.ActionType, provider entity.AuthProvider, opts ActivityOptions) (entity.ActivityEntry, error) {
	entry := entity.ActivityEntry{
		ID:        generateLogID("activity"),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Email:     email,
		Action:    action,
		Provider:  provider,
		UserID:    opts.UserID,
		UserAgent: opts.UserAgent,
		IPAddress: opts.IPAddress,
	}

	stored, err := uc.store.Append(entry)
	if err != nil {
		return entry, fmt.Errorf("failed to append activity entry: %w", err)
	}

	uc.logger.Info(ctx, "Activity logged", map[string]interface{}{
		"email":    email,
		"action":   action,
		"provider": provider,
	})
	return stored, nil
}

// GetActivityLog returns entries filtered by action, sorted by timestamp
// descending and truncated to the query limit.
func (uc *ActivityUseCase) GetActivityLog(ctx context.Context, q ActivityQuery) ([]entity.ActivityEntry, error) {
	entries, err := uc.store.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read activity log: %w", err)
	}

	if q.Action != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if e.Action == q.Action {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	sortByTimestampDesc(entries, func(e entity.ActivityEntry) string { return e.Timestamp })

	if q.Limit > 0 && q.Limit < len(entries) {
		entries = entries[:q.Limit]
	}
	return entries, nil
}
