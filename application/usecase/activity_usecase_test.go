package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pookie/pookie/domain/entity"
	"github.com/pookie/pookie/infrastructure/persistence/logstore"
)

func newActivityUseCase(t *testing.T) *ActivityUseCase {
	t.Helper()
	store := logstore.New[entity.ActivityEntry](t.TempDir(), "activity-log.json", logstore.Strict)
	return NewActivityUseCase(store, &testLogger{})
}

func TestLogActivityGeneratesUniqueIDs(t *testing.T) {
	uc := newActivityUseCase(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		entry, err := uc.LogActivity(ctx, "user@example.com", entity.ActionLogin, entity.ProviderCredentials, ActivityOptions{})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(entry.ID, "activity-"), "id %q should carry the activity prefix", entry.ID)
		assert.False(t, seen[entry.ID], "id %q generated twice", entry.ID)
		seen[entry.ID] = true
	}
}

func TestLogActivityRecordsRequestMetadata(t *testing.T) {
	uc := newActivityUseCase(t)

	entry, err := uc.LogActivity(context.Background(), "fati@gmail.com", entity.ActionSignup, entity.ProviderGoogle, ActivityOptions{
		UserID:    "user-1",
		UserAgent: "Mozilla/5.0",
		IPAddress: "203.0.113.7",
	})
	require.NoError(t, err)

	assert.Equal(t, "fati@gmail.com", entry.Email)
	assert.Equal(t, entity.ActionSignup, entry.Action)
	assert.Equal(t, entity.ProviderGoogle, entry.Provider)
	assert.Equal(t, "user-1", entry.UserID)
	assert.Equal(t, "Mozilla/5.0", entry.UserAgent)
	assert.Equal(t, "203.0.113.7", entry.IPAddress)

	_, err = time.Parse(time.RFC3339, entry.Timestamp)
	assert.NoError(t, err, "timestamp should be RFC3339")
}

func TestGetActivityLogFiltersByAction(t *testing.T) {
	uc := newActivityUseCase(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.LogActivity(ctx, "a@example.com", entity.ActionLogin, entity.ProviderCredentials, ActivityOptions{})
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := uc.LogActivity(ctx, "b@example.com", entity.ActionSignup, entity.ProviderCredentials, ActivityOptions{})
		require.NoError(t, err)
	}

	logins, err := uc.GetActivityLog(ctx, ActivityQuery{Action: entity.ActionLogin})
	require.NoError(t, err)
	assert.Len(t, logins, 3)
	for _, e := range logins {
		assert.Equal(t, entity.ActionLogin, e.Action)
	}

	all, err := uc.GetActivityLog(ctx, ActivityQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestGetActivityLogSortsNewestFirstAndLimits(t *testing.T) {
	store := logstore.New[entity.ActivityEntry](t.TempDir(), "activity-log.json", logstore.Strict)
	uc := NewActivityUseCase(store, &testLogger{})
	ctx := context.Background()

	// Seed out of order so the read has to sort
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, offset := range []int{2, 0, 4, 1, 3} {
		err := store.Replace(append(mustRead(t, store), entity.ActivityEntry{
			ID:        generateLogID("activity"),
			Timestamp: base.Add(time.Duration(offset) * time.Hour).Format(time.RFC3339),
			Email:     "user@example.com",
			Action:    entity.ActionLogin,
			Provider:  entity.ProviderCredentials,
		}))
		require.NoError(t, err)
	}

	entries, err := uc.GetActivityLog(ctx, ActivityQuery{Limit: 3})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for i := 1; i < len(entries); i++ {
		prev, _ := time.Parse(time.RFC3339, entries[i-1].Timestamp)
		cur, _ := time.Parse(time.RFC3339, entries[i].Timestamp)
		assert.False(t, cur.After(prev), "entries should be sorted newest first")
	}
	newest, _ := time.Parse(time.RFC3339, entries[0].Timestamp)
	assert.Equal(t, base.Add(4*time.Hour), newest)
}

func TestGetActivityLogUnparsableTimestampsSortLast(t *testing.T) {
	store := logstore.New[entity.ActivityEntry](t.TempDir(), "activity-log.json", logstore.Strict)
	uc := NewActivityUseCase(store, &testLogger{})

	err := store.Replace([]entity.ActivityEntry{
		{ID: "a", Timestamp: "not-a-timestamp", Email: "a@example.com", Action: entity.ActionLogin, Provider: entity.ProviderCredentials},
		{ID: "b", Timestamp: "2024-05-01T10:00:00Z", Email: "b@example.com", Action: entity.ActionLogin, Provider: entity.ProviderCredentials},
		{ID: "c", Timestamp: "also-garbage", Email: "c@example.com", Action: entity.ActionLogin, Provider: entity.ProviderCredentials},
	})
	require.NoError(t, err)

	entries, err := uc.GetActivityLog(context.Background(), ActivityQuery{})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "b", entries[0].ID)
	// Unparsable entries keep their relative insertion order
	assert.Equal(t, "a", entries[1].ID)
	assert.Equal(t, "c", entries[2].ID)
}

func mustRead[T any](t *testing.T, store *logstore.Store[T]) []T {
	t.Helper()
	entries, err := store.Read()
	if err != nil {
		t.Fatalf("failed to read store: %v", err)
	}
	return entries
}
