package logstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEntry struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func TestAppendAndRead(t *testing.T) {
	dir := t.TempDir()
	store := New[testEntry](dir, "entries.json", BestEffort)

	for i := 0; i < 3; i++ {
		_, err := store.Append(testEntry{ID: fmt.Sprintf("entry-%d", i), Message: "hello"})
		require.NoError(t, err)
	}

	entries, err := store.Read()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "entry-0", entries[0].ID)
	assert.Equal(t, "entry-2", entries[2].ID)

	data, err := os.ReadFile(filepath.Join(dir, "entries.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {", "file should be pretty-printed")
}

func TestColdRestartRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store := New[testEntry](dir, "entries.json", BestEffort)
	for i := 0; i < 5; i++ {
		_, err := store.Append(testEntry{ID: fmt.Sprintf("entry-%d", i)})
		require.NoError(t, err)
	}

	// A fresh store with a cold cache must see the same entries in the same order.
	restarted := New[testEntry](dir, "entries.json", BestEffort)
	entries, err := restarted.Read()
	require.NoError(t, err)
	require.Len(t, entries, 5)
	for i, e := range entries {
		assert.Equal(t, fmt.Sprintf("entry-%d", i), e.ID)
	}
}

func TestReadIsCacheFirst(t *testing.T) {
	dir := t.TempDir()
	store := New[testEntry](dir, "entries.json", BestEffort)

	_, err := store.Append(testEntry{ID: "entry-0"})
	require.NoError(t, err)

	// Once the cache is populated the file is never revisited.
	require.NoError(t, os.Remove(filepath.Join(dir, "entries.json")))

	entries, err := store.Read()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReadReturnsCopy(t *testing.T) {
	store := New[testEntry](t.TempDir(), "entries.json", BestEffort)
	_, err := store.Append(testEntry{ID: "entry-0"})
	require.NoError(t, err)

	entries, err := store.Read()
	require.NoError(t, err)
	entries[0].ID = "mutated"

	again, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "entry-0", again[0].ID)
}

func TestUnwritableDirBestEffort(t *testing.T) {
	// Use a regular file as the target directory to force mkdir failures.
	base := t.TempDir()
	blocker := filepath.Join(base, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	store := New[testEntry](filepath.Join(blocker, "logs"), "entries.json", BestEffort)

	entry, err := store.Append(testEntry{ID: "entry-0"})
	require.NoError(t, err, "best-effort append must not surface I/O failures")
	assert.Equal(t, "entry-0", entry.ID)

	// The cache remains authoritative for the rest of the process.
	entries, err := store.Read()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUnwritableDirStrict(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	store := New[testEntry](filepath.Join(blocker, "logs"), "entries.json", Strict)

	_, err := store.Append(testEntry{ID: "entry-0"})
	assert.Error(t, err)
}

func TestMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "entries.json"), []byte("{not json"), 0o644))

	t.Run("best-effort falls back to empty", func(t *testing.T) {
		store := New[testEntry](dir, "entries.json", BestEffort)
		entries, err := store.Read()
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("strict surfaces the parse error", func(t *testing.T) {
		store := New[testEntry](dir, "entries.json", Strict)
		_, err := store.Read()
		assert.Error(t, err)
	})
}

func TestMissingFileIsEmptyInBothModes(t *testing.T) {
	for _, mode := range []DurabilityMode{BestEffort, Strict} {
		store := New[testEntry](t.TempDir(), "entries.json", mode)
		entries, err := store.Read()
		require.NoError(t, err)
		assert.Empty(t, entries)
	}
}

func TestConcurrentAppendsAllSurvive(t *testing.T) {
	store := New[testEntry](t.TempDir(), "entries.json", BestEffort)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Append(testEntry{ID: fmt.Sprintf("entry-%d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	entries, err := store.Read()
	require.NoError(t, err)
	assert.Len(t, entries, n, "appends are serialized, none may be lost")
}

func TestMutate(t *testing.T) {
	store := New[testEntry](t.TempDir(), "entries.json", BestEffort)
	_, err := store.Append(testEntry{ID: "entry-0", Message: "before"})
	require.NoError(t, err)

	err = store.Mutate(func(entries []testEntry) ([]testEntry, bool) {
		for i := range entries {
			if entries[i].ID == "entry-0" {
				entries[i].Message = "after"
				return entries, true
			}
		}
		return entries, false
	})
	require.NoError(t, err)

	entries, err := store.Read()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "after", entries[0].Message)
}

func TestMutateNoChangeDoesNotRewrite(t *testing.T) {
	dir := t.TempDir()
	store := New[testEntry](dir, "entries.json", BestEffort)
	_, err := store.Append(testEntry{ID: "entry-0"})
	require.NoError(t, err)

	before, err := os.Stat(filepath.Join(dir, "entries.json"))
	require.NoError(t, err)

	err = store.Mutate(func(entries []testEntry) ([]testEntry, bool) {
		return entries, false
	})
	require.NoError(t, err)

	after, err := os.Stat(filepath.Join(dir, "entries.json"))
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}
