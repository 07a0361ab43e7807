// Package logstore implements the append-only JSON-file store backing the
// activity log and the admin notification log. Each store owns one category:
// an in-memory cache that is authoritative for the process lifetime, mirrored
// to a single JSON file as a best-effort durability snapshot.
package logstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DurabilityMode controls whether file I/O failures are surfaced or swallowed
type DurabilityMode string

const (
	// BestEffort swallows all file I/O errors. Reads degrade to an empty
	// collection, writes degrade to memory-only. Matches the contract of the
	// original deployment where the filesystem may be read-only or ephemeral.
	BestEffort DurabilityMode = "best-effort"
	// Strict surfaces write and parse failures to callers. A missing file on
	// first read is still an empty store, not an error.
	Strict DurabilityMode = "strict"
)

// Store is a generic append-only log store for one entry category. All
// mutations are serialized by the store mutex, so concurrent appends cannot
// lose entries to a read-modify-write race.
type Store[T any] struct {
	mu     sync.Mutex
	dir    string
	file   string
	mode   DurabilityMode
	cache  []T
	loaded bool
}

// New creates a store persisting to <dir>/<file>. The directory is created
// lazily on first write.
func New[T any](dir, file string, mode DurabilityMode) *Store[T] {
	if mode != Strict {
		mode = BestEffort
	}
	return &Store[T]{
		dir:  dir,
		file: file,
		mode: mode,
	}
}

// Read returns the full collection. The cache is populated from disk at most
// once per process; after that reads never revisit the file. The returned
// slice is a copy, so callers cannot corrupt the cache in place.
func (s *Store[T]) Read() ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

// Replace swaps the collection wholesale and rewrites the backing file.
func (s *Store[T]) Replace(entries []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replace(entries)
}

// Append reads the current collection, pushes entry and writes everything
// back. The stored entry is returned as-is; id and timestamp generation is
// the caller's responsibility.
func (s *Store[T]) Append(entry T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return entry, err
	}
	if err := s.replace(append(s.cache, entry)); err != nil {
		return entry, err
	}
	return entry, nil
}

// Mutate applies fn to the full collection under the store lock. fn receives
// a copy and returns the collection to keep plus whether anything changed;
// nothing is persisted when it reports false.
func (s *Store[T]) Mutate(fn func(entries []T) ([]T, bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	entries, changed := fn(s.snapshot())
	if !changed {
		return nil
	}
	return s.replace(entries)
}

// Path returns the location of the backing file.
func (s *Store[T]) Path() string {
	return filepath.Join(s.dir, s.file)
}

// load populates the cache from disk once. Callers must hold s.mu.
func (s *Store[T]) load() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		// A store that has never been written is simply empty.
		s.cache = nil
		s.loaded = true
		return nil
	}

	var entries []T
	if err := json.Unmarshal(data, &entries); err != nil {
		s.cache = nil
		if s.mode == Strict {
			return fmt.Errorf("failed to parse %s: %w", s.Path(), err)
		}
		s.loaded = true
		return nil
	}

	s.cache = entries
	s.loaded = true
	return nil
}

// replace updates the cache and rewrites the file. Callers must hold s.mu.
// The cache is updated before the file write is attempted, so a failed write
// leaves the process with a consistent in-memory view.
func (s *Store[T]) replace(entries []T) error {
	s.cache = entries
	s.loaded = true

	if err := s.persist(entries); err != nil {
		if s.mode == Strict {
			return err
		}
	}
	return nil
}

func (s *Store[T]) persist(entries []T) error {
	if err := s.ensureDir(); err != nil {
		return err
	}

	if entries == nil {
		entries = []T{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.file, err)
	}

	if err := os.WriteFile(s.Path(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path(), err)
	}
	return nil
}

func (s *Store[T]) ensureDir() error {
	if _, err := os.Stat(s.dir); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.dir, err)
	}
	return nil
}

func (s *Store[T]) snapshot() []T {
	out := make([]T, len(s.cache))
	copy(out, s.cache)
	return out
}
