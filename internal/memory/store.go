// Package memory keeps cookbook entries in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/rpggio/cookbook/internal/domain/entry"
	"github.com/rpggio/cookbook/internal/repository"
)

var _ entry.Repository = (*Store)(nil)

// Store is an insertion-ordered entry table safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries []entry.Entry
	index   map[string]int
}

// New creates an empty store.
func New() *Store {
	return &Store{index: make(map[string]int)}
}

// Create appends e unless its name is already taken.
func (s *Store) Create(_ context.Context, e entry.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[e.Name()]; exists {
		return repository.ErrDuplicate
	}
	s.index[e.Name()] = len(s.entries)
	s.entries = append(s.entries, e)
	return nil
}

// Get returns the entry with exactly the given name.
func (s *Store) Get(_ context.Context, name string) (entry.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(name)
}

// List returns a copy of all entries in insertion order.
func (s *Store) List(_ context.Context) ([]entry.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entry.Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// View holds the read lock while fn runs, so writers wait for it.
func (s *Store) View(ctx context.Context, fn func(entry.Lookup) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(view{s: s})
}

func (s *Store) get(name string) (entry.Entry, error) {
	i, ok := s.index[name]
	if !ok {
		return entry.Entry{}, repository.ErrNotFound
	}
	return s.entries[i], nil
}

// view reads without locking; the caller already holds the read lock.
type view struct {
	s *Store
}

func (v view) Get(_ context.Context, name string) (entry.Entry, error) {
	return v.s.get(name)
}
