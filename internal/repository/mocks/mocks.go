package mocks

import (
	"context"

	"github.com/rpggio/cookbook/internal/domain/entry"
	"github.com/rpggio/cookbook/internal/repository"
	"github.com/stretchr/testify/mock"
)

// EntryRepository is a mock for entry.Repository.
type EntryRepository struct {
	mock.Mock
}

func (m *EntryRepository) Create(ctx context.Context, e entry.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EntryRepository) Get(ctx context.Context, name string) (entry.Entry, error) {
	args := m.Called(ctx, name)
	if e, ok := args.Get(0).(entry.Entry); ok {
		return e, args.Error(1)
	}
	return entry.Entry{}, args.Error(1)
}

func (m *EntryRepository) List(ctx context.Context) ([]entry.Entry, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]entry.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// View hands fn the entry.Lookup given to Return, or fails with its error.
func (m *EntryRepository) View(ctx context.Context, fn func(entry.Lookup) error) error {
	args := m.Called(ctx)
	if err := args.Error(1); err != nil {
		return err
	}
	lookup, _ := args.Get(0).(entry.Lookup)
	return fn(lookup)
}

// Lookup is a fixed name-to-entry table satisfying entry.Lookup.
type Lookup map[string]entry.Entry

// NewLookup indexes entries by name.
func NewLookup(entries ...entry.Entry) Lookup {
	l := make(Lookup, len(entries))
	for _, e := range entries {
		l[e.Name()] = e
	}
	return l
}

func (l Lookup) Get(_ context.Context, name string) (entry.Entry, error) {
	e, ok := l[name]
	if !ok {
		return entry.Entry{}, repository.ErrNotFound
	}
	return e, nil
}
