package entry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/cookbook/internal/repository"
)

// Service validates and stores cookbook entries.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new entry service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Insert validates a candidate and stores it. Rules are checked in order and
// the first failure is returned.
func (s *Service) Insert(ctx context.Context, c Candidate) error {
	if err := ValidateCandidate(c); err != nil {
		return err
	}

	_, err := s.repo.Get(ctx, c.Name)
	switch {
	case err == nil:
		return ErrDuplicateName
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("checking entry name: %w", err)
	}

	var e Entry
	if Kind(c.Type) == KindRecipe {
		if err := ValidateRequiredItems(c.RequiredItems); err != nil {
			return err
		}
		e = NewRecipe(c.Name, c.RequiredItems)
	} else {
		e = NewIngredient(c.Name, c.CookTime)
	}

	if err := s.repo.Create(ctx, e); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrDuplicateName
		}
		return fmt.Errorf("creating entry: %w", err)
	}

	s.logger.Debug("entry stored", "name", e.Name(), "type", e.Kind())
	return nil
}

// Find returns the entry with exactly the given name.
func (s *Service) Find(ctx context.Context, name string) (Entry, error) {
	e, err := s.repo.Get(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Entry{}, ErrEntryNotFound
		}
		return Entry{}, fmt.Errorf("getting entry: %w", err)
	}
	return e, nil
}

// List returns every stored entry in insertion order.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return entries, nil
}
