package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/cookbook/internal/domain/entry"
	"github.com/rpggio/cookbook/internal/repository"
)

// DefaultMaxDepth bounds how many edges a dependency chain may have.
const DefaultMaxDepth = 64

// Service computes recipe summaries.
type Service struct {
	repo     Repository
	maxDepth int
	logger   *slog.Logger
}

// NewService creates a new summary service. A non-positive maxDepth selects
// DefaultMaxDepth.
func NewService(repo Repository, maxDepth int, logger *slog.Logger) *Service {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, maxDepth: maxDepth, logger: logger}
}

// Summarize expands the named recipe into total cook time and ingredient
// quantities. Any failure anywhere in the tree fails the whole call.
func (s *Service) Summarize(ctx context.Context, recipeName string) (*Summary, error) {
	var result *Summary
	err := s.repo.View(ctx, func(lookup entry.Lookup) error {
		root, err := lookup.Get(ctx, recipeName)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrRecipeNotFound
			}
			return fmt.Errorf("getting recipe: %w", err)
		}
		recipe, ok := root.Recipe()
		if !ok {
			return ErrRecipeNotFound
		}

		w := newWalker(ctx, lookup, s.maxDepth, recipe.Name)
		w.path[recipe.Name] = true
		for _, item := range recipe.RequiredItems {
			if err := w.expand(item.Name, item.Quantity, 1); err != nil {
				return err
			}
		}
		result = w.acc
		return nil
	})
	if err != nil {
		s.logger.Debug("summary failed", "recipe", recipeName, "error", err)
		return nil, err
	}

	s.logger.Debug("summary computed", "recipe", recipeName,
		"cook_time", result.CookTime, "ingredients", len(result.Ingredients))
	return result, nil
}

// walker accumulates one summary. It is discarded if the walk fails.
type walker struct {
	ctx      context.Context
	lookup   entry.Lookup
	maxDepth int
	path     map[string]bool
	acc      *Summary
	index    map[string]int
}

func newWalker(ctx context.Context, lookup entry.Lookup, maxDepth int, root string) *walker {
	return &walker{
		ctx:      ctx,
		lookup:   lookup,
		maxDepth: maxDepth,
		path:     make(map[string]bool),
		acc:      &Summary{Name: root, Ingredients: []entry.RequiredItem{}},
		index:    make(map[string]int),
	}
}

func (w *walker) expand(name string, multiplier int64, depth int) error {
	if depth > w.maxDepth {
		return fmt.Errorf("%w: %s", ErrDepthExceeded, name)
	}
	if err := w.ctx.Err(); err != nil {
		return err
	}

	e, err := w.lookup.Get(w.ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrDependencyNotFound, name)
		}
		return fmt.Errorf("getting dependency %s: %w", name, err)
	}

	if ing, ok := e.Ingredient(); ok {
		return w.addIngredient(ing, multiplier)
	}

	recipe, _ := e.Recipe()
	if w.path[recipe.Name] {
		return fmt.Errorf("%w: %s", ErrCyclicDependency, recipe.Name)
	}
	w.path[recipe.Name] = true
	defer delete(w.path, recipe.Name)

	for _, item := range recipe.RequiredItems {
		next, ok := mul(item.Quantity, multiplier)
		if !ok {
			return fmt.Errorf("%w: %s", ErrQuantityOverflow, item.Name)
		}
		if err := w.expand(item.Name, next, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) addIngredient(ing entry.Ingredient, multiplier int64) error {
	spent, ok := mul(ing.CookTime, multiplier)
	if !ok {
		return fmt.Errorf("%w: %s", ErrQuantityOverflow, ing.Name)
	}
	if w.acc.CookTime, ok = add(w.acc.CookTime, spent); !ok {
		return fmt.Errorf("%w: %s", ErrQuantityOverflow, ing.Name)
	}

	if i, seen := w.index[ing.Name]; seen {
		total, ok := add(w.acc.Ingredients[i].Quantity, multiplier)
		if !ok {
			return fmt.Errorf("%w: %s", ErrQuantityOverflow, ing.Name)
		}
		w.acc.Ingredients[i].Quantity = total
		return nil
	}
	w.index[ing.Name] = len(w.acc.Ingredients)
	w.acc.Ingredients = append(w.acc.Ingredients, entry.RequiredItem{Name: ing.Name, Quantity: multiplier})
	return nil
}

// mul and add operate on non-negative operands.
func mul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || c < 0 {
		return 0, false
	}
	return c, true
}

func add(a, b int64) (int64, bool) {
	c := a + b
	if c < a {
		return 0, false
	}
	return c, true
}
