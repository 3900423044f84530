package summary

import (
	"context"

	"github.com/rpggio/cookbook/internal/domain/entry"
)

// Repository provides consistent read access to stored entries.
type Repository interface {
	View(ctx context.Context, fn func(entry.Lookup) error) error
}
