package entry

import "context"

// Lookup resolves entries by exact name. Missing names yield repository.ErrNotFound.
type Lookup interface {
	Get(ctx context.Context, name string) (Entry, error)
}

// Repository provides storage for entries.
type Repository interface {
	Lookup
	// Create stores e, failing with repository.ErrDuplicate if the name is taken.
	Create(ctx context.Context, e Entry) error
	// List returns all entries in insertion order.
	List(ctx context.Context) ([]Entry, error)
	// View runs fn against a snapshot that no write can change until fn returns.
	View(ctx context.Context, fn func(Lookup) error) error
}
