package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/cookbook/internal/domain/entry"
	"github.com/rpggio/cookbook/internal/repository"
)

var _ entry.Repository = (*EntryRepository)(nil)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// EntryRepository implements entry.Repository for SQLite
type EntryRepository struct {
	db *DB
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create inserts an entry and its required items atomically
func (r *EntryRepository) Create(ctx context.Context, e entry.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var cookTime int64
	if ing, ok := e.Ingredient(); ok {
		cookTime = ing.CookTime
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO entries (name, kind, cook_time) VALUES (?, ?, ?)`,
		e.Name(), string(e.Kind()), cookTime,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create entry: %w", err)
	}

	if rec, ok := e.Recipe(); ok {
		for i, item := range rec.RequiredItems {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO required_items (entry_name, position, item_name, quantity)
				VALUES (?, ?, ?, ?)
			`, rec.Name, i, item.Name, item.Quantity)
			if err != nil {
				return fmt.Errorf("failed to create required item: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entry: %w", err)
	}
	return nil
}

// Get retrieves an entry by exact name
func (r *EntryRepository) Get(ctx context.Context, name string) (entry.Entry, error) {
	return getEntry(ctx, r.db, name)
}

// List returns all entries ordered by insertion
func (r *EntryRepository) List(ctx context.Context) ([]entry.Entry, error) {
	items, err := r.listRequiredItems(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT name, kind, cook_time FROM entries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []entry.Entry
	for rows.Next() {
		var name, kind string
		var cookTime int64
		if err := rows.Scan(&name, &kind, &cookTime); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, buildEntry(name, kind, cookTime, items[name]))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

// View runs fn inside a single transaction. The pool holds one connection, so
// no write can land until fn returns.
func (r *EntryRepository) View(ctx context.Context, fn func(entry.Lookup) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	return fn(txLookup{tx: tx})
}

func (r *EntryRepository) listRequiredItems(ctx context.Context) (map[string][]entry.RequiredItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT entry_name, item_name, quantity
		FROM required_items
		ORDER BY entry_name, position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list required items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]entry.RequiredItem)
	for rows.Next() {
		var owner string
		var item entry.RequiredItem
		if err := rows.Scan(&owner, &item.Name, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan required item: %w", err)
		}
		items[owner] = append(items[owner], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate required items: %w", err)
	}
	return items, nil
}

type txLookup struct {
	tx *sql.Tx
}

func (l txLookup) Get(ctx context.Context, name string) (entry.Entry, error) {
	return getEntry(ctx, l.tx, name)
}

func getEntry(ctx context.Context, q querier, name string) (entry.Entry, error) {
	var kind string
	var cookTime int64
	err := q.QueryRowContext(ctx,
		`SELECT kind, cook_time FROM entries WHERE name = ?`, name,
	).Scan(&kind, &cookTime)
	if errors.Is(err, sql.ErrNoRows) {
		return entry.Entry{}, repository.ErrNotFound
	}
	if err != nil {
		return entry.Entry{}, fmt.Errorf("failed to get entry: %w", err)
	}

	if entry.Kind(kind) != entry.KindRecipe {
		return buildEntry(name, kind, cookTime, nil), nil
	}

	rows, err := q.QueryContext(ctx, `
		SELECT item_name, quantity
		FROM required_items
		WHERE entry_name = ?
		ORDER BY position
	`, name)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("failed to get required items: %w", err)
	}
	defer rows.Close()

	var items []entry.RequiredItem
	for rows.Next() {
		var item entry.RequiredItem
		if err := rows.Scan(&item.Name, &item.Quantity); err != nil {
			return entry.Entry{}, fmt.Errorf("failed to scan required item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return entry.Entry{}, fmt.Errorf("failed to iterate required items: %w", err)
	}

	return buildEntry(name, kind, cookTime, items), nil
}

func buildEntry(name, kind string, cookTime int64, items []entry.RequiredItem) entry.Entry {
	if entry.Kind(kind) == entry.KindRecipe {
		return entry.NewRecipe(name, items)
	}
	return entry.NewIngredient(name, cookTime)
}
