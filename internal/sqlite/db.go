package sqlite

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New opens a named in-memory SQLite database. The database lives only as long
// as the returned handle; nothing is written to disk.
func New(name string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", url.PathEscape(name))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One long-lived connection keeps the in-memory database alive and
	// serializes every write.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the entry tables if they do not exist.
func (db *DB) RunMigrations() error {
	migration := `
-- Entries of either kind, in insertion order
CREATE TABLE IF NOT EXISTS entries (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    kind TEXT NOT NULL CHECK(kind IN ('recipe', 'ingredient')),
    cook_time INTEGER NOT NULL DEFAULT 0 CHECK(cook_time >= 0)
);

-- Items a recipe requires; item_name is a lookup key, not a foreign key
CREATE TABLE IF NOT EXISTS required_items (
    entry_name TEXT NOT NULL,
    position INTEGER NOT NULL,
    item_name TEXT NOT NULL,
    quantity INTEGER NOT NULL CHECK(quantity > 0),
    PRIMARY KEY (entry_name, item_name),
    FOREIGN KEY (entry_name) REFERENCES entries(name)
);
CREATE INDEX IF NOT EXISTS idx_required_items_position ON required_items(entry_name, position);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
