package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an entity with the same key already exists
	ErrDuplicate = errors.New("duplicate key")
)
