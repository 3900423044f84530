package entry

import "errors"

var (
	// ErrInvalidType indicates the candidate type is neither recipe nor ingredient.
	ErrInvalidType = errors.New("invalid type")
	// ErrInvalidName indicates the candidate has an empty name.
	ErrInvalidName = errors.New("invalid name")
	// ErrNegativeCookTime indicates an ingredient with a negative cook time.
	ErrNegativeCookTime = errors.New("negative cook time")
	// ErrDuplicateName indicates an entry with the same name already exists.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrInvalidRequiredItems indicates repeated names or non-positive quantities.
	ErrInvalidRequiredItems = errors.New("invalid required items")
	// ErrEntryNotFound indicates no entry has the requested name.
	ErrEntryNotFound = errors.New("entry not found")
)
