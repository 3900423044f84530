package summary

import "errors"

var (
	// ErrRecipeNotFound indicates the queried name is missing or is not a recipe.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrDependencyNotFound indicates a transitively required entry is missing.
	ErrDependencyNotFound = errors.New("dependency not found")
	// ErrCyclicDependency indicates a recipe requires itself, directly or not.
	ErrCyclicDependency = errors.New("cyclic dependency")
	// ErrDepthExceeded indicates the dependency chain is deeper than allowed.
	ErrDepthExceeded = errors.New("dependency depth exceeded")
	// ErrQuantityOverflow indicates a quantity or cook time does not fit in int64.
	ErrQuantityOverflow = errors.New("quantity overflow")
)
