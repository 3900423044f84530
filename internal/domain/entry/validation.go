package entry

import "strings"

// ValidateCandidate checks the fields that do not depend on stored state:
// the type, the name, and an ingredient's cook time.
func ValidateCandidate(c Candidate) error {
	kind, ok := ParseKind(c.Type)
	if !ok {
		return ErrInvalidType
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidName
	}
	if kind == KindIngredient && c.CookTime < 0 {
		return ErrNegativeCookTime
	}
	return nil
}

// ValidateRequiredItems checks that every quantity is positive and no name repeats.
func ValidateRequiredItems(items []RequiredItem) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return ErrInvalidRequiredItems
		}
		if _, dup := seen[item.Name]; dup {
			return ErrInvalidRequiredItems
		}
		seen[item.Name] = struct{}{}
	}
	return nil
}
