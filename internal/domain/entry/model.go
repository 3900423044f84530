package entry

import (
	"encoding/json"
	"slices"
)

// Kind discriminates the entry variants.
type Kind string

const (
	KindRecipe     Kind = "recipe"
	KindIngredient Kind = "ingredient"
)

// ParseKind reports whether s names a known entry kind.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindRecipe, KindIngredient:
		return k, true
	default:
		return "", false
	}
}

// RequiredItem references another entry by name with a quantity.
type RequiredItem struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// Ingredient is a leaf entry with a cook time.
type Ingredient struct {
	Name     string
	CookTime int64
}

// Recipe is an entry composed of other entries.
type Recipe struct {
	Name          string
	RequiredItems []RequiredItem
}

// Entry is either an ingredient or a recipe. The zero value is neither and
// is never stored.
type Entry struct {
	kind       Kind
	ingredient Ingredient
	recipe     Recipe
}

// NewIngredient builds an ingredient entry.
func NewIngredient(name string, cookTime int64) Entry {
	return Entry{
		kind:       KindIngredient,
		ingredient: Ingredient{Name: name, CookTime: cookTime},
	}
}

// NewRecipe builds a recipe entry. The item slice is copied.
func NewRecipe(name string, items []RequiredItem) Entry {
	return Entry{
		kind:   KindRecipe,
		recipe: Recipe{Name: name, RequiredItems: slices.Clone(items)},
	}
}

func (e Entry) Kind() Kind { return e.kind }

func (e Entry) Name() string {
	if e.kind == KindRecipe {
		return e.recipe.Name
	}
	return e.ingredient.Name
}

// Ingredient returns the ingredient variant, if e is one.
func (e Entry) Ingredient() (Ingredient, bool) {
	if e.kind != KindIngredient {
		return Ingredient{}, false
	}
	return e.ingredient, true
}

// Recipe returns a copy of the recipe variant, if e is one.
func (e Entry) Recipe() (Recipe, bool) {
	if e.kind != KindRecipe {
		return Recipe{}, false
	}
	return Recipe{
		Name:          e.recipe.Name,
		RequiredItems: slices.Clone(e.recipe.RequiredItems),
	}, true
}

// View is the flat wire shape of a stored entry.
type View struct {
	Type          Kind           `json:"type"`
	Name          string         `json:"name"`
	CookTime      *int64         `json:"cookTime,omitempty"`
	RequiredItems []RequiredItem `json:"requiredItems,omitempty"`
}

// View flattens e into its wire shape.
func (e Entry) View() View {
	v := View{Type: e.kind, Name: e.Name()}
	switch e.kind {
	case KindIngredient:
		cookTime := e.ingredient.CookTime
		v.CookTime = &cookTime
	case KindRecipe:
		v.RequiredItems = slices.Clone(e.recipe.RequiredItems)
	}
	return v
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.View())
}

// Candidate is an unvalidated entry submitted by a caller.
type Candidate struct {
	Type          string         `json:"type"`
	Name          string         `json:"name"`
	CookTime      int64          `json:"cookTime"`
	RequiredItems []RequiredItem `json:"requiredItems"`
}
