package summary

import "github.com/rpggio/cookbook/internal/domain/entry"

// Summary is the flattened view of everything a recipe needs.
type Summary struct {
	Name        string               `json:"name"`
	CookTime    int64                `json:"cookTime"`
	Ingredients []entry.RequiredItem `json:"ingredients"`
}
