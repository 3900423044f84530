package mcp

import (
	"github.com/rpggio/cookbook/internal/domain/entry"
)

type ParseNameParams struct {
	Input string `json:"input" jsonschema:"free-text name to normalize"`
}

type ParseNameResult struct {
	Msg string `json:"msg"`
}

type AddEntryParams struct {
	Type          string               `json:"type" jsonschema:"either recipe or ingredient"`
	Name          string               `json:"name" jsonschema:"unique entry name, matched exactly"`
	CookTime      int64                `json:"cookTime,omitempty" jsonschema:"ingredient cook time per unit, never negative"`
	RequiredItems []entry.RequiredItem `json:"requiredItems,omitempty" jsonschema:"recipe items with positive quantities and distinct names"`
}

type AddEntryResult struct {
	Name string `json:"name"`
}

type GetEntryParams struct {
	Name string `json:"name" jsonschema:"entry name"`
}

type GetSummaryParams struct {
	Name string `json:"name" jsonschema:"recipe name to expand"`
}

type ListEntriesParams struct{}

type ListEntriesResult struct {
	Entries []entry.View `json:"entries"`
}
