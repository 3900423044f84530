package entry_test

import (
	"encoding/json"
	"testing"

	"github.com/rpggio/cookbook/internal/domain/entry"
	"github.com/stretchr/testify/require"
)

func TestEntry_VariantAccessors(t *testing.T) {
	ing := entry.NewIngredient("Egg", 6)
	require.Equal(t, "Egg", ing.Name())
	got, ok := ing.Ingredient()
	require.True(t, ok)
	require.Equal(t, int64(6), got.CookTime)
	_, ok = ing.Recipe()
	require.False(t, ok)

	items := []entry.RequiredItem{{Name: "Egg", Quantity: 2}}
	rec := entry.NewRecipe("Omelette", items)
	require.Equal(t, "Omelette", rec.Name())
	_, ok = rec.Ingredient()
	require.False(t, ok)

	r, ok := rec.Recipe()
	require.True(t, ok)
	require.Equal(t, items, r.RequiredItems)

	// Stored recipes are immutable from the outside.
	items[0].Quantity = 100
	r.RequiredItems[0].Quantity = 50
	again, _ := rec.Recipe()
	require.Equal(t, int64(2), again.RequiredItems[0].Quantity)
}

func TestEntry_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(entry.NewIngredient("Flour", 0))
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"ingredient","name":"Flour","cookTime":0}`, string(data))

	data, err = json.Marshal(entry.NewRecipe("Pasta", []entry.RequiredItem{{Name: "Flour", Quantity: 3}}))
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"recipe","name":"Pasta","requiredItems":[{"name":"Flour","quantity":3}]}`, string(data))
}

func TestParseKind(t *testing.T) {
	k, ok := entry.ParseKind("recipe")
	require.True(t, ok)
	require.Equal(t, entry.KindRecipe, k)

	_, ok = entry.ParseKind("pan")
	require.False(t, ok)
	_, ok = entry.ParseKind("")
	require.False(t, ok)
}
