package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(names ...string) []IngredientLine {
	out := make([]IngredientLine, len(names))
	for i, n := range names {
		out[i] = IngredientLine{ID: uint(i + 1), Name: n}
	}
	return out
}

func TestIngredientMatches(t *testing.T) {
	available := NewAvailableSet([]string{"Eggs", "chicken breast", " Soy Sauce "})

	assert.True(t, IngredientMatches("Egg", available))
	assert.True(t, IngredientMatches("Chicken", available))
	assert.True(t, IngredientMatches("soy sauce", available))
	assert.True(t, IngredientMatches("Dark Soy Sauce", available))
	assert.False(t, IngredientMatches("Garlic", available))
	assert.False(t, IngredientMatches("", available))
}

func TestIngredientMatches_BlankAvailableIgnored(t *testing.T) {
	available := NewAvailableSet([]string{"", "   "})
	assert.True(t, available.Empty())
	assert.False(t, IngredientMatches("Garlic", available))
}

func TestComputeMatch(t *testing.T) {
	ingredients := []IngredientLine{
		{ID: 1, Name: "Chicken"},
		{ID: 2, Name: "Garlic"},
		{ID: 3, Name: "Soy Sauce"},
		{ID: 4, Name: "Bay Leaves", IsOptional: true},
	}

	m := ComputeMatch(ingredients, NewAvailableSet([]string{"chicken thigh", "garlic", "bay leaves"}))

	assert.Equal(t, 4, m.TotalCount)
	assert.Equal(t, 3, m.MatchingCount)
	assert.Equal(t, 75.0, m.MatchPercentage)
	require.Len(t, m.MissingIngredients, 1)
	assert.Equal(t, "Soy Sauce", m.MissingIngredients[0].Name)
	require.Len(t, m.MatchingIngredients, 3)
	assert.True(t, m.MatchingIngredients[2].IsOptional)
}

func TestComputeMatch_Rounding(t *testing.T) {
	m := ComputeMatch(lines("Rice", "Garlic", "Egg"), NewAvailableSet([]string{"rice"}))
	assert.Equal(t, 33.3, m.MatchPercentage)

	m = ComputeMatch(lines("Rice", "Garlic", "Egg"), NewAvailableSet([]string{"rice", "garlic"}))
	assert.Equal(t, 66.7, m.MatchPercentage)
}

func TestComputeMatch_EmptyInputs(t *testing.T) {
	m := ComputeMatch(nil, NewAvailableSet([]string{"rice"}))
	assert.Equal(t, 0.0, m.MatchPercentage)
	assert.Equal(t, 0, m.TotalCount)

	m = ComputeMatch(lines("Rice", "Egg"), NewAvailableSet(nil))
	assert.Equal(t, 0.0, m.MatchPercentage)
	assert.Equal(t, 0, m.MatchingCount)
	assert.Len(t, m.MissingIngredients, 2)
	assert.NotNil(t, m.MatchingIngredients)
}
