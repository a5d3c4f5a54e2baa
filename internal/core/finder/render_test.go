package finder

import (
	"encoding/json"
	"strings"
	"testing"

	"recipe-finder/internal/core/spoonacular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResult(t *testing.T, raw string) *spoonacular.SearchResult {
	t.Helper()
	var result spoonacular.SearchResult
	require.NoError(t, json.Unmarshal([]byte(raw), &result))
	return &result
}

func TestRenderResults_NoRecipes(t *testing.T) {
	result := decodeResult(t, `{"Results":[],"TotalResults":0}`)
	assert.Equal(t, MsgNoRecipes, RenderResults(result))
}

func TestRenderResults_FullRecipe(t *testing.T) {
	result := decodeResult(t, `{"Results":[{
		"id": 716429,
		"title": "Pasta with Garlic",
		"readyInMinutes": 45,
		"spoonacularSourceUrl": "https://spoonacular.com/pasta-716429",
		"nutrition": {"nutrients": [
			{"name": "Calories", "amount": 584.46, "unit": "kcal"},
			{"name": "Fat", "amount": 19.7, "unit": "g"}
		]},
		"extendedIngredients": [
			{"name": "garlic", "amount": 2, "unit": "cloves"}
		],
		"analyzedInstructions": [{"name": "", "steps": [
			{"number": 1, "step": "Boil water."},
			{"number": 2, "step": "Add pasta."}
		]}],
		"instructions": "ignored",
		"summary": "ignored"
	}],"TotalResults":1}`)

	want := strings.Join([]string{
		"Recipe ID: 716429",
		"Recipe Title: Pasta with Garlic",
		"Time Required: 45 minutes",
		"Recipe URL: https://spoonacular.com/pasta-716429",
		"Calorie & Fat Content:",
		"Calories: 584.46 kcal",
		"Fat: 19.7 g",
		"Ingredients Needed:",
		"garlic: 2 cloves",
		"Instructions:",
		"1. Boil water.",
		"2. Add pasta.",
		"",
		"",
	}, "\n")
	assert.Equal(t, want, RenderResults(result))
}

func TestRenderResults_SummaryFallback(t *testing.T) {
	result := decodeResult(t, `{"Results":[{"id":1,"title":"Soup","summary":"A <b>warm</b> soup."}],"TotalResults":1}`)

	out := RenderResults(result)
	assert.Contains(t, out, "Instructions:\nRecipe summary:\nA <b>warm</b> soup.\n")
	assert.NotContains(t, out, MsgNoInstructions)
}

func TestRenderResults_FlatInstructions(t *testing.T) {
	result := decodeResult(t, `{"Results":[{"id":1,"analyzedInstructions":[],"instructions":"Stir and serve.","summary":"x"}],"TotalResults":1}`)

	out := RenderResults(result)
	assert.Contains(t, out, "Instructions:\nStir and serve.\n")
	assert.NotContains(t, out, SummaryPrefix)
}

func TestRenderResults_MissingFields(t *testing.T) {
	result := decodeResult(t, `{"Results":[{
		"nutrition": {"nutrients": [{"name": "Calories"}]},
		"extendedIngredients": [{"amount": 1}]
	}],"TotalResults":1}`)

	out := RenderResults(result)
	assert.Contains(t, out, "Recipe ID: N/A\n")
	assert.Contains(t, out, "Recipe Title: N/A\n")
	assert.Contains(t, out, "Time Required: N/A minutes\n")
	assert.Contains(t, out, "Recipe URL: N/A\n")
	assert.Contains(t, out, "Calories: N/A N/A\n")
	assert.Contains(t, out, "N/A: 1 N/A\n")
	assert.Contains(t, out, "Instructions:\n"+MsgNoInstructions+"\n")
}

func TestRenderResults_SectionOrder(t *testing.T) {
	result := decodeResult(t, `{"Results":[{"id":1},{"id":2}],"TotalResults":2}`)

	out := RenderResults(result)
	first := strings.Index(out, "Recipe ID: 1")
	second := strings.Index(out, "Recipe ID: 2")
	require.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)

	section := out[:second]
	order := []string{"Recipe ID:", "Recipe Title:", "Time Required:", "Recipe URL:", SectionNutrition, SectionIngredients, SectionSteps}
	last := -1
	for _, label := range order {
		idx := strings.Index(section, label)
		require.Greater(t, idx, last, label)
		last = idx
	}
}
