package spoonacular

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.SpoonacularConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})
}

func TestSearchRecipes_QueryParameters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/recipes/complexSearch", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("apiKey"))
		assert.Equal(t, "tomato,cheese", q.Get("includeIngredients"))
		assert.Equal(t, "800", q.Get("maxCalories"))
		assert.Equal(t, "30", q.Get("maxFat"))
		assert.Equal(t, "5", q.Get("number"))
		assert.Equal(t, "true", q.Get("addRecipeInformation"))
		assert.Equal(t, "true", q.Get("fillIngredients"))
		assert.Equal(t, "true", q.Get("instructionsRequired"))
		assert.Equal(t, "true", q.Get("addRecipeNutrition"))
		assert.Equal(t, "Italian", q.Get("cuisine"))
		assert.Equal(t, "Vegetarian", q.Get("diet"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[{"id":716429,"title":"Pasta with Garlic","readyInMinutes":45}],"offset":0,"number":5,"totalResults":86}`)
	})

	result, err := client.SearchRecipes(context.Background(), SearchQuery{
		Cuisine:            "Italian",
		Diet:               "Vegetarian",
		IncludeIngredients: "tomato,cheese",
		MaxCalories:        800,
		MaxFat:             30,
		Number:             5,
	})
	require.NoError(t, err)
	assert.Equal(t, 86, result.TotalResults)
	require.Len(t, result.Results, 1)
	assert.Equal(t, ID("716429"), result.Results[0].ID)
	assert.Equal(t, "Pasta with Garlic", result.Results[0].DisplayTitle())
	assert.Equal(t, "45", result.Results[0].DisplayReadyInMinutes())
}

func TestSearchRecipes_OmitsEmptyCuisineAndDiet(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		_, hasCuisine := q["cuisine"]
		_, hasDiet := q["diet"]
		assert.False(t, hasCuisine)
		assert.False(t, hasDiet)
		fmt.Fprint(w, `{"results":[],"totalResults":0}`)
	})

	result, err := client.SearchRecipes(context.Background(), SearchQuery{
		IncludeIngredients: "rice",
		MaxCalories:        0,
		MaxFat:             0,
		Number:             1,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalResults)
	assert.Empty(t, result.Results)
}

func TestSearchRecipes_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind common.Kind
		wantMsg  string
	}{
		{
			name:     "quota exceeded",
			status:   http.StatusPaymentRequired,
			body:     `{"status":"failure","code":402,"message":"Your daily points limit of 150 has been reached."}`,
			wantKind: common.KindTransport,
			wantMsg:  "daily points limit",
		},
		{
			name:     "server error without body",
			status:   http.StatusInternalServerError,
			body:     ``,
			wantKind: common.KindTransport,
			wantMsg:  "status 500",
		},
		{
			name:     "malformed json",
			status:   http.StatusOK,
			body:     `{"results":[`,
			wantKind: common.KindDecode,
		},
		{
			name:     "missing results",
			status:   http.StatusOK,
			body:     `{"totalResults":3}`,
			wantKind: common.KindDecode,
			wantMsg:  "results",
		},
		{
			name:     "missing totalResults",
			status:   http.StatusOK,
			body:     `{"results":[]}`,
			wantKind: common.KindDecode,
			wantMsg:  "totalResults",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			result, err := client.SearchRecipes(context.Background(), SearchQuery{IncludeIngredients: "egg", Number: 1})
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, tt.wantKind, common.KindOf(err))
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestSearchRecipes_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(&config.SpoonacularConfig{APIKey: "k", BaseURL: url, Timeout: time.Second})
	_, err := client.SearchRecipes(context.Background(), SearchQuery{IncludeIngredients: "egg", Number: 1})
	require.Error(t, err)
	assert.Equal(t, common.KindTransport, common.KindOf(err))
}

func TestTransportErrors_DoNotExposeAPIKey(t *testing.T) {
	const key = "SECRET-KEY-123456"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(&config.SpoonacularConfig{APIKey: key, BaseURL: url, Timeout: time.Second})

	_, err := client.SearchRecipes(context.Background(), SearchQuery{IncludeIngredients: "egg", Number: 1})
	require.Error(t, err)
	assert.Equal(t, common.KindTransport, common.KindOf(err))
	assert.NotContains(t, err.Error(), key)
	assert.NotContains(t, err.Error(), "apiKey")
	assert.Contains(t, err.Error(), "/recipes/complexSearch")

	_, err = client.FetchIngredientWidget(context.Background(), "42")
	require.Error(t, err)
	assert.Equal(t, common.KindTransport, common.KindOf(err))
	assert.NotContains(t, err.Error(), key)
	assert.Contains(t, err.Error(), "/recipes/42/ingredientWidget.json")
}

func TestSearchRecipes_NonNumericOptionalField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[{"id":1,"title":"Stew","readyInMinutes":"N/A"}],"totalResults":1}`)
	})

	result, err := client.SearchRecipes(context.Background(), SearchQuery{IncludeIngredients: "beef", Number: 1})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "N/A", result.Results[0].DisplayReadyInMinutes())
	assert.Equal(t, "Stew", result.Results[0].DisplayTitle())
}

func TestFetchIngredientWidget(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/1003464/ingredientWidget.json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		fmt.Fprint(w, `{"ingredients":[
			{"name":"blueberries","image":"blueberries.jpg","amount":{"metric":{"value":222.0,"unit":"g"},"us":{"value":1.5,"unit":"cups"}}},
			{"name":"egg white","amount":{"metric":{"value":1,"unit":""},"us":{"value":1,"unit":""}}},
			{"name":"flour","amount":{"metric":{"value":2.5,"unit":"Tbsps"},"us":{"value":2.5,"unit":"Tbsps"}}}
		]}`)
	})

	entries, err := client.FetchIngredientWidget(context.Background(), "1003464")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "blueberries", entries[0].Name)
	assert.Equal(t, "222.0", entries[0].Amount.String())
	assert.Equal(t, "g", entries[0].Unit)
	assert.Equal(t, "egg white", entries[1].Name)
	assert.Equal(t, "1", entries[1].Amount.String())
	assert.Equal(t, "", entries[1].Unit)
	assert.Equal(t, "Tbsps", entries[2].Unit)
}

func TestFetchIngredientWidget_NoIngredientsKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	entries, err := client.FetchIngredientWidget(context.Background(), "42")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetchIngredientWidget_MissingMetricAmount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ingredients":[{"name":"salt","amount":{"us":{"value":1,"unit":"tsp"}}}]}`)
	})

	_, err := client.FetchIngredientWidget(context.Background(), "42")
	require.Error(t, err)
	assert.Equal(t, common.KindDecode, common.KindOf(err))
	assert.Contains(t, err.Error(), "salt")
}

func TestFetchIngredientWidget_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"status":"failure","code":404,"message":"A recipe with the id 42 does not exist."}`)
	})

	_, err := client.FetchIngredientWidget(context.Background(), "42")
	require.Error(t, err)
	assert.Equal(t, common.KindTransport, common.KindOf(err))
	assert.Contains(t, err.Error(), "does not exist")
}
