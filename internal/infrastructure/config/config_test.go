package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SPOONACULAR_API_KEY", "  secret  ")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Spoonacular.APIKey)
	assert.Equal(t, "https://api.spoonacular.com", cfg.Spoonacular.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Spoonacular.Timeout)
	assert.Equal(t, "Shopping list.txt", cfg.ShoppingList.Path)
	assert.Equal(t, ModeTerminal, cfg.App.Mode)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, time.Second, cfg.DedupWindow)
	assert.Contains(t, cfg.Vocabulary.Cuisines, "Italian")
	assert.Contains(t, cfg.Vocabulary.Diets, "Vegan")
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SPOONACULAR_API_KEY", "")
	t.Setenv("API_KEY", "fallback-key")
	t.Setenv("SPOONACULAR_BASE_URL", "http://localhost:9000/")
	t.Setenv("EXAMPLE_CUISINE", "Italian, Thai,,Mexican")
	t.Setenv("EXAMPLE_DIET", "Vegan")
	t.Setenv("SHOPPING_LIST_PATH", "/tmp/list.txt")
	t.Setenv("APP_MODE", "HTTP")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "fallback-key", cfg.Spoonacular.APIKey)
	assert.Equal(t, "http://localhost:9000", cfg.Spoonacular.BaseURL)
	assert.Equal(t, []string{"Italian", "Thai", "Mexican"}, cfg.Vocabulary.Cuisines)
	assert.Equal(t, []string{"Vegan"}, cfg.Vocabulary.Diets)
	assert.Equal(t, "/tmp/list.txt", cfg.ShoppingList.Path)
	assert.Equal(t, ModeHTTP, cfg.App.Mode)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
}

func TestLoadConfig_MissingAPIKey(t *testing.T) {
	t.Setenv("SPOONACULAR_API_KEY", "")
	t.Setenv("API_KEY", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown mode", map[string]string{"APP_MODE": "gui"}, "unknown app mode"},
		{"unknown store", map[string]string{"SESSION_STORE": "etcd"}, "unknown session store"},
		{"bad rate limit", map[string]string{"RATE_LIMIT_REQUESTS": "0"}, "rate limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SPOONACULAR_API_KEY", "k")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
