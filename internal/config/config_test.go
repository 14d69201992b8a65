package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eld-trip-planner/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "BACKEND_BASE_URL", "GEOCODER_BASE_URL", "GEOCODER_USER_AGENT", "HTTP_TIMEOUT",
		"SUGGEST_DEBOUNCE", "SUGGEST_MIN_CHARS", "SUGGEST_LIMIT", "SUGGEST_CACHE_SIZE", "SUGGEST_CACHE_TTL",
		"DB_PATH", "DATABASE_URL", "REDIS_URL", "LOG_LEVEL", "LOG_FORMAT", "CORS_ORIGINS",
	} {
		// Setenv registers the restore; Unsetenv makes envDefault apply.
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	// Keep a developer's .env out of the test.
	t.Chdir(t.TempDir())
}

// TestLoad_defaults verifies the resolver and backend defaults.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 300*time.Millisecond, cfg.SuggestDebounce)
	require.Equal(t, 3, cfg.SuggestMinChars)
	require.Equal(t, 5, cfg.SuggestLimit)
	require.Equal(t, "http://localhost:8000/api", cfg.BackendBaseURL)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Empty(t, cfg.DatabaseURL)
	require.Empty(t, cfg.RedisURL)
}

func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SUGGEST_DEBOUNCE", "150ms")
	t.Setenv("SUGGEST_LIMIT", "8")
	t.Setenv("BACKEND_BASE_URL", "https://eld.example.com/api")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 150*time.Millisecond, cfg.SuggestDebounce)
	require.Equal(t, 8, cfg.SuggestLimit)
	require.Equal(t, "https://eld.example.com/api", cfg.BackendBaseURL)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}

// TestLoad_invalid verifies that every bad variable is named in the error.
func TestLoad_invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("BACKEND_BASE_URL", "not-a-url")
	t.Setenv("SUGGEST_LIMIT", "0")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "BACKEND_BASE_URL")
	require.ErrorContains(t, err, "SUGGEST_LIMIT")
}
