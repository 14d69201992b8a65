// Package config loads and validates configuration from the environment,
// reading a local .env file first when one is present.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	BackendBaseURL    string        `env:"BACKEND_BASE_URL" envDefault:"http://localhost:8000/api"`
	GeocoderBaseURL   string        `env:"GEOCODER_BASE_URL" envDefault:"https://nominatim.openstreetmap.org"`
	GeocoderUserAgent string        `env:"GEOCODER_USER_AGENT" envDefault:"eld-trip-planner/1.0"`
	HTTPTimeout       time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"`

	SuggestDebounce  time.Duration `env:"SUGGEST_DEBOUNCE" envDefault:"300ms"`
	SuggestMinChars  int           `env:"SUGGEST_MIN_CHARS" envDefault:"3"`
	SuggestLimit     int           `env:"SUGGEST_LIMIT" envDefault:"5"`
	SuggestCacheSize int           `env:"SUGGEST_CACHE_SIZE" envDefault:"512"`
	SuggestCacheTTL  time.Duration `env:"SUGGEST_CACHE_TTL" envDefault:"1h"`

	// DBPath is the client-local SQLite store (driver identity, suggestion cache).
	DBPath string `env:"DB_PATH" envDefault:"data/tripplanner.db"`
	// DatabaseURL optionally points the persistent suggestion cache at Postgres.
	DatabaseURL string `env:"DATABASE_URL"`
	// RedisURL optionally adds a shared Redis suggestion cache tier.
	RedisURL string `env:"REDIS_URL"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
}

// Load reads .env (if present) and the environment, then validates the result.
func Load() (Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}

	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid variable at once.
func (c Config) Validate() error {
	var problems []string

	for name, raw := range map[string]string{
		"BACKEND_BASE_URL":  c.BackendBaseURL,
		"GEOCODER_BASE_URL": c.GeocoderBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, name+" must be an absolute URL")
		}
	}
	if c.SuggestDebounce <= 0 {
		problems = append(problems, "SUGGEST_DEBOUNCE must be positive")
	}
	if c.SuggestMinChars < 1 {
		problems = append(problems, "SUGGEST_MIN_CHARS must be at least 1")
	}
	if c.SuggestLimit < 1 || c.SuggestLimit > 50 {
		problems = append(problems, "SUGGEST_LIMIT must be between 1 and 50")
	}
	if c.SuggestCacheSize < 1 {
		problems = append(problems, "SUGGEST_CACHE_SIZE must be at least 1")
	}
	if c.HTTPTimeout <= 0 {
		problems = append(problems, "HTTP_TIMEOUT must be positive")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH must not be empty")
	}

	if len(problems) > 0 {
		// Map iteration order is random; keep the message stable.
		slices.Sort(problems)
		return errors.New("config: invalid environment: " + strings.Join(problems, "; "))
	}
	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
