// Command tripplanner is the composition root. It wires concrete adapters
// (Nominatim, the routing backend, SQLite and optional Postgres) behind ports
// and exposes them as an HTTP server and a handful of CLI subcommands.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"eld-trip-planner/internal/adapters/backend"
	"eld-trip-planner/internal/adapters/cache"
	"eld-trip-planner/internal/adapters/geocode"
	"eld-trip-planner/internal/adapters/httpclient"
	"eld-trip-planner/internal/adapters/identity"
	"eld-trip-planner/internal/adapters/repositories"
	"eld-trip-planner/internal/config"
	"eld-trip-planner/internal/platform/db"
	"eld-trip-planner/internal/platform/logger"
	"eld-trip-planner/internal/ports"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	root := &cobra.Command{
		Use:           "tripplanner",
		Short:         "Plan HOS-compliant trips and draw ELD daily log sheets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCmd(),
		newPlanCmd(),
		newLogsCmd(),
		newDriverCmd(),
		newMigrateCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app holds the process-wide dependencies shared by subcommands.
type app struct {
	cfg   config.Config
	log   *zap.Logger
	local *sql.DB
	pg    *sql.DB
	rdb   *redis.Client
}

// newApp loads config, builds the logger and opens the migrated local store.
// Postgres and Redis are opened only when their URLs are set.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log}

	a.local, err = db.OpenSqlite(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := repositories.Migrate(ctx, a.local, repositories.DialectSqlite, log); err != nil {
		a.close()
		return nil, err
	}

	if cfg.DatabaseURL != "" {
		a.pg, err = db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			a.close()
			return nil, err
		}
		if err := repositories.Migrate(ctx, a.pg, repositories.DialectPostgres, log); err != nil {
			a.close()
			return nil, err
		}
	}

	if cfg.RedisURL != "" {
		a.rdb, err = db.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			a.close()
			return nil, err
		}
	}

	return a, nil
}

func (a *app) close() {
	if a.rdb != nil {
		a.rdb.Close()
	}
	if a.pg != nil {
		a.pg.Close()
	}
	if a.local != nil {
		a.local.Close()
	}
	_ = a.log.Sync()
}

// geocoder layers the suggestion caches in front of Nominatim: memory, the
// shared Redis tier, the local SQLite store, then Postgres.
func (a *app) geocoder() ports.Geocoder {
	hc := httpclient.New(a.cfg.HTTPTimeout, map[string]string{"User-Agent": a.cfg.GeocoderUserAgent})
	upstream := geocode.NewNominatimGeocoder(a.cfg.GeocoderBaseURL, a.cfg.SuggestLimit, hc, a.log)

	tiers := []ports.SuggestionCache{cache.NewMemorySuggestionCache(a.cfg.SuggestCacheSize, a.cfg.SuggestCacheTTL)}
	if a.rdb != nil {
		tiers = append(tiers, cache.NewRedisSuggestionCache(a.rdb, a.cfg.SuggestCacheTTL))
	}
	tiers = append(tiers, cache.NewSqliteSuggestionCache(a.local, a.cfg.SuggestCacheTTL))
	if a.pg != nil {
		tiers = append(tiers, cache.NewSQLSuggestionCache(a.pg, a.cfg.SuggestCacheTTL))
	}

	return cache.NewCachingGeocoder(upstream, a.log, tiers...)
}

func (a *app) backend() *backend.Client {
	return backend.NewClient(a.cfg.BackendBaseURL, httpclient.New(a.cfg.HTTPTimeout, nil), a.log)
}

func (a *app) identity() *identity.SqliteStore {
	return identity.NewSqliteStore(a.local)
}

// withApp runs fn with a fully wired app and closes it afterwards.
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		return fn(cmd, args, a)
	}
}
