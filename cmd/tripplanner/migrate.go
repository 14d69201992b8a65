package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eld-trip-planner/internal/adapters/repositories"
	"eld-trip-planner/internal/config"
	"eld-trip-planner/internal/platform/db"
	"eld-trip-planner/internal/platform/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newMigrateCmd manages schema versions without starting anything else.
// --postgres targets DATABASE_URL instead of the local SQLite store.
func newMigrateCmd() *cobra.Command {
	var postgres bool

	open := func() (*sql.DB, repositories.Dialect, *zap.Logger, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, "", nil, err
		}
		log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return nil, "", nil, err
		}

		if !postgres {
			h, err := db.OpenSqlite(cfg.DBPath)
			return h, repositories.DialectSqlite, log, err
		}
		if cfg.DatabaseURL == "" {
			return nil, "", nil, errors.New("DATABASE_URL is required with --postgres")
		}
		h, err := db.OpenPostgres(cfg.DatabaseURL)
		return h, repositories.DialectPostgres, log, err
	}

	run := func(fn func(ctx context.Context, h *sql.DB, d repositories.Dialect, log *zap.Logger, cmd *cobra.Command) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			h, dialect, log, err := open()
			if err != nil {
				return err
			}
			defer h.Close()
			return fn(cmd.Context(), h, dialect, log, cmd)
		}
	}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect schema migrations",
	}
	cmd.PersistentFlags().BoolVar(&postgres, "postgres", false, "operate on DATABASE_URL instead of DB_PATH")

	cmd.AddCommand(
		&cobra.Command{
			Use:  "up",
			Args: cobra.NoArgs,
			RunE: run(func(ctx context.Context, h *sql.DB, d repositories.Dialect, log *zap.Logger, _ *cobra.Command) error {
				return repositories.Migrate(ctx, h, d, log)
			}),
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Roll back every migration",
			Args:  cobra.NoArgs,
			RunE: run(func(ctx context.Context, h *sql.DB, d repositories.Dialect, log *zap.Logger, _ *cobra.Command) error {
				if err := repositories.Reset(ctx, h, d); err != nil {
					return err
				}
				log.Info("schema reset", zap.String("dialect", string(d)))
				return nil
			}),
		},
		&cobra.Command{
			Use:  "version",
			Args: cobra.NoArgs,
			RunE: run(func(ctx context.Context, h *sql.DB, d repositories.Dialect, _ *zap.Logger, cmd *cobra.Command) error {
				v, err := repositories.Version(ctx, h, d)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s schema version %d\n", d, v)
				return nil
			}),
		},
	)

	return cmd
}
