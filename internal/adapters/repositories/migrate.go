package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"eld-trip-planner/migrations"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Dialect selects which migration set applies to a database handle.
type Dialect string

const (
	DialectSqlite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func newProvider(db *sql.DB, dialect Dialect) (*goose.Provider, error) {
	if db == nil {
		return nil, errors.New("migrate: DB is nil")
	}

	var gd goose.Dialect
	switch dialect {
	case DialectSqlite:
		gd = goose.DialectSQLite3
	case DialectPostgres:
		gd = goose.DialectPostgres
	default:
		return nil, fmt.Errorf("migrate: unknown dialect %q", dialect)
	}

	sub, err := fs.Sub(migrations.FS, string(dialect))
	if err != nil {
		return nil, fmt.Errorf("migrate: open %s migrations: %w", dialect, err)
	}

	provider, err := goose.NewProvider(gd, db, sub)
	if err != nil {
		return nil, fmt.Errorf("migrate: create goose provider: %w", err)
	}
	return provider, nil
}

// Migrate applies every pending migration for dialect.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	provider, err := newProvider(db, dialect)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate: up %s: %w", dialect, err)
	}

	for _, r := range results {
		log.Info("migration applied",
			zap.String("dialect", string(dialect)),
			zap.Int64("version", r.Source.Version),
			zap.Duration("took", r.Duration),
		)
	}

	return nil
}

// Reset rolls back every migration for dialect.
func Reset(ctx context.Context, db *sql.DB, dialect Dialect) error {
	provider, err := newProvider(db, dialect)
	if err != nil {
		return err
	}

	if _, err := provider.DownTo(ctx, 0); err != nil {
		return fmt.Errorf("migrate: reset %s: %w", dialect, err)
	}
	return nil
}

// Version returns the current schema version for dialect.
func Version(ctx context.Context, db *sql.DB, dialect Dialect) (int64, error) {
	provider, err := newProvider(db, dialect)
	if err != nil {
		return 0, err
	}

	v, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrate: version %s: %w", dialect, err)
	}
	return v, nil
}
