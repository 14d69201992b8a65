package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DriverNameKey is the fixed client_settings key holding the driver display name.
const DriverNameKey = "driverName"

// SQLite-backed implementation of the IdentityStore port.
type SqliteStore struct{ DB *sql.DB }

func NewSqliteStore(db *sql.DB) *SqliteStore {
	return &SqliteStore{DB: db}
}

// Return the stored driver name and whether one is present.
func (s *SqliteStore) DriverName(ctx context.Context) (string, bool, error) {
	if s.DB == nil {
		return "", false, errors.New("sqlite identity store: DB is nil")
	}

	var name string
	err := s.DB.QueryRowContext(ctx, `
	SELECT value
	FROM client_settings
	WHERE key = ?;
	`, DriverNameKey).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get driver name: query client_settings table: %w", err)
	}

	return name, true, nil
}

// Persist name, replacing any previous value.
func (s *SqliteStore) SetDriverName(ctx context.Context, name string) error {
	if s.DB == nil {
		return errors.New("sqlite identity store: DB is nil")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("set driver name: name cannot be empty")
	}

	query := `
	INSERT OR REPLACE INTO client_settings (
		key,
		value,
		updated_at
	)
	VALUES (?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query, DriverNameKey, name, time.Now().Unix()); err != nil {
		return fmt.Errorf("set driver name: %w", err)
	}

	return nil
}

func (s *SqliteStore) ClearDriverName(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("sqlite identity store: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM client_settings WHERE key = ?;`, DriverNameKey); err != nil {
		return fmt.Errorf("clear driver name: %w", err)
	}
	return nil
}
