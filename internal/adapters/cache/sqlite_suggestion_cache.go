package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eld-trip-planner/internal/domain"
)

// SQLite backed suggestion cache living in the client-local store.
// Query keys are expected to be normalized by the caller.
type SqliteSuggestionCache struct {
	DB     *sql.DB
	MaxAge time.Duration

	now func() time.Time
}

func NewSqliteSuggestionCache(db *sql.DB, maxAge time.Duration) *SqliteSuggestionCache {
	return &SqliteSuggestionCache{DB: db, MaxAge: maxAge, now: time.Now}
}

// Fetch cached suggestions for query in stored rank order.
func (s *SqliteSuggestionCache) Get(ctx context.Context, query string) ([]domain.Suggestion, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("suggestion cache: db is nil")
	}

	var cachedAt int64
	err := s.DB.QueryRowContext(ctx, `
	SELECT cached_at
	FROM suggestion_queries
	WHERE query = ?;
	`, query).Scan(&cachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get suggestion cache: query suggestion_queries table: %w", err)
	}

	if expired(cachedAt, s.MaxAge, s.now) {
		return nil, false, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		label,
		lat,
		lon
	FROM suggestion_cache
	WHERE query = ?
	ORDER BY rank;
	`, query)
	if err != nil {
		return nil, false, fmt.Errorf("get suggestion cache: query suggestion_cache table: %w", err)
	}
	defer rows.Close()

	out, err := scanSuggestions(rows)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// Store suggestions for query, replacing any previous entry.
func (s *SqliteSuggestionCache) Put(ctx context.Context, query string, suggestions []domain.Suggestion) error {
	if s.DB == nil {
		return errors.New("suggestion cache: db is nil")
	}
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("insert suggestion cache: empty query key")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert suggestion cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM suggestion_cache WHERE query = ?;`, query); err != nil {
		return fmt.Errorf("insert suggestion cache: clear query=%q: %w", query, err)
	}

	if _, err := tx.ExecContext(ctx, `
	INSERT OR REPLACE INTO suggestion_queries (
		query,
		cached_at
	)
	VALUES (?, ?);
	`, query, s.now().Unix()); err != nil {
		return fmt.Errorf("insert suggestion cache: upsert query=%q: %w", query, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO suggestion_cache (
		query,
		rank,
		label,
		lat,
		lon
	)
	VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("insert suggestion cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for i, sg := range suggestions {
		if _, err := stmt.ExecContext(ctx, query, i, sg.Label, sg.Point.Latitude, sg.Point.Longitude); err != nil {
			return fmt.Errorf("insert suggestion cache query=%q rank=%d: %w", query, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert suggestion cache commit: %w", err)
	}

	return nil
}
