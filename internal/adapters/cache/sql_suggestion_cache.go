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

// SQLSuggestionCache is a Postgres-backed suggestion cache that several
// clients can share.
type SQLSuggestionCache struct {
	DB *sql.DB
	// MaxAge bounds how long an entry is served; zero keeps entries forever.
	MaxAge time.Duration

	now func() time.Time
}

func NewSQLSuggestionCache(db *sql.DB, maxAge time.Duration) *SQLSuggestionCache {
	return &SQLSuggestionCache{DB: db, MaxAge: maxAge, now: time.Now}
}

// Fetch cached suggestions for query in stored rank order.
func (s *SQLSuggestionCache) Get(ctx context.Context, query string) ([]domain.Suggestion, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("suggestion cache: db is nil")
	}

	var cachedAt int64
	err := s.DB.QueryRowContext(ctx, `
	SELECT cached_at
	FROM suggestion_queries
	WHERE query = $1;
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
	SELECT label, lat, lon
	FROM suggestion_cache
	WHERE query = $1
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
func (s *SQLSuggestionCache) Put(ctx context.Context, query string, suggestions []domain.Suggestion) error {
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

	if _, err := tx.ExecContext(ctx, `DELETE FROM suggestion_cache WHERE query = $1;`, query); err != nil {
		return fmt.Errorf("insert suggestion cache: clear query=%q: %w", query, err)
	}

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO suggestion_queries (query, cached_at)
	VALUES ($1, $2)
	ON CONFLICT (query) DO UPDATE
	SET cached_at = EXCLUDED.cached_at;
	`, query, s.now().Unix()); err != nil {
		return fmt.Errorf("insert suggestion cache: upsert query=%q: %w", query, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO suggestion_cache (query, rank, label, lat, lon)
	VALUES ($1, $2, $3, $4, $5);
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

func expired(cachedAt int64, maxAge time.Duration, now func() time.Time) bool {
	if maxAge <= 0 {
		return false
	}
	return now().Sub(time.Unix(cachedAt, 0)) > maxAge
}

func scanSuggestions(rows *sql.Rows) ([]domain.Suggestion, error) {
	out := make([]domain.Suggestion, 0, 8)
	for rows.Next() {
		var sg domain.Suggestion
		if err := rows.Scan(&sg.Label, &sg.Point.Latitude, &sg.Point.Longitude); err != nil {
			return nil, fmt.Errorf("get suggestion cache: scan rows: %w", err)
		}
		out = append(out, sg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get suggestion cache: row iteration: %w", err)
	}
	return out, nil
}
