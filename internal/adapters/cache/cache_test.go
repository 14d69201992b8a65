package cache

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bluele/gcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eld-trip-planner/internal/adapters/repositories"
	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/platform/db"
	"eld-trip-planner/internal/ports"
)

var (
	_ ports.SuggestionCache = (*MemorySuggestionCache)(nil)
	_ ports.SuggestionCache = (*SQLSuggestionCache)(nil)
	_ ports.SuggestionCache = (*SqliteSuggestionCache)(nil)
	_ ports.Geocoder        = (*CachingGeocoder)(nil)
)

var accra = []domain.Suggestion{
	{Label: "Accra, Ghana", Point: domain.GeoPoint{Latitude: 5.56, Longitude: -0.2057}},
	{Label: "Accra Mall", Point: domain.GeoPoint{Latitude: 5.6216, Longitude: -0.1737}},
}

func openMigratedSqlite(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenSqlite(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, repositories.Migrate(context.Background(), conn, repositories.DialectSqlite, nil))
	return conn
}

func TestMemorySuggestionCache_expiry(t *testing.T) {
	clock := gcache.NewFakeClock()
	c := newMemorySuggestionCache(4, time.Minute, clock)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "accra")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "accra", accra))
	got, ok, err := c.Get(ctx, "accra")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, accra, got)

	clock.Advance(2 * time.Minute)
	_, ok, err = c.Get(ctx, "accra")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemorySuggestionCache_evictsLeastRecentlyUsed(t *testing.T) {
	c := NewMemorySuggestionCache(2, 0)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "a", accra[:1]))
	require.NoError(t, c.Put(ctx, "b", accra[:1]))
	_, _, _ = c.Get(ctx, "a")
	require.NoError(t, c.Put(ctx, "c", accra[:1]))

	_, okA, _ := c.Get(ctx, "a")
	_, okB, _ := c.Get(ctx, "b")
	assert.True(t, okA)
	assert.False(t, okB)
	assert.Equal(t, 2, c.Len())
}

func TestMemorySuggestionCache_emptyResultIsAHit(t *testing.T) {
	c := NewMemorySuggestionCache(2, 0)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "nowhere", nil))
	got, ok, err := c.Get(ctx, "nowhere")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestSqliteSuggestionCache_roundTrip(t *testing.T) {
	c := NewSqliteSuggestionCache(openMigratedSqlite(t), 0)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "accra")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "accra", accra))
	got, ok, err := c.Get(ctx, "accra")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, accra, got)

	// Replace keeps only the new rows.
	require.NoError(t, c.Put(ctx, "accra", accra[1:]))
	got, ok, err = c.Get(ctx, "accra")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, accra[1:], got)

	require.NoError(t, c.Put(ctx, "nowhere", nil))
	got, ok, err = c.Get(ctx, "nowhere")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestSqliteSuggestionCache_maxAge(t *testing.T) {
	c := NewSqliteSuggestionCache(openMigratedSqlite(t), time.Hour)
	now := time.Date(2025, 9, 30, 8, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "accra", accra))

	now = now.Add(30 * time.Minute)
	_, ok, err := c.Get(ctx, "accra")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(2 * time.Hour)
	_, ok, err = c.Get(ctx, "accra")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSqliteSuggestionCache_rejectsEmptyKey(t *testing.T) {
	c := NewSqliteSuggestionCache(openMigratedSqlite(t), 0)
	assert.Error(t, c.Put(context.Background(), "  ", accra))
	assert.Error(t, (&SqliteSuggestionCache{}).Put(context.Background(), "x", accra))
}

func TestSQLSuggestionCache_postgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	conn, err := db.OpenPostgres(url)
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	require.NoError(t, repositories.Migrate(ctx, conn, repositories.DialectPostgres, nil))

	c := NewSQLSuggestionCache(conn, 0)
	key := "accra " + time.Now().Format(time.RFC3339Nano)
	require.NoError(t, c.Put(ctx, key, accra))

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, accra, got)
}

type stubGeocoder struct {
	calls  atomic.Int32
	result []domain.Suggestion
	err    error
}

func (s *stubGeocoder) Search(_ context.Context, _ string) ([]domain.Suggestion, error) {
	s.calls.Add(1)
	return s.result, s.err
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]domain.Suggestion, bool, error) {
	return nil, false, errors.New("disk full")
}

func (failingCache) Put(context.Context, string, []domain.Suggestion) error {
	return errors.New("disk full")
}

func TestCachingGeocoder_missThenHit(t *testing.T) {
	upstream := &stubGeocoder{result: accra}
	mem := NewMemorySuggestionCache(8, 0)
	persistent := NewSqliteSuggestionCache(openMigratedSqlite(t), 0)
	g := NewCachingGeocoder(upstream, nil, mem, persistent)
	ctx := context.Background()

	got, err := g.Search(ctx, "  Accra ")
	require.NoError(t, err)
	assert.Equal(t, accra, got)

	got, err = g.Search(ctx, "accra")
	require.NoError(t, err)
	assert.Equal(t, accra, got)
	assert.EqualValues(t, 1, upstream.calls.Load())

	_, ok, err := persistent.Get(ctx, "accra")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCachingGeocoder_backfillsEarlierTier(t *testing.T) {
	upstream := &stubGeocoder{}
	mem := NewMemorySuggestionCache(8, 0)
	persistent := NewSqliteSuggestionCache(openMigratedSqlite(t), 0)
	ctx := context.Background()
	require.NoError(t, persistent.Put(ctx, "accra mall", accra[1:]))

	g := NewCachingGeocoder(upstream, nil, mem, persistent)
	got, err := g.Search(ctx, "Accra   Mall")
	require.NoError(t, err)
	assert.Equal(t, accra[1:], got)
	assert.Zero(t, upstream.calls.Load())

	_, ok, _ := mem.Get(ctx, "accra mall")
	assert.True(t, ok)
}

func TestCachingGeocoder_cacheFailuresAreNotFatal(t *testing.T) {
	upstream := &stubGeocoder{result: accra}
	g := NewCachingGeocoder(upstream, nil, failingCache{})

	got, err := g.Search(context.Background(), "accra")
	require.NoError(t, err)
	assert.Equal(t, accra, got)
}

func TestCachingGeocoder_upstreamErrorNotCached(t *testing.T) {
	upstream := &stubGeocoder{err: errors.New("boom")}
	mem := NewMemorySuggestionCache(8, 0)
	g := NewCachingGeocoder(upstream, nil, mem)

	_, err := g.Search(context.Background(), "accra")
	require.Error(t, err)
	assert.Zero(t, mem.Len())
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "kumasi central market", NormalizeQuery("  Kumasi \t Central  MARKET "))
	assert.Equal(t, "", NormalizeQuery("   "))
}
