package cache

import (
	"context"
	"errors"
	"time"

	"eld-trip-planner/internal/domain"

	"github.com/bluele/gcache"
)

// MemorySuggestionCache is a bounded in-process LRU with per-entry expiry.
type MemorySuggestionCache struct {
	lru gcache.Cache
}

func NewMemorySuggestionCache(size int, ttl time.Duration) *MemorySuggestionCache {
	return newMemorySuggestionCache(size, ttl, gcache.NewRealClock())
}

func newMemorySuggestionCache(size int, ttl time.Duration, clock gcache.Clock) *MemorySuggestionCache {
	if size <= 0 {
		size = 1
	}
	b := gcache.New(size).LRU().Clock(clock)
	if ttl > 0 {
		b = b.Expiration(ttl)
	}
	return &MemorySuggestionCache{lru: b.Build()}
}

func (m *MemorySuggestionCache) Get(_ context.Context, query string) ([]domain.Suggestion, bool, error) {
	v, err := m.lru.Get(query)
	if errors.Is(err, gcache.KeyNotFoundError) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	cached, _ := v.([]domain.Suggestion)
	return append([]domain.Suggestion(nil), cached...), true, nil
}

func (m *MemorySuggestionCache) Put(_ context.Context, query string, suggestions []domain.Suggestion) error {
	return m.lru.Set(query, append([]domain.Suggestion{}, suggestions...))
}

// Len reports live entries.
func (m *MemorySuggestionCache) Len() int { return m.lru.Len(true) }
