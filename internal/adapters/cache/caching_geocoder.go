package cache

import (
	"context"
	"strings"

	"eld-trip-planner/internal/domain"
	"eld-trip-planner/internal/ports"

	"go.uber.org/zap"
)

// CachingGeocoder consults cache tiers in order before calling upstream.
// A hit in a later tier is copied into the earlier ones; an upstream answer
// is written to every tier. Cache failures are logged and never returned.
type CachingGeocoder struct {
	upstream ports.Geocoder
	tiers    []ports.SuggestionCache
	log      *zap.Logger
}

func NewCachingGeocoder(upstream ports.Geocoder, log *zap.Logger, tiers ...ports.SuggestionCache) *CachingGeocoder {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachingGeocoder{upstream: upstream, tiers: tiers, log: log}
}

// NormalizeQuery collapses whitespace and lower-cases q for use as a cache key.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

func (c *CachingGeocoder) Search(ctx context.Context, query string) ([]domain.Suggestion, error) {
	key := NormalizeQuery(query)

	for i, tier := range c.tiers {
		got, ok, err := tier.Get(ctx, key)
		if err != nil {
			c.log.Warn("suggestion cache read failed", zap.Int("tier", i), zap.String("query", key), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		c.fill(ctx, c.tiers[:i], key, got)
		return got, nil
	}

	got, err := c.upstream.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	c.fill(ctx, c.tiers, key, got)
	return got, nil
}

func (c *CachingGeocoder) fill(ctx context.Context, tiers []ports.SuggestionCache, key string, got []domain.Suggestion) {
	if key == "" {
		return
	}
	for i, tier := range tiers {
		if err := tier.Put(ctx, key, got); err != nil {
			c.log.Warn("suggestion cache write failed", zap.Int("tier", i), zap.String("query", key), zap.Error(err))
		}
	}
}
