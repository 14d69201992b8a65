package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eld-trip-planner/internal/domain"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "eld:suggest:"

// RedisSuggestionCache shares suggestions between server instances.
// Entries are JSON arrays and expire through the Redis TTL.
type RedisSuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSuggestionCache(client *redis.Client, ttl time.Duration) *RedisSuggestionCache {
	return &RedisSuggestionCache{client: client, ttl: ttl}
}

func (c *RedisSuggestionCache) Get(ctx context.Context, query string) ([]domain.Suggestion, bool, error) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+query).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis suggestion cache get: %w", err)
	}

	var out []domain.Suggestion
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false, fmt.Errorf("redis suggestion cache decode %q: %w", query, err)
	}
	if out == nil {
		out = []domain.Suggestion{}
	}
	return out, true, nil
}

func (c *RedisSuggestionCache) Put(ctx context.Context, query string, suggestions []domain.Suggestion) error {
	if suggestions == nil {
		suggestions = []domain.Suggestion{}
	}
	raw, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("redis suggestion cache encode: %w", err)
	}

	if err := c.client.Set(ctx, redisKeyPrefix+query, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis suggestion cache set: %w", err)
	}
	return nil
}
