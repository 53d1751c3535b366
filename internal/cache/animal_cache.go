package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pawup/shelter-api/internal/domain"
)

// NewestAnimalsKey holds the serialized newest-animals feed.
const NewestAnimalsKey = "pawup:animals:newest"

// AnimalCache keeps the public newest-animals feed in Redis. Cache failures
// are logged and treated as misses. A nil *AnimalCache is a permanent miss.
type AnimalCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewAnimalCache builds a cache. A zero ttl disables caching.
func NewAnimalCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *AnimalCache {
	if client == nil || ttl <= 0 {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnimalCache{client: client, ttl: ttl, logger: logger}
}

// GetNewest returns the cached feed and whether it was present.
func (c *AnimalCache) GetNewest(ctx context.Context) ([]domain.Animal, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, NewestAnimalsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("newest animals cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var animals []domain.Animal
	if err := json.Unmarshal(raw, &animals); err != nil {
		c.logger.Warn("newest animals cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return animals, true
}

// SetNewest stores the feed for the configured ttl.
func (c *AnimalCache) SetNewest(ctx context.Context, animals []domain.Animal) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(animals)
	if err != nil {
		c.logger.Warn("newest animals cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, NewestAnimalsKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("newest animals cache write failed", zap.Error(err))
	}
}

// InvalidateNewest drops the cached feed after an animal write.
func (c *AnimalCache) InvalidateNewest(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, NewestAnimalsKey).Err()
}
