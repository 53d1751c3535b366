package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pawup/shelter-api/internal/config"
)

const redisProbeTimeout = 2 * time.Second

// Redis owns the client backing the newest-animals cache.
type Redis struct {
	client *redis.Client
}

// NewRedis builds the client and probes it once. An unreachable server is
// logged, not fatal: the cache falls back to postgres and go-redis keeps
// redialing.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	r := &Redis{client: client}

	ctx, cancel := context.WithTimeout(context.Background(), redisProbeTimeout)
	defer cancel()
	if err := r.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, newest animals served from postgres",
			zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB), zap.Error(err))
	} else {
		logger.Info("redis ready", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	}
	return r
}

// Client returns the go-redis client, nil when redis is not configured.
func (r *Redis) Client() *redis.Client {
	if r == nil {
		return nil
	}
	return r.client
}

// Ping backs the readiness probe.
func (r *Redis) Ping(ctx context.Context) error {
	if r.Client() == nil {
		return fmt.Errorf("redis: %w", ErrNotConfigured)
	}
	return r.client.Ping(ctx).Err()
}

// Close closes the client.
func (r *Redis) Close() error {
	if client := r.Client(); client != nil {
		return client.Close()
	}
	return nil
}
