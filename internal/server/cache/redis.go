// Package cache wraps a Redis client with the small key-value surface used
// by token revocation and readiness checks.
package cache

import (
	"context"
	"time"

	"github.com/dmitrijs2005/brainly/internal/logging"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

type RedisCache struct {
	rdb    *redis.Client
	logger logging.Logger
}

func NewRedisCache(cfg Config, logger logging.Logger) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisCache{rdb: rdb, logger: logger.With("module", "redis")}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		c.logger.Warn(ctx, "ping failed", "error", err)
		return err
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

// SetNX sets key only if it does not exist yet. A non-positive ttl means
// no expiry.
func (c *RedisCache) SetNX(ctx context.Context, key string, val []byte, ttl time.Duration) (bool, error) {
	if ttl < 0 {
		ttl = 0
	}
	ok, err := c.rdb.SetNX(ctx, key, val, ttl).Result()
	if err != nil {
		c.logger.Error(ctx, "SETNX failed", "key", key, "error", err)
		return false, err
	}
	c.logger.Debug(ctx, "SETNX", "key", key, "ttl", ttl, "set", ok)
	return ok, nil
}

func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		c.logger.Error(ctx, "EXISTS failed", "key", key, "error", err)
		return false, err
	}
	return n == 1, nil
}
