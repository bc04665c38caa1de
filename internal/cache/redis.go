// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a Redis-backed Cache. All keys are namespaced under a
// prefix so several deployments can share one Redis instance.
type RedisCache struct {
	client *redis.Client
	prefix string
	log    *slog.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewRedisCache connects to addr and verifies the connection.
func NewRedisCache(addr, password string, db int, prefix string, log *slog.Logger) (*RedisCache, error) {
	if log == nil {
		log = slog.Default()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client, prefix: prefix, log: log}, nil
}

func (c *RedisCache) key(k string) string {
	return c.prefix + k
}

// Get returns the value for key.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("redis get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return val, true
}

// Set stores value under key for ttl.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		c.log.Warn("redis set failed", "key", key, "error", err)
	}
}

// Delete removes key.
func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		c.log.Warn("redis delete failed", "key", key, "error", err)
	}
}

// DeleteByPrefix removes every key with the given prefix using SCAN to
// avoid blocking the server.
func (c *RedisCache) DeleteByPrefix(ctx context.Context, prefix string) {
	c.scanDelete(ctx, c.key(prefix)+"*")
}

// Clear removes every key in this cache's namespace.
func (c *RedisCache) Clear(ctx context.Context) {
	c.scanDelete(ctx, c.prefix+"*")
}

func (c *RedisCache) scanDelete(ctx context.Context, pattern string) {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			c.log.Warn("redis scan failed", "pattern", pattern, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.log.Warn("redis delete failed", "pattern", pattern, "error", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}

// Stats returns hit and miss counters.
func (c *RedisCache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// Ping checks the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
