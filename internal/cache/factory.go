// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"fmt"
	"log/slog"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend       string // "memory" or "redis"
	MaxEntries    int    // memory backend only
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// New builds the configured cache backend. An unknown backend name is an
// error rather than a silent fallback.
func New(cfg Config, log *slog.Logger) (Cache, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryCache(cfg.MaxEntries), nil
	case "redis":
		return NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix, log)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
