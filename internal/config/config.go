// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"MAPINLY_DB_PATH" envDefault:"./data/mapinly.db"`
	ServerHost string `env:"MAPINLY_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"MAPINLY_SERVER_PORT" envDefault:"8080"`
	BaseURL    string `env:"MAPINLY_BASE_URL" envDefault:"http://localhost:8080"`
	Env        string `env:"MAPINLY_ENV" envDefault:"development"`
	LogLevel   string `env:"MAPINLY_LOG_LEVEL" envDefault:"info"`

	// Session and CSRF signing key. The default only suits development.
	SessionSecret string `env:"MAPINLY_SESSION_SECRET" envDefault:"dev-secret-change-in-production"`

	// Cache configuration
	CacheBackend  string `env:"MAPINLY_CACHE_BACKEND" envDefault:"memory"` // "memory" or "redis"
	CacheMaxSize  int    `env:"MAPINLY_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries
	RedisAddr     string `env:"MAPINLY_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"MAPINLY_REDIS_PASSWORD"`
	RedisDB       int    `env:"MAPINLY_REDIS_DB" envDefault:"0"`
	CachePrefix   string `env:"MAPINLY_CACHE_PREFIX" envDefault:"mapinly:"` // Redis key prefix

	// Translation backend configuration
	TranslateEndpoint string        `env:"MAPINLY_TRANSLATE_ENDPOINT" envDefault:"https://libretranslate.com/translate"`
	TranslateAPIKey   string        `env:"MAPINLY_TRANSLATE_API_KEY"` // Empty disables machine translation
	TranslateTimeout  time.Duration `env:"MAPINLY_TRANSLATE_TIMEOUT" envDefault:"30s"`
	TranslateCacheTTL time.Duration `env:"MAPINLY_TRANSLATE_CACHE_TTL" envDefault:"1h"`

	// OAuth sign-in configuration
	OAuthClientID     string `env:"MAPINLY_OAUTH_CLIENT_ID"`
	OAuthClientSecret string `env:"MAPINLY_OAUTH_CLIENT_SECRET"`

	// Geocoding proxy configuration
	GeocodeEndpoint  string        `env:"MAPINLY_GEOCODE_ENDPOINT" envDefault:"https://nominatim.openstreetmap.org/search"`
	GeocodeCacheTTL  time.Duration `env:"MAPINLY_GEOCODE_CACHE_TTL" envDefault:"24h"`
	GeocodeUserAgent string        `env:"MAPINLY_GEOCODE_USER_AGENT" envDefault:"mapinly/1.0"`

	// Rate limiting
	RateLimitRPS   float64 `env:"MAPINLY_RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int     `env:"MAPINLY_RATE_LIMIT_BURST" envDefault:"20"`

	// Retention
	AuditRetentionDays int `env:"MAPINLY_AUDIT_RETENTION_DAYS" envDefault:"90"`
	ChatRetentionDays  int `env:"MAPINLY_CHAT_RETENTION_DAYS" envDefault:"30"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// TranslateEnabled returns true if a machine translation backend is
// configured. The API key alone decides; the endpoint always has a value.
func (c Config) TranslateEnabled() bool {
	return c.TranslateAPIKey != ""
}

// OAuthEnabled returns true if OAuth sign-in is configured.
func (c Config) OAuthEnabled() bool {
	return c.OAuthClientID != "" && c.OAuthClientSecret != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("MAPINLY_RATE_LIMIT_RPS must be positive, got %v", cfg.RateLimitRPS)
	}
	return cfg, nil
}
