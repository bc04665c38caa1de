// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("default env is not development")
	}
	if cfg.TranslateEnabled() {
		t.Error("translation enabled without an endpoint")
	}
	if cfg.OAuthEnabled() {
		t.Error("oauth enabled without credentials")
	}
	if cfg.TranslateTimeout != 30*time.Second {
		t.Errorf("TranslateTimeout = %v", cfg.TranslateTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MAPINLY_SERVER_PORT", "9090")
	t.Setenv("MAPINLY_TRANSLATE_API_KEY", "secret")
	t.Setenv("MAPINLY_TRANSLATE_CACHE_TTL", "10m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != 9090 {
		t.Errorf("ServerPort = %d", cfg.ServerPort)
	}
	if !cfg.TranslateEnabled() {
		t.Error("translation not enabled")
	}
	if cfg.TranslateCacheTTL != 10*time.Minute {
		t.Errorf("TranslateCacheTTL = %v", cfg.TranslateCacheTTL)
	}
}

func TestLoadRejectsBadRateLimit(t *testing.T) {
	t.Setenv("MAPINLY_RATE_LIMIT_RPS", "-1")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative rate limit")
	}
}
