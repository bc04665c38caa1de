// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mapinly/mapinly/internal/auth"
	"github.com/mapinly/mapinly/internal/cache"
	"github.com/mapinly/mapinly/internal/config"
	"github.com/mapinly/mapinly/internal/geocode"
	"github.com/mapinly/mapinly/internal/handler"
	"github.com/mapinly/mapinly/internal/i18n"
	"github.com/mapinly/mapinly/internal/logging"
	"github.com/mapinly/mapinly/internal/scheduler"
	"github.com/mapinly/mapinly/internal/service"
	"github.com/mapinly/mapinly/internal/session"
	"github.com/mapinly/mapinly/internal/store"
	"github.com/mapinly/mapinly/internal/translate"
	"github.com/mapinly/mapinly/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Mapinly - community events and forums\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MAPINLY_DB_PATH              SQLite database path (default: ./data/mapinly.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MAPINLY_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MAPINLY_ENV                  Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MAPINLY_SESSION_SECRET       Session and CSRF signing key\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MAPINLY_TRANSLATE_API_KEY    Machine translation API key (empty disables translation)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MAPINLY_OAUTH_CLIENT_ID      OAuth client ID (empty disables sign-in)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MAPINLY_CACHE_BACKEND        Cache backend: memory|redis (default: memory)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("mapinly %s\n", version.Version)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load a .env file if present (development).
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade the logger so WARN and ERROR records also land in the audit log.
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewAuditLogHandler(textHandler, db))
	slog.SetDefault(logger)

	appCache, err := cache.New(cache.Config{
		Backend:       cfg.CacheBackend,
		MaxEntries:    cfg.CacheMaxSize,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		RedisPrefix:   cfg.CachePrefix,
	}, logger)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}

	// Translation wiring. Without an API key the adapter runs with a nil
	// localizer: content is served in its source locale and every write
	// still records the fallback rows.
	var localizer translate.Localizer
	if cfg.TranslateEnabled() {
		localizer = translate.NewHTTPLocalizer(translate.HTTPLocalizerConfig{
			Endpoint: cfg.TranslateEndpoint,
			APIKey:   cfg.TranslateAPIKey,
			Timeout:  cfg.TranslateTimeout,
		})
		slog.Info("machine translation enabled", "endpoint", cfg.TranslateEndpoint)
	} else {
		slog.Info("machine translation disabled, serving source locale content")
	}
	adapter := translate.NewAdapter(localizer, cfg.TranslateTimeout, logger)
	translations := translate.NewService(adapter,
		store.NewEventTranslationStore(db),
		store.NewForumTranslationStore(db),
		store.NewCommentTranslationStore(db),
		store.NewChatMessageTranslationStore(db),
		logger)
	onDemand := translate.NewOnDemand(adapter, appCache, cfg.TranslateCacheTTL)

	queries := store.New(db)
	events := service.NewEventService(queries, translations, logger)
	forums := service.NewForumService(queries, translations, logger)
	chat := service.NewChatService(queries, translations, logger)

	geocoder := geocode.New(cfg.GeocodeEndpoint, cfg.GeocodeUserAgent, appCache, cfg.GeocodeCacheTTL, logger)

	sessionManager := session.New(db, cfg.IsDevelopment())

	var oauth *auth.OAuth
	if cfg.OAuthEnabled() {
		oauth = auth.New(cfg.OAuthClientID, cfg.OAuthClientSecret, cfg.BaseURL, sessionManager, db, logger)
		slog.Info("OAuth sign-in enabled")
	} else {
		slog.Warn("OAuth sign-in not configured, write operations unavailable")
	}

	h := handler.NewHandler(db, events, forums, chat, onDemand, geocoder, sessionManager, logger)
	router := handler.NewRouter(h, sessionManager, db, oauth, handler.RouterConfig{
		IsDevelopment:  cfg.IsDevelopment(),
		SessionSecret:  cfg.SessionSecret,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		RequestTimeout: 30 * time.Second,
	})

	sched := scheduler.New(db, translations, scheduler.Config{
		AuditRetentionDays: cfg.AuditRetentionDays,
		ChatRetentionDays:  cfg.ChatRetentionDays,
	}, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", version.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
