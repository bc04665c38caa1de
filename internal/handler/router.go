// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mapinly/mapinly/internal/auth"
	"github.com/mapinly/mapinly/internal/middleware"
)

// RouterConfig carries the knobs the router needs from the application
// configuration.
type RouterConfig struct {
	IsDevelopment  bool
	SessionSecret  string
	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
}

// NewRouter assembles the middleware stack and all routes. oauth may be
// nil when sign-in is not configured; the auth routes then answer 503.
func NewRouter(h *Handler, sm *scs.SessionManager, db *sql.DB, oauth *auth.OAuth, cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.SecurityHeaders(cfg.IsDevelopment))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	r.Use(sm.LoadAndSave)
	r.Use(middleware.SkipCSRF("/auth/callback"))
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment)))
	r.Use(middleware.LoadUser(sm, db))
	r.Use(middleware.Locale(sm))

	r.Get("/healthz", h.Healthz)

	// Sign-in.
	if oauth != nil {
		r.Get("/auth/login", oauth.Login)
		r.Get("/auth/callback", oauth.Callback)
		r.Post("/auth/logout", oauth.Logout)
	} else {
		unavailable := func(w http.ResponseWriter, _ *http.Request) {
			WriteError(w, http.StatusServiceUnavailable, "unavailable", "Sign-in is not configured", nil)
		}
		r.Get("/auth/login", unavailable)
		r.Get("/auth/callback", unavailable)
		r.Post("/auth/logout", unavailable)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", h.Status)

		// Public reads.
		r.Get("/events", h.ListEvents)
		r.Get("/events/{slug}", h.GetEvent)
		r.Get("/events/{id:[0-9]+}/attendees", h.EventAttendees)
		r.Get("/events/{id:[0-9]+}/tags", h.ListEventTags)
		r.Get("/events/{id:[0-9]+}/chat", h.ListChatMessages)
		r.Get("/forums", h.ListForums)
		r.Get("/forums/{slug}", h.GetForum)
		r.Get("/forums/{id:[0-9]+}/comments", h.ListComments)
		r.Get("/tags", h.ListTags)
		r.Get("/geocode", h.Geocode)
		r.Post("/translate", h.Translate)

		// Authenticated writes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			r.Get("/me", h.Me)
			r.Put("/me/locale", h.UpdateLocale)

			r.Post("/events", h.CreateEvent)
			r.Put("/events/{id:[0-9]+}", h.UpdateEvent)
			r.Delete("/events/{id:[0-9]+}", h.DeleteEvent)
			r.Post("/events/{id:[0-9]+}/register", h.RegisterForEvent)
			r.Delete("/events/{id:[0-9]+}/register", h.UnregisterFromEvent)
			r.Put("/events/{id:[0-9]+}/tags/{tagID:[0-9]+}", h.AttachTag)
			r.Delete("/events/{id:[0-9]+}/tags/{tagID:[0-9]+}", h.DetachTag)
			r.Post("/events/{id:[0-9]+}/chat", h.PostChatMessage)

			r.Post("/forums", h.CreateForum)
			r.Put("/forums/{id:[0-9]+}", h.UpdateForum)
			r.Delete("/forums/{id:[0-9]+}", h.DeleteForum)
			r.Post("/forums/{id:[0-9]+}/comments", h.CreateComment)
			r.Delete("/comments/{id:[0-9]+}", h.DeleteComment)

			r.Post("/tags", h.CreateTag)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteNotFound(w, "Route not found")
	})

	return r
}
