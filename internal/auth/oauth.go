// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth implements OAuth sign-in. Identity lives with the external
// provider; only a local shadow row keyed by the provider's subject claim
// is stored.
package auth

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/mapinly/mapinly/internal/model"
	"github.com/mapinly/mapinly/internal/session"
	"github.com/mapinly/mapinly/internal/store"
)

const (
	sessionKeyState = "oauth_state"
	userinfoURL     = "https://openidconnect.googleapis.com/v1/userinfo"
)

// OAuth handles the sign-in flow against the configured provider.
type OAuth struct {
	cfg     *oauth2.Config
	sm      *scs.SessionManager
	queries *store.Queries
	log     *slog.Logger
}

// New creates the OAuth flow handler. baseURL is the externally visible
// origin used to build the redirect URL.
func New(clientID, clientSecret, baseURL string, sm *scs.SessionManager, db *sql.DB, log *slog.Logger) *OAuth {
	if log == nil {
		log = slog.Default()
	}
	return &OAuth{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  baseURL + "/auth/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		sm:      sm,
		queries: store.New(db),
		log:     log,
	}
}

// Login starts the flow: store a state nonce in the session and redirect
// to the provider.
func (o *OAuth) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	o.sm.Put(r.Context(), sessionKeyState, state)
	http.Redirect(w, r, o.cfg.AuthCodeURL(state), http.StatusSeeOther)
}

// userinfo is the subset of OpenID Connect claims we consume.
type userinfo struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Locale  string `json:"locale"`
}

// Callback completes the flow: verify state, exchange the code, fetch the
// identity claims and upsert the local user.
func (o *OAuth) Callback(w http.ResponseWriter, r *http.Request) {
	state := o.sm.PopString(r.Context(), sessionKeyState)
	if state == "" || r.URL.Query().Get("state") != state {
		o.log.Warn("oauth callback with bad state", "category", model.AuditCategoryAuth)
		http.Error(w, "invalid state", http.StatusBadRequest)
		return
	}

	token, err := o.cfg.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		o.log.Error("oauth code exchange failed", "error", err, "category", model.AuditCategoryAuth)
		http.Error(w, "sign-in failed", http.StatusBadGateway)
		return
	}

	info, err := o.fetchUserinfo(r, token)
	if err != nil {
		o.log.Error("oauth userinfo fetch failed", "error", err, "category", model.AuditCategoryAuth)
		http.Error(w, "sign-in failed", http.StatusBadGateway)
		return
	}
	if info.Subject == "" {
		http.Error(w, "sign-in failed", http.StatusBadGateway)
		return
	}

	user, err := o.queries.UpsertUserBySubject(r.Context(), store.UpsertUserParams{
		OAuthSubject:    info.Subject,
		Email:           info.Email,
		Name:            info.Name,
		PreferredLocale: model.NormalizeLocale(info.Locale),
		Now:             time.Now(),
	})
	if err != nil {
		o.log.Error("user upsert failed", "error", err, "category", model.AuditCategoryAuth)
		http.Error(w, "sign-in failed", http.StatusInternalServerError)
		return
	}

	// Rotate the session token on privilege change.
	if err := o.sm.RenewToken(r.Context()); err != nil {
		o.log.Error("session renew failed", "error", err, "category", model.AuditCategoryAuth)
		http.Error(w, "sign-in failed", http.StatusInternalServerError)
		return
	}
	o.sm.Put(r.Context(), session.KeyUserID, user.ID)
	o.log.Info("user signed in", "user_id", user.ID)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the session.
func (o *OAuth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := o.sm.Destroy(r.Context()); err != nil {
		o.log.Error("session destroy failed", "error", err, "category", model.AuditCategoryAuth)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (o *OAuth) fetchUserinfo(r *http.Request, token *oauth2.Token) (userinfo, error) {
	var info userinfo

	client := o.cfg.Client(r.Context(), token)
	resp, err := client.Get(userinfoURL)
	if err != nil {
		return info, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return info, fmt.Errorf("userinfo returned %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return info, fmt.Errorf("read userinfo: %w", err)
	}
	if err := json.Unmarshal(data, &info); err != nil {
		return info, fmt.Errorf("decode userinfo: %w", err)
	}
	return info, nil
}
