// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mapinly/mapinly/internal/middleware"
	"github.com/mapinly/mapinly/internal/model"
	"github.com/mapinly/mapinly/internal/session"
)

// Me returns the current user's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r)
	WriteSuccess(w, user, nil)
}

// localeRequest is the JSON body for changing the preferred locale.
type localeRequest struct {
	Locale string `json:"locale"`
}

// UpdateLocale stores the current user's preferred locale and switches the
// session to it, so the change takes effect on the next request.
func (h *Handler) UpdateLocale(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r)

	var req localeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if !model.IsSupportedLocale(req.Locale) {
		WriteValidationError(w, map[string]string{"locale": "Unsupported locale"})
		return
	}
	locale := model.Locale(req.Locale)

	if err := h.queries.UpdateUserLocale(r.Context(), user.ID, locale, time.Now()); err != nil {
		h.log.Error("updating locale failed", "user_id", user.ID, "error", err)
		WriteInternalError(w, "Failed to update locale")
		return
	}
	if h.sessions != nil {
		h.sessions.Put(r.Context(), session.KeyLocale, string(locale))
	}
	WriteSuccess(w, map[string]string{"preferred_locale": string(locale)}, nil)
}
