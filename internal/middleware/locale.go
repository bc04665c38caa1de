// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/mapinly/mapinly/internal/i18n"
	"github.com/mapinly/mapinly/internal/model"
	"github.com/mapinly/mapinly/internal/session"
)

// Locale creates middleware that resolves the viewer's display locale.
// Priority order:
//  1. Query parameter ?locale=xx (explicit switch, persisted to the session)
//  2. Session preference
//  3. Signed-in user's stored preference
//  4. Accept-Language header
//  5. Default locale
//
// Unsupported values at any step fall through to the next one, so a bad
// query parameter can never break a page.
func Locale(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := resolveLocale(sm, r)
			ctx := context.WithValue(r.Context(), ContextKeyLocale, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveLocale(sm *scs.SessionManager, r *http.Request) model.Locale {
	// 1. Explicit switch via query parameter.
	if q := r.URL.Query().Get("locale"); q != "" {
		if model.IsSupportedLocale(q) {
			locale := model.NormalizeLocale(q)
			sm.Put(r.Context(), session.KeyLocale, string(locale))
			return locale
		}
	}

	// 2. Session preference from an earlier switch.
	if s := sm.GetString(r.Context(), session.KeyLocale); s != "" && model.IsSupportedLocale(s) {
		return model.NormalizeLocale(s)
	}

	// 3. Stored account preference.
	if user, ok := GetUser(r); ok && model.IsSupportedLocale(string(user.PreferredLocale)) {
		return user.PreferredLocale
	}

	// 4. Browser preference.
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return i18n.MatchLanguage(accept)
	}

	return model.DefaultLocale
}

// GetLocale returns the resolved display locale from the request context.
func GetLocale(r *http.Request) model.Locale {
	if locale, ok := r.Context().Value(ContextKeyLocale).(model.Locale); ok {
		return locale
	}
	return model.DefaultLocale
}
