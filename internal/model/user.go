// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// User is the locally-persisted shadow of an externally-authenticated
// identity. OAuthSubject is the provider's stable subject claim; Mapinly
// never stores credentials.
type User struct {
	ID              int64     `json:"id"`
	OAuthSubject    string    `json:"-"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	PreferredLocale Locale    `json:"preferred_locale"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
