// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Registration records one user's attendance at one event.
// ConfirmationCode is a UUID shown to the attendee at check-in.
type Registration struct {
	ID               int64     `json:"id"`
	EventID          int64     `json:"event_id"`
	UserID           int64     `json:"user_id"`
	ConfirmationCode string    `json:"confirmation_code"`
	CreatedAt        time.Time `json:"created_at"`
}
