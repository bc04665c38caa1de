// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/mapinly/mapinly/internal/model"
)

const registrationColumns = `id, event_id, user_id, confirmation_code, created_at`

// CreateRegistrationParams holds the fields for a new registration.
type CreateRegistrationParams struct {
	EventID          int64
	UserID           int64
	ConfirmationCode string
	Now              time.Time
}

const createRegistration = `
INSERT INTO registrations (event_id, user_id, confirmation_code, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(event_id, user_id) DO UPDATE SET event_id = excluded.event_id
RETURNING ` + registrationColumns

// CreateRegistration registers a user for an event. Registering twice is a
// no-op returning the existing row.
func (q *Queries) CreateRegistration(ctx context.Context, arg CreateRegistrationParams) (model.Registration, error) {
	row := q.db.QueryRowContext(ctx, createRegistration,
		arg.EventID, arg.UserID, arg.ConfirmationCode, arg.Now)
	var r model.Registration
	err := row.Scan(&r.ID, &r.EventID, &r.UserID, &r.ConfirmationCode, &r.CreatedAt)
	return r, err
}

const deleteRegistration = `DELETE FROM registrations WHERE event_id = ? AND user_id = ?`

// DeleteRegistration cancels a user's registration.
func (q *Queries) DeleteRegistration(ctx context.Context, eventID, userID int64) error {
	_, err := q.db.ExecContext(ctx, deleteRegistration, eventID, userID)
	return err
}

const countRegistrations = `SELECT COUNT(*) FROM registrations WHERE event_id = ?`

// CountRegistrations returns the number of attendees for an event.
func (q *Queries) CountRegistrations(ctx context.Context, eventID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countRegistrations, eventID).Scan(&n)
	return n, err
}

const isRegistered = `SELECT EXISTS(SELECT 1 FROM registrations WHERE event_id = ? AND user_id = ?)`

// IsRegistered reports whether a user is registered for an event.
func (q *Queries) IsRegistered(ctx context.Context, eventID, userID int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, isRegistered, eventID, userID).Scan(&exists)
	return exists, err
}
