// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/mapinly/mapinly/internal/model"
)

const eventColumns = `id, slug, title, tagline, short_description, source_locale,
author_id, starts_at, ends_at, venue, latitude, longitude, capacity, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.Slug, &e.Title, &e.Tagline, &e.ShortDescription,
		&e.SourceLocale, &e.AuthorID, &e.StartsAt, &e.EndsAt, &e.Venue,
		&e.Latitude, &e.Longitude, &e.Capacity, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// CreateEventParams holds the fields for a new event row.
type CreateEventParams struct {
	Slug             string
	Title            string
	Tagline          string
	ShortDescription string
	SourceLocale     model.Locale
	AuthorID         int64
	StartsAt         time.Time
	EndsAt           sql.NullTime
	Venue            string
	Latitude         sql.NullFloat64
	Longitude        sql.NullFloat64
	Capacity         int64
	Now              time.Time
}

const createEvent = `
INSERT INTO events (slug, title, tagline, short_description, source_locale,
    author_id, starts_at, ends_at, venue, latitude, longitude, capacity, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + eventColumns

// CreateEvent inserts a new event and returns the stored row.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (model.Event, error) {
	row := q.db.QueryRowContext(ctx, createEvent,
		arg.Slug, arg.Title, arg.Tagline, arg.ShortDescription, arg.SourceLocale,
		arg.AuthorID, arg.StartsAt, arg.EndsAt, arg.Venue, arg.Latitude, arg.Longitude,
		arg.Capacity, arg.Now, arg.Now)
	return scanEvent(row)
}

// UpdateEventParams holds the mutable fields of an event.
type UpdateEventParams struct {
	ID               int64
	Title            string
	Tagline          string
	ShortDescription string
	SourceLocale     model.Locale
	StartsAt         time.Time
	EndsAt           sql.NullTime
	Venue            string
	Latitude         sql.NullFloat64
	Longitude        sql.NullFloat64
	Capacity         int64
	Now              time.Time
}

const updateEvent = `
UPDATE events SET title = ?, tagline = ?, short_description = ?, source_locale = ?,
    starts_at = ?, ends_at = ?, venue = ?, latitude = ?, longitude = ?, capacity = ?, updated_at = ?
WHERE id = ?
RETURNING ` + eventColumns

// UpdateEvent rewrites an event's content and schedule fields.
func (q *Queries) UpdateEvent(ctx context.Context, arg UpdateEventParams) (model.Event, error) {
	row := q.db.QueryRowContext(ctx, updateEvent,
		arg.Title, arg.Tagline, arg.ShortDescription, arg.SourceLocale,
		arg.StartsAt, arg.EndsAt, arg.Venue, arg.Latitude, arg.Longitude,
		arg.Capacity, arg.Now, arg.ID)
	return scanEvent(row)
}

const getEventBySlug = `SELECT ` + eventColumns + ` FROM events WHERE slug = ?`

// GetEventBySlug returns the event with the given slug.
func (q *Queries) GetEventBySlug(ctx context.Context, slug string) (model.Event, error) {
	return scanEvent(q.db.QueryRowContext(ctx, getEventBySlug, slug))
}

const getEventByID = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`

// GetEventByID returns the event with the given id.
func (q *Queries) GetEventByID(ctx context.Context, id int64) (model.Event, error) {
	return scanEvent(q.db.QueryRowContext(ctx, getEventByID, id))
}

// ListEventsParams controls event listing.
type ListEventsParams struct {
	Limit  int64
	Offset int64
}

const listEvents = `
SELECT ` + eventColumns + ` FROM events
ORDER BY starts_at ASC
LIMIT ? OFFSET ?
`

// ListEvents returns events ordered by start time.
func (q *Queries) ListEvents(ctx context.Context, arg ListEventsParams) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, listEvents, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

const countEvents = `SELECT COUNT(*) FROM events`

// CountEvents returns the total number of events.
func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countEvents).Scan(&n)
	return n, err
}

const deleteEvent = `DELETE FROM events WHERE id = ?`

// DeleteEvent removes an event. Translations, registrations and chat
// messages cascade at the schema level.
func (q *Queries) DeleteEvent(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteEvent, id)
	return err
}

const eventSlugExists = `SELECT EXISTS(SELECT 1 FROM events WHERE slug = ?)`

// EventSlugExists reports whether a slug is already taken.
func (q *Queries) EventSlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, eventSlugExists, slug).Scan(&exists)
	return exists, err
}
