// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mapinly/mapinly/internal/model"
	"github.com/mapinly/mapinly/internal/store"
	"github.com/mapinly/mapinly/internal/translate"
	"github.com/mapinly/mapinly/internal/util"
)

// ErrEventFull is returned when registering for an event at capacity.
var ErrEventFull = errors.New("event is at capacity")

// maxSlugAttempts bounds the search for a free slug suffix.
const maxSlugAttempts = 50

// EventService manages events, registrations and their translations.
type EventService struct {
	queries      *store.Queries
	translations *translate.Service
	log          *slog.Logger
}

// NewEventService creates an EventService.
func NewEventService(q *store.Queries, t *translate.Service, log *slog.Logger) *EventService {
	if log == nil {
		log = slog.Default()
	}
	return &EventService{queries: q, translations: t, log: log}
}

// CreateEventInput holds the author-supplied fields for a new event.
type CreateEventInput struct {
	Title            string
	Tagline          string
	ShortDescription string
	Locale           model.Locale
	AuthorID         int64
	StartsAt         time.Time
	EndsAt           sql.NullTime
	Venue            string
	Latitude         sql.NullFloat64
	Longitude        sql.NullFloat64
	Capacity         int64
}

// Create stores a new event and fans its translations out to every target
// locale before returning. A failed fan-out is logged, not surfaced; the
// missing translations are repaired by the scheduler.
func (s *EventService) Create(ctx context.Context, in CreateEventInput) (model.Event, error) {
	slug, err := s.uniqueSlug(ctx, in.Title)
	if err != nil {
		return model.Event{}, err
	}

	e, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Slug:             slug,
		Title:            in.Title,
		Tagline:          in.Tagline,
		ShortDescription: in.ShortDescription,
		SourceLocale:     model.NormalizeLocale(string(in.Locale)),
		AuthorID:         in.AuthorID,
		StartsAt:         in.StartsAt,
		EndsAt:           in.EndsAt,
		Venue:            in.Venue,
		Latitude:         in.Latitude,
		Longitude:        in.Longitude,
		Capacity:         in.Capacity,
		Now:              time.Now(),
	})
	if err != nil {
		return model.Event{}, fmt.Errorf("creating event: %w", err)
	}

	s.translations.FanOutEvent(ctx, e)
	s.log.Info("event created", "id", e.ID, "slug", e.Slug, "category", model.AuditCategoryEvent)
	return e, nil
}

// UpdateEventInput holds the mutable fields of an event.
type UpdateEventInput struct {
	Title            string
	Tagline          string
	ShortDescription string
	Locale           model.Locale
	StartsAt         time.Time
	EndsAt           sql.NullTime
	Venue            string
	Latitude         sql.NullFloat64
	Longitude        sql.NullFloat64
	Capacity         int64
}

// Update rewrites an event and replaces its whole translation set, so no
// stale locale version of the previous revision survives.
func (s *EventService) Update(ctx context.Context, id int64, in UpdateEventInput) (model.Event, error) {
	e, err := s.queries.UpdateEvent(ctx, store.UpdateEventParams{
		ID:               id,
		Title:            in.Title,
		Tagline:          in.Tagline,
		ShortDescription: in.ShortDescription,
		SourceLocale:     model.NormalizeLocale(string(in.Locale)),
		StartsAt:         in.StartsAt,
		EndsAt:           in.EndsAt,
		Venue:            in.Venue,
		Latitude:         in.Latitude,
		Longitude:        in.Longitude,
		Capacity:         in.Capacity,
		Now:              time.Now(),
	})
	if err != nil {
		return model.Event{}, fmt.Errorf("updating event: %w", err)
	}

	s.translations.FanOutEvent(ctx, e)
	return e, nil
}

// GetBySlug returns one event resolved into the viewer's locale.
func (s *EventService) GetBySlug(ctx context.Context, slug string, viewer model.Locale) (model.Event, translate.Source, error) {
	e, err := s.queries.GetEventBySlug(ctx, slug)
	if err != nil {
		return model.Event{}, "", err
	}
	resolved, source := s.translations.ResolveEvent(ctx, e, viewer)
	return resolved, source, nil
}

// List returns a page of events resolved into the viewer's locale.
func (s *EventService) List(ctx context.Context, limit, offset int64, viewer model.Locale) ([]model.Event, []translate.Source, error) {
	events, err := s.queries.ListEvents(ctx, store.ListEventsParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, nil, fmt.Errorf("listing events: %w", err)
	}
	resolved, sources := s.translations.ResolveEvents(ctx, events, viewer)
	return resolved, sources, nil
}

// Delete removes an event; translations, registrations and chat cascade.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	if err := s.queries.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	s.log.Info("event deleted", "id", id, "category", model.AuditCategoryEvent)
	return nil
}

// Register signs a user up for an event, enforcing capacity. Registering
// twice returns the original registration.
func (s *EventService) Register(ctx context.Context, eventID, userID int64) (model.Registration, error) {
	e, err := s.queries.GetEventByID(ctx, eventID)
	if err != nil {
		return model.Registration{}, err
	}

	if e.HasCapacityLimit() {
		already, err := s.queries.IsRegistered(ctx, eventID, userID)
		if err != nil {
			return model.Registration{}, fmt.Errorf("checking registration: %w", err)
		}
		if !already {
			n, err := s.queries.CountRegistrations(ctx, eventID)
			if err != nil {
				return model.Registration{}, fmt.Errorf("counting registrations: %w", err)
			}
			if n >= e.Capacity {
				return model.Registration{}, ErrEventFull
			}
		}
	}

	reg, err := s.queries.CreateRegistration(ctx, store.CreateRegistrationParams{
		EventID:          eventID,
		UserID:           userID,
		ConfirmationCode: util.ConfirmationCode(),
		Now:              time.Now(),
	})
	if err != nil {
		return model.Registration{}, fmt.Errorf("creating registration: %w", err)
	}
	return reg, nil
}

// Unregister cancels a user's registration.
func (s *EventService) Unregister(ctx context.Context, eventID, userID int64) error {
	return s.queries.DeleteRegistration(ctx, eventID, userID)
}

// AttendeeCount returns the number of registered attendees.
func (s *EventService) AttendeeCount(ctx context.Context, eventID int64) (int64, error) {
	return s.queries.CountRegistrations(ctx, eventID)
}

// uniqueSlug derives a slug from the title, suffixing a counter while the
// base is taken.
func (s *EventService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := util.Slugify(title)
	if base == "" {
		base = "event"
	}

	slug := base
	for i := 2; ; i++ {
		taken, err := s.queries.EventSlugExists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("checking slug: %w", err)
		}
		if !taken {
			return slug, nil
		}
		if i > maxSlugAttempts {
			return "", fmt.Errorf("no free slug for %q", base)
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
