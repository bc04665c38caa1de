// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mapinly/mapinly/internal/i18n"
	"github.com/mapinly/mapinly/internal/middleware"
	"github.com/mapinly/mapinly/internal/model"
	"github.com/mapinly/mapinly/internal/service"
	"github.com/mapinly/mapinly/internal/translate"
	"github.com/mapinly/mapinly/internal/util"
)

// eventRequest is the JSON body for creating or updating an event. The
// content fields are authored in the viewer's current locale.
type eventRequest struct {
	Title            string     `json:"title"`
	Tagline          string     `json:"tagline"`
	ShortDescription string     `json:"short_description"`
	StartsAt         time.Time  `json:"starts_at"`
	EndsAt           *time.Time `json:"ends_at"`
	Venue            string     `json:"venue"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	Capacity         int64      `json:"capacity"`
}

func (req *eventRequest) validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(req.Title) == "" {
		errs["title"] = "Title is required"
	}
	if req.StartsAt.IsZero() {
		errs["starts_at"] = "Start time is required"
	}
	if req.Capacity < 0 {
		errs["capacity"] = "Capacity must not be negative"
	}
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		errs["ends_at"] = "End time must not precede the start time"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// eventView is the JSON shape of an event resolved for a viewer.
type eventView struct {
	ID                int64      `json:"id"`
	Slug              string     `json:"slug"`
	Title             string     `json:"title"`
	Tagline           string     `json:"tagline"`
	ShortDescription  string     `json:"short_description"`
	SourceLocale      string     `json:"source_locale"`
	TranslationSource string     `json:"translation_source"`
	TranslationNotice string     `json:"translation_notice,omitempty"`
	StartsAt          time.Time  `json:"starts_at"`
	EndsAt            *time.Time `json:"ends_at,omitempty"`
	Venue             string     `json:"venue"`
	Latitude          *float64   `json:"latitude,omitempty"`
	Longitude         *float64   `json:"longitude,omitempty"`
	Capacity          int64      `json:"capacity"`
}

func newEventView(r *http.Request, e model.Event, source translate.Source) eventView {
	v := eventView{
		ID:                e.ID,
		Slug:              e.Slug,
		Title:             e.Title,
		Tagline:           e.Tagline,
		ShortDescription:  e.ShortDescription,
		SourceLocale:      string(e.SourceLocale),
		TranslationSource: string(source),
		TranslationNotice: translationNotice(r, source, e.SourceLocale),
		StartsAt:          e.StartsAt,
		Venue:             e.Venue,
		Capacity:          e.Capacity,
	}
	if e.EndsAt.Valid {
		t := e.EndsAt.Time
		v.EndsAt = &t
	}
	if e.Latitude.Valid {
		f := e.Latitude.Float64
		v.Latitude = &f
	}
	if e.Longitude.Valid {
		f := e.Longitude.Float64
		v.Longitude = &f
	}
	return v
}

// ListEvents returns a page of events in the viewer's locale.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset, page, perPage := parsePagination(r)
	locale := middleware.GetLocale(r)

	events, sources, err := h.events.List(r.Context(), limit, offset, locale)
	if err != nil {
		h.log.Error("listing events failed", "error", err)
		WriteInternalError(w, "Failed to list events")
		return
	}
	total, err := h.queries.CountEvents(r.Context())
	if err != nil {
		h.log.Error("counting events failed", "error", err)
		WriteInternalError(w, "Failed to list events")
		return
	}

	views := make([]eventView, len(events))
	for i, e := range events {
		views[i] = newEventView(r, e, sources[i])
	}
	WriteSuccess(w, views, &Meta{Total: total, Page: page, PerPage: perPage})
}

// GetEvent returns one event by slug in the viewer's locale.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug) {
		WriteNotFound(w, "Event not found")
		return
	}
	e, source, err := h.events.GetBySlug(r.Context(), slug, middleware.GetLocale(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Event not found")
			return
		}
		h.log.Error("getting event failed", "slug", slug, "error", err)
		WriteInternalError(w, "Failed to load event")
		return
	}
	WriteSuccess(w, newEventView(r, e, source), nil)
}

// CreateEvent stores a new event authored in the viewer's locale.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r)

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if errs := req.validate(); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	e, err := h.events.Create(r.Context(), service.CreateEventInput{
		Title:            req.Title,
		Tagline:          req.Tagline,
		ShortDescription: req.ShortDescription,
		Locale:           middleware.GetLocale(r),
		AuthorID:         user.ID,
		StartsAt:         req.StartsAt,
		EndsAt:           nullTime(req.EndsAt),
		Venue:            req.Venue,
		Latitude:         nullFloat(req.Latitude),
		Longitude:        nullFloat(req.Longitude),
		Capacity:         req.Capacity,
	})
	if err != nil {
		h.log.Error("creating event failed", "error", err)
		WriteInternalError(w, "Failed to create event")
		return
	}
	WriteCreated(w, newEventView(r, e, translate.SourceOriginal))
}

// UpdateEvent rewrites an event. Only the author may update it.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	e, ok := h.requireOwnEvent(w, r)
	if !ok {
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if errs := req.validate(); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	updated, err := h.events.Update(r.Context(), e.ID, service.UpdateEventInput{
		Title:            req.Title,
		Tagline:          req.Tagline,
		ShortDescription: req.ShortDescription,
		Locale:           middleware.GetLocale(r),
		StartsAt:         req.StartsAt,
		EndsAt:           nullTime(req.EndsAt),
		Venue:            req.Venue,
		Latitude:         nullFloat(req.Latitude),
		Longitude:        nullFloat(req.Longitude),
		Capacity:         req.Capacity,
	})
	if err != nil {
		h.log.Error("updating event failed", "id", e.ID, "error", err)
		WriteInternalError(w, "Failed to update event")
		return
	}
	WriteSuccess(w, newEventView(r, updated, translate.SourceOriginal), nil)
}

// DeleteEvent removes an event. Only the author may delete it.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	e, ok := h.requireOwnEvent(w, r)
	if !ok {
		return
	}
	if err := h.events.Delete(r.Context(), e.ID); err != nil {
		h.log.Error("deleting event failed", "id", e.ID, "error", err)
		WriteInternalError(w, "Failed to delete event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// registrationView is the JSON shape of a registration.
type registrationView struct {
	EventID          int64  `json:"event_id"`
	ConfirmationCode string `json:"confirmation_code"`
}

// RegisterForEvent signs the current user up for an event.
func (h *Handler) RegisterForEvent(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r)
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid event id")
		return
	}

	reg, err := h.events.Register(r.Context(), id, user.ID)
	switch {
	case errors.Is(err, service.ErrEventFull):
		WriteError(w, http.StatusConflict, "event_full",
			i18n.T(string(middleware.GetLocale(r)), "events.full"), nil)
		return
	case errors.Is(err, sql.ErrNoRows):
		WriteNotFound(w, "Event not found")
		return
	case err != nil:
		h.log.Error("registration failed", "event_id", id, "error", err)
		WriteInternalError(w, "Failed to register")
		return
	}
	WriteCreated(w, registrationView{EventID: reg.EventID, ConfirmationCode: reg.ConfirmationCode})
}

// UnregisterFromEvent cancels the current user's registration.
func (h *Handler) UnregisterFromEvent(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r)
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid event id")
		return
	}
	if err := h.events.Unregister(r.Context(), id, user.ID); err != nil {
		h.log.Error("unregister failed", "event_id", id, "error", err)
		WriteInternalError(w, "Failed to unregister")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EventAttendees returns the attendee count for an event.
func (h *Handler) EventAttendees(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid event id")
		return
	}
	n, err := h.events.AttendeeCount(r.Context(), id)
	if err != nil {
		h.log.Error("attendee count failed", "event_id", id, "error", err)
		WriteInternalError(w, "Failed to count attendees")
		return
	}
	WriteSuccess(w, map[string]int64{"attendees": n}, nil)
}

// requireOwnEvent loads the event from {id} and checks the current user
// authored it. On failure the response is already written.
func (h *Handler) requireOwnEvent(w http.ResponseWriter, r *http.Request) (model.Event, bool) {
	user, _ := middleware.GetUser(r)
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid event id")
		return model.Event{}, false
	}
	e, err := h.queries.GetEventByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Event not found")
			return model.Event{}, false
		}
		h.log.Error("loading event failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to load event")
		return model.Event{}, false
	}
	if e.AuthorID != user.ID {
		WriteForbidden(w, "Only the author may modify this event")
		return model.Event{}, false
	}
	return e, true
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
