// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mapinly/mapinly/internal/middleware"
	"github.com/mapinly/mapinly/internal/model"
	"github.com/mapinly/mapinly/internal/store"
	"github.com/mapinly/mapinly/internal/util"
)

// tagView is the JSON shape of a tag. Name is rendered in the viewer's
// locale through the on-demand translator; OriginalName keeps the
// authored form.
type tagView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
	Slug         string `json:"slug"`
	SourceLocale string `json:"source_locale"`
}

func (h *Handler) newTagView(r *http.Request, t model.Tag) tagView {
	name := t.Name
	if h.onDemand != nil {
		name = h.onDemand.Translate(r.Context(), t.Name, t.SourceLocale, middleware.GetLocale(r))
	}
	return tagView{
		ID:           t.ID,
		Name:         name,
		OriginalName: t.Name,
		Slug:         t.Slug,
		SourceLocale: string(t.SourceLocale),
	}
}

func (h *Handler) newTagViews(r *http.Request, tags []model.Tag) []tagView {
	views := make([]tagView, len(tags))
	for i, t := range tags {
		views[i] = h.newTagView(r, t)
	}
	return views
}

// ListTags returns all tags with names in the viewer's locale.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.queries.ListTags(r.Context())
	if err != nil {
		h.log.Error("listing tags failed", "error", err)
		WriteInternalError(w, "Failed to list tags")
		return
	}
	WriteSuccess(w, h.newTagViews(r, tags), nil)
}

// tagRequest is the JSON body for creating a tag.
type tagRequest struct {
	Name string `json:"name"`
}

// CreateTag stores a tag authored in the viewer's locale. Duplicate names
// return the existing tag.
func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		WriteValidationError(w, map[string]string{"name": "Name is required"})
		return
	}

	t, err := h.queries.CreateTag(r.Context(), store.CreateTagParams{
		Name:         name,
		Slug:         util.Slugify(name),
		SourceLocale: middleware.GetLocale(r),
		Now:          time.Now(),
	})
	if err != nil {
		h.log.Error("creating tag failed", "error", err)
		WriteInternalError(w, "Failed to create tag")
		return
	}
	WriteCreated(w, h.newTagView(r, t))
}

// ListEventTags returns an event's tags with names in the viewer's locale.
func (h *Handler) ListEventTags(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid event id")
		return
	}
	tags, err := h.queries.ListEventTags(r.Context(), eventID)
	if err != nil {
		h.log.Error("listing event tags failed", "event_id", eventID, "error", err)
		WriteInternalError(w, "Failed to list tags")
		return
	}
	WriteSuccess(w, h.newTagViews(r, tags), nil)
}

// AttachTag attaches a tag to an event the current user authored.
func (h *Handler) AttachTag(w http.ResponseWriter, r *http.Request) {
	e, ok := h.requireOwnEvent(w, r)
	if !ok {
		return
	}
	tagID, err := strconv.ParseInt(chi.URLParam(r, "tagID"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid tag id")
		return
	}
	if err := h.queries.AttachTag(r.Context(), e.ID, tagID); err != nil {
		h.log.Error("attaching tag failed", "event_id", e.ID, "tag_id", tagID, "error", err)
		WriteInternalError(w, "Failed to attach tag")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DetachTag detaches a tag from an event the current user authored.
func (h *Handler) DetachTag(w http.ResponseWriter, r *http.Request) {
	e, ok := h.requireOwnEvent(w, r)
	if !ok {
		return
	}
	tagID, err := strconv.ParseInt(chi.URLParam(r, "tagID"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid tag id")
		return
	}
	if err := h.queries.DetachTag(r.Context(), e.ID, tagID); err != nil {
		h.log.Error("detaching tag failed", "event_id", e.ID, "tag_id", tagID, "error", err)
		WriteInternalError(w, "Failed to detach tag")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
