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

	"github.com/mapinly/mapinly/internal/middleware"
	"github.com/mapinly/mapinly/internal/model"
	"github.com/mapinly/mapinly/internal/service"
	"github.com/mapinly/mapinly/internal/translate"
	"github.com/mapinly/mapinly/internal/util"
)

// forumRequest is the JSON body for creating or updating a forum.
type forumRequest struct {
	Title            string `json:"title"`
	Tagline          string `json:"tagline"`
	ShortDescription string `json:"short_description"`
	EventID          *int64 `json:"event_id"`
}

func (req *forumRequest) validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(req.Title) == "" {
		errs["title"] = "Title is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// forumView is the JSON shape of a forum resolved for a viewer.
type forumView struct {
	ID                int64     `json:"id"`
	Slug              string    `json:"slug"`
	Title             string    `json:"title"`
	Tagline           string    `json:"tagline"`
	ShortDescription  string    `json:"short_description"`
	SourceLocale      string    `json:"source_locale"`
	TranslationSource string    `json:"translation_source"`
	TranslationNotice string    `json:"translation_notice,omitempty"`
	EventID           *int64    `json:"event_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func newForumView(r *http.Request, f model.Forum, source translate.Source) forumView {
	v := forumView{
		ID:                f.ID,
		Slug:              f.Slug,
		Title:             f.Title,
		Tagline:           f.Tagline,
		ShortDescription:  f.ShortDescription,
		SourceLocale:      string(f.SourceLocale),
		TranslationSource: string(source),
		TranslationNotice: translationNotice(r, source, f.SourceLocale),
		CreatedAt:         f.CreatedAt,
	}
	if f.EventID.Valid {
		id := f.EventID.Int64
		v.EventID = &id
	}
	return v
}

// ListForums returns a page of forums in the viewer's locale.
func (h *Handler) ListForums(w http.ResponseWriter, r *http.Request) {
	limit, offset, page, perPage := parsePagination(r)

	forums, sources, err := h.forums.List(r.Context(), limit, offset, middleware.GetLocale(r))
	if err != nil {
		h.log.Error("listing forums failed", "error", err)
		WriteInternalError(w, "Failed to list forums")
		return
	}
	total, err := h.queries.CountForums(r.Context())
	if err != nil {
		h.log.Error("counting forums failed", "error", err)
		WriteInternalError(w, "Failed to list forums")
		return
	}

	views := make([]forumView, len(forums))
	for i, f := range forums {
		views[i] = newForumView(r, f, sources[i])
	}
	WriteSuccess(w, views, &Meta{Total: total, Page: page, PerPage: perPage})
}

// GetForum returns one forum by slug in the viewer's locale.
func (h *Handler) GetForum(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug) {
		WriteNotFound(w, "Forum not found")
		return
	}
	f, source, err := h.forums.GetBySlug(r.Context(), slug, middleware.GetLocale(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Forum not found")
			return
		}
		h.log.Error("getting forum failed", "slug", slug, "error", err)
		WriteInternalError(w, "Failed to load forum")
		return
	}
	WriteSuccess(w, newForumView(r, f, source), nil)
}

// CreateForum stores a new forum authored in the viewer's locale.
func (h *Handler) CreateForum(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r)

	var req forumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if errs := req.validate(); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	var eventID sql.NullInt64
	if req.EventID != nil {
		if _, err := h.queries.GetEventByID(r.Context(), *req.EventID); err != nil {
			WriteValidationError(w, map[string]string{"event_id": "Event does not exist"})
			return
		}
		eventID = sql.NullInt64{Int64: *req.EventID, Valid: true}
	}

	f, err := h.forums.Create(r.Context(), service.CreateForumInput{
		Title:            req.Title,
		Tagline:          req.Tagline,
		ShortDescription: req.ShortDescription,
		Locale:           middleware.GetLocale(r),
		EventID:          eventID,
		AuthorID:         user.ID,
	})
	if err != nil {
		h.log.Error("creating forum failed", "error", err)
		WriteInternalError(w, "Failed to create forum")
		return
	}
	WriteCreated(w, newForumView(r, f, translate.SourceOriginal))
}

// UpdateForum rewrites a forum. Only the author may update it.
func (h *Handler) UpdateForum(w http.ResponseWriter, r *http.Request) {
	f, ok := h.requireOwnForum(w, r)
	if !ok {
		return
	}

	var req forumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if errs := req.validate(); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	updated, err := h.forums.Update(r.Context(), f.ID, service.UpdateForumInput{
		Title:            req.Title,
		Tagline:          req.Tagline,
		ShortDescription: req.ShortDescription,
		Locale:           middleware.GetLocale(r),
	})
	if err != nil {
		h.log.Error("updating forum failed", "id", f.ID, "error", err)
		WriteInternalError(w, "Failed to update forum")
		return
	}
	WriteSuccess(w, newForumView(r, updated, translate.SourceOriginal), nil)
}

// DeleteForum removes a forum. Only the author may delete it.
func (h *Handler) DeleteForum(w http.ResponseWriter, r *http.Request) {
	f, ok := h.requireOwnForum(w, r)
	if !ok {
		return
	}
	if err := h.forums.Delete(r.Context(), f.ID); err != nil {
		h.log.Error("deleting forum failed", "id", f.ID, "error", err)
		WriteInternalError(w, "Failed to delete forum")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// commentRequest is the JSON body for posting a comment.
type commentRequest struct {
	Content string `json:"content"`
}

// commentView is the JSON shape of a comment resolved for a viewer.
// ContentHTML carries the sanitized Markdown rendering of Content.
type commentView struct {
	ID                int64     `json:"id"`
	ForumID           int64     `json:"forum_id"`
	AuthorID          int64     `json:"author_id"`
	Content           string    `json:"content"`
	ContentHTML       string    `json:"content_html"`
	SourceLocale      string    `json:"source_locale"`
	TranslationSource string    `json:"translation_source"`
	TranslationNotice string    `json:"translation_notice,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func newCommentView(r *http.Request, c model.Comment, source translate.Source) commentView {
	html, err := service.RenderMarkdown(c.Content)
	if err != nil {
		html = ""
	}
	return commentView{
		ID:                c.ID,
		ForumID:           c.ForumID,
		AuthorID:          c.AuthorID,
		Content:           c.Content,
		ContentHTML:       html,
		SourceLocale:      string(c.SourceLocale),
		TranslationSource: string(source),
		TranslationNotice: translationNotice(r, source, c.SourceLocale),
		CreatedAt:         c.CreatedAt,
	}
}

// ListComments returns a page of a forum's comments in the viewer's locale.
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	forumID, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid forum id")
		return
	}
	limit, offset, page, perPage := parsePagination(r)

	comments, sources, err := h.forums.ListComments(r.Context(), forumID, limit, offset, middleware.GetLocale(r))
	if err != nil {
		h.log.Error("listing comments failed", "forum_id", forumID, "error", err)
		WriteInternalError(w, "Failed to list comments")
		return
	}
	total, err := h.queries.CountComments(r.Context(), forumID)
	if err != nil {
		h.log.Error("counting comments failed", "forum_id", forumID, "error", err)
		WriteInternalError(w, "Failed to list comments")
		return
	}

	views := make([]commentView, len(comments))
	for i, c := range comments {
		views[i] = newCommentView(r, c, sources[i])
	}
	WriteSuccess(w, views, &Meta{Total: total, Page: page, PerPage: perPage})
}

// CreateComment posts a comment in the viewer's locale.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r)
	forumID, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid forum id")
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		WriteValidationError(w, map[string]string{"content": "Content is required"})
		return
	}
	if _, err := h.queries.GetForumByID(r.Context(), forumID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Forum not found")
			return
		}
		h.log.Error("loading forum failed", "id", forumID, "error", err)
		WriteInternalError(w, "Failed to post comment")
		return
	}

	c, err := h.forums.CreateComment(r.Context(), forumID, user.ID, req.Content, middleware.GetLocale(r))
	if err != nil {
		h.log.Error("creating comment failed", "forum_id", forumID, "error", err)
		WriteInternalError(w, "Failed to post comment")
		return
	}
	WriteCreated(w, newCommentView(r, c, translate.SourceOriginal))
}

// DeleteComment removes a comment. Only its author may delete it.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r)
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid comment id")
		return
	}

	c, err := h.queries.GetCommentByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Comment not found")
			return
		}
		h.log.Error("loading comment failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to delete comment")
		return
	}
	if c.AuthorID != user.ID {
		WriteForbidden(w, "Only the author may delete this comment")
		return
	}

	if err := h.forums.DeleteComment(r.Context(), id); err != nil {
		h.log.Error("deleting comment failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to delete comment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireOwnForum loads the forum from {id} and checks the current user
// authored it. On failure the response is already written.
func (h *Handler) requireOwnForum(w http.ResponseWriter, r *http.Request) (model.Forum, bool) {
	user, _ := middleware.GetUser(r)
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid forum id")
		return model.Forum{}, false
	}
	f, err := h.queries.GetForumByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Forum not found")
			return model.Forum{}, false
		}
		h.log.Error("loading forum failed", "id", id, "error", err)
		WriteInternalError(w, "Failed to load forum")
		return model.Forum{}, false
	}
	if f.AuthorID != user.ID {
		WriteForbidden(w, "Only the author may modify this forum")
		return model.Forum{}, false
	}
	return f, true
}
