// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/mapinly/mapinly/internal/middleware"
	"github.com/mapinly/mapinly/internal/model"
	"github.com/mapinly/mapinly/internal/translate"
)

// chatPostRequest is the JSON body for posting a chat message. ClientID
// is optional; clients that retry over flaky connections send a UUID so
// the retry maps onto the original message.
type chatPostRequest struct {
	ClientID string `json:"client_id"`
	Content  string `json:"content"`
}

// chatMessageView is the JSON shape of a chat message resolved for a viewer.
type chatMessageView struct {
	ID                int64     `json:"id"`
	EventID           int64     `json:"event_id"`
	AuthorID          int64     `json:"author_id"`
	ClientID          string    `json:"client_id"`
	Content           string    `json:"content"`
	SourceLocale      string    `json:"source_locale"`
	TranslationSource string    `json:"translation_source"`
	TranslationNotice string    `json:"translation_notice,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func newChatMessageView(r *http.Request, m model.ChatMessage, source translate.Source) chatMessageView {
	return chatMessageView{
		ID:                m.ID,
		EventID:           m.EventID,
		AuthorID:          m.AuthorID,
		ClientID:          m.ClientID,
		Content:           m.Content,
		SourceLocale:      string(m.SourceLocale),
		TranslationSource: string(source),
		TranslationNotice: translationNotice(r, source, m.SourceLocale),
		CreatedAt:         m.CreatedAt,
	}
}

// ListChatMessages returns a page of an event's chat, oldest first, in the
// viewer's locale.
func (h *Handler) ListChatMessages(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid event id")
		return
	}
	limit, offset, page, perPage := parsePagination(r)

	messages, sources, err := h.chat.List(r.Context(), eventID, limit, offset, middleware.GetLocale(r))
	if err != nil {
		h.log.Error("listing chat failed", "event_id", eventID, "error", err)
		WriteInternalError(w, "Failed to list chat messages")
		return
	}

	views := make([]chatMessageView, len(messages))
	for i, m := range messages {
		views[i] = newChatMessageView(r, m, sources[i])
	}
	WriteSuccess(w, views, &Meta{Page: page, PerPage: perPage})
}

// PostChatMessage posts a chat message in the viewer's locale.
func (h *Handler) PostChatMessage(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r)
	eventID, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid event id")
		return
	}

	var req chatPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		WriteValidationError(w, map[string]string{"content": "Content is required"})
		return
	}

	m, err := h.chat.Post(r.Context(), eventID, user.ID, req.ClientID, req.Content, middleware.GetLocale(r))
	if err != nil {
		h.log.Error("posting chat message failed", "event_id", eventID, "error", err)
		WriteInternalError(w, "Failed to post message")
		return
	}
	WriteCreated(w, newChatMessageView(r, m, translate.SourceOriginal))
}
