// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mapinly/mapinly/internal/model"
	"github.com/mapinly/mapinly/internal/store"
	"github.com/mapinly/mapinly/internal/translate"
)

// ChatService manages per-event chat messages and their translations.
type ChatService struct {
	queries      *store.Queries
	translations *translate.Service
	log          *slog.Logger
}

// NewChatService creates a ChatService.
func NewChatService(q *store.Queries, t *translate.Service, log *slog.Logger) *ChatService {
	if log == nil {
		log = slog.Default()
	}
	return &ChatService{queries: q, translations: t, log: log}
}

// Post stores a chat message and fans its translation out. clientID makes
// retried posts idempotent; when the client supplies none, one is
// generated and the post is treated as unique.
func (s *ChatService) Post(ctx context.Context, eventID, authorID int64, clientID, content string, locale model.Locale) (model.ChatMessage, error) {
	if clientID == "" {
		clientID = uuid.NewString()
	}

	m, err := s.queries.CreateChatMessage(ctx, store.CreateChatMessageParams{
		EventID:      eventID,
		AuthorID:     authorID,
		ClientID:     clientID,
		Content:      content,
		SourceLocale: model.NormalizeLocale(string(locale)),
		Now:          time.Now(),
	})
	if err != nil {
		return model.ChatMessage{}, fmt.Errorf("posting chat message: %w", err)
	}

	s.translations.FanOutChatMessage(ctx, m)
	return m, nil
}

// List returns a page of an event's chat messages resolved into the
// viewer's locale, oldest first.
func (s *ChatService) List(ctx context.Context, eventID, limit, offset int64, viewer model.Locale) ([]model.ChatMessage, []translate.Source, error) {
	messages, err := s.queries.ListChatMessages(ctx, store.ListChatMessagesParams{
		EventID: eventID, Limit: limit, Offset: offset,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("listing chat messages: %w", err)
	}
	resolved, sources := s.translations.ResolveChatMessages(ctx, messages, viewer)
	return resolved, sources, nil
}
