// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"log/slog"

	"github.com/mapinly/mapinly/internal/model"
)

// Service wires the translation adapter to the per-entity stores. Writes
// fan out through it; reads resolve through it. Fan-out failures are
// logged and swallowed so a flaky backend never blocks a content write.
type Service struct {
	adapter  *Adapter
	events   Store
	forums   Store
	comments Store
	chat     Store
	log      *slog.Logger
}

// NewService returns a Service over the four entity stores.
func NewService(adapter *Adapter, events, forums, comments, chat Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		adapter:  adapter,
		events:   events,
		forums:   forums,
		comments: comments,
		chat:     chat,
		log:      log,
	}
}

// Adapter returns the underlying translation adapter.
func (s *Service) Adapter() *Adapter {
	return s.adapter
}

// EventFields returns an event's translatable fields.
func EventFields(e model.Event) FieldSet {
	return FieldSet{
		{Name: "title", Value: e.Title},
		{Name: "tagline", Value: e.Tagline},
		{Name: "short_description", Value: e.ShortDescription},
	}
}

// ForumFields returns a forum's translatable fields.
func ForumFields(f model.Forum) FieldSet {
	return FieldSet{
		{Name: "title", Value: f.Title},
		{Name: "tagline", Value: f.Tagline},
		{Name: "short_description", Value: f.ShortDescription},
	}
}

// CommentFields returns a comment's translatable field.
func CommentFields(c model.Comment) FieldSet {
	return FieldSet{{Name: "content", Value: c.Content}}
}

// ChatMessageFields returns a chat message's translatable field.
func ChatMessageFields(m model.ChatMessage) FieldSet {
	return FieldSet{{Name: "content", Value: m.Content}}
}

func (s *Service) fanOut(ctx context.Context, kind string, store Store, entityID int64, source model.Locale, fields FieldSet) {
	if err := FanOut(ctx, s.adapter, store, entityID, source, fields); err != nil {
		s.log.Error("translation fan-out failed",
			"kind", kind, "id", entityID, "source", source, "error", err)
	}
}

// FanOutEvent stores translations of an event in every target locale.
func (s *Service) FanOutEvent(ctx context.Context, e model.Event) {
	s.fanOut(ctx, "event", s.events, e.ID, e.SourceLocale, EventFields(e))
}

// FanOutForum stores translations of a forum in every target locale.
func (s *Service) FanOutForum(ctx context.Context, f model.Forum) {
	s.fanOut(ctx, "forum", s.forums, f.ID, f.SourceLocale, ForumFields(f))
}

// FanOutComment stores translations of a comment in every target locale.
func (s *Service) FanOutComment(ctx context.Context, c model.Comment) {
	s.fanOut(ctx, "comment", s.comments, c.ID, c.SourceLocale, CommentFields(c))
}

// FanOutChatMessage stores translations of a chat message in every target
// locale.
func (s *Service) FanOutChatMessage(ctx context.Context, m model.ChatMessage) {
	s.fanOut(ctx, "chat_message", s.chat, m.ID, m.SourceLocale, ChatMessageFields(m))
}

// ResolveEvent returns the event with its fields in the viewer's locale.
func (s *Service) ResolveEvent(ctx context.Context, e model.Event, viewer model.Locale) (model.Event, Source) {
	r := NewResolver(s.events).Resolve(ctx, e.ID, e.SourceLocale, EventFields(e), viewer)
	e.Title, e.Tagline, e.ShortDescription = r.Fields[0].Value, r.Fields[1].Value, r.Fields[2].Value
	return e, r.Source
}

// ResolveEvents resolves a page of events with one batched lookup.
func (s *Service) ResolveEvents(ctx context.Context, events []model.Event, viewer model.Locale) ([]model.Event, []Source) {
	items := make([]Item, len(events))
	for i, e := range events {
		items[i] = Item{EntityID: e.ID, Source: e.SourceLocale, Fields: EventFields(e)}
	}
	resolved := NewResolver(s.events).ResolveMany(ctx, items, viewer)
	sources := make([]Source, len(events))
	for i, r := range resolved {
		events[i].Title = r.Fields[0].Value
		events[i].Tagline = r.Fields[1].Value
		events[i].ShortDescription = r.Fields[2].Value
		sources[i] = r.Source
	}
	return events, sources
}

// ResolveForum returns the forum with its fields in the viewer's locale.
func (s *Service) ResolveForum(ctx context.Context, f model.Forum, viewer model.Locale) (model.Forum, Source) {
	r := NewResolver(s.forums).Resolve(ctx, f.ID, f.SourceLocale, ForumFields(f), viewer)
	f.Title, f.Tagline, f.ShortDescription = r.Fields[0].Value, r.Fields[1].Value, r.Fields[2].Value
	return f, r.Source
}

// ResolveForums resolves a page of forums with one batched lookup.
func (s *Service) ResolveForums(ctx context.Context, forums []model.Forum, viewer model.Locale) ([]model.Forum, []Source) {
	items := make([]Item, len(forums))
	for i, f := range forums {
		items[i] = Item{EntityID: f.ID, Source: f.SourceLocale, Fields: ForumFields(f)}
	}
	resolved := NewResolver(s.forums).ResolveMany(ctx, items, viewer)
	sources := make([]Source, len(forums))
	for i, r := range resolved {
		forums[i].Title = r.Fields[0].Value
		forums[i].Tagline = r.Fields[1].Value
		forums[i].ShortDescription = r.Fields[2].Value
		sources[i] = r.Source
	}
	return forums, sources
}

// ResolveComment returns the comment with its content in the viewer's
// locale.
func (s *Service) ResolveComment(ctx context.Context, c model.Comment, viewer model.Locale) (model.Comment, Source) {
	r := NewResolver(s.comments).Resolve(ctx, c.ID, c.SourceLocale, CommentFields(c), viewer)
	c.Content = r.Fields[0].Value
	return c, r.Source
}

// ResolveComments resolves a page of comments with one batched lookup.
func (s *Service) ResolveComments(ctx context.Context, comments []model.Comment, viewer model.Locale) ([]model.Comment, []Source) {
	items := make([]Item, len(comments))
	for i, c := range comments {
		items[i] = Item{EntityID: c.ID, Source: c.SourceLocale, Fields: CommentFields(c)}
	}
	resolved := NewResolver(s.comments).ResolveMany(ctx, items, viewer)
	sources := make([]Source, len(comments))
	for i, r := range resolved {
		comments[i].Content = r.Fields[0].Value
		sources[i] = r.Source
	}
	return comments, sources
}

// ResolveChatMessages resolves a page of chat messages with one batched
// lookup.
func (s *Service) ResolveChatMessages(ctx context.Context, messages []model.ChatMessage, viewer model.Locale) ([]model.ChatMessage, []Source) {
	items := make([]Item, len(messages))
	for i, m := range messages {
		items[i] = Item{EntityID: m.ID, Source: m.SourceLocale, Fields: ChatMessageFields(m)}
	}
	resolved := NewResolver(s.chat).ResolveMany(ctx, items, viewer)
	sources := make([]Source, len(messages))
	for i, r := range resolved {
		messages[i].Content = r.Fields[0].Value
		sources[i] = r.Source
	}
	return messages, sources
}
