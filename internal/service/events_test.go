// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/mapinly/mapinly/internal/model"
	"github.com/mapinly/mapinly/internal/store"
	"github.com/mapinly/mapinly/internal/translate"
)

// prefixLocalizer prefixes texts with the target locale.
type prefixLocalizer struct{}

func (prefixLocalizer) Localize(_ context.Context, texts []string, _, to model.Locale) ([]string, error) {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = fmt.Sprintf("[%s] %s", to, t)
	}
	return out, nil
}

type testEnv struct {
	queries      *store.Queries
	translations *translate.Service
	events       *EventService
	forums       *ForumService
	chat         *ChatService
	eventStore   *store.TranslationStore
}

func newTestEnv(t *testing.T) (*testEnv, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "mapinly-svc-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	adapter := translate.NewAdapter(prefixLocalizer{}, time.Second, nil)
	eventTS := store.NewEventTranslationStore(db)
	ts := translate.NewService(adapter,
		eventTS,
		store.NewForumTranslationStore(db),
		store.NewCommentTranslationStore(db),
		store.NewChatMessageTranslationStore(db),
		nil)

	q := store.New(db)
	env := &testEnv{
		queries:      q,
		translations: ts,
		events:       NewEventService(q, ts, nil),
		forums:       NewForumService(q, ts, nil),
		chat:         NewChatService(q, ts, nil),
		eventStore:   eventTS,
	}
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return env, cleanup
}

func (e *testEnv) user(t *testing.T, subject string) model.User {
	t.Helper()
	u, err := e.queries.UpsertUserBySubject(context.Background(), store.UpsertUserParams{
		OAuthSubject:    subject,
		Email:           subject + "@example.com",
		Name:            subject,
		PreferredLocale: model.LocaleEN,
		Now:             time.Now(),
	})
	if err != nil {
		t.Fatalf("user %s: %v", subject, err)
	}
	return u
}

func TestCreateEventFansOutTranslations(t *testing.T) {
	env, cleanup := newTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	u := env.user(t, "author")

	e, err := env.events.Create(ctx, CreateEventInput{
		Title:            "Summer Picnic",
		Tagline:          "Food and games",
		ShortDescription: "A picnic in the park.",
		Locale:           model.LocaleEN,
		AuthorID:         u.ID,
		StartsAt:         time.Now().Add(24 * time.Hour),
		Venue:            "City Park",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.Slug != "summer-picnic" {
		t.Fatalf("slug = %q", e.Slug)
	}

	// Every target locale has a stored translation right after the write.
	for _, target := range model.TargetLocales(model.LocaleEN) {
		fs, ok := env.eventStore.Get(ctx, e.ID, target)
		if !ok {
			t.Fatalf("locale %s missing after create", target)
		}
		if want := fmt.Sprintf("[%s] Summer Picnic", target); fs[0].Value != want {
			t.Fatalf("locale %s title = %q, want %q", target, fs[0].Value, want)
		}
	}

	// A Spanish viewer sees the stored translation.
	got, source, err := env.events.GetBySlug(ctx, "summer-picnic", model.LocaleES)
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if source != translate.SourceTranslated || got.Title != "[es] Summer Picnic" {
		t.Fatalf("es view: %q source=%s", got.Title, source)
	}
}

func TestCreateEventSlugCollision(t *testing.T) {
	env, cleanup := newTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	u := env.user(t, "author")
	in := CreateEventInput{
		Title: "Game Night", Tagline: "t", ShortDescription: "d",
		Locale: model.LocaleEN, AuthorID: u.ID,
		StartsAt: time.Now(), Venue: "Hall",
	}

	e1, err := env.events.Create(ctx, in)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	e2, err := env.events.Create(ctx, in)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if e1.Slug != "game-night" || e2.Slug != "game-night-2" {
		t.Fatalf("slugs = %q, %q", e1.Slug, e2.Slug)
	}
}

func TestUpdateEventReplacesTranslations(t *testing.T) {
	env, cleanup := newTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	u := env.user(t, "author")
	e, err := env.events.Create(ctx, CreateEventInput{
		Title: "v1", Tagline: "t", ShortDescription: "d",
		Locale: model.LocaleEN, AuthorID: u.ID,
		StartsAt: time.Now(), Venue: "Hall",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := env.events.Update(ctx, e.ID, UpdateEventInput{
		Title: "v2", Tagline: "t", ShortDescription: "d",
		Locale: model.LocaleEN, StartsAt: e.StartsAt,
		Venue: e.Venue, Capacity: e.Capacity,
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	fs, ok := env.eventStore.Get(ctx, e.ID, model.LocaleDE)
	if !ok || fs[0].Value != "[de] v2" {
		t.Fatalf("de title after update = %+v ok=%v", fs, ok)
	}
}

func TestRegisterCapacity(t *testing.T) {
	env, cleanup := newTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	author := env.user(t, "author")
	e, err := env.events.Create(ctx, CreateEventInput{
		Title: "Tiny Workshop", Tagline: "t", ShortDescription: "d",
		Locale: model.LocaleEN, AuthorID: author.ID,
		StartsAt: time.Now().Add(time.Hour), Venue: "Room 1", Capacity: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	first := env.user(t, "first")
	second := env.user(t, "second")

	r1, err := env.events.Register(ctx, e.ID, first.ID)
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	if r1.ConfirmationCode == "" {
		t.Fatal("no confirmation code")
	}

	// Full for a new attendee.
	if _, err := env.events.Register(ctx, e.ID, second.ID); err != ErrEventFull {
		t.Fatalf("second register err = %v, want ErrEventFull", err)
	}

	// Re-registering the same attendee stays idempotent, not rejected.
	r2, err := env.events.Register(ctx, e.ID, first.ID)
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if r2.ID != r1.ID || r2.ConfirmationCode != r1.ConfirmationCode {
		t.Fatalf("re-register changed registration: %+v vs %+v", r1, r2)
	}

	if err := env.events.Unregister(ctx, e.ID, first.ID); err != nil {
		t.Fatalf("Unregister: %v", err)
	}
	if _, err := env.events.Register(ctx, e.ID, second.ID); err != nil {
		t.Fatalf("register after free seat: %v", err)
	}
}
