// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/mapinly/mapinly/internal/model"
	"github.com/mapinly/mapinly/internal/translate"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "mapinly-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

// testUser inserts a user and returns it.
func testUser(t *testing.T, q *Queries, subject string) model.User {
	t.Helper()
	u, err := q.UpsertUserBySubject(context.Background(), UpsertUserParams{
		OAuthSubject:    subject,
		Email:           subject + "@example.com",
		Name:            "Test User",
		PreferredLocale: model.LocaleEN,
		Now:             time.Now(),
	})
	if err != nil {
		t.Fatalf("UpsertUserBySubject: %v", err)
	}
	return u
}

func TestUpsertUserBySubject(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	u1 := testUser(t, q, "google-oauth2|123")

	// Same subject with fresh claims updates in place.
	u2, err := q.UpsertUserBySubject(ctx, UpsertUserParams{
		OAuthSubject:    "google-oauth2|123",
		Email:           "renamed@example.com",
		Name:            "Renamed",
		PreferredLocale: model.LocaleDE,
		Now:             time.Now(),
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if u2.ID != u1.ID {
		t.Fatalf("upsert created a new user: %d != %d", u2.ID, u1.ID)
	}
	if u2.Email != "renamed@example.com" || u2.Name != "Renamed" {
		t.Fatalf("claims not refreshed: %+v", u2)
	}
	// The stored locale preference survives re-login.
	if u2.PreferredLocale != model.LocaleEN {
		t.Fatalf("preferred locale overwritten on upsert: %s", u2.PreferredLocale)
	}
}

func TestUpdateUserLocale(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	u := testUser(t, q, "subj")

	if err := q.UpdateUserLocale(ctx, u.ID, model.LocaleZH, time.Now()); err != nil {
		t.Fatalf("UpdateUserLocale: %v", err)
	}
	got, err := q.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.PreferredLocale != model.LocaleZH {
		t.Fatalf("PreferredLocale = %s, want zh", got.PreferredLocale)
	}
}

func testEvent(t *testing.T, q *Queries, authorID int64, slug string) model.Event {
	t.Helper()
	e, err := q.CreateEvent(context.Background(), CreateEventParams{
		Slug:             slug,
		Title:            "Summer Picnic",
		Tagline:          "Food and games",
		ShortDescription: "A picnic in the park.",
		SourceLocale:     model.LocaleEN,
		AuthorID:         authorID,
		StartsAt:         time.Now().Add(24 * time.Hour),
		Venue:            "City Park",
		Capacity:         50,
		Now:              time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	return e
}

func TestEventCRUD(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	u := testUser(t, q, "author")
	e := testEvent(t, q, u.ID, "summer-picnic")

	got, err := q.GetEventBySlug(ctx, "summer-picnic")
	if err != nil {
		t.Fatalf("GetEventBySlug: %v", err)
	}
	if got.ID != e.ID || got.Title != "Summer Picnic" {
		t.Fatalf("unexpected event: %+v", got)
	}

	exists, err := q.EventSlugExists(ctx, "summer-picnic")
	if err != nil || !exists {
		t.Fatalf("EventSlugExists = %v, %v", exists, err)
	}

	updated, err := q.UpdateEvent(ctx, UpdateEventParams{
		ID:               e.ID,
		Title:            "Autumn Picnic",
		Tagline:          e.Tagline,
		ShortDescription: e.ShortDescription,
		SourceLocale:     e.SourceLocale,
		StartsAt:         e.StartsAt,
		EndsAt:           e.EndsAt,
		Venue:            e.Venue,
		Capacity:         e.Capacity,
		Now:              time.Now(),
	})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if updated.Title != "Autumn Picnic" {
		t.Fatalf("Title = %q", updated.Title)
	}

	if err := q.DeleteEvent(ctx, e.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if _, err := q.GetEventByID(ctx, e.ID); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows after delete, got %v", err)
	}
}

func TestCreateRegistrationIdempotent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	u := testUser(t, q, "attendee")
	e := testEvent(t, q, u.ID, "meetup")

	r1, err := q.CreateRegistration(ctx, CreateRegistrationParams{
		EventID: e.ID, UserID: u.ID, ConfirmationCode: "ABC123", Now: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateRegistration: %v", err)
	}
	r2, err := q.CreateRegistration(ctx, CreateRegistrationParams{
		EventID: e.ID, UserID: u.ID, ConfirmationCode: "XYZ789", Now: time.Now(),
	})
	if err != nil {
		t.Fatalf("second CreateRegistration: %v", err)
	}
	if r2.ID != r1.ID || r2.ConfirmationCode != "ABC123" {
		t.Fatalf("duplicate registration not idempotent: %+v vs %+v", r1, r2)
	}

	n, err := q.CountRegistrations(ctx, e.ID)
	if err != nil || n != 1 {
		t.Fatalf("CountRegistrations = %d, %v", n, err)
	}
}

func TestCreateChatMessageIdempotent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	u := testUser(t, q, "chatter")
	e := testEvent(t, q, u.ID, "party")

	m1, err := q.CreateChatMessage(ctx, CreateChatMessageParams{
		EventID: e.ID, AuthorID: u.ID, ClientID: "client-1",
		Content: "hello", SourceLocale: model.LocaleEN, Now: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateChatMessage: %v", err)
	}
	m2, err := q.CreateChatMessage(ctx, CreateChatMessageParams{
		EventID: e.ID, AuthorID: u.ID, ClientID: "client-1",
		Content: "hello again", SourceLocale: model.LocaleEN, Now: time.Now(),
	})
	if err != nil {
		t.Fatalf("repost: %v", err)
	}
	if m2.ID != m1.ID || m2.Content != "hello" {
		t.Fatalf("repost not idempotent: %+v vs %+v", m1, m2)
	}
}

func TestTagsAttachDetach(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	u := testUser(t, q, "tagger")
	e := testEvent(t, q, u.ID, "tagged-event")

	tag, err := q.CreateTag(ctx, CreateTagParams{
		Name: "music", Slug: "music", SourceLocale: model.LocaleEN, Now: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	// Duplicate names return the existing tag.
	dup, err := q.CreateTag(ctx, CreateTagParams{
		Name: "music", Slug: "music-2", SourceLocale: model.LocaleDE, Now: time.Now(),
	})
	if err != nil || dup.ID != tag.ID {
		t.Fatalf("duplicate tag: %+v, %v", dup, err)
	}

	if err := q.AttachTag(ctx, e.ID, tag.ID); err != nil {
		t.Fatalf("AttachTag: %v", err)
	}
	tags, err := q.ListEventTags(ctx, e.ID)
	if err != nil || len(tags) != 1 || tags[0].Name != "music" {
		t.Fatalf("ListEventTags = %+v, %v", tags, err)
	}

	if err := q.DetachTag(ctx, e.ID, tag.ID); err != nil {
		t.Fatalf("DetachTag: %v", err)
	}
	tags, err = q.ListEventTags(ctx, e.ID)
	if err != nil || len(tags) != 0 {
		t.Fatalf("tags after detach = %+v, %v", tags, err)
	}
}

func TestDeleteEventCascadesTranslations(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	u := testUser(t, q, "author")
	e := testEvent(t, q, u.ID, "doomed")

	ts := NewEventTranslationStore(db)
	err := ts.ReplaceAll(ctx, e.ID, []translate.Record{
		{EntityID: e.ID, Locale: model.LocaleDE, Fields: translate.FieldSet{
			{Name: "title", Value: "Titel"},
			{Name: "tagline", Value: "Slogan"},
			{Name: "short_description", Value: "Beschreibung"},
		}},
	})
	if err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	if err := q.DeleteEvent(ctx, e.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if _, ok := ts.Get(ctx, e.ID, model.LocaleDE); ok {
		t.Fatal("translations survived event deletion")
	}
}

func TestAuditLogRetention(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	old := time.Now().AddDate(0, 0, -120)
	if _, err := q.CreateAuditEntry(ctx, CreateAuditEntryParams{
		Level: "WARN", Category: model.AuditCategorySystem,
		Message: "stale entry", Metadata: "{}", CreatedAt: old,
	}); err != nil {
		t.Fatalf("old entry: %v", err)
	}
	if _, err := q.CreateAuditEntry(ctx, CreateAuditEntryParams{
		Level: "ERROR", Category: model.AuditCategoryTranslate,
		Message: "fresh entry", Metadata: "{}", CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("new entry: %v", err)
	}

	entries, err := q.ListAuditEntries(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListAuditEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].Message != "fresh entry" {
		t.Fatalf("newest first, got %q", entries[0].Message)
	}

	if err := q.DeleteOldAuditEntries(ctx, time.Now().AddDate(0, 0, -90)); err != nil {
		t.Fatalf("DeleteOldAuditEntries: %v", err)
	}
	entries, err = q.ListAuditEntries(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListAuditEntries after prune: %v", err)
	}
	if len(entries) != 1 || entries[0].Message != "fresh entry" {
		t.Fatalf("entries after prune = %+v", entries)
	}
}
