// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/mapinly/mapinly/internal/model"
	"github.com/mapinly/mapinly/internal/store"
	"github.com/mapinly/mapinly/internal/translate"
	"github.com/mapinly/mapinly/internal/util"
)

// ForumService manages forums, their comments and their translations.
type ForumService struct {
	queries      *store.Queries
	translations *translate.Service
	log          *slog.Logger
}

// NewForumService creates a ForumService.
func NewForumService(q *store.Queries, t *translate.Service, log *slog.Logger) *ForumService {
	if log == nil {
		log = slog.Default()
	}
	return &ForumService{queries: q, translations: t, log: log}
}

// CreateForumInput holds the author-supplied fields for a new forum.
type CreateForumInput struct {
	Title            string
	Tagline          string
	ShortDescription string
	Locale           model.Locale
	EventID          sql.NullInt64
	AuthorID         int64
}

// Create stores a new forum and fans its translations out.
func (s *ForumService) Create(ctx context.Context, in CreateForumInput) (model.Forum, error) {
	slug, err := s.uniqueSlug(ctx, in.Title)
	if err != nil {
		return model.Forum{}, err
	}

	f, err := s.queries.CreateForum(ctx, store.CreateForumParams{
		Slug:             slug,
		Title:            in.Title,
		Tagline:          in.Tagline,
		ShortDescription: in.ShortDescription,
		SourceLocale:     model.NormalizeLocale(string(in.Locale)),
		EventID:          in.EventID,
		AuthorID:         in.AuthorID,
		Now:              time.Now(),
	})
	if err != nil {
		return model.Forum{}, fmt.Errorf("creating forum: %w", err)
	}

	s.translations.FanOutForum(ctx, f)
	s.log.Info("forum created", "id", f.ID, "slug", f.Slug, "category", model.AuditCategoryForum)
	return f, nil
}

// UpdateForumInput holds the mutable fields of a forum.
type UpdateForumInput struct {
	Title            string
	Tagline          string
	ShortDescription string
	Locale           model.Locale
}

// Update rewrites a forum and replaces its translation set.
func (s *ForumService) Update(ctx context.Context, id int64, in UpdateForumInput) (model.Forum, error) {
	f, err := s.queries.UpdateForum(ctx, store.UpdateForumParams{
		ID:               id,
		Title:            in.Title,
		Tagline:          in.Tagline,
		ShortDescription: in.ShortDescription,
		SourceLocale:     model.NormalizeLocale(string(in.Locale)),
		Now:              time.Now(),
	})
	if err != nil {
		return model.Forum{}, fmt.Errorf("updating forum: %w", err)
	}

	s.translations.FanOutForum(ctx, f)
	return f, nil
}

// GetBySlug returns one forum resolved into the viewer's locale.
func (s *ForumService) GetBySlug(ctx context.Context, slug string, viewer model.Locale) (model.Forum, translate.Source, error) {
	f, err := s.queries.GetForumBySlug(ctx, slug)
	if err != nil {
		return model.Forum{}, "", err
	}
	resolved, source := s.translations.ResolveForum(ctx, f, viewer)
	return resolved, source, nil
}

// List returns a page of forums resolved into the viewer's locale.
func (s *ForumService) List(ctx context.Context, limit, offset int64, viewer model.Locale) ([]model.Forum, []translate.Source, error) {
	forums, err := s.queries.ListForums(ctx, store.ListForumsParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, nil, fmt.Errorf("listing forums: %w", err)
	}
	resolved, sources := s.translations.ResolveForums(ctx, forums, viewer)
	return resolved, sources, nil
}

// Delete removes a forum; comments and their translations cascade.
func (s *ForumService) Delete(ctx context.Context, id int64) error {
	if err := s.queries.DeleteForum(ctx, id); err != nil {
		return fmt.Errorf("deleting forum: %w", err)
	}
	s.log.Info("forum deleted", "id", id, "category", model.AuditCategoryForum)
	return nil
}

// CreateComment stores a comment and fans its translation out.
func (s *ForumService) CreateComment(ctx context.Context, forumID, authorID int64, content string, locale model.Locale) (model.Comment, error) {
	c, err := s.queries.CreateComment(ctx, store.CreateCommentParams{
		ForumID:      forumID,
		AuthorID:     authorID,
		Content:      content,
		SourceLocale: model.NormalizeLocale(string(locale)),
		Now:          time.Now(),
	})
	if err != nil {
		return model.Comment{}, fmt.Errorf("creating comment: %w", err)
	}

	s.translations.FanOutComment(ctx, c)
	return c, nil
}

// ListComments returns a page of a forum's comments resolved into the
// viewer's locale.
func (s *ForumService) ListComments(ctx context.Context, forumID, limit, offset int64, viewer model.Locale) ([]model.Comment, []translate.Source, error) {
	comments, err := s.queries.ListComments(ctx, store.ListCommentsParams{
		ForumID: forumID, Limit: limit, Offset: offset,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("listing comments: %w", err)
	}
	resolved, sources := s.translations.ResolveComments(ctx, comments, viewer)
	return resolved, sources, nil
}

// DeleteComment removes a comment.
func (s *ForumService) DeleteComment(ctx context.Context, id int64) error {
	return s.queries.DeleteComment(ctx, id)
}

func (s *ForumService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := util.Slugify(title)
	if base == "" {
		base = "forum"
	}

	slug := base
	for i := 2; ; i++ {
		taken, err := s.queries.ForumSlugExists(ctx, slug)
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
