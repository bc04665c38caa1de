// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the background maintenance jobs: translation
// repair and retention pruning.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mapinly/mapinly/internal/model"
	"github.com/mapinly/mapinly/internal/store"
	"github.com/mapinly/mapinly/internal/translate"
)

// repairBatchSize bounds how much content one repair pass re-translates,
// so a large backlog drains over several runs instead of hammering the
// translation backend.
const repairBatchSize = 50

// Config holds the scheduler knobs.
type Config struct {
	// AuditRetentionDays prunes audit entries older than this. Zero
	// disables pruning.
	AuditRetentionDays int

	// ChatRetentionDays prunes chat messages older than this. Zero
	// disables pruning.
	ChatRetentionDays int
}

// Scheduler runs periodic maintenance jobs.
type Scheduler struct {
	queries      *store.Queries
	translations *translate.Service
	cfg          Config
	cron         *cron.Cron
	log          *slog.Logger
}

// New creates a scheduler. translations may be nil when machine
// translation is disabled; the repair job is then skipped.
func New(db *sql.DB, translations *translate.Service, cfg Config, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		queries:      store.New(db),
		translations: translations,
		cfg:          cfg,
		cron:         cron.New(),
		log:          log,
	}
}

// Start registers the jobs and begins running them.
func (s *Scheduler) Start() error {
	if s.translations != nil {
		// Repair every 5 minutes.
		if _, err := s.cron.AddFunc("*/5 * * * *", func() {
			s.RepairTranslations(context.Background())
		}); err != nil {
			return err
		}
	}

	// Prune nightly.
	if _, err := s.cron.AddFunc("30 3 * * *", func() {
		s.Prune(context.Background())
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

// RepairTranslations re-runs the fan-out for content whose stored
// translation set is incomplete. Fan-out failures are already absorbed
// and logged downstream, so an unreachable backend just leaves the rows
// for the next pass.
func (s *Scheduler) RepairTranslations(ctx context.Context) {
	want := int64(len(model.SupportedLocales) - 1)

	events, err := s.queries.ListEventsMissingTranslations(ctx, want, repairBatchSize)
	if err != nil {
		s.log.Error("listing events for repair failed", "error", err)
	}
	for _, e := range events {
		s.translations.FanOutEvent(ctx, e)
	}

	forums, err := s.queries.ListForumsMissingTranslations(ctx, want, repairBatchSize)
	if err != nil {
		s.log.Error("listing forums for repair failed", "error", err)
	}
	for _, f := range forums {
		s.translations.FanOutForum(ctx, f)
	}

	comments, err := s.queries.ListCommentsMissingTranslations(ctx, want, repairBatchSize)
	if err != nil {
		s.log.Error("listing comments for repair failed", "error", err)
	}
	for _, c := range comments {
		s.translations.FanOutComment(ctx, c)
	}

	messages, err := s.queries.ListChatMessagesMissingTranslations(ctx, want, repairBatchSize)
	if err != nil {
		s.log.Error("listing chat messages for repair failed", "error", err)
	}
	for _, m := range messages {
		s.translations.FanOutChatMessage(ctx, m)
	}

	if n := len(events) + len(forums) + len(comments) + len(messages); n > 0 {
		s.log.Info("translation repair pass finished", "repaired", n, "category", model.AuditCategoryTranslate)
	}
}

// Prune deletes audit entries and chat messages past their retention
// window.
func (s *Scheduler) Prune(ctx context.Context) {
	now := time.Now()

	if d := s.cfg.AuditRetentionDays; d > 0 {
		cutoff := now.AddDate(0, 0, -d)
		if err := s.queries.DeleteOldAuditEntries(ctx, cutoff); err != nil {
			s.log.Error("pruning audit entries failed", "error", err)
		}
	}

	if d := s.cfg.ChatRetentionDays; d > 0 {
		cutoff := now.AddDate(0, 0, -d)
		if err := s.queries.DeleteOldChatMessages(ctx, cutoff); err != nil {
			s.log.Error("pruning chat messages failed", "error", err)
		}
	}
}
