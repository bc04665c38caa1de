// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mapinly/mapinly/internal/cache"
	"github.com/mapinly/mapinly/internal/model"
)

const defaultOnDemandTTL = time.Hour

type inflightCall struct {
	done   chan struct{}
	result string
}

// OnDemand serves ad-hoc translations of viewer-supplied text. Results are
// cached, and concurrent requests for the same text, source, and target
// share a single backend call.
type OnDemand struct {
	adapter *Adapter
	cache   cache.Cache
	ttl     time.Duration

	mu       sync.Mutex
	inflight map[string]*inflightCall
}

// NewOnDemand returns an on-demand translator caching results for ttl.
func NewOnDemand(adapter *Adapter, c cache.Cache, ttl time.Duration) *OnDemand {
	if ttl <= 0 {
		ttl = defaultOnDemandTTL
	}
	return &OnDemand{
		adapter:  adapter,
		cache:    c,
		ttl:      ttl,
		inflight: make(map[string]*inflightCall),
	}
}

func onDemandKey(text string, from, to model.Locale) string {
	return fmt.Sprintf("ondemand:%s:%s:%x", from, to, sha256.Sum256([]byte(text)))
}

// Translate returns text in the target locale. It never fails: blank text,
// identical locales, backend errors, and a cancelled context all yield the
// original text.
func (o *OnDemand) Translate(ctx context.Context, text string, from, to model.Locale) string {
	if from == to || strings.TrimSpace(text) == "" {
		return text
	}

	key := onDemandKey(text, from, to)
	if val, ok := o.cache.Get(ctx, key); ok {
		return string(val)
	}

	o.mu.Lock()
	if call, ok := o.inflight[key]; ok {
		o.mu.Unlock()
		select {
		case <-call.done:
			return call.result
		case <-ctx.Done():
			return text
		}
	}
	call := &inflightCall{done: make(chan struct{})}
	o.inflight[key] = call
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		delete(o.inflight, key)
		o.mu.Unlock()
		close(call.done)
	}()

	call.result = o.adapter.TranslateBatch(ctx, []string{text}, from, to)[0]
	o.cache.Set(ctx, key, []byte(call.result), o.ttl)
	return call.result
}
