// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MemoryBackend(t *testing.T) {
	c, err := New(Config{Backend: "memory", MaxEntries: 10}, nil)
	require.NoError(t, err)
	require.NotNil(t, c)

	_, ok := c.(*MemoryCache)
	assert.True(t, ok)
	assert.NoError(t, c.Ping(context.Background()))
}

func TestNew_EmptyBackendDefaultsToMemory(t *testing.T) {
	c, err := New(Config{}, nil)
	require.NoError(t, err)

	_, ok := c.(*MemoryCache)
	assert.True(t, ok)
}

func TestNew_UnknownBackend(t *testing.T) {
	c, err := New(Config{Backend: "memcached"}, nil)
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "memcached")
}

func TestNew_MemoryBackendRoundTrip(t *testing.T) {
	c, err := New(Config{Backend: "memory", MaxEntries: 10}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	c.Set(ctx, "k", []byte("v"), time.Minute)

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
}
