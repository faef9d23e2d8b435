// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwols/gintonic-sub004/config"
)

func TestRun(t *testing.T) {
	res, err := Run(context.Background(), config.Default(), Options{
		Depth:   3,
		Branch:  2,
		Frames:  20,
		Readers: 2,
		DT:      time.Millisecond,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, res.Frames)
	// root, camera and 2 + 4 + 8 entities
	assert.Equal(t, 16, res.Entities)
	assert.Equal(t, 14, res.Casters)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Run(ctx, nil, Options{Depth: 1, Branch: 1, Frames: 100, Readers: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Frames)
}

func TestOpenSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	want := config.Default()
	want.Cache.PruneEvery = 5
	require.NoError(t, want.Save(path))
	s, p, err := openSettings(path)
	require.NoError(t, err)
	assert.Equal(t, path, p)
	assert.Equal(t, want, s)

	_, _, err = openSettings(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
