// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package weakcache

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/rwols/gintonic-sub004/base/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type font struct {
	name   string
	gen    int
	glyphs []byte
}

func newFontCache() (*Cache[string, font], *int) {
	made := 0
	c := New(func(name string) (*font, error) {
		if name == "" {
			return nil, fmt.Errorf("empty font name")
		}
		made++
		return &font{name: name, gen: made, glyphs: make([]byte, 64)}, nil
	})
	return c, &made
}

// collect runs the garbage collector until no entry of c is live.
func collect[K comparable, T any](c *Cache[K, T]) {
	for i := 0; i < 10 && c.Live() > 0; i++ {
		runtime.GC()
	}
}

func TestRequestShares(t *testing.T) {
	c, made := newFontCache()
	f1, err := c.Request("mono")
	require.NoError(t, err)
	f2, err := c.Request("mono")
	require.NoError(t, err)
	assert.Same(t, f1, f2)
	assert.Equal(t, 1, *made)

	f3, err := c.Request("serif")
	require.NoError(t, err)
	assert.NotSame(t, f1, f3)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 2, c.Live())

	got, ok := c.Lookup("mono")
	assert.True(t, ok)
	assert.Same(t, f1, got)
	runtime.KeepAlive(f1)
	runtime.KeepAlive(f3)
}

func TestRemoveExpired(t *testing.T) {
	c, made := newFontCache()
	f, err := c.Request("mono")
	require.NoError(t, err)
	assert.Equal(t, 1, f.gen)
	f = nil

	collect(c)
	assert.Equal(t, 1, c.Len(), "expired entries persist until pruned")
	assert.Equal(t, 0, c.Live())
	_, ok := c.Lookup("mono")
	assert.False(t, ok)

	assert.Equal(t, 1, c.RemoveExpired())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.RemoveExpired())

	f, err = c.Request("mono")
	require.NoError(t, err)
	assert.Equal(t, 2, f.gen)
	assert.Equal(t, 2, *made)
	runtime.KeepAlive(f)
}

func TestRequestExpiredReplacesEntry(t *testing.T) {
	c, made := newFontCache()
	f, err := c.Request("mono")
	require.NoError(t, err)
	f = nil
	collect(c)

	f, err = c.Request("mono")
	require.NoError(t, err)
	assert.Equal(t, 2, f.gen)
	assert.Equal(t, 2, *made)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 0, c.RemoveExpired())
	runtime.KeepAlive(f)
}

func TestRequestFactoryError(t *testing.T) {
	c, _ := newFontCache()
	f, err := c.Request("")
	assert.Nil(t, f)
	assert.ErrorIs(t, err, errors.ErrAllocationFailure)
	assert.Equal(t, 0, c.Len())
}

func TestClear(t *testing.T) {
	c, made := newFontCache()
	f1, err := c.Request("mono")
	require.NoError(t, err)
	c.Clear()
	assert.Equal(t, 0, c.Len())
	f2, err := c.Request("mono")
	require.NoError(t, err)
	assert.NotSame(t, f1, f2)
	assert.Equal(t, 2, *made)
}
