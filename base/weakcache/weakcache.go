// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package weakcache provides a flyweight cache of shared instances keyed
// by identity, holding only weak references to them.
//
// The cache never keeps an instance alive by itself: once every caller
// has dropped its pointer and the garbage collector has reclaimed the
// instance, the entry is expired. Expired entries stay in the map until
// [Cache.RemoveExpired] is called. A Cache is not safe for concurrent use.
package weakcache

import (
	"fmt"
	"log/slog"
	"weak"

	"github.com/rwols/gintonic-sub004/base/errors"
)

// Cache maps keys to weakly held shared instances of T.
type Cache[K comparable, T any] struct {

	// factory constructs the instance for a key on a miss.
	factory func(key K) (*T, error)

	entries map[K]weak.Pointer[T]
}

// New returns a new empty cache that constructs missing instances with
// the given factory function.
func New[K comparable, T any](factory func(key K) (*T, error)) *Cache[K, T] {
	return &Cache[K, T]{
		factory: factory,
		entries: make(map[K]weak.Pointer[T]),
	}
}

// Request returns the shared instance for key. If there is no live
// instance for key, a new one is constructed with the factory and the
// entry for key is set to it. At most one live instance exists per key.
// A factory failure is returned wrapping [errors.ErrAllocationFailure]
// and leaves the cache unchanged.
func (c *Cache[K, T]) Request(key K) (*T, error) {
	if wp, ok := c.entries[key]; ok {
		if v := wp.Value(); v != nil {
			return v, nil
		}
	}
	v, err := c.factory(key)
	if err != nil {
		return nil, fmt.Errorf("weakcache: request %v: %w: %w", key, errors.ErrAllocationFailure, err)
	}
	if v == nil {
		return nil, fmt.Errorf("weakcache: request %v: %w: factory returned nil", key, errors.ErrAllocationFailure)
	}
	c.entries[key] = weak.Make(v)
	return v, nil
}

// Lookup returns the live instance for key, if any, without constructing one.
func (c *Cache[K, T]) Lookup(key K) (*T, bool) {
	wp, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	v := wp.Value()
	return v, v != nil
}

// RemoveExpired erases all entries whose instance has been reclaimed,
// and returns the number of entries removed.
func (c *Cache[K, T]) RemoveExpired() int {
	n := 0
	for k, wp := range c.entries {
		if wp.Value() == nil {
			delete(c.entries, k)
			n++
		}
	}
	if n > 0 {
		slog.Debug("weakcache: removed expired entries", "removed", n, "remaining", len(c.entries))
	}
	return n
}

// Len returns the number of entries, including expired ones.
func (c *Cache[K, T]) Len() int {
	return len(c.entries)
}

// Live returns the number of entries whose instance is still alive.
func (c *Cache[K, T]) Live() int {
	n := 0
	for _, wp := range c.entries {
		if wp.Value() != nil {
			n++
		}
	}
	return n
}

// Clear removes all entries. Instances that are still held stay valid
// for their holders, but a later [Cache.Request] constructs new ones.
func (c *Cache[K, T]) Clear() {
	clear(c.entries)
}
