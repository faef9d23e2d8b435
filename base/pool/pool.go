// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pool provides a slot arena of timed objects that expire.
//
// Every slot is either alive or expired. Expired objects are dropped as
// soon as they expire and their slot is recycled by the next insert, so
// slot indices stay stable until [Pool.Shrink] compacts the arena.
// A Pool is not safe for concurrent use.
package pool

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"time"

	"github.com/rwols/gintonic-sub004/base/errors"
)

// Timed is an object that is updated every frame until it expires.
type Timed interface {

	// Update advances the object by dt and returns whether it has expired.
	Update(dt time.Duration) (expired bool)

	// OnExpire is called once, right after Update reports expiry.
	// Errors and panics are logged and otherwise ignored.
	OnExpire() error
}

// Pool holds [Timed] objects in index-stable slots.
type Pool[T Timed] struct {
	slots []slot[T]

	// expired holds the indices of expired slots in ascending order.
	expired []int

	// capacity is the maximum number of slots; 0 is unbounded.
	capacity int
}

type slot[T Timed] struct {
	obj   T
	alive bool
}

// New returns a new pool that holds at most capacity slots.
// A capacity <= 0 means the pool is unbounded.
func New[T Timed](capacity int) *Pool[T] {
	return &Pool[T]{capacity: max(capacity, 0)}
}

// Insert transfers ownership of obj to the pool and returns its slot index.
// The lowest expired slot is reused if there is one; otherwise a new slot
// is appended. A bounded pool without a free slot returns an error wrapping
// [errors.ErrAllocationFailure].
func (p *Pool[T]) Insert(obj T) (int, error) {
	if len(p.expired) > 0 {
		idx := p.expired[0]
		p.expired = p.expired[1:]
		p.slots[idx] = slot[T]{obj: obj, alive: true}
		return idx, nil
	}
	if p.capacity > 0 && len(p.slots) >= p.capacity {
		return -1, fmt.Errorf("pool: insert: all %d slots alive: %w", p.capacity, errors.ErrAllocationFailure)
	}
	p.slots = append(p.slots, slot[T]{obj: obj, alive: true})
	return len(p.slots) - 1, nil
}

// Update calls Update on every alive object. Objects that report expiry
// are notified through OnExpire, dropped, and their slot is marked expired.
// The order in which objects are updated is unspecified. Objects may be
// inserted from within Update or OnExpire; whether they are updated in
// the same call is unspecified.
func (p *Pool[T]) Update(dt time.Duration) {
	n := len(p.slots)
	for i := 0; i < n && i < len(p.slots); i++ {
		if !p.slots[i].alive {
			continue
		}
		obj := p.slots[i].obj
		if !obj.Update(dt) {
			continue
		}
		p.slots[i] = slot[T]{}
		p.markExpired(i)
		notify(obj, i)
	}
}

// notify calls OnExpire on obj, swallowing any error or panic.
func notify[T Timed](obj T, idx int) {
	defer func() {
		if err := errors.Recover(recover()); err != nil {
			slog.Warn("pool: expiration notification panicked", "slot", idx, "err", err)
		}
	}()
	if err := obj.OnExpire(); err != nil {
		slog.Warn("pool: expiration notification failed", "slot", idx, "err", err)
	}
}

func (p *Pool[T]) markExpired(idx int) {
	i, _ := slices.BinarySearch(p.expired, idx)
	p.expired = slices.Insert(p.expired, i, idx)
}

// Shrink removes all expired slots from the arena and returns how many
// were removed. Alive objects keep their relative order, but any slot
// index obtained before the call is invalid afterwards.
func (p *Pool[T]) Shrink() int {
	n := len(p.expired)
	if n == 0 {
		return 0
	}
	p.slots = slices.DeleteFunc(p.slots, func(s slot[T]) bool { return !s.alive })
	p.expired = p.expired[:0]
	slog.Debug("pool: shrunk", "removed", n, "slots", len(p.slots))
	return n
}

// Size returns the number of alive objects.
func (p *Pool[T]) Size() int {
	return len(p.slots) - len(p.expired)
}

// Slots returns the total number of slots, alive or expired.
func (p *Pool[T]) Slots() int {
	return len(p.slots)
}

// Expired returns the number of expired slots.
func (p *Pool[T]) Expired() int {
	return len(p.expired)
}

// Get returns the object in slot idx and whether it is alive.
func (p *Pool[T]) Get(idx int) (T, bool) {
	if idx < 0 || idx >= len(p.slots) || !p.slots[idx].alive {
		var zero T
		return zero, false
	}
	return p.slots[idx].obj, true
}

// All returns an iterator over the alive objects and their slot indices.
func (p *Pool[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range p.slots {
			if !p.slots[i].alive {
				continue
			}
			if !yield(i, p.slots[i].obj) {
				return
			}
		}
	}
}
