// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene provides the entity-component scene graph: entities
// arranged in a tree, each owning a [Transform] and at most one component
// of every other [Kind], with lazily propagated global poses, generic
// traversal through [Visitor], and a [Scene] that runs frame updates
// under a reader/writer lock.
package scene

import (
	"log/slog"
	"time"

	"github.com/rwols/gintonic-sub004/base/pool"
	"github.com/rwols/gintonic-sub004/base/rwlock"
	"github.com/rwols/gintonic-sub004/config"
)

// Scene is a root [Entity] together with the shared resources of its
// tree and the lock guarding it.
//
// The update goroutine calls [Scene.Update] once per frame and changes the
// tree only inside [Scene.Mutate]; other goroutines read the tree only
// inside [Scene.Read]. Both Update and Mutate leave every global pose
// computed, so readers never write to a transform cache.
type Scene struct {

	// Root is the root entity.
	Root *Entity

	// Library holds the shared meshes and materials.
	Library *Library

	// Timers are the pending timers, updated at the start of every frame.
	Timers *pool.Pool[*Timer]

	mu       rwlock.Mutex
	frame    uint64
	settings config.Settings
}

// UpdateStats are the statistics of one [Scene.Update].
type UpdateStats struct {

	// Frame is the number of the frame, starting at 1.
	Frame uint64

	// Components is the number of enabled components updated.
	Components int

	// Transforms is the number of transforms in the tree.
	Transforms int

	// Timers is the number of timers still pending.
	Timers int

	// Pruned is the number of expired library entries removed.
	Pruned int

	// Shrunk is the number of expired timer slots removed.
	Shrunk int
}

// NewScene returns a new scene with an empty root using the given
// settings; nil settings use [config.Default].
func NewScene(settings *config.Settings) *Scene {
	if settings == nil {
		settings = config.Default()
	}
	sc := &Scene{
		Root:     NewEntity(settings.Scene.RootName),
		Library:  NewLibrary(nil, nil),
		Timers:   pool.New[*Timer](settings.Pool.Capacity),
		settings: *settings,
	}
	settle(sc.Root)
	return sc
}

// Frame returns the number of frames updated so far.
func (sc *Scene) Frame() uint64 {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.frame
}

// SetSettings replaces the cache and pool maintenance settings.
// The pool capacity and root name only apply to new scenes.
func (sc *Scene) SetSettings(settings *config.Settings) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.settings = *settings
}

// Update runs one frame under the write lock: it advances the timers by
// dt, runs [UpdatePass] over the tree, computes every global pose, and
// does the periodic library and timer pool maintenance.
func (sc *Scene) Update(dt time.Duration) UpdateStats {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.frame++
	st := UpdateStats{Frame: sc.frame}
	sc.Timers.Update(dt)
	st.Components = UpdatePass(sc.Root)
	st.Transforms = settle(sc.Root)

	if pe := sc.settings.Cache.PruneEvery; pe > 0 && sc.frame%uint64(pe) == 0 {
		st.Pruned = sc.Library.Prune()
	}
	if sr := sc.settings.Pool.ShrinkRatio; sr > 0 && sc.Timers.Slots() > 0 &&
		float64(sc.Timers.Expired()) >= sr*float64(sc.Timers.Slots()) {
		st.Shrunk = sc.Timers.Shrink()
	}
	st.Timers = sc.Timers.Size()
	slog.Debug("scene: updated", "frame", st.Frame, "components", st.Components, "transforms", st.Transforms)
	return st
}

// Read calls fn with the root under the read lock. Many Read calls may
// run at the same time; fn must not change the tree.
func (sc *Scene) Read(fn func(root *Entity)) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	fn(sc.Root)
}

// Mutate calls fn with the root under the write lock, then computes every
// global pose before releasing it. It returns the error of fn.
// fn must not call other methods of the scene that lock it.
func (sc *Scene) Mutate(fn func(root *Entity) error) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	err := fn(sc.Root)
	settle(sc.Root)
	return err
}

// LockStats returns a snapshot of the scene lock state.
func (sc *Scene) LockStats() rwlock.Stats {
	return sc.mu.Stats()
}

// After schedules fn to be called once by the frame update in which at
// least d has elapsed, under the write lock. It returns the timer slot.
func (sc *Scene) After(d time.Duration, fn func(root *Entity)) (int, error) {
	return sc.AddTimer(&Timer{Delay: d, Fn: func() { fn(sc.Root) }})
}

// AddTimer schedules tm under the write lock and returns its slot.
// Code already running under the write lock, such as timer and Mutate
// functions, inserts into [Scene.Timers] directly instead.
func (sc *Scene) AddTimer(tm *Timer) (int, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.Timers.Insert(tm)
}

// Timer calls Fn every Delay of elapsed frame time, Count times in total,
// then expires and calls OnDone.
type Timer struct {

	// Delay is the time between calls.
	Delay time.Duration

	// Count is the number of calls; values below 1 mean 1.
	Count int

	// Fn is the function to call.
	Fn func()

	// OnDone is called after the last call, if set.
	OnDone func() error

	elapsed time.Duration
	fired   int
}

// Update advances the timer and calls Fn for every Delay that elapsed.
// A timer with a zero Delay calls Fn once per update.
func (tm *Timer) Update(dt time.Duration) bool {
	tm.elapsed += dt
	for tm.elapsed >= tm.Delay {
		tm.elapsed -= tm.Delay
		tm.fired++
		if tm.Fn != nil {
			tm.Fn()
		}
		if tm.fired >= max(tm.Count, 1) {
			return true
		}
		if tm.Delay <= 0 {
			break
		}
	}
	return false
}

// OnExpire calls OnDone.
func (tm *Timer) OnExpire() error {
	if tm.OnDone == nil {
		return nil
	}
	return tm.OnDone()
}

// Fired returns how many times Fn has been called.
func (tm *Timer) Fired() int {
	return tm.fired
}
