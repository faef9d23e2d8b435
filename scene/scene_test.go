// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwols/gintonic-sub004/base/errors"
	"github.com/rwols/gintonic-sub004/config"
	"github.com/rwols/gintonic-sub004/math32"
	. "github.com/rwols/gintonic-sub004/scene"
)

func TestNewScene(t *testing.T) {
	sc := NewScene(nil)
	assert.Equal(t, "root", sc.Root.Name())
	assert.Equal(t, uint64(0), sc.Frame())

	s := config.Default()
	s.Scene.RootName = "world"
	sc = NewScene(s)
	assert.Equal(t, "world", sc.Root.Name())
}

func TestSceneUpdate(t *testing.T) {
	sc := NewScene(nil)
	var mover *Entity
	require.NoError(t, sc.Mutate(func(root *Entity) error {
		mover = NewEntity("mover")
		if err := root.AddChild(mover); err != nil {
			return err
		}
		_, err := mover.AddBoxCollider()
		return err
	}))
	assert.False(t, mover.Transform().IsDirty())

	st := sc.Update(16 * time.Millisecond)
	assert.Equal(t, uint64(1), st.Frame)
	assert.Equal(t, 3, st.Components)
	assert.Equal(t, 2, st.Transforms)
	assert.Equal(t, uint64(1), sc.Frame())

	err := sc.Mutate(func(root *Entity) error {
		root.Transform().SetPosition(math32.Vec3(1, 2, 3))
		return errors.ErrNotAttached
	})
	assert.ErrorIs(t, err, errors.ErrNotAttached)
	assert.False(t, sc.Root.Transform().IsDirty())
	sc.Read(func(root *Entity) {
		assert.Equal(t, math32.Vec3(1, 2, 3), root.Child(0).Transform().GlobalPosition())
	})
}

func TestSceneTimers(t *testing.T) {
	sc := NewScene(nil)
	var fired []string
	_, err := sc.After(30*time.Millisecond, func(root *Entity) {
		fired = append(fired, root.Name())
	})
	require.NoError(t, err)
	done := 0
	_, err = sc.AddTimer(&Timer{
		Delay:  10 * time.Millisecond,
		Count:  3,
		OnDone: func() error { done++; return nil },
	})
	require.NoError(t, err)

	st := sc.Update(10 * time.Millisecond)
	assert.Equal(t, 2, st.Timers)
	sc.Update(10 * time.Millisecond)
	st = sc.Update(10 * time.Millisecond)
	assert.Equal(t, 0, st.Timers)
	assert.Equal(t, 1, done)
	assert.Equal(t, []string{"root"}, fired)
}

func TestTimerCatchesUp(t *testing.T) {
	calls := 0
	tm := &Timer{Delay: 10 * time.Millisecond, Count: 5, Fn: func() { calls++ }}
	assert.False(t, tm.Update(35*time.Millisecond))
	assert.Equal(t, 3, calls)
	assert.True(t, tm.Update(20*time.Millisecond))
	assert.Equal(t, 5, tm.Fired())

	tm = &Timer{Count: 2, Fn: func() { calls++ }}
	assert.False(t, tm.Update(0))
	assert.True(t, tm.Update(0))
	assert.NoError(t, tm.OnExpire())
}

func TestSceneMaintenance(t *testing.T) {
	s := config.Default()
	s.Cache.PruneEvery = 2
	s.Pool.ShrinkRatio = 0.5
	s.Pool.Capacity = 4
	sc := NewScene(s)

	for range 4 {
		_, err := sc.AddTimer(&Timer{})
		require.NoError(t, err)
	}
	_, err := sc.AddTimer(&Timer{})
	assert.ErrorIs(t, err, errors.ErrAllocationFailure)

	st := sc.Update(time.Millisecond)
	assert.Equal(t, 4, st.Shrunk)
	assert.Equal(t, 0, sc.Timers.Slots())
	assert.Equal(t, 0, st.Pruned)

	st = sc.Update(time.Millisecond)
	assert.Equal(t, 0, st.Shrunk)
}

func TestSceneConcurrentRead(t *testing.T) {
	sc := NewScene(nil)
	var leaf *Entity
	require.NoError(t, sc.Mutate(func(root *Entity) error {
		p := root
		for i := range 8 {
			e := NewEntity("n")
			e.Transform().SetPosition(math32.Vec3(1, 0, 0))
			if err := p.AddChild(e); err != nil {
				return err
			}
			p = e
			if i == 7 {
				leaf = e
			}
		}
		return nil
	}))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				sc.Read(func(root *Entity) {
					x := leaf.Transform().GlobalPosition().X
					assert.True(t, x == 8 || x == 9, "x = %v", x)
				})
			}
		}()
	}
	for i := range 50 {
		sc.Update(time.Millisecond)
		require.NoError(t, sc.Mutate(func(root *Entity) error {
			root.Transform().SetPosition(math32.Vec3(float32(i%2), 0, 0))
			return nil
		}))
	}
	close(stop)
	wg.Wait()
	assert.Equal(t, 0, sc.LockStats().ActiveReaders)
}
