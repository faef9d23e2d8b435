// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pool

import (
	"testing"
	"time"

	"github.com/rwols/gintonic-sub004/base/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// particle expires once its lifetime has elapsed.
type particle struct {
	name     string
	life     time.Duration
	expired  *[]string
	onExpire func() error
}

func (p *particle) Update(dt time.Duration) bool {
	p.life -= dt
	return p.life <= 0
}

func (p *particle) OnExpire() error {
	*p.expired = append(*p.expired, p.name)
	if p.onExpire != nil {
		return p.onExpire()
	}
	return nil
}

func TestInsertReusesExpiredSlot(t *testing.T) {
	var expired []string
	p := New[*particle](0)
	for i, life := range []time.Duration{time.Second, time.Millisecond, time.Second} {
		idx, err := p.Insert(&particle{name: string(rune('a' + i)), life: life, expired: &expired})
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}

	p.Update(10 * time.Millisecond)
	assert.Equal(t, []string{"b"}, expired)
	assert.Equal(t, 2, p.Size())
	assert.Equal(t, 3, p.Slots())
	assert.Equal(t, 1, p.Expired())
	_, ok := p.Get(1)
	assert.False(t, ok)

	idx, err := p.Insert(&particle{name: "d", life: time.Second, expired: &expired})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 3, p.Slots())
	assert.Equal(t, 3, p.Size())
	d, ok := p.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "d", d.name)
}

func TestInsertLowestExpiredFirst(t *testing.T) {
	var expired []string
	p := New[*particle](0)
	lives := []time.Duration{time.Second, time.Millisecond, time.Second, time.Millisecond}
	for i, life := range lives {
		_, err := p.Insert(&particle{name: string(rune('a' + i)), life: life, expired: &expired})
		require.NoError(t, err)
	}
	p.Update(time.Millisecond)
	assert.ElementsMatch(t, []string{"b", "d"}, expired)

	first, err := p.Insert(&particle{name: "e", life: time.Second, expired: &expired})
	require.NoError(t, err)
	second, err := p.Insert(&particle{name: "f", life: time.Second, expired: &expired})
	require.NoError(t, err)
	third, err := p.Insert(&particle{name: "g", life: time.Second, expired: &expired})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4}, []int{first, second, third})
}

func TestShrink(t *testing.T) {
	var expired []string
	p := New[*particle](0)
	for i, life := range []time.Duration{time.Millisecond, time.Second, time.Millisecond} {
		_, err := p.Insert(&particle{name: string(rune('a' + i)), life: life, expired: &expired})
		require.NoError(t, err)
	}
	p.Update(time.Millisecond)
	assert.Equal(t, 3, p.Slots())
	assert.Equal(t, 2, p.Shrink())
	assert.Equal(t, 1, p.Slots())
	assert.Equal(t, 1, p.Size())
	assert.Equal(t, 0, p.Shrink())

	b, ok := p.Get(0)
	assert.True(t, ok)
	assert.Equal(t, "b", b.name)

	idx, err := p.Insert(&particle{name: "c", life: time.Second, expired: &expired})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestNotificationFailuresSwallowed(t *testing.T) {
	var expired []string
	p := New[*particle](0)
	_, err := p.Insert(&particle{name: "panics", life: time.Millisecond, expired: &expired,
		onExpire: func() error { panic("listener bug") }})
	require.NoError(t, err)
	_, err = p.Insert(&particle{name: "fails", life: time.Millisecond, expired: &expired,
		onExpire: func() error { return errors.New("listener failed") }})
	require.NoError(t, err)
	_, err = p.Insert(&particle{name: "ok", life: time.Millisecond, expired: &expired})
	require.NoError(t, err)

	assert.NotPanics(t, func() { p.Update(time.Second) })
	assert.Equal(t, []string{"panics", "fails", "ok"}, expired)
	assert.Equal(t, 0, p.Size())
	assert.Equal(t, 3, p.Expired())
}

func TestCapacity(t *testing.T) {
	var expired []string
	p := New[*particle](2)
	_, err := p.Insert(&particle{name: "a", life: time.Millisecond, expired: &expired})
	require.NoError(t, err)
	_, err = p.Insert(&particle{name: "b", life: time.Second, expired: &expired})
	require.NoError(t, err)
	idx, err := p.Insert(&particle{name: "c", life: time.Second, expired: &expired})
	assert.ErrorIs(t, err, errors.ErrAllocationFailure)
	assert.Equal(t, -1, idx)

	p.Update(time.Millisecond)
	idx, err = p.Insert(&particle{name: "c", life: time.Second, expired: &expired})
	assert.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestAll(t *testing.T) {
	var expired []string
	p := New[*particle](0)
	for i, life := range []time.Duration{time.Second, time.Millisecond, time.Second} {
		_, err := p.Insert(&particle{name: string(rune('a' + i)), life: life, expired: &expired})
		require.NoError(t, err)
	}
	p.Update(time.Millisecond)
	var names []string
	var idxs []int
	for i, obj := range p.All() {
		idxs = append(idxs, i)
		names = append(names, obj.name)
	}
	assert.Equal(t, []int{0, 2}, idxs)
	assert.Equal(t, []string{"a", "c"}, names)
}

func TestInsertDuringUpdate(t *testing.T) {
	var expired []string
	p := New[*particle](0)
	_, err := p.Insert(&particle{name: "a", life: time.Millisecond, expired: &expired,
		onExpire: func() error {
			for _, name := range []string{"x", "y", "z"} {
				if _, err := p.Insert(&particle{name: name, life: time.Second, expired: &expired}); err != nil {
					return err
				}
			}
			return nil
		}})
	require.NoError(t, err)
	_, err = p.Insert(&particle{name: "b", life: time.Second, expired: &expired})
	require.NoError(t, err)

	p.Update(time.Millisecond)
	assert.Equal(t, []string{"a"}, expired)
	assert.Equal(t, 4, p.Size())
	assert.Equal(t, 4, p.Slots())
	assert.Equal(t, 0, p.Expired())
	x, ok := p.Get(0)
	require.True(t, ok)
	assert.Equal(t, "x", x.name)
}
