// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/rwols/gintonic-sub004/scene"
)

// recorder records the visited names with their depth, and stops at stopAt.
type recorder struct {
	VisitorBase
	stopAt   string
	start    bool
	visited  []string
	finished int
}

func (r *recorder) OnStart() bool {
	r.VisitorBase.OnStart()
	return r.start
}

func (r *recorder) OnVisit(e *Entity) bool {
	r.visited = append(r.visited, strings.Repeat(".", r.Depth())+e.Name())
	return e.Name() != r.stopAt
}

func (r *recorder) OnFinish() {
	r.finished++
}

func TestWalkPreOrder(t *testing.T) {
	root, _, _, _ := newTree(t)
	r := &recorder{start: true}
	Walk(root, r)
	assert.Equal(t, []string{"root", ".a", "..c", ".b"}, r.visited)
	assert.Equal(t, 1, r.finished)
	assert.Equal(t, 0, r.Depth())
}

func TestWalkAbort(t *testing.T) {
	root, _, _, _ := newTree(t)
	r := &recorder{start: true, stopAt: "a"}
	Walk(root, r)
	assert.Equal(t, []string{"root", ".a"}, r.visited)
	assert.Equal(t, 1, r.finished)

	r = &recorder{start: true, stopAt: "c"}
	Walk(root, r)
	assert.Equal(t, []string{"root", ".a", "..c"}, r.visited)
	assert.Equal(t, 1, r.finished)
}

func TestWalkStartFalse(t *testing.T) {
	root, _, _, _ := newTree(t)
	r := &recorder{start: false}
	Walk(root, r)
	assert.Empty(t, r.visited)
	assert.Equal(t, 1, r.finished)
}

func TestWalkStaleRoot(t *testing.T) {
	root, a, _, _ := newTree(t)
	a.Destroy()
	r := &recorder{start: true}
	Walk(a, r)
	assert.Empty(t, r.visited)
	assert.Equal(t, 1, r.finished)

	Walk(nil, r)
	assert.Equal(t, 2, r.finished)

	r = &recorder{start: true}
	Walk(root, r)
	assert.Equal(t, []string{"root", ".b"}, r.visited)
}

func TestWalkSubtree(t *testing.T) {
	_, a, _, _ := newTree(t)
	var names []string
	WalkFunc(a, func(e *Entity) bool {
		names = append(names, e.Name())
		return true
	})
	assert.Equal(t, []string{"a", "c"}, names)
}

func TestCollectors(t *testing.T) {
	root, a, b, c := newTree(t)
	lib := NewLibrary(nil, nil)
	mesh, err := lib.Mesh("plane")
	require.NoError(t, err)

	ra, err := a.AddMeshRenderer(mesh, nil)
	require.NoError(t, err)
	rb, err := b.AddMeshRenderer(mesh, nil)
	require.NoError(t, err)
	rb.CastShadows = false
	rc, err := c.AddMeshRenderer(mesh, nil)
	require.NoError(t, err)
	_, err = root.AddMeshRenderer(nil, nil)
	require.NoError(t, err)

	sc := &ShadowCasterCollector{}
	Walk(root, sc)
	assert.Equal(t, []Renderer{ra, rc}, sc.Casters)

	require.NoError(t, rc.SetEnabled(false))
	Walk(root, sc)
	assert.Equal(t, []Renderer{ra}, sc.Casters)

	l1, err := root.AddLight(DirectionalLight)
	require.NoError(t, err)
	l2, err := c.AddLight(PointLight)
	require.NoError(t, err)
	lc := &LightCollector{}
	Walk(root, lc)
	assert.Equal(t, []*Light{l1, l2}, lc.Lights)

	cc := &CameraCollector{}
	Walk(root, cc)
	assert.Nil(t, cc.Camera)
	cb, err := b.AddCamera()
	require.NoError(t, err)
	ca, err := c.AddCamera()
	require.NoError(t, err)
	Walk(root, cc)
	assert.Equal(t, ca, cc.Camera)
	require.NoError(t, ca.SetEnabled(false))
	Walk(root, cc)
	assert.Equal(t, cb, cc.Camera)
}

func TestWalkChangedDuringVisit(t *testing.T) {
	root, a, b, c := newTree(t)
	var names []string
	visit := func(e *Entity) bool {
		names = append(names, e.Name())
		return true
	}

	// a destroys itself: its subtree is skipped, b is still reached
	WalkFunc(root, func(e *Entity) bool {
		if e == a {
			a.Destroy()
		}
		return visit(e)
	})
	assert.Equal(t, []string{"root", "a", "b"}, names)
	assert.True(t, c.IsDestroyed())

	// a removes its later sibling b before it is reached
	root, a, b, c = newTree(t)
	names = nil
	WalkFunc(root, func(e *Entity) bool {
		if e == a {
			require.NoError(t, root.RemoveChild(b))
		}
		return visit(e)
	})
	assert.Equal(t, []string{"root", "a", "c"}, names)

	// root destroys a grandchild before descending
	root, _, _, c = newTree(t)
	names = nil
	WalkFunc(root, func(e *Entity) bool {
		if e == root {
			c.Destroy()
		}
		return visit(e)
	})
	assert.Equal(t, []string{"root", "a", "b"}, names)
}
