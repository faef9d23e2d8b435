// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/rwols/gintonic-sub004/scene"
	"github.com/rwols/gintonic-sub004/scene/testdata"
)

func TestUpdatePassOrder(t *testing.T) {
	root, a, b, c := newTree(t)
	var log []string
	for _, e := range []*Entity{root, a, b, c} {
		_, err := Attach(e, testdata.NewProbe(KindRenderer, e.Name(), &log))
		require.NoError(t, err)
	}
	_, err := Attach(a, testdata.NewProbe(KindCollider, "a-col", &log))
	require.NoError(t, err)

	// 5 probes and 4 transforms
	assert.Equal(t, 9, UpdatePass(root))
	assert.Equal(t, []string{
		"root.Update", "a-col.Update", "a.Update", "c.Update", "b.Update",
		"root.LateUpdate", "a-col.LateUpdate", "a.LateUpdate", "c.LateUpdate", "b.LateUpdate",
	}, log)
}

func TestUpdatePassSkipsDisabled(t *testing.T) {
	root, a, b, _ := newTree(t)
	var log []string
	pa, err := Attach(a, testdata.NewProbe(KindRenderer, "a", &log))
	require.NoError(t, err)
	pb, err := Attach(b, testdata.NewProbe(KindRenderer, "b", &log))
	require.NoError(t, err)
	require.NoError(t, pb.SetEnabled(false))
	log = nil

	// disabled components are not collected
	UpdatePass(root)
	assert.Equal(t, []string{"a.Update", "a.LateUpdate"}, log)

	// a disables b during Update: b was collected but skips both hooks
	require.NoError(t, pb.SetEnabled(true))
	pa.OnUpdate = func() {
		pa.OnUpdate = nil
		assert.NoError(t, pb.SetEnabled(false))
	}
	log = nil
	UpdatePass(root)
	assert.Equal(t, []string{"a.Update", "b.OnDisable", "a.LateUpdate"}, log)

	// a destroys b during Update
	require.NoError(t, pb.SetEnabled(true))
	pa.OnUpdate = func() { b.Destroy() }
	log = nil
	UpdatePass(root)
	assert.Equal(t, []string{"a.Update", "b.OnDisable", "a.LateUpdate"}, log)
}

func TestUpdatePassNil(t *testing.T) {
	assert.Equal(t, 0, UpdatePass(nil))
}
