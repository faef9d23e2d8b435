// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/rwols/gintonic-sub004/math32"
)

// Camera is the component defining a view onto the scene from the pose of
// its entity, looking down the entity's forward (-Z) axis.
type Camera struct {
	ComponentBase `copier:"-"`

	// Projection is the projection mode.
	Projection Projections

	// FieldOfView is the vertical field of view in radians, for perspective projection.
	FieldOfView float32

	// Near is the distance to the near clipping plane.
	Near float32

	// Far is the distance to the far clipping plane.
	Far float32

	// OrthoSize is half the height of the view volume, for orthographic projection.
	OrthoSize float32
}

func newCamera(owner *Entity) *Camera {
	c := &Camera{}
	c.Init(c, KindCamera, owner)
	c.Defaults()
	return c
}

// Defaults sets the default camera parameters: a 60 degree perspective
// view from 0.1 to 1000 units.
func (c *Camera) Defaults() {
	c.Projection = Perspective
	c.FieldOfView = math32.DegToRad(60)
	c.Near = 0.1
	c.Far = 1000
	c.OrthoSize = 5
}

// Clone returns a copy of the camera bound to newOwner.
func (c *Camera) Clone(newOwner *Entity) Component {
	nc := &Camera{}
	cloneFields(nc, c, newOwner)
	return nc
}

// ProjectionMatrix returns the projection matrix for the given
// aspect ratio (width / height).
func (c *Camera) ProjectionMatrix(aspect float32) math32.Matrix4 {
	m := math32.Matrix4{}
	if aspect <= 0 {
		aspect = 1
	}
	switch c.Projection {
	case Orthographic:
		h := c.OrthoSize
		w := h * aspect
		m.SetOrthographic(-w, w, h, -h, c.Near, c.Far)
	default:
		m.SetPerspective(c.FieldOfView, aspect, c.Near, c.Far)
	}
	return m
}

// ViewMatrix returns the matrix transforming global coordinates into
// camera coordinates, which is the inverse of the entity global matrix.
// A detached camera, or one with a degenerate pose, returns the identity.
func (c *Camera) ViewMatrix() math32.Matrix4 {
	t := c.Transform()
	if t == nil {
		return *math32.Identity4()
	}
	gm := t.GlobalMatrix()
	inv, _ := gm.InverseAffine()
	return *inv
}

// ViewProjection returns the projection matrix times the view matrix.
func (c *Camera) ViewProjection(aspect float32) math32.Matrix4 {
	pm := c.ProjectionMatrix(aspect)
	vm := c.ViewMatrix()
	return *pm.Mul(&vm)
}
