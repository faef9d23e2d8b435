// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/rwols/gintonic-sub004/math32"
)

// Collider is a component with a collision volume, used by physics
// for world-space bounds. All colliders have [KindCollider].
type Collider interface {
	Component

	// WorldBounds returns the axis-aligned bounding box of the volume in
	// global coordinates.
	WorldBounds() math32.Box3

	// ContainsPoint returns whether the given global point is inside the volume.
	ContainsPoint(p math32.Vector3) bool
}

// BoxCollider is a [Collider] with an oriented box volume.
type BoxCollider struct {
	ComponentBase `copier:"-"`

	// Center is the center of the box in local coordinates.
	Center math32.Vector3

	// HalfExtents is half the size of the box along each local axis.
	HalfExtents math32.Vector3
}

func newBoxCollider(owner *Entity) *BoxCollider {
	bc := &BoxCollider{HalfExtents: math32.Vector3Scalar(0.5)}
	bc.Init(bc, KindCollider, owner)
	return bc
}

// Clone returns a copy of the box collider bound to newOwner.
func (bc *BoxCollider) Clone(newOwner *Entity) Component {
	nb := &BoxCollider{}
	cloneFields(nb, bc, newOwner)
	return nb
}

// LocalBounds returns the box in local coordinates.
func (bc *BoxCollider) LocalBounds() math32.Box3 {
	return math32.Box3{Min: bc.Center.Sub(bc.HalfExtents), Max: bc.Center.Add(bc.HalfExtents)}
}

// WorldBounds returns the axis-aligned box spanning the transformed local box.
func (bc *BoxCollider) WorldBounds() math32.Box3 {
	lb := bc.LocalBounds()
	t := bc.Transform()
	if t == nil {
		return lb
	}
	gm := t.GlobalMatrix()
	return lb.MulMatrix4(&gm)
}

// ContainsPoint returns whether the global point p is inside the oriented box.
func (bc *BoxCollider) ContainsPoint(p math32.Vector3) bool {
	t := bc.Transform()
	if t == nil {
		return bc.LocalBounds().ContainsPoint(p)
	}
	gm := t.GlobalMatrix()
	inv, ok := gm.InverseAffine()
	if !ok {
		return false
	}
	return bc.LocalBounds().ContainsPoint(p.MulMatrix4AsPoint(inv))
}

// Intersects returns whether the world bounds of c and other overlap.
func Intersects(c, other Collider) bool {
	return c.WorldBounds().IntersectsBox(other.WorldBounds())
}
