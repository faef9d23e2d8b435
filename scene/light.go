// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/rwols/gintonic-sub004/math32"
)

// Light is the component for a light source positioned and oriented by
// its entity.
type Light struct {
	ComponentBase `copier:"-"`

	// Type is the type of light.
	Type LightTypes

	// Color is the linear RGB color of the light.
	Color math32.Vector3

	// Intensity scales the color.
	Intensity float32

	// Range is the distance beyond which point and spot lights have no effect.
	Range float32

	// SpotAngle is the full cone angle in radians, for spot lights.
	SpotAngle float32

	// CastShadows is whether the light casts shadows.
	CastShadows bool
}

func newLight(owner *Entity) *Light {
	lt := &Light{}
	lt.Init(lt, KindLight, owner)
	lt.Defaults()
	return lt
}

// Defaults sets a white point light.
func (lt *Light) Defaults() {
	lt.Type = PointLight
	lt.Color = math32.Vector3Scalar(1)
	lt.Intensity = 1
	lt.Range = 10
	lt.SpotAngle = math32.DegToRad(45)
}

// Clone returns a copy of the light bound to newOwner.
func (lt *Light) Clone(newOwner *Entity) Component {
	nl := &Light{}
	cloneFields(nl, lt, newOwner)
	return nl
}

// Direction returns the global direction the light shines in,
// which is the forward axis of the entity.
func (lt *Light) Direction() math32.Vector3 {
	t := lt.Transform()
	if t == nil {
		return math32.Vec3(0, 0, -1)
	}
	return t.Forward()
}

// Radiance returns the color scaled by the intensity.
func (lt *Light) Radiance() math32.Vector3 {
	return lt.Color.MulScalar(lt.Intensity)
}
