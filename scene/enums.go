// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "strconv"

// Kind is the closed set of component kinds. An [Entity] holds at most
// one component of each kind.
type Kind int32

const (
	// KindTransform is the [Transform] every entity has.
	KindTransform Kind = iota

	// KindCamera is a [Camera].
	KindCamera

	// KindLight is a [Light].
	KindLight

	// KindCollider is any [Collider], such as a [BoxCollider].
	KindCollider

	// KindRenderer is any [Renderer], such as a [MeshRenderer].
	KindRenderer

	// KindsN is the number of component kinds.
	KindsN
)

var kindNames = [...]string{"Transform", "Camera", "Light", "Collider", "Renderer"}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < 0 || k >= KindsN {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// IsValid returns whether k is one of the defined kinds.
func (k Kind) IsValid() bool {
	return k >= 0 && k < KindsN
}

// KindValues returns all defined kinds in order.
func KindValues() []Kind {
	ks := make([]Kind, KindsN)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

// Projections are the projection modes of a [Camera].
type Projections int32

const (
	// Perspective projects with a vertical field of view.
	Perspective Projections = iota

	// Orthographic projects parallel lines as parallel.
	Orthographic
)

// String returns the name of the projection mode.
func (p Projections) String() string {
	switch p {
	case Perspective:
		return "Perspective"
	case Orthographic:
		return "Orthographic"
	}
	return "Projections(" + strconv.Itoa(int(p)) + ")"
}

// LightTypes are the types of [Light].
type LightTypes int32

const (
	// PointLight emits in all directions from the entity position.
	PointLight LightTypes = iota

	// DirectionalLight emits along the entity forward axis from infinitely far away.
	DirectionalLight

	// SpotLight emits a cone along the entity forward axis.
	SpotLight
)

// String returns the name of the light type.
func (lt LightTypes) String() string {
	switch lt {
	case PointLight:
		return "PointLight"
	case DirectionalLight:
		return "DirectionalLight"
	case SpotLight:
		return "SpotLight"
	}
	return "LightTypes(" + strconv.Itoa(int(lt)) + ")"
}
