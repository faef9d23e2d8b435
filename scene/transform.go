// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/rwols/gintonic-sub004/math32"
)

// SQT is a pose given as independent scale, rotation and translation,
// always relative to the parent element.
type SQT struct {

	// Scale is the scale, applied first.
	Scale math32.Vector3

	// Rotation is the unit quaternion rotation, applied after scale.
	Rotation math32.Quat

	// Translation is the position, applied last.
	Translation math32.Vector3
}

// IdentitySQT returns the pose that leaves everything in place.
func IdentitySQT() SQT {
	return SQT{
		Scale:    math32.Vector3Scalar(1),
		Rotation: math32.NewQuatIdentity(),
	}
}

// SQTFromMatrix decomposes an affine matrix into a pose.
func SQTFromMatrix(m *math32.Matrix4) SQT {
	pos, quat, scale := m.Decompose()
	return SQT{Scale: scale, Rotation: quat, Translation: pos}
}

// Matrix returns the affine matrix of the pose.
func (s SQT) Matrix() math32.Matrix4 {
	m := math32.Matrix4{}
	m.SetTransform(s.Translation, s.Rotation, s.Scale)
	return m
}

// Compose returns the pose of local applied in the space of s,
// computed through matrix multiplication.
func (s SQT) Compose(local SQT) SQT {
	pm := s.Matrix()
	lm := local.Matrix()
	return SQTFromMatrix(pm.Mul(&lm))
}

// Transform is the component holding the local pose of an entity, and a
// lazily computed cache of its global pose. Every entity has exactly one.
//
// The global pose is parent.Global() composed with the local pose, or the
// local pose itself for roots. Local mutations and reparenting mark the
// transform dirty; the cache is recomputed on the next global read. A clean
// cache also remembers which parent transform, at which recompute stamp,
// it was computed from, so it is recomputed when any ancestor changed,
// without ancestors having to invalidate their descendants.
type Transform struct {
	ComponentBase

	local SQT

	// dirty is set by local mutations and parent changes.
	dirty bool

	global       SQT
	globalMatrix math32.Matrix4

	// stamp is incremented on every recompute of the global cache.
	stamp uint64

	// parent and parentStamp identify the parent cache that global was computed from.
	parent      *Transform
	parentStamp uint64
}

func newTransform(owner *Entity) *Transform {
	t := &Transform{local: IdentitySQT(), dirty: true}
	t.Init(t, KindTransform, owner)
	return t
}

// Clone returns a copy of the local pose bound to newOwner, with a dirty cache.
func (t *Transform) Clone(newOwner *Entity) Component {
	nt := newTransform(newOwner)
	nt.local = t.local
	nt.enabled = t.enabled
	return nt
}

// OnParentChange marks the transform dirty.
func (t *Transform) OnParentChange() {
	t.dirty = true
}

// IsDirty returns whether the local pose changed, or the entity was
// reparented, since the global cache was last computed.
func (t *Transform) IsDirty() bool {
	return t.dirty
}

///////////////////////////////////////////////////////
// 		Local pose

// Local returns the local pose.
func (t *Transform) Local() SQT {
	return t.local
}

// SetLocal sets the local pose.
func (t *Transform) SetLocal(s SQT) {
	t.local = s
	t.dirty = true
}

// UpdateLocal calls fun with a pointer to the local pose, which it
// may modify, and marks the transform dirty.
func (t *Transform) UpdateLocal(fun func(s *SQT)) {
	fun(&t.local)
	t.dirty = true
}

// Position returns the local translation.
func (t *Transform) Position() math32.Vector3 {
	return t.local.Translation
}

// SetPosition sets the local translation.
func (t *Transform) SetPosition(pos math32.Vector3) *Transform {
	t.local.Translation = pos
	t.dirty = true
	return t
}

// Rotation returns the local rotation.
func (t *Transform) Rotation() math32.Quat {
	return t.local.Rotation
}

// SetRotation sets the local rotation.
func (t *Transform) SetRotation(rot math32.Quat) *Transform {
	t.local.Rotation = rot
	t.dirty = true
	return t
}

// Scale returns the local scale.
func (t *Transform) Scale() math32.Vector3 {
	return t.local.Scale
}

// SetScale sets the local scale.
func (t *Transform) SetScale(scale math32.Vector3) *Transform {
	t.local.Scale = scale
	t.dirty = true
	return t
}

// SetEulerRotation sets the local rotation in Euler angles (degrees).
func (t *Transform) SetEulerRotation(x, y, z float32) *Transform {
	return t.SetRotation(math32.NewQuatEuler(math32.Vec3(x, y, z).MulScalar(math32.DegToRadFactor)))
}

// EulerRotation returns the local rotation in Euler angles (degrees).
func (t *Transform) EulerRotation() math32.Vector3 {
	return t.local.Rotation.ToEuler().MulScalar(math32.RadToDegFactor)
}

// Translate moves the local translation by delta, in parent space.
func (t *Transform) Translate(delta math32.Vector3) *Transform {
	t.local.Translation.SetAdd(delta)
	t.dirty = true
	return t
}

// MoveOnAxis moves (translates) the specified distance on the specified local axis,
// relative to the current rotation orientation.
func (t *Transform) MoveOnAxis(axis math32.Vector3, dist float32) *Transform {
	return t.Translate(axis.Normal().MulQuat(t.local.Rotation).MulScalar(dist))
}

// RotateOnAxis rotates around the specified local axis by the angle in radians.
func (t *Transform) RotateOnAxis(axis math32.Vector3, angle float32) *Transform {
	t.local.Rotation.SetMul(math32.NewQuatAxisAngle(axis, angle))
	t.local.Rotation.Normalize()
	t.dirty = true
	return t
}

// LookAt rotates the entity so that its forward (-Z) axis points at the
// given target, in parent space, using the given up direction.
func (t *Transform) LookAt(target, up math32.Vector3) *Transform {
	m := math32.Matrix4{}
	m.SetLookAt(t.local.Translation, target, up)
	t.local.Rotation.SetFromRotationMatrix(&m)
	t.local.Rotation.Normalize()
	t.dirty = true
	return t
}

///////////////////////////////////////////////////////
// 		Global pose

// update brings the global cache up to date, first updating the parent.
func (t *Transform) update() {
	var pt *Transform
	if t.owner != nil && t.owner.parent != nil {
		pt = t.owner.parent.transform
	}
	if pt != nil {
		pt.update()
	}
	if !t.dirty && pt == t.parent && (pt == nil || pt.stamp == t.parentStamp) {
		return
	}
	lm := t.local.Matrix()
	if pt != nil {
		t.globalMatrix.MulMatrices(&pt.globalMatrix, &lm)
		t.global = SQTFromMatrix(&t.globalMatrix)
		t.parentStamp = pt.stamp
	} else {
		t.globalMatrix = lm
		t.global = t.local
		t.parentStamp = 0
	}
	t.parent = pt
	t.dirty = false
	t.stamp++
}

// Global returns the global pose.
func (t *Transform) Global() SQT {
	t.update()
	return t.global
}

// GlobalMatrix returns the global affine matrix.
func (t *Transform) GlobalMatrix() math32.Matrix4 {
	t.update()
	return t.globalMatrix
}

// GlobalPosition returns the global translation.
func (t *Transform) GlobalPosition() math32.Vector3 {
	return t.Global().Translation
}

// GlobalRotation returns the global rotation.
func (t *Transform) GlobalRotation() math32.Quat {
	return t.Global().Rotation
}

// GlobalScale returns the global scale.
func (t *Transform) GlobalScale() math32.Vector3 {
	return t.Global().Scale
}

// Forward returns the global forward (-Z) direction.
func (t *Transform) Forward() math32.Vector3 {
	return math32.Vec3(0, 0, -1).MulQuat(t.GlobalRotation())
}

// Right returns the global right (+X) direction.
func (t *Transform) Right() math32.Vector3 {
	return math32.Vec3(1, 0, 0).MulQuat(t.GlobalRotation())
}

// Up returns the global up (+Y) direction.
func (t *Transform) Up() math32.Vector3 {
	return math32.Vec3(0, 1, 0).MulQuat(t.GlobalRotation())
}

// SetGlobalPosition changes the local translation by the difference
// between pos and the current global translation.
//
// This is a first-order approximation: it is exact only when no ancestor
// has a non-identity rotation or scale.
func (t *Transform) SetGlobalPosition(pos math32.Vector3) *Transform {
	g := t.Global()
	return t.Translate(pos.Sub(g.Translation))
}

// SetGlobalRotation changes the local rotation by the rotation from the
// current global rotation to rot. Like [Transform.SetGlobalPosition],
// it is exact only when no ancestor has a non-identity rotation or scale.
func (t *Transform) SetGlobalRotation(rot math32.Quat) *Transform {
	g := t.Global()
	nr := rot.Mul(g.Rotation.Inverse()).Mul(t.local.Rotation)
	nr.Normalize()
	return t.SetRotation(nr)
}

// SetGlobalScale changes the local scale by the ratio of scale to the
// current global scale, per component; zero components of the current
// global scale leave the local component unchanged. Like
// [Transform.SetGlobalPosition], it is exact only when no ancestor has
// a non-identity rotation or scale.
func (t *Transform) SetGlobalScale(scale math32.Vector3) *Transform {
	g := t.Global()
	ratio := math32.Vector3Scalar(1)
	if g.Scale.X != 0 {
		ratio.X = scale.X / g.Scale.X
	}
	if g.Scale.Y != 0 {
		ratio.Y = scale.Y / g.Scale.Y
	}
	if g.Scale.Z != 0 {
		ratio.Z = scale.Z / g.Scale.Z
	}
	return t.SetScale(t.local.Scale.Mul(ratio))
}
