// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "slices"

// Visitor is a pre-order traversal of an [Entity] subtree driven by [Walk].
type Visitor interface {

	// OnStart is called once before anything is visited. Returning false
	// aborts the traversal before the root is visited.
	OnStart() bool

	// OnVisit is called for every visited entity. Returning false aborts
	// the whole remaining traversal, not only the subtree of e.
	OnVisit(e *Entity) bool

	// OnFinish is called exactly once when the traversal ends, whether it
	// completed or was aborted.
	OnFinish()
}

// DepthTracker is implemented by visitors that keep track of how deep
// the current entity is below the root. [VisitorBase] implements it.
type DepthTracker interface {
	EnterChildren()
	LeaveChildren()
}

// VisitorBase provides the default OnStart and OnFinish of a [Visitor],
// and a depth counter. Embed it and implement OnVisit.
type VisitorBase struct {
	depth int
}

// OnStart returns true.
func (vb *VisitorBase) OnStart() bool {
	vb.depth = 0
	return true
}

// OnFinish does nothing.
func (vb *VisitorBase) OnFinish() {}

// Depth returns the depth of the entity being visited; the root has depth 0.
func (vb *VisitorBase) Depth() int {
	return vb.depth
}

// EnterChildren increments the depth.
func (vb *VisitorBase) EnterChildren() {
	vb.depth++
}

// LeaveChildren decrements the depth.
func (vb *VisitorBase) LeaveChildren() {
	vb.depth--
}

// Walk traverses the subtree of root in pre-order, calling the hooks of v.
// A nil or destroyed root visits nothing, but OnStart and OnFinish are
// still called. The children of an entity are visited in order; the
// traversal stops as soon as any OnVisit returns false. Entities that
// are destroyed or moved out of the subtree by a hook before they are
// reached are skipped.
func Walk(root *Entity, v Visitor) {
	defer v.OnFinish()
	if !v.OnStart() || root.IsDestroyed() {
		return
	}
	dt, _ := v.(DepthTracker)
	walk(root, v, dt)
}

// walk returns false if the traversal was aborted.
func walk(e *Entity, v Visitor, dt DepthTracker) bool {
	if !v.OnVisit(e) {
		return false
	}
	// OnVisit can destroy e or change its children
	if e.IsDestroyed() || len(e.children) == 0 {
		return true
	}
	if dt != nil {
		dt.EnterChildren()
		defer dt.LeaveChildren()
	}
	for _, c := range slices.Clone(e.children) {
		if c.IsDestroyed() || c.parent != e {
			continue
		}
		if !walk(c, v, dt) {
			return false
		}
	}
	return true
}

// VisitFunc adapts a function to a [Visitor].
type VisitFunc func(e *Entity) bool

// OnStart returns true.
func (f VisitFunc) OnStart() bool { return true }

// OnVisit calls f.
func (f VisitFunc) OnVisit(e *Entity) bool { return f(e) }

// OnFinish does nothing.
func (f VisitFunc) OnFinish() {}

// WalkFunc walks the subtree of root calling fun on every entity in
// pre-order, until fun returns false.
func WalkFunc(root *Entity, fun func(e *Entity) bool) {
	Walk(root, VisitFunc(fun))
}

// ShadowCasterCollector collects the enabled renderers that cast shadows.
type ShadowCasterCollector struct {
	VisitorBase

	// Casters are the collected renderers, in pre-order.
	Casters []Renderer
}

func (sc *ShadowCasterCollector) OnStart() bool {
	sc.Casters = sc.Casters[:0]
	return sc.VisitorBase.OnStart()
}

func (sc *ShadowCasterCollector) OnVisit(e *Entity) bool {
	if r := e.Renderer(); r != nil && r.Enabled() && r.CastsShadows() {
		sc.Casters = append(sc.Casters, r)
	}
	return true
}

// LightCollector collects the enabled lights.
type LightCollector struct {
	VisitorBase
	Lights []*Light
}

func (lc *LightCollector) OnStart() bool {
	lc.Lights = lc.Lights[:0]
	return lc.VisitorBase.OnStart()
}

func (lc *LightCollector) OnVisit(e *Entity) bool {
	if l := e.Light(); l != nil && l.Enabled() {
		lc.Lights = append(lc.Lights, l)
	}
	return true
}

// CameraCollector finds the first enabled camera and stops there.
type CameraCollector struct {
	VisitorBase
	Camera *Camera
}

func (cc *CameraCollector) OnStart() bool {
	cc.Camera = nil
	return cc.VisitorBase.OnStart()
}

func (cc *CameraCollector) OnVisit(e *Entity) bool {
	if c := e.Camera(); c != nil && c.Enabled() {
		cc.Camera = c
		return false
	}
	return true
}
