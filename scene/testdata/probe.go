// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testdata provides components that record their hooks, for
// testing the scene package.
package testdata

import (
	"github.com/rwols/gintonic-sub004/math32"
	"github.com/rwols/gintonic-sub004/scene"
)

// Probe is a component that appends "Label.Hook" to Log for every hook
// call, and optionally runs OnUpdate during Update. It is an empty
// [scene.Collider] and [scene.Renderer], so it can fill either slot.
type Probe struct {
	scene.ComponentBase

	Label string

	Log *[]string

	OnUpdate func()
}

// NewProbe returns a constructor for [scene.Attach] of a probe of the
// given kind writing to log.
func NewProbe(kind scene.Kind, label string, log *[]string) func(owner *scene.Entity) *Probe {
	return func(owner *scene.Entity) *Probe {
		p := &Probe{Label: label, Log: log}
		p.Init(p, kind, owner)
		return p
	}
}

func (p *Probe) record(hook string) {
	if p.Log != nil {
		*p.Log = append(*p.Log, p.Label+"."+hook)
	}
}

func (p *Probe) OnEnable()       { p.record("OnEnable") }
func (p *Probe) OnDisable()      { p.record("OnDisable") }
func (p *Probe) LateUpdate()     { p.record("LateUpdate") }
func (p *Probe) OnParentChange() { p.record("OnParentChange") }

func (p *Probe) Update() {
	p.record("Update")
	if p.OnUpdate != nil {
		p.OnUpdate()
	}
}

// Clone returns a probe with the same label writing to the same log.
func (p *Probe) Clone(newOwner *scene.Entity) scene.Component {
	np := &Probe{Label: p.Label, Log: p.Log, OnUpdate: p.OnUpdate}
	np.Init(np, p.Kind(), newOwner)
	return np
}

// WorldBounds returns an empty box.
func (p *Probe) WorldBounds() math32.Box3 { return math32.B3Empty() }

func (p *Probe) ContainsPoint(math32.Vector3) bool { return false }
func (p *Probe) CastsShadows() bool                { return false }
func (p *Probe) ReceivesShadows() bool             { return false }
