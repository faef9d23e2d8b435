// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/rwols/gintonic-sub004/base/errors"
)

// Component is a unit of behavior or data attached to exactly one [Entity].
// The core functionality is defined on [ComponentBase], which all component
// types must embed; this interface only contains what component types may
// need to override.
type Component interface {

	// AsComponent returns the [ComponentBase] of this Component.
	AsComponent() *ComponentBase

	// Kind returns the fixed kind of the component.
	Kind() Kind

	// Enabled returns whether the component is enabled.
	Enabled() bool

	// OnEnable is called when the component goes from disabled to enabled.
	OnEnable()

	// OnDisable is called when the component goes from enabled to disabled,
	// including when an enabled component is detached from its entity.
	OnDisable()

	// Update is called once per update pass on enabled components,
	// before any LateUpdate of the same pass.
	Update()

	// LateUpdate is called once per update pass on enabled components,
	// after every Update of the same pass.
	LateUpdate()

	// OnParentChange is called when the owning entity is reparented.
	OnParentChange()

	// Clone returns a copy of the component bound to newOwner. Shared
	// resources are copied by reference. The copy is not yet registered
	// with newOwner; [Entity.Clone] and [Attach] do that.
	Clone(newOwner *Entity) Component
}

// ComponentBase implements the bookkeeping of the [Component] interface
// and no-op hooks. It must be embedded in all component types, and
// initialized with [ComponentBase.Init].
type ComponentBase struct {

	// This is the value of this Component as its true underlying type,
	// so that methods defined on the base can call the hooks of the
	// concrete type. It is set by Init.
	This Component `copier:"-" json:"-" xml:"-"`

	kind    Kind
	owner   *Entity
	enabled bool
}

// Init binds the component to its concrete value, kind and owner.
// Components start out enabled; OnEnable is not called.
func (c *ComponentBase) Init(this Component, kind Kind, owner *Entity) {
	c.This = this
	c.kind = kind
	c.owner = owner
	c.enabled = true
}

// AsComponent returns the ComponentBase.
func (c *ComponentBase) AsComponent() *ComponentBase {
	return c
}

// Kind returns the kind set at construction.
func (c *ComponentBase) Kind() Kind {
	return c.kind
}

// Entity returns the owning entity, or nil once the component is detached.
func (c *ComponentBase) Entity() *Entity {
	return c.owner
}

// IsAttached returns whether the component is still bound to a live entity.
func (c *ComponentBase) IsAttached() bool {
	return c.owner != nil && !c.owner.destroyed
}

// Transform returns the transform of the owning entity, or nil once detached.
func (c *ComponentBase) Transform() *Transform {
	if c.owner == nil {
		return nil
	}
	return c.owner.transform
}

// Enabled returns whether the component is enabled.
func (c *ComponentBase) Enabled() bool {
	return c.enabled
}

// SetEnabled enables or disables the component. OnEnable and OnDisable are
// called only when the flag actually changes. A detached component returns
// an error wrapping [errors.ErrStaleReference].
func (c *ComponentBase) SetEnabled(on bool) error {
	if !c.IsAttached() {
		return fmt.Errorf("scene: set enabled on detached %v component: %w", c.kind, errors.ErrStaleReference)
	}
	if c.enabled == on {
		return nil
	}
	c.enabled = on
	if on {
		c.This.OnEnable()
	} else {
		c.This.OnDisable()
	}
	return nil
}

// detach disables the component and clears its owner.
func (c *ComponentBase) detach() {
	if c.enabled {
		c.enabled = false
		c.This.OnDisable()
	}
	c.owner = nil
}

// OnEnable does nothing by default.
func (c *ComponentBase) OnEnable() {}

// OnDisable does nothing by default.
func (c *ComponentBase) OnDisable() {}

// Update does nothing by default.
func (c *ComponentBase) Update() {}

// LateUpdate does nothing by default.
func (c *ComponentBase) LateUpdate() {}

// OnParentChange does nothing by default.
func (c *ComponentBase) OnParentChange() {}

// String returns the kind and the path of the owner.
func (c *ComponentBase) String() string {
	if c.owner == nil {
		return c.kind.String() + "@<detached>"
	}
	return c.kind.String() + "@" + c.owner.Path()
}

// cloneFields copies the exported fields of from into to, which must be
// pointers to the same component type, and binds to to newOwner.
// Pointer fields are shared, not duplicated.
func cloneFields(to, from Component, newOwner *Entity) {
	errors.Log(copier.Copy(to, from))
	fb := from.AsComponent()
	tb := to.AsComponent()
	tb.Init(to, fb.kind, newOwner)
	tb.enabled = fb.enabled
}
