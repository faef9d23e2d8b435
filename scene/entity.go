// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/rwols/gintonic-sub004/base/errors"
)

// lastID is the last entity id handed out.
var lastID atomic.Uint64

// Entity is a named node of the scene graph. It owns its children and its
// components, and keeps a non-owning reference to its parent. Every entity
// has a [Transform]; it holds at most one other component of each [Kind].
//
// Entities are not safe for concurrent use; see [Scene] for the locking
// discipline.
type Entity struct {
	name string
	id   uint64

	parent   *Entity
	children []*Entity

	components [KindsN]Component
	transform  *Transform

	destroyed bool
}

// NewEntity returns a new root entity with the given name and an identity
// [Transform].
func NewEntity(name string) *Entity {
	e := &Entity{name: name, id: lastID.Add(1)}
	e.transform = newTransform(e)
	e.components[KindTransform] = e.transform
	return e
}

// ID returns the process-unique id of the entity.
func (e *Entity) ID() uint64 {
	return e.id
}

// Name returns the name of the entity.
func (e *Entity) Name() string {
	return e.name
}

// SetName sets the name of the entity.
func (e *Entity) SetName(name string) *Entity {
	e.name = name
	return e
}

// IsDestroyed returns whether [Entity.Destroy] has been called.
// A nil entity counts as destroyed.
func (e *Entity) IsDestroyed() bool {
	return e == nil || e.destroyed
}

func (e *Entity) stale(op string) error {
	if e == nil {
		return fmt.Errorf("scene: %s on nil entity: %w", op, errors.ErrStaleReference)
	}
	return fmt.Errorf("scene: %s on destroyed entity %q: %w", op, e.name, errors.ErrStaleReference)
}

// String returns the path of the entity.
func (e *Entity) String() string {
	if e == nil {
		return "<nil>"
	}
	if e.destroyed {
		return e.name + " (destroyed)"
	}
	return e.Path()
}

///////////////////////////////////////////////////////
// 		Hierarchy

// Parent returns the parent of the entity, or nil for a root.
func (e *Entity) Parent() *Entity {
	if e.IsDestroyed() {
		return nil
	}
	return e.parent
}

// Children returns the children of the entity in insertion order.
// The returned slice is a copy.
func (e *Entity) Children() []*Entity {
	if e.IsDestroyed() {
		return nil
	}
	return slices.Clone(e.children)
}

// NumChildren returns the number of children.
func (e *Entity) NumChildren() int {
	if e.IsDestroyed() {
		return 0
	}
	return len(e.children)
}

// Child returns the child at index i, or nil if i is out of range.
func (e *Entity) Child(i int) *Entity {
	if e.IsDestroyed() || i < 0 || i >= len(e.children) {
		return nil
	}
	return e.children[i]
}

// IsAncestorOf returns whether e is a strict ancestor of other.
func (e *Entity) IsAncestorOf(other *Entity) bool {
	if e == nil || other == nil {
		return false
	}
	for p := other.parent; p != nil; p = p.parent {
		if p == e {
			return true
		}
	}
	return false
}

// Root returns the root of the tree containing e.
func (e *Entity) Root() *Entity {
	r := e
	for r != nil && r.parent != nil {
		r = r.parent
	}
	return r
}

// Path returns the names from the root down to e, separated by slashes,
// for example "/root/arm/hand".
func (e *Entity) Path() string {
	if e == nil {
		return ""
	}
	var names []string
	for p := e; p != nil; p = p.parent {
		names = append(names, p.name)
	}
	slices.Reverse(names)
	return "/" + strings.Join(names, "/")
}

// FindByName returns the first entity in the subtree of e, in pre-order,
// with the given name, or nil if there is none.
func (e *Entity) FindByName(name string) *Entity {
	var found *Entity
	WalkFunc(e, func(n *Entity) bool {
		if n.name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// AddChild makes child the last child of e, first removing it from its
// previous parent. Re-adding a child of e moves it to the end.
// Making an entity a child of itself or of one of its descendants returns
// an error wrapping [errors.ErrInvalidHierarchy]; a destroyed entity on
// either side returns an error wrapping [errors.ErrStaleReference].
// Every component of child is notified through OnParentChange.
func (e *Entity) AddChild(child *Entity) error {
	if e.IsDestroyed() {
		return e.stale("add child")
	}
	if child.IsDestroyed() {
		return child.stale("add as child")
	}
	if child == e || child.IsAncestorOf(e) {
		return fmt.Errorf("scene: adding %q under %q would create a cycle: %w", child.name, e.Path(), errors.ErrInvalidHierarchy)
	}
	if child.parent != nil {
		child.parent.unlink(child)
	}
	e.children = append(e.children, child)
	child.parent = e
	child.parentChanged()
	return nil
}

// RemoveChild makes child a root entity. It returns an error wrapping
// [errors.ErrNotAttached] if child is not a child of e.
func (e *Entity) RemoveChild(child *Entity) error {
	if e.IsDestroyed() {
		return e.stale("remove child")
	}
	if child.IsDestroyed() {
		return child.stale("remove as child")
	}
	if child.parent != e {
		return fmt.Errorf("scene: %q is not a child of %q: %w", child.name, e.Path(), errors.ErrNotAttached)
	}
	e.unlink(child)
	child.parent = nil
	child.parentChanged()
	return nil
}

// unlink removes child from the children of e without notifying it.
func (e *Entity) unlink(child *Entity) {
	if i := slices.Index(e.children, child); i >= 0 {
		e.children = slices.Delete(e.children, i, i+1)
	}
}

func (e *Entity) parentChanged() {
	for _, c := range e.components {
		if c != nil {
			c.OnParentChange()
		}
	}
}

// Destroy removes e from its parent and destroys its subtree, children
// first. Components are disabled and detached. Afterwards every operation
// on e returns an error wrapping [errors.ErrStaleReference] and getters
// return zero values. Destroying a destroyed entity does nothing.
func (e *Entity) Destroy() {
	if e.IsDestroyed() {
		return
	}
	if e.parent != nil {
		e.parent.unlink(e)
		e.parent = nil
	}
	e.destroy()
}

func (e *Entity) destroy() {
	for _, c := range e.children {
		c.parent = nil
		c.destroy()
	}
	e.children = nil
	for k := len(e.components) - 1; k >= 0; k-- {
		if c := e.components[k]; c != nil {
			c.AsComponent().detach()
			e.components[k] = nil
		}
	}
	e.transform = nil
	e.destroyed = true
}

// Clone returns a deep copy of e and its subtree as a new root entity.
// Every node gets a new id and the same name, and every component is
// copied through its Clone method, so no component is shared with the
// original.
func (e *Entity) Clone() (*Entity, error) {
	if e.IsDestroyed() {
		return nil, e.stale("clone")
	}
	return e.clone(), nil
}

func (e *Entity) clone() *Entity {
	ne := &Entity{name: e.name, id: lastID.Add(1)}
	for k, c := range e.components {
		if c == nil {
			continue
		}
		nc := c.Clone(ne)
		ne.components[k] = nc
		if t, ok := nc.(*Transform); ok {
			ne.transform = t
		}
	}
	for _, c := range e.children {
		nc := c.clone()
		nc.parent = ne
		ne.children = append(ne.children, nc)
	}
	return ne
}

///////////////////////////////////////////////////////
// 		Components

// Attach calls newFn to construct a component owned by e and attaches it,
// replacing and detaching any existing component of the same kind.
// newFn must return a component initialized with [ComponentBase.Init]
// with e as owner. The transform cannot be replaced. Cameras and lights
// must be a [Camera] or a [Light]; colliders and renderers may be any
// [Collider] or [Renderer].
func Attach[T Component](e *Entity, newFn func(owner *Entity) T) (T, error) {
	var zero T
	if e.IsDestroyed() {
		return zero, e.stale("attach")
	}
	c := newFn(e)
	cb := c.AsComponent()
	switch {
	case cb.This == nil || cb.owner != e:
		return zero, fmt.Errorf("scene: component for %q not initialized with it as owner: %w", e.name, errors.ErrInvalidHierarchy)
	case !cb.kind.IsValid():
		return zero, fmt.Errorf("scene: invalid component kind %v: %w", cb.kind, errors.ErrInvalidHierarchy)
	case cb.kind == KindTransform:
		return zero, fmt.Errorf("scene: %q already has a transform: %w", e.name, errors.ErrInvalidHierarchy)
	case !fitsKind(cb.kind, c):
		return zero, fmt.Errorf("scene: %T cannot fill the %v slot of %q: %w", c, cb.kind, e.name, errors.ErrInvalidHierarchy)
	}
	if old := e.components[cb.kind]; old != nil {
		old.AsComponent().detach()
	}
	e.components[cb.kind] = c
	return c, nil
}

// fitsKind reports whether c can be returned by the typed getter of kind.
func fitsKind(kind Kind, c Component) bool {
	var ok bool
	switch kind {
	case KindCamera:
		_, ok = c.(*Camera)
	case KindLight:
		_, ok = c.(*Light)
	case KindCollider:
		_, ok = c.(Collider)
	case KindRenderer:
		_, ok = c.(Renderer)
	}
	return ok
}

// AddCamera attaches a new [Camera] with default parameters.
func (e *Entity) AddCamera() (*Camera, error) {
	return Attach(e, newCamera)
}

// AddLight attaches a new [Light] of the given type with default parameters.
func (e *Entity) AddLight(typ LightTypes) (*Light, error) {
	return Attach(e, func(owner *Entity) *Light {
		l := newLight(owner)
		l.Type = typ
		return l
	})
}

// AddBoxCollider attaches a new unit [BoxCollider] centered on the entity.
func (e *Entity) AddBoxCollider() (*BoxCollider, error) {
	return Attach(e, newBoxCollider)
}

// AddMeshRenderer attaches a new [MeshRenderer] drawing the given shared
// mesh and material.
func (e *Entity) AddMeshRenderer(mesh *Mesh, mat *Material) (*MeshRenderer, error) {
	return Attach(e, func(owner *Entity) *MeshRenderer {
		mr := newMeshRenderer(owner)
		mr.Mesh = mesh
		mr.Material = mat
		return mr
	})
}

// RemoveComponent detaches the component of the given kind, disabling it
// first if it is enabled. It returns an error wrapping [errors.ErrNotAttached]
// if there is none, and one wrapping [errors.ErrInvalidHierarchy] for
// [KindTransform].
func (e *Entity) RemoveComponent(kind Kind) error {
	if e.IsDestroyed() {
		return e.stale("remove component")
	}
	if kind == KindTransform {
		return fmt.Errorf("scene: the transform of %q cannot be removed: %w", e.name, errors.ErrInvalidHierarchy)
	}
	c := e.Component(kind)
	if c == nil {
		return fmt.Errorf("scene: %q has no %v component: %w", e.name, kind, errors.ErrNotAttached)
	}
	c.AsComponent().detach()
	e.components[kind] = nil
	return nil
}

// Component returns the component of the given kind, or nil.
func (e *Entity) Component(kind Kind) Component {
	if e.IsDestroyed() || !kind.IsValid() {
		return nil
	}
	return e.components[kind]
}

// Components returns the attached components in [Kind] order.
func (e *Entity) Components() []Component {
	if e.IsDestroyed() {
		return nil
	}
	cs := make([]Component, 0, len(e.components))
	for _, c := range e.components {
		if c != nil {
			cs = append(cs, c)
		}
	}
	return cs
}

// Get returns the first attached component of type T, if any.
func Get[T Component](e *Entity) (T, bool) {
	for _, c := range e.Components() {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// Transform returns the transform, or nil for a destroyed entity.
func (e *Entity) Transform() *Transform {
	if e.IsDestroyed() {
		return nil
	}
	return e.transform
}

// Camera returns the camera, or nil.
func (e *Entity) Camera() *Camera {
	c, _ := e.Component(KindCamera).(*Camera)
	return c
}

// Light returns the light, or nil.
func (e *Entity) Light() *Light {
	l, _ := e.Component(KindLight).(*Light)
	return l
}

// Collider returns the collider, or nil.
func (e *Entity) Collider() Collider {
	c, _ := e.Component(KindCollider).(Collider)
	return c
}

// Renderer returns the renderer, or nil.
func (e *Entity) Renderer() Renderer {
	r, _ := e.Component(KindRenderer).(Renderer)
	return r
}
