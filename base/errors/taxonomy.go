// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

// The error taxonomy of the scene graph core. Call sites wrap these with
// context using fmt.Errorf and %w, so callers test them with [Is].
var (
	// ErrStaleReference is returned when operating on an entity that has
	// been destroyed or on a component that is no longer attached.
	ErrStaleReference = New("stale reference")

	// ErrInvalidHierarchy is returned for structural violations of the
	// entity tree, such as parenting an entity under its own descendant.
	ErrInvalidHierarchy = New("invalid hierarchy")

	// ErrAllocationFailure is returned when a new entity, component, cache
	// entry or pool slot cannot be constructed.
	ErrAllocationFailure = New("allocation failure")

	// ErrNotAttached is returned when detaching a component kind that is
	// not attached to the entity.
	ErrNotAttached = New("component not attached")
)
