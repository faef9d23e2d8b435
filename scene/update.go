// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// componentCollector gathers the enabled components of a subtree, in
// pre-order and in [Kind] order within an entity.
type componentCollector struct {
	VisitorBase
	comps []Component
}

func (cc *componentCollector) OnVisit(e *Entity) bool {
	for _, c := range e.components {
		if c != nil && c.Enabled() {
			cc.comps = append(cc.comps, c)
		}
	}
	return true
}

// UpdatePass runs one frame of component hooks over the subtree of root:
// Update on every enabled component, then LateUpdate on every enabled
// component. The set of components is collected before the pass; a
// component disabled or detached by an earlier hook is skipped.
// It returns the number of components collected.
func UpdatePass(root *Entity) int {
	cc := &componentCollector{}
	Walk(root, cc)
	for _, c := range cc.comps {
		if live(c) {
			c.Update()
		}
	}
	for _, c := range cc.comps {
		if live(c) {
			c.LateUpdate()
		}
	}
	return len(cc.comps)
}

func live(c Component) bool {
	return c.Enabled() && c.AsComponent().IsAttached()
}

// settle brings the global cache of every transform in the subtree of
// root up to date, returning the number of transforms.
func settle(root *Entity) int {
	n := 0
	WalkFunc(root, func(e *Entity) bool {
		e.transform.update()
		n++
		return true
	})
	return n
}
