// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"log/slog"

	"github.com/rwols/gintonic-sub004/base/errors"
	"github.com/rwols/gintonic-sub004/base/weakcache"
	"github.com/rwols/gintonic-sub004/math32"
)

// Library shares meshes and materials by name. Entries stay alive only as
// long as some renderer (or other holder) references them; expired entries
// are reloaded on the next request and reclaimed by [Library.Prune].
type Library struct {

	// Meshes are the shared meshes.
	Meshes *weakcache.Cache[string, Mesh]

	// Materials are the shared materials.
	Materials *weakcache.Cache[string, Material]
}

// MeshLoader constructs the mesh with the given name.
type MeshLoader func(name string) (*Mesh, error)

// MaterialLoader constructs the material with the given name.
type MaterialLoader func(name string) (*Material, error)

// NewLibrary returns a new library using the given loaders. Nil loaders
// default to [BuiltinMesh] and [DefaultMaterial].
func NewLibrary(meshes MeshLoader, materials MaterialLoader) *Library {
	if meshes == nil {
		meshes = BuiltinMesh
	}
	if materials == nil {
		materials = DefaultMaterial
	}
	return &Library{
		Meshes:    weakcache.New(meshes),
		Materials: weakcache.New(materials),
	}
}

// Mesh returns the shared mesh with the given name, loading it if needed.
func (lb *Library) Mesh(name string) (*Mesh, error) {
	return lb.Meshes.Request(name)
}

// Material returns the shared material with the given name, loading it if needed.
func (lb *Library) Material(name string) (*Material, error) {
	return lb.Materials.Request(name)
}

// Prune removes the expired entries of both caches and returns how many
// were removed.
func (lb *Library) Prune() int {
	n := lb.Meshes.RemoveExpired() + lb.Materials.RemoveExpired()
	if n > 0 {
		slog.Debug("scene: pruned library", "removed", n)
	}
	return n
}

// BuiltinMesh returns a new instance of one of the builtin meshes:
// "cube" (unit cube centered on the origin) or "plane" (unit square in
// the XZ plane facing +Y). Other names return an error.
func BuiltinMesh(name string) (*Mesh, error) {
	switch name {
	case "cube":
		return newCube(name), nil
	case "plane":
		return newPlane(name), nil
	}
	return nil, fmt.Errorf("scene: unknown builtin mesh %q: %w", name, errors.ErrUnsupported)
}

// DefaultMaterial returns a new light gray material with the given name.
func DefaultMaterial(name string) (*Material, error) {
	return &Material{
		Name:      name,
		Diffuse:   math32.Vec4(0.8, 0.8, 0.8, 1),
		Specular:  math32.Vec4(0.1, 0.1, 0.1, 1),
		Shininess: 30,
	}, nil
}

func newPlane(name string) *Mesh {
	up := math32.Vec3(0, 1, 0)
	return &Mesh{
		Name: name,
		Positions: []math32.Vector3{
			math32.Vec3(-0.5, 0, 0.5),
			math32.Vec3(0.5, 0, 0.5),
			math32.Vec3(0.5, 0, -0.5),
			math32.Vec3(-0.5, 0, -0.5),
		},
		Normals: []math32.Vector3{up, up, up, up},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// newCube builds a cube with four vertices per face so that every face
// has flat normals.
func newCube(name string) *Mesh {
	ms := &Mesh{Name: name}
	faces := []struct{ n, u, v math32.Vector3 }{
		{math32.Vec3(1, 0, 0), math32.Vec3(0, 0, -1), math32.Vec3(0, 1, 0)},
		{math32.Vec3(-1, 0, 0), math32.Vec3(0, 0, 1), math32.Vec3(0, 1, 0)},
		{math32.Vec3(0, 1, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 0, -1)},
		{math32.Vec3(0, -1, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 0, 1)},
		{math32.Vec3(0, 0, 1), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0)},
		{math32.Vec3(0, 0, -1), math32.Vec3(-1, 0, 0), math32.Vec3(0, 1, 0)},
	}
	for _, f := range faces {
		base := uint32(len(ms.Positions))
		c := f.n.MulScalar(0.5)
		u := f.u.MulScalar(0.5)
		v := f.v.MulScalar(0.5)
		ms.Positions = append(ms.Positions,
			c.Sub(u).Sub(v), c.Add(u).Sub(v), c.Add(u).Add(v), c.Sub(u).Add(v))
		ms.Normals = append(ms.Normals, f.n, f.n, f.n, f.n)
		ms.Indices = append(ms.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return ms
}
