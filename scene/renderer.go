// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/rwols/gintonic-sub004/math32"
)

// Renderer is a component that the renderer draws. All renderers have
// [KindRenderer].
type Renderer interface {
	Component

	// CastsShadows returns whether the renderer is drawn into shadow maps.
	CastsShadows() bool

	// ReceivesShadows returns whether shadows are applied to the renderer.
	ReceivesShadows() bool

	// WorldBounds returns the axis-aligned bounding box of what is drawn,
	// in global coordinates.
	WorldBounds() math32.Box3
}

// Mesh is shared vertex data. Meshes are usually obtained from a
// [Library] and shared by every [MeshRenderer] drawing them.
type Mesh struct {

	// Name is the unique name of the mesh in its library.
	Name string

	// Positions are the vertex positions.
	Positions []math32.Vector3

	// Normals are the vertex normals, if any.
	Normals []math32.Vector3

	// Indices are the triangle vertex indices.
	Indices []uint32
}

// Bounds returns the bounding box of the vertex positions.
func (ms *Mesh) Bounds() math32.Box3 {
	b := math32.B3Empty()
	b.ExpandByPoints(ms.Positions)
	return b
}

// Triangles returns the number of triangles.
func (ms *Mesh) Triangles() int {
	return len(ms.Indices) / 3
}

// Material describes the surface properties of a mesh.
// Materials are usually obtained from a [Library] and shared.
type Material struct {

	// Name is the unique name of the material in its library.
	Name string

	// Diffuse is the RGBA diffuse color.
	Diffuse math32.Vector4

	// Specular is the RGBA specular color.
	Specular math32.Vector4

	// Shininess is the specular exponent.
	Shininess float32

	// Texture is the name of the diffuse texture, if any.
	Texture string
}

// MeshRenderer is a [Renderer] drawing a shared [Mesh] with a shared [Material].
type MeshRenderer struct {
	ComponentBase `copier:"-"`

	// Mesh is the shared mesh; clones share it.
	Mesh *Mesh

	// Material is the shared material; clones share it.
	Material *Material

	// CastShadows is whether the mesh is drawn into shadow maps.
	CastShadows bool

	// ReceiveShadows is whether shadows are applied to the mesh.
	ReceiveShadows bool
}

func newMeshRenderer(owner *Entity) *MeshRenderer {
	mr := &MeshRenderer{CastShadows: true, ReceiveShadows: true}
	mr.Init(mr, KindRenderer, owner)
	return mr
}

// Clone returns a copy of the mesh renderer bound to newOwner,
// sharing the mesh and material.
func (mr *MeshRenderer) Clone(newOwner *Entity) Component {
	nm := &MeshRenderer{}
	cloneFields(nm, mr, newOwner)
	return nm
}

// CastsShadows returns whether the mesh is drawn into shadow maps.
func (mr *MeshRenderer) CastsShadows() bool {
	return mr.CastShadows && mr.Mesh != nil
}

// ReceivesShadows returns whether shadows are applied to the mesh.
func (mr *MeshRenderer) ReceivesShadows() bool {
	return mr.ReceiveShadows
}

// WorldBounds returns the mesh bounds transformed by the entity global matrix.
// A renderer without a mesh has empty bounds.
func (mr *MeshRenderer) WorldBounds() math32.Box3 {
	if mr.Mesh == nil {
		return math32.B3Empty()
	}
	b := mr.Mesh.Bounds()
	t := mr.Transform()
	if t == nil {
		return b
	}
	gm := t.GlobalMatrix()
	return b.MulMatrix4(&gm)
}
