// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "cogentcore.org/engine/math32"

// Mesh is a named set of primitives drawn together.
type Mesh struct {
	Name       string
	Primitives []*Primitive
}

// Bounds returns the combined bounds of the primitives.
func (m *Mesh) Bounds() math32.Box3 {
	bb := math32.B3Empty()
	for _, p := range m.Primitives {
		bb.ExpandByBox(p.Bounds)
	}
	return bb
}

// NumTriangles returns the total number of triangles.
func (m *Mesh) NumTriangles() int {
	n := 0
	for _, p := range m.Primitives {
		n += p.NumTriangles()
	}
	return n
}

// Node is one element of a model's node hierarchy, placing
// a mesh and its children with a local transform.
type Node struct {
	Name string

	Translation math32.Vector3
	Rotation    math32.Quat
	Scale       math32.Vector3

	// Mesh is an index into [Scene.Meshes], or -1 for none.
	Mesh int

	// Children are indexes into [Scene.Nodes].
	Children []int
}

// NewNode returns a node with no mesh and the identity transform.
func NewNode(name string) Node {
	return Node{Name: name, Mesh: -1, Rotation: math32.QuatIdentity(), Scale: math32.Vector3Scalar(1)}
}

// Scene is the decoded content of a model file.
type Scene struct {
	Meshes []*Mesh
	Nodes  []Node

	// Roots are the indexes of the top level nodes.
	Roots []int
}

// Bounds returns the bounding box of the meshes placed by the
// node hierarchy. If there are no nodes, the mesh bounds
// are combined directly.
func (s *Scene) Bounds() math32.Box3 {
	bb := math32.B3Empty()
	if len(s.Roots) == 0 {
		for _, m := range s.Meshes {
			bb.ExpandByBox(m.Bounds())
		}
		return bb
	}
	seen := make([]bool, len(s.Nodes))
	var visit func(ni int, xf func(math32.Box3) math32.Box3)
	visit = func(ni int, xf func(math32.Box3) math32.Box3) {
		if ni < 0 || ni >= len(s.Nodes) || seen[ni] {
			return
		}
		seen[ni] = true
		n := &s.Nodes[ni]
		local := func(b math32.Box3) math32.Box3 {
			return xf(b.Transform(n.Translation, n.Rotation, n.Scale))
		}
		if n.Mesh >= 0 && n.Mesh < len(s.Meshes) {
			bb.ExpandByBox(local(s.Meshes[n.Mesh].Bounds()))
		}
		for _, ci := range n.Children {
			visit(ci, local)
		}
	}
	for _, r := range s.Roots {
		visit(r, func(b math32.Box3) math32.Box3 { return b })
	}
	return bb
}
