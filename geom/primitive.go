// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom holds host-side mesh data produced by the model
// decoders: indexed triangle primitives and a node hierarchy.
package geom

import (
	"encoding/binary"
	"fmt"
	"math"

	"cogentcore.org/engine/math32"
)

// Primitive is an indexed triangle mesh. Vertices is required;
// Normals, UVs and Colors are either empty or have one entry per vertex.
type Primitive struct {
	// Name is the name of the mesh as given in the source file, if any.
	Name string

	Vertices []math32.Vector3
	Normals  []math32.Vector3
	UVs      []math32.Vector2
	Colors   []math32.Vector4

	// Indices are triangle vertex indexes, three per triangle.
	// When empty, the vertices are taken in order.
	Indices []uint32

	// Bounds is the bounding box of Vertices, set by [Primitive.ComputeBounds].
	Bounds math32.Box3
}

// NumVertices returns the number of vertices.
func (p *Primitive) NumVertices() int {
	return len(p.Vertices)
}

// NumTriangles returns the number of triangles.
func (p *Primitive) NumTriangles() int {
	if len(p.Indices) > 0 {
		return len(p.Indices) / 3
	}
	return len(p.Vertices) / 3
}

// HasColor returns whether the mesh has per-vertex colors.
func (p *Primitive) HasColor() bool {
	return len(p.Colors) > 0
}

// ComputeBounds sets Bounds from the vertices.
func (p *Primitive) ComputeBounds() {
	p.Bounds.SetFromPoints(p.Vertices)
}

// Validate checks that the attribute arrays and indexes are consistent.
func (p *Primitive) Validate() error {
	nv := len(p.Vertices)
	if nv == 0 {
		return fmt.Errorf("mesh %q has no vertices", p.Name)
	}
	check := func(attr string, n int) error {
		if n != 0 && n != nv {
			return fmt.Errorf("mesh %q has %d %s for %d vertices", p.Name, n, attr, nv)
		}
		return nil
	}
	if err := check("normals", len(p.Normals)); err != nil {
		return err
	}
	if err := check("uvs", len(p.UVs)); err != nil {
		return err
	}
	if err := check("colors", len(p.Colors)); err != nil {
		return err
	}
	if len(p.Indices) == 0 {
		if nv%3 != 0 {
			return fmt.Errorf("mesh %q has %d vertices, not a multiple of 3", p.Name, nv)
		}
		return nil
	}
	if len(p.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q has %d indexes, not a multiple of 3", p.Name, len(p.Indices))
	}
	for _, ix := range p.Indices {
		if int(ix) >= nv {
			return fmt.Errorf("mesh %q index %d out of range for %d vertices", p.Name, ix, nv)
		}
	}
	return nil
}

// triangle returns the vertex indexes of triangle i.
func (p *Primitive) triangle(i int) (a, b, c int) {
	if len(p.Indices) > 0 {
		return int(p.Indices[3*i]), int(p.Indices[3*i+1]), int(p.Indices[3*i+2])
	}
	return 3 * i, 3*i + 1, 3*i + 2
}

// ComputeNormals sets Normals to the area weighted average of the
// face normals around each vertex, replacing any existing normals.
func (p *Primitive) ComputeNormals() {
	norms := make([]math32.Vector3, len(p.Vertices))
	for i := range p.NumTriangles() {
		a, b, c := p.triangle(i)
		va, vb, vc := p.Vertices[a], p.Vertices[b], p.Vertices[c]
		fn := vb.Sub(va).Cross(vc.Sub(va))
		norms[a] = norms[a].Add(fn)
		norms[b] = norms[b].Add(fn)
		norms[c] = norms[c].Add(fn)
	}
	for i := range norms {
		norms[i] = norms[i].Normal()
	}
	p.Normals = norms
}

// appendFloats appends little-endian float32 values.
func appendFloats(b []byte, fs ...float32) []byte {
	for _, f := range fs {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	return b
}

// PositionBytes returns the vertex positions as little-endian
// float32 x, y, z triples for upload to a vertex buffer.
func (p *Primitive) PositionBytes() []byte {
	b := make([]byte, 0, len(p.Vertices)*12)
	for _, v := range p.Vertices {
		b = appendFloats(b, v.X, v.Y, v.Z)
	}
	return b
}

// NormalBytes returns the normals as little-endian float32 triples.
func (p *Primitive) NormalBytes() []byte {
	b := make([]byte, 0, len(p.Normals)*12)
	for _, n := range p.Normals {
		b = appendFloats(b, n.X, n.Y, n.Z)
	}
	return b
}

// UVBytes returns the texture coordinates as little-endian float32 pairs.
func (p *Primitive) UVBytes() []byte {
	b := make([]byte, 0, len(p.UVs)*8)
	for _, uv := range p.UVs {
		b = appendFloats(b, uv.X, uv.Y)
	}
	return b
}

// ColorBytes returns the colors as little-endian float32 r, g, b, a values.
func (p *Primitive) ColorBytes() []byte {
	b := make([]byte, 0, len(p.Colors)*16)
	for _, c := range p.Colors {
		b = appendFloats(b, c.X, c.Y, c.Z, c.W)
	}
	return b
}

// IndexBytes returns the little-endian uint32 index data
// for upload to an index buffer.
func (p *Primitive) IndexBytes() []byte {
	b := make([]byte, 0, len(p.Indices)*4)
	for _, ix := range p.Indices {
		b = binary.LittleEndian.AppendUint32(b, ix)
	}
	return b
}
