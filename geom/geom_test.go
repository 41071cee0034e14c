// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"testing"

	"cogentcore.org/engine/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quad() *Primitive {
	return &Primitive{
		Name:     "quad",
		Vertices: []math32.Vector3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}},
		Indices:  []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestPrimitive(t *testing.T) {
	p := quad()
	require.NoError(t, p.Validate())
	assert.Equal(t, 4, p.NumVertices())
	assert.Equal(t, 2, p.NumTriangles())

	p.ComputeBounds()
	assert.Equal(t, math32.B3(0, 0, 0, 1, 1, 0), p.Bounds)

	p.ComputeNormals()
	require.Len(t, p.Normals, 4)
	for _, n := range p.Normals {
		assert.Equal(t, math32.Vec3(0, 0, 1), n)
	}

	assert.Len(t, p.PositionBytes(), 4*12)
	assert.Len(t, p.NormalBytes(), 4*12)
	assert.Empty(t, p.ColorBytes())
	assert.Len(t, p.IndexBytes(), 6*4)
	// 1.0 as a little-endian float32
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f}, p.NormalBytes()[8:12])
}

func TestValidate(t *testing.T) {
	p := quad()
	p.Indices = append(p.Indices, 0)
	assert.Error(t, p.Validate())

	p = quad()
	p.Indices[5] = 9
	assert.Error(t, p.Validate())

	p = quad()
	p.UVs = []math32.Vector2{{X: 0, Y: 0}}
	assert.Error(t, p.Validate())

	assert.Error(t, (&Primitive{}).Validate())

	p = &Primitive{Vertices: []math32.Vector3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}}
	assert.NoError(t, p.Validate())
	assert.Equal(t, 1, p.NumTriangles())
}

func TestSceneBounds(t *testing.T) {
	p := quad()
	p.ComputeBounds()
	m := &Mesh{Name: "quad", Primitives: []*Primitive{p}}
	assert.Equal(t, 2, m.NumTriangles())
	s := &Scene{Meshes: []*Mesh{m}}
	assert.Equal(t, p.Bounds, s.Bounds())

	parent := NewNode("parent")
	parent.Translation = math32.Vec3(10, 0, 0)
	parent.Children = []int{1}
	child := NewNode("child")
	child.Scale = math32.Vec3(2, 2, 2)
	child.Mesh = 0
	s.Nodes = []Node{parent, child}
	s.Roots = []int{0}

	bb := s.Bounds()
	assert.InDelta(t, 10, bb.Min.X, 1e-5)
	assert.InDelta(t, 12, bb.Max.X, 1e-5)
	assert.InDelta(t, 2, bb.Max.Y, 1e-5)

	empty := &Scene{Nodes: []Node{NewNode("lonely")}, Roots: []int{0}}
	assert.True(t, empty.Bounds().IsEmpty())
}
