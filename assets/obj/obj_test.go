// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj

import (
	"testing"

	"cogentcore.org/engine/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cube = `# two faces of a cube
mtllib cube.mtl
o cube
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl red
s off
f 1/1/1 2/2/1 3/3/1 4/4/1
usemtl blue
f -5 -4 -1
o empty
`

func TestDecode(t *testing.T) {
	sc, warns, err := Decode([]byte(cube))
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, sc.Meshes, 1)
	require.Len(t, sc.Nodes, 1)
	assert.Equal(t, "cube", sc.Nodes[0].Name)
	assert.Equal(t, 0, sc.Nodes[0].Mesh)
	assert.Equal(t, []int{0}, sc.Roots)

	m := sc.Meshes[0]
	require.Len(t, m.Primitives, 2)
	quad := m.Primitives[0]
	assert.Equal(t, "red", quad.Name)
	assert.Equal(t, 4, quad.NumVertices())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, quad.Indices)
	assert.Len(t, quad.UVs, 4)
	assert.Equal(t, math32.Vec2(1, 1), quad.UVs[2])
	assert.Equal(t, math32.Vec3(0, 0, 1), quad.Normals[3])

	tri := m.Primitives[1]
	assert.Equal(t, "blue", tri.Name)
	assert.Equal(t, 1, tri.NumTriangles())
	assert.Nil(t, tri.UVs)
	require.Len(t, tri.Normals, 3)
	// flat normal of (0,0,0) (1,0,0) (0,0,1)
	assert.Equal(t, math32.Vec3(0, -1, 0), tri.Normals[0])
	assert.Equal(t, math32.Vec3(1, 0, 1), tri.Bounds.Max)

	assert.Equal(t, 3, m.NumTriangles())
}

func TestDefaultObject(t *testing.T) {
	sc, warns, err := Decode([]byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\nl 1 2\n"))
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "obj(5)")
	require.Len(t, sc.Nodes, 1)
	assert.Equal(t, "unnamed4", sc.Nodes[0].Name)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"no faces", "v 0 0 0\n", "no faces"},
		{"short vertex", "v 0 0\n", "fewer than 3"},
		{"bad float", "v 0 x 0\n", "line 1"},
		{"zero index", "v 0 0 0\nf 0 1 1\n", "equal to 0"},
		{"out of range", "v 0 0 0\nf 1 2 3\n", "out of range"},
		{"short face", "v 0 0 0\nf 1 1\n", "fewer than 3 vertices in line 2"},
		{"smooth", "s maybe\n", "invalid value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode([]byte(tt.src))
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}
