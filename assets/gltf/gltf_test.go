// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"cogentcore.org/engine/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// triangleBuffer returns three float positions followed by
// three uint16 indexes.
func triangleBuffer() []byte {
	var b []byte
	for _, f := range []float32{0, 0, 0, 1, 0, 0, 0, 1, 0} {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	for _, ix := range []uint16{0, 1, 2} {
		b = binary.LittleEndian.AppendUint16(b, ix)
	}
	return b
}

func triangleDoc(uri string, extra string) string {
	if uri != "" {
		uri = fmt.Sprintf(`"uri": %q,`, uri)
	}
	return `{
	"asset": {"version": "2.0"},
	"scene": 0,
	"scenes": [{"nodes": [0]}],
	"nodes": [{"name": "root", "mesh": 0, "translation": [5, 0, 0], "children": [1]}, {"name": "child", "mesh": 0}],
	"meshes": [{"name": "tri", "primitives": [{"attributes": {"POSITION": 0}, "indices": 1` + extra + `}]}],
	"accessors": [
		{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
		{"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
	],
	"bufferViews": [
		{"buffer": 0, "byteOffset": 0, "byteLength": 36},
		{"buffer": 0, "byteOffset": 36, "byteLength": 6}
	],
	"buffers": [{` + uri + `"byteLength": 42}]
}`
}

func dataURI(b []byte) string {
	return "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(b)
}

func TestDecodeEmbedded(t *testing.T) {
	sc, err := Decode([]byte(triangleDoc(dataURI(triangleBuffer()), "")), nil)
	require.NoError(t, err)
	require.Len(t, sc.Meshes, 1)
	m := sc.Meshes[0]
	assert.Equal(t, "tri", m.Name)
	require.Len(t, m.Primitives, 1)
	p := m.Primitives[0]
	assert.Equal(t, 3, p.NumVertices())
	assert.Equal(t, 1, p.NumTriangles())
	assert.Equal(t, []uint32{0, 1, 2}, p.Indices)
	require.Len(t, p.Normals, 3)
	assert.Equal(t, math32.Vec3(0, 0, 1), p.Normals[0])

	require.Len(t, sc.Nodes, 2)
	assert.Equal(t, []int{0}, sc.Roots)
	assert.Equal(t, math32.Vec3(5, 0, 0), sc.Nodes[0].Translation)
	assert.Equal(t, []int{1}, sc.Nodes[0].Children)
	assert.Equal(t, 0, sc.Nodes[1].Mesh)

	bb := sc.Bounds()
	assert.Equal(t, math32.Vec3(5, 0, 0), bb.Min)
	assert.Equal(t, math32.Vec3(6, 1, 0), bb.Max)
}

func TestDecodeExternal(t *testing.T) {
	var asked string
	read := func(uri string) ([]byte, error) {
		asked = uri
		return triangleBuffer(), nil
	}
	sc, err := Decode([]byte(triangleDoc("tri%20data.bin", "")), read)
	require.NoError(t, err)
	assert.Equal(t, "tri data.bin", asked)
	assert.Len(t, sc.Meshes, 1)

	_, err = Decode([]byte(triangleDoc("tri.bin", "")), nil)
	assert.ErrorContains(t, err, "external file")

	fail := errors.New("missing")
	_, err = Decode([]byte(triangleDoc("tri.bin", "")), func(string) ([]byte, error) { return nil, fail })
	assert.ErrorIs(t, err, fail)
}

func makeGLB(js string, bin []byte) []byte {
	for len(js)%4 != 0 {
		js += " "
	}
	for len(bin)%4 != 0 {
		bin = append(bin, 0)
	}
	total := 12 + 8 + len(js) + 8 + len(bin)
	var b []byte
	b = binary.LittleEndian.AppendUint32(b, glbMagic)
	b = binary.LittleEndian.AppendUint32(b, 2)
	b = binary.LittleEndian.AppendUint32(b, uint32(total))
	b = binary.LittleEndian.AppendUint32(b, uint32(len(js)))
	b = binary.LittleEndian.AppendUint32(b, glbChunkJSON)
	b = append(b, js...)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(bin)))
	b = binary.LittleEndian.AppendUint32(b, glbChunkBIN)
	return append(b, bin...)
}

func TestDecodeGLB(t *testing.T) {
	data := makeGLB(triangleDoc("", ""), triangleBuffer())
	assert.True(t, IsGLB(data))
	sc, err := Decode(data, nil)
	require.NoError(t, err)
	require.Len(t, sc.Meshes, 1)
	assert.Equal(t, 1, sc.Meshes[0].NumTriangles())

	_, err = Decode(data[:len(data)-8], nil)
	assert.Error(t, err)
}

func TestDecodeErrors(t *testing.T) {
	buf := dataURI(triangleBuffer())
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{"json", `{"asset":`, "invalid JSON"},
		{"no version", `{"asset": {}}`, "missing asset version"},
		{"version 1", `{"asset": {"version": "1.0"}}`, "unsupported version"},
		{"min version", `{"asset": {"version": "2.0", "minVersion": "2.1"}}`, "needs version"},
		{"lines", triangleDoc(buf, `, "mode": 1`), "only triangles"},
		{"short buffer", `{"asset": {"version": "2.0"}, "buffers": [{"uri": "data:application/octet-stream;base64,AAAA", "byteLength": 8}]}`, "expected 8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc), nil)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestDecodeGLBHeaderLength(t *testing.T) {
	for _, total := range []uint32{0, 8, 11} {
		data := makeGLB(triangleDoc("", ""), triangleBuffer())
		binary.LittleEndian.PutUint32(data[8:], total)
		_, err := Decode(data, nil)
		assert.ErrorContains(t, err, "shorter than the header", "total %d", total)
	}
}

func TestDecodeBadSizes(t *testing.T) {
	buf := dataURI(triangleBuffer())
	tests := []struct {
		name     string
		from, to string
		msg      string
	}{
		{"view offset", `"byteOffset": 36, "byteLength": 6`, `"byteOffset": -4, "byteLength": 6`, "negative byteOffset"},
		{"view length", `"byteOffset": 0, "byteLength": 36`, `"byteOffset": 0, "byteLength": -1`, "negative byteLength"},
		{"view stride", `"byteOffset": 0, "byteLength": 36}`, `"byteOffset": 0, "byteLength": 36, "byteStride": -12}`, "byteStride"},
		{"view past buffer", `"byteOffset": 36, "byteLength": 6`, `"byteOffset": 9223372036854775807, "byteLength": 6`, "exceeds buffer"},
		{"accessor offset", `{"bufferView": 0, "componentType": 5126`, `{"bufferView": 0, "byteOffset": -8, "componentType": 5126`, "negative byteOffset"},
		{"accessor past view", `{"bufferView": 0, "componentType": 5126`, `{"bufferView": 0, "byteOffset": 40, "componentType": 5126`, "exceeds buffer view"},
		{"count", `"count": 3, "type": "VEC3"`, `"count": -3, "type": "VEC3"`, "negative count"},
		{"huge count", `"count": 3, "type": "VEC3"`, `"count": 1000000000, "type": "VEC3"`, "too large"},
		{"buffer length", `"byteLength": 42}]`, `"byteLength": -1}]`, "negative byteLength"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := triangleDoc(buf, "")
			require.Contains(t, doc, tt.from)
			doc = strings.Replace(doc, tt.from, tt.to, 1)
			var err error
			assert.NotPanics(t, func() {
				_, err = Decode([]byte(doc), nil)
			})
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestNoScenes(t *testing.T) {
	doc := `{"asset": {"version": "2.0"}, "nodes": [{"children": [2]}, {}, {}]}`
	sc, err := Decode([]byte(doc), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, sc.Roots)
	assert.Equal(t, -1, sc.Nodes[0].Mesh)
}

func TestDecomposeMatrix(t *testing.T) {
	// 90 degrees about z, scale 2, translate (1, 2, 3)
	m := []float32{
		0, 2, 0, 0,
		-2, 0, 0, 0,
		0, 0, 2, 0,
		1, 2, 3, 1,
	}
	tr, q, s := decompose(m)
	assert.Equal(t, math32.Vec3(1, 2, 3), tr)
	assert.InDelta(t, 2, s.X, 1e-6)
	assert.InDelta(t, 2, s.Z, 1e-6)
	h := float32(math.Sqrt2 / 2)
	assert.InDelta(t, 0, q.X, 1e-6)
	assert.InDelta(t, 0, q.Y, 1e-6)
	assert.InDelta(t, h, q.Z, 1e-6)
	assert.InDelta(t, h, q.W, 1e-6)
}

func TestNormalizedColors(t *testing.T) {
	b := []byte{255, 0, 51, 255}
	assert.InDelta(t, 1, component(b, typeUnsignedByte, true, 0), 1e-6)
	assert.InDelta(t, 0.2, component(b, typeUnsignedByte, true, 2), 1e-6)
	assert.Equal(t, float32(51), component(b, typeUnsignedByte, false, 2))
}
