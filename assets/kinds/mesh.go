// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kinds

import (
	"fmt"

	"cogentcore.org/engine/assets"
	"cogentcore.org/engine/geom"
	"cogentcore.org/engine/gpu"
	"cogentcore.org/engine/math32"
)

// Mesh is a mesh of a model, with its primitives uploaded into
// GPU buffers. Meshes are sub-assets created by [Model].
type Mesh struct {
	dev gpu.Device

	Name       string
	Primitives []*geom.Primitive

	// Buffers has the GPU buffers of each primitive, once uploaded.
	Buffers []PrimitiveBuffers
}

// PrimitiveBuffers are the GPU buffers of one primitive.
// UV and Color are nil when the primitive has no such attribute.
type PrimitiveBuffers struct {
	Position gpu.Buffer
	Normal   gpu.Buffer
	UV       gpu.Buffer
	Color    gpu.Buffer
	Index    gpu.Buffer
}

func (pb *PrimitiveBuffers) release() {
	for _, b := range []gpu.Buffer{pb.Position, pb.Normal, pb.UV, pb.Color, pb.Index} {
		if b != nil {
			b.Release()
		}
	}
	*pb = PrimitiveBuffers{}
}

// NewMesh returns a mesh with the primitives of m, not yet uploaded.
func NewMesh(dev gpu.Device, m *geom.Mesh) *Mesh {
	return &Mesh{dev: dev, Name: m.Name, Primitives: m.Primitives}
}

func (ms *Mesh) Kind() assets.Kind { return MeshKind }

// Load uploads the primitives, if any. Mesh data is not read from
// files, only decoded by models.
func (ms *Mesh) Load(ctx *assets.LoadContext) error {
	if len(ms.Primitives) == 0 {
		return nil
	}
	return ms.Upload(ctx.Identifier())
}

// Upload creates the GPU buffers of all the primitives, labeled with
// the given prefix. On error no buffers are left allocated.
func (ms *Mesh) Upload(label string) error {
	ms.Release()
	for i, p := range ms.Primitives {
		var pb PrimitiveBuffers
		err := pb.upload(ms.dev, fmt.Sprintf("%s/%d", label, i), p)
		ms.Buffers = append(ms.Buffers, pb)
		if err != nil {
			ms.Release()
			return err
		}
	}
	return nil
}

func (pb *PrimitiveBuffers) upload(dev gpu.Device, label string, p *geom.Primitive) error {
	if len(p.Normals) == 0 {
		p.ComputeNormals()
	}
	var err error
	newBuffer := func(name string, usage gpu.BufferUsage, data []byte) gpu.Buffer {
		if err != nil || len(data) == 0 {
			return nil
		}
		var b gpu.Buffer
		b, err = dev.NewBuffer(label+"/"+name, usage, data)
		return b
	}
	pb.Position = newBuffer("position", gpu.VertexBuffer, p.PositionBytes())
	pb.Normal = newBuffer("normal", gpu.VertexBuffer, p.NormalBytes())
	pb.UV = newBuffer("uv", gpu.VertexBuffer, p.UVBytes())
	pb.Color = newBuffer("color", gpu.VertexBuffer, p.ColorBytes())
	pb.Index = newBuffer("index", gpu.IndexBuffer, p.IndexBytes())
	return err
}

// Bounds returns the bounds of all the primitives.
func (ms *Mesh) Bounds() math32.Box3 {
	return (&geom.Mesh{Primitives: ms.Primitives}).Bounds()
}

// NumTriangles returns the total number of triangles.
func (ms *Mesh) NumTriangles() int {
	return (&geom.Mesh{Primitives: ms.Primitives}).NumTriangles()
}

func (ms *Mesh) Release() {
	for i := range ms.Buffers {
		ms.Buffers[i].release()
	}
	ms.Buffers = nil
}
