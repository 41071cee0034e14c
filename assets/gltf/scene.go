// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"fmt"

	"cogentcore.org/engine/geom"
	"cogentcore.org/engine/math32"
)

// primitive decodes the vertex streams of one triangle primitive.
func (dec *decoder) primitive(name string, gp primitive) (*geom.Primitive, error) {
	if gp.Mode != nil && *gp.Mode != modeTriangles {
		return nil, fmt.Errorf("unsupported mode %d, only triangles are supported", *gp.Mode)
	}
	pos, ok := gp.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("missing POSITION attribute")
	}
	p := &geom.Primitive{Name: name}
	fs, _, err := dec.floats(pos, 3)
	if err != nil {
		return nil, err
	}
	p.Vertices = make([]math32.Vector3, len(fs)/3)
	for i := range p.Vertices {
		p.Vertices[i] = math32.Vec3(fs[3*i], fs[3*i+1], fs[3*i+2])
	}
	n := len(p.Vertices)
	if ai, ok := gp.Attributes["NORMAL"]; ok {
		fs, _, err := dec.floats(ai, 3)
		if err != nil {
			return nil, err
		}
		p.Normals = make([]math32.Vector3, len(fs)/3)
		for i := range p.Normals {
			p.Normals[i] = math32.Vec3(fs[3*i], fs[3*i+1], fs[3*i+2])
		}
	}
	if ai, ok := gp.Attributes["TEXCOORD_0"]; ok {
		fs, _, err := dec.floats(ai, 2)
		if err != nil {
			return nil, err
		}
		p.UVs = make([]math32.Vector2, len(fs)/2)
		for i := range p.UVs {
			p.UVs[i] = math32.Vec2(fs[2*i], fs[2*i+1])
		}
	}
	if ai, ok := gp.Attributes["COLOR_0"]; ok {
		fs, comps, err := dec.floats(ai, 3, 4)
		if err != nil {
			return nil, err
		}
		p.Colors = make([]math32.Vector4, len(fs)/comps)
		for i := range p.Colors {
			c := fs[comps*i:]
			a := float32(1)
			if comps == 4 {
				a = c[3]
			}
			p.Colors[i] = math32.Vec4(c[0], c[1], c[2], a)
		}
	}
	if gp.Indices != nil {
		p.Indices, err = dec.indices(*gp.Indices)
		if err != nil {
			return nil, err
		}
	} else {
		p.Indices = make([]uint32, n)
		for i := range p.Indices {
			p.Indices[i] = uint32(i)
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(p.Normals) == 0 {
		p.ComputeNormals()
	}
	p.ComputeBounds()
	return p, nil
}

// nodes decodes the node hierarchy and the root nodes of the
// default scene.
func (dec *decoder) nodes(sc *geom.Scene) error {
	nn := len(dec.doc.Nodes)
	for i, gn := range dec.doc.Nodes {
		n := geom.NewNode(gn.Name)
		if gn.Mesh != nil {
			if *gn.Mesh < 0 || *gn.Mesh >= len(sc.Meshes) {
				return fmt.Errorf("gltf: node %d: mesh %d out of range", i, *gn.Mesh)
			}
			n.Mesh = *gn.Mesh
		}
		for _, c := range gn.Children {
			if c < 0 || c >= nn {
				return fmt.Errorf("gltf: node %d: child %d out of range", i, c)
			}
		}
		n.Children = gn.Children
		if err := setTransform(&n, gn); err != nil {
			return fmt.Errorf("gltf: node %d: %w", i, err)
		}
		sc.Nodes = append(sc.Nodes, n)
	}
	if len(dec.doc.Scenes) > 0 {
		si := 0
		if dec.doc.Scene != nil {
			si = *dec.doc.Scene
		}
		if si < 0 || si >= len(dec.doc.Scenes) {
			return fmt.Errorf("gltf: scene %d out of range", si)
		}
		for _, r := range dec.doc.Scenes[si].Nodes {
			if r < 0 || r >= nn {
				return fmt.Errorf("gltf: scene %d: node %d out of range", si, r)
			}
		}
		sc.Roots = dec.doc.Scenes[si].Nodes
		return nil
	}
	child := make([]bool, nn)
	for _, gn := range dec.doc.Nodes {
		for _, c := range gn.Children {
			child[c] = true
		}
	}
	for i := range nn {
		if !child[i] {
			sc.Roots = append(sc.Roots, i)
		}
	}
	return nil
}

func setTransform(n *geom.Node, gn node) error {
	if len(gn.Matrix) > 0 {
		if len(gn.Matrix) != 16 {
			return fmt.Errorf("matrix has %d elements", len(gn.Matrix))
		}
		n.Translation, n.Rotation, n.Scale = decompose(gn.Matrix)
		return nil
	}
	switch len(gn.Translation) {
	case 0:
	case 3:
		n.Translation = math32.Vec3(gn.Translation[0], gn.Translation[1], gn.Translation[2])
	default:
		return fmt.Errorf("translation has %d elements", len(gn.Translation))
	}
	switch len(gn.Rotation) {
	case 0:
	case 4:
		n.Rotation = math32.NewQuat(gn.Rotation[0], gn.Rotation[1], gn.Rotation[2], gn.Rotation[3])
	default:
		return fmt.Errorf("rotation has %d elements", len(gn.Rotation))
	}
	switch len(gn.Scale) {
	case 0:
	case 3:
		n.Scale = math32.Vec3(gn.Scale[0], gn.Scale[1], gn.Scale[2])
	default:
		return fmt.Errorf("scale has %d elements", len(gn.Scale))
	}
	return nil
}

// decompose splits a column-major affine matrix without shear into
// translation, rotation and scale.
func decompose(m []float32) (t math32.Vector3, q math32.Quat, s math32.Vector3) {
	t = math32.Vec3(m[12], m[13], m[14])
	sx := math32.Vec3(m[0], m[1], m[2]).Length()
	sy := math32.Vec3(m[4], m[5], m[6]).Length()
	sz := math32.Vec3(m[8], m[9], m[10]).Length()
	s = math32.Vec3(sx, sy, sz)
	if sx == 0 || sy == 0 || sz == 0 {
		return t, math32.QuatIdentity(), s
	}
	// rotation matrix elements, row r column c
	r00, r10, r20 := m[0]/sx, m[1]/sx, m[2]/sx
	r01, r11, r21 := m[4]/sy, m[5]/sy, m[6]/sy
	r02, r12, r22 := m[8]/sz, m[9]/sz, m[10]/sz
	trace := r00 + r11 + r22
	switch {
	case trace > 0:
		k := 0.5 / math32.Sqrt(trace+1)
		q = math32.NewQuat((r21-r12)*k, (r02-r20)*k, (r10-r01)*k, 0.25/k)
	case r00 > r11 && r00 > r22:
		k := 2 * math32.Sqrt(1+r00-r11-r22)
		q = math32.NewQuat(0.25*k, (r01+r10)/k, (r02+r20)/k, (r21-r12)/k)
	case r11 > r22:
		k := 2 * math32.Sqrt(1+r11-r00-r22)
		q = math32.NewQuat((r01+r10)/k, 0.25*k, (r12+r21)/k, (r02-r20)/k)
	default:
		k := 2 * math32.Sqrt(1+r22-r00-r11)
		q = math32.NewQuat((r02+r20)/k, (r12+r21)/k, 0.25*k, (r10-r01)/k)
	}
	return t, q.Normal(), s
}
