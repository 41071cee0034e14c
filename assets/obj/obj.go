// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obj parses the geometry of Wavefront OBJ files (*.obj).
// Materials are only tracked by name, to split objects into
// primitives; .mtl libraries are not read.
// Basic format info: https://en.wikipedia.org/wiki/Wavefront_.obj_file
package obj

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cogentcore.org/engine/geom"
	"cogentcore.org/engine/math32"
)

// Decoder contains all decoded data from an obj file.
type Decoder struct {
	Objects  []Object         // decoded objects
	Matlib   string           // name of the material lib, not read
	Vertices []math32.Vector3 // vertex positions
	Normals  []math32.Vector3 // vertex normals
	UVs      []math32.Vector2 // vertex texture coordinates
	Warnings []string         // warning messages

	line          int
	objCurrent    *Object
	matCurrent    string
	smoothCurrent bool
}

// Object contains all information about one decoded object.
type Object struct {
	Name  string
	Faces []Face
}

// Face is one polygon of an object. Index slices have one entry per
// corner, with noIndex where the corner has no uv or normal.
type Face struct {
	Vertices []int
	UVs      []int
	Normals  []int
	Material string
	Smooth   bool
}

const noIndex = -1

// Decode parses OBJ data and returns the scene with one mesh, and one
// root node, per object. Each run of faces with the same material
// becomes one primitive. Unsupported statements are reported in the
// warnings.
func Decode(data []byte) (*geom.Scene, []string, error) {
	dec := &Decoder{}
	if err := dec.Parse(bytes.NewReader(data)); err != nil {
		return nil, dec.Warnings, err
	}
	sc, err := dec.Scene()
	return sc, dec.Warnings, err
}

// Parse reads all the lines of an obj file.
func (dec *Decoder) Parse(r io.Reader) error {
	bufin := bufio.NewReader(r)
	dec.line = 1
	for {
		line, err := bufin.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		if perr := dec.parseLine(strings.TrimSpace(line)); perr != nil {
			return perr
		}
		if err == io.EOF {
			return nil
		}
		dec.line++
	}
}

func (dec *Decoder) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	switch ltype := fields[0]; ltype {
	case "mtllib":
		if len(fields) < 2 {
			return dec.formatError("mtllib with no fields")
		}
		dec.Matlib = fields[1]
	case "o", "g": // groups are treated as objects
		return dec.parseObject(fields[1:])
	case "v":
		v, err := dec.parseFloats(fields[1:], 3, "v")
		if err != nil {
			return err
		}
		dec.Vertices = append(dec.Vertices, math32.Vec3(v[0], v[1], v[2]))
	case "vn":
		v, err := dec.parseFloats(fields[1:], 3, "vn")
		if err != nil {
			return err
		}
		dec.Normals = append(dec.Normals, math32.Vec3(v[0], v[1], v[2]))
	case "vt":
		v, err := dec.parseFloats(fields[1:], 2, "vt")
		if err != nil {
			return err
		}
		dec.UVs = append(dec.UVs, math32.Vec2(v[0], v[1]))
	case "f":
		return dec.parseFace(fields[1:])
	case "usemtl":
		if len(fields) < 2 {
			return dec.formatError("usemtl with no fields")
		}
		dec.current()
		dec.matCurrent = fields[1]
	case "s":
		return dec.parseSmooth(fields[1:])
	default:
		dec.appendWarn("statement not supported: " + ltype)
	}
	return nil
}

func (dec *Decoder) parseObject(fields []string) error {
	name := strings.Join(fields, " ")
	if name == "" {
		name = fmt.Sprintf("unnamed%d", dec.line)
	}
	dec.Objects = append(dec.Objects, Object{Name: name})
	dec.objCurrent = &dec.Objects[len(dec.Objects)-1]
	return nil
}

// current returns the current object, creating a default one
// for files without o or g statements.
func (dec *Decoder) current() *Object {
	if dec.objCurrent == nil {
		dec.parseObject(nil)
	}
	return dec.objCurrent
}

func (dec *Decoder) parseFloats(fields []string, n int, ltype string) ([]float32, error) {
	if len(fields) < n {
		return nil, dec.formatError(fmt.Sprintf("fewer than %d values in %q", n, ltype))
	}
	vals := make([]float32, n)
	for i, f := range fields[:n] {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, dec.formatError(err.Error())
		}
		vals[i] = float32(v)
	}
	return vals, nil
}

// index resolves a 1-based or negative relative index into n elements.
func (dec *Decoder) index(s string, n int, what string) (int, error) {
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, dec.formatError(err.Error())
	}
	switch {
	case val > 0:
		val--
	case val < 0:
		val += n
	default:
		return 0, dec.formatError(what + " index equal to 0")
	}
	if val < 0 || val >= n {
		return 0, dec.formatError(fmt.Sprintf("%s index %s out of range", what, s))
	}
	return val, nil
}

// parseFace parses a face description line:
// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *Decoder) parseFace(fields []string) error {
	ob := dec.current()
	if len(fields) < 3 {
		return dec.formatError("face with fewer than 3 vertices")
	}
	face := Face{
		Vertices: make([]int, len(fields)),
		UVs:      make([]int, len(fields)),
		Normals:  make([]int, len(fields)),
		Material: dec.matCurrent,
		Smooth:   dec.smoothCurrent,
	}
	for pos, f := range fields {
		vf := strings.Split(f, "/")
		var err error
		face.Vertices[pos], err = dec.index(vf[0], len(dec.Vertices), "vertex")
		if err != nil {
			return err
		}
		face.UVs[pos] = noIndex
		if len(vf) > 1 && vf[1] != "" {
			if face.UVs[pos], err = dec.index(vf[1], len(dec.UVs), "uv"); err != nil {
				return err
			}
		}
		face.Normals[pos] = noIndex
		if len(vf) > 2 && vf[2] != "" {
			if face.Normals[pos], err = dec.index(vf[2], len(dec.Normals), "normal"); err != nil {
				return err
			}
		}
	}
	ob.Faces = append(ob.Faces, face)
	return nil
}

func (dec *Decoder) parseSmooth(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("'s' with no fields")
	}
	switch fields[0] {
	case "0", "off":
		dec.smoothCurrent = false
	case "1", "on":
		dec.smoothCurrent = true
	default:
		// numbered smoothing groups
		if _, err := strconv.Atoi(fields[0]); err != nil {
			return dec.formatError("'s' with invalid value")
		}
		dec.smoothCurrent = true
	}
	return nil
}

// Scene builds the decoded objects into a scene.
// Objects without faces are skipped.
func (dec *Decoder) Scene() (*geom.Scene, error) {
	sc := &geom.Scene{}
	for i := range dec.Objects {
		ob := &dec.Objects[i]
		if len(ob.Faces) == 0 {
			continue
		}
		m := dec.mesh(ob)
		for _, p := range m.Primitives {
			if err := p.Validate(); err != nil {
				return nil, err
			}
		}
		n := geom.NewNode(ob.Name)
		n.Mesh = len(sc.Meshes)
		sc.Meshes = append(sc.Meshes, m)
		sc.Roots = append(sc.Roots, len(sc.Nodes))
		sc.Nodes = append(sc.Nodes, n)
	}
	if len(sc.Meshes) == 0 {
		return nil, errors.New("obj: no faces")
	}
	return sc, nil
}

// mesh converts an object into a mesh with one primitive for each
// run of faces using the same material. Polygons are triangulated
// as fans around their first vertex.
func (dec *Decoder) mesh(ob *Object) *geom.Mesh {
	m := &geom.Mesh{Name: ob.Name}
	var p *geom.Primitive
	hasUVs := map[*geom.Primitive]bool{}
	for fi := range ob.Faces {
		face := &ob.Faces[fi]
		if p == nil || face.Material != p.Name {
			p = &geom.Primitive{Name: face.Material}
			m.Primitives = append(m.Primitives, p)
		}
		base := uint32(len(p.Vertices))
		a, b, c := dec.Vertices[face.Vertices[0]], dec.Vertices[face.Vertices[1]], dec.Vertices[face.Vertices[2]]
		flat := b.Sub(a).Cross(c.Sub(a)).Normal()
		for pos, vi := range face.Vertices {
			p.Vertices = append(p.Vertices, dec.Vertices[vi])
			if ni := face.Normals[pos]; ni != noIndex {
				p.Normals = append(p.Normals, dec.Normals[ni])
			} else {
				p.Normals = append(p.Normals, flat)
			}
			var uv math32.Vector2
			if ti := face.UVs[pos]; ti != noIndex {
				uv = dec.UVs[ti]
				hasUVs[p] = true
			}
			p.UVs = append(p.UVs, uv)
		}
		for k := 2; k < len(face.Vertices); k++ {
			p.Indices = append(p.Indices, base, base+uint32(k-1), base+uint32(k))
		}
	}
	for _, p := range m.Primitives {
		if !hasUVs[p] {
			p.UVs = nil
		}
		p.ComputeBounds()
	}
	return m
}

func (dec *Decoder) formatError(msg string) error {
	return fmt.Errorf("obj: %s in line %d", msg, dec.line)
}

func (dec *Decoder) appendWarn(msg string) {
	dec.Warnings = append(dec.Warnings, fmt.Sprintf("obj(%d): %s", dec.line, msg))
}
