// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gltf decodes glTF 2.0 scenes, in .gltf JSON or .glb binary
// form, into [geom.Scene] meshes and nodes. Materials, animation and
// skinning are ignored.
package gltf

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"cogentcore.org/engine/base/iox/jsonx"
	"cogentcore.org/engine/geom"
	"github.com/Masterminds/semver/v3"
)

// document is the subset of the glTF JSON schema that is decoded.
type document struct {
	Asset struct {
		Version    string `json:"version"`
		MinVersion string `json:"minVersion"`
		Generator  string `json:"generator"`
	} `json:"asset"`
	Scene       *int         `json:"scene"`
	Scenes      []scene      `json:"scenes"`
	Nodes       []node       `json:"nodes"`
	Meshes      []mesh       `json:"meshes"`
	Accessors   []accessor   `json:"accessors"`
	BufferViews []bufferView `json:"bufferViews"`
	Buffers     []buffer     `json:"buffers"`
}

type scene struct {
	Name  string `json:"name"`
	Nodes []int  `json:"nodes"`
}

type node struct {
	Name        string    `json:"name"`
	Mesh        *int      `json:"mesh"`
	Children    []int     `json:"children"`
	Translation []float32 `json:"translation"`
	Rotation    []float32 `json:"rotation"`
	Scale       []float32 `json:"scale"`
	Matrix      []float32 `json:"matrix"`
}

type mesh struct {
	Name       string      `json:"name"`
	Primitives []primitive `json:"primitives"`
}

type primitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices"`
	Mode       *int           `json:"mode"`
}

type accessor struct {
	BufferView    *int   `json:"bufferView"`
	ByteOffset    int    `json:"byteOffset"`
	ComponentType int    `json:"componentType"`
	Normalized    bool   `json:"normalized"`
	Count         int    `json:"count"`
	Type          string `json:"type"`
	Sparse        any    `json:"sparse"`
}

type bufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	ByteStride int `json:"byteStride"`
}

type buffer struct {
	URI        string `json:"uri"`
	ByteLength int    `json:"byteLength"`
}

// modeTriangles is the only supported primitive topology.
const modeTriangles = 4

// ReadURIFunc reads an external resource named by a relative URI.
type ReadURIFunc func(uri string) ([]byte, error)

// decoder holds the state of one Decode call.
type decoder struct {
	doc     document
	bin     []byte
	readURI ReadURIFunc
	buffers [][]byte
}

// Decode decodes a .gltf or .glb file. External buffers are read
// with readURI, which may be nil if the file has none.
func Decode(data []byte, readURI ReadURIFunc) (*geom.Scene, error) {
	dec := &decoder{readURI: readURI}
	jsonData := data
	if IsGLB(data) {
		var err error
		jsonData, dec.bin, err = splitGLB(data)
		if err != nil {
			return nil, err
		}
	}
	if err := jsonx.ReadBytes(&dec.doc, jsonData); err != nil {
		return nil, fmt.Errorf("gltf: invalid JSON: %w", err)
	}
	if err := dec.checkVersion(); err != nil {
		return nil, err
	}
	if err := dec.validate(); err != nil {
		return nil, err
	}
	if err := dec.loadBuffers(); err != nil {
		return nil, err
	}
	sc := &geom.Scene{}
	for mi := range dec.doc.Meshes {
		m, err := dec.mesh(mi)
		if err != nil {
			return nil, err
		}
		sc.Meshes = append(sc.Meshes, m)
	}
	if err := dec.nodes(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (dec *decoder) checkVersion() error {
	av := dec.doc.Asset.Version
	if av == "" {
		return errors.New("gltf: missing asset version")
	}
	v, err := semver.NewVersion(av)
	if err != nil {
		return fmt.Errorf("gltf: invalid asset version %q: %w", av, err)
	}
	if v.Major() != 2 {
		return fmt.Errorf("gltf: unsupported version %s, need 2.x", v)
	}
	if mv := dec.doc.Asset.MinVersion; mv != "" {
		c, err := semver.NewConstraint(">= " + mv)
		if err != nil {
			return fmt.Errorf("gltf: invalid minVersion %q: %w", mv, err)
		}
		if !c.Check(semver.MustParse("2.0")) {
			return fmt.Errorf("gltf: file needs version %s", mv)
		}
	}
	return nil
}

// maxCount bounds accessor counts. A count past it cannot be
// backed by real buffer data, and an accessor without a buffer view
// would otherwise allocate without limit.
const maxCount = 1 << 28

// validate rejects negative and out-of-range sizes in the document.
func (dec *decoder) validate() error {
	for i, b := range dec.doc.Buffers {
		if b.ByteLength < 0 {
			return fmt.Errorf("gltf: buffer %d: negative byteLength %d", i, b.ByteLength)
		}
	}
	for i, v := range dec.doc.BufferViews {
		switch {
		case v.ByteOffset < 0:
			return fmt.Errorf("gltf: buffer view %d: negative byteOffset %d", i, v.ByteOffset)
		case v.ByteLength < 0:
			return fmt.Errorf("gltf: buffer view %d: negative byteLength %d", i, v.ByteLength)
		case v.ByteStride != 0 && (v.ByteStride < 4 || v.ByteStride > 252):
			return fmt.Errorf("gltf: buffer view %d: byteStride %d not in [4, 252]", i, v.ByteStride)
		}
	}
	for i, a := range dec.doc.Accessors {
		switch {
		case a.ByteOffset < 0:
			return fmt.Errorf("gltf: accessor %d: negative byteOffset %d", i, a.ByteOffset)
		case a.Count < 0:
			return fmt.Errorf("gltf: accessor %d: negative count %d", i, a.Count)
		case a.Count > maxCount:
			return fmt.Errorf("gltf: accessor %d: count %d too large", i, a.Count)
		}
	}
	return nil
}

func (dec *decoder) loadBuffers() error {
	dec.buffers = make([][]byte, len(dec.doc.Buffers))
	for i, b := range dec.doc.Buffers {
		var data []byte
		var err error
		switch {
		case b.URI == "":
			if i != 0 || dec.bin == nil {
				return fmt.Errorf("gltf: buffer %d has no uri", i)
			}
			data = dec.bin
		case strings.HasPrefix(b.URI, "data:"):
			data, err = decodeDataURI(b.URI)
		default:
			if dec.readURI == nil {
				return fmt.Errorf("gltf: buffer %d refers to external file %q", i, b.URI)
			}
			name, uerr := url.PathUnescape(b.URI)
			if uerr != nil {
				name = b.URI
			}
			data, err = dec.readURI(name)
		}
		if err != nil {
			return fmt.Errorf("gltf: buffer %d: %w", i, err)
		}
		if len(data) < b.ByteLength {
			return fmt.Errorf("gltf: buffer %d has %d bytes, expected %d", i, len(data), b.ByteLength)
		}
		dec.buffers[i] = data[:b.ByteLength]
	}
	return nil
}

// decodeDataURI decodes a base64 data URI.
func decodeDataURI(uri string) ([]byte, error) {
	_, enc, ok := strings.Cut(uri, ";base64,")
	if !ok {
		return nil, errors.New("only base64 data URIs are supported")
	}
	return base64.StdEncoding.DecodeString(enc)
}

const (
	glbMagic     = 0x46546C67 // "glTF"
	glbChunkJSON = 0x4E4F534A
	glbChunkBIN  = 0x004E4942
)

// IsGLB returns whether data starts with the binary glTF header.
func IsGLB(data []byte) bool {
	return len(data) >= 12 && binary.LittleEndian.Uint32(data) == glbMagic
}

// splitGLB returns the JSON and BIN chunks of a .glb container.
func splitGLB(data []byte) (jsonData, bin []byte, err error) {
	if v := binary.LittleEndian.Uint32(data[4:]); v != 2 {
		return nil, nil, fmt.Errorf("gltf: unsupported glb container version %d", v)
	}
	total := int(binary.LittleEndian.Uint32(data[8:]))
	if total < 12 {
		return nil, nil, fmt.Errorf("gltf: glb length %d is shorter than the header", total)
	}
	if total > len(data) {
		return nil, nil, fmt.Errorf("gltf: glb length %d exceeds data size %d", total, len(data))
	}
	rest := data[12:total]
	for len(rest) >= 8 {
		n := int(binary.LittleEndian.Uint32(rest))
		typ := binary.LittleEndian.Uint32(rest[4:])
		if n > len(rest)-8 {
			return nil, nil, errors.New("gltf: truncated glb chunk")
		}
		chunk := rest[8 : 8+n]
		switch typ {
		case glbChunkJSON:
			if jsonData == nil {
				jsonData = bytes.TrimRight(chunk, " \x00")
			}
		case glbChunkBIN:
			if bin == nil {
				bin = chunk
			}
		}
		rest = rest[8+n:]
	}
	if jsonData == nil {
		return nil, nil, errors.New("gltf: glb has no JSON chunk")
	}
	return jsonData, bin, nil
}

// mesh decodes mesh mi.
func (dec *decoder) mesh(mi int) (*geom.Mesh, error) {
	gm := dec.doc.Meshes[mi]
	m := &geom.Mesh{Name: gm.Name}
	for pi, gp := range gm.Primitives {
		p, err := dec.primitive(gm.Name, gp)
		if err != nil {
			return nil, fmt.Errorf("gltf: mesh %d primitive %d: %w", mi, pi, err)
		}
		m.Primitives = append(m.Primitives, p)
	}
	return m, nil
}
