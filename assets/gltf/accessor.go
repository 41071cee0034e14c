// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"encoding/binary"
	"fmt"
	"math"
)

// component types
const (
	typeByte          = 5120
	typeUnsignedByte  = 5121
	typeShort         = 5122
	typeUnsignedShort = 5123
	typeUnsignedInt   = 5125
	typeFloat         = 5126
)

func componentSize(ct int) int {
	switch ct {
	case typeByte, typeUnsignedByte:
		return 1
	case typeShort, typeUnsignedShort:
		return 2
	case typeUnsignedInt, typeFloat:
		return 4
	}
	return 0
}

func numComponents(typ string) int {
	switch typ {
	case "SCALAR":
		return 1
	case "VEC2":
		return 2
	case "VEC3":
		return 3
	case "VEC4", "MAT2":
		return 4
	case "MAT3":
		return 9
	case "MAT4":
		return 16
	}
	return 0
}

// elements calls fn with the bytes of each element of accessor ai.
// An accessor without a buffer view yields zeroed elements.
func (dec *decoder) elements(ai int, fn func(i int, b []byte, ct int, normalized bool)) (comps int, err error) {
	if ai < 0 || ai >= len(dec.doc.Accessors) {
		return 0, fmt.Errorf("accessor %d out of range", ai)
	}
	a := dec.doc.Accessors[ai]
	if a.Sparse != nil {
		return 0, fmt.Errorf("accessor %d: sparse accessors are not supported", ai)
	}
	cs := componentSize(a.ComponentType)
	comps = numComponents(a.Type)
	if cs == 0 || comps == 0 {
		return 0, fmt.Errorf("accessor %d: invalid type %s/%d", ai, a.Type, a.ComponentType)
	}
	size := cs * comps
	if a.BufferView == nil {
		zero := make([]byte, size)
		for i := range a.Count {
			fn(i, zero, a.ComponentType, a.Normalized)
		}
		return comps, nil
	}
	vi := *a.BufferView
	if vi < 0 || vi >= len(dec.doc.BufferViews) {
		return 0, fmt.Errorf("accessor %d: buffer view %d out of range", ai, vi)
	}
	v := dec.doc.BufferViews[vi]
	if v.Buffer < 0 || v.Buffer >= len(dec.buffers) {
		return 0, fmt.Errorf("buffer view %d: buffer %d out of range", vi, v.Buffer)
	}
	buf := dec.buffers[v.Buffer]
	if v.ByteOffset > len(buf) || v.ByteLength > len(buf)-v.ByteOffset {
		return 0, fmt.Errorf("buffer view %d exceeds buffer %d", vi, v.Buffer)
	}
	view := buf[v.ByteOffset : v.ByteOffset+v.ByteLength]
	stride := v.ByteStride
	if stride == 0 {
		stride = size
	}
	if a.Count > 0 {
		last := a.ByteOffset + (a.Count-1)*stride
		if a.ByteOffset > len(view) || last > len(view)-size {
			return 0, fmt.Errorf("accessor %d exceeds buffer view %d", ai, vi)
		}
	}
	for i := range a.Count {
		off := a.ByteOffset + i*stride
		fn(i, view[off:off+size], a.ComponentType, a.Normalized)
	}
	return comps, nil
}

// component returns component j of element b as a float.
func component(b []byte, ct int, normalized bool, j int) float32 {
	switch ct {
	case typeFloat:
		return math.Float32frombits(binary.LittleEndian.Uint32(b[4*j:]))
	case typeUnsignedByte:
		v := float32(b[j])
		if normalized {
			v /= 255
		}
		return v
	case typeByte:
		v := float32(int8(b[j]))
		if normalized {
			v = max(v/127, -1)
		}
		return v
	case typeUnsignedShort:
		v := float32(binary.LittleEndian.Uint16(b[2*j:]))
		if normalized {
			v /= 65535
		}
		return v
	case typeShort:
		v := float32(int16(binary.LittleEndian.Uint16(b[2*j:])))
		if normalized {
			v = max(v/32767, -1)
		}
		return v
	case typeUnsignedInt:
		return float32(binary.LittleEndian.Uint32(b[4*j:]))
	}
	return 0
}

// floats reads accessor ai, which must have one of the given
// component counts, as a flat slice.
func (dec *decoder) floats(ai int, want ...int) ([]float32, int, error) {
	var out []float32
	comps, err := dec.elements(ai, func(i int, b []byte, ct int, normalized bool) {
		n := len(b) / componentSize(ct)
		for j := range n {
			out = append(out, component(b, ct, normalized, j))
		}
	})
	if err != nil {
		return nil, 0, err
	}
	for _, w := range want {
		if comps == w {
			return out, comps, nil
		}
	}
	return nil, 0, fmt.Errorf("accessor %d has %d components, want %v", ai, comps, want)
}

// indices reads an index accessor.
func (dec *decoder) indices(ai int) ([]uint32, error) {
	var out []uint32
	var bad error
	comps, err := dec.elements(ai, func(i int, b []byte, ct int, normalized bool) {
		switch ct {
		case typeUnsignedByte:
			out = append(out, uint32(b[0]))
		case typeUnsignedShort:
			out = append(out, uint32(binary.LittleEndian.Uint16(b)))
		case typeUnsignedInt:
			out = append(out, binary.LittleEndian.Uint32(b))
		default:
			bad = fmt.Errorf("accessor %d: invalid index component type %d", ai, ct)
		}
	})
	if err != nil {
		return nil, err
	}
	if bad != nil {
		return nil, bad
	}
	if comps != 1 {
		return nil, fmt.Errorf("accessor %d: indices must be SCALAR", ai)
	}
	return out, nil
}
