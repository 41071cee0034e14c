// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu defines the rendering backend contract that asset kinds
// upload into: a [Device] creating textures, buffers and shader modules,
// each with an explicit Release. [Headless] is an accounting device
// for tools and tests; the gpu/wgpu package provides a WebGPU device.
package gpu

import (
	"fmt"
	"image"
	"strings"
)

// Device creates GPU resources. Implementations must be safe
// for concurrent use.
type Device interface {
	// NewTexture uploads the given image as a 2D RGBA8 texture.
	NewTexture(label string, img *image.RGBA) (Texture, error)

	// NewBuffer creates a buffer with the given usage, initialized from data.
	NewBuffer(label string, usage BufferUsage, data []byte) (Buffer, error)

	// NewShader compiles shader source for the given stages.
	NewShader(label string, stage ShaderStage, source string) (Shader, error)
}

// Texture is a device texture.
type Texture interface {
	Label() string
	Size() image.Point
	Release()
}

// Buffer is a device buffer.
type Buffer interface {
	Label() string
	Usage() BufferUsage
	Size() int
	Release()
}

// Shader is a compiled shader module.
type Shader interface {
	Label() string
	Stage() ShaderStage
	Release()
}

// BufferUsage specifies how a buffer is used.
type BufferUsage int32

const (
	VertexBuffer BufferUsage = iota
	IndexBuffer
	UniformBuffer
)

func (u BufferUsage) String() string {
	switch u {
	case VertexBuffer:
		return "Vertex"
	case IndexBuffer:
		return "Index"
	case UniformBuffer:
		return "Uniform"
	}
	return fmt.Sprintf("BufferUsage(%d)", int32(u))
}

// ShaderStage is a set of shader stages, as bit flags.
// A WGSL module can hold entry points for several stages.
type ShaderStage int32

const (
	VertexShader ShaderStage = 1 << iota
	FragmentShader
	ComputeShader

	AllStages = VertexShader | FragmentShader | ComputeShader
)

// Has returns whether s includes all stages in other.
func (s ShaderStage) Has(other ShaderStage) bool {
	return s&other == other
}

func (s ShaderStage) String() string {
	if s == 0 {
		return "None"
	}
	var parts []string
	if s.Has(VertexShader) {
		parts = append(parts, "Vertex")
	}
	if s.Has(FragmentShader) {
		parts = append(parts, "Fragment")
	}
	if s.Has(ComputeShader) {
		parts = append(parts, "Compute")
	}
	return strings.Join(parts, "|")
}
