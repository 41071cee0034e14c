// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kinds

import (
	"fmt"
	"path"
	"strings"

	"cogentcore.org/engine/assets"
	"cogentcore.org/engine/gpu"
)

// Shader is a shader source file compiled into a GPU shader module.
// It reloads in place: a new version that fails to compile leaves
// the previous module in use.
type Shader struct {
	dev gpu.Device

	// Shader is the compiled module.
	Shader gpu.Shader

	// Stage is the set of stages with entry points in the source.
	Stage gpu.ShaderStage

	// Source is the source of the compiled module.
	Source string

	// Version counts the successful reloads.
	Version int
}

// NewShader returns an unloaded shader compiled on dev.
func NewShader(dev gpu.Device) *Shader {
	return &Shader{dev: dev}
}

// ShaderStageFor returns the stages of a shader file: .vs is a vertex
// shader, .fs a fragment shader, and .wgsl has the stages of its
// @vertex, @fragment and @compute entry points.
func ShaderStageFor(file, source string) (gpu.ShaderStage, error) {
	switch strings.ToLower(path.Ext(file)) {
	case ".vs":
		return gpu.VertexShader, nil
	case ".fs":
		return gpu.FragmentShader, nil
	case ".wgsl":
		var st gpu.ShaderStage
		if strings.Contains(source, "@vertex") {
			st |= gpu.VertexShader
		}
		if strings.Contains(source, "@fragment") {
			st |= gpu.FragmentShader
		}
		if strings.Contains(source, "@compute") {
			st |= gpu.ComputeShader
		}
		if st == 0 {
			return 0, fmt.Errorf("%s has no entry point", file)
		}
		return st, nil
	}
	return 0, fmt.Errorf("%s is not a shader file", file)
}

func (sh *Shader) Kind() assets.Kind { return ShaderKind }

// compile builds the current file without changing sh.
func (sh *Shader) compile(ctx *assets.LoadContext) (gpu.Shader, gpu.ShaderStage, string, error) {
	b, err := ctx.ReadFile()
	if err != nil {
		return nil, 0, "", err
	}
	src := string(b)
	st, err := ShaderStageFor(ctx.Path(), src)
	if err != nil {
		return nil, 0, "", err
	}
	s, err := sh.dev.NewShader(ctx.Identifier(), st, src)
	if err != nil {
		return nil, 0, "", err
	}
	return s, st, src, nil
}

func (sh *Shader) Load(ctx *assets.LoadContext) error {
	s, st, src, err := sh.compile(ctx)
	if err != nil {
		return err
	}
	sh.Shader, sh.Stage, sh.Source = s, st, src
	return nil
}

func (sh *Shader) Reload(ctx *assets.LoadContext) error {
	s, st, src, err := sh.compile(ctx)
	if err != nil {
		return err
	}
	if sh.Shader != nil {
		sh.Shader.Release()
	}
	sh.Shader, sh.Stage, sh.Source = s, st, src
	sh.Version++
	return nil
}

func (sh *Shader) Release() {
	if sh.Shader != nil {
		sh.Shader.Release()
		sh.Shader = nil
	}
}
