// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kinds provides the standard asset kinds: text, images,
// shaders, audio, and models with their mesh sub-assets.
package kinds

import (
	"cogentcore.org/engine/assets"
	"cogentcore.org/engine/gpu"
)

// The standard kinds.
const (
	TextKind   assets.Kind = "text"
	ImageKind  assets.Kind = "image"
	ShaderKind assets.Kind = "shader"
	AudioKind  assets.Kind = "audio"
	MeshKind   assets.Kind = "mesh"
	ModelKind  assets.Kind = "model"
)

// Default returns the standard extension table, with GPU resources
// created on dev. Meshes have no extension: they only exist as
// sub-assets of models.
func Default(dev gpu.Device) []assets.KindInfo {
	return []assets.KindInfo{
		{Kind: TextKind, Exts: []string{".txt"}, New: func() assets.Asset { return &Text{} }},
		{Kind: ImageKind, Exts: []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}, New: func() assets.Asset { return NewImage(dev) }},
		{Kind: ShaderKind, Exts: []string{".vs", ".fs", ".wgsl"}, New: func() assets.Asset { return NewShader(dev) }},
		{Kind: ModelKind, Exts: []string{".gltf", ".glb", ".obj"}, New: func() assets.Asset { return NewModel(dev) }},
		{Kind: AudioKind, Exts: []string{".wav"}, New: func() assets.Asset { return &Audio{} }},
	}
}

// Register installs the standard kinds on the catalog.
func Register(cat *assets.Catalog, dev gpu.Device) {
	for _, ki := range Default(dev) {
		for _, ext := range ki.Exts {
			cat.RegisterKind(ext, ki.Kind, ki.New)
		}
	}
}
