// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kinds

import (
	"fmt"
	"path"
	"strings"

	"cogentcore.org/engine/assets"
	"cogentcore.org/engine/assets/gltf"
	"cogentcore.org/engine/assets/obj"
	"cogentcore.org/engine/geom"
	"cogentcore.org/engine/gpu"
	"cogentcore.org/engine/math32"
)

// Model is a glTF or OBJ model. Each of its meshes is uploaded and
// registered as the sub-asset "<path>:mesh_<i>", which is freed
// together with the model.
type Model struct {
	dev gpu.Device

	// Scene is the decoded node hierarchy and mesh data.
	Scene *geom.Scene

	// Meshes are the identifiers of the mesh sub-assets,
	// in the order of Scene.Meshes.
	Meshes []string
}

// NewModel returns an unloaded model that uploads to dev.
func NewModel(dev gpu.Device) *Model {
	return &Model{dev: dev}
}

func (md *Model) Kind() assets.Kind { return ModelKind }

func (md *Model) Load(ctx *assets.LoadContext) error {
	b, err := ctx.ReadFile()
	if err != nil {
		return err
	}
	var sc *geom.Scene
	switch ext := strings.ToLower(path.Ext(ctx.Path())); ext {
	case ".gltf", ".glb":
		sc, err = gltf.Decode(b, ctx.ReadRelative)
	case ".obj":
		var warns []string
		sc, warns, err = obj.Decode(b)
		for _, w := range warns {
			ctx.Logger().Debug("model file", "file", ctx.Path(), "warning", w)
		}
	default:
		err = fmt.Errorf("unknown model format %q", ext)
	}
	if err != nil {
		return err
	}
	for i, gm := range sc.Meshes {
		name := assets.MeshSubassetName(i)
		ms := NewMesh(md.dev, gm)
		if err := ms.Upload(ctx.Identifier() + ":" + name); err != nil {
			return err
		}
		h := ctx.SubassetHandle(name)
		if err := ctx.RegisterSubasset(ms, h); err != nil {
			ms.Release()
			return err
		}
		md.Meshes = append(md.Meshes, assets.NormalizeIdentifier(assets.SubassetIdentifier(ctx.Path(), name)))
	}
	md.Scene = sc
	return nil
}

// Bounds returns the bounds of the scene.
func (md *Model) Bounds() math32.Box3 {
	if md.Scene == nil {
		return math32.B3Empty()
	}
	return md.Scene.Bounds()
}

// Release drops the scene. The meshes are released by the catalog.
func (md *Model) Release() {
	md.Scene = nil
	md.Meshes = nil
}
