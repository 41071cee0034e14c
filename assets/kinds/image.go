// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kinds

import (
	"cogentcore.org/engine/assets"
	"cogentcore.org/engine/base/iox/imagex"
	"cogentcore.org/engine/gpu"
)

// Image is an image file uploaded as a GPU texture.
// Rows are flipped so that the first row is the bottom of the image.
type Image struct {
	dev gpu.Device

	// Texture is the uploaded texture.
	Texture gpu.Texture

	// Format is the decoded file format.
	Format imagex.Formats

	Width  int
	Height int
}

// NewImage returns an unloaded image that uploads to dev.
func NewImage(dev gpu.Device) *Image {
	return &Image{dev: dev}
}

func (im *Image) Kind() assets.Kind { return ImageKind }

func (im *Image) Load(ctx *assets.LoadContext) error {
	b, err := ctx.ReadFile()
	if err != nil {
		return err
	}
	img, f, err := imagex.Decode(b)
	if err != nil {
		return err
	}
	rgba := imagex.FlipV(img)
	tx, err := im.dev.NewTexture(ctx.Identifier(), rgba)
	if err != nil {
		return err
	}
	im.Texture = tx
	im.Format = f
	im.Width, im.Height = rgba.Rect.Dx(), rgba.Rect.Dy()
	return nil
}

func (im *Image) Release() {
	if im.Texture != nil {
		im.Texture.Release()
		im.Texture = nil
	}
}
