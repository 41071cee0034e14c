// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build wgpu

// Package wgpu provides a [gpu.Device] backed by WebGPU.
// It needs the native wgpu library and is only built with the wgpu tag.
package wgpu

import (
	"fmt"
	"image"
	"sync"

	"cogentcore.org/engine/base/errors"
	"cogentcore.org/engine/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Device is a WebGPU device and its queue.
type Device struct {
	mu       sync.Mutex
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
}

// NewDevice creates a WebGPU instance, requests the default
// high performance adapter and opens a device on it.
// No surface is created.
func NewDevice() (*Device, error) {
	inst := wgpu.CreateInstance(nil)
	ad, err := inst.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if errors.Log(err) != nil {
		inst.Release()
		return nil, err
	}
	dev, err := ad.RequestDevice(nil)
	if errors.Log(err) != nil {
		ad.Release()
		inst.Release()
		return nil, err
	}
	return &Device{instance: inst, adapter: ad, device: dev, queue: dev.GetQueue()}, nil
}

// Release releases the device, adapter and instance.
func (d *Device) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.device == nil {
		return
	}
	d.queue.Release()
	d.device.Release()
	d.adapter.Release()
	d.instance.Release()
	d.device = nil
}

func (d *Device) NewTexture(label string, img *image.RGBA) (gpu.Texture, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	sz := img.Rect.Size()
	size := wgpu.Extent3D{Width: uint32(sz.X), Height: uint32(sz.Y), DepthOrArrayLayers: 1}
	t, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	d.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  t,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
		},
		img.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(img.Stride),
			RowsPerImage: uint32(sz.Y),
		},
		&size,
	)
	return &texture{label: label, size: sz, texture: t}, nil
}

func bufferUsage(u gpu.BufferUsage) (wgpu.BufferUsage, error) {
	switch u {
	case gpu.VertexBuffer:
		return wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst, nil
	case gpu.IndexBuffer:
		return wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst, nil
	case gpu.UniformBuffer:
		return wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst, nil
	}
	return 0, fmt.Errorf("wgpu: buffer usage %v not supported", u)
}

func (d *Device) NewBuffer(label string, usage gpu.BufferUsage, data []byte) (gpu.Buffer, error) {
	wu, err := bufferUsage(usage)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	buf, err := d.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: data,
		Usage:    wu,
	})
	if err != nil {
		return nil, err
	}
	return &buffer{label: label, usage: usage, size: len(data), buffer: buf}, nil
}

// NewShader compiles WGSL source. Other shading languages
// fail to compile and return the compiler error.
func (d *Device) NewShader(label string, stage gpu.ShaderStage, source string) (gpu.Shader, error) {
	if source == "" {
		return nil, gpu.ErrEmptyShader
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	mod, err := d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: source},
	})
	if err != nil {
		return nil, err
	}
	return &shader{label: label, stage: stage, module: mod}, nil
}

type texture struct {
	once    sync.Once
	label   string
	size    image.Point
	texture *wgpu.Texture
}

func (t *texture) Label() string     { return t.label }
func (t *texture) Size() image.Point { return t.size }
func (t *texture) Release()          { t.once.Do(t.texture.Release) }

type buffer struct {
	once   sync.Once
	label  string
	usage  gpu.BufferUsage
	size   int
	buffer *wgpu.Buffer
}

func (b *buffer) Label() string          { return b.label }
func (b *buffer) Usage() gpu.BufferUsage { return b.usage }
func (b *buffer) Size() int              { return b.size }
func (b *buffer) Release()               { b.once.Do(b.buffer.Release) }

type shader struct {
	once   sync.Once
	label  string
	stage  gpu.ShaderStage
	module *wgpu.ShaderModule
}

func (s *shader) Label() string          { return s.label }
func (s *shader) Stage() gpu.ShaderStage { return s.stage }
func (s *shader) Release()               { s.once.Do(s.module.Release) }
