// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"image"
	"log/slog"
	"strings"
	"sync"
)

// Headless is a [Device] that keeps resource data in host memory
// and accounts for every creation and release. It is used by the
// command line tools and by tests, which check that each resource
// is released exactly once.
type Headless struct {
	mu    sync.Mutex
	stats Stats
	fail  error
}

// Stats are the resource counts of a [Headless] device.
type Stats struct {
	// Live resources by type.
	Textures int
	Buffers  int
	Shaders  int

	// Bytes of live resource data.
	Bytes int64

	// Created and Released are running totals over all types.
	Created  int
	Released int

	// DoubleReleases counts Release calls on already released resources.
	DoubleReleases int
}

// Live returns the total number of live resources.
func (s Stats) Live() int {
	return s.Textures + s.Buffers + s.Shaders
}

// ErrEmptyShader is returned for shader source with no code.
var ErrEmptyShader = errors.New("gpu: empty shader source")

// NewHeadless returns a new headless device.
func NewHeadless() *Headless {
	return &Headless{}
}

// Stats returns a snapshot of the current counts.
func (hd *Headless) Stats() Stats {
	hd.mu.Lock()
	defer hd.mu.Unlock()
	return hd.stats
}

// FailNext makes the next resource creation return err.
func (hd *Headless) FailNext(err error) {
	hd.mu.Lock()
	hd.fail = err
	hd.mu.Unlock()
}

// takeFail returns and clears any pending failure. Must hold mu.
func (hd *Headless) takeFail() error {
	err := hd.fail
	hd.fail = nil
	return err
}

func (hd *Headless) NewTexture(label string, img *image.RGBA) (Texture, error) {
	hd.mu.Lock()
	defer hd.mu.Unlock()
	if err := hd.takeFail(); err != nil {
		return nil, err
	}
	if img == nil || img.Rect.Empty() {
		return nil, errors.New("gpu: texture " + label + " has no pixels")
	}
	tx := &HeadlessTexture{dev: hd, label: label, size: img.Rect.Size()}
	tx.Pix = make([]byte, len(img.Pix))
	copy(tx.Pix, img.Pix)
	hd.stats.Textures++
	hd.created(int64(len(tx.Pix)))
	return tx, nil
}

func (hd *Headless) NewBuffer(label string, usage BufferUsage, data []byte) (Buffer, error) {
	hd.mu.Lock()
	defer hd.mu.Unlock()
	if err := hd.takeFail(); err != nil {
		return nil, err
	}
	bf := &HeadlessBuffer{dev: hd, label: label, usage: usage}
	bf.Data = make([]byte, len(data))
	copy(bf.Data, data)
	hd.stats.Buffers++
	hd.created(int64(len(data)))
	return bf, nil
}

func (hd *Headless) NewShader(label string, stage ShaderStage, source string) (Shader, error) {
	hd.mu.Lock()
	defer hd.mu.Unlock()
	if err := hd.takeFail(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptyShader
	}
	sh := &HeadlessShader{dev: hd, label: label, stage: stage, Source: source}
	hd.stats.Shaders++
	hd.created(int64(len(source)))
	return sh, nil
}

func (hd *Headless) created(n int64) {
	hd.stats.Created++
	hd.stats.Bytes += n
}

// release accounts for the release of one resource whose type counter
// is live. It returns false for a double release. Must hold mu.
func (hd *Headless) release(released *bool, live *int, n int64, kind, label string) bool {
	if *released {
		hd.stats.DoubleReleases++
		slog.Error("gpu: resource released twice", "type", kind, "label", label)
		return false
	}
	*released = true
	*live--
	hd.stats.Bytes -= n
	hd.stats.Released++
	return true
}

// HeadlessTexture is a [Texture] created by [Headless].
type HeadlessTexture struct {
	dev      *Headless
	label    string
	size     image.Point
	released bool

	// Pix is a copy of the uploaded RGBA pixels.
	Pix []byte
}

func (tx *HeadlessTexture) Label() string     { return tx.label }
func (tx *HeadlessTexture) Size() image.Point { return tx.size }

func (tx *HeadlessTexture) Release() {
	hd := tx.dev
	hd.mu.Lock()
	defer hd.mu.Unlock()
	hd.release(&tx.released, &hd.stats.Textures, int64(len(tx.Pix)), "texture", tx.label)
}

// HeadlessBuffer is a [Buffer] created by [Headless].
type HeadlessBuffer struct {
	dev      *Headless
	label    string
	usage    BufferUsage
	released bool

	// Data is a copy of the buffer contents.
	Data []byte
}

func (bf *HeadlessBuffer) Label() string      { return bf.label }
func (bf *HeadlessBuffer) Usage() BufferUsage { return bf.usage }
func (bf *HeadlessBuffer) Size() int          { return len(bf.Data) }

func (bf *HeadlessBuffer) Release() {
	hd := bf.dev
	hd.mu.Lock()
	defer hd.mu.Unlock()
	hd.release(&bf.released, &hd.stats.Buffers, int64(len(bf.Data)), "buffer", bf.label)
}

// HeadlessShader is a [Shader] created by [Headless].
type HeadlessShader struct {
	dev      *Headless
	label    string
	stage    ShaderStage
	released bool

	Source string
}

func (sh *HeadlessShader) Label() string      { return sh.label }
func (sh *HeadlessShader) Stage() ShaderStage { return sh.stage }

func (sh *HeadlessShader) Release() {
	hd := sh.dev
	hd.mu.Lock()
	defer hd.mu.Unlock()
	hd.release(&sh.released, &hd.stats.Shaders, int64(len(sh.Source)), "shader", sh.label)
}
