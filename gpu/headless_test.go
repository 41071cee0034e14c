// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadlessTexture(t *testing.T) {
	hd := NewHeadless()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Pix[0] = 7
	tx, err := hd.NewTexture("wood.png", img)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(4, 2), tx.Size())
	assert.Equal(t, "wood.png", tx.Label())

	// upload copies
	img.Pix[0] = 9
	assert.Equal(t, byte(7), tx.(*HeadlessTexture).Pix[0])

	st := hd.Stats()
	assert.Equal(t, 1, st.Textures)
	assert.Equal(t, int64(4*2*4), st.Bytes)

	tx.Release()
	tx.Release()
	st = hd.Stats()
	assert.Equal(t, 0, st.Live())
	assert.Equal(t, int64(0), st.Bytes)
	assert.Equal(t, 1, st.Released)
	assert.Equal(t, 1, st.DoubleReleases)

	_, err = hd.NewTexture("empty", image.NewRGBA(image.Rect(0, 0, 0, 0)))
	assert.Error(t, err)
}

func TestHeadlessBufferShader(t *testing.T) {
	hd := NewHeadless()
	bf, err := hd.NewBuffer("mesh_0/vertex", VertexBuffer, make([]byte, 48))
	require.NoError(t, err)
	assert.Equal(t, 48, bf.Size())
	assert.Equal(t, "Vertex", bf.Usage().String())

	sh, err := hd.NewShader("basic.wgsl", AllStages, "@vertex fn main() {}")
	require.NoError(t, err)
	assert.True(t, sh.Stage().Has(VertexShader|FragmentShader))
	assert.Equal(t, "Vertex|Fragment|Compute", sh.Stage().String())

	_, err = hd.NewShader("empty.fs", FragmentShader, " \n")
	assert.ErrorIs(t, err, ErrEmptyShader)

	st := hd.Stats()
	assert.Equal(t, 2, st.Live())
	assert.Equal(t, 2, st.Created)

	bf.Release()
	sh.Release()
	assert.Equal(t, 0, hd.Stats().Live())
}

func TestHeadlessFailNext(t *testing.T) {
	hd := NewHeadless()
	boom := errors.New("device lost")
	hd.FailNext(boom)
	_, err := hd.NewBuffer("b", IndexBuffer, nil)
	assert.ErrorIs(t, err, boom)
	_, err = hd.NewBuffer("b", IndexBuffer, nil)
	assert.NoError(t, err)
}
