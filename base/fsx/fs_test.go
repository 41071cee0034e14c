// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsx

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMem(t *testing.T) {
	m, err := NewMem()
	require.NoError(t, err)

	require.NoError(t, m.WriteFile("shaders/basic.vs", []byte("void main() {}")))
	b, err := m.ReadFile("shaders/basic.vs")
	require.NoError(t, err)
	assert.Equal(t, "void main() {}", string(b))

	// leading slash and backslashes name the same file
	b, err = m.ReadFile(`/shaders\basic.vs`)
	require.NoError(t, err)
	assert.Equal(t, "void main() {}", string(b))

	ok, err := FileExists(m, "shaders/basic.vs")
	assert.NoError(t, err)
	assert.True(t, ok)
	ok, err = FileExists(m, "shaders")
	assert.NoError(t, err)
	assert.False(t, ok)
	ok, err = FileExists(m, "missing.vs")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = m.ReadFile("missing.vs")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, m.WriteFile("shaders/basic.vs", []byte("x")))
	b, err = m.ReadFile("shaders/basic.vs")
	require.NoError(t, err)
	assert.Equal(t, "x", string(b))

	require.NoError(t, m.Remove("shaders/basic.vs"))
	_, err = m.Stat("shaders/basic.vs")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMemTouch(t *testing.T) {
	m, err := NewMem()
	require.NoError(t, err)
	require.NoError(t, m.WriteFile("a.txt", []byte("a")))

	mt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, m.Touch("a.txt", mt))
	got, err := ModTime(m, "a.txt")
	require.NoError(t, err)
	assert.True(t, mt.Equal(got))

	_, err = ModTime(m, "b.txt")
	assert.Error(t, err)
}

func TestMemInUse(t *testing.T) {
	m, err := NewMem()
	require.NoError(t, err)
	assert.False(t, m.InUse("a.txt"))
	m.SetInUse("/a.txt", true)
	assert.True(t, m.InUse("a.txt"))
	m.SetInUse("a.txt", false)
	assert.False(t, m.InUse("a.txt"))
}

func TestDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "textures"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "textures", "wood.png"), []byte("png"), 0o644))

	d := Dir(root)
	b, err := d.ReadFile("textures/wood.png")
	require.NoError(t, err)
	assert.Equal(t, "png", string(b))

	abs := filepath.Join(root, "textures", "wood.png")
	assert.Equal(t, abs, d.OSPath(abs))
	b, err = d.ReadFile(filepath.ToSlash(abs))
	require.NoError(t, err)
	assert.Equal(t, "png", string(b))

	ok, err := FileExists(d, "textures/wood.png")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, d.InUse("textures/wood.png"))
	assert.False(t, d.InUse("textures/missing.png"))
}
