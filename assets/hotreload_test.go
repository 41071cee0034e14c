// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHotReloadNoChange(t *testing.T) {
	c, m, cnt := newTestCatalog(t)
	writeFile(t, m, "a.txt", "a", 0)
	h := c.Handle("a.txt")
	_, err := c.GetAsset(h)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, c.WatchedPaths())

	assert.Empty(t, c.UpdateHotReloading())
	assert.Empty(t, c.UpdateHotReloading())
	assert.Equal(t, 1, cnt.loads)
}

func TestHotReloadFreeAndLoad(t *testing.T) {
	c, m, cnt := newTestCatalog(t)
	writeFile(t, m, "a.txt", "one", 0)
	h := c.Handle("a.txt")
	a, err := Get[*testText](c, h)
	require.NoError(t, err)
	assert.Equal(t, "one", a.text)

	writeFile(t, m, "a.txt", "two", 1)
	assert.Equal(t, []string{"a.txt"}, c.UpdateHotReloading())
	assert.Equal(t, 2, cnt.loads)
	assert.Equal(t, 1, cnt.releases)
	a, err = Get[*testText](c, h)
	require.NoError(t, err)
	assert.Equal(t, "two", a.text)

	assert.Empty(t, c.UpdateHotReloading())
}

func TestHotReloadInPlace(t *testing.T) {
	c, m, cnt := newTestCatalog(t)
	writeFile(t, m, "basic.vs", "v1", 0)
	h := c.Handle("basic.vs")
	a1, err := c.GetAsset(h)
	require.NoError(t, err)
	assert.True(t, SupportsInPlaceReload(a1))

	writeFile(t, m, "basic.vs", "v2", 1)
	assert.Len(t, c.UpdateHotReloading(), 1)
	a2, err := c.GetAsset(h)
	require.NoError(t, err)
	assert.Same(t, a1, a2)
	assert.Equal(t, "v2", a2.(*testReloader).text)
	assert.Equal(t, 1, cnt.reloads)
	assert.Equal(t, 0, cnt.releases)

	// a failed reload keeps the old state and still advances the timestamp
	writeFile(t, m, "basic.vs", "bad v3", 2)
	assert.Empty(t, c.UpdateHotReloading())
	assert.Equal(t, "v2", a2.(*testReloader).text)
	assert.Empty(t, c.UpdateHotReloading())
	assert.Equal(t, 1, cnt.reloads)
}

func TestHotReloadSkipsUnreferenced(t *testing.T) {
	c, m, cnt := newTestCatalog(t)
	writeFile(t, m, "a.txt", "one", 0)
	h := c.Handle("a.txt")
	_, err := c.GetAsset(h)
	require.NoError(t, err)
	h.Release()

	writeFile(t, m, "a.txt", "two", 1)
	assert.Empty(t, c.UpdateHotReloading())
	assert.Equal(t, 1, cnt.loads)

	// once referenced again, the still stale timestamp triggers a reload
	h = c.Handle("a.txt")
	assert.Equal(t, []string{"a.txt"}, c.UpdateHotReloading())
	assert.Equal(t, 2, cnt.loads)
	assert.Empty(t, c.UpdateHotReloading())
}

func TestHotReloadSkipsInUse(t *testing.T) {
	c, m, cnt := newTestCatalog(t)
	writeFile(t, m, "a.txt", "one", 0)
	h := c.Handle("a.txt")
	_, err := c.GetAsset(h)
	require.NoError(t, err)

	writeFile(t, m, "a.txt", "two", 1)
	m.SetInUse("a.txt", true)
	assert.Empty(t, c.UpdateHotReloading())
	assert.Equal(t, 1, cnt.loads)

	m.SetInUse("a.txt", false)
	assert.Len(t, c.UpdateHotReloading(), 1)
	assert.Equal(t, 2, cnt.loads)
}

func TestHotReloadStatFailure(t *testing.T) {
	c, m, cnt := newTestCatalog(t)
	writeFile(t, m, "a.txt", "one", 0)
	h := c.Handle("a.txt")
	_, err := c.GetAsset(h)
	require.NoError(t, err)

	require.NoError(t, m.Remove("a.txt"))
	assert.Empty(t, c.UpdateHotReloading())
	assert.Equal(t, 1, cnt.loads)

	writeFile(t, m, "a.txt", "back", 5)
	assert.Len(t, c.UpdateHotReloading(), 1)
}

func TestHotReloadFixesParseFailure(t *testing.T) {
	c, m, _ := newTestCatalog(t)
	writeFile(t, m, "a.txt", "bad", 0)
	h := c.Handle("a.txt")
	_, err := c.GetAsset(h)
	assert.ErrorIs(t, err, ErrParseFailure)
	assert.Equal(t, []string{"a.txt"}, c.WatchedPaths())

	writeFile(t, m, "a.txt", "good", 1)
	assert.Len(t, c.UpdateHotReloading(), 1)
	inf, _ := c.Info(h)
	assert.Equal(t, Loaded, inf.State)
}

func TestHotReloadModel(t *testing.T) {
	c, m, cnt := newTestCatalog(t)
	writeFile(t, m, "ship.mdl", "hull", 0)
	mesh := c.Handle("ship.mdl:mesh_0")
	parent := c.Handle("ship.mdl")
	_, err := c.GetAsset(mesh)
	require.NoError(t, err)
	// sub-assets are watched through their parent
	assert.Equal(t, []string{"ship.mdl"}, c.WatchedPaths())

	writeFile(t, m, "ship.mdl", "hull2 wing", 1)
	assert.Equal(t, []string{"ship.mdl"}, c.UpdateHotReloading())
	assert.Equal(t, 1, cnt.subReleases)
	a, err := c.GetAsset(mesh)
	require.NoError(t, err)
	assert.Equal(t, "hull2", a.(*testMesh).name)
	inf, _ := c.Info(parent)
	assert.Len(t, inf.Subassets, 2)
}

func TestHotReloadSubassetReferencesOnly(t *testing.T) {
	c, m, cnt := newTestCatalog(t)
	writeFile(t, m, "models/ship.mdl", "hull", 0)
	mesh := c.Handle("models/ship.mdl:mesh_0")
	_, err := c.GetAsset(mesh)
	require.NoError(t, err)
	assert.Equal(t, []string{"models/ship.mdl"}, c.WatchedPaths())

	// the parent file has no references of its own, so it is not reloaded
	writeFile(t, m, "models/ship.mdl", "hull2", 1)
	assert.Empty(t, c.UpdateHotReloading())
	assert.Equal(t, 1, cnt.loads)

	// holding the parent makes the pending change reload
	parent := c.Handle("models/ship.mdl")
	defer parent.Release()
	assert.Equal(t, []string{"models/ship.mdl"}, c.UpdateHotReloading())
	assert.Equal(t, 2, cnt.loads)
	a, err := Get[*testMesh](c, mesh)
	require.NoError(t, err)
	assert.Equal(t, "hull2", a.name)
}

func TestWatchRegistration(t *testing.T) {
	c, m, _ := newTestCatalog(t)
	writeFile(t, m, "b.txt", "b", 0)
	writeFile(t, m, "a.txt", "a", 0)
	writeFile(t, m, "music.wav", "riff", 0)
	writeFile(t, m, "x.xyz", "?", 0)

	for _, name := range []string{"b.txt", "a.txt", "b.txt", "music.wav", "x.xyz", "missing.txt"} {
		c.GetAsset(c.Handle(name))
	}
	h := c.Handle("a.txt")
	c.FreeAsset(h)
	c.GetAsset(h)
	assert.Equal(t, []string{"b.txt", "a.txt"}, c.WatchedPaths())
}

func TestHotReloadDisabled(t *testing.T) {
	c, m, cnt := newTestCatalog(t, WithHotReload(false))
	writeFile(t, m, "a.txt", "one", 0)
	h := c.Handle("a.txt")
	_, err := c.GetAsset(h)
	require.NoError(t, err)
	assert.Empty(t, c.WatchedPaths())
	writeFile(t, m, "a.txt", "two", 1)
	assert.Empty(t, c.UpdateHotReloading())
	assert.Equal(t, 1, cnt.loads)
}

func TestNoHotReloadOption(t *testing.T) {
	c, m, _ := newTestCatalog(t, WithNoHotReload(".TXT"))
	writeFile(t, m, "a.txt", "one", 0)
	writeFile(t, m, "music.wav", "riff", 0)
	c.GetAsset(c.Handle("a.txt"))
	c.GetAsset(c.Handle("music.wav"))
	assert.Equal(t, []string{"music.wav"}, c.WatchedPaths())
}
