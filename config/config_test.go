// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/engine/base/fsx"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := New()
	assert.Equal(t, ".", c.Assets.Root)
	assert.True(t, c.Assets.HotReload)
	assert.Equal(t, Duration(time.Second), c.Assets.PollInterval)
	assert.Contains(t, c.Assets.NoHotReload, ".wav")
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, 60.0, c.Loop.FrameRate)
	assert.NoError(t, c.Validate())
	assert.Equal(t, time.Second/60, c.Loop.FrameInterval())
}

func newMem(t *testing.T, files map[string]string) *fsx.Mem {
	t.Helper()
	m, err := fsx.NewMem()
	require.NoError(t, err)
	for name, data := range files {
		require.NoError(t, m.WriteFile(name, []byte(data)))
	}
	return m
}

func TestOpen(t *testing.T) {
	m := newMem(t, map[string]string{
		"engine.toml": `
[assets]
root = "~/game"
poll_interval = "250ms"
no_hot_reload = ["WAV", "ogg"]

[loop]
frame_rate = 30.0
gc_every_frame = true
`,
		"engine.yaml": `
assets:
  hot_reload: false
  poll_interval: 2s
log:
  level: debug
loop:
  max_frames: 10
`,
	})
	home, err := homedir.Expand("~/game")
	require.NoError(t, err)

	c, err := OpenFS(m, "engine.toml")
	require.NoError(t, err)
	assert.Equal(t, home, c.Assets.Root)
	assert.Equal(t, Duration(250*time.Millisecond), c.Assets.PollInterval)
	assert.Equal(t, []string{".wav", ".ogg"}, c.Assets.NoHotReload)
	assert.True(t, c.Assets.HotReload)
	assert.Equal(t, 30.0, c.Loop.FrameRate)
	assert.True(t, c.Loop.GCEveryFrame)
	assert.Equal(t, "info", c.Log.Level)

	c, err = OpenFS(m, "engine.yaml")
	require.NoError(t, err)
	assert.False(t, c.Assets.HotReload)
	assert.Equal(t, Duration(2*time.Second), c.Assets.PollInterval)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 10, c.Loop.MaxFrames)
	assert.Equal(t, 60.0, c.Loop.FrameRate)
}

func TestOpenErrors(t *testing.T) {
	m := newMem(t, map[string]string{
		"engine.json":  `{}`,
		"level.toml":   "[log]\nlevel = \"loud\"\n",
		"rate.toml":    "[loop]\nframe_rate = 0.0\n",
		"poll.yaml":    "assets:\n  poll_interval: soon\n",
		"broken.toml":  "[assets\n",
		"negative.yml": "assets:\n  poll_interval: -1s\n",
	})
	tests := map[string]string{
		"engine.json":  "unknown config file format",
		"level.toml":   "unknown log level",
		"rate.toml":    "frame rate must be positive",
		"poll.yaml":    "invalid duration",
		"broken.toml":  "broken.toml",
		"negative.yml": "negative poll interval",
		"missing.toml": "missing.toml",
	}
	for file, msg := range tests {
		t.Run(file, func(t *testing.T) {
			_, err := OpenFS(m, file)
			assert.ErrorContains(t, err, msg)
		})
	}
}

func TestMerge(t *testing.T) {
	c := New()
	c.Loop.GCEveryFrame = true
	o := &Config{}
	o.Assets.Root = "/srv/assets"
	o.Log.Level = "error"
	o.Loop.MaxFrames = 5
	require.NoError(t, c.Merge(o))
	assert.Equal(t, "/srv/assets", c.Assets.Root)
	assert.Equal(t, "error", c.Log.Level)
	assert.Equal(t, 5, c.Loop.MaxFrames)
	assert.True(t, c.Loop.GCEveryFrame)
	assert.True(t, c.Assets.HotReload)
	assert.Equal(t, 60.0, c.Loop.FrameRate)
	assert.Equal(t, Duration(time.Second), c.Assets.PollInterval)
}

func TestSave(t *testing.T) {
	c := New()
	c.Assets.Root = "/data"
	c.Assets.PollInterval = Duration(300 * time.Millisecond)
	file := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, c.Save(file))
	o, err := Open(file)
	require.NoError(t, err)
	assert.Equal(t, c, o)
}

func TestDuration(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, Duration(90*time.Second), d)
	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(b))
	assert.Error(t, d.UnmarshalText([]byte("later")))
}
