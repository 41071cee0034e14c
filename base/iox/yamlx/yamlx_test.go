// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yamlx

import (
	"testing"

	"cogentcore.org/engine/base/fsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Root    string   `yaml:"root"`
	Exclude []string `yaml:"exclude"`
}

func TestReadBytes(t *testing.T) {
	var c testConfig
	require.NoError(t, ReadBytes(&c, []byte("root: assets\nexclude:\n  - .wav\n  - .ogg\n")))
	assert.Equal(t, "assets", c.Root)
	assert.Equal(t, []string{".wav", ".ogg"}, c.Exclude)
}

func TestOpenFS(t *testing.T) {
	m, err := fsx.NewMem()
	require.NoError(t, err)
	require.NoError(t, m.WriteFile("engine.yaml", []byte("root: ~/game\n")))

	var c testConfig
	require.NoError(t, OpenFS(&c, m, "engine.yaml"))
	assert.Equal(t, "~/game", c.Root)

	assert.Error(t, OpenFS(&c, m, "missing.yaml"))
}
