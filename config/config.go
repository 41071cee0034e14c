// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration structs for the engine,
// which are read from a TOML or YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cogentcore.org/engine/assets"
	"cogentcore.org/engine/base/fsx"
	"cogentcore.org/engine/base/iox/tomlx"
	"cogentcore.org/engine/base/iox/yamlx"
	"cogentcore.org/engine/base/logx"
	"github.com/jinzhu/copier"
	"github.com/mitchellh/go-homedir"
)

// Config is the main config struct that contains all of the
// configuration options for the engine.
type Config struct {

	// Assets are the options for the asset catalog.
	Assets Assets `toml:"assets" yaml:"assets"`

	// Log are the logging options.
	Log Log `toml:"log" yaml:"log"`

	// Loop are the options for the frame loop.
	Loop Loop `toml:"loop" yaml:"loop"`
}

type Assets struct {

	// Root is the directory that asset identifiers are relative to.
	// A leading ~ is the home directory.
	Root string `toml:"root" yaml:"root"`

	// HotReload is whether changed asset files are reloaded.
	HotReload bool `toml:"hot_reload" yaml:"hot_reload"`

	// PollInterval is how often watched files are checked for changes.
	// Zero checks every frame.
	PollInterval Duration `toml:"poll_interval" yaml:"poll_interval"`

	// NoHotReload are the file extensions that are never hot reloaded.
	NoHotReload []string `toml:"no_hot_reload" yaml:"no_hot_reload"`

	// Notify is whether file system notifications wake the frame
	// loop to check for changes before the next poll.
	Notify bool `toml:"notify" yaml:"notify"`
}

type Log struct {

	// Level is the minimum level of messages that are logged:
	// debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`

	// Color is whether level tags are colored on terminals that support it.
	Color bool `toml:"color" yaml:"color"`
}

type Loop struct {

	// FrameRate is the number of frames per second.
	FrameRate float64 `toml:"frame_rate" yaml:"frame_rate"`

	// GCEveryFrame is whether unreferenced assets are freed at the
	// end of every frame.
	GCEveryFrame bool `toml:"gc_every_frame" yaml:"gc_every_frame"`

	// MaxFrames stops the loop after this many frames, if positive.
	MaxFrames int `toml:"max_frames" yaml:"max_frames"`
}

// New returns a new config with the default values.
func New() *Config {
	c := &Config{}
	c.Defaults()
	return c
}

func (c *Config) Defaults() {
	c.Assets.Defaults()
	c.Log.Defaults()
	c.Loop.Defaults()
}

func (a *Assets) Defaults() {
	a.Root = "."
	a.HotReload = true
	a.PollInterval = Duration(time.Second)
	a.NoHotReload = append([]string{}, assets.DefaultNoHotReload...)
	a.Notify = true
}

func (l *Log) Defaults() {
	l.Level = "info"
	l.Color = true
}

func (l *Loop) Defaults() {
	l.FrameRate = 60
}

// Open reads the config file on top of the defaults. The format is
// chosen by the extension: .toml, or .yaml / .yml.
func Open(file string) (*Config, error) {
	return OpenFS(fsx.Dir("."), file)
}

// OpenFS is like [Open], reading from the given filesystem.
func OpenFS(fsys fsx.FS, file string) (*Config, error) {
	c := New()
	var err error
	switch strings.ToLower(filepath.Ext(file)) {
	case ".toml":
		err = tomlx.OpenFS(c, fsys, file)
	case ".yaml", ".yml":
		err = yamlx.OpenFS(c, fsys, file)
	default:
		return nil, fmt.Errorf("config: %s: unknown config file format", file)
	}
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", file, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", file, err)
	}
	return c, nil
}

// Merge sets every field of c that is non-zero in o, such as values
// given on the command line.
func (c *Config) Merge(o *Config) error {
	return copier.CopyWithOption(c, o, copier.Option{IgnoreEmpty: true, DeepCopy: true})
}

// Validate checks the option values, and expands the asset root.
func (c *Config) Validate() error {
	root, err := homedir.Expand(c.Assets.Root)
	if err != nil {
		return err
	}
	c.Assets.Root = root
	if c.Assets.PollInterval < 0 {
		return fmt.Errorf("negative poll interval %s", c.Assets.PollInterval)
	}
	for i, ext := range c.Assets.NoHotReload {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Assets.NoHotReload[i] = ext
	}
	if _, err := logx.LevelFromString(c.Log.Level); err != nil {
		return err
	}
	if c.Loop.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, not %g", c.Loop.FrameRate)
	}
	return nil
}

// FrameInterval returns the duration of one frame.
func (l *Loop) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / l.FrameRate)
}

// Save writes the config to a TOML file.
func (c *Config) Save(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return tomlx.Write(c, f)
}

// Duration is a [time.Duration] written as text, such as "500ms",
// in config files.
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
