// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/engine/base/errors"
	"cogentcore.org/engine/base/logx"
	"cogentcore.org/engine/config"
	"cogentcore.org/engine/engine"
	"cogentcore.org/engine/gpu"
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/spf13/cobra"
)

// options are the global command line flags.
type options struct {
	configFile string
	root       string

	veryVerbose bool
	verbose     bool
	quiet       bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "assetdb",
		Short:         "Inspect and watch engine asset directories",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (.toml or .yaml)")
	pf.StringVar(&opts.root, "root", "", "asset root directory (overrides the config)")
	pf.BoolVar(&opts.veryVerbose, "vv", false, "log debug messages")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log info messages")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "only log errors")
	cmd.AddCommand(newHashCmd(), newInspectCmd(opts), newWatchCmd(opts), newConsoleCmd(opts))
	return cmd
}

// loadConfig reads the config file, if any, applies the flags and
// sets up logging from the result.
func (o *options) loadConfig(errOut io.Writer) (*config.Config, error) {
	cfg := config.New()
	if o.configFile != "" {
		var err error
		cfg, err = config.Open(o.configFile)
		if err != nil {
			return nil, err
		}
	}
	override := &config.Config{}
	override.Assets.Root = o.root
	if err := cfg.Merge(override); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if o.veryVerbose || o.verbose || o.quiet {
		logx.UserLevel = logx.LevelFromFlags(o.veryVerbose, o.verbose, o.quiet)
	} else {
		logx.UserLevel = errors.Log1(logx.LevelFromString(cfg.Log.Level))
	}
	slog.SetDefault(slog.New(logx.NewHandler(errOut, cfg.Log.Color)))
	return cfg, nil
}

// newApp returns an app on the configured root with a headless device.
func (o *options) newApp(cmd *cobra.Command) (*engine.App, *gpu.Headless, error) {
	cfg, err := o.loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	dev := gpu.NewHeadless()
	return engine.NewApp(cfg, nil, dev), dev, nil
}

// suggest returns the file under root with the name most similar to
// the given identifier, or "" if none is similar enough.
func suggest(root, identifier string) string {
	best, bestScore := "", 0.5
	lev := metrics.NewLevenshtein()
	filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if score := strutil.Similarity(strings.ToLower(identifier), strings.ToLower(rel), lev); score > bestScore {
			best, bestScore = rel, score
		}
		return nil
	})
	return best
}
