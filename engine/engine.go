// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine runs the headless frame loop that drives the
// asset catalog: each frame it updates the game, checks watched
// asset files for changes, and optionally frees unused assets.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cogentcore.org/engine/assets"
	"cogentcore.org/engine/assets/kinds"
	"cogentcore.org/engine/base/fsx"
	"cogentcore.org/engine/config"
	"cogentcore.org/engine/gpu"
	"golang.org/x/sync/errgroup"
)

// UpdateFunc is called at the start of every frame with the frame
// number, starting at 0, and the time since the previous frame.
type UpdateFunc func(frame int, dt time.Duration) error

// App is an engine instance: the configuration, the asset catalog
// and the device that assets are uploaded to.
type App struct {
	Config  *config.Config
	Catalog *assets.Catalog
	Device  gpu.Device

	// OnReload, if set, is called with the identifiers of the assets
	// reloaded in a frame.
	OnReload func(ids []string)

	frame    int
	lastPoll time.Time
	notify   *notifier
	held     []*assets.Handle
}

// errDone stops the loop without an error.
var errDone = errors.New("engine: done")

// NewApp returns an app reading assets from fsys, or from the
// configured root directory if fsys is nil, with the standard
// asset kinds registered.
func NewApp(cfg *config.Config, fsys fsx.FS, dev gpu.Device) *App {
	if fsys == nil {
		fsys = fsx.Dir(cfg.Assets.Root)
	}
	cat := assets.NewCatalog(fsys,
		assets.WithLogger(slog.Default()),
		assets.WithHotReload(cfg.Assets.HotReload),
		assets.WithNoHotReload(cfg.Assets.NoHotReload...))
	kinds.Register(cat, dev)
	return &App{Config: cfg, Catalog: cat, Device: dev}
}

// Hold keeps h referenced while the app runs. Run releases held
// handles when it stops, before the catalog is closed.
func (a *App) Hold(h *assets.Handle) {
	a.held = append(a.held, h)
}

// release releases the held handles.
func (a *App) release() {
	for _, h := range a.held {
		h.Release()
	}
	a.held = nil
}

// Frames returns the number of frames run so far.
func (a *App) Frames() int {
	return a.frame
}

// Run runs frames at the configured rate until ctx is done, update
// returns an error, or the configured number of frames has run.
// Handles passed to Hold are released and the catalog is closed when
// Run returns. An update error is returned; a canceled ctx is not
// an error.
func (a *App) Run(ctx context.Context, update UpdateFunc) error {
	defer func() {
		a.release()
		a.Catalog.Close()
	}()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	wake := make(chan struct{}, 1)
	g, gctx := errgroup.WithContext(ctx)
	if a.Config.Assets.HotReload && a.Config.Assets.Notify {
		if dir, ok := a.Catalog.FS().(fsx.Dir); ok {
			n, err := newNotifier(dir)
			if err != nil {
				slog.Warn("file notifications unavailable, polling only", "err", err)
			} else {
				a.notify = n
				defer func() {
					n.close()
					a.notify = nil
				}()
				g.Go(func() error {
					return n.run(gctx, wake)
				})
			}
		}
	}
	g.Go(func() error {
		defer cancel()
		return a.loop(gctx, update, wake)
	})
	err := g.Wait()
	if errors.Is(err, errDone) {
		return nil
	}
	return err
}

func (a *App) loop(ctx context.Context, update UpdateFunc, wake <-chan struct{}) error {
	ticker := time.NewTicker(a.Config.Loop.FrameInterval())
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			woken := false
			select {
			case <-wake:
				woken = true
			default:
			}
			if err := a.step(now, now.Sub(last), update, woken); err != nil {
				return err
			}
			last = now
		}
	}
}

// step runs one frame.
func (a *App) step(now time.Time, dt time.Duration, update UpdateFunc, woken bool) error {
	if update != nil {
		if err := update(a.frame, dt); err != nil {
			return err
		}
	}
	if a.Config.Assets.HotReload {
		poll := time.Duration(a.Config.Assets.PollInterval)
		if woken || a.lastPoll.IsZero() || now.Sub(a.lastPoll) >= poll {
			a.lastPoll = now
			ids := a.Catalog.UpdateHotReloading()
			if len(ids) > 0 && a.OnReload != nil {
				a.OnReload(ids)
			}
			if a.notify != nil {
				a.notify.sync(a.Catalog.WatchedPaths())
			}
		}
	}
	if a.Config.Loop.GCEveryFrame {
		if n := a.Catalog.CollectGarbage(); n > 0 {
			slog.Debug("freed unused assets", "count", n, "frame", a.frame)
		}
	}
	a.frame++
	if mf := a.Config.Loop.MaxFrames; mf > 0 && a.frame >= mf {
		return errDone
	}
	return nil
}
