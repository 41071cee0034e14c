// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"errors"
	"path"
	"strings"
	"time"

	"cogentcore.org/engine/base/fsx"
)

// watch is a hot reload entry for a top-level asset file.
type watch struct {
	id      ID
	modTime time.Time
}

// registerForWatch starts watching the file of a record after a load
// attempt, unless the file is missing or of an unsupported kind.
// A file that failed to parse is still watched so that fixing it
// reloads it. Must hold mu.
func (c *Catalog) registerForWatch(rec *record, loadErr error) {
	if !c.hotReload || rec.isSubasset() || c.watches.Has(rec.id) {
		return
	}
	if errors.Is(loadErr, ErrNotFound) || errors.Is(loadErr, ErrUnsupportedKind) {
		return
	}
	if c.noHotReload[strings.ToLower(path.Ext(rec.path))] {
		return
	}
	mt, err := fsx.ModTime(c.fs, rec.path)
	if err != nil {
		return
	}
	c.watches.Add(rec.id, &watch{id: rec.id, modTime: mt})
}

// UpdateHotReloading checks each watched file in registration order
// and reloads the referenced assets whose files changed since they
// were last loaded. Files with no references, or still being written,
// are checked again on the next call. It returns the identifiers of
// the assets that were reloaded.
func (c *Catalog) UpdateHotReloading() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var reloaded []string
	for _, kv := range c.watches.Order {
		w := kv.Value
		rec := c.records.ValueByKey(w.id)
		mt, err := fsx.ModTime(c.fs, rec.path)
		if err != nil {
			c.log.Debug("hot reload: unable to stat asset", "asset", rec.path, "err", err)
			continue
		}
		if mt.Equal(w.modTime) {
			continue
		}
		if rec.refCount == 0 || c.fs.InUse(rec.path) {
			continue
		}
		err = c.reload(rec)
		w.modTime = mt
		if err != nil {
			c.log.Error("hot reload failed", "asset", rec.identifier, "err", err)
			continue
		}
		c.log.Info("reloaded asset", "asset", rec.identifier)
		reloaded = append(reloaded, rec.identifier)
	}
	return reloaded
}

// reload refreshes a record in place if its kind supports it,
// and frees and loads it otherwise. Must hold mu.
func (c *Catalog) reload(rec *record) error {
	if rl, ok := rec.obj.(Reloader); ok && rec.state == Loaded {
		ctx := &LoadContext{cat: c, rec: rec}
		if err := rl.Reload(ctx); err != nil {
			ctx.rollback()
			return &LoadError{Kind: ParseFailure, Identifier: rec.identifier, Err: err}
		}
		ctx.finish()
		return nil
	}
	c.free(rec)
	return c.load(rec)
}

// WatchedPaths returns the paths of the watched files in registration order.
func (c *Catalog) WatchedPaths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	paths := make([]string, 0, c.watches.Len())
	for _, kv := range c.watches.Order {
		paths = append(paths, c.records.ValueByKey(kv.Key).path)
	}
	return paths
}
