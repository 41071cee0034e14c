// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"fmt"
	"path"
	"strings"
)

// load constructs the object of an unloaded top-level record from its
// file. The record is marked loaded only if the kind's Load succeeds.
// Must hold mu.
func (c *Catalog) load(rec *record) error {
	if rec.state == Loaded {
		c.log.Warn("attempting to load an already loaded asset", "asset", rec.identifier)
		return nil
	}
	ext := strings.ToLower(path.Ext(rec.path))
	ki, ok := c.kinds[ext]
	if !ok || ki.New == nil {
		err := &LoadError{Kind: UnsupportedKind, Identifier: rec.identifier,
			Err: fmt.Errorf("no asset kind for extension %q", ext)}
		c.log.Error("unsupported asset type", "asset", rec.identifier, "ext", ext)
		return err
	}
	if _, err := c.fs.Stat(rec.path); err != nil {
		c.log.Error("unable to load asset", "asset", rec.identifier, "err", err)
		return &LoadError{Kind: NotFound, Identifier: rec.identifier, Err: err}
	}
	obj := ki.New()
	ctx := &LoadContext{cat: c, rec: rec}
	if err := obj.Load(ctx); err != nil {
		obj.Release()
		ctx.rollback()
		c.log.Error("asset failed to load", "asset", rec.identifier, "kind", ki.Kind, "err", err)
		return &LoadError{Kind: ParseFailure, Identifier: rec.identifier, Err: err}
	}
	ctx.finish()
	rec.obj = obj
	rec.kind = ki.Kind
	rec.state = Loaded
	c.log.Debug("loaded asset", "asset", rec.identifier, "kind", ki.Kind, "subassets", len(rec.subAssets))
	return nil
}
