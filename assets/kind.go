// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"errors"
	"fmt"
	"log/slog"
	"path"

	"cogentcore.org/engine/base/fsx"
)

// Kind names a kind of asset, such as "image" or "model".
// The set of kinds is open: any package can register its own.
type Kind string

// Asset is the contract that every asset kind implements.
type Asset interface {
	// Load reads and constructs the asset. It is called with the
	// catalog locked, so it must only use the [LoadContext] and must
	// not call [Handle] or [Catalog] methods.
	Load(ctx *LoadContext) error

	// Release frees the resources held by the asset. It is called
	// exactly once for each Load, including a Load that failed.
	Release()
}

// Reloader is an [Asset] that can refresh itself in place when its
// file changes, instead of being freed and loaded again.
type Reloader interface {
	Asset

	// Reload reads the changed file. On error the asset must keep
	// its previous, still valid state.
	Reload(ctx *LoadContext) error
}

// SupportsInPlaceReload returns whether the asset implements [Reloader].
func SupportsInPlaceReload(a Asset) bool {
	_, ok := a.(Reloader)
	return ok
}

// Kinded is implemented by assets that report their own kind.
// It is used to tag sub-assets, which are not built from the
// extension table.
type Kinded interface {
	Kind() Kind
}

// KindOf returns the kind reported by a [Kinded] asset,
// or its Go type name otherwise.
func KindOf(a Asset) Kind {
	if k, ok := a.(Kinded); ok {
		return k.Kind()
	}
	return Kind(fmt.Sprintf("%T", a))
}

// KindInfo registers an asset kind for a set of file extensions.
type KindInfo struct {
	Kind Kind

	// Exts are the lowercase extensions, with the leading dot.
	Exts []string

	// New returns a new unloaded asset of this kind.
	New func() Asset
}

// LoadContext is given to [Asset.Load] and [Reloader.Reload].
// It gives access to the asset's file and lets composite kinds
// register the sub-assets they produce.
type LoadContext struct {
	cat *Catalog
	rec *record

	// issued are sub-asset handles not yet registered.
	issued []*Handle

	// registered are sub-asset handles registered during this load.
	registered []*Handle
}

// Path returns the file path of the asset.
func (ctx *LoadContext) Path() string {
	return ctx.rec.path
}

// Identifier returns the full identifier of the asset.
func (ctx *LoadContext) Identifier() string {
	return ctx.rec.identifier
}

// ID returns the identity of the asset.
func (ctx *LoadContext) ID() ID {
	return ctx.rec.id
}

// FS returns the filesystem assets are read from.
func (ctx *LoadContext) FS() fsx.FS {
	return ctx.cat.fs
}

// Logger returns the catalog logger.
func (ctx *LoadContext) Logger() *slog.Logger {
	return ctx.cat.log
}

// ReadFile reads the whole asset file.
func (ctx *LoadContext) ReadFile() ([]byte, error) {
	return ctx.cat.fs.ReadFile(ctx.rec.path)
}

// ReadRelative reads a companion file named relative to the
// directory of the asset file, such as a glTF buffer.
func (ctx *LoadContext) ReadRelative(name string) ([]byte, error) {
	return ctx.cat.fs.ReadFile(path.Join(path.Dir(ctx.rec.path), name))
}

// SubassetHandle returns a counted handle to the named sub-asset of
// this asset, creating its record if needed. The handle belongs to
// the load: pass it to [LoadContext.RegisterSubasset] and do not
// release it. Handles that are not registered are released when
// the load returns.
func (ctx *LoadContext) SubassetHandle(name string) *Handle {
	c := ctx.cat
	rec := c.ensureRecord(NormalizeIdentifier(SubassetIdentifier(ctx.rec.path, name)))
	rec.refCount++
	h := &Handle{cat: c, id: rec.id}
	ctx.issued = append(ctx.issued, h)
	return h
}

// RegisterSubasset attaches obj as the loaded object of the sub-asset
// record of sub, which must come from [LoadContext.SubassetHandle]
// on this context. The parent keeps the handle until it is freed.
func (ctx *LoadContext) RegisterSubasset(obj Asset, sub *Handle) error {
	if obj == nil {
		return errors.New("assets: RegisterSubasset: nil asset")
	}
	idx := -1
	for i, h := range ctx.issued {
		if h == sub {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("assets: RegisterSubasset: handle was not issued by the load of %q", ctx.rec.identifier)
	}
	srec := ctx.cat.records.ValueByKey(sub.id)
	if srec.state == Loaded {
		return fmt.Errorf("assets: RegisterSubasset: %q is already registered", srec.identifier)
	}
	ctx.issued = append(ctx.issued[:idx], ctx.issued[idx+1:]...)
	srec.obj = obj
	srec.kind = KindOf(obj)
	srec.state = Loaded
	ctx.registered = append(ctx.registered, sub)
	ctx.rec.subAssets = append(ctx.rec.subAssets, sub)
	return nil
}

// finish releases the handles that were issued but not registered.
func (ctx *LoadContext) finish() {
	for _, h := range ctx.issued {
		ctx.cat.releaseLocked(h)
	}
	ctx.issued = nil
}

// rollback undoes the sub-assets registered by a failed load,
// releasing their objects and handles.
func (ctx *LoadContext) rollback() {
	c := ctx.cat
	for _, h := range ctx.registered {
		if srec, ok := c.records.ValueByKeyTry(h.id); ok {
			c.unloadSubasset(srec)
		}
		for i, sh := range ctx.rec.subAssets {
			if sh == h {
				ctx.rec.subAssets = append(ctx.rec.subAssets[:i], ctx.rec.subAssets[i+1:]...)
				break
			}
		}
		c.releaseLocked(h)
	}
	ctx.registered = nil
	ctx.finish()
}
