// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assets provides the asset database: a catalog of assets
// addressed by identifier strings, reference counted [Handle]s,
// lazy loading through pluggable kinds, sub-assets of composite
// files, polling hot reload and explicit garbage collection.
//
// A catalog is safe for concurrent use. Asset kinds live in
// the assets/kinds package.
package assets

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"cogentcore.org/engine/base/fsx"
	"cogentcore.org/engine/base/ordmap"
)

// State is the load state of a catalog record.
type State int32

const (
	Unloaded State = iota
	Loaded
)

func (s State) String() string {
	if s == Loaded {
		return "Loaded"
	}
	return "Unloaded"
}

// record is the catalog entry for one identifier.
// Records are never removed.
type record struct {
	id         ID
	identifier string
	path       string
	subName    string

	refCount int
	state    State
	kind     Kind

	// subAssets are handles to the sub-asset records produced by the
	// last load, owned by this record.
	subAssets []*Handle

	// parent is the ID of the parent file record of a sub-asset,
	// which need not exist yet.
	parent ID

	obj Asset
}

func (r *record) isSubasset() bool {
	return r.subName != ""
}

// Catalog is the asset database. Create one with [NewCatalog].
type Catalog struct {
	mu sync.Mutex

	fs  fsx.FS
	log *slog.Logger

	records *ordmap.Map[ID, *record]

	// kinds maps lowercase extensions to kinds.
	kinds map[string]KindInfo

	hotReload   bool
	noHotReload map[string]bool

	// watches are the hot reload entries, in registration order.
	watches *ordmap.Map[ID, *watch]
}

// DefaultNoHotReload are the extensions excluded from hot reload
// unless [WithNoHotReload] is given: audio that is streamed while
// playing.
var DefaultNoHotReload = []string{".wav", ".mp3", ".ogg", ".flac"}

// Option is a functional option for [NewCatalog].
type Option func(c *Catalog)

// WithKinds registers the given asset kinds.
func WithKinds(kinds ...KindInfo) Option {
	return func(c *Catalog) {
		for _, ki := range kinds {
			for _, ext := range ki.Exts {
				c.kinds[strings.ToLower(ext)] = ki
			}
		}
	}
}

// WithHotReload sets whether loaded files are watched for changes.
// It is on by default.
func WithHotReload(on bool) Option {
	return func(c *Catalog) {
		c.hotReload = on
	}
}

// WithNoHotReload replaces the set of extensions that are never watched.
func WithNoHotReload(exts ...string) Option {
	return func(c *Catalog) {
		c.noHotReload = make(map[string]bool, len(exts))
		for _, ext := range exts {
			c.noHotReload[strings.ToLower(ext)] = true
		}
	}
}

// WithLogger sets the logger, which is [slog.Default] otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		c.log = l
	}
}

// NewCatalog returns a new empty catalog reading asset files from fsys.
func NewCatalog(fsys fsx.FS, opts ...Option) *Catalog {
	c := &Catalog{
		fs:        fsys,
		log:       slog.Default(),
		records:   ordmap.New[ID, *record](),
		kinds:     map[string]KindInfo{},
		hotReload: true,
		watches:   ordmap.New[ID, *watch](),
	}
	WithNoHotReload(DefaultNoHotReload...)(c)
	for _, o := range opts {
		o(c)
	}
	return c
}

// FS returns the filesystem assets are read from.
func (c *Catalog) FS() fsx.FS {
	return c.fs
}

// RegisterKind registers the asset kind of files with the given extension,
// replacing any previous kind for it.
func (c *Catalog) RegisterKind(ext string, kind Kind, newFn func() Asset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ext = strings.ToLower(ext)
	c.kinds[ext] = KindInfo{Kind: kind, Exts: []string{ext}, New: newFn}
}

// KindForExt returns the kind registered for the extension.
func (c *Catalog) KindForExt(ext string) (Kind, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ki, ok := c.kinds[strings.ToLower(ext)]
	return ki.Kind, ok
}

// ensureRecord returns the record for a normalized identifier,
// creating an unloaded one with no references. Must hold mu.
func (c *Catalog) ensureRecord(identifier string) *record {
	id := Hash(identifier)
	if rec, ok := c.records.ValueByKeyTry(id); ok {
		return rec
	}
	rec := &record{id: id, identifier: identifier}
	rec.path, rec.subName = SplitIdentifier(identifier)
	if rec.isSubasset() {
		rec.parent = Hash(rec.path)
	}
	c.records.Add(id, rec)
	return rec
}

// recordFor returns the record of the handle. Must hold mu.
func (c *Catalog) recordFor(h *Handle) (*record, error) {
	if !h.Valid() {
		return nil, ErrReleased
	}
	if h.cat != c {
		return nil, fmt.Errorf("%w: handle %v belongs to another catalog", ErrUnknownID, h.id)
	}
	rec, ok := c.records.ValueByKeyTry(h.id)
	if !ok {
		return nil, ErrUnknownID
	}
	return rec, nil
}

// GetAsset returns the asset of the handle, loading it first if it is
// not loaded. A sub-asset is loaded by loading its parent file.
// Load failures are returned as a [*LoadError].
func (c *Catalog) GetAsset(h *Handle) (Asset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, err := c.getLocked(h)
	if err != nil {
		return nil, err
	}
	return rec.obj, nil
}

// Get returns the asset of the handle as type T,
// loading it if needed. It returns a [*KindMismatchError]
// if the asset is of a different type.
func Get[T Asset](c *Catalog, h *Handle) (T, error) {
	var zero T
	c.mu.Lock()
	rec, err := c.getLocked(h)
	if err != nil {
		c.mu.Unlock()
		return zero, err
	}
	obj, kind, ident := rec.obj, rec.kind, rec.identifier
	c.mu.Unlock()
	t, ok := obj.(T)
	if !ok {
		return zero, &KindMismatchError{Identifier: ident, Want: reflect.TypeFor[T]().String(), Have: kind}
	}
	return t, nil
}

// getLocked returns the loaded record of the handle. Must hold mu.
func (c *Catalog) getLocked(h *Handle) (*record, error) {
	rec, err := c.recordFor(h)
	if err != nil {
		return nil, err
	}
	if rec.state == Loaded {
		return rec, nil
	}
	if rec.path == "" {
		return nil, ErrNoPath
	}
	if !rec.isSubasset() {
		err := c.load(rec)
		c.registerForWatch(rec, err)
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
	parent := c.ensureRecord(rec.path)
	if parent.state == Unloaded {
		err := c.load(parent)
		c.registerForWatch(parent, err)
		if err != nil {
			return nil, err
		}
	}
	if rec.state != Loaded {
		return nil, &LoadError{Kind: NotFound, Identifier: rec.identifier,
			Err: fmt.Errorf("%q did not produce sub-asset %q", rec.path, rec.subName)}
	}
	return rec, nil
}

// GetAssetIdentifier returns the full identifier of the handle's asset,
// or "" if it is unknown.
func (c *Catalog) GetAssetIdentifier(h *Handle) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, err := c.recordFor(h)
	if err != nil {
		return ""
	}
	return rec.identifier
}

// IsSubasset returns whether the handle refers to a sub-asset.
func (c *Catalog) IsSubasset(h *Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, err := c.recordFor(h)
	return err == nil && rec.isSubasset()
}

// FreeAsset releases the resources of the handle's asset and marks it
// unloaded, along with its sub-assets. The next [Catalog.GetAsset]
// loads it again. Sub-assets are only freed through their parent, so
// freeing one directly does nothing, as does freeing an unloaded asset.
func (c *Catalog) FreeAsset(h *Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, err := c.recordFor(h)
	if err != nil {
		return
	}
	c.free(rec)
}

// free is FreeAsset for a record. Must hold mu.
func (c *Catalog) free(rec *record) {
	if rec.state == Unloaded || rec.isSubasset() {
		return
	}
	for _, sh := range rec.subAssets {
		if srec, ok := c.records.ValueByKeyTry(sh.id); ok {
			c.unloadSubasset(srec)
		}
		c.releaseLocked(sh)
	}
	rec.subAssets = nil
	if rec.obj != nil {
		rec.obj.Release()
	}
	rec.obj = nil
	rec.state = Unloaded
}

// unloadSubasset releases the object of a sub-asset record. Must hold mu.
func (c *Catalog) unloadSubasset(srec *record) {
	if srec.state != Loaded {
		return
	}
	if srec.obj != nil {
		srec.obj.Release()
	}
	srec.obj = nil
	srec.state = Unloaded
}

// CollectGarbage frees every loaded top-level asset that has no
// references, and returns how many were freed. Sub-assets are freed
// with their parent.
func (c *Catalog) CollectGarbage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collectLocked()
}

func (c *Catalog) collectLocked() int {
	n := 0
	for _, id := range c.records.Keys() {
		rec := c.records.ValueByKey(id)
		if rec.refCount != 0 || rec.state != Loaded || rec.isSubasset() {
			continue
		}
		c.free(rec)
		n++
	}
	if n > 0 {
		c.log.Debug("collected unreferenced assets", "count", n)
	}
	return n
}

// Close frees all assets that have no references. Assets that are
// still referenced are left loaded and logged.
func (c *Catalog) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collectLocked()
	for _, kv := range c.records.Order {
		rec := kv.Value
		if rec.refCount > 0 && !rec.isSubasset() {
			c.log.Warn("asset still referenced at close", "asset", rec.identifier, "refs", rec.refCount)
		}
	}
}

// Info is a snapshot of a catalog record.
type Info struct {
	ID         ID
	Identifier string
	Path       string
	Subasset   string
	RefCount   int
	State      State
	Kind       Kind

	// Parent is the ID of the parent file of a sub-asset.
	Parent ID

	// Subassets are the identifiers of the sub-assets produced
	// by the last load.
	Subassets []string
}

func (c *Catalog) info(rec *record) Info {
	inf := Info{ID: rec.id, Identifier: rec.identifier, Path: rec.path, Subasset: rec.subName,
		RefCount: rec.refCount, State: rec.state, Kind: rec.kind, Parent: rec.parent}
	for _, sh := range rec.subAssets {
		if srec, ok := c.records.ValueByKeyTry(sh.id); ok {
			inf.Subassets = append(inf.Subassets, srec.identifier)
		}
	}
	return inf
}

// Info returns a snapshot of the handle's record.
func (c *Catalog) Info(h *Handle) (Info, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, err := c.recordFor(h)
	if err != nil {
		return Info{}, err
	}
	return c.info(rec), nil
}

// Records returns snapshots of all records in creation order.
func (c *Catalog) Records() []Info {
	c.mu.Lock()
	defer c.mu.Unlock()
	infos := make([]Info, 0, c.records.Len())
	for _, kv := range c.records.Order {
		infos = append(infos, c.info(kv.Value))
	}
	return infos
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.records.Len()
}
