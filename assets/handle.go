// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

// Handle is a counted reference to one catalog record. A handle
// keeps its asset from being collected by [Catalog.CollectGarbage]
// until it is released.
//
// Handles are shared only through [Handle.Clone] and transferred
// through [Handle.Move]; copying the struct does not add a reference.
// A single Handle value must not be used from several goroutines at
// once; give each goroutine its own clone.
type Handle struct {
	cat *Catalog
	id  ID
}

// Handle returns a new handle to the asset with the given identifier,
// creating an unloaded record for it if there is none.
// The identifier is a file path, optionally followed by
// ":" and a sub-asset name, as in "models/ship.gltf:mesh_0".
func (c *Catalog) Handle(identifier string) *Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec := c.ensureRecord(NormalizeIdentifier(identifier))
	rec.refCount++
	return &Handle{cat: c, id: rec.id}
}

// HandleFromID returns a new handle to the existing record with the
// given ID, or [ErrUnknownID] if there is none.
func (c *Catalog) HandleFromID(id ID) (*Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.records.ValueByKeyTry(id)
	if !ok || id == 0 {
		return nil, ErrUnknownID
	}
	rec.refCount++
	return &Handle{cat: c, id: id}, nil
}

// ID returns the identity of the asset, or 0 if the handle is released.
func (h *Handle) ID() ID {
	if h == nil {
		return 0
	}
	return h.id
}

// Valid returns whether the handle still refers to an asset.
func (h *Handle) Valid() bool {
	return h.ID() != 0
}

// Catalog returns the catalog of the handle.
func (h *Handle) Catalog() *Catalog {
	if h == nil {
		return nil
	}
	return h.cat
}

// Equal returns whether both handles refer to the same asset.
func (h *Handle) Equal(o *Handle) bool {
	return h.ID() == o.ID()
}

// Identifier returns the full identifier of the asset.
func (h *Handle) Identifier() string {
	if !h.Valid() {
		return ""
	}
	return h.cat.GetAssetIdentifier(h)
}

func (h *Handle) String() string {
	if !h.Valid() {
		return "Handle(released)"
	}
	return "Handle(" + h.Identifier() + ")"
}

// Clone returns a new handle to the same asset, adding a reference.
// Cloning a released handle returns a released handle.
func (h *Handle) Clone() *Handle {
	if !h.Valid() {
		return &Handle{cat: h.Catalog()}
	}
	c := h.cat
	c.mu.Lock()
	defer c.mu.Unlock()
	if rec, ok := c.records.ValueByKeyTry(h.id); ok {
		rec.refCount++
	}
	return &Handle{cat: c, id: h.id}
}

// Move returns a new handle that takes over the reference of h,
// leaving h released. The reference count does not change.
func (h *Handle) Move() *Handle {
	if h == nil {
		return &Handle{}
	}
	nh := &Handle{cat: h.cat, id: h.id}
	h.id = 0
	return nh
}

// Release drops the reference of the handle. It does not free the
// asset; that is done by [Catalog.CollectGarbage]. Releasing a
// released handle does nothing.
func (h *Handle) Release() {
	if !h.Valid() {
		return
	}
	c := h.cat
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseLocked(h)
}

// releaseLocked drops the reference of h. Must hold mu.
func (c *Catalog) releaseLocked(h *Handle) {
	if h.id == 0 {
		return
	}
	if rec, ok := c.records.ValueByKeyTry(h.id); ok && rec.refCount > 0 {
		rec.refCount--
	}
	h.id = 0
}
