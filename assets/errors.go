// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by load errors for missing files and
	// for sub-assets that their parent did not produce.
	ErrNotFound = errors.New("asset not found")

	// ErrUnsupportedKind is matched by load errors for file
	// extensions with no registered kind.
	ErrUnsupportedKind = errors.New("unsupported asset kind")

	// ErrParseFailure is matched by load errors returned by a kind's Load.
	ErrParseFailure = errors.New("asset failed to load")

	// ErrNoPath is returned when getting an asset whose identifier has no path.
	ErrNoPath = errors.New("asset identifier has no path")

	// ErrKindMismatch is matched by [KindMismatchError].
	ErrKindMismatch = errors.New("asset kind mismatch")

	// ErrUnknownID is returned for an ID with no catalog record.
	ErrUnknownID = errors.New("unknown asset id")

	// ErrReleased is returned when using a released or moved-from handle.
	ErrReleased = errors.New("asset handle released")
)

// LoadErrorKind classifies a [LoadError].
type LoadErrorKind int32

const (
	NotFound LoadErrorKind = iota
	UnsupportedKind
	ParseFailure
)

func (k LoadErrorKind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case UnsupportedKind:
		return "UnsupportedKind"
	case ParseFailure:
		return "ParseFailure"
	}
	return fmt.Sprintf("LoadErrorKind(%d)", int32(k))
}

func (k LoadErrorKind) sentinel() error {
	switch k {
	case NotFound:
		return ErrNotFound
	case UnsupportedKind:
		return ErrUnsupportedKind
	}
	return ErrParseFailure
}

// LoadError is returned when an asset could not be loaded.
// The asset stays unloaded.
type LoadError struct {
	Kind LoadErrorKind

	// Identifier of the asset that failed.
	Identifier string

	// Err is the underlying cause, if any.
	Err error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %q", e.Kind.sentinel(), e.Identifier)
	}
	return fmt.Sprintf("%s: %q: %v", e.Kind.sentinel(), e.Identifier, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error for the error kind.
func (e *LoadError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// KindMismatchError is returned by [Get] when the loaded asset
// is not of the requested type.
type KindMismatchError struct {
	Identifier string

	// Want is the requested Go type.
	Want string

	// Have is the kind tag of the loaded asset.
	Have Kind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("%s: %q is %s, not %s", ErrKindMismatch, e.Identifier, e.Have, e.Want)
}

func (e *KindMismatchError) Is(target error) bool {
	return target == ErrKindMismatch
}
