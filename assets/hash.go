// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ID is the 64-bit identity of an asset, the FNV-1a hash of its
// normalized identifier. Zero means no identity, as in a released
// or moved-from [Handle].
//
// Distinct identifiers that hash to the same ID are the same asset.
type ID uint64

const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// Hash returns the 64-bit FNV-1a hash of text.
func Hash(text string) ID {
	h := uint64(fnvOffset64)
	for i := 0; i < len(text); i++ {
		h ^= uint64(text[i])
		h *= fnvPrime64
	}
	return ID(h)
}

func (id ID) String() string {
	return "0x" + strconv.FormatUint(uint64(id), 16)
}

// NormalizeIdentifier returns the canonical form of an identifier:
// backslashes become forward slashes, the text is put in Unicode NFC,
// and runs of slashes collapse to one, except for a leading
// "//" network share prefix.
func NormalizeIdentifier(s string) string {
	s = norm.NFC.String(strings.ReplaceAll(s, `\`, "/"))
	var b strings.Builder
	b.Grow(len(s))
	if strings.HasPrefix(s, "//") {
		b.WriteByte('/')
		s = s[1:]
	}
	var last byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '/' && last == '/' {
			continue
		}
		b.WriteByte(c)
		last = c
	}
	return b.String()
}

// SplitIdentifier splits an identifier into the file path and the
// sub-asset name, at the last colon. The colon of a drive letter
// ("C:/x.png") and a colon followed by more path ("a:b/c.png")
// do not start a sub-asset name, and neither does a trailing colon.
func SplitIdentifier(s string) (path, sub string) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 || i == len(s)-1 {
		return s, ""
	}
	if i == 1 && isDriveLetter(s[0]) {
		return s, ""
	}
	sub = s[i+1:]
	if strings.ContainsAny(sub, `/\`) {
		return s, ""
	}
	return s[:i], sub
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// SubassetIdentifier returns the identifier of the named
// sub-asset of the file at path.
func SubassetIdentifier(path, name string) string {
	return path + ":" + name
}

// MeshSubassetName returns the sub-asset name of the mesh at the
// given zero-based index within a model file.
func MeshSubassetName(i int) string {
	return "mesh_" + strconv.Itoa(i)
}
