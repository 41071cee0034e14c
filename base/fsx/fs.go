// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsx provides the filesystem abstraction used for asset access:
// an OS directory backed implementation and an in-memory one, plus
// helpers for existence, modification time and in-use checks.
package fsx

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"cogentcore.org/engine/base/errors"
)

// FS is the view of a filesystem that asset loading and hot reloading need.
// Names use forward slashes. Implementations may also accept
// absolute OS paths.
type FS interface {
	// Stat returns file info for the named file.
	Stat(name string) (fs.FileInfo, error)

	// ReadFile reads the whole named file.
	ReadFile(name string) ([]byte, error)

	// InUse reports whether the named file is currently held open
	// for writing by another process, in which case its contents
	// should not be trusted yet.
	InUse(name string) bool
}

// FileExists checks whether given file exists, returning true if so,
// false if not, and error if there is an error in accessing the file.
// Directories do not count as files.
func FileExists(fsys FS, name string) (bool, error) {
	fi, err := fsys.Stat(name)
	if err == nil {
		return !fi.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// ModTime returns the last modification time of the named file.
func ModTime(fsys FS, name string) (time.Time, error) {
	fi, err := fsys.Stat(name)
	if err != nil {
		return time.Time{}, err
	}
	return fi.ModTime(), nil
}

// Dir is an [FS] rooted at an OS directory. Relative names are
// resolved against the directory; absolute OS paths (including
// drive letter and UNC forms on Windows) are used as they are.
type Dir string

// OSPath returns the OS path for the given name.
func (d Dir) OSPath(name string) string {
	osn := filepath.FromSlash(name)
	if filepath.IsAbs(osn) || filepath.VolumeName(osn) != "" {
		return osn
	}
	return filepath.Join(string(d), osn)
}

func (d Dir) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(d.OSPath(name))
}

func (d Dir) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(d.OSPath(name))
}

func (d Dir) InUse(name string) bool {
	return inUse(d.OSPath(name))
}

// Abs returns the absolute directory path for d.
func (d Dir) Abs() (string, error) {
	return filepath.Abs(string(d))
}
