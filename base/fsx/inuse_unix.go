// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package fsx

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// inUse tries to take a non-blocking exclusive advisory lock on the file.
// A writer holding a lock on it makes the attempt fail with EWOULDBLOCK.
func inUse(osPath string) bool {
	f, err := os.Open(osPath)
	if err != nil {
		return false
	}
	defer f.Close()
	fd := int(f.Fd())
	err = unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB)
	if err != nil {
		return errors.Is(err, unix.EWOULDBLOCK)
	}
	unix.Flock(fd, unix.LOCK_UN)
	return false
}
