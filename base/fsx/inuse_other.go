// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !unix && !windows

package fsx

// inUse is not supported on this platform.
func inUse(osPath string) bool {
	return false
}
