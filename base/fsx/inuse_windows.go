// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package fsx

import (
	"errors"

	"golang.org/x/sys/windows"
)

// inUse opens the file with no sharing allowed; a sharing violation
// means another process still has it open.
func inUse(osPath string) bool {
	p, err := windows.UTF16PtrFromString(osPath)
	if err != nil {
		return false
	}
	h, err := windows.CreateFile(p, windows.GENERIC_READ, 0, nil, windows.OPEN_EXISTING, windows.FILE_ATTRIBUTE_NORMAL, 0)
	if err != nil {
		return errors.Is(err, windows.ERROR_SHARING_VIOLATION)
	}
	windows.CloseHandle(h)
	return false
}
