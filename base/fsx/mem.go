// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsx

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
)

// Mem is an in-memory [FS] backed by a hackpadfs memory filesystem.
// It is used for headless tools and tests, where modification times
// and the in-use state of files need to be controlled directly.
type Mem struct {
	fs *mem.FS

	mu    sync.Mutex
	inUse map[string]bool
}

// NewMem returns a new empty in-memory filesystem.
func NewMem() (*Mem, error) {
	mfs, err := mem.NewFS()
	if err != nil {
		return nil, err
	}
	return &Mem{fs: mfs, inUse: map[string]bool{}}, nil
}

// memName converts a name into the rooted, slash-separated form
// that hackpadfs expects, without a leading slash.
func memName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = strings.TrimLeft(path.Clean("/"+name), "/")
	if name == "" {
		return "."
	}
	return name
}

// WriteFile writes data to the named file, creating parent directories
// and truncating any existing file.
func (m *Mem) WriteFile(name string, data []byte) error {
	name = memName(name)
	if dir := path.Dir(name); dir != "." {
		if err := hackpadfs.MkdirAll(m.fs, dir, 0o755); err != nil {
			return err
		}
	}
	f, err := hackpadfs.OpenFile(m.fs, name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	w, ok := f.(io.Writer)
	if !ok {
		return fmt.Errorf("fsx.Mem.WriteFile: file %q is not writable", name)
	}
	_, err = w.Write(data)
	return err
}

// Touch sets the modification time of the named file.
func (m *Mem) Touch(name string, mtime time.Time) error {
	return hackpadfs.Chtimes(m.fs, memName(name), mtime, mtime)
}

// Remove deletes the named file.
func (m *Mem) Remove(name string) error {
	return hackpadfs.Remove(m.fs, memName(name))
}

// SetInUse marks the named file as held open by another writer,
// which [Mem.InUse] then reports.
func (m *Mem) SetInUse(name string, inUse bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if inUse {
		m.inUse[memName(name)] = true
	} else {
		delete(m.inUse, memName(name))
	}
}

func (m *Mem) Stat(name string) (fs.FileInfo, error) {
	return hackpadfs.Stat(m.fs, memName(name))
}

func (m *Mem) ReadFile(name string) ([]byte, error) {
	f, err := m.fs.Open(memName(name))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (m *Mem) InUse(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inUse[memName(name)]
}
