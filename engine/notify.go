// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"log/slog"
	"path/filepath"

	"cogentcore.org/engine/base/errors"
	"cogentcore.org/engine/base/fsx"
	"github.com/fsnotify/fsnotify"
)

// notifier wakes the frame loop when a file changes in a directory
// holding a watched asset, so that the change is picked up before
// the next poll. Polling still decides what is reloaded.
type notifier struct {
	dir     fsx.Dir
	watcher *fsnotify.Watcher

	// dirs are the directories added to the watcher.
	// Only used by the frame loop.
	dirs map[string]bool
}

func newNotifier(dir fsx.Dir) (*notifier, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &notifier{dir: dir, watcher: w, dirs: map[string]bool{}}, nil
}

// sync adds the directories of the given asset paths to the watcher.
func (n *notifier) sync(paths []string) {
	for _, p := range paths {
		d := filepath.Dir(n.dir.OSPath(p))
		if n.dirs[d] {
			continue
		}
		if err := n.watcher.Add(d); err != nil {
			slog.Debug("unable to watch directory", "dir", d, "err", err)
			continue
		}
		n.dirs[d] = true
	}
}

// run forwards change events to wake until ctx is done.
func (n *notifier) run(ctx context.Context, wake chan<- struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-n.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Chmod) == 0 {
				continue
			}
			select {
			case wake <- struct{}{}:
			default:
			}
		case err, ok := <-n.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("file watcher error", "err", err)
		}
	}
}

func (n *notifier) close() {
	errors.Log(n.watcher.Close())
}
