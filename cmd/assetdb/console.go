// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"cogentcore.org/engine/assets"
	"cogentcore.org/engine/gpu"
	"github.com/mattn/go-shellwords"
)

// console runs catalog commands, one per line, holding the handles
// it gets until they are released.
type console struct {
	cat *assets.Catalog
	dev *gpu.Headless
	out io.Writer

	// handles are the held handles by identifier, newest last.
	handles map[string][]*assets.Handle
}

func newConsole(cat *assets.Catalog, dev *gpu.Headless, out io.Writer) *console {
	return &console{cat: cat, dev: dev, out: out, handles: map[string][]*assets.Handle{}}
}

const consoleHelp = `commands:
  get <id>...      get and hold a handle, loading the asset
  release <id>...  release the newest held handle
  info <id>...     print the record
  list             print all records
  gc               free unreferenced assets
  tick             check watched files for changes
  hash <text>...   print IDs
  stats            print GPU resource use
  quit             exit`

// run executes the lines of r until quit or the end of input.
func (cs *console) run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args, err := shellwords.Parse(line)
		if err != nil {
			fmt.Fprintln(cs.out, "error:", err)
			continue
		}
		quit, err := cs.exec(args)
		if err != nil {
			fmt.Fprintln(cs.out, "error:", err)
		}
		if quit {
			return nil
		}
	}
	return sc.Err()
}

// exec runs one command, and returns whether it was quit.
func (cs *console) exec(args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "get":
		for _, a := range args {
			h := cs.cat.Handle(a)
			cs.handles[h.Identifier()] = append(cs.handles[h.Identifier()], h)
			if _, err := cs.cat.GetAsset(h); err != nil {
				return false, err
			}
			fmt.Fprintf(cs.out, "loaded %s\n", h.Identifier())
		}
	case "release":
		for _, a := range args {
			id := assets.NormalizeIdentifier(a)
			hs := cs.handles[id]
			if len(hs) == 0 {
				return false, fmt.Errorf("no handle held for %q", a)
			}
			hs[len(hs)-1].Release()
			cs.handles[id] = hs[:len(hs)-1]
		}
	case "info":
		for _, a := range args {
			inf, ok := cs.record(a)
			if !ok {
				return false, fmt.Errorf("no record for %q", a)
			}
			printInfo(cs.out, inf)
		}
	case "list":
		for _, inf := range cs.cat.Records() {
			fmt.Fprintf(cs.out, "%s\t%-8s %3d  %s\n", inf.ID, inf.State, inf.RefCount, inf.Identifier)
		}
	case "gc":
		fmt.Fprintf(cs.out, "freed %d\n", cs.cat.CollectGarbage())
	case "tick":
		for _, id := range cs.cat.UpdateHotReloading() {
			fmt.Fprintf(cs.out, "reloaded %s\n", id)
		}
	case "hash":
		for _, a := range args {
			printHash(cs.out, a)
		}
	case "stats":
		printStats(cs.out, cs.dev.Stats())
	case "help":
		fmt.Fprintln(cs.out, consoleHelp)
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q, try help", cmd)
	}
	return false, nil
}

// record returns the record of an identifier without adding a reference.
func (cs *console) record(identifier string) (assets.Info, bool) {
	id := assets.Hash(assets.NormalizeIdentifier(identifier))
	for _, inf := range cs.cat.Records() {
		if inf.ID == id {
			return inf, true
		}
	}
	return assets.Info{}, false
}

// close releases all held handles and closes the catalog.
func (cs *console) close() {
	for _, hs := range cs.handles {
		for _, h := range hs {
			h.Release()
		}
	}
	cs.handles = map[string][]*assets.Handle{}
	cs.cat.Close()
}
