// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"cogentcore.org/engine/assets"
	"cogentcore.org/engine/gpu"
	"github.com/c2h5oh/datasize"
	"github.com/spf13/cobra"
)

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <identifier>...",
		Short: "Print the IDs of asset identifiers",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, a := range args {
				printHash(cmd.OutOrStdout(), a)
			}
		},
	}
}

func printHash(w io.Writer, identifier string) {
	n := assets.NormalizeIdentifier(identifier)
	fmt.Fprintf(w, "%s\t%s\n", assets.Hash(n), n)
}

func newInspectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <identifier>...",
		Short: "Load assets and print their records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, dev, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			var handles []*assets.Handle
			defer func() {
				for _, h := range handles {
					h.Release()
				}
				app.Catalog.Close()
			}()
			out := cmd.OutOrStdout()
			var errs []error
			for _, a := range args {
				h := app.Catalog.Handle(a)
				handles = append(handles, h)
				if _, err := app.Catalog.GetAsset(h); err != nil {
					errs = append(errs, err)
					fmt.Fprintf(out, "%s: %v\n", a, err)
					if errors.Is(err, assets.ErrNotFound) {
						if s := suggest(app.Config.Assets.Root, a); s != "" {
							fmt.Fprintf(out, "  did you mean %q?\n", s)
						}
					}
				}
				inf, _ := app.Catalog.Info(h)
				printInfo(out, inf)
			}
			printStats(out, dev.Stats())
			return errors.Join(errs...)
		},
	}
}

func printInfo(w io.Writer, inf assets.Info) {
	fmt.Fprintf(w, "%s\t%s\n", inf.ID, inf.Identifier)
	fmt.Fprintf(w, "  state: %s, kind: %s, refs: %d\n", inf.State, inf.Kind, inf.RefCount)
	for _, s := range inf.Subassets {
		fmt.Fprintf(w, "  sub-asset: %s\n", s)
	}
}

func printStats(w io.Writer, st gpu.Stats) {
	fmt.Fprintf(w, "gpu: %d textures, %d buffers, %d shaders, %s\n",
		st.Textures, st.Buffers, st.Shaders, datasize.ByteSize(st.Bytes).HumanReadable())
}

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <identifier>...",
		Short: "Hold assets and reload them when their files change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, a := range args {
				h := app.Catalog.Handle(a)
				app.Hold(h)
				if _, err := app.Catalog.GetAsset(h); err != nil {
					fmt.Fprintf(out, "%s: %v\n", a, err)
				}
			}
			app.OnReload = func(ids []string) {
				for _, id := range ids {
					fmt.Fprintf(out, "reloaded %s\n", id)
				}
			}
			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
			defer stop()
			return app.Run(ctx, nil)
		},
	}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newConsoleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Run catalog commands read from standard input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, dev, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			cs := newConsole(app.Catalog, dev, cmd.OutOrStdout())
			defer cs.close()
			return cs.run(cmd.InOrStdin())
		},
	}
}
