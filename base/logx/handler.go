// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// UseColor is whether to use color in log messages. It is on by default
// and is further limited by what the output terminal supports.
var UseColor = true

// level tag colors
var (
	DebugColor = "#8a8a8a"
	InfoColor  = "#5fafff"
	WarnColor  = "#ffaf00"
	ErrorColor = "#ff5f5f"
)

// SetDefaultLogger sets the default [slog] logger to one writing
// to [os.Stderr] with [NewHandler], honoring [UserLevel] and [UseColor].
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, UseColor)))
}

// NewHandler returns a text [slog.Handler] writing to w whose level is
// always the current [UserLevel]. If color is true, level tags are
// colored with termenv according to the color profile of w.
func NewHandler(w io.Writer, color bool) slog.Handler {
	var out *termenv.Output
	if color {
		out = termenv.NewOutput(w)
	} else {
		out = termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	}
	opts := &slog.HandlerOptions{
		Level: userLeveler{},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 || a.Key != slog.LevelKey {
				return a
			}
			lvl, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}
			a.Value = slog.StringValue(LevelTag(out, lvl))
			return a
		},
	}
	return slog.NewTextHandler(w, opts)
}

// LevelTag returns the level name styled for the given output.
func LevelTag(out *termenv.Output, lvl slog.Level) string {
	clr := InfoColor
	switch {
	case lvl >= slog.LevelError:
		clr = ErrorColor
	case lvl >= slog.LevelWarn:
		clr = WarnColor
	case lvl < slog.LevelInfo:
		clr = DebugColor
	}
	st := out.String(lvl.String()).Foreground(out.Color(clr))
	if lvl >= slog.LevelError {
		st = st.Bold()
	}
	return st.String()
}
