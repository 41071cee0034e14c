// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kinds

import (
	"bytes"
	"time"

	"cogentcore.org/engine/assets"
	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// Audio is a WAV file decoded into memory.
type Audio struct {
	// Buffer holds the decoded samples.
	Buffer *beep.Buffer

	Format   beep.Format
	Duration time.Duration
}

func (au *Audio) Kind() assets.Kind { return AudioKind }

func (au *Audio) Load(ctx *assets.LoadContext) error {
	b, err := ctx.ReadFile()
	if err != nil {
		return err
	}
	s, format, err := wav.Decode(bytes.NewReader(b))
	if err != nil {
		return err
	}
	defer s.Close()
	buf := beep.NewBuffer(format)
	buf.Append(s)
	if err := s.Err(); err != nil {
		return err
	}
	au.Buffer = buf
	au.Format = format
	au.Duration = format.SampleRate.D(buf.Len())
	return nil
}

// Streamer returns a streamer over all the samples.
func (au *Audio) Streamer() beep.StreamSeeker {
	return au.Buffer.Streamer(0, au.Buffer.Len())
}

func (au *Audio) Release() {
	au.Buffer = nil
}
