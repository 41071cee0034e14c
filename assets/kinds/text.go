// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kinds

import "cogentcore.org/engine/assets"

// Text is a plain text file.
type Text struct {
	Text string
}

func (tx *Text) Kind() assets.Kind { return TextKind }

func (tx *Text) Load(ctx *assets.LoadContext) error {
	b, err := ctx.ReadFile()
	if err != nil {
		return err
	}
	tx.Text = string(b)
	return nil
}

func (tx *Text) Release() {
	tx.Text = ""
}
