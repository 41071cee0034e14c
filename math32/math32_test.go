// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

func assertVec3(t *testing.T, want, got Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol)
	assert.InDelta(t, want.Y, got.Y, tol)
	assert.InDelta(t, want.Z, got.Z, tol)
}

func TestVector3(t *testing.T) {
	a := Vec3(1, 0, 0)
	b := Vec3(0, 1, 0)
	assert.Equal(t, Vec3(0, 0, 1), a.Cross(b))
	assert.Equal(t, float32(0), a.Dot(b))
	assert.Equal(t, Vec3(1, 1, 0), a.Add(b))
	assertVec3(t, Vec3(0.6, 0.8, 0), Vec3(3, 4, 0).Normal())
	assert.Equal(t, Vector3{}, Vector3{}.Normal())
	assert.Equal(t, "(1, 2, 3)", Vec3(1, 2, 3).String())
}

func TestQuatRotate(t *testing.T) {
	// 90 degrees about Z
	s := Sqrt(0.5)
	q := NewQuat(0, 0, s, s)
	assertVec3(t, Vec3(0, 1, 0), Vec3(1, 0, 0).MulQuat(q))
	assertVec3(t, Vec3(-1, 0, 0), Vec3(1, 0, 0).MulQuat(q.Mul(q)))
	assertVec3(t, Vec3(1, 2, 3), Vec3(1, 2, 3).MulQuat(QuatIdentity()))
	assert.True(t, Quat{}.Normal().IsIdentity())
}

func TestBox3(t *testing.T) {
	b := B3Empty()
	assert.True(t, b.IsEmpty())
	b.SetFromPoints([]Vector3{{-1, 0, 2}, {1, 3, -2}, {0, 1, 0}})
	assert.False(t, b.IsEmpty())
	assert.Equal(t, B3(-1, 0, -2, 1, 3, 2), b)
	assert.Equal(t, Vec3(0, 1.5, 0), b.Center())
	assert.Equal(t, Vec3(2, 3, 4), b.Size())
	assert.True(t, b.ContainsPoint(Vec3(0, 0, 0)))
	assert.False(t, b.ContainsPoint(Vec3(0, 4, 0)))

	e := B3Empty()
	e.ExpandByBox(B3Empty())
	assert.True(t, e.IsEmpty())
	e.ExpandByBox(b)
	assert.Equal(t, b, e)

	tb := B3(0, 0, 0, 1, 1, 1).Transform(Vec3(10, 0, 0), QuatIdentity(), Vec3(2, 2, 2))
	assertVec3(t, Vec3(10, 0, 0), tb.Min)
	assertVec3(t, Vec3(12, 2, 2), tb.Max)
	assert.True(t, B3Empty().Transform(Vec3(1, 1, 1), QuatIdentity(), Vec3(1, 1, 1)).IsEmpty())
}
