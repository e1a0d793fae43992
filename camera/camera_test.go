// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d of %v", i, got)
	}
}

func TestDefaults(t *testing.T) {
	c := NewPerspective()
	assert.Equal(t, Perspective, c.Kind())
	assert.Equal(t, mgl32.Vec3{}, c.Position())
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, c.LookDirection())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.UpDirection())
	assert.Equal(t, float32(1e-3), c.NearPlane())
	assert.Equal(t, float32(1e3), c.FarPlane())
	assert.Equal(t, float32(45), c.FieldOfView())
	assert.Equal(t, float32(1), c.AspectRatio())
	assert.Equal(t, mgl32.Ident4(), c.View())
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 1, 1e-3, 1e3), c.Projection())

	o := NewOrthographic()
	assert.Equal(t, Orthographic, o.Kind())
	assert.Equal(t, float32(1), o.Width())
	assert.Equal(t, float32(1), o.Height())
	assert.Equal(t, mgl32.Ortho(-0.5, 0.5, -0.5, 0.5, 1e-3, 1e3), o.Projection())
	assert.Equal(t, "Orthographic", o.Kind().String())
}

func TestViewMatrix(t *testing.T) {
	c := NewPerspective()
	c.SetPosition(mgl32.Vec3{0, 0, 5})
	want := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 4}, mgl32.Vec3{0, 1, 0})
	assert.Equal(t, want, c.View())

	// the origin lands 5 units in front of the eye
	p := c.View().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -5, p[2], 1e-5)
}

func TestChangeNotification(t *testing.T) {
	c := NewPerspective()
	var got []Change
	unsub := c.Subscribe(func(ch Change) { got = append(got, ch) })

	c.SetPosition(mgl32.Vec3{1, 2, 3})
	require.NoError(t, c.SetFieldOfView(60))
	require.Len(t, got, 2)
	assert.Equal(t, FieldPosition, got[0].Field)
	assert.True(t, got[0].ViewChanged)
	assert.False(t, got[0].ProjectionChanged)
	assert.Same(t, c, got[0].Camera)
	assert.Equal(t, FieldFieldOfView, got[1].Field)
	assert.True(t, got[1].ProjectionChanged)
	assert.False(t, got[1].ViewChanged)

	// equal values are silent
	c.SetPosition(mgl32.Vec3{1, 2, 3})
	require.NoError(t, c.SetFieldOfView(60))
	assert.Len(t, got, 2)

	unsub()
	unsub()
	c.SetPosition(mgl32.Vec3{})
	assert.Len(t, got, 2)
}

func TestMatricesUpdatedBeforeNotify(t *testing.T) {
	c := NewPerspective()
	var seen mgl32.Mat4
	c.Subscribe(func(ch Change) { seen = ch.Camera.Projection() })
	require.NoError(t, c.SetAspectRatio(2))
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 2, 1e-3, 1e3), seen)
}

func TestUnsubscribeDuringNotify(t *testing.T) {
	c := NewPerspective()
	n := 0
	var unsub func()
	unsub = c.Subscribe(func(Change) { n++; unsub() })
	m := 0
	c.Subscribe(func(Change) { m++ })
	c.SetPosition(mgl32.Vec3{1, 0, 0})
	c.SetPosition(mgl32.Vec3{2, 0, 0})
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, m)
}

func TestSetOrientation(t *testing.T) {
	c := NewPerspective()
	var fields []Field
	c.Subscribe(func(ch Change) { fields = append(fields, ch.Field) })
	o := c.Orientation()
	o.Position = mgl32.Vec3{0, 0, 2}
	o.LookDirection = mgl32.Vec3{0, 0, -2}
	require.NoError(t, c.SetOrientation(o))
	assert.Equal(t, []Field{FieldPosition, FieldLookDirection}, fields)
	assert.Equal(t, o, c.Orientation())
}

func TestInvalidProjection(t *testing.T) {
	c := NewPerspective()
	calls := 0
	c.Subscribe(func(Change) { calls++ })
	before := c.Projection()

	assert.ErrorIs(t, c.SetNearPlane(0), ErrInvalidProjection)
	assert.ErrorIs(t, c.SetNearPlane(-1), ErrInvalidProjection)
	assert.ErrorIs(t, c.SetNearPlane(2e3), ErrInvalidProjection)
	assert.ErrorIs(t, c.SetFarPlane(1e-4), ErrInvalidProjection)
	assert.ErrorIs(t, c.SetAspectRatio(0), ErrInvalidProjection)
	assert.ErrorIs(t, c.SetFieldOfView(180), ErrInvalidProjection)

	assert.Equal(t, float32(1e-3), c.NearPlane())
	assert.Equal(t, float32(1e3), c.FarPlane())
	assert.Equal(t, before, c.Projection())
	assert.Zero(t, calls)

	o := NewOrthographic()
	assert.ErrorIs(t, o.SetWidth(0), ErrInvalidProjection)
	assert.ErrorIs(t, o.SetHeight(-3), ErrInvalidProjection)
	require.NoError(t, o.SetWidth(4))
	require.NoError(t, o.SetHeight(2))
	assert.Equal(t, mgl32.Ortho(-2, 2, -1, 1, 1e-3, 1e3), o.Projection())
}

func TestWrongKind(t *testing.T) {
	p := NewPerspective()
	assert.ErrorIs(t, p.SetWidth(2), ErrWrongKind)
	assert.ErrorIs(t, p.SetHeight(2), ErrWrongKind)

	o := NewOrthographic()
	assert.ErrorIs(t, o.SetFieldOfView(30), ErrWrongKind)
	assert.ErrorIs(t, o.SetAspectRatio(2), ErrWrongKind)
	require.NoError(t, o.SetNearPlane(0.5))
}

func TestInvalidOrientation(t *testing.T) {
	c := NewPerspective()
	assert.ErrorIs(t, c.SetLookDirection(mgl32.Vec3{}), ErrInvalidOrientation)
	assert.ErrorIs(t, c.SetUpDirection(mgl32.Vec3{}), ErrInvalidOrientation)
	assert.ErrorIs(t, c.LookAt(mgl32.Vec3{}), ErrInvalidOrientation)
	assert.Equal(t, DefaultOrientation, c.Orientation())
}

func TestForwardAndZoom(t *testing.T) {
	c := NewPerspective()
	require.NoError(t, c.SetLookDirection(mgl32.Vec3{0, 0, -2}))
	c.Forward(1.5)
	assert.Equal(t, mgl32.Vec3{0, 0, -3}, c.Position())
	c.ZoomOut(1.5)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, c.Position())
	c.ZoomIn(0.5)
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, c.Position())
}

func TestLookAt(t *testing.T) {
	c := NewPerspective()
	c.SetPosition(mgl32.Vec3{0, 0, 5})
	require.NoError(t, c.LookAt(mgl32.Vec3{5, 0, 5}))
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, c.LookDirection())
}

func TestOrbit(t *testing.T) {
	c := NewPerspective()
	c.SetPosition(mgl32.Vec3{0, 0, 5})
	require.NoError(t, c.Orbit(mgl32.Vec3{}, 90, 0))
	assertVec3(t, mgl32.Vec3{5, 0, 0}, c.Position())
	assertVec3(t, mgl32.Vec3{-1, 0, 0}, c.LookDirection())
	assertVec3(t, mgl32.Vec3{0, 1, 0}, c.UpDirection())

	// distance to the target is kept
	require.NoError(t, c.Orbit(mgl32.Vec3{}, 20, 30))
	assert.InDelta(t, 5, c.Position().Len(), 1e-4)
	assertVec3(t, c.Position().Mul(-1.0/5), c.LookDirection())
}

func TestPan(t *testing.T) {
	c := NewPerspective()
	c.SetPosition(mgl32.Vec3{0, 0, 5})
	c.Pan(1, 2)
	assertVec3(t, mgl32.Vec3{-1, -2, 5}, c.Position())
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, c.LookDirection())
}
