// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Forward moves the camera by d times its look direction. The look
// direction is not normalized, so d is in units of its length.
func (c *Camera) Forward(d float32) {
	c.SetPosition(c.orient.Position.Add(c.orient.LookDirection.Mul(d)))
}

// ZoomIn moves the camera forward by d.
func (c *Camera) ZoomIn(d float32) { c.Forward(d) }

// ZoomOut moves the camera backward by d.
func (c *Camera) ZoomOut(d float32) { c.Forward(-d) }

// LookAt points the camera at target with a unit look direction.
func (c *Camera) LookAt(target mgl32.Vec3) error {
	d := target.Sub(c.orient.Position)
	if d.Len() == 0 {
		return fmt.Errorf("%w: target %v is the camera position", ErrInvalidOrientation, target)
	}
	return c.SetLookDirection(d.Normalize())
}

// Orbit rotates the camera around target by dx degrees about the up
// direction and dy degrees about the horizontal axis, keeping its
// distance to target, and then looks at target. The up direction follows
// the vertical rotation.
func (c *Camera) Orbit(target mgl32.Vec3, dx, dy float32) error {
	o := c.orient
	ctdir := o.Position.Sub(target)
	if ctdir.Len() == 0 {
		ctdir = mgl32.Vec3{0, 0, 1}
	}
	dir := ctdir.Normalize()
	up := o.UpDirection

	q := mgl32.QuatRotate(mgl32.DegToRad(dx), up.Normalize())
	right := up.Cross(dir)
	if right.Len() > 0 {
		dyq := mgl32.QuatRotate(mgl32.DegToRad(dy), right.Normalize())
		q = dyq.Mul(q)
		o.UpDirection = dyq.Rotate(up)
	}
	o.Position = target.Add(q.Rotate(ctdir))
	look := target.Sub(o.Position)
	if look.Len() == 0 {
		return fmt.Errorf("%w: orbit collapsed onto target %v", ErrInvalidOrientation, target)
	}
	o.LookDirection = look.Normalize()
	return c.SetOrientation(o)
}

// Pan moves the camera within its view plane: dx to the left and dy
// downward, so that dragging by (dx, dy) moves the scene with the cursor.
// The look direction is unchanged.
func (c *Camera) Pan(dx, dy float32) {
	o := c.orient
	right := o.LookDirection.Cross(o.UpDirection)
	if right.Len() == 0 {
		return
	}
	right = right.Normalize()
	up := right.Cross(o.LookDirection).Normalize()
	c.SetPosition(o.Position.Sub(right.Mul(dx)).Sub(up.Mul(dy)))
}
