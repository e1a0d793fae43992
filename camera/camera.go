// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camera provides a perspective or orthographic camera that derives
// view and projection matrices from its orientation and projection
// parameters, and notifies subscribers of every change.
package camera

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrInvalidProjection is returned by projection setters whose value
	// would break near > 0, far > near, or a positive aspect ratio,
	// width, height or field of view.
	ErrInvalidProjection = errors.New("camera: invalid projection parameter")

	// ErrInvalidOrientation is returned for a zero or non-finite look or
	// up direction.
	ErrInvalidOrientation = errors.New("camera: invalid orientation")

	// ErrWrongKind is returned when setting a parameter that the camera's
	// projection kind does not have.
	ErrWrongKind = errors.New("camera: parameter does not apply to this projection kind")
)

// Kind is the projection kind of a camera.
type Kind int32

const (
	// Perspective projects with a vertical field of view and aspect ratio.
	Perspective Kind = iota

	// Orthographic projects a width×height box centered on the view axis.
	Orthographic
)

func (k Kind) String() string {
	switch k {
	case Perspective:
		return "Perspective"
	case Orthographic:
		return "Orthographic"
	}
	return fmt.Sprintf("Kind(%d)", int32(k))
}

// Orientation places the camera in the world.
type Orientation struct {
	Position      mgl32.Vec3
	LookDirection mgl32.Vec3
	UpDirection   mgl32.Vec3
}

// Projection holds the projection parameters. FieldOfView (in degrees) and
// AspectRatio apply to [Perspective] cameras, Width and Height to
// [Orthographic] ones.
type Projection struct {
	Kind        Kind
	Near        float32
	Far         float32
	FieldOfView float32
	AspectRatio float32
	Width       float32
	Height      float32
}

// Field identifies a camera parameter in a [Change].
type Field int32

const (
	FieldPosition Field = iota
	FieldLookDirection
	FieldUpDirection
	FieldNearPlane
	FieldFarPlane
	FieldFieldOfView
	FieldAspectRatio
	FieldWidth
	FieldHeight
)

var fieldNames = [...]string{"Position", "LookDirection", "UpDirection", "NearPlane", "FarPlane", "FieldOfView", "AspectRatio", "Width", "Height"}

func (f Field) String() string {
	if f >= 0 && int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("Field(%d)", int32(f))
}

// Change is sent to subscribers once for every parameter that changed.
// The derived matrices have already been recomputed when it is sent.
type Change struct {
	Camera            *Camera
	Field             Field
	ViewChanged       bool
	ProjectionChanged bool
}

type subscriber struct {
	fn func(Change)
}

// Camera is a perspective or orthographic camera. It is not safe for
// concurrent use.
type Camera struct {
	orient     Orientation
	proj       Projection
	view       mgl32.Mat4
	projection mgl32.Mat4
	subs       []*subscriber
}

// DefaultOrientation is at the origin looking down -Z with +Y up.
var DefaultOrientation = Orientation{
	LookDirection: mgl32.Vec3{0, 0, -1},
	UpDirection:   mgl32.Vec3{0, 1, 0},
}

func defaultProjection(kind Kind) Projection {
	return Projection{
		Kind:        kind,
		Near:        1e-3,
		Far:         1e3,
		FieldOfView: 45,
		AspectRatio: 1,
		Width:       1,
		Height:      1,
	}
}

// NewPerspective returns a perspective camera with a 45° field of view,
// aspect ratio 1, near plane 1e-3 and far plane 1e3.
func NewPerspective() *Camera {
	return newCamera(defaultProjection(Perspective))
}

// NewOrthographic returns an orthographic camera with a 1×1 view box,
// near plane 1e-3 and far plane 1e3.
func NewOrthographic() *Camera {
	return newCamera(defaultProjection(Orthographic))
}

func newCamera(p Projection) *Camera {
	c := &Camera{orient: DefaultOrientation, proj: p}
	c.updateView()
	c.updateProjection()
	return c
}

// Kind returns the projection kind.
func (c *Camera) Kind() Kind { return c.proj.Kind }

// Orientation returns the position, look and up directions.
func (c *Camera) Orientation() Orientation { return c.orient }

// Position returns the camera position.
func (c *Camera) Position() mgl32.Vec3 { return c.orient.Position }

// LookDirection returns the direction the camera looks in.
func (c *Camera) LookDirection() mgl32.Vec3 { return c.orient.LookDirection }

// UpDirection returns the camera up direction.
func (c *Camera) UpDirection() mgl32.Vec3 { return c.orient.UpDirection }

// Params returns the projection parameters.
func (c *Camera) Params() Projection { return c.proj }

// NearPlane returns the near plane distance.
func (c *Camera) NearPlane() float32 { return c.proj.Near }

// FarPlane returns the far plane distance.
func (c *Camera) FarPlane() float32 { return c.proj.Far }

// FieldOfView returns the vertical field of view in degrees.
func (c *Camera) FieldOfView() float32 { return c.proj.FieldOfView }

// AspectRatio returns width over height of a perspective camera.
func (c *Camera) AspectRatio() float32 { return c.proj.AspectRatio }

// Width returns the view box width of an orthographic camera.
func (c *Camera) Width() float32 { return c.proj.Width }

// Height returns the view box height of an orthographic camera.
func (c *Camera) Height() float32 { return c.proj.Height }

// View returns the view matrix.
func (c *Camera) View() mgl32.Mat4 { return c.view }

// Projection returns the projection matrix.
func (c *Camera) Projection() mgl32.Mat4 { return c.projection }

// Subscribe registers fn to receive every [Change]. Calling the returned
// function unsubscribes; it is safe to call more than once, including
// from within fn.
func (c *Camera) Subscribe(fn func(Change)) (unsubscribe func()) {
	s := &subscriber{fn: fn}
	c.subs = append(c.subs, s)
	return func() {
		for i, o := range c.subs {
			if o == s {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

func (c *Camera) notify(f Field, view bool) {
	ch := Change{Camera: c, Field: f, ViewChanged: view, ProjectionChanged: !view}
	for _, s := range append([]*subscriber(nil), c.subs...) {
		s.fn(ch)
	}
}

func (c *Camera) updateView() {
	o := c.orient
	c.view = mgl32.LookAtV(o.Position, o.Position.Add(o.LookDirection), o.UpDirection)
}

func (c *Camera) updateProjection() {
	p := c.proj
	switch p.Kind {
	case Orthographic:
		w, h := p.Width/2, p.Height/2
		c.projection = mgl32.Ortho(-w, w, -h, h, p.Near, p.Far)
	default:
		c.projection = mgl32.Perspective(mgl32.DegToRad(p.FieldOfView), p.AspectRatio, p.Near, p.Far)
	}
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

func validDirection(v mgl32.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2]) && v.Len() > 0
}

// SetPosition moves the camera.
func (c *Camera) SetPosition(p mgl32.Vec3) {
	if p == c.orient.Position {
		return
	}
	c.orient.Position = p
	c.updateView()
	c.notify(FieldPosition, true)
}

// SetLookDirection sets the direction the camera looks in. It need not
// be normalized but must be non-zero.
func (c *Camera) SetLookDirection(d mgl32.Vec3) error {
	if !validDirection(d) {
		return fmt.Errorf("%w: look direction %v", ErrInvalidOrientation, d)
	}
	if d == c.orient.LookDirection {
		return nil
	}
	c.orient.LookDirection = d
	c.updateView()
	c.notify(FieldLookDirection, true)
	return nil
}

// SetUpDirection sets the camera up direction, which must be non-zero.
func (c *Camera) SetUpDirection(d mgl32.Vec3) error {
	if !validDirection(d) {
		return fmt.Errorf("%w: up direction %v", ErrInvalidOrientation, d)
	}
	if d == c.orient.UpDirection {
		return nil
	}
	c.orient.UpDirection = d
	c.updateView()
	c.notify(FieldUpDirection, true)
	return nil
}

// SetOrientation sets all orientation fields at once, recomputing the view
// matrix once and sending one [Change] per field that differs.
func (c *Camera) SetOrientation(o Orientation) error {
	if !validDirection(o.LookDirection) || !validDirection(o.UpDirection) {
		return fmt.Errorf("%w: %+v", ErrInvalidOrientation, o)
	}
	prev := c.orient
	if o == prev {
		return nil
	}
	c.orient = o
	c.updateView()
	if o.Position != prev.Position {
		c.notify(FieldPosition, true)
	}
	if o.LookDirection != prev.LookDirection {
		c.notify(FieldLookDirection, true)
	}
	if o.UpDirection != prev.UpDirection {
		c.notify(FieldUpDirection, true)
	}
	return nil
}

// setProjection stores v into *field after validating the resulting
// parameters, then recomputes the projection and notifies.
func (c *Camera) setProjection(f Field, field *float32, v float32) error {
	if v == *field {
		return nil
	}
	prev := *field
	*field = v
	if !c.proj.valid() {
		*field = prev
		return fmt.Errorf("%w: %v = %g", ErrInvalidProjection, f, v)
	}
	c.updateProjection()
	c.notify(f, false)
	return nil
}

func (p *Projection) valid() bool {
	for _, v := range []float32{p.Near, p.Far, p.FieldOfView, p.AspectRatio, p.Width, p.Height} {
		if !finite(v) {
			return false
		}
	}
	if p.Near <= 0 || p.Far <= p.Near {
		return false
	}
	if p.Kind == Orthographic {
		return p.Width > 0 && p.Height > 0
	}
	return p.AspectRatio > 0 && p.FieldOfView > 0 && p.FieldOfView < 180
}

func (c *Camera) requireKind(k Kind, f Field) error {
	if c.proj.Kind != k {
		return fmt.Errorf("%w: %v of %v camera", ErrWrongKind, f, c.proj.Kind)
	}
	return nil
}

// SetNearPlane sets the near plane distance, which must be positive and
// less than the far plane distance.
func (c *Camera) SetNearPlane(near float32) error {
	return c.setProjection(FieldNearPlane, &c.proj.Near, near)
}

// SetFarPlane sets the far plane distance, which must exceed the near
// plane distance.
func (c *Camera) SetFarPlane(far float32) error {
	return c.setProjection(FieldFarPlane, &c.proj.Far, far)
}

// SetFieldOfView sets the vertical field of view of a perspective camera,
// in degrees.
func (c *Camera) SetFieldOfView(deg float32) error {
	if err := c.requireKind(Perspective, FieldFieldOfView); err != nil {
		return err
	}
	return c.setProjection(FieldFieldOfView, &c.proj.FieldOfView, deg)
}

// SetAspectRatio sets width over height of a perspective camera.
func (c *Camera) SetAspectRatio(aspect float32) error {
	if err := c.requireKind(Perspective, FieldAspectRatio); err != nil {
		return err
	}
	return c.setProjection(FieldAspectRatio, &c.proj.AspectRatio, aspect)
}

// SetWidth sets the view box width of an orthographic camera.
func (c *Camera) SetWidth(w float32) error {
	if err := c.requireKind(Orthographic, FieldWidth); err != nil {
		return err
	}
	return c.setProjection(FieldWidth, &c.proj.Width, w)
}

// SetHeight sets the view box height of an orthographic camera.
func (c *Camera) SetHeight(h float32) error {
	if err := c.requireKind(Orthographic, FieldHeight); err != nil {
		return err
	}
	return c.setProjection(FieldHeight, &c.proj.Height, h)
}
