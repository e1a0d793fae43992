// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render holds the render state of one GL context: the active
// shader program with its matrices, point and line state, lighting and
// clearing, and renders models with it.
package render

import (
	"errors"
	"fmt"
	"image"

	"cogentcore.org/glview/camera"
	"cogentcore.org/glview/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Restore undoes one scoped override.
type Restore func() error

// Overrides collects restore functions so they can be undone together, in
// reverse order.
type Overrides []Restore

// Push records r. It passes err through, recording nothing when it is
// non-nil, so it can wrap an Override call directly.
func (o *Overrides) Push(r Restore, err error) error {
	if err != nil {
		return err
	}
	*o = append(*o, r)
	return nil
}

// Restore runs all recorded restores, last first, and clears the list.
// All of them run even when some fail.
func (o *Overrides) Restore() error {
	var errs []error
	for i := len(*o) - 1; i >= 0; i-- {
		errs = append(errs, (*o)[i]())
	}
	*o = nil
	return errors.Join(errs...)
}

// WithOverrides runs fn and then restores every override it pushed, also
// when fn fails or panics.
func WithOverrides(fn func(o *Overrides) error) (err error) {
	var o Overrides
	defer func() {
		if rerr := o.Restore(); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()
	return fn(&o)
}

func override[T any](prev, v T, set func(T) error) (Restore, error) {
	if err := set(v); err != nil {
		return nil, err
	}
	return func() error { return set(prev) }, nil
}

// PolygonMode selects how triangles are rasterized.
type PolygonMode int32

const (
	Fill PolygonMode = iota
	Line
	Point
)

func (m PolygonMode) String() string {
	switch m {
	case Fill:
		return "Fill"
	case Line:
		return "Line"
	case Point:
		return "Point"
	}
	return fmt.Sprintf("PolygonMode(%d)", int32(m))
}

// Enum returns the GL polygon mode.
func (m PolygonMode) Enum() gpu.Enum {
	switch m {
	case Line:
		return gpu.Line
	case Point:
		return gpu.Point
	}
	return gpu.Fill
}

// White is the default clear color.
var White = mgl32.Vec4{1, 1, 1, 1}

// Context is the render state of one GL context. Every setter pushes its
// value to the device or the active program immediately. It is not safe
// for concurrent use.
type Context struct {
	gc        *gpu.Context
	rendering *Program
	program   *Program

	view, projection, model mgl32.Mat4

	pointSize      float32
	lineWidth      float32
	lighting       bool
	lightDirection mgl32.Vec3
	pointSmooth    bool
	noPointHint    bool // the device rejects the point smoothing hint
	lineSmooth     bool
	clearColor     mgl32.Vec4
	polygonMode    PolygonMode
}

// NewContext builds the rendering program, makes it current and sets the
// default state: point size and line width 1, smoothing off, white clear
// color, filled polygons, alpha blending and a LESS depth test.
func NewContext(gc *gpu.Context) (*Context, error) {
	p, err := NewRenderingProgram(gc)
	if err != nil {
		return nil, fmt.Errorf("render: building rendering program: %w", err)
	}
	c := &Context{
		gc:             gc,
		rendering:      p,
		view:           mgl32.Ident4(),
		projection:     mgl32.Ident4(),
		model:          mgl32.Ident4(),
		lightDirection: DefaultLightDirection,
	}
	if err := c.init(); err != nil {
		p.Release()
		return nil, fmt.Errorf("render: initializing context: %w", err)
	}
	return c, nil
}

func (c *Context) init() error {
	if err := c.activate(c.rendering); err != nil {
		return err
	}
	steps := []func() error{
		func() error { return c.SetPointSize(1) },
		func() error { return c.SetLineWidth(1) },
		func() error { return c.SetPointSmooth(false) },
		func() error { return c.SetLineSmooth(false) },
		func() error { return c.SetClearColor(White) },
		func() error { return c.SetPolygonMode(Fill) },
		func() error { return c.gc.SetEnabled(gpu.Blend, true) },
		func() error { return c.gc.BlendFunc(gpu.SrcAlpha, gpu.OneMinusSrcAlpha) },
		func() error { return c.gc.SetEnabled(gpu.DepthTest, true) },
		func() error { return c.gc.DepthFunc(gpu.Less) },
	}
	for _, s := range steps {
		if err := s(); err != nil {
			return err
		}
	}
	return nil
}

// GPU returns the underlying gpu context.
func (c *Context) GPU() *gpu.Context { return c.gc }

// Program returns the active program.
func (c *Context) Program() *Program { return c.program }

// RenderingProgram returns the lit color program owned by the context.
func (c *Context) RenderingProgram() *Program { return c.rendering }

// activate makes p current and brings its uniforms up to date.
func (c *Context) activate(p *Program) error {
	if _, err := p.Use(); err != nil {
		return err
	}
	c.program = p
	return c.push()
}

// push uploads the context's matrices and light state to the active program.
func (c *Context) push() error {
	p := c.program
	if err := p.SetViewMatrix(c.view); err != nil {
		return err
	}
	if err := p.SetProjectionMatrix(c.projection); err != nil {
		return err
	}
	if err := p.SetModelMatrix(c.model); err != nil {
		return err
	}
	if err := p.SetLightMode(lightMode(c.lighting)); err != nil {
		return err
	}
	return p.SetLightDirection(c.lightDirection)
}

func lightMode(on bool) int32 {
	if on {
		return 1
	}
	return 0
}

func hintMode(nice bool) gpu.Enum {
	if nice {
		return gpu.Nicest
	}
	return gpu.Fastest
}

// ViewMatrix returns the view matrix.
func (c *Context) ViewMatrix() mgl32.Mat4 { return c.view }

// ProjectionMatrix returns the projection matrix.
func (c *Context) ProjectionMatrix() mgl32.Mat4 { return c.projection }

// ModelMatrix returns the model matrix.
func (c *Context) ModelMatrix() mgl32.Mat4 { return c.model }

// PointSize returns the point size.
func (c *Context) PointSize() float32 { return c.pointSize }

// LineWidth returns the line width.
func (c *Context) LineWidth() float32 { return c.lineWidth }

// Lighting reports whether lighting is on.
func (c *Context) Lighting() bool { return c.lighting }

// LightDirection returns the light direction.
func (c *Context) LightDirection() mgl32.Vec3 { return c.lightDirection }

// PointSmooth reports whether point smoothing is requested.
func (c *Context) PointSmooth() bool { return c.pointSmooth }

// LineSmooth reports whether line smoothing is on.
func (c *Context) LineSmooth() bool { return c.lineSmooth }

// ClearColor returns the clear color.
func (c *Context) ClearColor() mgl32.Vec4 { return c.clearColor }

// PolygonMode returns the polygon mode.
func (c *Context) PolygonMode() PolygonMode { return c.polygonMode }

// Viewport returns the viewport.
func (c *Context) Viewport() image.Rectangle { return c.gc.Viewport() }

// SetViewMatrix sets the view matrix.
func (c *Context) SetViewMatrix(m mgl32.Mat4) error {
	if err := c.program.SetViewMatrix(m); err != nil {
		return err
	}
	c.view = m
	return nil
}

// SetProjectionMatrix sets the projection matrix.
func (c *Context) SetProjectionMatrix(m mgl32.Mat4) error {
	if err := c.program.SetProjectionMatrix(m); err != nil {
		return err
	}
	c.projection = m
	return nil
}

// SetModelMatrix sets the model matrix.
func (c *Context) SetModelMatrix(m mgl32.Mat4) error {
	if err := c.program.SetModelMatrix(m); err != nil {
		return err
	}
	c.model = m
	return nil
}

// SetPointSize sets the rasterized point diameter in pixels.
func (c *Context) SetPointSize(size float32) error {
	if err := c.gc.PointSize(size); err != nil {
		return err
	}
	c.pointSize = size
	return nil
}

// SetLineWidth sets the rasterized line width in pixels.
func (c *Context) SetLineWidth(width float32) error {
	if err := c.gc.LineWidth(width); err != nil {
		return err
	}
	c.lineWidth = width
	return nil
}

// SetLighting turns diffuse lighting on or off.
func (c *Context) SetLighting(on bool) error {
	if err := c.program.SetLightMode(lightMode(on)); err != nil {
		return err
	}
	c.lighting = on
	return nil
}

// SetLightDirection sets the direction the light shines in.
func (c *Context) SetLightDirection(d mgl32.Vec3) error {
	if err := c.program.SetLightDirection(d); err != nil {
		return err
	}
	c.lightDirection = d
	return nil
}

// SetPointSmooth requests smooth or fast point rasterization. It is a
// hint only; points are never multisampled by the context. A core
// profile has no point smoothing hint, so there the setting is only
// recorded.
func (c *Context) SetPointSmooth(on bool) error {
	if !c.noPointHint {
		err := c.gc.Hint(gpu.PointSmoothHint, hintMode(on))
		var de *gpu.DeviceError
		switch {
		case errors.As(err, &de) && de.Code == gpu.InvalidEnum:
			c.noPointHint = true
			gpu.Logger().Debug("render: point smoothing hint unsupported", "err", err)
		case err != nil:
			return err
		}
	}
	c.pointSmooth = on
	return nil
}

// SetLineSmooth turns line smoothing on or off.
func (c *Context) SetLineSmooth(on bool) error {
	if err := c.gc.SetEnabled(gpu.LineSmooth, on); err != nil {
		return err
	}
	if err := c.gc.Hint(gpu.LineSmoothHint, hintMode(on)); err != nil {
		return err
	}
	c.lineSmooth = on
	return nil
}

// SetClearColor sets the color ClearBuffers clears to.
func (c *Context) SetClearColor(col mgl32.Vec4) error {
	if err := c.gc.ClearColor(col[0], col[1], col[2], col[3]); err != nil {
		return err
	}
	c.clearColor = col
	return nil
}

// SetPolygonMode sets how triangles are rasterized.
func (c *Context) SetPolygonMode(m PolygonMode) error {
	if err := c.gc.PolygonMode(m.Enum()); err != nil {
		return err
	}
	c.polygonMode = m
	return nil
}

// SetViewport sets the device viewport.
func (c *Context) SetViewport(r image.Rectangle) error {
	return c.gc.SetViewport(r)
}

// OverrideModelMatrix replaces the model matrix until restored.
func (c *Context) OverrideModelMatrix(m mgl32.Mat4) (Restore, error) {
	return override(c.model, m, c.SetModelMatrix)
}

// AppendModelMatrix right-multiplies the model matrix by m until restored.
func (c *Context) AppendModelMatrix(m mgl32.Mat4) (Restore, error) {
	return override(c.model, c.model.Mul4(m), c.SetModelMatrix)
}

// OverridePointSize sets the point size until restored.
func (c *Context) OverridePointSize(size float32) (Restore, error) {
	return override(c.pointSize, size, c.SetPointSize)
}

// OverrideLineWidth sets the line width until restored.
func (c *Context) OverrideLineWidth(width float32) (Restore, error) {
	return override(c.lineWidth, width, c.SetLineWidth)
}

// OverrideLighting turns lighting on or off until restored.
func (c *Context) OverrideLighting(on bool) (Restore, error) {
	return override(c.lighting, on, c.SetLighting)
}

// OverridePointSmooth sets point smoothing until restored.
func (c *Context) OverridePointSmooth(on bool) (Restore, error) {
	return override(c.pointSmooth, on, c.SetPointSmooth)
}

// OverrideLineSmooth sets line smoothing until restored.
func (c *Context) OverrideLineSmooth(on bool) (Restore, error) {
	return override(c.lineSmooth, on, c.SetLineSmooth)
}

// OverrideClearColor sets the clear color until restored.
func (c *Context) OverrideClearColor(col mgl32.Vec4) (Restore, error) {
	return override(c.clearColor, col, c.SetClearColor)
}

// OverridePolygonMode sets the polygon mode until restored.
func (c *Context) OverridePolygonMode(m PolygonMode) (Restore, error) {
	return override(c.polygonMode, m, c.SetPolygonMode)
}

// OverrideProgram makes p the active program until restored. The current
// matrices and light state are pushed to p, and again to the previous
// program on restore.
func (c *Context) OverrideProgram(p *Program) (Restore, error) {
	return override(c.program, p, c.activate)
}

// ClearBuffers clears exactly the requested planes of the bound
// framebuffer.
func (c *Context) ClearBuffers(color, depth, stencil bool) error {
	var mask uint32
	if color {
		mask |= gpu.ColorBufferBit
	}
	if depth {
		mask |= gpu.DepthBufferBit
	}
	if stencil {
		mask |= gpu.StencilBufferBit
	}
	return c.gc.Clear(mask)
}

// AttachCamera sets the view and projection matrices from cam and keeps
// them in sync with it until detach is called. Errors while syncing are
// logged.
func (c *Context) AttachCamera(cam *camera.Camera) (detach func(), err error) {
	if err := c.SetViewMatrix(cam.View()); err != nil {
		return nil, err
	}
	if err := c.SetProjectionMatrix(cam.Projection()); err != nil {
		return nil, err
	}
	return cam.Subscribe(func(ch camera.Change) {
		var err error
		if ch.ViewChanged {
			err = c.SetViewMatrix(ch.Camera.View())
		}
		if ch.ProjectionChanged && err == nil {
			err = c.SetProjectionMatrix(ch.Camera.Projection())
		}
		if err != nil {
			gpu.Logger().Warn("render: updating camera matrices", "field", ch.Field, "err", err)
		}
	}), nil
}

// Release deletes the rendering program. It is safe to call more than once.
func (c *Context) Release() {
	c.rendering.Release()
}
