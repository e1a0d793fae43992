// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
)

// Binding slots that are not buffer, texture or framebuffer targets.
// The values are the GL query enums for the respective bindings.
const (
	VertexArraySlot Enum = 0x85B5 // GL_VERTEX_ARRAY_BINDING
	ProgramSlot     Enum = 0x8B8D // GL_CURRENT_PROGRAM
)

// Context is the owner of one GL device context. It checks the error flag
// after every device call and tracks the object bound to each binding slot,
// so that scoped binds can restore the previously bound object rather than
// zero. It assumes all binding changes go through it. The element array
// binding is tracked per vertex array, as GL stores it there.
//
// A Context is not safe for concurrent use: it must only be used on the
// thread that owns the device context.
type Context struct {
	dev      Device
	bound    map[Enum]uint32
	elements map[uint32]uint32 // element array buffer by vertex array
	enabled  map[Enum]bool
	viewport image.Rectangle
}

// NewContext returns a Context for the given device, which must be current.
// The viewport is read from the device, so one set up by the host before
// is known.
func NewContext(dev Device) *Context {
	c := &Context{
		dev:      dev,
		bound:    make(map[Enum]uint32),
		elements: make(map[uint32]uint32),
		enabled:  make(map[Enum]bool),
	}
	if _, err := c.queryViewport(); err != nil {
		Logger().Warn("gpu: reading viewport", "err", err)
	}
	return c
}

// Device returns the underlying device.
func (c *Context) Device() Device {
	return c.dev
}

// check converts a pending GL error into a *DeviceError for op.
func (c *Context) check(op string) error {
	if code := c.dev.GetError(); code != NoError {
		return &DeviceError{Op: op, Code: code}
	}
	return nil
}

// Bound returns the object currently bound to the given slot.
// For [FramebufferTarget] it returns the draw framebuffer.
// For [ElementArrayBuffer] it returns the buffer of the bound vertex array.
func (c *Context) Bound(slot Enum) uint32 {
	switch slot {
	case FramebufferTarget:
		slot = DrawFramebuffer
	case ElementArrayBuffer:
		return c.elements[c.bound[VertexArraySlot]]
	}
	return c.bound[slot]
}

// bind binds handle to slot and returns a function that restores the
// previous binding. The restore function never fails the caller: an error
// while restoring is logged, because it runs from defers on exit paths.
func (c *Context) bind(slot Enum, handle uint32) (func(), error) {
	if slot == FramebufferTarget {
		return c.bindFramebuffer(handle)
	}
	prev := c.Bound(slot)
	if err := c.rawBind(slot, handle); err != nil {
		return nil, err
	}
	return func() {
		if err := c.rawBind(slot, prev); err != nil {
			Logger().Warn("gpu: restoring binding", "slot", fmt.Sprintf("0x%04X", uint32(slot)), "err", err)
		}
	}, nil
}

func (c *Context) bindFramebuffer(handle uint32) (func(), error) {
	prevDraw, prevRead := c.bound[DrawFramebuffer], c.bound[ReadFramebuffer]
	if err := c.rawBind(FramebufferTarget, handle); err != nil {
		return nil, err
	}
	return func() {
		var err error
		if prevDraw == prevRead {
			err = c.rawBind(FramebufferTarget, prevDraw)
		} else {
			err = c.rawBind(DrawFramebuffer, prevDraw)
			if err == nil {
				err = c.rawBind(ReadFramebuffer, prevRead)
			}
		}
		if err != nil {
			Logger().Warn("gpu: restoring framebuffer binding", "err", err)
		}
	}, nil
}

// rawBind performs the device bind call for slot and records it.
func (c *Context) rawBind(slot Enum, handle uint32) error {
	var op string
	switch slot {
	case ArrayBuffer, ElementArrayBuffer:
		c.dev.BindBuffer(slot, handle)
		op = "BindBuffer"
	case Texture2D:
		c.dev.BindTexture(slot, handle)
		op = "BindTexture"
	case RenderbufferTarget:
		c.dev.BindRenderbuffer(slot, handle)
		op = "BindRenderbuffer"
	case FramebufferTarget, DrawFramebuffer, ReadFramebuffer:
		c.dev.BindFramebuffer(slot, handle)
		op = "BindFramebuffer"
	case VertexArraySlot:
		c.dev.BindVertexArray(handle)
		op = "BindVertexArray"
	case ProgramSlot:
		c.dev.UseProgram(handle)
		op = "UseProgram"
	default:
		return fmt.Errorf("gpu: unknown binding slot 0x%04X", uint32(slot))
	}
	if err := c.check(op); err != nil {
		return err
	}
	switch slot {
	case FramebufferTarget:
		c.bound[DrawFramebuffer] = handle
		c.bound[ReadFramebuffer] = handle
	case ElementArrayBuffer:
		c.elements[c.bound[VertexArraySlot]] = handle
	default:
		c.bound[slot] = handle
	}
	return nil
}

// forget clears any slot that refers to a deleted object, mirroring GL,
// which unbinds objects as they are deleted.
func (c *Context) forget(handle uint32, slots ...Enum) {
	for _, s := range slots {
		switch s {
		case ElementArrayBuffer:
			for va, h := range c.elements {
				if h == handle {
					delete(c.elements, va)
				}
			}
		case VertexArraySlot:
			delete(c.elements, handle)
		}
		if c.bound[s] == handle {
			c.bound[s] = 0
		}
	}
}

// Enabled reports whether a capability was last enabled through this Context.
func (c *Context) Enabled(capability Enum) bool {
	return c.enabled[capability]
}

// SetEnabled enables or disables a capability.
func (c *Context) SetEnabled(capability Enum, on bool) error {
	if on {
		c.dev.Enable(capability)
	} else {
		c.dev.Disable(capability)
	}
	if err := c.check("Enable"); err != nil {
		return err
	}
	c.enabled[capability] = on
	return nil
}

// OverrideEnabled sets a capability and returns a function restoring its
// previous state.
func (c *Context) OverrideEnabled(capability Enum, on bool) (func() error, error) {
	prev := c.enabled[capability]
	if err := c.SetEnabled(capability, on); err != nil {
		return nil, err
	}
	return func() error { return c.SetEnabled(capability, prev) }, nil
}

// Hint sets an implementation hint.
func (c *Context) Hint(target, mode Enum) error {
	c.dev.Hint(target, mode)
	return c.check("Hint")
}

// BlendFunc sets the blend factors.
func (c *Context) BlendFunc(src, dst Enum) error {
	c.dev.BlendFunc(src, dst)
	return c.check("BlendFunc")
}

// DepthFunc sets the depth comparison.
func (c *Context) DepthFunc(fn Enum) error {
	c.dev.DepthFunc(fn)
	return c.check("DepthFunc")
}

// PointSize sets the rasterized point diameter.
func (c *Context) PointSize(size float32) error {
	c.dev.PointSize(size)
	return c.check("PointSize")
}

// LineWidth sets the rasterized line width.
func (c *Context) LineWidth(width float32) error {
	c.dev.LineWidth(width)
	return c.check("LineWidth")
}

// PolygonMode sets the rasterization mode for both faces.
func (c *Context) PolygonMode(mode Enum) error {
	c.dev.PolygonMode(FrontAndBack, mode)
	return c.check("PolygonMode")
}

// ClearColor sets the color used by Clear.
func (c *Context) ClearColor(r, g, b, a float32) error {
	c.dev.ClearColor(r, g, b, a)
	return c.check("ClearColor")
}

// ClearDepth sets the depth used by Clear.
func (c *Context) ClearDepth(depth float64) error {
	c.dev.ClearDepth(depth)
	return c.check("ClearDepth")
}

// Clear clears the buffer planes in mask.
func (c *Context) Clear(mask uint32) error {
	c.dev.Clear(mask)
	return c.check("Clear")
}

// Viewport returns the viewport as last set or read from the device.
func (c *Context) Viewport() image.Rectangle {
	return c.viewport
}

// queryViewport reads the device viewport into the cache, picking up
// changes made by the host outside this Context.
func (c *Context) queryViewport() (image.Rectangle, error) {
	v := c.dev.GetViewport()
	if err := c.check("GetViewport"); err != nil {
		return c.viewport, err
	}
	c.viewport = image.Rect(int(v[0]), int(v[1]), int(v[0]+v[2]), int(v[1]+v[3]))
	return c.viewport, nil
}

// SetViewport sets the device viewport.
func (c *Context) SetViewport(r image.Rectangle) error {
	c.dev.Viewport(int32(r.Min.X), int32(r.Min.Y), int32(r.Dx()), int32(r.Dy()))
	if err := c.check("Viewport"); err != nil {
		return err
	}
	c.viewport = r
	return nil
}

// OverrideViewport sets the viewport and returns a function restoring the
// one the device had before.
func (c *Context) OverrideViewport(r image.Rectangle) (func() error, error) {
	prev, err := c.queryViewport()
	if err != nil {
		return nil, err
	}
	if err := c.SetViewport(r); err != nil {
		return nil, err
	}
	return func() error { return c.SetViewport(prev) }, nil
}

// Finish blocks until all submitted commands have completed.
func (c *Context) Finish() error {
	c.dev.Finish()
	return c.check("Finish")
}
