// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"fmt"
)

// Renderbuffer is a GL renderbuffer with fixed storage; it cannot be
// resized, a new one must be created instead.
type Renderbuffer struct {
	object
	format        Enum
	width, height int
}

// NewRenderbuffer creates a renderbuffer with the given internal format
// and size.
func NewRenderbuffer(ctx *Context, format Enum, width, height int) (*Renderbuffer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("gpu: invalid renderbuffer size %dx%d", width, height)
	}
	h := ctx.dev.GenRenderbuffer()
	if err := ctx.check("GenRenderbuffer"); err != nil {
		return nil, err
	}
	if h == 0 {
		return nil, errors.New("gpu: GenRenderbuffer returned no handle")
	}
	rb := &Renderbuffer{object: object{ctx: ctx, handle: h, kind: "renderbuffer"}, format: format, width: width, height: height}
	err := rb.With(func() error {
		ctx.dev.RenderbufferStorage(RenderbufferTarget, format, int32(width), int32(height))
		return ctx.check("RenderbufferStorage")
	})
	if err != nil {
		rb.Release()
		return nil, err
	}
	rb.created()
	return rb, nil
}

// Format returns the internal format.
func (rb *Renderbuffer) Format() Enum { return rb.format }

// Width returns the width in pixels.
func (rb *Renderbuffer) Width() int { return rb.width }

// Height returns the height in pixels.
func (rb *Renderbuffer) Height() int { return rb.height }

// With binds the renderbuffer, runs fn, and restores the previous one.
func (rb *Renderbuffer) With(fn func() error) error {
	return rb.with(RenderbufferTarget, fn)
}

// Release deletes the renderbuffer. It is safe to call more than once.
func (rb *Renderbuffer) Release() {
	rb.release(rb.ctx.dev.DeleteRenderbuffer, RenderbufferTarget)
}

// Framebuffer is an off-screen GL framebuffer. Its draw and read
// buffers start out as None and are selected explicitly around use.
type Framebuffer struct {
	object
	drawBuffer Enum
	readBuffer Enum
}

// NewFramebuffer creates a framebuffer with no attachments.
func NewFramebuffer(ctx *Context) (*Framebuffer, error) {
	h := ctx.dev.GenFramebuffer()
	if err := ctx.check("GenFramebuffer"); err != nil {
		return nil, err
	}
	if h == 0 {
		return nil, errors.New("gpu: GenFramebuffer returned no handle")
	}
	fb := &Framebuffer{object: object{ctx: ctx, handle: h, kind: "framebuffer"}, drawBuffer: None, readBuffer: None}
	err := fb.With(func() error {
		ctx.dev.ReadBuffer(None)
		if err := ctx.check("ReadBuffer"); err != nil {
			return err
		}
		ctx.dev.DrawBuffer(None)
		return ctx.check("DrawBuffer")
	})
	if err != nil {
		fb.Release()
		return nil, err
	}
	fb.created()
	return fb, nil
}

// Bind binds the framebuffer for drawing and reading and returns a
// function restoring the previous bindings.
func (fb *Framebuffer) Bind() (func(), error) {
	return fb.bindTo(FramebufferTarget)
}

// With binds the framebuffer, runs fn, and restores the previous bindings.
func (fb *Framebuffer) With(fn func() error) error {
	return fb.with(FramebufferTarget, fn)
}

// AttachTexture attaches level 0 of tx at the given attachment point.
func (fb *Framebuffer) AttachTexture(attachment Enum, tx *Texture) error {
	th, err := tx.live()
	if err != nil {
		return err
	}
	return fb.With(func() error {
		fb.ctx.dev.FramebufferTexture2D(FramebufferTarget, attachment, Texture2D, th, 0)
		return fb.ctx.check("FramebufferTexture2D")
	})
}

// AttachRenderbuffer attaches rb at the given attachment point.
func (fb *Framebuffer) AttachRenderbuffer(attachment Enum, rb *Renderbuffer) error {
	rh, err := rb.live()
	if err != nil {
		return err
	}
	return fb.With(func() error {
		fb.ctx.dev.FramebufferRenderbuffer(FramebufferTarget, attachment, RenderbufferTarget, rh)
		return fb.ctx.check("FramebufferRenderbuffer")
	})
}

// DrawBuffer returns the selected draw buffer.
func (fb *Framebuffer) DrawBuffer() Enum { return fb.drawBuffer }

// SetDrawBuffer selects the color buffer drawn into.
func (fb *Framebuffer) SetDrawBuffer(mode Enum) error {
	return fb.With(func() error {
		fb.ctx.dev.DrawBuffer(mode)
		if err := fb.ctx.check("DrawBuffer"); err != nil {
			return err
		}
		fb.drawBuffer = mode
		return nil
	})
}

// ReadBuffer returns the selected read buffer.
func (fb *Framebuffer) ReadBuffer() Enum { return fb.readBuffer }

// SetReadBuffer selects the color buffer read by ReadPixels.
func (fb *Framebuffer) SetReadBuffer(mode Enum) error {
	return fb.With(func() error {
		fb.ctx.dev.ReadBuffer(mode)
		if err := fb.ctx.check("ReadBuffer"); err != nil {
			return err
		}
		fb.readBuffer = mode
		return nil
	})
}

// CheckComplete returns an error unless the framebuffer is complete.
func (fb *Framebuffer) CheckComplete() error {
	return fb.With(func() error {
		st := fb.ctx.dev.CheckFramebufferStatus(FramebufferTarget)
		if err := fb.ctx.check("CheckFramebufferStatus"); err != nil {
			return err
		}
		if st != FramebufferComplete {
			return fmt.Errorf("gpu: framebuffer %d incomplete: status 0x%04X", fb.handle, uint32(st))
		}
		return nil
	})
}

// ReadPixels reads a rectangle of the current read buffer into dst, which
// must hold width*height pixels of the given format and type. Coordinates
// are in device space, with the origin at the bottom left.
func (fb *Framebuffer) ReadPixels(x, y, width, height int, format TextureFormat, dst []byte) error {
	if need := width * height * format.PixelSize(); len(dst) < need {
		return fmt.Errorf("gpu: ReadPixels needs %d bytes, got %d", need, len(dst))
	}
	return fb.With(func() error {
		fb.ctx.dev.ReadPixels(int32(x), int32(y), int32(width), int32(height), format.Format, format.Type, dst)
		return fb.ctx.check("ReadPixels")
	})
}

// Release deletes the framebuffer; attachments are owned by the caller.
// It is safe to call more than once.
func (fb *Framebuffer) Release() {
	fb.release(fb.ctx.dev.DeleteFramebuffer, DrawFramebuffer, ReadFramebuffer)
}
