// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"fmt"
)

// Attrib describes one vertex attribute stream: its shader location, the
// number of components per vertex and their type. Integer attributes are
// linked with VertexAttribIPointer so the shader receives them unconverted.
type Attrib struct {
	Name       string
	Location   uint32
	Size       int32
	Type       Enum
	Integer    bool
	Normalized bool
}

// Stride returns the byte size of one tightly packed vertex of this attribute.
func (a Attrib) Stride() int32 {
	return a.Size * int32(TypeSize(a.Type))
}

// The fixed vertex layout shared by all shader programs.
var (
	PositionAttrib = Attrib{Name: "position", Location: 0, Size: 3, Type: Float}
	ColorAttrib    = Attrib{Name: "color", Location: 1, Size: 3, Type: Float}
	NormalAttrib   = Attrib{Name: "normal", Location: 2, Size: 3, Type: Float}
	NameAttrib     = Attrib{Name: "name", Location: 3, Size: 2, Type: Int, Integer: true}
)

// VertexArray is a GL vertex array object recording attribute bindings.
type VertexArray struct {
	object
}

// NewVertexArray creates an empty vertex array.
func NewVertexArray(ctx *Context) (*VertexArray, error) {
	h := ctx.dev.GenVertexArray()
	if err := ctx.check("GenVertexArray"); err != nil {
		return nil, err
	}
	if h == 0 {
		return nil, errors.New("gpu: GenVertexArray returned no handle")
	}
	va := &VertexArray{object{ctx: ctx, handle: h, kind: "vertex array"}}
	va.created()
	return va, nil
}

// Bind binds the vertex array and returns a function restoring the
// previous one.
func (va *VertexArray) Bind() (func(), error) {
	return va.bindTo(VertexArraySlot)
}

// With binds the vertex array, runs fn, and restores the previous one.
func (va *VertexArray) With(fn func() error) error {
	return va.with(VertexArraySlot, fn)
}

// Link sources attribute a from buffer b and enables it.
func (va *VertexArray) Link(b *Buffer, a Attrib) error {
	if b.target != ArrayBuffer {
		return fmt.Errorf("gpu: attribute %q must be sourced from an array buffer", a.Name)
	}
	dev := va.ctx.dev
	return va.With(func() error {
		return b.With(func() error {
			if a.Integer {
				dev.VertexAttribIPointer(a.Location, a.Size, a.Type, a.Stride(), 0)
			} else {
				dev.VertexAttribPointer(a.Location, a.Size, a.Type, a.Normalized, a.Stride(), 0)
			}
			if err := va.ctx.check("VertexAttribPointer"); err != nil {
				return err
			}
			dev.EnableVertexAttribArray(a.Location)
			return va.ctx.check("EnableVertexAttribArray")
		})
	})
}

// SetAttribEnabled enables or disables the attribute at the given location.
func (va *VertexArray) SetAttribEnabled(a Attrib, on bool) error {
	return va.With(func() error {
		if on {
			va.ctx.dev.EnableVertexAttribArray(a.Location)
		} else {
			va.ctx.dev.DisableVertexAttribArray(a.Location)
		}
		return va.ctx.check("EnableVertexAttribArray")
	})
}

// Draw issues a non-indexed draw of count vertices starting at first.
func (va *VertexArray) Draw(mode Enum, first, count int) error {
	if count < 0 || first < 0 {
		return fmt.Errorf("gpu: invalid draw range %d+%d", first, count)
	}
	return va.With(func() error {
		va.ctx.dev.DrawArrays(mode, int32(first), int32(count))
		return va.ctx.check("DrawArrays")
	})
}

// DrawIndexed issues an indexed draw over all indices of ib.
func (va *VertexArray) DrawIndexed(mode Enum, ib *IndexBuffer) error {
	return va.With(func() error {
		return ib.With(func() error {
			va.ctx.dev.DrawElements(mode, int32(ib.count), ib.typ, 0)
			return va.ctx.check("DrawElements")
		})
	})
}

// Release deletes the vertex array. It is safe to call more than once.
func (va *VertexArray) Release() {
	va.release(va.ctx.dev.DeleteVertexArray, VertexArraySlot)
}
