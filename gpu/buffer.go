// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"fmt"
)

// Buffer is a GL buffer object holding static vertex or index data.
type Buffer struct {
	object
	target Enum
	size   int
}

// NewBuffer creates a buffer for the given target (ArrayBuffer or
// ElementArrayBuffer) and uploads data to it with the given usage.
// On any failure the buffer is released and the error returned.
func NewBuffer(ctx *Context, target Enum, data []byte, usage Enum) (*Buffer, error) {
	if target != ArrayBuffer && target != ElementArrayBuffer {
		return nil, fmt.Errorf("gpu: invalid buffer target 0x%04X", uint32(target))
	}
	h := ctx.dev.GenBuffer()
	if err := ctx.check("GenBuffer"); err != nil {
		return nil, err
	}
	if h == 0 {
		return nil, errors.New("gpu: GenBuffer returned no handle")
	}
	b := &Buffer{object: object{ctx: ctx, handle: h, kind: "buffer"}, target: target, size: len(data)}
	err := b.With(func() error {
		ctx.dev.BufferData(target, data, usage)
		return ctx.check("BufferData")
	})
	if err != nil {
		b.Release()
		return nil, err
	}
	b.created()
	return b, nil
}

// Target returns the buffer's binding target.
func (b *Buffer) Target() Enum {
	return b.target
}

// Size returns the size of the buffer data in bytes.
func (b *Buffer) Size() int {
	return b.size
}

// Bind binds the buffer to its target and returns a function that
// restores the previous binding.
func (b *Buffer) Bind() (func(), error) {
	return b.bindTo(b.target)
}

// With binds the buffer, runs fn, and restores the previous binding.
func (b *Buffer) With(fn func() error) error {
	return b.with(b.target, fn)
}

// Release deletes the buffer. It is safe to call more than once.
func (b *Buffer) Release() {
	b.release(b.ctx.dev.DeleteBuffer, b.target)
}

// IndexBuffer is an element array buffer with a known index count and type.
type IndexBuffer struct {
	*Buffer
	count int
	typ   Enum
}

// NewIndexBuffer uploads indices packed to the narrowest unsigned type that
// holds the largest index.
func NewIndexBuffer(ctx *Context, indices []uint32) (*IndexBuffer, error) {
	data, typ := PackIndices(indices)
	b, err := NewBuffer(ctx, ElementArrayBuffer, data, StaticDraw)
	if err != nil {
		return nil, err
	}
	b.kind = "index buffer"
	return &IndexBuffer{Buffer: b, count: len(indices), typ: typ}, nil
}

// Count returns the number of indices.
func (ib *IndexBuffer) Count() int {
	return ib.count
}

// Type returns the index component type: UnsignedByte, UnsignedShort or
// UnsignedInt.
func (ib *IndexBuffer) Type() Enum {
	return ib.typ
}
