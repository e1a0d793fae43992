// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"fmt"
)

// TextureFormat is the storage description of a texture: the internal
// format on the device and the format and type of client pixel data.
type TextureFormat struct {
	Internal Enum
	Format   Enum
	Type     Enum
}

// Commonly used texture formats.
var (
	// RGBA8Format is 8-bit normalized RGBA color.
	RGBA8Format = TextureFormat{Internal: RGBA8, Format: RGBA, Type: UnsignedByte}

	// RG32IFormat holds two signed 32-bit integers per texel.
	RG32IFormat = TextureFormat{Internal: RG32I, Format: RGInteger, Type: Int}
)

// PixelSize returns the bytes per pixel of client data in this format.
func (tf TextureFormat) PixelSize() int {
	n := 4
	switch tf.Format {
	case Red, DepthComponent:
		n = 1
	case RG, RGInteger:
		n = 2
	case RGB:
		n = 3
	}
	return n * TypeSize(tf.Type)
}

// Texture is a 2D GL texture. Filters default to Linear and wrap modes to
// ClampToEdge; they are set at creation and by the setters below, each of
// which binds the texture for the duration of the call.
type Texture struct {
	object
	width, height int
	format        TextureFormat
	minFilter     Enum
	magFilter     Enum
	wrapS, wrapT  Enum
}

// NewTexture2D creates a width×height texture in the given format with
// optional initial pixel data (nil leaves the contents undefined).
func NewTexture2D(ctx *Context, width, height int, format TextureFormat, pixels []byte) (*Texture, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("gpu: invalid texture size %dx%d", width, height)
	}
	h := ctx.dev.GenTexture()
	if err := ctx.check("GenTexture"); err != nil {
		return nil, err
	}
	if h == 0 {
		return nil, errors.New("gpu: GenTexture returned no handle")
	}
	tx := &Texture{
		object:    object{ctx: ctx, handle: h, kind: "texture"},
		width:     width,
		height:    height,
		format:    format,
		minFilter: Linear,
		magFilter: Linear,
		wrapS:     ClampToEdge,
		wrapT:     ClampToEdge,
	}
	err := tx.With(func() error {
		params := [...][2]Enum{
			{TextureMinFilter, tx.minFilter},
			{TextureMagFilter, tx.magFilter},
			{TextureWrapS, tx.wrapS},
			{TextureWrapT, tx.wrapT},
		}
		for _, p := range params {
			ctx.dev.TexParameteri(Texture2D, p[0], int32(p[1]))
			if err := ctx.check("TexParameteri"); err != nil {
				return err
			}
		}
		ctx.dev.TexImage2D(Texture2D, 0, format.Internal, int32(width), int32(height), format.Format, format.Type, pixels)
		return ctx.check("TexImage2D")
	})
	if err != nil {
		tx.Release()
		return nil, err
	}
	tx.created()
	return tx, nil
}

// Width returns the texture width in pixels.
func (tx *Texture) Width() int { return tx.width }

// Height returns the texture height in pixels.
func (tx *Texture) Height() int { return tx.height }

// Format returns the texture format.
func (tx *Texture) Format() TextureFormat { return tx.format }

// Bind binds the texture and returns a function restoring the previous one.
func (tx *Texture) Bind() (func(), error) {
	return tx.bindTo(Texture2D)
}

// With binds the texture, runs fn, and restores the previous one.
func (tx *Texture) With(fn func() error) error {
	return tx.with(Texture2D, fn)
}

func (tx *Texture) setParam(pname, value Enum, field *Enum) error {
	return tx.With(func() error {
		tx.ctx.dev.TexParameteri(Texture2D, pname, int32(value))
		if err := tx.ctx.check("TexParameteri"); err != nil {
			return err
		}
		*field = value
		return nil
	})
}

// MinFilter returns the minification filter.
func (tx *Texture) MinFilter() Enum { return tx.minFilter }

// SetMinFilter sets the minification filter.
func (tx *Texture) SetMinFilter(f Enum) error {
	return tx.setParam(TextureMinFilter, f, &tx.minFilter)
}

// MagFilter returns the magnification filter.
func (tx *Texture) MagFilter() Enum { return tx.magFilter }

// SetMagFilter sets the magnification filter.
func (tx *Texture) SetMagFilter(f Enum) error {
	return tx.setParam(TextureMagFilter, f, &tx.magFilter)
}

// SetWrap sets the S and T wrap modes.
func (tx *Texture) SetWrap(s, t Enum) error {
	if err := tx.setParam(TextureWrapS, s, &tx.wrapS); err != nil {
		return err
	}
	return tx.setParam(TextureWrapT, t, &tx.wrapT)
}

// Wrap returns the S and T wrap modes.
func (tx *Texture) Wrap() (s, t Enum) { return tx.wrapS, tx.wrapT }

// Release deletes the texture. It is safe to call more than once.
func (tx *Texture) Release() {
	tx.release(tx.ctx.dev.DeleteTexture, Texture2D)
}
