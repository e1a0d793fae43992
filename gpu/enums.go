// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

// Enum is an OpenGL enumerant. The values below are the numeric values
// defined by the OpenGL 4.6 core specification, so a [Device] backed by a
// real driver can pass them straight through.
type Enum uint32

// Errors reported by [Device.GetError].
const (
	NoError                     Enum = 0
	InvalidEnum                 Enum = 0x0500
	InvalidValue                Enum = 0x0501
	InvalidOperation            Enum = 0x0502
	StackOverflow               Enum = 0x0503
	StackUnderflow              Enum = 0x0504
	OutOfMemory                 Enum = 0x0505
	InvalidFramebufferOperation Enum = 0x0506
)

// Data types.
const (
	Byte          Enum = 0x1400
	UnsignedByte  Enum = 0x1401
	Short         Enum = 0x1402
	UnsignedShort Enum = 0x1403
	Int           Enum = 0x1404
	UnsignedInt   Enum = 0x1405
	Float         Enum = 0x1406
)

// Primitive topologies.
const (
	Points    Enum = 0x0000
	Lines     Enum = 0x0001
	LineLoop  Enum = 0x0002
	LineStrip Enum = 0x0003
	Triangles Enum = 0x0004
)

// Buffer targets and usages.
const (
	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
	StaticDraw         Enum = 0x88E4
	DynamicDraw        Enum = 0x88E8
)

// Texture targets, parameters and values.
const (
	Texture2D        Enum = 0x0DE1
	TextureMagFilter Enum = 0x2800
	TextureMinFilter Enum = 0x2801
	TextureWrapS     Enum = 0x2802
	TextureWrapT     Enum = 0x2803
	Nearest          Enum = 0x2600
	Linear           Enum = 0x2601
	Repeat           Enum = 0x2901
	ClampToEdge      Enum = 0x812F
)

// Pixel formats and internal formats.
const (
	DepthComponent   Enum = 0x1902
	Red              Enum = 0x1903
	RGB              Enum = 0x1907
	RGBA             Enum = 0x1908
	RGBA8            Enum = 0x8058
	RG               Enum = 0x8227
	RGInteger        Enum = 0x8228
	RG32I            Enum = 0x823B
	RGBA32I          Enum = 0x8D82
	RGBAInteger      Enum = 0x8D99
	DepthStencil     Enum = 0x84F9
	Depth24Stencil8  Enum = 0x88F0
	DepthComponent24 Enum = 0x81A6
)

// Framebuffer and renderbuffer targets and attachments.
const (
	FramebufferTarget        Enum = 0x8D40
	ReadFramebuffer          Enum = 0x8CA8
	DrawFramebuffer          Enum = 0x8CA9
	RenderbufferTarget       Enum = 0x8D41
	ColorAttachment0         Enum = 0x8CE0
	DepthAttachment          Enum = 0x8D00
	StencilAttachment        Enum = 0x8D20
	DepthStencilAttachment   Enum = 0x821A
	FramebufferComplete      Enum = 0x8CD5
	FramebufferIncomplete    Enum = 0x8CD6
	FramebufferNoAttachments Enum = 0x8CD7
	FramebufferUnsupported   Enum = 0x8CDD
	None                     Enum = 0
)

// Shader stages.
const (
	FragmentShader Enum = 0x8B30
	VertexShader   Enum = 0x8B31
)

// Capabilities, hints, and fixed-function state.
const (
	PointSmooth       Enum = 0x0B10
	LineSmooth        Enum = 0x0B20
	PolygonSmooth     Enum = 0x0B41
	CullFace          Enum = 0x0B44
	DepthTest         Enum = 0x0B71
	Blend             Enum = 0x0BE2
	PointSmoothHint   Enum = 0x0C51 // compatibility profile only
	LineSmoothHint    Enum = 0x0C52
	PolygonSmoothHint Enum = 0x0C53
	DontCare          Enum = 0x1100
	Fastest           Enum = 0x1101
	Nicest            Enum = 0x1102
	Less              Enum = 0x0201
	LessEqual         Enum = 0x0203
	SrcAlpha          Enum = 0x0302
	OneMinusSrcAlpha  Enum = 0x0303
	FrontAndBack      Enum = 0x0408
	Point             Enum = 0x1B00
	Line              Enum = 0x1B01
	Fill              Enum = 0x1B02
)

// Clear masks.
const (
	DepthBufferBit   uint32 = 0x00000100
	StencilBufferBit uint32 = 0x00000400
	ColorBufferBit   uint32 = 0x00004000
)

// TypeSize returns the size in bytes of one component of the given data type,
// or 0 if the type is not a component type.
func TypeSize(typ Enum) int {
	switch typ {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort:
		return 2
	case Int, UnsignedInt, Float:
		return 4
	}
	return 0
}
