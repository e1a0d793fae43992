// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

// Device is the subset of the OpenGL 4.6 core API used by this package.
// Methods mirror the GL entry points one to one and report failures only
// through GetError, exactly like the underlying API. All calls must happen
// on the thread that owns the current GL context.
//
// Implementations: gpu/gldriver wraps go-gl, and gpu/softgpu is a software
// device used for tests and headless rendering.
type Device interface {
	// GetError returns and clears the oldest recorded error flag.
	GetError() Enum

	GenBuffer() uint32
	DeleteBuffer(handle uint32)
	BindBuffer(target Enum, handle uint32)
	BufferData(target Enum, data []byte, usage Enum)

	GenVertexArray() uint32
	DeleteVertexArray(handle uint32)
	BindVertexArray(handle uint32)
	VertexAttribPointer(location uint32, size int32, typ Enum, normalized bool, stride int32, offset int)
	VertexAttribIPointer(location uint32, size int32, typ Enum, stride int32, offset int)
	EnableVertexAttribArray(location uint32)
	DisableVertexAttribArray(location uint32)

	GenTexture() uint32
	DeleteTexture(handle uint32)
	BindTexture(target Enum, handle uint32)
	TexParameteri(target, pname Enum, param int32)
	TexImage2D(target Enum, level int32, internalFormat Enum, width, height int32, format, typ Enum, pixels []byte)

	GenRenderbuffer() uint32
	DeleteRenderbuffer(handle uint32)
	BindRenderbuffer(target Enum, handle uint32)
	RenderbufferStorage(target, internalFormat Enum, width, height int32)

	GenFramebuffer() uint32
	DeleteFramebuffer(handle uint32)
	BindFramebuffer(target Enum, handle uint32)
	FramebufferTexture2D(target, attachment, texTarget Enum, texture uint32, level int32)
	FramebufferRenderbuffer(target, attachment, rbTarget Enum, renderbuffer uint32)
	CheckFramebufferStatus(target Enum) Enum
	DrawBuffer(mode Enum)
	ReadBuffer(mode Enum)
	ReadPixels(x, y, width, height int32, format, typ Enum, dst []byte)

	CreateShader(stage Enum) uint32
	DeleteShader(handle uint32)
	ShaderSource(handle uint32, src string)
	CompileShader(handle uint32)
	ShaderCompiled(handle uint32) bool
	ShaderInfoLog(handle uint32) string

	CreateProgram() uint32
	DeleteProgram(handle uint32)
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32
	ProgramUniform1i(program uint32, location int32, v int32)
	ProgramUniform1f(program uint32, location int32, v float32)
	ProgramUniform3f(program uint32, location int32, x, y, z float32)
	ProgramUniform4f(program uint32, location int32, x, y, z, w float32)
	ProgramUniformMatrix4fv(program uint32, location int32, m *[16]float32)

	Enable(capability Enum)
	Disable(capability Enum)
	Hint(target, mode Enum)
	BlendFunc(src, dst Enum)
	DepthFunc(fn Enum)
	PointSize(size float32)
	LineWidth(width float32)
	PolygonMode(face, mode Enum)
	ClearColor(r, g, b, a float32)
	ClearDepth(depth float64)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)
	// GetViewport returns x, y, width and height of the current viewport.
	GetViewport() [4]int32

	DrawArrays(mode Enum, first, count int32)
	DrawElements(mode Enum, count int32, typ Enum, offset int)
	Finish()
}
