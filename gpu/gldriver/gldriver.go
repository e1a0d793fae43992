// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gldriver implements [gpu.Device] on top of the go-gl OpenGL 4.6
// core bindings. [Init] must be called once, with a GL context current on
// the calling thread, before any [Device] method is used.
package gldriver

import (
	"fmt"
	"strings"
	"unsafe"

	"cogentcore.org/glview/gpu"
	"github.com/go-gl/gl/v4.6-core/gl"
)

// Init loads the GL entry points for the current context and returns the
// device. It fails if the driver lacks GL 4.5 entry points such as
// glProgramUniform*.
func Init() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gldriver: %w", err)
	}
	gpu.Logger().Debug("gldriver: initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return &Device{}, nil
}

// Device forwards each call to the driver.
type Device struct{}

// Version returns the GL version string of the current context.
func (Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (Device) GetError() gpu.Enum { return gpu.Enum(gl.GetError()) }

func (Device) GenBuffer() uint32 {
	var h uint32
	gl.GenBuffers(1, &h)
	return h
}

func (Device) DeleteBuffer(h uint32)                { gl.DeleteBuffers(1, &h) }
func (Device) BindBuffer(target gpu.Enum, h uint32) { gl.BindBuffer(uint32(target), h) }
func (Device) BufferData(target gpu.Enum, data []byte, usage gpu.Enum) {
	gl.BufferData(uint32(target), len(data), ptr(data), uint32(usage))
}

func (Device) GenVertexArray() uint32 {
	var h uint32
	gl.GenVertexArrays(1, &h)
	return h
}

func (Device) DeleteVertexArray(h uint32) { gl.DeleteVertexArrays(1, &h) }
func (Device) BindVertexArray(h uint32)   { gl.BindVertexArray(h) }

func (Device) VertexAttribPointer(loc uint32, size int32, typ gpu.Enum, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(loc, size, uint32(typ), normalized, stride, uintptr(offset))
}

func (Device) VertexAttribIPointer(loc uint32, size int32, typ gpu.Enum, stride int32, offset int) {
	gl.VertexAttribIPointerWithOffset(loc, size, uint32(typ), stride, uintptr(offset))
}

func (Device) EnableVertexAttribArray(loc uint32)  { gl.EnableVertexAttribArray(loc) }
func (Device) DisableVertexAttribArray(loc uint32) { gl.DisableVertexAttribArray(loc) }

func (Device) GenTexture() uint32 {
	var h uint32
	gl.GenTextures(1, &h)
	return h
}

func (Device) DeleteTexture(h uint32)                { gl.DeleteTextures(1, &h) }
func (Device) BindTexture(target gpu.Enum, h uint32) { gl.BindTexture(uint32(target), h) }
func (Device) TexParameteri(target, pname gpu.Enum, param int32) {
	gl.TexParameteri(uint32(target), uint32(pname), param)
}

func (Device) TexImage2D(target gpu.Enum, level int32, internalFormat gpu.Enum, width, height int32, format, typ gpu.Enum, pixels []byte) {
	gl.TexImage2D(uint32(target), level, int32(internalFormat), width, height, 0, uint32(format), uint32(typ), ptr(pixels))
}

func (Device) GenRenderbuffer() uint32 {
	var h uint32
	gl.GenRenderbuffers(1, &h)
	return h
}

func (Device) DeleteRenderbuffer(h uint32)                { gl.DeleteRenderbuffers(1, &h) }
func (Device) BindRenderbuffer(target gpu.Enum, h uint32) { gl.BindRenderbuffer(uint32(target), h) }
func (Device) RenderbufferStorage(target, internalFormat gpu.Enum, width, height int32) {
	gl.RenderbufferStorage(uint32(target), uint32(internalFormat), width, height)
}

func (Device) GenFramebuffer() uint32 {
	var h uint32
	gl.GenFramebuffers(1, &h)
	return h
}

func (Device) DeleteFramebuffer(h uint32)                { gl.DeleteFramebuffers(1, &h) }
func (Device) BindFramebuffer(target gpu.Enum, h uint32) { gl.BindFramebuffer(uint32(target), h) }

func (Device) FramebufferTexture2D(target, attachment, texTarget gpu.Enum, tex uint32, level int32) {
	gl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), tex, level)
}

func (Device) FramebufferRenderbuffer(target, attachment, rbTarget gpu.Enum, rb uint32) {
	gl.FramebufferRenderbuffer(uint32(target), uint32(attachment), uint32(rbTarget), rb)
}

func (Device) CheckFramebufferStatus(target gpu.Enum) gpu.Enum {
	return gpu.Enum(gl.CheckFramebufferStatus(uint32(target)))
}

func (Device) DrawBuffer(mode gpu.Enum) { gl.DrawBuffer(uint32(mode)) }
func (Device) ReadBuffer(mode gpu.Enum) { gl.ReadBuffer(uint32(mode)) }

func (Device) ReadPixels(x, y, width, height int32, format, typ gpu.Enum, dst []byte) {
	gl.ReadPixels(x, y, width, height, uint32(format), uint32(typ), ptr(dst))
}

func (Device) CreateShader(stage gpu.Enum) uint32 { return gl.CreateShader(uint32(stage)) }
func (Device) DeleteShader(h uint32)              { gl.DeleteShader(h) }

func (Device) ShaderSource(h uint32, src string) {
	csrc, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(h, 1, csrc, nil)
}

func (Device) CompileShader(h uint32) { gl.CompileShader(h) }

func (Device) ShaderCompiled(h uint32) bool {
	var status int32
	gl.GetShaderiv(h, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (Device) ShaderInfoLog(h uint32) string {
	var n int32
	gl.GetShaderiv(h, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetShaderInfoLog(h, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Device) CreateProgram() uint32        { return gl.CreateProgram() }
func (Device) DeleteProgram(h uint32)       { gl.DeleteProgram(h) }
func (Device) AttachShader(prog, sh uint32) { gl.AttachShader(prog, sh) }
func (Device) DetachShader(prog, sh uint32) { gl.DetachShader(prog, sh) }
func (Device) LinkProgram(prog uint32)      { gl.LinkProgram(prog) }
func (Device) UseProgram(prog uint32)       { gl.UseProgram(prog) }

func (Device) ProgramLinked(prog uint32) bool {
	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (Device) ProgramInfoLog(prog uint32) string {
	var n int32
	gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetProgramInfoLog(prog, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Device) GetUniformLocation(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

func (Device) ProgramUniform1i(prog uint32, loc int32, v int32) { gl.ProgramUniform1i(prog, loc, v) }
func (Device) ProgramUniform1f(prog uint32, loc int32, v float32) {
	gl.ProgramUniform1f(prog, loc, v)
}

func (Device) ProgramUniform3f(prog uint32, loc int32, x, y, z float32) {
	gl.ProgramUniform3f(prog, loc, x, y, z)
}

func (Device) ProgramUniform4f(prog uint32, loc int32, x, y, z, w float32) {
	gl.ProgramUniform4f(prog, loc, x, y, z, w)
}

func (Device) ProgramUniformMatrix4fv(prog uint32, loc int32, m *[16]float32) {
	gl.ProgramUniformMatrix4fv(prog, loc, 1, false, &m[0])
}

func (Device) Enable(capability gpu.Enum)  { gl.Enable(uint32(capability)) }
func (Device) Disable(capability gpu.Enum) { gl.Disable(uint32(capability)) }
func (Device) Hint(target, mode gpu.Enum)  { gl.Hint(uint32(target), uint32(mode)) }
func (Device) BlendFunc(src, dst gpu.Enum) { gl.BlendFunc(uint32(src), uint32(dst)) }
func (Device) DepthFunc(fn gpu.Enum)       { gl.DepthFunc(uint32(fn)) }
func (Device) PointSize(size float32)      { gl.PointSize(size) }
func (Device) LineWidth(width float32)     { gl.LineWidth(width) }
func (Device) PolygonMode(face, mode gpu.Enum) {
	gl.PolygonMode(uint32(face), uint32(mode))
}
func (Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (Device) ClearDepth(depth float64)      { gl.ClearDepth(depth) }
func (Device) Clear(mask uint32)             { gl.Clear(mask) }
func (Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (Device) GetViewport() [4]int32 {
	var v [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &v[0])
	return v
}

func (Device) DrawArrays(mode gpu.Enum, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}

func (Device) DrawElements(mode gpu.Enum, count int32, typ gpu.Enum, offset int) {
	gl.DrawElementsWithOffset(uint32(mode), count, uint32(typ), uintptr(offset))
}

func (Device) Finish() { gl.Finish() }

// ptr returns a pointer to the first byte of b, or nil for an empty slice,
// which GL treats as "no client data".
func ptr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return gl.Ptr(b)
}
