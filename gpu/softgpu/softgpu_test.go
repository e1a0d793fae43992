// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softgpu_test

import (
	"encoding/binary"
	"image"
	"testing"

	"cogentcore.org/glview/gpu"
	"cogentcore.org/glview/gpu/softgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vs = `#version 450 core
layout (location = 0) uniform mat4 uModelMatrix;
layout (location = 1) uniform mat4 uViewMatrix;
layout (location = 2) uniform mat4 uProjectionMatrix;
layout (location = 3) uniform mat4 uNormalMatrix;
void main() {}
`

const fs = `#version 450 core
layout (location = 4) uniform int  uLightMode;
layout (location = 5) uniform vec3 uLightDirection;
void main() {}
`

type scene struct {
	dev  *softgpu.Device
	ctx  *gpu.Context
	prog *gpu.Program
}

func newScene(t *testing.T, w, h int) *scene {
	t.Helper()
	dev := softgpu.New(w, h)
	ctx := gpu.NewContext(dev)
	require.NoError(t, ctx.SetViewport(image.Rect(0, 0, w, h)))
	prog, err := gpu.NewProgram(ctx, vs, fs)
	require.NoError(t, err)
	for loc := int32(0); loc < 4; loc++ {
		require.NoError(t, prog.SetMat4(loc, mgl32.Ident4()))
	}
	t.Cleanup(prog.Release)
	return &scene{dev: dev, ctx: ctx, prog: prog}
}

// vertices uploads positions with one color, normal and name for all of
// them and returns the vertex array.
func (s *scene) vertices(t *testing.T, pos []mgl32.Vec3, color, normal mgl32.Vec3, name int32) *gpu.VertexArray {
	t.Helper()
	va, err := gpu.NewVertexArray(s.ctx)
	require.NoError(t, err)
	t.Cleanup(va.Release)
	colors := make([]mgl32.Vec3, len(pos))
	normals := make([]mgl32.Vec3, len(pos))
	names := make([][2]int32, len(pos))
	for i := range pos {
		colors[i], normals[i], names[i] = color, normal, [2]int32{name, 1}
	}
	link := func(data []byte, a gpu.Attrib) {
		b, err := gpu.NewBuffer(s.ctx, gpu.ArrayBuffer, data, gpu.StaticDraw)
		require.NoError(t, err)
		t.Cleanup(b.Release)
		require.NoError(t, va.Link(b, a))
	}
	link(gpu.Bytes(pos), gpu.PositionAttrib)
	link(gpu.Bytes(colors), gpu.ColorAttrib)
	link(gpu.Bytes(normals), gpu.NormalAttrib)
	link(gpu.Bytes(names), gpu.NameAttrib)
	return va
}

func (s *scene) draw(t *testing.T, va *gpu.VertexArray, mode gpu.Enum, n int) {
	t.Helper()
	require.NoError(t, s.prog.With(func() error {
		return va.Draw(mode, 0, n)
	}))
}

// lowerLeft covers the lower left half of clip space, counter-clockwise.
func lowerLeft(z float32) []mgl32.Vec3 {
	return []mgl32.Vec3{{-1, -1, z}, {1, -1, z}, {-1, 1, z}}
}

var (
	red   = mgl32.Vec3{1, 0, 0}
	green = mgl32.Vec3{0, 1, 0}
	up    = mgl32.Vec3{0, 0, 1}
)

func TestDrawTriangle(t *testing.T) {
	s := newScene(t, 8, 8)
	require.NoError(t, s.ctx.ClearColor(0, 0, 0, 1))
	require.NoError(t, s.ctx.Clear(gpu.ColorBufferBit|gpu.DepthBufferBit))
	s.draw(t, s.vertices(t, lowerLeft(0), red, up, 1), gpu.Triangles, 3)

	assert.Equal(t, [4]float32{1, 0, 0, 1}, s.dev.ScreenPixel(1, 1))
	assert.Equal(t, [4]float32{0, 0, 0, 1}, s.dev.ScreenPixel(7, 7))

	px := make([]byte, 4)
	require.Equal(t, gpu.NoError, s.dev.GetError())
	s.dev.ReadPixels(1, 1, 1, 1, gpu.RGBA, gpu.UnsignedByte, px)
	assert.Equal(t, []byte{255, 0, 0, 255}, px)
}

func TestDepthTest(t *testing.T) {
	s := newScene(t, 8, 8)
	require.NoError(t, s.ctx.SetEnabled(gpu.DepthTest, true))
	require.NoError(t, s.ctx.Clear(gpu.ColorBufferBit|gpu.DepthBufferBit))
	far := s.vertices(t, lowerLeft(0.5), green, up, 1)
	near := s.vertices(t, lowerLeft(-0.5), red, up, 2)

	s.draw(t, far, gpu.Triangles, 3)
	s.draw(t, near, gpu.Triangles, 3)
	s.draw(t, far, gpu.Triangles, 3)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, s.dev.ScreenPixel(1, 1))
}

func TestCullFace(t *testing.T) {
	s := newScene(t, 8, 8)
	require.NoError(t, s.ctx.SetEnabled(gpu.CullFace, true))
	cw := []mgl32.Vec3{{-1, -1, 0}, {-1, 1, 0}, {1, -1, 0}}
	s.draw(t, s.vertices(t, cw, red, up, 1), gpu.Triangles, 3)
	assert.Equal(t, [4]float32{}, s.dev.ScreenPixel(1, 1))

	require.NoError(t, s.ctx.SetEnabled(gpu.CullFace, false))
	s.draw(t, s.vertices(t, cw, red, up, 1), gpu.Triangles, 3)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, s.dev.ScreenPixel(1, 1))
}

func TestLighting(t *testing.T) {
	s := newScene(t, 8, 8)
	va := s.vertices(t, lowerLeft(0), red, up, 1)

	require.NoError(t, s.prog.SetInt(4, 1))
	require.NoError(t, s.prog.SetVec3(5, mgl32.Vec3{0, 0, -1}))
	s.draw(t, va, gpu.Triangles, 3)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, s.dev.ScreenPixel(1, 1))

	require.NoError(t, s.prog.SetVec3(5, mgl32.Vec3{0, 0, 1}))
	s.draw(t, va, gpu.Triangles, 3)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, s.dev.ScreenPixel(1, 1))
}

func TestPointSize(t *testing.T) {
	s := newScene(t, 8, 8)
	require.NoError(t, s.ctx.PointSize(3))
	s.draw(t, s.vertices(t, []mgl32.Vec3{{0, 0, 0}}, red, up, 1), gpu.Points, 1)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, s.dev.ScreenPixel(3, 3))
	assert.Equal(t, [4]float32{1, 0, 0, 1}, s.dev.ScreenPixel(5, 5))
	assert.Equal(t, [4]float32{}, s.dev.ScreenPixel(6, 4))
}

func TestBehindEyeDropped(t *testing.T) {
	s := newScene(t, 8, 8)
	require.NoError(t, s.prog.SetMat4(2, mgl32.Perspective(mgl32.DegToRad(90), 1, 0.1, 10)))
	s.draw(t, s.vertices(t, lowerLeft(1), red, up, 1), gpu.Triangles, 3)
	assert.Equal(t, [4]float32{}, s.dev.ScreenPixel(1, 1))
}

func TestIntegerTarget(t *testing.T) {
	s := newScene(t, 8, 8)
	tx, err := gpu.NewTexture2D(s.ctx, 8, 8, gpu.RG32IFormat, nil)
	require.NoError(t, err)
	defer tx.Release()
	rb, err := gpu.NewRenderbuffer(s.ctx, gpu.Depth24Stencil8, 8, 8)
	require.NoError(t, err)
	defer rb.Release()
	fb, err := gpu.NewFramebuffer(s.ctx)
	require.NoError(t, err)
	defer fb.Release()
	require.NoError(t, fb.AttachTexture(gpu.ColorAttachment0, tx))
	require.NoError(t, fb.AttachRenderbuffer(gpu.DepthStencilAttachment, rb))
	require.NoError(t, fb.SetDrawBuffer(gpu.ColorAttachment0))
	require.NoError(t, fb.SetReadBuffer(gpu.ColorAttachment0))
	va := s.vertices(t, lowerLeft(0), red, up, 7)

	require.NoError(t, fb.With(func() error {
		if err := s.ctx.ClearColor(0, 0, 0, 0); err != nil {
			return err
		}
		if err := s.ctx.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit); err != nil {
			return err
		}
		return s.prog.With(func() error { return va.Draw(gpu.Triangles, 0, 3) })
	}))

	px := make([]byte, 8)
	require.NoError(t, fb.ReadPixels(1, 1, 1, 1, gpu.RG32IFormat, px))
	assert.Equal(t, int32(7), int32(binary.LittleEndian.Uint32(px)))
	assert.Equal(t, int32(1), int32(binary.LittleEndian.Uint32(px[4:])))
	require.NoError(t, fb.ReadPixels(7, 7, 1, 1, gpu.RG32IFormat, px))
	assert.Equal(t, make([]byte, 8), px)
	assert.Equal(t, [4]float32{}, s.dev.ScreenPixel(1, 1), "default framebuffer untouched")
}

func TestIncompleteFramebuffer(t *testing.T) {
	s := newScene(t, 8, 8)
	fb, err := gpu.NewFramebuffer(s.ctx)
	require.NoError(t, err)
	defer fb.Release()
	err = fb.With(func() error { return s.ctx.Clear(gpu.ColorBufferBit) })
	var de *gpu.DeviceError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, gpu.InvalidFramebufferOperation, de.Code)
}

func TestFaultsAndAccounting(t *testing.T) {
	dev := softgpu.New(4, 4)
	dev.FailOn("GenTexture", gpu.OutOfMemory)
	assert.Zero(t, dev.GenTexture())
	assert.Equal(t, gpu.OutOfMemory, dev.GetError())
	assert.Equal(t, gpu.NoError, dev.GetError())

	h := dev.GenTexture()
	assert.NotZero(t, h)
	assert.Equal(t, 2, dev.Calls("GenTexture"))
	assert.Equal(t, []string{"texture 1"}, dev.LiveObjects())

	dev.BindTexture(gpu.Texture2D, 99)
	dev.BindTexture(gpu.Texture2D, 98)
	assert.Equal(t, gpu.InvalidOperation, dev.GetError())
	assert.Equal(t, gpu.NoError, dev.GetError(), "pending codes are not queued twice")

	dev.DeleteTexture(h)
	assert.Zero(t, dev.Live())
}

func TestDefaultState(t *testing.T) {
	dev := softgpu.New(10, 20)
	assert.Equal(t, [4]int32{0, 0, 10, 20}, dev.CurrentViewport())
	assert.Equal(t, gpu.Less, dev.CurrentDepthFunc())
	assert.Equal(t, gpu.Fill, dev.CurrentPolygonMode())
	assert.Equal(t, float32(1), dev.CurrentLineWidth())
	dev.Hint(gpu.LineSmoothHint, gpu.Nicest)
	assert.Equal(t, gpu.Nicest, dev.HintMode(gpu.LineSmoothHint))
	dev.BlendFunc(gpu.SrcAlpha, gpu.OneMinusSrcAlpha)
	src, dst := dev.CurrentBlendFunc()
	assert.Equal(t, gpu.SrcAlpha, src)
	assert.Equal(t, gpu.OneMinusSrcAlpha, dst)
	dev.ClearColor(1, 1, 1, 1)
	assert.Equal(t, [4]float32{1, 1, 1, 1}, dev.CurrentClearColor())
}

func TestCoreProfileRejectsPointSmoothing(t *testing.T) {
	dev := softgpu.New(4, 4)
	dev.Hint(gpu.PointSmoothHint, gpu.Nicest)
	assert.Equal(t, gpu.InvalidEnum, dev.GetError())
	assert.Zero(t, dev.HintMode(gpu.PointSmoothHint))
	dev.Enable(gpu.PointSmooth)
	assert.Equal(t, gpu.InvalidEnum, dev.GetError())
	assert.False(t, dev.Enabled(gpu.PointSmooth))

	dev.SetCompatibilityProfile(true)
	dev.Hint(gpu.PointSmoothHint, gpu.Nicest)
	dev.Enable(gpu.PointSmooth)
	assert.Equal(t, gpu.NoError, dev.GetError())
	assert.Equal(t, gpu.Nicest, dev.HintMode(gpu.PointSmoothHint))
	assert.True(t, dev.Enabled(gpu.PointSmooth))

	dev.Hint(gpu.DepthTest, gpu.Nicest)
	assert.Equal(t, gpu.InvalidEnum, dev.GetError())
}
