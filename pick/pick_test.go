// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pick

import (
	"image"
	"testing"

	"cogentcore.org/glview/geom"
	"cogentcore.org/glview/gpu"
	"cogentcore.org/glview/gpu/softgpu"
	"cogentcore.org/glview/render"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const size = 16

func newPicker(t *testing.T) (*softgpu.Device, *render.Context, *Picker) {
	t.Helper()
	dev := softgpu.New(size, size)
	rc, err := render.NewContext(gpu.NewContext(dev))
	require.NoError(t, err)
	t.Cleanup(rc.Release)
	require.NoError(t, rc.SetViewport(image.Rect(0, 0, size, size)))
	p, err := New(rc, size, size)
	require.NoError(t, err)
	t.Cleanup(p.Release)
	return dev, rc, p
}

func colors(n int) []mgl32.Vec3 {
	c := make([]mgl32.Vec3, n)
	for i := range c {
		c[i] = mgl32.Vec3{1, 1, 1}
	}
	return c
}

// triangle is a mesh model covering the lower left half of the viewport.
func triangle(t *testing.T, rc *render.Context, name int32, z float32) *render.Model {
	t.Helper()
	b := geom.NewBuilder()
	b.BeginMeshGeometry()
	pos := []mgl32.Vec3{{-1, -1, z}, {1, -1, z}, {-1, 1, z}}
	require.True(t, b.AddMesh(name, pos, colors(3), nil, []uint32{0, 1, 2}))
	g, err := b.BuildGeometry(rc.GPU())
	require.NoError(t, err)
	m := render.NewMeshModel(g)
	t.Cleanup(m.Release)
	return m
}

func TestPickInsideAndOutside(t *testing.T) {
	_, rc, p := newPicker(t)
	m := triangle(t, rc, 7, 0)
	models := []*render.Model{m}

	hit, ok, err := p.TryPickRange(models, 1, size-2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int32(7), hit.Range.Name)
	assert.Same(t, m, hit.Model)
	assert.Same(t, m.Geometry, hit.Geometry)
	assert.Equal(t, 1, hit.X)
	assert.Equal(t, size-2, hit.Y)

	// top right is background
	_, ok, err = p.TryPickRange(models, size-2, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPickNameZero(t *testing.T) {
	_, rc, p := newPicker(t)
	models := []*render.Model{triangle(t, rc, 0, 0)}
	hit, ok, err := p.TryPickRange(models, 2, size-3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int32(0), hit.Range.Name)
}

func TestPickOutOfBounds(t *testing.T) {
	dev, rc, p := newPicker(t)
	models := []*render.Model{triangle(t, rc, 7, 0)}
	for _, xy := range [][2]int{{-1, 0}, {0, -1}, {size, 0}, {0, size}} {
		_, ok, err := p.TryPickRange(models, xy[0], xy[1])
		require.NoError(t, err)
		assert.False(t, ok, "%v", xy)
	}
	assert.Zero(t, dev.Calls("DrawElements"))
}

func TestPickNearestWins(t *testing.T) {
	_, rc, p := newPicker(t)
	far := triangle(t, rc, 1, 0.5)
	near := triangle(t, rc, 2, -0.5)
	for _, models := range [][]*render.Model{{far, near}, {near, far}} {
		hit, ok, err := p.TryPickRange(models, 1, size-2)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int32(2), hit.Range.Name)
		assert.Same(t, near, hit.Model)
	}
}

func TestPickFirstMatchWins(t *testing.T) {
	_, rc, p := newPicker(t)
	a := triangle(t, rc, 3, 0)
	b := triangle(t, rc, 3, 0.5)
	hit, ok, err := p.TryPickRange([]*render.Model{b, a}, 1, size-2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, b, hit.Model)
}

func TestPickPoints(t *testing.T) {
	_, rc, p := newPicker(t)
	b := geom.NewBuilder()
	b.BeginPointGeometry()
	require.True(t, b.AddPoints(4, []mgl32.Vec3{{-0.5, 0.5, 0}}, colors(1)))
	require.True(t, b.AddPoints(5, []mgl32.Vec3{{0.5, -0.5, 0}}, colors(1)))
	g, err := b.BuildGeometry(rc.GPU())
	require.NoError(t, err)
	m := render.NewPointModel(g)
	defer m.Release()
	m.PointSize = 3

	// (0.5, -0.5) is device pixel (12, 4), input row 11
	hit, ok, err := p.TryPickRange([]*render.Model{m}, 12, 11)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int32(5), hit.Range.Name)
	assert.Equal(t, int32(1), hit.Range.VertexStart)
}

func TestPickRestoresState(t *testing.T) {
	dev, rc, p := newPicker(t)
	require.NoError(t, rc.SetViewport(image.Rect(0, 0, 8, 8)))
	_, _, err := p.TryPickRange([]*render.Model{triangle(t, rc, 7, 0)}, 1, 1)
	require.NoError(t, err)

	assert.Same(t, rc.RenderingProgram(), rc.Program())
	assert.Equal(t, rc.RenderingProgram().Handle(), dev.CurrentProgram())
	assert.True(t, dev.Enabled(gpu.Blend))
	assert.True(t, dev.Enabled(gpu.DepthTest))
	assert.Equal(t, [4]float32{1, 1, 1, 1}, dev.CurrentClearColor())
	assert.Equal(t, [4]int32{0, 0, 8, 8}, dev.CurrentViewport())
	assert.Zero(t, dev.Binding(gpu.DrawFramebuffer))
	assert.Zero(t, dev.Binding(gpu.ReadFramebuffer))
	draw, read := dev.FramebufferBuffers(p.targets.fb.Handle())
	assert.Equal(t, gpu.None, draw)
	assert.Equal(t, gpu.None, read)
	assert.False(t, rc.Lighting())
}

func TestPickKeepsHostViewport(t *testing.T) {
	// the viewport is left as the device created it
	dev := softgpu.New(size, size)
	rc, err := render.NewContext(gpu.NewContext(dev))
	require.NoError(t, err)
	t.Cleanup(rc.Release)
	p, err := New(rc, 2*size, 2*size)
	require.NoError(t, err)
	t.Cleanup(p.Release)

	b := geom.NewBuilder()
	b.BeginMeshGeometry()
	pos := []mgl32.Vec3{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}}
	require.True(t, b.AddMesh(3, pos, colors(4), nil, []uint32{0, 1, 2, 0, 2, 3}))
	g, err := b.BuildGeometry(rc.GPU())
	require.NoError(t, err)
	m := render.NewMeshModel(g)
	t.Cleanup(m.Release)
	models := []*render.Model{m}

	frame := func() [4]float32 {
		require.NoError(t, rc.ClearBuffers(true, true, false))
		require.NoError(t, rc.Render(models...))
		return dev.ScreenPixel(size/2, size/2)
	}
	drawn := frame()
	require.NotEqual(t, [4]float32{1, 1, 1, 1}, drawn)

	hit, ok, err := p.TryPickRange(models, size, size)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int32(3), hit.Range.Name)
	assert.Equal(t, [4]int32{0, 0, size, size}, dev.CurrentViewport())
	assert.Equal(t, image.Rect(0, 0, size, size), rc.Viewport())
	assert.Equal(t, drawn, frame())
}

func TestResize(t *testing.T) {
	dev, rc, p := newPicker(t)
	assert.Equal(t, 5, dev.Live())
	gens := dev.Calls("GenFramebuffer")
	require.NoError(t, p.Resize(size, size))
	assert.Equal(t, gens, dev.Calls("GenFramebuffer"))

	old := p.targets.fb.Handle()
	require.NoError(t, p.Resize(32, 24))
	w, h := p.Size()
	assert.Equal(t, 32, w)
	assert.Equal(t, 24, h)
	assert.Equal(t, 5, dev.Live())
	assert.NotEqual(t, old, p.targets.fb.Handle())
	assert.Equal(t, 32, p.targets.color.Width())
	assert.Equal(t, 24, p.targets.depth.Height())

	models := []*render.Model{triangle(t, rc, 7, 0)}
	hit, ok, err := p.TryPickRange(models, 1, 22)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int32(7), hit.Range.Name)
	_, ok, err = p.TryPickRange(models, 30, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResizeFailureKeepsOld(t *testing.T) {
	dev, _, p := newPicker(t)
	old := p.targets
	live := dev.Live()
	dev.FailOn("GenRenderbuffer", gpu.OutOfMemory)
	err := p.Resize(8, 8)
	var de *gpu.DeviceError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, gpu.OutOfMemory, de.Code)
	assert.Same(t, old, p.targets)
	w, h := p.Size()
	assert.Equal(t, size, w)
	assert.Equal(t, size, h)
	assert.Equal(t, live, dev.Live())
}

func TestZeroSize(t *testing.T) {
	dev, rc, p := newPicker(t)
	require.NoError(t, p.Resize(0, 0))
	assert.Nil(t, p.targets)
	assert.Equal(t, 2, dev.Live())
	_, ok, err := p.TryPickRange([]*render.Model{triangle(t, rc, 7, 0)}, 0, 0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Error(t, p.Resize(-1, 4))
}

func TestConstructionFailureReleases(t *testing.T) {
	dev := softgpu.New(size, size)
	rc, err := render.NewContext(gpu.NewContext(dev))
	require.NoError(t, err)
	defer rc.Release()
	dev.FailOn("CheckFramebufferStatus", gpu.OutOfMemory)
	_, err = New(rc, size, size)
	require.Error(t, err)
	assert.Equal(t, 1, dev.Live(), dev.LiveObjects())

	_, err = New(rc, -1, 2)
	assert.Error(t, err)
}

func TestRelease(t *testing.T) {
	dev, rc, p := newPicker(t)
	p.Release()
	p.Release()
	assert.Equal(t, 1, dev.Live())
	_, _, err := p.TryPickRange([]*render.Model{triangle(t, rc, 7, 0)}, 1, 1)
	assert.ErrorIs(t, err, gpu.ErrDisposed)
	assert.ErrorIs(t, p.Resize(4, 4), gpu.ErrDisposed)
}
