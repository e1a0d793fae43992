// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewport

import (
	"testing"

	"cogentcore.org/glview/camera"
	"cogentcore.org/glview/geom"
	"cogentcore.org/glview/gpu"
	"cogentcore.org/glview/gpu/softgpu"
	"cogentcore.org/glview/render"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViewport(t *testing.T, w, h int) (*softgpu.Device, *Viewport) {
	t.Helper()
	dev := softgpu.New(w, h)
	cam := camera.NewPerspective()
	cam.SetPosition(mgl32.Vec3{0, 0, 3})
	vp, err := New(gpu.NewContext(dev), cam, w, h)
	require.NoError(t, err)
	t.Cleanup(vp.Release)
	return dev, vp
}

// square is a 2×2 green square in the z = 0 plane facing the light.
func square(t *testing.T, vp *Viewport, name int32) *render.Model {
	t.Helper()
	b := geom.NewBuilder()
	b.BeginMeshGeometry()
	pos := []mgl32.Vec3{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}}
	green := mgl32.Vec3{0, 1, 0}
	up := mgl32.Vec3{0, 1, 0}
	require.True(t, b.AddMesh(name, pos, []mgl32.Vec3{green, green, green, green}, []mgl32.Vec3{up, up, up, up}, []uint32{0, 1, 2, 0, 2, 3}))
	g, err := b.BuildGeometry(vp.RenderContext().GPU())
	require.NoError(t, err)
	m := render.NewMeshModel(g)
	t.Cleanup(m.Release)
	return m
}

func TestNew(t *testing.T) {
	dev, vp := newViewport(t, 32, 16)
	w, h := vp.Size()
	assert.Equal(t, 32, w)
	assert.Equal(t, 16, h)
	assert.Equal(t, [4]int32{0, 0, 32, 16}, dev.CurrentViewport())
	assert.Equal(t, float32(2), vp.Camera().AspectRatio())
	assert.Equal(t, vp.Camera().Projection(), vp.RenderContext().ProjectionMatrix())
	assert.Equal(t, vp.Camera().View(), vp.RenderContext().ViewMatrix())
	pw, ph := vp.Picker().Size()
	assert.Equal(t, 32, pw)
	assert.Equal(t, 16, ph)
	assert.True(t, vp.NeedsPaint())
}

func TestPaintAndPick(t *testing.T) {
	dev, vp := newViewport(t, 16, 16)
	models := []*render.Model{square(t, vp, 3)}
	require.NoError(t, vp.Paint(models))
	assert.False(t, vp.NeedsPaint())
	assert.Equal(t, [4]float32{0, 1, 0, 1}, dev.ScreenPixel(8, 8))
	assert.Equal(t, [4]float32{1, 1, 1, 1}, dev.ScreenPixel(0, 0))

	hit, ok, err := vp.PickAt(models, 8, 8)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int32(3), hit.Range.Name)
	_, ok, err = vp.PickAt(models, 0, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	// moving the camera away shrinks the square past the center-left pixel
	vp.Camera().ZoomOut(20)
	assert.True(t, vp.NeedsPaint())
	_, ok, err = vp.PickAt(models, 4, 8)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResize(t *testing.T) {
	dev, vp := newViewport(t, 16, 16)
	require.NoError(t, vp.Paint(nil))
	require.NoError(t, vp.Resize(8, 4))
	assert.True(t, vp.NeedsPaint())
	assert.Equal(t, [4]int32{0, 0, 8, 4}, dev.CurrentViewport())
	assert.Equal(t, float32(2), vp.Camera().AspectRatio())
	w, h := vp.Picker().Size()
	assert.Equal(t, 8, w)
	assert.Equal(t, 4, h)

	// zero height keeps the last aspect ratio
	require.NoError(t, vp.Resize(8, 0))
	assert.Equal(t, float32(2), vp.Camera().AspectRatio())
	assert.Error(t, vp.Resize(-1, 2))
}

func TestOrthographicResizeKeepsBox(t *testing.T) {
	dev := softgpu.New(8, 8)
	cam := camera.NewOrthographic()
	vp, err := New(gpu.NewContext(dev), cam, 8, 8)
	require.NoError(t, err)
	defer vp.Release()
	require.NoError(t, vp.Resize(16, 8))
	assert.Equal(t, float32(1), cam.Width())
}

func TestRelease(t *testing.T) {
	dev := softgpu.New(8, 8)
	cam := camera.NewPerspective()
	vp, err := New(gpu.NewContext(dev), cam, 8, 8)
	require.NoError(t, err)
	assert.Equal(t, 5, dev.Live())
	vp.Release()
	vp.Release()
	assert.Zero(t, dev.Live(), dev.LiveObjects())
	vp.needsPaint = false
	cam.SetPosition(mgl32.Vec3{1, 2, 3})
	assert.False(t, vp.NeedsPaint())
}

func TestNewFailureReleases(t *testing.T) {
	dev := softgpu.New(8, 8)
	dev.FailOn("GenFramebuffer", gpu.OutOfMemory)
	_, err := New(gpu.NewContext(dev), camera.NewPerspective(), 8, 8)
	require.Error(t, err)
	assert.Zero(t, dev.Live(), dev.LiveObjects())
}

func TestNameGenerator(t *testing.T) {
	var g NameGenerator
	assert.Equal(t, int32(1), g.Next())
	assert.Equal(t, int32(2), g.Next())
	assert.Equal(t, int32(3), g.Next())
}
