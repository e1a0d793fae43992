// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shapes

import (
	"testing"

	"github.com/deadsy/sdfx/sdf"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/glview/geom"
	"cogentcore.org/glview/gpu"
	"cogentcore.org/glview/gpu/softgpu"
)

type counter int32

func (c *counter) Next() int32 {
	*c++
	return int32(*c)
}

func build(t *testing.T, b *geom.Builder) *geom.Geometry {
	t.Helper()
	g, err := b.BuildGeometry(gpu.NewContext(softgpu.New(4, 4)))
	require.NoError(t, err)
	t.Cleanup(g.Release)
	return g
}

func TestGrid(t *testing.T) {
	b := geom.NewBuilder()
	var names counter
	assert.False(t, Grid(b, &names, 2, 4, Red))
	b.BeginLineGeometry()
	assert.False(t, Grid(b, &names, 2, 0, Red))
	require.True(t, Grid(b, &names, 2, 4, Red))
	g := build(t, b)
	rs := g.Ranges()
	require.Len(t, rs, 10)
	assert.Equal(t, int32(1), rs[0].Name)
	assert.Equal(t, int32(10), rs[9].Name)
	assert.Equal(t, 20, g.VertexCount())
	assert.Equal(t, 20, g.IndexCount())
}

func TestAxes(t *testing.T) {
	b := geom.NewBuilder()
	b.BeginLineGeometry()
	names := counter(10)
	require.True(t, Axes(b, &names, 3))
	g := build(t, b)
	rs := g.Ranges()
	require.Len(t, rs, 3)
	assert.Equal(t, []int32{11, 12, 13}, []int32{rs[0].Name, rs[1].Name, rs[2].Name})
	assert.Equal(t, int32(4), rs[2].VertexStart)
}

func TestPointCloud(t *testing.T) {
	b := geom.NewBuilder()
	var names counter
	b.BeginPointGeometry()
	assert.False(t, PointCloud(b, &names, nil, Blue))
	require.True(t, PointCloud(b, &names, []mgl32.Vec3{{0, 0, 0}, {1, 1, 1}}, Blue))
	g := build(t, b)
	assert.Equal(t, []geom.Range{{Name: 1, VertexCount: 2, IndexCount: 2}}, g.Ranges())
}

func TestSolid(t *testing.T) {
	sphere, err := sdf.Sphere3D(1)
	require.NoError(t, err)

	b := geom.NewBuilder()
	b.BeginLineGeometry()
	assert.False(t, Solid(b, 1, sphere, 8, Green))

	b.BeginMeshGeometry()
	require.True(t, Solid(b, 1, sphere, 8, Green))
	require.True(t, Solid(b, 2, sphere, 8, Green))
	g := build(t, b)
	assert.True(t, g.HasNormals())
	rs := g.Ranges()
	require.Len(t, rs, 2)
	assert.Positive(t, rs[0].VertexCount)
	assert.Zero(t, rs[0].VertexCount%3)
	assert.Equal(t, rs[0].VertexCount, rs[1].VertexStart)
	assert.Equal(t, rs[0].VertexCount, rs[0].IndexCount)
	assert.Equal(t, g.VertexCount(), g.IndexCount())
}
