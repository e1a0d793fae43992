// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shapes produces procedural geometry into a [geom.Builder].
// Each producer needs the builder to have been begun with the matching
// topology and returns false when it was not.
package shapes

import (
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"github.com/go-gl/mathgl/mgl32"

	"cogentcore.org/glview/geom"
)

// Namer hands out range names.
type Namer interface {
	Next() int32
}

// Axis colors.
var (
	Red   = mgl32.Vec3{1, 0, 0}
	Green = mgl32.Vec3{0, 1, 0}
	Blue  = mgl32.Vec3{0, 0, 1}
)

func fill(c mgl32.Vec3, n int) []mgl32.Vec3 {
	s := make([]mgl32.Vec3, n)
	for i := range s {
		s[i] = c
	}
	return s
}

// Grid adds a size×size grid of lines in the XZ plane centered on the
// origin, with divisions cells per side. Every line gets its own name.
func Grid(b *geom.Builder, names Namer, size float32, divisions int, color mgl32.Vec3) bool {
	if b.Topology() != geom.Lines || divisions < 1 || size <= 0 {
		return false
	}
	half := size / 2
	step := size / float32(divisions)
	colors := fill(color, 2)
	for i := 0; i <= divisions; i++ {
		d := -half + float32(i)*step
		b.AddPolyline(names.Next(), []mgl32.Vec3{{d, 0, -half}, {d, 0, half}}, colors, false)
		b.AddPolyline(names.Next(), []mgl32.Vec3{{-half, 0, d}, {half, 0, d}}, colors, false)
	}
	return true
}

// Axes adds the X, Y and Z axes from the origin with the given length, in
// red, green and blue.
func Axes(b *geom.Builder, names Namer, length float32) bool {
	if b.Topology() != geom.Lines || length <= 0 {
		return false
	}
	for _, ax := range []struct {
		dir, color mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, Red},
		{mgl32.Vec3{0, 1, 0}, Green},
		{mgl32.Vec3{0, 0, 1}, Blue},
	} {
		b.AddPolyline(names.Next(), []mgl32.Vec3{{}, ax.dir.Mul(length)}, fill(ax.color, 2), false)
	}
	return true
}

// PointCloud adds points as one named range.
func PointCloud(b *geom.Builder, names Namer, points []mgl32.Vec3, color mgl32.Vec3) bool {
	if b.Topology() != geom.Points || len(points) == 0 {
		return false
	}
	return b.AddPoints(names.Next(), points, fill(color, len(points)))
}

// Solid tessellates s with marching cubes on a grid of cells along its
// longest side and adds the triangles as one mesh range with flat normals.
func Solid(b *geom.Builder, name int32, s sdf.SDF3, cells int, color mgl32.Vec3) bool {
	if b.Topology() != geom.Triangles || cells < 1 {
		return false
	}
	tris := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
	n := len(tris) * 3
	positions := make([]mgl32.Vec3, 0, n)
	normals := make([]mgl32.Vec3, 0, n)
	indices := make([]uint32, 0, n)
	first := uint32(b.VertexCount())
	for i, tri := range tris {
		nv := tri.Normal()
		normal := mgl32.Vec3{float32(nv.X), float32(nv.Y), float32(nv.Z)}
		for j := 0; j < 3; j++ {
			v := tri[j]
			positions = append(positions, mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)})
			normals = append(normals, normal)
			indices = append(indices, first+uint32(i*3+j))
		}
	}
	return b.AddMesh(name, positions, fill(color, n), normals, indices)
}
