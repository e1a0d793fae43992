// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl32"

	"cogentcore.org/glview/config"
	"cogentcore.org/glview/geom"
	"cogentcore.org/glview/gpu"
	"cogentcore.org/glview/render"
	"cogentcore.org/glview/shapes"
	"cogentcore.org/glview/viewport"
)

// scene is the demo content: a floor grid with axes, a helix of points
// and a hollowed box.
type scene struct {
	lines  *render.Model
	points *render.Model
	solid  *render.Model
	models []*render.Model
}

var errShape = errors.New("glview: shape rejected by builder")

func buildScene(gc *gpu.Context) (sc *scene, err error) {
	names := &viewport.NameGenerator{}
	b := geom.NewBuilder()
	sc = &scene{}
	defer func() {
		if err != nil {
			sc.release()
			sc = nil
		}
	}()

	b.BeginLineGeometry()
	if !shapes.Grid(b, names, 10, 10, mgl32.Vec3{0.6, 0.6, 0.6}) || !shapes.Axes(b, names, 2) {
		return sc, errShape
	}
	g, err := b.BuildGeometry(gc)
	if err != nil {
		return sc, err
	}
	sc.lines = render.NewLineModel(g)

	b.BeginPointGeometry()
	if !shapes.PointCloud(b, names, helix(200, 1.5, 3, 4), mgl32.Vec3{0.8, 0.2, 0.6}) {
		return sc, errShape
	}
	if g, err = b.BuildGeometry(gc); err != nil {
		return sc, err
	}
	sc.points = render.NewPointModel(g)
	sc.points.SetTransform(mgl32.Translate3D(-3, 0, -3))

	solid, err := hollowBox()
	if err != nil {
		return sc, err
	}
	b.BeginMeshGeometry()
	if !shapes.Solid(b, names.Next(), solid, 48, mgl32.Vec3{0.3, 0.5, 0.9}) {
		return sc, errShape
	}
	if g, err = b.BuildGeometry(gc); err != nil {
		return sc, err
	}
	sc.solid = render.NewMeshModel(g)
	sc.solid.SetTransform(mgl32.Translate3D(0, 1, 0))

	sc.models = []*render.Model{sc.solid, sc.points, sc.lines}
	return sc, nil
}

// helix returns n points on a helix of the given radius and height with
// the given number of turns, rising from the origin.
func helix(n int, radius, height, turns float32) []mgl32.Vec3 {
	pts := make([]mgl32.Vec3, n)
	for i := range pts {
		t := float32(i) / float32(n-1)
		a := 2 * math32.Pi * turns * t
		pts[i] = mgl32.Vec3{radius * math32.Cos(a), height * t, radius * math32.Sin(a)}
	}
	return pts
}

// hollowBox is a rounded 2×2×2 box with a sphere cut out of it.
func hollowBox() (sdf.SDF3, error) {
	box, err := sdf.Box3D(v3.Vec{X: 2, Y: 2, Z: 2}, 0.1)
	if err != nil {
		return nil, err
	}
	ball, err := sdf.Sphere3D(1.25)
	if err != nil {
		return nil, err
	}
	return sdf.Difference3D(box, ball), nil
}

// style applies the configured sizes and polygon mode to the models.
func (sc *scene) style(r config.Render) {
	sc.points.PointSize = 4 * r.PointSize
	sc.lines.LineWidth = r.LineWidth
	sc.solid.PolygonMode = render.Fill
	if r.Wireframe {
		sc.solid.PolygonMode = render.Line
	}
}

func (sc *scene) label(m *render.Model) string {
	switch m {
	case sc.lines:
		return "line"
	case sc.points:
		return "points"
	case sc.solid:
		return "solid"
	}
	return m.Kind.String()
}

func (sc *scene) release() {
	for _, m := range []*render.Model{sc.lines, sc.points, sc.solid} {
		if m != nil {
			m.Release()
		}
	}
}
