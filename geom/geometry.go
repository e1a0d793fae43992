// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom assembles vertex and index streams into GPU geometries made
// of named ranges, which are the unit of picking.
package geom

import (
	"fmt"

	"cogentcore.org/glview/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Range is one named part of a geometry. Name 0 is a valid name.
type Range struct {
	Name        int32
	VertexStart int32
	VertexCount int32
	IndexStart  int32
	IndexCount  int32
}

// Topology is the primitive type of a geometry.
type Topology int32

const (
	NoTopology Topology = iota
	Points
	Lines
	Triangles
)

func (t Topology) String() string {
	switch t {
	case NoTopology:
		return "None"
	case Points:
		return "Points"
	case Lines:
		return "Lines"
	case Triangles:
		return "Triangles"
	}
	return fmt.Sprintf("Topology(%d)", int32(t))
}

// Mode returns the draw mode for the topology.
func (t Topology) Mode() gpu.Enum {
	switch t {
	case Lines:
		return gpu.Lines
	case Triangles:
		return gpu.Triangles
	}
	return gpu.Points
}

// Geometry is an immutable set of GPU buffers with its ranges. It owns the
// buffers and the vertex array linking them.
type Geometry struct {
	topology    Topology
	ranges      []Range
	vertexCount int

	va        *gpu.VertexArray
	positions *gpu.Buffer
	colors    *gpu.Buffer
	normals   *gpu.Buffer
	names     *gpu.Buffer
	indices   *gpu.IndexBuffer
}

// newGeometry uploads the streams, releasing everything it created on
// failure.
func newGeometry(ctx *gpu.Context, top Topology, ranges []Range, positions, colors, normals []mgl32.Vec3, indices []uint32) (*Geometry, error) {
	g := &Geometry{
		topology:    top,
		ranges:      ranges,
		vertexCount: len(positions),
	}
	if err := g.upload(ctx, positions, colors, normals, indices); err != nil {
		g.Release()
		return nil, fmt.Errorf("geom: building %v geometry: %w", top, err)
	}
	return g, nil
}

func (g *Geometry) upload(ctx *gpu.Context, positions, colors, normals []mgl32.Vec3, indices []uint32) error {
	var err error
	if g.va, err = gpu.NewVertexArray(ctx); err != nil {
		return err
	}
	vertex := func(data []byte, a gpu.Attrib) (*gpu.Buffer, error) {
		b, err := gpu.NewBuffer(ctx, gpu.ArrayBuffer, data, gpu.StaticDraw)
		if err != nil {
			return nil, err
		}
		return b, g.va.Link(b, a)
	}
	if g.positions, err = vertex(gpu.Bytes(positions), gpu.PositionAttrib); err != nil {
		return err
	}
	if g.colors, err = vertex(gpu.Bytes(colors), gpu.ColorAttrib); err != nil {
		return err
	}
	if len(normals) > 0 {
		if g.normals, err = vertex(gpu.Bytes(normals), gpu.NormalAttrib); err != nil {
			return err
		}
	}
	names := make([][2]int32, len(positions))
	for _, r := range g.ranges {
		for i := r.VertexStart; i < r.VertexStart+r.VertexCount; i++ {
			names[i] = [2]int32{r.Name, 1}
		}
	}
	if g.names, err = vertex(gpu.Bytes(names), gpu.NameAttrib); err != nil {
		return err
	}
	if len(indices) > 0 {
		if g.indices, err = gpu.NewIndexBuffer(ctx, indices); err != nil {
			return err
		}
	}
	return nil
}

// Topology returns the primitive type.
func (g *Geometry) Topology() Topology { return g.topology }

// Ranges returns a copy of the ranges in insertion order.
func (g *Geometry) Ranges() []Range {
	return append([]Range(nil), g.ranges...)
}

// RangeByName returns the first range with the given name.
func (g *Geometry) RangeByName(name int32) (Range, bool) {
	for _, r := range g.ranges {
		if r.Name == name {
			return r, true
		}
	}
	return Range{}, false
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int { return g.vertexCount }

// IndexCount returns the number of indices, 0 for non-indexed geometry.
func (g *Geometry) IndexCount() int {
	if g.indices == nil {
		return 0
	}
	return g.indices.Count()
}

// IndexType returns the packed index type, or gpu.None when there are no
// indices.
func (g *Geometry) IndexType() gpu.Enum {
	if g.indices == nil {
		return gpu.None
	}
	return g.indices.Type()
}

// HasNormals reports whether the geometry carries a normal stream.
func (g *Geometry) HasNormals() bool { return g.normals != nil }

// Released reports whether Release has been called.
func (g *Geometry) Released() bool { return g == nil || g.va == nil || g.va.Released() }

// Draw issues the draw call for the whole geometry with the current program
// and state: indexed when there are indices, otherwise over all vertices.
func (g *Geometry) Draw() error {
	if g.Released() {
		return fmt.Errorf("geometry: %w", gpu.ErrDisposed)
	}
	if g.indices != nil {
		return g.va.DrawIndexed(g.topology.Mode(), g.indices)
	}
	return g.va.Draw(g.topology.Mode(), 0, g.vertexCount)
}

// Release frees all GPU objects. It is safe to call more than once.
func (g *Geometry) Release() {
	if g.va != nil {
		g.va.Release()
	}
	for _, b := range []*gpu.Buffer{g.positions, g.colors, g.normals, g.names} {
		if b != nil {
			b.Release()
		}
	}
	if g.indices != nil {
		g.indices.Release()
	}
}
