// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"errors"

	"cogentcore.org/glview/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoTopology is returned by [Builder.BuildGeometry] when no geometry
// was begun.
var ErrNoTopology = errors.New("geom: no geometry begun")

// Builder accumulates ranges of one topology and uploads them as a single
// [Geometry]. The Begin methods clear it and fix the topology; the Add
// methods return false, leaving the builder unchanged, when their input
// does not fit the topology or is malformed.
type Builder struct {
	topology  Topology
	positions []mgl32.Vec3
	colors    []mgl32.Vec3
	normals   []mgl32.Vec3
	indices   []uint32
	ranges    []Range
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) clear() {
	b.topology = NoTopology
	b.positions = b.positions[:0]
	b.colors = b.colors[:0]
	b.normals = b.normals[:0]
	b.indices = b.indices[:0]
	b.ranges = nil
}

func (b *Builder) begin(t Topology) {
	b.clear()
	b.topology = t
}

// Topology returns the active topology.
func (b *Builder) Topology() Topology { return b.topology }

// VertexCount returns the number of vertices added so far.
func (b *Builder) VertexCount() int { return len(b.positions) }

// BeginPointGeometry starts a point geometry.
func (b *Builder) BeginPointGeometry() { b.begin(Points) }

// BeginLineGeometry starts a line geometry.
func (b *Builder) BeginLineGeometry() { b.begin(Lines) }

// BeginMeshGeometry starts a triangle mesh geometry.
func (b *Builder) BeginMeshGeometry() { b.begin(Triangles) }

// AddPoints adds a range of points. Point geometries are not indexed; the
// range's index fields mirror its vertex fields.
func (b *Builder) AddPoints(name int32, positions, colors []mgl32.Vec3) bool {
	if b.topology != Points || len(positions) < 1 || len(colors) != len(positions) {
		return false
	}
	first := int32(len(b.positions))
	n := int32(len(positions))
	b.ranges = append(b.ranges, Range{Name: name, VertexStart: first, VertexCount: n, IndexStart: first, IndexCount: n})
	b.positions = append(b.positions, positions...)
	b.colors = append(b.colors, colors...)
	return true
}

// AddPolyline adds a connected line strip through positions, as separate
// segments. A closed polyline gets an extra segment back to its start.
func (b *Builder) AddPolyline(name int32, positions, colors []mgl32.Vec3, closed bool) bool {
	if b.topology != Lines || len(positions) < 2 || len(colors) != len(positions) {
		return false
	}
	first := uint32(len(b.positions))
	r := Range{
		Name:        name,
		VertexStart: int32(first),
		VertexCount: int32(len(positions)),
		IndexStart:  int32(len(b.indices)),
	}
	last := first + uint32(len(positions)) - 1
	for i := first; i < last; i++ {
		b.indices = append(b.indices, i, i+1)
	}
	if closed {
		b.indices = append(b.indices, last, first)
	}
	r.IndexCount = int32(len(b.indices)) - r.IndexStart
	b.ranges = append(b.ranges, r)
	b.positions = append(b.positions, positions...)
	b.colors = append(b.colors, colors...)
	return true
}

// AddMesh adds a triangle mesh. Indices are stored as given, so they must
// already address the builder's vertex stream, starting at
// [Builder.VertexCount]. normals may be empty. When meshes with and
// without normals are mixed, the missing normals are zero.
func (b *Builder) AddMesh(name int32, positions, colors, normals []mgl32.Vec3, indices []uint32) bool {
	if b.topology != Triangles || len(positions) < 3 || len(colors) != len(positions) {
		return false
	}
	if len(normals) != 0 && len(normals) != len(positions) {
		return false
	}
	first := len(b.positions)
	b.ranges = append(b.ranges, Range{
		Name:        name,
		VertexStart: int32(first),
		VertexCount: int32(len(positions)),
		IndexStart:  int32(len(b.indices)),
		IndexCount:  int32(len(indices)),
	})
	switch {
	case len(normals) > 0:
		b.normals = append(b.normals, make([]mgl32.Vec3, first-len(b.normals))...)
		b.normals = append(b.normals, normals...)
	case len(b.normals) > 0:
		b.normals = append(b.normals, make([]mgl32.Vec3, len(positions))...)
	}
	b.positions = append(b.positions, positions...)
	b.colors = append(b.colors, colors...)
	b.indices = append(b.indices, indices...)
	return true
}

// BuildGeometry uploads the accumulated streams and clears the builder,
// also when the upload fails.
func (b *Builder) BuildGeometry(ctx *gpu.Context) (*Geometry, error) {
	if b.topology == NoTopology {
		return nil, ErrNoTopology
	}
	defer b.clear()
	return newGeometry(ctx, b.topology, b.ranges, b.positions, b.colors, b.normals, b.indices)
}
