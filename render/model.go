// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"

	"cogentcore.org/glview/geom"
	"github.com/go-gl/mathgl/mgl32"
)

// ModelKind selects the render state a [Model] is drawn with.
type ModelKind int32

const (
	// PointModel is drawn unlit with its PointSize.
	PointModel ModelKind = iota

	// LineModel is drawn unlit with its LineWidth.
	LineModel

	// MeshModel is drawn lit with its PolygonMode.
	MeshModel
)

func (k ModelKind) String() string {
	switch k {
	case PointModel:
		return "Point"
	case LineModel:
		return "Line"
	case MeshModel:
		return "Mesh"
	}
	return fmt.Sprintf("ModelKind(%d)", int32(k))
}

// Model is a geometry placed in the scene. It owns its geometry.
type Model struct {
	Kind     ModelKind
	Geometry *geom.Geometry

	// Transform is right-multiplied onto the model matrix while the model
	// renders. nil means identity.
	Transform *mgl32.Mat4

	PointSize   float32
	LineWidth   float32
	PolygonMode PolygonMode
}

func newModel(kind ModelKind, g *geom.Geometry) *Model {
	return &Model{Kind: kind, Geometry: g, PointSize: 1, LineWidth: 1, PolygonMode: Fill}
}

// NewPointModel returns a point model with point size 1.
func NewPointModel(g *geom.Geometry) *Model { return newModel(PointModel, g) }

// NewLineModel returns a line model with line width 1.
func NewLineModel(g *geom.Geometry) *Model { return newModel(LineModel, g) }

// NewMeshModel returns a filled mesh model.
func NewMeshModel(g *geom.Geometry) *Model { return newModel(MeshModel, g) }

// SetTransform sets the model transform.
func (m *Model) SetTransform(t mgl32.Mat4) { m.Transform = &t }

// Release releases the geometry. It is safe to call more than once.
func (m *Model) Release() {
	if m.Geometry != nil {
		m.Geometry.Release()
	}
}

// Render draws the models in order with the active program, stopping at
// the first failure. Each model's kind state and transform are restored
// after it is drawn.
func (c *Context) Render(models ...*Model) error {
	for _, m := range models {
		if err := c.renderModel(m); err != nil {
			return fmt.Errorf("render: %v model: %w", m.Kind, err)
		}
	}
	return nil
}

func (c *Context) renderModel(m *Model) error {
	return WithOverrides(func(o *Overrides) error {
		var err error
		switch m.Kind {
		case PointModel:
			if err = o.Push(c.OverrideLighting(false)); err == nil {
				err = o.Push(c.OverridePointSize(m.PointSize))
			}
		case LineModel:
			if err = o.Push(c.OverrideLighting(false)); err == nil {
				err = o.Push(c.OverrideLineWidth(m.LineWidth))
			}
		case MeshModel:
			if err = o.Push(c.OverrideLighting(true)); err == nil {
				err = o.Push(c.OverridePolygonMode(m.PolygonMode))
			}
		default:
			err = fmt.Errorf("unknown model kind %d", int32(m.Kind))
		}
		if err != nil {
			return err
		}
		if m.Transform != nil {
			if err := o.Push(c.AppendModelMatrix(*m.Transform)); err != nil {
				return err
			}
		}
		return m.Geometry.Draw()
	})
}
