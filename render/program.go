// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"cogentcore.org/glview/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Uniform names shared by all programs. Programs need not declare all
// of them; setters for absent uniforms only update the cached value.
const (
	ModelMatrixUniform      = "uModelMatrix"
	ViewMatrixUniform       = "uViewMatrix"
	ProjectionMatrixUniform = "uProjectionMatrix"
	NormalMatrixUniform     = "uNormalMatrix"
	LightModeUniform        = "uLightMode"
	LightDirectionUniform   = "uLightDirection"
)

// DefaultLightDirection points straight down.
var DefaultLightDirection = mgl32.Vec3{0, -1, 0}

// Program is a shader program with standing model, view, projection and
// normal matrix uniforms and optional lighting uniforms. It caches every
// value and only uploads changes.
type Program struct {
	*gpu.Program

	locModel, locView, locProjection, locNormal int32
	locLightMode, locLightDirection             int32

	model, view, projection, normal mgl32.Mat4
	lightMode                       int32
	lightDirection                  mgl32.Vec3
}

// NewProgram builds a program from the given sources and initializes its
// matrices to identity, the light mode to 0 and the light direction to
// [DefaultLightDirection].
func NewProgram(gc *gpu.Context, vertexSrc, fragmentSrc string) (*Program, error) {
	gp, err := gpu.NewProgram(gc, vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	p := &Program{
		Program:        gp,
		model:          mgl32.Ident4(),
		view:           mgl32.Ident4(),
		projection:     mgl32.Ident4(),
		lightDirection: DefaultLightDirection,
	}
	if err := p.init(); err != nil {
		gp.Release()
		return nil, err
	}
	return p, nil
}

// NewRenderingProgram builds the lit color program.
func NewRenderingProgram(gc *gpu.Context) (*Program, error) {
	return NewProgram(gc, RenderVertexShader, RenderFragmentShader)
}

func (p *Program) init() error {
	for _, u := range []struct {
		name string
		loc  *int32
	}{
		{ModelMatrixUniform, &p.locModel},
		{ViewMatrixUniform, &p.locView},
		{ProjectionMatrixUniform, &p.locProjection},
		{NormalMatrixUniform, &p.locNormal},
		{LightModeUniform, &p.locLightMode},
		{LightDirectionUniform, &p.locLightDirection},
	} {
		loc, err := p.UniformLocation(u.name)
		if err != nil {
			return err
		}
		*u.loc = loc
	}
	p.normal = normalMatrix(p.view, p.model)
	for _, m := range []struct {
		loc int32
		v   mgl32.Mat4
	}{
		{p.locModel, p.model},
		{p.locView, p.view},
		{p.locProjection, p.projection},
		{p.locNormal, p.normal},
	} {
		if err := p.SetMat4(m.loc, m.v); err != nil {
			return err
		}
	}
	if err := p.SetInt(p.locLightMode, p.lightMode); err != nil {
		return err
	}
	return p.SetVec3(p.locLightDirection, p.lightDirection)
}

// normalMatrix is the inverse transpose of view×model, or identity when
// that is singular.
func normalMatrix(view, model mgl32.Mat4) mgl32.Mat4 {
	mv := view.Mul4(model)
	if mv.Det() == 0 {
		return mgl32.Ident4()
	}
	return mv.Inv().Transpose()
}

// ModelMatrix returns the model matrix.
func (p *Program) ModelMatrix() mgl32.Mat4 { return p.model }

// ViewMatrix returns the view matrix.
func (p *Program) ViewMatrix() mgl32.Mat4 { return p.view }

// ProjectionMatrix returns the projection matrix.
func (p *Program) ProjectionMatrix() mgl32.Mat4 { return p.projection }

// NormalMatrix returns the normal matrix derived from view and model.
func (p *Program) NormalMatrix() mgl32.Mat4 { return p.normal }

// LightMode returns 1 when lighting is on and 0 otherwise.
func (p *Program) LightMode() int32 { return p.lightMode }

// LightDirection returns the direction the light shines in.
func (p *Program) LightDirection() mgl32.Vec3 { return p.lightDirection }

// SetModelMatrix sets the model matrix and updates the normal matrix.
func (p *Program) SetModelMatrix(m mgl32.Mat4) error {
	if m == p.model {
		return nil
	}
	if err := p.SetMat4(p.locModel, m); err != nil {
		return err
	}
	p.model = m
	return p.setNormalMatrix(normalMatrix(p.view, p.model))
}

// SetViewMatrix sets the view matrix and updates the normal matrix.
func (p *Program) SetViewMatrix(m mgl32.Mat4) error {
	if m == p.view {
		return nil
	}
	if err := p.SetMat4(p.locView, m); err != nil {
		return err
	}
	p.view = m
	return p.setNormalMatrix(normalMatrix(p.view, p.model))
}

// SetProjectionMatrix sets the projection matrix.
func (p *Program) SetProjectionMatrix(m mgl32.Mat4) error {
	if m == p.projection {
		return nil
	}
	if err := p.SetMat4(p.locProjection, m); err != nil {
		return err
	}
	p.projection = m
	return nil
}

func (p *Program) setNormalMatrix(m mgl32.Mat4) error {
	if m == p.normal {
		return nil
	}
	if err := p.SetMat4(p.locNormal, m); err != nil {
		return err
	}
	p.normal = m
	return nil
}

// SetLightMode sets the light mode: 1 for diffuse lighting, 0 for flat
// vertex colors.
func (p *Program) SetLightMode(mode int32) error {
	if mode == p.lightMode {
		return nil
	}
	if err := p.SetInt(p.locLightMode, mode); err != nil {
		return err
	}
	p.lightMode = mode
	return nil
}

// SetLightDirection sets the direction the light shines in.
func (p *Program) SetLightDirection(d mgl32.Vec3) error {
	if d == p.lightDirection {
		return nil
	}
	if err := p.SetVec3(p.locLightDirection, d); err != nil {
		return err
	}
	p.lightDirection = d
	return nil
}
