// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked shader program. Uniforms are set with the
// ProgramUniform entry points, so the program need not be in use.
type Program struct {
	object
}

// NewProgram compiles the vertex and fragment sources and links them.
// The stages are detached and released in every case; they are not
// needed once the program is linked. A link failure returns a *LinkError.
func NewProgram(ctx *Context, vertexSrc, fragmentSrc string) (*Program, error) {
	vs, err := NewShader(ctx, VertexShader, vertexSrc)
	if err != nil {
		return nil, err
	}
	defer vs.Release()
	fs, err := NewShader(ctx, FragmentShader, fragmentSrc)
	if err != nil {
		return nil, err
	}
	defer fs.Release()

	h := ctx.dev.CreateProgram()
	if err := ctx.check("CreateProgram"); err != nil {
		return nil, err
	}
	if h == 0 {
		return nil, errors.New("gpu: CreateProgram returned no handle")
	}
	p := &Program{object{ctx: ctx, handle: h, kind: "program"}}
	if err := p.link(vs, fs); err != nil {
		p.Release()
		return nil, err
	}
	p.created()
	return p, nil
}

func (p *Program) link(stages ...*Shader) (err error) {
	dev := p.ctx.dev
	var attached []*Shader
	defer func() {
		for _, sh := range attached {
			dev.DetachShader(p.handle, sh.handle)
			if derr := p.ctx.check("DetachShader"); derr != nil {
				err = errors.Join(err, derr)
			}
		}
	}()
	for _, sh := range stages {
		dev.AttachShader(p.handle, sh.handle)
		if err := p.ctx.check("AttachShader"); err != nil {
			return err
		}
		attached = append(attached, sh)
	}
	dev.LinkProgram(p.handle)
	if err := p.ctx.check("LinkProgram"); err != nil {
		return err
	}
	if !dev.ProgramLinked(p.handle) {
		return &LinkError{Log: strings.TrimSpace(dev.ProgramInfoLog(p.handle))}
	}
	return nil
}

// Use makes this the current program and returns a function restoring
// the previously current one.
func (p *Program) Use() (func(), error) {
	return p.bindTo(ProgramSlot)
}

// With makes this the current program, runs fn, and restores the previous one.
func (p *Program) With(fn func() error) error {
	return p.with(ProgramSlot, fn)
}

// UniformLocation returns the location of the named uniform, or -1 if the
// program has no active uniform of that name.
func (p *Program) UniformLocation(name string) (int32, error) {
	h, err := p.live()
	if err != nil {
		return -1, err
	}
	loc := p.ctx.dev.GetUniformLocation(h, name)
	if err := p.ctx.check("GetUniformLocation"); err != nil {
		return -1, err
	}
	return loc, nil
}

// setUniform runs set for a valid location. Negative locations are
// silently ignored, as GL does.
func (p *Program) setUniform(op string, loc int32, set func(h uint32)) error {
	h, err := p.live()
	if err != nil {
		return err
	}
	if loc < 0 {
		return nil
	}
	set(h)
	return p.ctx.check(op)
}

// SetInt sets an int uniform.
func (p *Program) SetInt(loc int32, v int32) error {
	return p.setUniform("ProgramUniform1i", loc, func(h uint32) { p.ctx.dev.ProgramUniform1i(h, loc, v) })
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(loc int32, v float32) error {
	return p.setUniform("ProgramUniform1f", loc, func(h uint32) { p.ctx.dev.ProgramUniform1f(h, loc, v) })
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(loc int32, v mgl32.Vec3) error {
	return p.setUniform("ProgramUniform3f", loc, func(h uint32) { p.ctx.dev.ProgramUniform3f(h, loc, v[0], v[1], v[2]) })
}

// SetVec4 sets a vec4 uniform.
func (p *Program) SetVec4(loc int32, v mgl32.Vec4) error {
	return p.setUniform("ProgramUniform4f", loc, func(h uint32) { p.ctx.dev.ProgramUniform4f(h, loc, v[0], v[1], v[2], v[3]) })
}

// SetMat4 sets a mat4 uniform from a column-major matrix.
func (p *Program) SetMat4(loc int32, m mgl32.Mat4) error {
	return p.setUniform("ProgramUniformMatrix4fv", loc, func(h uint32) {
		a := [16]float32(m)
		p.ctx.dev.ProgramUniformMatrix4fv(h, loc, &a)
	})
}

// Release deletes the program. It is safe to call more than once.
func (p *Program) Release() {
	p.release(p.ctx.dev.DeleteProgram, ProgramSlot)
}
