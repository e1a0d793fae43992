// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"fmt"
	"strings"
)

// Shader is a compiled shader stage. It is only needed until the program
// using it is linked.
type Shader struct {
	object
	stage Enum
}

// NewShader compiles src as the given stage. A compile failure returns a
// *CompileError carrying the compiler log; the shader is released.
func NewShader(ctx *Context, stage Enum, src string) (*Shader, error) {
	if stage != VertexShader && stage != FragmentShader {
		return nil, fmt.Errorf("gpu: invalid shader stage 0x%04X", uint32(stage))
	}
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("gpu: empty %s shader source", StageName(stage))
	}
	h := ctx.dev.CreateShader(stage)
	if err := ctx.check("CreateShader"); err != nil {
		return nil, err
	}
	if h == 0 {
		return nil, errors.New("gpu: CreateShader returned no handle")
	}
	sh := &Shader{object: object{ctx: ctx, handle: h, kind: StageName(stage) + " shader"}, stage: stage}
	if err := sh.compile(src); err != nil {
		sh.Release()
		return nil, err
	}
	sh.created()
	return sh, nil
}

func (sh *Shader) compile(src string) error {
	dev := sh.ctx.dev
	dev.ShaderSource(sh.handle, src)
	if err := sh.ctx.check("ShaderSource"); err != nil {
		return err
	}
	dev.CompileShader(sh.handle)
	if err := sh.ctx.check("CompileShader"); err != nil {
		return err
	}
	if !dev.ShaderCompiled(sh.handle) {
		return &CompileError{Stage: sh.stage, Log: strings.TrimSpace(dev.ShaderInfoLog(sh.handle))}
	}
	return nil
}

// Stage returns the shader stage.
func (sh *Shader) Stage() Enum { return sh.stage }

// Release deletes the shader. It is safe to call more than once.
func (sh *Shader) Release() {
	sh.release(sh.ctx.dev.DeleteShader)
}
