// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softgpu

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cogentcore.org/glview/gpu"
)

// shader is a shader object. Compilation checks the source only for the
// features this device depends on; it does not parse GLSL.
type shader struct {
	stage    gpu.Enum
	src      string
	compiled bool
	log      string
}

// program is a program object. At link time it records the explicit
// uniform locations declared by its stages.
type program struct {
	attached map[uint32]bool
	linked   bool
	log      string
	locs     map[string]int32
	uniforms map[int32][]float32
}

var uniformDecl = regexp.MustCompile(`layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*uniform\s+\w+\s+(\w+)\s*;`)

func (d *Device) CreateShader(stage gpu.Enum) uint32 {
	if !d.begin("CreateShader") {
		return 0
	}
	if stage != gpu.VertexShader && stage != gpu.FragmentShader {
		d.fail(gpu.InvalidEnum)
		return 0
	}
	h := d.gen()
	d.shaders[h] = &shader{stage: stage}
	return h
}

func (d *Device) DeleteShader(h uint32) {
	if !d.begin("DeleteShader") || h == 0 {
		return
	}
	if d.shaders[h] == nil {
		d.fail(gpu.InvalidValue)
		return
	}
	delete(d.shaders, h)
}

func (d *Device) ShaderSource(h uint32, src string) {
	if !d.begin("ShaderSource") {
		return
	}
	sh := d.shaders[h]
	if sh == nil {
		d.fail(gpu.InvalidValue)
		return
	}
	sh.src = src
}

func (d *Device) CompileShader(h uint32) {
	if !d.begin("CompileShader") {
		return
	}
	sh := d.shaders[h]
	if sh == nil {
		d.fail(gpu.InvalidValue)
		return
	}
	sh.compiled, sh.log = false, ""
	switch {
	case !strings.Contains(sh.src, "#version"):
		sh.log = "0:1(1): error: missing #version directive"
	case strings.Contains(sh.src, "#error"):
		i := strings.Index(sh.src, "#error")
		line := strings.SplitN(sh.src[i:], "\n", 2)[0]
		sh.log = "0:" + strconv.Itoa(strings.Count(sh.src[:i], "\n")+1) + "(1): error: " + strings.TrimSpace(strings.TrimPrefix(line, "#error"))
	case !strings.Contains(sh.src, "void main"):
		sh.log = "error: no function with name 'main'"
	default:
		sh.compiled = true
	}
}

func (d *Device) ShaderCompiled(h uint32) bool {
	if !d.begin("ShaderCompiled") {
		return false
	}
	sh := d.shaders[h]
	if sh == nil {
		d.fail(gpu.InvalidValue)
		return false
	}
	return sh.compiled
}

func (d *Device) ShaderInfoLog(h uint32) string {
	if !d.begin("ShaderInfoLog") {
		return ""
	}
	sh := d.shaders[h]
	if sh == nil {
		d.fail(gpu.InvalidValue)
		return ""
	}
	return sh.log
}

func (d *Device) CreateProgram() uint32 {
	if !d.begin("CreateProgram") {
		return 0
	}
	h := d.gen()
	d.programs[h] = &program{attached: make(map[uint32]bool)}
	return h
}

func (d *Device) DeleteProgram(h uint32) {
	if !d.begin("DeleteProgram") || h == 0 {
		return
	}
	if d.programs[h] == nil {
		d.fail(gpu.InvalidValue)
		return
	}
	delete(d.programs, h)
}

// Attached returns the number of shaders attached to a program.
func (d *Device) Attached(prog uint32) int {
	if p := d.programs[prog]; p != nil {
		return len(p.attached)
	}
	return 0
}

func (d *Device) AttachShader(prog, sh uint32) {
	if !d.begin("AttachShader") {
		return
	}
	p := d.programs[prog]
	switch {
	case p == nil || d.shaders[sh] == nil:
		d.fail(gpu.InvalidValue)
	case p.attached[sh]:
		d.fail(gpu.InvalidOperation)
	default:
		p.attached[sh] = true
	}
}

func (d *Device) DetachShader(prog, sh uint32) {
	if !d.begin("DetachShader") {
		return
	}
	p := d.programs[prog]
	switch {
	case p == nil:
		d.fail(gpu.InvalidValue)
	case !p.attached[sh]:
		d.fail(gpu.InvalidOperation)
	default:
		delete(p.attached, sh)
	}
}

func (d *Device) LinkProgram(prog uint32) {
	if !d.begin("LinkProgram") {
		return
	}
	p := d.programs[prog]
	if p == nil {
		d.fail(gpu.InvalidValue)
		return
	}
	p.linked, p.log = false, ""
	p.locs = make(map[string]int32)
	p.uniforms = make(map[int32][]float32)
	stages := map[gpu.Enum]int{}
	byLoc := map[int32]string{}
	for h := range p.attached {
		sh := d.shaders[h]
		if sh == nil {
			continue
		}
		if !sh.compiled {
			p.log = "error: linking with uncompiled/unspecialized shader"
			return
		}
		stages[sh.stage]++
		for _, m := range uniformDecl.FindAllStringSubmatch(sh.src, -1) {
			n, _ := strconv.Atoi(m[1])
			loc, name := int32(n), m[2]
			if other, ok := byLoc[loc]; ok && other != name {
				p.log = fmt.Sprintf("error: explicit location %d used by uniforms %s and %s", loc, other, name)
				return
			}
			byLoc[loc] = name
			p.locs[name] = loc
		}
	}
	switch {
	case stages[gpu.VertexShader] != 1:
		p.log = "error: program needs exactly one vertex shader"
	case stages[gpu.FragmentShader] != 1:
		p.log = "error: program needs exactly one fragment shader"
	default:
		p.linked = true
	}
}

func (d *Device) ProgramLinked(prog uint32) bool {
	if !d.begin("ProgramLinked") {
		return false
	}
	p := d.programs[prog]
	if p == nil {
		d.fail(gpu.InvalidValue)
		return false
	}
	return p.linked
}

func (d *Device) ProgramInfoLog(prog uint32) string {
	if !d.begin("ProgramInfoLog") {
		return ""
	}
	p := d.programs[prog]
	if p == nil {
		d.fail(gpu.InvalidValue)
		return ""
	}
	return p.log
}

func (d *Device) UseProgram(prog uint32) {
	if !d.begin("UseProgram") {
		return
	}
	if prog != 0 {
		p := d.programs[prog]
		if p == nil {
			d.fail(gpu.InvalidValue)
			return
		}
		if !p.linked {
			d.fail(gpu.InvalidOperation)
			return
		}
	}
	d.current = prog
}

// linkedProgram returns a linked program or records the GL error.
func (d *Device) linkedProgram(prog uint32) *program {
	p := d.programs[prog]
	if p == nil {
		d.fail(gpu.InvalidValue)
		return nil
	}
	if !p.linked {
		d.fail(gpu.InvalidOperation)
		return nil
	}
	return p
}

func (d *Device) GetUniformLocation(prog uint32, name string) int32 {
	if !d.begin("GetUniformLocation") {
		return -1
	}
	p := d.linkedProgram(prog)
	if p == nil {
		return -1
	}
	if loc, ok := p.locs[name]; ok {
		return loc
	}
	return -1
}

// setUniform stores values at loc. Location -1 is silently ignored and an
// undeclared location is an error, as in GL.
func (d *Device) setUniform(op string, prog uint32, loc int32, v ...float32) {
	if !d.begin(op) {
		return
	}
	p := d.linkedProgram(prog)
	if p == nil || loc == -1 {
		return
	}
	for _, l := range p.locs {
		if l == loc {
			p.uniforms[loc] = append([]float32(nil), v...)
			return
		}
	}
	d.fail(gpu.InvalidOperation)
}

func (d *Device) ProgramUniform1i(prog uint32, loc int32, v int32) {
	d.setUniform("ProgramUniform1i", prog, loc, float32(v))
}

func (d *Device) ProgramUniform1f(prog uint32, loc int32, v float32) {
	d.setUniform("ProgramUniform1f", prog, loc, v)
}

func (d *Device) ProgramUniform3f(prog uint32, loc int32, x, y, z float32) {
	d.setUniform("ProgramUniform3f", prog, loc, x, y, z)
}

func (d *Device) ProgramUniform4f(prog uint32, loc int32, x, y, z, w float32) {
	d.setUniform("ProgramUniform4f", prog, loc, x, y, z, w)
}

func (d *Device) ProgramUniformMatrix4fv(prog uint32, loc int32, m *[16]float32) {
	d.setUniform("ProgramUniformMatrix4fv", prog, loc, m[:]...)
}
