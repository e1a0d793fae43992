// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softgpu

import (
	"encoding/binary"

	"cogentcore.org/glview/gpu"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Uniform and attribute locations of the fixed shader layout that draws
// are rasterized with: position, color, normal and name attributes, and
// model, view, projection and normal matrices plus the light mode and
// direction uniforms.
const (
	locPosition = 0
	locColor    = 1
	locNormal   = 2
	locName     = 3

	locModel      = 0
	locView       = 1
	locProjection = 2
	locNormalMat  = 3
	locLightMode  = 4
	locLightDir   = 5
)

// target is the set of planes a draw or clear writes to.
type target struct {
	color         *surface
	depth         []float32
	width, height int
}

// drawTarget resolves the draw framebuffer. It reports false if the bound
// framebuffer object is incomplete.
func (d *Device) drawTarget() (*target, bool) {
	if d.drawFB == 0 {
		return &target{color: d.screen, depth: d.screen.depth, width: d.screen.width, height: d.screen.height}, true
	}
	fb := d.framebuffers[d.drawFB]
	if d.status(fb) != gpu.FramebufferComplete {
		return nil, false
	}
	t := &target{}
	for pt, a := range fb.attachments {
		if a.renderbuffer {
			rb := d.renderbuffers[a.handle]
			t.width, t.height = rb.width, rb.height
			if pt == gpu.DepthAttachment || pt == gpu.DepthStencilAttachment {
				t.depth = rb.depth
			}
			continue
		}
		img := d.textures[a.handle].image
		t.width, t.height = img.width, img.height
		if fb.drawBuffer == gpu.ColorAttachment0 {
			t.color = img
		}
	}
	return t, true
}

func (d *Device) Clear(mask uint32) {
	if !d.begin("Clear") {
		return
	}
	if mask&^(gpu.ColorBufferBit|gpu.DepthBufferBit|gpu.StencilBufferBit) != 0 {
		d.fail(gpu.InvalidValue)
		return
	}
	t, ok := d.drawTarget()
	if !ok {
		d.fail(gpu.InvalidFramebufferOperation)
		return
	}
	if mask&gpu.ColorBufferBit != 0 && t.color != nil {
		var c [4]float64
		for k, v := range d.clearColor {
			if t.color.integer {
				c[k] = float64(int32(v))
			} else {
				c[k] = float64(min(max(v, 0), 1))
			}
		}
		for i := range t.color.color {
			t.color.color[i] = c
		}
	}
	if mask&gpu.DepthBufferBit != 0 {
		for i := range t.depth {
			t.depth[i] = float32(d.clearDepth)
		}
	}
}

func (d *Device) ReadPixels(x, y, width, height int32, format, typ gpu.Enum, dst []byte) {
	if !d.begin("ReadPixels") {
		return
	}
	if width < 0 || height < 0 {
		d.fail(gpu.InvalidValue)
		return
	}
	src := d.screen
	if d.readFB != 0 {
		fb := d.framebuffers[d.readFB]
		if d.status(fb) != gpu.FramebufferComplete {
			d.fail(gpu.InvalidFramebufferOperation)
			return
		}
		a, ok := fb.attachments[gpu.ColorAttachment0]
		if fb.readBuffer == gpu.None || !ok || a.renderbuffer {
			d.fail(gpu.InvalidOperation)
			return
		}
		src = d.textures[a.handle].image
	}
	if src.integer != isIntegerFormat(format) {
		d.fail(gpu.InvalidOperation)
		return
	}
	if !src.read(int(x), int(y), int(width), int(height), format, typ, dst) {
		d.fail(gpu.InvalidOperation)
	}
}

// vertex is the output of the fixed vertex stage.
type vertex struct {
	clip   mgl32.Vec4
	win    mgl32.Vec3 // window x, y and depth in [0, 1]
	color  mgl32.Vec3
	normal mgl32.Vec3 // view space
	name   [2]int32
}

func (d *Device) DrawArrays(mode gpu.Enum, first, count int32) {
	if !d.begin("DrawArrays") {
		return
	}
	if first < 0 || count < 0 {
		d.fail(gpu.InvalidValue)
		return
	}
	idx := make([]int, count)
	for i := range idx {
		idx[i] = int(first) + i
	}
	d.draw(mode, idx)
}

func (d *Device) DrawElements(mode gpu.Enum, count int32, typ gpu.Enum, offset int) {
	if !d.begin("DrawElements") {
		return
	}
	size := 0
	switch typ {
	case gpu.UnsignedByte, gpu.UnsignedShort, gpu.UnsignedInt:
		size = gpu.TypeSize(typ)
	default:
		d.fail(gpu.InvalidEnum)
		return
	}
	if count < 0 {
		d.fail(gpu.InvalidValue)
		return
	}
	eb := d.buffers[d.elementBinding()]
	if eb == nil || offset < 0 || offset+int(count)*size > len(eb.data) {
		d.fail(gpu.InvalidOperation)
		return
	}
	idx := make([]int, count)
	for i := range idx {
		b := eb.data[offset+i*size:]
		switch typ {
		case gpu.UnsignedByte:
			idx[i] = int(b[0])
		case gpu.UnsignedShort:
			idx[i] = int(binary.LittleEndian.Uint16(b))
		default:
			idx[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	d.draw(mode, idx)
}

// draw runs the vertex stage over idx and rasterizes the primitives.
// Primitives with a vertex at or behind the eye (w <= 0) are dropped
// rather than clipped. Color is flat-shaded from the last vertex of each
// primitive and line width is not applied.
func (d *Device) draw(mode gpu.Enum, idx []int) {
	if mode > gpu.Triangles {
		d.fail(gpu.InvalidEnum)
		return
	}
	p := d.programs[d.current]
	va := d.vertexArrays[d.vertexArray]
	if p == nil || !p.linked || va == nil {
		d.fail(gpu.InvalidOperation)
		return
	}
	t, ok := d.drawTarget()
	if !ok {
		d.fail(gpu.InvalidFramebufferOperation)
		return
	}
	model, view, proj := p.mat4(locModel), p.mat4(locView), p.mat4(locProjection)
	mvp := proj.Mul4(view).Mul4(model)
	normalMat := p.mat4(locNormalMat)

	verts := make([]vertex, len(idx))
	for i, vi := range idx {
		pos, ok1 := d.fetch(va, locPosition, vi)
		col, ok2 := d.fetch(va, locColor, vi)
		nrm, ok3 := d.fetch(va, locNormal, vi)
		name, ok4 := d.fetch(va, locName, vi)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			d.fail(gpu.InvalidOperation)
			return
		}
		v := &verts[i]
		v.clip = mvp.Mul4x1(mgl32.Vec4{pos[0], pos[1], pos[2], 1})
		v.color = mgl32.Vec3{col[0], col[1], col[2]}
		v.normal = normalMat.Mul4x1(mgl32.Vec4{nrm[0], nrm[1], nrm[2], 0}).Vec3()
		v.name = [2]int32{int32(name[0]), int32(name[1])}
		if v.clip[3] > 0 {
			ndc := v.clip.Vec3().Mul(1 / v.clip[3])
			vp := d.viewport
			v.win = mgl32.Vec3{
				float32(vp[0]) + (ndc[0]+1)*float32(vp[2])/2,
				float32(vp[1]) + (ndc[1]+1)*float32(vp[3])/2,
				(ndc[2] + 1) / 2,
			}
		}
	}
	r := &rasterizer{d: d, t: t, prog: p}
	switch mode {
	case gpu.Points:
		for i := range verts {
			r.point(&verts[i])
		}
	case gpu.Lines:
		for i := 0; i+1 < len(verts); i += 2 {
			r.line(&verts[i], &verts[i+1])
		}
	case gpu.LineStrip, gpu.LineLoop:
		for i := 0; i+1 < len(verts); i++ {
			r.line(&verts[i], &verts[i+1])
		}
		if mode == gpu.LineLoop && len(verts) > 2 {
			r.line(&verts[len(verts)-1], &verts[0])
		}
	case gpu.Triangles:
		for i := 0; i+2 < len(verts); i += 3 {
			r.triangle(&verts[i], &verts[i+1], &verts[i+2])
		}
	}
}

// fetch reads attribute loc of vertex i. A disabled attribute yields the
// GL default (0, 0, 0, 1).
func (d *Device) fetch(va *vertexArray, loc, i int) ([4]float32, bool) {
	out := [4]float32{0, 0, 0, 1}
	a := va.attribs[loc]
	if !a.enabled {
		return out, true
	}
	b := d.buffers[a.buffer]
	if b == nil {
		return out, false
	}
	size := gpu.TypeSize(a.typ)
	stride := int(a.stride)
	if stride == 0 {
		stride = int(a.size) * size
	}
	off := a.offset + i*stride
	if off < 0 || off+int(a.size)*size > len(b.data) {
		return out, false
	}
	for k := 0; k < int(a.size); k++ {
		out[k] = float32(decode(b.data[off+k*size:], a.typ, a.integer || !a.normalized))
	}
	return out, true
}

// mat4 returns the matrix uniform at loc; unset uniforms are zero.
func (p *program) mat4(loc int32) mgl32.Mat4 {
	var m mgl32.Mat4
	copy(m[:], p.uniforms[loc])
	return m
}

func (p *program) uniform(loc int32, n int) []float32 {
	v := make([]float32, n)
	copy(v, p.uniforms[loc])
	return v
}

type rasterizer struct {
	d    *Device
	t    *target
	prog *program
}

func (r *rasterizer) visible(vs ...*vertex) bool {
	for _, v := range vs {
		if v.clip[3] <= 0 {
			return false
		}
	}
	return true
}

func (r *rasterizer) point(v *vertex) {
	if !r.visible(v) {
		return
	}
	n := max(1, int(math32.Round(r.d.pointSize)))
	x0 := int(math32.Floor(v.win[0] - float32(n)/2 + 0.5))
	y0 := int(math32.Floor(v.win[1] - float32(n)/2 + 0.5))
	for y := y0; y < y0+n; y++ {
		for x := x0; x < x0+n; x++ {
			r.fragment(x, y, v.win[2], v.normal, v)
		}
	}
}

func (r *rasterizer) line(a, b *vertex) {
	if !r.visible(a, b) {
		return
	}
	dx, dy := b.win[0]-a.win[0], b.win[1]-a.win[1]
	steps := int(math32.Ceil(max(math32.Abs(dx), math32.Abs(dy))))
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		f := float32(i) / float32(steps)
		x := int(math32.Floor(a.win[0] + f*dx))
		y := int(math32.Floor(a.win[1] + f*dy))
		z := a.win[2] + f*(b.win[2]-a.win[2])
		n := a.normal.Mul(1 - f).Add(b.normal.Mul(f))
		r.fragment(x, y, z, n, b)
	}
}

func edge(a, b mgl32.Vec3, px, py float32) float32 {
	return (b[0]-a[0])*(py-a[1]) - (b[1]-a[1])*(px-a[0])
}

func (r *rasterizer) triangle(a, b, c *vertex) {
	if !r.visible(a, b, c) {
		return
	}
	area := edge(a.win, b.win, c.win[0], c.win[1])
	if area == 0 {
		return
	}
	// counter-clockwise triangles are front facing
	if r.d.caps[gpu.CullFace] && area < 0 {
		return
	}
	switch r.d.polygonMode {
	case gpu.Point:
		for _, v := range []*vertex{a, b, c} {
			r.point(v)
		}
		return
	case gpu.Line:
		r.line(a, b)
		r.line(b, c)
		r.line(c, a)
		return
	}
	vp := r.d.viewport
	minX := max(int(math32.Floor(min(a.win[0], b.win[0], c.win[0]))), int(vp[0]), 0)
	minY := max(int(math32.Floor(min(a.win[1], b.win[1], c.win[1]))), int(vp[1]), 0)
	maxX := min(int(math32.Ceil(max(a.win[0], b.win[0], c.win[0]))), int(vp[0]+vp[2])-1, r.t.width-1)
	maxY := min(int(math32.Ceil(max(a.win[1], b.win[1], c.win[1]))), int(vp[1]+vp[3])-1, r.t.height-1)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float32(x)+0.5, float32(y)+0.5
			w0 := edge(b.win, c.win, px, py) / area
			w1 := edge(c.win, a.win, px, py) / area
			w2 := edge(a.win, b.win, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a.win[2] + w1*b.win[2] + w2*c.win[2]
			n := a.normal.Mul(w0).Add(b.normal.Mul(w1)).Add(c.normal.Mul(w2))
			r.fragment(x, y, z, n, c)
		}
	}
}

func (r *rasterizer) depthPasses(z, stored float32) bool {
	switch r.d.depthFunc {
	case 0x0200: // NEVER
		return false
	case gpu.Less:
		return z < stored
	case 0x0202: // EQUAL
		return z == stored
	case gpu.LessEqual:
		return z <= stored
	case 0x0204: // GREATER
		return z > stored
	case 0x0205: // NOTEQUAL
		return z != stored
	case 0x0206: // GEQUAL
		return z >= stored
	}
	return true
}

// fragment runs depth testing and the fixed fragment stage for one pixel.
// Flat attributes come from the provoking vertex pv.
func (r *rasterizer) fragment(x, y int, z float32, normal mgl32.Vec3, pv *vertex) {
	if x < 0 || y < 0 || x >= r.t.width || y >= r.t.height || z < 0 || z > 1 {
		return
	}
	i := y*r.t.width + x
	if r.d.caps[gpu.DepthTest] && r.t.depth != nil {
		if !r.depthPasses(z, r.t.depth[i]) {
			return
		}
		r.t.depth[i] = z
	}
	if r.t.color == nil {
		return
	}
	if r.t.color.integer {
		r.t.color.color[i] = [4]float64{float64(pv.name[0]), float64(pv.name[1]), 0, 0}
		return
	}
	col := pv.color
	if r.prog.uniform(locLightMode, 1)[0] == 1 {
		ld := r.prog.uniform(locLightDir, 3)
		n := normal
		if n.Len() > 0 {
			n = n.Normalize()
		}
		diffuse := mgl32.Clamp(n.Dot(mgl32.Vec3{-ld[0], -ld[1], -ld[2]}), 0, 1)
		col = col.Mul(diffuse)
	}
	src := [4]float64{float64(col[0]), float64(col[1]), float64(col[2]), 1}
	if r.d.caps[gpu.Blend] && r.d.blend == [2]gpu.Enum{gpu.SrcAlpha, gpu.OneMinusSrcAlpha} {
		dst := r.t.color.color[i]
		for k := 0; k < 3; k++ {
			src[k] = src[k]*src[3] + dst[k]*(1-src[3])
		}
	}
	for k := range src {
		src[k] = min(max(src[k], 0), 1)
	}
	r.t.color.color[i] = src
}
