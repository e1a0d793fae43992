// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package softgpu implements [gpu.Device] in software. It models the
// OpenGL object and binding rules closely enough to report the same
// errors a driver would, counts live objects so tests can detect leaks,
// injects faults on request, and rasterizes draws made with the fixed
// attribute and uniform layout used by the render and pick packages.
package softgpu

import (
	"fmt"
	"sort"

	"cogentcore.org/glview/gpu"
)

// Device is a software [gpu.Device]. The zero value is not usable; use [New].
// Like a GL context it is not safe for concurrent use.
type Device struct {
	errs []gpu.Enum
	next uint32

	buffers       map[uint32]*buffer
	vertexArrays  map[uint32]*vertexArray
	textures      map[uint32]*texture
	renderbuffers map[uint32]*renderbuffer
	framebuffers  map[uint32]*framebuffer
	shaders       map[uint32]*shader
	programs      map[uint32]*program

	arrayBuffer uint32
	// element array binding while no vertex array is bound; otherwise
	// it is vertex array state
	elementBuffer uint32
	vertexArray   uint32
	texture2D     uint32
	renderbuffer  uint32
	drawFB        uint32
	readFB        uint32
	current       uint32

	// compat accepts the compatibility profile's point smoothing enums
	compat bool

	caps        map[gpu.Enum]bool
	hints       map[gpu.Enum]gpu.Enum
	blend       [2]gpu.Enum
	depthFunc   gpu.Enum
	pointSize   float32
	lineWidth   float32
	polygonMode gpu.Enum
	clearColor  [4]float32
	clearDepth  float64
	viewport    [4]int32

	// the window-system framebuffer, always complete
	screen *surface

	faults map[string]gpu.Enum
	calls  map[string]int
}

// New returns a device whose default framebuffer has the given size.
// The viewport starts out covering it, as with a freshly created context.
func New(width, height int) *Device {
	return &Device{
		next:          1,
		buffers:       make(map[uint32]*buffer),
		vertexArrays:  make(map[uint32]*vertexArray),
		textures:      make(map[uint32]*texture),
		renderbuffers: make(map[uint32]*renderbuffer),
		framebuffers:  make(map[uint32]*framebuffer),
		shaders:       make(map[uint32]*shader),
		programs:      make(map[uint32]*program),
		caps:          make(map[gpu.Enum]bool),
		hints:         make(map[gpu.Enum]gpu.Enum),
		blend:         [2]gpu.Enum{1, 0}, // ONE, ZERO
		depthFunc:     gpu.Less,
		pointSize:     1,
		lineWidth:     1,
		polygonMode:   gpu.Fill,
		clearDepth:    1,
		viewport:      [4]int32{0, 0, int32(width), int32(height)},
		screen:        newSurface(width, height, false, true),
		faults:        make(map[string]gpu.Enum),
		calls:         make(map[string]int),
	}
}

// FailOn arms a one-shot fault: the next call to the named entry point
// (for example "BufferData" or "GenTexture") does nothing and records
// code as the error flag. Gen and Create calls return 0.
func (d *Device) FailOn(op string, code gpu.Enum) {
	d.faults[op] = code
}

// SetCompatibilityProfile makes the device accept the point smoothing
// capability and hint, which a core profile rejects with InvalidEnum.
func (d *Device) SetCompatibilityProfile(on bool) {
	d.compat = on
}

// Calls returns how many times the named entry point has been called.
func (d *Device) Calls(op string) int {
	return d.calls[op]
}

// Live returns the number of objects of every kind that have been
// created and not yet deleted.
func (d *Device) Live() int {
	return len(d.buffers) + len(d.vertexArrays) + len(d.textures) + len(d.renderbuffers) +
		len(d.framebuffers) + len(d.shaders) + len(d.programs)
}

// LiveObjects describes the live objects, sorted, for test failure messages.
func (d *Device) LiveObjects() []string {
	var out []string
	add := func(kind string, h uint32) { out = append(out, fmt.Sprintf("%s %d", kind, h)) }
	for h := range d.buffers {
		add("buffer", h)
	}
	for h := range d.vertexArrays {
		add("vertex array", h)
	}
	for h := range d.textures {
		add("texture", h)
	}
	for h := range d.renderbuffers {
		add("renderbuffer", h)
	}
	for h := range d.framebuffers {
		add("framebuffer", h)
	}
	for h := range d.shaders {
		add("shader", h)
	}
	for h := range d.programs {
		add("program", h)
	}
	sort.Strings(out)
	return out
}

// Enabled reports whether a capability is enabled.
func (d *Device) Enabled(capability gpu.Enum) bool { return d.caps[capability] }

// HintMode returns the mode set for a hint target.
func (d *Device) HintMode(target gpu.Enum) gpu.Enum { return d.hints[target] }

// CurrentProgram returns the program in use.
func (d *Device) CurrentProgram() uint32 { return d.current }

// Binding returns the object bound to a buffer, texture, renderbuffer or
// framebuffer target, or the current vertex array or program for
// gpu.VertexArraySlot and gpu.ProgramSlot.
func (d *Device) Binding(target gpu.Enum) uint32 {
	switch target {
	case gpu.ArrayBuffer:
		return d.arrayBuffer
	case gpu.ElementArrayBuffer:
		return d.elementBinding()
	case gpu.Texture2D:
		return d.texture2D
	case gpu.RenderbufferTarget:
		return d.renderbuffer
	case gpu.FramebufferTarget, gpu.DrawFramebuffer:
		return d.drawFB
	case gpu.ReadFramebuffer:
		return d.readFB
	case gpu.VertexArraySlot:
		return d.vertexArray
	case gpu.ProgramSlot:
		return d.current
	}
	return 0
}

// CurrentPointSize returns the current point size.
func (d *Device) CurrentPointSize() float32 { return d.pointSize }

// CurrentLineWidth returns the current line width.
func (d *Device) CurrentLineWidth() float32 { return d.lineWidth }

// CurrentPolygonMode returns the current polygon mode.
func (d *Device) CurrentPolygonMode() gpu.Enum { return d.polygonMode }

// CurrentClearColor returns the current clear color.
func (d *Device) CurrentClearColor() [4]float32 { return d.clearColor }

// CurrentBlendFunc returns the source and destination blend factors.
func (d *Device) CurrentBlendFunc() (src, dst gpu.Enum) { return d.blend[0], d.blend[1] }

// CurrentDepthFunc returns the depth comparison function.
func (d *Device) CurrentDepthFunc() gpu.Enum { return d.depthFunc }

// CurrentViewport returns x, y, width and height of the viewport.
func (d *Device) CurrentViewport() [4]int32 { return d.viewport }

// Uniform returns the values last set at a uniform location of a program.
func (d *Device) Uniform(prog uint32, location int32) []float32 {
	p := d.programs[prog]
	if p == nil {
		return nil
	}
	return p.uniforms[location]
}

// ScreenPixel returns the color of a default framebuffer pixel, with y
// counted from the bottom row.
func (d *Device) ScreenPixel(x, y int) [4]float32 {
	if !d.screen.contains(x, y) {
		return [4]float32{}
	}
	c := d.screen.color[y*d.screen.width+x]
	return [4]float32{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
}

// begin counts a call and reports whether it should proceed; an armed
// fault consumes the call.
func (d *Device) begin(op string) bool {
	d.calls[op]++
	if code, ok := d.faults[op]; ok {
		delete(d.faults, op)
		d.fail(code)
		return false
	}
	return true
}

// fail records an error code. A code that is already pending is not
// queued again.
func (d *Device) fail(code gpu.Enum) {
	for _, e := range d.errs {
		if e == code {
			return
		}
	}
	d.errs = append(d.errs, code)
}

func (d *Device) gen() uint32 {
	h := d.next
	d.next++
	return h
}

// GetError returns and clears the oldest recorded error.
func (d *Device) GetError() gpu.Enum {
	if len(d.errs) == 0 {
		return gpu.NoError
	}
	e := d.errs[0]
	d.errs = d.errs[1:]
	return e
}

////////  Buffers

type buffer struct {
	data  []byte
	usage gpu.Enum
}

func (d *Device) GenBuffer() uint32 {
	if !d.begin("GenBuffer") {
		return 0
	}
	h := d.gen()
	d.buffers[h] = &buffer{}
	return h
}

func (d *Device) DeleteBuffer(h uint32) {
	if !d.begin("DeleteBuffer") || h == 0 {
		return
	}
	if _, ok := d.buffers[h]; !ok {
		return
	}
	delete(d.buffers, h)
	if d.arrayBuffer == h {
		d.arrayBuffer = 0
	}
	if d.elementBuffer == h {
		d.elementBuffer = 0
	}
	for _, va := range d.vertexArrays {
		if va.elements == h {
			va.elements = 0
		}
		for i := range va.attribs {
			if va.attribs[i].buffer == h {
				va.attribs[i].buffer = 0
			}
		}
	}
}

func (d *Device) BindBuffer(target gpu.Enum, h uint32) {
	if !d.begin("BindBuffer") {
		return
	}
	if h != 0 && d.buffers[h] == nil {
		d.fail(gpu.InvalidOperation)
		return
	}
	switch target {
	case gpu.ArrayBuffer:
		d.arrayBuffer = h
	case gpu.ElementArrayBuffer:
		if va := d.vertexArrays[d.vertexArray]; va != nil {
			va.elements = h
		} else {
			d.elementBuffer = h
		}
	default:
		d.fail(gpu.InvalidEnum)
	}
}

func (d *Device) boundBuffer(target gpu.Enum) (*buffer, bool) {
	switch target {
	case gpu.ArrayBuffer:
		return d.buffers[d.arrayBuffer], true
	case gpu.ElementArrayBuffer:
		return d.buffers[d.elementBinding()], true
	}
	return nil, false
}

// elementBinding returns the element array buffer of the bound vertex
// array, or of the context when none is bound.
func (d *Device) elementBinding() uint32 {
	if va := d.vertexArrays[d.vertexArray]; va != nil {
		return va.elements
	}
	return d.elementBuffer
}

func (d *Device) BufferData(target gpu.Enum, data []byte, usage gpu.Enum) {
	if !d.begin("BufferData") {
		return
	}
	b, ok := d.boundBuffer(target)
	if !ok {
		d.fail(gpu.InvalidEnum)
		return
	}
	if b == nil {
		d.fail(gpu.InvalidOperation)
		return
	}
	b.data = append([]byte(nil), data...)
	b.usage = usage
}

////////  Vertex arrays

type attrib struct {
	enabled    bool
	buffer     uint32
	size       int32
	typ        gpu.Enum
	integer    bool
	normalized bool
	stride     int32
	offset     int
}

const maxAttribs = 16

type vertexArray struct {
	attribs  [maxAttribs]attrib
	elements uint32
}

func (d *Device) GenVertexArray() uint32 {
	if !d.begin("GenVertexArray") {
		return 0
	}
	h := d.gen()
	d.vertexArrays[h] = &vertexArray{}
	return h
}

func (d *Device) DeleteVertexArray(h uint32) {
	if !d.begin("DeleteVertexArray") || h == 0 {
		return
	}
	delete(d.vertexArrays, h)
	if d.vertexArray == h {
		d.vertexArray = 0
	}
}

func (d *Device) BindVertexArray(h uint32) {
	if !d.begin("BindVertexArray") {
		return
	}
	if h != 0 && d.vertexArrays[h] == nil {
		d.fail(gpu.InvalidOperation)
		return
	}
	d.vertexArray = h
}

// attribPointer validates and records a pointer for the bound vertex array.
func (d *Device) attribPointer(loc uint32, a attrib) {
	va := d.vertexArrays[d.vertexArray]
	switch {
	case loc >= maxAttribs || a.size < 1 || a.size > 4 || a.stride < 0:
		d.fail(gpu.InvalidValue)
	case gpu.TypeSize(a.typ) == 0:
		d.fail(gpu.InvalidEnum)
	case va == nil || d.arrayBuffer == 0:
		d.fail(gpu.InvalidOperation)
	default:
		a.buffer = d.arrayBuffer
		a.enabled = va.attribs[loc].enabled
		va.attribs[loc] = a
	}
}

func (d *Device) VertexAttribPointer(loc uint32, size int32, typ gpu.Enum, normalized bool, stride int32, offset int) {
	if !d.begin("VertexAttribPointer") {
		return
	}
	d.attribPointer(loc, attrib{size: size, typ: typ, normalized: normalized, stride: stride, offset: offset})
}

func (d *Device) VertexAttribIPointer(loc uint32, size int32, typ gpu.Enum, stride int32, offset int) {
	if !d.begin("VertexAttribIPointer") {
		return
	}
	if typ == gpu.Float {
		d.fail(gpu.InvalidEnum)
		return
	}
	d.attribPointer(loc, attrib{size: size, typ: typ, integer: true, stride: stride, offset: offset})
}

func (d *Device) setAttribEnabled(op string, loc uint32, on bool) {
	if !d.begin(op) {
		return
	}
	va := d.vertexArrays[d.vertexArray]
	switch {
	case loc >= maxAttribs:
		d.fail(gpu.InvalidValue)
	case va == nil:
		d.fail(gpu.InvalidOperation)
	default:
		va.attribs[loc].enabled = on
	}
}

func (d *Device) EnableVertexAttribArray(loc uint32) {
	d.setAttribEnabled("EnableVertexAttribArray", loc, true)
}

func (d *Device) DisableVertexAttribArray(loc uint32) {
	d.setAttribEnabled("DisableVertexAttribArray", loc, false)
}

////////  Textures and renderbuffers

type texture struct {
	params map[gpu.Enum]int32
	image  *surface
	format gpu.Enum
}

func (d *Device) GenTexture() uint32 {
	if !d.begin("GenTexture") {
		return 0
	}
	h := d.gen()
	d.textures[h] = &texture{params: make(map[gpu.Enum]int32)}
	return h
}

func (d *Device) DeleteTexture(h uint32) {
	if !d.begin("DeleteTexture") || h == 0 {
		return
	}
	delete(d.textures, h)
	if d.texture2D == h {
		d.texture2D = 0
	}
	d.detach(func(a attachment) bool { return !a.renderbuffer && a.handle == h })
}

func (d *Device) BindTexture(target gpu.Enum, h uint32) {
	if !d.begin("BindTexture") {
		return
	}
	if target != gpu.Texture2D {
		d.fail(gpu.InvalidEnum)
		return
	}
	if h != 0 && d.textures[h] == nil {
		d.fail(gpu.InvalidOperation)
		return
	}
	d.texture2D = h
}

// TextureParam returns a parameter of a texture.
func (d *Device) TextureParam(h uint32, pname gpu.Enum) int32 {
	if t := d.textures[h]; t != nil {
		return t.params[pname]
	}
	return 0
}

func (d *Device) TexParameteri(target, pname gpu.Enum, param int32) {
	if !d.begin("TexParameteri") {
		return
	}
	if target != gpu.Texture2D {
		d.fail(gpu.InvalidEnum)
		return
	}
	t := d.textures[d.texture2D]
	if t == nil {
		d.fail(gpu.InvalidOperation)
		return
	}
	switch pname {
	case gpu.TextureMinFilter, gpu.TextureMagFilter:
		if p := gpu.Enum(param); p != gpu.Nearest && p != gpu.Linear {
			d.fail(gpu.InvalidEnum)
			return
		}
	case gpu.TextureWrapS, gpu.TextureWrapT:
		if p := gpu.Enum(param); p != gpu.Repeat && p != gpu.ClampToEdge {
			d.fail(gpu.InvalidEnum)
			return
		}
	default:
		d.fail(gpu.InvalidEnum)
		return
	}
	t.params[pname] = param
}

// colorFormats maps renderable internal formats to whether they hold
// unconverted integers.
var colorFormats = map[gpu.Enum]bool{
	gpu.RGBA8:   false,
	gpu.RGBA:    false,
	gpu.RGB:     false,
	gpu.RG32I:   true,
	gpu.RGBA32I: true,
}

func (d *Device) TexImage2D(target gpu.Enum, level int32, internalFormat gpu.Enum, width, height int32, format, typ gpu.Enum, pixels []byte) {
	if !d.begin("TexImage2D") {
		return
	}
	if target != gpu.Texture2D {
		d.fail(gpu.InvalidEnum)
		return
	}
	t := d.textures[d.texture2D]
	integer, known := colorFormats[internalFormat]
	switch {
	case t == nil:
		d.fail(gpu.InvalidOperation)
		return
	case !known:
		d.fail(gpu.InvalidEnum)
		return
	case level != 0 || width < 0 || height < 0:
		d.fail(gpu.InvalidValue)
		return
	case integer != isIntegerFormat(format):
		d.fail(gpu.InvalidOperation)
		return
	}
	img := newSurface(int(width), int(height), integer, false)
	if pixels != nil {
		if !img.load(pixels, format, typ) {
			d.fail(gpu.InvalidOperation)
			return
		}
	}
	t.image = img
	t.format = internalFormat
}

// renderbuffer only supports depth formats; it stores the depth plane.
type renderbuffer struct {
	format        gpu.Enum
	width, height int
	allocated     bool
	depth         []float32
}

func (d *Device) GenRenderbuffer() uint32 {
	if !d.begin("GenRenderbuffer") {
		return 0
	}
	h := d.gen()
	d.renderbuffers[h] = &renderbuffer{}
	return h
}

func (d *Device) DeleteRenderbuffer(h uint32) {
	if !d.begin("DeleteRenderbuffer") || h == 0 {
		return
	}
	delete(d.renderbuffers, h)
	if d.renderbuffer == h {
		d.renderbuffer = 0
	}
	d.detach(func(a attachment) bool { return a.renderbuffer && a.handle == h })
}

func (d *Device) BindRenderbuffer(target gpu.Enum, h uint32) {
	if !d.begin("BindRenderbuffer") {
		return
	}
	if target != gpu.RenderbufferTarget {
		d.fail(gpu.InvalidEnum)
		return
	}
	if h != 0 && d.renderbuffers[h] == nil {
		d.fail(gpu.InvalidOperation)
		return
	}
	d.renderbuffer = h
}

func (d *Device) RenderbufferStorage(target, internalFormat gpu.Enum, width, height int32) {
	if !d.begin("RenderbufferStorage") {
		return
	}
	rb := d.renderbuffers[d.renderbuffer]
	switch {
	case target != gpu.RenderbufferTarget:
		d.fail(gpu.InvalidEnum)
	case rb == nil:
		d.fail(gpu.InvalidOperation)
	case width < 0 || height < 0:
		d.fail(gpu.InvalidValue)
	case internalFormat != gpu.Depth24Stencil8 && internalFormat != gpu.DepthComponent24:
		d.fail(gpu.InvalidEnum)
	default:
		*rb = renderbuffer{
			format:    internalFormat,
			width:     int(width),
			height:    int(height),
			allocated: true,
			depth:     make([]float32, int(width)*int(height)),
		}
	}
}

////////  Framebuffers

type attachment struct {
	handle       uint32
	renderbuffer bool
}

type framebuffer struct {
	attachments map[gpu.Enum]attachment
	drawBuffer  gpu.Enum
	readBuffer  gpu.Enum
}

func (d *Device) GenFramebuffer() uint32 {
	if !d.begin("GenFramebuffer") {
		return 0
	}
	h := d.gen()
	d.framebuffers[h] = &framebuffer{
		attachments: make(map[gpu.Enum]attachment),
		drawBuffer:  gpu.ColorAttachment0,
		readBuffer:  gpu.ColorAttachment0,
	}
	return h
}

func (d *Device) DeleteFramebuffer(h uint32) {
	if !d.begin("DeleteFramebuffer") || h == 0 {
		return
	}
	delete(d.framebuffers, h)
	if d.drawFB == h {
		d.drawFB = 0
	}
	if d.readFB == h {
		d.readFB = 0
	}
}

// detach removes matching attachments from every framebuffer, as GL does
// for the currently bound ones when an attached object is deleted.
func (d *Device) detach(match func(attachment) bool) {
	for _, fb := range d.framebuffers {
		for pt, a := range fb.attachments {
			if match(a) {
				delete(fb.attachments, pt)
			}
		}
	}
}

func (d *Device) BindFramebuffer(target gpu.Enum, h uint32) {
	if !d.begin("BindFramebuffer") {
		return
	}
	if h != 0 && d.framebuffers[h] == nil {
		d.fail(gpu.InvalidOperation)
		return
	}
	switch target {
	case gpu.FramebufferTarget:
		d.drawFB, d.readFB = h, h
	case gpu.DrawFramebuffer:
		d.drawFB = h
	case gpu.ReadFramebuffer:
		d.readFB = h
	default:
		d.fail(gpu.InvalidEnum)
	}
}

// targetFramebuffer returns the framebuffer bound to target, and false if
// target is not a framebuffer target.
func (d *Device) targetFramebuffer(target gpu.Enum) (uint32, bool) {
	switch target {
	case gpu.FramebufferTarget, gpu.DrawFramebuffer:
		return d.drawFB, true
	case gpu.ReadFramebuffer:
		return d.readFB, true
	}
	return 0, false
}

func validAttachment(pt gpu.Enum) bool {
	switch pt {
	case gpu.ColorAttachment0, gpu.DepthAttachment, gpu.StencilAttachment, gpu.DepthStencilAttachment:
		return true
	}
	return false
}

func (d *Device) FramebufferTexture2D(target, pt, texTarget gpu.Enum, tex uint32, level int32) {
	if !d.begin("FramebufferTexture2D") {
		return
	}
	h, ok := d.targetFramebuffer(target)
	switch {
	case !ok || !validAttachment(pt) || texTarget != gpu.Texture2D:
		d.fail(gpu.InvalidEnum)
	case h == 0 || (tex != 0 && d.textures[tex] == nil):
		d.fail(gpu.InvalidOperation)
	case level != 0:
		d.fail(gpu.InvalidValue)
	case tex == 0:
		delete(d.framebuffers[h].attachments, pt)
	default:
		d.framebuffers[h].attachments[pt] = attachment{handle: tex}
	}
}

func (d *Device) FramebufferRenderbuffer(target, pt, rbTarget gpu.Enum, rb uint32) {
	if !d.begin("FramebufferRenderbuffer") {
		return
	}
	h, ok := d.targetFramebuffer(target)
	switch {
	case !ok || !validAttachment(pt) || rbTarget != gpu.RenderbufferTarget:
		d.fail(gpu.InvalidEnum)
	case h == 0 || (rb != 0 && d.renderbuffers[rb] == nil):
		d.fail(gpu.InvalidOperation)
	case rb == 0:
		delete(d.framebuffers[h].attachments, pt)
	default:
		d.framebuffers[h].attachments[pt] = attachment{handle: rb, renderbuffer: true}
	}
}

// status computes the completeness of a framebuffer object.
func (d *Device) status(fb *framebuffer) gpu.Enum {
	if len(fb.attachments) == 0 {
		return gpu.FramebufferNoAttachments
	}
	w, h := -1, -1
	for pt, a := range fb.attachments {
		var aw, ah int
		if a.renderbuffer {
			rb := d.renderbuffers[a.handle]
			if rb == nil || !rb.allocated || pt == gpu.ColorAttachment0 {
				return gpu.FramebufferIncomplete
			}
			aw, ah = rb.width, rb.height
		} else {
			t := d.textures[a.handle]
			if t == nil || t.image == nil || pt != gpu.ColorAttachment0 {
				return gpu.FramebufferIncomplete
			}
			aw, ah = t.image.width, t.image.height
		}
		if aw == 0 || ah == 0 {
			return gpu.FramebufferIncomplete
		}
		if w >= 0 && (aw != w || ah != h) {
			return gpu.FramebufferUnsupported
		}
		w, h = aw, ah
	}
	return gpu.FramebufferComplete
}

func (d *Device) CheckFramebufferStatus(target gpu.Enum) gpu.Enum {
	if !d.begin("CheckFramebufferStatus") {
		return 0
	}
	h, ok := d.targetFramebuffer(target)
	if !ok {
		d.fail(gpu.InvalidEnum)
		return 0
	}
	if h == 0 {
		return gpu.FramebufferComplete
	}
	return d.status(d.framebuffers[h])
}

func (d *Device) DrawBuffer(mode gpu.Enum) {
	if !d.begin("DrawBuffer") {
		return
	}
	if d.drawFB == 0 {
		return
	}
	if mode != gpu.None && mode != gpu.ColorAttachment0 {
		d.fail(gpu.InvalidOperation)
		return
	}
	d.framebuffers[d.drawFB].drawBuffer = mode
}

func (d *Device) ReadBuffer(mode gpu.Enum) {
	if !d.begin("ReadBuffer") {
		return
	}
	if d.readFB == 0 {
		return
	}
	if mode != gpu.None && mode != gpu.ColorAttachment0 {
		d.fail(gpu.InvalidOperation)
		return
	}
	d.framebuffers[d.readFB].readBuffer = mode
}

// FramebufferBuffers returns the draw and read buffer selection of a
// framebuffer object.
func (d *Device) FramebufferBuffers(h uint32) (draw, read gpu.Enum) {
	if fb := d.framebuffers[h]; fb != nil {
		return fb.drawBuffer, fb.readBuffer
	}
	return gpu.None, gpu.None
}

////////  Fixed-function state

func (d *Device) knownCap(c gpu.Enum) bool {
	switch c {
	case gpu.PointSmooth:
		return d.compat
	case gpu.LineSmooth, gpu.PolygonSmooth, gpu.CullFace, gpu.DepthTest, gpu.Blend:
		return true
	}
	return false
}

func (d *Device) Enable(c gpu.Enum) {
	if !d.begin("Enable") {
		return
	}
	if !d.knownCap(c) {
		d.fail(gpu.InvalidEnum)
		return
	}
	d.caps[c] = true
}

func (d *Device) Disable(c gpu.Enum) {
	if !d.begin("Disable") {
		return
	}
	if !d.knownCap(c) {
		d.fail(gpu.InvalidEnum)
		return
	}
	d.caps[c] = false
}

func (d *Device) Hint(target, mode gpu.Enum) {
	if !d.begin("Hint") {
		return
	}
	switch {
	case target == gpu.LineSmoothHint, target == gpu.PolygonSmoothHint:
	case target == gpu.PointSmoothHint && d.compat:
	default:
		d.fail(gpu.InvalidEnum)
		return
	}
	if mode != gpu.DontCare && mode != gpu.Fastest && mode != gpu.Nicest {
		d.fail(gpu.InvalidEnum)
		return
	}
	d.hints[target] = mode
}

func (d *Device) BlendFunc(src, dst gpu.Enum) {
	if d.begin("BlendFunc") {
		d.blend = [2]gpu.Enum{src, dst}
	}
}

func (d *Device) DepthFunc(fn gpu.Enum) {
	if !d.begin("DepthFunc") {
		return
	}
	if fn < 0x0200 || fn > 0x0207 {
		d.fail(gpu.InvalidEnum)
		return
	}
	d.depthFunc = fn
}

func (d *Device) PointSize(size float32) {
	if !d.begin("PointSize") {
		return
	}
	if size <= 0 {
		d.fail(gpu.InvalidValue)
		return
	}
	d.pointSize = size
}

func (d *Device) LineWidth(width float32) {
	if !d.begin("LineWidth") {
		return
	}
	if width <= 0 {
		d.fail(gpu.InvalidValue)
		return
	}
	d.lineWidth = width
}

func (d *Device) PolygonMode(face, mode gpu.Enum) {
	if !d.begin("PolygonMode") {
		return
	}
	if face != gpu.FrontAndBack || (mode != gpu.Point && mode != gpu.Line && mode != gpu.Fill) {
		d.fail(gpu.InvalidEnum)
		return
	}
	d.polygonMode = mode
}

func (d *Device) ClearColor(r, g, b, a float32) {
	if d.begin("ClearColor") {
		d.clearColor = [4]float32{r, g, b, a}
	}
}

func (d *Device) ClearDepth(depth float64) {
	if d.begin("ClearDepth") {
		d.clearDepth = min(max(depth, 0), 1)
	}
}

func (d *Device) Viewport(x, y, width, height int32) {
	if !d.begin("Viewport") {
		return
	}
	if width < 0 || height < 0 {
		d.fail(gpu.InvalidValue)
		return
	}
	d.viewport = [4]int32{x, y, width, height}
}

// GetViewport returns x, y, width and height of the viewport, like
// glGetIntegerv(GL_VIEWPORT).
func (d *Device) GetViewport() [4]int32 {
	d.begin("GetViewport")
	return d.viewport
}

func (d *Device) Finish() {
	d.begin("Finish")
}
