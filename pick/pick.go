// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pick finds the geometry range under a pixel by rendering range
// names into an off-screen integer buffer and reading one pixel back.
package pick

import (
	"errors"
	"fmt"
	"image"

	"cogentcore.org/glview/geom"
	"cogentcore.org/glview/gpu"
	"cogentcore.org/glview/render"
	"github.com/go-gl/mathgl/mgl32"
)

// Hit is the result of a successful pick.
type Hit struct {
	Model    *render.Model
	Geometry *geom.Geometry
	Range    geom.Range

	// X and Y are the picked pixel, top-left origin.
	X, Y int
}

// targets is the off-screen framebuffer with its attachments.
type targets struct {
	fb    *gpu.Framebuffer
	color *gpu.Texture
	depth *gpu.Renderbuffer
}

func newTargets(gc *gpu.Context, width, height int) (t *targets, err error) {
	t = &targets{}
	defer func() {
		if err != nil {
			t.release()
			t = nil
		}
	}()
	if t.fb, err = gpu.NewFramebuffer(gc); err != nil {
		return
	}
	if t.color, err = gpu.NewTexture2D(gc, width, height, gpu.RG32IFormat, nil); err != nil {
		return
	}
	if err = t.color.SetMinFilter(gpu.Nearest); err != nil {
		return
	}
	if err = t.color.SetMagFilter(gpu.Nearest); err != nil {
		return
	}
	if t.depth, err = gpu.NewRenderbuffer(gc, gpu.Depth24Stencil8, width, height); err != nil {
		return
	}
	if err = t.fb.AttachTexture(gpu.ColorAttachment0, t.color); err != nil {
		return
	}
	if err = t.fb.AttachRenderbuffer(gpu.DepthStencilAttachment, t.depth); err != nil {
		return
	}
	err = t.fb.CheckComplete()
	return
}

func (t *targets) release() {
	if t == nil {
		return
	}
	if t.fb != nil {
		t.fb.Release()
	}
	if t.color != nil {
		t.color.Release()
	}
	if t.depth != nil {
		t.depth.Release()
	}
}

// Picker renders models into its own framebuffer with the picking program
// of the render context it was created for. A picker with a zero width or
// height has no framebuffer and never hits.
type Picker struct {
	rc       *render.Context
	program  *render.Program
	targets  *targets
	width    int
	height   int
	released bool
}

// New creates a picker with a width×height framebuffer.
func New(rc *render.Context, width, height int) (*Picker, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("pick: invalid size %dx%d", width, height)
	}
	prog, err := render.NewProgram(rc.GPU(), render.PickingVertexShader, render.PickingFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("pick: building picking program: %w", err)
	}
	p := &Picker{rc: rc, program: prog}
	if err := p.Resize(width, height); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

// Size returns the framebuffer size.
func (p *Picker) Size() (width, height int) { return p.width, p.height }

// Program returns the picking program.
func (p *Picker) Program() *render.Program { return p.program }

// Resize recreates the framebuffer at the new size. The old one is only
// released once the new one is complete, so on failure the picker keeps
// working at the old size.
func (p *Picker) Resize(width, height int) error {
	if p.released {
		return fmt.Errorf("picker: %w", gpu.ErrDisposed)
	}
	if width < 0 || height < 0 {
		return fmt.Errorf("pick: invalid size %dx%d", width, height)
	}
	if p.targets != nil && width == p.width && height == p.height {
		return nil
	}
	var t *targets
	if width > 0 && height > 0 {
		var err error
		if t, err = newTargets(p.rc.GPU(), width, height); err != nil {
			return fmt.Errorf("pick: creating %dx%d framebuffer: %w", width, height, err)
		}
	}
	p.targets.release()
	p.targets, p.width, p.height = t, width, height
	return nil
}

// TryPickRange renders models and returns the range whose name covers the
// pixel (x, y), counted from the top left. Models and their ranges are
// scanned in order and the first range with the picked name wins. A pixel
// outside the framebuffer or showing background is a miss with a nil error.
func (p *Picker) TryPickRange(models []*render.Model, x, y int) (Hit, bool, error) {
	if p.released {
		return Hit{}, false, fmt.Errorf("picker: %w", gpu.ErrDisposed)
	}
	if p.targets == nil || x < 0 || y < 0 || x >= p.width || y >= p.height {
		return Hit{}, false, nil
	}
	if err := p.renderNames(models); err != nil {
		return Hit{}, false, fmt.Errorf("pick: rendering names: %w", err)
	}
	name, ok, err := p.readName(x, p.height-1-y)
	if err != nil || !ok {
		return Hit{}, false, err
	}
	for _, m := range models {
		if m.Geometry == nil {
			continue
		}
		if r, found := m.Geometry.RangeByName(name); found {
			return Hit{Model: m, Geometry: m.Geometry, Range: r, X: x, Y: y}, true, nil
		}
	}
	return Hit{}, false, nil
}

func (p *Picker) renderNames(models []*render.Model) error {
	rc, gc, fb := p.rc, p.rc.GPU(), p.targets.fb
	return render.WithOverrides(func(o *render.Overrides) error {
		for _, push := range []func() error{
			func() error { return o.Push(rc.OverrideProgram(p.program)) },
			func() error { return o.Push(gc.OverrideEnabled(gpu.Blend, false)) },
			func() error { return o.Push(gc.OverrideEnabled(gpu.PolygonSmooth, false)) },
			func() error { return o.Push(gc.OverrideEnabled(gpu.DepthTest, true)) },
			func() error { return o.Push(rc.OverridePointSmooth(false)) },
			func() error { return o.Push(rc.OverrideLineSmooth(false)) },
			func() error { return o.Push(rc.OverrideClearColor(mgl32.Vec4{})) },
			func() error { return o.Push(gc.OverrideViewport(image.Rect(0, 0, p.width, p.height))) },
		} {
			if err := push(); err != nil {
				return err
			}
		}
		unbind, err := fb.Bind()
		if err != nil {
			return err
		}
		o.Push(func() error { unbind(); return nil }, nil)
		if err := fb.SetDrawBuffer(gpu.ColorAttachment0); err != nil {
			return err
		}
		o.Push(func() error { return fb.SetDrawBuffer(gpu.None) }, nil)
		if err := rc.ClearBuffers(true, true, false); err != nil {
			return err
		}
		return rc.Render(models...)
	})
}

// readName reads the name at device pixel (x, y); ok is false for
// background.
func (p *Picker) readName(x, y int) (name int32, ok bool, err error) {
	fb := p.targets.fb
	if err := fb.SetReadBuffer(gpu.ColorAttachment0); err != nil {
		return 0, false, err
	}
	defer func() {
		err = errors.Join(err, fb.SetReadBuffer(gpu.None))
	}()
	px := make([]int32, 2)
	if err := fb.ReadPixels(x, y, 1, 1, gpu.RG32IFormat, gpu.Bytes(px)); err != nil {
		return 0, false, err
	}
	return px[0], px[1] != 0, nil
}

// Release deletes the program and framebuffer. It is safe to call more
// than once.
func (p *Picker) Release() {
	p.released = true
	p.targets.release()
	p.targets = nil
	p.program.Release()
}
