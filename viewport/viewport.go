// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viewport ties a camera, a render context and a picker to one
// drawing surface.
package viewport

import (
	"fmt"
	"image"

	"cogentcore.org/glview/camera"
	"cogentcore.org/glview/gpu"
	"cogentcore.org/glview/pick"
	"cogentcore.org/glview/render"
)

// Viewport renders and picks models for a surface of a given size, as
// seen by a camera. The host owns the GL context and calls Resize, Paint
// and PickAt with it current.
type Viewport struct {
	rc     *render.Context
	picker *pick.Picker
	cam    *camera.Camera

	unsubscribe []func()
	width       int
	height      int
	needsPaint  bool
}

// New creates a viewport of the given size on gc, following cam.
func New(gc *gpu.Context, cam *camera.Camera, width, height int) (vp *Viewport, err error) {
	rc, err := render.NewContext(gc)
	if err != nil {
		return nil, err
	}
	vp = &Viewport{rc: rc, cam: cam}
	defer func() {
		if err != nil {
			vp.Release()
			vp = nil
		}
	}()
	if vp.picker, err = pick.New(rc, 0, 0); err != nil {
		return
	}
	detach, err := rc.AttachCamera(cam)
	if err != nil {
		return
	}
	vp.unsubscribe = append(vp.unsubscribe, detach, cam.Subscribe(func(camera.Change) {
		vp.needsPaint = true
	}))
	err = vp.Resize(width, height)
	return
}

// RenderContext returns the render context.
func (vp *Viewport) RenderContext() *render.Context { return vp.rc }

// Picker returns the picker.
func (vp *Viewport) Picker() *pick.Picker { return vp.picker }

// Camera returns the camera.
func (vp *Viewport) Camera() *camera.Camera { return vp.cam }

// Size returns the surface size.
func (vp *Viewport) Size() (width, height int) { return vp.width, vp.height }

// NeedsPaint reports whether the camera or size changed, or Invalidate
// was called, since the last Paint.
func (vp *Viewport) NeedsPaint() bool { return vp.needsPaint }

// Invalidate requests a repaint, for instance after the model list changed.
func (vp *Viewport) Invalidate() { vp.needsPaint = true }

// Resize sets the GL viewport, the camera aspect ratio when it is a
// perspective camera, and the picker size.
func (vp *Viewport) Resize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("viewport: invalid size %dx%d", width, height)
	}
	if err := vp.rc.SetViewport(image.Rect(0, 0, width, height)); err != nil {
		return err
	}
	if vp.cam.Kind() == camera.Perspective && width > 0 && height > 0 {
		if err := vp.cam.SetAspectRatio(float32(width) / float32(height)); err != nil {
			return err
		}
	}
	if err := vp.picker.Resize(width, height); err != nil {
		return err
	}
	vp.width, vp.height = width, height
	vp.needsPaint = true
	return nil
}

// Paint clears color and depth and renders models.
func (vp *Viewport) Paint(models []*render.Model) error {
	if err := vp.rc.ClearBuffers(true, true, false); err != nil {
		return err
	}
	if err := vp.rc.Render(models...); err != nil {
		return err
	}
	vp.needsPaint = false
	return nil
}

// PickAt returns the range under pixel (x, y), counted from the top left.
func (vp *Viewport) PickAt(models []*render.Model, x, y int) (pick.Hit, bool, error) {
	return vp.picker.TryPickRange(models, x, y)
}

// Release stops following the camera and releases the picker and the
// render context. Models are owned by the caller. It is safe to call more
// than once.
func (vp *Viewport) Release() {
	for _, u := range vp.unsubscribe {
		u()
	}
	vp.unsubscribe = nil
	if vp.picker != nil {
		vp.picker.Release()
	}
	vp.rc.Release()
}

// NameGenerator hands out range names 1, 2, 3, ... so that 0 can stand
// for "no name" in application code.
type NameGenerator struct {
	last int32
}

// Next returns the next name.
func (g *NameGenerator) Next() int32 {
	g.last++
	return g.last
}
