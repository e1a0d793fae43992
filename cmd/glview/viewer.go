// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"cogentcore.org/glview/config"
	"cogentcore.org/glview/gpu"
	"cogentcore.org/glview/viewport"
)

// Degrees of orbit per dragged screen pixel.
const orbitSpeed = 0.4

type viewer struct {
	window *glfw.Window
	vp     *viewport.Viewport
	scene  *scene
	title  string

	// target is the point orbited around.
	target mgl32.Vec3

	dragging glfw.MouseButton
	dragged  bool
	lastX    float64
	lastY    float64
	hovered  int32
	hovering bool
}

// apply brings the camera, render state and models in line with cfg.
func (v *viewer) apply(cfg *config.Viewer) error {
	v.target = cfg.Camera.Target
	v.title = cfg.Window.Title
	rc := v.vp.RenderContext()
	r := cfg.Render
	err := errors.Join(
		applyCamera(v.vp.Camera(), cfg.Camera),
		rc.SetClearColor(r.ClearColor),
		rc.SetLineSmooth(r.LineSmooth),
		rc.SetLightDirection(r.LightDirection),
	)
	v.scene.style(r)
	v.window.SetTitle(v.title)
	v.vp.Invalidate()
	return err
}

func (v *viewer) connect() {
	w := v.window
	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if err := v.vp.Resize(width, height); err != nil {
			gpu.Logger().Warn("glview: resize", "width", width, "height", height, "err", err)
		}
	})
	w.SetRefreshCallback(func(*glfw.Window) { v.vp.Invalidate() })
	w.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			v.dragging, v.dragged = button, true
			v.lastX, v.lastY = w.GetCursorPos()
		case glfw.Release:
			v.dragged = false
		}
	})
	w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if v.dragged {
			v.drag(x-v.lastX, y-v.lastY)
			v.lastX, v.lastY = x, y
			return
		}
		v.hover(x, y)
	})
	w.SetScrollCallback(func(_ *glfw.Window, _, dy float64) {
		cam := v.vp.Camera()
		dist := cam.Position().Sub(v.target).Len()
		step := float32(dy) * dist * 0.1
		if dist-step < 0.1 {
			return
		}
		cam.ZoomIn(step)
	})
	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
}

func (v *viewer) drag(dx, dy float64) {
	cam := v.vp.Camera()
	switch v.dragging {
	case glfw.MouseButtonLeft:
		if err := cam.Orbit(v.target, float32(-dx)*orbitSpeed, float32(-dy)*orbitSpeed); err != nil {
			gpu.Logger().Warn("glview: orbit", "err", err)
		}
	case glfw.MouseButtonRight:
		_, height := v.window.GetSize()
		if height == 0 {
			return
		}
		// Scale so the scene at the target distance follows the cursor.
		scale := 2 * cam.Position().Sub(v.target).Len() *
			math32.Tan(mgl32.DegToRad(cam.FieldOfView())/2) / float32(height)
		before := cam.Position()
		cam.Pan(float32(dx)*scale, float32(-dy)*scale)
		v.target = v.target.Add(cam.Position().Sub(before))
	}
}

// hover picks at screen position (x, y) and shows the hit in the title.
func (v *viewer) hover(x, y float64) {
	ww, _ := v.window.GetSize()
	fw, _ := v.window.GetFramebufferSize()
	scale := 1.0
	if ww > 0 {
		scale = float64(fw) / float64(ww)
	}
	hit, ok, err := v.vp.PickAt(v.scene.models, int(x*scale), int(y*scale))
	if err != nil {
		gpu.Logger().Warn("glview: pick", "err", err)
		return
	}
	if ok == v.hovering && (!ok || hit.Range.Name == v.hovered) {
		return
	}
	v.hovering, v.hovered = ok, hit.Range.Name
	if !ok {
		v.window.SetTitle(v.title)
		return
	}
	gpu.Logger().Debug("glview: hover", "kind", hit.Model.Kind, "name", hit.Range.Name, "x", hit.X, "y", hit.Y)
	v.window.SetTitle(fmt.Sprintf("%s: %v %d", v.title, v.scene.label(hit.Model), hit.Range.Name))
}
