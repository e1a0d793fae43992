// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command glview shows a demo scene of points, lines and a solid in an
// OpenGL window. Drag with the left mouse button to orbit, with the right
// one to pan, and scroll to zoom. The range under the cursor is shown in
// the window title.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"cogentcore.org/glview/camera"
	"cogentcore.org/glview/config"
	"cogentcore.org/glview/gpu"
	"cogentcore.org/glview/gpu/gldriver"
	"cogentcore.org/glview/viewport"
)

func init() {
	// GL calls must all come from the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "settings file (.toml, .yaml or .yml), reloaded on change")
	debug := flag.Bool("debug", false, "log at debug level regardless of the settings file")
	flag.Parse()

	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gpu.SetLogger(logger)

	if err := run(*configPath, *debug, level); err != nil {
		logger.Error("glview", "err", err)
		os.Exit(1)
	}
}

type reload struct {
	cfg *config.Viewer
	err error
}

func run(configPath string, debug bool, level *slog.LevelVar) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	setLevel := func(cfg *config.Viewer) {
		l, _ := cfg.Level()
		if debug {
			l = slog.LevelDebug
		}
		level.Set(l)
	}
	setLevel(cfg)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glview: initializing glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	// Wide lines are not available in a forward-compatible core profile.
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("glview: creating window: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	dev, err := gldriver.Init()
	if err != nil {
		return err
	}
	gpu.Logger().Info("glview: context ready", "version", dev.Version())
	gc := gpu.NewContext(dev)

	cam := camera.NewPerspective()
	width, height := window.GetFramebufferSize()
	vp, err := viewport.New(gc, cam, width, height)
	if err != nil {
		return err
	}
	defer vp.Release()

	sc, err := buildScene(gc)
	if err != nil {
		return err
	}
	defer sc.release()

	v := &viewer{window: window, vp: vp, scene: sc, title: cfg.Window.Title}
	if err := v.apply(cfg); err != nil {
		return err
	}
	v.connect()

	reloads := make(chan reload, 1)
	if configPath != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		err := config.Watch(ctx, configPath, func(cfg *config.Viewer, err error) {
			select {
			case reloads <- reload{cfg, err}:
			default:
			}
			glfw.PostEmptyEvent()
		})
		if err != nil {
			return err
		}
	}

	for !window.ShouldClose() {
		if vp.NeedsPaint() {
			if err := vp.Paint(sc.models); err != nil {
				return err
			}
			window.SwapBuffers()
		}
		glfw.WaitEvents()
		select {
		case r := <-reloads:
			if r.err != nil {
				gpu.Logger().Warn("glview: keeping previous settings", "err", r.err)
				break
			}
			setLevel(r.cfg)
			if err := v.apply(r.cfg); err != nil {
				gpu.Logger().Warn("glview: applying settings", "err", err)
			}
		default:
		}
	}
	return nil
}

// applyCamera moves cam to the configured position, looking at target,
// and sets its projection. The clip planes are set in the order that
// keeps near below far in between.
func applyCamera(cam *camera.Camera, c config.Camera) error {
	cam.SetPosition(c.Position)
	errs := []error{cam.LookAt(c.Target), cam.SetFieldOfView(c.FieldOfView)}
	if c.Near < cam.FarPlane() {
		errs = append(errs, cam.SetNearPlane(c.Near), cam.SetFarPlane(c.Far))
	} else {
		errs = append(errs, cam.SetFarPlane(c.Far), cam.SetNearPlane(c.Near))
	}
	return errors.Join(errs...)
}
