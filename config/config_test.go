// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	v := Default()
	require.NoError(t, v.Validate())
	l, err := v.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)
}

func TestLoadTOML(t *testing.T) {
	path := write(t, "viewer.toml", `
log_level = "debug"

[window]
width = 640
title = "parts"

[camera]
position = [0.0, 2.0, 10.0]

[render]
clear_color = [0.0, 0.0, 0.0, 1.0]
line_smooth = true
`)
	v, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, v.Window.Width)
	assert.Equal(t, 768, v.Window.Height)
	assert.Equal(t, "parts", v.Window.Title)
	assert.Equal(t, mgl32.Vec3{0, 2, 10}, v.Camera.Position)
	assert.Equal(t, float32(45), v.Camera.FieldOfView)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, v.Render.ClearColor)
	assert.True(t, v.Render.LineSmooth)
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, v.Render.LightDirection)
	assert.Equal(t, "debug", v.LogLevel)
}

func TestLoadYAML(t *testing.T) {
	path := write(t, "viewer.yml", `
window:
  height: 480
camera:
  target: [1, 0, 0]
  far: 50
render:
  point_size: 4
  wireframe: true
  light_direction: [0, 0, -1]
`)
	v, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, v.Window.Width)
	assert.Equal(t, 480, v.Window.Height)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, v.Camera.Target)
	assert.Equal(t, float32(50), v.Camera.Far)
	assert.Equal(t, float32(4), v.Render.PointSize)
	assert.True(t, v.Render.Wireframe)
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, v.Render.LightDirection)
}

func TestLoadEmptyYAML(t *testing.T) {
	v, err := Load(write(t, "viewer.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), v)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(write(t, "viewer.json", "{}"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(write(t, "viewer.toml", "[window]\ndepth = 3\n"))
	assert.Error(t, err)

	_, err = Load(write(t, "viewer.yaml", "window:\n  depth: 3\n"))
	assert.Error(t, err)

	_, err = Load(write(t, "viewer.toml", "[camera]\nnear = 10.0\nfar = 1.0\n"))
	assert.ErrorContains(t, err, "clip range")
}

func TestValidate(t *testing.T) {
	v := Default()
	v.Window.Width = 0
	v.Camera.FieldOfView = 180
	v.Camera.Target = v.Camera.Position
	v.Render.PointSize = 0
	v.Render.LineWidth = -1
	v.Render.ClearColor[2] = 2
	v.Render.LightDirection = mgl32.Vec3{}
	v.LogLevel = "loud"
	err := v.Validate()
	require.Error(t, err)
	for _, s := range []string{"window size", "field of view", "coincide", "point size", "line width", "channel 2", "light direction", "log level"} {
		assert.ErrorContains(t, err, s)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	v := Default()
	v.Window.Title = "round trip"
	v.Camera.Target = mgl32.Vec3{0, 1, 0}
	v.Render.LineSmooth = true
	for _, name := range []string{"viewer.toml", "viewer.yaml"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, v.Save(path))
		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, v, got, name)
	}
	assert.ErrorIs(t, v.Save(filepath.Join(t.TempDir(), "viewer.ini")), ErrUnknownFormat)
}

func TestWatch(t *testing.T) {
	path := write(t, "viewer.toml", "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Viewer, 16)
	require.NoError(t, Watch(ctx, path, func(v *Viewer, err error) {
		if err == nil {
			got <- v
		}
	}))
	require.NoError(t, os.WriteFile(path, []byte("[window]\nwidth = 320\n"), 0o644))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case v := <-got:
			if v.Window.Width == 320 {
				return
			}
		case <-timeout:
			t.Fatal("no reload after write")
		}
	}
}

func TestWatchMissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "viewer.toml"), func(*Viewer, error) {})
	assert.Error(t, err)
}
