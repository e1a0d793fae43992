// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the settings of the glview viewer and their
// loading from TOML and YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for files that are neither TOML nor YAML.
var ErrUnknownFormat = errors.New("config: unknown file format")

// Viewer is the main config struct that contains all of the settings of
// the viewer.
type Viewer struct {

	// the window the scene is shown in
	Window Window `toml:"window" yaml:"window"`

	// the initial camera
	Camera Camera `toml:"camera" yaml:"camera"`

	// the render state defaults
	Render Render `toml:"render" yaml:"render"`

	// the minimum log level: debug, info, warn or error
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

type Window struct {

	// the initial width in screen coordinates
	Width int `toml:"width" yaml:"width"`

	// the initial height in screen coordinates
	Height int `toml:"height" yaml:"height"`

	// the window title
	Title string `toml:"title" yaml:"title"`
}

type Camera struct {

	// the eye position
	Position mgl32.Vec3 `toml:"position" yaml:"position"`

	// the point looked at
	Target mgl32.Vec3 `toml:"target" yaml:"target"`

	// the vertical field of view in degrees
	FieldOfView float32 `toml:"field_of_view" yaml:"field_of_view"`

	// the near clipping distance
	Near float32 `toml:"near" yaml:"near"`

	// the far clipping distance
	Far float32 `toml:"far" yaml:"far"`
}

type Render struct {

	// the RGBA color the frame is cleared to
	ClearColor mgl32.Vec4 `toml:"clear_color" yaml:"clear_color"`

	// the default point diameter in pixels
	PointSize float32 `toml:"point_size" yaml:"point_size"`

	// the default line width in pixels
	LineWidth float32 `toml:"line_width" yaml:"line_width"`

	// the direction light travels in when lighting meshes
	LightDirection mgl32.Vec3 `toml:"light_direction" yaml:"light_direction"`

	// whether meshes are drawn as wireframes
	Wireframe bool `toml:"wireframe" yaml:"wireframe"`

	// whether lines are antialiased
	LineSmooth bool `toml:"line_smooth" yaml:"line_smooth"`
}

// Default returns the settings used when no file is given.
func Default() *Viewer {
	return &Viewer{
		Window: Window{Width: 1024, Height: 768, Title: "glview"},
		Camera: Camera{
			Position:    mgl32.Vec3{5, 5, 5},
			FieldOfView: 45,
			Near:        1e-3,
			Far:         1e3,
		},
		Render: Render{
			ClearColor:     mgl32.Vec4{1, 1, 1, 1},
			PointSize:      1,
			LineWidth:      1,
			LightDirection: mgl32.Vec3{0, -1, 0},
		},
		LogLevel: "info",
	}
}

// Level returns the parsed log level.
func (v *Viewer) Level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(v.LogLevel))
	return l, err
}

// Validate returns an error describing every invalid setting.
func (v *Viewer) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("config: "+format, args...))
	}
	if v.Window.Width <= 0 || v.Window.Height <= 0 {
		add("window size %dx%d must be positive", v.Window.Width, v.Window.Height)
	}
	c := v.Camera
	if c.FieldOfView <= 0 || c.FieldOfView >= 180 {
		add("field of view %g must be in (0, 180)", c.FieldOfView)
	}
	if c.Near <= 0 || c.Far <= c.Near {
		add("clip range [%g, %g] must satisfy 0 < near < far", c.Near, c.Far)
	}
	if c.Position.ApproxEqual(c.Target) {
		add("camera position and target coincide at %v", c.Position)
	}
	if v.Render.PointSize <= 0 {
		add("point size %g must be positive", v.Render.PointSize)
	}
	if v.Render.LineWidth <= 0 {
		add("line width %g must be positive", v.Render.LineWidth)
	}
	if v.Render.LightDirection.Len() == 0 {
		add("light direction must not be zero")
	}
	for i, ch := range v.Render.ClearColor {
		if ch < 0 || ch > 1 {
			add("clear color channel %d is %g, not in [0, 1]", i, ch)
		}
	}
	if _, err := v.Level(); err != nil {
		add("log level: %w", err)
	}
	return errors.Join(errs...)
}

type format int

const (
	tomlFormat format = iota
	yamlFormat
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return tomlFormat, nil
	case ".yaml", ".yml":
		return yamlFormat, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Load reads the file at path on top of [Default] and validates the
// result. The format is chosen by extension; unknown keys are errors.
func Load(path string) (*Viewer, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v := Default()
	if err := decode(f, b, v); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

func decode(f format, b []byte, v *Viewer) error {
	switch f {
	case tomlFormat:
		d := toml.NewDecoder(bytes.NewReader(b))
		d.DisallowUnknownFields()
		return d.Decode(v)
	default:
		d := yaml.NewDecoder(bytes.NewReader(b))
		d.KnownFields(true)
		if err := d.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
}

// Save writes v to path in the format given by its extension.
func (v *Viewer) Save(path string) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	var b []byte
	if f == tomlFormat {
		b, err = toml.Marshal(v)
	} else {
		b, err = yaml.Marshal(v)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
