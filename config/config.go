// seehuhn.de/go/rastervis - a raster algorithm visualizer
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config reads the visualizer settings from TOML.
//
// A configuration file may set any subset of the keys; everything else
// keeps the value from Default. Example:
//
//	[canvas]
//	width = 800
//	height = 560
//
//	[view]
//	scale = 20
//	origin = "center"
//
//	[playback]
//	step_delay = "120ms"
//	arrows = true
//
//	[input]
//	algorithm = "bresenham_line"
//	snap = true
//	line = { x1 = 0, y1 = 0, x2 = 10, y2 = 6 }
//	circle = { xc = 0, yc = 0, r = 8 }
//
//	[render]
//	backend = "raster"
package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/BurntSushi/toml"

	"seehuhn.de/go/rastervis/playback"
	"seehuhn.de/go/rastervis/source"
	"seehuhn.de/go/rastervis/viewport"
)

// ErrInvalid is returned for configurations with out-of-range values.
var ErrInvalid = errors.New("invalid configuration")

// Rendering backends.
const (
	BackendRaster = "raster"
	BackendGG     = "gg"
)

// Limits for the canvas size, in pixels.
const (
	MinCanvas = 16
	MaxCanvas = 8192
)

// Config holds all settings of the visualizer.
type Config struct {
	Canvas   Canvas   `toml:"canvas"`
	View     View     `toml:"view"`
	Playback Playback `toml:"playback"`
	Input    Input    `toml:"input"`
	Render   Render   `toml:"render"`
}

// Canvas is the size of the drawing area in pixels.
type Canvas struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// View configures the initial grid mapping and the axis labels.
type View struct {
	// Scale is the initial number of pixels per grid unit.
	Scale float64 `toml:"scale"`

	// Origin is either "center" or "topleft".
	Origin string `toml:"origin"`

	// ShowZeroY labels the y tick at 0 also in centered mode.
	ShowZeroY bool `toml:"show_zero_y"`
}

// Playback configures timed stepping.
type Playback struct {
	StepDelay Duration `toml:"step_delay"`
	Arrows    bool     `toml:"arrows"`
}

// Input selects the algorithm and its initial inputs.
type Input struct {
	Algorithm string `toml:"algorithm"`
	Snap      bool   `toml:"snap"`
	Line      Line   `toml:"line"`
	Circle    Circle `toml:"circle"`
}

// Line holds the endpoints of a line, in grid units.
type Line struct {
	X1 float64 `toml:"x1"`
	Y1 float64 `toml:"y1"`
	X2 float64 `toml:"x2"`
	Y2 float64 `toml:"y2"`
}

// Circle holds the center and radius of a circle, in grid units.
type Circle struct {
	XC float64 `toml:"xc"`
	YC float64 `toml:"yc"`
	R  float64 `toml:"r"`
}

// Render selects how PNG snapshots are drawn.
type Render struct {
	// Backend is BackendRaster or BackendGG.
	Backend string `toml:"backend"`

	// Font is a TrueType file for the gg backend's labels.
	// Without a font, the gg backend draws no text.
	Font string `toml:"font"`
}

// Duration is a time.Duration which TOML decodes from strings like "120ms".
type Duration struct {
	time.Duration
}

// UnmarshalText is the method called by TOML when decoding a value.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Canvas: Canvas{Width: 800, Height: 560},
		View: View{
			Scale:  20,
			Origin: viewport.Centered.String(),
		},
		Playback: Playback{
			StepDelay: Duration{playback.DefaultStepDelay},
			Arrows:    true,
		},
		Input: Input{
			Algorithm: string(source.BresenhamLine),
			Snap:      true,
			Line:      Line{X2: 10, Y2: 6},
			Circle:    Circle{R: 8},
		},
		Render: Render{Backend: BackendRaster},
	}
}

// LoadFile reads the configuration file fileName. Keys which are not part
// of the configuration are reported as an error.
func LoadFile(fileName string) (*Config, error) {
	return load(fileName, true)
}

// Load is like LoadFile but reads the configuration from a string.
func Load(conf string) (*Config, error) {
	return load(conf, false)
}

func load(conf string, isFileName bool) (*Config, error) {
	c := Default()
	var md toml.MetaData
	var err error
	if isFileName {
		md, err = toml.DecodeFile(conf, c)
	} else {
		md, err = toml.Decode(conf, c)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("undecoded fields in configuration: %v: %w", undecoded, ErrInvalid)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that all values are in range.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format+": %w", append(args, ErrInvalid)...))
	}

	if c.Canvas.Width < MinCanvas || c.Canvas.Width > MaxCanvas ||
		c.Canvas.Height < MinCanvas || c.Canvas.Height > MaxCanvas {
		bad("canvas size %dx%d outside [%d, %d]", c.Canvas.Width, c.Canvas.Height, MinCanvas, MaxCanvas)
	}
	if s := c.View.Scale; math.IsNaN(s) || s < viewport.MinScale || s > viewport.MaxScale {
		bad("scale %g outside [%d, %d]", s, viewport.MinScale, viewport.MaxScale)
	}
	if _, err := ParseOrigin(c.View.Origin); err != nil {
		errs = append(errs, err)
	}
	if c.Playback.StepDelay.Duration <= 0 {
		bad("step delay %s is not positive", c.Playback.StepDelay.Duration)
	}
	switch source.Algorithm(c.Input.Algorithm) {
	case source.DDA, source.BresenhamLine, source.BresenhamCircle:
	default:
		bad("unknown algorithm %q", c.Input.Algorithm)
	}
	l := c.Input.Line
	ci := c.Input.Circle
	for _, x := range []float64{l.X1, l.Y1, l.X2, l.Y2, ci.XC, ci.YC, ci.R} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			bad("input coordinate %g is not finite", x)
			break
		}
	}
	if ci.R < 0 {
		bad("negative radius %g", ci.R)
	}
	switch c.Render.Backend {
	case BackendRaster, BackendGG:
	default:
		bad("unknown backend %q", c.Render.Backend)
	}
	return errors.Join(errs...)
}

// ParseOrigin converts "center" or "topleft" into an origin mode.
func ParseOrigin(s string) (viewport.OriginMode, error) {
	switch s {
	case viewport.Centered.String():
		return viewport.Centered, nil
	case viewport.TopLeft.String():
		return viewport.TopLeft, nil
	}
	return 0, fmt.Errorf("origin %q is neither %q nor %q: %w",
		s, viewport.Centered, viewport.TopLeft, ErrInvalid)
}

// OriginMode returns the configured origin mode.
// The configuration must be valid.
func (c *Config) OriginMode() viewport.OriginMode {
	m, _ := ParseOrigin(c.View.Origin)
	return m
}

// Algorithm returns the configured algorithm.
func (c *Config) Algorithm() source.Algorithm {
	return source.Algorithm(c.Input.Algorithm)
}

// Params returns the configured algorithm inputs.
func (c *Config) Params() source.Params {
	l := c.Input.Line
	ci := c.Input.Circle
	return source.Params{
		Line: source.Line{
			P1: viewport.GridPoint{X: l.X1, Y: l.Y1},
			P2: viewport.GridPoint{X: l.X2, Y: l.Y2},
		},
		Circle: source.Circle{
			Center: viewport.GridPoint{X: ci.XC, Y: ci.YC},
			R:      ci.R,
		},
	}
}
