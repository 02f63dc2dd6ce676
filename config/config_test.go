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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"seehuhn.de/go/rastervis/source"
	"seehuhn.de/go/rastervis/viewport"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.OriginMode() != viewport.Centered {
		t.Errorf("origin mode %v", c.OriginMode())
	}
	if c.Algorithm() != source.BresenhamLine {
		t.Errorf("algorithm %q", c.Algorithm())
	}
}

func TestLoad(t *testing.T) {
	c, err := Load(`
[canvas]
width = 640

[view]
origin = "topleft"
scale = 30

[playback]
step_delay = "250ms"
arrows = false

[input]
algorithm = "bresenham_circle"
circle = { xc = 1.5, yc = -2, r = 7 }
`)
	if err != nil {
		t.Fatal(err)
	}
	if c.Canvas.Width != 640 || c.Canvas.Height != 560 {
		t.Errorf("canvas %+v", c.Canvas)
	}
	if c.OriginMode() != viewport.TopLeft || c.View.Scale != 30 {
		t.Errorf("view %+v", c.View)
	}
	if c.Playback.StepDelay.Duration != 250*time.Millisecond || c.Playback.Arrows {
		t.Errorf("playback %+v", c.Playback)
	}
	p := c.Params()
	if p.Circle.Center != (viewport.GridPoint{X: 1.5, Y: -2}) || p.Circle.R != 7 {
		t.Errorf("circle %+v", p.Circle)
	}
	// untouched keys keep their defaults
	if p.Line.P2 != (viewport.GridPoint{X: 10, Y: 6}) || !c.Input.Snap {
		t.Errorf("input %+v", c.Input)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name, conf string
		invalid    bool
	}{
		{"syntax", `[canvas`, false},
		{"bad_duration", "[playback]\nstep_delay = \"fast\"", false},
		{"unknown_key", "[view]\nzoom = 3", true},
		{"unknown_section", "[sound]\nvolume = 3", true},
		{"scale", "[view]\nscale = 200", true},
		{"origin", "[view]\norigin = \"middle\"", true},
		{"delay", "[playback]\nstep_delay = \"0s\"", true},
		{"algorithm", "[input]\nalgorithm = \"wu\"", true},
		{"radius", "[input]\ncircle = { r = -1 }", true},
		{"canvas", "[canvas]\nwidth = 0", true},
		{"backend", "[render]\nbackend = \"opengl\"", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(c.conf)
			if err == nil {
				t.Fatal("no error")
			}
			if errors.Is(err, ErrInvalid) != c.invalid {
				t.Errorf("errors.Is(%v, ErrInvalid) != %t", err, c.invalid)
			}
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	c := Default()
	c.View.Scale = 1
	c.Render.Backend = ""
	err := c.Validate()
	if err == nil {
		t.Fatal("no error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "scale") || !strings.Contains(msg, "backend") {
		t.Errorf("error %q does not name both problems", msg)
	}
}

func TestLoadFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "rastervis.toml")
	err := os.WriteFile(fileName, []byte("[input]\nalgorithm = \"dda\"\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	c, err := LoadFile(fileName)
	if err != nil {
		t.Fatal(err)
	}
	if c.Algorithm() != source.DDA {
		t.Errorf("algorithm %q", c.Algorithm())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestParseOrigin(t *testing.T) {
	for _, m := range []viewport.OriginMode{viewport.Centered, viewport.TopLeft} {
		got, err := ParseOrigin(m.String())
		if err != nil || got != m {
			t.Errorf("ParseOrigin(%q) = %v, %v", m, got, err)
		}
	}
}
