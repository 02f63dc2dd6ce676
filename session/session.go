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

// Package session connects the viewport, the scene, the playback
// controller and the text panel to the user's input devices.
//
// All methods must be called from the goroutine which owns the scheduler
// passed to New.
package session

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"seehuhn.de/go/rastervis/algorithms"
	"seehuhn.de/go/rastervis/config"
	"seehuhn.de/go/rastervis/playback"
	"seehuhn.de/go/rastervis/render"
	"seehuhn.de/go/rastervis/source"
	"seehuhn.de/go/rastervis/viewport"
)

// ErrInvalidField is returned by SetField for text which is not an
// acceptable value of the field.
var ErrInvalidField = errors.New("invalid field value")

// Field names an input field of the line or circle panel.
type Field string

const (
	FieldX1 Field = "x1"
	FieldY1 Field = "y1"
	FieldX2 Field = "x2"
	FieldY2 Field = "y2"
	FieldXC Field = "xc"
	FieldYC Field = "yc"
	FieldR  Field = "r"
)

// ClickSlop is the largest pointer movement, in pixels, between Press and
// Release which still counts as a click rather than a drag.
const ClickSlop = 3

// Options configures a new session.
type Options struct {
	Width, Height float64
	Scale         float64
	Origin        viewport.OriginMode
	ShowZeroY     bool

	Algorithm source.Algorithm
	Params    source.Params
	Snap      bool
	Arrows    bool
	StepDelay time.Duration

	// Registry defaults to algorithms.Default().
	Registry *source.Registry

	// OnFinish is called whenever playback reaches the end.
	OnFinish func()
}

// Session is the state behind one visualizer window.
type Session struct {
	View  *viewport.Viewport
	Scene *render.Scene
	Panel *Panel

	ctrl     *playback.Controller
	registry *source.Registry

	algo   source.Algorithm
	params source.Params
	snap   bool
	clicks int

	pressed  bool
	dragged  bool
	pressAt  viewport.PixelPoint
	lastDrag viewport.PixelPoint

	mouse     viewport.GridPoint
	haveMouse bool
}

// New creates a session. Timed playback steps are scheduled on sched.
func New(sched playback.Scheduler, opt *Options) *Session {
	if opt == nil {
		opt = &Options{}
	}
	reg := opt.Registry
	if reg == nil {
		reg = algorithms.Default()
	}

	v := viewport.New(opt.Width, opt.Height, opt.Scale, opt.Origin)
	scene := render.NewScene(v)
	scene.Labels.ShowZeroY = opt.ShowZeroY
	panel := NewPanel()

	s := &Session{
		View:     v,
		Scene:    scene,
		Panel:    panel,
		registry: reg,
		snap:     opt.Snap,
	}
	s.ctrl = playback.New(reg, scene, panel, sched, &playback.Options{
		StepDelay: opt.StepDelay,
		Arrows:    opt.Arrows,
		OnFinish:  opt.OnFinish,
	})
	s.algo = opt.Algorithm
	s.params = opt.Params
	s.ctrl.SetAlgorithm(s.algo)
	s.apply()
	return s
}

// OptionsFromConfig returns the session options for the settings of c.
// The configuration must be valid.
func OptionsFromConfig(c *config.Config) *Options {
	return &Options{
		Width:     float64(c.Canvas.Width),
		Height:    float64(c.Canvas.Height),
		Scale:     c.View.Scale,
		Origin:    c.OriginMode(),
		ShowZeroY: c.View.ShowZeroY,
		Algorithm: c.Algorithm(),
		Params:    c.Params(),
		Snap:      c.Input.Snap,
		Arrows:    c.Playback.Arrows,
		StepDelay: c.Playback.StepDelay.Duration,
	}
}

// FromConfig creates a session with the settings of c.
func FromConfig(c *config.Config, sched playback.Scheduler) *Session {
	return New(sched, OptionsFromConfig(c))
}

// Controller returns the playback controller of the session.
func (s *Session) Controller() *playback.Controller { return s.ctrl }

// Registry returns the algorithms available in the session.
func (s *Session) Registry() *source.Registry { return s.registry }

// Algorithm returns the selected algorithm.
func (s *Session) Algorithm() source.Algorithm { return s.algo }

// Params returns the current algorithm inputs.
func (s *Session) Params() source.Params { return s.params }

// Kind returns the input kind of the current algorithm.
// Unknown algorithms use line inputs.
func (s *Session) Kind() source.Kind {
	k, _ := s.registry.Kind(s.algo)
	return k
}

// SetAlgorithm selects an algorithm and resets playback.
// A half-finished click sequence is abandoned.
func (s *Session) SetAlgorithm(algo source.Algorithm) {
	s.algo = algo
	s.clicks = 0
	s.ctrl.SetAlgorithm(algo)
	s.Scene.SetInputs(s.Kind(), s.params)
}

// SetParams replaces all inputs and resets playback.
func (s *Session) SetParams(p source.Params) {
	s.params = p
	s.apply()
}

// apply forwards the inputs to the controller and the scene.
func (s *Session) apply() {
	s.ctrl.SetParams(s.params)
	s.Scene.SetInputs(s.Kind(), s.params)
}

// Field returns the current value of an input field.
func (s *Session) Field(f Field) (float64, error) {
	ptr, err := s.field(f)
	if err != nil {
		return 0, err
	}
	return *ptr, nil
}

// SetField parses text as the new value of an input field and resets
// playback. The value must be a finite number; the radius must not be
// negative.
func (s *Session) SetField(f Field, text string) error {
	ptr, err := s.field(f)
	if err != nil {
		return err
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Errorf("%s: %q is not a number: %w", f, text, ErrInvalidField)
	}
	if f == FieldR && x < 0 {
		return fmt.Errorf("%s: negative radius %g: %w", f, x, ErrInvalidField)
	}
	*ptr = x
	s.apply()
	return nil
}

func (s *Session) field(f Field) (*float64, error) {
	p := &s.params
	switch f {
	case FieldX1:
		return &p.Line.P1.X, nil
	case FieldY1:
		return &p.Line.P1.Y, nil
	case FieldX2:
		return &p.Line.P2.X, nil
	case FieldY2:
		return &p.Line.P2.Y, nil
	case FieldXC:
		return &p.Circle.Center.X, nil
	case FieldYC:
		return &p.Circle.Center.Y, nil
	case FieldR:
		return &p.Circle.R, nil
	}
	return nil, fmt.Errorf("unknown field %q: %w", f, ErrInvalidField)
}

// Click sets inputs from a click at p. For lines the first click sets the
// start point and the second the end point. For circles the first click
// sets the center and the second the radius, as the distance to the
// center. Every click resets playback.
func (s *Session) Click(p viewport.PixelPoint) {
	g := s.View.ToGrid(p)
	if s.snap {
		g = g.Snap()
	}

	if s.Kind() == source.KindCircle {
		if s.clicks == 0 {
			s.params.Circle.Center = g
		} else {
			c := s.params.Circle.Center
			s.params.Circle.R = math.Hypot(g.X-c.X, g.Y-c.Y)
		}
	} else {
		if s.clicks == 0 {
			s.params.Line.P1 = g
		} else {
			s.params.Line.P2 = g
		}
	}
	s.clicks = 1 - s.clicks
	s.apply()
}

// Press starts a drag at p.
func (s *Session) Press(p viewport.PixelPoint) {
	s.pressed = true
	s.dragged = false
	s.pressAt = p
	s.lastDrag = p
}

// Move handles pointer movement to p. While the pointer is pressed, the
// view pans along.
func (s *Session) Move(p viewport.PixelPoint) {
	if s.pressed {
		if math.Hypot(p.X-s.pressAt.X, p.Y-s.pressAt.Y) > ClickSlop {
			s.dragged = true
		}
		s.View.PanBy(p.X-s.lastDrag.X, p.Y-s.lastDrag.Y)
		s.lastDrag = p
	}
	s.Hover(p)
}

// Release ends a drag. A press and release without a drag is a click.
func (s *Session) Release(p viewport.PixelPoint) {
	if !s.pressed {
		return
	}
	s.Move(p)
	s.pressed = false
	if !s.dragged {
		s.Click(p)
	}
}

// Dragging reports whether the pointer is pressed.
func (s *Session) Dragging() bool { return s.pressed }

// Wheel zooms at p. Negative dy, scrolling up, zooms in.
func (s *Session) Wheel(p viewport.PixelPoint, dy float64) {
	switch {
	case dy < 0:
		s.View.ZoomAtCursor(p, 1)
	case dy > 0:
		s.View.ZoomAtCursor(p, -1)
	}
	s.Hover(p)
}

// Hover moves the mouse readout and the preview pixel to p.
func (s *Session) Hover(p viewport.PixelPoint) {
	g := s.View.ToGrid(p)
	s.mouse = g
	s.haveMouse = true
	if s.snap {
		g = g.Snap()
	}
	s.Scene.SetGhost(g, s.snap)
}

// Leave hides the preview pixel when the pointer leaves the canvas.
func (s *Session) Leave() {
	s.haveMouse = false
	s.pressed = false
	s.Scene.HideGhost()
}

// MouseReadout returns the grid position of the pointer, as "(x, y)" with
// two decimals, or "" when the pointer is outside the canvas.
func (s *Session) MouseReadout() string {
	if !s.haveMouse {
		return ""
	}
	return fmt.Sprintf("(%.2f, %.2f)", s.mouse.X, s.mouse.Y)
}

// SetOriginMode changes the origin mode. The pan offset is reset.
func (s *Session) SetOriginMode(m viewport.OriginMode) { s.View.SetOriginMode(m) }

// ToggleOrigin switches between centered and top-left origin.
func (s *Session) ToggleOrigin() {
	if s.View.Mode() == viewport.TopLeft {
		s.SetOriginMode(viewport.Centered)
	} else {
		s.SetOriginMode(viewport.TopLeft)
	}
}

// Resize changes the canvas size. The pan offset is kept.
func (s *Session) Resize(width, height float64) { s.View.Resize(width, height) }

// SetZoom sets the scale directly, keeping the pan offset.
func (s *Session) SetZoom(scale float64) { s.View.SetScale(scale) }

// SetSpeed sets the delay between steps while playing.
func (s *Session) SetSpeed(d time.Duration) { s.ctrl.SetStepDelay(d) }

// SetArrows enables or disables direction arrows.
func (s *Session) SetArrows(on bool) { s.ctrl.SetArrows(on) }

// Arrows reports whether direction arrows are drawn.
func (s *Session) Arrows() bool { return s.ctrl.Arrows() }

// SetSnap enables rounding of clicked and hovered positions to lattice
// points.
func (s *Session) SetSnap(on bool) { s.snap = on }

// Snap reports whether clicks snap to lattice points.
func (s *Session) Snap() bool { return s.snap }

// Play starts timed playback.
func (s *Session) Play() { s.ctrl.Play() }

// Pause stops timed playback and keeps the current position.
func (s *Session) Pause() { s.ctrl.Pause() }

// TogglePlay pauses while playing and plays otherwise.
func (s *Session) TogglePlay() {
	if s.ctrl.Running() {
		s.ctrl.Pause()
	} else {
		s.ctrl.Play()
	}
}

// Next pauses playback and takes a single step.
// It returns true once the algorithm is finished.
func (s *Session) Next() bool {
	s.ctrl.Pause()
	return s.ctrl.Step()
}

// Reset discards the current episode and clears the panel.
func (s *Session) Reset() { s.ctrl.Reset() }

// Render paints the current state onto c.
func (s *Session) Render(c render.Canvas) { s.Scene.Paint(c) }
