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

// Package playback drives a rasterization source step by step and forwards
// the plotted pixels and diagnostics to a painter and a reporter.
//
// The controller is single-threaded: all methods must be called from the
// goroutine which owns it, and the Scheduler must run deferred steps on that
// same goroutine.
package playback

import (
	"fmt"
	"log/slog"
	"time"

	"seehuhn.de/go/rastervis/source"
	"seehuhn.de/go/rastervis/viewport"
)

// State is the state of the controller.
type State int

const (
	Idle State = iota
	Stepping
	Playing
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Stepping:
		return "stepping"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	default:
		return "invalid"
	}
}

// Painter receives the drawing side effects of playback.
type Painter interface {
	// BeginEpisode discards all plotted pixels and arrows and redraws the
	// static inputs.
	BeginEpisode()

	// PlotPixel draws one plotted pixel.
	PlotPixel(p source.Pixel)

	// PlotArrow draws a direction arrow between two consecutive anchors.
	PlotArrow(from, to viewport.GridPoint)
}

// Reporter receives the table and info side effects of playback.
type Reporter interface {
	// Clear empties the table and the info panel.
	Clear()

	// AppendRow adds a row to the step table, switching to the given
	// headers if they differ from the current ones.
	AppendRow(row source.Row)

	// SetInfo replaces the info panel.
	SetInfo(fields []source.Field)

	// SetSlope updates the slope readout.
	SetSlope(s string)

	// SetStatus shows a status message.
	SetStatus(msg string)
}

// Status messages.
const (
	StatusIdle     = "No algorithm running"
	StatusFinished = "Finished"
)

// StatusRunning returns the status shown while algo is being stepped.
func StatusRunning(algo source.Algorithm) string {
	return "Running " + string(algo)
}

// DefaultStepDelay is the pause between two steps while playing.
const DefaultStepDelay = 120 * time.Millisecond

// Options configures a Controller.
type Options struct {
	// StepDelay is the pause between steps while playing.
	// Zero means DefaultStepDelay.
	StepDelay time.Duration

	// Arrows enables direction arrows between consecutive anchors.
	Arrows bool

	// OnFinish, if set, is called whenever a source is exhausted.
	OnFinish func()
}

// Controller owns at most one active rasterization source and advances it
// on demand.
type Controller struct {
	registry *source.Registry
	painter  Painter
	reporter Reporter
	sched    Scheduler

	algo   source.Algorithm
	params source.Params

	src      source.Source
	diag     string
	state    State
	last     viewport.GridPoint
	haveLast bool

	running bool
	loop    uint64 // bumped to invalidate scheduled ticks

	stepDelay time.Duration
	arrows    bool
	onFinish  func()
}

// New returns an idle controller.
func New(reg *source.Registry, p Painter, r Reporter, sched Scheduler, opt *Options) *Controller {
	if opt == nil {
		opt = &Options{}
	}
	c := &Controller{
		registry:  reg,
		painter:   p,
		reporter:  r,
		sched:     sched,
		stepDelay: opt.StepDelay,
		arrows:    opt.Arrows,
		onFinish:  opt.OnFinish,
	}
	if c.stepDelay <= 0 {
		c.stepDelay = DefaultStepDelay
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Running reports whether the controller is playing.
func (c *Controller) Running() bool { return c.running }

// Algorithm returns the selected algorithm.
func (c *Controller) Algorithm() source.Algorithm { return c.algo }

// Params returns the current inputs.
func (c *Controller) Params() source.Params { return c.params }

// Diagnostic returns the message produced when the current or last source
// could not be constructed, or the empty string.
func (c *Controller) Diagnostic() string { return c.diag }

// LastPlotted returns the anchor for the next arrow.
// The second return value is false if nothing has been plotted since the
// last reset.
func (c *Controller) LastPlotted() (viewport.GridPoint, bool) {
	return c.last, c.haveLast
}

// StepDelay returns the pause between steps while playing.
func (c *Controller) StepDelay() time.Duration { return c.stepDelay }

// SetStepDelay changes the pause between steps. The change applies from
// the next scheduled step.
func (c *Controller) SetStepDelay(d time.Duration) {
	if d > 0 {
		c.stepDelay = d
	}
}

// Arrows reports whether direction arrows are drawn.
func (c *Controller) Arrows() bool { return c.arrows }

// SetArrows enables or disables direction arrows.
// The anchor keeps advancing while arrows are off.
func (c *Controller) SetArrows(on bool) { c.arrows = on }

// SetAlgorithm selects the algorithm and resets playback.
func (c *Controller) SetAlgorithm(algo source.Algorithm) {
	c.algo = algo
	c.Reset()
}

// SetParams changes the inputs and resets playback.
func (c *Controller) SetParams(p source.Params) {
	c.params = p
	c.Reset()
}

// Reset returns to Idle from any state. The active source is discarded,
// the arrow anchor is cleared and scheduled steps are cancelled.
func (c *Controller) Reset() {
	c.running = false
	c.loop++
	c.discard()
	c.haveLast = false
	c.diag = ""
	c.setState(Idle)

	c.painter.BeginEpisode()
	c.reporter.Clear()
	c.reporter.SetStatus(StatusIdle)
	c.reporter.SetSlope(c.inputSlope())
}

// inputSlope is the slope readout derived from the inputs alone.
func (c *Controller) inputSlope() string {
	if kind, ok := c.registry.Kind(c.algo); ok && kind == source.KindCircle {
		return source.SlopeNone
	}
	return source.Slope(c.params.Line.P1, c.params.Line.P2)
}

// ensureSource creates a source if none is active.
func (c *Controller) ensureSource() {
	if c.src != nil {
		return
	}
	src, diag := c.registry.New(c.algo, c.params)
	c.src = src
	c.diag = diag
	c.haveLast = false

	c.painter.BeginEpisode()
	c.reporter.Clear()
	c.reporter.SetSlope(c.inputSlope())
	if diag != "" {
		Logger().Warn("algorithm unavailable", slog.String("algorithm", string(c.algo)), slog.String("reason", diag))
		c.reporter.SetStatus(diag)
	} else {
		Logger().Debug("source created", slog.String("algorithm", string(c.algo)))
		c.reporter.SetStatus(StatusRunning(c.algo))
	}
	c.setState(Stepping)
}

func (c *Controller) discard() {
	if c.src != nil {
		c.src.Stop()
		c.src = nil
	}
}

func (c *Controller) setState(s State) {
	if c.state != s {
		Logger().Debug("playback state", slog.String("from", c.state.String()), slog.String("to", s.String()))
	}
	c.state = s
}

// Step pulls exactly one event from the source and forwards its effects.
// It returns true once the source is exhausted. In the Finished state Step
// does nothing and returns true; call Reset to start over.
func (c *Controller) Step() bool {
	if c.state == Finished {
		return true
	}
	c.ensureSource()

	ev, ok := c.next()
	if !ok {
		c.finish()
		return true
	}

	for _, p := range ev.Plot {
		c.painter.PlotPixel(p)
	}
	if last, ok := ev.Last(); ok {
		if c.arrows && c.haveLast {
			c.painter.PlotArrow(c.last, last.At)
		}
		c.last = last.At
		c.haveLast = true
	}

	if ev.Row != nil {
		c.reporter.AppendRow(*ev.Row)
	}
	if len(ev.Info) > 0 {
		c.reporter.SetInfo(ev.Info)
		if slope, ok := ev.Lookup(source.SlopeField); ok {
			c.reporter.SetSlope(slope)
		}
	}
	return false
}

// next pulls one event from the active source. A panic inside the source
// ends the episode with a diagnostic.
func (c *Controller) next() (ev source.PlotEvent, ok bool) {
	defer func() {
		if v := recover(); v != nil {
			c.diag = fmt.Sprintf("%s: %v", c.algo, v)
			Logger().Warn("algorithm failed", slog.String("algorithm", string(c.algo)), slog.Any("panic", v))
			ev, ok = source.PlotEvent{}, false
		}
	}()
	return c.src.Next()
}

func (c *Controller) finish() {
	c.running = false
	c.loop++
	c.discard()
	c.setState(Finished)
	if c.diag != "" {
		c.reporter.SetStatus(c.diag)
	} else {
		c.reporter.SetStatus(StatusFinished)
	}
	if c.onFinish != nil {
		c.onFinish()
	}
}

// Play starts stepping on a timer. The first step happens immediately,
// later steps are spaced by the step delay. Playing stops when the source
// is exhausted or Pause is called.
func (c *Controller) Play() {
	if c.running || c.state == Finished {
		return
	}
	c.ensureSource()
	c.running = true
	c.loop++
	c.setState(Playing)
	c.tick(c.loop)
}

// tick performs one step of the play loop started as loop number id.
func (c *Controller) tick(id uint64) {
	if !c.running || id != c.loop {
		return
	}
	if c.Step() {
		return
	}
	c.sched.After(c.stepDelay, func() { c.tick(id) })
}

// Pause stops playing. The source and the arrow anchor are kept, so Step
// or Play continue where playback stopped.
func (c *Controller) Pause() {
	if !c.running {
		return
	}
	c.running = false
	c.loop++
	c.setState(Stepping)
}
