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

package session

import (
	"bytes"
	"errors"
	"math"
	"slices"
	"strings"
	"testing"
	"time"

	"seehuhn.de/go/rastervis/config"
	"seehuhn.de/go/rastervis/playback"
	"seehuhn.de/go/rastervis/render"
	"seehuhn.de/go/rastervis/source"
	"seehuhn.de/go/rastervis/viewport"
)

func gp(x, y float64) viewport.GridPoint { return viewport.GridPoint{X: x, Y: y} }

func pp(x, y float64) viewport.PixelPoint { return viewport.PixelPoint{X: x, Y: y} }

// newSession returns a 400x300 session at scale 20 with the grid origin
// at pixel (200, 150).
func newSession(t *testing.T, algo source.Algorithm) (*Session, *playback.Timeline) {
	t.Helper()
	tl := &playback.Timeline{}
	s := New(tl, &Options{
		Width:     400,
		Height:    300,
		Scale:     20,
		Algorithm: algo,
		Snap:      true,
		Arrows:    true,
	})
	return s, tl
}

func TestClickLine(t *testing.T) {
	s, _ := newSession(t, source.BresenhamLine)
	s.Click(pp(241, 109))
	s.Click(pp(300, 150))

	l := s.Params().Line
	if l.P1 != gp(2, 2) || l.P2 != gp(5, 0) {
		t.Errorf("line %+v", l)
	}
	if got := s.Panel.Slope(); got != "-0.667" {
		t.Errorf("slope %q", got)
	}
	if s.Controller().State() != playback.Idle {
		t.Errorf("state %v", s.Controller().State())
	}

	// a third click starts over with the first endpoint
	s.Click(pp(200, 150))
	if l := s.Params().Line; l.P1 != gp(0, 0) || l.P2 != gp(5, 0) {
		t.Errorf("line %+v", l)
	}
}

func TestClickWithoutSnap(t *testing.T) {
	s, _ := newSession(t, source.DDA)
	s.SetSnap(false)
	s.Click(pp(241, 109))
	if p := s.Params().Line.P1; math.Abs(p.X-2.05) > 1e-9 || math.Abs(p.Y-2.05) > 1e-9 {
		t.Errorf("P1 = %v", p)
	}
}

func TestClickCircle(t *testing.T) {
	s, _ := newSession(t, source.BresenhamCircle)
	s.Click(pp(200, 150))
	s.Click(pp(260, 70))

	c := s.Params().Circle
	if c.Center != gp(0, 0) || c.R != 5 {
		t.Errorf("circle %+v", c)
	}
	if got := s.Panel.Slope(); got != source.SlopeNone {
		t.Errorf("slope %q", got)
	}
}

func TestAlgorithmChangeRestartsClicks(t *testing.T) {
	s, _ := newSession(t, source.BresenhamLine)
	s.Click(pp(240, 110))
	s.SetAlgorithm(source.BresenhamCircle)
	s.Click(pp(260, 150))
	if c := s.Params().Circle.Center; c != gp(3, 0) {
		t.Errorf("center %v", c)
	}
}

func TestSetField(t *testing.T) {
	s, _ := newSession(t, source.BresenhamCircle)
	if err := s.SetField(FieldR, " 4.5 "); err != nil {
		t.Fatal(err)
	}
	if err := s.SetField(FieldX1, "-3"); err != nil {
		t.Fatal(err)
	}
	if r, _ := s.Field(FieldR); r != 4.5 {
		t.Errorf("r = %g", r)
	}
	if x, _ := s.Field(FieldX1); x != -3 {
		t.Errorf("x1 = %g", x)
	}

	bad := []struct {
		f    Field
		text string
	}{
		{FieldR, "-1"},
		{FieldR, "abc"},
		{FieldXC, ""},
		{FieldY2, "NaN"},
		{FieldX2, "Inf"},
		{Field("z"), "1"},
	}
	for _, b := range bad {
		if err := s.SetField(b.f, b.text); !errors.Is(err, ErrInvalidField) {
			t.Errorf("SetField(%s, %q): %v", b.f, b.text, err)
		}
	}
	if r, _ := s.Field(FieldR); r != 4.5 {
		t.Errorf("rejected input changed r to %g", r)
	}
}

func TestDragPans(t *testing.T) {
	s, _ := newSession(t, source.BresenhamLine)
	before := s.Params()

	s.Press(pp(100, 100))
	s.Move(pp(120, 95))
	if !s.Dragging() {
		t.Error("not dragging")
	}
	s.Release(pp(130, 90))

	if pan := s.View.Pan(); pan.X != 30 || pan.Y != -10 {
		t.Errorf("pan %v", pan)
	}
	if s.Params() != before {
		t.Error("drag changed the inputs")
	}

	// without movement, press and release is a click
	s.Press(pp(250, 120))
	s.Release(pp(251, 121))
	if p := s.Params().Line.P1; p != gp(1, 1) {
		t.Errorf("P1 = %v", p)
	}
}

func TestWheel(t *testing.T) {
	s, _ := newSession(t, source.BresenhamLine)
	cursor := pp(250, 100)
	before := s.View.ToGrid(cursor)

	s.Wheel(cursor, -120)
	if s.View.Scale() != 22 {
		t.Errorf("scale %g", s.View.Scale())
	}
	after := s.View.ToGrid(cursor)
	if math.Abs(after.X-before.X) > 1e-9 || math.Abs(after.Y-before.Y) > 1e-9 {
		t.Errorf("cursor moved from %v to %v", before, after)
	}

	s.Wheel(cursor, 0)
	if s.View.Scale() != 22 {
		t.Errorf("zero delta changed scale to %g", s.View.Scale())
	}
	s.Wheel(cursor, 3)
	if s.View.Scale() != 20 {
		t.Errorf("scale %g", s.View.Scale())
	}
}

func TestHover(t *testing.T) {
	s, _ := newSession(t, source.BresenhamLine)
	if got := s.MouseReadout(); got != "" {
		t.Errorf("readout before hover %q", got)
	}
	s.Hover(pp(241, 109))
	if got := s.MouseReadout(); got != "(2.05, 2.05)" {
		t.Errorf("readout %q", got)
	}
	s.Leave()
	if got := s.MouseReadout(); got != "" {
		t.Errorf("readout after leave %q", got)
	}
}

func TestViewSettings(t *testing.T) {
	s, _ := newSession(t, source.BresenhamLine)
	s.View.PanBy(5, 5)
	s.ToggleOrigin()
	if s.View.Mode() != viewport.TopLeft || s.View.Origin() != pp(0, 0) {
		t.Errorf("mode %v origin %v", s.View.Mode(), s.View.Origin())
	}
	s.ToggleOrigin()
	s.Resize(600, 500)
	if s.View.Origin() != pp(300, 250) {
		t.Errorf("origin %v", s.View.Origin())
	}
	s.SetZoom(500)
	if s.View.Scale() != viewport.MaxScale {
		t.Errorf("scale %g", s.View.Scale())
	}
	s.SetSpeed(40 * time.Millisecond)
	if s.Controller().StepDelay() != 40*time.Millisecond {
		t.Errorf("step delay %s", s.Controller().StepDelay())
	}
}

func TestStepping(t *testing.T) {
	s, _ := newSession(t, source.BresenhamLine)
	s.SetParams(source.Params{Line: source.Line{P2: gp(4, 2)}})

	n := 0
	for !s.Next() {
		n++
		if want := playback.StatusRunning(source.BresenhamLine); s.Panel.Status() != want {
			t.Fatalf("step %d: status %q, want %q", n, s.Panel.Status(), want)
		}
	}
	if n != 5 {
		t.Errorf("%d steps", n)
	}
	if got := s.Panel.Headers(); !slices.Equal(got, []string{"k", "x", "y", "p"}) {
		t.Errorf("headers %v", got)
	}
	if len(s.Panel.Rows()) != 5 {
		t.Errorf("%d rows", len(s.Panel.Rows()))
	}
	if s.Panel.Status() != playback.StatusFinished {
		t.Errorf("status %q", s.Panel.Status())
	}

	arrows := 0
	for _, m := range s.Scene.Marks() {
		if m.Arrow {
			arrows++
		}
	}
	if len(s.Scene.Marks()) != 9 || arrows != 4 {
		t.Errorf("%d marks, %d arrows", len(s.Scene.Marks()), arrows)
	}

	s.Reset()
	if len(s.Scene.Marks()) != 0 || s.Panel.Status() != playback.StatusIdle {
		t.Errorf("after reset: %d marks, status %q", len(s.Scene.Marks()), s.Panel.Status())
	}
	if !slices.Equal(s.Panel.Headers(), DefaultHeaders) {
		t.Errorf("headers after reset %v", s.Panel.Headers())
	}
}

func TestPlay(t *testing.T) {
	finished := 0
	tl := &playback.Timeline{}
	s := New(tl, &Options{
		Width:     400,
		Height:    300,
		Algorithm: source.DDA,
		Params:    source.Params{Line: source.Line{P2: gp(3, 3)}},
		StepDelay: 50 * time.Millisecond,
		OnFinish:  func() { finished++ },
	})

	s.TogglePlay()
	if len(s.Panel.Rows()) != 1 {
		t.Fatalf("%d rows after play", len(s.Panel.Rows()))
	}
	tl.Advance(60 * time.Millisecond)
	s.TogglePlay()
	if s.Controller().Running() || len(s.Panel.Rows()) != 2 {
		t.Fatalf("running %t, %d rows", s.Controller().Running(), len(s.Panel.Rows()))
	}
	tl.Advance(time.Second)
	if len(s.Panel.Rows()) != 2 {
		t.Errorf("paused session kept stepping")
	}

	s.Play()
	tl.Advance(time.Second)
	if len(s.Panel.Rows()) != 4 || finished != 1 {
		t.Errorf("%d rows, %d finish callbacks", len(s.Panel.Rows()), finished)
	}
}

func TestRender(t *testing.T) {
	s, _ := newSession(t, source.BresenhamLine)
	s.Next()
	c := render.NewImageCanvas(400, 300)
	s.Render(c)
	// the first plotted pixel sits at the grid origin
	if col := c.Image().RGBAAt(200, 150); col.R != 0 || col.G != 0 || col.B != 0 {
		t.Errorf("colour %v at the origin, want black", col)
	}
}

func TestFromConfig(t *testing.T) {
	c := config.Default()
	c.Canvas.Width = 640
	c.View.Origin = viewport.TopLeft.String()
	c.Input.Algorithm = string(source.BresenhamCircle)
	c.Input.Circle.R = 3

	s := FromConfig(c, &playback.Timeline{})
	if w, _ := s.View.Size(); w != 640 {
		t.Errorf("width %g", w)
	}
	if s.View.Mode() != viewport.TopLeft {
		t.Errorf("mode %v", s.View.Mode())
	}
	if s.Kind() != source.KindCircle || s.Params().Circle.R != 3 {
		t.Errorf("kind %v, params %+v", s.Kind(), s.Params())
	}
	if !s.Arrows() || !s.Snap() {
		t.Error("arrows and snap should be enabled by default")
	}
}

func TestPanel(t *testing.T) {
	p := NewPanel()
	p.AppendRow(source.Row{Headers: []string{"k", "x"}, Values: []string{"0", "1"}})
	p.AppendRow(source.Row{Headers: []string{"k", "x"}, Values: []string{"1", "12"}})
	p.SetInfo([]source.Field{{Name: "dx", Value: "3"}, {Name: source.SlopeField, Value: "1.000"}})
	p.SetSlope("1.000")
	p.SetStatus("Finished")

	buf := &bytes.Buffer{}
	if err := p.WriteTable(buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("table %q", buf.String())
	}
	if strings.TrimSpace(lines[0]) != "k   x" || !strings.HasSuffix(strings.TrimRight(lines[2], " "), "1  12") {
		t.Errorf("table %q", buf.String())
	}

	buf.Reset()
	if err := p.WriteInfo(buf); err != nil {
		t.Fatal(err)
	}
	info := buf.String()
	if strings.Count(info, "slope") != 1 || !strings.Contains(info, "dx:") || !strings.Contains(info, "Finished") {
		t.Errorf("info %q", info)
	}

	// different headers start a new table
	p.AppendRow(source.Row{Headers: []string{"k"}, Values: []string{"0"}})
	if len(p.Rows()) != 1 || !slices.Equal(p.Headers(), []string{"k"}) {
		t.Errorf("headers %v, rows %v", p.Headers(), p.Rows())
	}
}
