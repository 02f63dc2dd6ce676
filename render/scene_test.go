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

package render

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"testing"

	"seehuhn.de/go/rastervis/source"
	"seehuhn.de/go/rastervis/viewport"
)

// recorder is a Canvas which logs the primitives it receives.
type recorder struct {
	ops []string
}

func (r *recorder) Size() (int, int) { return 400, 300 }

func (r *recorder) Clear(s Style) { r.add("clear", s) }

func (r *recorder) Line(a, b viewport.PixelPoint, s Style) {
	r.add(fmt.Sprintf("line %g,%g %g,%g", a.X, a.Y, b.X, b.Y), s)
}

func (r *recorder) Square(c viewport.PixelPoint, size float64, s Style) {
	r.add(fmt.Sprintf("square %g,%g %g", c.X, c.Y, size), s)
}

func (r *recorder) Dot(c viewport.PixelPoint, radius float64, s Style) {
	r.add(fmt.Sprintf("dot %g,%g %g", c.X, c.Y, radius), s)
}

func (r *recorder) Circle(c viewport.PixelPoint, radius float64, s Style) {
	r.add(fmt.Sprintf("circle %g,%g %g", c.X, c.Y, radius), s)
}

func (r *recorder) Arrow(from, to viewport.PixelPoint, s Style) {
	r.add(fmt.Sprintf("arrow %g,%g %g,%g", from.X, from.Y, to.X, to.Y), s)
}

func (r *recorder) Text(at viewport.PixelPoint, text string, s Style) {
	r.add(fmt.Sprintf("text %g,%g %q", at.X, at.Y, text), s)
}

func (r *recorder) add(op string, _ Style) {
	r.ops = append(r.ops, op)
}

func (r *recorder) find(prefix string) []string {
	var res []string
	for _, op := range r.ops {
		if strings.HasPrefix(op, prefix) {
			res = append(res, op)
		}
	}
	return res
}

func newScene() *Scene {
	return NewScene(viewport.New(400, 300, 20, viewport.Centered))
}

func TestSceneRetainsMarks(t *testing.T) {
	s := newScene()
	s.PlotPixel(source.Pixel{At: viewport.GridPoint{X: 0, Y: 0}})
	s.PlotPixel(source.Pixel{At: viewport.GridPoint{X: 1, Y: 0}})
	s.PlotArrow(viewport.GridPoint{X: 0, Y: 0}, viewport.GridPoint{X: 1, Y: 0})

	// repaint after zooming still shows everything
	s.View.ZoomAtCursor(viewport.PixelPoint{X: 10, Y: 10}, 1)
	rec := &recorder{}
	s.Paint(rec)
	if n := len(rec.find("square")); n != 2 {
		t.Errorf("%d squares, want 2", n)
	}
	if n := len(rec.find("arrow")); n != 1 {
		t.Errorf("%d arrows, want 1", n)
	}

	s.BeginEpisode()
	if len(s.Marks()) != 0 {
		t.Errorf("marks survive BeginEpisode: %v", s.Marks())
	}
}

func TestSceneOrder(t *testing.T) {
	s := newScene()
	s.PlotPixel(source.Pixel{At: viewport.GridPoint{X: 0, Y: 0}})
	s.PlotPixel(source.Pixel{At: viewport.GridPoint{X: 1, Y: 1}})
	s.PlotArrow(viewport.GridPoint{X: 0, Y: 0}, viewport.GridPoint{X: 1, Y: 1})
	s.PlotPixel(source.Pixel{At: viewport.GridPoint{X: 2, Y: 1}})
	s.SetGhost(viewport.GridPoint{X: 3, Y: 3}, true)

	rec := &recorder{}
	s.Paint(rec)
	if rec.ops[0] != "clear" {
		t.Errorf("first op %q, want clear", rec.ops[0])
	}

	var kinds []string
	for _, op := range rec.ops {
		k, _, _ := strings.Cut(op, " ")
		if k == "square" || k == "arrow" {
			kinds = append(kinds, k)
		}
	}
	want := []string{"square", "square", "arrow", "square", "square"}
	if !slices.Equal(kinds, want) {
		t.Errorf("drawing order %v, want %v", kinds, want)
	}
}

func TestMarkerGeometry(t *testing.T) {
	// centered 400x300 view at scale 20: origin (200, 150)
	s := newScene()
	s.PlotPixel(source.Pixel{At: viewport.GridPoint{X: 2, Y: 1}})
	rec := &recorder{}
	s.Paint(rec)
	sq := rec.find("square")
	if len(sq) != 1 || sq[0] != "square 238,128 5" {
		t.Errorf("markers %v", sq)
	}

	for _, c := range []struct{ scale, marker, dot, label float64 }{
		{6, 2, 3, 10},
		{20, 5, 5, 11.11111111111111},
		{40, 6, 6, 14},
	} {
		if got := MarkerSize(c.scale); got != c.marker {
			t.Errorf("MarkerSize(%g) = %g, want %g", c.scale, got, c.marker)
		}
		if got := EndpointRadius(c.scale); got != c.dot {
			t.Errorf("EndpointRadius(%g) = %g, want %g", c.scale, got, c.dot)
		}
		if got := LabelSize(c.scale); math.Abs(got-c.label) > 1e-9 {
			t.Errorf("LabelSize(%g) = %g, want %g", c.scale, got, c.label)
		}
	}
}

func TestGhost(t *testing.T) {
	s := newScene()
	s.SetGhost(viewport.GridPoint{X: 0.5, Y: 0}, false)
	rec := &recorder{}
	s.Paint(rec)
	if sq := rec.find("square"); len(sq) != 1 || sq[0] != "square 208,148 4" {
		t.Errorf("ghost %v", sq)
	}

	s.HideGhost()
	rec = &recorder{}
	s.Paint(rec)
	if sq := rec.find("square"); len(sq) != 0 {
		t.Errorf("hidden ghost drawn: %v", sq)
	}
}

func TestLineInputs(t *testing.T) {
	s := newScene()
	s.SetInputs(source.KindLine, source.Params{Line: source.Line{
		P1: viewport.GridPoint{X: 0, Y: 0},
		P2: viewport.GridPoint{X: 4, Y: 2},
	}})
	rec := &recorder{}
	s.Paint(rec)
	want := []string{"dot 200,150 5", "dot 280,110 5"}
	if got := rec.find("dot"); !slices.Equal(got, want) {
		t.Errorf("endpoints %v, want %v", got, want)
	}
	if got := rec.find("circle"); len(got) != 0 {
		t.Errorf("unexpected circle %v", got)
	}
}

func TestCircleInputs(t *testing.T) {
	s := newScene()
	s.SetInputs(source.KindCircle, source.Params{Circle: source.Circle{
		Center: viewport.GridPoint{X: 1, Y: 1},
		R:      3,
	}})
	rec := &recorder{}
	s.Paint(rec)
	if got := rec.find("dot"); !slices.Equal(got, []string{"dot 220,130 5"}) {
		t.Errorf("center %v", got)
	}
	if got := rec.find("circle"); !slices.Equal(got, []string{"circle 220,130 60"}) {
		t.Errorf("guide %v", got)
	}
	if got := rec.find("line 220,130 280,130"); len(got) != 1 {
		t.Errorf("radius line missing")
	}

	// tiny radii are still visible
	s.SetInputs(source.KindCircle, source.Params{Circle: source.Circle{R: 0}})
	rec = &recorder{}
	s.Paint(rec)
	if got := rec.find("circle"); !slices.Equal(got, []string{"circle 200,150 2"}) {
		t.Errorf("zero radius guide %v", got)
	}

	s.SetInputs(source.KindCircle, source.Params{Circle: source.Circle{R: math.NaN()}})
	rec = &recorder{}
	s.Paint(rec)
	if got := rec.find("circle"); len(got) != 0 {
		t.Errorf("NaN radius drew %v", got)
	}
}

func TestAxisLabels(t *testing.T) {
	s := newScene()
	rec := &recorder{}
	s.Paint(rec)
	// x axis: "0" printed below the origin, y axis: "0" suppressed
	if got := rec.find(`text 192,166 "0"`); len(got) != 1 {
		t.Errorf("x label for 0 missing")
	}
	if got := rec.find(`text 208,154 "0"`); len(got) != 0 {
		t.Errorf("y label for 0 printed in centered mode")
	}
	if got := rec.find(`text 208,114 "2"`); len(got) != 1 {
		t.Errorf("y label for 2 missing: %v", rec.find("text 208"))
	}

	s.Labels.ShowZeroY = true
	rec = &recorder{}
	s.Paint(rec)
	if got := rec.find(`text 208,154 "0"`); len(got) != 1 {
		t.Errorf("ShowZeroY did not print the label")
	}
}

func TestGridLines(t *testing.T) {
	s := NewScene(viewport.New(100, 60, 20, viewport.TopLeft))
	rec := &recorder{}
	s.Paint(rec)
	// vertical grid lines at 0, 20, ..., 100; horizontal at 0, ..., 60
	if got := rec.find("line 40,0 40,60"); len(got) != 1 {
		t.Errorf("vertical grid line missing")
	}
	if got := rec.find("line 0,20 100,20"); len(got) != 1 {
		t.Errorf("horizontal grid line missing")
	}
}

func TestPalette(t *testing.T) {
	p := DefaultPalette()
	if got := p.PixelStyle(""); got.Color != p.Style(RolePixel).Color {
		t.Errorf("untagged pixel colour %v", got.Color)
	}
	if got := p.PixelStyle(source.TagMirror); got.Color == p.Style(RolePixel).Color {
		t.Error("mirror tag has the default colour")
	}
	if got := p.PixelStyle("unknown"); got.Color != p.Style(RolePixel).Color {
		t.Errorf("unknown tag colour %v", got.Color)
	}
	if got := p.Style(numRoles); got.Width != 0 || got.Color.A != 0 {
		t.Errorf("out of range role: %+v", got)
	}
	if RoleRadius.String() != "radius" || Role(99).String() != "unknown" {
		t.Error("role names")
	}
	if d := p.Style(RoleRadius).Dash; !slices.Equal(d, []float64{6, 4}) {
		t.Errorf("radius dash %v", d)
	}
}

func TestArrowHead(t *testing.T) {
	left, right := ArrowHead(viewport.PixelPoint{X: 0, Y: 0}, viewport.PixelPoint{X: 20, Y: 0})
	dx := ArrowHeadLength * math.Cos(ArrowHeadAngle)
	dy := ArrowHeadLength * math.Sin(ArrowHeadAngle)
	if math.Abs(left.X-(20-dx)) > 1e-9 || math.Abs(left.Y-dy) > 1e-9 {
		t.Errorf("left = %v", left)
	}
	if math.Abs(right.X-(20-dx)) > 1e-9 || math.Abs(right.Y+dy) > 1e-9 {
		t.Errorf("right = %v", right)
	}
}
