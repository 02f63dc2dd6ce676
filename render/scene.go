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
	"math"

	"seehuhn.de/go/rastervis/playback"
	"seehuhn.de/go/rastervis/source"
	"seehuhn.de/go/rastervis/viewport"
)

// Mark is one item drawn by playback: either a plotted pixel or a
// direction arrow.
type Mark struct {
	Arrow    bool
	Pixel    source.Pixel       // if !Arrow
	From, To viewport.GridPoint // if Arrow
}

// Scene is the retained drawing state of the visualizer.
// It implements playback.Painter, so that everything plotted during an
// episode survives panning and zooming.
type Scene struct {
	View    *viewport.Viewport
	Palette *Palette
	Labels  viewport.LabelPolicy

	kind   source.Kind
	params source.Params
	marks  []Mark

	ghost        viewport.GridPoint
	ghostVisible bool
	ghostSnapped bool
}

var _ playback.Painter = (*Scene)(nil)

// NewScene returns an empty scene drawn with the default palette.
func NewScene(v *viewport.Viewport) *Scene {
	return &Scene{
		View:    v,
		Palette: DefaultPalette(),
	}
}

// SetInputs sets the algorithm inputs which are drawn underneath the
// plotted pixels.
func (s *Scene) SetInputs(kind source.Kind, p source.Params) {
	s.kind = kind
	s.params = p
}

// BeginEpisode discards all pixels and arrows.
func (s *Scene) BeginEpisode() {
	s.marks = s.marks[:0]
}

// PlotPixel records a plotted pixel.
func (s *Scene) PlotPixel(p source.Pixel) {
	s.marks = append(s.marks, Mark{Pixel: p})
}

// PlotArrow records a direction arrow.
func (s *Scene) PlotArrow(from, to viewport.GridPoint) {
	s.marks = append(s.marks, Mark{Arrow: true, From: from, To: to})
}

// Marks returns the pixels and arrows of the current episode, in drawing
// order. The slice must not be modified.
func (s *Scene) Marks() []Mark {
	return s.marks
}

// SetGhost shows the hover preview at g.
func (s *Scene) SetGhost(g viewport.GridPoint, snapped bool) {
	s.ghost = g
	s.ghostVisible = true
	s.ghostSnapped = snapped
}

// HideGhost removes the hover preview.
func (s *Scene) HideGhost() {
	s.ghostVisible = false
}

// MarkerSize returns the side length of a plotted pixel marker.
func MarkerSize(scale float64) float64 {
	return clamp(scale/4, 2, 6)
}

// EndpointRadius returns the radius of the input endpoint dots.
func EndpointRadius(scale float64) float64 {
	return clamp(scale/4, 3, 6)
}

// LabelSize returns the font size of the tick labels.
func LabelSize(scale float64) float64 {
	return clamp(scale/1.8, 10, 14)
}

func clamp(x, lo, hi float64) float64 {
	return max(lo, min(hi, x))
}

// Paint draws the complete scene onto c.
func (s *Scene) Paint(c Canvas) {
	c.Clear(s.Palette.Style(RoleBackground))
	s.paintGrid(c)
	s.paintAxes(c)
	s.paintInputs(c)

	size := MarkerSize(s.View.Scale())
	arrow := s.Palette.Style(RoleArrow)
	for _, m := range s.marks {
		if m.Arrow {
			c.Arrow(s.View.ToPixel(m.From), s.View.ToPixel(m.To), arrow)
			continue
		}
		c.Square(s.markerCorner(m.Pixel.At, size), size, s.Palette.PixelStyle(m.Pixel.Tag))
	}

	if s.ghostVisible {
		role := RoleGhost
		if s.ghostSnapped {
			role = RoleGhostSnapped
		}
		p := s.View.ToPixel(s.ghost)
		corner := viewport.PixelPoint{X: math.Round(p.X) - 2, Y: math.Round(p.Y) - 2}
		c.Square(corner, 4, s.Palette.Style(role))
	}
}

// markerCorner snaps a marker to whole device pixels.
func (s *Scene) markerCorner(g viewport.GridPoint, size float64) viewport.PixelPoint {
	p := s.View.ToPixel(g)
	half := math.Floor(size / 2)
	return viewport.PixelPoint{X: math.Round(p.X) - half, Y: math.Round(p.Y) - half}
}

func (s *Scene) paintGrid(c Canvas) {
	w, h := s.View.Size()
	scale := s.View.Scale()
	o := s.View.Origin()
	grid := s.Palette.Style(RoleGrid)
	for x := math.Mod(o.X, scale); x <= w; x += scale {
		c.Line(viewport.PixelPoint{X: x, Y: 0}, viewport.PixelPoint{X: x, Y: h}, grid)
	}
	for y := math.Mod(o.Y, scale); y <= h; y += scale {
		c.Line(viewport.PixelPoint{X: 0, Y: y}, viewport.PixelPoint{X: w, Y: y}, grid)
	}
}

func (s *Scene) paintAxes(c Canvas) {
	w, h := s.View.Size()
	o := s.View.Origin()
	axis := s.Palette.Style(RoleAxis)
	c.Line(viewport.PixelPoint{X: 0, Y: o.Y}, viewport.PixelPoint{X: w, Y: o.Y}, axis)
	c.Line(viewport.PixelPoint{X: o.X, Y: 0}, viewport.PixelPoint{X: o.X, Y: h}, axis)

	tick := s.Palette.Style(RoleTick)
	label := s.Palette.Style(RoleLabel)
	label.FontSize = LabelSize(s.View.Scale())
	for t := range s.View.XTicks() {
		c.Line(viewport.PixelPoint{X: t.Pixel, Y: o.Y - 6}, viewport.PixelPoint{X: t.Pixel, Y: o.Y + 6}, tick)
		c.Text(viewport.PixelPoint{X: t.Pixel - 8, Y: o.Y + 16}, t.Label(), label)
	}
	mode := s.View.Mode()
	for t := range s.View.YTicks() {
		c.Line(viewport.PixelPoint{X: o.X - 6, Y: t.Pixel}, viewport.PixelPoint{X: o.X + 6, Y: t.Pixel}, tick)
		if s.Labels.ShowY(t, mode) {
			c.Text(viewport.PixelPoint{X: o.X + 8, Y: t.Pixel + 4}, t.Label(), label)
		}
	}
}

func (s *Scene) paintInputs(c Canvas) {
	scale := s.View.Scale()
	endpoint := s.Palette.Style(RoleEndpoint)
	r := EndpointRadius(scale)

	if s.kind == source.KindCircle {
		circle := s.params.Circle
		center := s.View.ToPixel(circle.Center)
		c.Dot(center, r, endpoint)
		if math.IsNaN(circle.R) {
			return
		}
		c.Circle(center, max(2, circle.R*scale), s.Palette.Style(RoleGuide))
		rim := s.View.ToPixel(viewport.GridPoint{X: circle.Center.X + circle.R, Y: circle.Center.Y})
		c.Line(center, rim, s.Palette.Style(RoleRadius))
		return
	}

	c.Dot(s.View.ToPixel(s.params.Line.P1), r, endpoint)
	c.Dot(s.View.ToPixel(s.params.Line.P2), r, endpoint)
}
