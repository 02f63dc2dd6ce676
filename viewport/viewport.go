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

// Package viewport maps between continuous grid coordinates and device
// pixels for a pannable, zoomable drawing surface.
//
// Grid space has its y axis pointing up; device space has its origin in the
// top-left corner of the canvas and its y axis pointing down.
package viewport

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// GridPoint is a position in grid space.
type GridPoint vec.Vec2

// PixelPoint is a position in device space.
type PixelPoint vec.Vec2

// Snap returns the lattice point nearest to g. Halves round up.
func (g GridPoint) Snap() GridPoint {
	return GridPoint{X: math.Floor(g.X + 0.5), Y: math.Floor(g.Y + 0.5)}
}

// OriginMode selects where grid (0,0) sits before panning is applied.
type OriginMode int

const (
	// Centered places the grid origin in the middle of the canvas.
	Centered OriginMode = iota

	// TopLeft places the grid origin in the top-left canvas corner.
	TopLeft
)

func (m OriginMode) String() string {
	switch m {
	case Centered:
		return "center"
	case TopLeft:
		return "topleft"
	default:
		return "unknown"
	}
}

// Limits for the scale, in pixels per grid unit.
const (
	MinScale  = 6
	MaxScale  = 120
	ZoomStep  = 2
	initScale = 20
)

// Viewport holds the parameters of the grid-to-pixel mapping.
//
// The origin is derived state. Every method which changes the origin mode,
// the pan offset, the scale or the canvas size recomputes it before
// returning, so the transform methods never observe a stale origin.
//
// A Viewport is not safe for concurrent use.
type Viewport struct {
	scale  float64
	mode   OriginMode
	pan    vec.Vec2
	width  float64
	height float64

	origin vec.Vec2
}

// New returns a viewport for a canvas of the given size.
// The scale is clamped to [MinScale, MaxScale].
func New(width, height, scale float64, mode OriginMode) *Viewport {
	if scale <= 0 || math.IsNaN(scale) {
		scale = initScale
	}
	v := &Viewport{
		scale:  clampScale(scale),
		mode:   mode,
		width:  width,
		height: height,
	}
	v.recompute()
	return v
}

// Scale returns the current number of pixels per grid unit.
func (v *Viewport) Scale() float64 { return v.scale }

// Mode returns the current origin mode.
func (v *Viewport) Mode() OriginMode { return v.mode }

// Pan returns the current pan offset in pixels.
func (v *Viewport) Pan() vec.Vec2 { return v.pan }

// Size returns the canvas size in pixels.
func (v *Viewport) Size() (width, height float64) { return v.width, v.height }

// Origin returns the device position of grid (0,0).
func (v *Viewport) Origin() PixelPoint { return PixelPoint(v.origin) }

// recompute derives the origin from mode, canvas size and pan.
func (v *Viewport) recompute() {
	var base vec.Vec2
	if v.mode == Centered {
		base = vec.Vec2{X: v.width / 2, Y: v.height / 2}
	}
	v.origin = base.Add(v.pan)
}

// ToGrid maps a device position to grid space.
func (v *Viewport) ToGrid(p PixelPoint) GridPoint {
	return GridPoint{
		X: (p.X - v.origin.X) / v.scale,
		Y: (v.origin.Y - p.Y) / v.scale,
	}
}

// ToPixel maps a grid position to device space.
// This is the exact inverse of ToGrid.
func (v *Viewport) ToPixel(g GridPoint) PixelPoint {
	return PixelPoint{
		X: v.origin.X + g.X*v.scale,
		Y: v.origin.Y - g.Y*v.scale,
	}
}

// CTM returns the grid-to-device transformation as an affine matrix.
func (v *Viewport) CTM() matrix.Matrix {
	return matrix.Matrix{v.scale, 0, 0, -v.scale, v.origin.X, v.origin.Y}
}

// Visible returns the part of grid space covered by the canvas.
func (v *Viewport) Visible() rect.Rect {
	ll := v.ToGrid(PixelPoint{X: 0, Y: v.height})
	ur := v.ToGrid(PixelPoint{X: v.width, Y: 0})
	return rect.Rect{LLx: ll.X, LLy: ll.Y, URx: ur.X, URy: ur.Y}
}

// Resize changes the canvas size. The pan offset is kept.
func (v *Viewport) Resize(width, height float64) {
	v.width = width
	v.height = height
	v.recompute()
}

// SetOriginMode switches the origin mode and clears the pan offset.
func (v *Viewport) SetOriginMode(mode OriginMode) {
	v.mode = mode
	v.pan = vec.Vec2{}
	v.recompute()
}

// SetScale sets the scale directly, clamped to [MinScale, MaxScale].
// The pan offset is kept, so the grid scales around the origin.
func (v *Viewport) SetScale(scale float64) {
	if math.IsNaN(scale) {
		return
	}
	v.scale = clampScale(scale)
	v.recompute()
}

// PanBy moves the grid by the given device-space delta.
func (v *Viewport) PanBy(dx, dy float64) {
	v.pan = v.pan.Add(vec.Vec2{X: dx, Y: dy})
	v.recompute()
}

// ZoomAtCursor changes the scale by one ZoomStep while keeping the grid
// point under the cursor at the same device position.
// A positive dir zooms in, a negative dir zooms out, zero does nothing.
func (v *Viewport) ZoomAtCursor(cursor PixelPoint, dir int) {
	if dir == 0 {
		return
	}
	before := v.ToGrid(cursor)
	if dir > 0 {
		v.scale = clampScale(v.scale + ZoomStep)
	} else {
		v.scale = clampScale(v.scale - ZoomStep)
	}
	v.recompute()

	// after uses the new scale with the old pan
	after := v.ToGrid(cursor)
	v.pan.X += (after.X - before.X) * v.scale
	v.pan.Y += (before.Y - after.Y) * v.scale
	v.recompute()
}

func clampScale(s float64) float64 {
	return max(MinScale, min(MaxScale, s))
}
