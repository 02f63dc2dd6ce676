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

// Package render draws the visualizer scene: the grid, the axes, the
// algorithm inputs and the plotted pixels.
//
// A Scene records what playback has drawn so far and repaints it onto any
// Canvas. Three canvases are provided: ImageCanvas rasterises into an
// *image.RGBA, GGCanvas draws through github.com/gogpu/gg and WritePDF
// produces a vector copy of the scene.
package render

import (
	"math"

	"seehuhn.de/go/rastervis/viewport"
)

// Canvas is a drawing surface in device coordinates, with y pointing down.
type Canvas interface {
	// Size returns the dimensions of the canvas in device pixels.
	Size() (width, height int)

	// Clear fills the whole canvas with the style colour.
	Clear(s Style)

	// Line strokes a straight line, dashed if the style has a dash pattern.
	Line(a, b viewport.PixelPoint, s Style)

	// Square fills an axis-aligned square with the given top-left corner.
	Square(corner viewport.PixelPoint, size float64, s Style)

	// Dot fills a disk.
	Dot(center viewport.PixelPoint, radius float64, s Style)

	// Circle strokes the outline of a circle.
	Circle(center viewport.PixelPoint, radius float64, s Style)

	// Arrow strokes a line from "from" to "to" and fills an arrow head at
	// "to".
	Arrow(from, to viewport.PixelPoint, s Style)

	// Text draws a string with its baseline starting at the given point.
	Text(at viewport.PixelPoint, text string, s Style)
}

// Arrow head geometry, in device pixels and radians.
const (
	ArrowHeadLength = 8
	ArrowHeadAngle  = math.Pi / 6
)

// ArrowHead returns the two back corners of the arrow head for an arrow
// ending at "to". The third corner is "to" itself.
func ArrowHead(from, to viewport.PixelPoint) (left, right viewport.PixelPoint) {
	ang := math.Atan2(to.Y-from.Y, to.X-from.X)
	left = viewport.PixelPoint{
		X: to.X - ArrowHeadLength*math.Cos(ang-ArrowHeadAngle),
		Y: to.Y - ArrowHeadLength*math.Sin(ang-ArrowHeadAngle),
	}
	right = viewport.PixelPoint{
		X: to.X - ArrowHeadLength*math.Cos(ang+ArrowHeadAngle),
		Y: to.Y - ArrowHeadLength*math.Sin(ang+ArrowHeadAngle),
	}
	return left, right
}
