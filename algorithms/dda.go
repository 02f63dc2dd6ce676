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

package algorithms

import (
	"iter"
	"math"

	"seehuhn.de/go/rastervis/source"
	"seehuhn.de/go/rastervis/viewport"
)

var ddaHeaders = []string{"k", "x", "y", "round(x)", "round(y)"}

// DDA rasterises the line from p1 to p2 with the digital differential
// analyzer: the longer axis is sampled at unit steps and the other
// coordinate is incremented by the slope and rounded.
//
// Endpoints need not be lattice points. Each event plots one pixel.
func DDA(p1, p2 viewport.GridPoint) iter.Seq[source.PlotEvent] {
	return func(yield func(source.PlotEvent) bool) {
		dx := p2.X - p1.X
		dy := p2.Y - p1.Y
		steps := roundHalfUp(max(math.Abs(dx), math.Abs(dy)))

		var xInc, yInc float64
		if steps > 0 {
			xInc = dx / float64(steps)
			yInc = dy / float64(steps)
		}
		info := []source.Field{
			{Name: "steps", Value: itoa(steps)},
			{Name: "x increment", Value: ftoa(xInc)},
			{Name: "y increment", Value: ftoa(yInc)},
			{Name: source.SlopeField, Value: source.Slope(p1, p2)},
		}

		x, y := p1.X, p1.Y
		for k := 0; k <= steps; k++ {
			px, py := roundHalfUp(x), roundHalfUp(y)
			ev := source.PlotEvent{
				Plot: []source.Pixel{pixel(px, py, "")},
				Row: &source.Row{
					Headers: ddaHeaders,
					Values:  []string{itoa(k), ftoa(x), ftoa(y), itoa(px), itoa(py)},
				},
				Info: info,
			}
			if !yield(ev) {
				return
			}
			// recompute from the start point to avoid drift
			x = p1.X + float64(k+1)*xInc
			y = p1.Y + float64(k+1)*yInc
		}
	}
}
