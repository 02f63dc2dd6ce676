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

	"seehuhn.de/go/rastervis/source"
	"seehuhn.de/go/rastervis/viewport"
)

var bresenhamHeaders = []string{"k", "x", "y", "p"}

// BresenhamLine rasterises the line from p1 to p2 with integer arithmetic
// only. The endpoints are first rounded to lattice points.
//
// The decision parameter p starts at 2·dminor - dmajor. When p is
// non-negative the minor coordinate advances and p decreases by
// 2·dmajor; in every step p increases by 2·dminor. The table shows the
// value of p which decided the next pixel.
func BresenhamLine(p1, p2 viewport.GridPoint) iter.Seq[source.PlotEvent] {
	return func(yield func(source.PlotEvent) bool) {
		x, y := lattice(p1)
		x2, y2 := lattice(p2)

		dx, sx := x2-x, 1
		if dx < 0 {
			dx, sx = -dx, -1
		}
		dy, sy := y2-y, 1
		if dy < 0 {
			dy, sy = -dy, -1
		}

		// step along the major axis, as in a first-octant line
		swap := dy > dx
		dmajor, dminor := dx, dy
		if swap {
			dmajor, dminor = dy, dx
		}

		p := 2*dminor - dmajor
		info := []source.Field{
			{Name: "dx", Value: itoa(dx)},
			{Name: "dy", Value: itoa(dy)},
			{Name: "p0", Value: itoa(p)},
			{Name: source.SlopeField, Value: source.Slope(p1, p2)},
		}

		for k := 0; k <= dmajor; k++ {
			pk := "-"
			if k < dmajor {
				pk = itoa(p)
			}
			ev := source.PlotEvent{
				Plot: []source.Pixel{pixel(x, y, "")},
				Row: &source.Row{
					Headers: bresenhamHeaders,
					Values:  []string{itoa(k), itoa(x), itoa(y), pk},
				},
				Info: info,
			}
			if !yield(ev) {
				return
			}

			minorStep := p >= 0
			if minorStep {
				p -= 2 * dmajor
			}
			p += 2 * dminor
			if swap {
				y += sy
				if minorStep {
					x += sx
				}
			} else {
				x += sx
				if minorStep {
					y += sy
				}
			}
		}
	}
}
