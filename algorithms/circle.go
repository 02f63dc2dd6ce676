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

var circleHeaders = []string{"k", "x", "y", "d"}

// BresenhamCircle rasterises the circle around center with radius r.
// Center and radius are rounded to integers first.
//
// The algorithm walks the octant from (0, r) to the diagonal, starting
// with d = 3 - 2r. Each event plots the eight symmetric pixels; the
// reflections are tagged with source.TagMirror and come first, so that
// the computed octant pixel is the last one of the event.
func BresenhamCircle(center viewport.GridPoint, r float64) iter.Seq[source.PlotEvent] {
	return func(yield func(source.PlotEvent) bool) {
		xc, yc := lattice(center)
		radius := roundHalfUp(r)

		x, y := 0, radius
		d := 3 - 2*radius
		info := []source.Field{
			{Name: "center", Value: "(" + itoa(xc) + ", " + itoa(yc) + ")"},
			{Name: "radius", Value: itoa(radius)},
			{Name: "d0", Value: itoa(d)},
		}

		for k := 0; x <= y; k++ {
			ev := source.PlotEvent{
				Plot: octants(xc, yc, x, y),
				Row: &source.Row{
					Headers: circleHeaders,
					Values:  []string{itoa(k), itoa(x), itoa(y), itoa(d)},
				},
				Info: info,
			}
			if !yield(ev) {
				return
			}

			if d < 0 {
				d += 4*x + 6
			} else {
				d += 4*(x-y) + 10
				y--
			}
			x++
		}
	}
}

// octants returns the eight reflections of (x, y) around (xc, yc),
// without duplicates. The pixel (xc+x, yc+y) comes last.
func octants(xc, yc, x, y int) []source.Pixel {
	cand := [8][2]int{
		{xc + y, yc + x},
		{xc + y, yc - x},
		{xc - x, yc + y},
		{xc - x, yc - y},
		{xc - y, yc + x},
		{xc - y, yc - x},
		{xc + x, yc - y},
		{xc + x, yc + y},
	}
	res := make([]source.Pixel, 0, len(cand))
	for i, c := range cand {
		dup := false
		for _, d := range cand[i+1:] {
			if d == c {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		tag := source.TagMirror
		if i == len(cand)-1 {
			tag = ""
		}
		res = append(res, pixel(c[0], c[1], tag))
	}
	return res
}
