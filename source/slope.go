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

package source

import (
	"strconv"

	"seehuhn.de/go/rastervis/viewport"
)

// Slope readouts which are not numbers.
const (
	SlopeInfinite = "Infinity"
	SlopeNone     = "—"
)

// SlopeField is the name of the info field mirrored into the slope readout.
const SlopeField = "slope"

// Slope formats the slope of the line through p1 and p2.
// Vertical lines give SlopeInfinite, a single point gives "0".
func Slope(p1, p2 viewport.GridPoint) string {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	if dx == 0 {
		if dy == 0 {
			return "0"
		}
		return SlopeInfinite
	}
	return strconv.FormatFloat(dy/dx, 'f', 3, 64)
}
