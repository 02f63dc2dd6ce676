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

package viewport

import (
	"iter"
	"math"
	"strconv"
)

// TickStep returns the distance between labelled ticks, in grid units,
// for the given scale. Low zoom levels use sparser ticks to avoid
// overlapping labels.
func TickStep(scale float64) int {
	switch {
	case scale < 12:
		return 5
	case scale < 18:
		return 4
	case scale < 30:
		return 2
	default:
		return 1
	}
}

// Tick is one axis tick.
type Tick struct {
	Value int     // grid coordinate along the axis
	Pixel float64 // device coordinate along the axis
}

// Label returns the text printed next to the tick.
func (t Tick) Label() string {
	return strconv.Itoa(t.Value)
}

// XTicks iterates over the ticks on the x axis which fall into the
// visible range.
func (v *Viewport) XTicks() iter.Seq[Tick] {
	step := TickStep(v.scale)
	lo := int(math.Floor((0 - v.origin.X) / v.scale))
	hi := int(math.Ceil((v.width - v.origin.X) / v.scale))
	return func(yield func(Tick) bool) {
		for gx := lo; gx <= hi; gx += step {
			if !yield(Tick{Value: gx, Pixel: v.origin.X + float64(gx)*v.scale}) {
				return
			}
		}
	}
}

// YTicks iterates over the ticks on the y axis which fall into the
// visible range, from bottom to top.
func (v *Viewport) YTicks() iter.Seq[Tick] {
	step := TickStep(v.scale)
	lo := int(math.Floor((v.origin.Y - v.height) / v.scale))
	hi := int(math.Ceil((v.origin.Y - 0) / v.scale))
	return func(yield func(Tick) bool) {
		for gy := lo; gy <= hi; gy += step {
			if !yield(Tick{Value: gy, Pixel: v.origin.Y - float64(gy)*v.scale}) {
				return
			}
		}
	}
}

// LabelPolicy decides which tick labels are printed.
type LabelPolicy struct {
	// ShowZeroY prints the "0" label on the y axis even in centered mode,
	// where it would otherwise collide with the x axis label.
	ShowZeroY bool
}

// ShowY reports whether the y-axis tick t gets a label.
func (p LabelPolicy) ShowY(t Tick, mode OriginMode) bool {
	return t.Value != 0 || mode == TopLeft || p.ShowZeroY
}
