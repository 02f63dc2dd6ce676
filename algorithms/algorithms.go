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

// Package algorithms provides the classic raster algorithms taught in
// computer graphics courses, as step-by-step plot event sequences.
//
// Every algorithm emits one event per decision, with a table row showing
// the values of its state variables. Nothing is computed until the
// sequence is iterated.
package algorithms

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"seehuhn.de/go/rastervis/source"
	"seehuhn.de/go/rastervis/viewport"
)

// ErrInvalidInput is returned by the factories for inputs which are not
// finite numbers, exceed MaxCoordinate in magnitude, or for a negative
// radius.
var ErrInvalidInput = errors.New("invalid algorithm input")

// MaxCoordinate bounds the magnitude of coordinates and radii, so that
// all lattice points fit into an int.
const MaxCoordinate = 1 << 30

// Register adds all algorithms of this package to reg.
func Register(reg *source.Registry) error {
	entries := []struct {
		algo source.Algorithm
		kind source.Kind
		f    source.Factory
	}{
		{source.DDA, source.KindLine, newDDA},
		{source.BresenhamLine, source.KindLine, newBresenhamLine},
		{source.BresenhamCircle, source.KindCircle, newBresenhamCircle},
	}
	for _, e := range entries {
		if err := reg.Register(e.algo, e.kind, e.f); err != nil {
			return err
		}
	}
	return nil
}

// Default returns a registry holding all algorithms of this package.
func Default() *source.Registry {
	reg := source.NewRegistry()
	if err := Register(reg); err != nil {
		// a fresh registry cannot contain duplicates
		panic(err)
	}
	return reg
}

func newDDA(p source.Params) (source.Source, error) {
	if err := checkLine(p.Line); err != nil {
		return nil, err
	}
	return source.FromSeq(DDA(p.Line.P1, p.Line.P2)), nil
}

func newBresenhamLine(p source.Params) (source.Source, error) {
	if err := checkLine(p.Line); err != nil {
		return nil, err
	}
	return source.FromSeq(BresenhamLine(p.Line.P1, p.Line.P2)), nil
}

func newBresenhamCircle(p source.Params) (source.Source, error) {
	c := p.Circle
	if !inRange(c.Center.X, c.Center.Y, c.R) || !inRange(c.Center.X+c.R, c.Center.Y+c.R, c.Center.X-c.R, c.Center.Y-c.R) {
		return nil, fmt.Errorf("circle (%g, %g) r=%g: %w", c.Center.X, c.Center.Y, c.R, ErrInvalidInput)
	}
	if c.R < 0 {
		return nil, fmt.Errorf("negative radius %g: %w", c.R, ErrInvalidInput)
	}
	return source.FromSeq(BresenhamCircle(c.Center, c.R)), nil
}

func checkLine(l source.Line) error {
	if !inRange(l.P1.X, l.P1.Y, l.P2.X, l.P2.Y) {
		return fmt.Errorf("line (%g, %g)-(%g, %g): %w", l.P1.X, l.P1.Y, l.P2.X, l.P2.Y, ErrInvalidInput)
	}
	return nil
}

// inRange reports whether all xs are finite with magnitude at most
// MaxCoordinate.
func inRange(xs ...float64) bool {
	for _, x := range xs {
		if !(math.Abs(x) <= MaxCoordinate) {
			return false
		}
	}
	return true
}

// roundHalfUp rounds to the nearest integer, with halves rounded towards
// positive infinity.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// lattice rounds a grid point to the nearest lattice point.
func lattice(g viewport.GridPoint) (int, int) {
	return roundHalfUp(g.X), roundHalfUp(g.Y)
}

func pixel(x, y int, tag source.Tag) source.Pixel {
	return source.Pixel{At: viewport.GridPoint{X: float64(x), Y: float64(y)}, Tag: tag}
}

func itoa(i int) string { return strconv.Itoa(i) }

func ftoa(x float64) string { return strconv.FormatFloat(x, 'f', 2, 64) }
