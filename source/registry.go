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
	"errors"
	"fmt"
	"maps"
	"slices"

	"seehuhn.de/go/rastervis/viewport"
)

// Algorithm identifies a registered rasterization algorithm.
type Algorithm string

// Identifiers of the bundled algorithms.
const (
	DDA             Algorithm = "dda"
	BresenhamLine   Algorithm = "bresenham_line"
	BresenhamCircle Algorithm = "bresenham_circle"
)

// Kind tells which set of inputs an algorithm consumes.
type Kind int

const (
	// KindLine algorithms use the two endpoints of Params.Line.
	KindLine Kind = iota

	// KindCircle algorithms use Params.Circle.
	KindCircle
)

func (k Kind) String() string {
	if k == KindCircle {
		return "circle"
	}
	return "line"
}

// Line holds the inputs of a line algorithm.
type Line struct {
	P1, P2 viewport.GridPoint
}

// Circle holds the inputs of a circle algorithm.
type Circle struct {
	Center viewport.GridPoint
	R      float64
}

// Params holds the inputs for all algorithm kinds.
// Each algorithm reads only the part matching its Kind.
type Params struct {
	Line   Line
	Circle Circle
}

// Factory constructs a source from the given inputs.
// Factories must not do any rasterization work; all work happens in Next.
type Factory func(Params) (Source, error)

// ErrDuplicate is returned when an algorithm is registered twice.
var ErrDuplicate = errors.New("algorithm already registered")

type entry struct {
	kind    Kind
	factory Factory
}

// Registry maps algorithm identifiers to source factories.
// Every identifier has exactly one factory.
type Registry struct {
	entries map[Algorithm]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Algorithm]entry)}
}

// Register adds a factory for the algorithm.
func (r *Registry) Register(algo Algorithm, kind Kind, f Factory) error {
	if f == nil {
		return fmt.Errorf("%s: nil factory", algo)
	}
	if _, seen := r.entries[algo]; seen {
		return fmt.Errorf("%s: %w", algo, ErrDuplicate)
	}
	r.entries[algo] = entry{kind: kind, factory: f}
	return nil
}

// Kind returns the input kind of the algorithm.
// The second return value is false if the algorithm is not registered.
func (r *Registry) Kind(algo Algorithm) (Kind, bool) {
	e, ok := r.entries[algo]
	return e.kind, ok
}

// Algorithms returns the registered identifiers in sorted order.
func (r *Registry) Algorithms() []Algorithm {
	return slices.Sorted(maps.Keys(r.entries))
}

// New constructs a source for the algorithm.
//
// New never fails. If the algorithm is unknown, or if its factory returns an
// error or panics, New returns an empty source together with a
// human-readable diagnostic. The diagnostic is empty on success.
func (r *Registry) New(algo Algorithm, p Params) (src Source, diag string) {
	e, ok := r.entries[algo]
	if !ok {
		return Empty(), fmt.Sprintf("algorithm %q not available", algo)
	}

	defer func() {
		if v := recover(); v != nil {
			src = Empty()
			diag = fmt.Sprintf("%s: %v", algo, v)
		}
	}()
	src, err := e.factory(p)
	if err != nil {
		return Empty(), fmt.Sprintf("%s: %v", algo, err)
	}
	if src == nil {
		return Empty(), fmt.Sprintf("%s: no source", algo)
	}
	return src, ""
}
