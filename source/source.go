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

// Package source defines the contract between rasterization algorithms and
// the playback controller.
//
// An algorithm is exposed as a Source, a pull-based sequence of PlotEvent
// values. Each event reports the pixels the algorithm decided on in one
// step, optionally together with a row for the step table and a set of
// named diagnostic values.
package source

import (
	"iter"

	"seehuhn.de/go/rastervis/viewport"
)

// Tag is a semantic colour hint attached to a plotted pixel.
// The renderer maps tags to colours; unknown tags use the default colour.
type Tag string

// TagMirror marks pixels which were obtained by symmetry rather than
// computed directly.
const TagMirror Tag = "mirror"

// Pixel is one plotted lattice point.
type Pixel struct {
	At  viewport.GridPoint
	Tag Tag
}

// Row is one line of the step table.
type Row struct {
	Headers []string
	Values  []string
}

// Field is a named diagnostic value.
type Field struct {
	Name  string
	Value string
}

// PlotEvent is one unit of algorithm progress.
type PlotEvent struct {
	// Plot lists the pixels decided in this step, in generation order.
	// Several pixels in one event are symmetric points produced together.
	Plot []Pixel

	// Row, if non-nil, is appended to the step table.
	Row *Row

	// Info, if non-empty, replaces the contents of the info panel.
	Info []Field
}

// Last returns the final pixel of the event.
// The second return value is false if the event plots no pixels.
func (e PlotEvent) Last() (Pixel, bool) {
	if len(e.Plot) == 0 {
		return Pixel{}, false
	}
	return e.Plot[len(e.Plot)-1], true
}

// Lookup returns the value of the named info field.
func (e PlotEvent) Lookup(name string) (string, bool) {
	for _, f := range e.Info {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Source is a restartable, stateful sequence of plot events.
//
// Next returns the next event. Once it has returned false, all further
// calls return false as well. Stop releases the resources held by the
// source; it may be called at any time, more than once, and makes the
// source exhausted.
type Source interface {
	Next() (PlotEvent, bool)
	Stop()
}

// Empty returns a source which is exhausted from the start.
func Empty() Source {
	return empty{}
}

type empty struct{}

func (empty) Next() (PlotEvent, bool) { return PlotEvent{}, false }
func (empty) Stop()                   {}

// FromSeq turns an iterator into a Source.
// The iterator does not run until the first call to Next.
func FromSeq(seq iter.Seq[PlotEvent]) Source {
	return &seqSource{seq: seq}
}

type seqSource struct {
	seq  iter.Seq[PlotEvent]
	next func() (PlotEvent, bool)
	stop func()
	done bool
}

func (s *seqSource) Next() (PlotEvent, bool) {
	if s.done {
		return PlotEvent{}, false
	}
	if s.next == nil {
		s.next, s.stop = iter.Pull(s.seq)
	}
	ev, ok := s.next()
	if !ok {
		s.Stop()
	}
	return ev, ok
}

func (s *seqSource) Stop() {
	s.done = true
	if s.stop != nil {
		s.stop()
		s.stop = nil
		s.next = nil
	}
}

// FromEvents returns a source which replays the given events.
func FromEvents(events ...PlotEvent) Source {
	return FromSeq(func(yield func(PlotEvent) bool) {
		for _, ev := range events {
			if !yield(ev) {
				return
			}
		}
	})
}
