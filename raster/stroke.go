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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke describes how a path is outlined.
// Joins are always round.
type Stroke struct {
	Width float64

	// Cap is the shape at the ends of open subpaths and dashes.
	// The zero value is graphics.LineCapButt.
	Cap graphics.LineCapStyle

	// Dash holds alternating on/off lengths, starting with "on".
	// An empty pattern, or one with total length zero, draws a solid line.
	Dash      []float64
	DashPhase float64
}

// subpath is a range of points in a flattened polyline buffer.
type subpath struct {
	start, end int
	closed     bool
}

// kappa places the control points of a cubic Bézier quarter circle.
const kappa = 0.5522847498307936

// AppendDisk appends a closed circle around c to p and returns p.
// The circle is traversed with the same orientation as the segment
// outlines generated by Stroke, so that the union of both fills
// correctly under the nonzero rule.
func AppendDisk(p *path.Data, c vec.Vec2, radius float64) *path.Data {
	d := radius
	k := radius * kappa
	at := func(x, y float64) vec.Vec2 { return vec.Vec2{X: c.X + x, Y: c.Y + y} }
	return p.
		MoveTo(at(d, 0)).
		CubeTo(at(d, -k), at(k, -d), at(0, -d)).
		CubeTo(at(-k, -d), at(-d, -k), at(-d, 0)).
		CubeTo(at(-d, k), at(-k, d), at(0, d)).
		CubeTo(at(k, d), at(d, k), at(d, 0)).
		Close()
}

// Stroke computes the coverage of the outline of p and passes it to emit
// row by row. The stroke width is measured in path coordinates.
func (r *Rasteriser) Stroke(p *path.Data, s Stroke, emit EmitFunc) {
	if !(s.Width > 0) {
		return
	}

	r.flattenSubpaths(p)
	pts, subs := r.poly, r.subs
	if dashLength(s.Dash) > 0 {
		r.applyDash(s.Dash, s.DashPhase)
		pts, subs = r.dashPoly, r.dashSubs
	}

	r.outline.Cmds = r.outline.Cmds[:0]
	r.outline.Coords = r.outline.Coords[:0]
	d := s.Width / 2
	for _, sp := range subs {
		r.outlineSubpath(pts[sp.start:sp.end], sp.closed, d, s.Cap)
	}
	r.Fill(&r.outline, NonZero, emit)
}

// flattenSubpaths converts p into polylines. Closed subpaths repeat their
// first point at the end.
func (r *Rasteriser) flattenSubpaths(p *path.Data) {
	r.poly = r.poly[:0]
	r.subs = r.subs[:0]

	start := -1
	var first vec.Vec2
	add := func(v vec.Vec2) {
		if start < 0 {
			start = len(r.poly)
			r.poly = append(r.poly, first)
		}
		if v != r.poly[len(r.poly)-1] {
			r.poly = append(r.poly, v)
		}
	}
	finish := func(closed bool) {
		if start < 0 {
			return
		}
		if closed {
			add(first)
		}
		r.subs = append(r.subs, subpath{start: start, end: len(r.poly), closed: closed})
		start = -1
	}
	lineTo := func(_, b vec.Vec2) { add(b) }

	k := 0
	cur := vec.Vec2{}
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			first = p.Coords[k]
			cur = first
			start = len(r.poly)
			r.poly = append(r.poly, first)
			k++
		case path.CmdLineTo:
			add(p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			q, end := p.Coords[k], p.Coords[k+1]
			c1 := cur.Add(q.Sub(cur).Mul(2.0 / 3))
			c2 := end.Add(q.Sub(end).Mul(2.0 / 3))
			r.flattenCubic(cur, c1, c2, end, lineTo)
			cur = end
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2], lineTo)
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			finish(true)
			cur = first
		}
	}
	finish(false)
}

func dashLength(dash []float64) float64 {
	total := 0.0
	for _, d := range dash {
		if d < 0 {
			return 0
		}
		total += d
	}
	if len(dash)%2 == 1 {
		total *= 2
	}
	return total
}

// applyDash splits the flattened subpaths into open dashes. The pattern
// restarts at the beginning of every subpath.
func (r *Rasteriser) applyDash(dash []float64, phase float64) {
	r.dashPoly = r.dashPoly[:0]
	r.dashSubs = r.dashSubs[:0]

	phase = math.Mod(phase, dashLength(dash))
	if phase < 0 {
		phase += dashLength(dash)
	}
	n := len(dash)

	for _, sp := range r.subs {
		pts := r.poly[sp.start:sp.end]

		idx := 0
		dist := phase
		for dist >= dash[idx%n] {
			dist -= dash[idx%n]
			idx++
		}
		remaining := dash[idx%n] - dist
		on := idx%2 == 0

		dashStart := -1
		if on {
			dashStart = len(r.dashPoly)
			r.dashPoly = append(r.dashPoly, pts[0])
		}
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			segLen := b.Sub(a).Length()
			pos := 0.0
			for segLen-pos > remaining {
				pos += remaining
				pt := a.Add(b.Sub(a).Mul(pos / segLen))
				if on {
					r.dashPoly = append(r.dashPoly, pt)
					r.dashSubs = append(r.dashSubs, subpath{start: dashStart, end: len(r.dashPoly)})
				} else {
					dashStart = len(r.dashPoly)
					r.dashPoly = append(r.dashPoly, pt)
				}
				on = !on
				idx++
				remaining = dash[idx%n]
			}
			remaining -= segLen - pos
			if on {
				r.dashPoly = append(r.dashPoly, b)
			}
		}
		if on && len(r.dashPoly)-dashStart > 1 {
			r.dashSubs = append(r.dashSubs, subpath{start: dashStart, end: len(r.dashPoly)})
		}
	}
}

// outlineSubpath adds the outline of one polyline to r.outline: a
// rectangle per segment, a disk per join and the caps.
func (r *Rasteriser) outlineSubpath(pts []vec.Vec2, closed bool, d float64, cp graphics.LineCapStyle) {
	o := &r.outline
	if len(pts) == 1 {
		switch cp {
		case graphics.LineCapRound:
			AppendDisk(o, pts[0], d)
		case graphics.LineCapSquare:
			c := pts[0]
			o.MoveTo(vec.Vec2{X: c.X - d, Y: c.Y + d}).
				LineTo(vec.Vec2{X: c.X + d, Y: c.Y + d}).
				LineTo(vec.Vec2{X: c.X + d, Y: c.Y - d}).
				LineTo(vec.Vec2{X: c.X - d, Y: c.Y - d}).
				Close()
		}
		return
	}

	last := len(pts) - 1
	if !closed && cp == graphics.LineCapSquare {
		first, end := pts[0], pts[last]
		pts = append(r.capPoly[:0], pts...)
		r.capPoly = pts
		if t := pts[1].Sub(first); t.Length() > 0 {
			pts[0] = first.Sub(t.Mul(d / t.Length()))
		}
		if t := end.Sub(pts[last-1]); t.Length() > 0 {
			pts[last] = end.Add(t.Mul(d / t.Length()))
		}
	}

	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		t := b.Sub(a)
		l := t.Length()
		if l == 0 {
			continue
		}
		n := vec.Vec2{X: -t.Y, Y: t.X}.Mul(d / l)
		o.MoveTo(a.Add(n)).LineTo(b.Add(n)).LineTo(b.Sub(n)).LineTo(a.Sub(n)).Close()
	}
	for i := 1; i < last; i++ {
		AppendDisk(o, pts[i], d)
	}
	switch {
	case closed:
		AppendDisk(o, pts[0], d)
	case cp == graphics.LineCapRound:
		AppendDisk(o, pts[0], d)
		AppendDisk(o, pts[last], d)
	}
}
