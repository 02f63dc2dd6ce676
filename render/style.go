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

package render

import (
	"image/color"

	"seehuhn.de/go/rastervis/source"
)

// Role is the semantic purpose of a drawing primitive.
type Role int

// These are the roles used by Scene.
const (
	RoleBackground Role = iota
	RoleGrid
	RoleAxis
	RoleTick
	RoleLabel
	RoleEndpoint
	RoleGuide  // outline of the requested circle
	RoleRadius // dashed radius of the requested circle
	RolePixel
	RoleArrow
	RoleGhost        // hover preview, free position
	RoleGhostSnapped // hover preview, snapped to a lattice point

	numRoles
)

func (r Role) String() string {
	switch r {
	case RoleBackground:
		return "background"
	case RoleGrid:
		return "grid"
	case RoleAxis:
		return "axis"
	case RoleTick:
		return "tick"
	case RoleLabel:
		return "label"
	case RoleEndpoint:
		return "endpoint"
	case RoleGuide:
		return "guide"
	case RoleRadius:
		return "radius"
	case RolePixel:
		return "pixel"
	case RoleArrow:
		return "arrow"
	case RoleGhost:
		return "ghost"
	case RoleGhostSnapped:
		return "ghost-snapped"
	default:
		return "unknown"
	}
}

// Style holds everything a Canvas needs to draw one primitive.
type Style struct {
	Color color.NRGBA
	Width float64   // line width in device pixels
	Dash  []float64 // on/off lengths; nil for solid lines

	// FontSize is the nominal text height in device pixels. Canvases with
	// a fixed-size font ignore it.
	FontSize float64
}

// Palette maps roles and pixel tags to styles.
type Palette struct {
	styles [numRoles]Style
	tags   map[source.Tag]color.NRGBA
}

// DefaultPalette returns the colours of the classic visualizer: a light
// blue grid, black axes, blue endpoints and red arrows.
func DefaultPalette() *Palette {
	p := &Palette{tags: map[source.Tag]color.NRGBA{
		source.TagMirror: {R: 0x55, G: 0x55, B: 0x55, A: 0xff},
	}}
	p.styles[RoleBackground] = Style{Color: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	p.styles[RoleGrid] = Style{Color: color.NRGBA{R: 0xee, G: 0xf3, B: 0xff, A: 0xff}, Width: 1}
	p.styles[RoleAxis] = Style{Color: color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}, Width: 2}
	p.styles[RoleTick] = Style{Color: color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}, Width: 1}
	p.styles[RoleLabel] = Style{Color: color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}, FontSize: 12}
	p.styles[RoleEndpoint] = Style{Color: color.NRGBA{R: 0x0b, G: 0x66, B: 0xff, A: 0xff}}
	p.styles[RoleGuide] = Style{Color: color.NRGBA{R: 10, G: 120, B: 10, A: 179}, Width: 1.5}
	p.styles[RoleRadius] = Style{Color: color.NRGBA{R: 0x0b, G: 0x66, B: 0xff, A: 0xff}, Width: 1, Dash: []float64{6, 4}}
	p.styles[RolePixel] = Style{Color: color.NRGBA{A: 0xff}}
	p.styles[RoleArrow] = Style{Color: color.NRGBA{R: 200, G: 20, B: 20, A: 230}, Width: 2}
	p.styles[RoleGhost] = Style{Color: color.NRGBA{A: 31}}
	p.styles[RoleGhostSnapped] = Style{Color: color.NRGBA{A: 51}}
	return p
}

// Style returns the style for the given role.
func (p *Palette) Style(r Role) Style {
	if r < 0 || r >= numRoles {
		return Style{}
	}
	return p.styles[r]
}

// SetStyle replaces the style for the given role.
func (p *Palette) SetStyle(r Role, s Style) {
	if r >= 0 && r < numRoles {
		p.styles[r] = s
	}
}

// PixelStyle returns the style of a plotted pixel. Pixels with an unknown
// or empty tag use the RolePixel style.
func (p *Palette) PixelStyle(tag source.Tag) Style {
	s := p.styles[RolePixel]
	if c, ok := p.tags[tag]; ok {
		s.Color = c
	}
	return s
}

// SetTagColor assigns a colour to pixels with the given tag.
func (p *Palette) SetTagColor(tag source.Tag, c color.NRGBA) {
	if p.tags == nil {
		p.tags = make(map[source.Tag]color.NRGBA)
	}
	p.tags[tag] = c
}
