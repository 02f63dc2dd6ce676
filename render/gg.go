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
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"

	"seehuhn.de/go/rastervis/viewport"
)

// GGCanvas draws through a github.com/gogpu/gg context.
//
// Text is only drawn after a font has been loaded with LoadFont.
// The first drawing error is kept and reported by Err.
type GGCanvas struct {
	dc *gg.Context

	fontPath string
	fontSize float64

	err error
}

var _ Canvas = (*GGCanvas)(nil)

// NewGGCanvas creates a canvas backed by a new gg context.
// The canvas must be closed after use.
func NewGGCanvas(width, height int) *GGCanvas {
	return &GGCanvas{dc: gg.NewContext(width, height)}
}

// LoadFont selects a TrueType font for tick labels.
func (c *GGCanvas) LoadFont(fileName string) error {
	const size = 12
	if err := c.dc.LoadFontFace(fileName, size); err != nil {
		return fmt.Errorf("load font %q: %w", fileName, err)
	}
	c.fontPath = fileName
	c.fontSize = size
	return nil
}

// Image returns a snapshot of the canvas.
func (c *GGCanvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the canvas to w in PNG format.
func (c *GGCanvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// Err returns the first error encountered while drawing.
func (c *GGCanvas) Err() error {
	return c.err
}

// Close releases the gg context.
func (c *GGCanvas) Close() error {
	return c.dc.Close()
}

// Size implements the Canvas interface.
func (c *GGCanvas) Size() (width, height int) {
	return c.dc.Width(), c.dc.Height()
}

// Clear implements the Canvas interface.
func (c *GGCanvas) Clear(s Style) {
	c.dc.ClearWithColor(gg.FromColor(s.Color))
}

// Line implements the Canvas interface.
func (c *GGCanvas) Line(a, b viewport.PixelPoint, s Style) {
	c.setStroke(s)
	c.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	c.check(c.dc.Stroke())
}

// Square implements the Canvas interface.
func (c *GGCanvas) Square(corner viewport.PixelPoint, size float64, s Style) {
	c.dc.SetColor(s.Color)
	c.dc.DrawRectangle(corner.X, corner.Y, size, size)
	c.check(c.dc.Fill())
}

// Dot implements the Canvas interface.
func (c *GGCanvas) Dot(center viewport.PixelPoint, radius float64, s Style) {
	c.dc.SetColor(s.Color)
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.check(c.dc.Fill())
}

// Circle implements the Canvas interface.
func (c *GGCanvas) Circle(center viewport.PixelPoint, radius float64, s Style) {
	c.setStroke(s)
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.check(c.dc.Stroke())
}

// Arrow implements the Canvas interface.
func (c *GGCanvas) Arrow(from, to viewport.PixelPoint, s Style) {
	c.Line(from, to, s)
	left, right := ArrowHead(from, to)
	c.dc.MoveTo(to.X, to.Y)
	c.dc.LineTo(left.X, left.Y)
	c.dc.LineTo(right.X, right.Y)
	c.dc.ClosePath()
	c.check(c.dc.Fill())
}

// Text implements the Canvas interface.
func (c *GGCanvas) Text(at viewport.PixelPoint, text string, s Style) {
	if c.fontPath == "" {
		return
	}
	if s.FontSize > 0 && s.FontSize != c.fontSize {
		if err := c.dc.LoadFontFace(c.fontPath, s.FontSize); err != nil {
			c.check(err)
			return
		}
		c.fontSize = s.FontSize
	}
	c.dc.SetColor(s.Color)
	c.dc.DrawString(text, at.X, at.Y)
}

func (c *GGCanvas) setStroke(s Style) {
	c.dc.SetColor(s.Color)
	c.dc.SetLineWidth(s.Width)
	if len(s.Dash) > 0 {
		c.dc.SetDash(s.Dash...)
	} else {
		c.dc.ClearDash()
	}
}

func (c *GGCanvas) check(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}
