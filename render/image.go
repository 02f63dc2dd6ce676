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
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/rastervis/raster"
	"seehuhn.de/go/rastervis/viewport"
)

// ImageCanvas draws into an *image.RGBA using the anti-aliasing
// rasteriser from package raster. Text is set in a fixed 7x13 bitmap
// font, so Style.FontSize is ignored.
type ImageCanvas struct {
	img  *image.RGBA
	r    *raster.Rasteriser
	p    path.Data
	face font.Face
}

var _ Canvas = (*ImageCanvas)(nil)

// NewImageCanvas allocates a transparent canvas of the given size.
func NewImageCanvas(width, height int) *ImageCanvas {
	clip := rect.Rect{URx: float64(width), URy: float64(height)}
	return &ImageCanvas{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		r:    raster.New(clip),
		face: basicfont.Face7x13,
	}
}

// Image returns the image drawn so far. The image is reused by subsequent
// drawing operations.
func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}

// Size implements the Canvas interface.
func (c *ImageCanvas) Size() (width, height int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear implements the Canvas interface.
func (c *ImageCanvas) Clear(s Style) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(s.Color), image.Point{}, draw.Src)
}

// Line implements the Canvas interface.
func (c *ImageCanvas) Line(a, b viewport.PixelPoint, s Style) {
	p := c.newPath().MoveTo(vec.Vec2(a)).LineTo(vec.Vec2(b))
	c.r.Stroke(p, raster.Stroke{Width: s.Width, Dash: s.Dash}, c.blend(s.Color))
}

// Square implements the Canvas interface.
func (c *ImageCanvas) Square(corner viewport.PixelPoint, size float64, s Style) {
	x0, y0 := corner.X, corner.Y
	x1, y1 := x0+size, y0+size
	p := c.newPath().
		MoveTo(vec.Vec2{X: x0, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y1}).
		LineTo(vec.Vec2{X: x0, Y: y1}).
		Close()
	c.r.Fill(p, raster.NonZero, c.blend(s.Color))
}

// Dot implements the Canvas interface.
func (c *ImageCanvas) Dot(center viewport.PixelPoint, radius float64, s Style) {
	p := raster.AppendDisk(c.newPath(), vec.Vec2(center), radius)
	c.r.Fill(p, raster.NonZero, c.blend(s.Color))
}

// Circle implements the Canvas interface.
func (c *ImageCanvas) Circle(center viewport.PixelPoint, radius float64, s Style) {
	p := raster.AppendDisk(c.newPath(), vec.Vec2(center), radius)
	c.r.Stroke(p, raster.Stroke{Width: s.Width, Dash: s.Dash}, c.blend(s.Color))
}

// Arrow implements the Canvas interface.
//
// Shaft and head are painted separately, so a translucent arrow is
// slightly darker where they overlap.
func (c *ImageCanvas) Arrow(from, to viewport.PixelPoint, s Style) {
	c.Line(from, to, s)
	left, right := ArrowHead(from, to)
	p := c.newPath().
		MoveTo(vec.Vec2(to)).
		LineTo(vec.Vec2(left)).
		LineTo(vec.Vec2(right)).
		Close()
	c.r.Fill(p, raster.NonZero, c.blend(s.Color))
}

// Text implements the Canvas interface.
func (c *ImageCanvas) Text(at viewport.PixelPoint, text string, s Style) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(s.Color),
		Face: c.face,
		Dot:  fixed.P(int(math.Round(at.X)), int(math.Round(at.Y))),
	}
	d.DrawString(text)
}

// newPath returns the scratch path, emptied.
func (c *ImageCanvas) newPath() *path.Data {
	c.p.Cmds = c.p.Cmds[:0]
	c.p.Coords = c.p.Coords[:0]
	return &c.p
}

// blend returns an emit function which composites col over the image,
// weighted by coverage.
func (c *ImageCanvas) blend(col color.NRGBA) raster.EmitFunc {
	sa := float32(col.A) / 255
	sr, sg, sb := float32(col.R), float32(col.G), float32(col.B)
	return func(y, xMin int, coverage []float32) {
		i := c.img.PixOffset(xMin, y)
		pix := c.img.Pix[i : i+4*len(coverage)]
		for k, cov := range coverage {
			a := min(cov, 1) * sa
			if a <= 0 {
				continue
			}
			d := pix[4*k : 4*k+4 : 4*k+4]
			d[0] = uint8(sr*a + float32(d[0])*(1-a) + 0.5)
			d[1] = uint8(sg*a + float32(d[1])*(1-a) + 0.5)
			d[2] = uint8(sb*a + float32(d[2])*(1-a) + 0.5)
			d[3] = uint8(255*a + float32(d[3])*(1-a) + 0.5)
		}
	}
}
