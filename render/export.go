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
	"image/color"
	"image/png"
	"io"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/font/standard"
	"seehuhn.de/go/pdf/font/type1"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/rastervis/raster"
	"seehuhn.de/go/rastervis/viewport"
)

// DefaultPNGName is the file name suggested for saved snapshots.
const DefaultPNGName = "cg_visualizer.png"

// WritePNG encodes img in PNG format.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePDF writes the scene to a single-page PDF file. One device pixel
// becomes one PDF point.
//
// Tick labels are set in Helvetica. Translucent colours are flattened
// onto a white background.
func WritePDF(fileName string, s *Scene) error {
	return writePDF(fileName, s, nil)
}

func writePDF(fileName string, s *Scene, opt *pdf.WriterOptions) error {
	w, h := s.View.Size()
	paper := &pdf.Rectangle{URx: w, URy: h}
	page, err := document.CreateSinglePage(fileName, paper, pdf.V1_7, opt)
	if err != nil {
		return fmt.Errorf("create %s: %w", fileName, err)
	}

	// PDF origin is bottom-left, device coordinates are top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, h})
	page.SetLineJoin(graphics.LineJoinRound)

	s.Paint(&pdfCanvas{
		page:   page,
		width:  int(w),
		height: int(h),
		font:   standard.Helvetica.New(),
	})

	if err := page.Close(); err != nil {
		return fmt.Errorf("write %s: %w", fileName, err)
	}
	return nil
}

type pdfCanvas struct {
	page          *document.Page
	width, height int
	font          *type1.Instance
	p             path.Data
}

var _ Canvas = (*pdfCanvas)(nil)

func (c *pdfCanvas) Size() (width, height int) { return c.width, c.height }

func (c *pdfCanvas) Clear(s Style) {
	c.page.SetFillColor(flatten(s.Color))
	c.page.Rectangle(0, 0, float64(c.width), float64(c.height))
	c.page.Fill()
}

func (c *pdfCanvas) Line(a, b viewport.PixelPoint, s Style) {
	c.setStroke(s)
	c.page.MoveTo(a.X, a.Y)
	c.page.LineTo(b.X, b.Y)
	c.page.Stroke()
}

func (c *pdfCanvas) Square(corner viewport.PixelPoint, size float64, s Style) {
	c.page.SetFillColor(flatten(s.Color))
	c.page.Rectangle(corner.X, corner.Y, size, size)
	c.page.Fill()
}

func (c *pdfCanvas) Dot(center viewport.PixelPoint, radius float64, s Style) {
	c.page.SetFillColor(flatten(s.Color))
	c.drawPath(c.circle(center, radius))
	c.page.Fill()
}

func (c *pdfCanvas) Circle(center viewport.PixelPoint, radius float64, s Style) {
	c.setStroke(s)
	c.drawPath(c.circle(center, radius))
	c.page.Stroke()
}

func (c *pdfCanvas) Arrow(from, to viewport.PixelPoint, s Style) {
	c.Line(from, to, s)
	left, right := ArrowHead(from, to)
	c.page.SetFillColor(flatten(s.Color))
	c.page.MoveTo(to.X, to.Y)
	c.page.LineTo(left.X, left.Y)
	c.page.LineTo(right.X, right.Y)
	c.page.ClosePath()
	c.page.Fill()
}

func (c *pdfCanvas) Text(at viewport.PixelPoint, text string, s Style) {
	size := s.FontSize
	if size <= 0 {
		size = 12
	}
	c.page.SetFillColor(flatten(s.Color))
	c.page.TextBegin()
	c.page.TextSetFont(c.font, size)
	// undo the page flip, so that glyphs are upright
	c.page.TextSetMatrix(matrix.Matrix{1, 0, 0, -1, at.X, at.Y})
	c.page.TextShow(text)
	c.page.TextEnd()
}

func (c *pdfCanvas) setStroke(s Style) {
	c.page.SetStrokeColor(flatten(s.Color))
	c.page.SetLineWidth(s.Width)
	c.page.SetLineDash(s.Dash, 0)
}

func (c *pdfCanvas) circle(center viewport.PixelPoint, radius float64) *path.Data {
	c.p.Cmds = c.p.Cmds[:0]
	c.p.Coords = c.p.Coords[:0]
	return raster.AppendDisk(&c.p, vec.Vec2(center), radius)
}

func (c *pdfCanvas) drawPath(p *path.Data) {
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			c.page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			c.page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			c.page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			c.page.ClosePath()
		}
	}
}

// flatten composites col over white and returns the result as a PDF
// colour.
func flatten(col color.NRGBA) pdfcolor.DeviceRGB {
	a := float64(col.A) / 255
	over := func(v uint8) float64 {
		return min(1, max(0, 1-a*(1-float64(v)/255)))
	}
	return pdfcolor.DeviceRGB{over(col.R), over(col.G), over(col.B)}
}
