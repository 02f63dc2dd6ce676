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

//go:build cgo

// Command rastervis-window shows the raster algorithm visualizer in a
// desktop window.
//
// Click twice to set the line endpoints, or the circle center and radius.
// Drag to pan and use the mouse wheel to zoom. Keys:
//
//	Space  play / pause
//	N      next step
//	R      reset
//	A      toggle arrows
//	S      toggle snapping
//	O      toggle the origin between center and top-left
//	1 2 3  DDA, Bresenham line, Bresenham circle
//	[ ]    slower / faster playback
//	P      save the picture as PNG
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"seehuhn.de/go/rastervis/config"
	"seehuhn.de/go/rastervis/playback"
	"seehuhn.de/go/rastervis/render"
	"seehuhn.de/go/rastervis/session"
	"seehuhn.de/go/rastervis/source"
	"seehuhn.de/go/rastervis/viewport"
)

// tableLines is the number of table rows shown in the overlay.
const tableLines = 12

func main() {
	confFile := flag.String("config", "", "TOML configuration file")
	verbose := flag.Bool("v", false, "log playback details to stderr")
	flag.Parse()

	if *verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		playback.SetLogger(slog.New(h))
	}

	conf := config.Default()
	if *confFile != "" {
		var err error
		conf, err = config.LoadFile(*confFile)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}

	tl := &playback.Timeline{}
	g := &game{
		s:  session.FromConfig(conf, tl),
		tl: tl,
	}
	ebiten.SetWindowTitle("Raster algorithm visualizer")
	ebiten.SetWindowSize(conf.Canvas.Width, conf.Canvas.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

type game struct {
	s  *session.Session
	tl *playback.Timeline

	canvas *render.ImageCanvas
	img    *ebiten.Image
	msg    string
}

var algorithmKeys = []struct {
	key  ebiten.Key
	algo source.Algorithm
}{
	{ebiten.Key1, source.DDA},
	{ebiten.Key2, source.BresenhamLine},
	{ebiten.Key3, source.BresenhamCircle},
}

func (g *game) Update() error {
	s := g.s

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.TogglePlay()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		s.Next()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		s.SetArrows(!s.Arrows())
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		s.SetSnap(!s.Snap())
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		s.ToggleOrigin()
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		s.SetSpeed(s.Controller().StepDelay() * 3 / 2)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		s.SetSpeed(max(s.Controller().StepDelay()*2/3, 10*time.Millisecond))
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.msg = g.savePNG()
	}
	for _, k := range algorithmKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			s.SetAlgorithm(k.algo)
		}
	}

	x, y := ebiten.CursorPosition()
	cursor := viewport.PixelPoint{X: float64(x), Y: float64(y)}
	w, h := s.View.Size()
	inside := cursor.X >= 0 && cursor.Y >= 0 && cursor.X < w && cursor.Y < h

	switch {
	case inside && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		s.Press(cursor)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		s.Release(cursor)
	case inside || s.Dragging():
		s.Move(cursor)
	default:
		s.Leave()
	}
	if _, dy := ebiten.Wheel(); dy != 0 && inside {
		// ebiten reports scrolling up as positive
		s.Wheel(cursor, -dy)
	}

	g.tl.Advance(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *game) savePNG() string {
	f, err := os.Create(render.DefaultPNGName)
	if err != nil {
		return err.Error()
	}
	defer f.Close()
	if err := render.WritePNG(f, g.canvas.Image()); err != nil {
		return err.Error()
	}
	return "saved " + render.DefaultPNGName
}

func (g *game) Draw(screen *ebiten.Image) {
	w, h := g.s.View.Size()
	if g.canvas == nil {
		g.canvas = render.NewImageCanvas(int(w), int(h))
		g.img = ebiten.NewImage(int(w), int(h))
	}
	g.s.Render(g.canvas)
	g.img.WritePixels(g.canvas.Image().Pix)
	screen.DrawImage(g.img, nil)

	ebitenutil.DebugPrintAt(screen, g.overlay(), 8, 8)
}

// overlay returns the text shown on top of the grid.
func (g *game) overlay() string {
	s := g.s
	p := s.Panel
	b := &strings.Builder{}
	fmt.Fprintf(b, "%s  %s  delay %s  arrows %t  snap %t\n",
		s.Algorithm(), s.Controller().State(), s.Controller().StepDelay(), s.Arrows(), s.Snap())
	fmt.Fprintf(b, "slope %s  %s\n", p.Slope(), s.MouseReadout())
	fmt.Fprintln(b, p.Status())
	if g.msg != "" {
		fmt.Fprintln(b, g.msg)
	}
	fmt.Fprintln(b)

	fmt.Fprintln(b, strings.Join(p.Headers(), "  "))
	rows := p.Rows()
	rows = rows[max(0, len(rows)-tableLines):]
	for _, row := range rows {
		fmt.Fprintln(b, strings.Join(row, "  "))
	}
	return b.String()
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.s.View.Size()
	if int(w) != outsideWidth || int(h) != outsideHeight {
		g.s.Resize(float64(outsideWidth), float64(outsideHeight))
		if g.img != nil {
			g.img.Deallocate()
		}
		g.canvas = nil
		g.img = nil
	}
	return outsideWidth, outsideHeight
}
