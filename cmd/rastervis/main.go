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

// Command rastervis runs a raster algorithm without a window. It prints
// the step table and can save the final picture as PNG or PDF.
//
// Example:
//
//	rastervis -algo bresenham_circle -circle 0,0,6 -o circle.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"seehuhn.de/go/rastervis/config"
	"seehuhn.de/go/rastervis/playback"
	"seehuhn.de/go/rastervis/render"
	"seehuhn.de/go/rastervis/session"
)

func main() {
	var (
		confFile = flag.String("config", "", "TOML configuration file")
		algo     = flag.String("algo", "", "algorithm: dda, bresenham_line or bresenham_circle")
		line     = flag.String("line", "", "line endpoints `x1,y1,x2,y2`")
		circle   = flag.String("circle", "", "circle `xc,yc,r`")
		steps    = flag.Int("steps", 0, "number of steps to run (0 runs to completion)")
		play     = flag.Bool("play", false, "animate in real time, using the step delay")
		delay    = flag.Duration("delay", playback.DefaultStepDelay, "delay between steps with -play")
		arrows   = flag.Bool("arrows", true, "draw direction arrows")
		origin   = flag.String("origin", "", "grid origin: center or topleft")
		scale    = flag.Float64("scale", 0, "pixels per grid unit")
		width    = flag.Int("width", 0, "image width")
		height   = flag.Int("height", 0, "image height")
		backend  = flag.String("backend", "", "PNG renderer: raster or gg")
		font     = flag.String("font", "", "TrueType font for the gg backend")
		output   = flag.String("o", "", "write the picture to this PNG file")
		pdfOut   = flag.String("pdf", "", "write the picture to this PDF file")
		verbose  = flag.Bool("v", false, "log playback details to stderr")
	)
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

	// explicitly set flags override the configuration
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "algo":
			conf.Input.Algorithm = *algo
		case "line":
			v, err := parseFloats(*line, 4)
			if err != nil {
				flagErr = errors.Join(flagErr, fmt.Errorf("-line: %w", err))
				return
			}
			conf.Input.Line = config.Line{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}
		case "circle":
			v, err := parseFloats(*circle, 3)
			if err != nil {
				flagErr = errors.Join(flagErr, fmt.Errorf("-circle: %w", err))
				return
			}
			conf.Input.Circle = config.Circle{XC: v[0], YC: v[1], R: v[2]}
		case "delay":
			conf.Playback.StepDelay.Duration = *delay
		case "arrows":
			conf.Playback.Arrows = *arrows
		case "origin":
			conf.View.Origin = *origin
		case "scale":
			conf.View.Scale = *scale
		case "width":
			conf.Canvas.Width = *width
		case "height":
			conf.Canvas.Height = *height
		case "backend":
			conf.Render.Backend = *backend
		case "font":
			conf.Render.Font = *font
		}
	})
	if flagErr != nil {
		log.Fatal(flagErr)
	}
	if err := conf.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	var s *session.Session
	if *play {
		s = runAnimated(conf, *steps)
	} else {
		s = session.FromConfig(conf, &playback.Timeline{})
		for i := 0; *steps == 0 || i < *steps; i++ {
			if s.Next() {
				break
			}
		}
	}

	if err := s.Panel.WriteTable(os.Stdout); err != nil {
		log.Fatal(err)
	}
	fmt.Println()
	if err := s.Panel.WriteInfo(os.Stdout); err != nil {
		log.Fatal(err)
	}

	if *output != "" {
		if err := savePNG(*output, s, conf); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Picture saved to %s (%dx%d)", *output, conf.Canvas.Width, conf.Canvas.Height)
	}
	if *pdfOut != "" {
		if err := render.WritePDF(*pdfOut, s.Scene); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("PDF saved to %s", *pdfOut)
	}
}

// runAnimated plays the algorithm in real time on an event loop, until it
// finishes, maxSteps steps were shown, or the user interrupts.
func runAnimated(conf *config.Config, maxSteps int) *session.Session {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := playback.NewLoop()
	opt := session.OptionsFromConfig(conf)
	opt.OnFinish = cancel
	s := session.New(loop, opt)

	shown := 0
	var watch func()
	watch = func() {
		if n := len(s.Panel.Rows()); n != shown {
			shown = n
			fmt.Fprintf(os.Stderr, "\rstep %d", n)
		}
		if maxSteps > 0 && shown >= maxSteps {
			s.Pause()
			cancel()
			return
		}
		loop.After(conf.Playback.StepDelay.Duration/4, watch)
	}
	loop.Post(s.Play)
	loop.Post(watch)

	err := loop.Run(ctx)
	fmt.Fprintln(os.Stderr)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
	return s
}

func savePNG(fileName string, s *session.Session, conf *config.Config) error {
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer f.Close()

	w, h := conf.Canvas.Width, conf.Canvas.Height
	switch conf.Render.Backend {
	case config.BackendGG:
		c := render.NewGGCanvas(w, h)
		defer c.Close()
		if conf.Render.Font != "" {
			if err := c.LoadFont(conf.Render.Font); err != nil {
				return err
			}
		}
		s.Render(c)
		if err := c.Err(); err != nil {
			return err
		}
		if err := c.EncodePNG(f); err != nil {
			return err
		}
	default:
		c := render.NewImageCanvas(w, h)
		s.Render(c)
		if err := render.WritePNG(f, c.Image()); err != nil {
			return err
		}
	}
	return f.Close()
}

// parseFloats parses a comma-separated list of exactly n numbers.
func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%q: need %d comma-separated numbers", s, n)
	}
	res := make([]float64, n)
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		res[i] = x
	}
	return res, nil
}
