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

// Package rastervis is a teaching tool which shows, step by step, how
// the DDA and Bresenham algorithms turn lines and circles into pixels.
//
// The work is split into small packages:
//
//   - [seehuhn.de/go/rastervis/viewport] maps between grid and pixel
//     coordinates, with panning and zooming.
//   - [seehuhn.de/go/rastervis/source] defines the plot events emitted by
//     an algorithm, and the registry of algorithms.
//   - [seehuhn.de/go/rastervis/algorithms] implements DDA, Bresenham line
//     and Bresenham circle.
//   - [seehuhn.de/go/rastervis/playback] steps through the events, either
//     on request or on a timer.
//   - [seehuhn.de/go/rastervis/raster] and
//     [seehuhn.de/go/rastervis/render] draw the grid and the plotted
//     pixels, and export PNG and PDF files.
//   - [seehuhn.de/go/rastervis/session] ties everything to mouse and
//     keyboard input.
//
// The commands rastervis (headless) and rastervis-window (desktop
// window) are in the cmd directory.
package rastervis
