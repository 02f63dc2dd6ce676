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

package playback

import (
	"cmp"
	"context"
	"slices"
	"time"
)

// Scheduler runs deferred work on the thread which owns the controller.
// After must not run f synchronously.
type Scheduler interface {
	After(d time.Duration, f func())
}

// Timeline is a Scheduler driven by an explicit clock.
// The host advances the clock, for example once per frame, and due
// callbacks run inside Advance on the caller's goroutine.
type Timeline struct {
	now   time.Duration
	seq   int
	tasks []task
}

type task struct {
	at  time.Duration
	seq int
	f   func()
}

// After schedules f to run once the clock has advanced by d.
func (tl *Timeline) After(d time.Duration, f func()) {
	tl.seq++
	tl.tasks = append(tl.tasks, task{at: tl.now + max(d, 0), seq: tl.seq, f: f})
}

// Now returns the time elapsed since the timeline was created.
func (tl *Timeline) Now() time.Duration { return tl.now }

// Pending returns the number of scheduled callbacks.
func (tl *Timeline) Pending() int { return len(tl.tasks) }

// Advance moves the clock forward by d and runs all callbacks which become
// due, in order of their due time. Callbacks scheduled while advancing run
// in the same call if they fall due before the new time.
func (tl *Timeline) Advance(d time.Duration) {
	end := tl.now + d
	for {
		i := tl.nextDue(end)
		if i < 0 {
			break
		}
		t := tl.tasks[i]
		tl.tasks = slices.Delete(tl.tasks, i, i+1)
		tl.now = t.at
		t.f()
	}
	tl.now = end
}

func (tl *Timeline) nextDue(end time.Duration) int {
	best := -1
	for i, t := range tl.tasks {
		if t.at > end {
			continue
		}
		if best < 0 || cmp.Or(cmp.Compare(t.at, tl.tasks[best].at), cmp.Compare(t.seq, tl.tasks[best].seq)) < 0 {
			best = i
		}
	}
	return best
}

// Loop is a Scheduler which executes all work on a single goroutine.
// Functions passed to Post and After run one at a time, in the goroutine
// that called Run.
// Work posted after Run has returned is dropped.
type Loop struct {
	work chan func()
	quit chan struct{}
}

// NewLoop returns a loop with room for a few queued functions.
func NewLoop() *Loop {
	return &Loop{
		work: make(chan func(), 16),
		quit: make(chan struct{}),
	}
}

// Post queues f for execution on the loop goroutine.
func (l *Loop) Post(f func()) {
	select {
	case l.work <- f:
	case <-l.quit:
	}
}

// After queues f once d has elapsed.
func (l *Loop) After(d time.Duration, f func()) {
	time.AfterFunc(d, func() { l.Post(f) })
}

// Run executes queued functions until ctx is cancelled.
// Run must be called at most once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.quit)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.work:
			f()
		}
	}
}
