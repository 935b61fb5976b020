// Package progress counts completed files across workers and renders the
// running total.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// BarWidth is the number of segments in the rendered bar.
const BarWidth = 50

// Sink displays progress. Render and Close are never called concurrently.
type Sink interface {
	Render(completed, total int)
	Close()
}

// Tracker is the shared completion counter of a batch run. A nil *Tracker
// is valid and records nothing, which is how progress is disabled.
type Tracker struct {
	mu        sync.Mutex
	completed int
	total     int
	sink      Sink
	closed    bool
}

// NewTracker returns a tracker expecting total completions. sink may be nil.
func NewTracker(total int, sink Sink) *Tracker {
	return &Tracker{total: total, sink: sink}
}

// RecordCompletion counts one finished file and re-renders the sink while
// still holding the lock, so concurrent renders never interleave.
func (t *Tracker) RecordCompletion() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.completed++
	if t.sink != nil && !t.closed {
		t.sink.Render(t.completed, t.total)
	}
}

// Completed returns the number of recorded completions.
func (t *Tracker) Completed() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completed
}

// Close finishes the sink. Later completions are still counted.
func (t *Tracker) Close() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	if t.sink != nil {
		t.sink.Close()
	}
}

// LineSink redraws a single status line in place.
type LineSink struct {
	w io.Writer
}

func NewLineSink(w io.Writer) *LineSink {
	return &LineSink{w: w}
}

func (s *LineSink) Render(completed, total int) {
	if total <= 0 {
		return
	}
	fmt.Fprintf(s.w, "\033[2K\r%s %3d%%", RenderBar(BarWidth, completed, total), completed*100/total)
}

func (s *LineSink) Close() {
	fmt.Fprintln(s.w)
}

// RenderBar draws a bracketed bar of width segments, filled in proportion to
// completed/total and clamped to the bar.
func RenderBar(width, completed, total int) string {
	filled := 0
	if total > 0 {
		filled = completed * width / total
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}
