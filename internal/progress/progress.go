// Package progress draws terminal progress bars for long running phases.
package progress

import (
	"io"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Tracker receives progress for one phase.
type Tracker interface {
	Start(total int)
	Add(n int)
	Finish()
}

// Enabled reports whether a bar should be drawn on w: only for terminals,
// and only when the user neither asked for quiet output nor disabled it.
func Enabled(w io.Writer, wanted, quiet bool) bool {
	if !wanted || quiet {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// New returns a Tracker drawing a bar labelled description on w, or a
// Tracker that does nothing when enabled is false.
func New(w io.Writer, description string, enabled bool) Tracker {
	if !enabled {
		return Nop{}
	}
	return &Bar{writer: w, description: description}
}

// Bar is a Tracker backed by progressbar.
type Bar struct {
	writer      io.Writer
	description string
	bar         *progressbar.ProgressBar
}

// Start creates the bar. A zero total draws nothing.
func (b *Bar) Start(total int) {
	if total <= 0 {
		return
	}
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.writer),
		progressbar.OptionSetDescription(b.description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// Add advances the bar by n.
func (b *Bar) Add(n int) {
	if b.bar != nil {
		_ = b.bar.Add(n)
	}
}

// Finish completes and clears the bar.
func (b *Bar) Finish() {
	if b.bar != nil {
		_ = b.bar.Finish()
		b.bar = nil
	}
}

// Nop ignores all progress.
type Nop struct{}

func (Nop) Start(int) {}
func (Nop) Add(int)   {}
func (Nop) Finish()   {}
