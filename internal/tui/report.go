package tui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"resize/internal/sizing"
)

// Report writes dry-run decisions as styled lines. It is safe for use by
// several workers; each decision is written as one complete line.
type Report struct {
	mu  sync.Mutex
	out io.Writer
}

func NewReport(out io.Writer) *Report {
	return &Report{out: out}
}

func (r *Report) NoOp(path string, width, height int, decision sizing.Decision) {
	r.line(fmt.Sprintf("%s %s %s",
		reportPathStyle.Render(path),
		reportDimStyle.Render(fmt.Sprintf("%dx%d", width, height)),
		reportSkipStyle.Render("no transformation needed ("+decision.String()+")"),
	))
}

func (r *Report) Planned(src, dest string, width, height int, decision sizing.Decision) {
	r.line(fmt.Sprintf("%s %s %s %s %s",
		reportPathStyle.Render(src),
		reportDimStyle.Render(fmt.Sprintf("%dx%d", width, height)),
		reportArrowStyle.Render("->"),
		reportPathStyle.Render(dest),
		reportSizeStyle.Render(decision.String()),
	))
}

func (r *Report) Unreadable(path string, err error, wouldDelete bool) {
	action := "kept"
	if wouldDelete {
		action = "would delete"
	}
	r.line(fmt.Sprintf("%s %s %s",
		reportPathStyle.Render(path),
		reportFailStyle.Render("unreadable ("+action+"):"),
		reportDimStyle.Render(err.Error()),
	))
}

func (r *Report) line(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, s)
}

var (
	reportPathStyle  = lipgloss.NewStyle().Foreground(ColorInk)
	reportSizeStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	reportArrowStyle = lipgloss.NewStyle().Foreground(ColorAccentAlt)
	reportSkipStyle  = lipgloss.NewStyle().Foreground(ColorWarn)
	reportFailStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorFail)
	reportDimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
)
