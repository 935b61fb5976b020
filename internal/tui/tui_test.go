package tui

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"resize/internal/config"
	"resize/internal/processor"
	"resize/internal/sizing"
)

func TestRenderSummaryAligns(t *testing.T) {
	out := RenderSummary([]SummaryRow{
		{Label: "a", Value: "1"},
		{Label: "longer", Value: "22"},
	})
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if lines[0] != strings.Repeat("-", 11) || lines[3] != lines[0] {
		t.Errorf("bad rule lines: %q %q", lines[0], lines[3])
	}
	if !strings.Contains(lines[1], "a      | 1 ") {
		t.Errorf("row not padded: %q", lines[1])
	}
}

func TestConfigRows(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(*config.Config)
		want []string
		not  []string
	}{
		{
			name: "scale",
			cfg:  func(c *config.Config) { c.Method, c.ScaleFactor = config.MethodScale, 0.5 },
			want: []string{"Scale factor", "0.5", "same as input"},
			not:  []string{"Suffix", "Minimal"},
		},
		{
			name: "dynamic",
			cfg:  func(c *config.Config) { c.Method, c.TargetWidth = config.MethodDynamicAspect, 800 },
			want: []string{"Dynamic Height/Width (keep aspect ratio)", "auto", "800"},
		},
		{
			name: "min bound with keep",
			cfg: func(c *config.Config) {
				c.Method, c.MinWidth, c.MinHeight = config.MethodMinBound, 200, 300
				c.KeepOriginals, c.OutputFormat = true, "png"
			},
			want: []string{"Minimal height", "300", "Suffix", "_resized", "png"},
			not:  []string{"same as input"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.cfg(&cfg)
			out := RenderConfig(cfg, []string{"/photos"})
			for _, s := range append(tt.want, "Threads", "/photos", "jpg jpeg png") {
				if !strings.Contains(out, s) {
					t.Errorf("missing %q in:\n%s", s, out)
				}
			}
			for _, s := range tt.not {
				if strings.Contains(out, s) {
					t.Errorf("unexpected %q in:\n%s", s, out)
				}
			}
		})
	}
}

func TestResultRows(t *testing.T) {
	s := processor.Summary{Total: 6, Written: 2, Skipped: 1, DecodeFailed: 1, TransformFailed: 1, WriteFailed: 1}
	rows := ResultRows(s)
	got := map[string]string{}
	for _, row := range rows {
		got[row.Label] = row.Value
	}
	if got["Images resized"] != "2" || got["Total files"] != "6" || got["Write failures"] != "1" {
		t.Errorf("rows = %+v", rows)
	}
	if _, ok := got["Planned (dry run)"]; ok {
		t.Error("dry-run row shown without dry-run outcomes")
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	r := NewReport(&buf)
	r.Planned("/a.jpg", "/a.png", 400, 200, sizing.Decision{Kind: sizing.KindTarget, Width: 200, Height: 100})
	r.NoOp("/b.jpg", 10, 10, sizing.Decision{Kind: sizing.KindTooSmall})
	r.Unreadable("/c.jpg", errors.New("bad header"), true)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	for i, want := range [][]string{
		{"/a.jpg", "400x200", "->", "/a.png", "200x100"},
		{"/b.jpg", "no transformation needed", "too small"},
		{"/c.jpg", "would delete", "bad header"},
	} {
		for _, s := range want {
			if !strings.Contains(lines[i], s) {
				t.Errorf("line %d %q missing %q", i, lines[i], s)
			}
		}
	}
}

func TestReportConcurrentLines(t *testing.T) {
	var buf bytes.Buffer
	r := NewReport(&buf)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				r.NoOp(fmt.Sprintf("/img/%d-%d.jpg", i, j), 1, 1, sizing.Decision{Kind: sizing.KindSameSize})
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 400 {
		t.Fatalf("got %d lines, want 400", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "/img/") || !strings.HasSuffix(line, "(same size)") {
			t.Errorf("garbled line %q", line)
		}
	}
}

func TestModelTracksUpdates(t *testing.T) {
	updates := make(chan Update, 1)
	var m tea.Model = NewModel(updates)

	m, _ = m.Update(updateMsg{Completed: 3, Total: 4})
	view := m.View()
	if !strings.Contains(view, "Images: 3/4") || !strings.Contains(view, "75%") {
		t.Errorf("view missing counts:\n%s", view)
	}

	m, _ = m.Update(tea.WindowSizeMsg{Width: 200})
	if got := m.(Model).bar.Width; got != 60 {
		t.Errorf("bar width = %d, want 60", got)
	}

	close(updates)
	msg := listenForUpdates(updates)()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("closed channel produced %T, want doneMsg", msg)
	}
	m, cmd := m.Update(msg)
	if cmd == nil || m.View() != "" {
		t.Error("model should quit with an empty view")
	}
}
