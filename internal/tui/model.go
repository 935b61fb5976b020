package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Update is one progress snapshot sent to the dashboard.
type Update struct {
	Completed int
	Total     int
}

type Model struct {
	updates   <-chan Update
	started   time.Time
	width     int
	completed int
	total     int
	bar       progress.Model
	quitting  bool
}

type doneMsg struct{}

type updateMsg Update

func NewModel(updates <-chan Update) Model {
	bar := progress.New(
		progress.WithGradient(string(ColorAccentAlt), string(ColorAccent)),
		progress.WithoutPercentage(),
	)
	bar.Width = 40
	return Model{updates: updates, started: time.Now(), bar: bar}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.completed = msg.Completed
		m.total = msg.Total
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(60, max(20, msg.Width-10))
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)
	lines := []string{
		titleStyle.Render("resize"),
		labelStyle.Render(fmt.Sprintf("Images: %d/%d", m.completed, m.total)) +
			dimStyle.Render(fmt.Sprintf("  %3.0f%%", m.ratio()*100)),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		m.bar.ViewAs(m.ratio()),
	}
	return strings.Join(lines, "\n")
}

func (m Model) ratio() float64 {
	if m.total <= 0 {
		return 0
	}
	return min(1, float64(m.completed)/float64(m.total))
}

func listenForUpdates(updates <-chan Update) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

// Dashboard runs the bubbletea program and satisfies progress.Sink, so a
// Tracker can drive it in place of the line renderer.
type Dashboard struct {
	updates chan Update
	done    chan struct{}
}

// StartDashboard starts the program on out. Keyboard input is not read.
func StartDashboard(out io.Writer) *Dashboard {
	d := &Dashboard{
		updates: make(chan Update, 64),
		done:    make(chan struct{}),
	}
	program := tea.NewProgram(NewModel(d.updates), tea.WithOutput(out), tea.WithInput(nil))
	go func() {
		_, _ = program.Run()
		close(d.done)
		// Keep Render from blocking if the program exits early.
		for range d.updates {
		}
	}()
	return d
}

func (d *Dashboard) Render(completed, total int) {
	d.updates <- Update{Completed: completed, Total: total}
}

// Close stops the program and waits for it to restore the terminal.
func (d *Dashboard) Close() {
	close(d.updates)
	<-d.done
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
)
