package tui

import "github.com/charmbracelet/lipgloss"

// Colours shared by the dashboard, the dry-run report, and the summaries.
var (
	ColorInk       = lipgloss.Color("#E5E9F0")
	ColorDim       = lipgloss.Color("#7A8291")
	ColorAccent    = lipgloss.Color("#88C0D0")
	ColorAccentAlt = lipgloss.Color("#81A1C1")
	ColorSuccess   = lipgloss.Color("#A3BE8C") // planned sizes
	ColorWarn      = lipgloss.Color("#EBCB8B") // no-op decisions
	ColorFail      = lipgloss.Color("#BF616A") // unreadable sources
)
