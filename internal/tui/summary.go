package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"resize/internal/config"
	"resize/internal/processor"
)

type SummaryRow struct {
	Label string
	Value string
}

func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		labelWidth = max(labelWidth, len(row.Label))
		valueWidth = max(valueWidth, len(row.Value))
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		lines = append(lines, fmt.Sprintf("%s | %s", labelStyle.Render(label), valueStyle.Render(value)))
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

// ResultRows lists the outcome counts of a finished batch.
func ResultRows(s processor.Summary) []SummaryRow {
	rows := []SummaryRow{
		{Label: "Images resized", Value: strconv.Itoa(s.Written)},
		{Label: "Skipped (no change needed)", Value: strconv.Itoa(s.Skipped)},
	}
	if s.DryRun > 0 {
		rows = append(rows, SummaryRow{Label: "Planned (dry run)", Value: strconv.Itoa(s.DryRun)})
	}
	rows = append(rows,
		SummaryRow{Label: "Unreadable", Value: strconv.Itoa(s.DecodeFailed)},
		SummaryRow{Label: "Resize failures", Value: strconv.Itoa(s.TransformFailed)},
		SummaryRow{Label: "Write failures", Value: strconv.Itoa(s.WriteFailed)},
		SummaryRow{Label: "Total files", Value: strconv.Itoa(s.Total)},
	)
	return rows
}

// ConfigRows describes the effective configuration, in the order the
// --summary listing prints it.
func ConfigRows(cfg config.Config) []SummaryRow {
	rows := []SummaryRow{
		{Label: "Keep original image", Value: strconv.FormatBool(cfg.KeepOriginals)},
		{Label: "Show progress bar", Value: strconv.FormatBool(cfg.ProgressEnabled())},
		{Label: "Recursive", Value: strconv.FormatBool(cfg.Recursive)},
		{Label: "Verbose", Value: strconv.FormatBool(cfg.Verbose)},
		{Label: "Delete on failure", Value: strconv.FormatBool(cfg.DeleteOnFailure)},
		{Label: "Dry run", Value: strconv.FormatBool(cfg.DryRun)},
		{Label: "Auto orient", Value: strconv.FormatBool(cfg.AutoOrient)},
		{Label: "Downscale interpolation", Value: string(cfg.DownInterpolation)},
		{Label: "Upscale interpolation", Value: string(cfg.UpInterpolation)},
		{Label: "Resize method", Value: cfg.Method.Label()},
	}

	switch cfg.Method {
	case config.MethodScale:
		rows = append(rows, SummaryRow{Label: "Scale factor", Value: strconv.FormatFloat(cfg.ScaleFactor, 'g', -1, 64)})
	case config.MethodFixed:
		rows = append(rows,
			SummaryRow{Label: "Height", Value: strconv.Itoa(cfg.TargetHeight)},
			SummaryRow{Label: "Width", Value: strconv.Itoa(cfg.TargetWidth)},
		)
	case config.MethodDynamicAspect:
		rows = append(rows,
			SummaryRow{Label: "Height", Value: orAuto(cfg.TargetHeight)},
			SummaryRow{Label: "Width", Value: orAuto(cfg.TargetWidth)},
		)
	case config.MethodMinBound:
		rows = append(rows,
			SummaryRow{Label: "Minimal height", Value: strconv.Itoa(cfg.MinHeight)},
			SummaryRow{Label: "Minimal width", Value: strconv.Itoa(cfg.MinWidth)},
		)
	}

	format := cfg.OutputFormat
	if format == "" {
		format = "same as input"
	}
	rows = append(rows,
		SummaryRow{Label: "JPEG quality", Value: strconv.Itoa(cfg.JPEGQuality)},
		SummaryRow{Label: "Output format", Value: format},
		SummaryRow{Label: "Target extensions", Value: strings.Join(cfg.Extensions, " ")},
	)
	if cfg.KeepOriginals {
		rows = append(rows, SummaryRow{Label: "Suffix", Value: cfg.Suffix})
	}
	rows = append(rows, SummaryRow{Label: "Threads", Value: strconv.Itoa(cfg.Threads)})
	return rows
}

// RenderConfig renders the --summary listing: the configuration table
// followed by the input paths.
func RenderConfig(cfg config.Config, inputs []string) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Summary:"))
	b.WriteString("\n")
	b.WriteString(RenderSummary(ConfigRows(cfg)))
	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Input paths:"))
	for _, path := range inputs {
		b.WriteString("\n  ")
		b.WriteString(bulletStyle.Render("-"))
		b.WriteString(" ")
		b.WriteString(pathStyle.Render(path))
	}
	return b.String()
}

func orAuto(n int) string {
	if n <= 0 {
		return "auto"
	}
	return strconv.Itoa(n)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

var (
	valueStyle   = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	pathStyle    = lipgloss.NewStyle().Foreground(ColorInk)
	bulletStyle  = lipgloss.NewStyle().Foreground(ColorDim)
)
