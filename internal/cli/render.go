package cli

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/theirongolddev/heartlines/internal/model"
	"github.com/theirongolddev/heartlines/internal/tui/theme"
)

// Styles follow the active theme so CLI output matches the dashboard.
func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

func dimStyle() lipgloss.Style    { return fg(theme.Active.TextDim) }
func mutedStyle() lipgloss.Style  { return fg(theme.Active.TextMuted) }
func valueStyle() lipgloss.Style  { return fg(theme.Active.TextPrimary) }
func headerStyle() lipgloss.Style { return fg(theme.Active.Accent).Bold(true) }

// Table represents a bordered text table for CLI output. Footer, when set,
// is rendered in bold after the rows, e.g. for totals.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Footer  []string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Active.Border).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(valueStyle().Bold(true).Render(title))
}

// RenderTable renders a bordered table. The first column is left-aligned and
// the rest, usually amounts, are right-aligned.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	rows := t.Rows
	footerRow := -2
	if len(t.Footer) > 0 {
		footerRow = len(rows)
		rows = append(slices.Clone(rows), t.Footer)
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle()).
		Headers(t.Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle().Padding(0, 1)
			}
			s := valueStyle().Padding(0, 1)
			if col > 0 {
				s = s.Align(lipgloss.Right)
			}
			if row == footerRow {
				s = s.Bold(true)
			}
			return s
		})

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle().Render(t.Title))
		b.WriteString("\n")
	}
	b.WriteString(tbl.Render())
	b.WriteString("\n")
	return b.String()
}

// StatusColor returns the color used for a budget status.
func StatusColor(st model.Status) lipgloss.Color {
	return theme.Active.Status(st)
}

// RenderStatus renders a status label in its color.
func RenderStatus(st model.Status) string {
	return fg(StatusColor(st)).Render(st.Label())
}

// RenderUsageBar renders actual spending against a recommendation as a bar
// capped at width, colored by status.
func RenderUsageBar(actual, recommended float64, st model.Status, width int) string {
	if width <= 0 {
		return ""
	}
	ratio := 0.0
	switch {
	case recommended > 0:
		ratio = min(actual/recommended, 1)
	case actual > 0:
		ratio = 1
	}
	filled := min(int(ratio*float64(width)), width)
	return fg(StatusColor(st)).Render(strings.Repeat("█", filled)) +
		dimStyle().Render(strings.Repeat("░", width-filled))
}

// RenderIncome styles an income amount.
func RenderIncome(s string) string { return fg(theme.Active.Income).Render(s) }

// RenderExpense styles an expense amount.
func RenderExpense(s string) string { return fg(theme.Active.Expense).Render(s) }

// RenderMuted styles secondary text.
func RenderMuted(s string) string { return mutedStyle().Render(s) }

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline draws values as block characters scaled to the largest
// value. Zero and negative values sit on the floor.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	peak := slices.Max(values)
	if peak <= 0 {
		peak = 1
	}

	out := make([]rune, len(values))
	for i, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		out[i] = sparkBlocks[max(0, min(idx, len(sparkBlocks)-1))]
	}
	return string(out)
}

// RenderHorizontalBar renders label followed by a bar scaled to maxValue.
// color picks the bar color; empty means the income color.
func RenderHorizontalBar(label string, value, maxValue float64, maxWidth int, color lipgloss.Color) string {
	if maxValue <= 0 {
		return "  " + label
	}
	if color == "" {
		color = theme.Active.Income
	}
	n := max(0, min(int(value/maxValue*float64(maxWidth)), maxWidth))
	return "  " + label + " " + fg(color).Render(strings.Repeat("█", n))
}
