package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/heartlines/internal/model"
	"github.com/theirongolddev/heartlines/internal/tui/theme"
)

// ShareBar renders a plain filled bar for a 0..1 share of a whole.
func ShareBar(pct float64, width int, color lipgloss.Color) string {
	t := theme.Active
	pct = clamp01(pct)
	filled := int(pct * float64(width))

	filledStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))
	return b.String()
}

// UsageRatio returns actual/recommended, or 0 when nothing is recommended.
func UsageRatio(actual, recommended float64) float64 {
	if recommended <= 0 {
		if actual > 0 {
			return 1
		}
		return 0
	}
	return actual / recommended
}

// UsageBar renders how much of a recommendation has been spent, colored by
// status, followed by the usage percentage. Usage above 100% fills the bar.
func UsageBar(actual, recommended float64, status model.Status, barWidth int) string {
	t := theme.Active
	ratio := UsageRatio(actual, recommended)
	color := t.Status(status)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(clamp01(ratio)) +
		space.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%4.0f%%", ratio*100))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
