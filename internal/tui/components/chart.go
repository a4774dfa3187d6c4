package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/heartlines/internal/tui/theme"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values. Negative values are
// drawn at the floor.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(sparkBlocks)-1))
		idx = max(0, min(idx, len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// Series is one named, colored set of values for a PairedBars chart.
type Series struct {
	Name   string
	Color  lipgloss.Color
	Values []float64
}

// PairedBars renders one row per label with a horizontal bar for each series,
// all scaled against the largest value. format renders the value after each bar.
func PairedBars(labels []string, series []Series, width int, format func(float64) string) string {
	if len(labels) == 0 || len(series) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	for _, l := range labels {
		labelW = max(labelW, lipgloss.Width(l))
	}
	peak := 0.0
	valueW := 0
	for _, s := range series {
		for _, v := range s.Values {
			peak = math.Max(peak, v)
			valueW = max(valueW, len(format(v)))
		}
	}
	if peak <= 0 {
		peak = 1
	}

	barW := width - labelW - valueW - 2
	if barW < 4 {
		barW = 4
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	trackStyle := lipgloss.NewStyle().Foreground(t.Track).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for i, label := range labels {
		for j, s := range series {
			name := ""
			if j == 0 {
				name = label
			}
			v := 0.0
			if i < len(s.Values) {
				v = s.Values[i]
			}
			filled := int(math.Round(math.Max(v, 0) / peak * float64(barW)))
			filled = min(filled, barW)
			barStyle := lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface)

			b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, name)))
			b.WriteString(space.Render(" "))
			b.WriteString(barStyle.Render(strings.Repeat("█", filled)))
			b.WriteString(trackStyle.Render(strings.Repeat("░", barW-filled)))
			b.WriteString(space.Render(" "))
			b.WriteString(valueStyle.Render(fmt.Sprintf("%*s", valueW, format(v))))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Legend renders colored series names on one line.
func Legend(series []Series) string {
	t := theme.Active
	space := lipgloss.NewStyle().Background(t.Surface)
	names := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	parts := make([]string, len(series))
	for i, s := range series {
		parts[i] = lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).Render("■") +
			names.Render(" "+s.Name)
	}
	return strings.Join(parts, space.Render("   "))
}

// BarChart renders a vertical bar chart with a max label on the y axis and
// one label under each bar.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int, format func(float64) string) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	top := format(peak)
	axisW := max(len(top), 1) + 1
	n := len(values)
	barW := (width - axisW - 1 - (n - 1)) / n
	barW = max(1, min(barW, 8))

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)
	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		rowTop := peak * float64(row) / float64(height)
		rowBottom := peak * float64(row-1) / float64(height)

		label := ""
		if row == height {
			label = top
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", axisW, label)))

		for i, v := range values {
			if i > 0 {
				b.WriteString(space.Render(" "))
			}
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				idx := int((v - rowBottom) / (rowTop - rowBottom) * 8)
				idx = max(1, min(idx, 8))
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(space.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	axisLen := n*barW + n - 1
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", axisW, "0", strings.Repeat("─", axisLen))))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(space.Render(strings.Repeat(" ", axisW+1)))
		for i, l := range labels {
			if i > 0 {
				b.WriteString(space.Render(" "))
			}
			r := []rune(l)
			if len(r) > barW {
				r = r[:barW]
			}
			b.WriteString(axisStyle.Render(fmt.Sprintf("%-*s", barW, string(r))))
		}
	}
	return b.String()
}
