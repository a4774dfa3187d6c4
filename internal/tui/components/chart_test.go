package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/heartlines/internal/model"
	"github.com/theirongolddev/heartlines/internal/tui/theme"
)

func plain(v float64) string { return fmt.Sprintf("%.0f", v) }

func TestSparklineLength(t *testing.T) {
	if Sparkline(nil, theme.Active.Accent) != "" {
		t.Fatal("empty sparkline should render nothing")
	}
	s := Sparkline([]float64{-5, 0, 10, 3}, theme.Active.Accent)
	if w := lipgloss.Width(s); w != 4 {
		t.Fatalf("sparkline width = %d, want 4", w)
	}
}

func TestPairedBarsRows(t *testing.T) {
	out := PairedBars(
		[]string{"Sep 2026", "Oct 2026"},
		[]Series{
			{Name: "Income", Color: theme.Active.Income, Values: []float64{4000, 4000}},
			{Name: "Expenses", Color: theme.Active.Expense, Values: []float64{1000, 0}},
		},
		60, plain,
	)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("rows = %d, want 4", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 60 {
			t.Fatalf("row %d width = %d, want 60", i, w)
		}
	}
	if !strings.Contains(lines[0], "Sep 2026") || strings.Contains(lines[1], "Sep 2026") {
		t.Fatal("month label should appear on the first series row only")
	}
}

func TestBarChartHeight(t *testing.T) {
	out := BarChart([]float64{10, 20, 5}, []string{"Aug", "Sep", "Oct"}, theme.Active.Accent, 40, 5, plain)
	if h := lipgloss.Height(out); h != 7 {
		t.Fatalf("height = %d, want 5 rows + axis + labels", h)
	}
	if !strings.Contains(out, "20") {
		t.Fatal("peak label missing")
	}
}

func TestUsageBar(t *testing.T) {
	if UsageRatio(50, 0) != 1 || UsageRatio(0, 0) != 0 {
		t.Fatal("UsageRatio with zero recommendation")
	}
	bar := UsageBar(150, 100, model.StatusOver, 20)
	if !strings.Contains(bar, "150%") {
		t.Fatalf("usage bar %q missing percentage", bar)
	}
	if w := lipgloss.Width(bar); w != 26 {
		t.Fatalf("usage bar width = %d, want 26", w)
	}
}
