package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/heartlines/internal/cli"
	"github.com/theirongolddev/heartlines/internal/pipeline"
	"github.com/theirongolddev/heartlines/internal/tui/components"
	"github.com/theirongolddev/heartlines/internal/tui/theme"
)

// listOverhead is the number of card lines around a list's rows: border,
// title, header, rule and footer.
const listOverhead = 7

func (a App) renderIncomeTab(cw, contentH int) string {
	t := theme.Active
	sym := a.currency()
	incomes := a.data.Incomes
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Selection).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	incomeStyle := lipgloss.NewStyle().Foreground(t.Income).Background(t.Surface).Bold(true)

	if len(incomes) == 0 {
		return components.ContentCard("Income",
			mutedStyle.Render("No income sources yet. Press a to add one."), cw)
	}

	amountW, freqW, monthlyW := 14, 10, 14
	sourceW := innerW - amountW - freqW - monthlyW - 3
	if sourceW < 12 {
		sourceW = 12
	}

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %-*s %*s",
		sourceW, "Source", amountW, "Amount", freqW, "Frequency", monthlyW, "Monthly")))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	start, end := visibleRange(a.incomeCursor, len(incomes), contentH-listOverhead)
	for i := start; i < end; i++ {
		in := incomes[i]
		line := fmt.Sprintf("%-*s %*s %-*s %*s",
			sourceW, truncStr(in.Source, sourceW),
			amountW, cli.FormatMoney(sym, in.Amount),
			freqW, in.Frequency.Label(),
			monthlyW, cli.FormatMoney(sym, pipeline.MonthlyEquivalent(in.Amount, in.Frequency)))
		if i == a.incomeCursor {
			body.WriteString(selStyle.Render(fmt.Sprintf("%-*s", innerW, line)))
		} else {
			body.WriteString(rowStyle.Render(line))
		}
		body.WriteString("\n")
	}

	body.WriteString(mutedStyle.Render(fmt.Sprintf("%d sources · total monthly ", len(incomes))))
	body.WriteString(incomeStyle.Render(cli.FormatMoney(sym, pipeline.TotalMonthlyIncome(incomes))))

	return components.FocusCard("Income", body.String(), cw)
}
