package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/heartlines/internal/cli"
	"github.com/theirongolddev/heartlines/internal/tui/components"
	"github.com/theirongolddev/heartlines/internal/tui/theme"
)

func (a App) renderExpensesTab(cw, contentH int) string {
	t := theme.Active
	sym := a.currency()
	list := a.expenses
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Selection).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	expenseStyle := lipgloss.NewStyle().Foreground(t.Expense).Background(t.Surface).Bold(true)

	title := "Expenses"
	if len(list) == 0 {
		msg := "No expenses yet. Press a to add one."
		if len(a.data.Expenses) > 0 {
			msg = "No expenses match the current filters. Press esc to clear them."
		}
		return components.ContentCard(title, mutedStyle.Render(msg), cw)
	}

	dateW, catW, amountW, recurW := 12, 14, 12, 10
	descW := innerW - dateW - catW - amountW - recurW - 4
	if descW < 12 {
		descW = 12
	}
	if a.isCompactLayout() {
		recurW = 0
		descW += 11
	}

	var body strings.Builder
	header := fmt.Sprintf("%-*s %-*s %-*s %*s", dateW, "Date", descW, "Description", catW, "Category", amountW, "Amount")
	if recurW > 0 {
		header += fmt.Sprintf(" %-*s", recurW, "Repeats")
	}
	body.WriteString(headerStyle.Render(header))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	start, end := visibleRange(a.exp.cursor, len(list), contentH-listOverhead)
	var total float64
	for _, e := range list {
		total += e.Amount
	}
	for i := start; i < end; i++ {
		e := list[i]
		line := fmt.Sprintf("%-*s %-*s %-*s %*s",
			dateW, e.Date.Format("Jan 02 2006"),
			descW, truncStr(e.Description, descW),
			catW, e.Category.Label(),
			amountW, cli.FormatMoney(sym, e.Amount))
		if recurW > 0 {
			repeats := "-"
			if freq, ok := e.RecurringFrequency(); ok {
				repeats = freq.Label()
			}
			line += fmt.Sprintf(" %-*s", recurW, repeats)
		}
		if i == a.exp.cursor {
			body.WriteString(selStyle.Render(fmt.Sprintf("%-*s", innerW, line)))
		} else {
			body.WriteString(rowStyle.Render(line))
		}
		body.WriteString("\n")
	}

	body.WriteString(mutedStyle.Render(fmt.Sprintf("%d of %d expenses · listed total ", len(list), len(a.data.Expenses))))
	body.WriteString(expenseStyle.Render(cli.FormatMoney(sym, total)))

	return components.FocusCard(title, body.String(), cw)
}
