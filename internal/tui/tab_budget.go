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

func (a App) renderBudgetTab(cw int) string {
	var b strings.Builder
	b.WriteString(a.renderRulesCard(cw))
	b.WriteString("\n")
	b.WriteString(a.renderRecommendationsCard(cw))
	return b.String()
}

func (a App) renderRulesCard(cw int) string {
	t := theme.Active
	sym := a.currency()
	rules := pipeline.Rules(a.analysis)

	bucketColors := t.Buckets
	desc := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	amount := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	cards := make([]string, len(rules))
	widths := components.LayoutRow(cw, len(rules))
	for i, r := range rules {
		head := lipgloss.NewStyle().Foreground(bucketColors[i%len(bucketColors)]).Background(t.Surface).Bold(true)
		inner := components.CardInnerWidth(widths[i])
		body := head.Render(fmt.Sprintf("%s %.0f%%", r.Title, r.Percentage)) + "\n" +
			amount.Render(cli.FormatMoney(sym, r.Amount)) + "\n" +
			desc.Width(inner).Render(r.Description)
		cards[i] = components.ContentCard("", body, widths[i])
	}
	return components.CardRow(cards)
}

func (a App) renderRecommendationsCard(cw int) string {
	t := theme.Active
	sym := a.currency()
	recs := a.analysis.Recommendations
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	title := fmt.Sprintf("Recommendations · %s", a.month.Format(pipeline.MonthLabelLayout))
	if a.analysis.TotalIncome == 0 {
		return components.ContentCard(title,
			mutedStyle.Render("Add an income source to get recommendations."), cw)
	}

	catW, pctW, moneyW, statusW := 15, 5, 12, 13
	barW := innerW - catW - pctW - 2*moneyW - statusW - 5 - 6
	if barW < 6 {
		barW = 6
	}

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s %-*s %-*s",
		catW, "Category", pctW, "Share", moneyW, "Target", moneyW, "Actual", barW+6, "Usage", statusW, "Status")))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	for _, r := range recs {
		status := lipgloss.NewStyle().Foreground(t.Status(r.Status)).Background(t.Surface).Bold(true)
		body.WriteString(rowStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s ",
			catW, r.Category.Label(),
			pctW, fmt.Sprintf("%.0f%%", r.Percentage),
			moneyW, cli.FormatMoney(sym, r.RecommendedAmount),
			moneyW, cli.FormatMoney(sym, r.ActualAmount))))
		body.WriteString(components.UsageBar(r.ActualAmount, r.RecommendedAmount, r.Status, barW))
		body.WriteString(space.Render(" "))
		body.WriteString(status.Render(fmt.Sprintf("%-*s", statusW, r.Status.Label())))
		body.WriteString("\n")
	}

	body.WriteString(mutedStyle.Render(fmt.Sprintf("Total expenses %s of %s income · net %s",
		cli.FormatMoney(sym, a.analysis.TotalExpenses),
		cli.FormatMoney(sym, a.analysis.TotalIncome),
		cli.FormatMoney(sym, a.analysis.NetIncome))))

	return components.ContentCard(title, body.String(), cw)
}
