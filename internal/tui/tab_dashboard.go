package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/heartlines/internal/cli"
	"github.com/theirongolddev/heartlines/internal/model"
	"github.com/theirongolddev/heartlines/internal/pipeline"
	"github.com/theirongolddev/heartlines/internal/tui/components"
	"github.com/theirongolddev/heartlines/internal/tui/theme"
)

func (a App) renderDashboardTab(cw int) string {
	t := theme.Active
	s := a.summary
	sym := a.currency()
	var b strings.Builder

	// Row 1: metric cards
	expenseDelta := ""
	if n := len(s.MonthlyTrend); n >= 2 {
		prev := s.MonthlyTrend[n-2]
		expenseDelta = cli.FormatDelta(sym, s.TotalExpenses, prev.Expenses) + " vs " + prev.Month.Format("Jan")
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Monthly Income", Value: cli.FormatMoney(sym, s.TotalIncome), Color: t.Income},
		{Label: "Monthly Expenses", Value: cli.FormatMoney(sym, s.TotalExpenses), Delta: expenseDelta, Color: t.Expense},
		{Label: "Net Income", Value: cli.FormatMoney(sym, s.NetIncome), Color: t.Net(s.NetIncome)},
		{Label: "Savings Rate", Value: cli.FormatPercent(s.SavingsRate), Color: t.Net(s.SavingsRate)},
	}, cw))
	b.WriteString("\n")

	// Row 2: trend
	if len(s.MonthlyTrend) > 0 {
		b.WriteString(a.renderTrendCard(cw))
		b.WriteString("\n")
	}

	// Row 3: category split + budget health
	if a.isCompactLayout() {
		b.WriteString(a.renderBreakdownCard(cw))
		b.WriteString("\n")
		b.WriteString(a.renderHealthCard(cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			a.renderBreakdownCard(halves[0]),
			a.renderHealthCard(halves[1]),
		}))
	}
	return b.String()
}

func (a App) renderTrendCard(cw int) string {
	t := theme.Active
	sym := a.currency()
	trend := a.summary.MonthlyTrend

	labels := make([]string, len(trend))
	incomes := make([]float64, len(trend))
	expenses := make([]float64, len(trend))
	nets := make([]float64, len(trend))
	for i, p := range trend {
		labels[i] = p.Label
		incomes[i] = p.Income
		expenses[i] = p.Expenses
		nets[i] = p.Net()
	}
	series := []components.Series{
		{Name: "Income", Color: t.Income, Values: incomes},
		{Name: "Expenses", Color: t.Expense, Values: expenses},
	}

	innerW := components.CardInnerWidth(cw)
	money := func(v float64) string { return cli.FormatMoneyShort(sym, v) }
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var body strings.Builder
	body.WriteString(components.Legend(series))
	body.WriteString("\n")
	body.WriteString(components.PairedBars(labels, series, innerW, money))
	body.WriteString("\n")
	body.WriteString(muted.Render("Net  "))
	body.WriteString(components.Sparkline(nets, t.Net(nets[len(nets)-1])))
	body.WriteString(muted.Render("  " + money(nets[len(nets)-1]) + " this month"))

	return components.ContentCard(fmt.Sprintf("Monthly Trend (%d months)", len(trend)), body.String(), cw)
}

func (a App) renderBreakdownCard(cw int) string {
	t := theme.Active
	sym := a.currency()
	shares := a.summary.CategoryBreakdown
	innerW := components.CardInnerWidth(cw)

	title := "Spending by Category"
	if len(shares) == 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		return components.ContentCard(title, dim.Render("No expenses this month."), cw)
	}

	nameW := 14
	amountW := 11
	pctW := 6
	barW := innerW - nameW - amountW - pctW - 3
	if barW < 4 {
		barW = 4
	}

	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var body strings.Builder
	for i, sh := range shares {
		if i > 0 {
			body.WriteString("\n")
		}
		name := lipgloss.NewStyle().Foreground(t.Category(sh.Category)).Background(t.Surface)
		body.WriteString(name.Render(fmt.Sprintf("%-*s", nameW, truncStr(sh.Category.Label(), nameW))))
		body.WriteString(components.ShareBar(sh.Percentage/100, barW, t.Category(sh.Category)))
		body.WriteString(space.Render(" "))
		body.WriteString(pctStyle.Render(fmt.Sprintf("%5.1f%%", sh.Percentage)))
		body.WriteString(space.Render(" "))
		body.WriteString(amountStyle.Render(fmt.Sprintf("%*s", amountW, cli.FormatMoneyShort(sym, sh.Amount))))
	}
	return components.ContentCard(title, body.String(), cw)
}

func (a App) renderHealthCard(cw int) string {
	t := theme.Active
	sym := a.currency()
	recs := a.analysis.Recommendations
	counts := pipeline.CountByStatus(recs)

	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var body strings.Builder
	for i, st := range []model.Status{model.StatusOnTrack, model.StatusUnder, model.StatusOver} {
		if i > 0 {
			body.WriteString(space.Render("   "))
		}
		val := lipgloss.NewStyle().Foreground(t.Status(st)).Background(t.Surface).Bold(true)
		body.WriteString(val.Render(fmt.Sprintf("%d", counts[st])))
		body.WriteString(label.Render(" " + st.Label()))
	}

	var over []model.BudgetRecommendation
	for _, r := range recs {
		if r.Status == model.StatusOver {
			over = append(over, r)
		}
	}
	body.WriteString("\n\n")
	if len(over) == 0 {
		ok := lipgloss.NewStyle().Foreground(t.OnTrack).Background(t.Surface)
		body.WriteString(ok.Render("No category is over budget."))
	} else {
		red := lipgloss.NewStyle().Foreground(t.Over).Background(t.Surface)
		for i, r := range over {
			if i > 0 {
				body.WriteString("\n")
			}
			body.WriteString(red.Render(fmt.Sprintf("%-14s", r.Category.Label())))
			body.WriteString(label.Render(fmt.Sprintf("%s over",
				cli.FormatMoney(sym, r.ActualAmount-r.RecommendedAmount))))
		}
	}
	return components.ContentCard("Budget Health", body.String(), cw)
}
