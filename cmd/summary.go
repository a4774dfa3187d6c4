package cmd

import (
	"fmt"

	"github.com/theirongolddev/heartlines/internal/cli"
	"github.com/theirongolddev/heartlines/internal/model"
	"github.com/theirongolddev/heartlines/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly income, spending and savings at a glance",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if s.empty() {
		printEmpty()
		return nil
	}

	d := s.data
	sum := pipeline.Summarize(d.Incomes, d.Expenses, trendMonths(), s.asOf)
	prevMonth := pipeline.MonthStart(s.asOf).AddDate(0, -1, 0)
	prevSpent := pipeline.TotalMonthlyExpenses(d.Expenses, prevMonth)
	counts := pipeline.CountByStatus(pipeline.Analyze(d.Incomes, d.Expenses, s.asOf).Recommendations)

	fmt.Println()
	fmt.Println(cli.RenderTitle("HEARTLINES  " + s.asOf.Format("January 2006")))
	fmt.Println()

	spent := money(sum.TotalExpenses)
	if prevSpent > 0 {
		spent += fmt.Sprintf("  (%s vs %s)", cli.FormatDelta(currency(), sum.TotalExpenses, prevSpent), prevMonth.Format("Jan"))
	}

	rows := [][]string{
		{"Income (monthly)", cli.RenderIncome(money(sum.TotalIncome))},
		{"Expenses", cli.RenderExpense(spent)},
		{"Net", money(sum.NetIncome)},
		{"Savings rate", cli.FormatPercent(sum.SavingsRate)},
		{"Income sources", cli.FormatNumber(int64(len(d.Incomes)))},
		{"Expenses recorded", cli.FormatNumber(int64(len(d.Expenses)))},
		{"Over budget", fmt.Sprintf("%d categories", counts[model.StatusOver])},
		{"Under budget", fmt.Sprintf("%d categories", counts[model.StatusUnder])},
		{"On track", fmt.Sprintf("%d categories", counts[model.StatusOnTrack])},
	}

	if len(sum.MonthlyTrend) > 1 {
		net := make([]float64, len(sum.MonthlyTrend))
		for i, p := range sum.MonthlyTrend {
			net[i] = p.Net()
		}
		rows = append(rows, []string{fmt.Sprintf("Net, last %d months", len(net)), cli.RenderSparkline(net)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if len(sum.CategoryBreakdown) > 0 {
		top := sum.CategoryBreakdown[0]
		fmt.Printf("\n  Biggest category: %s, %s (%s of spending)\n",
			top.Category.Label(), money(top.Amount), cli.FormatPercent(top.Percentage))
	}
	return nil
}
