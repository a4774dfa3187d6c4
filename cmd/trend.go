package cmd

import (
	"fmt"

	"github.com/theirongolddev/heartlines/internal/cli"
	"github.com/theirongolddev/heartlines/internal/pipeline"

	"github.com/spf13/cobra"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Income and spending over recent months",
	RunE:  runTrend,
}

func init() {
	rootCmd.AddCommand(trendCmd)
}

func runTrend(cmd *cobra.Command, _ []string) error {
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

	points := pipeline.MonthlyTrend(s.data.Incomes, s.data.Expenses, trendMonths(), s.asOf)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TREND  Last %d months", len(points))))
	fmt.Println()

	expenses := make([]float64, len(points))
	rows := make([][]string, 0, len(points))
	for i, p := range points {
		expenses[i] = p.Expenses
		rows = append(rows, []string{
			p.Label,
			cli.RenderIncome(money(p.Income)),
			cli.RenderExpense(money(p.Expenses)),
			money(p.Net()),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Income", "Expenses", "Net"},
		Rows:    rows,
	}))
	fmt.Printf("\n  Spending  %s\n", cli.RenderSparkline(expenses))
	return nil
}
