package cmd

import (
	"fmt"

	"github.com/theirongolddev/heartlines/internal/cli"
	"github.com/theirongolddev/heartlines/internal/pipeline"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "50/30/20 recommendations per category",
	RunE:  runBudget,
}

func init() {
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	a := pipeline.Analyze(s.data.Incomes, s.data.Expenses, s.asOf)

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET  " + s.asOf.Format("January 2006")))
	fmt.Println()

	if a.TotalIncome == 0 {
		fmt.Println("  No income recorded: every recommendation is zero.")
		fmt.Println()
	}

	ruleRows := make([][]string, 0, 3)
	for _, r := range pipeline.Rules(a) {
		ruleRows = append(ruleRows, []string{
			r.Title,
			fmt.Sprintf("%.0f%%", r.Percentage),
			money(r.Amount),
			cli.RenderMuted(r.Description),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Split",
		Headers: []string{"Bucket", "Share", "Amount", ""},
		Rows:    ruleRows,
	}))
	fmt.Println()

	rows := make([][]string, 0, len(a.Recommendations))
	for _, rec := range a.Recommendations {
		rows = append(rows, []string{
			rec.Category.Label(),
			money(rec.RecommendedAmount),
			money(rec.ActualAmount),
			cli.RenderUsageBar(rec.ActualAmount, rec.RecommendedAmount, rec.Status, 16),
			cli.RenderStatus(rec.Status),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Recommendations",
		Headers: []string{"Category", "Recommended", "Actual", "Usage", "Status"},
		Rows:    rows,
	}))

	fmt.Printf("\n  Income %s   Spent %s   Net %s   Savings rate %s\n",
		money(a.TotalIncome), money(a.TotalExpenses), money(a.NetIncome), cli.FormatPercent(a.SavingsRate))
	return nil
}
