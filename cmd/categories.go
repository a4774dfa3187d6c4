package cmd

import (
	"fmt"

	"github.com/theirongolddev/heartlines/internal/cli"
	"github.com/theirongolddev/heartlines/internal/pipeline"
	"github.com/theirongolddev/heartlines/internal/tui/theme"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Spending breakdown by category",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	shares := pipeline.CategoryBreakdown(s.data.Expenses, s.asOf)

	fmt.Println()
	fmt.Println(cli.RenderTitle("CATEGORIES  " + s.asOf.Format("January 2006")))
	fmt.Println()

	if len(shares) == 0 {
		fmt.Println("  No spending recorded for this month.")
		return nil
	}

	rows := make([][]string, 0, len(shares))
	for _, sh := range shares {
		rows = append(rows, []string{
			sh.Category.Label(),
			money(sh.Amount),
			cli.FormatPercent(sh.Percentage),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Amount", "Share"},
		Rows:    rows,
	}))
	fmt.Println()

	peak := shares[0].Amount
	for _, sh := range shares {
		fmt.Println(cli.RenderHorizontalBar(fmt.Sprintf("%-14s", sh.Category.Label()), sh.Amount, peak, 40, theme.Active.Category(sh.Category)))
	}
	return nil
}
