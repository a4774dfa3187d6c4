package cmd

import (
	"fmt"

	"github.com/theirongolddev/heartlines/internal/cli"
	"github.com/theirongolddev/heartlines/internal/ledger"
	"github.com/theirongolddev/heartlines/internal/model"
	"github.com/theirongolddev/heartlines/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagIncomeSource    string
	flagIncomeAmount    string
	flagIncomeFrequency string
)

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "List and edit income sources",
	RunE:  runIncomeList,
}

var incomeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List income sources with their monthly equivalent",
	RunE:  runIncomeList,
}

var incomeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an income source",
	RunE:  runIncomeAdd,
}

var incomeUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of an income source",
	Args:  cobra.ExactArgs(1),
	RunE:  runIncomeUpdate,
}

var incomeDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an income source",
	Args:    cobra.ExactArgs(1),
	RunE:    runIncomeDelete,
}

func init() {
	for _, c := range []*cobra.Command{incomeAddCmd, incomeUpdateCmd} {
		c.Flags().StringVar(&flagIncomeSource, "source", "", "Where the income comes from")
		c.Flags().StringVar(&flagIncomeAmount, "amount", "", "Amount per period")
		c.Flags().StringVar(&flagIncomeFrequency, "frequency", string(model.Monthly), "weekly, bi-weekly, monthly or yearly")
	}
	_ = incomeAddCmd.MarkFlagRequired("source")
	_ = incomeAddCmd.MarkFlagRequired("amount")

	incomeCmd.AddCommand(incomeListCmd, incomeAddCmd, incomeUpdateCmd, incomeDeleteCmd)
	rootCmd.AddCommand(incomeCmd)
}

func runIncomeList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if len(s.data.Incomes) == 0 {
		fmt.Println("\n  No income recorded yet. Add one with `heartlines income add`.")
		return nil
	}

	rows := make([][]string, 0, len(s.data.Incomes))
	for _, in := range s.data.Incomes {
		rows = append(rows, []string{
			in.Source,
			money(in.Amount),
			in.Frequency.Label(),
			cli.RenderIncome(money(pipeline.MonthlyEquivalent(in.Amount, in.Frequency))),
			cli.RenderMuted(in.ID),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Income",
		Headers: []string{"Source", "Amount", "Frequency", "Monthly", "ID"},
		Rows:    rows,
		Footer:  []string{"Total", "", "", money(pipeline.TotalMonthlyIncome(s.data.Incomes)), ""},
	}))
	return nil
}

func runIncomeAdd(cmd *cobra.Command, _ []string) error {
	amount, err := cli.ParseAmount(flagIncomeAmount)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := openSessionForWrite(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	d, in, err := s.ledger.AddIncome(s.data, ledger.IncomeInput{
		Source:    flagIncomeSource,
		Amount:    amount,
		Frequency: model.Frequency(flagIncomeFrequency),
	})
	if err != nil {
		return err
	}
	if err := s.save(ctx, d); err != nil {
		return err
	}
	logger.WithField("id", in.ID).Info("income added")

	fmt.Printf("  Added %s: %s %s (%s/month)\n", in.Source, money(in.Amount), in.Frequency.Label(),
		money(pipeline.MonthlyEquivalent(in.Amount, in.Frequency)))
	printTotals(d)
	return nil
}

func runIncomeUpdate(cmd *cobra.Command, args []string) error {
	var patch ledger.IncomePatch
	flags := cmd.Flags()
	if flags.Changed("source") {
		patch.Source = &flagIncomeSource
	}
	if flags.Changed("amount") {
		amount, err := cli.ParseAmount(flagIncomeAmount)
		if err != nil {
			return err
		}
		patch.Amount = &amount
	}
	if flags.Changed("frequency") {
		freq := model.Frequency(flagIncomeFrequency)
		patch.Frequency = &freq
	}

	ctx := cmd.Context()
	s, err := openSessionForWrite(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	d, in, err := s.ledger.UpdateIncome(s.data, args[0], patch)
	if err != nil {
		return err
	}
	if err := s.save(ctx, d); err != nil {
		return err
	}
	logger.WithField("id", in.ID).Info("income updated")

	fmt.Printf("  Updated %s: %s %s\n", in.Source, money(in.Amount), in.Frequency.Label())
	printTotals(d)
	return nil
}

func runIncomeDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSessionForWrite(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	d, err := s.ledger.DeleteIncome(s.data, args[0])
	if err != nil {
		return err
	}
	if err := s.save(ctx, d); err != nil {
		return err
	}
	logger.WithField("id", args[0]).Info("income deleted")

	fmt.Printf("  Deleted %s\n", args[0])
	printTotals(d)
	return nil
}

// printTotals shows the recomputed analysis after a change.
func printTotals(d model.FinancialData) {
	a := d.BudgetAnalysis
	fmt.Printf("  Income %s   Spent %s   Net %s\n",
		money(a.TotalIncome), money(a.TotalExpenses), money(a.NetIncome))
}
