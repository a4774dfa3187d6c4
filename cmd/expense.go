package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/heartlines/internal/cli"
	"github.com/theirongolddev/heartlines/internal/ledger"
	"github.com/theirongolddev/heartlines/internal/model"
	"github.com/theirongolddev/heartlines/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagExpenseDescription string
	flagExpenseAmount      string
	flagExpenseCategory    string
	flagExpenseDate        string
	flagExpenseRecurring   bool
	flagExpenseFrequency   string

	flagExpenseFilterCategory string
	flagExpenseSearch         string
	flagExpenseAll            bool
)

var expenseCmd = &cobra.Command{
	Use:     "expense",
	Aliases: []string{"expenses"},
	Short:   "List and edit expenses",
	RunE:    runExpenseList,
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses, newest first",
	RunE:  runExpenseList,
}

var expenseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	RunE:  runExpenseAdd,
}

var expenseUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of an expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenseUpdate,
}

var expenseDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an expense",
	Args:    cobra.ExactArgs(1),
	RunE:    runExpenseDelete,
}

func init() {
	for _, c := range []*cobra.Command{expenseAddCmd, expenseUpdateCmd} {
		c.Flags().StringVar(&flagExpenseDescription, "description", "", "What the money was spent on")
		c.Flags().StringVar(&flagExpenseAmount, "amount", "", "Amount spent")
		c.Flags().StringVar(&flagExpenseCategory, "category", string(model.Other), "Spending category")
		c.Flags().StringVar(&flagExpenseDate, "date", "", "Date, YYYY-MM-DD (default today)")
		c.Flags().BoolVar(&flagExpenseRecurring, "recurring", false, "Expense repeats every period")
		c.Flags().StringVar(&flagExpenseFrequency, "frequency", "", "Repeat period for recurring expenses (default monthly)")
	}
	_ = expenseAddCmd.MarkFlagRequired("description")
	_ = expenseAddCmd.MarkFlagRequired("amount")

	for _, c := range []*cobra.Command{expenseCmd, expenseListCmd} {
		c.Flags().StringVarP(&flagExpenseFilterCategory, "category", "c", "", "Only this category")
		c.Flags().StringVarP(&flagExpenseSearch, "search", "s", "", "Only descriptions containing text")
		c.Flags().BoolVarP(&flagExpenseAll, "all", "a", false, "Include expenses outside the selected month")
	}

	expenseCmd.AddCommand(expenseListCmd, expenseAddCmd, expenseUpdateCmd, expenseDeleteCmd)
	rootCmd.AddCommand(expenseCmd)
}

func runExpenseList(cmd *cobra.Command, _ []string) error {
	var category model.Category
	if flagExpenseFilterCategory != "" {
		category = model.Category(flagExpenseFilterCategory)
		if !category.Valid() {
			return fmt.Errorf("category %q: %w", flagExpenseFilterCategory, ledger.ErrInvalidCategory)
		}
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	list := s.data.Expenses
	title := "Expenses"
	if !flagExpenseAll {
		list = pipeline.FilterExpensesByMonth(list, s.asOf)
		title = "Expenses  " + s.asOf.Format("January 2006")
	}
	if category != "" {
		list = pipeline.FilterExpensesByCategory(list, category)
	}
	list = pipeline.SortExpensesByDate(pipeline.FilterExpensesByText(list, flagExpenseSearch))

	if len(list) == 0 {
		fmt.Println("\n  No matching expenses.")
		return nil
	}

	var total float64
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		repeats := ""
		if freq, ok := e.RecurringFrequency(); ok {
			repeats = freq.Label()
		}
		total += e.Amount
		rows = append(rows, []string{
			cli.FormatDate(e.Date),
			e.Description,
			e.Category.Label(),
			cli.RenderExpense(money(e.Amount)),
			repeats,
			cli.RenderMuted(e.ID),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{"Date", "Description", "Category", "Amount", "Repeats", "ID"},
		Rows:    rows,
		Footer:  []string{fmt.Sprintf("%d expenses", len(list)), "", "", money(total), "", ""},
	}))
	return nil
}

func runExpenseAdd(cmd *cobra.Command, _ []string) error {
	amount, err := cli.ParseAmount(flagExpenseAmount)
	if err != nil {
		return err
	}
	date := time.Now()
	if flagExpenseDate != "" {
		if date, err = cli.ParseDate(flagExpenseDate, time.Local); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	s, err := openSessionForWrite(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	d, e, err := s.ledger.AddExpense(s.data, ledger.ExpenseInput{
		Description: flagExpenseDescription,
		Amount:      amount,
		Category:    model.Category(flagExpenseCategory),
		Date:        date,
		IsRecurring: flagExpenseRecurring,
		Frequency:   model.Frequency(flagExpenseFrequency),
	})
	if err != nil {
		return err
	}
	if err := s.save(ctx, d); err != nil {
		return err
	}
	logger.WithField("id", e.ID).Info("expense added")

	fmt.Printf("  Added %s: %s in %s on %s\n", e.Description, money(e.Amount), e.Category.Label(), cli.FormatDate(e.Date))
	printTotals(d)
	return nil
}

func runExpenseUpdate(cmd *cobra.Command, args []string) error {
	var patch ledger.ExpensePatch
	flags := cmd.Flags()
	if flags.Changed("description") {
		patch.Description = &flagExpenseDescription
	}
	if flags.Changed("amount") {
		amount, err := cli.ParseAmount(flagExpenseAmount)
		if err != nil {
			return err
		}
		patch.Amount = &amount
	}
	if flags.Changed("category") {
		c := model.Category(flagExpenseCategory)
		patch.Category = &c
	}
	if flags.Changed("date") {
		date, err := cli.ParseDate(flagExpenseDate, time.Local)
		if err != nil {
			return err
		}
		patch.Date = &date
	}
	if flags.Changed("recurring") {
		patch.IsRecurring = &flagExpenseRecurring
	}
	if flags.Changed("frequency") {
		freq := model.Frequency(flagExpenseFrequency)
		patch.Frequency = &freq
	}

	ctx := cmd.Context()
	s, err := openSessionForWrite(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	d, e, err := s.ledger.UpdateExpense(s.data, args[0], patch)
	if err != nil {
		return err
	}
	if err := s.save(ctx, d); err != nil {
		return err
	}
	logger.WithField("id", e.ID).Info("expense updated")

	fmt.Printf("  Updated %s: %s in %s\n", e.Description, money(e.Amount), e.Category.Label())
	printTotals(d)
	return nil
}

func runExpenseDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSessionForWrite(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	d, err := s.ledger.DeleteExpense(s.data, args[0])
	if err != nil {
		return err
	}
	if err := s.save(ctx, d); err != nil {
		return err
	}
	logger.WithField("id", args[0]).Info("expense deleted")

	fmt.Printf("  Deleted %s\n", args[0])
	printTotals(d)
	return nil
}
