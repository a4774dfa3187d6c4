package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/theirongolddev/heartlines/internal/interchange"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var flagImportReplace bool

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import records from a CSV export",
	Long:  "Import records from a CSV file written by `heartlines export`. Use - to read stdin.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportReplace, "replace", false, "Replace existing records instead of appending")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	var r io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	ctx := cmd.Context()
	s, err := openSessionForWrite(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	imp, err := interchange.ImportCSV(r, s.ledger.NewID, time.Now())
	if err != nil {
		return fmt.Errorf("importing %s: %w", args[0], err)
	}

	d := s.ledger.Merge(s.data, imp.Incomes, imp.Expenses)
	if flagImportReplace {
		d = s.ledger.Replace(imp.Incomes, imp.Expenses)
	}
	if err := s.save(ctx, d); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"incomes":  len(imp.Incomes),
		"expenses": len(imp.Expenses),
		"skipped":  imp.Skipped,
		"replace":  flagImportReplace,
	}).Info("import finished")

	fmt.Printf("  Imported %d incomes and %d expenses\n", len(imp.Incomes), len(imp.Expenses))
	if imp.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "  %d rows could not be read and were skipped\n", imp.Skipped)
	}
	printTotals(d)
	return nil
}
