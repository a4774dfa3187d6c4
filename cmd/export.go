package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/theirongolddev/heartlines/internal/interchange"
	"github.com/theirongolddev/heartlines/internal/report"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagExportFormat string
	flagExportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records as CSV or a monthly PDF report",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "csv", "Output format: csv or pdf")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Output file (csv defaults to stdout, pdf to heartlines-YYYY-MM.pdf)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format := strings.ToLower(strings.TrimSpace(flagExportFormat))
	if format != "csv" && format != "pdf" {
		return fmt.Errorf("unknown export format %q (want csv or pdf)", flagExportFormat)
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	out := flagExportOutput
	if out == "" && format == "pdf" {
		out = fmt.Sprintf("heartlines-%s.pdf", s.asOf.Format("2006-01"))
	}

	write := func(w io.Writer) error {
		if format == "pdf" {
			return report.BuildMonthlyPDF(w, report.NewReportData(s.data, s.asOf, trendMonths(), currency()))
		}
		return interchange.ExportCSV(w, s.data, s.asOf.Location())
	}

	toFile := out != "" && out != "-"
	if toFile {
		err = writeFile(out, write)
	} else {
		err = write(os.Stdout)
	}
	if err != nil {
		return fmt.Errorf("exporting %s: %w", format, err)
	}

	logger.WithFields(logrus.Fields{
		"format":   format,
		"incomes":  len(s.data.Incomes),
		"expenses": len(s.data.Expenses),
	}).Debug("export written")
	if toFile && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %d incomes and %d expenses to %s\n",
			len(s.data.Incomes), len(s.data.Expenses), out)
	}
	return nil
}

// createFile is swapped in tests.
var createFile = func(name string) (io.WriteCloser, error) {
	return os.Create(name) //nolint:gosec // output path is chosen by the local user
}

// writeFile runs write against a new file at path. A failed Close is
// returned like a failed write.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return write(f)
}
