// Package report renders the monthly budget report as a PDF.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/heartlines/internal/model"
	"github.com/theirongolddev/heartlines/internal/pipeline"
)

// ReportData is everything the monthly report shows.
type ReportData struct {
	Month       time.Time
	GeneratedAt time.Time
	Currency    string
	Analysis    model.BudgetAnalysis
	Spending    model.CategoryTotals
	Trend       []model.MonthlyPoint
}

// NewReportData derives report figures from d for asOf's month.
func NewReportData(d model.FinancialData, asOf time.Time, trendMonths int, currency string) ReportData {
	return ReportData{
		Month:       pipeline.MonthStart(asOf),
		GeneratedAt: asOf,
		Currency:    currency,
		Analysis:    pipeline.Analyze(d.Incomes, d.Expenses, asOf),
		Spending:    pipeline.CategorySpending(d.Expenses, asOf),
		Trend:       pipeline.MonthlyTrend(d.Incomes, d.Expenses, trendMonths, asOf),
	}
}

func money(currency string, v float64) string {
	s := decimal.NewFromFloat(v).Abs().StringFixed(2)
	if v < 0 {
		return "-" + currency + s
	}
	return currency + s
}

// BuildMonthlyPDF writes an A4 report for rd to w.
func BuildMonthlyPDF(w io.Writer, rd ReportData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Heartlines Budget Report", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	cur := tr(rd.Currency)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Heartlines Budget Report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, "Month: "+rd.Month.Format(pipeline.MonthLabelLayout))
	pdf.Ln(6)
	pdf.Cell(0, 8, "Generated: "+rd.GeneratedAt.Format("2006-01-02"))
	pdf.Ln(10)

	a := rd.Analysis
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range [][2]string{
		{"Monthly income", money(cur, a.TotalIncome)},
		{"Monthly expenses", money(cur, a.TotalExpenses)},
		{"Net income", money(cur, a.NetIncome)},
		{"Savings rate", fmt.Sprintf("%.1f%%", a.SavingsRate)},
	} {
		pdf.Cell(70, 7, line[0])
		pdf.Cell(50, 7, line[1])
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Budget (%.0f/%.0f/%.0f)", a.NeedsPercentage, a.WantsPercentage, a.SavingsPercentage))
	pdf.Ln(8)
	for _, r := range pipeline.Rules(a) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(40, 7, fmt.Sprintf("%s %.0f%%", r.Title, r.Percentage))
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(35, 7, money(cur, r.Amount))
		pdf.MultiCell(0, 7, r.Description, "", "L", false)
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(45, 7, "Category")
	pdf.Cell(35, 7, "Recommended")
	pdf.Cell(35, 7, "Actual")
	pdf.Cell(20, 7, "Share")
	pdf.Cell(35, 7, "Status")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	for _, r := range a.Recommendations {
		pdf.Cell(45, 7, r.Category.Label())
		pdf.Cell(35, 7, money(cur, r.RecommendedAmount))
		pdf.Cell(35, 7, money(cur, r.ActualAmount))
		pdf.Cell(20, 7, fmt.Sprintf("%.0f%%", r.Percentage))
		pdf.Cell(35, 7, r.Status.Label())
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Spending by Category")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, c := range model.Categories {
		pdf.Cell(45, 7, c.Label())
		pdf.Cell(35, 7, money(cur, rd.Spending[c]))
		pdf.Ln(7)
	}

	if len(rd.Trend) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Monthly Trend")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(35, 7, "Month")
		pdf.Cell(35, 7, "Income")
		pdf.Cell(35, 7, "Expenses")
		pdf.Cell(35, 7, "Net")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		for _, p := range rd.Trend {
			pdf.Cell(35, 7, p.Label)
			pdf.Cell(35, 7, money(cur, p.Income))
			pdf.Cell(35, 7, money(cur, p.Expenses))
			pdf.Cell(35, 7, money(cur, p.Net()))
			pdf.Ln(7)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}
