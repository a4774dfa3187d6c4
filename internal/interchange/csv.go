// Package interchange converts financial data to and from CSV.
package interchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/heartlines/internal/model"
)

// Header is the column layout of exported files.
var Header = []string{"Type", "Description", "Amount", "Category", "Frequency", "Is Recurring", "Date", "Created At"}

// Row types.
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// DateLayout formats the Date column.
const DateLayout = "2006-01-02"

// ExportCSV writes every income, then every expense, one row each. The Date
// column is the calendar day in loc (UTC when nil).
func ExportCSV(w io.Writer, d model.FinancialData, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, in := range d.Incomes {
		row := []string{
			TypeIncome,
			in.Source,
			formatAmount(in.Amount),
			"",
			string(in.Frequency),
			"false",
			in.CreatedAt.In(loc).Format(DateLayout),
			in.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing income %s: %w", in.ID, err)
		}
	}

	for _, e := range d.Expenses {
		var freq string
		if e.IsRecurring {
			freq = string(e.Frequency)
		}
		row := []string{
			TypeExpense,
			e.Description,
			formatAmount(e.Amount),
			string(e.Category),
			freq,
			strconv.FormatBool(e.IsRecurring),
			e.Date.In(loc).Format(DateLayout),
			e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing expense %s: %w", e.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatAmount(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// Imported is the result of reading a CSV file.
type Imported struct {
	Incomes  []model.Income
	Expenses []model.Expense
	Skipped  int
}

// ImportCSV reads rows written by ExportCSV. Every record gets a fresh ID from
// newID. Rows that are too short, have an unknown type or a non-positive
// amount are skipped and counted. Unreadable dates fall back to now, and a
// plain YYYY-MM-DD date is midnight in now's location.
func ImportCSV(r io.Reader, newID func(prefix string) string, now time.Time) (Imported, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Imported{}, nil
	}
	if err != nil {
		return Imported{}, fmt.Errorf("reading header: %w", err)
	}

	var out Imported
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return out, fmt.Errorf("reading csv: %w", err)
		}
		if len(rec) < len(header) || len(rec) < len(Header) {
			out.Skipped++
			continue
		}

		amount, ok := parseAmount(rec[2])
		if !ok {
			out.Skipped++
			continue
		}
		created := parseTime(rec[7], now)

		switch strings.TrimSpace(rec[0]) {
		case TypeIncome:
			freq := model.Frequency(strings.TrimSpace(rec[4]))
			if !freq.Valid() {
				freq = model.Monthly
			}
			out.Incomes = append(out.Incomes, model.Income{
				ID:        newID("income"),
				Source:    rec[1],
				Amount:    amount,
				Frequency: freq,
				CreatedAt: created,
				UpdatedAt: created,
			})
		case TypeExpense:
			cat := model.Category(strings.TrimSpace(rec[3]))
			if !cat.Valid() {
				cat = model.Other
			}
			recurring := strings.TrimSpace(rec[5]) == "true"
			var freq model.Frequency
			if f := model.Frequency(strings.TrimSpace(rec[4])); recurring && f.Valid() {
				freq = f
			}
			out.Expenses = append(out.Expenses, model.Expense{
				ID:          newID("expense"),
				Description: rec[1],
				Amount:      amount,
				Category:    cat,
				Date:        parseDate(rec[6], now),
				IsRecurring: recurring,
				Frequency:   freq,
				CreatedAt:   created,
				UpdatedAt:   created,
			})
		default:
			out.Skipped++
		}
	}
	return out, nil
}

func parseAmount(s string) (float64, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return 0, false
	}
	return d.InexactFloat64(), true
}

func parseTime(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.ParseInLocation(DateLayout, s, fallback.Location()); err == nil {
		return t
	}
	return fallback
}

// parseDate reads the Date column. Full timestamps are accepted for files
// written by other tools.
func parseDate(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(DateLayout, s, now.Location()); err == nil {
		return t
	}
	return parseTime(s, now)
}
