// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with a currency symbol, thousands separators
// and two decimals, e.g. 4330 -> "$4,330.00".
func FormatMoney(symbol string, v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("%s%s%s.%02d", sign, symbol, FormatNumber(whole.IntPart()), cents)
}

// FormatMoneyShort formats an amount for chart labels and narrow columns.
// e.g., 950 -> "$950", 4330 -> "$4.3K", 1250000 -> "$1.3M"
func FormatMoneyShort(symbol string, v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%s%s%.1fM", sign, symbol, v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%s%s%.1fK", sign, symbol, v/1_000)
	default:
		return fmt.Sprintf("%s%s%.0f", sign, symbol, v)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a value already expressed in percent, e.g. 42.5 -> "42.5%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatDelta formats the change between two amounts with an explicit sign.
func FormatDelta(symbol string, current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatMoney(symbol, delta)
	}
	return "-" + FormatMoney(symbol, -delta)
}

// FormatDate formats a date for tables, e.g. "Oct 16, 2026".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 2, 2006")
}

// ParseAmount parses a user-entered amount such as "1,250.50" or "$80".
func ParseAmount(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimLeft(clean, "$€£¥")
	clean = strings.ReplaceAll(clean, ",", "")
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return d.InexactFloat64(), nil
}

// ParseDate parses a YYYY-MM-DD date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// ParseMonth parses a YYYY-MM month in loc and returns a time inside it.
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (want YYYY-MM)", s)
	}
	return t, nil
}
