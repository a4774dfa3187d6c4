// Package model defines domain types for heartlines incomes, expenses and budgets.
package model

import "time"

// Frequency is how often an income or recurring expense repeats.
type Frequency string

// Supported frequencies.
const (
	Weekly   Frequency = "weekly"
	BiWeekly Frequency = "bi-weekly"
	Monthly  Frequency = "monthly"
	Yearly   Frequency = "yearly"
)

// Frequencies lists every supported frequency in display order.
var Frequencies = []Frequency{Weekly, BiWeekly, Monthly, Yearly}

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case Weekly, BiWeekly, Monthly, Yearly:
		return true
	}
	return false
}

// Income is one source of money coming in.
type Income struct {
	ID        string
	Source    string
	Amount    float64
	Frequency Frequency
	CreatedAt time.Time
	UpdatedAt time.Time
}
