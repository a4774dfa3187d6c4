package model

import "time"

// Category is the closed set of expense categories.
type Category string

// Expense categories.
const (
	Housing        Category = "housing"
	Utilities      Category = "utilities"
	Food           Category = "food"
	Transportation Category = "transportation"
	Healthcare     Category = "healthcare"
	Entertainment  Category = "entertainment"
	Shopping       Category = "shopping"
	Education      Category = "education"
	Savings        Category = "savings"
	Debt           Category = "debt"
	Other          Category = "other"
)

// Categories lists all eleven categories in display order.
var Categories = []Category{
	Housing, Utilities, Food, Transportation, Healthcare,
	Entertainment, Shopping, Education, Savings, Debt, Other,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense is one recorded outgoing payment.
type Expense struct {
	ID          string
	Description string
	Amount      float64
	Category    Category
	Date        time.Time
	IsRecurring bool
	Frequency   Frequency // only meaningful when IsRecurring
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecurringFrequency returns the expense frequency and whether it counts as
// a recurring charge. A stored frequency on a non-recurring expense is ignored.
func (e Expense) RecurringFrequency() (Frequency, bool) {
	if !e.IsRecurring || e.Frequency == "" {
		return "", false
	}
	return e.Frequency, true
}
