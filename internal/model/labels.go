package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label returns the display name of a category, e.g. "Transportation".
// A Caser keeps state, so each call gets its own.
func (c Category) Label() string {
	return cases.Title(language.English).String(string(c))
}

// Label returns the display name of a frequency, e.g. "Bi-weekly".
func (f Frequency) Label() string {
	if f == "" {
		return ""
	}
	// Only the first letter: cases.Title would give "Bi-Weekly".
	s := string(f)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Label returns the human status text shown next to a recommendation.
func (s Status) Label() string {
	switch s {
	case StatusOver:
		return "Over Budget"
	case StatusUnder:
		return "Under Budget"
	case StatusOnTrack:
		return "On Track"
	default:
		return "Unknown"
	}
}
