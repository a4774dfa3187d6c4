package model

import "testing"

func TestFrequencyLabel(t *testing.T) {
	tests := []struct {
		freq Frequency
		want string
	}{
		{Weekly, "Weekly"},
		{BiWeekly, "Bi-weekly"},
		{Monthly, "Monthly"},
		{Yearly, "Yearly"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := tt.freq.Label(); got != tt.want {
			t.Errorf("Frequency(%q).Label() = %q, want %q", tt.freq, got, tt.want)
		}
	}
}

func TestCategoryAndStatusLabels(t *testing.T) {
	if got := Transportation.Label(); got != "Transportation" {
		t.Errorf("Transportation.Label() = %q", got)
	}
	if got := StatusOver.Label(); got != "Over Budget" {
		t.Errorf("StatusOver.Label() = %q", got)
	}
	if got := StatusOnTrack.Label(); got != "On Track" {
		t.Errorf("StatusOnTrack.Label() = %q", got)
	}
}
