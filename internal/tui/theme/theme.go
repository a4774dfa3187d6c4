// Package theme defines color themes for the heartlines TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/heartlines/internal/model"
)

// Theme maps the TUI's color roles to concrete colors.
type Theme struct {
	Name string

	Background lipgloss.Color // app background
	Surface    lipgloss.Color // cards, bars, tables
	Selection  lipgloss.Color // active tab, selected row
	Track      lipgloss.Color // unfilled part of bars

	Border lipgloss.Color
	Focus  lipgloss.Color // focused card and form border

	TextDim      lipgloss.Color
	TextMuted    lipgloss.Color
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color
	AccentBright lipgloss.Color
	Key          lipgloss.Color // key names in help

	Income  lipgloss.Color
	Expense lipgloss.Color
	Deficit lipgloss.Color // negative net, errors

	Over    lipgloss.Color
	Under   lipgloss.Color
	OnTrack lipgloss.Color

	Buckets    [3]lipgloss.Color  // needs, wants, savings
	Categories [11]lipgloss.Color // same order as model.Categories
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme, warm and paper-inspired.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   "#100F0F",
	Surface:      "#1C1B1A",
	Selection:    "#282726",
	Track:        "#343331",
	Border:       "#403E3C",
	Focus:        "#3AA99F",
	TextDim:      "#575653",
	TextMuted:    "#878580",
	TextPrimary:  "#FFFCF0",
	Accent:       "#3AA99F",
	AccentBright: "#5BC8BE",
	Key:          "#24837B",
	Income:       "#879A39",
	Expense:      "#DA702C",
	Deficit:      "#D14D41",
	Over:         "#D14D41",
	Under:        "#D0A215",
	OnTrack:      "#879A39",
	Buckets:      [3]lipgloss.Color{"#4385BE", "#CE5D97", "#879A39"},
	Categories: [11]lipgloss.Color{
		"#4385BE", "#3AA99F", "#879A39", "#D0A215", "#D14D41", "#CE5D97",
		"#DA702C", "#8B7EC8", "#66800B", "#AF3029", "#878580",
	},
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   "#1E1E2E",
	Surface:      "#313244",
	Selection:    "#45475A",
	Track:        "#585B70",
	Border:       "#585B70",
	Focus:        "#89B4FA",
	TextDim:      "#6C7086",
	TextMuted:    "#A6ADC8",
	TextPrimary:  "#CDD6F4",
	Accent:       "#89B4FA",
	AccentBright: "#B4D0FB",
	Key:          "#94E2D5",
	Income:       "#A6E3A1",
	Expense:      "#FAB387",
	Deficit:      "#F38BA8",
	Over:         "#F38BA8",
	Under:        "#F9E2AF",
	OnTrack:      "#A6E3A1",
	Buckets:      [3]lipgloss.Color{"#89B4FA", "#F5C2E7", "#A6E3A1"},
	Categories: [11]lipgloss.Color{
		"#89B4FA", "#94E2D5", "#A6E3A1", "#F9E2AF", "#F38BA8", "#F5C2E7",
		"#FAB387", "#CBA6F7", "#74C7EC", "#EBA0AC", "#9399B2",
	},
}

// TokyoNight is a cool blue and purple theme.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Background:   "#1A1B26",
	Surface:      "#24283B",
	Selection:    "#343A52",
	Track:        "#414868",
	Border:       "#565F89",
	Focus:        "#7AA2F7",
	TextDim:      "#565F89",
	TextMuted:    "#A9B1D6",
	TextPrimary:  "#C0CAF5",
	Accent:       "#7AA2F7",
	AccentBright: "#A9C1FF",
	Key:          "#7DCFFF",
	Income:       "#9ECE6A",
	Expense:      "#FF9E64",
	Deficit:      "#F7768E",
	Over:         "#F7768E",
	Under:        "#E0AF68",
	OnTrack:      "#9ECE6A",
	Buckets:      [3]lipgloss.Color{"#7AA2F7", "#BB9AF7", "#9ECE6A"},
	Categories: [11]lipgloss.Color{
		"#7AA2F7", "#7DCFFF", "#9ECE6A", "#E0AF68", "#F7768E", "#BB9AF7",
		"#FF9E64", "#9D7CD8", "#73DACA", "#DB4B4B", "#737AA2",
	},
}

// Terminal sticks to the 16 ANSI colors so it follows the terminal's palette.
var Terminal = Theme{
	Name:         "terminal",
	Background:   "0",
	Surface:      "0",
	Selection:    "8",
	Track:        "8",
	Border:       "8",
	Focus:        "6",
	TextDim:      "8",
	TextMuted:    "7",
	TextPrimary:  "15",
	Accent:       "6",
	AccentBright: "14",
	Key:          "6",
	Income:       "2",
	Expense:      "3",
	Deficit:      "1",
	Over:         "1",
	Under:        "3",
	OnTrack:      "2",
	Buckets:      [3]lipgloss.Color{"4", "5", "2"},
	Categories: [11]lipgloss.Color{
		"4", "6", "2", "3", "1", "5", "11", "13", "10", "9", "7",
	},
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Names returns the names of all themes in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// Net colors a signed amount: income color when positive, deficit otherwise.
func (t Theme) Net(v float64) lipgloss.Color {
	if v < 0 {
		return t.Deficit
	}
	return t.Income
}

// Status returns the color for a budget status.
func (t Theme) Status(s model.Status) lipgloss.Color {
	switch s {
	case model.StatusOver:
		return t.Over
	case model.StatusUnder:
		return t.Under
	case model.StatusOnTrack:
		return t.OnTrack
	default:
		return t.TextMuted
	}
}

// Category returns the color of a spending category.
func (t Theme) Category(c model.Category) lipgloss.Color {
	for i, known := range model.Categories {
		if known == c && i < len(t.Categories) {
			return t.Categories[i]
		}
	}
	return t.TextMuted
}
