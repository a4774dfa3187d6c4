package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/heartlines/internal/tui/theme"
)

// StatusBar is the content of the bottom bar.
type StatusBar struct {
	Hints string // key hints for the active tab
	Flash string // last action result, shown in the middle
	Error bool   // render Flash as an error
	Right string // e.g. the viewed month
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, sb StatusBar) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	flashColor := t.OnTrack
	if sb.Error {
		flashColor = t.Deficit
	}
	flash := lipgloss.NewStyle().Foreground(flashColor).Background(t.Surface).Bold(true)

	left := base.Render(" [?]help  [q]uit")
	if sb.Hints != "" {
		left += base.Render("  " + sb.Hints)
	}
	middle := ""
	if sb.Flash != "" {
		middle = base.Render("  ") + flash.Render(sb.Flash)
	}
	right := ""
	if sb.Right != "" {
		right = base.Render(sb.Right + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return left + middle + base.Render(strings.Repeat(" ", padding)) + right
}
