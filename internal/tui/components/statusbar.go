package components

import (
	"strings"

	"calbank/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. daemonLive reports whether
// the background monitor answered its last probe.
func RenderStatusBar(width int, dataAge string, daemonLive, refreshing, autoRefresh bool) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(width)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	liveStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	busyStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface)

	left := mutedStyle.Render(" [?]help  [r]efresh  [q]uit")

	var rightParts []string
	if refreshing {
		rightParts = append(rightParts, busyStyle.Render("refreshing…"))
	} else if autoRefresh {
		rightParts = append(rightParts, dimStyle.Render("auto-refresh on"))
	}
	if daemonLive {
		rightParts = append(rightParts, liveStyle.Render("● daemon"))
	}
	if dataAge != "" {
		rightParts = append(rightParts, dimStyle.Render("data "+dataAge))
	}
	right := strings.Join(rightParts, dimStyle.Render("  ")) + mutedStyle.Render(" ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return barStyle.Render(left + dimStyle.Render(strings.Repeat(" ", padding)) + right)
}
