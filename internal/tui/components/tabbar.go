package components

import (
	"strings"

	"calbank/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Week", Key: 'w', KeyPos: 0},
	{Name: "Meals", Key: 'm', KeyPos: 0},
	{Name: "History", Key: 'h', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1}, // x is not in "Settings"
}

// TabVisualWidth returns the rendered width of a tab. Mouse hitboxes in
// the app are computed from this, so it must stay in sync with RenderTabBar.
func TabVisualWidth(tab Tab, active bool) int {
	w := len(tab.Name) + 2 // one space padding each side
	if !active && tab.KeyPos < 0 {
		w += 3 // "[x]" suffix when the shortcut is not a letter of the name
	}
	return w
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.SurfaceHover).
		Bold(true)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	sepStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	for i, tab := range Tabs {
		if i > 0 {
			b.WriteString(sepStyle.Render("│"))
		}
		if i == activeIdx {
			b.WriteString(activeStyle.Render(" " + tab.Name + " "))
			continue
		}
		if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
			before := tab.Name[:tab.KeyPos]
			key := string(tab.Name[tab.KeyPos])
			after := tab.Name[tab.KeyPos+1:]
			b.WriteString(inactiveStyle.Render(" " + before))
			b.WriteString(keyStyle.Render(key))
			b.WriteString(inactiveStyle.Render(after + " "))
		} else {
			b.WriteString(inactiveStyle.Render(" " + tab.Name))
			b.WriteString(dimKeyStyle.Render("["))
			b.WriteString(keyStyle.Render(string(tab.Key)))
			b.WriteString(dimKeyStyle.Render("]"))
			b.WriteString(inactiveStyle.Render(" "))
		}
	}

	// Pad the row to full width so the bar background reaches the edge
	rowStyle := lipgloss.NewStyle().Background(t.Surface).Width(width)
	return rowStyle.Render(b.String())
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
