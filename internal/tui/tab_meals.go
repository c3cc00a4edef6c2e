package tui

import (
	"fmt"
	"strings"

	"calbank/internal/cli"
	"calbank/internal/mealplan"
	"calbank/internal/tui/components"
	"calbank/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// mealsState holds the meals tab cursor state.
type mealsState struct {
	cursor int
	offset int // scroll offset for the list
}

func (a App) renderMealsTab(cw, h int) string {
	t := theme.Active
	ms := a.mealsState

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(a.meals) == 0 {
		body := mutedStyle.Render("No meals logged today.\nAdd one: calbank log <slot> \"<name>\" <kcal>")
		return components.ContentCard(fmt.Sprintf("Meals · %s", cli.FormatDate(a.snap.Date)), body, cw)
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)

	innerW := components.CardInnerWidth(cw)
	nameW := innerW - 6 - 11 - 8 - 5
	if nameW < 12 {
		nameW = 12
	}

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("  %-6s %-11s %-*s %8s", "Time", "Slot", nameW, "Meal", "Kcal")))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	// Rows that fit: card chrome (3) + header (2) + budget card below (~7)
	visible := h - 12
	if visible < 4 {
		visible = 4
	}

	offset := ms.offset
	if ms.cursor < offset {
		offset = ms.cursor
	}
	if ms.cursor >= offset+visible {
		offset = ms.cursor - visible + 1
	}
	end := offset + visible
	if end > len(a.meals) {
		end = len(a.meals)
	}

	for i := offset; i < end; i++ {
		m := a.meals[i]
		timeStr := ""
		if !m.LoggedAt.IsZero() {
			timeStr = m.LoggedAt.Local().Format("15:04")
		}
		line := fmt.Sprintf("%-6s %-11s %-*s %8s",
			timeStr, m.Slot, nameW, truncStr(m.Name, nameW), cli.FormatKcal(m.Kcal))

		if i == ms.cursor {
			body.WriteString(markerStyle.Render("▸ "))
			body.WriteString(selectedStyle.Render(line))
		} else {
			body.WriteString(rowStyle.Render("  " + line))
		}
		body.WriteString("\n")
	}

	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")
	body.WriteString(rowStyle.Render(fmt.Sprintf("  %-6s %-11s %-*s %8s",
		"", "", nameW, "TOTAL", cli.FormatKcal(a.snap.TodayConsumed))))
	body.WriteString("\n\n")
	body.WriteString(mutedStyle.Render("[j/k] move  [d] delete  [r] refresh"))

	title := fmt.Sprintf("Meals · %s", cli.FormatDate(a.snap.Date))

	var b strings.Builder
	b.WriteString(components.ContentCard(title, body.String(), cw))
	b.WriteString("\n")

	// Slot budget card
	barW := innerW - 32
	if barW > 50 {
		barW = 50
	}
	if barW < 10 {
		barW = 10
	}
	slotKcal := a.slotConsumed()
	var slotBody strings.Builder
	for _, slot := range mealplan.Slots() {
		budget := mealplan.BudgetFor(slot, a.snap.TodayTarget)
		slotBody.WriteString(components.TargetBar(string(slot), slotKcal[slot], budget, 10, barW))
		slotBody.WriteString("\n")
	}
	b.WriteString(components.ContentCard("Slot Budgets", strings.TrimRight(slotBody.String(), "\n"), cw))

	return b.String()
}
