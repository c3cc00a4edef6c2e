package components

import (
	"fmt"

	"calbank/internal/cli"
	"calbank/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// BudgetColor maps consumed/budget utilization to a color. Staying under
// budget is the good end here, so green runs all the way to 90%.
func BudgetColor(pct float64) string {
	t := theme.Active
	switch {
	case pct > 1.0:
		return string(t.Red)
	case pct > 0.9:
		return string(t.Orange)
	default:
		return string(t.Green)
	}
}

// TargetBar renders a labeled consumed-vs-budget bar with the remaining
// kcal (or the overshoot) after it.
func TargetBar(label string, consumed, budget float64, labelW, barWidth int) string {
	t := theme.Active

	pct := 0.0
	if budget > 0 {
		pct = consumed / budget
	}
	shown := pct
	if shown > 1 {
		shown = 1
	}
	if shown < 0 {
		shown = 0
	}

	bar := progress.New(
		progress.WithSolidFill(BudgetColor(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(BudgetColor(pct))).Background(t.Surface).Bold(true)
	restStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	rest := ""
	switch {
	case budget <= 0:
	case consumed > budget:
		rest = cli.FormatKcal(consumed-budget) + " over"
	default:
		rest = cli.FormatKcal(budget-consumed) + " left"
	}

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(shown) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100)) +
		spaceStyle.Render("  ") +
		restStyle.Render(rest)
}
