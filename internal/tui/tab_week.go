package tui

import (
	"fmt"
	"strings"

	"calbank/internal/cli"
	"calbank/internal/tui/components"
	"calbank/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// balanceBarMax is the widest the inline surplus/deficit bar gets.
const balanceBarMax = 14

func (a App) renderWeekTab(cw int) string {
	t := theme.Active
	snap := a.snap

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(snap.Days) == 0 {
		body := mutedStyle.Render("Nothing logged this cycle yet.\nLog a meal with `calbank log` and it shows up here.")
		return components.ContentCard("Week", body, cw)
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	todayStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	gainStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	lossStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	plaisirStyle := lipgloss.NewStyle().Foreground(t.Magenta).Background(t.Surface).Bold(true)

	innerW := components.CardInnerWidth(cw)

	// Largest balance magnitude scales the inline bars.
	maxAbs := 0.0
	for _, d := range snap.Days {
		if v := d.Balance; v < 0 {
			v = -v
			if v > maxAbs {
				maxAbs = v
			}
		} else if v > maxAbs {
			maxAbs = v
		}
	}

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-4s %-12s %8s %8s %8s %8s  %-*s %s",
		"Day", "Date", "Eaten", "Target", "Balance", "Capped", balanceBarMax, "", "")))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	for _, d := range snap.Days {
		rowStyle := valueStyle
		if d.IsToday {
			rowStyle = todayStyle
		}

		balStr := cli.FormatBalance(d.Balance)
		balStyled := gainStyle.Render(fmt.Sprintf("%8s", balStr))
		if d.Balance < 0 {
			balStyled = lossStyle.Render(fmt.Sprintf("%8s", balStr))
		}

		bar := balanceBar(d.Balance, maxAbs)

		marker := ""
		if d.Over {
			marker = warnStyle.Render("over")
		}
		if d.IsToday {
			marker = mutedStyle.Render("today")
		}

		body.WriteString(rowStyle.Render(fmt.Sprintf("%-4s %-12s %8s %8s ",
			shortDay(d.Weekday),
			d.Date,
			cli.FormatKcal(d.Consumed),
			cli.FormatKcal(d.Target))))
		body.WriteString(balStyled)
		body.WriteString(rowStyle.Render(fmt.Sprintf(" %8s  ", cli.FormatBalance(d.Capped))))
		body.WriteString(bar)
		if marker != "" {
			body.WriteString(rowStyle.Render(" "))
			body.WriteString(marker)
		}
		body.WriteString("\n")
	}

	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	totalStyled := gainStyle
	if snap.TotalBalance < 0 {
		totalStyled = lossStyle
	}
	cappedStyled := gainStyle
	if snap.CappedBalance < 0 {
		cappedStyled = lossStyle
	}
	body.WriteString(valueStyle.Render(fmt.Sprintf("%-4s %-12s %8s %8s ", "", "BANKED", "", "")))
	body.WriteString(totalStyled.Render(fmt.Sprintf("%8s", cli.FormatBalance(snap.TotalBalance))))
	body.WriteString(cappedStyled.Render(fmt.Sprintf(" %8s", cli.FormatBalance(snap.CappedBalance))))
	body.WriteString("\n")

	title := fmt.Sprintf("Week · started %s", cli.FormatDate(snap.CycleStart))
	var b strings.Builder
	b.WriteString(components.ContentCard(title, body.String(), cw))
	b.WriteString("\n")

	// Summary card: credit rule + plaisir gates
	var sumBody strings.Builder
	sumBody.WriteString(mutedStyle.Render("Credit ceiling: ") +
		valueStyle.Render(cli.FormatKcal(snap.MaxCredit)+" kcal") +
		mutedStyle.Render("  (10% of 6 bankable days)") + "\n")
	if snap.DaysOverLimit > 0 {
		sumBody.WriteString(warnStyle.Render(fmt.Sprintf("%d day(s) beyond the ±10%% daily swing; their excess does not bank.", snap.DaysOverLimit)))
	} else {
		sumBody.WriteString(mutedStyle.Render("Every day within the ±10% swing; the full balance banks."))
	}
	sumBody.WriteString("\n")
	if snap.CanHavePlaisir {
		sumBody.WriteString(plaisirStyle.Render("Plaisir unlocked") + mutedStyle.Render("  day 5+ reached with a surplus"))
	} else if snap.DaysUntilPlaisir > 0 {
		sumBody.WriteString(mutedStyle.Render(fmt.Sprintf("Plaisir locked  day %d of 7, %s until day 5; balance must be positive",
			snap.DayIndex+1, cli.FormatDays(snap.DaysUntilPlaisir))))
	} else {
		sumBody.WriteString(mutedStyle.Render("Plaisir locked  day 5+ reached, needs a positive balance"))
	}

	b.WriteString(components.ContentCard("Rules", sumBody.String(), cw))

	return b.String()
}

// balanceBar renders a small signed bar, green rightward for surplus and
// red leftward for deficit, on a shared scale.
func balanceBar(v, maxAbs float64) string {
	t := theme.Active
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)
	if maxAbs <= 0 {
		return spaceStyle.Render(strings.Repeat(" ", balanceBarMax))
	}

	half := balanceBarMax / 2
	n := int(float64(half) * (v / maxAbs))
	if n > half {
		n = half
	}
	if n < -half {
		n = -half
	}

	gain := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	loss := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	if n >= 0 {
		return spaceStyle.Render(strings.Repeat(" ", half)) +
			gain.Render(strings.Repeat("█", n)) +
			spaceStyle.Render(strings.Repeat(" ", half-n))
	}
	n = -n
	return spaceStyle.Render(strings.Repeat(" ", half-n)) +
		loss.Render(strings.Repeat("█", n)) +
		spaceStyle.Render(strings.Repeat(" ", half))
}
