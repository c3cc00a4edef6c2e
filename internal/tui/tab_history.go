package tui

import (
	"fmt"
	"strings"

	"calbank/internal/cli"
	"calbank/internal/tui/components"
	"calbank/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderHistoryTab(cw, h int) string {
	t := theme.Active

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(a.archives) == 0 {
		body := mutedStyle.Render("No completed cycles yet.\nArchives appear after the first 7-day rollover.")
		return components.ContentCard("History", body, cw)
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	gainStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	lossStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	innerW := components.CardInnerWidth(cw)

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-26s %7s %9s %9s %6s", "Cycle", "Logged", "Balance", "Capped", "Over")))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	// Archives arrive newest first; scroll keeps older cycles reachable.
	visible := h - 10
	if visible < 4 {
		visible = 4
	}
	offset := a.historyOffset
	if offset > len(a.archives)-visible {
		offset = len(a.archives) - visible
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + visible
	if end > len(a.archives) {
		end = len(a.archives)
	}

	for _, ar := range a.archives[offset:end] {
		balStyled := gainStyle
		if ar.TotalBalance < 0 {
			balStyled = lossStyle
		}
		over := valueStyle.Render(fmt.Sprintf("%6d", ar.DaysOverLimit))
		if ar.DaysOverLimit > 0 {
			over = warnStyle.Render(fmt.Sprintf("%6d", ar.DaysOverLimit))
		}
		body.WriteString(valueStyle.Render(fmt.Sprintf("%-26s %7d ",
			fmt.Sprintf("%s .. %s", ar.StartDate, ar.EndDate), ar.DaysLogged)))
		body.WriteString(balStyled.Render(fmt.Sprintf("%9s", cli.FormatBalance(ar.TotalBalance))))
		body.WriteString(valueStyle.Render(fmt.Sprintf(" %9s ", cli.FormatBalance(ar.CappedBalance))))
		body.WriteString(over)
		body.WriteString("\n")
	}

	if len(a.archives) > visible {
		body.WriteString(mutedStyle.Render(fmt.Sprintf("… %d of %d cycles  [j/k] scroll", end-offset, len(a.archives))))
		body.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString(components.ContentCard(fmt.Sprintf("History · %d completed cycle(s)", len(a.archives)), body.String(), cw))
	b.WriteString("\n")

	// Balance trend across cycles, oldest left
	vals := make([]float64, 0, len(a.archives))
	for i := len(a.archives) - 1; i >= 0; i-- {
		v := a.archives[i].TotalBalance
		if v < 0 {
			v = 0 // sparkline scales from zero; deficits flatten to the floor
		}
		vals = append(vals, v)
	}
	trend := components.Sparkline(vals, t.Green)
	b.WriteString(components.ContentCard("Banked per cycle", trend, cw))

	return b.String()
}
