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

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	snap := a.snap
	var b strings.Builder

	// Row 1: Metric cards
	todayDelta := ""
	switch {
	case snap.TodayConsumed > snap.TodayTarget:
		todayDelta = cli.FormatKcal(snap.TodayConsumed-snap.TodayTarget) + " over"
	case snap.TodayTarget > 0:
		todayDelta = cli.FormatKcal(snap.TodayTarget-snap.TodayConsumed) + " left"
	}

	plaisirValue := "Locked"
	plaisirDelta := ""
	if snap.CanHavePlaisir {
		plaisirValue = "Unlocked"
		plaisirDelta = "go spend some"
	} else if snap.DaysUntilPlaisir > 0 {
		plaisirDelta = cli.FormatDays(snap.DaysUntilPlaisir) + " to go"
	} else {
		plaisirDelta = "needs a surplus"
	}

	cards := []struct{ Label, Value, Delta string }{
		{"Today", cli.FormatKcal(snap.TodayConsumed) + " / " + cli.FormatKcal(snap.TodayTarget), todayDelta},
		{"Banked", cli.FormatBalance(snap.TotalBalance), "capped " + cli.FormatBalance(snap.CappedBalance)},
		{"Max credit", cli.FormatKcal(snap.MaxCredit), "10% ceiling"},
		{"Plaisir", plaisirValue, plaisirDelta},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Today's budget, whole day plus per-slot bars
	innerW := components.CardInnerWidth(cw)
	barW := innerW - 32
	if barW > 50 {
		barW = 50
	}
	if barW < 10 {
		barW = 10
	}

	slotKcal := a.slotConsumed()
	var todayBody strings.Builder
	todayBody.WriteString(components.TargetBar("Day", snap.TodayConsumed, snap.TodayTarget, 10, barW))
	todayBody.WriteString("\n")
	for _, slot := range mealplan.Slots() {
		budget := mealplan.BudgetFor(slot, snap.TodayTarget)
		todayBody.WriteString(components.TargetBar(string(slot), slotKcal[slot], budget, 10, barW))
		todayBody.WriteString("\n")
	}
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Today · %s", cli.FormatDate(snap.Date)),
		strings.TrimRight(todayBody.String(), "\n"),
		cw,
	))
	b.WriteString("\n")

	// Row 3: Cycle consumption chart, over-target days in orange
	if len(snap.Days) > 0 {
		vals := make([]float64, len(snap.Days))
		labels := make([]string, len(snap.Days))
		for i, d := range snap.Days {
			vals[i] = d.Consumed
			labels[i] = shortDay(d.Weekday)
		}
		chartH := 8
		if a.isCompactLayout() {
			chartH = 6
		}
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Eaten This Cycle · day %d of 7", snap.DayIndex+1),
			components.BarChartWithLimit(vals, labels, t.Blue, t.Orange, snap.DailyTarget, components.CardInnerWidth(cw), chartH),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 4: Balance + Cycle cards
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	gainStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	lossStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	plaisirStyle := lipgloss.NewStyle().Foreground(t.Magenta).Background(t.Surface).Bold(true)

	balStyle := func(v float64) lipgloss.Style {
		if v < 0 {
			return lossStyle
		}
		return gainStyle
	}

	var balBody strings.Builder
	balBody.WriteString(labelStyle.Render("Banked:      ") + balStyle(snap.TotalBalance).Render(cli.FormatBalance(snap.TotalBalance)+" kcal") + "\n")
	balBody.WriteString(labelStyle.Render("Capped:      ") + balStyle(snap.CappedBalance).Render(cli.FormatBalance(snap.CappedBalance)+" kcal") + "\n")
	balBody.WriteString(labelStyle.Render("Max credit:  ") + valueStyle.Render(cli.FormatKcal(snap.MaxCredit)+" kcal") + "\n")
	if snap.DaysOverLimit > 0 {
		balBody.WriteString(labelStyle.Render("Over limit:  ") + warnStyle.Render(fmt.Sprintf("%d day(s) past ±10%%", snap.DaysOverLimit)))
	} else {
		balBody.WriteString(labelStyle.Render("Over limit:  ") + valueStyle.Render("none"))
	}

	var cycBody strings.Builder
	cycBody.WriteString(labelStyle.Render("Started:   ") + valueStyle.Render(cli.FormatDate(snap.CycleStart)) + "\n")
	cycBody.WriteString(labelStyle.Render("New week:  ") + valueStyle.Render("in "+cli.FormatDays(snap.DaysUntilNewWeek)) + "\n")
	if snap.CanHavePlaisir {
		cycBody.WriteString(labelStyle.Render("Plaisir:   ") + plaisirStyle.Render("unlocked, enjoy something") + "\n")
	} else {
		cycBody.WriteString(labelStyle.Render("Plaisir:   ") + valueStyle.Render("locked, "+plaisirDelta) + "\n")
	}
	if snap.FirstTimeSetup {
		cycBody.WriteString(warnStyle.Render("Start day not confirmed yet"))
	} else {
		cycBody.WriteString(labelStyle.Render("Start day confirmed"))
	}

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Balance", balBody.String(), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Cycle", cycBody.String(), cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		balCard := components.ContentCard("Balance", balBody.String(), halves[0])
		cycCard := components.ContentCard("Cycle", cycBody.String(), halves[1])
		b.WriteString(components.CardRow([]string{balCard, cycCard}))
	}

	return b.String()
}

// slotConsumed sums today's logged meals by slot.
func (a App) slotConsumed() map[mealplan.Slot]float64 {
	out := make(map[mealplan.Slot]float64, 4)
	for _, m := range a.meals {
		out[mealplan.Slot(m.Slot)] += m.Kcal
	}
	return out
}
