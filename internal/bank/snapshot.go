package bank

import (
	"sort"
	"time"

	"calbank/internal/model"
)

// Snapshot computes the full read model in one pass over the ledger.
// dailyTarget is the profile's effective target; it feeds the cap fallback,
// the max-credit ceiling, and today's display row when nothing is logged yet.
func (b *Bank) Snapshot(dailyTarget float64) model.BankSnapshot {
	today := b.today()
	b.lazyReset(today)

	records := b.records()
	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })

	idx := b.dayIndex(today)
	total := TotalBalance(records, today)

	snap := model.BankSnapshot{
		Date:             today,
		CycleStart:       b.state.StartDate,
		DayIndex:         idx,
		Confirmed:        b.state.Confirmed,
		FirstTimeSetup:   !b.state.Confirmed,
		DailyTarget:      dailyTarget,
		TotalBalance:     total,
		CappedBalance:    CappedTotal(records, today, dailyTarget),
		MaxCredit:        MaxCredit(dailyTarget),
		CanHavePlaisir:   idx >= PlaisirUnlockDay && total > 0,
		DaysUntilPlaisir: max(0, PlaisirUnlockDay-idx),
		DaysUntilNewWeek: max(0, CycleDays-idx),
		TodayTarget:      dailyTarget,
	}

	for _, r := range records {
		entry := model.DayEntry{
			DailyBalance: r,
			Capped:       CapContribution(r, dailyTarget),
			Over:         ExceedsLimit(r),
			IsToday:      r.Date == today,
		}
		if t, err := time.Parse(dateLayout, r.Date); err == nil {
			entry.Weekday = t.Weekday().String()
		}
		if entry.Over && !entry.IsToday {
			snap.DaysOverLimit++
		}
		if entry.IsToday {
			snap.TodayConsumed = r.Consumed
			snap.TodayTarget = r.Target
		}
		snap.Days = append(snap.Days, entry)
	}

	return snap
}
