// Package bank implements the rolling 7-day caloric bank: the daily balance
// ledger, the week cycle, variance-capped aggregation, and plaisir gating.
package bank

import (
	"sort"
	"time"

	"calbank/internal/model"
	"calbank/internal/store"
)

const (
	// MaxDailyVariancePercent caps how much of a day's target can bank
	// toward the weekly balance, in either direction.
	MaxDailyVariancePercent = 0.10

	// CycleDays is the length of the accounting window.
	CycleDays = 7

	// BankableDays excludes the final day of the cycle, which is when
	// credit may be spent rather than earned.
	BankableDays = 6

	// PlaisirUnlockDay is the first day index on which the reward window opens.
	PlaisirUnlockDay = 4
)

// dateLayout is the ledger's key format.
const dateLayout = "2006-01-02"

// Bank owns the cycle state and the daily balance ledger. Mutations write
// through to the store; reads recompute from the in-memory set. Not safe
// for concurrent use: the ledger has exactly one logical writer.
//
// Every public call reads the wall clock once and runs the lazy rollover
// check first, so callers never observe a day index past the end of an
// expired cycle. There is no background timer.
type Bank struct {
	store  *store.Store
	state  model.CycleState
	ledger map[string]model.DailyBalance
	now    func() time.Time
}

// New loads bank state from the store.
func New(st *store.Store) (*Bank, error) {
	return NewWithClock(st, time.Now)
}

// NewWithClock is New with an injectable clock, for tests.
func NewWithClock(st *store.Store, now func() time.Time) (*Bank, error) {
	state, err := st.LoadCycleState()
	if err != nil {
		return nil, err
	}
	balances, err := st.LoadBalances()
	if err != nil {
		return nil, err
	}

	ledger := make(map[string]model.DailyBalance, len(balances))
	for _, b := range balances {
		ledger[b.Date] = b
	}

	return &Bank{store: st, state: state, ledger: ledger, now: now}, nil
}

func (b *Bank) today() string {
	return b.now().Format(dateLayout)
}

// daysBetween counts whole calendar days from a to c (ISO dates).
// A malformed date counts as zero elapsed days.
func daysBetween(a, c string) int {
	ta, err := time.Parse(dateLayout, a)
	if err != nil {
		return 0
	}
	tc, err := time.Parse(dateLayout, c)
	if err != nil {
		return 0
	}
	return int(tc.Sub(ta) / (24 * time.Hour))
}

// InitializeCycle starts a cycle anchored at today if none exists,
// otherwise runs the rollover check. Safe to call on every launch.
func (b *Bank) InitializeCycle() error {
	today := b.today()
	if b.state.StartDate == "" {
		b.state.StartDate = today
		b.ledger = make(map[string]model.DailyBalance)
		return b.store.ResetCycle(nil, b.state)
	}
	_, err := b.autoReset(today)
	return err
}

// CheckAndAutoReset rolls the cycle over once 7 full days have elapsed:
// the closing week is archived, the ledger clears, and the start date
// re-anchors at today. Reports whether a reset occurred.
func (b *Bank) CheckAndAutoReset() (bool, error) {
	return b.autoReset(b.today())
}

func (b *Bank) autoReset(today string) (bool, error) {
	if b.state.StartDate == "" {
		return false, nil
	}
	if daysBetween(b.state.StartDate, today) < CycleDays {
		return false, nil
	}

	archive := b.closingArchive()
	b.state.StartDate = today
	b.ledger = make(map[string]model.DailyBalance)
	return true, b.store.ResetCycle(archive, b.state)
}

// lazyReset runs the rollover check before a read, keeping reads total.
// The reset condition derives from dates alone, so a failed persist is
// re-attempted on the next interaction.
func (b *Bank) lazyReset(today string) {
	_, _ = b.autoReset(today)
}

// closingArchive summarizes the expiring cycle before the ledger clears.
func (b *Bank) closingArchive() *model.CycleArchive {
	records := b.records()
	end := ""
	if t, err := time.Parse(dateLayout, b.state.StartDate); err == nil {
		end = t.AddDate(0, 0, CycleDays-1).Format(dateLayout)
	}
	return &model.CycleArchive{
		StartDate:     b.state.StartDate,
		EndDate:       end,
		DaysLogged:    len(records),
		TotalBalance:  TotalBalance(records, ""),
		CappedBalance: CappedTotal(records, "", 0),
		DaysOverLimit: len(DaysExceedingLimit(records)),
	}
}

// ConfirmStartDay locks in the cycle start date. A one-time lifetime event:
// it survives rollovers and leaves the ledger untouched.
func (b *Bank) ConfirmStartDay() error {
	if b.state.Confirmed {
		return nil
	}
	b.state.Confirmed = true
	return b.store.SaveCycleState(b.state)
}

// ResetToToday re-anchors the cycle at today with a cleared ledger, so a
// new user can shop around for a start day. Inert once the start day is
// confirmed: a late call is stale UI state, not user intent, and no-ops.
func (b *Bank) ResetToToday() error {
	if b.state.Confirmed {
		return nil
	}
	b.state.StartDate = b.today()
	b.ledger = make(map[string]model.DailyBalance)
	return b.store.ResetCycle(nil, b.state)
}

// IsFirstTimeSetup reports whether the start day is still unconfirmed.
func (b *Bank) IsFirstTimeSetup() bool {
	return !b.state.Confirmed
}

// StartDate returns the current cycle anchor, empty when no cycle exists.
func (b *Bank) StartDate() string {
	b.lazyReset(b.today())
	return b.state.StartDate
}

// CurrentDayIndex returns how many days of the cycle have elapsed, clamped
// to [0, 6]. The clamp stays even though the rollover check runs first: it
// also covers a start date recorded in the future.
func (b *Bank) CurrentDayIndex() int {
	today := b.today()
	b.lazyReset(today)
	return b.dayIndex(today)
}

func (b *Bank) dayIndex(today string) int {
	if b.state.StartDate == "" {
		return 0
	}
	idx := daysBetween(b.state.StartDate, today)
	if idx < 0 {
		return 0
	}
	if idx > CycleDays-1 {
		return CycleDays - 1
	}
	return idx
}

// UpdateDailyBalance records calories consumed against the target that
// applied on date. An existing record for the date is replaced whole;
// consumed, target, and balance never change independently.
func (b *Bank) UpdateDailyBalance(date string, consumed, target float64) error {
	b.lazyReset(b.today())

	rec := model.DailyBalance{
		Date:     date,
		Consumed: consumed,
		Target:   target,
		Balance:  target - consumed,
	}
	b.ledger[date] = rec
	return b.store.UpsertBalance(rec)
}

// TotalBalance is the uncapped sum of banked balances, today excluded.
func (b *Bank) TotalBalance() float64 {
	today := b.today()
	b.lazyReset(today)
	return TotalBalance(b.records(), today)
}

// CappedTotalBalance sums banked balances with each day clamped to the
// variance cap, today excluded. dailyTarget covers records that have no
// stored per-day target.
func (b *Bank) CappedTotalBalance(dailyTarget float64) float64 {
	today := b.today()
	b.lazyReset(today)
	return CappedTotal(b.records(), today, dailyTarget)
}

// DaysExceedingLimit lists the days whose raw variance breached the cap.
func (b *Bank) DaysExceedingLimit() []model.DailyBalance {
	b.lazyReset(b.today())
	return DaysExceedingLimit(b.records())
}

// CanHavePlaisir reports whether the treat unlock is open: the cycle must
// be at least on its fifth day and the banked balance positive. Neither
// condition alone unlocks it.
func (b *Bank) CanHavePlaisir() bool {
	today := b.today()
	b.lazyReset(today)
	return b.dayIndex(today) >= PlaisirUnlockDay && TotalBalance(b.records(), today) > 0
}

// DaysUntilPlaisir counts down to the earliest possible unlock day. Zero
// once the window is open, whatever the balance says.
func (b *Bank) DaysUntilPlaisir() int {
	today := b.today()
	b.lazyReset(today)
	return max(0, PlaisirUnlockDay-b.dayIndex(today))
}

// DaysUntilNewWeek counts days remaining until the automatic rollover.
func (b *Bank) DaysUntilNewWeek() int {
	today := b.today()
	b.lazyReset(today)
	return max(0, CycleDays-b.dayIndex(today))
}

// Ledger returns the cycle's records sorted by date, oldest first.
func (b *Bank) Ledger() []model.DailyBalance {
	b.lazyReset(b.today())
	records := b.records()
	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })
	return records
}

func (b *Bank) records() []model.DailyBalance {
	out := make([]model.DailyBalance, 0, len(b.ledger))
	for _, r := range b.ledger {
		out = append(out, r)
	}
	return out
}

// LogMeal appends a meal entry and re-rolls that date's ledger record from
// the sum of the date's entries. target applies only when the date has no
// stored target yet.
func (b *Bank) LogMeal(m model.MealEntry, target float64) (model.DailyBalance, error) {
	b.lazyReset(b.today())
	if _, err := b.store.InsertMeal(m); err != nil {
		return model.DailyBalance{}, err
	}
	return b.rollupDay(m.Date, target)
}

// RemoveMeal deletes a meal entry and re-rolls the date it belonged to.
func (b *Bank) RemoveMeal(id int64, date string, target float64) (model.DailyBalance, error) {
	b.lazyReset(b.today())
	if err := b.store.DeleteMeal(id); err != nil {
		return model.DailyBalance{}, err
	}
	return b.rollupDay(date, target)
}

// rollupDay recomputes a date's consumed total from its meal entries and
// pushes it through the ledger. A target already stored for the date wins
// over the supplied one.
func (b *Bank) rollupDay(date string, target float64) (model.DailyBalance, error) {
	total, err := b.store.MealKcalForDate(date)
	if err != nil {
		return model.DailyBalance{}, err
	}
	if rec, ok := b.ledger[date]; ok && rec.Target > 0 {
		target = rec.Target
	}
	if err := b.UpdateDailyBalance(date, total, target); err != nil {
		return model.DailyBalance{}, err
	}
	return b.ledger[date], nil
}
