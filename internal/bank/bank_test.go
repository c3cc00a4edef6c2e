package bank

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"calbank/internal/model"
	"calbank/internal/store"
)

func mealEntry(date, slot, name string, kcal float64, at time.Time) model.MealEntry {
	return model.MealEntry{Date: date, Slot: slot, Name: name, Kcal: kcal, LoggedAt: at}
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "bank.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

// bankOn builds a bank whose clock follows *day, so tests can move time.
func bankOn(t *testing.T, st *store.Store, day *time.Time) *Bank {
	t.Helper()
	b, err := NewWithClock(st, func() time.Time { return *day })
	if err != nil {
		t.Fatalf("NewWithClock: %v", err)
	}
	return b
}

// startedBank is a bank with a cycle anchored at start and the clock at start.
func startedBank(t *testing.T, st *store.Store, start string) (*Bank, *time.Time) {
	t.Helper()
	day := mustDate(t, start)
	b := bankOn(t, st, &day)
	if err := b.InitializeCycle(); err != nil {
		t.Fatalf("InitializeCycle: %v", err)
	}
	return b, &day
}

func TestUpdateDailyBalance_ComputesAndReplaces(t *testing.T) {
	b, _ := startedBank(t, openStore(t), "2026-03-02")

	if err := b.UpdateDailyBalance("2026-03-02", 1800, 2000); err != nil {
		t.Fatalf("UpdateDailyBalance: %v", err)
	}
	if got := b.ledger["2026-03-02"].Balance; got != 200 {
		t.Fatalf("balance = %.0f, want 200", got)
	}

	// A second write to the same date replaces, never accumulates.
	if err := b.UpdateDailyBalance("2026-03-02", 2300, 2000); err != nil {
		t.Fatalf("UpdateDailyBalance (rewrite): %v", err)
	}
	if got := b.ledger["2026-03-02"].Balance; got != -300 {
		t.Fatalf("balance after rewrite = %.0f, want -300", got)
	}
	if n := len(b.Ledger()); n != 1 {
		t.Fatalf("ledger has %d records for one date, want 1", n)
	}
}

func TestTotalBalance_NeverIncludesToday(t *testing.T) {
	b, day := startedBank(t, openStore(t), "2026-03-02")

	if err := b.UpdateDailyBalance("2026-03-02", 1800, 2000); err != nil {
		t.Fatalf("UpdateDailyBalance: %v", err)
	}

	*day = mustDate(t, "2026-03-03")
	if err := b.UpdateDailyBalance("2026-03-03", 600, 2000); err != nil {
		t.Fatalf("UpdateDailyBalance: %v", err)
	}

	// Today's +1400 must not leak into the total.
	if got := b.TotalBalance(); got != 200 {
		t.Fatalf("TotalBalance = %.0f, want 200", got)
	}

	*day = mustDate(t, "2026-03-04")
	if got := b.TotalBalance(); got != 1600 {
		t.Fatalf("TotalBalance next day = %.0f, want 1600", got)
	}
}

func TestCurrentDayIndex_ClampedAndLazy(t *testing.T) {
	b, day := startedBank(t, openStore(t), "2026-03-02")

	for i, d := range []string{"2026-03-02", "2026-03-03", "2026-03-08"} {
		*day = mustDate(t, d)
		want := []int{0, 1, 6}[i]
		if got := b.CurrentDayIndex(); got != want {
			t.Fatalf("CurrentDayIndex on %s = %d, want %d", d, got, want)
		}
	}

	// Eight days in, the read itself triggers the rollover: index wraps to 0.
	*day = mustDate(t, "2026-03-10")
	if got := b.CurrentDayIndex(); got != 0 {
		t.Fatalf("CurrentDayIndex after rollover = %d, want 0", got)
	}
	if got := b.StartDate(); got != "2026-03-10" {
		t.Fatalf("StartDate after rollover = %s, want 2026-03-10", got)
	}
}

func TestDayIndex_FutureStartClampsToZero(t *testing.T) {
	b, day := startedBank(t, openStore(t), "2026-03-05")

	*day = mustDate(t, "2026-03-03")
	if got := b.CurrentDayIndex(); got != 0 {
		t.Fatalf("CurrentDayIndex with future start = %d, want 0", got)
	}
}

func TestCheckAndAutoReset_TriggersOnceAndArchives(t *testing.T) {
	st := openStore(t)
	b, day := startedBank(t, st, "2026-03-02")

	if err := b.UpdateDailyBalance("2026-03-02", 1800, 2000); err != nil {
		t.Fatalf("UpdateDailyBalance: %v", err)
	}
	if err := b.UpdateDailyBalance("2026-03-03", 2400, 2000); err != nil {
		t.Fatalf("UpdateDailyBalance: %v", err)
	}

	// Day 6: no reset yet.
	*day = mustDate(t, "2026-03-08")
	reset, err := b.CheckAndAutoReset()
	if err != nil {
		t.Fatalf("CheckAndAutoReset: %v", err)
	}
	if reset {
		t.Fatal("reset fired on day 6")
	}

	// Seven full days elapsed: reset fires exactly once.
	*day = mustDate(t, "2026-03-09")
	reset, err = b.CheckAndAutoReset()
	if err != nil {
		t.Fatalf("CheckAndAutoReset: %v", err)
	}
	if !reset {
		t.Fatal("reset did not fire after 7 elapsed days")
	}
	if got := b.StartDate(); got != "2026-03-09" {
		t.Fatalf("StartDate after reset = %s, want 2026-03-09", got)
	}
	if n := len(b.Ledger()); n != 0 {
		t.Fatalf("ledger has %d records after reset, want 0", n)
	}

	reset, err = b.CheckAndAutoReset()
	if err != nil {
		t.Fatalf("CheckAndAutoReset (repeat): %v", err)
	}
	if reset {
		t.Fatal("second CheckAndAutoReset on the same day reset again")
	}

	// The closing cycle landed in the archive with its totals.
	archives, err := st.ListArchives()
	if err != nil {
		t.Fatalf("ListArchives: %v", err)
	}
	if len(archives) != 1 {
		t.Fatalf("archives = %d, want 1", len(archives))
	}
	a := archives[0]
	if a.StartDate != "2026-03-02" || a.EndDate != "2026-03-08" {
		t.Fatalf("archive window = %s..%s, want 2026-03-02..2026-03-08", a.StartDate, a.EndDate)
	}
	if a.TotalBalance != -200 || a.DaysLogged != 2 || a.DaysOverLimit != 1 {
		t.Fatalf("archive = total %.0f, logged %d, over %d; want -200, 2, 1",
			a.TotalBalance, a.DaysLogged, a.DaysOverLimit)
	}
}

func TestResetToToday_HonoredOnlyWhileUnconfirmed(t *testing.T) {
	b, day := startedBank(t, openStore(t), "2026-03-02")

	if err := b.UpdateDailyBalance("2026-03-02", 1800, 2000); err != nil {
		t.Fatalf("UpdateDailyBalance: %v", err)
	}

	// Unconfirmed: the user is still shopping for a start day.
	*day = mustDate(t, "2026-03-04")
	if err := b.ResetToToday(); err != nil {
		t.Fatalf("ResetToToday: %v", err)
	}
	if got := b.StartDate(); got != "2026-03-04" {
		t.Fatalf("StartDate after restart = %s, want 2026-03-04", got)
	}
	if n := len(b.Ledger()); n != 0 {
		t.Fatalf("ledger has %d records after restart, want 0", n)
	}

	// Confirmation makes restarts permanently inert.
	if err := b.ConfirmStartDay(); err != nil {
		t.Fatalf("ConfirmStartDay: %v", err)
	}
	if err := b.UpdateDailyBalance("2026-03-04", 1900, 2000); err != nil {
		t.Fatalf("UpdateDailyBalance: %v", err)
	}

	*day = mustDate(t, "2026-03-06")
	for i := 0; i < 3; i++ {
		if err := b.ResetToToday(); err != nil {
			t.Fatalf("ResetToToday (confirmed): %v", err)
		}
	}
	if got := b.StartDate(); got != "2026-03-04" {
		t.Fatalf("StartDate moved to %s after confirmed restart", got)
	}
	if n := len(b.Ledger()); n != 1 {
		t.Fatalf("ledger has %d records after confirmed restart, want 1", n)
	}
}

func TestConfirmStartDay_SurvivesRolloverAndReload(t *testing.T) {
	st := openStore(t)
	b, day := startedBank(t, st, "2026-03-02")

	if err := b.ConfirmStartDay(); err != nil {
		t.Fatalf("ConfirmStartDay: %v", err)
	}
	if b.IsFirstTimeSetup() {
		t.Fatal("IsFirstTimeSetup = true after confirmation")
	}

	// Confirmation is a lifetime event, not per-cycle.
	*day = mustDate(t, "2026-03-11")
	if _, err := b.CheckAndAutoReset(); err != nil {
		t.Fatalf("CheckAndAutoReset: %v", err)
	}
	if b.IsFirstTimeSetup() {
		t.Fatal("IsFirstTimeSetup = true after rollover")
	}

	reloaded := bankOn(t, st, day)
	if reloaded.IsFirstTimeSetup() {
		t.Fatal("IsFirstTimeSetup = true after reload")
	}
	if got := reloaded.StartDate(); got != "2026-03-11" {
		t.Fatalf("reloaded StartDate = %s, want 2026-03-11", got)
	}
}

func TestInitializeCycle_Idempotent(t *testing.T) {
	st := openStore(t)
	day := mustDate(t, "2026-03-02")
	b := bankOn(t, st, &day)

	if got := b.StartDate(); got != "" {
		t.Fatalf("StartDate before init = %q, want empty", got)
	}

	for i := 0; i < 2; i++ {
		if err := b.InitializeCycle(); err != nil {
			t.Fatalf("InitializeCycle: %v", err)
		}
		if got := b.StartDate(); got != "2026-03-02" {
			t.Fatalf("StartDate = %s, want 2026-03-02", got)
		}
	}

	// With an existing anchor, init is just the rollover check.
	if err := b.UpdateDailyBalance("2026-03-02", 1800, 2000); err != nil {
		t.Fatalf("UpdateDailyBalance: %v", err)
	}
	day = mustDate(t, "2026-03-12")
	if err := b.InitializeCycle(); err != nil {
		t.Fatalf("InitializeCycle (stale): %v", err)
	}
	if got := b.StartDate(); got != "2026-03-12" {
		t.Fatalf("StartDate after stale init = %s, want 2026-03-12", got)
	}
	if n := len(b.Ledger()); n != 0 {
		t.Fatalf("ledger has %d records after stale init, want 0", n)
	}
}

func TestCanHavePlaisir_Gating(t *testing.T) {
	tests := []struct {
		name    string
		today   string
		balance float64
		want    bool
	}{
		{"day 3, positive balance", "2026-03-05", 500, false},
		{"day 4, positive balance", "2026-03-06", 500, true},
		{"day 5, negative balance", "2026-03-07", -10, false},
		{"day 6, positive balance", "2026-03-08", 1, true},
		{"day 4, zero balance", "2026-03-06", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, day := startedBank(t, openStore(t), "2026-03-02")
			if err := b.UpdateDailyBalance("2026-03-02", 2000-tt.balance, 2000); err != nil {
				t.Fatalf("UpdateDailyBalance: %v", err)
			}
			*day = mustDate(t, tt.today)
			if got := b.CanHavePlaisir(); got != tt.want {
				t.Fatalf("CanHavePlaisir = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountdowns_AcrossTheCycle(t *testing.T) {
	b, day := startedBank(t, openStore(t), "2026-03-02")

	wantPlaisir := []int{4, 3, 2, 1, 0, 0, 0}
	wantWeek := []int{7, 6, 5, 4, 3, 2, 1}

	prev := -1
	for i := 0; i < CycleDays; i++ {
		*day = mustDate(t, "2026-03-02").AddDate(0, 0, i)

		got := b.DaysUntilPlaisir()
		if got != wantPlaisir[i] {
			t.Fatalf("day %d: DaysUntilPlaisir = %d, want %d", i, got, wantPlaisir[i])
		}
		if prev >= 0 && prev > 0 && got >= prev {
			t.Fatalf("day %d: DaysUntilPlaisir did not decrease (%d -> %d)", i, prev, got)
		}
		prev = got

		if got := b.DaysUntilNewWeek(); got != wantWeek[i] {
			t.Fatalf("day %d: DaysUntilNewWeek = %d, want %d", i, got, wantWeek[i])
		}
	}
}

func TestMondayThursdayScenario(t *testing.T) {
	// Cycle starts Monday 2026-03-02; Mon..Thu logged at 2000 kcal target.
	b, day := startedBank(t, openStore(t), "2026-03-02")

	logs := []struct {
		date     string
		consumed float64
	}{
		{"2026-03-02", 1800},
		{"2026-03-03", 1900},
		{"2026-03-04", 2200},
		{"2026-03-05", 1700},
	}
	for _, l := range logs {
		*day = mustDate(t, l.date)
		if err := b.UpdateDailyBalance(l.date, l.consumed, 2000); err != nil {
			t.Fatalf("UpdateDailyBalance(%s): %v", l.date, err)
		}
	}

	// Friday morning, day 4, nothing logged yet today.
	*day = mustDate(t, "2026-03-06")

	if got := b.CurrentDayIndex(); got != 4 {
		t.Fatalf("CurrentDayIndex = %d, want 4", got)
	}
	if got := b.TotalBalance(); got != 400 {
		t.Fatalf("TotalBalance = %.0f, want 400", got)
	}
	// Thursday's +300 clamps to +200, so the capped view lags the raw one.
	if got := b.CappedTotalBalance(2000); math.Abs(got-300) > 1e-9 {
		t.Fatalf("CappedTotalBalance = %.2f, want 300", got)
	}
	if got := MaxCredit(2000); got != 1200 {
		t.Fatalf("MaxCredit(2000) = %.0f, want 1200", got)
	}
	if !b.CanHavePlaisir() {
		t.Fatal("CanHavePlaisir = false on day 4 with +400 banked")
	}
	over := b.DaysExceedingLimit()
	if len(over) != 1 || over[0].Date != "2026-03-05" {
		t.Fatalf("DaysExceedingLimit = %+v, want only 2026-03-05", over)
	}
}

func TestStatePersistence_Roundtrip(t *testing.T) {
	st := openStore(t)
	b, day := startedBank(t, st, "2026-03-02")

	if err := b.UpdateDailyBalance("2026-03-02", 1800, 2000); err != nil {
		t.Fatalf("UpdateDailyBalance: %v", err)
	}
	if err := b.UpdateDailyBalance("2026-03-03", 2400, 2100); err != nil {
		t.Fatalf("UpdateDailyBalance: %v", err)
	}
	if err := b.ConfirmStartDay(); err != nil {
		t.Fatalf("ConfirmStartDay: %v", err)
	}

	*day = mustDate(t, "2026-03-04")
	fresh := bankOn(t, st, day)

	if got := fresh.StartDate(); got != "2026-03-02" {
		t.Fatalf("reloaded StartDate = %s, want 2026-03-02", got)
	}
	if fresh.IsFirstTimeSetup() {
		t.Fatal("reloaded IsFirstTimeSetup = true, want false")
	}
	if got := fresh.TotalBalance(); got != -100 {
		t.Fatalf("reloaded TotalBalance = %.0f, want -100", got)
	}
	ledger := fresh.Ledger()
	if len(ledger) != 2 || ledger[0].Date != "2026-03-02" || ledger[1].Target != 2100 {
		t.Fatalf("reloaded ledger = %+v", ledger)
	}
}

func TestLogMeal_RollsUpTheDay(t *testing.T) {
	b, day := startedBank(t, openStore(t), "2026-03-02")

	entry := func(name string, kcal float64) (float64, error) {
		rec, err := b.LogMeal(mealEntry("2026-03-02", "lunch", name, kcal, *day), 2000)
		return rec.Consumed, err
	}

	got, err := entry("oatmeal", 350)
	if err != nil {
		t.Fatalf("LogMeal: %v", err)
	}
	if got != 350 {
		t.Fatalf("consumed after first meal = %.0f, want 350", got)
	}

	got, err = entry("pasta", 650)
	if err != nil {
		t.Fatalf("LogMeal: %v", err)
	}
	if got != 1000 {
		t.Fatalf("consumed after second meal = %.0f, want 1000", got)
	}

	// The day's stored target wins over the supplied one on re-rolls.
	rec, err := b.LogMeal(mealEntry("2026-03-02", "dinner", "soup", 400, *day), 1500)
	if err != nil {
		t.Fatalf("LogMeal: %v", err)
	}
	if rec.Target != 2000 {
		t.Fatalf("target after re-roll = %.0f, want 2000", rec.Target)
	}
	if rec.Consumed != 1400 || rec.Balance != 600 {
		t.Fatalf("day after three meals = consumed %.0f balance %.0f, want 1400/600", rec.Consumed, rec.Balance)
	}
}

func TestSnapshot_Consistency(t *testing.T) {
	b, day := startedBank(t, openStore(t), "2026-03-02")

	if err := b.UpdateDailyBalance("2026-03-02", 1700, 2000); err != nil {
		t.Fatalf("UpdateDailyBalance: %v", err)
	}
	*day = mustDate(t, "2026-03-06")
	if err := b.UpdateDailyBalance("2026-03-06", 900, 2000); err != nil {
		t.Fatalf("UpdateDailyBalance: %v", err)
	}

	snap := b.Snapshot(2000)

	if snap.Date != "2026-03-06" || snap.DayIndex != 4 {
		t.Fatalf("snapshot date/index = %s/%d, want 2026-03-06/4", snap.Date, snap.DayIndex)
	}
	if snap.TotalBalance != 300 {
		t.Fatalf("snapshot TotalBalance = %.0f, want 300 (today's +1100 excluded)", snap.TotalBalance)
	}
	if math.Abs(snap.CappedBalance-200) > 1e-9 {
		t.Fatalf("snapshot CappedBalance = %.2f, want 200", snap.CappedBalance)
	}
	if snap.MaxCredit != 1200 {
		t.Fatalf("snapshot MaxCredit = %.0f, want 1200", snap.MaxCredit)
	}
	if !snap.CanHavePlaisir {
		t.Fatal("snapshot CanHavePlaisir = false, want true")
	}
	if snap.DaysOverLimit != 1 {
		t.Fatalf("snapshot DaysOverLimit = %d, want 1", snap.DaysOverLimit)
	}
	if len(snap.Days) != 2 || !snap.Days[1].IsToday {
		t.Fatalf("snapshot days = %+v", snap.Days)
	}
	if snap.Days[0].Weekday != "Monday" || snap.Days[1].Weekday != "Friday" {
		t.Fatalf("snapshot weekdays = %s, %s", snap.Days[0].Weekday, snap.Days[1].Weekday)
	}
	if snap.TodayConsumed != 900 {
		t.Fatalf("snapshot TodayConsumed = %.0f, want 900", snap.TodayConsumed)
	}
}
