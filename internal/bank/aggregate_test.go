package bank

import (
	"math"
	"testing"

	"calbank/internal/model"
)

func rec(date string, consumed, target float64) model.DailyBalance {
	return model.DailyBalance{
		Date:     date,
		Consumed: consumed,
		Target:   target,
		Balance:  target - consumed,
	}
}

func TestTotalBalance_ExcludesToday(t *testing.T) {
	records := []model.DailyBalance{
		rec("2026-03-02", 1800, 2000), // +200
		rec("2026-03-03", 2100, 2000), // -100
		rec("2026-03-04", 500, 2000),  // +1500, still in progress
	}

	got := TotalBalance(records, "2026-03-04")
	if got != 100 {
		t.Fatalf("TotalBalance = %.0f, want 100", got)
	}

	// Same ledger, overspent today: exclusion holds regardless of sign.
	records[2] = rec("2026-03-04", 4000, 2000)
	if got := TotalBalance(records, "2026-03-04"); got != 100 {
		t.Fatalf("TotalBalance with overspent today = %.0f, want 100", got)
	}

	if got := TotalBalance(nil, "2026-03-04"); got != 0 {
		t.Fatalf("TotalBalance(empty) = %.0f, want 0", got)
	}
}

func TestCappedTotal_ClampsEachDay(t *testing.T) {
	records := []model.DailyBalance{
		rec("2026-03-02", 1000, 2000), // +1000 raw, capped to +200
		rec("2026-03-03", 3000, 2000), // -1000 raw, capped to -200
		rec("2026-03-04", 1900, 2000), // +100, within cap
	}

	got := CappedTotal(records, "", 2000)
	if got != 100 {
		t.Fatalf("CappedTotal = %.0f, want 100", got)
	}
}

func TestCappedTotal_BoundedByMaxCredit(t *testing.T) {
	const target = 2000.0

	var best, worst []model.DailyBalance
	dates := []string{"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06", "2026-03-07"}
	for _, d := range dates {
		best = append(best, rec(d, 0, target))
		worst = append(worst, rec(d, 10*target, target))
	}

	limit := MaxCredit(target)
	if got := CappedTotal(best, "", target); math.Abs(got-limit) > 1e-9 {
		t.Fatalf("CappedTotal(all saved) = %.2f, want %.0f", got, limit)
	}
	if got := CappedTotal(worst, "", target); math.Abs(got+limit) > 1e-9 {
		t.Fatalf("CappedTotal(all overspent) = %.2f, want %.0f", got, -limit)
	}
}

func TestCapContribution_FallbackTarget(t *testing.T) {
	// A record predating per-day target storage clamps against the
	// supplied daily target instead.
	legacy := model.DailyBalance{Date: "2026-03-02", Consumed: 1500, Balance: 500}

	if got := CapContribution(legacy, 2000); math.Abs(got-200) > 1e-9 {
		t.Fatalf("CapContribution(legacy, 2000) = %.2f, want 200", got)
	}
	if got := CapContribution(rec("2026-03-02", 1500, 1800), 2000); math.Abs(got-180) > 1e-9 {
		t.Fatalf("CapContribution uses the day's own target: got %.2f, want 180", got)
	}
}

func TestMaxCredit(t *testing.T) {
	tests := []struct {
		target float64
		want   float64
	}{
		{2000, 1200},
		{1800, 1080},
		{2150, 1290},
		{0, 0},
	}
	for _, tt := range tests {
		if got := MaxCredit(tt.target); got != tt.want {
			t.Fatalf("MaxCredit(%.0f) = %.0f, want %.0f", tt.target, got, tt.want)
		}
	}
}

func TestDaysExceedingLimit(t *testing.T) {
	records := []model.DailyBalance{
		rec("2026-03-04", 1700, 2000), // +300 variance, over the 200 cap
		rec("2026-03-02", 2300, 2000), // -300 variance, over
		rec("2026-03-03", 2100, 2000), // -100, within
		rec("2026-03-05", 2200, 2000), // exactly 200: not over (strict >)
	}

	over := DaysExceedingLimit(records)
	if len(over) != 2 {
		t.Fatalf("DaysExceedingLimit returned %d days, want 2", len(over))
	}
	if over[0].Date != "2026-03-02" || over[1].Date != "2026-03-04" {
		t.Fatalf("DaysExceedingLimit order = %s, %s, want 2026-03-02, 2026-03-04", over[0].Date, over[1].Date)
	}
}

func TestExceedsLimit_IndependentOfCapping(t *testing.T) {
	r := rec("2026-03-02", 1000, 2000)

	if !ExceedsLimit(r) {
		t.Fatal("ExceedsLimit = false for a +1000 variance on a 2000 target")
	}

	// Capping the contribution must not change the raw-variance verdict.
	if got := CapContribution(r, 0); math.Abs(got-200) > 1e-9 {
		t.Fatalf("CapContribution = %.2f, want 200", got)
	}
	if !ExceedsLimit(r) {
		t.Fatal("ExceedsLimit changed after capping")
	}
	if r.Balance != 1000 {
		t.Fatalf("record balance mutated to %.0f", r.Balance)
	}
}

func TestCappedTotal_RespectsPerDayTargets(t *testing.T) {
	// Mid-week target change: each day clamps against its own target.
	records := []model.DailyBalance{
		rec("2026-03-02", 1000, 2000), // cap 200
		rec("2026-03-03", 500, 1500),  // cap 150
	}

	got := CappedTotal(records, "", 2000)
	if math.Abs(got-350) > 1e-9 {
		t.Fatalf("CappedTotal = %.2f, want 350", got)
	}
}
