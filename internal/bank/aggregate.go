package bank

import (
	"math"
	"sort"

	"calbank/internal/model"
)

// TotalBalance sums per-day balances over records whose date is not today.
// Today's consumption is not final until the day ends, so a partially
// logged day never counts as fully saved or fully overspent.
func TotalBalance(records []model.DailyBalance, today string) float64 {
	var total float64
	for _, r := range records {
		if r.Date == today {
			continue
		}
		total += r.Balance
	}
	return total
}

// CappedTotal sums per-day balances with each day's contribution clamped to
// ±MaxDailyVariancePercent of that day's own stored target, today excluded.
// fallbackTarget applies only to records missing a stored target.
func CappedTotal(records []model.DailyBalance, today string, fallbackTarget float64) float64 {
	var total float64
	for _, r := range records {
		if r.Date == today {
			continue
		}
		total += CapContribution(r, fallbackTarget)
	}
	return total
}

// CapContribution clamps one day's balance to the variance cap computed
// from that day's own target.
func CapContribution(r model.DailyBalance, fallbackTarget float64) float64 {
	target := r.Target
	if target <= 0 {
		target = fallbackTarget
	}
	limit := target * MaxDailyVariancePercent
	return clamp(r.Balance, -limit, limit)
}

// MaxCredit is the theoretical ceiling on banked credit: six bankable days
// each capped at the variance limit.
func MaxCredit(dailyTarget float64) float64 {
	return math.Round(float64(BankableDays) * dailyTarget * MaxDailyVariancePercent)
}

// DaysExceedingLimit returns the records whose raw variance exceeded the
// cap, sorted by date. These are the days where capped and raw totals
// diverge; the capping itself never mutates them.
func DaysExceedingLimit(records []model.DailyBalance) []model.DailyBalance {
	var out []model.DailyBalance
	for _, r := range records {
		if ExceedsLimit(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ExceedsLimit reports whether a day's raw variance breached the cap.
func ExceedsLimit(r model.DailyBalance) bool {
	return math.Abs(r.Target-r.Consumed) > r.Target*MaxDailyVariancePercent
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
