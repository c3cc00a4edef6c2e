// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatKcal formats a calorie value as a comma-grouped whole number.
// e.g., 1234.6 -> "1,235"
func FormatKcal(kcal float64) string {
	return FormatNumber(int64(math.Round(kcal)))
}

// FormatBalance formats a signed balance, always carrying the sign for
// non-zero values. e.g., 200 -> "+200", -320.4 -> "-320"
func FormatBalance(balance float64) string {
	n := int64(math.Round(balance))
	if n > 0 {
		return "+" + FormatNumber(n)
	}
	return FormatNumber(n)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDays formats a day count for countdown displays.
// e.g., 0 -> "today", 1 -> "1 day", 3 -> "3 days"
func FormatDays(n int) string {
	switch {
	case n <= 0:
		return "today"
	case n == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", n)
	}
}

// FormatDate pretty-prints an ISO date for humans.
// e.g., "2026-03-02" -> "Mon, Mar 2". Unparseable input passes through.
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2")
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
