// Package model defines domain types for calbank cycles, balances, and meals.
package model

// DailyBalance is one day of the active cycle: calories consumed against the
// target that applied that day, and the resulting surplus or deficit. The
// target is stored per record so a mid-week target change never distorts
// earlier days.
type DailyBalance struct {
	Date     string  `json:"date"` // ISO YYYY-MM-DD, unique within the ledger
	Consumed float64 `json:"consumed"`
	Target   float64 `json:"target"`
	Balance  float64 `json:"balance"` // Target - Consumed; positive = under target
}

// CycleState anchors the rolling 7-day window.
type CycleState struct {
	StartDate string `json:"startDate"` // ISO YYYY-MM-DD; empty until a cycle has started
	Confirmed bool   `json:"confirmed"` // start day locked in; survives cycle rollovers
}
