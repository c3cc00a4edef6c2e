package model

import "time"

// MealEntry is one logged food item. A date's entries sum to that day's
// consumed total, which is what the ledger records.
type MealEntry struct {
	ID       int64     `json:"id"`
	Date     string    `json:"date"` // ISO YYYY-MM-DD
	Slot     string    `json:"slot"` // breakfast, lunch, snack, dinner
	Name     string    `json:"name"`
	Kcal     float64   `json:"kcal"`
	LoggedAt time.Time `json:"loggedAt"`
}
