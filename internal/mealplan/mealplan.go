// Package mealplan apportions a daily caloric target across meal slots.
package mealplan

import (
	"fmt"
	"math"
	"strings"
)

// Slot identifies one of the four meals of a day.
type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotSnack     Slot = "snack"
	SlotDinner    Slot = "dinner"
)

// DefaultSplit maps each slot to its share of the daily target.
// Shares sum to 1.
var DefaultSplit = map[Slot]float64{
	SlotBreakfast: 0.25,
	SlotLunch:     0.35,
	SlotSnack:     0.10,
	SlotDinner:    0.30,
}

// slotOrder fixes presentation order; map iteration is random.
var slotOrder = []Slot{SlotBreakfast, SlotLunch, SlotSnack, SlotDinner}

// budgetTolerance is the overshoot allowed before a meal is flagged as
// busting its slot budget.
const budgetTolerance = 0.05

// Budget is one slot's share of a daily target, in kcal.
type Budget struct {
	Slot  Slot
	Share float64
	Kcal  float64
}

// Slots returns the four slots in day order.
func Slots() []Slot {
	out := make([]Slot, len(slotOrder))
	copy(out, slotOrder)
	return out
}

// Budgets computes the per-slot kcal budgets for a daily target, rounded
// to whole kcal. The last slot absorbs the rounding remainder, so for a
// whole-kcal target the budgets sum back to it exactly.
func Budgets(target float64) []Budget {
	out := make([]Budget, 0, len(slotOrder))
	var allocated float64
	for i, s := range slotOrder {
		share := DefaultSplit[s]
		kcal := math.Round(target * share)
		if i == len(slotOrder)-1 {
			kcal = math.Round(target - allocated)
		}
		allocated += kcal
		out = append(out, Budget{Slot: s, Share: share, Kcal: kcal})
	}
	return out
}

// BudgetFor returns the rounded kcal budget for a single slot.
func BudgetFor(slot Slot, target float64) float64 {
	return math.Round(target * DefaultSplit[slot])
}

// WithinBudget reports whether kcal fits the slot's budget, allowing
// the tolerance overshoot.
func WithinBudget(kcal, target float64, slot Slot) bool {
	return kcal <= BudgetFor(slot, target)*(1+budgetTolerance)
}

// SlotByHour maps a local clock hour to the slot someone is most
// likely eating. Late-night hours fall to dinner.
func SlotByHour(hour int) Slot {
	switch {
	case hour >= 5 && hour <= 10:
		return SlotBreakfast
	case hour >= 11 && hour <= 14:
		return SlotLunch
	case hour >= 15 && hour <= 17:
		return SlotSnack
	default:
		return SlotDinner
	}
}

// ParseSlot normalizes user input into a Slot.
func ParseSlot(raw string) (Slot, error) {
	switch Slot(strings.ToLower(strings.TrimSpace(raw))) {
	case SlotBreakfast:
		return SlotBreakfast, nil
	case SlotLunch:
		return SlotLunch, nil
	case SlotSnack:
		return SlotSnack, nil
	case SlotDinner:
		return SlotDinner, nil
	}
	return "", fmt.Errorf("unknown meal slot %q (valid: breakfast, lunch, snack, dinner)", raw)
}
