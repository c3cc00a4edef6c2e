package mealplan

import "testing"

func TestBudgets_StandardTarget(t *testing.T) {
	budgets := Budgets(2000)

	want := map[Slot]float64{
		SlotBreakfast: 500,
		SlotLunch:     700,
		SlotSnack:     200,
		SlotDinner:    600,
	}
	if len(budgets) != 4 {
		t.Fatalf("Budgets returned %d slots, want 4", len(budgets))
	}
	for _, b := range budgets {
		if b.Kcal != want[b.Slot] {
			t.Fatalf("%s budget = %.0f, want %.0f", b.Slot, b.Kcal, want[b.Slot])
		}
	}
	if budgets[0].Slot != SlotBreakfast || budgets[3].Slot != SlotDinner {
		t.Fatalf("slot order = %v", budgets)
	}
}

func TestBudgets_RoundingPreservesTotal(t *testing.T) {
	// 1999 is a target where rounding every slot independently would
	// drift the sum to 2000; the last slot must absorb the remainder.
	for _, target := range []float64{1999, 2137, 2000} {
		var sum float64
		for _, b := range Budgets(target) {
			sum += b.Kcal
		}
		if sum != target {
			t.Fatalf("budgets for %.0f sum to %.0f", target, sum)
		}
	}
}

func TestWithinBudget(t *testing.T) {
	// Breakfast budget at a 2000 target is 500; 5% overshoot allowed.
	if !WithinBudget(525, 2000, SlotBreakfast) {
		t.Fatal("WithinBudget(525) = false, want true")
	}
	if WithinBudget(526, 2000, SlotBreakfast) {
		t.Fatal("WithinBudget(526) = true, want false")
	}
}

func TestSlotByHour(t *testing.T) {
	tests := []struct {
		hour int
		want Slot
	}{
		{5, SlotBreakfast},
		{10, SlotBreakfast},
		{11, SlotLunch},
		{14, SlotLunch},
		{15, SlotSnack},
		{17, SlotSnack},
		{18, SlotDinner},
		{23, SlotDinner},
		{2, SlotDinner},
	}
	for _, tt := range tests {
		if got := SlotByHour(tt.hour); got != tt.want {
			t.Fatalf("SlotByHour(%d) = %s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestParseSlot(t *testing.T) {
	got, err := ParseSlot("  Lunch ")
	if err != nil {
		t.Fatalf("ParseSlot: %v", err)
	}
	if got != SlotLunch {
		t.Fatalf("ParseSlot = %s, want lunch", got)
	}

	if _, err := ParseSlot("brunch"); err == nil {
		t.Fatal("ParseSlot(brunch) accepted an unknown slot")
	}
}
