package daemon

import (
	"testing"
	"time"

	"calbank/internal/model"
)

func snap(cycleStart string, dayIndex int, total float64, plaisir bool) model.BankSnapshot {
	return model.BankSnapshot{
		CycleStart:     cycleStart,
		DayIndex:       dayIndex,
		TotalBalance:   total,
		CanHavePlaisir: plaisir,
	}
}

func eventTypes(events []Event) []string {
	types := make([]string, len(events))
	for i, ev := range events {
		types[i] = ev.Type
	}
	return types
}

func TestDiffSnapshots_BalanceChange(t *testing.T) {
	prev := snap("2026-03-02", 2, 100, false)
	curr := snap("2026-03-02", 2, 350, false)

	events := diffSnapshots(prev, curr)
	if len(events) != 1 || events[0].Type != EventBalanceChanged {
		t.Fatalf("events = %v, want [balance_changed]", eventTypes(events))
	}
	if events[0].BalanceDelta != 250 {
		t.Fatalf("BalanceDelta = %.0f, want 250", events[0].BalanceDelta)
	}
}

func TestDiffSnapshots_DayAdvanceUnlocksPlaisir(t *testing.T) {
	// Crossing midnight into day 4: yesterday's log joins the banked
	// total and the reward gate opens.
	prev := snap("2026-03-02", 3, 300, false)
	curr := snap("2026-03-02", 4, 400, true)

	events := diffSnapshots(prev, curr)
	got := eventTypes(events)
	want := []string{EventDayAdvanced, EventPlaisirUnlocked, EventBalanceChanged}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestDiffSnapshots_ResetSwallowsEverything(t *testing.T) {
	prev := snap("2026-03-02", 6, 900, true)
	curr := snap("2026-03-09", 0, 0, false)

	events := diffSnapshots(prev, curr)
	if len(events) != 1 || events[0].Type != EventCycleReset {
		t.Fatalf("events = %v, want [cycle_reset]", eventTypes(events))
	}
}

func TestDiffSnapshots_NoChange(t *testing.T) {
	s := snap("2026-03-02", 2, 100, false)
	if events := diffSnapshots(s, s); len(events) != 0 {
		t.Fatalf("events = %v, want none", eventTypes(events))
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		DBPath:       "bank.db",
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

