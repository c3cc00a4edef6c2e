package store

import (
	"path/filepath"
	"testing"
	"time"

	"calbank/internal/model"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st, path
}

func TestCycleState_ZeroWhenUnsaved(t *testing.T) {
	st, _ := openTemp(t)

	cs, err := st.LoadCycleState()
	if err != nil {
		t.Fatalf("LoadCycleState: %v", err)
	}
	if cs.StartDate != "" || cs.Confirmed {
		t.Fatalf("fresh cycle state = %+v, want zero", cs)
	}
}

func TestCycleState_RoundTrip(t *testing.T) {
	st, _ := openTemp(t)

	want := model.CycleState{StartDate: "2026-03-02", Confirmed: true}
	if err := st.SaveCycleState(want); err != nil {
		t.Fatalf("SaveCycleState: %v", err)
	}

	got, err := st.LoadCycleState()
	if err != nil {
		t.Fatalf("LoadCycleState: %v", err)
	}
	if got != want {
		t.Fatalf("cycle state = %+v, want %+v", got, want)
	}

	// An empty start date stores as NULL and reads back empty.
	if err := st.SaveCycleState(model.CycleState{Confirmed: true}); err != nil {
		t.Fatalf("SaveCycleState (empty start): %v", err)
	}
	got, err = st.LoadCycleState()
	if err != nil {
		t.Fatalf("LoadCycleState: %v", err)
	}
	if got.StartDate != "" || !got.Confirmed {
		t.Fatalf("cycle state = %+v, want empty start, confirmed", got)
	}
}

func TestUpsertBalance_ReplacesByDate(t *testing.T) {
	st, _ := openTemp(t)

	first := model.DailyBalance{Date: "2026-03-02", Consumed: 1800, Target: 2000, Balance: 200}
	if err := st.UpsertBalance(first); err != nil {
		t.Fatalf("UpsertBalance: %v", err)
	}
	second := model.DailyBalance{Date: "2026-03-02", Consumed: 2300, Target: 2000, Balance: -300}
	if err := st.UpsertBalance(second); err != nil {
		t.Fatalf("UpsertBalance (replace): %v", err)
	}

	balances, err := st.LoadBalances()
	if err != nil {
		t.Fatalf("LoadBalances: %v", err)
	}
	if len(balances) != 1 {
		t.Fatalf("balances = %d rows, want 1", len(balances))
	}
	if balances[0] != second {
		t.Fatalf("stored balance = %+v, want %+v", balances[0], second)
	}

	n, err := st.DayCount()
	if err != nil {
		t.Fatalf("DayCount: %v", err)
	}
	if n != 1 {
		t.Fatalf("DayCount = %d, want 1", n)
	}
}

func TestResetCycle_ArchivesClearsReanchors(t *testing.T) {
	st, _ := openTemp(t)

	for _, b := range []model.DailyBalance{
		{Date: "2026-03-02", Consumed: 1800, Target: 2000, Balance: 200},
		{Date: "2026-03-03", Consumed: 2400, Target: 2000, Balance: -400},
	} {
		if err := st.UpsertBalance(b); err != nil {
			t.Fatalf("UpsertBalance: %v", err)
		}
	}
	meal := model.MealEntry{Date: "2026-03-02", Slot: "lunch", Name: "pasta", Kcal: 650, LoggedAt: time.Now()}
	if _, err := st.InsertMeal(meal); err != nil {
		t.Fatalf("InsertMeal: %v", err)
	}

	archive := &model.CycleArchive{
		StartDate: "2026-03-02", EndDate: "2026-03-08",
		DaysLogged: 2, TotalBalance: -200, CappedBalance: 0, DaysOverLimit: 1,
	}
	newState := model.CycleState{StartDate: "2026-03-09", Confirmed: true}
	if err := st.ResetCycle(archive, newState); err != nil {
		t.Fatalf("ResetCycle: %v", err)
	}

	balances, err := st.LoadBalances()
	if err != nil {
		t.Fatalf("LoadBalances: %v", err)
	}
	if len(balances) != 0 {
		t.Fatalf("balances after reset = %d rows, want 0", len(balances))
	}

	cs, err := st.LoadCycleState()
	if err != nil {
		t.Fatalf("LoadCycleState: %v", err)
	}
	if cs != newState {
		t.Fatalf("cycle state after reset = %+v, want %+v", cs, newState)
	}

	archives, err := st.ListArchives()
	if err != nil {
		t.Fatalf("ListArchives: %v", err)
	}
	if len(archives) != 1 || archives[0].TotalBalance != -200 || archives[0].ArchivedAt == "" {
		t.Fatalf("archives = %+v", archives)
	}

	// Meal history is not cycle state; it survives the rollover.
	meals, err := st.MealsForDate("2026-03-02")
	if err != nil {
		t.Fatalf("MealsForDate: %v", err)
	}
	if len(meals) != 1 {
		t.Fatalf("meals after reset = %d, want 1", len(meals))
	}
}

func TestResetCycle_NilArchive(t *testing.T) {
	st, _ := openTemp(t)

	if err := st.ResetCycle(nil, model.CycleState{StartDate: "2026-03-02"}); err != nil {
		t.Fatalf("ResetCycle: %v", err)
	}
	archives, err := st.ListArchives()
	if err != nil {
		t.Fatalf("ListArchives: %v", err)
	}
	if len(archives) != 0 {
		t.Fatalf("archives = %d, want 0", len(archives))
	}
}

func TestMeals_InsertSumDelete(t *testing.T) {
	st, _ := openTemp(t)

	at := time.Date(2026, 3, 2, 12, 30, 0, 0, time.UTC)
	id1, err := st.InsertMeal(model.MealEntry{Date: "2026-03-02", Slot: "breakfast", Name: "oatmeal", Kcal: 350, LoggedAt: at})
	if err != nil {
		t.Fatalf("InsertMeal: %v", err)
	}
	if _, err := st.InsertMeal(model.MealEntry{Date: "2026-03-02", Slot: "lunch", Name: "pasta", Kcal: 650, LoggedAt: at.Add(4 * time.Hour)}); err != nil {
		t.Fatalf("InsertMeal: %v", err)
	}
	if _, err := st.InsertMeal(model.MealEntry{Date: "2026-03-03", Slot: "lunch", Name: "salad", Kcal: 420, LoggedAt: at.Add(24 * time.Hour)}); err != nil {
		t.Fatalf("InsertMeal: %v", err)
	}

	total, err := st.MealKcalForDate("2026-03-02")
	if err != nil {
		t.Fatalf("MealKcalForDate: %v", err)
	}
	if total != 1000 {
		t.Fatalf("MealKcalForDate = %.0f, want 1000", total)
	}

	meals, err := st.MealsForDate("2026-03-02")
	if err != nil {
		t.Fatalf("MealsForDate: %v", err)
	}
	if len(meals) != 2 || meals[0].Name != "oatmeal" || meals[1].Name != "pasta" {
		t.Fatalf("meals = %+v", meals)
	}
	if !meals[0].LoggedAt.Equal(at) {
		t.Fatalf("logged_at round trip = %v, want %v", meals[0].LoggedAt, at)
	}

	if err := st.DeleteMeal(id1); err != nil {
		t.Fatalf("DeleteMeal: %v", err)
	}
	total, err = st.MealKcalForDate("2026-03-02")
	if err != nil {
		t.Fatalf("MealKcalForDate: %v", err)
	}
	if total != 650 {
		t.Fatalf("MealKcalForDate after delete = %.0f, want 650", total)
	}

	// A date with no entries sums to zero, not an error.
	total, err = st.MealKcalForDate("2026-03-09")
	if err != nil {
		t.Fatalf("MealKcalForDate (empty): %v", err)
	}
	if total != 0 {
		t.Fatalf("MealKcalForDate (empty) = %.0f, want 0", total)
	}
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	st, path := openTemp(t)

	if err := st.SaveCycleState(model.CycleState{StartDate: "2026-03-02"}); err != nil {
		t.Fatalf("SaveCycleState: %v", err)
	}
	if err := st.UpsertBalance(model.DailyBalance{Date: "2026-03-02", Consumed: 1800, Target: 2000, Balance: 200}); err != nil {
		t.Fatalf("UpsertBalance: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open (reopen): %v", err)
	}
	defer func() { _ = reopened.Close() }()

	cs, err := reopened.LoadCycleState()
	if err != nil {
		t.Fatalf("LoadCycleState: %v", err)
	}
	if cs.StartDate != "2026-03-02" {
		t.Fatalf("reopened StartDate = %q, want 2026-03-02", cs.StartDate)
	}
	balances, err := reopened.LoadBalances()
	if err != nil {
		t.Fatalf("LoadBalances: %v", err)
	}
	if len(balances) != 1 || balances[0].Balance != 200 {
		t.Fatalf("reopened balances = %+v", balances)
	}
}
