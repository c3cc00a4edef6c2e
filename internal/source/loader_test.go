package source

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestLoad_MergesFiles(t *testing.T) {
	dir := t.TempDir()

	writeFile := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	writeFile("a.jsonl", `{"date":"2026-03-02","name":"oatmeal","kcal":350,"meal":"breakfast","target":2000}
{"date":"2026-03-02","name":"pasta","kcal":650,"meal":"lunch"}
`)
	writeFile("b.jsonl", `{"date":"2026-03-03","name":"soup","kcal":400,"meal":"dinner"}
garbage line
`)
	writeFile("notes.txt", "not an export")

	var calls atomic.Int64
	result, err := Load(dir, func(current, total int) {
		calls.Add(1)
		if total != 2 {
			t.Errorf("progress total = %d, want 2", total)
		}
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if result.TotalFiles != 2 || result.ParsedFiles != 2 {
		t.Fatalf("files = %d total, %d parsed; want 2, 2", result.TotalFiles, result.ParsedFiles)
	}
	if result.ParseErrors != 1 {
		t.Errorf("ParseErrors = %d, want 1", result.ParseErrors)
	}
	if len(result.Meals) != 3 {
		t.Fatalf("Meals = %d, want 3", len(result.Meals))
	}
	// Files merge in discovery order, lines in file order.
	if result.Meals[0].Name != "oatmeal" || result.Meals[2].Name != "soup" {
		t.Errorf("merge order = %+v", result.Meals)
	}
	if got := result.Targets["2026-03-02"]; got != 2000 {
		t.Errorf("Targets[2026-03-02] = %.0f, want 2000", got)
	}
	if calls.Load() != 2 {
		t.Errorf("progress calls = %d, want 2", calls.Load())
	}
}

func TestLoad_MissingDir(t *testing.T) {
	result, err := Load(filepath.Join(t.TempDir(), "nope"), nil)
	if err != nil {
		t.Fatalf("Load on missing dir: %v", err)
	}
	if result.TotalFiles != 0 || len(result.Meals) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}
