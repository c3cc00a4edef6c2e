package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeExport creates a temp JSONL file and returns a DiscoveredFile for it.
func writeExport(t *testing.T, lines ...string) DiscoveredFile {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "export.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return DiscoveredFile{Path: path, Name: "export.jsonl"}
}

func TestParseFile_ValidLines(t *testing.T) {
	df := writeExport(t,
		`{"date":"2026-03-02","name":"oatmeal","kcal":350,"meal":"breakfast"}`,
		`{"date":"2026-03-02","name":"pasta","kcal":650,"meal":"lunch","target":2000}`,
		`{"date":"2026-03-03","name":"soup","kcal":400,"meal":"dinner"}`,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}

	if len(result.Meals) != 3 {
		t.Fatalf("Meals = %d, want 3", len(result.Meals))
	}
	first := result.Meals[0]
	if first.Date != "2026-03-02" || first.Slot != "breakfast" || first.Name != "oatmeal" || first.Kcal != 350 {
		t.Errorf("first meal = %+v", first)
	}
	if result.Meals[2].Date != "2026-03-03" {
		t.Errorf("line order not preserved: %+v", result.Meals)
	}
	if got := result.Targets["2026-03-02"]; got != 2000 {
		t.Errorf("Targets[2026-03-02] = %.0f, want 2000", got)
	}
	if _, ok := result.Targets["2026-03-03"]; ok {
		t.Error("target recorded for a date whose lines carry none")
	}
}

func TestParseFile_MalformedLines(t *testing.T) {
	df := writeExport(t,
		`not json at all`,
		`{"date":"03/02/2026","name":"bad date","kcal":100,"meal":"lunch"}`,
		`{"date":"2026-03-02","name":"negative","kcal":-50,"meal":"lunch"}`,
		`{"date":"2026-03-02","name":"mystery","kcal":100,"meal":"brunch"}`,
		`{"date":"2026-03-02","name":"good","kcal":500,"meal":"dinner"}`,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}

	// Malformed lines are skipped and counted, never fatal.
	if result.ParseErrors != 4 {
		t.Errorf("ParseErrors = %d, want 4", result.ParseErrors)
	}
	if len(result.Meals) != 1 || result.Meals[0].Name != "good" {
		t.Errorf("Meals = %+v, want only the good line", result.Meals)
	}
}

func TestParseFile_BlankLinesIgnored(t *testing.T) {
	df := writeExport(t,
		``,
		`{"date":"2026-03-02","name":"toast","kcal":200,"meal":"breakfast"}`,
		`   `,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.ParseErrors != 0 {
		t.Errorf("ParseErrors = %d, want 0 (blank lines are not malformed)", result.ParseErrors)
	}
	if len(result.Meals) != 1 {
		t.Errorf("Meals = %d, want 1", len(result.Meals))
	}
}

func TestParseFile_EmptyFile(t *testing.T) {
	df := writeExport(t)
	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error on empty file: %v", result.Err)
	}
	if len(result.Meals) != 0 || result.ParseErrors != 0 {
		t.Errorf("expected zero output for empty file, got %+v", result)
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", `{"date":"2026-03-02","name":"x","kcal":100,"meal":"snack"}`, false},
		{"zero kcal", `{"date":"2026-03-02","name":"tea","kcal":0,"meal":"snack"}`, false},
		{"mixed-case slot", `{"date":"2026-03-02","name":"x","kcal":100,"meal":"Lunch"}`, false},
		{"missing slot", `{"date":"2026-03-02","name":"x","kcal":100}`, true},
		{"missing date", `{"name":"x","kcal":100,"meal":"lunch"}`, true},
		{"negative target", `{"date":"2026-03-02","name":"x","kcal":100,"meal":"lunch","target":-1}`, true},
		{"truncated", `{"date":"2026-03-02","name":"x`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseLine([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseLine(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

// FuzzParseLine tests that line decoding never panics on arbitrary
// input, which matters since it processes hand-edited export files.
func FuzzParseLine(f *testing.F) {
	f.Add([]byte(`{"date":"2026-03-02","name":"oatmeal","kcal":350,"meal":"breakfast"}`))
	f.Add([]byte(`{"date":"2026-03-02","name":"pasta","kcal":650,"meal":"lunch","target":2000}`))
	f.Add([]byte(`not json`))
	f.Add([]byte(`{}`))
	f.Add([]byte(`{"date":null}`))
	f.Add([]byte(`{"kcal":"plenty"}`))
	f.Add([]byte(``))
	f.Add([]byte(`{"date":"2026-03-02","meal":"lun`)) // unterminated string

	f.Fuzz(func(t *testing.T, data []byte) {
		meal, target, err := ParseLine(data)
		if err != nil {
			return
		}
		if len(meal.Date) != 10 {
			t.Errorf("accepted date %q from input %q", meal.Date, data)
		}
		if meal.Kcal < 0 || target < 0 {
			t.Errorf("accepted negative values from input %q", data)
		}
		switch meal.Slot {
		case "breakfast", "lunch", "snack", "dinner":
		default:
			t.Errorf("accepted slot %q from input %q", meal.Slot, data)
		}
	})
}
