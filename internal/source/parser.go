// Package source discovers and parses JSONL meal export files.
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"calbank/internal/mealplan"
	"calbank/internal/model"
)

const dateLayout = "2006-01-02"

// ParseResult holds the output of parsing a single JSONL export file.
type ParseResult struct {
	Meals       []model.MealEntry
	Targets     map[string]float64 // per-date target when the export carries one
	ParseErrors int
	Err         error
}

// ParseFile reads a JSONL export and produces meal entries in line order.
// Malformed lines are skipped and counted, never fatal: a half-broken
// export still imports its good lines.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	result := ParseResult{Targets: make(map[string]float64)}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		meal, target, err := ParseLine(line)
		if err != nil {
			result.ParseErrors++
			continue
		}

		result.Meals = append(result.Meals, meal)
		if target > 0 {
			result.Targets[meal.Date] = target
		}
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{Err: err}
	}
	return result
}

// ParseLine decodes and validates one export line. The returned target
// is 0 when the line does not carry one.
func ParseLine(line []byte) (model.MealEntry, float64, error) {
	var raw RawMeal
	if err := json.Unmarshal(line, &raw); err != nil {
		return model.MealEntry{}, 0, fmt.Errorf("decoding line: %w", err)
	}

	// Dates are compared lexically throughout, so only the canonical
	// zero-padded form is accepted. time.Parse alone is too lenient.
	d, err := time.Parse(dateLayout, raw.Date)
	if err != nil || d.Format(dateLayout) != raw.Date {
		return model.MealEntry{}, 0, fmt.Errorf("bad date %q", raw.Date)
	}
	if raw.Kcal < 0 {
		return model.MealEntry{}, 0, fmt.Errorf("negative kcal %.0f", raw.Kcal)
	}
	if raw.Target < 0 {
		return model.MealEntry{}, 0, fmt.Errorf("negative target %.0f", raw.Target)
	}
	slot, err := mealplan.ParseSlot(raw.Meal)
	if err != nil {
		return model.MealEntry{}, 0, err
	}

	return model.MealEntry{
		Date: raw.Date,
		Slot: string(slot),
		Name: raw.Name,
		Kcal: raw.Kcal,
	}, raw.Target, nil
}
