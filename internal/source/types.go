package source

// RawMeal represents a single line in a JSONL meal export file.
type RawMeal struct {
	Date   string  `json:"date"`
	Name   string  `json:"name"`
	Kcal   float64 `json:"kcal"`
	Meal   string  `json:"meal"`
	Target float64 `json:"target,omitempty"`
}

// DiscoveredFile represents a JSONL export found during directory scanning.
type DiscoveredFile struct {
	Path string
	Name string // base filename, for progress display
}
