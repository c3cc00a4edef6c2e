package cli

import "testing"

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{200, "+200"},
		{-320.4, "-320"},
		{0, "0"},
		{1234.6, "+1,235"},
	}
	for _, tt := range tests {
		if got := FormatBalance(tt.in); got != tt.want {
			t.Errorf("FormatBalance(%.1f) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatKcal(t *testing.T) {
	if got := FormatKcal(2149.5); got != "2,150" {
		t.Errorf("FormatKcal = %q, want 2,150", got)
	}
}

func TestFormatDays(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "today"},
		{1, "1 day"},
		{3, "3 days"},
	}
	for _, tt := range tests {
		if got := FormatDays(tt.in); got != tt.want {
			t.Errorf("FormatDays(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2026-03-02"); got != "Mon, Mar 2" {
		t.Errorf("FormatDate = %q, want Mon, Mar 2", got)
	}
	if got := FormatDate("garbage"); got != "garbage" {
		t.Errorf("FormatDate passthrough = %q", got)
	}
}
