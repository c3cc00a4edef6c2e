package config

import (
	"math"
	"testing"
)

func TestBMR(t *testing.T) {
	male := ProfileConfig{Sex: "male", Age: 30, HeightCM: 180, WeightKG: 80}
	if got := BMR(male); got != 1780 {
		t.Fatalf("BMR(male 30y 180cm 80kg) = %.2f, want 1780", got)
	}

	female := ProfileConfig{Sex: "female", Age: 25, HeightCM: 160, WeightKG: 60}
	if got := BMR(female); got != 1314 {
		t.Fatalf("BMR(female 25y 160cm 60kg) = %.2f, want 1314", got)
	}
}

func TestTDEE_ActivityMultipliers(t *testing.T) {
	p := ProfileConfig{Sex: "male", Age: 30, HeightCM: 180, WeightKG: 80}

	tests := []struct {
		activity string
		want     float64
	}{
		{"sedentary", 2136},
		{"moderate", 2759},
		{"very_active", 3382},
		{"no-such-level", 2136}, // falls back to sedentary
	}
	for _, tt := range tests {
		p.Activity = tt.activity
		if got := TDEE(p); math.Abs(got-tt.want) > 1e-6 {
			t.Fatalf("TDEE(%s) = %.2f, want %.2f", tt.activity, got, tt.want)
		}
	}
}

func TestDerivedTarget_PaceClamp(t *testing.T) {
	p := ProfileConfig{Sex: "male", Age: 30, HeightCM: 180, WeightKG: 80, Activity: "moderate"}

	tests := []struct {
		pace float64
		want float64
	}{
		{1.0, 2259},  // 2759 - 500
		{0, 2759},    // maintenance, no deficit
		{-1, 2759},   // negative pace also means maintenance
		{0.1, 2634},  // clamped up to 0.25 -> -125
		{5, 1759},    // clamped down to 2 -> -1000
		{0.5, 2509},  // within range
	}
	for _, tt := range tests {
		p.PaceLbsPerWeek = tt.pace
		if got := DerivedTarget(p); got != tt.want {
			t.Fatalf("DerivedTarget(pace=%.2f) = %.0f, want %.0f", tt.pace, got, tt.want)
		}
	}
}

func TestEffectiveTarget_Resolution(t *testing.T) {
	cfg := DefaultConfig()

	// Incomplete profile: the flat default.
	if got := EffectiveTarget(cfg); got != 2000 {
		t.Fatalf("EffectiveTarget(incomplete) = %.0f, want 2000", got)
	}

	// Complete profile derives.
	cfg.Profile = ProfileConfig{Sex: "male", Age: 30, HeightCM: 180, WeightKG: 80, Activity: "moderate", PaceLbsPerWeek: 1}
	if got := EffectiveTarget(cfg); got != 2259 {
		t.Fatalf("EffectiveTarget(derived) = %.0f, want 2259", got)
	}

	// Manual override wins over everything.
	override := 1850.0
	cfg.Profile.TargetKcal = &override
	if got := EffectiveTarget(cfg); got != 1850 {
		t.Fatalf("EffectiveTarget(override) = %.0f, want 1850", got)
	}
}
