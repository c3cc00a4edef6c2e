package config

import "math"

// activityMultipliers scale BMR up to total daily energy expenditure.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

const (
	defaultTargetKcal = 2000

	// One pound per week of weight change is roughly a 500 kcal/day deficit.
	kcalPerLbWeek = 500

	minPaceLbsPerWeek = 0.25
	maxPaceLbsPerWeek = 2.0
)

// BMR computes basal metabolic rate (kcal/day) via Mifflin-St Jeor.
func BMR(p ProfileConfig) float64 {
	base := 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
	if p.Sex == "male" {
		return base + 5
	}
	return base - 161
}

// TDEE scales BMR by the profile's activity level. An unknown activity
// name counts as sedentary.
func TDEE(p ProfileConfig) float64 {
	mult, ok := activityMultipliers[p.Activity]
	if !ok {
		mult = activityMultipliers["sedentary"]
	}
	return BMR(p) * mult
}

// DerivedTarget is TDEE minus the daily deficit implied by the weekly
// pace, rounded to whole kcal. Zero or negative pace means maintenance;
// otherwise the pace clamps to [0.25, 2] lbs/week.
func DerivedTarget(p ProfileConfig) float64 {
	return math.Round(TDEE(p) - clampPace(p.PaceLbsPerWeek)*kcalPerLbWeek)
}

func clampPace(pace float64) float64 {
	if pace <= 0 {
		return 0
	}
	if pace < minPaceLbsPerWeek {
		return minPaceLbsPerWeek
	}
	if pace > maxPaceLbsPerWeek {
		return maxPaceLbsPerWeek
	}
	return pace
}

// Complete reports whether the profile has enough data to derive a target.
func (p ProfileConfig) Complete() bool {
	return p.Age > 0 && p.HeightCM > 0 && p.WeightKG > 0
}

// EffectiveTarget resolves the daily caloric target: the manual override
// wins, then the profile derivation, then a 2000 kcal default.
func EffectiveTarget(cfg Config) float64 {
	if cfg.Profile.TargetKcal != nil && *cfg.Profile.TargetKcal > 0 {
		return *cfg.Profile.TargetKcal
	}
	if cfg.Profile.Complete() {
		return DerivedTarget(cfg.Profile)
	}
	return defaultTargetKcal
}

// ActivityLevels lists the accepted activity names in ascending intensity.
func ActivityLevels() []string {
	return []string{"sedentary", "light", "moderate", "active", "very_active"}
}
