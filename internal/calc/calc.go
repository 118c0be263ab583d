// Package calc holds the pure health-calculation functions: BMI, daily
// calorie targets, and nutrition-intake analysis.
//
// Everything here is a stateless function of its arguments — no store, no
// clock, no logger. The persistence core never depends on these for
// correctness; the UI layer composes them with stats for display.
package calc

import (
	"errors"

	"github.com/sakif/nutrition-tracker/internal/model"
)

// BMI expects height in centimeters and weight in kilograms.
func BMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	// Sanity checks to avoid garbage input
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, errors.New("height/weight out of plausible range")
	}

	h := heightCm / 100.0 // to meters
	return weightKg / (h * h), nil
}

// BMICategory maps a BMI value onto the standard WHO bands.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	default:
		return "Obese"
	}
}

// activityMultipliers scale the basal metabolic rate by lifestyle.
var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivitySedentary:  1.2,
	model.ActivityLight:      1.375,
	model.ActivityModerate:   1.55,
	model.ActivityActive:     1.725,
	model.ActivityVeryActive: 1.9,
}

// DailyCalorieTarget estimates maintenance calories with the Mifflin-St Jeor
// equation scaled by the activity multiplier.
//
// Mifflin-St Jeor BMR:
//
//	male:   10×weight + 6.25×height − 5×age + 5
//	female: 10×weight + 6.25×height − 5×age − 161
//
// Other/unspecified genders use the midpoint of the two offsets. Unknown
// activity levels fall back to the moderate multiplier.
func DailyCalorieTarget(weightKg, heightCm float64, age int, gender model.Gender, activity model.ActivityLevel) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch gender {
	case model.GenderMale:
		bmr += 5
	case model.GenderFemale:
		bmr -= 161
	default:
		bmr -= 78
	}

	mult, ok := activityMultipliers[activity]
	if !ok {
		mult = activityMultipliers[model.ActivityModerate]
	}
	return bmr * mult
}

// IntakeStatus classifies a day's consumption against a target.
type IntakeStatus string

const (
	IntakeUnder IntakeStatus = "under"
	IntakeOK    IntakeStatus = "on_track"
	IntakeOver  IntakeStatus = "over"
)

// IntakeAnalysis is the result of comparing consumed nutrition to a calorie
// target: the raw totals plus a coarse classification for the dashboard.
type IntakeAnalysis struct {
	Consumed       model.Nutrition `json:"consumed"`
	CalorieTarget  float64         `json:"calorieTarget"`
	CaloriePercent float64         `json:"caloriePercent"`
	Status         IntakeStatus    `json:"status"`
}

// AnalyzeIntake sums the nutrition of a day's meals and classifies the
// calorie total against the target. Within ±10% counts as on track.
func AnalyzeIntake(meals []model.Meal, calorieTarget float64) IntakeAnalysis {
	var consumed model.Nutrition
	for _, m := range meals {
		consumed = consumed.Add(m.TotalNutrition)
	}

	analysis := IntakeAnalysis{
		Consumed:      consumed,
		CalorieTarget: calorieTarget,
	}
	if calorieTarget > 0 {
		analysis.CaloriePercent = consumed.Calories / calorieTarget * 100
	}

	switch {
	case analysis.CaloriePercent < 90:
		analysis.Status = IntakeUnder
	case analysis.CaloriePercent <= 110:
		analysis.Status = IntakeOK
	default:
		analysis.Status = IntakeOver
	}
	return analysis
}
