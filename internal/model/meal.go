package model

import "time"

// MealType is the slot a meal was eaten in.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// Nutrition is the per-food (and per-meal total) nutrient vector.
// All macro values are grams, calories are kcal, iron is mg and
// vitamin A is µg — the units the food database feeds us.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Fiber    float64 `json:"fiber"`
	Iron     float64 `json:"iron"`
	VitaminA float64 `json:"vitaminA"`
}

// Add returns the element-wise sum of two nutrition vectors.
func (n Nutrition) Add(other Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + other.Calories,
		Protein:  n.Protein + other.Protein,
		Carbs:    n.Carbs + other.Carbs,
		Fats:     n.Fats + other.Fats,
		Fiber:    n.Fiber + other.Fiber,
		Iron:     n.Iron + other.Iron,
		VitaminA: n.VitaminA + other.VitaminA,
	}
}

// FoodEntry is one food inside a meal: what it was, how much of it,
// and the nutrition snapshot for that amount.
type FoodEntry struct {
	Name      string    `json:"name"`
	Grams     float64   `json:"grams"`
	Nutrition Nutrition `json:"nutrition"`
}

// Meal is one logged meal belonging to exactly one user.
//
// DATE AS A STRING, NOT time.Time:
// Date is an ISO "YYYY-MM-DD" string used purely as a sort/group key.
// Lexicographic order on that format IS chronological order, so string
// comparison is all the statistics engine ever needs. Time is an "HH:MM"
// display string and never participates in any computation.
//
// TRUST-THE-CALLER INVARIANT:
// TotalNutrition is supplied by the caller as the sum of Foods' nutrition.
// The store never recomputes or validates it. Garbage in, garbage out —
// this mirrors how the logging form always computes the sum client-side.
//
// There is no referential check that UserID exists. Orphaned meals are
// possible and tolerated.
type Meal struct {
	ID             string      `json:"id"`
	UserID         string      `json:"userId"`
	Type           MealType    `json:"type"`
	Date           string      `json:"date"` // "2006-01-02"
	Time           string      `json:"time"` // "15:04"
	Foods          []FoodEntry `json:"foods"`
	TotalNutrition Nutrition   `json:"totalNutrition"`
	Mood           string      `json:"mood,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// SumFoodNutrition totals the nutrition of a food list. Callers use this to
// build TotalNutrition before logging; the store itself never calls it.
func SumFoodNutrition(foods []FoodEntry) Nutrition {
	var total Nutrition
	for _, f := range foods {
		total = total.Add(f.Nutrition)
	}
	return total
}
