package localdb

import (
	"context"
	"testing"

	"github.com/sakif/nutrition-tracker/internal/model"
)

// =========================================================================
// AGGREGATE RECOMPUTATION (creation path)
// =========================================================================

func TestStatsCountAndAverage(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "a@x.com")

	// 3 meals across 2 distinct dates. The average divides by DISTINCT
	// DATES, not by meal count: (400+600+500) / 2 = 750.
	logMeal(t, db, user.ID, "2024-06-01", "Rice", 400)
	logMeal(t, db, user.ID, "2024-06-01", "Beans", 600)
	logMeal(t, db, user.ID, "2024-06-02", "Pasta", 500)

	stats, err := db.GetStats(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}

	if stats.TotalMealsLogged != 3 {
		t.Errorf("TotalMealsLogged = %d, want 3", stats.TotalMealsLogged)
	}
	if stats.AverageDailyCalories != 750 {
		t.Errorf("AverageDailyCalories = %v, want 750", stats.AverageDailyCalories)
	}
}

func TestFavoriteFoodCountsOccurrences(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "a@x.com")

	// Rice appears twice INSIDE one meal plus once in another (3 occurrences);
	// Chicken appears in two meals (2). Occurrence counting, not
	// meals-containing, so Rice wins.
	meal := &model.Meal{
		UserID: user.ID,
		Date:   "2024-06-01",
		Foods: []model.FoodEntry{
			{Name: "Rice", Nutrition: model.Nutrition{Calories: 200}},
			{Name: "Rice", Nutrition: model.Nutrition{Calories: 200}},
			{Name: "Chicken", Nutrition: model.Nutrition{Calories: 300}},
		},
	}
	meal.TotalNutrition = model.SumFoodNutrition(meal.Foods)
	if err := db.CreateMeal(ctx, meal); err != nil {
		t.Fatalf("CreateMeal() error = %v", err)
	}

	meal2 := &model.Meal{
		UserID: user.ID,
		Date:   "2024-06-02",
		Foods: []model.FoodEntry{
			{Name: "Chicken", Nutrition: model.Nutrition{Calories: 300}},
			{Name: "Rice", Nutrition: model.Nutrition{Calories: 200}},
		},
	}
	meal2.TotalNutrition = model.SumFoodNutrition(meal2.Foods)
	if err := db.CreateMeal(ctx, meal2); err != nil {
		t.Fatalf("CreateMeal() error = %v", err)
	}

	stats, _ := db.GetStats(ctx, user.ID)
	if stats.FavoriteFood != "Rice" {
		t.Errorf("FavoriteFood = %q, want %q", stats.FavoriteFood, "Rice")
	}
}

func TestFavoriteFoodTieBreaksToFirstEncountered(t *testing.T) {
	// Pure-function check — scan order decides the tie, not map order.
	meals := []model.Meal{
		{Foods: []model.FoodEntry{{Name: "Apple"}, {Name: "Pear"}}},
		{Foods: []model.FoodEntry{{Name: "Pear"}, {Name: "Apple"}}},
	}
	if got := favoriteFood(meals); got != "Apple" {
		t.Errorf("favoriteFood() tie = %q, want first-encountered %q", got, "Apple")
	}
}

// =========================================================================
// STREAKS
// =========================================================================

func TestCurrentStreakConsecutiveRunEndingToday(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "a@x.com")

	// Meals on today-2, today-1, today → streak 3.
	logMeal(t, db, user.ID, daysBeforeToday(2), "Rice", 400)
	logMeal(t, db, user.ID, daysBeforeToday(1), "Rice", 400)
	logMeal(t, db, user.ID, daysBeforeToday(0), "Rice", 400)

	stats, _ := db.GetStats(ctx, user.ID)
	if stats.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", stats.CurrentStreak)
	}
	if stats.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", stats.LongestStreak)
	}

	// An extra meal on today-5 is disconnected: the current streak must not
	// change (the walk stops at the today-2 → today-5 gap).
	logMeal(t, db, user.ID, daysBeforeToday(5), "Beans", 500)

	stats, _ = db.GetStats(ctx, user.ID)
	if stats.CurrentStreak != 3 {
		t.Errorf("CurrentStreak after gap meal = %d, want still 3", stats.CurrentStreak)
	}
}

func TestCurrentStreakZeroWhenNotEndingToday(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "a@x.com")

	// A perfect week ending YESTERDAY counts for nothing today.
	for i := 1; i <= 7; i++ {
		logMeal(t, db, user.ID, daysBeforeToday(i), "Rice", 400)
	}

	stats, _ := db.GetStats(ctx, user.ID)
	if stats.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0 (most recent meal is not today)", stats.CurrentStreak)
	}
	if stats.LongestStreak != 7 {
		t.Errorf("LongestStreak = %d, want 7", stats.LongestStreak)
	}
}

func TestLongestStreakFindsInteriorWindow(t *testing.T) {
	// today-10..today-8 is a 3-day window; today alone is 1.
	dates := []string{
		daysBeforeToday(10), daysBeforeToday(9), daysBeforeToday(8),
		daysBeforeToday(0),
	}
	if got := longestStreak(dates); got != 3 {
		t.Errorf("longestStreak() = %d, want 3", got)
	}
}

func TestLongestStreakMonotonicAcrossDeletes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "a@x.com")

	m1 := logMeal(t, db, user.ID, daysBeforeToday(2), "Rice", 400)
	logMeal(t, db, user.ID, daysBeforeToday(1), "Rice", 400)
	logMeal(t, db, user.ID, daysBeforeToday(0), "Rice", 400)

	// Delete the oldest meal in the streak. The deletion path never reruns
	// the streak walk: LongestStreak stays 3, and CurrentStreak keeps its
	// stale value too (meals remain).
	if err := db.DeleteMeal(ctx, m1.ID, user.ID); err != nil {
		t.Fatalf("DeleteMeal() error = %v", err)
	}

	stats, _ := db.GetStats(ctx, user.ID)
	if stats.LongestStreak != 3 {
		t.Errorf("LongestStreak after delete = %d, want untouched 3", stats.LongestStreak)
	}
	if stats.CurrentStreak != 3 {
		t.Errorf("CurrentStreak after delete = %d, want stale 3 (delete path skips streaks)", stats.CurrentStreak)
	}
	if stats.TotalMealsLogged != 2 {
		t.Errorf("TotalMealsLogged = %d, want 2", stats.TotalMealsLogged)
	}
}

func TestCurrentStreakResetsWhenLastMealDeleted(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "a@x.com")
	meal := logMeal(t, db, user.ID, daysBeforeToday(0), "Rice", 400)

	if err := db.DeleteMeal(ctx, meal.ID, user.ID); err != nil {
		t.Fatalf("DeleteMeal() error = %v", err)
	}

	stats, _ := db.GetStats(ctx, user.ID)
	if stats.CurrentStreak != 0 {
		t.Errorf("CurrentStreak with no meals = %d, want 0", stats.CurrentStreak)
	}
	if stats.AverageDailyCalories != 0 {
		t.Errorf("AverageDailyCalories with no meals = %v, want 0", stats.AverageDailyCalories)
	}
	if stats.FavoriteFood != "" {
		t.Errorf("FavoriteFood with no meals = %q, want empty", stats.FavoriteFood)
	}
	// LongestStreak survives even total pruning — monotonic by design.
	if stats.LongestStreak != 1 {
		t.Errorf("LongestStreak = %d, want 1", stats.LongestStreak)
	}
}

// =========================================================================
// ACHIEVEMENTS
// =========================================================================

func TestFirstMealAchievementUnlocksOnceOnly(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "a@x.com")

	logMeal(t, db, user.ID, testToday, "Rice", 400)

	stats, _ := db.GetStats(ctx, user.ID)
	if !stats.HasAchievement(model.AchievementFirstMeal) {
		t.Fatal("first meal did not unlock the achievement")
	}

	// Subsequent meals must not duplicate it.
	logMeal(t, db, user.ID, testToday, "Beans", 500)
	logMeal(t, db, user.ID, testToday, "Pasta", 600)

	stats, _ = db.GetStats(ctx, user.ID)
	count := 0
	for _, a := range stats.Achievements {
		if a == model.AchievementFirstMeal {
			count++
		}
	}
	if count != 1 {
		t.Errorf("achievement %q appears %d times, want exactly 1", model.AchievementFirstMeal, count)
	}
}

func TestConsistentLoggerAtTenMeals(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "a@x.com")

	for i := 0; i < 9; i++ {
		logMeal(t, db, user.ID, testToday, "Rice", 400)
	}
	stats, _ := db.GetStats(ctx, user.ID)
	if stats.HasAchievement(model.AchievementConsistentLogger) {
		t.Error("Consistent Logger unlocked at 9 meals, want 10")
	}

	logMeal(t, db, user.ID, testToday, "Rice", 400)
	stats, _ = db.GetStats(ctx, user.ID)
	if !stats.HasAchievement(model.AchievementConsistentLogger) {
		t.Error("Consistent Logger not unlocked at 10 meals")
	}
}

func TestWeekWarriorAtSevenDayStreak(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "a@x.com")

	// Seven consecutive days ending today.
	for i := 6; i >= 0; i-- {
		logMeal(t, db, user.ID, daysBeforeToday(i), "Rice", 400)
	}

	stats, _ := db.GetStats(ctx, user.ID)
	if stats.CurrentStreak != 7 {
		t.Fatalf("CurrentStreak = %d, want 7", stats.CurrentStreak)
	}
	if !stats.HasAchievement(model.AchievementWeekWarrior) {
		t.Error("Week Warrior not unlocked at a 7-day streak")
	}
}

func TestAchievementsSurviveDeletion(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "a@x.com")
	meal := logMeal(t, db, user.ID, testToday, "Rice", 400)

	if err := db.DeleteMeal(ctx, meal.ID, user.ID); err != nil {
		t.Fatalf("DeleteMeal() error = %v", err)
	}

	// Achievements are append-only — deleting every meal does not revoke them.
	stats, _ := db.GetStats(ctx, user.ID)
	if !stats.HasAchievement(model.AchievementFirstMeal) {
		t.Error("achievement revoked by meal deletion, want append-only")
	}
}

// =========================================================================
// PURE STREAK HELPERS
// =========================================================================

func TestCurrentStreakPure(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		today string
		want  int
	}{
		{"empty", nil, "2024-06-15", 0},
		{"single today", []string{"2024-06-15"}, "2024-06-15", 1},
		{"single yesterday", []string{"2024-06-14"}, "2024-06-15", 0},
		{"three ending today", []string{"2024-06-13", "2024-06-14", "2024-06-15"}, "2024-06-15", 3},
		{"gap breaks walk", []string{"2024-06-11", "2024-06-14", "2024-06-15"}, "2024-06-15", 2},
		{"month boundary", []string{"2024-05-31", "2024-06-01"}, "2024-06-01", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := currentStreak(tt.dates, tt.today); got != tt.want {
				t.Errorf("currentStreak(%v, %s) = %d, want %d", tt.dates, tt.today, got, tt.want)
			}
		})
	}
}

func TestLongestStreakPure(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"empty", nil, 0},
		{"single", []string{"2024-06-15"}, 1},
		{"all consecutive", []string{"2024-06-13", "2024-06-14", "2024-06-15"}, 3},
		{"best window in middle", []string{"2024-06-01", "2024-06-05", "2024-06-06", "2024-06-07", "2024-06-10"}, 3},
		{"year boundary", []string{"2023-12-31", "2024-01-01"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := longestStreak(tt.dates); got != tt.want {
				t.Errorf("longestStreak(%v) = %d, want %d", tt.dates, got, tt.want)
			}
		})
	}
}
