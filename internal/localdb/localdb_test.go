package localdb

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sakif/nutrition-tracker/internal/model"
	"github.com/sakif/nutrition-tracker/internal/storage"
)

// Test fixtures for the whole package.
//
// Each test gets a fresh ":memory:" SQLite store and a DB with a FROZEN
// clock — the streak algorithm computes "today" from the clock, so tests
// pin it to a fixed date and express meal dates relative to it.

// testToday is what the frozen clock reports as the current day.
const testToday = "2024-06-15"

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := storage.NewSQLite(":memory:", logger)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return newWithClock(store, logger, func() time.Time { return testNow })
}

// createTestUser signs up a user and fails the test on error.
func createTestUser(t *testing.T, db *DB, email string) *model.User {
	t.Helper()
	user, err := db.CreateUser(context.Background(), NewUser{
		Email:    email,
		Name:     "Test User",
		Age:      30,
		Gender:   model.GenderMale,
		HeightCm: 180,
		WeightKg: 80,
	}, "pw123")
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// logMeal creates a one-food meal for the user on the given date.
// daysAgo helpers in the stats tests build dates relative to testToday.
func logMeal(t *testing.T, db *DB, userID, date, foodName string, calories float64) *model.Meal {
	t.Helper()
	meal := &model.Meal{
		UserID: userID,
		Type:   model.MealTypeLunch,
		Date:   date,
		Time:   "12:30",
		Foods: []model.FoodEntry{
			{Name: foodName, Grams: 100, Nutrition: model.Nutrition{Calories: calories}},
		},
		TotalNutrition: model.Nutrition{Calories: calories},
	}
	if err := db.CreateMeal(context.Background(), meal); err != nil {
		t.Fatalf("failed to create test meal: %v", err)
	}
	return meal
}

// daysBeforeToday returns testToday shifted back by n days.
func daysBeforeToday(n int) string {
	return testNow.AddDate(0, 0, -n).Format(dateFormat)
}
