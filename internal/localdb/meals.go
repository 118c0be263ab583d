package localdb

import (
	"context"
	"log/slog"

	"github.com/rs/xid"
	"github.com/sakif/nutrition-tracker/internal/apperror"
	"github.com/sakif/nutrition-tracker/internal/model"
)

// CreateMeal logs a meal and synchronously updates the owning user's stats.
//
// POINTER RECEIVER ARGUMENT:
// We take *model.Meal so the caller gets the generated ID and CreatedAt back
// in their own struct, same pattern as the rest of the repository layer.
//
// DELIBERATELY LAX:
// Nothing is validated — not the nutrition totals (TotalNutrition is trusted
// as the caller's sum of Foods), not the date format, not even that UserID
// refers to an existing user. An orphaned meal is stored happily. This
// preserves the original's observable behaviour; the error return exists for
// signature symmetry with DeleteMeal and is always nil today.
func (db *DB) CreateMeal(ctx context.Context, meal *model.Meal) error {
	meal.ID = xid.New().String()
	meal.CreatedAt = db.now()

	meals := db.loadMeals(ctx)
	meals = append(meals, *meal)
	db.saveMeals(ctx, meals)

	// Stats ride along with every meal write — the creation path runs the
	// full statistics engine including the streak walk.
	db.updateStatsOnMealAdded(ctx, meal.UserID)

	db.logger.Info("meal created",
		slog.String("mealID", meal.ID),
		slog.String("userID", meal.UserID),
		slog.String("date", meal.Date),
	)

	return nil
}

// DeleteMeal removes the meal matching the exact (id, userID) pair.
//
// Ownership is enforced HERE, at delete time — reads don't check it. A
// correct id with the wrong userID is indistinguishable from a missing meal:
// both are ErrNotFound, and the table is left untouched.
//
// On success the owner's stats are recomputed from the remaining meals via
// the deletion path, which never reruns the streak walk (see stats.go).
func (db *DB) DeleteMeal(ctx context.Context, id, userID string) error {
	meals := db.loadMeals(ctx)

	idx := -1
	for i, m := range meals {
		if m.ID == id && m.UserID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperror.NotFound("meal", id)
	}

	meals = append(meals[:idx], meals[idx+1:]...)
	db.saveMeals(ctx, meals)

	db.recomputeStatsAfterDelete(ctx, userID)

	db.logger.Info("meal deleted",
		slog.String("mealID", id),
		slog.String("userID", userID),
	)

	return nil
}

// GetMealsByUser returns every meal belonging to the user, in table order
// (which is insertion order — nothing ever reorders the meals region).
func (db *DB) GetMealsByUser(ctx context.Context, userID string) []model.Meal {
	var result []model.Meal
	for _, m := range db.loadMeals(ctx) {
		if m.UserID == userID {
			result = append(result, m)
		}
	}
	return result
}

// GetMealsByDate returns the user's meals for one "2006-01-02" date string.
// Dates are compared as strings — the ISO format makes that safe.
func (db *DB) GetMealsByDate(ctx context.Context, userID, date string) []model.Meal {
	var result []model.Meal
	for _, m := range db.loadMeals(ctx) {
		if m.UserID == userID && m.Date == date {
			result = append(result, m)
		}
	}
	return result
}
