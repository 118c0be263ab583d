// Package service is the data-access layer the UI (or any embedding client)
// talks to: per-user session objects that cache the user's records in memory
// and keep that cache in sync optimistically as mutations go through.
//
// The shape mirrors a frontend data hook: construct one MealService when a
// user's dashboard "mounts", call Load once to fetch, then read the cached
// slice for every render while mutations update both the store and the cache
// in one step. The store stays the source of truth — Reload at any time
// discards the cache and refetches.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/nutrition-tracker/internal/localdb"
	"github.com/sakif/nutrition-tracker/internal/model"
)

// MealService manages one user's meal list.
//
// NOT SAFE FOR CONCURRENT USE — one instance belongs to one user session,
// the same way the store itself assumes a single active process.
type MealService struct {
	db     *localdb.DB
	logger *slog.Logger
	userID string

	meals  []model.Meal
	loaded bool
}

// NewMealService creates the meal accessor for one user.
func NewMealService(db *localdb.DB, logger *slog.Logger, userID string) *MealService {
	return &MealService{db: db, logger: logger, userID: userID}
}

// Load fetches the user's meals into the cache. Idempotent — a second call
// is a no-op unless Reload was requested. This is the "fetch on mount" step.
func (s *MealService) Load(ctx context.Context) {
	if s.loaded {
		return
	}
	s.meals = s.db.GetMealsByUser(ctx, s.userID)
	s.loaded = true
}

// Reload drops the cache and refetches from the store.
func (s *MealService) Reload(ctx context.Context) {
	s.loaded = false
	s.Load(ctx)
}

// Meals returns the cached meal list. Call Load first.
func (s *MealService) Meals() []model.Meal {
	return s.meals
}

// MealsByDate filters the cache by date string.
func (s *MealService) MealsByDate(date string) []model.Meal {
	var result []model.Meal
	for _, m := range s.meals {
		if m.Date == date {
			result = append(result, m)
		}
	}
	return result
}

// LogMeal persists a new meal and appends it to the cache optimistically —
// no refetch, the repository already told us the assigned identity by
// mutating the meal in place.
func (s *MealService) LogMeal(ctx context.Context, meal *model.Meal) error {
	meal.UserID = s.userID
	if err := s.db.CreateMeal(ctx, meal); err != nil {
		return fmt.Errorf("service/meals: logging meal: %w", err)
	}
	s.meals = append(s.meals, *meal)

	s.logger.Debug("meal logged via service",
		slog.String("userID", s.userID),
		slog.String("mealID", meal.ID),
	)
	return nil
}

// DeleteMeal removes a meal by id (ownership enforced by the repository)
// and drops it from the cache on success.
func (s *MealService) DeleteMeal(ctx context.Context, mealID string) error {
	if err := s.db.DeleteMeal(ctx, mealID, s.userID); err != nil {
		return err // already a proper apperror
	}
	for i, m := range s.meals {
		if m.ID == mealID {
			s.meals = append(s.meals[:i], s.meals[i+1:]...)
			break
		}
	}
	return nil
}
