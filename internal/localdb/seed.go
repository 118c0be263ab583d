package localdb

import (
	"context"
	"log/slog"

	"github.com/sakif/nutrition-tracker/internal/model"
)

// InitializeDemoData seeds the store on first boot and back-fills missing
// cascade records on every boot.
//
// The seeding itself is guarded by the init-flag region so a restart never
// duplicates the demo accounts. The BACK-FILL runs unconditionally: any user
// already in the store (seeded by an older version, or imported) who is
// missing a profile or stats record gets a default one, lazily repairing the
// signup cascade for accounts that predate it.
func (db *DB) InitializeDemoData(ctx context.Context) {
	var initialized bool
	db.store.Get(ctx, keyInitialized, &initialized)

	if !initialized {
		db.seedDemoUsers(ctx)
		db.store.Set(ctx, keyInitialized, true)
	}

	db.backfillCascadeRecords(ctx)
}

func (db *DB) seedDemoUsers(ctx context.Context) {
	demo, err := db.CreateUser(ctx, NewUser{
		Email:    "demo@nutritrack.app",
		Name:     "Demo User",
		Age:      28,
		Gender:   model.GenderFemale,
		HeightCm: 165,
		WeightKg: 62,
	}, "demo123")
	if err != nil {
		// Already present from a partially-initialized store; nothing to do.
		db.logger.Warn("demo user seed skipped", slog.String("error", err.Error()))
	} else {
		db.seedDemoMeals(ctx, demo.ID)
	}

	if _, err := db.CreateUser(ctx, NewUser{
		Email:    "admin@nutritrack.app",
		Name:     "Administrator",
		Age:      35,
		Gender:   model.GenderMale,
		HeightCm: 178,
		WeightKg: 75,
		Role:     model.RoleAdmin,
	}, "admin123"); err != nil {
		db.logger.Warn("admin user seed skipped", slog.String("error", err.Error()))
	}

	db.logger.Info("demo data seeded")
}

// seedDemoMeals logs a short meal history for the demo account through the
// normal CreateMeal path, so the statistics engine populates the dashboard
// exactly as it would for real usage.
func (db *DB) seedDemoMeals(ctx context.Context, userID string) {
	today := db.now().Format(dateFormat)
	yesterday := addDays(today, -1)

	demoMeals := []model.Meal{
		{
			UserID: userID,
			Type:   model.MealTypeBreakfast,
			Date:   yesterday,
			Time:   "08:30",
			Foods: []model.FoodEntry{
				{Name: "Oatmeal", Grams: 80, Nutrition: model.Nutrition{Calories: 300, Protein: 10, Carbs: 54, Fats: 5, Fiber: 8, Iron: 3.4}},
				{Name: "Banana", Grams: 120, Nutrition: model.Nutrition{Calories: 105, Protein: 1.3, Carbs: 27, Fats: 0.4, Fiber: 3.1}},
			},
		},
		{
			UserID: userID,
			Type:   model.MealTypeLunch,
			Date:   yesterday,
			Time:   "13:00",
			Foods: []model.FoodEntry{
				{Name: "Chicken Rice Bowl", Grams: 350, Nutrition: model.Nutrition{Calories: 520, Protein: 35, Carbs: 60, Fats: 14, Iron: 2.1}},
			},
		},
		{
			UserID: userID,
			Type:   model.MealTypeBreakfast,
			Date:   today,
			Time:   "08:15",
			Foods: []model.FoodEntry{
				{Name: "Oatmeal", Grams: 80, Nutrition: model.Nutrition{Calories: 300, Protein: 10, Carbs: 54, Fats: 5, Fiber: 8, Iron: 3.4}},
				{Name: "Greek Yogurt", Grams: 150, Nutrition: model.Nutrition{Calories: 130, Protein: 15, Carbs: 6, Fats: 4}},
			},
		},
	}

	for i := range demoMeals {
		demoMeals[i].TotalNutrition = model.SumFoodNutrition(demoMeals[i].Foods)
		if err := db.CreateMeal(ctx, &demoMeals[i]); err != nil {
			db.logger.Warn("demo meal seed failed", slog.String("error", err.Error()))
		}
	}
}

// backfillCascadeRecords gives every user lacking a profile or stats record
// a default one, as if the signup cascade had run for them.
func (db *DB) backfillCascadeRecords(ctx context.Context) {
	users := db.loadUsers(ctx)
	if len(users) == 0 {
		return
	}

	profiles := db.loadProfiles(ctx)
	haveProfile := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		haveProfile[p.UserID] = struct{}{}
	}

	allStats := db.loadStats(ctx)
	haveStats := make(map[string]struct{}, len(allStats))
	for _, s := range allStats {
		haveStats[s.UserID] = struct{}{}
	}

	profilesDirty, statsDirty := false, false
	for _, u := range users {
		if _, ok := haveProfile[u.ID]; !ok {
			profiles = append(profiles, model.DefaultProfile(u.ID))
			profilesDirty = true
			db.logger.Info("back-filled profile", slog.String("userID", u.ID))
		}
		if _, ok := haveStats[u.ID]; !ok {
			allStats = append(allStats, model.InitialStats(u.ID, u.WeightKg, db.now()))
			statsDirty = true
			db.logger.Info("back-filled stats", slog.String("userID", u.ID))
		}
	}

	if profilesDirty {
		db.saveProfiles(ctx, profiles)
	}
	if statsDirty {
		db.saveStats(ctx, allStats)
	}
}
