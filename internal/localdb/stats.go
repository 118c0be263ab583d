package localdb

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/sakif/nutrition-tracker/internal/apperror"
	"github.com/sakif/nutrition-tracker/internal/model"
)

// The statistics engine. Two entry points with deliberately different
// strategies:
//
//   - updateStatsOnMealAdded (creation path): recomputes EVERYTHING from the
//     user's full current meal set — counters, average, favorite food, AND
//     the streak walk, then checks achievement thresholds.
//   - recomputeStatsAfterDelete (deletion path): recomputes counters,
//     average, and favorite food only. It never reruns the streak walk;
//     CurrentStreak is zeroed only when the last meal is gone, and
//     LongestStreak is never touched at all.
//
// THE ASYMMETRY IS LOAD-BEARING:
// Deleting a meal in the middle of a streak leaves CurrentStreak stale until
// the next meal is logged, and LongestStreak is monotonic — it survives even
// if the history that earned it is pruned. Both are observed behaviour of
// the original system, preserved exactly. Unifying the two paths would
// silently change what users see on their dashboard.

// dateFormat is the ISO day format used as meal date keys.
const dateFormat = "2006-01-02"

// Achievement thresholds checked on the creation path.
const (
	firstMealThreshold      = 1
	consistentLogThreshold  = 10
	weekWarriorThreshold    = 7  // days of current streak
	monthlyMasterThreshold  = 30 // days of longest streak
)

// GetStats returns the user's stats record, or ErrNotFound if the user never
// had one (no signup cascade and no meals logged).
func (db *DB) GetStats(ctx context.Context, userID string) (*model.UserStats, error) {
	for _, s := range db.loadStats(ctx) {
		if s.UserID == userID {
			return &s, nil
		}
	}
	return nil, apperror.NotFound("stats", userID)
}

// updateStatsOnMealAdded is the creation-path entry point.
//
// Despite running on every single meal insert, it is NOT an incremental
// delta — it reloads the user's entire meal set and recomputes from scratch.
// At this scale a full pass is cheaper than getting incremental bookkeeping
// right, and it self-heals any drift from earlier writes.
func (db *DB) updateStatsOnMealAdded(ctx context.Context, userID string) {
	meals := db.GetMealsByUser(ctx, userID)

	allStats := db.loadStats(ctx)
	idx := statsIndex(allStats, userID)
	if idx < 0 {
		// A meal for a user with no stats record (orphaned insert or a
		// pre-cascade account). Back-fill a zero record so the update has
		// somewhere to land — same lazy back-fill the demo seeder does.
		allStats = append(allStats, model.UserStats{UserID: userID})
		idx = len(allStats) - 1
	}
	stats := &allStats[idx]

	stats.TotalMealsLogged = len(meals)
	stats.AverageDailyCalories = averageDailyCalories(meals)
	stats.FavoriteFood = favoriteFood(meals)

	dates := distinctSortedDates(meals)
	today := db.now().Format(dateFormat)
	stats.CurrentStreak = currentStreak(dates, today)

	// LongestStreak is monotonic: the best window in the current date set,
	// maxed against whatever was stored before.
	if run := longestStreak(dates); run > stats.LongestStreak {
		stats.LongestStreak = run
	}

	// Achievement unlocks — append-once, guarded by membership.
	if stats.TotalMealsLogged >= firstMealThreshold {
		stats.Unlock(model.AchievementFirstMeal)
	}
	if stats.TotalMealsLogged >= consistentLogThreshold {
		stats.Unlock(model.AchievementConsistentLogger)
	}
	if stats.CurrentStreak >= weekWarriorThreshold {
		stats.Unlock(model.AchievementWeekWarrior)
	}
	if stats.LongestStreak >= monthlyMasterThreshold {
		stats.Unlock(model.AchievementMonthlyMaster)
	}

	stats.LastUpdated = db.now()
	db.saveStats(ctx, allStats)

	db.logger.Debug("stats updated on meal add",
		slog.String("userID", userID),
		slog.Int("totalMeals", stats.TotalMealsLogged),
		slog.Int("currentStreak", stats.CurrentStreak),
	)
}

// recomputeStatsAfterDelete is the deletion-path entry point.
//
// Counters, average, and favorite food are recomputed the same way as on
// create. Streaks are NOT: CurrentStreak resets to 0 only when no meals
// remain, and LongestStreak is left exactly as it was.
func (db *DB) recomputeStatsAfterDelete(ctx context.Context, userID string) {
	meals := db.GetMealsByUser(ctx, userID)

	allStats := db.loadStats(ctx)
	idx := statsIndex(allStats, userID)
	if idx < 0 {
		// Deleting a meal for a user with no stats record — nothing to fix.
		return
	}
	stats := &allStats[idx]

	stats.TotalMealsLogged = len(meals)
	stats.AverageDailyCalories = averageDailyCalories(meals)
	stats.FavoriteFood = favoriteFood(meals)

	if len(meals) == 0 {
		stats.CurrentStreak = 0
	}

	stats.LastUpdated = db.now()
	db.saveStats(ctx, allStats)

	db.logger.Debug("stats recomputed after meal delete",
		slog.String("userID", userID),
		slog.Int("totalMeals", stats.TotalMealsLogged),
	)
}

func statsIndex(all []model.UserStats, userID string) int {
	for i, s := range all {
		if s.UserID == userID {
			return i
		}
	}
	return -1
}

// ===== pure aggregate computations =====

// averageDailyCalories is total calories over all meals divided by the
// number of DISTINCT dates that have at least one meal — not by the meal
// count. Two meals on the same day average over one day.
func averageDailyCalories(meals []model.Meal) float64 {
	if len(meals) == 0 {
		return 0
	}
	var total float64
	days := make(map[string]struct{})
	for _, m := range meals {
		total += m.TotalNutrition.Calories
		days[m.Date] = struct{}{}
	}
	if len(days) == 0 {
		return 0
	}
	return total / float64(len(days))
}

// favoriteFood is the food name with the highest occurrence count across
// every foods[] entry of every meal — occurrences, not meals-containing, so
// logging rice twice in one meal counts twice.
//
// Ties break toward the name encountered FIRST in scan order (table order,
// foods in list order). We track first-encounter rank explicitly instead of
// relying on map iteration order, which Go randomises.
func favoriteFood(meals []model.Meal) string {
	counts := make(map[string]int)
	rank := make(map[string]int)
	next := 0

	for _, m := range meals {
		for _, f := range m.Foods {
			if _, seen := counts[f.Name]; !seen {
				rank[f.Name] = next
				next++
			}
			counts[f.Name]++
		}
	}

	best := ""
	for name, count := range counts {
		if best == "" ||
			count > counts[best] ||
			(count == counts[best] && rank[name] < rank[best]) {
			best = name
		}
	}
	return best
}

// distinctSortedDates returns the user's distinct meal dates in ascending
// order. ISO date strings sort lexicographically into chronological order,
// so plain string sorting is correct.
func distinctSortedDates(meals []model.Meal) []string {
	seen := make(map[string]struct{})
	var dates []string
	for _, m := range meals {
		if _, ok := seen[m.Date]; !ok {
			seen[m.Date] = struct{}{}
			dates = append(dates, m.Date)
		}
	}
	sort.Strings(dates)
	return dates
}

// currentStreak counts the trailing run of consecutive days ending TODAY.
//
// Walking backward from the most recent date: each date must equal the
// expected day (today, then today-1, ...) or the walk stops immediately.
// If the most recent meal date is not today the streak is 0 — yesterday's
// unbroken week counts for nothing until a meal is logged today.
func currentStreak(sortedDates []string, today string) int {
	streak := 0
	expected := today
	for i := len(sortedDates) - 1; i >= 0; i-- {
		if sortedDates[i] != expected {
			break
		}
		streak++
		expected = addDays(expected, -1)
	}
	return streak
}

// longestStreak finds the longest consecutive-day window anywhere in the
// sorted date set: scan left to right, extend the running window when the
// gap to the previous date is exactly one day, reset to 1 otherwise.
//
// This is the raw window for THIS date set only — the monotonic max against
// the stored value happens at the call site.
func longestStreak(sortedDates []string) int {
	if len(sortedDates) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(sortedDates); i++ {
		if sortedDates[i] == addDays(sortedDates[i-1], 1) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// addDays shifts an ISO date string by n days. An unparsable date comes back
// unchanged, which makes it compare unequal to everything and terminate any
// streak walk — the right degraded behaviour for garbage dates, since meal
// creation never validated them.
func addDays(date string, n int) string {
	t, err := time.Parse(dateFormat, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(dateFormat)
}
