package model

import "time"

// WeightSample is one point in the weight-progress time series.
//
// The series is append-only in principle, but in the current meal-update
// path nothing ever appends to it — it is seeded with a single sample at
// signup and only a future weigh-in feature would grow it.
type WeightSample struct {
	Date     string  `json:"date"` // "2006-01-02"
	WeightKg float64 `json:"weightKg"`
}

// UserStats is the derived aggregate record — exactly one per user.
//
// Every field except WeightProgress and Achievements is recomputed from the
// user's full meal set by the statistics engine (localdb/stats.go) on each
// meal create/delete. Achievements are append-only and membership-guarded;
// LongestStreak is monotonic because the deletion path never recomputes it.
type UserStats struct {
	UserID               string         `json:"userId"`
	TotalMealsLogged     int            `json:"totalMealsLogged"`
	AverageDailyCalories float64        `json:"averageDailyCalories"`
	FavoriteFood         string         `json:"favoriteFood"`
	CurrentStreak        int            `json:"currentStreak"`
	LongestStreak        int            `json:"longestStreak"`
	WeightProgress       []WeightSample `json:"weightProgress"`
	Achievements         []string       `json:"achievements"`
	LastUpdated          time.Time      `json:"lastUpdated"`
}

// Achievement names. Unlock thresholds live in the statistics engine.
const (
	AchievementWelcome          = "Welcome Aboard" // seeded at signup
	AchievementFirstMeal        = "First Meal Logged"
	AchievementConsistentLogger = "Consistent Logger"
	AchievementWeekWarrior      = "Week Warrior"
	AchievementMonthlyMaster    = "Monthly Master"
)

// HasAchievement reports whether name is already on the list.
// The guard that keeps achievements append-once.
func (s *UserStats) HasAchievement(name string) bool {
	for _, a := range s.Achievements {
		if a == name {
			return true
		}
	}
	return false
}

// Unlock appends the achievement if it is not already present.
func (s *UserStats) Unlock(name string) {
	if !s.HasAchievement(name) {
		s.Achievements = append(s.Achievements, name)
	}
}

// InitialStats is the stats record cascaded at signup: zeroed counters, the
// welcome achievement, and one weight-progress sample taken from the signup
// weight.
func InitialStats(userID string, weightKg float64, now time.Time) UserStats {
	return UserStats{
		UserID:       userID,
		Achievements: []string{AchievementWelcome},
		WeightProgress: []WeightSample{
			{Date: now.Format("2006-01-02"), WeightKg: weightKg},
		},
		LastUpdated: now,
	}
}
