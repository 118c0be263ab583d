package model

import "time"

// ActivityLevel feeds the calorie-target multiplier in the calc package.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// FoodPreferences groups preferred foods by meal slot. Pure hints for the
// recommendation UI — nothing in the persistence core reads them.
type FoodPreferences struct {
	Breakfast []string `json:"breakfast,omitempty"`
	Lunch     []string `json:"lunch,omitempty"`
	Dinner    []string `json:"dinner,omitempty"`
	Snacks    []string `json:"snacks,omitempty"`
}

// ProfileSettings holds the user-tweakable knobs.
type ProfileSettings struct {
	Notifications      bool     `json:"notifications"`
	DataSharing        bool     `json:"dataSharing"`
	Units              string   `json:"units"` // "metric" | "imperial"
	ReminderTimes      []string `json:"reminderTimes,omitempty"`
	WeeklyMealTarget   int      `json:"weeklyMealTarget"`
	WeeklyCalorieGoal  float64  `json:"weeklyCalorieGoal"`
}

// UserProfile is the one-to-one preference record for a user.
//
// Invariant: at most one profile per UserID. UpsertProfile enforces this with
// replace-or-insert semantics — there is no "update profile" error path.
type UserProfile struct {
	UserID              string          `json:"userId"`
	CulturalBackground  string          `json:"culturalBackground,omitempty"`
	DietaryRestrictions []string        `json:"dietaryRestrictions,omitempty"`
	ActivityLevel       ActivityLevel   `json:"activityLevel"`
	HealthGoals         []string        `json:"healthGoals,omitempty"`
	FoodPreferences     FoodPreferences `json:"foodPreferences"`
	Settings            ProfileSettings `json:"settings"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// DefaultProfile is the profile cascaded at signup (and back-filled for
// seeded users that are missing one).
func DefaultProfile(userID string) UserProfile {
	return UserProfile{
		UserID:        userID,
		ActivityLevel: ActivityModerate,
		Settings: ProfileSettings{
			Notifications:    true,
			Units:            "metric",
			WeeklyMealTarget: 21, // three meals a day
		},
		UpdatedAt: time.Now(),
	}
}
