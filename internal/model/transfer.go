package model

import "time"

// ExportDocument is the user-facing backup file: the user's full data
// subtree plus an export timestamp. It must round-trip — exporting and then
// importing the same document into an empty store reproduces an equivalent
// user, meal list, profile, and stats.
//
// User, Profile, and Stats are pointers because an export can legitimately
// carry null for any of them (e.g. a user whose profile was never created);
// Meals is always present, possibly empty.
type ExportDocument struct {
	User       *User        `json:"user"`
	Meals      []Meal       `json:"meals"`
	Profile    *UserProfile `json:"profile"`
	Stats      *UserStats   `json:"stats"`
	ExportDate time.Time    `json:"exportDate"`
}

// SubmissionSummary is the aggregate the admin flow computes when a document
// is filed for review — a quick glance at the size of the submission without
// opening it.
type SubmissionSummary struct {
	UserEmail     string  `json:"userEmail"`
	TotalMeals    int     `json:"totalMeals"`
	TotalCalories float64 `json:"totalCalories"`
}

// SubmissionMetadata wraps the summary. A separate struct so the admin flow
// can grow more metadata fields without widening the submission itself.
type SubmissionMetadata struct {
	Summary SubmissionSummary `json:"summary"`
}

// ImportedSubmission is an admin-review record: an uploaded export document
// preserved read-only in its own region, never merged into the live tables.
//
// This is a deliberately separate code path from the self-import merge —
// two importers exist for two actors. The self-importer folds a document
// into the user's own tables; the admin importer files it for review.
type ImportedSubmission struct {
	ID                 string             `json:"id"`
	ImportedAt         time.Time          `json:"importedAt"`
	OriginalExportDate time.Time          `json:"originalExportDate"`
	Metadata           SubmissionMetadata `json:"metadata"`
	Data               ExportDocument     `json:"data"`
}
