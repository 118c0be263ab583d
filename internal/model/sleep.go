package model

import "time"

// SleepEntry is one night of sleep for one user.
//
// The natural key is (UserID, Date): logging sleep twice for the same date
// overwrites the earlier entry rather than appending a second one. The
// replaced record keeps its original ID and CreatedAt so external references
// stay valid across re-logs.
type SleepEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"` // "2006-01-02"
	Hours     float64   `json:"hours"`
	Quality   int       `json:"quality"` // 1..5 self-rating
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
