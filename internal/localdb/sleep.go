package localdb

import (
	"context"
	"log/slog"

	"github.com/rs/xid"
	"github.com/sakif/nutrition-tracker/internal/model"
)

// UpsertSleepEntry stores one night of sleep, keyed by (userID, date).
//
// A second log for the same date OVERWRITES the first — sleep is one record
// per night, unlike meals which append freely. The replaced record keeps its
// original ID and CreatedAt; only the measured fields (hours, quality,
// notes) take the new values.
func (db *DB) UpsertSleepEntry(ctx context.Context, entry *model.SleepEntry) {
	entries := db.loadSleep(ctx)

	replaced := false
	for i, e := range entries {
		if e.UserID == entry.UserID && e.Date == entry.Date {
			// Preserve identity of the replaced record.
			entry.ID = e.ID
			entry.CreatedAt = e.CreatedAt
			entries[i] = *entry
			replaced = true
			break
		}
	}
	if !replaced {
		entry.ID = xid.New().String()
		entry.CreatedAt = db.now()
		entries = append(entries, *entry)
	}
	db.saveSleep(ctx, entries)

	db.logger.Info("sleep entry upserted",
		slog.String("userID", entry.UserID),
		slog.String("date", entry.Date),
		slog.Bool("replaced", replaced),
	)
}

// GetSleepEntries returns all of the user's sleep entries in table order.
func (db *DB) GetSleepEntries(ctx context.Context, userID string) []model.SleepEntry {
	var result []model.SleepEntry
	for _, e := range db.loadSleep(ctx) {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	return result
}
