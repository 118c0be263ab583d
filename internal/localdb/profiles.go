package localdb

import (
	"context"
	"log/slog"

	"github.com/sakif/nutrition-tracker/internal/apperror"
	"github.com/sakif/nutrition-tracker/internal/model"
)

// GetProfile returns the user's profile, or ErrNotFound if none exists.
func (db *DB) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	for _, p := range db.loadProfiles(ctx) {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, apperror.NotFound("profile", userID)
}

// UpsertProfile stores the profile for the user: replace if one exists,
// insert otherwise. There is no failure path — the whole record is
// overwritten wholesale (the profile form always submits every field), so
// "update" and "create" are the same operation.
func (db *DB) UpsertProfile(ctx context.Context, userID string, profile model.UserProfile) *model.UserProfile {
	profile.UserID = userID
	profile.UpdatedAt = db.now()

	profiles := db.loadProfiles(ctx)
	replaced := false
	for i, p := range profiles {
		if p.UserID == userID {
			profiles[i] = profile
			replaced = true
			break
		}
	}
	if !replaced {
		profiles = append(profiles, profile)
	}
	db.saveProfiles(ctx, profiles)

	db.logger.Info("profile upserted",
		slog.String("userID", userID),
		slog.Bool("replaced", replaced),
	)

	return &profile
}
