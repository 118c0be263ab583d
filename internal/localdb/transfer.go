package localdb

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/sakif/nutrition-tracker/internal/apperror"
	"github.com/sakif/nutrition-tracker/internal/model"
)

// ExportUserData serializes a user's full data subtree to pretty-printed
// JSON — the transportable backup document.
//
// SESSION-READ QUIRK, PRESERVED:
// The `user` field is read from the CURRENT SESSION, not looked up by the
// userID parameter. For the normal self-export flow the two are the same
// person and it makes no difference. When an admin exports someone else's
// data, the document carries the admin's own user record next to the other
// person's meals — inherited behaviour, kept as-is so existing export files
// stay comparable. The meals/profile/stats DO follow the userID parameter.
func (db *DB) ExportUserData(ctx context.Context, userID string) (string, error) {
	doc := model.ExportDocument{
		User:       db.CurrentUser(ctx),
		Meals:      db.GetMealsByUser(ctx, userID),
		ExportDate: db.now(),
	}
	if doc.Meals == nil {
		doc.Meals = []model.Meal{}
	}

	// Profile and stats are nullable in the document — a user who never
	// completed onboarding simply exports null for them.
	if profile, err := db.GetProfile(ctx, userID); err == nil {
		doc.Profile = profile
	}
	if stats, err := db.GetStats(ctx, userID); err == nil {
		doc.Stats = stats
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	db.logger.Info("user data exported",
		slog.String("userID", userID),
		slog.Int("meals", len(doc.Meals)),
	)

	return string(raw), nil
}

// ImportUserData merges an export document back into the store.
//
// MERGE SEMANTICS (per section of the document):
//   - user:    upsert by id — replace the record wholesale if the id exists,
//              insert otherwise. No validation of the imported fields.
//   - meals:   id-deduplicated append. A meal whose id already exists in the
//              destination is left UNTOUCHED (not overwritten); only unknown
//              ids are appended. Re-importing the same file is therefore a
//              no-op for meals.
//   - profile: upsert by userId (replace-or-insert).
//   - stats:   upsert by userId (replace-or-insert).
//
// The ONLY failure is unparsable JSON → ErrInvalidFormat, checked before any
// region is touched, so a malformed file changes nothing.
//
// NO RECONCILIATION: imported stats are stored as-is and never re-derived
// from the imported meals. If the file carried inconsistent numbers, the
// store now carries them too — the next meal create will recompute honestly.
func (db *DB) ImportUserData(ctx context.Context, jsonText string) error {
	var doc model.ExportDocument
	if err := json.Unmarshal([]byte(jsonText), &doc); err != nil {
		return apperror.InvalidFormat()
	}

	if doc.User != nil {
		users := db.loadUsers(ctx)
		replaced := false
		for i, u := range users {
			if u.ID == doc.User.ID {
				users[i] = *doc.User
				replaced = true
				break
			}
		}
		if !replaced {
			users = append(users, *doc.User)
		}
		db.saveUsers(ctx, users)
	}

	if len(doc.Meals) > 0 {
		meals := db.loadMeals(ctx)
		existing := make(map[string]struct{}, len(meals))
		for _, m := range meals {
			existing[m.ID] = struct{}{}
		}
		added := 0
		for _, m := range doc.Meals {
			if _, ok := existing[m.ID]; ok {
				continue
			}
			meals = append(meals, m)
			added++
		}
		if added > 0 {
			db.saveMeals(ctx, meals)
		}
	}

	if doc.Profile != nil {
		profiles := db.loadProfiles(ctx)
		replaced := false
		for i, p := range profiles {
			if p.UserID == doc.Profile.UserID {
				profiles[i] = *doc.Profile
				replaced = true
				break
			}
		}
		if !replaced {
			profiles = append(profiles, *doc.Profile)
		}
		db.saveProfiles(ctx, profiles)
	}

	if doc.Stats != nil {
		allStats := db.loadStats(ctx)
		replaced := false
		for i, s := range allStats {
			if s.UserID == doc.Stats.UserID {
				allStats[i] = *doc.Stats
				replaced = true
				break
			}
		}
		if !replaced {
			allStats = append(allStats, *doc.Stats)
		}
		db.saveStats(ctx, allStats)
	}

	db.logger.Info("user data imported",
		slog.Int("meals", len(doc.Meals)),
		slog.Bool("hasUser", doc.User != nil),
	)

	return nil
}
