package localdb

import (
	"context"
	"log/slog"

	"github.com/rs/xid"
	"github.com/sakif/nutrition-tracker/internal/apperror"
	"github.com/sakif/nutrition-tracker/internal/model"
)

// Admin import record keeping.
//
// TWO IMPORTERS, TWO ACTORS — DO NOT CONFUSE THEM:
// ImportUserData (transfer.go) is the SELF-import: a user merging their own
// backup into the live tables. FileSubmission here is the ADMIN flow: an
// uploaded export document is filed as a read-only submission record in its
// own region and NEVER merged into the live user/meal tables. Admins list,
// open, and delete submissions; nothing here recomputes stats or touches
// anyone's data.

// FileSubmission stores an uploaded export document for admin review.
//
// The wrapper stamps importedAt, copies the document's own exportDate out to
// originalExportDate, and computes the summary aggregates (owner email, meal
// count, calorie total) at filing time so the list view never has to open
// the full payload.
func (db *DB) FileSubmission(ctx context.Context, doc model.ExportDocument) *model.ImportedSubmission {
	summary := model.SubmissionSummary{
		TotalMeals: len(doc.Meals),
	}
	if doc.User != nil {
		summary.UserEmail = doc.User.Email
	}
	for _, m := range doc.Meals {
		summary.TotalCalories += m.TotalNutrition.Calories
	}

	sub := model.ImportedSubmission{
		ID:                 xid.New().String(),
		ImportedAt:         db.now(),
		OriginalExportDate: doc.ExportDate,
		Metadata:           model.SubmissionMetadata{Summary: summary},
		Data:               doc,
	}

	subs := db.loadSubmissions(ctx)
	subs = append(subs, sub)
	db.saveSubmissions(ctx, subs)

	db.logger.Info("submission filed",
		slog.String("submissionID", sub.ID),
		slog.String("userEmail", summary.UserEmail),
		slog.Int("meals", summary.TotalMeals),
	)

	return &sub
}

// ListSubmissions returns every filed submission in filing order.
func (db *DB) ListSubmissions(ctx context.Context) []model.ImportedSubmission {
	return db.loadSubmissions(ctx)
}

// GetSubmission returns one submission by id, or ErrNotFound.
func (db *DB) GetSubmission(ctx context.Context, id string) (*model.ImportedSubmission, error) {
	for _, s := range db.loadSubmissions(ctx) {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, apperror.NotFound("submission", id)
}

// DeleteSubmission removes one submission by id, or ErrNotFound. This is
// the only bulk-record hard delete in the system besides meal deletion.
func (db *DB) DeleteSubmission(ctx context.Context, id string) error {
	subs := db.loadSubmissions(ctx)
	idx := -1
	for i, s := range subs {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperror.NotFound("submission", id)
	}

	subs = append(subs[:idx], subs[idx+1:]...)
	db.saveSubmissions(ctx, subs)

	db.logger.Info("submission deleted", slog.String("submissionID", id))

	return nil
}
