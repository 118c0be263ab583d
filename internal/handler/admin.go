package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/nutrition-tracker/internal/auth"
	"github.com/sakif/nutrition-tracker/internal/localdb"
	"github.com/sakif/nutrition-tracker/internal/model"
)

// AdminHandler serves the submission-review endpoints.
//
// Submissions are exported documents uploaded for review. They live in their
// own region of the store and are never merged into the live tables — this
// is a different code path from POST /api/import, which folds a document
// into the caller's own data.
type AdminHandler struct {
	db     *localdb.DB
	logger *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(db *localdb.DB, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{db: db, logger: logger}
}

// RequireAdmin is route middleware that rejects non-admin users with 403.
//
// It runs AFTER RequireAuth, so the userID in context is already validated.
// The role check hits the user table on every request rather than trusting
// a role claim baked into the token — roles take effect immediately when
// changed, at the cost of one store read.
func (h *AdminHandler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
			return
		}

		user, err := h.db.GetUserByID(r.Context(), userID)
		if err != nil || user.Role != model.RoleAdmin {
			h.logger.Warn("admin route denied", slog.String("userID", userID))
			writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "forbidden", Message: "admin access required"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// HandleFile stores an uploaded export document as a submission for review.
//
// HTTP: POST /api/admin/submissions
// REQUEST BODY: an export document
//
// The summary (email, meal count, calorie total) is computed at filing time
// so the list view never has to open the full documents.
func (h *AdminHandler) HandleFile(w http.ResponseWriter, r *http.Request) {
	var doc model.ExportDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		h.logger.Warn("file submission: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_format", Message: "Invalid data format"})
		return
	}

	sub := h.db.FileSubmission(r.Context(), doc)
	writeJSON(w, http.StatusCreated, sub)
}

// HandleList returns all filed submissions.
//
// HTTP: GET /api/admin/submissions
func (h *AdminHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	subs := h.db.ListSubmissions(r.Context())
	if subs == nil {
		subs = []model.ImportedSubmission{} // encode as [], not null
	}
	writeJSON(w, http.StatusOK, subs)
}

// HandleGet returns one submission by id.
//
// HTTP: GET /api/admin/submissions/{id}
func (h *AdminHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "Submission ID is required"})
		return
	}

	sub, err := h.db.GetSubmission(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

// HandleDelete removes a reviewed submission.
//
// HTTP: DELETE /api/admin/submissions/{id}
//
// Deleting a submission only touches the submission region — the live user,
// meal, profile, and stats tables are unaffected even if the submission's
// document references them.
func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "Submission ID is required"})
		return
	}

	if err := h.db.DeleteSubmission(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
