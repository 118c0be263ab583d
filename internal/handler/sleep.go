package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/nutrition-tracker/internal/auth"
	"github.com/sakif/nutrition-tracker/internal/localdb"
	"github.com/sakif/nutrition-tracker/internal/model"
)

// SleepHandler serves the sleep-tracking endpoints.
type SleepHandler struct {
	db     *localdb.DB
	logger *slog.Logger
}

// NewSleepHandler creates a SleepHandler.
func NewSleepHandler(db *localdb.DB, logger *slog.Logger) *SleepHandler {
	return &SleepHandler{db: db, logger: logger}
}

// HandleList returns the authenticated user's sleep entries.
//
// HTTP: GET /api/sleep
func (h *SleepHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	entries := h.db.GetSleepEntries(r.Context(), userID)
	if entries == nil {
		entries = []model.SleepEntry{} // encode as [], not null
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleUpsert records (or corrects) a night's sleep.
//
// HTTP: PUT /api/sleep
// REQUEST BODY: {"date":"2024-06-15","hours":7.5,"quality":4,"notes":"..."}
//
// One entry per (user, date): posting the same date again overwrites the
// fields but keeps the original entry's id and createdAt. Logging sleep never
// errors — the response always echoes the stored entry.
func (h *SleepHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	var entry model.SleepEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		h.logger.Warn("upsert sleep: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_json", Message: "Invalid JSON body"})
		return
	}

	entry.UserID = userID
	h.db.UpsertSleepEntry(r.Context(), &entry)

	writeJSON(w, http.StatusOK, entry)
}
