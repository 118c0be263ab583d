package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/sakif/nutrition-tracker/internal/auth"
	"github.com/sakif/nutrition-tracker/internal/localdb"
)

// TransferHandler serves the backup endpoints: export to a JSON document and
// import (merge) from one.
type TransferHandler struct {
	db     *localdb.DB
	logger *slog.Logger
}

// NewTransferHandler creates a TransferHandler.
func NewTransferHandler(db *localdb.DB, logger *slog.Logger) *TransferHandler {
	return &TransferHandler{db: db, logger: logger}
}

// HandleExport returns the authenticated user's data as a downloadable
// JSON document.
//
// HTTP: GET /api/export
//
// The export is already serialized by the store, so the body is written
// verbatim rather than re-encoded.
func (h *TransferHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	doc, err := h.db.ExportUserData(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="nutritrack-export.json"`)
	if _, err := io.WriteString(w, doc); err != nil {
		h.logger.Error("export: writing response failed", slog.String("error", err.Error()))
	}
}

// HandleImport merges an exported document back into the store.
//
// HTTP: POST /api/import
// REQUEST BODY: a document previously produced by HandleExport
//
// MERGE, NOT RESTORE:
// Users and profiles are upserted by id; meals are appended only when their
// id isn't already present, so re-importing the same file is a no-op and an
// import can never overwrite an existing meal. A body that fails to parse is
// rejected with "Invalid data format" before anything is touched.
func (h *TransferHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserIDFromContext(r.Context()); !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Warn("import: reading body failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_format", Message: "Invalid data format"})
		return
	}

	if err := h.db.ImportUserData(r.Context(), string(body)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "import complete"})
}
