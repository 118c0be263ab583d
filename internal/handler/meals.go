package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/nutrition-tracker/internal/auth"
	"github.com/sakif/nutrition-tracker/internal/localdb"
	"github.com/sakif/nutrition-tracker/internal/model"
)

// MealHandler manages the meal-logging endpoints.
//
// OWNERSHIP:
// Every operation scopes to the authenticated user from the request context.
// A meal id belonging to another user behaves exactly like a nonexistent
// one — deletion requires the (id, userID) pair to match.
type MealHandler struct {
	db     *localdb.DB
	logger *slog.Logger
}

// NewMealHandler creates a MealHandler.
func NewMealHandler(db *localdb.DB, logger *slog.Logger) *MealHandler {
	return &MealHandler{db: db, logger: logger}
}

// HandleList returns the authenticated user's meals.
//
// HTTP: GET /api/meals
// HTTP: GET /api/meals?date=2024-06-15 (filter to one day)
//
// An unknown user or an empty day both return [] — listing never errors.
func (h *MealHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	var meals []model.Meal
	if date := r.URL.Query().Get("date"); date != "" {
		meals = h.db.GetMealsByDate(r.Context(), userID, date)
	} else {
		meals = h.db.GetMealsByUser(r.Context(), userID)
	}
	if meals == nil {
		meals = []model.Meal{} // encode as [], not null
	}

	writeJSON(w, http.StatusOK, meals)
}

// HandleCreate logs a new meal for the authenticated user.
//
// HTTP: POST /api/meals
// REQUEST BODY: a meal object — type, date, time, foods, totalNutrition, mood, notes
//
// The server assigns id, userId, and createdAt; any caller-supplied values
// for those fields are overwritten. The nutrition totals are stored as given
// — the server does not re-derive them from the food list.
func (h *MealHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	var meal model.Meal
	if err := json.NewDecoder(r.Body).Decode(&meal); err != nil {
		h.logger.Warn("create meal: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_json", Message: "Invalid JSON body"})
		return
	}

	meal.UserID = userID
	if err := h.db.CreateMeal(r.Context(), &meal); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, meal)
}

// HandleDelete removes one of the authenticated user's meals.
//
// HTTP: DELETE /api/meals/{id}
//
// 404 when the id doesn't exist OR belongs to another user — the response
// doesn't distinguish the two cases.
func (h *MealHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "Meal ID is required"})
		return
	}

	if err := h.db.DeleteMeal(r.Context(), id, userID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
