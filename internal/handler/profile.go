package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/nutrition-tracker/internal/auth"
	"github.com/sakif/nutrition-tracker/internal/calc"
	"github.com/sakif/nutrition-tracker/internal/localdb"
	"github.com/sakif/nutrition-tracker/internal/model"
)

// ProfileHandler serves the profile, statistics, and health-report endpoints.
type ProfileHandler struct {
	db     *localdb.DB
	logger *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(db *localdb.DB, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{db: db, logger: logger}
}

// HandleGet returns the authenticated user's profile.
//
// HTTP: GET /api/profile
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	profile, err := h.db.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandlePut replaces the authenticated user's profile.
//
// HTTP: PUT /api/profile
//
// Upsert semantics: the stored profile is replaced wholesale with the body
// (userId pinned to the session user). There is no failure path beyond bad
// JSON — a missing profile is created, an existing one overwritten.
func (h *ProfileHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	var profile model.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		h.logger.Warn("update profile: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_json", Message: "Invalid JSON body"})
		return
	}

	saved := h.db.UpsertProfile(r.Context(), userID, profile)
	writeJSON(w, http.StatusOK, saved)
}

// HandleStats returns the authenticated user's derived statistics.
//
// HTTP: GET /api/stats
//
// The stats record is maintained incrementally as meals are logged and
// deleted — this endpoint only reads it, it never recomputes.
func (h *ProfileHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	stats, err := h.db.GetStats(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// healthReport is the response for GET /api/health-report.
type healthReport struct {
	BMI           float64             `json:"bmi"`
	BMICategory   string              `json:"bmiCategory"`
	CalorieTarget float64             `json:"calorieTarget"`
	Intake        calc.IntakeAnalysis `json:"intake"`
}

// HandleHealthReport computes the user's BMI, daily calorie target, and
// today's intake analysis in one response.
//
// HTTP: GET /api/health-report
// HTTP: GET /api/health-report?date=2024-06-15 (analyse a specific day)
//
// Everything here is derived on the fly from the user record, profile, and
// the day's meals — nothing is persisted.
func (h *ProfileHandler) HandleHealthReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	user, err := h.db.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	bmi, err := calc.BMI(user.HeightCm, user.WeightKg)
	if err != nil {
		// Implausible stored measurements — a calc error, not a server fault.
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "validation_error", Message: err.Error()})
		return
	}

	// Activity level comes from the profile; fall back to the default
	// (moderate) when the profile record is somehow missing.
	activity := model.ActivityModerate
	if profile, err := h.db.GetProfile(r.Context(), userID); err == nil {
		activity = profile.ActivityLevel
	}

	target := calc.DailyCalorieTarget(user.WeightKg, user.HeightCm, user.Age, user.Gender, activity)

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	meals := h.db.GetMealsByDate(r.Context(), userID, date)

	writeJSON(w, http.StatusOK, healthReport{
		BMI:           bmi,
		BMICategory:   calc.BMICategory(bmi),
		CalorieTarget: target,
		Intake:        calc.AnalyzeIntake(meals, target),
	})
}
