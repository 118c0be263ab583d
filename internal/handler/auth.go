package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/nutrition-tracker/internal/auth"
	"github.com/sakif/nutrition-tracker/internal/localdb"
	"github.com/sakif/nutrition-tracker/internal/model"
)

// AuthHandler manages registration, login, and session management.
//
// HANDLER RESPONSIBILITIES:
//   - HandleRegister → create the account, issue a JWT cookie
//   - HandleLogin    → verify credentials, issue a JWT cookie
//   - HandleLogout   → clear the cookie and the store's session pointer
//   - HandleMe       → return the currently logged-in user's record
//   - HandleUpdateMe → partial update of the logged-in user's record
//
// TWO SESSION LAYERS:
// The JWT cookie carries the user id between HTTP requests. The store also
// keeps its own session pointer (set on login, cleared on logout) which the
// export path reads. Login and logout keep both in sync.
type AuthHandler struct {
	db     *localdb.DB
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler. All dependencies are injected here;
// the handler has no knowledge of how they're constructed.
func NewAuthHandler(db *localdb.DB, tokens *auth.TokenService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens, logger: logger}
}

// registerRequest is the expected body for POST /api/auth/register.
type registerRequest struct {
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Name     string       `json:"name"`
	Age      int          `json:"age"`
	Gender   model.Gender `json:"gender"`
	HeightCm float64      `json:"heightCm"`
	WeightKg float64      `json:"weightKg"`
	WaistCm  *float64     `json:"waistCm,omitempty"`
}

// loginRequest is the expected body for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a new account and logs it in.
//
// HTTP: POST /api/auth/register
//
// The only rejected input is a duplicate email (409). Everything else is
// stored as given — validation of ranges and formats is the frontend's job,
// the server's contract is durability.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("register: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_json", Message: "Invalid JSON body"})
		return
	}

	user, err := h.db.CreateUser(r.Context(), localdb.NewUser{
		Email:    req.Email,
		Name:     req.Name,
		Age:      req.Age,
		Gender:   req.Gender,
		HeightCm: req.HeightCm,
		WeightKg: req.WeightKg,
		WaistCm:  req.WaistCm,
	}, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	// Registration doubles as login: verify through the normal path so the
	// store's session pointer and last-login stamp are set the same way a
	// plain login would set them.
	user, err = h.db.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	if !h.issueCookie(w, user.ID) {
		return
	}

	h.logger.Info("user registered", slog.String("userID", user.ID), slog.String("email", user.Email))
	writeJSON(w, http.StatusCreated, user)
}

// HandleLogin verifies credentials and issues the session cookie.
//
// HTTP: POST /api/auth/login
//
// A wrong email and a wrong password both produce the same 401 with
// "Invalid email or password" — the response never reveals whether the
// account exists.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("login: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_json", Message: "Invalid JSON body"})
		return
	}

	user, err := h.db.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	if !h.issueCookie(w, user.ID) {
		return
	}

	h.logger.Info("user logged in", slog.String("userID", user.ID))
	writeJSON(w, http.StatusOK, user)
}

// HandleLogout clears the JWT cookie and the store's session pointer.
//
// HTTP: POST /api/auth/logout
//
// WHY POST AND NOT GET?
// Logout is a state-changing operation. Using GET would be vulnerable to
// CSRF and to browsers pre-fetching the URL. POST ensures intentional action.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.db.Logout(r.Context())

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // tells the browser to delete the cookie immediately
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleMe returns the currently authenticated user's record.
//
// HTTP: GET /api/me
// Auth: Required (RequireAuth middleware sets userID in context)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, user)
}

// HandleUpdateMe applies a partial update to the logged-in user.
//
// HTTP: PATCH /api/me
//
// Only fields present in the body change; omitted fields keep their stored
// values. Email and role are not updatable through this route.
func (h *AuthHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	var update model.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.logger.Warn("update me: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_json", Message: "Invalid JSON body"})
		return
	}

	user, err := h.db.UpdateUser(r.Context(), userID, update)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// issueCookie generates a JWT for the user and sets it as the session cookie.
// Returns false (after writing a 500) if token generation fails.
//
// HttpOnly = JavaScript cannot read this cookie (XSS protection).
// SameSite=Lax = cookie is sent on top-level navigations but not cross-site POSTs.
// Secure should be true in production (HTTPS only). We leave it false for local dev.
func (h *AuthHandler) issueCookie(w http.ResponseWriter, userID string) bool {
	tokenStr, err := h.tokens.Generate(userID)
	if err != nil {
		h.logger.Error("token generation failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "An internal error occurred"})
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    tokenStr,
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Secure: true, // Uncomment in production (requires HTTPS)
	})
	return true
}
