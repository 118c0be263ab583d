package localdb

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rs/xid"
	"github.com/sakif/nutrition-tracker/internal/apperror"
	"github.com/sakif/nutrition-tracker/internal/model"
)

// NewUser carries the signup fields. The password travels as a separate
// argument to CreateUser so it can never end up serialized inside a User.
type NewUser struct {
	Email    string
	Name     string
	Age      int
	Gender   model.Gender
	HeightCm float64
	WeightKg float64
	WaistCm  *float64
	Role     model.Role
}

// CreateUser registers a new account.
//
// The ONLY failure is a duplicate email, compared case-insensitively —
// "A@X.com" collides with "a@x.com". The stored email is always the
// lower-cased form, so every later lookup can lower-case once and compare
// with ==.
//
// SIGNUP CASCADE:
// Creating a user also creates their default profile and an initial stats
// record (welcome achievement + one weight-progress sample from the signup
// weight). The three regions are written one after another — there is no
// transaction tying them together, matching the rest of the store.
func (db *DB) CreateUser(ctx context.Context, nu NewUser, password string) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(nu.Email))

	users := db.loadUsers(ctx)
	for _, u := range users {
		if u.Email == email {
			return nil, apperror.DuplicateEmail(nu.Email)
		}
	}

	now := db.now()
	role := nu.Role
	if role == "" {
		role = model.RoleUser
	}

	user := model.User{
		ID:          xid.New().String(),
		Email:       email,
		Name:        nu.Name,
		Age:         nu.Age,
		Gender:      nu.Gender,
		HeightCm:    nu.HeightCm,
		WeightKg:    nu.WeightKg,
		WaistCm:     nu.WaistCm,
		Role:        role,
		CreatedAt:   now,
		UpdatedAt:   now,
		LastLoginAt: now,
	}

	users = append(users, user)
	db.saveUsers(ctx, users)

	// Credential side-table — kept apart from the users region so exporting
	// a User can never leak the secret.
	passwords := db.loadPasswords(ctx)
	passwords[user.ID] = password
	db.savePasswords(ctx, passwords)

	// Cascade: default profile + initial stats.
	profiles := db.loadProfiles(ctx)
	profiles = append(profiles, model.DefaultProfile(user.ID))
	db.saveProfiles(ctx, profiles)

	stats := db.loadStats(ctx)
	stats = append(stats, model.InitialStats(user.ID, user.WeightKg, now))
	db.saveStats(ctx, stats)

	db.logger.Info("user created",
		slog.String("userID", user.ID),
		slog.String("email", user.Email),
	)

	return &user, nil
}

// Login verifies email + password and, on success, stamps lastLoginAt and
// points the session at this user.
//
// ONE GENERIC ERROR FOR BOTH FAILURE MODES:
// Unknown email and wrong password return the identical InvalidCredentials
// error. Distinguishing them would tell an attacker which emails have
// accounts here.
//
// The password comparison is a plain == against the stored plaintext.
// Inherited behaviour, preserved as-is (see the README warning).
func (db *DB) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	users := db.loadUsers(ctx)
	idx := -1
	for i, u := range users {
		if u.Email == email {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperror.InvalidCredentials()
	}

	passwords := db.loadPasswords(ctx)
	if passwords[users[idx].ID] != password {
		return nil, apperror.InvalidCredentials()
	}

	users[idx].LastLoginAt = db.now()
	db.saveUsers(ctx, users)

	user := users[idx]
	db.setSession(ctx, &user)

	db.logger.Info("user logged in", slog.String("userID", user.ID))

	return &user, nil
}

// Logout clears the session pointer. Safe to call when nobody is logged in.
func (db *DB) Logout(ctx context.Context) {
	db.store.Remove(ctx, keySession)
}

// CurrentUser returns the session user, or nil when nobody is logged in.
//
// The session is an explicit region of the store (one serialized User under
// its own key), not an in-memory global — restarting the process restores
// the same logged-in user, exactly like a browser reload would.
func (db *DB) CurrentUser(ctx context.Context) *model.User {
	var user *model.User
	db.store.Get(ctx, keySession, &user)
	return user
}

// setSession points the session at the given user.
func (db *DB) setSession(ctx context.Context, user *model.User) {
	db.store.Set(ctx, keySession, user)
}

// GetUserByID returns the user with the given id, or ErrNotFound.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	for _, u := range db.loadUsers(ctx) {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, apperror.NotFound("user", id)
}

// UpdateUser applies a partial update to the user with the given id.
//
// The update command's nil fields leave stored values alone; non-nil fields
// win (see model.UserUpdate). UpdatedAt is bumped on every successful call,
// even if the command was empty.
//
// SESSION REFRESH:
// If the updated user is the current session user, the session pointer is
// rewritten to the merged record. Without this, the "current user" copy
// would go stale and an export taken right after an update would carry the
// old weight/height.
func (db *DB) UpdateUser(ctx context.Context, id string, update model.UserUpdate) (*model.User, error) {
	users := db.loadUsers(ctx)

	idx := -1
	for i, u := range users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperror.NotFound("user", id)
	}

	update.Apply(&users[idx])
	users[idx].UpdatedAt = db.now()
	db.saveUsers(ctx, users)

	user := users[idx]
	if current := db.CurrentUser(ctx); current != nil && current.ID == id {
		db.setSession(ctx, &user)
	}

	db.logger.Info("user updated", slog.String("userID", id))

	return &user, nil
}
