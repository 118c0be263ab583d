package localdb

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/nutrition-tracker/internal/apperror"
	"github.com/sakif/nutrition-tracker/internal/model"
)

func TestCreateUserLowercasesEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user, err := db.CreateUser(ctx, NewUser{Email: "Alice@Example.COM", Name: "Alice"}, "pw")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if user.Email != "alice@example.com" {
		t.Errorf("Email = %q, want lower-cased %q", user.Email, "alice@example.com")
	}
	if user.ID == "" {
		t.Error("CreateUser() did not assign an ID")
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() || user.LastLoginAt.IsZero() {
		t.Error("CreateUser() did not stamp timestamps")
	}
	if user.Role != model.RoleUser {
		t.Errorf("Role = %q, want default %q", user.Role, model.RoleUser)
	}
}

func TestCreateUserDuplicateEmailAnyCasing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "a@x.com")

	// Same address, different casing — must still collide.
	_, err := db.CreateUser(ctx, NewUser{Email: "A@X.COM"}, "other")
	if !errors.Is(err, apperror.ErrDuplicateEmail) {
		t.Errorf("CreateUser() error = %v, want ErrDuplicateEmail", err)
	}

	// The failed signup must not have grown the table.
	if got := len(db.loadUsers(ctx)); got != 1 {
		t.Errorf("user table has %d rows after failed signup, want 1", got)
	}
}

func TestCreateUserCascadesProfileAndStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "a@x.com")

	profile, err := db.GetProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetProfile() after signup error = %v", err)
	}
	if profile.ActivityLevel != model.ActivityModerate {
		t.Errorf("default profile ActivityLevel = %q, want moderate", profile.ActivityLevel)
	}

	stats, err := db.GetStats(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetStats() after signup error = %v", err)
	}
	if !stats.HasAchievement(model.AchievementWelcome) {
		t.Error("initial stats missing the welcome achievement")
	}
	if len(stats.WeightProgress) != 1 {
		t.Fatalf("WeightProgress has %d samples, want the single signup sample", len(stats.WeightProgress))
	}
	if stats.WeightProgress[0].WeightKg != 80 {
		t.Errorf("signup weight sample = %v, want 80", stats.WeightProgress[0].WeightKg)
	}
}

func TestLoginCaseInsensitiveEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created := createTestUser(t, db, "a@x.com") // password pw123

	// Concrete scenario from the product requirements: login with the same
	// address upper-cased must succeed and resolve to the same account.
	user, err := db.Login(ctx, "A@X.COM", "pw123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("Login() returned user %s, want %s", user.ID, created.ID)
	}

	// Login sets the session pointer.
	current := db.CurrentUser(ctx)
	if current == nil || current.ID != created.ID {
		t.Errorf("CurrentUser() after login = %+v, want the logged-in user", current)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "a@x.com")

	_, unknownErr := db.Login(ctx, "nobody@x.com", "pw123")
	_, wrongPwErr := db.Login(ctx, "a@x.com", "wrong")

	if !errors.Is(unknownErr, apperror.ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongPwErr, apperror.ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongPwErr)
	}

	// The user-visible message must be identical for both — no leaking which
	// half of the check failed.
	if unknownErr.Error() != wrongPwErr.Error() {
		t.Errorf("error messages differ: %q vs %q", unknownErr.Error(), wrongPwErr.Error())
	}

	// Failed logins must not set the session.
	if db.CurrentUser(ctx) != nil {
		t.Error("CurrentUser() set after failed login")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "a@x.com")
	if _, err := db.Login(ctx, "a@x.com", "pw123"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	db.Logout(ctx)

	if db.CurrentUser(ctx) != nil {
		t.Error("CurrentUser() non-nil after logout")
	}
}

func TestUpdateUserMergesPartialFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "a@x.com")

	newWeight := 78.5
	updated, err := db.UpdateUser(ctx, user.ID, model.UserUpdate{WeightKg: &newWeight})
	if err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}

	if updated.WeightKg != 78.5 {
		t.Errorf("WeightKg = %v, want 78.5", updated.WeightKg)
	}
	// Untouched fields keep their stored values.
	if updated.Name != "Test User" || updated.HeightCm != 180 {
		t.Errorf("unrelated fields changed: name=%q height=%v", updated.Name, updated.HeightCm)
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.UpdateUser(context.Background(), "missing-id", model.UserUpdate{})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateUser() error = %v, want ErrNotFound", err)
	}
}

func TestUpdateUserRefreshesSession(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "a@x.com")
	if _, err := db.Login(ctx, "a@x.com", "pw123"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	newName := "Renamed"
	if _, err := db.UpdateUser(ctx, user.ID, model.UserUpdate{Name: &newName}); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}

	// The session copy must not go stale.
	current := db.CurrentUser(ctx)
	if current == nil || current.Name != "Renamed" {
		t.Errorf("CurrentUser().Name = %v, want session refreshed to %q", current, "Renamed")
	}
}

func TestUpdateOtherUserLeavesSessionAlone(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "a@x.com")
	other := createTestUser(t, db, "b@x.com")

	if _, err := db.Login(ctx, "a@x.com", "pw123"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	newName := "Someone Else"
	if _, err := db.UpdateUser(ctx, other.ID, model.UserUpdate{Name: &newName}); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}

	current := db.CurrentUser(ctx)
	if current == nil || current.Email != "a@x.com" {
		t.Errorf("CurrentUser() = %+v, want the originally logged-in user", current)
	}
}
