// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Role distinguishes regular users from admins.
// Admins get access to the imported-submissions review area; nothing else differs.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Gender is stored as a plain string enum. It only feeds the calorie-target
// formula (Mifflin-St Jeor), which branches on male/female.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// User represents a registered account plus its biometric profile.
//
// WHY EMAIL AS THE NATURAL KEY?
// Users sign up with email + password, so email is the unique handle
// (compared case-insensitively, stored lower-cased). We still generate our
// own internal string ID (xid) so that meals, profiles, and stats can
// reference a stable key that survives an email change.
//
// WHY WaistCm *float64 (a pointer)?
// Waist circumference is genuinely optional — most users never enter it.
// A pointer lets us distinguish "not provided" (nil) from "zero" and keeps
// the field out of JSON via omitempty.
//
// NOTE ON PASSWORDS:
// The password is deliberately NOT a field on User. Credentials live in a
// separate password-map region (see localdb) so a User can be serialized
// into an export document without ever dragging the secret along with it.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"` // always stored lower-cased
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Gender      Gender    `json:"gender"`
	HeightCm    float64   `json:"heightCm"`
	WeightKg    float64   `json:"weightKg"`
	WaistCm     *float64  `json:"waistCm,omitempty"` // optional measurement
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

// UserUpdate is the partial-update command for a User.
//
// WHY POINTER FIELDS?
// Each field is a pointer so the caller can express three-valued intent:
// nil means "leave the stored value alone", a non-nil pointer means
// "overwrite with this value" (including a zero value like age 0).
// This replaces a loose duck-typed partial-object merge — the set of
// patchable fields is fixed and visible in one place.
// Email, Role, and the timestamps are intentionally NOT patchable here.
type UserUpdate struct {
	Name     *string `json:"name,omitempty"`
	Age      *int    `json:"age,omitempty"`
	Gender   *Gender `json:"gender,omitempty"`
	HeightCm *float64 `json:"heightCm,omitempty"`
	WeightKg *float64 `json:"weightKg,omitempty"`
	WaistCm  *float64 `json:"waistCm,omitempty"`
}

// Apply merges the update into u. New value wins; nil leaves the field as-is.
func (up UserUpdate) Apply(u *User) {
	if up.Name != nil {
		u.Name = *up.Name
	}
	if up.Age != nil {
		u.Age = *up.Age
	}
	if up.Gender != nil {
		u.Gender = *up.Gender
	}
	if up.HeightCm != nil {
		u.HeightCm = *up.HeightCm
	}
	if up.WeightKg != nil {
		u.WeightKg = *up.WeightKg
	}
	if up.WaistCm != nil {
		u.WaistCm = up.WaistCm
	}
}
