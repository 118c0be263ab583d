// Package localdb is the persistence core: a small relational-looking
// database (users, meals, profiles, stats, sleep entries) emulated on top of
// the flat key-value store in internal/storage.
//
// HOW THE "TABLES" WORK:
// Each table is one JSON array (or map) stored under one fixed key. There is
// no per-record storage and no query index — every read is a full-array scan
// and every write is a full-array rewrite (load the region, mutate the Go
// copy, write the region back). That is a design choice for this scale, not
// an oversight: the data set is one household's meal log, and correctness
// relies on a single active process. Two concurrent writers would clobber
// each other (last write wins) — documented behaviour, deliberately not
// patched over with locking.
//
// WHAT THE TABLES DON'T DO:
// No referential integrity (a meal can reference a deleted user), no
// transactions spanning regions, no validation of caller-supplied nutrition
// totals. The repositories preserve those semantics on purpose; consumers
// that need guarantees build them on top.
package localdb

import (
	"context"
	"log/slog"
	"time"

	"github.com/sakif/nutrition-tracker/internal/model"
	"github.com/sakif/nutrition-tracker/internal/storage"
)

// Region keys. Every logical table is one independent JSON document under
// one of these keys; there is no cross-region transaction.
const (
	keyUsers       = "nutritrack_users"
	keySession     = "nutritrack_current_user"
	keyMeals       = "nutritrack_meals"
	keyProfiles    = "nutritrack_profiles"
	keyStats       = "nutritrack_user_stats"
	keyPasswords   = "nutritrack_passwords"
	keyInitialized = "nutritrack_initialized"
	keySleep       = "nutritrack_sleep_entries"
	keySubmissions = "nutritrack_imported_submissions"
)

// DB is the local database. It owns no state of its own — every operation
// reads the relevant region from the store, mutates it, and writes it back,
// so the store is always the single source of truth.
//
// The now field is the clock. It exists because the streak algorithm needs
// "today" and tests need to pin it down; production code never touches it.
type DB struct {
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

// New creates a DB over the given store.
func New(store storage.Store, logger *slog.Logger) *DB {
	return &DB{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// newWithClock creates a DB with a fixed clock.
// Unexported helper used by the tests in this package.
func newWithClock(store storage.Store, logger *slog.Logger, now func() time.Time) *DB {
	return &DB{store: store, logger: logger, now: now}
}

// ===== region load/save helpers =====
//
// Get never fails (missing or corrupt regions degrade to the zero value we
// pass in), so the load helpers have no error returns — an empty slice IS
// the empty table.

func (db *DB) loadUsers(ctx context.Context) []model.User {
	var users []model.User
	db.store.Get(ctx, keyUsers, &users)
	return users
}

func (db *DB) saveUsers(ctx context.Context, users []model.User) {
	db.store.Set(ctx, keyUsers, users)
}

func (db *DB) loadMeals(ctx context.Context) []model.Meal {
	var meals []model.Meal
	db.store.Get(ctx, keyMeals, &meals)
	return meals
}

func (db *DB) saveMeals(ctx context.Context, meals []model.Meal) {
	db.store.Set(ctx, keyMeals, meals)
}

func (db *DB) loadProfiles(ctx context.Context) []model.UserProfile {
	var profiles []model.UserProfile
	db.store.Get(ctx, keyProfiles, &profiles)
	return profiles
}

func (db *DB) saveProfiles(ctx context.Context, profiles []model.UserProfile) {
	db.store.Set(ctx, keyProfiles, profiles)
}

func (db *DB) loadStats(ctx context.Context) []model.UserStats {
	var stats []model.UserStats
	db.store.Get(ctx, keyStats, &stats)
	return stats
}

func (db *DB) saveStats(ctx context.Context, stats []model.UserStats) {
	db.store.Set(ctx, keyStats, stats)
}

// loadPasswords returns the credential side-table: user ID → plaintext
// password. Plaintext is inherited, documented behaviour (see the README
// warning) — this is a client-style local store, not a hardened auth system.
func (db *DB) loadPasswords(ctx context.Context) map[string]string {
	passwords := make(map[string]string)
	db.store.Get(ctx, keyPasswords, &passwords)
	return passwords
}

func (db *DB) savePasswords(ctx context.Context, passwords map[string]string) {
	db.store.Set(ctx, keyPasswords, passwords)
}

func (db *DB) loadSleep(ctx context.Context) []model.SleepEntry {
	var entries []model.SleepEntry
	db.store.Get(ctx, keySleep, &entries)
	return entries
}

func (db *DB) saveSleep(ctx context.Context, entries []model.SleepEntry) {
	db.store.Set(ctx, keySleep, entries)
}

func (db *DB) loadSubmissions(ctx context.Context) []model.ImportedSubmission {
	var subs []model.ImportedSubmission
	db.store.Get(ctx, keySubmissions, &subs)
	return subs
}

func (db *DB) saveSubmissions(ctx context.Context, subs []model.ImportedSubmission) {
	db.store.Set(ctx, keySubmissions, subs)
}
