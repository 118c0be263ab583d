package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/nutrition-tracker/internal/apperror"
	"github.com/sakif/nutrition-tracker/internal/localdb"
	"github.com/sakif/nutrition-tracker/internal/model"
)

// ProfileService manages one user's profile and stats, in the same cached
// session-object shape as MealService. Not safe for concurrent use.
type ProfileService struct {
	db     *localdb.DB
	logger *slog.Logger
	userID string

	profile *model.UserProfile
	stats   *model.UserStats
	loaded  bool
}

// NewProfileService creates the profile accessor for one user.
func NewProfileService(db *localdb.DB, logger *slog.Logger, userID string) *ProfileService {
	return &ProfileService{db: db, logger: logger, userID: userID}
}

// Load fetches the profile and stats into the cache. A user without a
// profile or stats record simply caches nil — missing cascade records are
// a legitimate state, not an error.
func (s *ProfileService) Load(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	profile, err := s.db.GetProfile(ctx, s.userID)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return fmt.Errorf("service/profile: loading profile: %w", err)
	}
	s.profile = profile

	stats, err := s.db.GetStats(ctx, s.userID)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return fmt.Errorf("service/profile: loading stats: %w", err)
	}
	s.stats = stats

	s.loaded = true
	return nil
}

// Profile returns the cached profile (nil if the user has none).
func (s *ProfileService) Profile() *model.UserProfile {
	return s.profile
}

// Stats returns the cached stats record (nil if the user has none).
func (s *ProfileService) Stats() *model.UserStats {
	return s.stats
}

// Save upserts the profile and refreshes the cache with the stored copy —
// optimistic in the sense that no refetch round-trip happens; the upsert
// result IS the new cache value.
func (s *ProfileService) Save(ctx context.Context, profile model.UserProfile) {
	s.profile = s.db.UpsertProfile(ctx, s.userID, profile)

	s.logger.Debug("profile saved via service", slog.String("userID", s.userID))
}

// RefreshStats refetches only the stats record: meal mutations made through
// a MealService change stats behind this cache's back.
func (s *ProfileService) RefreshStats(ctx context.Context) {
	stats, err := s.db.GetStats(ctx, s.userID)
	if err != nil {
		s.stats = nil
		return
	}
	s.stats = stats
}
