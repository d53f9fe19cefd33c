package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/davidsnrn/fincontrol/internal/core"
	"github.com/davidsnrn/fincontrol/internal/storage"
)

// ProfileService owns the user profile, the session flag and the
// factory reset.
type ProfileService struct {
	store *storage.Store
}

func NewProfileService(store *storage.Store) *ProfileService {
	return &ProfileService{store: store}
}

func (s *ProfileService) Profile(ctx context.Context) (core.UserProfile, error) {
	return s.store.Profile(ctx)
}

func (s *ProfileService) Save(ctx context.Context, p core.UserProfile) error {
	if err := s.store.SaveProfile(ctx, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	slog.InfoContext(ctx, "Profile saved", "name", p.Name, "theme", p.Theme)
	return nil
}

func (s *ProfileService) Authenticated(ctx context.Context) (bool, error) {
	return s.store.Authenticated(ctx)
}

func (s *ProfileService) SetAuthenticated(ctx context.Context, v bool) error {
	return s.store.SetAuthenticated(ctx, v)
}

// Reset wipes every collection. The next read of each collection seeds
// the defaults again.
func (s *ProfileService) Reset(ctx context.Context) error {
	if err := s.store.ResetAll(ctx); err != nil {
		return fmt.Errorf("reset collections: %w", err)
	}
	slog.WarnContext(ctx, "All collections reset to defaults")
	return nil
}
