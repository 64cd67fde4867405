package service

import (
	"context"
	"errors"

	"jobsite/internal/api/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ProfileStore resolves the authorization profile of a user.
type ProfileStore interface {
	FindByID(ctx context.Context, id string) (models.Profile, error)
}

// Guard decides whether the caller in a context may mutate job data. The
// decision is recomputed on every call.
type Guard struct {
	profiles ProfileStore
	logger   zerolog.Logger
}

func NewGuard(profiles ProfileStore, logger zerolog.Logger) *Guard {
	return &Guard{profiles: profiles, logger: logger}
}

// IsAdmin is true only for an authenticated caller whose profile has
// is_admin set to true. Every failure counts as "not admin".
func (slf *Guard) IsAdmin(ctx context.Context) bool {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return false
	}

	profile, err := slf.profiles.FindByID(ctx, identity.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slf.logger.Warn().Err(err).Str("userId", identity.UserID).Msg("Profile lookup failed, denying admin access")
		}
		return false
	}

	return profile.IsAdmin != nil && *profile.IsAdmin
}

// Require returns ErrUnauthorized unless IsAdmin holds.
func (slf *Guard) Require(ctx context.Context) error {
	if !slf.IsAdmin(ctx) {
		return ErrUnauthorized
	}
	return nil
}
