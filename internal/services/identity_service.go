package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/Ayam7273/Eventmories/internal/repositories"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// IdentityResolver answers "who is acting" for a user id.
type IdentityResolver interface {
	Resolve(ctx context.Context, userID uint) (*models.Identity, error)
}

type IdentityService struct {
	users    repositories.UserRepository
	profiles repositories.ProfileRepository
	cache    repositories.IdentityCacheRepository
}

func NewIdentityService(
	users repositories.UserRepository,
	profiles repositories.ProfileRepository,
	cache repositories.IdentityCacheRepository,
) *IdentityService {
	return &IdentityService{users: users, profiles: profiles, cache: cache}
}

// Resolve loads the account and its profile, creating the profile on first use.
// Cache failures are logged and fall through to the database.
func (s *IdentityService) Resolve(ctx context.Context, userID uint) (*models.Identity, error) {
	if cached, err := s.cache.Get(ctx, userID); err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("identity cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	profile, err := s.profiles.EnsureProfile(ctx, &models.UserProfile{
		UserID:      user.ID,
		DisplayName: user.Name,
		Theme:       models.ThemeAuto,
	})
	if err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}

	identity := BuildIdentity(user, profile)
	if err := s.cache.Set(ctx, identity); err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("identity cache write failed")
	}
	return identity, nil
}

// Invalidate drops the cached identity so the next Resolve sees profile edits.
func (s *IdentityService) Invalidate(ctx context.Context, userID uint) {
	if err := s.cache.Delete(ctx, userID); err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("identity cache delete failed")
	}
}

func BuildIdentity(user *models.User, profile *models.UserProfile) *models.Identity {
	identity := &models.Identity{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: DisplayName(profile, user),
		Theme:       models.ThemeAuto,
	}
	if profile != nil {
		identity.AvatarURL = profile.AvatarURL
		if profile.Theme != "" {
			identity.Theme = profile.Theme
		}
	}
	return identity
}

// DisplayName picks the profile name, then the account name, then the email
// local part, then "User".
func DisplayName(profile *models.UserProfile, user *models.User) string {
	if profile != nil {
		if name := strings.TrimSpace(profile.DisplayName); name != "" {
			return name
		}
	}
	if user == nil {
		return "User"
	}
	if name := strings.TrimSpace(user.Name); name != "" {
		return name
	}
	if local, _, _ := strings.Cut(user.Email, "@"); local != "" {
		return local
	}
	return "User"
}
