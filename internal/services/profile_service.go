package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/Ayam7273/Eventmories/internal/repositories"
	"github.com/Ayam7273/Eventmories/pkg/metrics"
	"github.com/Ayam7273/Eventmories/pkg/storage"
)

type ProfileService struct {
	profiles repositories.ProfileRepository
	identity *IdentityService
	avatars  storage.Bucket
	now      func() time.Time
}

func NewProfileService(profiles repositories.ProfileRepository, identity *IdentityService, avatars storage.Bucket) *ProfileService {
	return &ProfileService{profiles: profiles, identity: identity, avatars: avatars, now: time.Now}
}

// GetProfile returns the user's profile, creating it on first access.
func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	if _, err := s.identity.Resolve(ctx, userID); err != nil {
		return nil, err
	}
	return s.profiles.GetProfile(ctx, userID)
}

// UpdateProfile applies the non-nil fields of req.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint, req *models.UpdateProfileRequest) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Theme != nil {
		switch *req.Theme {
		case models.ThemeLight, models.ThemeDark, models.ThemeAuto:
			profile.Theme = *req.Theme
		default:
			return nil, ErrInvalidTheme
		}
	}
	if req.DisplayName != nil {
		profile.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.Bio != nil {
		profile.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = strings.TrimSpace(*req.AvatarURL)
	}
	if req.SocialLinks != nil {
		profile.SocialLinks = *req.SocialLinks
	}

	if err := s.profiles.UpdateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.identity.Invalidate(ctx, userID)
	return profile, nil
}

// UploadAvatar stores a new avatar image and points the profile at it.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID uint, file *Upload) (*models.UserProfile, error) {
	if file == nil {
		return nil, ErrNoFile
	}
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	path := storage.ObjectPath("avatars", userID, s.now(), file.Filename)
	if err := s.avatars.Upload(ctx, path, file.Body, file.ContentType); err != nil {
		metrics.MediaUploadFailures.WithLabelValues("avatars").Inc()
		return nil, fmt.Errorf("upload avatar: %w", err)
	}
	profile.AvatarURL = s.avatars.PublicURL(path)

	if err := s.profiles.UpdateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.identity.Invalidate(ctx, userID)
	return profile, nil
}
