package services

import (
	"context"
	"testing"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		profile *models.UserProfile
		user    *models.User
		want    string
	}{
		{"profile name wins", &models.UserProfile{DisplayName: "Ana B."}, &models.User{Name: "Ana", Email: "a@x.io"}, "Ana B."},
		{"account name", &models.UserProfile{}, &models.User{Name: "Ana", Email: "a@x.io"}, "Ana"},
		{"email local part", nil, &models.User{Email: "ana.b@x.io"}, "ana.b"},
		{"fallback", nil, &models.User{}, "User"},
		{"no user", nil, nil, "User"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.profile, tt.user))
		})
	}
}

func TestIdentity_ResolveCreatesProfileAndCaches(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.createUser(t, "Ana", "ana@example.com")

	identity, err := env.identity.Resolve(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", identity.DisplayName)
	assert.Equal(t, models.ThemeAuto, identity.Theme)
	assert.Equal(t, int64(1), env.count(t, &models.UserProfile{}))
	assert.True(t, env.redis.Exists("identity:1"))

	_, err = env.identity.Resolve(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProfile_UpdateInvalidatesIdentity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.createUser(t, "Ana", "ana@example.com")

	_, err := env.identity.Resolve(ctx, ana.ID)
	require.NoError(t, err)

	name, theme, bio := "Ana Bride", models.ThemeDark, "  getting married  "
	profile, err := env.profiles.UpdateProfile(ctx, ana.ID, &models.UpdateProfileRequest{
		DisplayName: &name,
		Theme:       &theme,
		Bio:         &bio,
		SocialLinks: &models.SocialLinks{Instagram: "@ana"},
	})
	require.NoError(t, err)
	assert.Equal(t, "getting married", profile.Bio)

	identity, err := env.identity.Resolve(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Bride", identity.DisplayName)
	assert.Equal(t, models.ThemeDark, identity.Theme)

	neon := "neon"
	_, err = env.profiles.UpdateProfile(ctx, ana.ID, &models.UpdateProfileRequest{Theme: &neon})
	assert.ErrorIs(t, err, ErrInvalidTheme)
}

func TestProfile_UploadAvatar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.createUser(t, "Ana", "ana@example.com")

	profile, err := env.profiles.UploadAvatar(ctx, ana.ID, fileUpload("me.png", "png"))
	require.NoError(t, err)
	assert.Contains(t, profile.AvatarURL, "https://cdn.test/avatars/avatars/1_")
	assert.Len(t, env.avatars.objects, 1)

	identity, err := env.identity.Resolve(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.AvatarURL, identity.AvatarURL)

	_, err = env.profiles.UploadAvatar(ctx, ana.ID, nil)
	assert.ErrorIs(t, err, ErrNoFile)
}
