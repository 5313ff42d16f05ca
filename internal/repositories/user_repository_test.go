package repositories

import (
	"context"
	"testing"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	uid := "firebase-uid-1"
	user := &models.User{Name: "Ana", Email: "ana@example.com", FirebaseUID: &uid}
	require.NoError(t, repo.CreateUser(ctx, user))
	require.NotZero(t, user.ID)

	// users without a Firebase UID must not collide on the unique index
	require.NoError(t, repo.CreateUser(ctx, &models.User{Email: "b@example.com"}))
	require.NoError(t, repo.CreateUser(ctx, &models.User{Email: "c@example.com"}))

	byEmail, err := repo.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byUID, err := repo.GetUserByFirebaseUID(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUID.ID)

	_, err = repo.GetUserByID(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.Error(t, repo.CreateUser(ctx, &models.User{Email: "ana@example.com"}))
}

func TestProfileRepository_EnsureProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresProfileRepository(db)
	ctx := context.Background()

	created, err := repo.EnsureProfile(ctx, &models.UserProfile{UserID: 5, DisplayName: "Ana", Theme: models.ThemeAuto})
	require.NoError(t, err)
	assert.Equal(t, "Ana", created.DisplayName)
	assert.Equal(t, models.ThemeAuto, created.Theme)

	created.Bio = "hello"
	created.SocialLinks = models.SocialLinks{Instagram: "@ana"}
	created.Theme = models.ThemeDark
	require.NoError(t, repo.UpdateProfile(ctx, created))

	// a second call returns the stored row, not the defaults
	again, err := repo.EnsureProfile(ctx, &models.UserProfile{UserID: 5, DisplayName: "Other", Theme: models.ThemeAuto})
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.DisplayName)
	assert.Equal(t, "hello", again.Bio)
	assert.Equal(t, "@ana", again.SocialLinks.Instagram)
	assert.Equal(t, models.ThemeDark, again.Theme)
}
