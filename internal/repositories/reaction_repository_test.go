package repositories

import (
	"context"
	"testing"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository_ToggleLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresLikeRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateLike(ctx, &models.Like{PostID: "p1", UserID: 1}))
	require.NoError(t, repo.CreateLike(ctx, &models.Like{PostID: "p1", UserID: 2}))

	liked, err := repo.HasUserLikedPost(ctx, "p1", 1)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := repo.GetLikesCountByPostID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.DeleteLike(ctx, "p1", 1))
	assert.ErrorIs(t, repo.DeleteLike(ctx, "p1", 1), ErrLikeNotFound)

	liked, err = repo.HasUserLikedPost(ctx, "p1", 1)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestLikeRepository_DuplicateRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresLikeRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateLike(ctx, &models.Like{PostID: "p1", UserID: 1}))
	assert.Error(t, repo.CreateLike(ctx, &models.Like{PostID: "p1", UserID: 1}))
}

func TestLikeRepository_GetLikesByPostIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresLikeRepository(db)
	ctx := context.Background()

	for _, l := range []models.Like{{PostID: "a", UserID: 1}, {PostID: "a", UserID: 2}, {PostID: "b", UserID: 2}, {PostID: "c", UserID: 1}} {
		l := l
		require.NoError(t, repo.CreateLike(ctx, &l))
	}

	likes, err := repo.GetLikesByPostIDs(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, likes, 3)

	empty, err := repo.GetLikesByPostIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.DeleteLikesByPostID(ctx, "a"))
	count, err := repo.GetLikesCountByPostID(ctx, "a")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSavedPostRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresSavedPostRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SavePost(ctx, &models.SavedPost{UserID: 1, PostID: "a"}))
	require.NoError(t, repo.SavePost(ctx, &models.SavedPost{UserID: 1, PostID: "b"}))
	require.NoError(t, repo.SavePost(ctx, &models.SavedPost{UserID: 2, PostID: "a"}))

	saved, err := repo.IsPostSaved(ctx, 1, "a")
	require.NoError(t, err)
	assert.True(t, saved)

	count, err := repo.GetSavesCountByPostID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	mine, err := repo.GetSavedPostsByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "b", mine[0].PostID)

	rows, err := repo.GetSavesByPostIDs(ctx, []string{"a"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	require.NoError(t, repo.UnsavePost(ctx, 1, "a"))
	assert.ErrorIs(t, repo.UnsavePost(ctx, 1, "a"), ErrSavedPostNotFound)
}
