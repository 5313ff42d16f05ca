package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresCommentRepository(db)
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, repo.CreateComment(ctx, &models.Comment{PostID: "p", UserID: 1, Content: "second", CreatedAt: base}))
	require.NoError(t, repo.CreateComment(ctx, &models.Comment{PostID: "p", UserID: 2, Content: "first", CreatedAt: base.Add(-time.Minute)}))
	require.NoError(t, repo.CreateComment(ctx, &models.Comment{PostID: "other", UserID: 2, Content: "elsewhere"}))

	comments, err := repo.GetCommentsByPostID(ctx, "p")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)

	count, err := repo.CountByPostID(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.DeleteCommentsByPostID(ctx, "p"))
	count, err = repo.CountByPostID(ctx, "p")
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = repo.CountByPostID(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
