package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFeedRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresFeedRepository(db)
	ctx := context.Background()

	feed := &models.Feed{Name: "Wedding", Code: "AB12CD", CreatedBy: 1}
	require.NoError(t, repo.CreateFeed(ctx, feed))
	require.NotZero(t, feed.ID)

	got, err := repo.GetFeedByCode(ctx, "AB12CD")
	require.NoError(t, err)
	assert.Equal(t, "Wedding", got.Name)

	_, err = repo.GetFeedByCode(ctx, "ZZZZZZ")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	exists, err := repo.CodeExists(ctx, "AB12CD")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Error(t, repo.CreateFeed(ctx, &models.Feed{Name: "Dup", Code: "AB12CD"}))

	feeds, err := repo.GetFeedsByIDs(ctx, []uint{feed.ID, 999})
	require.NoError(t, err)
	assert.Len(t, feeds, 1)
}

func TestFeedMemberRepository(t *testing.T) {
	db := setupTestDB(t)
	feeds := NewPostgresFeedRepository(db)
	members := NewPostgresFeedMemberRepository(db)
	ctx := context.Background()

	first := &models.Feed{Name: "First", Code: "AAAAAA"}
	second := &models.Feed{Name: "Second", Code: "BBBBBB"}
	require.NoError(t, feeds.CreateFeed(ctx, first))
	require.NoError(t, feeds.CreateFeed(ctx, second))

	now := time.Now()
	require.NoError(t, members.AddMember(ctx, &models.FeedMember{FeedID: first.ID, UserID: 7, JoinedAt: now.Add(-time.Hour)}))
	require.NoError(t, members.AddMember(ctx, &models.FeedMember{FeedID: second.ID, UserID: 7, JoinedAt: now}))
	assert.Error(t, members.AddMember(ctx, &models.FeedMember{FeedID: first.ID, UserID: 7}))

	ok, err := members.IsMember(ctx, first.ID, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = members.IsMember(ctx, first.ID, 8)
	require.NoError(t, err)
	assert.False(t, ok)

	memberships, err := members.GetMemberships(ctx, 7)
	require.NoError(t, err)
	require.Len(t, memberships, 2)
	assert.Equal(t, "Second", memberships[0].Feed.Name)
	assert.Equal(t, "First", memberships[1].Feed.Name)

	ids, err := members.GetFeedIDs(ctx, 7)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{first.ID, second.ID}, ids)
}
