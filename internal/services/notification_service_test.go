package services

import (
	"context"
	"testing"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMessage(t *testing.T) {
	assert.Equal(t, "Bo liked your post.", RenderMessage(models.NotificationTypeLike, "Bo", ""))
	assert.Equal(t, `Someone commented: "hey"`, RenderMessage(models.NotificationTypeComment, "", "hey"))
	assert.Equal(t, "New notification", RenderMessage("poke", "Bo", ""))
}

func TestNotifications_ListMarksAllRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.createUser(t, "Ana", "ana@example.com")
	bo := env.createUser(t, "Bo", "bo@example.com")
	feed := env.createFeedWith(t, "Wedding", ana, bo)
	postID := env.createTextPost(t, ana, feed, "vows").ID.Hex()

	_, err := env.actions.ToggleLike(ctx, bo.ID, postID)
	require.NoError(t, err)
	_, err = env.actions.AddComment(ctx, bo.ID, postID, "yay")
	require.NoError(t, err)

	unread, err := env.notifier.UnreadCount(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	list, err := env.notifier.List(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.NotificationTypeComment, list[0].Type)
	assert.False(t, list[0].Read)

	unread, err = env.notifier.UnreadCount(ctx, ana.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	empty, err := env.notifier.List(ctx, bo.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestNotifications_MarkReadOnlyByRecipient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.createUser(t, "Ana", "ana@example.com")
	bo := env.createUser(t, "Bo", "bo@example.com")
	feed := env.createFeedWith(t, "Wedding", ana, bo)
	postID := env.createTextPost(t, ana, feed, "vows").ID.Hex()

	_, err := env.actions.ToggleLike(ctx, bo.ID, postID)
	require.NoError(t, err)
	var note models.Notification
	require.NoError(t, env.db.First(&note).Error)

	assert.ErrorIs(t, env.notifier.MarkRead(ctx, bo.ID, note.ID), ErrNotificationNotFound)
	require.NoError(t, env.notifier.MarkRead(ctx, ana.ID, note.ID))

	unread, err := env.notifier.UnreadCount(ctx, ana.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
	require.NoError(t, env.notifier.MarkAllRead(ctx, ana.ID))
}

func TestNotifications_FailedReadYieldsEmptyState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana := env.createUser(t, "Ana", "ana@example.com")
	require.NoError(t, env.db.Migrator().DropTable(&models.Notification{}))

	list, err := env.notifier.List(ctx, ana.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	unread, err := env.notifier.UnreadCount(ctx, ana.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}
