package services

import (
	"context"
	"fmt"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/Ayam7273/Eventmories/internal/repositories"
	"github.com/Ayam7273/Eventmories/pkg/metrics"
	"github.com/rs/zerolog/log"
)

type NotificationService struct {
	repo repositories.NotificationRepository
}

func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// NotifyLike tells the post's author that actor liked it. Self-likes are ignored.
func (s *NotificationService) NotifyLike(ctx context.Context, actor *models.Identity, post *models.Post) {
	if post.UserID == actor.UserID {
		return
	}
	s.notify(ctx, &models.Notification{
		UserID:       post.UserID,
		FromUserID:   actor.UserID,
		FromUserName: actor.DisplayName,
		FromUserPic:  actor.AvatarURL,
		FeedID:       post.FeedID,
		PostID:       post.ID.Hex(),
		Type:         models.NotificationTypeLike,
		Message:      RenderMessage(models.NotificationTypeLike, actor.DisplayName, ""),
	})
}

// NotifyComment tells the post's author that actor commented on it.
func (s *NotificationService) NotifyComment(ctx context.Context, actor *models.Identity, post *models.Post, comment string) {
	if post.UserID == actor.UserID {
		return
	}
	s.notify(ctx, &models.Notification{
		UserID:       post.UserID,
		FromUserID:   actor.UserID,
		FromUserName: actor.DisplayName,
		FromUserPic:  actor.AvatarURL,
		FeedID:       post.FeedID,
		PostID:       post.ID.Hex(),
		Type:         models.NotificationTypeComment,
		Extra:        &models.NotificationExtra{Comment: comment},
		Message:      RenderMessage(models.NotificationTypeComment, actor.DisplayName, comment),
	})
}

// notify never fails the caller: a lost notification is logged and counted.
func (s *NotificationService) notify(ctx context.Context, n *models.Notification) {
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		metrics.NotificationFailures.WithLabelValues(n.Type).Inc()
		log.Error().Err(err).
			Uint("recipient_id", n.UserID).
			Str("post_id", n.PostID).
			Str("type", n.Type).
			Msg("failed to create notification")
		return
	}
	metrics.NotificationsCreated.WithLabelValues(n.Type).Inc()
}

// List returns the recipient's notifications newest first and then marks them
// all read. The returned rows keep their pre-read state.
func (s *NotificationService) List(ctx context.Context, userID uint) ([]models.Notification, error) {
	notifications, err := s.repo.GetByRecipientID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("failed to list notifications")
		return []models.Notification{}, nil
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("failed to mark notifications read")
	}
	return notifications, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	count, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("failed to count unread notifications")
		return 0, nil
	}
	return count, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// RenderMessage produces the human readable line stored with a notification.
func RenderMessage(kind, fromName, comment string) string {
	if fromName == "" {
		fromName = "Someone"
	}
	switch kind {
	case models.NotificationTypeLike:
		return fromName + " liked your post."
	case models.NotificationTypeComment:
		return fmt.Sprintf("%s commented: \"%s\"", fromName, comment)
	default:
		return "New notification"
	}
}
