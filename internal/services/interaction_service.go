package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/Ayam7273/Eventmories/internal/repositories"
	"github.com/rs/zerolog/log"
)

// InteractionService toggles likes and saves and manages comments. Toggles are
// check-then-write without locking; two racing toggles by the same user may
// both apply and the last write wins.
type InteractionService struct {
	posts         repositories.PostRepository
	likes         repositories.LikeRepository
	saves         repositories.SavedPostRepository
	comments      repositories.CommentRepository
	members       repositories.FeedMemberRepository
	identity      IdentityResolver
	notifications *NotificationService
}

func NewInteractionService(
	posts repositories.PostRepository,
	likes repositories.LikeRepository,
	saves repositories.SavedPostRepository,
	comments repositories.CommentRepository,
	members repositories.FeedMemberRepository,
	identity IdentityResolver,
	notifications *NotificationService,
) *InteractionService {
	return &InteractionService{
		posts:         posts,
		likes:         likes,
		saves:         saves,
		comments:      comments,
		members:       members,
		identity:      identity,
		notifications: notifications,
	}
}

// visiblePost loads a post the user may act on.
func (s *InteractionService) visiblePost(ctx context.Context, userID uint, postID string) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.members, post.FeedID, userID); err != nil {
		return nil, err
	}
	return post, nil
}

// ToggleLike flips the user's like and returns the new state with a fresh count.
func (s *InteractionService) ToggleLike(ctx context.Context, userID uint, postID string) (*models.LikeState, error) {
	post, err := s.visiblePost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	liked, err := s.likes.HasUserLikedPost(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("check like: %w", err)
	}

	if liked {
		if err := s.likes.DeleteLike(ctx, postID, userID); err != nil && !errors.Is(err, repositories.ErrLikeNotFound) {
			return nil, fmt.Errorf("unlike post: %w", err)
		}
	} else {
		if err := s.likes.CreateLike(ctx, &models.Like{PostID: postID, UserID: userID}); err != nil {
			return nil, fmt.Errorf("like post: %w", err)
		}
		if post.UserID != userID {
			if actor, err := s.identity.Resolve(ctx, userID); err != nil {
				log.Warn().Err(err).Uint("user_id", userID).Msg("skipping like notification")
			} else {
				s.notifications.NotifyLike(ctx, actor, post)
			}
		}
	}

	count, err := s.likes.GetLikesCountByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	return &models.LikeState{PostID: postID, Liked: !liked, LikeCount: count}, nil
}

// ToggleSave flips the user's bookmark. Saves never notify.
func (s *InteractionService) ToggleSave(ctx context.Context, userID uint, postID string) (*models.SaveState, error) {
	if _, err := s.visiblePost(ctx, userID, postID); err != nil {
		return nil, err
	}

	saved, err := s.saves.IsPostSaved(ctx, userID, postID)
	if err != nil {
		return nil, fmt.Errorf("check save: %w", err)
	}

	if saved {
		if err := s.saves.UnsavePost(ctx, userID, postID); err != nil && !errors.Is(err, repositories.ErrSavedPostNotFound) {
			return nil, fmt.Errorf("unsave post: %w", err)
		}
	} else if err := s.saves.SavePost(ctx, &models.SavedPost{UserID: userID, PostID: postID}); err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}

	count, err := s.saves.GetSavesCountByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("count saves: %w", err)
	}
	return &models.SaveState{PostID: postID, Saved: !saved, SaveCount: count}, nil
}

// AddComment appends a comment and returns the post's full thread, oldest first.
func (s *InteractionService) AddComment(ctx context.Context, userID uint, postID, text string) ([]models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	post, err := s.visiblePost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	actor, err := s.identity.Resolve(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("commenting without a resolved identity")
		actor = &models.Identity{UserID: userID, DisplayName: DisplayName(nil, nil)}
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   userID,
		Content:  text,
		UserName: actor.DisplayName,
		UserPic:  actor.AvatarURL,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	s.notifications.NotifyComment(ctx, actor, post, text)

	return s.listComments(ctx, postID), nil
}

func (s *InteractionService) ListComments(ctx context.Context, userID uint, postID string) ([]models.Comment, error) {
	if _, err := s.visiblePost(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.listComments(ctx, postID), nil
}

// listComments reads the thread oldest first; a failed read is an empty thread.
func (s *InteractionService) listComments(ctx context.Context, postID string) []models.Comment {
	comments, err := s.comments.GetCommentsByPostID(ctx, postID)
	if err != nil {
		log.Error().Err(err).Str("post_id", postID).Msg("failed to list comments")
		return []models.Comment{}
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments
}

func (s *InteractionService) CommentCount(ctx context.Context, userID uint, postID string) (int64, error) {
	if _, err := s.visiblePost(ctx, userID, postID); err != nil {
		return 0, err
	}
	count, err := s.comments.CountByPostID(ctx, postID)
	if err != nil {
		log.Error().Err(err).Str("post_id", postID).Msg("failed to count comments")
		return 0, nil
	}
	return count, nil
}
