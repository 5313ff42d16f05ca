package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/Ayam7273/Eventmories/internal/repositories"
	"github.com/Ayam7273/Eventmories/pkg/metrics"
	"github.com/Ayam7273/Eventmories/pkg/storage"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Upload is a file received from the client.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type CreatePostInput struct {
	UserID  uint
	FeedID  uint
	Content string
	Image   *Upload
	Video   *Upload
}

type PostService struct {
	posts    repositories.PostRepository
	likes    repositories.LikeRepository
	saves    repositories.SavedPostRepository
	comments repositories.CommentRepository
	members  repositories.FeedMemberRepository
	identity IdentityResolver
	media    storage.Bucket
	now      func() time.Time
}

func NewPostService(
	posts repositories.PostRepository,
	likes repositories.LikeRepository,
	saves repositories.SavedPostRepository,
	comments repositories.CommentRepository,
	members repositories.FeedMemberRepository,
	identity IdentityResolver,
	media storage.Bucket,
) *PostService {
	return &PostService{
		posts:    posts,
		likes:    likes,
		saves:    saves,
		comments: comments,
		members:  members,
		identity: identity,
		media:    media,
		now:      time.Now,
	}
}

// FeedPosts lists a feed's posts for one of its members.
func (s *PostService) FeedPosts(ctx context.Context, feedID, userID uint) ([]models.FeedPost, error) {
	if err := requireMember(ctx, s.members, feedID, userID); err != nil {
		return nil, err
	}
	return s.ListPosts(ctx, feedID, userID), nil
}

// ListPosts returns the feed's posts newest first with the viewer's reactions.
// A store failure is logged and yields an empty list.
func (s *PostService) ListPosts(ctx context.Context, feedID, userID uint) []models.FeedPost {
	posts, err := s.posts.GetPostsByFeedID(ctx, feedID)
	if err != nil {
		log.Error().Err(err).Uint("feed_id", feedID).Msg("failed to list posts")
		return []models.FeedPost{}
	}
	return s.withReactions(ctx, posts, userID)
}

func (s *PostService) withReactions(ctx context.Context, posts []models.Post, userID uint) []models.FeedPost {
	ids := make([]string, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID.Hex()
	}
	reactions := s.HydrateReactions(ctx, ids, userID)

	out := make([]models.FeedPost, len(posts))
	for i := range posts {
		out[i] = models.FeedPost{Post: posts[i], PostReactions: reactions[ids[i]]}
	}
	return out
}

// HydrateReactions computes like/save counts and the viewer's own state for
// every post with one likes read and one saves read, issued concurrently.
// Every id is present in the result; a failed read leaves zero values.
func (s *PostService) HydrateReactions(ctx context.Context, postIDs []string, userID uint) map[string]models.PostReactions {
	out := make(map[string]models.PostReactions, len(postIDs))
	for _, id := range postIDs {
		out[id] = models.PostReactions{}
	}
	if len(postIDs) == 0 {
		return out
	}

	var (
		likes []models.Like
		saves []models.SavedPost
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		likes, err = s.likes.GetLikesByPostIDs(gctx, postIDs)
		return err
	})
	g.Go(func() error {
		var err error
		saves, err = s.saves.GetSavesByPostIDs(gctx, postIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Int("posts", len(postIDs)).Msg("failed to hydrate reactions")
		return out
	}

	for _, l := range likes {
		r, ok := out[l.PostID]
		if !ok {
			continue
		}
		r.LikeCount++
		if l.UserID == userID {
			r.Liked = true
		}
		out[l.PostID] = r
	}
	for _, sv := range saves {
		r, ok := out[sv.PostID]
		if !ok {
			continue
		}
		r.SaveCount++
		if sv.UserID == userID {
			r.Saved = true
		}
		out[sv.PostID] = r
	}
	return out
}

// CreatePost stores a post in the feed and returns the feed's refreshed list.
// A failed media upload drops that attachment and the post is still created.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) ([]models.FeedPost, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" && in.Image == nil && in.Video == nil {
		return nil, ErrEmptyPost
	}
	if err := requireMember(ctx, s.members, in.FeedID, in.UserID); err != nil {
		return nil, err
	}

	author, err := s.identity.Resolve(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		FeedID:   in.FeedID,
		UserID:   in.UserID,
		Content:  content,
		UserName: author.DisplayName,
		UserPic:  author.AvatarURL,
	}
	if in.Image != nil {
		post.ImageURL = s.upload(ctx, "images", in.UserID, in.Image)
	}
	if in.Video != nil {
		post.VideoURL = s.upload(ctx, "videos", in.UserID, in.Video)
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.ListPosts(ctx, in.FeedID, in.UserID), nil
}

// upload returns the public URL, or "" when the upload failed.
func (s *PostService) upload(ctx context.Context, category string, userID uint, file *Upload) string {
	path := storage.ObjectPath(category, userID, s.now(), file.Filename)
	if err := s.media.Upload(ctx, path, file.Body, file.ContentType); err != nil {
		metrics.MediaUploadFailures.WithLabelValues(category).Inc()
		log.Error().Err(err).Str("path", path).Msg("media upload failed")
		return ""
	}
	return s.media.PublicURL(path)
}

// DeletePost removes the author's own post together with its likes, saves and comments.
func (s *PostService) DeletePost(ctx context.Context, userID uint, postID string) error {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrForbidden
	}
	if err := s.posts.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	return errors.Join(
		s.likes.DeleteLikesByPostID(ctx, postID),
		s.saves.DeleteSavesByPostID(ctx, postID),
		s.comments.DeleteCommentsByPostID(ctx, postID),
	)
}

// SavedPosts returns the user's bookmarks, most recently saved first, skipping
// posts from feeds the user has since left or that were deleted.
func (s *PostService) SavedPosts(ctx context.Context, userID uint) ([]models.FeedPost, error) {
	saved, err := s.saves.GetSavedPostsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved posts: %w", err)
	}
	if len(saved) == 0 {
		return []models.FeedPost{}, nil
	}

	ids := make([]string, len(saved))
	for i, sv := range saved {
		ids[i] = sv.PostID
	}
	posts, err := s.posts.GetPostsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load saved posts: %w", err)
	}
	feedIDs, err := s.members.GetFeedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load memberships: %w", err)
	}
	member := make(map[uint]bool, len(feedIDs))
	for _, id := range feedIDs {
		member[id] = true
	}

	byID := make(map[string]models.Post, len(posts))
	for _, p := range posts {
		if member[p.FeedID] {
			byID[p.ID.Hex()] = p
		}
	}
	ordered := make([]models.Post, 0, len(byID))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return s.withReactions(ctx, ordered, userID), nil
}
