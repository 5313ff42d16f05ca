package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/Ayam7273/Eventmories/internal/repositories"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// FeedPage is everything the feed screen needs in one response.
type FeedPage struct {
	Feeds       []models.JoinedFeed `json:"feeds"`
	Selected    *models.JoinedFeed  `json:"selected_feed"`
	Posts       []models.FeedPost   `json:"posts"`
	FocusPostID string              `json:"focus_post_id,omitempty"`
}

type FeedService struct {
	feeds   repositories.FeedRepository
	members repositories.FeedMemberRepository
	posts   *PostService
	newCode func() (string, error)
}

func NewFeedService(feeds repositories.FeedRepository, members repositories.FeedMemberRepository, posts *PostService) *FeedService {
	return &FeedService{
		feeds:   feeds,
		members: members,
		posts:   posts,
		newCode: GenerateFeedCode,
	}
}

// CreateFeed creates a feed with a fresh invite code and joins the creator to it.
func (s *FeedService) CreateFeed(ctx context.Context, userID uint, name string) (*models.Feed, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyFeedName
	}

	code, err := s.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	feed := &models.Feed{Name: name, Code: code, CreatedBy: userID}
	if err := s.feeds.CreateFeed(ctx, feed); err != nil {
		return nil, fmt.Errorf("create feed: %w", err)
	}
	if err := s.members.AddMember(ctx, &models.FeedMember{FeedID: feed.ID, UserID: userID}); err != nil {
		return nil, fmt.Errorf("join created feed: %w", err)
	}

	log.Info().Uint("feed_id", feed.ID).Uint("user_id", userID).Msg("feed created")
	return feed, nil
}

func (s *FeedService) uniqueCode(ctx context.Context) (string, error) {
	for i := 0; i < feedCodeAttempts; i++ {
		code, err := s.newCode()
		if err != nil {
			return "", fmt.Errorf("generate feed code: %w", err)
		}
		taken, err := s.feeds.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check feed code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeExhausted
}

// JoinFeed adds the user to the feed with the given invite code.
func (s *FeedService) JoinFeed(ctx context.Context, userID uint, code string) (*models.Feed, error) {
	code = NormalizeFeedCode(code)
	if code == "" {
		return nil, ErrFeedNotFound
	}

	feed, err := s.feeds.GetFeedByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedNotFound
		}
		return nil, fmt.Errorf("find feed: %w", err)
	}

	// The unique index still rejects a concurrent duplicate join.
	member, err := s.members.IsMember(ctx, feed.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if member {
		return nil, ErrAlreadyMember
	}

	if err := s.members.AddMember(ctx, &models.FeedMember{FeedID: feed.ID, UserID: userID}); err != nil {
		return nil, fmt.Errorf("join feed: %w", err)
	}
	return feed, nil
}

// ListFeeds returns the user's feeds, most recently joined first.
func (s *FeedService) ListFeeds(ctx context.Context, userID uint) ([]models.JoinedFeed, error) {
	memberships, err := s.members.GetMemberships(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	feeds := make([]models.JoinedFeed, 0, len(memberships))
	for _, m := range memberships {
		if m.Feed.ID == 0 {
			continue
		}
		feeds = append(feeds, models.JoinedFeed{Feed: m.Feed, JoinedAt: m.JoinedAt})
	}
	return feeds, nil
}

// OpenPage selects feedID among the user's feeds, falling back to the most
// recently joined one, and loads its posts. focusPostID is echoed back so the
// client can scroll to it.
func (s *FeedService) OpenPage(ctx context.Context, userID, feedID uint, focusPostID string) (*FeedPage, error) {
	feeds, err := s.ListFeeds(ctx, userID)
	if err != nil {
		return nil, err
	}

	page := &FeedPage{Feeds: feeds, Posts: []models.FeedPost{}, FocusPostID: focusPostID}
	if len(feeds) == 0 {
		return page, nil
	}

	page.Selected = &feeds[0]
	for i := range feeds {
		if feedID != 0 && feeds[i].ID == feedID {
			page.Selected = &feeds[i]
			break
		}
	}
	page.Posts = s.posts.ListPosts(ctx, page.Selected.ID, userID)
	return page, nil
}
