package services

import (
	"context"
	"strings"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/Ayam7273/Eventmories/internal/repositories"
	"github.com/rs/zerolog/log"
)

type SearchService struct {
	posts   repositories.PostRepository
	feeds   repositories.FeedRepository
	members repositories.FeedMemberRepository
	history repositories.SearchHistoryRepository
}

func NewSearchService(
	posts repositories.PostRepository,
	feeds repositories.FeedRepository,
	members repositories.FeedMemberRepository,
	history repositories.SearchHistoryRepository,
) *SearchService {
	return &SearchService{posts: posts, feeds: feeds, members: members, history: history}
}

// Search matches term against post content in the user's feeds, newest first.
// A blank term returns nothing and is not recorded.
func (s *SearchService) Search(ctx context.Context, userID uint, term string) ([]models.SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.SearchResult{}, nil
	}

	if err := s.history.Record(ctx, userID, term); err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("failed to record search")
	}

	feedIDs, err := s.members.GetFeedIDs(ctx, userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("failed to load memberships for search")
		return []models.SearchResult{}, nil
	}
	if len(feedIDs) == 0 {
		return []models.SearchResult{}, nil
	}

	posts, err := s.posts.SearchPosts(ctx, feedIDs, term)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("failed to search posts")
		return []models.SearchResult{}, nil
	}

	// results still render without feed names
	feeds, err := s.feeds.GetFeedsByIDs(ctx, feedIDs)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load feed names for search results")
	}
	names := make(map[uint]string, len(feeds))
	for _, f := range feeds {
		names[f.ID] = f.Name
	}

	results := make([]models.SearchResult, 0, len(posts))
	for _, p := range posts {
		results = append(results, models.SearchResult{
			Post: p,
			Feed: models.FeedSummary{ID: p.FeedID, Name: names[p.FeedID]},
		})
	}
	return results, nil
}

// RecentSearches returns up to repositories.MaxRecentSearches terms, newest first.
func (s *SearchService) RecentSearches(ctx context.Context, userID uint) ([]string, error) {
	terms, err := s.history.Recent(ctx, userID)
	if err != nil {
		return nil, err
	}
	if terms == nil {
		terms = []string{}
	}
	return terms, nil
}
