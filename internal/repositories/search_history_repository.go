package repositories

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// MaxRecentSearches caps each user's recent-search list.
const MaxRecentSearches = 5

// SearchHistoryRepository keeps each user's recently searched terms.
type SearchHistoryRepository interface {
	// Record moves term to the front of the user's list, dropping duplicates
	// and anything past MaxRecentSearches.
	Record(ctx context.Context, userID uint, term string) error
	Recent(ctx context.Context, userID uint) ([]string, error)
}

type RedisSearchHistoryRepository struct {
	rdb *redis.Client
}

// NewRedisSearchHistoryRepository returns a repository backed by rdb. A nil
// client makes every call a no-op.
func NewRedisSearchHistoryRepository(rdb *redis.Client) *RedisSearchHistoryRepository {
	return &RedisSearchHistoryRepository{rdb: rdb}
}

func searchHistoryKey(userID uint) string {
	return fmt.Sprintf("search:recent:%d", userID)
}

func (r *RedisSearchHistoryRepository) Record(ctx context.Context, userID uint, term string) error {
	if r.rdb == nil {
		return nil
	}
	key := searchHistoryKey(userID)
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, key, 0, term)
		pipe.LPush(ctx, key, term)
		pipe.LTrim(ctx, key, 0, MaxRecentSearches-1)
		return nil
	})
	return err
}

func (r *RedisSearchHistoryRepository) Recent(ctx context.Context, userID uint) ([]string, error) {
	if r.rdb == nil {
		return []string{}, nil
	}
	return r.rdb.LRange(ctx, searchHistoryKey(userID), 0, MaxRecentSearches-1).Result()
}
