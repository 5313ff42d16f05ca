package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRepository tracks signed-out tokens until they would have expired anyway.
type SessionRepository interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

type RedisSessionRepository struct {
	rdb *redis.Client
}

// NewRedisSessionRepository returns a repository backed by rdb. Without Redis,
// sign-out cannot be enforced server side and IsRevoked always reports false.
func NewRedisSessionRepository(rdb *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:revoked:%s", sessionID)
}

func (r *RedisSessionRepository) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if r.rdb == nil || sessionID == "" || ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, sessionKey(sessionID), 1, ttl).Err()
}

func (r *RedisSessionRepository) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	if r.rdb == nil || sessionID == "" {
		return false, nil
	}
	err := r.rdb.Get(ctx, sessionKey(sessionID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
