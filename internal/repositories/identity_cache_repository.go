package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/redis/go-redis/v9"
)

// IdentityCacheTTL bounds how stale a cached identity may get.
const IdentityCacheTTL = 15 * time.Minute

// IdentityCacheRepository caches resolved identities by user id.
type IdentityCacheRepository interface {
	Get(ctx context.Context, userID uint) (*models.Identity, error)
	Set(ctx context.Context, identity *models.Identity) error
	Delete(ctx context.Context, userID uint) error
}

type RedisIdentityCacheRepository struct {
	rdb *redis.Client
}

// NewRedisIdentityCacheRepository returns a cache backed by rdb; nil disables caching.
func NewRedisIdentityCacheRepository(rdb *redis.Client) *RedisIdentityCacheRepository {
	return &RedisIdentityCacheRepository{rdb: rdb}
}

func identityKey(userID uint) string {
	return fmt.Sprintf("identity:%d", userID)
}

// Get returns nil without error on a miss.
func (r *RedisIdentityCacheRepository) Get(ctx context.Context, userID uint) (*models.Identity, error) {
	if r.rdb == nil {
		return nil, nil
	}
	raw, err := r.rdb.Get(ctx, identityKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var identity models.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return nil, fmt.Errorf("decode cached identity: %w", err)
	}
	return &identity, nil
}

func (r *RedisIdentityCacheRepository) Set(ctx context.Context, identity *models.Identity) error {
	if r.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, identityKey(identity.UserID), raw, IdentityCacheTTL).Err()
}

func (r *RedisIdentityCacheRepository) Delete(ctx context.Context, userID uint) error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Del(ctx, identityKey(userID)).Err()
}
