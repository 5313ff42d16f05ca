package repositories

import (
	"context"

	"github.com/Ayam7273/Eventmories/internal/models"
	"gorm.io/gorm"
)

// FeedMemberRepository defines the interface for feed membership operations
type FeedMemberRepository interface {
	AddMember(ctx context.Context, member *models.FeedMember) error
	IsMember(ctx context.Context, feedID, userID uint) (bool, error)
	GetMemberships(ctx context.Context, userID uint) ([]models.FeedMember, error)
	GetFeedIDs(ctx context.Context, userID uint) ([]uint, error)
}

// PostgresFeedMemberRepository implements FeedMemberRepository for PostgreSQL
type PostgresFeedMemberRepository struct {
	db *gorm.DB
}

func NewPostgresFeedMemberRepository(db *gorm.DB) *PostgresFeedMemberRepository {
	return &PostgresFeedMemberRepository{db: db}
}

func (r *PostgresFeedMemberRepository) AddMember(ctx context.Context, member *models.FeedMember) error {
	return r.db.WithContext(ctx).Omit("Feed").Create(member).Error
}

func (r *PostgresFeedMemberRepository) IsMember(ctx context.Context, feedID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.FeedMember{}).
		Where("feed_id = ? AND user_id = ?", feedID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetMemberships returns the user's memberships with their feeds, most recently joined first.
func (r *PostgresFeedMemberRepository) GetMemberships(ctx context.Context, userID uint) ([]models.FeedMember, error) {
	var members []models.FeedMember
	err := r.db.WithContext(ctx).
		Preload("Feed").
		Where("user_id = ?", userID).
		Order("joined_at DESC").Order("id DESC").
		Find(&members).Error
	return members, err
}

func (r *PostgresFeedMemberRepository) GetFeedIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.FeedMember{}).
		Where("user_id = ?", userID).
		Pluck("feed_id", &ids).Error
	return ids, err
}
