package repositories

import (
	"context"

	"github.com/Ayam7273/Eventmories/internal/models"
	"gorm.io/gorm"
)

// FeedRepository defines the interface for feed data operations
type FeedRepository interface {
	CreateFeed(ctx context.Context, feed *models.Feed) error
	GetFeedByID(ctx context.Context, id uint) (*models.Feed, error)
	GetFeedByCode(ctx context.Context, code string) (*models.Feed, error)
	GetFeedsByIDs(ctx context.Context, ids []uint) ([]models.Feed, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}

// PostgresFeedRepository implements FeedRepository for PostgreSQL
type PostgresFeedRepository struct {
	db *gorm.DB
}

func NewPostgresFeedRepository(db *gorm.DB) *PostgresFeedRepository {
	return &PostgresFeedRepository{db: db}
}

func (r *PostgresFeedRepository) CreateFeed(ctx context.Context, feed *models.Feed) error {
	return r.db.WithContext(ctx).Create(feed).Error
}

func (r *PostgresFeedRepository) GetFeedByID(ctx context.Context, id uint) (*models.Feed, error) {
	var feed models.Feed
	if err := r.db.WithContext(ctx).First(&feed, id).Error; err != nil {
		return nil, err
	}
	return &feed, nil
}

func (r *PostgresFeedRepository) GetFeedByCode(ctx context.Context, code string) (*models.Feed, error) {
	var feed models.Feed
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&feed).Error; err != nil {
		return nil, err
	}
	return &feed, nil
}

func (r *PostgresFeedRepository) GetFeedsByIDs(ctx context.Context, ids []uint) ([]models.Feed, error) {
	var feeds []models.Feed
	if len(ids) == 0 {
		return feeds, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&feeds).Error
	return feeds, err
}

func (r *PostgresFeedRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Feed{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}
