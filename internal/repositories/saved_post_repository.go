package repositories

import (
	"context"

	"github.com/Ayam7273/Eventmories/internal/models"
	"gorm.io/gorm"
)

// SavedPostRepository defines the interface for saved post operations
type SavedPostRepository interface {
	SavePost(ctx context.Context, savedPost *models.SavedPost) error
	UnsavePost(ctx context.Context, userID uint, postID string) error
	IsPostSaved(ctx context.Context, userID uint, postID string) (bool, error)
	GetSavesCountByPostID(ctx context.Context, postID string) (int64, error)
	GetSavedPostsByUser(ctx context.Context, userID uint) ([]models.SavedPost, error)
	GetSavesByPostIDs(ctx context.Context, postIDs []string) ([]models.SavedPost, error)
	DeleteSavesByPostID(ctx context.Context, postID string) error
}

// PostgresSavedPostRepository implements SavedPostRepository
type PostgresSavedPostRepository struct {
	db *gorm.DB
}

func NewPostgresSavedPostRepository(db *gorm.DB) *PostgresSavedPostRepository {
	return &PostgresSavedPostRepository{db: db}
}

func (r *PostgresSavedPostRepository) SavePost(ctx context.Context, savedPost *models.SavedPost) error {
	return r.db.WithContext(ctx).Create(savedPost).Error
}

func (r *PostgresSavedPostRepository) UnsavePost(ctx context.Context, userID uint, postID string) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.SavedPost{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSavedPostNotFound
	}
	return nil
}

func (r *PostgresSavedPostRepository) IsPostSaved(ctx context.Context, userID uint, postID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SavedPost{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresSavedPostRepository) GetSavesCountByPostID(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SavedPost{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *PostgresSavedPostRepository) GetSavedPostsByUser(ctx context.Context, userID uint) ([]models.SavedPost, error) {
	var saved []models.SavedPost
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&saved).Error
	return saved, err
}

func (r *PostgresSavedPostRepository) GetSavesByPostIDs(ctx context.Context, postIDs []string) ([]models.SavedPost, error) {
	var saved []models.SavedPost
	if len(postIDs) == 0 {
		return saved, nil
	}
	err := r.db.WithContext(ctx).Select("post_id", "user_id").Where("post_id IN ?", postIDs).Find(&saved).Error
	return saved, err
}

func (r *PostgresSavedPostRepository) DeleteSavesByPostID(ctx context.Context, postID string) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.SavedPost{}).Error
}
