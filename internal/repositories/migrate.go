package repositories

import (
	"github.com/Ayam7273/Eventmories/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every relational table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Feed{},
		&models.FeedMember{},
		&models.Like{},
		&models.SavedPost{},
		&models.Comment{},
		&models.Notification{},
	)
}
