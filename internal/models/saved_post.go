package models

import "time"

// SavedPost represents a bookmarked/saved post by a user
type SavedPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_post_save"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_user_post_save"`
	CreatedAt time.Time `json:"created_at"`
}

func (SavedPost) TableName() string { return "post_saves" }

// SaveState is the post-write view returned by a save toggle.
type SaveState struct {
	PostID    string `json:"post_id"`
	Saved     bool   `json:"saved"`
	SaveCount int64  `json:"save_count"`
}
