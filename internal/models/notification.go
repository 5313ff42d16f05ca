package models

import "time"

const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
)

// NotificationExtra is the structured payload attached to a notification.
type NotificationExtra struct {
	Comment string `json:"comment,omitempty"`
}

// Notification tells a post's author that someone else liked or commented on it.
type Notification struct {
	ID           uint               `json:"id" gorm:"primaryKey"`
	UserID       uint               `json:"user_id" gorm:"index"` // recipient
	FromUserID   uint               `json:"from_user_id" gorm:"index"`
	FromUserName string             `json:"from_user_name"`
	FromUserPic  string             `json:"from_user_pic,omitempty"`
	FeedID       uint               `json:"feed_id"`
	PostID       string             `json:"post_id" gorm:"index"`
	Type         string             `json:"type" gorm:"size:20;index"`
	Extra        *NotificationExtra `json:"extra,omitempty" gorm:"type:text;serializer:json"`
	Message      string             `json:"message"`
	Read         bool               `json:"read" gorm:"column:is_read;default:false;index"`
	CreatedAt    time.Time          `json:"created_at" gorm:"index"`
}
