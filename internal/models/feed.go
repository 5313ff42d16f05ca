package models

import "time"

// Feed is a named event timeline that users join with its invite code.
type Feed struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Code      string    `json:"code" gorm:"size:6;uniqueIndex;not null"`
	CreatedBy uint      `json:"created_by" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedMember records that a user belongs to a feed.
type FeedMember struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	FeedID   uint      `json:"feed_id" gorm:"index;uniqueIndex:idx_feed_member"`
	UserID   uint      `json:"user_id" gorm:"index;uniqueIndex:idx_feed_member"`
	JoinedAt time.Time `json:"joined_at" gorm:"autoCreateTime"`
	Feed     Feed      `json:"feed" gorm:"foreignKey:FeedID"`
}

// FeedSummary is the projection embedded in search results.
type FeedSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// JoinedFeed is a feed as seen from one member's list.
type JoinedFeed struct {
	Feed
	JoinedAt time.Time `json:"joined_at"`
}

type CreateFeedRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type JoinFeedRequest struct {
	Code string `json:"code" validate:"required"`
}
