package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a feed entry stored in MongoDB. Reaction counts are never stored on it.
type Post struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FeedID   uint               `json:"feed_id" bson:"feed_id"`
	UserID   uint               `json:"user_id" bson:"user_id"`
	Content  string             `json:"content" bson:"content"`
	ImageURL string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	VideoURL string             `json:"video_url,omitempty" bson:"video_url,omitempty"`
	UserName string             `json:"user_name" bson:"user_name"`
	UserPic  string             `json:"user_pic,omitempty" bson:"user_pic,omitempty"`
	// CommentCount is a legacy field kept for document compatibility; counts are
	// always derived from the comments table.
	CommentCount int       `json:"comment_count" bson:"comment_count"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// CreatePostRequest is the text part of a multipart post submission.
type CreatePostRequest struct {
	Content string `form:"content" json:"content" validate:"max=1000"`
}

// PostReactions is the hydrated reaction state of one post for one viewer.
type PostReactions struct {
	LikeCount int64 `json:"like_count"`
	Liked     bool  `json:"liked"`
	SaveCount int64 `json:"save_count"`
	Saved     bool  `json:"saved"`
}

// FeedPost is a post with its reaction state.
type FeedPost struct {
	Post
	PostReactions
}

// SearchResult is a post matched by search, with its feed embedded.
type SearchResult struct {
	Post
	Feed FeedSummary `json:"feeds"`
}
