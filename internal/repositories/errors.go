package repositories

import "errors"

var (
	ErrPostNotFound         = errors.New("post not found")
	ErrLikeNotFound         = errors.New("like not found")
	ErrSavedPostNotFound    = errors.New("saved post not found")
	ErrNotificationNotFound = errors.New("notification not found")
)
