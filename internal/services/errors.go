package services

import (
	"errors"

	"github.com/Ayam7273/Eventmories/internal/repositories"
)

// User-facing messages below are shown verbatim by the client.
var (
	ErrEmptyPost          = errors.New("post needs text, an image or a video")
	ErrEmptyComment       = errors.New("comment cannot be empty")
	ErrEmptyFeedName      = errors.New("feed name is required")
	ErrFeedNotFound       = errors.New("Feed not found!")
	ErrAlreadyMember      = errors.New("You're already in this feed!")
	ErrNotMember          = errors.New("you are not a member of this feed")
	ErrForbidden          = errors.New("you can only delete your own posts")
	ErrInvalidTheme       = errors.New("theme must be light, dark or auto")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrCodeExhausted      = errors.New("could not generate a unique feed code")
	ErrNoFile             = errors.New("no file uploaded")

	ErrPostNotFound         = repositories.ErrPostNotFound
	ErrNotificationNotFound = repositories.ErrNotificationNotFound
)
