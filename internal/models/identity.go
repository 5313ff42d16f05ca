package models

// Identity is the resolved current user, derived once per session and shared by
// every handler that needs "who is acting".
type Identity struct {
	UserID      uint   `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Theme       string `json:"theme"`
}
