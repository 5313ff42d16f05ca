package handlers

import (
	"net/http"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/Ayam7273/Eventmories/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler serves the caller's own profile
type UserHandler struct {
	profiles *services.ProfileService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(profiles *services.ProfileService) *UserHandler {
	return &UserHandler{profiles: profiles}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.POST("/profile/avatar", h.UploadAvatar)
}

// GetProfile retrieves the authenticated user's profile, creating it on first access
func (h *UserHandler) GetProfile(c echo.Context) error {
	profile, err := h.profiles.GetProfile(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, echo.Map{"profile": profile})
}

// UpdateProfile applies the fields present in the body
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.profiles.UpdateProfile(c.Request().Context(), getUserIDFromContext(c), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, echo.Map{"profile": profile})
}

// UploadAvatar stores the multipart "avatar" file and sets it as the profile picture
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	avatar, closeAvatar, err := formUpload(c, "avatar")
	if err != nil {
		return err
	}
	defer closeAvatar()

	profile, err := h.profiles.UploadAvatar(c.Request().Context(), getUserIDFromContext(c), avatar)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, echo.Map{"profile": profile})
}
