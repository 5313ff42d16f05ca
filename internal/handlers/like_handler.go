package handlers

import (
	"net/http"

	"github.com/Ayam7273/Eventmories/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler toggles likes and bookmarks
type LikeHandler struct {
	interactions *services.InteractionService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(interactions *services.InteractionService) *LikeHandler {
	return &LikeHandler{interactions: interactions}
}

// RegisterLikeRoutes registers like and save routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/like", h.ToggleLike)
	g.POST("/posts/:post_id/save", h.ToggleSave)
}

// ToggleLike likes the post if the caller hasn't, otherwise removes the like
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	state, err := h.interactions.ToggleLike(c.Request().Context(), getUserIDFromContext(c), c.Param("post_id"))
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, state)
}

// ToggleSave bookmarks the post if the caller hasn't, otherwise removes the bookmark
func (h *LikeHandler) ToggleSave(c echo.Context) error {
	state, err := h.interactions.ToggleSave(c.Request().Context(), getUserIDFromContext(c), c.Param("post_id"))
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, state)
}
