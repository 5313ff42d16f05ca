package handlers

import (
	"net/http"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/Ayam7273/Eventmories/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	interactions *services.InteractionService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(interactions *services.InteractionService) *CommentHandler {
	return &CommentHandler{interactions: interactions}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/posts/:post_id/comments", h.GetComments)
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments/count", h.GetCommentCount)
}

// CreateComment adds a comment and returns the whole thread
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comments, err := h.interactions.AddComment(c.Request().Context(), getUserIDFromContext(c), c.Param("post_id"), req.Content)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusCreated, echo.Map{"comments": comments})
}

// GetComments lists a post's comments, oldest first
func (h *CommentHandler) GetComments(c echo.Context) error {
	comments, err := h.interactions.ListComments(c.Request().Context(), getUserIDFromContext(c), c.Param("post_id"))
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, echo.Map{"comments": comments})
}

func (h *CommentHandler) GetCommentCount(c echo.Context) error {
	count, err := h.interactions.CommentCount(c.Request().Context(), getUserIDFromContext(c), c.Param("post_id"))
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, echo.Map{"count": count})
}
