package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/Ayam7273/Eventmories/internal/services"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	posts       *services.PostService
	maxUploadMB int
}

// NewPostHandler creates a new PostHandler. maxUploadMB caps a whole post submission.
func NewPostHandler(posts *services.PostService, maxUploadMB int) *PostHandler {
	return &PostHandler{posts: posts, maxUploadMB: maxUploadMB}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/feeds/:feed_id/posts", h.GetFeedPosts)
	g.POST("/feeds/:feed_id/posts", h.CreatePost, echomw.BodyLimit(fmt.Sprintf("%dM", h.maxUploadMB)))
	g.DELETE("/posts/:post_id", h.DeletePost)
	g.GET("/saved-posts", h.GetSavedPosts)
}

func feedIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("feed_id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid feed ID")
	}
	return uint(id), nil
}

func (h *PostHandler) GetFeedPosts(c echo.Context) error {
	feedID, err := feedIDParam(c)
	if err != nil {
		return err
	}
	posts, err := h.posts.FeedPosts(c.Request().Context(), feedID, getUserIDFromContext(c))
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, echo.Map{"posts": posts})
}

// CreatePost accepts a multipart form with optional content, image and video parts
// and returns the feed's refreshed post list.
func (h *PostHandler) CreatePost(c echo.Context) error {
	feedID, err := feedIDParam(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	image, closeImage, err := formUpload(c, "image")
	if err != nil {
		return err
	}
	defer closeImage()
	video, closeVideo, err := formUpload(c, "video")
	if err != nil {
		return err
	}
	defer closeVideo()

	posts, err := h.posts.CreatePost(c.Request().Context(), services.CreatePostInput{
		UserID:  getUserIDFromContext(c),
		FeedID:  feedID,
		Content: req.Content,
		Image:   image,
		Video:   video,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusCreated, echo.Map{"posts": posts})
}

// DeletePost deletes one of the caller's own posts
func (h *PostHandler) DeletePost(c echo.Context) error {
	if err := h.posts.DeletePost(c.Request().Context(), getUserIDFromContext(c), c.Param("post_id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetSavedPosts lists the caller's bookmarks
func (h *PostHandler) GetSavedPosts(c echo.Context) error {
	posts, err := h.posts.SavedPosts(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, echo.Map{"posts": posts})
}
