package handlers

import (
	"net/http"
	"strconv"

	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/Ayam7273/Eventmories/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves feed creation, joining and the feed page
type FeedHandler struct {
	feeds *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feeds *services.FeedService) *FeedHandler {
	return &FeedHandler{feeds: feeds}
}

// RegisterFeedRoutes registers feed routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeedPage)
	g.GET("/feeds", h.ListFeeds)
	g.POST("/feeds", h.CreateFeed)
	g.POST("/feeds/join", h.JoinFeed)
}

// GetFeedPage returns the user's feeds, the selected feed and its posts.
// ?feedId selects a feed and ?postId is echoed back as the post to focus.
func (h *FeedHandler) GetFeedPage(c echo.Context) error {
	var feedID uint
	if raw := c.QueryParam("feedId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			feedID = uint(id)
		}
	}

	page, err := h.feeds.OpenPage(c.Request().Context(), getUserIDFromContext(c), feedID, c.QueryParam("postId"))
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, page)
}

func (h *FeedHandler) ListFeeds(c echo.Context) error {
	feeds, err := h.feeds.ListFeeds(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, echo.Map{"feeds": feeds})
}

func (h *FeedHandler) CreateFeed(c echo.Context) error {
	var req models.CreateFeedRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	feed, err := h.feeds.CreateFeed(c.Request().Context(), getUserIDFromContext(c), req.Name)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusCreated, echo.Map{"feed": feed})
}

func (h *FeedHandler) JoinFeed(c echo.Context) error {
	var req models.JoinFeedRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	feed, err := h.feeds.JoinFeed(c.Request().Context(), getUserIDFromContext(c), req.Code)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, echo.Map{"feed": feed})
}
