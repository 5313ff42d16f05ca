package handlers

import (
	"net/http"

	"github.com/Ayam7273/Eventmories/internal/services"
	"github.com/labstack/echo/v4"
)

type SearchHandler struct {
	search *services.SearchService
}

func NewSearchHandler(search *services.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

func (h *SearchHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
	g.GET("/search/recent", h.RecentSearches)
}

// Search matches ?q against post content in the caller's feeds. No match is an
// empty list, not an error.
func (h *SearchHandler) Search(c echo.Context) error {
	results, err := h.search.Search(c.Request().Context(), getUserIDFromContext(c), c.QueryParam("q"))
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, echo.Map{"results": results})
}

func (h *SearchHandler) RecentSearches(c echo.Context) error {
	terms, err := h.search.RecentSearches(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, echo.Map{"recent": terms})
}
