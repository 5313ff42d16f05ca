package handlers

import (
	"net/http"

	"github.com/Ayam7273/Eventmories/internal/middleware"
	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/Ayam7273/Eventmories/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	auth     *services.AuthService
	identity services.IdentityResolver
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *services.AuthService, identity services.IdentityResolver) *AuthHandler {
	return &AuthHandler{auth: auth, identity: identity}
}

// RegisterAuthRoutes registers the public sign-in routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
	g.POST("/firebase-login", h.FirebaseLogin)
	g.POST("/password-reset", h.PasswordReset)
}

// RegisterSessionRoutes registers routes that need an authenticated session
func (h *AuthHandler) RegisterSessionRoutes(g *echo.Group) {
	g.GET("/auth/session", h.Session)
	g.POST("/auth/signout", h.SignOut)
}

// Signup handles local user registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.CreateLocalUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.auth.Signup(c.Request().Context(), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusCreated, session)
}

// SignIn handles local user authentication with email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.auth.SignIn(c.Request().Context(), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, session)
}

// FirebaseLogin exchanges a Firebase ID token from an OAuth sign-in for a local session
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.auth.FirebaseLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, session)
}

// PasswordReset always answers 202 so it cannot be used to discover accounts
func (h *AuthHandler) PasswordReset(c echo.Context) error {
	var req models.PasswordResetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	h.auth.RequestPasswordReset(c.Request().Context(), req.Email)
	return respond(c, http.StatusAccepted, echo.Map{"message": "If that email is registered, a reset link is on its way."})
}

// Session returns the current identity
func (h *AuthHandler) Session(c echo.Context) error {
	identity, err := h.identity.Resolve(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, echo.Map{"user": identity})
}

// SignOut revokes the token used for this request
func (h *AuthHandler) SignOut(c echo.Context) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	if err := h.auth.SignOut(c.Request().Context(), claims); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
