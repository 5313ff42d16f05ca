package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/Ayam7273/Eventmories/internal/models"
	"github.com/Ayam7273/Eventmories/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenTTL is the lifetime of a locally issued session token.
const TokenTTL = 72 * time.Hour

// FirebaseAuth is the part of the Firebase admin auth client used for OAuth
// sign-in. *auth.Client satisfies it.
type FirebaseAuth interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// PasswordResetSender emails a password reset link to an account holder.
type PasswordResetSender interface {
	SendPasswordReset(ctx context.Context, email string) error
}

// Session is returned by every successful sign-in.
type Session struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      *models.Identity `json:"user"`
}

type AuthService struct {
	users    repositories.UserRepository
	sessions repositories.SessionRepository
	identity *IdentityService
	firebase FirebaseAuth
	resets   PasswordResetSender
	secret   []byte
	now      func() time.Time
}

// NewAuthService wires local and OAuth sign-in. firebase and resets may be nil,
// in which case only email/password accounts work and resets are not sent.
func NewAuthService(
	users repositories.UserRepository,
	sessions repositories.SessionRepository,
	identity *IdentityService,
	firebase FirebaseAuth,
	resets PasswordResetSender,
	jwtSecret string,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		identity: identity,
		firebase: firebase,
		resets:   resets,
		secret:   []byte(jwtSecret),
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Signup(ctx context.Context, req *models.CreateLocalUserRequest) (*Session, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Name: strings.TrimSpace(req.Name), Email: email, Password: string(hashed)}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.issue(ctx, user)
}

func (s *AuthService) SignIn(ctx context.Context, req *models.SignInRequest) (*Session, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	// OAuth-only accounts have no password to compare against.
	if user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, user)
}

// FirebaseLogin exchanges an OAuth ID token for a local session, creating or
// linking the account by Firebase UID and then by email.
func (s *AuthService) FirebaseLogin(ctx context.Context, idToken string) (*Session, error) {
	if s.firebase == nil {
		return nil, ErrInvalidToken
	}
	token, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		log.Debug().Err(err).Msg("firebase token rejected")
		return nil, ErrInvalidToken
	}

	email, _ := token.Claims["email"].(string)
	email = normalizeEmail(email)
	name, _ := token.Claims["name"].(string)

	user, err := s.linkFirebaseUser(ctx, token.UID, email, name)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, user)
}

func (s *AuthService) linkFirebaseUser(ctx context.Context, uid, email, name string) (*models.User, error) {
	user, err := s.users.GetUserByFirebaseUID(ctx, uid)
	if err == nil {
		changed := false
		if email != "" && user.Email != email {
			user.Email = email
			changed = true
		}
		if name != "" && user.Name != name {
			user.Name = name
			changed = true
		}
		if changed {
			if err := s.users.UpdateUser(ctx, user); err != nil {
				return nil, fmt.Errorf("update user: %w", err)
			}
			s.identity.Invalidate(ctx, user.ID)
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if email != "" {
		user, err = s.users.GetUserByEmail(ctx, email)
		if err == nil {
			user.FirebaseUID = &uid
			if user.Name == "" {
				user.Name = name
			}
			if err := s.users.UpdateUser(ctx, user); err != nil {
				return nil, fmt.Errorf("link firebase account: %w", err)
			}
			s.identity.Invalidate(ctx, user.ID)
			return user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lookup user: %w", err)
		}
	}

	user = &models.User{Name: name, Email: email, FirebaseUID: &uid}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// RequestPasswordReset emails a reset link. It never reports whether the email
// is registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) {
	email = normalizeEmail(email)
	if s.resets == nil {
		log.Warn().Msg("password reset requested but no reset sender is configured")
		return
	}
	if err := s.resets.SendPasswordReset(ctx, email); err != nil {
		log.Info().Err(err).Msg("password reset email not sent")
		return
	}
	log.Info().Msg("password reset email sent")
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*Session, error) {
	identity, err := s.identity.Resolve(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expires := now.Add(TokenTTL)
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Session{Token: token, ExpiresAt: expires, User: identity}, nil
}

// Authenticate accepts a locally issued session token or, when Firebase is
// configured, a Firebase ID token for an already linked account.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err == nil && token.Valid {
		revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
		if err != nil {
			log.Warn().Err(err).Msg("session revocation check failed")
		}
		if revoked {
			return nil, ErrInvalidToken
		}
		return claims, nil
	}

	if s.firebase == nil {
		return nil, ErrInvalidToken
	}
	fbToken, fbErr := s.firebase.VerifyIDToken(ctx, tokenString)
	if fbErr != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.GetUserByFirebaseUID(ctx, fbToken.UID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &models.JwtCustomClaims{UserID: user.ID, Email: user.Email}, nil
}

// SignOut revokes the session until the token would have expired.
func (s *AuthService) SignOut(ctx context.Context, claims *models.JwtCustomClaims) error {
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	return s.sessions.Revoke(ctx, claims.ID, claims.ExpiresAt.Time.Sub(s.now()))
}
