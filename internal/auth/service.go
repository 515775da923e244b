// Package auth implements account registration, credential checks, and
// the JWT access / opaque refresh token pair used by the HTTP API.
package auth

import (
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"github.com/deckoracle/backend/internal/config"
	"github.com/deckoracle/backend/internal/database/users"
	"github.com/deckoracle/backend/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrEmailInvalid       = errors.New("invalid email format")
	ErrPasswordRequired   = errors.New("password is required")
)

// Service handles authentication and account management.
type Service struct {
	users  *users.Repository
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(repo *users.Repository, cfg config.Auth) *Service {
	return &Service{users: repo, config: cfg}
}

// TokenPair is the credential set issued on login, registration, and
// refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Register creates a new account and issues its first token pair.
func (s *Service) Register(email, password, displayName string) (*entities.User, *TokenPair, error) {
	if email == "" {
		return nil, nil, ErrEmailRequired
	}
	// RFC 5321 caps addresses at 254 bytes
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, nil, ErrEmailInvalid
	}
	if password == "" {
		return nil, nil, ErrPasswordRequired
	}

	_, err := s.users.GetUserByEmail(email)
	if err == nil {
		return nil, nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &entities.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
	}
	if err := s.users.CreateUser(user); err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Login validates credentials and issues a token pair. Unknown emails
// and wrong passwords report the same error.
func (s *Service) Login(email, password string) (*entities.User, *TokenPair, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh pair is issued.
func (s *Service) Refresh(refreshToken string) (*TokenPair, error) {
	stored, err := s.users.GetRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	user, err := s.users.GetUserByID(stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.users.RevokeRefreshToken(refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.issueTokens(user)
}

// Logout revokes a refresh token. Revoking an unknown token is not an
// error.
func (s *Service) Logout(refreshToken string) error {
	return s.users.RevokeRefreshToken(refreshToken)
}

// CurrentUser loads the account behind an authenticated user ID.
func (s *Service) CurrentUser(userID string) (*entities.User, error) {
	return s.users.GetUserByID(userID)
}

// ValidateToken parses and verifies an access token.
func (s *Service) ValidateToken(token string) (*Claims, error) {
	return ValidateAccessToken([]byte(s.config.JWTSecret), token)
}

func (s *Service) issueTokens(user *entities.User) (*TokenPair, error) {
	access, expiresIn, err := GenerateAccessToken(
		[]byte(s.config.JWTSecret), s.config.AccessTokenExpiry, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	refresh, expiresAt, err := GenerateRefreshToken(s.config.RefreshTokenExpiry)
	if err != nil {
		return nil, err
	}
	err = s.users.SaveRefreshToken(&entities.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
	}, nil
}
