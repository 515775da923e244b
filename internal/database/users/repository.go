// Package users provides database operations for user accounts and
// refresh tokens.
package users

import (
	"time"

	"gorm.io/gorm"

	"github.com/deckoracle/backend/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user account.
func (r *Repository) CreateUser(user *entities.User) error {
	return r.db.Create(user).Error
}

// GetUserByEmail retrieves a user by email.
func (r *Repository) GetUserByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(id string) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveRefreshToken stores a refresh token.
func (r *Repository) SaveRefreshToken(token *entities.RefreshToken) error {
	return r.db.Create(token).Error
}

// GetRefreshToken retrieves an unrevoked, unexpired refresh token.
func (r *Repository) GetRefreshToken(token string) (*entities.RefreshToken, error) {
	var rt entities.RefreshToken
	err := r.db.Where("token = ? AND revoked_at IS NULL AND expires_at > ?", token, time.Now().UTC()).
		First(&rt).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// RevokeRefreshToken marks a refresh token revoked.
func (r *Repository) RevokeRefreshToken(token string) error {
	now := time.Now().UTC()
	return r.db.Model(&entities.RefreshToken{}).
		Where("token = ?", token).
		Update("revoked_at", &now).Error
}

// PurgeExpiredTokens deletes refresh tokens past their expiry. Used by the
// scheduled maintenance job.
func (r *Repository) PurgeExpiredTokens() (int64, error) {
	result := r.db.Where("expires_at < ?", time.Now().UTC()).
		Delete(&entities.RefreshToken{})
	return result.RowsAffected, result.Error
}
