// Package folders provides database operations for folder management.
package folders

import (
	"gorm.io/gorm"

	"github.com/deckoracle/backend/internal/entities"
)

// Repository handles all folder database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new folders repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateFolder creates a new folder.
func (r *Repository) CreateFolder(folder *entities.Folder) error {
	return r.db.Create(folder).Error
}

// GetFolder retrieves a folder owned by the user.
func (r *Repository) GetFolder(id, userID string) (*entities.Folder, error) {
	var folder entities.Folder
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&folder).Error
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// ListForUser retrieves all folders for a user ordered by position.
func (r *Repository) ListForUser(userID string) ([]entities.Folder, error) {
	var folders []entities.Folder
	err := r.db.Where("user_id = ?", userID).
		Order("position ASC, name ASC").
		Find(&folders).Error
	return folders, err
}

// UpdateFolder persists changes to a folder.
func (r *Repository) UpdateFolder(folder *entities.Folder) error {
	return r.db.Save(folder).Error
}

// DeleteFolder removes a folder. Decks inside it are detached, not deleted.
func (r *Repository) DeleteFolder(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Deck{}).
			Where("folder_id = ?", id).
			Update("folder_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&entities.Folder{}).
			Where("parent_folder_id = ?", id).
			Update("parent_folder_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Folder{}, "id = ?", id).Error
	})
}
