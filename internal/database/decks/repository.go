// Package decks provides database operations for deck management.
package decks

import (
	"gorm.io/gorm"

	"github.com/deckoracle/backend/internal/entities"
)

// Repository handles all deck database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new decks repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DeckWithStats is a deck row joined with its card count for list views.
type DeckWithStats struct {
	entities.Deck
	CardCount int64 `json:"card_count"`
}

// CreateDeck creates a new deck.
func (r *Repository) CreateDeck(deck *entities.Deck) error {
	return r.db.Create(deck).Error
}

// GetDeck retrieves a deck readable by the user (owned or public).
func (r *Repository) GetDeck(id, userID string) (*entities.Deck, error) {
	var deck entities.Deck
	err := r.db.Where("id = ? AND (user_id = ? OR is_public = ?)", id, userID, true).
		First(&deck).Error
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

// GetOwnedDeck retrieves a deck only when the user owns it.
// Non-owned decks report not-found, never forbidden.
func (r *Repository) GetOwnedDeck(id, userID string) (*entities.Deck, error) {
	var deck entities.Deck
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&deck).Error
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

// FindByTitle looks up a user's deck by exact title.
func (r *Repository) FindByTitle(userID, title string) (*entities.Deck, error) {
	var deck entities.Deck
	err := r.db.Where("user_id = ? AND title = ?", userID, title).First(&deck).Error
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

// ListForUser retrieves all decks owned by a user with card counts,
// ordered by title.
func (r *Repository) ListForUser(userID string) ([]DeckWithStats, error) {
	var decks []DeckWithStats
	err := r.db.Model(&entities.Deck{}).
		Select("decks.*, COUNT(cards.id) AS card_count").
		Joins("LEFT JOIN cards ON cards.deck_id = decks.id").
		Where("decks.user_id = ?", userID).
		Group("decks.id").
		Order("decks.title ASC").
		Find(&decks).Error
	return decks, err
}

// SearchForUser finds decks whose title or description matches the query.
func (r *Repository) SearchForUser(userID, query string) ([]entities.Deck, error) {
	var decks []entities.Deck
	pattern := "%" + query + "%"
	err := r.db.Where("user_id = ? AND (LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?))",
		userID, pattern, pattern).
		Order("title ASC").
		Find(&decks).Error
	return decks, err
}

// UpdateDeck persists changes to a deck.
func (r *Repository) UpdateDeck(deck *entities.Deck) error {
	return r.db.Save(deck).Error
}

// DeleteDeck removes a deck and its cards.
func (r *Repository) DeleteDeck(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deck_id = ?", id).Delete(&entities.Card{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Deck{}, "id = ?", id).Error
	})
}
