// Package cards provides database operations for card management.
package cards

import (
	"gorm.io/gorm"

	"github.com/deckoracle/backend/internal/entities"
)

// Repository handles all card database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new cards repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListForDeck retrieves a deck's cards in study order. Position ties are
// broken by insertion order.
func (r *Repository) ListForDeck(deckID string) ([]entities.Card, error) {
	var cards []entities.Card
	err := r.db.Where("deck_id = ?", deckID).
		Order("position ASC, created_at ASC").
		Find(&cards).Error
	return cards, err
}

// GetCard retrieves a card by ID.
func (r *Repository) GetCard(id string) (*entities.Card, error) {
	var card entities.Card
	err := r.db.First(&card, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// CreateCard creates a card, appending it at the end of the deck when no
// position is supplied.
func (r *Repository) CreateCard(card *entities.Card) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if card.Position == 0 {
			next, err := NextPosition(tx, card.DeckID)
			if err != nil {
				return err
			}
			card.Position = next
		}
		return tx.Create(card).Error
	})
}

// UpdateCard persists changes to a card.
func (r *Repository) UpdateCard(card *entities.Card) error {
	return r.db.Save(card).Error
}

// DeleteCard removes a card.
func (r *Repository) DeleteCard(id string) error {
	return r.db.Delete(&entities.Card{}, "id = ?", id).Error
}

// CountForDeck returns the number of cards in a deck.
func (r *Repository) CountForDeck(deckID string) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Card{}).Where("deck_id = ?", deckID).Count(&count).Error
	return count, err
}

// SearchForUser finds cards in the user's decks matching the query.
func (r *Repository) SearchForUser(userID, query string) ([]entities.Card, error) {
	var cards []entities.Card
	pattern := "%" + query + "%"
	err := r.db.
		Joins("JOIN decks ON decks.id = cards.deck_id").
		Where("decks.user_id = ? AND (LOWER(cards.front) LIKE LOWER(?) OR LOWER(cards.back) LIKE LOWER(?))",
			userID, pattern, pattern).
		Order("cards.deck_id, cards.position ASC").
		Find(&cards).Error
	return cards, err
}

// NextPosition returns the position the next card appended to the deck
// should take: max(position)+1, or 0 for an empty deck. Runs on the given
// handle so importers can call it mid-transaction.
func NextPosition(tx *gorm.DB, deckID string) (int, error) {
	var max *int
	err := tx.Model(&entities.Card{}).
		Where("deck_id = ?", deckID).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}
