package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/deckoracle/backend/internal/database/cards"
	"github.com/deckoracle/backend/internal/database/decks"
	"github.com/deckoracle/backend/internal/entities"
)

type CardsController struct {
	cards *cards.Repository
	decks *decks.Repository
}

func NewCardsController(cardRepo *cards.Repository, deckRepo *decks.Repository) *CardsController {
	return &CardsController{cards: cardRepo, decks: deckRepo}
}

type cardRequest struct {
	Front string `json:"front" binding:"required"`
	Back  string `json:"back" binding:"required"`
}

// ownedDeck loads the deck for a card operation, enforcing ownership.
// Responds and returns nil when the deck is unavailable.
func (cc *CardsController) ownedDeck(c *gin.Context, deckID string) *entities.Deck {
	deck, err := cc.decks.GetOwnedDeck(deckID, GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "deck")
			return nil
		}
		respondInternalError(c, err, "get deck")
		return nil
	}
	return deck
}

// ListCards returns the deck's cards in study order.
func (cc *CardsController) ListCards(c *gin.Context) {
	deck := cc.ownedDeck(c, c.Param("id"))
	if deck == nil {
		return
	}

	list, err := cc.cards.ListForDeck(deck.ID)
	if err != nil {
		respondInternalError(c, err, "list cards")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": list})
}

// CreateCard appends a card at the end of the deck.
func (cc *CardsController) CreateCard(c *gin.Context) {
	deck := cc.ownedDeck(c, c.Param("id"))
	if deck == nil {
		return
	}

	var req cardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "front and back are required")
		return
	}

	card := entities.Card{
		DeckID: deck.ID,
		Front:  req.Front,
		Back:   req.Back,
	}
	if err := cc.cards.CreateCard(&card); err != nil {
		respondInternalError(c, err, "create card")
		return
	}
	respondCreated(c, card)
}

func (cc *CardsController) UpdateCard(c *gin.Context) {
	card, ok := cc.ownedCard(c)
	if !ok {
		return
	}

	var req cardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "front and back are required")
		return
	}

	card.Front = req.Front
	card.Back = req.Back
	if err := cc.cards.UpdateCard(card); err != nil {
		respondInternalError(c, err, "update card")
		return
	}
	c.JSON(http.StatusOK, card)
}

func (cc *CardsController) DeleteCard(c *gin.Context) {
	card, ok := cc.ownedCard(c)
	if !ok {
		return
	}

	if err := cc.cards.DeleteCard(card.ID); err != nil {
		respondInternalError(c, err, "delete card")
		return
	}
	respondSuccess(c, "card deleted")
}

// SearchCards finds cards across all of the user's decks.
func (cc *CardsController) SearchCards(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondBadRequest(c, "q is required")
		return
	}

	found, err := cc.cards.SearchForUser(GetUserID(c), query)
	if err != nil {
		respondInternalError(c, err, "search cards")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": found})
}

// ownedCard loads a card and verifies the caller owns its deck.
func (cc *CardsController) ownedCard(c *gin.Context) (*entities.Card, bool) {
	card, err := cc.cards.GetCard(c.Param("cardId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "card")
			return nil, false
		}
		respondInternalError(c, err, "get card")
		return nil, false
	}

	if deck := cc.ownedDeck(c, card.DeckID); deck == nil {
		return nil, false
	}
	return card, true
}
