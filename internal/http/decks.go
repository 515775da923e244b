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

type DecksController struct {
	decks *decks.Repository
	cards *cards.Repository
}

func NewDecksController(deckRepo *decks.Repository, cardRepo *cards.Repository) *DecksController {
	return &DecksController{decks: deckRepo, cards: cardRepo}
}

type deckRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	FolderID    *string `json:"folder_id"`
	IsPublic    bool    `json:"is_public"`
}

// ListDecks returns the user's decks with card counts. An optional
// ?search= query filters by title and description.
func (d *DecksController) ListDecks(c *gin.Context) {
	userID := GetUserID(c)

	if query := c.Query("search"); query != "" {
		found, err := d.decks.SearchForUser(userID, query)
		if err != nil {
			respondInternalError(c, err, "search decks")
			return
		}
		c.JSON(http.StatusOK, gin.H{"decks": found})
		return
	}

	list, err := d.decks.ListForUser(userID)
	if err != nil {
		respondInternalError(c, err, "list decks")
		return
	}
	c.JSON(http.StatusOK, gin.H{"decks": list})
}

func (d *DecksController) CreateDeck(c *gin.Context) {
	var req deckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	deck := entities.Deck{
		UserID:      GetUserID(c),
		FolderID:    req.FolderID,
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}
	if err := d.decks.CreateDeck(&deck); err != nil {
		respondInternalError(c, err, "create deck")
		return
	}
	respondCreated(c, deck)
}

// GetDeck returns a deck with its cards. Public decks are readable by
// any authenticated user.
func (d *DecksController) GetDeck(c *gin.Context) {
	deck, err := d.decks.GetDeck(c.Param("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "deck")
			return
		}
		respondInternalError(c, err, "get deck")
		return
	}

	deckCards, err := d.cards.ListForDeck(deck.ID)
	if err != nil {
		respondInternalError(c, err, "list deck cards")
		return
	}
	deck.Cards = deckCards
	c.JSON(http.StatusOK, deck)
}

func (d *DecksController) UpdateDeck(c *gin.Context) {
	deck, err := d.decks.GetOwnedDeck(c.Param("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "deck")
			return
		}
		respondInternalError(c, err, "get deck")
		return
	}

	var req deckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	deck.Title = req.Title
	deck.Description = req.Description
	deck.FolderID = req.FolderID
	deck.IsPublic = req.IsPublic
	if err := d.decks.UpdateDeck(deck); err != nil {
		respondInternalError(c, err, "update deck")
		return
	}
	c.JSON(http.StatusOK, deck)
}

// DeleteDeck removes a deck and all of its cards.
func (d *DecksController) DeleteDeck(c *gin.Context) {
	deck, err := d.decks.GetOwnedDeck(c.Param("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "deck")
			return
		}
		respondInternalError(c, err, "get deck")
		return
	}

	if err := d.decks.DeleteDeck(deck.ID); err != nil {
		respondInternalError(c, err, "delete deck")
		return
	}
	respondSuccess(c, "deck deleted")
}
