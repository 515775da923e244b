package cards

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/deckoracle/backend/internal/database"
	"github.com/deckoracle/backend/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	dbPath := "./test_cards_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func createDeck(t *testing.T, db *gorm.DB) *entities.Deck {
	t.Helper()
	user := entities.User{Email: strings.ReplaceAll(t.Name(), "/", "_") + "@example.com"}
	require.NoError(t, db.Create(&user).Error)
	deck := entities.Deck{UserID: user.ID, Title: "Deck"}
	require.NoError(t, db.Create(&deck).Error)
	return &deck
}

func TestRepository_CreateCard(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	deck := createDeck(t, db)

	t.Run("first card lands at position zero", func(t *testing.T) {
		card := entities.Card{DeckID: deck.ID, Front: "q1", Back: "a1"}
		require.NoError(t, repo.CreateCard(&card))
		assert.Equal(t, 0, card.Position)
	})

	t.Run("subsequent cards append densely", func(t *testing.T) {
		second := entities.Card{DeckID: deck.ID, Front: "q2", Back: "a2"}
		require.NoError(t, repo.CreateCard(&second))
		third := entities.Card{DeckID: deck.ID, Front: "q3", Back: "a3"}
		require.NoError(t, repo.CreateCard(&third))

		assert.Equal(t, 1, second.Position)
		assert.Equal(t, 2, third.Position)
	})
}

func TestRepository_ListForDeck(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	deck := createDeck(t, db)

	// insert out of order
	for _, pos := range []int{2, 0, 1} {
		card := entities.Card{DeckID: deck.ID, Front: "f", Back: "b", Position: pos}
		require.NoError(t, db.Create(&card).Error)
	}

	cards, err := repo.ListForDeck(deck.ID)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, 0, cards[0].Position)
	assert.Equal(t, 2, cards[2].Position)
}

func TestRepository_CountForDeck(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	deck := createDeck(t, db)

	count, err := repo.CountForDeck(deck.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	card := entities.Card{DeckID: deck.ID, Front: "f", Back: "b"}
	require.NoError(t, repo.CreateCard(&card))

	count, err = repo.CountForDeck(deck.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_SearchForUser(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	deck := createDeck(t, db)

	require.NoError(t, repo.CreateCard(&entities.Card{DeckID: deck.ID, Front: "photosynthesis", Back: "plants"}))
	require.NoError(t, repo.CreateCard(&entities.Card{DeckID: deck.ID, Front: "mitosis", Back: "cell division"}))

	found, err := repo.SearchForUser(deck.UserID, "PHOTO")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "photosynthesis", found[0].Front)
}

func TestNextPosition(t *testing.T) {
	_, db, cleanup := setupTestDB(t)
	defer cleanup()
	deck := createDeck(t, db)

	next, err := NextPosition(db, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, next)

	card := entities.Card{DeckID: deck.ID, Front: "f", Back: "b", Position: 4}
	require.NoError(t, db.Create(&card).Error)

	next, err = NextPosition(db, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, next)
}
