package decks

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
	dbPath := "./test_decks_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

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

func createUser(t *testing.T, db *gorm.DB, email string) string {
	t.Helper()
	user := entities.User{Email: email}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func TestRepository_CreateDeck(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	userID := createUser(t, db, "create@example.com")

	deck := entities.Deck{UserID: userID, Title: "Biology"}
	err := repo.CreateDeck(&deck)

	require.NoError(t, err)
	assert.NotEmpty(t, deck.ID)
	assert.Len(t, deck.ID, 36)
}

func TestRepository_GetDeck(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	owner := createUser(t, db, "owner@example.com")
	other := createUser(t, db, "other@example.com")

	private := entities.Deck{UserID: owner, Title: "Private"}
	require.NoError(t, repo.CreateDeck(&private))
	public := entities.Deck{UserID: owner, Title: "Public", IsPublic: true}
	require.NoError(t, repo.CreateDeck(&public))

	t.Run("owner can read a private deck", func(t *testing.T) {
		got, err := repo.GetDeck(private.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, "Private", got.Title)
	})

	t.Run("other users cannot read a private deck", func(t *testing.T) {
		_, err := repo.GetDeck(private.ID, other)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("public decks are readable by anyone", func(t *testing.T) {
		got, err := repo.GetDeck(public.ID, other)
		require.NoError(t, err)
		assert.Equal(t, "Public", got.Title)
	})

	t.Run("GetOwnedDeck hides public decks of others", func(t *testing.T) {
		_, err := repo.GetOwnedDeck(public.ID, other)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestRepository_FindByTitle(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	userID := createUser(t, db, "title@example.com")

	deck := entities.Deck{UserID: userID, Title: "Exact Title"}
	require.NoError(t, repo.CreateDeck(&deck))

	found, err := repo.FindByTitle(userID, "Exact Title")
	require.NoError(t, err)
	assert.Equal(t, deck.ID, found.ID)

	_, err = repo.FindByTitle(userID, "exact title")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_ListForUser(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	userID := createUser(t, db, "list@example.com")

	withCards := entities.Deck{UserID: userID, Title: "A"}
	require.NoError(t, repo.CreateDeck(&withCards))
	for i := 0; i < 3; i++ {
		card := entities.Card{DeckID: withCards.ID, Front: "f", Back: "b", Position: i}
		require.NoError(t, db.Create(&card).Error)
	}
	empty := entities.Deck{UserID: userID, Title: "B"}
	require.NoError(t, repo.CreateDeck(&empty))

	list, err := repo.ListForUser(userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Title)
	assert.Equal(t, int64(3), list[0].CardCount)
	assert.Equal(t, int64(0), list[1].CardCount)
}

func TestRepository_SearchForUser(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	userID := createUser(t, db, "search@example.com")

	require.NoError(t, repo.CreateDeck(&entities.Deck{UserID: userID, Title: "Spanish Verbs"}))
	require.NoError(t, repo.CreateDeck(&entities.Deck{UserID: userID, Title: "Chemistry", Description: "verbose notes"}))
	require.NoError(t, repo.CreateDeck(&entities.Deck{UserID: userID, Title: "Math"}))

	found, err := repo.SearchForUser(userID, "verb")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestRepository_DeleteDeck(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	userID := createUser(t, db, "delete@example.com")

	deck := entities.Deck{UserID: userID, Title: "Doomed"}
	require.NoError(t, repo.CreateDeck(&deck))
	card := entities.Card{DeckID: deck.ID, Front: "f", Back: "b"}
	require.NoError(t, db.Create(&card).Error)

	require.NoError(t, repo.DeleteDeck(deck.ID))

	var deckCount, cardCount int64
	require.NoError(t, db.Model(&entities.Deck{}).Where("id = ?", deck.ID).Count(&deckCount).Error)
	require.NoError(t, db.Model(&entities.Card{}).Where("deck_id = ?", deck.ID).Count(&cardCount).Error)
	assert.Zero(t, deckCount)
	assert.Zero(t, cardCount)
}
