package exporters

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckoracle/backend/internal/database"
	"github.com/deckoracle/backend/internal/database/cards"
	"github.com/deckoracle/backend/internal/database/decks"
	"github.com/deckoracle/backend/internal/database/study"
	"github.com/deckoracle/backend/internal/entities"
	"github.com/deckoracle/backend/internal/formats"
)

func setupExporterTest(t *testing.T) (*database.Database, *Exporter, func()) {
	t.Helper()

	dbPath := "./test_exporter_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	exporter := NewExporter(
		decks.NewRepository(db.DB),
		cards.NewRepository(db.DB),
		study.NewRepository(db.DB),
	)
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, exporter, cleanup
}

func seedDeck(t *testing.T, db *database.Database, userID, title string, cardCount int) *entities.Deck {
	t.Helper()

	deck := entities.Deck{UserID: userID, Title: title, Description: "seeded"}
	require.NoError(t, db.DB.Create(&deck).Error)
	for i := 0; i < cardCount; i++ {
		card := entities.Card{
			DeckID:   deck.ID,
			Front:    title + " front " + strings.Repeat("x", i+1),
			Back:     title + " back",
			Position: i,
		}
		require.NoError(t, db.DB.Create(&card).Error)
	}
	return &deck
}

func seedUser(t *testing.T, db *database.Database, email string) string {
	t.Helper()
	user := entities.User{Email: email}
	require.NoError(t, db.DB.Create(&user).Error)
	return user.ID
}

func TestExporter_ExportDeck(t *testing.T) {
	t.Run("JSON export carries all cards", func(t *testing.T) {
		db, exporter, cleanup := setupExporterTest(t)
		defer cleanup()
		userID := seedUser(t, db, "json-export@example.com")
		deck := seedDeck(t, db, userID, "Chemistry", 3)

		export, err := exporter.ExportDeck(userID, deck.ID, formats.FormatJSON, false, false)
		require.NoError(t, err)
		assert.Equal(t, "application/json", export.ContentType)
		assert.Equal(t, "deck_"+deck.ID+".json", export.FileName)

		var doc formats.ExportedDeck
		require.NoError(t, json.Unmarshal(export.Data, &doc))
		assert.Equal(t, "Chemistry", doc.Title)
		assert.Len(t, doc.Cards, 3)
	})

	t.Run("zero card deck exports a header-only CSV", func(t *testing.T) {
		db, exporter, cleanup := setupExporterTest(t)
		defer cleanup()
		userID := seedUser(t, db, "empty-csv@example.com")
		deck := seedDeck(t, db, userID, "Empty", 0)

		export, err := exporter.ExportDeck(userID, deck.ID, formats.FormatCSV, false, false)
		require.NoError(t, err)
		assert.Equal(t, "Front,Back,Tags,Explanation,Difficulty\n", string(export.Data))
		assert.Equal(t, "text/csv", export.ContentType)
	})

	t.Run("progress is joined only when requested", func(t *testing.T) {
		db, exporter, cleanup := setupExporterTest(t)
		defer cleanup()
		userID := seedUser(t, db, "progress@example.com")
		deck := seedDeck(t, db, userID, "Tracked", 1)

		var card entities.Card
		require.NoError(t, db.DB.First(&card, "deck_id = ?", deck.ID).Error)
		now := time.Now().UTC()
		stats := entities.CardStats{
			UserID: userID, CardID: card.ID,
			ReviewCount: 4, CorrectCount: 3,
			EaseFactor: 2.7, IntervalDays: 6, LastReviewed: &now,
		}
		require.NoError(t, db.DB.Create(&stats).Error)

		export, err := exporter.ExportDeck(userID, deck.ID, formats.FormatJSON, true, false)
		require.NoError(t, err)
		var doc formats.ExportedDeck
		require.NoError(t, json.Unmarshal(export.Data, &doc))
		assert.True(t, doc.Metadata.IncludesProgress)
		require.NotNil(t, doc.Cards[0].Progress)
		assert.Equal(t, 4, doc.Cards[0].Progress.ReviewCount)

		export, err = exporter.ExportDeck(userID, deck.ID, formats.FormatJSON, false, false)
		require.NoError(t, err)
		doc = formats.ExportedDeck{}
		require.NoError(t, json.Unmarshal(export.Data, &doc))
		assert.False(t, doc.Metadata.IncludesProgress)
		assert.Nil(t, doc.Cards[0].Progress)
	})

	t.Run("another user's deck reports not found", func(t *testing.T) {
		db, exporter, cleanup := setupExporterTest(t)
		defer cleanup()
		owner := seedUser(t, db, "owner@example.com")
		stranger := seedUser(t, db, "stranger@example.com")
		deck := seedDeck(t, db, owner, "Private", 1)

		_, err := exporter.ExportDeck(stranger, deck.ID, formats.FormatJSON, false, false)
		require.ErrorIs(t, err, ErrDeckNotFound)
	})

	t.Run("unknown format is rejected", func(t *testing.T) {
		db, exporter, cleanup := setupExporterTest(t)
		defer cleanup()
		userID := seedUser(t, db, "badformat@example.com")
		deck := seedDeck(t, db, userID, "Any", 1)

		_, err := exporter.ExportDeck(userID, deck.ID, formats.Format("yaml"), false, false)
		require.ErrorIs(t, err, formats.ErrUnknownFormat)
	})
}

func TestExporter_ExportDecks(t *testing.T) {
	t.Run("JSON bulk export is one well-formed array", func(t *testing.T) {
		db, exporter, cleanup := setupExporterTest(t)
		defer cleanup()
		userID := seedUser(t, db, "bulk-json@example.com")
		d1 := seedDeck(t, db, userID, "First", 2)
		d2 := seedDeck(t, db, userID, "Second", 1)

		export, err := exporter.ExportDecks(userID, []string{d1.ID, d2.ID}, formats.FormatJSON, false, false)
		require.NoError(t, err)
		assert.Equal(t, "decks_export.json", export.FileName)

		var docs []formats.ExportedDeck
		require.NoError(t, json.Unmarshal(export.Data, &docs))
		require.Len(t, docs, 2)
		assert.Equal(t, "First", docs[0].Title)
		assert.Equal(t, "Second", docs[1].Title)
	})

	t.Run("CSV bulk export shares a single header", func(t *testing.T) {
		db, exporter, cleanup := setupExporterTest(t)
		defer cleanup()
		userID := seedUser(t, db, "bulk-csv@example.com")
		d1 := seedDeck(t, db, userID, "A", 2)
		d2 := seedDeck(t, db, userID, "B", 3)

		export, err := exporter.ExportDecks(userID, []string{d1.ID, d2.ID}, formats.FormatCSV, false, false)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimRight(string(export.Data), "\n"), "\n")
		require.Len(t, lines, 6)
		assert.Equal(t, "Front,Back,Tags,Explanation,Difficulty", lines[0])
		for _, line := range lines[1:] {
			assert.NotContains(t, line, "Difficulty")
		}
	})

	t.Run("Markdown bulk export joins deck sections", func(t *testing.T) {
		db, exporter, cleanup := setupExporterTest(t)
		defer cleanup()
		userID := seedUser(t, db, "bulk-md@example.com")
		d1 := seedDeck(t, db, userID, "Alpha", 1)
		d2 := seedDeck(t, db, userID, "Beta", 1)

		export, err := exporter.ExportDecks(userID, []string{d1.ID, d2.ID}, formats.FormatMarkdown, false, false)
		require.NoError(t, err)
		text := string(export.Data)
		assert.Contains(t, text, "# Alpha\n")
		assert.Contains(t, text, "# Beta\n")
	})

	t.Run("one missing deck fails the whole export", func(t *testing.T) {
		db, exporter, cleanup := setupExporterTest(t)
		defer cleanup()
		userID := seedUser(t, db, "bulk-missing@example.com")
		d1 := seedDeck(t, db, userID, "Present", 1)

		_, err := exporter.ExportDecks(userID, []string{d1.ID, "no-such-deck"}, formats.FormatJSON, false, false)
		require.ErrorIs(t, err, ErrDeckNotFound)
	})

	t.Run("empty deck list is rejected", func(t *testing.T) {
		db, exporter, cleanup := setupExporterTest(t)
		defer cleanup()
		_ = db

		_, err := exporter.ExportDecks("someone", nil, formats.FormatJSON, false, false)
		require.Error(t, err)
	})
}
