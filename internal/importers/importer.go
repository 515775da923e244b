package importers

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/deckoracle/backend/internal/database/cards"
	"github.com/deckoracle/backend/internal/entities"
	"github.com/deckoracle/backend/internal/formats"
)

// ErrDuplicateDeck is returned when the user already owns a deck with the
// imported title and merging was not requested. Nothing is written.
var ErrDuplicateDeck = errors.New("deck with the same title already exists")

// Importer persists decoded deck payloads. Every call processes exactly
// one logical deck inside one transaction; bulk import is the caller
// invoking Import once per file.
type Importer struct {
	db        *gorm.DB
	validator Validator
}

// NewImporter creates an importer over the given database handle.
func NewImporter(db *gorm.DB) *Importer {
	return &Importer{db: db}
}

// Import validates, decodes, and persists one deck payload.
//
// The returned error is non-nil only for policy violations
// (ErrDuplicateDeck) and storage failures; structural problems with the
// payload come back inside the ImportResult with Success=false. On any
// error no deck or card from this call persists.
func (i *Importer) Import(ctx context.Context, data []byte, format formats.Format, userID string, folderID *string, mergeDuplicates bool) (ImportResult, error) {
	result := newImportResult()

	validation := i.validator.Validate(data, format)
	result.Warnings = append(result.Warnings, validation.Warnings...)
	if !validation.IsValid {
		result.Errors = append(result.Errors, validation.Errors...)
		return result, nil
	}

	codec, err := formats.ForFormat(format)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result, nil
	}
	decoded, err := codec.Decode(data)
	if err != nil {
		// Validate already decoded this payload once, so only a race with
		// the caller mutating the buffer gets here.
		result.Errors = append(result.Errors, err.Error())
		return result, nil
	}

	var imported ImportedDeck
	var skipped int

	err = i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deckID, wasMerged, err := resolveTargetDeck(tx, decoded, userID, folderID, mergeDuplicates)
		if err != nil {
			return err
		}

		inserted, dup, err := insertCards(tx, deckID, decoded.Cards)
		if err != nil {
			return err
		}
		skipped = dup

		imported = ImportedDeck{
			ID:        deckID,
			Title:     decoded.Title,
			CardCount: inserted,
			WasMerged: wasMerged,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateDeck) {
			return result, err
		}
		return result, fmt.Errorf("import transaction failed: %w", err)
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d cards already present were skipped", skipped))
	}
	result.Success = true
	result.ImportedDecks = append(result.ImportedDecks, imported)
	result.TotalCardsImported = imported.CardCount
	result.TotalDecksImported = 1
	return result, nil
}

// resolveTargetDeck finds the deck the cards land in: an existing deck
// with the same title when merging, otherwise a freshly created one.
func resolveTargetDeck(tx *gorm.DB, decoded *formats.DecodedDeck, userID string, folderID *string, mergeDuplicates bool) (string, bool, error) {
	var existing entities.Deck
	err := tx.Where("user_id = ? AND title = ?", userID, decoded.Title).First(&existing).Error
	switch {
	case err == nil:
		if !mergeDuplicates {
			return "", false, ErrDuplicateDeck
		}
		return existing.ID, true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		deck := entities.Deck{
			UserID:      userID,
			FolderID:    folderID,
			Title:       decoded.Title,
			Description: decoded.Description,
			IsPublic:    false,
		}
		if err := tx.Create(&deck).Error; err != nil {
			return "", false, err
		}
		return deck.ID, false, nil
	default:
		return "", false, err
	}
}

// insertCards appends cards in decoded order with dense positions starting
// at the deck's current max+1. Cards carrying an ID already present in
// storage are skipped (insert-if-absent), which makes re-importing the
// same export idempotent.
func insertCards(tx *gorm.DB, deckID string, decodedCards []formats.DecodedCard) (inserted, skipped int, err error) {
	position, err := cards.NextPosition(tx, deckID)
	if err != nil {
		return 0, 0, err
	}

	for _, dc := range decodedCards {
		card := entities.Card{
			ID:       dc.ID,
			DeckID:   deckID,
			Front:    dc.Front,
			Back:     dc.Back,
			Position: position,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&card)
		if res.Error != nil {
			return 0, 0, res.Error
		}
		if res.RowsAffected == 0 {
			skipped++
			continue
		}
		inserted++
		position++
	}
	return inserted, skipped, nil
}
