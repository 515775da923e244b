// Package exporters turns stored decks into downloadable documents
// in any of the supported interchange formats.
package exporters

import (
	"bytes"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/deckoracle/backend/internal/entities"
	"github.com/deckoracle/backend/internal/formats"
)

// ErrDeckNotFound reports that the deck does not exist or is not
// owned by the requesting user.
var ErrDeckNotFound = errors.New("deck not found")

// DeckReader retrieves decks scoped to their owner.
type DeckReader interface {
	GetOwnedDeck(id, userID string) (*entities.Deck, error)
}

// CardReader retrieves a deck's cards in study order.
type CardReader interface {
	ListForDeck(deckID string) ([]entities.Card, error)
}

// ProgressReader retrieves per-card study progress for a user.
type ProgressReader interface {
	ProgressForDeck(userID, deckID string) (map[string]formats.CardProgressData, error)
}

// Exporter encodes decks into export documents.
type Exporter struct {
	decks    DeckReader
	cards    CardReader
	progress ProgressReader
}

// NewExporter creates a new deck exporter.
func NewExporter(decks DeckReader, cards CardReader, progress ProgressReader) *Exporter {
	return &Exporter{decks: decks, cards: cards, progress: progress}
}

// Export is a finished export document ready to be served as a download.
type Export struct {
	Data        []byte
	ContentType string
	FileName    string
}

// ExportDeck encodes a single owned deck in the requested format.
// Progress data is joined in only when the caller asks for it.
// Media attachments are never embedded, so includeMedia has no effect
// on the payload and the export metadata always reports includes_media
// as false.
func (e *Exporter) ExportDeck(userID, deckID string, format formats.Format, includeProgress, includeMedia bool) (*Export, error) {
	data, err := e.encodeDeck(userID, deckID, format, includeProgress)
	if err != nil {
		return nil, err
	}
	return &Export{
		Data:        data,
		ContentType: format.ContentType(),
		FileName:    fmt.Sprintf("deck_%s.%s", deckID, format.Extension()),
	}, nil
}

// ExportDecks encodes several owned decks into one well-formed document.
// JSON and Anki exports become an array of deck documents, CSV exports
// share a single header row, and Markdown exports are joined sections.
func (e *Exporter) ExportDecks(userID string, deckIDs []string, format formats.Format, includeProgress, includeMedia bool) (*Export, error) {
	if len(deckIDs) == 0 {
		return nil, errors.New("no decks requested")
	}
	payloads := make([][]byte, 0, len(deckIDs))
	for _, id := range deckIDs {
		data, err := e.encodeDeck(userID, id, format, includeProgress)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, data)
	}

	combined, err := combine(payloads, format)
	if err != nil {
		return nil, err
	}
	return &Export{
		Data:        combined,
		ContentType: format.ContentType(),
		FileName:    fmt.Sprintf("decks_export.%s", format.Extension()),
	}, nil
}

func (e *Exporter) encodeDeck(userID, deckID string, format formats.Format, includeProgress bool) ([]byte, error) {
	codec, err := formats.ForFormat(format)
	if err != nil {
		return nil, err
	}

	deck, err := e.decks.GetOwnedDeck(deckID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeckNotFound
		}
		return nil, fmt.Errorf("loading deck: %w", err)
	}

	cardList, err := e.cards.ListForDeck(deck.ID)
	if err != nil {
		return nil, fmt.Errorf("loading cards: %w", err)
	}

	var progress map[string]formats.CardProgressData
	if includeProgress {
		progress, err = e.progress.ProgressForDeck(userID, deck.ID)
		if err != nil {
			return nil, fmt.Errorf("loading progress: %w", err)
		}
	}

	return codec.Encode(*deck, cardList, progress)
}

func combine(payloads [][]byte, format formats.Format) ([]byte, error) {
	switch format {
	case formats.FormatJSON, formats.FormatAnki:
		return joinJSONArray(payloads), nil
	case formats.FormatCSV:
		return joinCSV(payloads), nil
	case formats.FormatMarkdown:
		return bytes.Join(payloads, nil), nil
	default:
		return nil, fmt.Errorf("%w: %s", formats.ErrUnknownFormat, format)
	}
}

// joinJSONArray wraps per-deck JSON documents into a single array.
func joinJSONArray(payloads [][]byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i, p := range payloads {
		buf.Write(bytes.TrimRight(p, "\n"))
		if i < len(payloads)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("]\n")
	return buf.Bytes()
}

// joinCSV keeps the header row of the first payload and appends the
// data rows of the rest.
func joinCSV(payloads [][]byte) []byte {
	var buf bytes.Buffer
	for i, p := range payloads {
		if i == 0 {
			buf.Write(p)
			continue
		}
		if idx := bytes.IndexByte(p, '\n'); idx >= 0 {
			buf.Write(p[idx+1:])
		}
	}
	return buf.Bytes()
}
