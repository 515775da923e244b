package formats

import (
	"encoding/json"
	"time"

	"github.com/deckoracle/backend/internal/entities"
)

// JSONCodec handles the ExportedDeck envelope. It is the only format that
// preserves card identity across an export/import round trip.
type JSONCodec struct{}

func (JSONCodec) Encode(deck entities.Deck, cards []entities.Card, progress map[string]CardProgressData) ([]byte, error) {
	exported := make([]ExportedCard, 0, len(cards))
	for _, card := range cards {
		ec := ExportedCard{
			ID:        card.ID,
			Front:     card.Front,
			Back:      card.Back,
			Tags:      []string{},
			Media:     []MediaAttachment{},
			CreatedAt: card.CreatedAt,
			UpdatedAt: card.UpdatedAt,
		}
		if p, ok := progress[card.ID]; ok {
			ec.Progress = &p
		}
		exported = append(exported, ec)
	}

	doc := ExportedDeck{
		ID:          deck.ID,
		Title:       deck.Title,
		Description: deck.Description,
		Tags:        []string{},
		CreatedAt:   deck.CreatedAt,
		UpdatedAt:   deck.UpdatedAt,
		Cards:       exported,
		Metadata: ExportMetadata{
			Version:          ExportVersion,
			ExportedAt:       time.Now().UTC(),
			Platform:         PlatformName,
			Format:           string(FormatJSON),
			TotalCards:       len(exported),
			IncludesProgress: progress != nil,
			IncludesMedia:    false,
		},
	}

	return json.MarshalIndent(doc, "", "  ")
}

func (JSONCodec) Decode(data []byte) (*DecodedDeck, error) {
	var doc ExportedDeck
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, decodeErr(FormatJSON, "not a valid deck document", err)
	}
	// Unmarshal accepts null and documents of the wrong shape, leaving
	// the struct zero-valued. A deck document always carries a title.
	if doc.Title == "" {
		return nil, decodeErr(FormatJSON, "not a valid deck document: missing title", nil)
	}

	// A missing or empty cards list is legal; the validator reports it as
	// a warning, not an error.
	decoded := &DecodedDeck{
		Title:       doc.Title,
		Description: doc.Description,
		Cards:       make([]DecodedCard, 0, len(doc.Cards)),
	}
	for _, card := range doc.Cards {
		decoded.Cards = append(decoded.Cards, DecodedCard{
			ID:    card.ID,
			Front: card.Front,
			Back:  card.Back,
		})
	}
	return decoded, nil
}
