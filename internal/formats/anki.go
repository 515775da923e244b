package formats

import (
	"encoding/json"

	"github.com/deckoracle/backend/internal/entities"
)

// Anki scheduling defaults for cards without recorded progress.
const (
	ankiDefaultFactor = 2500
	ankiModelID       = 1
	ankiDeckID        = 1
)

// AnkiCodec handles the reduced Anki note model. The payload is a JSON
// document, not an .apkg container; every card uses the fixed two-field
// "Basic" model.
type AnkiCodec struct{}

func (AnkiCodec) Encode(deck entities.Deck, cards []entities.Card, progress map[string]CardProgressData) ([]byte, error) {
	model := AnkiModel{
		ID:   ankiModelID,
		Name: ankiBasicModel,
		Flds: []AnkiField{
			{Name: "Front", Ord: 0},
			{Name: "Back", Ord: 1},
		},
		Tmpls: []AnkiTemplate{
			{
				Name: "Card 1",
				Qfmt: "{{Front}}",
				Afmt: "{{FrontSide}}<hr id=\"answer\">{{Back}}",
			},
		},
	}

	notes := make([]AnkiNote, 0, len(cards))
	ankiCards := make([]AnkiCard, 0, len(cards))
	for i, card := range cards {
		notes = append(notes, AnkiNote{
			ID:     int64(i) + 1,
			GUID:   card.ID,
			Mid:    ankiModelID,
			Fields: []string{card.Front, card.Back},
			Tags:   []string{},
		})

		ac := AnkiCard{
			Nid:    int64(i) + 1,
			Did:    ankiDeckID,
			Factor: ankiDefaultFactor,
		}
		if p, ok := progress[card.ID]; ok {
			ac.Ivl = p.IntervalDays
			ac.Factor = int(p.EaseFactor * 1000)
			ac.Reps = p.ReviewCount
		}
		ankiCards = append(ankiCards, ac)
	}

	doc := AnkiDeck{
		Name:   deck.Title,
		Desc:   deck.Description,
		Cards:  ankiCards,
		Notes:  notes,
		Models: []AnkiModel{model},
	}
	return json.Marshal(doc)
}

func (AnkiCodec) Decode(data []byte) (*DecodedDeck, error) {
	var doc AnkiDeck
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, decodeErr(FormatAnki, "not a valid Anki deck document", err)
	}
	// Unmarshal accepts null and documents of the wrong shape, leaving
	// the struct zero-valued. An Anki deck always carries a name.
	if doc.Name == "" {
		return nil, decodeErr(FormatAnki, "not a valid Anki deck document: missing deck name", nil)
	}

	decoded := &DecodedDeck{
		Title:       doc.Name,
		Description: doc.Desc,
		Cards:       make([]DecodedCard, 0, len(doc.Notes)),
	}
	for _, note := range doc.Notes {
		// Only the first two fields map onto front/back; short notes are
		// skipped without a warning.
		if len(note.Fields) < 2 {
			continue
		}
		decoded.Cards = append(decoded.Cards, DecodedCard{
			Front: note.Fields[0],
			Back:  note.Fields[1],
		})
	}
	return decoded, nil
}
