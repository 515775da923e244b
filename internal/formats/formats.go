// Package formats implements the per-format codecs for deck import and
// export: structured JSON, tabular CSV, a simplified Anki note model, and
// a templated Markdown dialect.
//
// Each format is a Codec: Encode turns a deck and its cards into a byte
// payload, Decode turns a byte payload back into a format-neutral
// DecodedDeck. Codecs are pure and never touch storage.
package formats

import (
	"fmt"

	"github.com/deckoracle/backend/internal/entities"
)

// Format discriminates the supported import/export representations.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatAnki     Format = "anki"
	FormatMarkdown Format = "markdown"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported discriminators.
var ErrUnknownFormat = fmt.Errorf("unknown format")

// ParseFormat validates a format discriminator string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV, FormatAnki, FormatMarkdown:
		return Format(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type for payloads of this format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatMarkdown:
		return "text/markdown"
	default:
		// Anki payloads are JSON documents, not .apkg containers.
		return "application/json"
	}
}

// Extension returns the file extension for payloads of this format.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatMarkdown:
		return "md"
	default:
		return "json"
	}
}

// DecodedCard is one card recovered from an imported payload. ID is only
// populated by formats that carry identity (JSON); it lets re-imports of
// the same export stay idempotent.
type DecodedCard struct {
	ID    string
	Front string
	Back  string
}

// DecodedDeck is the format-neutral result of decoding an import payload.
type DecodedDeck struct {
	Title       string
	Description string
	Cards       []DecodedCard
	Warnings    []string
}

// Codec encodes decks to and decodes decks from one external format.
//
// Encode is deterministic for identical inputs except for the embedded
// export timestamp (JSON metadata). The progress map is keyed by card ID;
// pass nil when progress is not requested.
//
// Decode never panics on malformed input; it returns a *DecodeError and
// no partial result.
type Codec interface {
	Encode(deck entities.Deck, cards []entities.Card, progress map[string]CardProgressData) ([]byte, error)
	Decode(data []byte) (*DecodedDeck, error)
}

// ForFormat returns the codec for a format.
func ForFormat(f Format) (Codec, error) {
	switch f {
	case FormatJSON:
		return JSONCodec{}, nil
	case FormatCSV:
		return CSVCodec{}, nil
	case FormatAnki:
		return AnkiCodec{}, nil
	case FormatMarkdown:
		return MarkdownCodec{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}
