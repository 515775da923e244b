package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/deckoracle/backend/internal/entities"
)

const defaultMarkdownTitle = "Imported from Markdown"

// MarkdownCodec handles the templated Markdown dialect: a `# Title` line,
// then one `## Card N` section per card holding `**Front:**` and
// `**Back:**` lines. Decoding is line-oriented; anything outside that
// grammar is ignored.
type MarkdownCodec struct{}

func (MarkdownCodec) Encode(deck entities.Deck, cards []entities.Card, progress map[string]CardProgressData) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", deck.Title)
	if deck.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", deck.Description)
	}
	b.WriteString("---\n\n")

	for i, card := range cards {
		fmt.Fprintf(&b, "## Card %d\n", i+1)
		fmt.Fprintf(&b, "\n**Front:** %s\n", card.Front)
		fmt.Fprintf(&b, "\n**Back:** %s\n", card.Back)
		b.WriteString("\n---\n\n")
	}

	return []byte(b.String()), nil
}

func (MarkdownCodec) Decode(data []byte) (*DecodedDeck, error) {
	if !utf8.Valid(data) {
		return nil, decodeErr(FormatMarkdown, "invalid UTF-8 encoding", nil)
	}

	decoded := &DecodedDeck{Title: defaultMarkdownTitle}

	var current *DecodedCard
	flush := func() {
		if current != nil {
			decoded.Cards = append(decoded.Cards, *current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "# "):
			decoded.Title = strings.TrimSpace(line[2:])
		case strings.HasPrefix(line, "## Card"):
			flush()
			current = &DecodedCard{}
		case strings.HasPrefix(line, "**Front:**"):
			// Front/Back may appear in either order; the last occurrence
			// within a card wins.
			if current != nil {
				current.Front = strings.TrimSpace(line[len("**Front:**"):])
			}
		case strings.HasPrefix(line, "**Back:**"):
			if current != nil {
				current.Back = strings.TrimSpace(line[len("**Back:**"):])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, decodeErr(FormatMarkdown, "failed to scan lines", err)
	}
	flush()

	return decoded, nil
}
