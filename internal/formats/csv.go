package formats

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/deckoracle/backend/internal/entities"
)

// csvHeader is the conventional column layout. Only the first two columns
// are required on import; the rest are carried for template compatibility.
var csvHeader = []string{"Front", "Back", "Tags", "Explanation", "Difficulty"}

// CSVCodec handles the tabular representation. CSV carries no deck header,
// so Decode synthesizes a dated title the way the original exports did.
type CSVCodec struct{}

func (CSVCodec) Encode(deck entities.Deck, cards []entities.Card, progress map[string]CardProgressData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, card := range cards {
		if err := w.Write([]string{card.Front, card.Back, "", "", ""}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (CSVCodec) Decode(data []byte) (*DecodedDeck, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // column count varies between exporters

	// First row is the header; its content is not validated.
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, decodeErr(FormatCSV, "empty file", nil)
		}
		return nil, decodeErr(FormatCSV, "failed to read header", err)
	}

	decoded := &DecodedDeck{
		Title:       fmt.Sprintf("Imported Deck %s", time.Now().UTC().Format("2006-01-02")),
		Description: "Imported from CSV",
	}

	line := 1
	for {
		line++
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// No partial-file recovery: one bad row fails the decode.
			return nil, decodeErr(FormatCSV, fmt.Sprintf("malformed row at line %d", line), err)
		}
		if len(record) < 2 {
			continue
		}
		decoded.Cards = append(decoded.Cards, DecodedCard{
			Front: record[0],
			Back:  record[1],
		})
	}

	return decoded, nil
}
