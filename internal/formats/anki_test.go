package formats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnkiCodec_Encode(t *testing.T) {
	t.Run("builds notes on the fixed Basic model", func(t *testing.T) {
		deck, cards := testDeck()

		data, err := AnkiCodec{}.Encode(deck, cards, nil)
		require.NoError(t, err)

		var doc AnkiDeck
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, "Spanish Vocabulary", doc.Name)
		require.Len(t, doc.Notes, 2)
		assert.Equal(t, []string{"hola", "hello"}, doc.Notes[0].Fields)
		assert.Equal(t, "card-1", doc.Notes[0].GUID)

		require.Len(t, doc.Models, 1)
		assert.Equal(t, "Basic", doc.Models[0].Name)
		require.Len(t, doc.Models[0].Tmpls, 1)
		assert.Equal(t, "{{Front}}", doc.Models[0].Tmpls[0].Qfmt)
	})

	t.Run("cards without progress get the default ease factor", func(t *testing.T) {
		deck, cards := testDeck()
		progress := map[string]CardProgressData{
			"card-2": {ReviewCount: 7, EaseFactor: 2.2, IntervalDays: 4},
		}

		data, err := AnkiCodec{}.Encode(deck, cards, progress)
		require.NoError(t, err)

		var doc AnkiDeck
		require.NoError(t, json.Unmarshal(data, &doc))
		require.Len(t, doc.Cards, 2)
		assert.Equal(t, 2500, doc.Cards[0].Factor)
		assert.Equal(t, 0, doc.Cards[0].Reps)
		assert.Equal(t, 2200, doc.Cards[1].Factor)
		assert.Equal(t, 4, doc.Cards[1].Ivl)
		assert.Equal(t, 7, doc.Cards[1].Reps)
	})
}

func TestAnkiCodec_Decode(t *testing.T) {
	t.Run("maps the first two note fields onto front and back", func(t *testing.T) {
		payload := `{
			"name": "Geography",
			"desc": "Capitals",
			"notes": [
				{"id": 1, "mid": 1, "fields": ["France", "Paris", "extra"]},
				{"id": 2, "mid": 1, "fields": ["Japan", "Tokyo"]}
			]
		}`

		decoded, err := AnkiCodec{}.Decode([]byte(payload))
		require.NoError(t, err)
		assert.Equal(t, "Geography", decoded.Title)
		assert.Equal(t, "Capitals", decoded.Description)
		require.Len(t, decoded.Cards, 2)
		assert.Equal(t, "France", decoded.Cards[0].Front)
		assert.Equal(t, "Paris", decoded.Cards[0].Back)
	})

	t.Run("notes with fewer than two fields are skipped", func(t *testing.T) {
		payload := `{"name": "Sparse", "notes": [{"id": 1, "fields": ["lonely"]}, {"id": 2, "fields": ["a", "b"]}]}`

		decoded, err := AnkiCodec{}.Decode([]byte(payload))
		require.NoError(t, err)
		require.Len(t, decoded.Cards, 1)
		assert.Equal(t, "a", decoded.Cards[0].Front)
	})

	t.Run("round trip keeps titles and fields", func(t *testing.T) {
		deck, cards := testDeck()
		data, err := AnkiCodec{}.Encode(deck, cards, nil)
		require.NoError(t, err)

		decoded, err := AnkiCodec{}.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, deck.Title, decoded.Title)
		require.Len(t, decoded.Cards, 2)
		assert.Equal(t, "adios", decoded.Cards[1].Front)
	})

	t.Run("malformed JSON is a decode error", func(t *testing.T) {
		_, err := AnkiCodec{}.Decode([]byte(`not json`))
		require.Error(t, err)

		var decodeError *DecodeError
		require.ErrorAs(t, err, &decodeError)
		assert.Equal(t, FormatAnki, decodeError.Format)
	})

	t.Run("well-formed JSON of the wrong shape is a decode error", func(t *testing.T) {
		for _, payload := range []string{`null`, `{}`, `{"notes": []}`} {
			_, err := AnkiCodec{}.Decode([]byte(payload))
			require.Error(t, err, "payload %s", payload)

			var decodeError *DecodeError
			require.ErrorAs(t, err, &decodeError)
			assert.Contains(t, decodeError.Reason, "missing deck name")
		}
	})
}
