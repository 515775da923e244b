package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckoracle/backend/internal/entities"
)

func TestCSVCodec_Encode(t *testing.T) {
	t.Run("writes header and one row per card", func(t *testing.T) {
		deck, cards := testDeck()

		data, err := CSVCodec{}.Encode(deck, cards, nil)
		require.NoError(t, err)
		assert.Equal(t, "Front,Back,Tags,Explanation,Difficulty\nhola,hello,,,\nadios,goodbye,,,\n", string(data))
	})

	t.Run("empty deck is header only", func(t *testing.T) {
		deck, _ := testDeck()

		data, err := CSVCodec{}.Encode(deck, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "Front,Back,Tags,Explanation,Difficulty\n", string(data))
	})

	t.Run("quotes fields containing commas", func(t *testing.T) {
		deck, _ := testDeck()
		cards := []entities.Card{{Front: "one, two", Back: "uno, dos"}}

		data, err := CSVCodec{}.Encode(deck, cards, nil)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"one, two","uno, dos"`)
	})
}

func TestCSVCodec_Decode(t *testing.T) {
	t.Run("skips header and reads rows", func(t *testing.T) {
		decoded, err := CSVCodec{}.Decode([]byte("Front,Back\nhola,hello\nadios,goodbye\n"))
		require.NoError(t, err)
		require.Len(t, decoded.Cards, 2)
		assert.Equal(t, "hola", decoded.Cards[0].Front)
		assert.Equal(t, "goodbye", decoded.Cards[1].Back)
		assert.Contains(t, decoded.Title, "Imported Deck")
		assert.Equal(t, "Imported from CSV", decoded.Description)
	})

	t.Run("rows with fewer than two fields are skipped", func(t *testing.T) {
		decoded, err := CSVCodec{}.Decode([]byte("Front,Back\nonly-front\nhola,hello\n"))
		require.NoError(t, err)
		require.Len(t, decoded.Cards, 1)
		assert.Equal(t, "hola", decoded.Cards[0].Front)
	})

	t.Run("extra columns are ignored", func(t *testing.T) {
		decoded, err := CSVCodec{}.Decode([]byte("Front,Back,Tags,Explanation,Difficulty\nhola,hello,greetings,basic,1\n"))
		require.NoError(t, err)
		require.Len(t, decoded.Cards, 1)
		assert.Equal(t, "hello", decoded.Cards[0].Back)
	})

	t.Run("header only decodes to zero cards", func(t *testing.T) {
		decoded, err := CSVCodec{}.Decode([]byte("Front,Back\n"))
		require.NoError(t, err)
		assert.Empty(t, decoded.Cards)
	})

	t.Run("empty file is a decode error", func(t *testing.T) {
		_, err := CSVCodec{}.Decode([]byte(""))
		require.Error(t, err)

		var decodeError *DecodeError
		require.ErrorAs(t, err, &decodeError)
		assert.Equal(t, FormatCSV, decodeError.Format)
	})

	t.Run("malformed quoting fails the whole decode", func(t *testing.T) {
		_, err := CSVCodec{}.Decode([]byte("Front,Back\n\"broken,hello\nhola,hello\n"))
		require.Error(t, err)
	})
}
