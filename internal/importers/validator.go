package importers

import (
	"github.com/deckoracle/backend/internal/formats"
)

// Validator checks import payloads by running the format's decode path
// defensively. It never touches storage, so it doubles as a dry-run
// preview for callers.
type Validator struct{}

// Validate decodes the payload for the given format and classifies the
// outcome: a decode failure is an error (is_valid=false); a successful
// decode with zero cards is a warning (is_valid=true).
func (Validator) Validate(data []byte, format formats.Format) ImportValidationResult {
	result := ImportValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}

	codec, err := formats.ForFormat(format)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	decoded, err := codec.Decode(data)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.IsValid = true
	result.DeckCount = 1
	result.CardCount = len(decoded.Cards)
	result.Warnings = append(result.Warnings, decoded.Warnings...)
	if len(decoded.Cards) == 0 {
		result.Warnings = append(result.Warnings, emptyWarning(format))
	}
	return result
}

func emptyWarning(format formats.Format) string {
	switch format {
	case formats.FormatCSV:
		return "CSV file contains no valid records"
	case formats.FormatAnki:
		return "Anki deck contains no notes"
	case formats.FormatMarkdown:
		return "Markdown file contains no cards"
	default:
		return "Deck contains no cards"
	}
}
