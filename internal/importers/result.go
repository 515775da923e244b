// Package importers turns uploaded deck payloads into persisted decks and
// cards. Validation decodes without touching storage; the import itself
// runs as one atomic unit of work.
package importers

// ImportValidationResult reports the structural soundness of an import
// payload without persisting anything.
type ImportValidationResult struct {
	IsValid   bool     `json:"is_valid"`
	Errors    []string `json:"errors"`
	Warnings  []string `json:"warnings"`
	DeckCount int      `json:"deck_count"`
	CardCount int      `json:"card_count"`
}

// ImportResult summarizes one import call.
type ImportResult struct {
	Success            bool           `json:"success"`
	ImportedDecks      []ImportedDeck `json:"imported_decks"`
	Errors             []string       `json:"errors"`
	Warnings           []string       `json:"warnings"`
	TotalCardsImported int            `json:"total_cards_imported"`
	TotalDecksImported int            `json:"total_decks_imported"`
}

// ImportedDeck describes one deck touched by an import.
type ImportedDeck struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CardCount int    `json:"card_count"`
	WasMerged bool   `json:"was_merged"`
}

func newImportResult() ImportResult {
	return ImportResult{
		ImportedDecks: []ImportedDeck{},
		Errors:        []string{},
		Warnings:      []string{},
	}
}
