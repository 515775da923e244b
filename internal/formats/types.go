package formats

import "time"

// Wire version and platform tag stamped into export metadata.
const (
	ExportVersion  = "1.0"
	PlatformName   = "DeckOracle"
	ankiBasicModel = "Basic"
)

// ExportedDeck is the JSON export envelope: the deck, its cards, and the
// export metadata.
type ExportedDeck struct {
	ID          string         `json:"id,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Tags        []string       `json:"tags"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Cards       []ExportedCard `json:"cards"`
	Metadata    ExportMetadata `json:"metadata"`
}

type ExportedCard struct {
	ID          string            `json:"id,omitempty"`
	Front       string            `json:"front"`
	Back        string            `json:"back"`
	Explanation string            `json:"explanation,omitempty"`
	Tags        []string          `json:"tags"`
	Difficulty  *int              `json:"difficulty,omitempty"`
	Media       []MediaAttachment `json:"media"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Progress    *CardProgressData `json:"progress,omitempty"`
}

// MediaAttachment is carried for wire compatibility; the current scope
// never attaches media, so the list is always empty on export.
type MediaAttachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        string `json:"data,omitempty"` // Base64 encoded
	URL         string `json:"url,omitempty"`
}

// CardProgressData is the export-only projection of a card's review
// history, supplied by the study stats collaborator.
type CardProgressData struct {
	ReviewCount  int        `json:"review_count"`
	CorrectCount int        `json:"correct_count"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
	NextReview   *time.Time `json:"next_review,omitempty"`
	EaseFactor   float64    `json:"ease_factor"`
	IntervalDays int        `json:"interval_days"`
}

// ExportMetadata describes an export payload. TotalCards always equals the
// number of cards actually serialized; downstream readers honor the two
// booleans verbatim.
type ExportMetadata struct {
	Version          string    `json:"version"`
	ExportedAt       time.Time `json:"exported_at"`
	Platform         string    `json:"platform"`
	Format           string    `json:"format"`
	TotalCards       int       `json:"total_cards"`
	IncludesProgress bool      `json:"includes_progress"`
	IncludesMedia    bool      `json:"includes_media"`
}

// Anki wire shapes: a reduced Anki-like representation with one fixed
// two-field "Basic" model. Not a real .apkg container.

type AnkiDeck struct {
	Name   string      `json:"name"`
	Desc   string      `json:"desc"`
	Cards  []AnkiCard  `json:"cards"`
	Notes  []AnkiNote  `json:"notes"`
	Models []AnkiModel `json:"models"`
}

type AnkiCard struct {
	Nid    int64 `json:"nid"` // Note ID
	Ord    int   `json:"ord"` // Card ordinal
	Did    int64 `json:"did"` // Deck ID
	Due    int64 `json:"due"`
	Ivl    int   `json:"ivl"`    // Interval in days
	Factor int   `json:"factor"` // Ease factor * 1000
	Reps   int   `json:"reps"`   // Review count
	Lapses int   `json:"lapses"`
}

type AnkiNote struct {
	ID     int64    `json:"id"`
	GUID   string   `json:"guid"`
	Mid    int64    `json:"mid"` // Model ID
	Fields []string `json:"fields"`
	Tags   []string `json:"tags"`
}

type AnkiModel struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Flds  []AnkiField    `json:"flds"`
	Tmpls []AnkiTemplate `json:"tmpls"`
}

type AnkiField struct {
	Name string `json:"name"`
	Ord  int    `json:"ord"`
}

type AnkiTemplate struct {
	Name string `json:"name"`
	Qfmt string `json:"qfmt"` // Question format
	Afmt string `json:"afmt"` // Answer format
}
