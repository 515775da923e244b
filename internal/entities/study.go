package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnswerStatus string

const (
	AnswerStatusEasy   AnswerStatus = "easy"
	AnswerStatusMedium AnswerStatus = "medium"
	AnswerStatusHard   AnswerStatus = "hard"
	AnswerStatusForgot AnswerStatus = "forgot"
)

// Correct reports whether the answer counts as a successful recall.
func (s AnswerStatus) Correct() bool {
	return s == AnswerStatusEasy || s == AnswerStatusMedium
}

type StudySession struct {
	ID             string     `gorm:"primaryKey;size:36" json:"id"`
	UserID         string     `gorm:"index;size:36" json:"user_id"`
	DeckID         string     `gorm:"index;size:36" json:"deck_id"`
	StudyMode      string     `gorm:"size:50;default:'standard'" json:"study_mode"`
	CardsStudied   int        `json:"cards_studied"`
	CardsCorrect   int        `json:"cards_correct"`
	CardsIncorrect int        `json:"cards_incorrect"`
	CardsSkipped   int        `json:"cards_skipped"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	User           User       `gorm:"foreignKey:UserID" json:"-"`
	Deck           Deck       `gorm:"foreignKey:DeckID" json:"-"`
}

type CardAnswer struct {
	ID             string       `gorm:"primaryKey;size:36" json:"id"`
	SessionID      string       `gorm:"index;size:36" json:"session_id"`
	CardID         string       `gorm:"index;size:36" json:"card_id"`
	UserID         string       `gorm:"index;size:36" json:"user_id"`
	Status         AnswerStatus `gorm:"size:20" json:"status"`
	ResponseTimeMs int          `json:"response_time_ms,omitempty"`
	AnsweredAt     time.Time    `json:"answered_at"`
	Session        StudySession `gorm:"foreignKey:SessionID" json:"-"`
	Card           Card         `gorm:"foreignKey:CardID" json:"-"`
}

// CardStats aggregates a user's review history for one card. It is the
// backing store for the progress data joined into exports.
type CardStats struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	UserID       string     `gorm:"index:idx_card_stats_user_card,unique;size:36" json:"user_id"`
	CardID       string     `gorm:"index:idx_card_stats_user_card,unique;size:36" json:"card_id"`
	ReviewCount  int        `json:"review_count"`
	CorrectCount int        `json:"correct_count"`
	EaseFactor   float64    `gorm:"default:2.5" json:"ease_factor"`
	IntervalDays int        `json:"interval_days"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
	NextReview   *time.Time `json:"next_review,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Card         Card       `gorm:"foreignKey:CardID" json:"-"`
}

func (StudySession) TableName() string { return "study_sessions" }
func (CardAnswer) TableName() string   { return "card_answers" }
func (CardStats) TableName() string    { return "card_stats" }

func (s *StudySession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now().UTC()
	}
	return nil
}

func (a *CardAnswer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.AnsweredAt.IsZero() {
		a.AnsweredAt = time.Now().UTC()
	}
	return nil
}

func (s *CardStats) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
