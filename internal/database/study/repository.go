// Package study provides database operations for study sessions, recorded
// answers, and the per-card aggregate stats that back progress exports.
package study

import (
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/deckoracle/backend/internal/entities"
	"github.com/deckoracle/backend/internal/formats"
)

// Ease factor bounds for the review scheduler.
const (
	minEaseFactor     = 1.3
	defaultEaseFactor = 2.5
)

// Repository handles all study database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new study repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateSession starts a study session for a deck.
func (r *Repository) CreateSession(session *entities.StudySession) error {
	return r.db.Create(session).Error
}

// GetSession retrieves a session owned by the user.
func (r *Repository) GetSession(id, userID string) (*entities.StudySession, error) {
	var session entities.StudySession
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessionsForUser retrieves the user's sessions, most recent first.
func (r *Repository) ListSessionsForUser(userID string, limit int) ([]entities.StudySession, error) {
	if limit <= 0 {
		limit = 50
	}
	var sessions []entities.StudySession
	err := r.db.Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}

// RecordAnswer stores one answered card and folds it into the session
// counters and the card's aggregate stats, all in one transaction.
func (r *Repository) RecordAnswer(answer *entities.CardAnswer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(answer).Error; err != nil {
			return err
		}

		correct := answer.Status.Correct()
		updates := map[string]any{
			"cards_studied": gorm.Expr("cards_studied + 1"),
		}
		if correct {
			updates["cards_correct"] = gorm.Expr("cards_correct + 1")
		} else {
			updates["cards_incorrect"] = gorm.Expr("cards_incorrect + 1")
		}
		if err := tx.Model(&entities.StudySession{}).
			Where("id = ?", answer.SessionID).
			Updates(updates).Error; err != nil {
			return err
		}

		return updateCardStats(tx, answer)
	})
}

// updateCardStats applies a simplified SM-2 step to the card's aggregate
// stats row, creating it on first review.
func updateCardStats(tx *gorm.DB, answer *entities.CardAnswer) error {
	var stats entities.CardStats
	err := tx.Where("user_id = ? AND card_id = ?", answer.UserID, answer.CardID).
		First(&stats).Error
	if err == gorm.ErrRecordNotFound {
		stats = entities.CardStats{
			UserID:     answer.UserID,
			CardID:     answer.CardID,
			EaseFactor: defaultEaseFactor,
		}
	} else if err != nil {
		return err
	}

	now := answer.AnsweredAt
	stats.ReviewCount++
	if answer.Status.Correct() {
		stats.CorrectCount++
	}

	switch answer.Status {
	case entities.AnswerStatusEasy:
		stats.EaseFactor += 0.1
		stats.IntervalDays = nextInterval(stats.IntervalDays, stats.EaseFactor)
	case entities.AnswerStatusMedium:
		stats.IntervalDays = nextInterval(stats.IntervalDays, stats.EaseFactor)
	case entities.AnswerStatusHard:
		stats.EaseFactor = math.Max(minEaseFactor, stats.EaseFactor-0.15)
		if stats.IntervalDays < 1 {
			stats.IntervalDays = 1
		}
	case entities.AnswerStatusForgot:
		stats.EaseFactor = math.Max(minEaseFactor, stats.EaseFactor-0.2)
		stats.IntervalDays = 0
	}

	stats.LastReviewed = &now
	next := now.AddDate(0, 0, stats.IntervalDays)
	stats.NextReview = &next

	return tx.Save(&stats).Error
}

func nextInterval(current int, ease float64) int {
	if current < 1 {
		return 1
	}
	return int(math.Ceil(float64(current) * ease))
}

// CompleteSession marks a session finished.
func (r *Repository) CompleteSession(id, userID string) (*entities.StudySession, error) {
	now := time.Now().UTC()
	err := r.db.Model(&entities.StudySession{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("completed_at", &now).Error
	if err != nil {
		return nil, err
	}
	return r.GetSession(id, userID)
}

// SessionAnswers retrieves the answers recorded in a session in study order.
func (r *Repository) SessionAnswers(sessionID string) ([]entities.CardAnswer, error) {
	var answers []entities.CardAnswer
	err := r.db.Where("session_id = ?", sessionID).
		Order("answered_at ASC").
		Find(&answers).Error
	return answers, err
}

// ProgressForDeck projects the user's card stats for a deck into the
// export representation, keyed by card ID. Cards never reviewed are absent.
func (r *Repository) ProgressForDeck(userID, deckID string) (map[string]formats.CardProgressData, error) {
	var rows []entities.CardStats
	err := r.db.
		Joins("JOIN cards ON cards.id = card_stats.card_id").
		Where("card_stats.user_id = ? AND cards.deck_id = ?", userID, deckID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	progress := make(map[string]formats.CardProgressData, len(rows))
	for _, row := range rows {
		progress[row.CardID] = formats.CardProgressData{
			ReviewCount:  row.ReviewCount,
			CorrectCount: row.CorrectCount,
			LastReviewed: row.LastReviewed,
			NextReview:   row.NextReview,
			EaseFactor:   row.EaseFactor,
			IntervalDays: row.IntervalDays,
		}
	}
	return progress, nil
}

// PurgeAbandonedSessions deletes uncompleted sessions older than the
// cutoff. Used by the scheduled maintenance job.
func (r *Repository) PurgeAbandonedSessions(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	result := r.db.Where("completed_at IS NULL AND started_at < ?", cutoff).
		Delete(&entities.StudySession{})
	return result.RowsAffected, result.Error
}
