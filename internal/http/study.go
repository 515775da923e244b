package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/deckoracle/backend/internal/database/decks"
	"github.com/deckoracle/backend/internal/database/study"
	"github.com/deckoracle/backend/internal/entities"
)

const defaultSessionListLimit = 20

type StudyController struct {
	study *study.Repository
	decks *decks.Repository
}

func NewStudyController(studyRepo *study.Repository, deckRepo *decks.Repository) *StudyController {
	return &StudyController{study: studyRepo, decks: deckRepo}
}

type startSessionRequest struct {
	DeckID    string `json:"deck_id" binding:"required"`
	StudyMode string `json:"study_mode"`
}

type answerRequest struct {
	CardID         string `json:"card_id" binding:"required"`
	Status         string `json:"status" binding:"required"`
	ResponseTimeMs int    `json:"response_time_ms"`
}

// StartSession opens a study session on a deck readable by the user.
func (s *StudyController) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "deck_id is required")
		return
	}

	userID := GetUserID(c)
	deck, err := s.decks.GetDeck(req.DeckID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "deck")
			return
		}
		respondInternalError(c, err, "get deck")
		return
	}

	mode := req.StudyMode
	if mode == "" {
		mode = "standard"
	}
	session := entities.StudySession{
		UserID:    userID,
		DeckID:    deck.ID,
		StudyMode: mode,
	}
	if err := s.study.CreateSession(&session); err != nil {
		respondInternalError(c, err, "create session")
		return
	}
	respondCreated(c, session)
}

func (s *StudyController) ListSessions(c *gin.Context) {
	limit := defaultSessionListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondBadRequest(c, "invalid limit")
			return
		}
		limit = parsed
	}

	sessions, err := s.study.ListSessionsForUser(GetUserID(c), limit)
	if err != nil {
		respondInternalError(c, err, "list sessions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// GetSession returns a session with its recorded answers.
func (s *StudyController) GetSession(c *gin.Context) {
	session, err := s.study.GetSession(c.Param("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "session")
			return
		}
		respondInternalError(c, err, "get session")
		return
	}

	answers, err := s.study.SessionAnswers(session.ID)
	if err != nil {
		respondInternalError(c, err, "list session answers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "answers": answers})
}

// RecordAnswer records one card answer and folds it into the card's
// review stats.
func (s *StudyController) RecordAnswer(c *gin.Context) {
	session, err := s.study.GetSession(c.Param("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "session")
			return
		}
		respondInternalError(c, err, "get session")
		return
	}
	if session.CompletedAt != nil {
		respondBadRequest(c, "session is already completed")
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "card_id and status are required")
		return
	}

	status := entities.AnswerStatus(req.Status)
	switch status {
	case entities.AnswerStatusEasy, entities.AnswerStatusMedium,
		entities.AnswerStatusHard, entities.AnswerStatusForgot:
	default:
		respondBadRequest(c, "status must be one of easy, medium, hard, forgot")
		return
	}

	answer := entities.CardAnswer{
		SessionID:      session.ID,
		CardID:         req.CardID,
		UserID:         session.UserID,
		Status:         status,
		ResponseTimeMs: req.ResponseTimeMs,
	}
	if err := s.study.RecordAnswer(&answer); err != nil {
		respondInternalError(c, err, "record answer")
		return
	}
	respondCreated(c, answer)
}

// CompleteSession closes a session and returns its final counters.
func (s *StudyController) CompleteSession(c *gin.Context) {
	session, err := s.study.CompleteSession(c.Param("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "session")
			return
		}
		respondInternalError(c, err, "complete session")
		return
	}
	c.JSON(http.StatusOK, session)
}
