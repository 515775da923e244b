// Package http wires the REST API: authentication, folder/deck/card
// CRUD, study sessions, and the import/export endpoints.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/deckoracle/backend/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	authController := NewAuthController(cfg.AuthService)
	decksController := NewDecksController(cfg.Decks, cfg.Cards)
	cardsController := NewCardsController(cfg.Cards, cfg.Decks)
	foldersController := NewFoldersController(cfg.Folders)
	studyController := NewStudyController(cfg.Study, cfg.Decks)
	importExport := NewImportExportController(cfg.Importer, cfg.Validator, cfg.Exporter, cfg.MaxUploadBytes)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Public auth endpoints
	router.POST("/api/auth/register", authController.Register)
	router.POST("/api/auth/login", authController.Login)
	router.POST("/api/auth/refresh", authController.Refresh)
	router.POST("/api/auth/logout", authController.Logout)

	api := router.Group("/api", auth.Middleware(cfg.AuthService))

	api.GET("/auth/me", authController.Me)

	// Folder endpoints
	api.GET("/folders", foldersController.ListFolders)
	api.POST("/folders", foldersController.CreateFolder)
	api.PUT("/folders/:id", foldersController.UpdateFolder)
	api.DELETE("/folders/:id", foldersController.DeleteFolder)

	// Deck endpoints
	api.GET("/decks", decksController.ListDecks)
	api.POST("/decks", decksController.CreateDeck)
	api.GET("/decks/:id", decksController.GetDeck)
	api.PUT("/decks/:id", decksController.UpdateDeck)
	api.DELETE("/decks/:id", decksController.DeleteDeck)

	// Card endpoints
	api.GET("/decks/:id/cards", cardsController.ListCards)
	api.POST("/decks/:id/cards", cardsController.CreateCard)
	api.PUT("/decks/:id/cards/:cardId", cardsController.UpdateCard)
	api.DELETE("/decks/:id/cards/:cardId", cardsController.DeleteCard)
	api.GET("/cards/search", cardsController.SearchCards)

	// Study endpoints
	api.POST("/study/sessions", studyController.StartSession)
	api.GET("/study/sessions", studyController.ListSessions)
	api.GET("/study/sessions/:id", studyController.GetSession)
	api.POST("/study/sessions/:id/answers", studyController.RecordAnswer)
	api.POST("/study/sessions/:id/complete", studyController.CompleteSession)

	// Import / export endpoints
	api.POST("/import", importExport.Import)
	api.POST("/import/validate", importExport.Validate)
	api.GET("/import/templates/:format", importExport.Template)
	api.GET("/export/:deckId", importExport.ExportDeck)
	api.POST("/export/bulk", importExport.ExportBulk)

	return router
}
