package http

import (
	"github.com/deckoracle/backend/internal/auth"
	"github.com/deckoracle/backend/internal/database"
	"github.com/deckoracle/backend/internal/database/cards"
	"github.com/deckoracle/backend/internal/database/decks"
	"github.com/deckoracle/backend/internal/database/folders"
	"github.com/deckoracle/backend/internal/database/study"
	"github.com/deckoracle/backend/internal/exporters"
	"github.com/deckoracle/backend/internal/importers"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces a long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database    *database.Database
	AuthService *auth.Service

	// Repositories
	Decks   *decks.Repository
	Cards   *cards.Repository
	Folders *folders.Repository
	Study   *study.Repository

	// Import / export engine
	Importer  *importers.Importer
	Validator *importers.Validator
	Exporter  *exporters.Exporter

	// Upload limits
	MaxUploadBytes int64

	// Application info
	Version string
}
