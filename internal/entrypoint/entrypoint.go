// Package entrypoint boots the API server: database, repositories,
// import/export engine, router, and the maintenance scheduler.
package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deckoracle/backend/internal/auth"
	"github.com/deckoracle/backend/internal/config"
	"github.com/deckoracle/backend/internal/database"
	"github.com/deckoracle/backend/internal/database/cards"
	"github.com/deckoracle/backend/internal/database/decks"
	"github.com/deckoracle/backend/internal/database/folders"
	"github.com/deckoracle/backend/internal/database/study"
	"github.com/deckoracle/backend/internal/database/users"
	"github.com/deckoracle/backend/internal/exporters"
	http_controllers "github.com/deckoracle/backend/internal/http"
	"github.com/deckoracle/backend/internal/importers"
	"github.com/deckoracle/backend/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting DeckOracle v%s", version)

	if cfg.Auth.JWTSecret == "" {
		log.Fatalf("AUTH_JWT_SECRET is not set")
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	userRepo := users.NewRepository(db.DB)
	deckRepo := decks.NewRepository(db.DB)
	cardRepo := cards.NewRepository(db.DB)
	folderRepo := folders.NewRepository(db.DB)
	studyRepo := study.NewRepository(db.DB)

	authService := auth.NewService(userRepo, cfg.Auth)
	importer := importers.NewImporter(db.DB)
	validator := &importers.Validator{}
	exporter := exporters.NewExporter(deckRepo, cardRepo, studyRepo)

	var maintenance *scheduler.MaintenanceScheduler
	if cfg.Maintenance.Enabled {
		maintenance = scheduler.NewMaintenanceScheduler(userRepo, studyRepo)
		if err := maintenance.Start(cfg.Maintenance.Schedule); err != nil {
			log.Fatalf("Failed to start maintenance scheduler: %v", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		AuthService:    authService,
		Decks:          deckRepo,
		Cards:          cardRepo,
		Folders:        folderRepo,
		Study:          studyRepo,
		Importer:       importer,
		Validator:      validator,
		Exporter:       exporter,
		MaxUploadBytes: cfg.Import.MaxUploadBytes,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
		}
	}

	Serve(router, cfg, onShutdown)
}
