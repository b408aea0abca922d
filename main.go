// Package main provides the main entry point for the outlier property exploration service
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/ssoogun/outlier.property/app/handlers"
	"github.com/ssoogun/outlier.property/app/middleware"
	"github.com/ssoogun/outlier.property/app/router"
	"github.com/ssoogun/outlier.property/app/services"
	businessflow "github.com/ssoogun/outlier.property/business_flow"
	"github.com/ssoogun/outlier.property/config"
	"github.com/ssoogun/outlier.property/repository"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting outlier property application...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// initializeDataset loads the street table eagerly so a malformed file fails
// the deployment instead of the first request.
func initializeDataset(cfg config.DatasetConfig) (*repository.FileStreetRepository, error) {
	repo := repository.NewFileStreetRepository(cfg.FilePath, cfg.ReloadOnChange)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LoadTimeout)
	defer cancel()
	if err := repo.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load street dataset %q: %w", cfg.FilePath, err)
	}

	records, err := repo.All(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("Street dataset loaded: %d rows usable, %d rows dropped", len(records), repo.DroppedRows())

	return repo, nil
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	// Initialize dataset repository
	streetRepo, err := initializeDataset(cfg.Dataset)
	if err != nil {
		return nil, err
	}

	// Initialize session manager with background cleanup
	sessionManager := services.NewSessionManager(cfg.Session.IdleTTL)
	stopCleanup := sessionManager.StartCleanup(context.Background(), cfg.Session.CleanupInterval)
	stopFuncs = append(stopFuncs, stopCleanup)

	// Initialize flows
	streetFlow := businessflow.NewStreetFlow(streetRepo)
	favouritesFlow := businessflow.NewFavouritesFlow(streetRepo)

	// Initialize handlers
	streetHandler := handlers.NewStreetHandler(streetFlow)
	favouritesHandler := handlers.NewFavouritesHandler(favouritesFlow)

	// Initialize session middleware
	sessionMiddleware := middleware.NewSessionMiddleware(sessionManager, cfg.Session)

	// Initialize router
	appRouter := router.NewFiberRouter(cfg, streetHandler, favouritesHandler, sessionMiddleware)

	fiberRouter := appRouter.(*router.FiberRouter)
	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}
