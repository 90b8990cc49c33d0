package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/amaumene/movieshelf/internal/api"
	"github.com/amaumene/movieshelf/internal/config"
	"github.com/amaumene/movieshelf/internal/controllers"
	"github.com/amaumene/movieshelf/internal/loader"
	"github.com/amaumene/movieshelf/internal/repository"
	"github.com/amaumene/movieshelf/internal/scheduler"
	"github.com/amaumene/movieshelf/internal/services/auth"
	"github.com/amaumene/movieshelf/internal/services/catalog"
	"github.com/amaumene/movieshelf/internal/utils"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the catalog and serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve()
		},
	}
}

func serve() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Info("Starting movieshelf")
	logger.WithField("data_path", cfg.DataPath).Info("Configuration loaded")

	// 3. Populate the repository
	repo := repository.New(logger)
	if err := loader.New(repo, logger).Populate(cfg.DataPath, cfg.SeedDefaults); err != nil {
		return fmt.Errorf("failed to populate repository: %w", err)
	}

	// 4. Initialize services over one shared lock
	mu := &sync.RWMutex{}
	catalogSvc := catalog.NewService(repo, mu, logger)
	authSvc := auth.NewService(repo, mu, logger)
	logger.Info("Services initialized")

	// 5. Initialize controllers and scheduler
	featuredCtrl := controllers.NewFeaturedController(catalogSvc, cfg.FeaturedCount, logger)
	sched := scheduler.NewScheduler(featuredCtrl, catalogSvc, cfg.FeaturedSchedule, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 6. Initialize HTTP server
	server := api.NewServer(cfg, catalogSvc, authSvc, featuredCtrl, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 7. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("movieshelf is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("movieshelf stopped")
	return nil
}
