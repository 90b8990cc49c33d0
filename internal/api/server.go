package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/amaumene/movieshelf/internal/api/handlers"
	"github.com/amaumene/movieshelf/internal/api/middleware"
	"github.com/amaumene/movieshelf/internal/config"
	"github.com/amaumene/movieshelf/internal/controllers"
	"github.com/amaumene/movieshelf/internal/services/auth"
	"github.com/amaumene/movieshelf/internal/services/catalog"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	server       *http.Server
	catalog      *catalog.Service
	auth         *auth.Service
	featuredCtrl *controllers.FeaturedController
	logger       *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, catalogSvc *catalog.Service, authSvc *auth.Service, featuredCtrl *controllers.FeaturedController, logger *logrus.Logger) *Server {
	s := &Server{
		catalog:      catalogSvc,
		auth:         authSvc,
		featuredCtrl: featuredCtrl,
		logger:       logger,
	}

	router := httprouter.New()
	s.setupRoutes(router, cfg)

	handler := middleware.RateLimit(router, cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      middleware.Logging(handler, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the root handler, for tests
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(router *httprouter.Router, cfg *config.Config) {
	// Health, status and metrics
	router.Handler(http.MethodGet, "/health", handlers.NewHealthHandler(s.logger))
	router.Handler(http.MethodGet, "/status", handlers.NewStatusHandler(s.catalog, s.featuredCtrl, s.logger))
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	movies := handlers.NewMovieHandler(s.catalog, s.featuredCtrl, s.logger)
	reviews := handlers.NewReviewHandler(s.catalog, s.logger)
	genres := handlers.NewGenreHandler(s.catalog, cfg.MoviesPerPage, s.logger)
	users := handlers.NewUserHandler(s.auth, s.catalog, s.logger)

	// Catalog browsing
	s.handle(router, http.MethodGet, "/api/movies", movies.List)
	s.handle(router, http.MethodGet, "/api/movies/:rank", movies.Get)
	s.handle(router, http.MethodGet, "/api/catalog/first", movies.First)
	s.handle(router, http.MethodGet, "/api/catalog/last", movies.Last)
	s.handle(router, http.MethodGet, "/api/featured", movies.Featured)
	s.handle(router, http.MethodGet, "/api/search", movies.Search)
	s.handle(router, http.MethodGet, "/api/genres", genres.List)
	s.handle(router, http.MethodGet, "/api/genres/:name/movies", genres.Movies)

	// Reviews
	s.handle(router, http.MethodGet, "/api/movies/:rank/reviews", reviews.List)
	s.handleAuthenticated(router, http.MethodPost, "/api/movies/:rank/reviews", reviews.Create)

	// Users and watchlists
	s.handle(router, http.MethodPost, "/api/users", users.Register)
	s.handleAuthenticated(router, http.MethodGet, "/api/me", users.Me)
	s.handleAuthenticated(router, http.MethodGet, "/api/watchlist", users.Watchlist)
	s.handleAuthenticated(router, http.MethodPut, "/api/watchlist/:rank", users.AddToWatchlist)
	s.handleAuthenticated(router, http.MethodDelete, "/api/watchlist/:rank", users.RemoveFromWatchlist)
}

func (s *Server) handle(router *httprouter.Router, method, path string, h httprouter.Handle) {
	router.Handle(method, path, middleware.Instrument(path, h))
}

func (s *Server) handleAuthenticated(router *httprouter.Router, method, path string, h httprouter.Handle) {
	s.handle(router, method, path, middleware.RequireUser(s.auth, s.logger, h))
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
