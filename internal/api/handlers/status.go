package handlers

import (
	"net/http"
	"time"

	"github.com/amaumene/movieshelf/internal/controllers"
	"github.com/amaumene/movieshelf/internal/services/catalog"
	"github.com/sirupsen/logrus"
)

// StatusHandler handles status requests
type StatusHandler struct {
	catalog      *catalog.Service
	featuredCtrl *controllers.FeaturedController
	logger       *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(catalogSvc *catalog.Service, featuredCtrl *controllers.FeaturedController, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		catalog:      catalogSvc,
		featuredCtrl: featuredCtrl,
		logger:       logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	catalog.Stats
	FeaturedRotatedAt *time.Time `json:"featured_rotated_at,omitempty"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := StatusResponse{Stats: h.catalog.Stats()}
	if rotated := h.featuredCtrl.RotatedAt(); !rotated.IsZero() {
		response.FeaturedRotatedAt = &rotated
	}
	writeJSON(w, http.StatusOK, response, h.logger)
}
