package handlers

import (
	"net/http"
	"time"

	"github.com/amaumene/movieshelf/internal/api/middleware"
	"github.com/amaumene/movieshelf/internal/models"
	"github.com/amaumene/movieshelf/internal/services/catalog"
	"github.com/goccy/go-json"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// ReviewView is the JSON shape of a review
type ReviewView struct {
	ID        string    `json:"id"`
	Rank      int       `json:"rank"`
	Username  string    `json:"username"`
	Text      string    `json:"review_text"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

func reviewView(r *models.Review) ReviewView {
	return ReviewView{
		ID:        r.ID.String(),
		Rank:      r.MovieRank(),
		Username:  r.Username(),
		Text:      r.Text,
		Rating:    r.Rating,
		Timestamp: r.Timestamp,
	}
}

// ReviewHandler serves and records movie reviews
type ReviewHandler struct {
	catalog *catalog.Service
	logger  *logrus.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(catalogSvc *catalog.Service, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{
		catalog: catalogSvc,
		logger:  logger,
	}
}

// List handles GET /api/movies/:rank/reviews
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rank, ok := parseRank(ps.ByName("rank"))
	if !ok {
		writeError(w, http.StatusBadRequest, "rank must be a positive integer", h.logger)
		return
	}

	reviews, err := h.catalog.ReviewsForMovie(rank)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	views := make([]ReviewView, 0, len(reviews))
	for _, review := range reviews {
		views = append(views, reviewView(review))
	}
	writeJSON(w, http.StatusOK, views, h.logger)
}

// Create handles POST /api/movies/:rank/reviews (authenticated)
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rank, ok := parseRank(ps.ByName("rank"))
	if !ok {
		writeError(w, http.StatusBadRequest, "rank must be a positive integer", h.logger)
		return
	}
	user := middleware.UserFrom(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	var input catalog.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.WithError(err).Debug("Failed to decode review")
		writeError(w, http.StatusBadRequest, "invalid payload", h.logger)
		return
	}

	review, err := h.catalog.AddReview(rank, input, user.Username)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, reviewView(review), h.logger)
}
