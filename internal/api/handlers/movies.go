package handlers

import (
	"net/http"
	"strconv"

	"github.com/amaumene/movieshelf/internal/controllers"
	"github.com/amaumene/movieshelf/internal/models"
	"github.com/amaumene/movieshelf/internal/services/catalog"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// MovieHandler serves movie lookups and listings
type MovieHandler struct {
	catalog      *catalog.Service
	featuredCtrl *controllers.FeaturedController
	logger       *logrus.Logger
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(catalogSvc *catalog.Service, featuredCtrl *controllers.FeaturedController, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{
		catalog:      catalogSvc,
		featuredCtrl: featuredCtrl,
		logger:       logger,
	}
}

// Get handles GET /api/movies/:rank
func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rank, ok := parseRank(ps.ByName("rank"))
	if !ok {
		writeError(w, http.StatusBadRequest, "rank must be a positive integer", h.logger)
		return
	}

	movie, err := h.catalog.GetMovie(rank)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, movie, h.logger)
}

// List handles GET /api/movies.
// ?ranks=1,2,3 returns the listed movies; ?year=Y returns that year's page;
// without parameters the page of the earliest year is returned.
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	if raw := query.Get("ranks"); raw != "" {
		writeJSON(w, http.StatusOK, h.catalog.MoviesByRank(parseRankList(raw)), h.logger)
		return
	}

	if raw := query.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "year must be an integer", h.logger)
			return
		}
		writeJSON(w, http.StatusOK, h.catalog.MoviesByYear(year), h.logger)
		return
	}

	first, err := h.catalog.FirstMovie()
	if err != nil {
		writeJSON(w, http.StatusOK, catalog.YearPage{Movies: []*models.Movie{}}, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.catalog.MoviesByYear(first.ReleaseYear), h.logger)
}

// First handles GET /api/catalog/first
func (h *MovieHandler) First(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	movie, err := h.catalog.FirstMovie()
	if err != nil {
		writeError(w, http.StatusNotFound, "catalog is empty", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, movie, h.logger)
}

// Last handles GET /api/catalog/last
func (h *MovieHandler) Last(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	movie, err := h.catalog.LastMovie()
	if err != nil {
		writeError(w, http.StatusNotFound, "catalog is empty", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, movie, h.logger)
}

// Featured handles GET /api/featured
func (h *MovieHandler) Featured(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, h.featuredCtrl.Current(), h.logger)
}

// Search handles GET /api/search?q=...&limit=N
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.catalog.Search(q, queryInt(r, "limit", 10)), h.logger)
}
