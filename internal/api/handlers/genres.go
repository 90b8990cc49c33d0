package handlers

import (
	"net/http"

	"github.com/amaumene/movieshelf/internal/services/catalog"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// GenreHandler serves genre listings
type GenreHandler struct {
	catalog *catalog.Service
	perPage int
	logger  *logrus.Logger
}

// NewGenreHandler creates a new genre handler
func NewGenreHandler(catalogSvc *catalog.Service, perPage int, logger *logrus.Logger) *GenreHandler {
	return &GenreHandler{
		catalog: catalogSvc,
		perPage: perPage,
		logger:  logger,
	}
}

// List handles GET /api/genres
func (h *GenreHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, h.catalog.GenreNames(), h.logger)
}

// Movies handles GET /api/genres/:name/movies?page=N
func (h *GenreHandler) Movies(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	page := h.catalog.MoviesForGenre(ps.ByName("name"), queryInt(r, "page", 1), h.perPage)
	writeJSON(w, http.StatusOK, page, h.logger)
}
