package handlers

import (
	"net/http"

	"github.com/amaumene/movieshelf/internal/api/middleware"
	"github.com/amaumene/movieshelf/internal/services/auth"
	"github.com/amaumene/movieshelf/internal/services/catalog"
	"github.com/goccy/go-json"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// UserHandler serves registration and per-user resources
type UserHandler struct {
	auth    *auth.Service
	catalog *catalog.Service
	logger  *logrus.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(authSvc *auth.Service, catalogSvc *catalog.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		auth:    authSvc,
		catalog: catalogSvc,
		logger:  logger,
	}
}

// userResponse is the public view of a user
type userResponse struct {
	Username string `json:"username"`
	Reviews  int    `json:"reviews"`
}

// Register handles POST /api/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var creds auth.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload", h.logger)
		return
	}

	user, err := h.auth.AddUser(creds)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{Username: user.Username}, h.logger)
}

// Me handles GET /api/me (authenticated)
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	reviews, err := h.catalog.ReviewCount(user.Username)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Username: user.Username, Reviews: reviews}, h.logger)
}

// Watchlist handles GET /api/watchlist (authenticated)
func (h *UserHandler) Watchlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	movies, err := h.catalog.Watchlist(user.Username)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, movies, h.logger)
}

// AddToWatchlist handles PUT /api/watchlist/:rank (authenticated)
func (h *UserHandler) AddToWatchlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.changeWatchlist(w, r, ps, h.catalog.AddToWatchlist)
}

// RemoveFromWatchlist handles DELETE /api/watchlist/:rank (authenticated)
func (h *UserHandler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.changeWatchlist(w, r, ps, h.catalog.RemoveFromWatchlist)
}

func (h *UserHandler) changeWatchlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params, change func(string, int) error) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}
	rank, ok := parseRank(ps.ByName("rank"))
	if !ok {
		writeError(w, http.StatusBadRequest, "rank must be a positive integer", h.logger)
		return
	}

	if err := change(user.Username, rank); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
