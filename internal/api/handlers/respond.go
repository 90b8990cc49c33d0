package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/amaumene/movieshelf/internal/services/auth"
	"github.com/amaumene/movieshelf/internal/services/catalog"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// errorResponse is the body of every non-2xx JSON response
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *logrus.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithError(err).Error("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string, logger *logrus.Logger) {
	writeJSON(w, status, errorResponse{Error: message}, logger)
}

// parseRank parses a positive rank path or query value
func parseRank(value string) (int, bool) {
	rank, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || rank <= 0 {
		return 0, false
	}
	return rank, true
}

// parseRankList parses a comma-separated rank list, dropping invalid entries
func parseRankList(value string) []int {
	var ranks []int
	for _, part := range strings.Split(value, ",") {
		if rank, ok := parseRank(part); ok {
			ranks = append(ranks, rank)
		}
	}
	return ranks
}

// queryInt reads a positive integer query parameter, or def
func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// writeServiceError maps service errors to HTTP statuses
func writeServiceError(w http.ResponseWriter, err error, logger *logrus.Logger) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, catalog.ErrNonExistentMovie):
		writeError(w, http.StatusNotFound, "movie does not exist", logger)
	case errors.Is(err, catalog.ErrUnknownUser), errors.Is(err, auth.ErrUnknownUser):
		writeError(w, http.StatusNotFound, "user does not exist", logger)
	case errors.Is(err, catalog.ErrNotOnWatchlist):
		writeError(w, http.StatusNotFound, "movie is not on the watchlist", logger)
	case errors.Is(err, auth.ErrNameNotUnique):
		writeError(w, http.StatusConflict, "username already taken", logger)
	case errors.Is(err, auth.ErrAuthentication):
		writeError(w, http.StatusUnauthorized, "invalid credentials", logger)
	case errors.As(err, &verrs):
		writeError(w, http.StatusUnprocessableEntity, verrs.Error(), logger)
	default:
		logger.WithError(err).Error("Unhandled service error")
		writeError(w, http.StatusInternalServerError, "internal server error", logger)
	}
}
