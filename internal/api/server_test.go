package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/amaumene/movieshelf/internal/api/handlers"
	"github.com/amaumene/movieshelf/internal/config"
	"github.com/amaumene/movieshelf/internal/controllers"
	"github.com/amaumene/movieshelf/internal/models"
	"github.com/amaumene/movieshelf/internal/repository"
	"github.com/amaumene/movieshelf/internal/services/auth"
	"github.com/amaumene/movieshelf/internal/services/catalog"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	handler http.Handler
	repo    *repository.Repository
}

func newTestServer(t *testing.T, rps float64, burst int) *testServer {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := repository.New(logger)
	scifi := &models.Genre{Name: "Sci-Fi"}
	horror := &models.Genre{Name: "Horror"}
	repo.AddGenre(scifi)
	repo.AddGenre(horror)
	for _, m := range []*models.Movie{
		{Rank: 1, Title: "Guardians of the Galaxy", ReleaseYear: 2014, Genres: []*models.Genre{scifi}},
		{Rank: 2, Title: "Prometheus", ReleaseYear: 2012, Genres: []*models.Genre{scifi}},
		{Rank: 3, Title: "Split", ReleaseYear: 2016, Genres: []*models.Genre{horror}},
	} {
		require.NoError(t, repo.AddMovie(m))
	}

	mu := &sync.RWMutex{}
	catalogSvc := catalog.NewService(repo, mu, logger)
	authSvc := auth.NewService(repo, mu, logger)
	_, err := authSvc.AddUser(auth.Credentials{Username: "nton939", Password: "nton939Password"})
	require.NoError(t, err)

	cfg := &config.Config{
		ServerPort:     "0",
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
		MoviesPerPage:  1,
	}
	featured := controllers.NewFeaturedController(catalogSvc, 2, logger)
	server := NewServer(cfg, catalogSvc, authSvc, featured, logger)

	return &testServer{handler: server.Handler(), repo: repo}
}

func (ts *testServer) do(t *testing.T, method, path, body string, authenticate bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if authenticate {
		req.SetBasicAuth("nton939", "nton939Password")
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthAndStatus(t *testing.T) {
	ts := newTestServer(t, 1000, 1000)

	rec := ts.do(t, http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/status", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[map[string]any](t, rec)
	assert.Equal(t, float64(3), status["movies"])
	assert.Equal(t, float64(1), status["users"])

	rec = ts.do(t, http.MethodGet, "/metrics", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetMovie(t *testing.T) {
	ts := newTestServer(t, 1000, 1000)

	rec := ts.do(t, http.MethodGet, "/api/movies/1", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	movie := decode[models.Movie](t, rec)
	assert.Equal(t, "Guardians of the Galaxy", movie.Title)
	assert.Equal(t, 2014, movie.ReleaseYear)

	rec = ts.do(t, http.MethodGet, "/api/movies/999", "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/movies/abc", "", false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMovies(t *testing.T) {
	ts := newTestServer(t, 1000, 1000)

	rec := ts.do(t, http.MethodGet, "/api/movies?year=2014", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[catalog.YearPage](t, rec)
	require.Len(t, page.Movies, 1)
	assert.Equal(t, 2012, *page.PreviousYear)
	assert.Equal(t, 2016, *page.NextYear)

	rec = ts.do(t, http.MethodGet, "/api/movies", "", false)
	page = decode[catalog.YearPage](t, rec)
	assert.Equal(t, 2012, page.Year)

	rec = ts.do(t, http.MethodGet, "/api/movies?ranks=3,9,1", "", false)
	movies := decode[[]models.Movie](t, rec)
	require.Len(t, movies, 2)
	assert.Equal(t, 3, movies[0].Rank)
	assert.Equal(t, 1, movies[1].Rank)

	rec = ts.do(t, http.MethodGet, "/api/movies?year=nope", "", false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/catalog/last", "", false)
	assert.Equal(t, "Split", decode[models.Movie](t, rec).Title)
}

func TestGenres(t *testing.T) {
	ts := newTestServer(t, 1000, 1000)

	rec := ts.do(t, http.MethodGet, "/api/genres", "", false)
	assert.Equal(t, []string{"Sci-Fi", "Horror"}, decode[[]string](t, rec))

	rec = ts.do(t, http.MethodGet, "/api/genres/Sci-Fi/movies?page=2", "", false)
	page := decode[catalog.GenrePage](t, rec)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Movies, 1)
	assert.Equal(t, 2, page.Movies[0].Rank)

	rec = ts.do(t, http.MethodGet, "/api/genres/Sci-Fi/movies?page=9223372036854775807", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	page = decode[catalog.GenrePage](t, rec)
	assert.Equal(t, 2, page.Total)
	assert.Empty(t, page.Movies)
}

func TestReviews(t *testing.T) {
	ts := newTestServer(t, 1000, 1000)

	body := `{"review_text": "Loved it", "rating": 9}`
	rec := ts.do(t, http.MethodPost, "/api/movies/1/reviews", body, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/movies/1/reviews", body, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[handlers.ReviewView](t, rec)
	assert.Equal(t, "nton939", created.Username)
	assert.Equal(t, 1, created.Rank)

	rec = ts.do(t, http.MethodPost, "/api/movies/999/reviews", body, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, ts.repo.NumberOfReviews())

	rec = ts.do(t, http.MethodPost, "/api/movies/1/reviews", `{"review_text": "x", "rating": 42}`, true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/movies/1/reviews", "", false)
	reviews := decode[[]handlers.ReviewView](t, rec)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Loved it", reviews[0].Text)
}

func TestRegisterAndWatchlist(t *testing.T) {
	ts := newTestServer(t, 1000, 1000)

	rec := ts.do(t, http.MethodPost, "/api/users", `{"username": "nton939", "password": "whatever1"}`, false)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/users", `{"username": "dave", "password": "123456789"}`, false)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/watchlist/2", "", true)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/watchlist", "", true)
	movies := decode[[]models.Movie](t, rec)
	require.Len(t, movies, 1)
	assert.Equal(t, 2, movies[0].Rank)

	rec = ts.do(t, http.MethodDelete, "/api/watchlist/2", "", true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = ts.do(t, http.MethodDelete, "/api/watchlist/2", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchAndFeatured(t *testing.T) {
	ts := newTestServer(t, 1000, 1000)

	rec := ts.do(t, http.MethodGet, "/api/search?q=promethus", "", false)
	result := decode[catalog.SearchResult](t, rec)
	assert.Empty(t, result.Matches)
	assert.Equal(t, []string{"Prometheus"}, result.Suggestions)

	rec = ts.do(t, http.MethodGet, "/api/search", "", false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/featured", "", false)
	assert.Len(t, decode[[]models.Movie](t, rec), 2)
}

func TestMe(t *testing.T) {
	ts := newTestServer(t, 1000, 1000)

	rec := ts.do(t, http.MethodGet, "/api/me", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/movies/3/reviews", `{"review_text": "Creepy", "rating": 6}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/me", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]any](t, rec)
	assert.Equal(t, "nton939", me["username"])
	assert.Equal(t, float64(1), me["reviews"])
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, 0.001, 2)

	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/health", "", false).Code)
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/health", "", false).Code)
	assert.Equal(t, http.StatusTooManyRequests, ts.do(t, http.MethodGet, "/health", "", false).Code)
}
