package catalog

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/amaumene/movieshelf/internal/metrics"
	"github.com/amaumene/movieshelf/internal/models"
	"github.com/amaumene/movieshelf/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNonExistentMovie is returned when no movie has the requested rank
	ErrNonExistentMovie = errors.New("movie does not exist")
	// ErrUnknownUser is returned when no user has the requested username
	ErrUnknownUser = errors.New("unknown user")
	// ErrNotOnWatchlist is returned when removing a movie the watchlist does not hold
	ErrNotOnWatchlist = errors.New("movie is not on the watchlist")
)

// Service answers catalog queries for the presentation layer.
// Reads take the shared lock, writes take it exclusively.
type Service struct {
	repo     *repository.Repository
	mu       *sync.RWMutex
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewService creates a catalog service. mu must be the lock shared by every
// service using repo.
func NewService(repo *repository.Repository, mu *sync.RWMutex, logger *logrus.Logger) *Service {
	return &Service{
		repo:     repo,
		mu:       mu,
		validate: validator.New(),
		logger:   logger,
	}
}

// GetMovie retrieves a movie by rank
func (s *Service) GetMovie(rank int) (*models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	movie := s.repo.GetMovie(rank)
	if movie == nil {
		return nil, ErrNonExistentMovie
	}
	return movie, nil
}

// FirstMovie returns a movie from the earliest year in the catalog
func (s *Service) FirstMovie() (*models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	movie := s.repo.GetFirstMovie()
	if movie == nil {
		return nil, ErrNonExistentMovie
	}
	return movie, nil
}

// LastMovie returns a movie from the latest year in the catalog
func (s *Service) LastMovie() (*models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	movie := s.repo.GetLastMovie()
	if movie == nil {
		return nil, ErrNonExistentMovie
	}
	return movie, nil
}

// YearPage is the set of movies released in one year, with links to the
// neighbouring years that have movies
type YearPage struct {
	Year         int             `json:"year"`
	Movies       []*models.Movie `json:"movies"`
	PreviousYear *int            `json:"previous_year,omitempty"`
	NextYear     *int            `json:"next_year,omitempty"`
}

// MoviesByYear returns the movies of year and the adjacent years.
// A year without movies yields an empty page without neighbours.
func (s *Service) MoviesByYear(year int) YearPage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	page := YearPage{
		Year:   year,
		Movies: s.repo.GetMoviesByYear(year),
	}
	if len(page.Movies) == 0 {
		return page
	}

	anchor := page.Movies[0]
	if prev, ok := s.repo.GetYearOfPreviousMovie(anchor); ok {
		page.PreviousYear = &prev
	}
	if next, ok := s.repo.GetYearOfNextMovie(anchor); ok {
		page.NextYear = &next
	}
	return page
}

// MoviesByRank returns the movies for the ranks that exist, in input order
func (s *Service) MoviesByRank(ranks []int) []*models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.repo.GetMoviesByRank(ranks)
}

// MovieRanksForGenre returns the ranks of the movies tagged with genre
func (s *Service) MovieRanksForGenre(genre string) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.repo.GetMovieRanksForGenre(genre)
}

// GenrePage is one page of the movies tagged with a genre
type GenrePage struct {
	Genre      string          `json:"genre"`
	Movies     []*models.Movie `json:"movies"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	Total      int             `json:"total"`
}

// MoviesForGenre returns page (1-based) of the movies tagged with genre
func (s *Service) MoviesForGenre(genre string, page, perPage int) GenrePage {
	if perPage <= 0 {
		perPage = 10
	}
	if page <= 0 {
		page = 1
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ranks := s.repo.GetMovieRanksForGenre(genre)
	result := GenrePage{
		Genre:      genre,
		Movies:     []*models.Movie{},
		Page:       page,
		Total:      len(ranks),
		TotalPages: (len(ranks) + perPage - 1) / perPage,
	}

	if page > result.TotalPages {
		return result
	}
	start := (page - 1) * perPage
	end := min(start+perPage, len(ranks))
	result.Movies = s.repo.GetMoviesByRank(ranks[start:end])
	return result
}

// GenreNames returns the names of all genres in registration order
func (s *Service) GenreNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	genres := s.repo.Genres()
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return names
}

// RandomMovies returns up to quantity distinct movies picked at random
func (s *Service) RandomMovies(quantity int) []*models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	movies := s.repo.Movies()
	quantity = min(max(quantity, 0), len(movies))

	picked := make([]*models.Movie, 0, quantity)
	for _, i := range rand.Perm(len(movies))[:quantity] {
		picked = append(picked, movies[i])
	}
	return picked
}

// Stats summarizes the catalog contents
type Stats struct {
	Movies    int  `json:"movies"`
	Genres    int  `json:"genres"`
	Reviews   int  `json:"reviews"`
	Users     int  `json:"users"`
	FirstYear *int `json:"first_year,omitempty"`
	LastYear  *int `json:"last_year,omitempty"`
}

// Stats returns entity counts and the year range of the catalog
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Movies:  s.repo.NumberOfMovies(),
		Genres:  len(s.repo.Genres()),
		Reviews: s.repo.NumberOfReviews(),
		Users:   s.repo.NumberOfUsers(),
	}
	if first := s.repo.GetFirstMovie(); first != nil {
		year := first.ReleaseYear
		stats.FirstYear = &year
	}
	if last := s.repo.GetLastMovie(); last != nil {
		year := last.ReleaseYear
		stats.LastYear = &year
	}
	return stats
}

// RefreshGauges publishes the current entity counts to Prometheus
func (s *Service) RefreshGauges() Stats {
	stats := s.Stats()
	metrics.CatalogEntities.WithLabelValues("movies").Set(float64(stats.Movies))
	metrics.CatalogEntities.WithLabelValues("genres").Set(float64(stats.Genres))
	metrics.CatalogEntities.WithLabelValues("reviews").Set(float64(stats.Reviews))
	metrics.CatalogEntities.WithLabelValues("users").Set(float64(stats.Users))
	return stats
}

// lookupUserAndMovie resolves both ends of a user/movie operation.
// Callers must hold the lock.
func (s *Service) lookupUserAndMovie(username string, rank int) (*models.User, *models.Movie, error) {
	movie := s.repo.GetMovie(rank)
	if movie == nil {
		return nil, nil, fmt.Errorf("rank %d: %w", rank, ErrNonExistentMovie)
	}
	user := s.repo.GetUser(username)
	if user == nil {
		return nil, nil, fmt.Errorf("%q: %w", username, ErrUnknownUser)
	}
	return user, movie, nil
}
