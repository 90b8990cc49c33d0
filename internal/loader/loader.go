package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amaumene/movieshelf/internal/models"
	"github.com/amaumene/movieshelf/internal/repository"
	"github.com/amaumene/movieshelf/internal/services/auth"
	"github.com/sirupsen/logrus"
)

// CatalogFile is the name of the catalog file inside the data directory
const CatalogFile = "Data1000Movies.csv"

// Default seed content
const (
	DefaultUsername     = "nton939"
	DefaultPassword     = "nton939Password"
	DefaultReviewRank   = 1
	DefaultReviewText   = "GOTG is my new favourite movie of all time!"
	DefaultReviewRating = 10
)

// ErrAlreadyPopulated is returned when Populate runs a second time
var ErrAlreadyPopulated = errors.New("repository already populated")

// Loader fills a repository once at startup
type Loader struct {
	repo      *repository.Repository
	logger    *logrus.Logger
	populated bool
}

// New creates a loader for repo
func New(repo *repository.Repository, logger *logrus.Logger) *Loader {
	return &Loader{
		repo:   repo,
		logger: logger,
	}
}

// Populate reads the catalog file from dataPath, loads it and, when seed is
// set, registers the default user and review. Once the catalog is loaded a
// later call returns ErrAlreadyPopulated, even if seeding failed.
func (l *Loader) Populate(dataPath string, seed bool) error {
	if l.populated {
		return ErrAlreadyPopulated
	}

	path := filepath.Join(dataPath, CatalogFile)
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer file.Close()

	catalog, err := ReadCatalog(file, l.logger)
	if err != nil {
		return fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	l.Load(catalog)
	l.populated = true

	if seed {
		if err := l.SeedDefaults(); err != nil {
			return fmt.Errorf("failed to seed defaults: %w", err)
		}
	}
	return nil
}

// Load adds directors, genres and actors, then the movies referencing them.
// Movies the repository rejects are logged and skipped.
func (l *Loader) Load(catalog *Catalog) {
	for _, director := range catalog.Directors {
		l.repo.AddDirector(director)
	}
	for _, genre := range catalog.Genres {
		l.repo.AddGenre(genre)
	}
	for _, actor := range catalog.Actors {
		l.repo.AddActor(actor)
	}

	rejected := 0
	for _, movie := range catalog.Movies {
		if err := l.repo.AddMovie(movie); err != nil {
			l.logger.WithError(err).WithField("title", movie.Title).Warn("Movie rejected by repository")
			rejected++
		}
	}

	l.logger.WithFields(logrus.Fields{
		"movies":   l.repo.NumberOfMovies(),
		"rejected": rejected,
	}).Info("Catalog loaded")
}

// SeedDefaults registers the default user and its review through the
// ordinary insertion path.
func (l *Loader) SeedDefaults() error {
	movie := l.repo.GetMovie(DefaultReviewRank)
	if movie == nil {
		return fmt.Errorf("rank %d: %w", DefaultReviewRank, repository.ErrUnknownMovie)
	}

	hash, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return err
	}
	user := models.NewUser(DefaultUsername, hash)
	l.repo.AddUser(user)

	review := models.NewReview(movie, user, DefaultReviewText, DefaultReviewRating)
	if err := l.repo.AddReview(review); err != nil {
		return err
	}

	l.logger.WithField("username", DefaultUsername).Info("Default user and review seeded")
	return nil
}
