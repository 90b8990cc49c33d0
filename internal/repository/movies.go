package repository

import (
	"fmt"
	"math"

	"github.com/amaumene/movieshelf/internal/models"
	"github.com/sirupsen/logrus"
)

// AddMovie stores a movie under its rank and inserts it into the year index.
// A rank that is not positive, does not fit in 32 bits, or is already taken
// is rejected and leaves the repository unchanged.
func (r *Repository) AddMovie(movie *models.Movie) error {
	if movie.Rank <= 0 || uint64(movie.Rank) > math.MaxUint32 {
		return fmt.Errorf("movie %q has rank %d: %w", movie.Title, movie.Rank, ErrInvalidRank)
	}
	if _, exists := r.movies[movie.Rank]; exists {
		return fmt.Errorf("rank %d: %w", movie.Rank, ErrDuplicateRank)
	}

	r.movies[movie.Rank] = movie
	r.byYear.insert(movie)

	for _, g := range movie.Genres {
		r.genreIndex.add(g.Name, movie.Rank)
	}
	for _, a := range movie.Actors {
		r.actorIndex.add(a.FullName, movie.Rank)
	}
	if movie.Director != nil {
		r.directorIndex.add(movie.Director.FullName, movie.Rank)
	}

	r.logger.WithFields(logrus.Fields{
		"rank": movie.Rank,
		"year": movie.ReleaseYear,
	}).Debug("Movie stored")
	return nil
}

// GetMovie retrieves a movie by rank, or nil
func (r *Repository) GetMovie(rank int) *models.Movie {
	return r.movies[rank]
}

// NumberOfMovies returns the number of stored movies
func (r *Repository) NumberOfMovies() int {
	return r.byYear.len()
}

// GetMoviesByYear returns the movies released in year, in insertion order.
// The result is empty, not nil, when nothing matches.
func (r *Repository) GetMoviesByYear(year int) []*models.Movie {
	return r.byYear.inYear(year)
}

// GetFirstMovie returns a movie with the earliest release year, or nil
func (r *Repository) GetFirstMovie() *models.Movie {
	return r.byYear.first()
}

// GetLastMovie returns a movie with the latest release year, or nil
func (r *Repository) GetLastMovie() *models.Movie {
	return r.byYear.last()
}

// GetMoviesByRank returns the stored movies for ranks, in input order.
// Ranks without a movie are skipped.
func (r *Repository) GetMoviesByRank(ranks []int) []*models.Movie {
	movies := make([]*models.Movie, 0, len(ranks))
	for _, rank := range ranks {
		if movie, ok := r.movies[rank]; ok {
			movies = append(movies, movie)
		}
	}
	return movies
}

// GetMovieRanksForGenre returns the ranks of the movies tagged with the genre,
// in ascending rank order. An unknown genre yields an empty slice.
func (r *Repository) GetMovieRanksForGenre(genreName string) []int {
	if _, ok := r.genres[genreName]; !ok {
		return []int{}
	}
	return r.genreIndex.ranks(genreName)
}

// GetMovieRanksForActor returns the ranks of the movies featuring the actor
func (r *Repository) GetMovieRanksForActor(actorName string) []int {
	return r.actorIndex.ranks(actorName)
}

// GetMovieRanksForDirector returns the ranks of the movies by the director
func (r *Repository) GetMovieRanksForDirector(directorName string) []int {
	return r.directorIndex.ranks(directorName)
}

// CountMoviesForGenre returns how many movies carry the genre
func (r *Repository) CountMoviesForGenre(genreName string) int {
	return r.genreIndex.count(genreName)
}

// GetYearOfPreviousMovie returns the closest release year before movie's year
// among stored movies. ok is false at the lower boundary or when no stored
// movie shares movie's year.
func (r *Repository) GetYearOfPreviousMovie(movie *models.Movie) (year int, ok bool) {
	return r.byYear.previousYear(movie.ReleaseYear)
}

// GetYearOfNextMovie returns the closest release year after movie's year
// among stored movies. ok is false at the upper boundary or when no stored
// movie shares movie's year.
func (r *Repository) GetYearOfNextMovie(movie *models.Movie) (year int, ok bool) {
	return r.byYear.nextYear(movie.ReleaseYear)
}

// Movies returns every stored movie ordered by release year
func (r *Repository) Movies() []*models.Movie {
	return r.byYear.snapshot()
}
