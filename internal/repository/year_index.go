package repository

import (
	"cmp"
	"slices"
	"sort"

	"github.com/amaumene/movieshelf/internal/models"
)

// yearIndex keeps every stored movie sorted by release year.
// Movies sharing a year stay in insertion order.
type yearIndex struct {
	movies []*models.Movie
}

func compareYear(m *models.Movie, year int) int {
	return cmp.Compare(m.ReleaseYear, year)
}

// insert places movie after every movie with a year <= its own
func (idx *yearIndex) insert(movie *models.Movie) {
	pos := idx.upperBound(movie.ReleaseYear)
	idx.movies = slices.Insert(idx.movies, pos, movie)
}

// position returns the index of the leftmost movie released in year.
// ok is false when no stored movie has that year; pos is then meaningless.
func (idx *yearIndex) position(year int) (pos int, ok bool) {
	return slices.BinarySearchFunc(idx.movies, year, compareYear)
}

// upperBound returns the index of the first movie released after year
func (idx *yearIndex) upperBound(year int) int {
	return sort.Search(len(idx.movies), func(i int) bool {
		return idx.movies[i].ReleaseYear > year
	})
}

// inYear returns the movies released in year, in insertion order
func (idx *yearIndex) inYear(year int) []*models.Movie {
	start, ok := idx.position(year)
	if !ok {
		return []*models.Movie{}
	}
	var out []*models.Movie
	for _, m := range idx.movies[start:] {
		if m.ReleaseYear != year {
			break
		}
		out = append(out, m)
	}
	return out
}

// previousYear returns the closest year strictly before year that has a movie.
// The anchor year itself must be present.
func (idx *yearIndex) previousYear(year int) (int, bool) {
	start, ok := idx.position(year)
	if !ok || start == 0 {
		return 0, false
	}
	return idx.movies[start-1].ReleaseYear, true
}

// nextYear returns the closest year strictly after year that has a movie.
// The anchor year itself must be present.
func (idx *yearIndex) nextYear(year int) (int, bool) {
	if _, ok := idx.position(year); !ok {
		return 0, false
	}
	end := idx.upperBound(year)
	if end == len(idx.movies) {
		return 0, false
	}
	return idx.movies[end].ReleaseYear, true
}

func (idx *yearIndex) first() *models.Movie {
	if len(idx.movies) == 0 {
		return nil
	}
	return idx.movies[0]
}

func (idx *yearIndex) last() *models.Movie {
	if len(idx.movies) == 0 {
		return nil
	}
	return idx.movies[len(idx.movies)-1]
}

func (idx *yearIndex) len() int {
	return len(idx.movies)
}

// snapshot returns a copy of the year-ordered sequence
func (idx *yearIndex) snapshot() []*models.Movie {
	return slices.Clone(idx.movies)
}
