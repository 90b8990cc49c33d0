package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/amaumene/movieshelf/internal/models"
	"github.com/sirupsen/logrus"
)

// Column headers of the catalog file
const (
	colRank        = "Rank"
	colTitle       = "Title"
	colGenre       = "Genre"
	colDescription = "Description"
	colDirector    = "Director"
	colActors      = "Actors"
	colYear        = "Year"
	colRuntime     = "Runtime (Minutes)"
	colRating      = "Rating"
	colVotes       = "Votes"
	colRevenue     = "Revenue (Millions)"
	colMetascore   = "Metascore"
)

var requiredColumns = []string{colRank, colTitle, colYear}

// ErrInvalidRow marks a catalog row that could not be turned into a movie
var ErrInvalidRow = errors.New("invalid catalog row")

// Catalog is the parsed content of a catalog file.
// Directors, genres and actors are distinct by name and shared by the movies
// that reference them.
type Catalog struct {
	Directors []*models.Director
	Genres    []*models.Genre
	Actors    []*models.Actor
	Movies    []*models.Movie

	// Skipped counts malformed rows that were dropped
	Skipped int
}

// catalogBuilder deduplicates referenced entities while rows are parsed
type catalogBuilder struct {
	catalog   *Catalog
	directors map[string]*models.Director
	genres    map[string]*models.Genre
	actors    map[string]*models.Actor
}

func newCatalogBuilder() *catalogBuilder {
	return &catalogBuilder{
		catalog:   &Catalog{},
		directors: make(map[string]*models.Director),
		genres:    make(map[string]*models.Genre),
		actors:    make(map[string]*models.Actor),
	}
}

func (b *catalogBuilder) director(name string) *models.Director {
	if d, ok := b.directors[name]; ok {
		return d
	}
	d := &models.Director{FullName: name}
	b.directors[name] = d
	b.catalog.Directors = append(b.catalog.Directors, d)
	return d
}

func (b *catalogBuilder) genre(name string) *models.Genre {
	if g, ok := b.genres[name]; ok {
		return g
	}
	g := &models.Genre{Name: name}
	b.genres[name] = g
	b.catalog.Genres = append(b.catalog.Genres, g)
	return g
}

func (b *catalogBuilder) actor(name string) *models.Actor {
	if a, ok := b.actors[name]; ok {
		return a
	}
	a := &models.Actor{FullName: name}
	b.actors[name] = a
	b.catalog.Actors = append(b.catalog.Actors, a)
	return a
}

// ReadCatalog parses a catalog CSV stream. The first line must be the header.
// Malformed rows are logged and skipped; only an unreadable stream or a
// header missing a required column is an error.
func ReadCatalog(r io.Reader, logger *logrus.Logger) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header line: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("catalog header is missing column %q", name)
		}
	}

	builder := newCatalogBuilder()
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				logger.WithError(err).WithField("line", line).Warn("Skipping unparseable catalog line")
				builder.catalog.Skipped++
				continue
			}
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}

		movie, err := builder.parseMovie(row{record: record, columns: columns})
		if err != nil {
			logger.WithError(err).WithField("line", line).Warn("Skipping invalid catalog row")
			builder.catalog.Skipped++
			continue
		}
		builder.catalog.Movies = append(builder.catalog.Movies, movie)
	}

	logger.WithFields(logrus.Fields{
		"movies":    len(builder.catalog.Movies),
		"directors": len(builder.catalog.Directors),
		"genres":    len(builder.catalog.Genres),
		"actors":    len(builder.catalog.Actors),
		"skipped":   builder.catalog.Skipped,
	}).Info("Catalog parsed")

	return builder.catalog, nil
}

// row gives named access to a CSV record
type row struct {
	record  []string
	columns map[string]int
}

func (r row) get(column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (b *catalogBuilder) parseMovie(r row) (*models.Movie, error) {
	rank, err := strconv.Atoi(r.get(colRank))
	if err != nil || rank <= 0 {
		return nil, fmt.Errorf("%w: rank %q", ErrInvalidRow, r.get(colRank))
	}
	title := r.get(colTitle)
	if title == "" {
		return nil, fmt.Errorf("%w: rank %d has no title", ErrInvalidRow, rank)
	}
	year, err := strconv.Atoi(r.get(colYear))
	if err != nil {
		return nil, fmt.Errorf("%w: rank %d has year %q", ErrInvalidRow, rank, r.get(colYear))
	}

	movie := &models.Movie{
		Rank:        rank,
		Title:       title,
		ReleaseYear: year,
		Description: r.get(colDescription),
	}

	if name := r.get(colDirector); name != "" {
		movie.Director = b.director(name)
	}
	for _, name := range splitList(r.get(colGenre)) {
		movie.AddGenre(b.genre(name))
	}
	for _, name := range splitList(r.get(colActors)) {
		movie.AddActor(b.actor(name))
	}

	// Metadata columns are optional; unparseable values are left unset
	if v, err := strconv.Atoi(r.get(colRuntime)); err == nil {
		movie.RuntimeMinutes = v
	}
	if v, err := strconv.ParseFloat(r.get(colRating), 64); err == nil {
		movie.Rating = v
	}
	if v, err := strconv.Atoi(r.get(colVotes)); err == nil {
		movie.Votes = v
	}
	if v, err := strconv.ParseFloat(r.get(colRevenue), 64); err == nil {
		movie.Revenue = &v
	}
	if v, err := strconv.Atoi(r.get(colMetascore)); err == nil {
		movie.Metascore = &v
	}

	return movie, nil
}

// splitList splits a comma-separated cell, dropping blanks
func splitList(cell string) []string {
	if cell == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(cell, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
