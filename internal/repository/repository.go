package repository

import (
	"fmt"

	"github.com/amaumene/movieshelf/internal/models"
	"github.com/sirupsen/logrus"
)

// Repository is the in-memory indexed store behind the catalog.
//
// It is not safe for concurrent use: callers must serialize writes against
// each other and against readers. All queries are total; a miss is reported
// as a nil entity, an empty slice or a false ok value, never as an error.
type Repository struct {
	// Movies
	movies map[int]*models.Movie // rank -> movie
	byYear yearIndex

	// Membership indexes (name -> ranks)
	genreIndex    *rankIndex
	actorIndex    *rankIndex
	directorIndex *rankIndex

	// Lookup tables keyed by natural key; first registration wins
	directors map[string]*models.Director
	genres    map[string]*models.Genre
	genreList []*models.Genre
	actors    map[string]*models.Actor
	users     map[string]*models.User

	watchlists map[*models.User]*models.Watchlist

	reviews       []*models.Review
	reviewsByRank map[int][]*models.Review

	logger *logrus.Logger
}

// New creates an empty repository
func New(logger *logrus.Logger) *Repository {
	return &Repository{
		movies:        make(map[int]*models.Movie),
		genreIndex:    newRankIndex(),
		actorIndex:    newRankIndex(),
		directorIndex: newRankIndex(),
		directors:     make(map[string]*models.Director),
		genres:        make(map[string]*models.Genre),
		actors:        make(map[string]*models.Actor),
		users:         make(map[string]*models.User),
		watchlists:    make(map[*models.User]*models.Watchlist),
		reviewsByRank: make(map[int][]*models.Review),
		logger:        logger,
	}
}

// Director operations

// AddDirector registers a director
func (r *Repository) AddDirector(director *models.Director) {
	if _, exists := r.directors[director.FullName]; exists {
		return
	}
	r.directors[director.FullName] = director
}

// GetDirector retrieves a director by full name
func (r *Repository) GetDirector(name string) *models.Director {
	return r.directors[name]
}

// Genre operations

// AddGenre registers a genre
func (r *Repository) AddGenre(genre *models.Genre) {
	if _, exists := r.genres[genre.Name]; exists {
		return
	}
	r.genres[genre.Name] = genre
	r.genreList = append(r.genreList, genre)
}

// GetGenre retrieves a genre by name
func (r *Repository) GetGenre(name string) *models.Genre {
	return r.genres[name]
}

// Genres returns all registered genres in registration order
func (r *Repository) Genres() []*models.Genre {
	out := make([]*models.Genre, len(r.genreList))
	copy(out, r.genreList)
	return out
}

// Actor operations

// AddActor registers an actor
func (r *Repository) AddActor(actor *models.Actor) {
	if _, exists := r.actors[actor.FullName]; exists {
		return
	}
	r.actors[actor.FullName] = actor
}

// GetActor retrieves an actor by full name
func (r *Repository) GetActor(name string) *models.Actor {
	return r.actors[name]
}

// User operations

// AddUser registers a user
func (r *Repository) AddUser(user *models.User) {
	if _, exists := r.users[user.Username]; exists {
		r.logger.WithField("username", user.Username).Debug("User already registered, keeping first")
		return
	}
	r.users[user.Username] = user
}

// GetUser retrieves a user by username
func (r *Repository) GetUser(username string) *models.User {
	return r.users[username]
}

// NumberOfUsers returns the number of registered users
func (r *Repository) NumberOfUsers() int {
	return len(r.users)
}

// Watchlist operations

// AddWatchlist registers a watchlist for its owner.
// An owner keeps the first watchlist registered for it.
func (r *Repository) AddWatchlist(watchlist *models.Watchlist) {
	if _, exists := r.watchlists[watchlist.Owner]; exists {
		return
	}
	r.watchlists[watchlist.Owner] = watchlist
}

// GetWatchlist retrieves the watchlist owned by user (identity, not username)
func (r *Repository) GetWatchlist(user *models.User) *models.Watchlist {
	return r.watchlists[user]
}

// Review operations

// AddReview stores a review and attaches it to its author.
// The review's movie must be the one stored under its rank and its author must
// be a registered user; otherwise nothing is mutated and an error wrapping
// ErrReferentialViolation is returned.
func (r *Repository) AddReview(review *models.Review) error {
	if review.Movie == nil || r.movies[review.Movie.Rank] != review.Movie {
		return fmt.Errorf("review of rank %d: %w", review.MovieRank(), ErrUnknownMovie)
	}
	if review.User == nil || r.users[review.User.Username] != review.User {
		return fmt.Errorf("review by %q: %w", review.Username(), ErrUnknownUser)
	}

	review.User.AddReview(review)
	r.reviews = append(r.reviews, review)
	r.reviewsByRank[review.Movie.Rank] = append(r.reviewsByRank[review.Movie.Rank], review)

	r.logger.WithFields(logrus.Fields{
		"rank":     review.Movie.Rank,
		"username": review.User.Username,
	}).Debug("Review stored")
	return nil
}

// Reviews returns every stored review in insertion order
func (r *Repository) Reviews() []*models.Review {
	out := make([]*models.Review, len(r.reviews))
	copy(out, r.reviews)
	return out
}

// GetReviewsForMovie returns the reviews of the movie with the given rank
func (r *Repository) GetReviewsForMovie(rank int) []*models.Review {
	reviews := r.reviewsByRank[rank]
	out := make([]*models.Review, len(reviews))
	copy(out, reviews)
	return out
}

// NumberOfReviews returns the number of stored reviews
func (r *Repository) NumberOfReviews() int {
	return len(r.reviews)
}
