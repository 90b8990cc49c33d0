package catalog

import (
	"fmt"

	"github.com/amaumene/movieshelf/internal/models"
	"github.com/sirupsen/logrus"
)

// Watchlist returns the movies on username's watchlist
func (s *Service) Watchlist(username string) ([]*models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user := s.repo.GetUser(username)
	if user == nil {
		return nil, fmt.Errorf("%q: %w", username, ErrUnknownUser)
	}
	watchlist := s.repo.GetWatchlist(user)
	if watchlist == nil {
		return []*models.Movie{}, nil
	}
	return watchlist.Movies(), nil
}

// AddToWatchlist puts the movie with rank on username's watchlist, creating
// the watchlist on first use. Adding a movie twice is a no-op.
func (s *Service) AddToWatchlist(username string, rank int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, movie, err := s.lookupUserAndMovie(username, rank)
	if err != nil {
		return err
	}

	watchlist := s.repo.GetWatchlist(user)
	if watchlist == nil {
		watchlist = models.NewWatchlist(user)
		s.repo.AddWatchlist(watchlist)
	}
	if watchlist.Add(movie) {
		s.logger.WithFields(logrus.Fields{
			"username": username,
			"rank":     rank,
		}).Info("Movie added to watchlist")
	}
	return nil
}

// RemoveFromWatchlist takes the movie with rank off username's watchlist
func (s *Service) RemoveFromWatchlist(username string, rank int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, movie, err := s.lookupUserAndMovie(username, rank)
	if err != nil {
		return err
	}

	watchlist := s.repo.GetWatchlist(user)
	if watchlist == nil || !watchlist.Remove(movie) {
		return fmt.Errorf("rank %d: %w", rank, ErrNotOnWatchlist)
	}

	s.logger.WithFields(logrus.Fields{
		"username": username,
		"rank":     rank,
	}).Info("Movie removed from watchlist")
	return nil
}
