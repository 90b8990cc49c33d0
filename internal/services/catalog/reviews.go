package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amaumene/movieshelf/internal/metrics"
	"github.com/amaumene/movieshelf/internal/models"
	"github.com/amaumene/movieshelf/internal/repository"
	"github.com/sirupsen/logrus"
)

// ReviewInput is a review submitted through the presentation layer
type ReviewInput struct {
	Text   string `json:"review_text" validate:"required,max=2000"`
	Rating int    `json:"rating" validate:"min=1,max=10"`
}

// AddReview records a review of the movie with rank written by username
func (s *Service) AddReview(rank int, input ReviewInput, username string) (*models.Review, error) {
	input.Text = strings.TrimSpace(input.Text)
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid review: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, movie, err := s.lookupUserAndMovie(username, rank)
	if err != nil {
		metrics.ReferentialViolationsTotal.Inc()
		return nil, err
	}

	review := models.NewReview(movie, user, input.Text, input.Rating)
	if err := s.repo.AddReview(review); err != nil {
		if errors.Is(err, repository.ErrReferentialViolation) {
			metrics.ReferentialViolationsTotal.Inc()
		}
		if errors.Is(err, repository.ErrUnknownMovie) {
			return nil, fmt.Errorf("%w: %v", ErrNonExistentMovie, err)
		}
		if errors.Is(err, repository.ErrUnknownUser) {
			return nil, fmt.Errorf("%w: %v", ErrUnknownUser, err)
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"rank":     rank,
		"username": username,
		"rating":   input.Rating,
	}).Info("Review added")
	return review, nil
}

// ReviewsForMovie returns the reviews of the movie with rank
func (s *Service) ReviewsForMovie(rank int) ([]*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.repo.GetMovie(rank) == nil {
		return nil, ErrNonExistentMovie
	}
	return s.repo.GetReviewsForMovie(rank), nil
}

// ReviewCount returns how many reviews username has written
func (s *Service) ReviewCount(username string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user := s.repo.GetUser(username)
	if user == nil {
		return 0, fmt.Errorf("%q: %w", username, ErrUnknownUser)
	}
	return len(user.Reviews), nil
}
