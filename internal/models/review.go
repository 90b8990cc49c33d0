package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user's rating and comment on a movie
type Review struct {
	ID        uuid.UUID `json:"id"`
	Movie     *Movie    `json:"-"`
	User      *User     `json:"-"`
	Text      string    `json:"review_text"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// NewReview creates a review stamped with a fresh ID and the current time.
// The review is not attached to its user until the repository stores it.
func NewReview(movie *Movie, user *User, text string, rating int) *Review {
	return &Review{
		ID:        uuid.New(),
		Movie:     movie,
		User:      user,
		Text:      text,
		Rating:    rating,
		Timestamp: time.Now(),
	}
}

// MovieRank returns the rank of the reviewed movie, or 0 when unset
func (r *Review) MovieRank() int {
	if r.Movie == nil {
		return 0
	}
	return r.Movie.Rank
}

// Username returns the author's username, or "" when unset
func (r *Review) Username() string {
	if r.User == nil {
		return ""
	}
	return r.User.Username
}
