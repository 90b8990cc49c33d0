package repository

import (
	"errors"
	"fmt"
)

// ErrReferentialViolation is returned when an entity references something the
// repository does not hold. Callers match it with errors.Is.
var ErrReferentialViolation = errors.New("referential violation")

var (
	// ErrUnknownMovie means a review references a movie that is not stored
	ErrUnknownMovie = fmt.Errorf("%w: movie does not exist", ErrReferentialViolation)
	// ErrUnknownUser means a review has no author, or its author is not registered
	ErrUnknownUser = fmt.Errorf("%w: user does not exist", ErrReferentialViolation)
)

// ErrDuplicateRank is returned by AddMovie when the rank is already taken
var ErrDuplicateRank = errors.New("duplicate movie rank")

// ErrInvalidRank is returned by AddMovie for a rank that is not positive
var ErrInvalidRank = errors.New("invalid movie rank")
