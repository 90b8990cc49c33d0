package models

// Director represents a movie director, identified by full name
type Director struct {
	FullName string `json:"director_name"`
}

// Genre represents a movie genre, identified by name
type Genre struct {
	Name string `json:"genre_name"`
}

// Actor represents a cast member, identified by full name
type Actor struct {
	FullName string `json:"actor_name"`
}

const (
	// MinRating is the lowest rating a review may carry
	MinRating = 1
	// MaxRating is the highest rating a review may carry
	MaxRating = 10
)
