package models

// User is a registered catalog user
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Reviews      []*Review `json:"-"`
}

// NewUser creates a user with an already hashed password
func NewUser(username, passwordHash string) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
	}
}

// AddReview appends a review to the user's authored reviews
func (u *User) AddReview(review *Review) {
	u.Reviews = append(u.Reviews, review)
}

// Watchlist is the set of movies a user intends to watch (one per user)
type Watchlist struct {
	Owner  *User
	movies []*Movie
}

// NewWatchlist creates an empty watchlist owned by user
func NewWatchlist(owner *User) *Watchlist {
	return &Watchlist{Owner: owner}
}

// Add appends a movie unless it is already present
func (w *Watchlist) Add(movie *Movie) bool {
	if movie == nil || w.Contains(movie) {
		return false
	}
	w.movies = append(w.movies, movie)
	return true
}

// Remove drops a movie, reporting whether it was present
func (w *Watchlist) Remove(movie *Movie) bool {
	for i, m := range w.movies {
		if m == movie {
			w.movies = append(w.movies[:i], w.movies[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the movie is on the watchlist
func (w *Watchlist) Contains(movie *Movie) bool {
	for _, m := range w.movies {
		if m == movie {
			return true
		}
	}
	return false
}

// Size returns the number of movies on the watchlist
func (w *Watchlist) Size() int {
	return len(w.movies)
}

// Movies returns a copy of the watchlist in insertion order
func (w *Watchlist) Movies() []*Movie {
	out := make([]*Movie, len(w.movies))
	copy(out, w.movies)
	return out
}
