package models

import "strings"

// Movie represents a catalog entry.
// Rank is the primary key; ReleaseYear is the ordering key of the year index.
type Movie struct {
	Rank        int    `json:"rank"`
	Title       string `json:"title"`
	ReleaseYear int    `json:"release_year"`
	Description string `json:"description,omitempty"`

	Director *Director `json:"director,omitempty"`
	Genres   []*Genre  `json:"genres"`
	Actors   []*Actor  `json:"actors"`

	// Dataset metadata
	RuntimeMinutes int      `json:"runtime_minutes,omitempty"`
	Rating         float64  `json:"rating,omitempty"`
	Votes          int      `json:"votes,omitempty"`
	Revenue        *float64 `json:"revenue,omitempty"`   // millions, nil when unknown
	Metascore      *int     `json:"metascore,omitempty"` // nil when unknown
}

// AddGenre adds a genre unless a genre with the same name is already attached
func (m *Movie) AddGenre(genre *Genre) {
	if genre == nil || m.HasGenre(genre.Name) {
		return
	}
	m.Genres = append(m.Genres, genre)
}

// HasGenre reports whether the movie is tagged with the named genre
func (m *Movie) HasGenre(name string) bool {
	for _, g := range m.Genres {
		if g.Name == name {
			return true
		}
	}
	return false
}

// AddActor appends an actor, keeping billing order and skipping duplicates
func (m *Movie) AddActor(actor *Actor) {
	if actor == nil {
		return
	}
	for _, a := range m.Actors {
		if a.FullName == actor.FullName {
			return
		}
	}
	m.Actors = append(m.Actors, actor)
}

// GenreNames returns the names of the movie's genres in attachment order
func (m *Movie) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return names
}

// MatchesTitle performs a case-insensitive substring match on the title
func (m *Movie) MatchesTitle(query string) bool {
	return strings.Contains(strings.ToLower(m.Title), strings.ToLower(query))
}
