package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/amaumene/movieshelf/internal/models"
)

// SearchResult holds title matches, or close titles when nothing matched
type SearchResult struct {
	Query       string          `json:"query"`
	Matches     []*models.Movie `json:"matches"`
	Suggestions []string        `json:"suggestions,omitempty"`
}

type suggestion struct {
	title    string
	distance int
}

// Search finds movies whose title contains query (case-insensitive).
// When nothing matches, up to limit titles within a small edit distance are
// suggested instead.
func (s *Service) Search(query string, limit int) SearchResult {
	query = strings.TrimSpace(query)
	result := SearchResult{Query: query, Matches: []*models.Movie{}}
	if query == "" {
		return result
	}
	if limit <= 0 {
		limit = 10
	}

	s.mu.RLock()
	movies := s.repo.Movies()
	s.mu.RUnlock()

	for _, m := range movies {
		if m.MatchesTitle(query) {
			result.Matches = append(result.Matches, m)
			if len(result.Matches) == limit {
				return result
			}
		}
	}
	if len(result.Matches) > 0 {
		return result
	}

	result.Suggestions = suggestTitles(query, movies, limit)
	return result
}

// suggestTitles ranks titles by edit distance to query, keeping those within
// a third of the query length (at least 2 edits)
func suggestTitles(query string, movies []*models.Movie, limit int) []string {
	q := strings.ToLower(query)
	threshold := max(2, len(q)/3)

	var candidates []suggestion
	seen := make(map[string]bool)
	for _, m := range movies {
		if seen[m.Title] {
			continue
		}
		seen[m.Title] = true

		d := levenshtein.ComputeDistance(q, strings.ToLower(m.Title))
		if d <= threshold {
			candidates = append(candidates, suggestion{title: m.Title, distance: d})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].title < candidates[j].title
	})

	out := make([]string, 0, min(limit, len(candidates)))
	for _, c := range candidates[:min(limit, len(candidates))] {
		out = append(out, c.title)
	}
	return out
}
