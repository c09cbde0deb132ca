package library

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// DefaultMinScore is the similarity below which search results are dropped.
const DefaultMinScore = 0.75

// Match is a swatch name found by Search.
type Match struct {
	Library string  `json:"library"`
	Name    string  `json:"name"`
	Hex     string  `json:"hex"`
	Score   float64 `json:"score"`
}

// Search ranks the swatch names of the set by similarity to query. Names
// containing the query as a substring always match with score 1.
func Search(set Set, query string, minScore float64) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	jw := metrics.NewJaroWinkler()
	jw.CaseSensitive = false
	needle := strings.ToLower(query)

	var matches []Match
	for _, lib := range set {
		seen := make(map[string]bool)
		for _, s := range lib.Swatches {
			if seen[s.Name] {
				continue
			}
			seen[s.Name] = true

			score := strutil.Similarity(query, s.Name, jw)
			if strings.Contains(strings.ToLower(s.Name), needle) {
				score = 1
			}
			if score < minScore {
				continue
			}
			matches = append(matches, Match{
				Library: lib.Name,
				Name:    s.Name,
				Hex:     s.Color.Hex(),
				Score:   score,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
