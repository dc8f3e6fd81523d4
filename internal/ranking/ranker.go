// Package ranking scores, orders and trims combined suggestion lists.
package ranking

import (
	"sort"
	"strings"

	"github.com/Mit0lenda/obra-nav-sub000/internal/models"
)

const (
	// MaxSuggestions is the longest list Rank returns.
	MaxSuggestions = 8

	prefixBoost   = 0.3
	streetBoost   = 0.2
	containsBoost = 0.1
)

// Rank boosts each candidate's relevance against query, sorts descending and keeps
// the best MaxSuggestions. It does not modify the input slice.
func Rank(suggestions []models.AddressSuggestion, query string) []models.AddressSuggestion {
	q := models.Fold(query)

	ranked := make([]models.AddressSuggestion, len(suggestions))
	copy(ranked, suggestions)

	for i := range ranked {
		ranked[i].Relevance = Score(ranked[i], q)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Relevance > ranked[j].Relevance
	})

	if len(ranked) > MaxSuggestions {
		ranked = ranked[:MaxSuggestions]
	}
	return ranked
}

// Score computes the adjusted relevance of s for an already folded query, clamped to [0,1].
func Score(s models.AddressSuggestion, foldedQuery string) float64 {
	score := s.Relevance
	name := models.Fold(s.ShortName)

	if foldedQuery != "" && strings.HasPrefix(name, foldedQuery) {
		score += prefixBoost
	}
	if s.PlaceType == models.PlaceStreet {
		score += streetBoost
	}
	if foldedQuery != "" && strings.Contains(name, foldedQuery) {
		score += containsBoost
	}
	return min(max(score, 0), 1)
}

// Dedupe collapses candidates sharing a short name, keeping the first occurrence.
// Callers put local results first so they win ties.
func Dedupe(suggestions []models.AddressSuggestion) []models.AddressSuggestion {
	seen := make(map[string]struct{}, len(suggestions))
	ids := make(map[string]struct{}, len(suggestions))
	out := make([]models.AddressSuggestion, 0, len(suggestions))
	for _, s := range suggestions {
		key := models.Fold(s.ShortName)
		if _, dup := seen[key]; dup {
			continue
		}
		if _, dup := ids[s.ID]; dup {
			continue
		}
		seen[key] = struct{}{}
		ids[s.ID] = struct{}{}
		out = append(out, s)
	}
	return out
}
