// Package gazetteer is the always-available offline suggestion source: a small
// static list of common street names matched by case- and accent-insensitive substring.
package gazetteer

import (
	"context"
	"fmt"
	"sort"

	"github.com/Mit0lenda/obra-nav-sub000/internal/models"

	"github.com/tchap/go-patricia/v2/patricia"
)

const (
	// MaxResults caps how many local matches are returned.
	MaxResults = 3
	// Relevance is the fixed base score of every local match.
	Relevance = 0.5
)

// Streets is the built-in gazetteer.
var Streets = []string{
	"Rua das Flores",
	"Avenida Paulista",
	"Rua Augusta",
	"Rua Oscar Freire",
	"Avenida Brigadeiro Faria Lima",
	"Rua XV de Novembro",
	"Avenida Atlântica",
	"Rua da Consolação",
	"Avenida Presidente Vargas",
	"Rua Sete de Setembro",
	"Avenida Afonso Pena",
	"Rua Direita",
	"Avenida Getúlio Vargas",
	"Rua Barão de Itapetininga",
	"Avenida Rio Branco",
	"Rua São Bento",
	"Avenida Ipiranga",
	"Rua Tiradentes",
	"Avenida Sete de Setembro",
	"Rua Marechal Deodoro",
	"Avenida Santos Dumont",
	"Rua Dom Pedro II",
	"Avenida Beira Mar",
	"Rua das Palmeiras",
	"Avenida JK",
}

// Source matches queries against an in-memory gazetteer. It never performs I/O.
type Source struct {
	names []string
	trie  *patricia.Trie
}

// New indexes names. Every suffix of each folded name is a trie key, so a substring
// lookup becomes a prefix visit.
func New(names []string) *Source {
	s := &Source{
		names: names,
		trie:  patricia.NewTrie(),
	}
	for i, name := range names {
		folded := []rune(models.Fold(name))
		for start := range folded {
			s.add(string(folded[start:]), i)
		}
	}
	return s
}

// NewDefault indexes the built-in street list.
func NewDefault() *Source {
	return New(Streets)
}

func (s *Source) add(suffix string, index int) {
	key := patricia.Prefix(suffix)
	if existing := s.trie.Get(key); existing != nil {
		s.trie.Set(key, append(existing.([]int), index))
		return
	}
	s.trie.Insert(key, []int{index})
}

// Name identifies the source in logs and suggestion ids.
func (s *Source) Name() string {
	return "local"
}

// Search returns up to MaxResults gazetteer entries containing query.
func (s *Source) Search(query string) []models.AddressSuggestion {
	folded := models.Fold(query)
	if folded == "" {
		return []models.AddressSuggestion{}
	}

	seen := make(map[int]struct{})
	_ = s.trie.VisitSubtree(patricia.Prefix(folded), func(_ patricia.Prefix, item patricia.Item) error {
		for _, idx := range item.([]int) {
			seen[idx] = struct{}{}
		}
		return nil
	})

	indexes := make([]int, 0, len(seen))
	for idx := range seen {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	if len(indexes) > MaxResults {
		indexes = indexes[:MaxResults]
	}

	results := make([]models.AddressSuggestion, 0, len(indexes))
	for _, idx := range indexes {
		name := s.names[idx]
		results = append(results, models.AddressSuggestion{
			ID:          fmt.Sprintf("local-%d", idx),
			DisplayName: name,
			ShortName:   name,
			FullAddress: name,
			PlaceType:   models.PlaceStreet,
			Relevance:   Relevance,
		})
	}
	return results
}

// Lookup adapts Search to the asynchronous source signature used by the pipeline.
func (s *Source) Lookup(_ context.Context, query string, _ models.SearchOptions) ([]models.AddressSuggestion, error) {
	return s.Search(query), nil
}
