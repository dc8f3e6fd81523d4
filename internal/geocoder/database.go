package geocoder

import (
	"context"
	"fmt"

	"github.com/Mit0lenda/obra-nav-sub000/internal/models"
)

// AddressFinder is the slice of the address store the database source needs.
type AddressFinder interface {
	SearchAddressesByText(ctx context.Context, query string, limit int) ([]models.StoredAddress, error)
}

// Database turns full-text matches from the imported address table into suggestions.
type Database struct {
	finder     AddressFinder
	maxResults int
}

func NewDatabase(finder AddressFinder, maxResults int) *Database {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &Database{finder: finder, maxResults: maxResults}
}

func (d *Database) Name() string {
	return "db"
}

func (d *Database) Lookup(ctx context.Context, query string, opts models.SearchOptions) ([]models.AddressSuggestion, error) {
	limit := opts.MaxResults
	if limit <= 0 {
		limit = d.maxResults
	}

	stored, err := d.finder.SearchAddressesByText(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	suggestions := make([]models.AddressSuggestion, 0, len(stored))
	for i, a := range stored {
		suggestions = append(suggestions, buildStoredSuggestion(i, a))
	}
	return suggestions, nil
}

func buildStoredSuggestion(index int, a models.StoredAddress) models.AddressSuggestion {
	addr := models.ProviderAddress{
		Road:          a.Logradouro,
		HouseNumber:   a.Numero,
		Neighbourhood: a.Bairro,
		City:          a.Cidade,
		State:         models.RegionName(a.UF),
		StateCode:     a.UF,
		Postcode:      a.CEP,
	}
	lat, lon := a.Latitude, a.Longitude

	shortName := joinNonEmpty(", ", a.Logradouro, a.Numero)
	if shortName == "" {
		shortName = a.Cidade
	}
	return models.AddressSuggestion{
		ID:          fmt.Sprintf("db-%d", a.ID),
		DisplayName: joinNonEmpty(", ", a.Logradouro, a.Numero, a.Bairro, a.Cidade, a.UF, models.FormatCEP(a.CEP)),
		ShortName:   shortName,
		FullAddress: joinNonEmpty(", ", a.Logradouro, a.Numero, a.Bairro, a.Cidade, addr.State),
		Latitude:    &lat,
		Longitude:   &lon,
		PlaceType:   inferPlaceType(addr),
		Relevance:   PositionRelevance(index),
		Address:     &addr,
	}
}
