package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Mit0lenda/obra-nav-sub000/internal/cache"
	"github.com/Mit0lenda/obra-nav-sub000/internal/enrichment"
	"github.com/Mit0lenda/obra-nav-sub000/internal/gazetteer"
	"github.com/Mit0lenda/obra-nav-sub000/internal/geocoder"
	"github.com/Mit0lenda/obra-nav-sub000/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// countingSource returns fixed suggestions and counts how often it was asked.
type countingSource struct {
	name        string
	suggestions []models.AddressSuggestion
	err         error
	calls       atomic.Int32
}

func (c *countingSource) Name() string {
	return c.name
}

func (c *countingSource) Lookup(_ context.Context, _ string, _ models.SearchOptions) ([]models.AddressSuggestion, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return c.suggestions, nil
}

// MockPostalCodeResolver is a mock implementation of PostalCodeResolver
type MockPostalCodeResolver struct {
	mock.Mock
}

func (m *MockPostalCodeResolver) ResolveByCode(ctx context.Context, code string) (*models.AddressComponents, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(*models.AddressComponents), args.Error(1)
}

func (m *MockPostalCodeResolver) ResolveByAddress(ctx context.Context, uf, cidade, logradouro string) ([]models.CepCandidate, error) {
	args := m.Called(ctx, uf, cidade, logradouro)
	return args.Get(0).([]models.CepCandidate), args.Error(1)
}

// MockEnricher is a mock implementation of Enricher
type MockEnricher struct {
	mock.Mock
}

func (m *MockEnricher) Enrich(ctx context.Context, req enrichment.Request) models.AddressComponents {
	args := m.Called(ctx, req)
	return args.Get(0).(models.AddressComponents)
}

var defaultOptions = models.SearchOptions{MaxResults: 5, Country: "br"}

func newPipeline(ttl time.Duration, sources ...geocoder.Source) *AddressService {
	local := gazetteer.NewDefault()
	all := append([]geocoder.Source{local}, sources...)
	return NewAddressService(local, all, nil, nil, cache.NewSuggestionCache(ttl), defaultOptions, zerolog.Nop())
}

func TestAddressService_SearchSuggestionsRejectsShortQuery(t *testing.T) {
	remote := &countingSource{name: "nominatim"}
	svc := newPipeline(time.Minute, remote)

	for _, q := range []string{"", "ab", "  ab  ", "sã"} {
		_, err := svc.SearchSuggestions(context.Background(), q, models.SearchOptions{})
		require.Error(t, err)
		assert.True(t, models.IsValidation(err))
	}
	assert.Equal(t, int32(0), remote.calls.Load())
}

func TestAddressService_SearchSuggestionsLocalScenario(t *testing.T) {
	remote := &countingSource{name: "nominatim", suggestions: []models.AddressSuggestion{}}
	svc := newPipeline(time.Minute, remote)

	result, err := svc.SearchSuggestions(context.Background(), "Rua das Flores", models.SearchOptions{})
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, "local-0", result[0].ID)
	assert.Equal(t, models.PlaceStreet, result[0].PlaceType)
	assert.InDelta(t, 1.0, result[0].Relevance, 1e-9)
}

func TestAddressService_SearchSuggestionsMergesAndDedupes(t *testing.T) {
	lat, lon := -25.4296, -49.2713
	remote := &countingSource{name: "nominatim", suggestions: []models.AddressSuggestion{
		{ID: "nominatim-1", ShortName: "Rua das Flores", PlaceType: models.PlaceStreet, Relevance: 0.8, Latitude: &lat, Longitude: &lon},
		{ID: "nominatim-2", ShortName: "Curitiba", PlaceType: models.PlaceCity, Relevance: 0.7},
	}}
	db := &countingSource{name: "db", suggestions: []models.AddressSuggestion{
		{ID: "db-9", ShortName: "Rua das Flores, 123", PlaceType: models.PlaceStreet, Relevance: 0.8},
	}}
	svc := newPipeline(time.Minute, remote, db)

	result, err := svc.SearchSuggestions(context.Background(), "Rua das Flores", models.SearchOptions{})
	require.NoError(t, err)

	ids := make([]string, 0, len(result))
	for _, s := range result {
		ids = append(ids, s.ID)
	}
	assert.Contains(t, ids, "local-0")
	assert.NotContains(t, ids, "nominatim-1", "local entry wins the tie on shortName")
	assert.Contains(t, ids, "db-9")
	assert.Contains(t, ids, "nominatim-2")

	for i := 1; i < len(result); i++ {
		assert.GreaterOrEqual(t, result[i-1].Relevance, result[i].Relevance)
	}
}

func TestAddressService_SearchSuggestionsCache(t *testing.T) {
	remote := &countingSource{name: "nominatim", suggestions: []models.AddressSuggestion{
		{ID: "nominatim-1", ShortName: "Avenida Paulista, 1000", PlaceType: models.PlaceStreet, Relevance: 0.8},
	}}
	svc := newPipeline(50*time.Millisecond, remote)
	ctx := context.Background()

	first, err := svc.SearchSuggestions(ctx, "Avenida Paulista", models.SearchOptions{})
	require.NoError(t, err)
	second, err := svc.SearchSuggestions(ctx, "avenida paulista ", models.SearchOptions{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), remote.calls.Load())

	// different options are a different key
	_, err = svc.SearchSuggestions(ctx, "Avenida Paulista", models.SearchOptions{MaxResults: 2})
	require.NoError(t, err)
	assert.Equal(t, int32(2), remote.calls.Load())

	time.Sleep(120 * time.Millisecond)

	_, err = svc.SearchSuggestions(ctx, "Avenida Paulista", models.SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, int32(3), remote.calls.Load())
}

func TestAddressService_SearchSuggestionsGracefulDegradation(t *testing.T) {
	remote := &countingSource{name: "nominatim", err: errors.New("connection refused")}
	svc := newPipeline(time.Minute, remote)

	result, err := svc.SearchSuggestions(context.Background(), "Sete de Setembro", models.SearchOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, result)
	for _, s := range result {
		assert.Contains(t, s.ID, "local-")
	}

	// degraded answers are retried on the next call
	_, err = svc.SearchSuggestions(context.Background(), "Sete de Setembro", models.SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), remote.calls.Load())
}

func TestAddressService_SearchSuggestionsFallbackChain(t *testing.T) {
	premium := &countingSource{name: "google", suggestions: []models.AddressSuggestion{}}
	primary := &countingSource{name: "nominatim", suggestions: []models.AddressSuggestion{
		{ID: "nominatim-1", ShortName: "Praça da Sé", PlaceType: models.PlaceOther, Relevance: 0.8},
	}}
	svc := newPipeline(time.Minute, geocoder.FirstNonEmpty(zerolog.Nop(), premium, primary))

	result, err := svc.SearchSuggestions(context.Background(), "Praça da Sé", models.SearchOptions{})
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, "nominatim-1", result[0].ID)
	assert.Equal(t, int32(1), premium.calls.Load())
	assert.Equal(t, int32(1), primary.calls.Load())
}

func TestAddressService_GetLocalSuggestions(t *testing.T) {
	svc := newPipeline(time.Minute)

	result := svc.GetLocalSuggestions("flores")
	require.Len(t, result, 1)
	assert.Equal(t, "Rua das Flores", result[0].ShortName)
	assert.Equal(t, 0.5, result[0].Relevance)

	assert.Empty(t, svc.GetLocalSuggestions("zzzz"))
}

func TestAddressService_SearchByPostalCode(t *testing.T) {
	resolved := &models.AddressComponents{
		Logradouro: "Avenida Paulista", Bairro: "Bela Vista", Cidade: "São Paulo",
		UF: "SP", Estado: "São Paulo", CEP: "01310-100",
		Fonte: models.FontePostalRegistry, Confiabilidade: models.ConfiabilidadeHigh,
	}

	tests := []struct {
		name             string
		code             string
		mockResult       *models.AddressComponents
		mockError        error
		expected         *models.AddressComponents
		expectValidation bool
		expectRegistry   bool
	}{
		{name: "resolved", code: "01310-100", mockResult: resolved, expected: resolved},
		{name: "not found", code: "00000000"},
		{name: "invalid code", code: "123", mockError: models.NewValidationError("cep", "must have 8 digits"), expectValidation: true},
		{name: "registry down", code: "01310100", mockError: models.ErrRegistryUnavailable, expectRegistry: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postal := new(MockPostalCodeResolver)
			postal.On("ResolveByCode", mock.Anything, tt.code).Return(tt.mockResult, tt.mockError)
			svc := NewAddressService(gazetteer.NewDefault(), nil, postal, nil, nil, defaultOptions, zerolog.Nop())

			result, err := svc.SearchByPostalCode(context.Background(), tt.code)

			switch {
			case tt.expectValidation:
				assert.True(t, models.IsValidation(err))
			case tt.expectRegistry:
				assert.ErrorIs(t, err, models.ErrRegistryUnavailable)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
			postal.AssertExpectations(t)
		})
	}
}

func TestAddressService_SearchCepByAddress(t *testing.T) {
	postal := new(MockPostalCodeResolver)
	postal.On("ResolveByAddress", mock.Anything, "SP", "São Paulo", "Paulista").
		Return([]models.CepCandidate{{CEP: "01310-100", Logradouro: "Avenida Paulista"}}, nil)
	postal.On("ResolveByAddress", mock.Anything, "SP", "São Paulo", "Inexistente").
		Return([]models.CepCandidate(nil), models.ErrRegistryUnavailable)
	svc := NewAddressService(gazetteer.NewDefault(), nil, postal, nil, nil, defaultOptions, zerolog.Nop())

	candidates, err := svc.SearchCepByAddress(context.Background(), "SP", "São Paulo", "Paulista")
	require.NoError(t, err)
	assert.Len(t, candidates, 1)

	_, err = svc.SearchCepByAddress(context.Background(), "SP", "São Paulo", "Inexistente")
	assert.ErrorIs(t, err, models.ErrRegistryUnavailable)
}

func TestAddressService_Enrich(t *testing.T) {
	enricher := new(MockEnricher)
	req := enrichment.Request{Text: "Rua das Flores, Centro, Curitiba, PR"}
	enricher.On("Enrich", mock.Anything, req).Return(models.AddressComponents{
		Logradouro: "Rua das Flores", Fonte: models.FonteManual, Confiabilidade: models.ConfiabilidadeLow,
	})
	svc := NewAddressService(gazetteer.NewDefault(), nil, nil, enricher, nil, defaultOptions, zerolog.Nop())

	result, err := svc.Enrich(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Rua das Flores", result.Logradouro)

	_, err = svc.Enrich(context.Background(), enrichment.Request{Text: "   "})
	assert.True(t, models.IsValidation(err))

	enricher.AssertNumberOfCalls(t, "Enrich", 1)
}
