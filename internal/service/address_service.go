package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Mit0lenda/obra-nav-sub000/internal/cache"
	"github.com/Mit0lenda/obra-nav-sub000/internal/enrichment"
	"github.com/Mit0lenda/obra-nav-sub000/internal/geocoder"
	"github.com/Mit0lenda/obra-nav-sub000/internal/models"
	"github.com/Mit0lenda/obra-nav-sub000/internal/ranking"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

// MinQueryLength is the shortest query the remote search accepts.
const MinQueryLength = 3

// LocalSearcher is the synchronous gazetteer lookup
type LocalSearcher interface {
	Search(query string) []models.AddressSuggestion
}

// PostalCodeResolver interface for dependency injection
type PostalCodeResolver interface {
	ResolveByCode(ctx context.Context, code string) (*models.AddressComponents, error)
	ResolveByAddress(ctx context.Context, uf, cidade, logradouro string) ([]models.CepCandidate, error)
}

// Enricher builds a structured address out of a suggestion or free text
type Enricher interface {
	Enrich(ctx context.Context, req enrichment.Request) models.AddressComponents
}

// AddressService is the address resolution pipeline: it fans a query out to every source,
// merges, dedupes, ranks and caches the answer.
type AddressService struct {
	local    LocalSearcher
	sources  []geocoder.Source
	postal   PostalCodeResolver
	enricher Enricher
	cache    *cache.SuggestionCache
	defaults models.SearchOptions
	log      zerolog.Logger
}

// NewAddressService creates the pipeline. sources are queried in parallel and their results
// concatenated in the given order, so earlier sources win dedupe ties.
func NewAddressService(
	local LocalSearcher,
	sources []geocoder.Source,
	postal PostalCodeResolver,
	enricher Enricher,
	suggestions *cache.SuggestionCache,
	defaults models.SearchOptions,
	log zerolog.Logger,
) *AddressService {
	if suggestions == nil {
		suggestions = cache.NewSuggestionCache(cache.DefaultTTL)
	}
	return &AddressService{
		local:    local,
		sources:  sources,
		postal:   postal,
		enricher: enricher,
		cache:    suggestions,
		defaults: defaults,
		log:      log,
	}
}

// SearchSuggestions returns ranked address candidates for query.
// A failing source only shrinks the answer; the call itself fails only on invalid input.
func (s *AddressService) SearchSuggestions(ctx context.Context, query string, opts models.SearchOptions) ([]models.AddressSuggestion, error) {
	ctx, span := otel.Tracer("address").Start(ctx, "SearchSuggestions")
	defer span.End()

	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, models.NewValidationError("query", fmt.Sprintf("must have at least %d characters", MinQueryLength))
	}
	opts = s.withDefaults(opts)

	span.SetAttributes(
		attribute.String("address.query", query),
		attribute.Int("address.max_results", opts.MaxResults),
	)

	key := cache.Key(query, opts)
	if cached, ok := s.cache.Get(key); ok {
		span.SetAttributes(attribute.Bool("address.cache_hit", true))
		s.log.Debug().Str("query", query).Msg("suggestion cache hit")
		return cached, nil
	}

	results := s.fanOut(ctx, query, opts)

	merged := []models.AddressSuggestion{}
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			span.RecordError(r.Err)
			s.log.Warn().Err(r.Err).Str("source", r.Source).Str("query", query).Msg("suggestion source failed")
			continue
		}
		merged = append(merged, r.Suggestions...)
	}

	ranked := ranking.Rank(ranking.Dedupe(merged), query)
	span.SetAttributes(
		attribute.Int("address.results", len(ranked)),
		attribute.Int("address.failed_sources", failed),
	)

	// A degraded answer is not cached so the next call retries the failed source.
	if failed == 0 {
		s.cache.Set(key, ranked)
	}
	return ranked, nil
}

func (s *AddressService) fanOut(ctx context.Context, query string, opts models.SearchOptions) []geocoder.Result {
	results := make([]geocoder.Result, len(s.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range s.sources {
		i, src := i, src
		g.Go(func() error {
			srcCtx, span := otel.Tracer("address").Start(gctx, "Source.Lookup")
			defer span.End()
			span.SetAttributes(attribute.String("address.source", src.Name()))

			results[i] = geocoder.Call(srcCtx, src, query, opts)
			if results[i].Err != nil {
				span.SetStatus(codes.Error, "source lookup failed")
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *AddressService) withDefaults(opts models.SearchOptions) models.SearchOptions {
	if opts.MaxResults <= 0 {
		opts.MaxResults = s.defaults.MaxResults
	}
	if opts.Country == "" {
		opts.Country = s.defaults.Country
	}
	opts.Country = strings.ToLower(opts.Country)
	return opts
}

// GetLocalSuggestions answers from the offline gazetteer only.
func (s *AddressService) GetLocalSuggestions(query string) []models.AddressSuggestion {
	return s.local.Search(query)
}

// SearchByPostalCode resolves a CEP. A well-formed code that does not exist yields nil, nil.
func (s *AddressService) SearchByPostalCode(ctx context.Context, code string) (*models.AddressComponents, error) {
	ctx, span := otel.Tracer("address").Start(ctx, "SearchByPostalCode")
	defer span.End()

	result, err := s.postal.ResolveByCode(ctx, code)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "postal code lookup failed")
		return nil, fmt.Errorf("service: failed to resolve postal code: %w", err)
	}

	return result, nil
}

// SearchCepByAddress lists the postal codes registered for a street.
func (s *AddressService) SearchCepByAddress(ctx context.Context, uf, cidade, logradouro string) ([]models.CepCandidate, error) {
	ctx, span := otel.Tracer("address").Start(ctx, "SearchCepByAddress")
	defer span.End()

	candidates, err := s.postal.ResolveByAddress(ctx, uf, cidade, logradouro)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("service: failed to search postal codes: %w", err)
	}

	return candidates, nil
}

// Enrich turns a selected suggestion or raw text into a complete address record.
func (s *AddressService) Enrich(ctx context.Context, req enrichment.Request) (models.AddressComponents, error) {
	ctx, span := otel.Tracer("address").Start(ctx, "Enrich")
	defer span.End()

	if req.Suggestion == nil && strings.TrimSpace(req.Text) == "" {
		return models.AddressComponents{}, models.NewValidationError("request", "suggestion or text is required")
	}

	result := s.enricher.Enrich(ctx, req)
	span.SetAttributes(
		attribute.String("address.fonte", string(result.Fonte)),
		attribute.String("address.confiabilidade", string(result.Confiabilidade)),
	)

	return result, nil
}
