// Package geocoder contains the remote suggestion sources and the combinators the
// pipeline uses to declare its source order.
package geocoder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Mit0lenda/obra-nav-sub000/internal/models"

	"github.com/rs/zerolog"
)

// Source is anything that turns a query into suggestions.
type Source interface {
	Name() string
	Lookup(ctx context.Context, query string, opts models.SearchOptions) ([]models.AddressSuggestion, error)
}

// Result is the outcome of one source call. Err is set on transport or decode failure;
// an empty Suggestions slice with a nil Err is a normal "nothing found".
type Result struct {
	Source      string
	Suggestions []models.AddressSuggestion
	Err         error
}

// Call runs src and captures its outcome as a Result.
func Call(ctx context.Context, src Source, query string, opts models.SearchOptions) Result {
	suggestions, err := src.Lookup(ctx, query, opts)
	if suggestions == nil {
		suggestions = []models.AddressSuggestion{}
	}
	return Result{Source: src.Name(), Suggestions: suggestions, Err: err}
}

// fallback tries each source in order and stops at the first non-empty answer.
type fallback struct {
	name    string
	sources []Source
	log     zerolog.Logger
}

// FirstNonEmpty combines sources into one: a failing or silent source hands over to the next.
// It only reports an error when every attempt failed.
func FirstNonEmpty(log zerolog.Logger, sources ...Source) Source {
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Name())
	}
	return &fallback{
		name:    strings.Join(names, ">"),
		sources: sources,
		log:     log,
	}
}

func (f *fallback) Name() string {
	return f.name
}

func (f *fallback) Lookup(ctx context.Context, query string, opts models.SearchOptions) ([]models.AddressSuggestion, error) {
	var errs []error
	for _, src := range f.sources {
		res := Call(ctx, src, query, opts)
		if res.Err != nil {
			f.log.Warn().Err(res.Err).Str("source", res.Source).Msg("source failed, trying next")
			errs = append(errs, fmt.Errorf("%s: %w", res.Source, res.Err))
			continue
		}
		if len(res.Suggestions) > 0 {
			return res.Suggestions, nil
		}
	}
	if len(errs) == len(f.sources) && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return []models.AddressSuggestion{}, nil
}

// PositionRelevance scores a provider result by its rank: 0.8 for the first,
// 0.1 less for each following one, never below 0.1.
func PositionRelevance(index int) float64 {
	return max(0.8-float64(index)*0.1, 0.1)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func firstSegment(label string) string {
	head, _, _ := strings.Cut(label, ",")
	return strings.TrimSpace(head)
}
