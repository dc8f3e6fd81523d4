package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/Mit0lenda/obra-nav-sub000/internal/models"

	"github.com/rs/zerolog"
)

const DefaultGooglePlacesURL = "https://maps.googleapis.com/maps/api/place/autocomplete/json"

// GooglePlacesConfig configures the premium autocomplete geocoder.
type GooglePlacesConfig struct {
	BaseURL     string
	APIKey      string
	CountryCode string
	Language    string
	MaxResults  int
	Timeout     time.Duration
}

// GooglePlaces is the optional premium geocoder. Without an API key it answers
// every lookup with no results and makes no request.
type GooglePlaces struct {
	cfg    GooglePlacesConfig
	client *http.Client
	log    zerolog.Logger
}

func NewGooglePlaces(cfg GooglePlacesConfig, log zerolog.Logger) *GooglePlaces {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGooglePlacesURL
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	return &GooglePlaces{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}
}

type placesPrediction struct {
	PlaceID              string   `json:"place_id"`
	Description          string   `json:"description"`
	Types                []string `json:"types"`
	StructuredFormatting struct {
		MainText      string `json:"main_text"`
		SecondaryText string `json:"secondary_text"`
	} `json:"structured_formatting"`
}

type placesResponse struct {
	Status       string             `json:"status"`
	ErrorMessage string             `json:"error_message"`
	Predictions  []placesPrediction `json:"predictions"`
}

func (g *GooglePlaces) Name() string {
	return "google"
}

// Configured reports whether an API key is present.
func (g *GooglePlaces) Configured() bool {
	return g.cfg.APIKey != ""
}

func (g *GooglePlaces) Lookup(ctx context.Context, query string, opts models.SearchOptions) ([]models.AddressSuggestion, error) {
	if !g.Configured() {
		return []models.AddressSuggestion{}, nil
	}

	limit := opts.MaxResults
	if limit <= 0 {
		limit = g.cfg.MaxResults
	}
	country := g.cfg.CountryCode
	if opts.Country != "" {
		country = opts.Country
	}

	params := url.Values{}
	params.Add("input", query)
	params.Add("key", g.cfg.APIKey)
	if country != "" {
		params.Add("components", "country:"+country)
	}
	if g.cfg.Language != "" {
		params.Add("language", g.cfg.Language)
	}

	reqURL := fmt.Sprintf("%s?%s", g.cfg.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("google places: build request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google places: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google places: upstream status %d", resp.StatusCode)
	}

	var payload placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("google places: decode payload: %w", err)
	}

	if payload.Status != "OK" {
		if payload.Status != "ZERO_RESULTS" {
			g.log.Warn().Str("status", payload.Status).Str("message", payload.ErrorMessage).Msg("google places returned non-OK status")
		}
		return []models.AddressSuggestion{}, nil
	}

	predictions := payload.Predictions
	if len(predictions) > limit {
		predictions = predictions[:limit]
	}

	suggestions := make([]models.AddressSuggestion, 0, len(predictions))
	for i, p := range predictions {
		suggestions = append(suggestions, buildPlacesSuggestion(i, p))
	}
	return suggestions, nil
}

func buildPlacesSuggestion(index int, p placesPrediction) models.AddressSuggestion {
	shortName := p.StructuredFormatting.MainText
	if shortName == "" {
		shortName = firstSegment(p.Description)
	}
	return models.AddressSuggestion{
		ID:          "google-" + p.PlaceID,
		DisplayName: p.Description,
		ShortName:   shortName,
		FullAddress: p.Description,
		PlaceType:   placeTypeFromTypes(p.Types),
		Relevance:   PositionRelevance(index),
	}
}

func placeTypeFromTypes(types []string) models.PlaceType {
	switch {
	case slices.Contains(types, "route"), slices.Contains(types, "street_address"):
		return models.PlaceStreet
	case slices.Contains(types, "locality"), slices.Contains(types, "administrative_area_level_2"):
		return models.PlaceCity
	case slices.Contains(types, "sublocality"), slices.Contains(types, "neighborhood"):
		return models.PlaceNeighborhood
	case slices.Contains(types, "establishment"):
		return models.PlaceEstablishment
	default:
		return models.PlaceOther
	}
}
