package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Mit0lenda/obra-nav-sub000/internal/models"

	"golang.org/x/time/rate"
)

const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"
	defaultMaxResults   = 5
)

// NominatimConfig configures the OpenStreetMap free-text geocoder.
type NominatimConfig struct {
	BaseURL       string
	UserAgent     string
	CountryCode   string
	CountryName   string
	MaxResults    int
	RatePerSecond float64
	Timeout       time.Duration
}

// Nominatim is the primary free-text geocoder.
type Nominatim struct {
	cfg     NominatimConfig
	client  *http.Client
	limiter *rate.Limiter
}

// NewNominatim creates the geocoder. Requests are throttled to RatePerSecond to stay
// inside the public instance's usage policy.
func NewNominatim(cfg NominatimConfig) *Nominatim {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultNominatimURL
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	return &Nominatim{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, 1),
	}
}

type nominatimAddress struct {
	Road          string `json:"road"`
	HouseNumber   string `json:"house_number"`
	Neighbourhood string `json:"neighbourhood"`
	Suburb        string `json:"suburb"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	Municipality  string `json:"municipality"`
	State         string `json:"state"`
	StateISO      string `json:"ISO3166-2-lvl4"`
	Postcode      string `json:"postcode"`
}

// nominatimResponse mirrors the relevant parts of the search payload.
type nominatimResponse struct {
	PlaceID     int64            `json:"place_id"`
	DisplayName string           `json:"display_name"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Address     nominatimAddress `json:"address"`
}

func (n *Nominatim) Name() string {
	return "nominatim"
}

// Lookup searches the provider with a country hint and maps each record to a suggestion.
func (n *Nominatim) Lookup(ctx context.Context, query string, opts models.SearchOptions) ([]models.AddressSuggestion, error) {
	limit := opts.MaxResults
	if limit <= 0 {
		limit = n.cfg.MaxResults
	}
	country := n.cfg.CountryCode
	if opts.Country != "" {
		country = opts.Country
	}

	q := query
	if n.cfg.CountryName != "" {
		q = query + ", " + n.cfg.CountryName
	}

	params := url.Values{}
	params.Add("q", q)
	params.Add("format", "json")
	params.Add("addressdetails", "1")
	params.Add("limit", strconv.Itoa(limit))
	if country != "" {
		params.Add("countrycodes", country)
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("nominatim: rate limiter: %w", err)
	}

	reqURL := fmt.Sprintf("%s?%s", n.cfg.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("nominatim: build request: %w", err)
	}
	if n.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", n.cfg.UserAgent)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim: upstream status %d", resp.StatusCode)
	}

	var raw []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("nominatim: decode payload: %w", err)
	}

	suggestions := make([]models.AddressSuggestion, 0, len(raw))
	for i, r := range raw {
		suggestions = append(suggestions, buildNominatimSuggestion(i, r))
	}
	return suggestions, nil
}

func buildNominatimSuggestion(index int, raw nominatimResponse) models.AddressSuggestion {
	addr := toProviderAddress(raw.Address)

	shortName := firstSegment(raw.DisplayName)
	if addr.Road != "" {
		shortName = joinNonEmpty(", ", addr.Road, addr.HouseNumber)
	}

	s := models.AddressSuggestion{
		ID:          fmt.Sprintf("nominatim-%d", raw.PlaceID),
		DisplayName: raw.DisplayName,
		ShortName:   shortName,
		FullAddress: joinNonEmpty(", ", addr.Road, addr.HouseNumber, addr.District(), addr.Locality(), addr.State),
		PlaceType:   inferPlaceType(addr),
		Relevance:   PositionRelevance(index),
		Address:     &addr,
	}

	lat, latErr := strconv.ParseFloat(raw.Lat, 64)
	lon, lonErr := strconv.ParseFloat(raw.Lon, 64)
	if latErr == nil && lonErr == nil {
		s.Latitude = &lat
		s.Longitude = &lon
	}
	return s
}

func toProviderAddress(a nominatimAddress) models.ProviderAddress {
	addr := models.ProviderAddress{
		Road:          a.Road,
		HouseNumber:   a.HouseNumber,
		Neighbourhood: a.Neighbourhood,
		Suburb:        a.Suburb,
		City:          a.City,
		Town:          a.Town,
		Village:       a.Village,
		Municipality:  a.Municipality,
		State:         a.State,
		Postcode:      a.Postcode,
	}
	if uf, ok := models.RegionCodeFromISO(a.StateISO); ok {
		addr.StateCode = uf
	}
	return addr
}

func inferPlaceType(a models.ProviderAddress) models.PlaceType {
	switch {
	case a.Road != "":
		return models.PlaceStreet
	case a.Locality() != "":
		return models.PlaceCity
	case a.District() != "":
		return models.PlaceNeighborhood
	default:
		return models.PlaceOther
	}
}
