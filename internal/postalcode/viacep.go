// Package postalcode resolves Brazilian postal codes (CEP) against the ViaCEP registry.
package postalcode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Mit0lenda/obra-nav-sub000/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultViaCEPURL = "https://viacep.com.br/ws"
	// MaxCandidates caps an address -> CEP lookup.
	MaxCandidates = 5
)

// Config configures the registry client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Resolver looks up CEPs and caches every resolved code for the life of the process.
type Resolver struct {
	baseURL string
	client  *http.Client

	mu    sync.RWMutex
	cache map[string]models.AddressComponents
}

func NewResolver(cfg Config) *Resolver {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultViaCEPURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	return &Resolver{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		cache:   make(map[string]models.AddressComponents),
	}
}

// FlexBool accepts the registry's not-found flag whether it arrives as true or "true".
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexBool(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexBool(strings.EqualFold(strings.TrimSpace(s), "true"))
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into FlexBool", string(data))
}

type viaCEPRecord struct {
	CEP         string   `json:"cep"`
	Logradouro  string   `json:"logradouro"`
	Complemento string   `json:"complemento"`
	Bairro      string   `json:"bairro"`
	Localidade  string   `json:"localidade"`
	UF          string   `json:"uf"`
	Estado      string   `json:"estado"`
	Erro        FlexBool `json:"erro"`
}

// ResolveByCode returns the canonical address for code, or nil when the registry has no
// such CEP. Malformed codes fail with a *models.ValidationError before any request is made;
// transport failures wrap models.ErrRegistryUnavailable.
func (r *Resolver) ResolveByCode(ctx context.Context, code string) (*models.AddressComponents, error) {
	digits, ok := models.NormalizeCEP(code)
	if !ok {
		return nil, models.NewValidationError("cep", "postal code must have exactly 8 digits")
	}

	r.mu.RLock()
	cached, hit := r.cache[digits]
	r.mu.RUnlock()
	if hit {
		return &cached, nil
	}

	var record viaCEPRecord
	if err := r.get(ctx, fmt.Sprintf("%s/%s/json/", r.baseURL, digits), &record); err != nil {
		return nil, err
	}
	if record.Erro {
		return nil, nil
	}

	components := toComponents(record, digits)

	r.mu.Lock()
	r.cache[digits] = components
	r.mu.Unlock()

	return &components, nil
}

type addressQuery struct {
	UF         string `validate:"required,uf"`
	Cidade     string `validate:"required,min=3"`
	Logradouro string `validate:"required,min=3"`
}

// ResolveByAddress runs the inverse lookup and returns at most MaxCandidates matches.
// No match is an empty slice, never an error.
func (r *Resolver) ResolveByAddress(ctx context.Context, uf, cidade, logradouro string) ([]models.CepCandidate, error) {
	q := addressQuery{
		UF:         strings.ToUpper(strings.TrimSpace(uf)),
		Cidade:     strings.TrimSpace(cidade),
		Logradouro: strings.TrimSpace(logradouro),
	}
	if err := models.Validator().Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, models.NewValidationError(strings.ToLower(verrs[0].Field()), "failed '"+verrs[0].Tag()+"' check")
		}
		return nil, models.NewValidationError("address", err.Error())
	}

	reqURL := fmt.Sprintf("%s/%s/%s/%s/json/", r.baseURL,
		url.PathEscape(q.UF), url.PathEscape(q.Cidade), url.PathEscape(q.Logradouro))

	var records []viaCEPRecord
	if err := r.get(ctx, reqURL, &records); err != nil {
		return nil, err
	}

	candidates := make([]models.CepCandidate, 0, min(len(records), MaxCandidates))
	for _, rec := range records {
		if len(candidates) == MaxCandidates {
			break
		}
		formatted := models.FormatCEP(rec.CEP)
		if rec.Erro || formatted == "" {
			continue
		}
		candidates = append(candidates, models.CepCandidate{
			CEP:         formatted,
			Logradouro:  rec.Logradouro,
			Complemento: rec.Complemento,
			Bairro:      rec.Bairro,
			Cidade:      rec.Localidade,
			UF:          rec.UF,
		})
	}
	return candidates, nil
}

func (r *Resolver) get(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("postalcode: build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("postalcode: request failed: %w: %w", models.ErrRegistryUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("postalcode: upstream status %d: %w", resp.StatusCode, models.ErrRegistryUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("postalcode: decode payload: %w: %w", models.ErrRegistryUnavailable, err)
	}
	return nil
}

func toComponents(rec viaCEPRecord, digits string) models.AddressComponents {
	uf := strings.ToUpper(strings.TrimSpace(rec.UF))
	c := models.AddressComponents{
		Logradouro:     rec.Logradouro,
		Complemento:    rec.Complemento,
		Bairro:         rec.Bairro,
		Cidade:         rec.Localidade,
		UF:             uf,
		Estado:         models.RegionName(uf),
		CEP:            models.FormatCEP(digits),
		Fonte:          models.FontePostalRegistry,
		Confiabilidade: models.ConfiabilidadeHigh,
	}
	c.EnderecoCompleto = models.FormatFullAddress(c)
	return c
}
