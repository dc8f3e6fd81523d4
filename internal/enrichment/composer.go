// Package enrichment turns a chosen suggestion or raw text into a complete AddressComponents
// record, filling gaps through secondary lookups.
package enrichment

import (
	"context"
	"strings"

	"github.com/Mit0lenda/obra-nav-sub000/internal/geocoder"
	"github.com/Mit0lenda/obra-nav-sub000/internal/models"

	"github.com/rs/zerolog"
)

// PostalCodes is the postal-code registry as seen by the composer.
type PostalCodes interface {
	ResolveByCode(ctx context.Context, code string) (*models.AddressComponents, error)
	ResolveByAddress(ctx context.Context, uf, cidade, logradouro string) ([]models.CepCandidate, error)
}

// Request carries either a selected suggestion or raw free text.
type Request struct {
	Suggestion *models.AddressSuggestion `json:"suggestion,omitempty"`
	Text       string                    `json:"text,omitempty"`
}

// Composer builds structured addresses. It never fails: missing data lowers confiabilidade.
type Composer struct {
	postal PostalCodes
	coords geocoder.Source
	log    zerolog.Logger
}

// NewComposer creates a composer. coords may be nil, which disables coordinate gap filling.
func NewComposer(postal PostalCodes, coords geocoder.Source, log zerolog.Logger) *Composer {
	return &Composer{postal: postal, coords: coords, log: log}
}

// Enrich produces the structured address for req.
func (c *Composer) Enrich(ctx context.Context, req Request) models.AddressComponents {
	var out models.AddressComponents

	switch {
	case req.Suggestion != nil && req.Suggestion.Address != nil:
		out = fromBreakdown(*req.Suggestion)
	case req.Suggestion != nil:
		out = fromText(suggestionText(*req.Suggestion))
		out.Latitude, out.Longitude = req.Suggestion.Latitude, req.Suggestion.Longitude
	default:
		if resolved, ok := c.resolveCEPText(ctx, req.Text); ok {
			return resolved
		}
		out = fromText(req.Text)
	}

	c.fillCEP(ctx, &out)
	if out.UF != "" && out.Estado == "" {
		out.Estado = models.RegionName(out.UF)
	}
	c.fillCoordinates(ctx, &out)

	out.EnderecoCompleto = models.FormatFullAddress(out)
	return out
}

func fromBreakdown(s models.AddressSuggestion) models.AddressComponents {
	a := s.Address

	uf := ""
	if models.IsRegionCode(a.StateCode) {
		uf = strings.ToUpper(a.StateCode)
	} else if code, ok := models.RegionCodeByName(a.State); ok {
		uf = code
	}
	estado := a.State
	if uf != "" {
		estado = models.RegionName(uf)
	}

	return models.AddressComponents{
		Logradouro:     a.Road,
		Numero:         a.HouseNumber,
		Bairro:         a.District(),
		Cidade:         a.Locality(),
		Estado:         estado,
		UF:             uf,
		CEP:            models.FormatCEP(a.Postcode),
		Latitude:       s.Latitude,
		Longitude:      s.Longitude,
		Fonte:          models.FonteGeocoder,
		Confiabilidade: models.ConfiabilidadeMedium,
	}
}

func fromText(text string) models.AddressComponents {
	c := ParseFreeText(text)
	c.Fonte = models.FonteManual
	c.Confiabilidade = models.ConfiabilidadeLow
	return c
}

func suggestionText(s models.AddressSuggestion) string {
	switch {
	case s.DisplayName != "":
		return s.DisplayName
	case s.FullAddress != "":
		return s.FullAddress
	default:
		return s.ShortName
	}
}

// resolveCEPText answers text that is nothing but a CEP straight from the registry.
func (c *Composer) resolveCEPText(ctx context.Context, text string) (models.AddressComponents, bool) {
	digits, ok := looksLikeCEP(text)
	if !ok || c.postal == nil {
		return models.AddressComponents{}, false
	}
	resolved, err := c.postal.ResolveByCode(ctx, digits)
	if err != nil {
		c.log.Debug().Err(err).Str("cep", digits).Msg("cep lookup for free text failed")
		return models.AddressComponents{}, false
	}
	if resolved == nil {
		return models.AddressComponents{}, false
	}
	out := *resolved
	out.EnderecoCompleto = models.FormatFullAddress(out)
	return out, true
}

// fillCEP runs the inverse registry lookup when the postal code is the only thing missing.
// A match upgrades confiabilidade to high.
func (c *Composer) fillCEP(ctx context.Context, out *models.AddressComponents) {
	if c.postal == nil || out.CEP != "" || out.UF == "" || out.Cidade == "" || out.Logradouro == "" {
		return
	}

	candidates, err := c.postal.ResolveByAddress(ctx, out.UF, out.Cidade, out.Logradouro)
	if err != nil {
		c.log.Debug().Err(err).Str("uf", out.UF).Str("cidade", out.Cidade).Msg("cep gap fill failed")
		return
	}
	if len(candidates) == 0 {
		return
	}

	best := candidates[0]
	out.CEP = best.CEP
	if out.Bairro == "" {
		out.Bairro = best.Bairro
	}
	out.Confiabilidade = models.ConfiabilidadeHigh
}

// fillCoordinates geocodes the assembled address when no position is known yet.
func (c *Composer) fillCoordinates(ctx context.Context, out *models.AddressComponents) {
	if c.coords == nil || (out.Latitude != nil && out.Longitude != nil) {
		return
	}
	if out.Logradouro == "" && out.Cidade == "" {
		return
	}

	query := models.FormatFullAddress(models.AddressComponents{
		Logradouro: out.Logradouro,
		Numero:     out.Numero,
		Bairro:     out.Bairro,
		Cidade:     out.Cidade,
		UF:         out.UF,
	})
	results, err := c.coords.Lookup(ctx, query, models.SearchOptions{MaxResults: 1})
	if err != nil {
		c.log.Debug().Err(err).Str("source", c.coords.Name()).Msg("coordinate gap fill failed")
		return
	}
	for _, r := range results {
		if r.HasCoordinates() {
			lat, lon := *r.Latitude, *r.Longitude
			out.Latitude, out.Longitude = &lat, &lon
			return
		}
	}
}
