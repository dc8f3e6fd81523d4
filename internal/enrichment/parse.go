package enrichment

import (
	"regexp"
	"strings"

	"github.com/Mit0lenda/obra-nav-sub000/internal/models"
)

var (
	cepInText      = regexp.MustCompile(`\b\d{5}-?\d{3}\b`)
	leadingNumber  = regexp.MustCompile(`^(\d+[A-Za-z]?)\s+(.+)$`)
	trailingRegion = regexp.MustCompile(`^(.*?)\s*[-/]\s*([A-Za-z]{2})$`)
	cepOnly        = regexp.MustCompile(`^[\d.\-\s]+$`)
)

var countryNames = map[string]struct{}{
	"brasil": {},
	"brazil": {},
}

// ParseFreeText splits a display string into address components by comma position:
// first segment is the street (with an optional leading number), then bairro, then cidade.
// A two-letter region code closing the text sets uf/estado, and a CEP anywhere sets cep.
func ParseFreeText(text string) models.AddressComponents {
	var c models.AddressComponents

	if loc := cepInText.FindStringIndex(text); loc != nil {
		c.CEP = models.FormatCEP(text[loc[0]:loc[1]])
		text = text[:loc[0]] + text[loc[1]:]
	}

	segments := splitSegments(text)

	if n := len(segments); n > 0 {
		if _, ok := countryNames[models.Fold(segments[n-1])]; ok {
			segments = segments[:n-1]
		}
	}

	if n := len(segments); n > 0 {
		last := segments[n-1]
		if len(last) == 2 && models.IsRegionCode(last) {
			c.UF = strings.ToUpper(last)
			segments = segments[:n-1]
		} else if m := trailingRegion.FindStringSubmatch(last); m != nil && models.IsRegionCode(m[2]) {
			c.UF = strings.ToUpper(m[2])
			segments[n-1] = strings.TrimSpace(m[1])
			if segments[n-1] == "" {
				segments = segments[:n-1]
			}
		}
	}
	if c.UF != "" {
		c.Estado = models.RegionName(c.UF)
	}

	if len(segments) > 0 {
		first := segments[0]
		if m := leadingNumber.FindStringSubmatch(first); m != nil {
			c.Numero = m[1]
			c.Logradouro = strings.TrimSpace(m[2])
		} else {
			c.Logradouro = first
		}
	}
	if len(segments) > 1 {
		c.Bairro = segments[1]
	}
	if len(segments) > 2 {
		c.Cidade = segments[2]
	}
	return c
}

func splitSegments(text string) []string {
	raw := strings.Split(text, ",")
	segments := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.Join(strings.Fields(s), " "); s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// looksLikeCEP reports whether text holds nothing but a postal code.
func looksLikeCEP(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !cepOnly.MatchString(text) {
		return "", false
	}
	return models.NormalizeCEP(text)
}
