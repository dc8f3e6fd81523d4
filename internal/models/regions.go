package models

import "strings"

// Brazilian federative units: 26 states and the federal district.
var regions = map[string]string{
	"AC": "Acre",
	"AL": "Alagoas",
	"AP": "Amapá",
	"AM": "Amazonas",
	"BA": "Bahia",
	"CE": "Ceará",
	"DF": "Distrito Federal",
	"ES": "Espírito Santo",
	"GO": "Goiás",
	"MA": "Maranhão",
	"MT": "Mato Grosso",
	"MS": "Mato Grosso do Sul",
	"MG": "Minas Gerais",
	"PA": "Pará",
	"PB": "Paraíba",
	"PR": "Paraná",
	"PE": "Pernambuco",
	"PI": "Piauí",
	"RJ": "Rio de Janeiro",
	"RN": "Rio Grande do Norte",
	"RS": "Rio Grande do Sul",
	"RO": "Rondônia",
	"RR": "Roraima",
	"SC": "Santa Catarina",
	"SP": "São Paulo",
	"SE": "Sergipe",
	"TO": "Tocantins",
}

var regionsByName = func() map[string]string {
	m := make(map[string]string, len(regions))
	for uf, name := range regions {
		m[Fold(name)] = uf
	}
	return m
}()

// IsRegionCode reports whether code is a known two-letter UF (case-insensitive).
func IsRegionCode(code string) bool {
	_, ok := regions[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// RegionName resolves a UF to its full name. Unknown codes pass through unchanged.
func RegionName(uf string) string {
	if name, ok := regions[strings.ToUpper(strings.TrimSpace(uf))]; ok {
		return name
	}
	return uf
}

// RegionCodeByName finds the UF for a state name, ignoring case and accents.
func RegionCodeByName(name string) (string, bool) {
	uf, ok := regionsByName[Fold(name)]
	return uf, ok
}

// RegionCodeFromISO extracts the UF from an ISO 3166-2 subdivision such as "BR-SP".
func RegionCodeFromISO(iso string) (string, bool) {
	code, found := strings.CutPrefix(strings.ToUpper(strings.TrimSpace(iso)), "BR-")
	if !found || !IsRegionCode(code) {
		return "", false
	}
	return code, true
}
