package models

import "strings"

// FormatFullAddress renders the single-line form of c:
// "logradouro, numero, complemento, bairro, cidade, uf, cep" with empty parts skipped.
// The number is only printed next to a street.
func FormatFullAddress(c AddressComponents) string {
	street := strings.TrimSpace(c.Logradouro)
	if n := strings.TrimSpace(c.Numero); street != "" && n != "" {
		street += ", " + n
	}

	parts := []string{street, c.Complemento, c.Bairro, c.Cidade, c.UF, c.CEP}
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
