package models

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s, strips diacritics and collapses whitespace so that
// "Avenida  São João" and "avenida sao joao" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// DigitsOnly strips every non-digit character.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeCEP returns the 8 raw digits of a postal code, or false when it is malformed.
func NormalizeCEP(code string) (string, bool) {
	digits := DigitsOnly(code)
	if len(digits) != 8 {
		return "", false
	}
	return digits, true
}

// FormatCEP renders a postal code as 00000-000. Malformed input yields "".
func FormatCEP(code string) string {
	digits, ok := NormalizeCEP(code)
	if !ok {
		return ""
	}
	return digits[:5] + "-" + digits[5:]
}
