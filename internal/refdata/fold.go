package refdata

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold upper-cases s, trims it and strips combining marks, so "Monzón" and
// "MONZON" compare equal.
func Fold(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.TrimSpace(strings.ToUpper(s)),
	)

	return s
}

// ContainsFold reports whether substr appears in s, first verbatim (after
// upper-casing) and then with diacritics folded on both sides.
func ContainsFold(s, substr string) bool {
	upper := strings.ToUpper(strings.TrimSpace(s))
	token := strings.ToUpper(strings.TrimSpace(substr))
	if token == "" {
		return false
	}
	if strings.Contains(upper, token) {
		return true
	}
	return strings.Contains(Fold(upper), Fold(token))
}
