// Package slug derives identifier-safe names from human labels. Identifiers
// produced here are the contract key between resolved fields and renderers
// (element ids and input names), so the transformation must stay stable.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make lowercases label, folds accented letters to their ASCII base, and joins
// the remaining word runs with dashes: "Prénom de l'élève" -> "prenom-de-l-eleve".
func Make(label string) string {
	folded, _, err := transform.String(foldChain(), label)
	if err != nil {
		folded = label
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if isWordRune(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

func foldChain() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_'
}
