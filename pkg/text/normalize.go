package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName turns an arbitrary theme name into the identifier used as its
// folder name and uniqueness key: diacritics are folded away, the result is
// lowercased, whitespace runs become a single "_" and anything outside
// [a-z0-9_] is dropped. "Família Silva" and "familia   silva" both yield
// "familia_silva".
//
// The result may be empty; callers must reject that before touching disk.
func NormalizeName(in string) string {
	folded, _, err := transform.String(nameFolder(), strings.TrimSpace(in))
	if err != nil {
		// transform only fails on invalid transformer state, fall back to
		// the raw input and let the filter below discard what it can't keep
		folded = strings.TrimSpace(in)
	}

	b := strings.Builder{}
	b.Grow(len(folded))
	inSpace := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('_')
				inSpace = true
			}
			continue
		}
		inSpace = false
		if isIdentRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsNormalizedName reports whether name is a non-empty fixed point of
// NormalizeName.
func IsNormalizedName(name string) bool {
	return name != "" && NormalizeName(name) == name
}

// nameFolder returns a fresh chain; transform.Chain keeps state and is not
// safe to share.
func nameFolder() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
}

func isIdentRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_'
}
