package text

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	Ellipsis = "…"
)

// Normalize text to aid in the filtering process. In particular, we remove
// diacritics, "ö" becomes "o". Note that Mn is the unicode key for nonspacing
// marks.
func Normalize(in string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, in)
	return out, err
}

// MatchesFilter reports whether needle fuzzy matches haystack once both have
// been folded and lowercased. An empty needle matches everything.
func MatchesFilter(haystack, needle string) bool {
	if strings.TrimSpace(needle) == "" {
		return true
	}
	hay, err := Normalize(strings.ToLower(haystack))
	if err != nil {
		hay = strings.ToLower(haystack)
	}
	n, err := Normalize(strings.ToLower(needle))
	if err != nil {
		n = strings.ToLower(needle)
	}
	return len(fuzzy.Find(n, []string{hay})) > 0
}

// StyleFilteredText renders haystack with defaultStyle, underlining the runes
// matched by needles.
func StyleFilteredText(haystack, needles string, defaultStyle termenv.Style) string {
	b := strings.Builder{}

	normalizedHay, _ := Normalize(strings.ToLower(haystack))
	normalizedNeedles, _ := Normalize(strings.ToLower(needles))

	matches := fuzzy.Find(normalizedNeedles, []string{normalizedHay})
	if len(matches) == 0 {
		return defaultStyle.Styled(haystack)
	}

	m := matches[0] // only one match exists
	matched := make(map[int]struct{}, len(m.MatchedIndexes))
	for _, mi := range m.MatchedIndexes {
		matched[mi] = struct{}{}
	}

	// MatchedIndexes are byte offsets into the normalized string, walk it in
	// step with the original so multi-byte runes stay aligned
	hayRunes := []rune(haystack)
	i := 0
	for offset := range normalizedHay {
		if i >= len(hayRunes) {
			break
		}
		if _, ok := matched[offset]; ok {
			b.WriteString(defaultStyle.Underline().Styled(string(hayRunes[i])))
		} else {
			b.WriteString(defaultStyle.Styled(string(hayRunes[i])))
		}
		i++
	}
	for ; i < len(hayRunes); i++ {
		b.WriteString(defaultStyle.Styled(string(hayRunes[i])))
	}

	return b.String()
}

func TruncateWithTail(txt string, width uint, ellipsis string) string {
	return truncate.StringWithTail(txt, width, ellipsis)
}

// PadRight pads s with spaces to the given display width, accounting for wide
// runes. Strings already wider than width are returned unchanged.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
