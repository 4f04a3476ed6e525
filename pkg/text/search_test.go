package text

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestMatchesFilter(t *testing.T) {
	testcases := []struct {
		haystack, needle string
		matches          bool
	}{
		{"contrato.pdf", "", true},
		{"contrato.pdf", "contr", true},
		{"Petição Inicial.docx", "peticao", true},
		{"Petição Inicial.docx", "PETI", true},
		{"contrato.pdf", "xyz", false},
		{"procuração.pdf", "prcrc", true},
	}

	for _, tc := range testcases {
		if actual := MatchesFilter(tc.haystack, tc.needle); actual != tc.matches {
			t.Errorf("MatchesFilter(%q, %q) = %v, expected %v", tc.haystack, tc.needle, actual, tc.matches)
		}
	}
}

func TestStyleFilteredTextKeepsText(t *testing.T) {
	out := StyleFilteredText("Petição.pdf", "pet", termenv.Style{})
	for _, r := range []string{"P", "ç", ".pdf"} {
		if !strings.Contains(out, r) {
			t.Fatalf("expected output to retain %q, got %q", r, out)
		}
	}
	if out == "Petição.pdf" {
		t.Fatalf("expected matched runes to be styled, got %q", out)
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("expected %q, got %q", "ab  ", got)
	}
	if got := PadRight("abcdef", 4); got != "abcdef" {
		t.Errorf("expected long strings untouched, got %q", got)
	}
}

func TestNameColorStable(t *testing.T) {
	if NameColor("familia_silva") != NameColor("familia_silva") {
		t.Fatal("expected the same name to always get the same colour")
	}
	if !strings.HasPrefix(NameColor("x"), "#") {
		t.Fatalf("expected a hex colour, got %q", NameColor("x"))
	}
}
