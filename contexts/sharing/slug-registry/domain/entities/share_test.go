package entities

import (
	"strings"
	"testing"
)

func TestSlugAlphabetExcludesAmbiguousGlyphs(t *testing.T) {
	for _, excluded := range "0O1Il" {
		if strings.ContainsRune(SlugAlphabet, excluded) {
			t.Fatalf("alphabet contains ambiguous glyph %q", excluded)
		}
	}
	seen := make(map[rune]bool, len(SlugAlphabet))
	for _, r := range SlugAlphabet {
		if seen[r] {
			t.Fatalf("alphabet repeats %q", r)
		}
		seen[r] = true
	}
}

func TestIsGeneratedSlug(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{value: "abcDEF2", want: true},
		{value: "abcDEF", want: false},
		{value: "abcDEF22", want: false},
		{value: "abcDEF0", want: false},
		{value: "abcDEFl", want: false},
		{value: "abc-EF2", want: false},
	}
	for _, tc := range cases {
		if got := IsGeneratedSlug(tc.value); got != tc.want {
			t.Fatalf("IsGeneratedSlug(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
