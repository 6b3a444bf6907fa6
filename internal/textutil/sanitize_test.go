package textutil

import (
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"movie.eng.(Full).srt", "movie.eng.(Full).srt"},
		{"Director's: Cut?", "Director's- Cut-"},
		{`a/b\c`, "a-b-c"},
		{`100% "real" <tag> | *`, `100- -real- -tag- - -`},
		{"tab\there", "tab-here"},
		{"nul\x00byte", "nul-byte"},
		{"del\x7f", "del-"},
		{"日本語.ja", "日本語.ja"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.expected {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeFileNameNeverEmitsForbiddenRunes(t *testing.T) {
	var all strings.Builder
	for r := rune(0); r < 0x80; r++ {
		all.WriteRune(r)
	}
	out := SanitizeFileName(all.String())
	for _, r := range out {
		if IsForbidden(r) {
			t.Fatalf("forbidden rune %q survived sanitizing", r)
		}
	}
	if again := SanitizeFileName(out); again != out {
		t.Fatalf("sanitizing is not idempotent: %q != %q", again, out)
	}
}
