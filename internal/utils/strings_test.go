package utils

import "testing"

func TestSlugFromLink(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare slug", "Xj3kTq9wLmNpQr2s", "Xj3kTq9wLmNpQr2s"},
		{"bare slug with spaces", "  abc123  ", "abc123"},
		{"share link", "https://shhh.example.com/secret/abc123", "abc123"},
		{"share link trailing slash", "https://shhh.example.com/secret/abc123/", "abc123"},
		{"share link under a prefix", "https://example.com/shhh/secret/abc123", "abc123"},
		{"short share link", "https://shhh.example.com/r/abc123", "abc123"},
		{"short share link trailing slash", "https://shhh.example.com/r/abc123/", "abc123"},
		{"link with slug query", "https://shhh.example.com/api/r?slug=abc123&passphrase=x", "abc123"},
		{"unrelated path", "https://shhh.example.com/c/abc123", ""},
		{"secret page without slug", "https://shhh.example.com/secret/", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlugFromLink(tt.input); got != tt.want {
				t.Errorf("SlugFromLink(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeNewlines(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a\r\nb", "a\nb"},
		{"a\rb", "a\nb"},
		{"a\nb", "a\nb"},
		{"line1\r\nline2\rline3\n", "line1\nline2\nline3\n"},
	}

	for _, tt := range tests {
		if got := NormalizeNewlines(tt.input); got != tt.want {
			t.Errorf("NormalizeNewlines(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
