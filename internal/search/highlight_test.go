package search

import (
	"testing"
)

func TestHighlight(t *testing.T) {
	mark := func(s string) string { return "[" + s + "]" }

	tests := []struct {
		name  string
		text  string
		query string
		want  string
	}{
		{"initials", "Tell Your World", "tyw", "[T]ell [Y]our [W]orld"},
		{"hangul", "세카이", "카", "세[카]이"},
		{"no match", "メルト", "xyz", "メルト"},
		{"empty query", "メルト", "", "メルト"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Highlight(tt.text, tt.query, mark); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
