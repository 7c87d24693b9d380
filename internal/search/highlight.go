package search

import (
	"strings"

	"github.com/davidpaquet/sekai-chart-browser/internal/phonetic"
	"github.com/sahilm/fuzzy"
)

// MatchedIndexes returns the byte offsets of the characters of text that
// the query picks out, for display only. Matching decisions never depend
// on it.
func MatchedIndexes(text, query string) []int {
	pattern := phonetic.Normalize(query)
	if pattern == "" || text == "" {
		return nil
	}
	matches := fuzzy.Find(pattern, []string{text})
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}

// HighlightText applies highlighting to the characters starting at the
// given byte offsets
func HighlightText(text string, indices []int, highlightStyle func(string) string) string {
	if len(indices) == 0 {
		return text
	}

	indexMap := make(map[int]bool, len(indices))
	for _, idx := range indices {
		indexMap[idx] = true
	}

	var result strings.Builder
	for i, r := range text {
		if indexMap[i] {
			result.WriteString(highlightStyle(string(r)))
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// Highlight marks the characters of text matched by query
func Highlight(text, query string, highlightStyle func(string) string) string {
	return HighlightText(text, MatchedIndexes(text, query), highlightStyle)
}
