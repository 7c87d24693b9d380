package phonetic

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

const (
	katakanaFirst = 0x30A1
	katakanaLast  = 0x30F6
	kanaOffset    = 0x60
)

// Normalize lower-cases s and strips all whitespace. It is the common form
// every searchable field and every query is compared in.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// KatakanaToHiragana folds width variants and rewrites katakana as hiragana.
// Kanji, Latin and the long-vowel mark pass through.
func KatakanaToHiragana(s string) string {
	if s == "" {
		return ""
	}
	s = width.Fold.String(s)
	runes := []rune(s)
	for i, r := range runes {
		if r >= katakanaFirst && r <= katakanaLast {
			runes[i] = r - kanaOffset
		}
	}
	return string(runes)
}

// ToHiragana converts a query to a single kana form: katakana become
// hiragana and runs of Latin letters are read as romaji.
//
//	ToHiragana("sekai") == "せかい"
//	ToHiragana("セカイ") == "せかい"
func ToHiragana(s string) string {
	s = KatakanaToHiragana(s)
	if !hasLatin(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) * 2)
	run := make([]rune, 0, len(s))
	flush := func() {
		if len(run) > 0 {
			b.WriteString(romajiToHiragana(string(run)))
			run = run[:0]
		}
	}
	for _, r := range s {
		if isLatinLetter(r) || (r == '-' && len(run) > 0) {
			run = append(run, unicode.ToLower(r))
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return b.String()
}

// IsKana reports whether r is hiragana or katakana
func IsKana(r rune) bool {
	return unicode.In(r, unicode.Hiragana, unicode.Katakana) || r == 'ー'
}

// HasHan reports whether s contains any kanji
func HasHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

func isLatinLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func hasLatin(s string) bool {
	for _, r := range s {
		if isLatinLetter(r) {
			return true
		}
	}
	return false
}
