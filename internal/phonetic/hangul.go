package phonetic

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// compatChoseong maps the 19 conjoining initial jamo (U+1100..U+1112) to
// their compatibility forms, which is what a user types on a keyboard.
var compatChoseong = []rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

const (
	jamoInitialFirst = 0x1100
	jamoInitialLast  = 0x1112
	jamoMedialFirst  = 0x1160
	jamoFinalLast    = 0x11FF
)

// Choseong returns the initial-consonant signature of s. Every Hangul
// syllable is reduced to its leading consonant; characters outside Hangul
// are kept as they are, lower-cased. Whitespace is dropped.
//
//	Choseong("가수 나라") == "ㄱㅅㄴㄹ"
func Choseong(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		switch {
		case unicode.IsSpace(r):
		case r >= jamoInitialFirst && r <= jamoInitialLast:
			b.WriteRune(compatChoseong[r-jamoInitialFirst])
		case r >= jamoMedialFirst && r <= jamoFinalLast:
			// vowels and final consonants carry no initial
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	// NFD splits non-Hangul characters too; recompose them
	return norm.NFC.String(b.String())
}

// IsHangul reports whether r is a precomposed syllable or a compatibility jamo
func IsHangul(r rune) bool {
	return (r >= 0xAC00 && r <= 0xD7A3) || (r >= 0x3131 && r <= 0x318E)
}
