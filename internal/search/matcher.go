package search

import (
	"strings"
	"unicode/utf8"

	"github.com/davidpaquet/sekai-chart-browser/internal/locale"
	"github.com/davidpaquet/sekai-chart-browser/internal/model"
	"github.com/davidpaquet/sekai-chart-browser/internal/phonetic"
)

// MinChoseongQuery is the shortest query the initial-consonant fallback
// accepts, counted in characters.
const MinChoseongQuery = 2

// Query is a search string prepared once per recomputation
type Query struct {
	Raw  string
	Norm string
	Kana string
}

// PrepareQuery normalizes q into the forms the matcher compares against
func PrepareQuery(q string) Query {
	norm := phonetic.Normalize(q)
	return Query{
		Raw:  q,
		Norm: norm,
		Kana: phonetic.ToHiragana(norm),
	}
}

// Empty reports whether the query matches everything
func (q Query) Empty() bool {
	return q.Norm == ""
}

// Matcher decides whether a song matches a text query
type Matcher interface {
	Match(s *model.Song, q Query) bool
}

type matcher struct{}

// NewMatcher returns the primary text matcher
func NewMatcher() Matcher {
	return matcher{}
}

// keys returns the annotation of s, deriving the directly stored forms when
// the indexer has not run yet. Reading keys need the morphological
// analyzer and stay empty in that case.
func keys(s *model.Song) model.Annotation {
	if s.Annotation != nil {
		return *s.Annotation
	}
	a := model.Annotation{
		TitleKO:       phonetic.Normalize(s.TitleKO),
		TitleJP:       phonetic.Normalize(s.TitleJP),
		ComposerKO:    phonetic.Normalize(s.ComposerKO),
		ComposerJP:    phonetic.Normalize(s.ComposerJP),
		Pronunciation: phonetic.Normalize(s.Pronunciation),
	}
	a.TitleKana = phonetic.KatakanaToHiragana(a.TitleJP)
	a.ComposerKana = phonetic.KatakanaToHiragana(a.ComposerJP)
	return a
}

// Match applies the primary rules: plain substring, kana-form substring,
// then the catalog-supplied pronunciation.
func (matcher) Match(s *model.Song, q Query) bool {
	if q.Empty() {
		return true
	}
	a := keys(s)
	if matchSubstring(&a, q.Norm) {
		return true
	}
	if q.Kana != "" && containsAny(q.Kana, a.TitleKana, a.ComposerKana, a.TitleReading, a.ComposerReading) {
		return true
	}
	if a.Pronunciation == "" {
		return false
	}
	if strings.Contains(a.Pronunciation, q.Norm) {
		return true
	}
	pronKana := a.PronunciationKana
	if pronKana == "" {
		pronKana = phonetic.ToHiragana(a.Pronunciation)
	}
	return q.Kana != "" && strings.Contains(pronKana, q.Kana)
}

// MatchSubstring is the plain substring rule alone: the normalized query
// against both titles and both composer names.
func MatchSubstring(s *model.Song, norm string) bool {
	if norm == "" {
		return true
	}
	a := keys(s)
	return matchSubstring(&a, norm)
}

func matchSubstring(a *model.Annotation, norm string) bool {
	return containsAny(norm, a.TitleKO, a.TitleJP, a.ComposerKO, a.ComposerJP)
}

func containsAny(needle string, fields ...string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(f, needle) {
			return true
		}
	}
	return false
}

// ChoseongEligible reports whether the initial-consonant fallback may run
// for q. primaryHits is the number of primary matches over the catalog and
// settled reports whether the long debounce has converged on q.
func ChoseongEligible(enabled bool, loc locale.Locale, q Query, primaryHits int, settled bool) bool {
	return enabled &&
		loc.SupportsChoseong() &&
		utf8.RuneCountInString(q.Norm) >= MinChoseongQuery &&
		primaryHits == 0 &&
		settled
}

// MatchSignature tests whether the initial-consonant signature of the query
// occurs anywhere in the song's signature. "가나" (ㄱㄴ) finds "강남 스타일"
// (ㄱㄴㅅㅌㅇ) as well as "그날".
func MatchSignature(s *model.Song, signature string) bool {
	if signature == "" {
		return false
	}
	songSig := ""
	if s.Annotation != nil {
		songSig = s.Annotation.Choseong
	} else {
		songSig = phonetic.Choseong(s.TitleKO)
	}
	return strings.Contains(songSig, signature)
}
