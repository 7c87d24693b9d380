package model

import (
	"time"
)

// Tier is a difficulty category
type Tier string

const (
	Easy   Tier = "easy"
	Normal Tier = "normal"
	Hard   Tier = "hard"
	Expert Tier = "expert"
	Master Tier = "master"
	Append Tier = "append"
)

// Tiers lists every difficulty in display order
var Tiers = []Tier{Easy, Normal, Hard, Expert, Master, Append}

// NoteTiers lists the difficulties the catalog publishes note counts for
var NoteTiers = []Tier{Expert, Master, Append}

// ShortName returns the label used on level selectors
func (t Tier) ShortName() string {
	switch t {
	case Easy:
		return "EZ"
	case Normal:
		return "NM"
	case Hard:
		return "HD"
	case Expert:
		return "EX"
	case Master:
		return "MAS"
	case Append:
		return "APD"
	default:
		return string(t)
	}
}

// Song is one catalog entry. Optional quantities are nil when the catalog
// does not supply them or supplies something unparseable.
type Song struct {
	ID       string
	Position int

	TitleKO    string
	TitleJP    string
	ComposerKO string
	ComposerJP string

	UnitCode       string
	Classification string
	MVType         string

	Levels map[Tier]int
	Notes  map[Tier]int

	BPM               *float64
	BPMText           string
	LengthSeconds     *int
	LengthText        string
	ReleaseDate       *time.Time
	AppendReleaseDate *time.Time
	MVMembers         *int

	Pronunciation string
	AssetVersion  string

	// Annotation is attached by the phonetic indexer; nil until then
	Annotation *Annotation
}

// Annotation holds the derived search keys of a song. Every field is a pure
// function of the song's own fields.
type Annotation struct {
	Choseong string

	TitleKO    string
	TitleJP    string
	ComposerKO string
	ComposerJP string

	TitleKana    string
	ComposerKana string

	TitleReading    string
	ComposerReading string

	Pronunciation     string
	PronunciationKana string
}

// Level returns the song's level for a tier
func (s *Song) Level(t Tier) (int, bool) {
	lv, ok := s.Levels[t]
	return lv, ok
}

// HasAppend reports whether the song has an append chart
func (s *Song) HasAppend() bool {
	_, ok := s.Levels[Append]
	return ok
}

// NoteCount returns the note count of a tier when the catalog supplies it
func (s *Song) NoteCount(t Tier) (int, bool) {
	n, ok := s.Notes[t]
	return n, ok
}

// RecencyDate is the sort key used while an append filter is active: the
// append release date wins over the general release date. Undated songs
// return the zero time so they sort last in descending order.
func (s *Song) RecencyDate() time.Time {
	if s.AppendReleaseDate != nil {
		return *s.AppendReleaseDate
	}
	if s.ReleaseDate != nil {
		return *s.ReleaseDate
	}
	return time.Time{}
}

// Title returns the title shown for a locale, falling back to the other script
func (s *Song) Title(japanese bool) string {
	if japanese {
		if s.TitleJP != "" {
			return s.TitleJP
		}
		return s.TitleKO
	}
	if s.TitleKO != "" {
		return s.TitleKO
	}
	return s.TitleJP
}

// Subtitle returns the title in the script not chosen by Title
func (s *Song) Subtitle(japanese bool) string {
	if japanese {
		return s.TitleKO
	}
	return s.TitleJP
}

// Composer returns the composer name for a locale
func (s *Song) Composer(japanese bool) string {
	if japanese && s.ComposerJP != "" {
		return s.ComposerJP
	}
	if s.ComposerKO != "" {
		return s.ComposerKO
	}
	return s.ComposerJP
}

// WithAnnotation returns a copy of the song carrying the given annotation.
// Maps are shared; songs are never mutated after ingestion.
func (s Song) WithAnnotation(a Annotation) Song {
	s.Annotation = &a
	return s
}
