// Package phonetic derives the cross-script search keys of a song: the
// initial-consonant signature of the Korean title, normalized forms of
// every text field, and single-kana forms of the Japanese fields.
package phonetic

import (
	"github.com/davidpaquet/sekai-chart-browser/internal/model"
)

// Indexer computes song annotations. It is safe to reuse across catalogs.
type Indexer struct {
	reader Reader
}

// Option configures an Indexer
type Option func(*Indexer)

// WithReader adds kanji reading keys produced by r
func WithReader(r Reader) Option {
	return func(ix *Indexer) {
		ix.reader = r
	}
}

// NewIndexer creates an indexer
func NewIndexer(opts ...Option) *Indexer {
	ix := &Indexer{}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Index derives the annotation of one song. It never fails: absent source
// fields yield empty keys.
func (ix *Indexer) Index(s *model.Song) model.Annotation {
	a := model.Annotation{
		Choseong:      Choseong(s.TitleKO),
		TitleKO:       Normalize(s.TitleKO),
		TitleJP:       Normalize(s.TitleJP),
		ComposerKO:    Normalize(s.ComposerKO),
		ComposerJP:    Normalize(s.ComposerJP),
		Pronunciation: Normalize(s.Pronunciation),
	}
	a.TitleKana = KatakanaToHiragana(a.TitleJP)
	a.ComposerKana = KatakanaToHiragana(a.ComposerJP)
	a.PronunciationKana = ToHiragana(a.Pronunciation)

	if ix.reader != nil {
		if HasHan(s.TitleJP) {
			a.TitleReading = KatakanaToHiragana(Normalize(ix.reader.Reading(s.TitleJP)))
		}
		if HasHan(s.ComposerJP) {
			a.ComposerReading = KatakanaToHiragana(Normalize(ix.reader.Reading(s.ComposerJP)))
		}
	}
	return a
}

// Annotate returns a copy of songs with annotations attached. The input
// slice is left untouched so a catalog already published stays valid.
func (ix *Indexer) Annotate(songs []model.Song) []model.Song {
	out := make([]model.Song, len(songs))
	for i := range songs {
		out[i] = songs[i].WithAnnotation(ix.Index(&songs[i]))
	}
	return out
}
