package search

import (
	"slices"
	"strconv"
	"time"

	"github.com/davidpaquet/sekai-chart-browser/internal/locale"
	"github.com/davidpaquet/sekai-chart-browser/internal/model"
)

// MVMembersOrMore is the member-count bucket that also covers every larger count
const MVMembersOrMore = 6

type FilterEngine interface {
	// Filter narrows songs to those passing every facet of st. Order is kept.
	Filter(songs []model.Song, st *State) []model.Song
	// Passes evaluates the facets for a single song
	Passes(s *model.Song, st *State) bool
}

type filterEngine struct {
	table locale.Table
}

// NewFilterEngine returns a facet filter that compares categorical values
// in the given locale's display form.
func NewFilterEngine(table locale.Table) FilterEngine {
	return &filterEngine{table: table}
}

func (f *filterEngine) Filter(songs []model.Song, st *State) []model.Song {
	out := make([]model.Song, 0, len(songs))
	for i := range songs {
		if f.Passes(&songs[i], st) {
			out = append(out, songs[i])
		}
	}
	return out
}

func (f *filterEngine) Passes(s *model.Song, st *State) bool {
	if !passesLevel(s, st.Level) {
		return false
	}
	if sel := st.Selections[CategoryClassification]; sel.Active() && !f.translatedIn(sel, s.Classification, f.table.Class) {
		return false
	}
	if sel := st.Selections[CategoryUnit]; sel.Active() && !f.translatedIn(sel, s.UnitCode, f.table.Unit) {
		return false
	}
	if sel := st.Selections[CategoryMVType]; sel.Active() && !passesMVType(s.MVType, sel) {
		return false
	}
	if sel := st.Selections[CategoryMVMembers]; sel.Active() && !passesMembers(s.MVMembers, sel) {
		return false
	}
	for _, facet := range model.NumericFacets {
		v, ok := s.Numeric(facet)
		if ok && !st.Ranges.Get(facet).Contains(v) {
			return false
		}
	}
	return true
}

// translatedIn compares the display form of value with the display forms of
// the selected codes, so codes sharing a display name select each other.
func (f *filterEngine) translatedIn(sel Selection, value string, translate func(string) string) bool {
	shown := translate(value)
	for _, v := range sel.Values {
		if translate(v) == shown {
			return true
		}
	}
	return false
}

func passesLevel(s *model.Song, lf LevelFilter) bool {
	if !lf.Active() {
		return true
	}
	if lf.Any {
		return s.HasAppend()
	}
	lv, ok := s.Level(lf.Tier)
	return ok && lv == lf.Level
}

// passesMVType requires every slash-separated token of some selected value
// to be present in the song's tag.
func passesMVType(tag string, sel Selection) bool {
	have := locale.MVTokens(tag)
	if len(have) == 0 {
		return false
	}
	for _, v := range sel.Values {
		want := locale.MVTokens(v)
		if len(want) == 0 {
			continue
		}
		all := true
		for _, tok := range want {
			if !slices.Contains(have, tok) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// passesMembers fails songs with an unknown member count. The 6 bucket is
// checked first and means six or more.
func passesMembers(members *int, sel Selection) bool {
	if members == nil {
		return false
	}
	n := *members
	if n >= MVMembersOrMore && sel.Has(strconv.Itoa(MVMembersOrMore)) {
		return true
	}
	for _, v := range sel.Values {
		want, err := strconv.Atoi(v)
		if err == nil && want == n {
			return true
		}
	}
	return false
}

// Upcoming reports whether the song is released strictly after today.
// Undated songs are never upcoming.
func Upcoming(s *model.Song, today time.Time) bool {
	return s.ReleaseDate != nil && s.ReleaseDate.After(today)
}

// HideUpcoming drops songs released after today, keeping order
func HideUpcoming(songs []model.Song, today time.Time) []model.Song {
	out := make([]model.Song, 0, len(songs))
	for i := range songs {
		if !Upcoming(&songs[i], today) {
			out = append(out, songs[i])
		}
	}
	return out
}
