package search

import (
	"time"

	"github.com/davidpaquet/sekai-chart-browser/internal/locale"
	"github.com/davidpaquet/sekai-chart-browser/internal/model"
	"github.com/davidpaquet/sekai-chart-browser/internal/phonetic"
)

type MatchMode int

const (
	MatchNone MatchMode = iota
	MatchPrimary
	MatchChoseong
)

// Request is one recomputation: the filter state plus the context it is
// evaluated in.
type Request struct {
	State  State
	Locale locale.Locale
	// Today is the current calendar day as returned by model.Day
	Today time.Time
	// Settled reports whether the long query debounce has converged on
	// State.Query; the initial-consonant fallback waits for it.
	Settled bool
}

// Result is the published view of a recomputation
type Result struct {
	Songs  []model.Song
	Counts Counts
	Mode   MatchMode
	// Signature is the query's initial-consonant signature when Mode is MatchChoseong
	Signature string
}

type Engine interface {
	Search(req Request) Result
	UpdateSongs(songs []model.Song)
	Songs() []model.Song
}

type engine struct {
	songs   []model.Song
	matcher Matcher
}

func NewEngine(songs []model.Song) Engine {
	return &engine{
		songs:   songs,
		matcher: NewMatcher(),
	}
}

func (e *engine) Search(req Request) Result {
	st := &req.State
	q := PrepareQuery(st.Query)

	mode := MatchNone
	candidates := e.songs
	signature := ""
	if !q.Empty() {
		mode = MatchPrimary
		candidates = e.matchPrimary(q)
		if ChoseongEligible(st.ChoseongSearch, req.Locale, q, len(candidates), req.Settled) {
			signature = phonetic.Choseong(q.Raw)
			candidates = e.matchChoseong(signature)
			mode = MatchChoseong
		}
	}

	filtered := NewFilterEngine(locale.For(req.Locale)).Filter(candidates, st)
	assembled := Assemble(filtered, st.Sort, st.Level.AppendMode(), st.HideUpcoming, req.Today)
	return Result{
		Songs:     assembled.Songs,
		Counts:    assembled.Counts,
		Mode:      mode,
		Signature: signature,
	}
}

func (e *engine) matchPrimary(q Query) []model.Song {
	out := make([]model.Song, 0)
	for i := range e.songs {
		if e.matcher.Match(&e.songs[i], q) {
			out = append(out, e.songs[i])
		}
	}
	return out
}

func (e *engine) matchChoseong(signature string) []model.Song {
	out := make([]model.Song, 0)
	for i := range e.songs {
		if MatchSignature(&e.songs[i], signature) {
			out = append(out, e.songs[i])
		}
	}
	return out
}

func (e *engine) UpdateSongs(songs []model.Song) {
	e.songs = songs
}

func (e *engine) Songs() []model.Song {
	return e.songs
}
