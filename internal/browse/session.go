// Package browse owns the browser's mutable state: the catalog, its global
// ranges, the filter state, the debounce channels and the published result.
// Every method runs on the event loop; nothing here is safe for concurrent
// use and nothing needs to be.
package browse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/davidpaquet/sekai-chart-browser/internal/catalog"
	"github.com/davidpaquet/sekai-chart-browser/internal/debounce"
	"github.com/davidpaquet/sekai-chart-browser/internal/locale"
	"github.com/davidpaquet/sekai-chart-browser/internal/logging"
	"github.com/davidpaquet/sekai-chart-browser/internal/model"
	"github.com/davidpaquet/sekai-chart-browser/internal/search"
)

// Delays are the settle times of the input channels
type Delays struct {
	Query    time.Duration
	Choseong time.Duration
	Range    time.Duration
}

// DefaultDelays match the interactive defaults of the config
var DefaultDelays = Delays{
	Query:    100 * time.Millisecond,
	Choseong: 400 * time.Millisecond,
	Range:    200 * time.Millisecond,
}

// Session is the single owner of browse state
type Session struct {
	songs      []model.Song
	global     model.Ranges
	generation uint64
	annotated  bool

	state search.State
	stash *search.State

	query  *debounce.Query
	ranges *debounce.Channel[model.Ranges]

	engine search.Engine
	loc    locale.Locale
	clock  func() time.Time
	zone   *time.Location

	result search.Result
}

// Option configures a Session
type Option func(*Session)

// WithClock replaces time.Now
func WithClock(clock func() time.Time) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

// WithZone sets the time zone that decides what "today" is
func WithZone(loc *time.Location) Option {
	return func(s *Session) {
		s.zone = loc
	}
}

// WithDelays sets the debounce settle times
func WithDelays(d Delays) Option {
	return func(s *Session) {
		s.query = debounce.NewQuery(d.Query, d.Choseong)
		s.ranges = debounce.NewChannel(debounce.RangeChannel, d.Range, model.Ranges{})
	}
}

// WithLocale sets the initial display locale
func WithLocale(loc locale.Locale) Option {
	return func(s *Session) {
		s.loc = loc
	}
}

// New creates an empty session. Until a catalog is loaded every result is
// empty.
func New(opts ...Option) *Session {
	s := &Session{
		engine: search.NewEngine(nil),
		loc:    locale.Korean,
		clock:  time.Now,
		zone:   time.Local,
	}
	WithDelays(DefaultDelays)(s)
	for _, opt := range opts {
		opt(s)
	}
	s.state = search.NewState(s.global)
	s.ranges.Reset(s.state.Ranges)
	return s
}

// Today is the current calendar day as midnight UTC
func (s *Session) Today() time.Time {
	return model.Day(s.clock(), s.zone)
}

// LoadCatalog replaces the catalog atomically and returns its generation.
// Numeric filters still at the old global range follow the new one.
func (s *Session) LoadCatalog(songs []model.Song) uint64 {
	old := s.global
	s.generation++
	s.songs = songs
	s.annotated = false
	s.global = catalog.GlobalRanges(songs, s.Today())

	s.state = s.state.Rebase(old, s.global)
	if s.stash != nil {
		rebased := s.stash.Rebase(old, s.global)
		s.stash = &rebased
	}
	s.ranges.Reset(s.state.Ranges)
	s.engine.UpdateSongs(songs)

	logging.Info().
		Uint64("generation", s.generation).
		Int("songs", len(songs)).
		Msg("Catalog loaded")
	s.Recompute()
	return s.generation
}

// ApplyAnnotations installs annotated songs produced for generation gen.
// Results computed for an older catalog are dropped.
func (s *Session) ApplyAnnotations(gen uint64, songs []model.Song) bool {
	if gen != s.generation || len(songs) != len(s.songs) {
		logging.Debug().
			Uint64("generation", gen).
			Uint64("current", s.generation).
			Msg("Dropping stale annotations")
		return false
	}
	s.songs = songs
	s.annotated = true
	s.engine.UpdateSongs(songs)
	s.Recompute()
	return true
}

// SetQuery feeds a keystroke into both query timers. The filter state
// changes only when a timer fires.
func (s *Session) SetQuery(text string) tea.Cmd {
	return s.query.Input(text, s.clock())
}

// SetRange feeds a slider movement into the range timer. Successive moves
// of different facets accumulate in the pending value.
func (s *Session) SetRange(f model.NumericFacet, r model.Range) tea.Cmd {
	base := s.state.Ranges
	if pending, ok := s.ranges.PendingValue(); ok {
		base = pending
	}
	return s.ranges.Push(base.With(f, r.Clamp(s.global.Get(f))), s.clock())
}

// PendingRanges returns the ranges the user is dragging, or the applied
// ranges when nothing is pending
func (s *Session) PendingRanges() model.Ranges {
	if pending, ok := s.ranges.PendingValue(); ok {
		return pending
	}
	return s.state.Ranges
}

// HandleFired applies a debounce timer. It reports whether the result was
// recomputed; stale timers report false.
func (s *Session) HandleFired(msg debounce.FiredMsg) bool {
	switch msg.Channel {
	case debounce.QueryChannel, debounce.ChoseongChannel:
		if !s.query.Fire(msg) {
			return false
		}
		s.state = s.state.WithQuery(s.query.Text())
	case debounce.RangeChannel:
		if !s.ranges.Fire(msg.Seq) {
			return false
		}
		s.state.Ranges = s.ranges.Value()
	default:
		return false
	}
	s.Recompute()
	return true
}

// Flush applies every pending timer at once
func (s *Session) Flush() {
	changed := false
	if s.query.Primary.Flush() {
		changed = true
	}
	if s.query.Fallback.Flush() {
		changed = true
	}
	if s.ranges.Flush() {
		s.state.Ranges = s.ranges.Value()
		changed = true
	}
	if changed {
		s.state = s.state.WithQuery(s.query.Text())
		s.Recompute()
	}
}

// Update applies an immediate change to the filter state, such as a facet
// toggle or a sort selection
func (s *Session) Update(fn func(search.State) search.State) {
	prev := s.state
	s.state = fn(s.state)
	if s.state.Query != prev.Query {
		s.query.Reset(s.state.Query)
	}
	if s.state.Ranges != prev.Ranges {
		s.ranges.Reset(s.state.Ranges)
	}
	s.Recompute()
}

// Reset clears every restriction and drops pending input
func (s *Session) Reset() {
	s.replace(s.state.Reset(s.global))
}

// replace installs st wholesale; timers still pending would otherwise
// reapply input typed before the switch
func (s *Session) replace(st search.State) {
	s.query.Reset(st.Query)
	s.ranges.Reset(st.Ranges)
	s.state = st
	s.Recompute()
}

// Stash saves the current filter state for a later Restore
func (s *Session) Stash() {
	st := s.state
	s.stash = &st
}

// Restore brings back the stashed filter state. It reports false when
// nothing was stashed.
func (s *Session) Restore() bool {
	if s.stash == nil {
		return false
	}
	st := *s.stash
	s.stash = nil
	s.replace(st)
	return true
}

// HasStash reports whether a stashed state is waiting
func (s *Session) HasStash() bool {
	return s.stash != nil
}

// SetLocale switches the display locale. Categorical matching compares
// translated names, so results are recomputed.
func (s *Session) SetLocale(loc locale.Locale) {
	if loc == s.loc {
		return
	}
	s.loc = loc
	s.Recompute()
}

// Recompute evaluates the current state against the current catalog
func (s *Session) Recompute() {
	settled := s.query.Settled() && s.query.Text() == s.state.Query
	s.result = s.engine.Search(search.Request{
		State:   s.state,
		Locale:  s.loc,
		Today:   s.Today(),
		Settled: settled,
	})
}

// Pending reports whether any timer is waiting to fire
func (s *Session) Pending() bool {
	return s.query.Primary.Phase() == debounce.Pending ||
		s.query.Fallback.Phase() == debounce.Pending ||
		s.ranges.Phase() == debounce.Pending
}

func (s *Session) State() search.State    { return s.state }
func (s *Session) Result() search.Result  { return s.result }
func (s *Session) Global() model.Ranges   { return s.global }
func (s *Session) Songs() []model.Song    { return s.songs }
func (s *Session) Locale() locale.Locale  { return s.loc }
func (s *Session) Generation() uint64     { return s.generation }
func (s *Session) Annotated() bool        { return s.annotated }
func (s *Session) Loaded() bool           { return s.generation > 0 }
func (s *Session) Table() locale.Table    { return locale.For(s.loc) }
func (s *Session) Query() *debounce.Query { return s.query }
