package browse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/davidpaquet/sekai-chart-browser/internal/catalog"
	"github.com/davidpaquet/sekai-chart-browser/internal/debounce"
	"github.com/davidpaquet/sekai-chart-browser/internal/locale"
	"github.com/davidpaquet/sekai-chart-browser/internal/model"
	"github.com/davidpaquet/sekai-chart-browser/internal/phonetic"
	"github.com/davidpaquet/sekai-chart-browser/internal/search"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newSession() *Session {
	return New(WithClock(func() time.Time { return now }), WithZone(time.UTC))
}

func sampleSongs() []model.Song {
	return []model.Song{
		{ID: "1", TitleKO: "강남 스타일", UnitCode: "VS", BPM: floatPtr(132), LengthSeconds: intPtr(219),
			ReleaseDate: datePtr(2021, 1, 1)},
		{ID: "2", TitleKO: "그날", UnitCode: "L/n", BPM: floatPtr(180), LengthSeconds: intPtr(120),
			ReleaseDate: datePtr(2022, 1, 1)},
		{ID: "3", TitleKO: "미래", TitleJP: "未来", UnitCode: "MMJ", BPM: floatPtr(150),
			ReleaseDate: datePtr(2024, 7, 1)},
	}
}

func ids(songs []model.Song) []string {
	out := make([]string, len(songs))
	for i, s := range songs {
		out[i] = s.ID
	}
	return out
}

func TestLoadCatalog(t *testing.T) {
	s := newSession()
	if s.Loaded() || len(s.Result().Songs) != 0 {
		t.Fatal("Expected an empty session before load")
	}

	gen := s.LoadCatalog(sampleSongs())
	if gen != 1 {
		t.Errorf("Expected generation 1, got %d", gen)
	}
	if got := len(s.Result().Songs); got != 3 {
		t.Errorf("Expected 3 songs, got %d", got)
	}
	bpm := s.Global().Get(model.FacetBPM)
	if bpm.Min != 132 || bpm.Max != 180 {
		t.Errorf("Expected BPM 132..180, got %+v", bpm)
	}
	if s.State().Ranges != s.Global() {
		t.Error("Expected the filter ranges to start at the global ranges")
	}
	c := s.Result().Counts
	if c.Released != 2 || c.Upcoming != 1 {
		t.Errorf("Expected 2 released and 1 upcoming, got %+v", c)
	}
}

func TestReloadRebasesRanges(t *testing.T) {
	s := newSession()
	s.LoadCatalog(sampleSongs())
	s.Update(func(st search.State) search.State {
		return st.WithRange(model.FacetBPM, model.Range{Min: 140, Max: 180})
	})

	more := append(sampleSongs(), model.Song{ID: "4", BPM: floatPtr(240), LengthSeconds: intPtr(90)})
	s.LoadCatalog(more)

	if got := s.State().Ranges.Get(model.FacetLength); got != s.Global().Get(model.FacetLength) {
		t.Errorf("Expected untouched length range to follow the catalog, got %+v", got)
	}
	if got := s.State().Ranges.Get(model.FacetBPM); got.Min != 140 || got.Max != 180 {
		t.Errorf("Expected narrowed BPM range kept, got %+v", got)
	}
}

func TestStaleAnnotationsDropped(t *testing.T) {
	s := newSession()
	ix := phonetic.NewIndexer()

	first := s.LoadCatalog(sampleSongs())
	second := s.LoadCatalog(sampleSongs()[:2])

	if s.ApplyAnnotations(first, ix.Annotate(sampleSongs())) {
		t.Fatal("Expected annotations of an older generation to be rejected")
	}
	if s.Annotated() {
		t.Error("Expected session to remain unannotated")
	}
	if got := len(s.Result().Songs); got != 2 {
		t.Errorf("Expected the newer catalog to stay published, got %d songs", got)
	}

	if !s.ApplyAnnotations(second, ix.Annotate(s.Songs())) {
		t.Fatal("Expected current annotations to be applied")
	}
	if !s.Annotated() || s.Songs()[0].Annotation == nil {
		t.Error("Expected annotated songs")
	}
}

func TestAnnotateCmd(t *testing.T) {
	songs := sampleSongs()
	msg := AnnotateCmd(7, songs, phonetic.NewIndexer())()
	am, ok := msg.(AnnotatedMsg)
	if !ok {
		t.Fatalf("Expected AnnotatedMsg, got %T", msg)
	}
	if am.Generation != 7 || len(am.Songs) != 3 {
		t.Errorf("Unexpected message %+v", am)
	}
	if songs[0].Annotation != nil {
		t.Error("Expected the input catalog to stay unannotated")
	}
	if am.Songs[0].Annotation.Choseong != "ㄱㄴㅅㅌㅇ" {
		t.Errorf("Expected choseong key, got %q", am.Songs[0].Annotation.Choseong)
	}
}

type stubSource struct {
	songs []model.Song
	err   error
}

func (s stubSource) Load(context.Context) ([]model.Song, catalog.Report, error) {
	return s.songs, catalog.Report{Records: len(s.songs)}, s.err
}

func TestLoadCmd(t *testing.T) {
	msg := LoadCmd(context.Background(), stubSource{songs: sampleSongs()})().(LoadedMsg)
	if msg.Err != nil || len(msg.Songs) != 3 || msg.Report.Records != 3 {
		t.Errorf("Unexpected message %+v", msg)
	}

	msg = LoadCmd(context.Background(), stubSource{err: catalog.ErrStatus})().(LoadedMsg)
	if !errors.Is(msg.Err, catalog.ErrStatus) || msg.Songs != nil {
		t.Errorf("Expected status error, got %+v", msg)
	}
}

func TestQueryDebounce(t *testing.T) {
	s := newSession()
	s.LoadCatalog(sampleSongs())

	s.SetQuery("그")
	s.SetQuery("그날")
	if s.State().Query != "" {
		t.Fatal("Expected state to wait for the timer")
	}
	if !s.Pending() {
		t.Error("Expected pending timers")
	}

	if s.HandleFired(debounce.FiredMsg{Channel: debounce.QueryChannel, Seq: 1}) {
		t.Error("Expected the superseded timer to be discarded")
	}
	if !s.HandleFired(debounce.FiredMsg{Channel: debounce.QueryChannel, Seq: 2}) {
		t.Fatal("Expected the latest timer to apply")
	}
	if s.State().Query != "그날" {
		t.Errorf("Expected query 그날, got %q", s.State().Query)
	}
	if got := ids(s.Result().Songs); len(got) != 1 || got[0] != "2" {
		t.Errorf("Expected [2], got %v", got)
	}
}

func TestChoseongWaitsForLongTimer(t *testing.T) {
	s := newSession()
	s.LoadCatalog(sampleSongs())

	s.SetQuery("가나")
	s.HandleFired(debounce.FiredMsg{Channel: debounce.QueryChannel, Seq: 1})
	if res := s.Result(); res.Mode != search.MatchPrimary || len(res.Songs) != 0 {
		t.Fatalf("Expected no fallback before the long timer, got mode %d with %v", res.Mode, ids(res.Songs))
	}

	s.HandleFired(debounce.FiredMsg{Channel: debounce.ChoseongChannel, Seq: 1})
	res := s.Result()
	if res.Mode != search.MatchChoseong {
		t.Fatalf("Expected fallback once both timers agree, got mode %d", res.Mode)
	}
	got := ids(res.Songs)
	if len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Errorf("Expected [1 2], got %v", got)
	}

	s.SetLocale(locale.Japanese)
	if s.Result().Mode == search.MatchChoseong {
		t.Error("Expected no fallback in the Japanese locale")
	}
}

func TestChoseongIgnoresDivergedTimers(t *testing.T) {
	s := newSession()
	s.LoadCatalog(sampleSongs())

	s.SetQuery("가나")
	s.HandleFired(debounce.FiredMsg{Channel: debounce.ChoseongChannel, Seq: 1})
	s.SetQuery("가나다")
	s.HandleFired(debounce.FiredMsg{Channel: debounce.QueryChannel, Seq: 2})

	if s.Result().Mode == search.MatchChoseong {
		t.Error("Expected no fallback while the long timer is still pending")
	}
}

func TestRangeDebounce(t *testing.T) {
	s := newSession()
	s.LoadCatalog(sampleSongs())

	s.SetRange(model.FacetBPM, model.Range{Min: 140, Max: 200})
	s.SetRange(model.FacetLength, model.Range{Min: 100, Max: 150})
	if s.State().RangeTouched(model.FacetBPM, s.Global()) {
		t.Fatal("Expected ranges to wait for the timer")
	}
	if got := s.PendingRanges().Get(model.FacetBPM); got.Max != 180 {
		t.Errorf("Expected pending BPM clamped to 180, got %+v", got)
	}

	// New and LoadCatalog each reset the channel once
	if !s.HandleFired(debounce.FiredMsg{Channel: debounce.RangeChannel, Seq: 4}) {
		t.Fatal("Expected range timer to apply")
	}
	st := s.State()
	if !st.RangeTouched(model.FacetBPM, s.Global()) || !st.RangeTouched(model.FacetLength, s.Global()) {
		t.Error("Expected both moves to accumulate")
	}
	// song 3 has no length and passes; song 1 is too slow
	if got := ids(s.Result().Songs); len(got) != 2 || got[0] != "2" || got[1] != "3" {
		t.Errorf("Expected [2 3], got %v", got)
	}
}

func TestFlush(t *testing.T) {
	s := newSession()
	s.LoadCatalog(sampleSongs())

	s.SetQuery("미래")
	s.SetRange(model.FacetBPM, model.Range{Min: 100, Max: 160})
	s.Flush()

	if s.Pending() {
		t.Error("Expected nothing pending after flush")
	}
	if got := ids(s.Result().Songs); len(got) != 1 || got[0] != "3" {
		t.Errorf("Expected [3], got %v", got)
	}
}

func TestUpdateCancelsPendingRange(t *testing.T) {
	s := newSession()
	s.LoadCatalog(sampleSongs())

	s.SetRange(model.FacetBPM, model.Range{Min: 170, Max: 180})
	s.Reset()
	if s.HandleFired(debounce.FiredMsg{Channel: debounce.RangeChannel, Seq: 3}) {
		t.Error("Expected reset to discard the pending drag")
	}
	if s.State().RangeTouched(model.FacetBPM, s.Global()) {
		t.Error("Expected global BPM range after reset")
	}
}

func TestStashRestore(t *testing.T) {
	s := newSession()
	s.LoadCatalog(sampleSongs())

	if s.Restore() {
		t.Fatal("Expected nothing to restore")
	}

	s.Update(func(st search.State) search.State {
		return st.WithQuery("그날").Toggle(search.CategoryUnit, "L/n")
	})
	s.Stash()
	s.Reset()
	if len(s.Result().Songs) != 3 {
		t.Fatalf("Expected full catalog after reset, got %v", ids(s.Result().Songs))
	}

	if !s.Restore() {
		t.Fatal("Expected stashed state to be restored")
	}
	if s.State().Query != "그날" || !s.State().Selections[search.CategoryUnit].Has("L/n") {
		t.Errorf("Unexpected restored state %+v", s.State())
	}
	if s.Query().Text() != "그날" {
		t.Errorf("Expected debouncer to follow the restored query, got %q", s.Query().Text())
	}
	if s.HasStash() {
		t.Error("Expected stash to be consumed")
	}
}

func TestHideUpcoming(t *testing.T) {
	s := newSession()
	s.LoadCatalog(sampleSongs())
	s.Update(func(st search.State) search.State { return st.WithHideUpcoming(true) })

	if got := ids(s.Result().Songs); len(got) != 2 {
		t.Errorf("Expected upcoming song hidden, got %v", got)
	}
	if c := s.Result().Counts; c.Upcoming != 1 {
		t.Errorf("Expected counts taken before hiding, got %+v", c)
	}
}
