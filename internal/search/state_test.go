package search

import (
	"testing"

	"github.com/davidpaquet/sekai-chart-browser/internal/model"
)

func TestSelectionToggle(t *testing.T) {
	t.Run("Single mode replaces", func(t *testing.T) {
		s := Selection{}.Toggle("VS").Toggle("WxS")
		if len(s.Values) != 1 || s.Values[0] != "WxS" {
			t.Errorf("Expected [WxS], got %v", s.Values)
		}
	})

	t.Run("Multi mode accumulates", func(t *testing.T) {
		s := Selection{Multi: true}.Toggle("VS").Toggle("WxS")
		if len(s.Values) != 2 {
			t.Errorf("Expected two values, got %v", s.Values)
		}
		s = s.Toggle("VS")
		if len(s.Values) != 1 || s.Values[0] != "WxS" {
			t.Errorf("Expected [WxS] after deselect, got %v", s.Values)
		}
	})

	t.Run("Leaving multi keeps the latest", func(t *testing.T) {
		s := Selection{Multi: true}.Toggle("a").Toggle("b").Toggle("c").WithMulti(false)
		if s.Multi || len(s.Values) != 1 || s.Values[0] != "c" {
			t.Errorf("Expected single [c], got %+v", s)
		}
	})
}

func TestStateIsAValue(t *testing.T) {
	base := openState().WithMulti(CategoryUnit, true).Toggle(CategoryUnit, "VS")
	next := base.Toggle(CategoryUnit, "WxS")

	if len(base.Selections[CategoryUnit].Values) != 1 {
		t.Errorf("Expected original state untouched, got %v", base.Selections[CategoryUnit].Values)
	}
	if len(next.Selections[CategoryUnit].Values) != 2 {
		t.Errorf("Expected two units, got %v", next.Selections[CategoryUnit].Values)
	}
}

func TestStateReset(t *testing.T) {
	global := openRanges().With(model.FacetBPM, model.Range{Min: 60, Max: 240})
	st := NewState(global).
		WithQuery("melt").
		WithMulti(CategoryUnit, true).
		Toggle(CategoryUnit, "VS").
		WithRange(model.FacetBPM, model.Range{Min: 100, Max: 120}).
		WithLevel(model.Master, 30).
		WithSort(model.FacetBPM, true).
		WithHideUpcoming(true)

	t.Run("Single facet", func(t *testing.T) {
		r := st.ResetRange(model.FacetBPM, global)
		if r.RangeTouched(model.FacetBPM, global) {
			t.Error("Expected BPM back at the global range")
		}
		c := st.ResetCategory(CategoryUnit)
		if c.Selections[CategoryUnit].Active() || !c.Selections[CategoryUnit].Multi {
			t.Errorf("Expected empty multi selection, got %+v", c.Selections[CategoryUnit])
		}
	})

	t.Run("Whole state", func(t *testing.T) {
		r := st.Reset(global)
		if r.Query != "" || r.Level.Active() || r.Sort.Active {
			t.Errorf("Expected restrictions cleared, got %+v", r)
		}
		if r.RangeTouched(model.FacetBPM, global) {
			t.Error("Expected ranges at global")
		}
		if !r.HideUpcoming || !r.Selections[CategoryUnit].Multi {
			t.Error("Expected toggles and modes kept")
		}
	})
}

func TestStateRebase(t *testing.T) {
	old := openRanges().
		With(model.FacetBPM, model.Range{Min: 60, Max: 240}).
		With(model.FacetLength, model.Range{Min: 90, Max: 300})
	global := openRanges().
		With(model.FacetBPM, model.Range{Min: 50, Max: 260}).
		With(model.FacetLength, model.Range{Min: 120, Max: 280})

	st := NewState(old).WithRange(model.FacetLength, model.Range{Min: 100, Max: 200})
	st = st.Rebase(old, global)

	if got := st.Ranges.Get(model.FacetBPM); got != global.Get(model.FacetBPM) {
		t.Errorf("Expected untouched BPM to follow the new global range, got %+v", got)
	}
	if got := st.Ranges.Get(model.FacetLength); got != (model.Range{Min: 120, Max: 200}) {
		t.Errorf("Expected narrowed length clamped to 120..200, got %+v", got)
	}
}
