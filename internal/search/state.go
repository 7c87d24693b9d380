package search

import (
	"slices"
	"strconv"

	"github.com/davidpaquet/sekai-chart-browser/internal/model"
)

// Category identifies a categorical facet
type Category int

const (
	CategoryClassification Category = iota
	CategoryUnit
	CategoryMVType
	CategoryMVMembers

	categoryCount
)

// Categories lists every categorical facet in display order
var Categories = []Category{CategoryClassification, CategoryUnit, CategoryMVType, CategoryMVMembers}

func (c Category) String() string {
	switch c {
	case CategoryClassification:
		return "classification"
	case CategoryUnit:
		return "unit"
	case CategoryMVType:
		return "mv_type"
	case CategoryMVMembers:
		return "mv_members"
	default:
		return "unknown"
	}
}

// Selection is the chosen values of one categorical facet. Values are
// canonical catalog codes; an empty selection restricts nothing.
type Selection struct {
	Values []string
	Multi  bool
}

// Active reports whether the selection restricts anything
func (s Selection) Active() bool {
	return len(s.Values) > 0
}

// Has reports whether v is selected
func (s Selection) Has(v string) bool {
	return slices.Contains(s.Values, v)
}

// Toggle selects or deselects v. In single mode selecting v replaces any
// other value.
func (s Selection) Toggle(v string) Selection {
	if s.Has(v) {
		out := make([]string, 0, len(s.Values))
		for _, x := range s.Values {
			if x != v {
				out = append(out, x)
			}
		}
		return Selection{Values: out, Multi: s.Multi}
	}
	if !s.Multi {
		return Selection{Values: []string{v}}
	}
	out := make([]string, len(s.Values), len(s.Values)+1)
	copy(out, s.Values)
	return Selection{Values: append(out, v), Multi: true}
}

// WithMulti switches the selection mode. Leaving multi mode keeps only the
// most recently selected value.
func (s Selection) WithMulti(multi bool) Selection {
	if multi || len(s.Values) <= 1 {
		return Selection{Values: slices.Clone(s.Values), Multi: multi}
	}
	return Selection{Values: []string{s.Values[len(s.Values)-1]}}
}

// LevelFilter is the exact difficulty-level filter. At most one tier is
// active at a time; a zero value is inactive.
type LevelFilter struct {
	Tier  model.Tier
	Level int
	// Any matches every song that has an append chart
	Any bool
}

// Active reports whether a level filter is set
func (l LevelFilter) Active() bool {
	return l.Tier != ""
}

// AppendMode reports whether the filter restricts the append tier
func (l LevelFilter) AppendMode() bool {
	return l.Tier == model.Append
}

// Sort is the generic sort selection. Inactive means catalog order.
type Sort struct {
	Active bool
	Key    model.NumericFacet
	Desc   bool
}

// State is the complete filter state. It is a value: every With method
// returns a modified copy and leaves the receiver untouched.
type State struct {
	Query          string
	Level          LevelFilter
	Selections     [categoryCount]Selection
	Ranges         model.Ranges
	Sort           Sort
	HideUpcoming   bool
	ChoseongSearch bool
}

// NewState returns an unrestricted state whose ranges equal the global ranges
func NewState(global model.Ranges) State {
	return State{Ranges: global, ChoseongSearch: true}
}

func (s State) clone() State {
	for i := range s.Selections {
		s.Selections[i].Values = slices.Clone(s.Selections[i].Values)
	}
	return s
}

// WithQuery sets the free-text query
func (s State) WithQuery(q string) State {
	s = s.clone()
	s.Query = q
	return s
}

// WithLevel sets an exact level filter on one tier and clears the others
func (s State) WithLevel(tier model.Tier, level int) State {
	s = s.clone()
	s.Level = LevelFilter{Tier: tier, Level: level}
	return s
}

// WithAnyAppend selects every song that has an append chart
func (s State) WithAnyAppend() State {
	s = s.clone()
	s.Level = LevelFilter{Tier: model.Append, Any: true}
	return s
}

// WithoutLevel clears the level filter
func (s State) WithoutLevel() State {
	s = s.clone()
	s.Level = LevelFilter{}
	return s
}

// WithSelection replaces the selection of a categorical facet
func (s State) WithSelection(c Category, sel Selection) State {
	s = s.clone()
	s.Selections[c] = Selection{Values: slices.Clone(sel.Values), Multi: sel.Multi}
	return s
}

// Toggle toggles one value of a categorical facet
func (s State) Toggle(c Category, v string) State {
	return s.WithSelection(c, s.Selections[c].Toggle(v))
}

// ToggleMembers toggles an MV member-count bucket
func (s State) ToggleMembers(n int) State {
	return s.Toggle(CategoryMVMembers, strconv.Itoa(n))
}

// WithMulti switches a categorical facet between single and multi select
func (s State) WithMulti(c Category, multi bool) State {
	return s.WithSelection(c, s.Selections[c].WithMulti(multi))
}

// ResetCategory clears a categorical facet, keeping its selection mode
func (s State) ResetCategory(c Category) State {
	return s.WithSelection(c, Selection{Multi: s.Selections[c].Multi})
}

// WithRange sets a numeric range
func (s State) WithRange(f model.NumericFacet, r model.Range) State {
	s = s.clone()
	s.Ranges = s.Ranges.With(f, r)
	return s
}

// ResetRange restores a numeric facet to the global range
func (s State) ResetRange(f model.NumericFacet, global model.Ranges) State {
	return s.WithRange(f, global.Get(f))
}

// WithSort sets the generic sort order
func (s State) WithSort(key model.NumericFacet, desc bool) State {
	s = s.clone()
	s.Sort = Sort{Active: true, Key: key, Desc: desc}
	return s
}

// WithoutSort restores catalog order
func (s State) WithoutSort() State {
	s = s.clone()
	s.Sort = Sort{}
	return s
}

// WithHideUpcoming toggles the spoiler filter
func (s State) WithHideUpcoming(hide bool) State {
	s = s.clone()
	s.HideUpcoming = hide
	return s
}

// WithChoseongSearch toggles the initial-consonant fallback
func (s State) WithChoseongSearch(on bool) State {
	s = s.clone()
	s.ChoseongSearch = on
	return s
}

// Reset clears every restriction. Preference-backed toggles and selection
// modes survive.
func (s State) Reset(global model.Ranges) State {
	out := NewState(global)
	out.HideUpcoming = s.HideUpcoming
	out.ChoseongSearch = s.ChoseongSearch
	for i := range s.Selections {
		out.Selections[i].Multi = s.Selections[i].Multi
	}
	return out
}

// RangeTouched reports whether a numeric facet differs from the global range
func (s State) RangeTouched(f model.NumericFacet, global model.Ranges) bool {
	return s.Ranges.Get(f) != global.Get(f)
}

// Rebase moves every range still equal to the old global range onto the
// new one and clamps narrowed ranges into it. It is used on catalog reload.
func (s State) Rebase(old, global model.Ranges) State {
	s = s.clone()
	for _, f := range model.NumericFacets {
		if s.Ranges.Get(f) == old.Get(f) {
			s.Ranges = s.Ranges.With(f, global.Get(f))
			continue
		}
		s.Ranges = s.Ranges.With(f, s.Ranges.Get(f).Clamp(global.Get(f)))
	}
	return s
}
