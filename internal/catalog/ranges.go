package catalog

import (
	"time"

	"github.com/davidpaquet/sekai-chart-browser/internal/model"
)

// defaultRanges apply to facets no song supplies a value for. The date
// default is filled in from today.
var defaultRanges = model.Ranges{}.
	With(model.FacetLength, model.Range{Min: 0, Max: 300}).
	With(model.FacetBPM, model.Range{Min: 0, Max: 300}).
	With(model.FacetExpertNotes, model.Range{Min: 0, Max: 2000}).
	With(model.FacetMasterNotes, model.Range{Min: 0, Max: 2000}).
	With(model.FacetAppendNotes, model.Range{Min: 0, Max: 2000})

// GlobalRanges returns the observed min/max of every numeric facet
func GlobalRanges(songs []model.Song, today time.Time) model.Ranges {
	out := defaultRanges
	day := model.DayNumber(today)
	out = out.With(model.FacetDate, model.Range{Min: day, Max: day})

	for _, f := range model.NumericFacets {
		var r model.Range
		seen := false
		for i := range songs {
			v, ok := songs[i].Numeric(f)
			if !ok {
				continue
			}
			if !seen {
				r = model.Range{Min: v, Max: v}
				seen = true
				continue
			}
			if v < r.Min {
				r.Min = v
			}
			if v > r.Max {
				r.Max = v
			}
		}
		if seen {
			out = out.With(f, r)
		}
	}
	return out
}
