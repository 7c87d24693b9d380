package search

import (
	"cmp"
	"slices"
	"time"

	"github.com/davidpaquet/sekai-chart-browser/internal/model"
)

// Counts are the release aggregates shown next to the result list
type Counts struct {
	Released int
	Upcoming int
}

// Total is the number of songs the counts cover
func (c Counts) Total() int {
	return c.Released + c.Upcoming
}

// CountReleases splits songs into released and upcoming relative to today
func CountReleases(songs []model.Song, today time.Time) Counts {
	var c Counts
	for i := range songs {
		if Upcoming(&songs[i], today) {
			c.Upcoming++
		} else {
			c.Released++
		}
	}
	return c
}

// Assembled is an ordered result list plus its aggregates
type Assembled struct {
	Songs  []model.Song
	Counts Counts
}

// Assemble orders the filtered songs and computes the counts. Counts are
// taken before the spoiler filter so they tell what the toggle would reveal.
func Assemble(filtered []model.Song, sort Sort, appendMode, hideUpcoming bool, today time.Time) Assembled {
	counts := CountReleases(filtered, today)

	var songs []model.Song
	if hideUpcoming {
		songs = HideUpcoming(filtered, today)
	} else {
		songs = slices.Clone(filtered)
	}

	switch {
	case appendMode:
		SortByRecency(songs)
	case sort.Active:
		SortBy(songs, sort.Key, sort.Desc)
	}
	return Assembled{Songs: songs, Counts: counts}
}

// SortByRecency orders songs most recent first, preferring the append
// release date. Ties keep catalog order.
func SortByRecency(songs []model.Song) {
	slices.SortStableFunc(songs, func(a, b model.Song) int {
		return b.RecencyDate().Compare(a.RecencyDate())
	})
}

// SortBy orders songs by a numeric facet. Songs without a value go last in
// either direction and ties keep catalog order.
func SortBy(songs []model.Song, key model.NumericFacet, desc bool) {
	slices.SortStableFunc(songs, func(a, b model.Song) int {
		va, okA := a.Numeric(key)
		vb, okB := b.Numeric(key)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		c := cmp.Compare(va, vb)
		if desc {
			return -c
		}
		return c
	})
}
