package stats

import (
	"fmt"
	"time"

	"github.com/davidpaquet/sekai-chart-browser/internal/model"
)

// Month is one point of the release timeline
type Month struct {
	Year  int
	Month time.Month
	Total int
}

// Label renders the month as YYYY-MM
func (m Month) Label() string {
	return fmt.Sprintf("%d-%02d", m.Year, int(m.Month))
}

// Timeline counts releases per calendar month from the earliest to the
// latest dated song. Months without releases are present with zero.
func Timeline(songs []model.Song) []Month {
	counts := map[string]int{}
	var first, last time.Time
	for i := range songs {
		d := songs[i].ReleaseDate
		if d == nil {
			continue
		}
		if first.IsZero() || d.Before(first) {
			first = *d
		}
		if last.IsZero() || d.After(last) {
			last = *d
		}
		counts[Month{Year: d.Year(), Month: d.Month()}.Label()]++
	}
	if first.IsZero() {
		return nil
	}

	var out []Month
	y, m := first.Year(), first.Month()
	for y < last.Year() || (y == last.Year() && m <= last.Month()) {
		point := Month{Year: y, Month: m}
		point.Total = counts[point.Label()]
		out = append(out, point)
		m++
		if m > time.December {
			m = time.January
			y++
		}
	}
	return out
}
