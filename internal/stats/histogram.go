// Package stats aggregates a song list into the histograms, release
// timeline and active-filter chips of the statistics view.
package stats

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/davidpaquet/sekai-chart-browser/internal/locale"
	"github.com/davidpaquet/sekai-chart-browser/internal/model"
)

// Axis is the x axis of a histogram
type Axis int

const (
	AxisLevel Axis = iota
	AxisAppend
	AxisUnit
	AxisClassification
	AxisMVType
	AxisYear
	AxisMonth
	AxisBPM
	AxisLength
	AxisMVMembers
)

// Axes lists every axis in the order the stats view cycles through them
var Axes = []Axis{
	AxisLevel, AxisAppend, AxisUnit, AxisClassification, AxisMVType,
	AxisYear, AxisMonth, AxisBPM, AxisLength, AxisMVMembers,
}

func (a Axis) String() string {
	switch a {
	case AxisLevel:
		return "level"
	case AxisAppend:
		return "append"
	case AxisUnit:
		return "unit"
	case AxisClassification:
		return "classification"
	case AxisMVType:
		return "mv_type"
	case AxisYear:
		return "year"
	case AxisMonth:
		return "month"
	case AxisBPM:
		return "bpm"
	case AxisLength:
		return "length"
	case AxisMVMembers:
		return "mv_members"
	default:
		return "unknown"
	}
}

func (a Axis) numeric() bool {
	switch a {
	case AxisLevel, AxisAppend, AxisYear, AxisMonth, AxisBPM, AxisLength, AxisMVMembers:
		return true
	}
	return false
}

const (
	bpmBin    = 20
	lengthBin = 10
)

// Launch is the game's release day; anniversary years roll over on Sep 30
var Launch = time.Date(2020, time.September, 30, 0, 0, 0, 0, time.UTC)

// Bucket is one bar of a histogram
type Bucket struct {
	Key       string
	Label     string
	Total     int
	Breakdown map[model.Tier]int
}

// Options tune a histogram
type Options struct {
	// Tiers are the difficulties counted on the level axis; append is
	// always excluded there. Empty means every non-append tier.
	Tiers []model.Tier
	Table locale.Table
}

// Histogram counts songs per axis value. Songs without a value for the
// axis are left out.
func Histogram(songs []model.Song, axis Axis, opts Options) []Bucket {
	buckets := map[string]*Bucket{}
	rank := map[string]int{}

	add := func(key string, tier model.Tier) *Bucket {
		b, ok := buckets[key]
		if !ok {
			b = &Bucket{Key: key, Breakdown: map[model.Tier]int{}}
			buckets[key] = b
		}
		b.Total++
		if tier != "" {
			b.Breakdown[tier]++
		}
		return b
	}

	tiers := opts.Tiers
	if len(tiers) == 0 {
		tiers = model.Tiers
	}

	for i := range songs {
		s := &songs[i]
		switch axis {
		case AxisLevel:
			for _, t := range tiers {
				if t == model.Append {
					continue
				}
				if lv, ok := s.Level(t); ok {
					add(strconv.Itoa(lv), t)
				}
			}
		case AxisAppend:
			if lv, ok := s.Level(model.Append); ok {
				add(strconv.Itoa(lv), model.Append)
			}
		case AxisUnit:
			if s.UnitCode == "" {
				continue
			}
			key := opts.Table.Unit(s.UnitCode)
			if r, ok := rank[key]; !ok || locale.UnitRank(s.UnitCode) < r {
				rank[key] = locale.UnitRank(s.UnitCode)
			}
			add(key, "")
		case AxisClassification:
			if s.Classification != "" {
				add(opts.Table.Class(s.Classification), "")
			}
		case AxisMVType:
			if s.MVType == "" {
				continue
			}
			key := opts.Table.MVType(s.MVType)
			rank[key] = locale.MVRank(s.MVType)
			add(key, "")
		case AxisYear:
			if s.ReleaseDate != nil {
				add(strconv.Itoa(AnniversaryYear(*s.ReleaseDate)), "")
			}
		case AxisMonth:
			if s.ReleaseDate != nil {
				add(fmt.Sprintf("%02d", int(s.ReleaseDate.Month())), "")
			}
		case AxisBPM:
			if s.BPM != nil && *s.BPM > 0 {
				add(strconv.Itoa(int(*s.BPM)/bpmBin*bpmBin), "")
			}
		case AxisLength:
			if s.LengthSeconds != nil {
				add(strconv.Itoa(*s.LengthSeconds/lengthBin*lengthBin), "")
			}
		case AxisMVMembers:
			if s.MVMembers != nil && *s.MVMembers > 0 {
				add(strconv.Itoa(*s.MVMembers), "")
			}
		}
	}

	out := make([]Bucket, 0, len(buckets))
	for _, b := range buckets {
		b.Label = label(axis, b.Key, opts.Table.Locale)
		out = append(out, *b)
	}

	slices.SortFunc(out, func(a, b Bucket) int {
		switch {
		case axis.numeric():
			na, _ := strconv.Atoi(a.Key)
			nb, _ := strconv.Atoi(b.Key)
			return cmp.Compare(na, nb)
		case axis == AxisUnit || axis == AxisMVType:
			if c := cmp.Compare(rank[a.Key], rank[b.Key]); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

// AnniversaryYear returns which anniversary year a release falls in.
// Releases before launch count as year 0.
func AnniversaryYear(t time.Time) int {
	year := t.Year() - Launch.Year()
	if t.Month() < time.September || (t.Month() == time.September && t.Day() < Launch.Day()) {
		year--
	}
	if year < 0 {
		return 0
	}
	return year
}

func label(axis Axis, key string, loc locale.Locale) string {
	switch axis {
	case AxisBPM:
		return key + "~"
	case AxisYear:
		if loc.IsJapanese() {
			return key + "周年"
		}
		return key + "주년"
	case AxisLength:
		sec, _ := strconv.Atoi(key)
		return FormatSeconds(sec)
	case AxisMVMembers:
		if loc.IsJapanese() {
			return key + "人"
		}
		return key + "명"
	}
	return key
}

// FormatSeconds renders a duration in seconds as m:ss
func FormatSeconds(sec int) string {
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}

// Max returns the tallest bar
func Max(buckets []Bucket) int {
	m := 0
	for _, b := range buckets {
		m = max(m, b.Total)
	}
	return m
}
