package model

import (
	"time"
)

// NumericFacet identifies one of the range-filtered quantities of a song
type NumericFacet int

const (
	FacetLength NumericFacet = iota
	FacetBPM
	FacetDate
	FacetExpertNotes
	FacetMasterNotes
	FacetAppendNotes

	numericFacetCount
)

// NumericFacets lists every range facet in display order
var NumericFacets = []NumericFacet{
	FacetLength, FacetBPM, FacetDate, FacetExpertNotes, FacetMasterNotes, FacetAppendNotes,
}

func (f NumericFacet) String() string {
	switch f {
	case FacetLength:
		return "length"
	case FacetBPM:
		return "bpm"
	case FacetDate:
		return "date"
	case FacetExpertNotes:
		return "expert_notes"
	case FacetMasterNotes:
		return "master_notes"
	case FacetAppendNotes:
		return "append_notes"
	default:
		return "unknown"
	}
}

// NoteTier returns the tier a note-count facet refers to
func (f NumericFacet) NoteTier() (Tier, bool) {
	switch f {
	case FacetExpertNotes:
		return Expert, true
	case FacetMasterNotes:
		return Master, true
	case FacetAppendNotes:
		return Append, true
	default:
		return "", false
	}
}

// Range is an inclusive numeric interval. Dates are expressed as days since
// the Unix epoch.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether min <= v <= max
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp narrows r to lie within bounds
func (r Range) Clamp(bounds Range) Range {
	if r.Min < bounds.Min {
		r.Min = bounds.Min
	}
	if r.Max > bounds.Max {
		r.Max = bounds.Max
	}
	if r.Min > r.Max {
		r.Min = r.Max
	}
	return r
}

// Ranges holds one range per numeric facet
type Ranges [numericFacetCount]Range

// Get returns the range of a facet
func (rs Ranges) Get(f NumericFacet) Range {
	return rs[f]
}

// With returns a copy with the range of f replaced
func (rs Ranges) With(f NumericFacet, r Range) Ranges {
	rs[f] = r
	return rs
}

const secondsPerDay = 24 * 60 * 60

// DayNumber converts a calendar day (midnight UTC) to days since the epoch
func DayNumber(t time.Time) float64 {
	return float64(t.Unix() / secondsPerDay)
}

// DateOf converts a day number back to midnight UTC of that day
func DateOf(day float64) time.Time {
	return time.Unix(int64(day)*secondsPerDay, 0).UTC()
}

// Numeric projects a song onto a numeric facet. The boolean is false when
// the song has no usable value for it.
func (s *Song) Numeric(f NumericFacet) (float64, bool) {
	switch f {
	case FacetLength:
		if s.LengthSeconds == nil {
			return 0, false
		}
		return float64(*s.LengthSeconds), true
	case FacetBPM:
		if s.BPM == nil {
			return 0, false
		}
		return *s.BPM, true
	case FacetDate:
		if s.ReleaseDate == nil {
			return 0, false
		}
		return DayNumber(*s.ReleaseDate), true
	}
	if tier, ok := f.NoteTier(); ok {
		n, ok := s.NoteCount(tier)
		return float64(n), ok
	}
	return 0, false
}
