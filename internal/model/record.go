package model

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// FlexString accepts a JSON string, number or null. The catalog mixes
// numeric and textual encodings for the same field across songs.
type FlexString struct {
	Value string
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = FlexString{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString{Value: strings.TrimSpace(s), Valid: true}
		return nil
	}
	switch string(data) {
	case "true", "false":
		return fmt.Errorf("unexpected boolean %s", data)
	}
	if data[0] == '{' || data[0] == '[' {
		return fmt.Errorf("unexpected composite value")
	}
	*f = FlexString{Value: string(data), Valid: true}
	return nil
}

// MarshalJSON implements json.Marshaler
func (f FlexString) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// String returns the raw value, empty when absent
func (f FlexString) String() string {
	return f.Value
}

var leadingInt = regexp.MustCompile(`^-?\d+`)

// Int parses the value as an integer. Thousands separators are ignored and
// trailing text after the leading number is dropped, so "6+" yields 6 and
// "1,234" yields 1234.
func (f FlexString) Int() (int, bool) {
	if !f.Valid {
		return 0, false
	}
	v := strings.ReplaceAll(strings.TrimSpace(f.Value), ",", "")
	if v == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n, true
	}
	// "31.0" style numbers
	if fl, err := strconv.ParseFloat(v, 64); err == nil {
		return int(fl), true
	}
	m := leadingInt.FindString(v)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Record is one song exactly as the catalog provider serves it
type Record struct {
	ID             FlexString            `json:"id" validate:"required"`
	TitleKO        string                `json:"title_ko"`
	TitleJP        string                `json:"title_jp"`
	Composer       string                `json:"composer"`
	ComposerJP     string                `json:"composer_jp"`
	UnitCode       string                `json:"unit_code"`
	Classification string                `json:"classification"`
	MVType         string                `json:"mv_type"`
	Levels         map[string]FlexString `json:"levels"`
	BPM            FlexString            `json:"bpm"`
	Length         string                `json:"length"`
	ReleaseDate    string                `json:"release_date"`
	APD            string                `json:"apd"`
	Ver            FlexString            `json:"ver"`
	ExNote         FlexString            `json:"ex_note"`
	MaNote         FlexString            `json:"ma_note"`
	ApNote         FlexString            `json:"ap_note"`
	MVIn           FlexString            `json:"mv_in"`
	Pron           string                `json:"pron"`
}

// FieldIssue describes a field that was dropped while ingesting a record
type FieldIssue struct {
	Field  string
	Value  string
	Reason string
}

func (i FieldIssue) String() string {
	return fmt.Sprintf("%s=%q: %s", i.Field, i.Value, i.Reason)
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

const (
	levelRule   = "min=1,max=99"
	noteRule    = "min=1,max=20000"
	membersRule = "min=1,max=99"
)

// ToSong converts a record into a Song. Fields that cannot be parsed are
// left absent and reported as issues; only a missing id is fatal for the
// record.
func (r *Record) ToSong(position int) (Song, []FieldIssue, error) {
	v := getValidator()
	if err := v.Struct(r); err != nil {
		return Song{}, nil, fmt.Errorf("record %d: %w", position, err)
	}
	if r.ID.Value == "" {
		return Song{}, nil, fmt.Errorf("record %d: empty id", position)
	}

	var issues []FieldIssue
	drop := func(field, value, reason string) {
		issues = append(issues, FieldIssue{Field: field, Value: value, Reason: reason})
	}

	s := Song{
		ID:             r.ID.Value,
		Position:       position,
		TitleKO:        strings.TrimSpace(r.TitleKO),
		TitleJP:        strings.TrimSpace(r.TitleJP),
		ComposerKO:     strings.TrimSpace(r.Composer),
		ComposerJP:     strings.TrimSpace(r.ComposerJP),
		UnitCode:       strings.TrimSpace(r.UnitCode),
		Classification: strings.TrimSpace(r.Classification),
		MVType:         strings.TrimSpace(r.MVType),
		Levels:         make(map[Tier]int, len(Tiers)),
		Notes:          make(map[Tier]int, len(NoteTiers)),
		BPMText:        r.BPM.Value,
		LengthText:     strings.TrimSpace(r.Length),
		Pronunciation:  strings.TrimSpace(r.Pron),
		AssetVersion:   r.Ver.Value,
	}

	for _, t := range Tiers {
		raw, ok := r.Levels[string(t)]
		if !ok || !raw.Valid || raw.Value == "" {
			continue
		}
		lv, ok := raw.Int()
		if !ok || v.Var(lv, levelRule) != nil {
			drop("levels."+string(t), raw.Value, "not a level")
			continue
		}
		s.Levels[t] = lv
	}

	notes := map[Tier]FlexString{Expert: r.ExNote, Master: r.MaNote, Append: r.ApNote}
	for t, raw := range notes {
		if !raw.Valid || raw.Value == "" {
			continue
		}
		n, ok := raw.Int()
		if !ok || v.Var(n, noteRule) != nil {
			drop(string(t)+"_note", raw.Value, "not a note count")
			continue
		}
		s.Notes[t] = n
	}

	if r.BPM.Valid && r.BPM.Value != "" {
		if bpm, ok := ParseBPM(r.BPM.Value); ok {
			s.BPM = &bpm
		} else {
			drop("bpm", r.BPM.Value, "no numeric token")
		}
	}

	if s.LengthText != "" {
		if sec, ok := ParseLength(s.LengthText); ok {
			s.LengthSeconds = &sec
		} else {
			drop("length", s.LengthText, "not m:ss")
		}
	}

	if d := strings.TrimSpace(r.ReleaseDate); d != "" {
		if t, ok := ParseDate(d); ok {
			s.ReleaseDate = &t
		} else {
			drop("release_date", d, "not a date")
		}
	}

	if d := strings.TrimSpace(r.APD); d != "" {
		if t, ok := ParseAppendDate(d); ok {
			s.AppendReleaseDate = &t
		} else {
			drop("apd", d, "not a yy/mm/dd date")
		}
	}

	if r.MVIn.Valid && r.MVIn.Value != "" && r.MVIn.Value != "-" {
		n, ok := r.MVIn.Int()
		if ok && v.Var(n, membersRule) == nil {
			s.MVMembers = &n
		} else {
			drop("mv_in", r.MVIn.Value, "not a member count")
		}
	}

	return s, issues, nil
}

var bpmToken = regexp.MustCompile(`\d+(\.\d+)?`)

// ParseBPM returns the first numeric token of a BPM field. "120(240)"
// yields 120.
func ParseBPM(text string) (float64, bool) {
	m := bpmToken.FindString(text)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseLength converts "m:ss" into seconds
func ParseLength(text string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 2 {
		return 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || m < 0 {
		return 0, false
	}
	sec, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || sec < 0 {
		return 0, false
	}
	return m*60 + sec, true
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "2006.01.02"}

// ParseDate parses a calendar date. The result is midnight UTC of that day,
// so dates compare by calendar day only.
func ParseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if len(text) > 10 {
		text = text[:10]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseAppendDate parses the append release date, which the catalog
// writes as yy/mm/dd.
func ParseAppendDate(text string) (time.Time, bool) {
	t, err := time.Parse("06/01/02", strings.TrimSpace(text))
	if err != nil {
		return ParseDate(text)
	}
	return t, true
}

// Day truncates a time to its calendar day in loc, expressed as midnight UTC
// so it is comparable with parsed catalog dates.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
