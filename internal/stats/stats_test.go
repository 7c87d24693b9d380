package stats

import (
	"testing"
	"time"

	"github.com/davidpaquet/sekai-chart-browser/internal/locale"
	"github.com/davidpaquet/sekai-chart-browser/internal/model"
	"github.com/davidpaquet/sekai-chart-browser/internal/search"
)

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func keys(buckets []Bucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Key
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sampleSongs() []model.Song {
	return []model.Song{
		{ID: "1", UnitCode: "WxS", MVType: "3D", Classification: "공모전",
			Levels: map[model.Tier]int{model.Expert: 26, model.Master: 30},
			BPM: floatPtr(185), LengthSeconds: intPtr(125), MVMembers: intPtr(4),
			ReleaseDate: datePtr(2020, 9, 29)},
		{ID: "2", UnitCode: "VS", MVType: "원곡", Classification: "기존곡",
			Levels: map[model.Tier]int{model.Expert: 26, model.Master: 31, model.Append: 31},
			BPM: floatPtr(120), LengthSeconds: intPtr(129), MVMembers: intPtr(0),
			ReleaseDate: datePtr(2021, 9, 30)},
		{ID: "3", UnitCode: "Unk", MVType: "원곡/2D", Classification: "기존곡",
			Levels: map[model.Tier]int{model.Expert: 9},
			ReleaseDate: datePtr(2021, 12, 1)},
		{ID: "4"},
	}
}

func TestHistogramLevels(t *testing.T) {
	b := Histogram(sampleSongs(), AxisLevel, Options{Table: locale.For(locale.Korean)})
	if !equal(keys(b), []string{"9", "26", "30", "31"}) {
		t.Fatalf("Expected numeric order, got %v", keys(b))
	}
	if b[1].Total != 2 || b[1].Breakdown[model.Expert] != 2 {
		t.Errorf("Expected two expert 26 charts, got %+v", b[1])
	}
	if b[3].Breakdown[model.Append] != 0 {
		t.Error("Expected append excluded from the level axis")
	}

	only := Histogram(sampleSongs(), AxisLevel, Options{Tiers: []model.Tier{model.Master, model.Append}})
	if !equal(keys(only), []string{"30", "31"}) {
		t.Errorf("Expected master only, got %v", keys(only))
	}

	appendAxis := Histogram(sampleSongs(), AxisAppend, Options{})
	if !equal(keys(appendAxis), []string{"31"}) || appendAxis[0].Breakdown[model.Append] != 1 {
		t.Errorf("Expected one append 31, got %+v", appendAxis)
	}
}

func TestHistogramCategories(t *testing.T) {
	ko := Options{Table: locale.For(locale.Korean)}

	units := Histogram(sampleSongs(), AxisUnit, ko)
	if !equal(keys(units), []string{"버싱", "원더쇼"}) {
		t.Errorf("Expected unit order with VS and Unk merged, got %v", keys(units))
	}
	if units[0].Total != 2 {
		t.Errorf("Expected 2 songs under 버싱, got %d", units[0].Total)
	}

	mv := Histogram(sampleSongs(), AxisMVType, Options{Table: locale.For(locale.Japanese)})
	if !equal(keys(mv), []string{"原曲", "原曲/2D", "3D"}) {
		t.Errorf("Expected MV display order, got %v", keys(mv))
	}

	cls := Histogram(sampleSongs(), AxisClassification, ko)
	if !equal(keys(cls), []string{"공모전", "기존곡"}) {
		t.Errorf("Expected lexical order, got %v", keys(cls))
	}
}

func TestHistogramBinned(t *testing.T) {
	ko := Options{Table: locale.For(locale.Korean)}

	bpm := Histogram(sampleSongs(), AxisBPM, ko)
	if !equal(keys(bpm), []string{"120", "180"}) || bpm[1].Label != "180~" {
		t.Errorf("Expected 20-BPM bins, got %+v", bpm)
	}

	length := Histogram(sampleSongs(), AxisLength, ko)
	if len(length) != 1 || length[0].Label != "2:00" || length[0].Total != 2 {
		t.Errorf("Expected one 2:00 bin of 2, got %+v", length)
	}

	members := Histogram(sampleSongs(), AxisMVMembers, ko)
	if !equal(keys(members), []string{"4"}) || members[0].Label != "4명" {
		t.Errorf("Expected zero members excluded, got %+v", members)
	}

	years := Histogram(sampleSongs(), AxisYear, ko)
	if !equal(keys(years), []string{"0", "1"}) || years[1].Total != 2 {
		t.Errorf("Expected anniversary years 0 and 1, got %+v", years)
	}

	months := Histogram(sampleSongs(), AxisMonth, ko)
	if !equal(keys(months), []string{"09", "12"}) {
		t.Errorf("Expected months, got %v", keys(months))
	}
}

func TestAnniversaryYear(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{time.Date(2020, 9, 30, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2021, 9, 29, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2021, 9, 30, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), 4},
	}
	for _, tt := range tests {
		t.Run(tt.date.Format("2006-01-02"), func(t *testing.T) {
			if got := AnniversaryYear(tt.date); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestTimeline(t *testing.T) {
	months := Timeline(sampleSongs())
	if len(months) != 16 {
		t.Fatalf("Expected 2020-09 through 2021-12 (16 months), got %d", len(months))
	}
	if months[0].Label() != "2020-09" || months[0].Total != 1 {
		t.Errorf("Unexpected first month %+v", months[0])
	}
	if months[1].Total != 0 {
		t.Errorf("Expected zero-filled gap, got %+v", months[1])
	}
	if last := months[len(months)-1]; last.Label() != "2021-12" || last.Total != 1 {
		t.Errorf("Unexpected last month %+v", last)
	}

	if Timeline([]model.Song{{ID: "x"}}) != nil {
		t.Error("Expected no timeline without dates")
	}
}

func TestChips(t *testing.T) {
	var global model.Ranges
	global = global.
		With(model.FacetLength, model.Range{Min: 90, Max: 300}).
		With(model.FacetBPM, model.Range{Min: 60, Max: 240})
	table := locale.For(locale.Korean)

	st := search.NewState(global).
		WithLevel(model.Master, 31).
		Toggle(search.CategoryUnit, "VS").
		WithRange(model.FacetBPM, model.Range{Min: 100.4, Max: 199.6}).
		WithMulti(search.CategoryMVMembers, true).
		ToggleMembers(6).
		ToggleMembers(2)

	chips := Chips(st, global, table)
	labels := make([]string, len(chips))
	for i, c := range chips {
		labels[i] = c.Label
	}
	want := []string{"MAS 31", "버싱", "BPM 100 ~ 200", "MV 2,6인"}
	if !equal(labels, want) {
		t.Fatalf("Expected %v, got %v", want, labels)
	}

	st = chips[2].Remove(st, global)
	if st.RangeTouched(model.FacetBPM, global) {
		t.Error("Expected BPM chip removal to restore the global range")
	}
	st = chips[1].Remove(st, global)
	if st.Selections[search.CategoryUnit].Active() {
		t.Error("Expected unit chip removal to deselect VS")
	}
	st = chips[3].Remove(chips[0].Remove(st, global), global)
	if len(Chips(st, global, table)) != 0 {
		t.Errorf("Expected no chips left, got %+v", Chips(st, global, table))
	}
}
