package model

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestRecordToSong(t *testing.T) {
	raw := `{
		"id": 12,
		"title_ko": "세카이",
		"title_jp": "セカイ",
		"composer": "DECO*27",
		"unit_code": "VS",
		"classification": "기존곡",
		"mv_type": "원곡/3D",
		"levels": {"easy": 5, "normal": "10", "hard": 16, "expert": 24, "master": "29", "append": null},
		"bpm": "120(240)",
		"length": "2:05",
		"release_date": "2021-03-04",
		"apd": "23/11/15",
		"ver": "2",
		"ex_note": "700",
		"ma_note": 1000,
		"mv_in": "-"
	}`

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	song, issues, err := rec.ToSong(3)
	if err != nil {
		t.Fatalf("ToSong: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}

	if song.ID != "12" || song.Position != 3 {
		t.Errorf("unexpected identity %q/%d", song.ID, song.Position)
	}
	if lv, ok := song.Level(Master); !ok || lv != 29 {
		t.Errorf("master level = %d,%v", lv, ok)
	}
	if song.HasAppend() {
		t.Error("null append level must be absent")
	}
	if song.BPM == nil || *song.BPM != 120 {
		t.Errorf("bpm = %v", song.BPM)
	}
	if song.LengthSeconds == nil || *song.LengthSeconds != 125 {
		t.Errorf("length = %v", song.LengthSeconds)
	}
	if n, ok := song.NoteCount(Master); !ok || n != 1000 {
		t.Errorf("master notes = %d,%v", n, ok)
	}
	if _, ok := song.NoteCount(Append); ok {
		t.Error("append notes should be absent")
	}
	if song.MVMembers != nil {
		t.Error("'-' member count should be absent")
	}
	want := time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC)
	if !song.RecencyDate().Equal(want) {
		t.Errorf("recency = %v, want %v", song.RecencyDate(), want)
	}
}

func TestRecordDegradesPerField(t *testing.T) {
	raw := `{"id": "x1", "title_jp": "テスト", "levels": {"master": "??"}, "bpm": "???",
		"length": "abc", "release_date": "someday", "mv_in": "many", "ex_note": "-5"}`

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	song, issues, err := rec.ToSong(0)
	if err != nil {
		t.Fatalf("ToSong: %v", err)
	}

	if song.BPM != nil || song.LengthSeconds != nil || song.ReleaseDate != nil || song.MVMembers != nil {
		t.Error("unparseable fields must be absent")
	}
	if _, ok := song.Level(Master); ok {
		t.Error("unparseable level must be absent")
	}
	if len(issues) != 6 {
		t.Errorf("expected 6 issues, got %d: %v", len(issues), issues)
	}
	if song.TitleJP != "テスト" {
		t.Error("valid fields must survive")
	}
}

func TestRecordLeadingNumbers(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		members int
		notes   int
	}{
		{"plus sentinel", `{"id": 1, "mv_in": "6+", "ma_note": "1,234"}`, 6, 1234},
		{"plain string", `{"id": 2, "mv_in": "7", "ma_note": "980"}`, 7, 980},
		{"number", `{"id": 3, "mv_in": 7, "ma_note": 980}`, 7, 980},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec Record
			if err := json.Unmarshal([]byte(tt.raw), &rec); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			song, issues, err := rec.ToSong(0)
			if err != nil {
				t.Fatalf("ToSong: %v", err)
			}
			if len(issues) != 0 {
				t.Errorf("Expected no issues, got %v", issues)
			}
			if song.MVMembers == nil || *song.MVMembers != tt.members {
				t.Errorf("Expected %d members, got %v", tt.members, song.MVMembers)
			}
			if n, ok := song.NoteCount(Master); !ok || n != tt.notes {
				t.Errorf("Expected %d master notes, got %d (present=%v)", tt.notes, n, ok)
			}
		})
	}
}

func TestRecordRequiresID(t *testing.T) {
	for _, raw := range []string{`{"title_ko": "a"}`, `{"id": null}`, `{"id": ""}`} {
		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if _, _, err := rec.ToSong(0); err == nil {
			t.Errorf("expected error for %s", raw)
		}
	}
}

func TestParsers(t *testing.T) {
	bpms := map[string]float64{"120": 120, "95.5": 95.5, "BPM 180(90)": 180}
	for in, want := range bpms {
		got, ok := ParseBPM(in)
		if !ok || got != want {
			t.Errorf("ParseBPM(%q) = %v,%v", in, got, ok)
		}
	}
	if _, ok := ParseBPM("fast"); ok {
		t.Error("ParseBPM should reject text without digits")
	}

	lengths := map[string]int{"0:59": 59, "2:05": 125, "10:00": 600}
	for in, want := range lengths {
		got, ok := ParseLength(in)
		if !ok || got != want {
			t.Errorf("ParseLength(%q) = %v,%v", in, got, ok)
		}
	}
	for _, bad := range []string{"125", "1:2:3", "a:10", ""} {
		if _, ok := ParseLength(bad); ok {
			t.Errorf("ParseLength(%q) should fail", bad)
		}
	}

	if d, ok := ParseDate("2020-09-30"); !ok || d.Year() != 2020 || d.Month() != time.September {
		t.Errorf("ParseDate = %v,%v", d, ok)
	}
}

func TestDayTruncation(t *testing.T) {
	loc := time.FixedZone("KST", 9*3600)
	// 2024-05-01 23:30 UTC is already 2024-05-02 in KST
	now := time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)
	got := Day(now, loc)
	want := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Day = %v, want %v", got, want)
	}
}
