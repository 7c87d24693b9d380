package phonetic

import (
	"testing"

	"github.com/davidpaquet/sekai-chart-browser/internal/model"
)

func TestChoseong(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"가수나라", "ㄱㅅㄴㄹ"},
		{"가수 나라", "ㄱㅅㄴㄹ"},
		{"띄어 쓰기", "ㄸㅇㅆㄱ"},
		{"ㄱㄴ", "ㄱㄴ"},
		{"Tell Your World", "tellyourworld"},
		{"세카이 2", "ㅅㅋㅇ2"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Choseong(tt.in); got != tt.want {
				t.Errorf("Choseong(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  Tell  Your\tWorld "); got != "tellyourworld" {
		t.Errorf("Normalize = %q", got)
	}
}

func TestKana(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"セカイ", "せかい"},
		{"ｾｶｲ", "せかい"},
		{"ガ", "が"},
		{"sekai", "せかい"},
		{"kitto", "きっと"},
		{"konnichiha", "こんにちは"},
		{"shinka", "しんか"},
		{"kanji", "かんじ"},
		{"nyan", "にゃん"},
		{"sek", "せk"},
		{"ハロー", "はろー"},
		{"世界seka", "世界せか"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ToHiragana(tt.in); got != tt.want {
				t.Errorf("ToHiragana(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	if got := KatakanaToHiragana("Tell Your World"); got != "Tell Your World" {
		t.Errorf("Latin must not be read as romaji on catalog fields, got %q", got)
	}
}

type stubReader map[string]string

func (s stubReader) Reading(text string) string { return s[text] }

func TestIndex(t *testing.T) {
	song := model.Song{
		ID:            "1",
		TitleKO:       "세카이 는 아직",
		TitleJP:       "セカイ は まだ 始まってすらいない",
		ComposerJP:    "ピノキオピー",
		Pronunciation: "Sekai wa mada",
	}

	ix := NewIndexer(WithReader(stubReader{
		"セカイ は まだ 始まってすらいない": "セカイ ハ マダ ハジマッテスラ イナイ",
	}))
	a := ix.Index(&song)

	if a.Choseong != "ㅅㅋㅇㄴㅇㅈ" {
		t.Errorf("Choseong = %q", a.Choseong)
	}
	if a.TitleKana != "せかいはまだ始まってすらいない" {
		t.Errorf("TitleKana = %q", a.TitleKana)
	}
	if a.TitleReading != "せかいはまだはじまってすらいない" {
		t.Errorf("TitleReading = %q", a.TitleReading)
	}
	if a.ComposerKana != "ぴのきおぴー" {
		t.Errorf("ComposerKana = %q", a.ComposerKana)
	}
	if a.ComposerReading != "" {
		t.Error("composer without kanji needs no reading")
	}
	if a.PronunciationKana != "せかいわまだ" {
		t.Errorf("PronunciationKana = %q", a.PronunciationKana)
	}

	// pure: same input, same output
	if again := ix.Index(&song); again != a {
		t.Error("Index must be deterministic")
	}
}

func TestIndexEmptySong(t *testing.T) {
	a := NewIndexer().Index(&model.Song{ID: "x"})
	if a != (model.Annotation{}) {
		t.Errorf("empty song should give empty annotation, got %+v", a)
	}
}

func TestAnnotateCopies(t *testing.T) {
	songs := []model.Song{{ID: "1", TitleKO: "가나"}, {ID: "2"}}
	out := NewIndexer().Annotate(songs)
	if songs[0].Annotation != nil {
		t.Error("Annotate must not modify its input")
	}
	if out[0].Annotation == nil || out[0].Annotation.Choseong != "ㄱㄴ" {
		t.Errorf("annotation missing: %+v", out[0].Annotation)
	}
	if out[1].Annotation == nil {
		t.Error("every song gets an annotation")
	}
}
