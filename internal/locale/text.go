package locale

// Text is the UI string catalog for one locale
type Text struct {
	SearchPlaceholder string
	Loading           string
	Error             string
	NoResults         string
	Released          string
	Upcoming          string
	Units             string
	Classification    string
	MVType            string
	MVMembers         string
	Length            string
	BPM               string
	Date              string
	Notes             string
	Stats             string
	Reset             string
	Multi             string
	Single            string
	HideSpoilers      string
	ChoseongSearch    string
}

var texts = map[Locale]Text{
	Korean: {
		SearchPlaceholder: "곡명 또는 작곡가로 검색 (한/일)",
		Loading:           "로딩 중...",
		Error:             "캐시삭제/ios웹앱(바로가기)면 재설치: ",
		NoResults:         "검색 결과가 없습니다.",
		Released:          "공개",
		Upcoming:          "예정",
		Units:             "유닛",
		Classification:    "분류",
		MVType:            "MV 종류",
		MVMembers:         "MV 인원",
		Length:            "길이",
		BPM:               "BPM",
		Date:              "공개일",
		Notes:             "노트 수",
		Stats:             "통계",
		Reset:             "초기화",
		Multi:             "다중 선택",
		Single:            "단일 선택",
		HideSpoilers:      "미공개곡 숨기기",
		ChoseongSearch:    "초성 검색",
	},
	Japanese: {
		SearchPlaceholder: "曲名または作曲家で検索 (日/韓)",
		Loading:           "ローディング中...",
		Error:             "キャッシュを削除するか、再インストールしてください: ",
		NoResults:         "検索結果がありません。",
		Released:          "公開",
		Upcoming:          "予定",
		Units:             "ユニット",
		Classification:    "カテゴリ",
		MVType:            "MV種類",
		MVMembers:         "MV Members",
		Length:            "時間",
		BPM:               "BPM",
		Date:              "リリース日",
		Notes:             "ノーツ数",
		Stats:             "統計グラフ",
		Reset:             "リセット",
		Multi:             "複数選択",
		Single:            "単一選択",
		HideSpoilers:      "未公開曲を隠す",
		ChoseongSearch:    "初声検索",
	},
}

// Text returns the string catalog of the table's locale
func (t Table) Text() Text {
	if tx, ok := texts[t.Locale]; ok {
		return tx
	}
	return texts[Korean]
}

// LevelSpan returns the selectable level range of a level selector
func LevelSpan(tier string) (lo, hi int, ok bool) {
	switch tier {
	case "expert":
		return 21, 31, true
	case "master":
		return 25, 37, true
	case "append":
		return 24, 37, true
	default:
		return 0, 0, false
	}
}
