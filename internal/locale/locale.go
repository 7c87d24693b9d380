// Package locale holds every locale-dependent lookup the browser needs.
// Display code and filter matching read the same tables so what is shown
// and what is matched cannot drift apart.
package locale

import (
	"strings"
)

// Locale identifies a UI language
type Locale string

const (
	Korean   Locale = "ko"
	Japanese Locale = "jp"
)

// Parse maps a stored preference value to a Locale, defaulting to Korean
func Parse(s string) Locale {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jp", "ja", "japanese":
		return Japanese
	default:
		return Korean
	}
}

// IsJapanese reports whether titles and composers use the Japanese fields
func (l Locale) IsJapanese() bool {
	return l == Japanese
}

// SupportsChoseong reports whether initial-consonant search is offered
func (l Locale) SupportsChoseong() bool {
	return l == Korean
}

// Next cycles to the other locale
func (l Locale) Next() Locale {
	if l == Japanese {
		return Korean
	}
	return Japanese
}

var unitNamesKO = map[string]string{
	"VS":  "버싱",
	"L/n": "레오니",
	"MMJ": "모모점",
	"VBS": "비배스",
	"WxS": "원더쇼",
	"N25": "니고",
	"Oth": "기타",
	"Unk": "버싱",
}

// UnitOrder is the display order of unit codes
var UnitOrder = []string{"VS", "L/n", "MMJ", "VBS", "WxS", "N25", "Oth", "Unk"}

var classNamesJP = map[string]string{
	"기존곡": "既存曲",
	"공모전": "公募展",
	"하코곡": "書き下ろし",
	"커버곡": "カバー",
}

// Classifications lists the catalog's classification codes
var Classifications = []string{"기존곡", "공모전", "하코곡", "커버곡"}

var mvTokensJP = map[string]string{
	"원곡": "原曲",
}

// MVTypes lists the selectable MV type combinations in display order
var MVTypes = []string{
	"MV X",
	"원곡",
	"2D",
	"원곡/2D",
	"2D/3D",
	"3D",
	"원곡/3D",
	"원곡/2D/3D",
}

// MVMemberBuckets lists the selectable member counts; 6 means six or more
var MVMemberBuckets = []int{1, 2, 3, 4, 5, 6}

// Table is the locale-keyed lookup consumed by the UI and the filters
type Table struct {
	Locale Locale
}

// For returns the table for a locale
func For(l Locale) Table {
	return Table{Locale: l}
}

// Unit returns the display name of a unit code. Korean names are not unique:
// "VS" and "Unk" share one.
func (t Table) Unit(code string) string {
	if t.Locale == Japanese {
		return code
	}
	if name, ok := unitNamesKO[code]; ok {
		return name
	}
	return code
}

// UnitCode maps a display name back to the first unit code using it
func (t Table) UnitCode(name string) string {
	if t.Locale == Japanese {
		return name
	}
	for _, code := range UnitOrder {
		if unitNamesKO[code] == name {
			return code
		}
	}
	return "Oth"
}

// Class returns the display name of a classification
func (t Table) Class(cls string) string {
	if t.Locale == Japanese {
		if name, ok := classNamesJP[cls]; ok {
			return name
		}
	}
	return cls
}

// MVType translates every slash-separated token of an MV type tag
func (t Table) MVType(tag string) string {
	if t.Locale != Japanese || tag == "" {
		return tag
	}
	parts := strings.Split(tag, "/")
	for i, p := range parts {
		if jp, ok := mvTokensJP[p]; ok {
			parts[i] = jp
		}
	}
	return strings.Join(parts, "/")
}

// MVTokens splits a tag into canonical (Korean) tokens regardless of the
// script it was written in.
func MVTokens(tag string) []string {
	if tag == "" {
		return nil
	}
	parts := strings.Split(tag, "/")
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		for ko, jp := range mvTokensJP {
			if p == jp {
				p = ko
			}
		}
		out = append(out, p)
	}
	return out
}

// UnitRank returns the position of a unit code in UnitOrder, or len(UnitOrder)
func UnitRank(code string) int {
	for i, c := range UnitOrder {
		if c == code {
			return i
		}
	}
	return len(UnitOrder)
}

// MVRank returns the display position of an MV type tag in either script
func MVRank(tag string) int {
	canon := strings.Join(MVTokens(tag), "/")
	for i, m := range MVTypes {
		if m == canon {
			return i
		}
	}
	return len(MVTypes)
}
