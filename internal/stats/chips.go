package stats

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/davidpaquet/sekai-chart-browser/internal/locale"
	"github.com/davidpaquet/sekai-chart-browser/internal/model"
	"github.com/davidpaquet/sekai-chart-browser/internal/search"
)

// ChipKind tells what removing a chip resets
type ChipKind int

const (
	ChipValue ChipKind = iota
	ChipCategory
	ChipRange
	ChipLevel
)

// Chip is one active restriction shown above the charts
type Chip struct {
	Label    string
	Kind     ChipKind
	Category search.Category
	Value    string
	Facet    model.NumericFacet
}

// Remove returns st without the restriction this chip stands for
func (c Chip) Remove(st search.State, global model.Ranges) search.State {
	switch c.Kind {
	case ChipValue:
		return st.Toggle(c.Category, c.Value)
	case ChipCategory:
		return st.ResetCategory(c.Category)
	case ChipRange:
		return st.ResetRange(c.Facet, global)
	case ChipLevel:
		return st.WithoutLevel()
	}
	return st
}

// Chips lists the active restrictions of st in display order
func Chips(st search.State, global model.Ranges, table locale.Table) []Chip {
	var chips []Chip

	if st.Level.Active() {
		lbl := st.Level.Tier.ShortName() + " "
		if st.Level.Any {
			lbl += "All"
		} else {
			lbl += strconv.Itoa(st.Level.Level)
		}
		chips = append(chips, Chip{Label: lbl, Kind: ChipLevel})
	}

	values := []struct {
		cat       search.Category
		translate func(string) string
	}{
		{search.CategoryUnit, table.Unit},
		{search.CategoryClassification, table.Class},
		{search.CategoryMVType, table.MVType},
	}
	for _, v := range values {
		for _, val := range st.Selections[v.cat].Values {
			chips = append(chips, Chip{Label: v.translate(val), Kind: ChipValue, Category: v.cat, Value: val})
		}
	}

	for _, f := range model.NumericFacets {
		r, g := st.Ranges.Get(f), global.Get(f)
		if r.Min <= g.Min && r.Max >= g.Max {
			continue
		}
		chips = append(chips, Chip{Label: rangeLabel(f, r), Kind: ChipRange, Facet: f})
	}

	if members := st.Selections[search.CategoryMVMembers]; members.Active() {
		vals := slices.Clone(members.Values)
		slices.Sort(vals)
		suffix := "인"
		if table.Locale.IsJapanese() {
			suffix = "人"
		}
		chips = append(chips, Chip{
			Label:    "MV " + strings.Join(vals, ",") + suffix,
			Kind:     ChipCategory,
			Category: search.CategoryMVMembers,
		})
	}
	return chips
}

func rangeLabel(f model.NumericFacet, r model.Range) string {
	switch f {
	case model.FacetLength:
		return FormatSeconds(int(r.Min)) + " ~ " + FormatSeconds(int(r.Max))
	case model.FacetBPM:
		return fmt.Sprintf("BPM %d ~ %d", int(math.Round(r.Min)), int(math.Round(r.Max)))
	case model.FacetDate:
		return model.DateOf(r.Min).Format("2006.01") + " ~ " + model.DateOf(r.Max).Format("2006.01")
	case model.FacetExpertNotes:
		return fmt.Sprintf("EX %d~%d", int(r.Min), int(r.Max))
	case model.FacetMasterNotes:
		return fmt.Sprintf("MA %d~%d", int(r.Min), int(r.Max))
	case model.FacetAppendNotes:
		return fmt.Sprintf("AP %d~%d", int(r.Min), int(r.Max))
	}
	return ""
}
