package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/davidpaquet/sekai-chart-browser/internal/assets"
	"github.com/davidpaquet/sekai-chart-browser/internal/locale"
	"github.com/davidpaquet/sekai-chart-browser/internal/model"
	"github.com/davidpaquet/sekai-chart-browser/internal/search"
	"github.com/davidpaquet/sekai-chart-browser/internal/stats"
)

func (m *Model) View() string {
	text := m.session.Table().Text()
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, text.Loading)
	}

	if m.err != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			errorStyle.Render(fmt.Sprintf("%s%v\n\nPress q to quit", text.Error, m.err)))
	}

	if m.mode == ModeStats {
		return lipgloss.JoinVertical(lipgloss.Left, m.renderStats(m.width, m.height-1), m.renderStatusBar())
	}

	var panel string
	switch m.mode {
	case ModeFacets:
		panel = m.renderFacetPanel()
	case ModeRanges:
		panel = m.renderRangePanel()
	}

	// Reserve space for status bar, search bar and the open panel
	reservedHeight := 1 + 3 + lipgloss.Height(panel)
	if panel == "" {
		reservedHeight--
	}
	availableHeight := m.height - reservedHeight

	leftWidth := 48
	if m.width < 96 {
		leftWidth = m.width / 2
	}
	rightWidth := m.width - leftWidth - 1

	leftPane := m.renderSongList(leftWidth, availableHeight)
	rightPane := m.renderDetails(rightWidth, availableHeight)
	main := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	components := []string{main, m.renderSearchBar()}
	if panel != "" {
		components = append(components, panel)
	}
	components = append(components, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, components...)
}

func (m *Model) renderSongList(width, height int) string {
	// Account for border, padding, and margins
	innerHeight := height - 5
	innerWidth := width - 4

	res := m.session.Result()
	st := m.session.State()
	table := m.session.Table()
	text := table.Text()
	japanese := m.session.Locale().IsJapanese()

	lines := []string{}
	title := fmt.Sprintf("Songs (%d)", len(res.Songs))
	counts := fmt.Sprintf("%s %d · %s %d", text.Released, res.Counts.Released, text.Upcoming, res.Counts.Upcoming)
	lines = append(lines, titleStyle.Render(title)+"  "+mutedTextStyle.Render(counts))
	lines = append(lines, m.renderChips(innerWidth))
	lines = append(lines, "")

	itemsHeight := max(1, innerHeight-3)

	if len(res.Songs) == 0 {
		lines = append(lines, mutedTextStyle.Render(text.NoResults))
	}

	visibleStart := m.scrollOffset
	visibleEnd := min(m.scrollOffset+itemsHeight, len(res.Songs))
	today := m.session.Today()

	for i := visibleStart; i < visibleEnd; i++ {
		s := &res.Songs[i]

		levels := levelBadges(s)
		name := truncate(s.Title(japanese), innerWidth-lipgloss.Width(levels)-3)
		if st.Query != "" && i != m.selected {
			name = search.Highlight(name, st.Query, highlight)
		}
		if search.Upcoming(s, today) {
			name = upcomingStyle.Render("● ") + name
		}

		gap := max(1, innerWidth-2-lipgloss.Width(name)-lipgloss.Width(levels))
		line := name + strings.Repeat(" ", gap) + levels

		if i == m.selected {
			line = selectedItemStyle.Render(line)
		} else {
			line = songItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	for len(lines) < innerHeight {
		lines = append(lines, "")
	}
	if len(lines) > innerHeight && innerHeight > 0 {
		lines = lines[:innerHeight]
	}

	content := strings.Join(lines, "\n")
	return songListStyle.
		Width(width).
		Height(height).
		Render(content)
}

func (m *Model) renderChips(width int) string {
	chips := stats.Chips(m.session.State(), m.session.Global(), m.session.Table())
	st := m.session.State()
	var parts []string
	if st.Sort.Active {
		arrow := "↑"
		if st.Sort.Desc {
			arrow = "↓"
		}
		parts = append(parts, infoStyle.Render("sort:"+st.Sort.Key.String()+arrow))
	}
	for _, c := range chips {
		parts = append(parts, chipStyle.Render(c.Label))
	}
	if m.session.Result().Mode == search.MatchChoseong {
		parts = append(parts, infoStyle.Render(m.session.Table().Text().ChoseongSearch+" "+m.session.Result().Signature))
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > width {
		return mutedTextStyle.Render(fmt.Sprintf("%d filters active", len(chips)))
	}
	return line
}

// levelBadges renders the expert, master and append levels of a song
func levelBadges(s *model.Song) string {
	var parts []string
	for _, t := range []model.Tier{model.Expert, model.Master, model.Append} {
		if lv, ok := s.Level(t); ok {
			parts = append(parts, tierStyle(t).Render(strconv.Itoa(lv)))
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderDetails(width, height int) string {
	innerHeight := height - 5
	innerWidth := width - 4

	if innerHeight < 1 || innerWidth < 1 {
		return detailsStyle.Width(width).Height(height).Render("")
	}

	lines := []string{}
	s := m.current()
	if s == nil {
		for len(lines) < innerHeight {
			lines = append(lines, "")
		}
		return detailsStyle.Width(width).Height(height).Render(strings.Join(lines, "\n"))
	}

	table := m.session.Table()
	text := table.Text()
	japanese := m.session.Locale().IsJapanese()
	query := m.session.State().Query

	lines = append(lines, titleStyle.Render(search.Highlight(s.Title(japanese), query, highlight)))
	if sub := s.Subtitle(japanese); sub != "" {
		lines = append(lines, mutedTextStyle.Render(sub))
	}
	if c := s.Composer(japanese); c != "" {
		lines = append(lines, search.Highlight(c, query, highlight))
	}
	lines = append(lines, "")

	field := func(label, value string) {
		if value == "" {
			return
		}
		lines = append(lines, fmt.Sprintf("%-10s %s", label+":", value))
	}
	field(text.Units, table.Unit(s.UnitCode))
	field(text.Classification, table.Class(s.Classification))
	field(text.MVType, table.MVType(s.MVType))
	if s.MVMembers != nil {
		field(text.MVMembers, strconv.Itoa(*s.MVMembers))
	}
	field(text.BPM, s.BPMText)
	field(text.Length, s.LengthText)
	if s.ReleaseDate != nil {
		date := s.ReleaseDate.Format("2006-01-02")
		if search.Upcoming(s, m.session.Today()) {
			date += " " + upcomingStyle.Render(text.Upcoming)
		}
		field(text.Date, date)
	}
	if s.AppendReleaseDate != nil {
		field("APD", s.AppendReleaseDate.Format("2006-01-02"))
	}

	var notes []string
	for _, t := range model.NoteTiers {
		if n, ok := s.NoteCount(t); ok {
			notes = append(notes, fmt.Sprintf("%s %d", t.ShortName(), n))
		}
	}
	field(text.Notes, strings.Join(notes, "  "))
	lines = append(lines, "")

	format := assets.FormatFor(m.settings.UseWebP)
	lines = append(lines, mutedTextStyle.Render(truncate(m.host.Cover(s), innerWidth)))
	lines = append(lines, "")

	links := m.host.Charts(s, format, m.settings.Mirror)
	for i, l := range links {
		marker := "  "
		if i == m.chartCursor {
			marker = "> "
		}
		label := tierStyle(l.Tier).Render(fmt.Sprintf("%-4s %2d", l.Tier.ShortName(), l.Level))
		url := truncate(l.URL, innerWidth-lipgloss.Width(label)-4)
		if i == m.chartCursor {
			url = infoStyle.Render(url)
		} else {
			url = mutedTextStyle.Render(url)
		}
		lines = append(lines, marker+label+" "+url)
	}

	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}
	for len(lines) < innerHeight {
		lines = append(lines, "")
	}

	content := strings.Join(lines, "\n")
	return detailsStyle.Width(width).Height(height).Render(content)
}

func (m *Model) renderSearchBar() string {
	var borderColor lipgloss.Color
	if m.mode == ModeSearch {
		borderColor = primaryColor
	} else {
		borderColor = lipgloss.Color("#4B5563")
	}

	searchStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(m.width - 2)

	var prompt string
	if m.mode == ModeSearch {
		prompt = "Search: " + m.searchInput.View()
	} else {
		prompt = "Search: " + m.session.State().Query
		if m.session.State().Query == "" {
			prompt += mutedTextStyle.Render(m.searchInput.Placeholder)
		}
	}
	if m.session.Pending() {
		prompt += mutedTextStyle.Render(" …")
	}
	return searchStyle.Render(prompt)
}

func (m *Model) renderFacetPanel() string {
	st := m.session.State()
	table := m.session.Table()
	text := table.Text()

	labels := map[search.Category]string{
		search.CategoryClassification: text.Classification,
		search.CategoryUnit:           text.Units,
		search.CategoryMVType:         text.MVType,
		search.CategoryMVMembers:      text.MVMembers,
	}

	lines := []string{}
	for row, cat := range search.Categories {
		sel := st.Selections[cat]
		mode := text.Single
		if sel.Multi {
			mode = text.Multi
		}
		head := fmt.Sprintf("%-10s %-6s", labels[cat], mode)
		if row == m.facetRow {
			head = titleStyle.Render(head)
		} else {
			head = mutedTextStyle.Render(head)
		}

		var values []string
		for col, v := range m.facetValues(cat) {
			label := facetLabel(table, cat, v)
			style := lipgloss.NewStyle()
			if sel.Has(v) {
				style = style.Foreground(primaryColor).Bold(true)
			}
			if row == m.facetRow && col == m.facetCol {
				style = style.Reverse(true)
			}
			values = append(values, style.Render(label))
		}
		lines = append(lines, head+" "+strings.Join(values, " "))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(mutedColor).
		Padding(0, 1).
		Width(m.width - 2).
		Render(strings.Join(lines, "\n"))
}

func facetLabel(table locale.Table, cat search.Category, v string) string {
	switch cat {
	case search.CategoryUnit:
		return table.Unit(v)
	case search.CategoryClassification:
		return table.Class(v)
	case search.CategoryMVType:
		return table.MVType(v)
	case search.CategoryMVMembers:
		if v == strconv.Itoa(search.MVMembersOrMore) {
			return v + "+"
		}
	}
	return v
}

func (m *Model) renderRangePanel() string {
	text := m.session.Table().Text()
	global := m.session.Global()
	pending := m.session.PendingRanges()

	names := map[model.NumericFacet]string{
		model.FacetLength:      text.Length,
		model.FacetBPM:         text.BPM,
		model.FacetDate:        text.Date,
		model.FacetExpertNotes: text.Notes + " EX",
		model.FacetMasterNotes: text.Notes + " MAS",
		model.FacetAppendNotes: text.Notes + " APD",
	}

	lines := []string{}
	for row, f := range model.NumericFacets {
		r, g := pending.Get(f), global.Get(f)
		name := fmt.Sprintf("%-14s", names[f])
		if row == m.rangeRow {
			name = titleStyle.Render(name)
		}
		value := formatBound(f, r.Min) + " ~ " + formatBound(f, r.Max)
		if r != g {
			value = infoStyle.Render(value)
		}
		full := mutedTextStyle.Render("(" + formatBound(f, g.Min) + " ~ " + formatBound(f, g.Max) + ")")
		lines = append(lines, name+" "+value+"  "+full)
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(mutedColor).
		Padding(0, 1).
		Width(m.width - 2).
		Render(strings.Join(lines, "\n"))
}

func formatBound(f model.NumericFacet, v float64) string {
	switch f {
	case model.FacetLength:
		return stats.FormatSeconds(int(v))
	case model.FacetDate:
		return model.DateOf(v).Format("2006-01-02")
	default:
		return strconv.Itoa(int(math.Round(v)))
	}
}

func (m *Model) renderStats(width, height int) string {
	songs := m.session.Result().Songs
	axis := stats.Axes[m.statsAxis]
	table := m.session.Table()
	buckets := stats.Histogram(songs, axis, stats.Options{Table: table})
	peak := stats.Max(buckets)

	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s: %s", table.Text().Stats, axis)) +
			mutedTextStyle.Render(fmt.Sprintf("  (%d songs)", len(songs))),
		"",
	}

	labelWidth := 0
	for _, b := range buckets {
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
	}
	barWidth := max(1, width-labelWidth-12)

	for _, b := range buckets {
		if len(lines) >= height-4 {
			lines = append(lines, mutedTextStyle.Render("..."))
			break
		}
		label := b.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(b.Label))
		lines = append(lines, label+" "+renderBar(b, peak, barWidth)+" "+strconv.Itoa(b.Total))
	}

	if months := stats.Timeline(songs); len(months) > 0 {
		lines = append(lines, "", mutedTextStyle.Render(months[0].Label()+" ~ "+months[len(months)-1].Label()))
		lines = append(lines, sparkline(months, width-4))
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

// renderBar draws one histogram bar, split by tier where a breakdown exists
func renderBar(b stats.Bucket, peak, width int) string {
	if peak == 0 {
		return ""
	}
	total := int(math.Round(float64(b.Total) / float64(peak) * float64(width)))
	if len(b.Breakdown) == 0 {
		return barStyle.Render(strings.Repeat("█", total))
	}
	var out strings.Builder
	used := 0
	for _, t := range model.Tiers {
		n := b.Breakdown[t]
		if n == 0 {
			continue
		}
		w := int(math.Round(float64(n) / float64(peak) * float64(width)))
		w = min(w, total-used)
		out.WriteString(tierStyle(t).Render(strings.Repeat("█", w)))
		used += w
	}
	return out.String()
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline compresses the release timeline into one row
func sparkline(months []stats.Month, width int) string {
	if width <= 0 {
		return ""
	}
	per := max(1, (len(months)+width-1)/width)
	var sums []int
	for i := 0; i < len(months); i += per {
		total := 0
		for _, mo := range months[i:min(i+per, len(months))] {
			total += mo.Total
		}
		sums = append(sums, total)
	}
	peak := 0
	for _, s := range sums {
		peak = max(peak, s)
	}
	var b strings.Builder
	for _, s := range sums {
		if peak == 0 || s == 0 {
			b.WriteRune(' ')
			continue
		}
		idx := (s*len(sparkRunes) - 1) / peak
		b.WriteRune(sparkRunes[min(idx, len(sparkRunes)-1)])
	}
	return barStyle.Render(b.String())
}

func (m *Model) renderStatusBar() string {
	var leftText string

	if m.statusMsg != "" && time.Since(m.statusTimer) < 3*time.Second {
		leftText = m.statusMsg
	} else {
		switch m.mode {
		case ModeSearch:
			leftText = "[Tab/Enter] Apply  [Esc] Clear  Type to search..."
		case ModeFacets:
			leftText = "[↑↓] Facet  [←→] Value  [Space] Toggle  [M] Multi  [x] Reset  [Esc] Back"
		case ModeRanges:
			leftText = "[↑↓] Facet  [←→] Min  [⇧←→] Max  [x] Reset  [Esc] Back"
		case ModeStats:
			leftText = "[←→] Axis  [Esc] Back"
		default:
			leftText = "[/] Search  [e/m/a] Level  [f] Facets  [n] Ranges  [s/S] Sort  [g] Stats  [Enter] Copy  [R] Reset  [L] 한/日  [q] Quit"
		}
	}

	leftStyle := keyHelpStyle.Width(max(0, m.width-lipgloss.Width(m.version)-2))
	rightStyle := keyHelpStyle.Align(lipgloss.Right)

	content := lipgloss.JoinHorizontal(lipgloss.Bottom, leftStyle.Render(leftText), rightStyle.Render(m.version))
	return statusBarStyle.Width(m.width).Render(content)
}

// truncate cuts s to at most width display cells
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > width-1 {
			break
		}
		b.WriteRune(r)
		used += w
	}
	return strings.TrimRight(b.String(), " ") + "…"
}
