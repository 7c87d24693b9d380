package ui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/davidpaquet/sekai-chart-browser/internal/assets"
	"github.com/davidpaquet/sekai-chart-browser/internal/browse"
	"github.com/davidpaquet/sekai-chart-browser/internal/catalog"
	"github.com/davidpaquet/sekai-chart-browser/internal/clipboard"
	"github.com/davidpaquet/sekai-chart-browser/internal/debounce"
	"github.com/davidpaquet/sekai-chart-browser/internal/locale"
	"github.com/davidpaquet/sekai-chart-browser/internal/logging"
	"github.com/davidpaquet/sekai-chart-browser/internal/model"
	"github.com/davidpaquet/sekai-chart-browser/internal/phonetic"
	"github.com/davidpaquet/sekai-chart-browser/internal/prefs"
	"github.com/davidpaquet/sekai-chart-browser/internal/search"
	"github.com/davidpaquet/sekai-chart-browser/internal/stats"
)

// Mode is what the keyboard currently drives
type Mode int

const (
	ModeNormal Mode = iota // list navigation
	ModeSearch             // typing in the search box
	ModeFacets             // categorical facet picker
	ModeRanges             // numeric range editor
	ModeStats              // statistics view
)

// Prefs is the part of the preference store the browser writes to
type Prefs interface {
	Set(key, value string) error
}

// Options wires the browser's collaborators
type Options struct {
	Context     context.Context
	Version     string
	Source      catalog.Source
	Session     *browse.Session
	Indexer     *phonetic.Indexer
	Host        assets.Host
	Prefs       Prefs
	Preferences prefs.Preferences
	Clipboard   *clipboard.Manager
}

// Model is the app model
type Model struct {
	// Data
	ctx          context.Context
	session      *browse.Session
	source       catalog.Source
	indexer      *phonetic.Indexer
	host         assets.Host
	prefs        Prefs
	settings     prefs.Preferences
	clipboardMgr *clipboard.Manager
	version      string

	// UI State
	width        int
	height       int
	selected     int
	scrollOffset int
	chartCursor  int
	loading      bool
	err          error
	mode         Mode

	searchInput textinput.Model

	facetRow  int
	facetCol  int
	rangeRow  int
	sortIdx   int
	statsAxis int

	// Status
	statusMsg   string
	statusTimer time.Time
}

// NewApp creates a new app
func NewApp(opts Options) *Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Session == nil {
		opts.Session = browse.New(browse.WithLocale(opts.Preferences.Language))
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.NewManager()
	}

	table := locale.For(opts.Preferences.Language)
	searchInput := textinput.New()
	searchInput.Placeholder = table.Text().SearchPlaceholder
	searchInput.CharLimit = 100
	searchInput.Width = 30

	m := &Model{
		ctx:          opts.Context,
		session:      opts.Session,
		source:       opts.Source,
		indexer:      opts.Indexer,
		host:         opts.Host,
		prefs:        opts.Prefs,
		settings:     opts.Preferences,
		clipboardMgr: opts.Clipboard,
		version:      opts.Version,
		loading:      true,
		width:        100,
		height:       30,
		searchInput:  searchInput,
		sortIdx:      -1,
	}
	m.session.SetLocale(opts.Preferences.Language)
	m.session.Update(func(st search.State) search.State {
		return st.
			WithHideUpcoming(opts.Preferences.HideSpoilers).
			WithChoseongSearch(opts.Preferences.ChoseongSearch)
	})
	return m
}

func (m *Model) Init() tea.Cmd {
	if m.source == nil {
		return nil
	}
	return browse.LoadCmd(m.ctx, m.source)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case browse.LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		gen := m.session.LoadCatalog(msg.Songs)
		m.resetSelection()
		if msg.Report.Skipped > 0 {
			m.setStatus(fmt.Sprintf("Loaded %d songs (%d records skipped)", len(msg.Songs), msg.Report.Skipped))
		}
		if m.indexer == nil {
			return m, nil
		}
		return m, browse.AnnotateCmd(gen, msg.Songs, m.indexer)

	case browse.AnnotatedMsg:
		if m.session.ApplyAnnotations(msg.Generation, msg.Songs) {
			m.clampSelection()
		}
		return m, nil

	case debounce.FiredMsg:
		if m.session.HandleFired(msg) {
			if msg.Channel == debounce.RangeChannel {
				m.clampSelection()
			} else {
				m.resetSelection()
			}
		}
		return m, nil

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil

	case tea.KeyMsg:
		if m.err != nil || m.loading {
			switch msg.String() {
			case "ctrl+c", "q", "esc":
				return m, tea.Quit
			}
			return m, nil
		}
		switch m.mode {
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeFacets:
			return m.updateFacets(msg)
		case ModeRanges:
			return m.updateRanges(msg)
		case ModeStats:
			return m.updateStats(msg)
		default:
			return m.updateNormal(msg)
		}
	}

	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.clearSearch()
		return m, nil
	case "tab", "enter":
		m.mode = ModeNormal
		m.searchInput.Blur()
		m.session.Flush()
		m.resetSelection()
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if value := m.searchInput.Value(); value != before {
		return m, tea.Batch(cmd, m.session.SetQuery(value))
	}
	return m, cmd
}

func (m *Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	songs := m.session.Result().Songs
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "/":
		m.mode = ModeSearch
		m.searchInput.SetValue(m.session.State().Query)
		m.searchInput.Focus()
		return m, textinput.Blink

	case "esc":
		if m.session.State().Query != "" {
			m.clearSearch()
		}

	case "up", "k":
		if m.selected > 0 {
			m.selected--
			m.chartCursor = 0
			m.ensureVisible()
		}

	case "down", "j":
		if m.selected < len(songs)-1 {
			m.selected++
			m.chartCursor = 0
			m.ensureVisible()
		}

	case "pgup":
		m.selected = max(0, m.selected-m.listRows())
		m.chartCursor = 0
		m.ensureVisible()

	case "pgdown":
		m.selected = max(0, min(len(songs)-1, m.selected+m.listRows()))
		m.chartCursor = 0
		m.ensureVisible()

	case "[", "]":
		if s := m.current(); s != nil {
			n := len(m.host.Charts(s, assets.FormatFor(m.settings.UseWebP), m.settings.Mirror))
			if n > 0 {
				step := 1
				if msg.String() == "[" {
					step = n - 1
				}
				m.chartCursor = (m.chartCursor + step) % n
			}
		}

	case "enter", "c":
		return m, m.copyChart()

	case "e":
		m.cycleLevel(model.Expert)
	case "m":
		m.cycleLevel(model.Master)
	case "a":
		m.cycleLevel(model.Append)
	case "0":
		m.apply(func(st search.State) search.State { return st.WithoutLevel() })

	case "f":
		m.mode = ModeFacets
	case "n":
		m.mode = ModeRanges
	case "g":
		m.mode = ModeStats

	case "s":
		m.cycleSort()
	case "S":
		if st := m.session.State(); st.Sort.Active {
			m.apply(func(st search.State) search.State { return st.WithSort(st.Sort.Key, !st.Sort.Desc) })
		}

	case "backspace":
		st := m.session.State()
		chips := stats.Chips(st, m.session.Global(), m.session.Table())
		if len(chips) > 0 {
			last := chips[len(chips)-1]
			m.apply(func(st search.State) search.State { return last.Remove(st, m.session.Global()) })
		}

	case "R":
		m.session.Reset()
		m.sortIdx = -1
		m.syncSearchInput()
		m.resetSelection()
	case "z":
		m.session.Stash()
		m.setStatus("Filters saved")
	case "Z":
		if m.session.Restore() {
			m.syncSortIndex()
			m.syncSearchInput()
			m.resetSelection()
			m.setStatus("Filters restored")
		}

	case "h":
		m.settings.HideSpoilers = !m.settings.HideSpoilers
		m.writeBool(prefs.KeyHideSpoilers, m.settings.HideSpoilers)
		hide := m.settings.HideSpoilers
		m.apply(func(st search.State) search.State { return st.WithHideUpcoming(hide) })
	case "i":
		m.settings.ChoseongSearch = !m.settings.ChoseongSearch
		m.writeBool(prefs.KeyChoseongSearch, m.settings.ChoseongSearch)
		on := m.settings.ChoseongSearch
		m.apply(func(st search.State) search.State { return st.WithChoseongSearch(on) })
	case "L":
		m.settings.Language = m.settings.Language.Next()
		m.write(prefs.KeyLanguage, string(m.settings.Language))
		m.session.SetLocale(m.settings.Language)
		m.searchInput.Placeholder = m.session.Table().Text().SearchPlaceholder
		m.clampSelection()
	case "w":
		m.settings.UseWebP = !m.settings.UseWebP
		m.writeBool(prefs.KeyUseWebP, m.settings.UseWebP)
	case "v":
		m.settings.Mirror = !m.settings.Mirror
		m.writeBool(prefs.KeyMirror, m.settings.Mirror)
	}
	return m, nil
}

// facetValues lists the selectable canonical values of a category
func (m *Model) facetValues(c search.Category) []string {
	switch c {
	case search.CategoryUnit:
		return locale.UnitOrder
	case search.CategoryMVType:
		return locale.MVTypes
	case search.CategoryMVMembers:
		out := make([]string, len(locale.MVMemberBuckets))
		for i, n := range locale.MVMemberBuckets {
			out[i] = strconv.Itoa(n)
		}
		return out
	default:
		// classifications are whatever the catalog uses
		buckets := stats.Histogram(m.session.Songs(), stats.AxisClassification, stats.Options{Table: locale.For(locale.Korean)})
		out := make([]string, len(buckets))
		for i, b := range buckets {
			out[i] = b.Key
		}
		return out
	}
}

func (m *Model) updateFacets(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cat := search.Categories[m.facetRow]
	values := m.facetValues(cat)
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "f", "q":
		m.mode = ModeNormal
	case "up", "k", "shift+tab":
		m.facetRow = (m.facetRow + len(search.Categories) - 1) % len(search.Categories)
		m.facetCol = 0
	case "down", "j", "tab":
		m.facetRow = (m.facetRow + 1) % len(search.Categories)
		m.facetCol = 0
	case "left", "h":
		if m.facetCol > 0 {
			m.facetCol--
		}
	case "right", "l":
		if m.facetCol < len(values)-1 {
			m.facetCol++
		}
	case " ", "enter":
		if m.facetCol < len(values) {
			v := values[m.facetCol]
			m.apply(func(st search.State) search.State { return st.Toggle(cat, v) })
		}
	case "M":
		multi := !m.session.State().Selections[cat].Multi
		m.apply(func(st search.State) search.State { return st.WithMulti(cat, multi) })
	case "x":
		m.apply(func(st search.State) search.State { return st.ResetCategory(cat) })
	}
	return m, nil
}

// rangeSteps is how far one key press moves a range bound
var rangeSteps = map[model.NumericFacet]float64{
	model.FacetLength:      5,
	model.FacetBPM:         5,
	model.FacetDate:        30,
	model.FacetExpertNotes: 50,
	model.FacetMasterNotes: 50,
	model.FacetAppendNotes: 50,
}

func (m *Model) updateRanges(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := model.NumericFacets[m.rangeRow]
	r := m.session.PendingRanges().Get(f)
	step := rangeSteps[f]

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "n", "q":
		m.mode = ModeNormal
		return m, nil
	case "up", "k":
		m.rangeRow = (m.rangeRow + len(model.NumericFacets) - 1) % len(model.NumericFacets)
		return m, nil
	case "down", "j", "tab":
		m.rangeRow = (m.rangeRow + 1) % len(model.NumericFacets)
		return m, nil
	case "x":
		m.apply(func(st search.State) search.State { return st.ResetRange(f, m.session.Global()) })
		return m, nil
	case "left", "h":
		r.Min -= step
	case "right", "l":
		r.Min = min(r.Min+step, r.Max)
	case "shift+left", "H":
		r.Max = max(r.Max-step, r.Min)
	case "shift+right", "L":
		r.Max += step
	default:
		return m, nil
	}
	return m, m.session.SetRange(f, r)
}

func (m *Model) updateStats(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "g", "q":
		m.mode = ModeNormal
	case "left", "h":
		m.statsAxis = (m.statsAxis + len(stats.Axes) - 1) % len(stats.Axes)
	case "right", "l", "tab":
		m.statsAxis = (m.statsAxis + 1) % len(stats.Axes)
	}
	return m, nil
}

// cycleLevel steps a tier's level selector through its span, then off.
// Append starts with the any-level wildcard.
func (m *Model) cycleLevel(tier model.Tier) {
	lo, hi, ok := locale.LevelSpan(string(tier))
	if !ok {
		return
	}
	cur := m.session.State().Level
	m.apply(func(st search.State) search.State {
		switch {
		case cur.Tier != tier && tier == model.Append:
			return st.WithAnyAppend()
		case cur.Tier != tier || cur.Any:
			return st.WithLevel(tier, lo)
		case cur.Level < hi:
			return st.WithLevel(tier, cur.Level+1)
		default:
			return st.WithoutLevel()
		}
	})
}

func (m *Model) cycleSort() {
	m.sortIdx++
	if m.sortIdx >= len(model.NumericFacets) {
		m.sortIdx = -1
	}
	if m.sortIdx < 0 {
		m.apply(func(st search.State) search.State { return st.WithoutSort() })
		return
	}
	key := model.NumericFacets[m.sortIdx]
	m.apply(func(st search.State) search.State { return st.WithSort(key, st.Sort.Desc) })
}

func (m *Model) syncSortIndex() {
	m.sortIdx = -1
	st := m.session.State()
	if !st.Sort.Active {
		return
	}
	for i, f := range model.NumericFacets {
		if f == st.Sort.Key {
			m.sortIdx = i
		}
	}
}

// apply changes the filter state immediately
func (m *Model) apply(fn func(search.State) search.State) {
	m.session.Update(fn)
	m.clampSelection()
}

func (m *Model) current() *model.Song {
	songs := m.session.Result().Songs
	if m.selected < 0 || m.selected >= len(songs) {
		return nil
	}
	return &songs[m.selected]
}

func (m *Model) copyChart() tea.Cmd {
	s := m.current()
	if s == nil {
		return nil
	}
	links := m.host.Charts(s, assets.FormatFor(m.settings.UseWebP), m.settings.Mirror)
	if len(links) == 0 {
		return nil
	}
	link := links[min(m.chartCursor, len(links)-1)]
	status, err := m.clipboardMgr.CopyLink(link)
	if err != nil {
		logging.Warn().Err(err).Str("song", s.ID).Msg("Copy failed")
		status = fmt.Sprintf("Copy failed: %v", err)
	}
	m.setStatus(status)
	// Clear the message after 2 seconds
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m *Model) write(key, value string) {
	if m.prefs == nil {
		return
	}
	if err := m.prefs.Set(key, value); err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Failed to save preference")
		m.setStatus(fmt.Sprintf("Failed to save %s: %v", key, err))
	}
}

func (m *Model) writeBool(key string, v bool) {
	m.write(key, strconv.FormatBool(v))
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusTimer = time.Now()
}

func (m *Model) clearSearch() {
	m.mode = ModeNormal
	m.searchInput.Blur()
	m.searchInput.SetValue("")
	m.apply(func(st search.State) search.State { return st.WithQuery("") })
	m.resetSelection()
}

func (m *Model) syncSearchInput() {
	m.searchInput.SetValue(m.session.State().Query)
}

func (m *Model) resetSelection() {
	m.selected = 0
	m.scrollOffset = 0
	m.chartCursor = 0
}

func (m *Model) clampSelection() {
	n := len(m.session.Result().Songs)
	if m.selected >= n {
		m.selected = max(0, n-1)
		m.chartCursor = 0
	}
	m.ensureVisible()
}

// listRows is how many songs fit in the list pane
func (m *Model) listRows() int {
	innerHeight := m.height - 1 - 5 - 3 // status, borders/padding/margins, search bar
	return max(1, innerHeight-3)        // title, chips, blank line
}

func (m *Model) ensureVisible() {
	itemsHeight := m.listRows()

	// Adjust scroll to keep selection visible
	if m.selected < m.scrollOffset {
		m.scrollOffset = m.selected
	} else if m.selected >= m.scrollOffset+itemsHeight {
		m.scrollOffset = m.selected - itemsHeight + 1
	}

	maxScroll := max(0, len(m.session.Result().Songs)-itemsHeight)
	m.scrollOffset = max(0, min(m.scrollOffset, maxScroll))
}

// Messages
type clearStatusMsg struct{}
