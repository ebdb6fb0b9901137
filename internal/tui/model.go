package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwhite/griddle/internal/dataset"
	"github.com/mwhite/griddle/internal/history"
	"github.com/mwhite/griddle/internal/query"
	"github.com/mwhite/griddle/internal/textutil"
)

// suggestionLimit bounds how much history feeds palette suggestions.
const suggestionLimit = 100

// flashDuration is how long transient status notices stay visible.
const flashDuration = 2 * time.Second

// Options configuration for the TUI.
type Options struct {
	Version  string
	NullText string // placeholder rendered for null cells
}

// paletteState is the open command palette: a text buffer plus an optional
// selection into the fuzzy-filtered history suggestions.
type paletteState struct {
	input       textinput.Model
	selected    int // index into suggestions; -1 = none
	suggestions []string
}

// flashMsg expires a transient status notice.
type flashMsg struct {
	id uint64
}

// Model is the main TUI model following the Elm architecture. All state is
// mutated only inside Update; the interaction engine is single-threaded.
type Model struct {
	engine   query.Engine
	keys     *KeyHandler
	registry commandRegistry
	history  *history.Ring

	version  string
	nullText string

	tabs   []*Tab
	active int

	palette      *paletteState
	err          error
	schemaOpen   bool
	schemaView   Viewport
	infoOpen     bool
	tabPanelOpen bool
	panelView    Viewport

	flashText string
	flashID   uint64

	width    int
	height   int
	pageSize int

	quitting bool
}

// New creates a TUI model. The history ring is shared with the caller so
// it can be persisted after the program exits.
func New(engine query.Engine, hist *history.Ring, opts Options) Model {
	if hist == nil {
		hist = history.New(history.DefaultCapacity)
	}
	return Model{
		engine:   engine,
		keys:     defaultKeyHandler(),
		registry: newCommandRegistry(),
		history:  hist,
		version:  opts.Version,
		nullText: opts.NullText,
		active:   0,
		width:    80,
		height:   24,
		pageSize: 20,
	}
}

// OpenTab appends a new tab for a loaded table and makes it active.
func (m *Model) OpenTab(name, path string, table *dataset.Table) {
	m.tabs = append(m.tabs, newTab(name, path, table, m.pageSize))
	m.active = len(m.tabs) - 1
}

// History returns the command history ring for persistence.
func (m Model) History() *history.Ring {
	return m.history
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// context derives the current interaction mode from the model state. It is
// recomputed for every dispatch and never stored.
func (m Model) context() Context {
	switch {
	case m.err != nil:
		return ContextError
	case m.palette != nil:
		return ContextCommand
	case m.schemaOpen:
		return ContextSchema
	case m.infoOpen:
		return ContextInfo
	case m.tabPanelOpen:
		return ContextTabPanel
	case len(m.tabs) == 0:
		return ContextEmpty
	}
	tab := m.tabs[m.active]
	switch {
	case tab.sheet != nil:
		return ContextSheet
	case tab.search != nil:
		return ContextSearch
	default:
		return ContextTable
	}
}

func (m *Model) activeTab() *Tab {
	if len(m.tabs) == 0 {
		return nil
	}
	return m.tabs[m.active]
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case flashMsg:
		if msg.id == m.flashID {
			m.flashText = ""
		}
		return m, nil

	case tea.KeyMsg:
		act := m.keys.Resolve(m.context(), msg)
		return m.apply(act, msg)
	}
	return m, nil
}

// setSize records the terminal dimensions and re-derives every page size so
// page movement adapts to the resize.
func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.pageSize = height - chromeLines
	if m.pageSize < 1 {
		m.pageSize = 1
	}
	for _, tab := range m.tabs {
		tab.view.SetPageSize(m.pageSize)
		if tab.search != nil {
			tab.search.snapshotView.SetPageSize(m.pageSize)
		}
	}
	m.schemaView.SetPageSize(m.pageSize)
	m.panelView.SetPageSize(m.pageSize)
}

// navView returns the viewport that row navigation targets in the current
// context.
func (m *Model) navView() *Viewport {
	switch m.context() {
	case ContextSchema:
		return &m.schemaView
	case ContextTabPanel:
		return &m.panelView
	}
	if tab := m.activeTab(); tab != nil {
		return &tab.view
	}
	return nil
}

// apply executes one resolved Action. The originating key message is passed
// along so text-input actions can forward it to the active buffer.
func (m Model) apply(act Action, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch act.Kind {
	case ActNone:
		return m, nil

	case ActQuit:
		m.quitting = true
		return m, tea.Quit

	// Row navigation.
	case ActGoto:
		if v := m.navView(); v != nil {
			v.Select(act.Index)
		}
	case ActGotoFirst:
		if v := m.navView(); v != nil {
			v.SelectFirst()
		}
	case ActGotoLast:
		if v := m.navView(); v != nil {
			v.SelectLast()
		}
	case ActGotoRandom:
		if v := m.navView(); v != nil {
			v.SelectRandom()
		}
	case ActUp:
		if v := m.navView(); v != nil {
			v.SelectRelative(-act.Count)
		}
	case ActDown:
		if v := m.navView(); v != nil {
			v.SelectRelative(act.Count)
		}
	case ActUpHalfPage:
		if v := m.navView(); v != nil {
			v.SelectRelative(-v.PageSize() / 2)
		}
	case ActDownHalfPage:
		if v := m.navView(); v != nil {
			v.SelectRelative(v.PageSize() / 2)
		}
	case ActUpFullPage:
		if v := m.navView(); v != nil {
			v.SelectRelative(-v.PageSize())
		}
	case ActDownFullPage:
		if v := m.navView(); v != nil {
			v.SelectRelative(v.PageSize())
		}

	// Horizontal column scrolling.
	case ActScrollLeft:
		if tab := m.activeTab(); tab != nil {
			tab.scrollColumns(-1)
		}
	case ActScrollRight:
		if tab := m.activeTab(); tab != nil {
			tab.scrollColumns(1)
		}
	case ActScrollStart:
		if tab := m.activeTab(); tab != nil {
			tab.colOffset = 0
		}
	case ActScrollEnd:
		if tab := m.activeTab(); tab != nil {
			tab.scrollColumns(tab.table.Width())
		}

	// Detail sheet.
	case ActSheetShow:
		m.openSheet()
	case ActSheetDismiss:
		if tab := m.activeTab(); tab != nil {
			tab.sheet = nil
		}
	case ActSheetToggle:
		if tab := m.activeTab(); tab != nil {
			if tab.sheet != nil {
				tab.sheet = nil
			} else {
				m.openSheet()
			}
		}
	case ActSheetScrollUp:
		if tab := m.activeTab(); tab != nil && tab.sheet != nil {
			tab.sheet.scroll.Up()
		}
	case ActSheetScrollDown:
		if tab := m.activeTab(); tab != nil && tab.sheet != nil {
			tab.sheet.scroll.Down()
		}

	// Modals.
	case ActSchemaShow:
		if tab := m.activeTab(); tab != nil {
			m.schemaOpen = true
			m.schemaView.Reset(len(tab.stats))
			m.schemaView.SetPageSize(m.pageSize)
		}
	case ActSchemaDismiss:
		m.schemaOpen = false
	case ActInfoShow:
		if m.activeTab() != nil {
			m.infoOpen = true
		}
	case ActInfoDismiss:
		m.infoOpen = false
	case ActTabPanelShow:
		m.tabPanelOpen = true
		m.panelView.Reset(len(m.tabs))
		m.panelView.SetPageSize(m.pageSize)
		m.panelView.Select(m.active)
	case ActTabPanelDismiss:
		m.tabPanelOpen = false
	case ActToggleExpand:
		if tab := m.activeTab(); tab != nil {
			tab.expanded = !tab.expanded
		}

	// Command palette.
	case ActPaletteShow:
		m.openPalette(act.Text)
	case ActPaletteInput:
		return m.paletteInput(msg)
	case ActPaletteCommit:
		return m.commitPalette(msg)
	case ActPaletteDismiss:
		if m.palette != nil {
			if m.palette.selected >= 0 {
				m.palette.selected = -1
			} else {
				m.palette = nil
			}
		}
	case ActPaletteSelectPrev:
		if p := m.palette; p != nil && len(p.suggestions) > 0 {
			if p.selected < len(p.suggestions)-1 {
				p.selected++
			}
		}
	case ActPaletteSelectNext:
		if p := m.palette; p != nil && p.selected >= 0 {
			p.selected--
		}

	// Incremental search.
	case ActSearchShow:
		m.openSearch()
	case ActSearchInput:
		return m.searchInput(msg)
	case ActSearchCommit:
		return m.commitSearch()
	case ActSearchRollback:
		m.rollbackSearch()

	// Dataset transforms.
	case ActQuery:
		m.runTransform(act.Text)
	case ActSelectColumns:
		m.runTransform(fmt.Sprintf("SELECT %s FROM %s", act.Text, query.CurrentTableName))
	case ActOrderBy:
		m.runTransform(fmt.Sprintf("SELECT * FROM %s ORDER BY %s", query.CurrentTableName, act.Text))
	case ActFilter:
		m.runTransform(fmt.Sprintf("SELECT * FROM %s WHERE %s", query.CurrentTableName, act.Text))
	case ActReset:
		return m.resetTab()

	// Tabs.
	case ActTabNext:
		if len(m.tabs) > 1 {
			m.active = (m.active + 1) % len(m.tabs)
		}
	case ActTabPrev:
		if len(m.tabs) > 1 {
			m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)
		}
	case ActTabSelect:
		m.selectTab(act.Index)
	case ActTabRemoveOrQuit:
		return m.removeTabOrQuit()

	// Pending error.
	case ActErrorDismiss:
		m.err = nil
	case ActErrorToPalette:
		m.err = nil
		m.openPalette("")
	}
	return m, nil
}

func (m *Model) openSheet() {
	tab := m.activeTab()
	if tab == nil || tab.table.Height() == 0 {
		return
	}
	tab.sheet = &sheetState{row: tab.view.Selected()}
}

func (m *Model) selectTab(i int) {
	if i == -1 {
		// From the tab panel: jump to the highlighted row.
		i = m.panelView.Selected()
		m.tabPanelOpen = false
	}
	if i >= 0 && i < len(m.tabs) {
		m.active = i
	}
}

func (m Model) removeTabOrQuit() (tea.Model, tea.Cmd) {
	if len(m.tabs) <= 1 {
		m.quitting = true
		return m, tea.Quit
	}
	m.tabs = append(m.tabs[:m.active:m.active], m.tabs[m.active+1:]...)
	if m.active >= len(m.tabs) {
		m.active = len(m.tabs) - 1
	}
	return m, nil
}

// runTransform registers the active table under the engine's fixed name and
// replaces it with the query result. Engine failures surface as the Error
// context; they never abort the session.
func (m *Model) runTransform(sql string) {
	tab := m.activeTab()
	if tab == nil {
		m.err = fmt.Errorf("no open dataset")
		return
	}
	ctx := context.Background()
	if err := m.engine.Register(ctx, query.CurrentTableName, tab.table); err != nil {
		m.err = err
		return
	}
	result, err := m.engine.Execute(ctx, sql)
	if err != nil {
		m.err = err
		return
	}
	tab.replaceTable(result)
	tab.view.SetPageSize(m.pageSize)
}

func (m Model) resetTab() (tea.Model, tea.Cmd) {
	tab := m.activeTab()
	if tab == nil {
		m.err = fmt.Errorf("no open dataset")
		return m, nil
	}
	if tab.original == nil {
		m.err = fmt.Errorf("no original dataset to reset to")
		return m, nil
	}
	tab.search = nil
	tab.replaceTable(tab.original)
	tab.view.SetPageSize(m.pageSize)
	return m.showFlash("reset to original dataset")
}

// Command palette.

func (m *Model) openPalette(prefill string) {
	ti := textinput.New()
	ti.Prompt = ":"
	ti.CharLimit = 256
	ti.Width = m.width - 4
	ti.SetValue(prefill)
	ti.CursorEnd()
	ti.Focus()
	m.palette = &paletteState{input: ti, selected: -1}
	m.refreshSuggestions()
}

// refreshSuggestions re-filters recent history by fuzzy subsequence match
// against the typed text. Any edit drops the active selection.
func (m *Model) refreshSuggestions() {
	p := m.palette
	if p == nil {
		return
	}
	typed := p.input.Value()
	var matched []string
	for _, entry := range m.history.Recent(suggestionLimit) {
		if textutil.HasSubsequence(entry, typed) {
			matched = append(matched, entry)
		}
	}
	p.suggestions = matched
	p.selected = -1
}

func (m Model) paletteInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.palette
	if p == nil {
		return m, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	m.refreshSuggestions()
	return m, cmd
}

// commitPalette runs the typed command, or inserts the highlighted
// suggestion into the buffer when one is selected. History records only
// text that parsed; a failed parse surfaces the error and leaves history
// untouched.
func (m Model) commitPalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.palette
	if p == nil {
		return m, nil
	}
	if p.selected >= 0 && p.selected < len(p.suggestions) {
		p.input.SetValue(p.suggestions[p.selected])
		p.input.CursorEnd()
		p.selected = -1
		return m, nil
	}

	text := p.input.Value()
	m.palette = nil

	act, err := m.registry.Dispatch(text)
	if err != nil {
		m.err = err
		return m, nil
	}
	if act.Kind != ActNone {
		m.history.Push(text)
	}
	return m.apply(act, msg)
}

// Incremental search.

func (m *Model) openSearch() {
	tab := m.activeTab()
	if tab == nil || tab.search != nil {
		return
	}
	ti := textinput.New()
	ti.Prompt = "/"
	ti.CharLimit = 256
	ti.Width = m.width - 4
	ti.Focus()
	tab.search = &searchState{
		input:        ti,
		snapshot:     tab.table,
		snapshotView: tab.view,
	}
}

// searchInput forwards the key to the search buffer and re-filters the
// snapshot table: a row stays when any cell fuzzy-matches the query.
func (m Model) searchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tab := m.activeTab()
	if tab == nil || tab.search == nil {
		return m, nil
	}
	s := tab.search
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	q := s.input.Value()
	if q == "" {
		tab.table = s.snapshot
	} else {
		tab.table = s.snapshot.FilterRows(func(row []string) bool {
			return textutil.MatchesAny(row, q)
		})
	}
	tab.view.Reset(tab.table.Height())
	tab.view.SetPageSize(m.pageSize)
	return m, cmd
}

// commitSearch keeps the filtered table and drops the snapshot.
func (m Model) commitSearch() (tea.Model, tea.Cmd) {
	tab := m.activeTab()
	if tab == nil || tab.search == nil {
		return m, nil
	}
	kept := tab.table
	total := tab.search.snapshot.Height()
	tab.search = nil
	tab.replaceTable(kept)
	tab.view.SetPageSize(m.pageSize)
	return m.showFlash(fmt.Sprintf("%d of %d rows match", kept.Height(), total))
}

// rollbackSearch restores the pre-search table and viewport without side
// effects on history or the engine.
func (m *Model) rollbackSearch() {
	tab := m.activeTab()
	if tab == nil || tab.search == nil {
		return
	}
	tab.table = tab.search.snapshot
	tab.view = tab.search.snapshotView
	tab.search = nil
}

// showFlash displays a transient status notice that a later tick clears.
func (m Model) showFlash(text string) (tea.Model, tea.Cmd) {
	m.flashText = text
	m.flashID++
	id := m.flashID
	return m, tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashMsg{id: id}
	})
}
