package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/mwhite/griddle/internal/dataset"
)

// sheetState is the per-row detail view. It exists only while the sheet is
// open; entering the sheet for a new row always starts a fresh scroll.
type sheetState struct {
	row    int
	scroll Scroll
}

// searchState holds an in-progress incremental search. The snapshot
// preserves the pre-search table and viewport so esc can roll back without
// touching history or the engine.
type searchState struct {
	input        textinput.Model
	snapshot     *dataset.Table
	snapshotView Viewport
}

// Tab is one open dataset with its own navigation state.
type Tab struct {
	name     string
	path     string
	table    *dataset.Table
	original *dataset.Table // for the reset command
	stats    []dataset.ColumnStat

	view      Viewport
	colOffset int // first visible column
	expanded  bool

	sheet  *sheetState
	search *searchState
}

func newTab(name, path string, table *dataset.Table, pageSize int) *Tab {
	return &Tab{
		name:     name,
		path:     path,
		table:    table,
		original: table,
		stats:    dataset.BuildSchema(table),
		view:     NewViewport(table.Height(), pageSize),
	}
}

// replaceTable installs a new active table: the viewport resets to the top
// and column stats are rebuilt. The original table is kept for reset.
func (t *Tab) replaceTable(table *dataset.Table) {
	t.table = table
	t.stats = dataset.BuildSchema(table)
	t.view.Reset(table.Height())
	t.colOffset = 0
	t.sheet = nil
}

// scrollColumns moves the horizontal column window by delta, saturating.
func (t *Tab) scrollColumns(delta int) {
	t.colOffset += delta
	max := t.table.Width() - 1
	if max < 0 {
		max = 0
	}
	if t.colOffset > max {
		t.colOffset = max
	}
	if t.colOffset < 0 {
		t.colOffset = 0
	}
}
