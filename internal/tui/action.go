package tui

// ActionKind discriminates the Action tagged union.
type ActionKind int

const (
	ActNone ActionKind = iota
	ActQuit

	// Row navigation. ActUp/ActDown carry Count; ActGoto carries a
	// zero-based row Index.
	ActGoto
	ActGotoFirst
	ActGotoLast
	ActGotoRandom
	ActUp
	ActDown
	ActUpHalfPage
	ActDownHalfPage
	ActUpFullPage
	ActDownFullPage

	// Horizontal column scrolling.
	ActScrollLeft
	ActScrollRight
	ActScrollStart
	ActScrollEnd

	// Row detail sheet.
	ActSheetShow
	ActSheetDismiss
	ActSheetToggle
	ActSheetScrollUp
	ActSheetScrollDown

	// Modals.
	ActSchemaShow
	ActSchemaDismiss
	ActInfoShow
	ActInfoDismiss
	ActTabPanelShow
	ActTabPanelDismiss
	ActToggleExpand

	// Command palette. ActPaletteShow carries an optional prefill in
	// Text; ActPaletteInput forwards the originating key to the input.
	ActPaletteShow
	ActPaletteInput
	ActPaletteCommit
	ActPaletteDismiss
	ActPaletteSelectPrev
	ActPaletteSelectNext

	// Incremental search.
	ActSearchShow
	ActSearchInput
	ActSearchCommit
	ActSearchRollback

	// Dataset transforms; Text carries the SQL or expression.
	ActQuery
	ActSelectColumns
	ActOrderBy
	ActFilter
	ActReset

	// Tabs. ActTabSelect carries a zero-based Index; -1 means the row
	// highlighted in the tab panel.
	ActTabNext
	ActTabPrev
	ActTabRemoveOrQuit
	ActTabSelect

	// Pending error.
	ActErrorDismiss
	ActErrorToPalette
)

// Action is a single UI operation produced by key resolution or command
// parsing. It is plain data, never a closure, so binding tables stay
// printable and testable.
type Action struct {
	Kind  ActionKind
	Count int
	Index int
	Text  string
}

// NoAction is the terminal result of key resolution when nothing matches.
var NoAction = Action{Kind: ActNone}
