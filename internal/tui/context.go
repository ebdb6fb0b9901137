// Package tui provides the interactive terminal viewer for griddle.
package tui

// Context identifies the current interaction mode. It is derived fresh
// from Model state on every keypress (see Model.context) and never stored.
// Contexts form a tree through Parent; Empty is the root.
type Context int

const (
	ContextEmpty Context = iota
	ContextTable
	ContextSheet
	ContextSearch
	ContextCommand
	ContextError
	ContextSchema
	ContextTabPanel
	ContextInfo
)

// Parent returns the enclosing context. The second return is false only
// for the root. Every context reaches Empty in at most two steps.
func (c Context) Parent() (Context, bool) {
	switch c {
	case ContextSheet, ContextSearch:
		return ContextTable, true
	case ContextTable, ContextCommand, ContextError, ContextSchema, ContextTabPanel, ContextInfo:
		return ContextEmpty, true
	default:
		return ContextEmpty, false
	}
}

// String returns a human-readable name for the context.
func (c Context) String() string {
	switch c {
	case ContextEmpty:
		return "Empty"
	case ContextTable:
		return "Table"
	case ContextSheet:
		return "Sheet"
	case ContextSearch:
		return "Search"
	case ContextCommand:
		return "Command"
	case ContextError:
		return "Error"
	case ContextSchema:
		return "Schema"
	case ContextTabPanel:
		return "TabPanel"
	case ContextInfo:
		return "Info"
	default:
		return "Unknown"
	}
}
