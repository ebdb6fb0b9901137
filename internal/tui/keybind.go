package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Keybind associates one key (in tea.KeyMsg.String() form) with an Action.
type Keybind struct {
	Key    string
	Action Action
}

// contextBinds holds the ordered bindings for one context plus an optional
// catch-all. Within a context the first matching bind wins; the fallback is
// consulted only when no bind matches.
type contextBinds struct {
	binds    []Keybind
	fallback func(tea.KeyMsg) (Action, bool)
}

// KeyHandler resolves key events against per-context binding tables.
// Built once at startup and read-only afterward.
type KeyHandler struct {
	contexts map[Context]contextBinds
}

// Resolve walks from ctx toward the root, returning the first Action a
// binding or fallback produces. Resolution is total: an unmapped key at the
// root yields NoAction, never an error.
func (h *KeyHandler) Resolve(ctx Context, msg tea.KeyMsg) Action {
	key := msg.String()
	for {
		cb := h.contexts[ctx]
		for _, b := range cb.binds {
			if b.Key == key {
				return b.Action
			}
		}
		if cb.fallback != nil {
			if act, ok := cb.fallback(msg); ok {
				return act
			}
		}
		parent, ok := ctx.Parent()
		if !ok {
			return NoAction
		}
		ctx = parent
	}
}

// textInputKeys are the non-rune keys forwarded to an active text input.
var textInputKeys = map[string]bool{
	"space":     true,
	"backspace": true,
	"delete":    true,
	"left":      true,
	"right":     true,
	"home":      true,
	"end":       true,
	"ctrl+a":    true,
	"ctrl+e":    true,
	"ctrl+w":    true,
	"ctrl+k":    true,
	"ctrl+u":    true,
}

func isTextInputKey(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		return true
	}
	return textInputKeys[msg.String()]
}

// defaultKeyHandler builds the default binding tables for every context.
func defaultKeyHandler() *KeyHandler {
	contexts := map[Context]contextBinds{
		ContextEmpty: {
			binds: []Keybind{
				{"q", Action{Kind: ActTabRemoveOrQuit}},
				{"ctrl+c", Action{Kind: ActQuit}},
				{"H", Action{Kind: ActTabPrev}},
				{"L", Action{Kind: ActTabNext}},
				{"shift+left", Action{Kind: ActTabPrev}},
				{"shift+right", Action{Kind: ActTabNext}},
				{":", Action{Kind: ActPaletteShow}},
			},
		},
		ContextTable: {
			binds: []Keybind{
				{"enter", Action{Kind: ActSheetShow}},
				{"v", Action{Kind: ActSheetToggle}},
				{"/", Action{Kind: ActSearchShow}},
				{"e", Action{Kind: ActToggleExpand}},
				{"up", Action{Kind: ActUp, Count: 1}},
				{"k", Action{Kind: ActUp, Count: 1}},
				{"down", Action{Kind: ActDown, Count: 1}},
				{"j", Action{Kind: ActDown, Count: 1}},
				{"left", Action{Kind: ActScrollLeft}},
				{"h", Action{Kind: ActScrollLeft}},
				{"right", Action{Kind: ActScrollRight}},
				{"l", Action{Kind: ActScrollRight}},
				{"ctrl+u", Action{Kind: ActUpHalfPage}},
				{"ctrl+d", Action{Kind: ActDownHalfPage}},
				{"ctrl+b", Action{Kind: ActUpFullPage}},
				{"pgup", Action{Kind: ActUpFullPage}},
				{"ctrl+f", Action{Kind: ActDownFullPage}},
				{"pgdown", Action{Kind: ActDownFullPage}},
				{"g", Action{Kind: ActGotoFirst}},
				{"home", Action{Kind: ActGotoFirst}},
				{"G", Action{Kind: ActGotoLast}},
				{"end", Action{Kind: ActGotoLast}},
				{"_", Action{Kind: ActScrollStart}},
				{"$", Action{Kind: ActScrollEnd}},
				{"ctrl+r", Action{Kind: ActReset}},
			},
			// A bare digit opens the palette prefilled with a goto
			// command so the user can finish typing the row number.
			fallback: func(msg tea.KeyMsg) (Action, bool) {
				if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
					r := msg.Runes[0]
					if r >= '1' && r <= '9' {
						return Action{Kind: ActPaletteShow, Text: fmt.Sprintf("goto %c", r)}, true
					}
				}
				return NoAction, false
			},
		},
		ContextSheet: {
			binds: []Keybind{
				{"q", Action{Kind: ActSheetDismiss}},
				{"esc", Action{Kind: ActSheetDismiss}},
				{"enter", Action{Kind: ActSheetDismiss}},
				{"v", Action{Kind: ActSheetToggle}},
				{"up", Action{Kind: ActSheetScrollUp}},
				{"k", Action{Kind: ActSheetScrollUp}},
				{"K", Action{Kind: ActSheetScrollUp}},
				{"down", Action{Kind: ActSheetScrollDown}},
				{"j", Action{Kind: ActSheetScrollDown}},
				{"J", Action{Kind: ActSheetScrollDown}},
			},
		},
		ContextSearch: {
			binds: []Keybind{
				{"enter", Action{Kind: ActSearchCommit}},
				{"esc", Action{Kind: ActSearchRollback}},
			},
			fallback: func(msg tea.KeyMsg) (Action, bool) {
				if isTextInputKey(msg) {
					return Action{Kind: ActSearchInput}, true
				}
				return NoAction, false
			},
		},
		ContextCommand: {
			binds: []Keybind{
				{"enter", Action{Kind: ActPaletteCommit}},
				{"esc", Action{Kind: ActPaletteDismiss}},
				{"up", Action{Kind: ActPaletteSelectPrev}},
				{"ctrl+p", Action{Kind: ActPaletteSelectPrev}},
				{"down", Action{Kind: ActPaletteSelectNext}},
				{"ctrl+n", Action{Kind: ActPaletteSelectNext}},
			},
			fallback: func(msg tea.KeyMsg) (Action, bool) {
				if isTextInputKey(msg) {
					return Action{Kind: ActPaletteInput}, true
				}
				return NoAction, false
			},
		},
		ContextError: {
			binds: []Keybind{
				{":", Action{Kind: ActErrorToPalette}},
				{"ctrl+c", Action{Kind: ActQuit}},
			},
			fallback: func(tea.KeyMsg) (Action, bool) {
				return Action{Kind: ActErrorDismiss}, true
			},
		},
		ContextSchema: {
			binds: []Keybind{
				{"q", Action{Kind: ActSchemaDismiss}},
				{"esc", Action{Kind: ActSchemaDismiss}},
				{"up", Action{Kind: ActUp, Count: 1}},
				{"k", Action{Kind: ActUp, Count: 1}},
				{"down", Action{Kind: ActDown, Count: 1}},
				{"j", Action{Kind: ActDown, Count: 1}},
				{"g", Action{Kind: ActGotoFirst}},
				{"G", Action{Kind: ActGotoLast}},
			},
		},
		ContextTabPanel: {
			binds: []Keybind{
				{"q", Action{Kind: ActTabPanelDismiss}},
				{"esc", Action{Kind: ActTabPanelDismiss}},
				{"up", Action{Kind: ActUp, Count: 1}},
				{"k", Action{Kind: ActUp, Count: 1}},
				{"down", Action{Kind: ActDown, Count: 1}},
				{"j", Action{Kind: ActDown, Count: 1}},
				{"enter", Action{Kind: ActTabSelect, Index: -1}},
			},
		},
		ContextInfo: {
			binds: []Keybind{
				{"q", Action{Kind: ActInfoDismiss}},
				{"esc", Action{Kind: ActInfoDismiss}},
				{"enter", Action{Kind: ActInfoDismiss}},
			},
		},
	}
	return &KeyHandler{contexts: contexts}
}
