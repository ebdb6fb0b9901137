package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestResolveTableBindings(t *testing.T) {
	h := defaultKeyHandler()
	tests := []struct {
		key  string
		want ActionKind
	}{
		{"j", ActDown},
		{"k", ActUp},
		{"down", ActDown},
		{"ctrl+u", ActUpHalfPage},
		{"ctrl+d", ActDownHalfPage},
		{"pgup", ActUpFullPage},
		{"ctrl+f", ActDownFullPage},
		{"g", ActGotoFirst},
		{"G", ActGotoLast},
		{"_", ActScrollStart},
		{"$", ActScrollEnd},
		{"enter", ActSheetShow},
		{"/", ActSearchShow},
		{"e", ActToggleExpand},
		{"ctrl+r", ActReset},
	}
	for _, tt := range tests {
		if got := h.Resolve(ContextTable, keyMsg(tt.key)); got.Kind != tt.want {
			t.Errorf("Resolve(Table, %q).Kind = %v, want %v", tt.key, got.Kind, tt.want)
		}
	}
}

func TestResolveWalksToParent(t *testing.T) {
	h := defaultKeyHandler()

	// ":" is bound at the root, not in the table context.
	if got := h.Resolve(ContextTable, keyMsg(":")); got.Kind != ActPaletteShow {
		t.Errorf("Resolve(Table, \":\").Kind = %v, want ActPaletteShow", got.Kind)
	}

	// Tab switching is inherited two levels down, from sheet through table.
	if got := h.Resolve(ContextSheet, keyMsg("H")); got.Kind != ActTabPrev {
		t.Errorf("Resolve(Sheet, \"H\").Kind = %v, want ActTabPrev", got.Kind)
	}
}

func TestResolveShadowing(t *testing.T) {
	h := defaultKeyHandler()

	// "q" dismisses the sheet but quits from the table.
	if got := h.Resolve(ContextSheet, keyMsg("q")); got.Kind != ActSheetDismiss {
		t.Errorf("Resolve(Sheet, \"q\").Kind = %v, want ActSheetDismiss", got.Kind)
	}
	if got := h.Resolve(ContextTable, keyMsg("q")); got.Kind != ActTabRemoveOrQuit {
		t.Errorf("Resolve(Table, \"q\").Kind = %v, want ActTabRemoveOrQuit", got.Kind)
	}

	// ctrl+u is a kill-line inside the search input, half page in the table.
	if got := h.Resolve(ContextSearch, keyMsg("ctrl+u")); got.Kind != ActSearchInput {
		t.Errorf("Resolve(Search, \"ctrl+u\").Kind = %v, want ActSearchInput", got.Kind)
	}
}

func TestResolveCtrlCQuitsEverywhere(t *testing.T) {
	h := defaultKeyHandler()
	contexts := []Context{
		ContextEmpty, ContextTable, ContextSheet, ContextSearch,
		ContextCommand, ContextError, ContextSchema, ContextTabPanel,
		ContextInfo,
	}
	for _, ctx := range contexts {
		if got := h.Resolve(ctx, keyMsg("ctrl+c")); got.Kind != ActQuit {
			t.Errorf("Resolve(%s, ctrl+c).Kind = %v, want ActQuit", ctx, got.Kind)
		}
	}
}

func TestResolveUnmappedKeyIsNoAction(t *testing.T) {
	h := defaultKeyHandler()
	if got := h.Resolve(ContextTable, keyMsg("ctrl+g")); got.Kind != ActNone {
		t.Errorf("Resolve(Table, ctrl+g).Kind = %v, want ActNone", got.Kind)
	}
	if got := h.Resolve(ContextEmpty, keyMsg("z")); got.Kind != ActNone {
		t.Errorf("Resolve(Empty, \"z\").Kind = %v, want ActNone", got.Kind)
	}
}

func TestResolveDigitOpensGoto(t *testing.T) {
	h := defaultKeyHandler()
	got := h.Resolve(ContextTable, keyMsg("7"))
	if got.Kind != ActPaletteShow || got.Text != "goto 7" {
		t.Errorf("Resolve(Table, \"7\") = %+v, want ActPaletteShow with prefill \"goto 7\"", got)
	}

	// Zero is not a valid row number prefix.
	if got := h.Resolve(ContextTable, keyMsg("0")); got.Kind != ActNone {
		t.Errorf("Resolve(Table, \"0\").Kind = %v, want ActNone", got.Kind)
	}
}

func TestResolveTextInputFallback(t *testing.T) {
	h := defaultKeyHandler()

	for _, key := range []string{"a", "Q", "backspace", "left", "ctrl+w"} {
		if got := h.Resolve(ContextCommand, keyMsg(key)); got.Kind != ActPaletteInput {
			t.Errorf("Resolve(Command, %q).Kind = %v, want ActPaletteInput", key, got.Kind)
		}
	}
	if got := h.Resolve(ContextSearch, tea.KeyMsg(tea.Key{Type: tea.KeySpace})); got.Kind != ActSearchInput {
		t.Errorf("Resolve(Search, space).Kind = %v, want ActSearchInput", got.Kind)
	}

	// Non-text keys fall through to the ancestors.
	if got := h.Resolve(ContextCommand, keyMsg("pgup")); got.Kind != ActNone {
		t.Errorf("Resolve(Command, pgup).Kind = %v, want ActNone", got.Kind)
	}
}

func TestResolveErrorContext(t *testing.T) {
	h := defaultKeyHandler()

	if got := h.Resolve(ContextError, keyMsg(":")); got.Kind != ActErrorToPalette {
		t.Errorf("Resolve(Error, \":\").Kind = %v, want ActErrorToPalette", got.Kind)
	}
	for _, key := range []string{"q", "enter", "esc", "x", "j"} {
		if got := h.Resolve(ContextError, keyMsg(key)); got.Kind != ActErrorDismiss {
			t.Errorf("Resolve(Error, %q).Kind = %v, want ActErrorDismiss", key, got.Kind)
		}
	}
}

func TestContextParentChain(t *testing.T) {
	// Every context must reach the root in a bounded number of steps.
	for ctx := ContextEmpty; ctx <= ContextInfo; ctx++ {
		steps := 0
		c := ctx
		for {
			parent, ok := c.Parent()
			if !ok {
				break
			}
			c = parent
			steps++
			if steps > 10 {
				t.Fatalf("context %s does not reach the root", ctx)
			}
		}
		if c != ContextEmpty {
			t.Errorf("context %s bottoms out at %s, want ContextEmpty", ctx, c)
		}
	}
}
