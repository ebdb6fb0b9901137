package tui

import (
	"regexp"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mwhite/griddle/internal/dataset"
	"github.com/mwhite/griddle/internal/history"
	"github.com/mwhite/griddle/internal/query"
	"github.com/mwhite/griddle/internal/query/querytest"
)

// colorProfileMu serializes tests that mutate the global lipgloss color profile.
var colorProfileMu sync.Mutex

// forceColorProfile sets lipgloss to ANSI color output for tests that assert
// on styled output. It acquires colorProfileMu to prevent data races with
// parallel tests and restores the original profile via t.Cleanup.
func forceColorProfile(t *testing.T) {
	t.Helper()
	colorProfileMu.Lock()
	orig := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(orig)
		colorProfileMu.Unlock()
	})
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// peopleTable returns a small typed table used across TUI tests.
func peopleTable() *dataset.Table {
	t := dataset.New(
		[]string{"name", "age", "city"},
		[][]string{
			{"alice", "30", "amsterdam"},
			{"bob", "25", "berlin"},
			{"carol", "41", "cologne"},
		},
	)
	dataset.Infer(t)
	return t
}

// numberedTable returns a single-column table with n rows "row 1".."row n".
func numberedTable(n int) *dataset.Table {
	records := make([][]string, n)
	for i := range records {
		records[i] = []string{"row " + itoa(i+1)}
	}
	return dataset.New([]string{"label"}, records)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// TestModelBuilder helps construct Model instances for testing.
type TestModelBuilder struct {
	engine  query.Engine
	tables  []*dataset.Table
	names   []string
	width   int
	height  int
	entries []string
}

func NewBuilder() *TestModelBuilder {
	return &TestModelBuilder{
		width:  80,
		height: 24,
	}
}

func (b *TestModelBuilder) WithEngine(e query.Engine) *TestModelBuilder {
	b.engine = e
	return b
}

func (b *TestModelBuilder) WithTable(name string, t *dataset.Table) *TestModelBuilder {
	b.names = append(b.names, name)
	b.tables = append(b.tables, t)
	return b
}

func (b *TestModelBuilder) WithSize(width, height int) *TestModelBuilder {
	b.width = width
	b.height = height
	return b
}

// WithPageSize sizes the terminal so the table body shows exactly rows rows.
func (b *TestModelBuilder) WithPageSize(rows int) *TestModelBuilder {
	b.height = rows + chromeLines
	return b
}

func (b *TestModelBuilder) WithHistory(entries ...string) *TestModelBuilder {
	b.entries = entries
	return b
}

func (b *TestModelBuilder) Build() Model {
	eng := b.engine
	if eng == nil {
		eng = &querytest.MockEngine{}
	}
	hist := history.New(history.DefaultCapacity)
	for _, e := range b.entries {
		hist.Push(e)
	}
	m := New(eng, hist, Options{})
	m.setSize(b.width, b.height)
	for i, table := range b.tables {
		m.OpenTab(b.names[i], "/data/"+b.names[i], table)
	}
	m.active = 0
	return m
}

// keyMsg builds a tea.KeyMsg from its String() form for the keys the tests
// exercise. Single runes become KeyRunes messages.
func keyMsg(key string) tea.KeyMsg {
	special := map[string]tea.KeyType{
		"enter":       tea.KeyEnter,
		"esc":         tea.KeyEsc,
		"up":          tea.KeyUp,
		"down":        tea.KeyDown,
		"left":        tea.KeyLeft,
		"right":       tea.KeyRight,
		"home":        tea.KeyHome,
		"end":         tea.KeyEnd,
		"pgup":        tea.KeyPgUp,
		"pgdown":      tea.KeyPgDown,
		"backspace":   tea.KeyBackspace,
		"delete":      tea.KeyDelete,
		"tab":         tea.KeyTab,
		"shift+left":  tea.KeyShiftLeft,
		"shift+right": tea.KeyShiftRight,
		"ctrl+b":      tea.KeyCtrlB,
		"ctrl+c":      tea.KeyCtrlC,
		"ctrl+d":      tea.KeyCtrlD,
		"ctrl+f":      tea.KeyCtrlF,
		"ctrl+g":      tea.KeyCtrlG,
		"ctrl+n":      tea.KeyCtrlN,
		"ctrl+p":      tea.KeyCtrlP,
		"ctrl+r":      tea.KeyCtrlR,
		"ctrl+u":      tea.KeyCtrlU,
		"ctrl+w":      tea.KeyCtrlW,
	}
	if kt, ok := special[key]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// press feeds a sequence of keys through Update and returns the new model.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, key := range keys {
		next, _ := m.Update(keyMsg(key))
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}

// typeText feeds text one rune at a time, as a terminal would deliver it.
func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, string(r))
	}
	return m
}
