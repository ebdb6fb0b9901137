package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// chromeLines is the number of non-body lines in a frame: title bar,
// column header, separator, and footer.
const chromeLines = 4

// Column width bounds for the table view. Expanded mode lifts the cap so
// long cells are shown in full up to the wide limit.
const (
	minColWidth      = 4
	maxColWidth      = 24
	maxColWidthWide  = 80
	colGap           = 2
	suggestionsShown = 8
)

// Monochrome theme - adaptive for light and dark terminals
var (
	bgBase   = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#000000"}
	bgCursor = lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#282828"}

	titleBarStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#333333"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"}).
			Padding(0, 1)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Background(bgBase)

	separatorStyle = lipgloss.NewStyle().
			Faint(true).
			Background(bgBase)

	cursorRowStyle = lipgloss.NewStyle().
			Background(bgCursor)

	normalRowStyle = lipgloss.NewStyle().
			Background(bgBase)

	nullCellStyle = lipgloss.NewStyle().
			Faint(true).
			Italic(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#999999"}).
			Background(bgBase).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Background(bgBase)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true)

	flashStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#996600", Dark: "#ffcc00"}).
			Background(bgBase)

	suggestionStyle = lipgloss.NewStyle().
			Faint(true)

	suggestionSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Background(bgCursor)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.buildTitleBar())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// buildTitleBar builds line 1 of the frame:
// "griddle [version] - name (i/N)".
func (m Model) buildTitleBar() string {
	title := "griddle"
	if m.version != "" && m.version != "dev" {
		title = fmt.Sprintf("griddle [%s]", m.version)
	}
	if tab := m.activeTab(); tab != nil {
		title += fmt.Sprintf(" - %s (%d/%d)", tab.name, m.active+1, len(m.tabs))
	}
	return titleBarStyle.Render(padRight(title, m.width-2))
}

// renderBody renders the main area between title bar and footer. Modal
// contexts replace the table view entirely.
func (m Model) renderBody() string {
	bodyHeight := m.pageSize + 2 // header + separator + rows

	var body string
	tab := m.activeTab()
	switch {
	case tab == nil:
		body = "\n  no dataset open"
	case m.schemaOpen:
		body = m.renderSchema(tab)
	case m.tabPanelOpen:
		body = m.renderTabPanel()
	case tab.sheet != nil:
		body = m.renderSheet(tab)
	default:
		body = m.renderTable(tab)
	}

	if m.err != nil {
		return m.centerModal(bodyHeight, m.renderError())
	}
	if m.infoOpen && tab != nil {
		return m.centerModal(bodyHeight, m.renderInfo(tab))
	}
	return body
}

// centerModal centers a modal box in the body area, replacing the table
// behind it.
func (m Model) centerModal(height int, modal string) string {
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, modal)
}

// renderTable renders the active table window with a row-number gutter.
func (m Model) renderTable(tab *Tab) string {
	table := tab.table
	if table.Width() == 0 {
		return "\n  empty table"
	}

	cols := table.Columns()
	offset, count := tab.view.Window()

	gutter := len(fmt.Sprintf("%d", table.Height()))
	if gutter < 3 {
		gutter = 3
	}

	widths := m.columnWidths(tab, offset, count)

	var b strings.Builder

	// Header row.
	var header strings.Builder
	header.WriteString(strings.Repeat(" ", gutter+colGap))
	for i := tab.colOffset; i < len(cols) && lipgloss.Width(header.String()) < m.width; i++ {
		header.WriteString(padRight(truncateRunes(cols[i].Name, widths[i]), widths[i]+colGap))
	}
	b.WriteString(tableHeaderStyle.Render(padRight(header.String(), m.width)))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	// Data rows.
	for r := 0; r < count; r++ {
		row := offset + r
		var line strings.Builder
		line.WriteString(padRight(fmt.Sprintf("%*d", gutter, row+1), gutter+colGap))
		for i := tab.colOffset; i < len(cols) && lipgloss.Width(line.String()) < m.width; i++ {
			cell := cols[i].Cells[row]
			if cols[i].Nulls[row] {
				cell = m.nullText
			}
			line.WriteString(padRight(truncateRunes(cell, widths[i]), widths[i]+colGap))
		}

		style := normalRowStyle
		if row == tab.view.Selected() {
			style = cursorRowStyle
		}
		b.WriteString(style.Render(padRight(line.String(), m.width)))
		if r < count-1 {
			b.WriteString("\n")
		}
	}
	if count == 0 {
		b.WriteString(normalRowStyle.Render(padRight("  (no rows)", m.width)))
	}
	return b.String()
}

// columnWidths sizes each column to its widest visible cell, clamped.
func (m Model) columnWidths(tab *Tab, offset, count int) []int {
	cols := tab.table.Columns()
	limit := maxColWidth
	if tab.expanded {
		limit = maxColWidthWide
	}
	widths := make([]int, len(cols))
	for i, c := range cols {
		w := lipgloss.Width(c.Name)
		for r := offset; r < offset+count; r++ {
			if cw := lipgloss.Width(c.Cells[r]); cw > w {
				w = cw
			}
		}
		if w < minColWidth {
			w = minColWidth
		}
		if w > limit {
			w = limit
		}
		widths[i] = w
	}
	return widths
}

// renderSheet renders the selected row one column per line, wrapped to the
// terminal width. Reflow depends on the width, so the scroll bound is
// re-clamped here on every render.
func (m Model) renderSheet(tab *Tab) string {
	row := tab.sheet.row
	if row >= tab.table.Height() {
		return "\n  row no longer present"
	}

	nameWidth := 0
	for _, c := range tab.table.Columns() {
		if w := lipgloss.Width(c.Name); w > nameWidth {
			nameWidth = w
		}
	}

	var lines []string
	for _, c := range tab.table.Columns() {
		cell := c.Cells[row]
		cellStyle := lipgloss.NewStyle()
		if c.Nulls[row] {
			cell = m.nullText
			cellStyle = nullCellStyle
		}
		wrapped := wrapText(cell, m.width-nameWidth-colGap-2)
		if len(wrapped) == 0 {
			wrapped = []string{""}
		}
		label := padRight(c.Name, nameWidth+colGap)
		lines = append(lines, tableHeaderStyle.Render(label)+cellStyle.Render(wrapped[0]))
		for _, cont := range wrapped[1:] {
			lines = append(lines, strings.Repeat(" ", nameWidth+colGap)+cont)
		}
	}

	bodyHeight := m.pageSize + 2
	tab.sheet.scroll.Adjust(len(lines), bodyHeight)
	start := tab.sheet.scroll.Offset()
	end := start + bodyHeight
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  row %d of %d\n", row+1, tab.table.Height()))
	b.WriteString(strings.Join(lines[start:end], "\n"))
	return b.String()
}

// renderSchema renders the column statistics view.
func (m Model) renderSchema(tab *Tab) string {
	headers := []string{"column", "type", "size", "nulls", "min", "max"}
	rows := make([][]string, len(tab.stats))
	for i, s := range tab.stats {
		rows[i] = []string{
			s.Name,
			s.Type.String(),
			fmt.Sprintf("%d", s.EstimatedSize),
			fmt.Sprintf("%d", s.NullCount),
			s.Min,
			s.Max,
		}
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] > maxColWidth {
			widths[i] = maxColWidth
		}
	}

	var b strings.Builder
	var header strings.Builder
	header.WriteString("  ")
	for i, h := range headers {
		header.WriteString(padRight(h, widths[i]+colGap))
	}
	b.WriteString(tableHeaderStyle.Render(padRight(header.String(), m.width)))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	offset, count := m.schemaView.Window()
	for r := 0; r < count; r++ {
		var line strings.Builder
		line.WriteString("  ")
		for i, cell := range rows[offset+r] {
			line.WriteString(padRight(truncateRunes(cell, widths[i]), widths[i]+colGap))
		}
		style := normalRowStyle
		if offset+r == m.schemaView.Selected() {
			style = cursorRowStyle
		}
		b.WriteString(style.Render(padRight(line.String(), m.width)))
		if r < count-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderTabPanel lists the open tabs.
func (m Model) renderTabPanel() string {
	var b strings.Builder
	b.WriteString(tableHeaderStyle.Render(padRight("  open tabs", m.width)))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	offset, count := m.panelView.Window()
	for r := 0; r < count; r++ {
		i := offset + r
		tab := m.tabs[i]
		marker := "  "
		if i == m.active {
			marker = "* "
		}
		line := fmt.Sprintf("  %s%d  %s  (%d rows)", marker, i+1, tab.name, tab.table.Height())
		style := normalRowStyle
		if i == m.panelView.Selected() {
			style = cursorRowStyle
		}
		b.WriteString(style.Render(padRight(line, m.width)))
		if r < count-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderInfo builds the dataset info modal.
func (m Model) renderInfo(tab *Tab) string {
	var b strings.Builder
	b.WriteString(modalTitleStyle.Render(tab.name))
	b.WriteString("\n\n")
	if tab.path != "" {
		b.WriteString(fmt.Sprintf("path:    %s\n", tab.path))
	}
	b.WriteString(fmt.Sprintf("rows:    %d\n", tab.table.Height()))
	b.WriteString(fmt.Sprintf("columns: %d", tab.table.Width()))
	return modalStyle.Render(b.String())
}

// renderError builds the pending error modal.
func (m Model) renderError() string {
	var b strings.Builder
	b.WriteString(modalTitleStyle.Render("error"))
	b.WriteString("\n\n")
	b.WriteString(errorStyle.Render(strings.Join(wrapText(m.err.Error(), m.width*2/3), "\n")))
	b.WriteString("\n\n")
	b.WriteString(suggestionStyle.Render("press any key to dismiss, : for the palette"))
	return modalStyle.Render(b.String())
}

// renderFooter renders the bottom line: palette or search input when
// active, otherwise position and key hints.
func (m Model) renderFooter() string {
	if m.palette != nil {
		return m.renderPalette()
	}
	if tab := m.activeTab(); tab != nil && tab.search != nil {
		return footerStyle.Render(padRight(tab.search.input.View(), m.width-2))
	}
	if m.flashText != "" {
		return flashStyle.Render(padRight(" "+m.flashText, m.width))
	}

	tab := m.activeTab()
	if tab == nil {
		return footerStyle.Render(padRight("q quit  : palette", m.width-2))
	}
	pos := fmt.Sprintf("row %d/%d  col %d/%d",
		tab.view.Selected()+1, tab.table.Height(),
		tab.colOffset+1, tab.table.Width())
	hints := "/ search  : palette  enter sheet  q quit"
	return footerStyle.Render(padRight(pos+"   "+hints, m.width-2))
}

// renderPalette renders the input line preceded by its fuzzy history
// suggestions, most recent first, highlighted selection included.
func (m Model) renderPalette() string {
	p := m.palette
	var b strings.Builder

	shown := len(p.suggestions)
	if shown > suggestionsShown {
		shown = suggestionsShown
	}
	for i := shown - 1; i >= 0; i-- {
		style := suggestionStyle
		if i == p.selected {
			style = suggestionSelectedStyle
		}
		b.WriteString(style.Render(padRight("  "+p.suggestions[i], m.width-2)))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render(padRight(p.input.View(), m.width-2)))
	return b.String()
}
