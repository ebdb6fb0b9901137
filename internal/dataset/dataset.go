// Package dataset defines the in-memory tabular data model shared by the
// readers, the query engine, and the TUI. Tables are column-major: every
// cell keeps its display text, and a per-column type records the most
// specific interpretation that is lossless for every value.
package dataset

// DType identifies the inferred type of a column.
type DType int

const (
	DTypeString DType = iota
	DTypeInt
	DTypeFloat
	DTypeBool
	DTypeDate
	DTypeTime
	DTypeDateTime
)

// String returns the display name used in the schema view.
func (t DType) String() string {
	switch t {
	case DTypeInt:
		return "int64"
	case DTypeFloat:
		return "float64"
	case DTypeBool:
		return "bool"
	case DTypeDate:
		return "date"
	case DTypeTime:
		return "time"
	case DTypeDateTime:
		return "datetime"
	default:
		return "string"
	}
}

// Column is a named, typed sequence of cells. Cells holds the display text
// of each value; Nulls marks values that are absent. Type inference never
// rewrites Cells, it only promotes Type.
type Column struct {
	Name  string
	Type  DType
	Cells []string
	Nulls []bool
}

// Table is an ordered collection of equally long columns.
type Table struct {
	cols []Column
}

// New builds a table from headers and row-major records. Short records are
// padded with nulls so every column has the same height. All columns start
// as strings; run Infer to promote types.
func New(headers []string, records [][]string) *Table {
	cols := make([]Column, len(headers))
	for i, name := range headers {
		cols[i] = Column{
			Name:  name,
			Cells: make([]string, len(records)),
			Nulls: make([]bool, len(records)),
		}
	}
	for r, record := range records {
		for c := range cols {
			if c < len(record) {
				cols[c].Cells[r] = record[c]
			} else {
				cols[c].Nulls[r] = true
			}
		}
	}
	return &Table{cols: cols}
}

// FromColumns builds a table directly from prepared columns. Used by the
// query engine, which already knows cell types from the driver.
func FromColumns(cols []Column) *Table {
	return &Table{cols: cols}
}

// Height returns the number of rows.
func (t *Table) Height() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Cells)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.cols)
}

// Columns returns the underlying columns. Callers must not mutate them.
func (t *Table) Columns() []Column {
	return t.cols
}

// ColumnNames returns the header names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Row returns the display text of every cell in row i. Null cells render
// as the empty string.
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.cols))
	for c := range t.cols {
		if t.cols[c].Nulls[i] {
			continue
		}
		row[c] = t.cols[c].Cells[i]
	}
	return row
}

// FilterRows returns a new table containing only the rows for which keep
// returns true. Column names and types are preserved.
func (t *Table) FilterRows(keep func(row []string) bool) *Table {
	var idx []int
	for i := 0; i < t.Height(); i++ {
		if keep(t.Row(i)) {
			idx = append(idx, i)
		}
	}
	return t.TakeRows(idx)
}

// TakeRows returns a new table containing the given row indices in order.
func (t *Table) TakeRows(idx []int) *Table {
	cols := make([]Column, len(t.cols))
	for c := range t.cols {
		cols[c] = Column{
			Name:  t.cols[c].Name,
			Type:  t.cols[c].Type,
			Cells: make([]string, len(idx)),
			Nulls: make([]bool, len(idx)),
		}
		for j, i := range idx {
			cols[c].Cells[j] = t.cols[c].Cells[i]
			cols[c].Nulls[j] = t.cols[c].Nulls[i]
		}
	}
	return &Table{cols: cols}
}
