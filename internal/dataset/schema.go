package dataset

import (
	"strconv"
	"strings"
)

// ColumnStat summarizes one column for the schema view: name, inferred
// type, estimated in-memory size, null count, and observed min/max.
type ColumnStat struct {
	Name          string
	Type          DType
	EstimatedSize int
	NullCount     int
	Min           string
	Max           string
}

// BuildSchema computes per-column statistics. Min and max compare
// numerically for int and float columns and lexicographically otherwise;
// null cells are excluded. Rebuilt whenever the active dataset changes.
func BuildSchema(t *Table) []ColumnStat {
	stats := make([]ColumnStat, 0, t.Width())
	for _, c := range t.Columns() {
		stats = append(stats, columnStat(c))
	}
	return stats
}

func columnStat(c Column) ColumnStat {
	stat := ColumnStat{Name: c.Name, Type: c.Type}

	numeric := c.Type == DTypeInt || c.Type == DTypeFloat
	first := true
	var minNum, maxNum float64

	for i, cell := range c.Cells {
		stat.EstimatedSize += len(cell)
		if c.Nulls[i] {
			stat.NullCount++
			continue
		}
		if numeric {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				continue
			}
			if first || v < minNum {
				minNum = v
				stat.Min = cell
			}
			if first || v > maxNum {
				maxNum = v
				stat.Max = cell
			}
			first = false
			continue
		}
		if first || cell < stat.Min {
			stat.Min = cell
		}
		if first || cell > stat.Max {
			stat.Max = cell
		}
		first = false
	}
	return stat
}
