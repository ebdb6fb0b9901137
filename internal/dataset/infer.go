package dataset

import (
	"strconv"
	"strings"
	"time"
)

// InferMode selects how much schema inference a reader performs.
type InferMode int

const (
	InferOff InferMode = iota
	InferFast
	InferFull
	InferSafe
)

// ParseInferMode maps a CLI flag value to an InferMode.
func ParseInferMode(s string) (InferMode, bool) {
	switch strings.ToLower(s) {
	case "off":
		return InferOff, true
	case "fast":
		return InferFast, true
	case "full":
		return InferFull, true
	case "safe", "":
		return InferSafe, true
	}
	return InferOff, false
}

// candidate types in preference order. The first type for which every
// non-null cell parses wins.
var candidateTypes = []DType{
	DTypeInt,
	DTypeFloat,
	DTypeBool,
	DTypeDate,
	DTypeTime,
	DTypeDateTime,
}

var (
	dateLayouts     = []string{"2006-01-02", "2006-1-2", "2006/01/02"}
	timeLayouts     = []string{"15:04:05", "15:04"}
	dateTimeLayouts = []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		time.RFC3339,
	}
)

// Infer promotes each string column of t to the most specific type that is
// lossless for every value: a cast is accepted only when no non-null cell
// fails to parse, so no value silently becomes null. Display text is never
// modified. Columns that already carry a non-string type are left alone,
// which makes the procedure idempotent.
func Infer(t *Table) {
	for i := range t.cols {
		if t.cols[i].Type != DTypeString {
			continue
		}
		t.cols[i].Type = inferColumnType(&t.cols[i])
	}
}

func inferColumnType(c *Column) DType {
	nonNull := 0
	for _, isNull := range c.Nulls {
		if !isNull {
			nonNull++
		}
	}
	// An all-null column carries no evidence for any type.
	if nonNull == 0 {
		return c.Type
	}

	for _, dtype := range candidateTypes {
		if columnCastsLosslessly(c, dtype) {
			return dtype
		}
	}
	return DTypeString
}

func columnCastsLosslessly(c *Column, dtype DType) bool {
	for i, cell := range c.Cells {
		if c.Nulls[i] {
			continue
		}
		if !CellParsesAs(cell, dtype) {
			return false
		}
	}
	return true
}

// CellParsesAs reports whether a cell's text is a valid value of dtype.
func CellParsesAs(cell string, dtype DType) bool {
	s := strings.TrimSpace(cell)
	switch dtype {
	case DTypeInt:
		_, err := strconv.ParseInt(s, 10, 64)
		return err == nil
	case DTypeFloat:
		_, err := strconv.ParseFloat(s, 64)
		return err == nil
	case DTypeBool:
		switch strings.ToLower(s) {
		case "true", "false":
			return true
		}
		return false
	case DTypeDate:
		return parsesWithAny(s, dateLayouts)
	case DTypeTime:
		return parsesWithAny(s, timeLayouts)
	case DTypeDateTime:
		return parsesWithAny(s, dateTimeLayouts)
	default:
		return true
	}
}

func parsesWithAny(s string, layouts []string) bool {
	for _, layout := range layouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
