package reader

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rotisserie/eris"

	"github.com/mwhite/griddle/internal/dataset"
)

// readParquet loads a parquet file through DuckDB's read_parquet scanner.
// The column types DuckDB reports are carried onto the resulting table.
func readParquet(path string) (*dataset.Table, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, eris.Wrap(err, "open duckdb")
	}
	defer db.Close()

	rows, err := db.Query("SELECT * FROM read_parquet(?)", path)
	if err != nil {
		return nil, eris.Wrap(err, "read parquet")
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, eris.Wrap(err, "result columns")
	}

	cols := make([]dataset.Column, len(names))
	for i, name := range names {
		cols[i] = dataset.Column{Name: name}
	}
	seen := make([]dataset.DType, len(names))
	mixed := make([]bool, len(names))
	hasValue := make([]bool, len(names))

	dest := make([]any, len(names))
	for i := range dest {
		dest[i] = new(any)
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, eris.Wrap(err, "scan parquet row")
		}
		for i := range cols {
			cell, dtype, isNull := displayValue(*(dest[i].(*any)))
			cols[i].Cells = append(cols[i].Cells, cell)
			cols[i].Nulls = append(cols[i].Nulls, isNull)
			if isNull {
				continue
			}
			if !hasValue[i] {
				seen[i] = dtype
				hasValue[i] = true
			} else if seen[i] != dtype {
				mixed[i] = true
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "iterate parquet rows")
	}

	for i := range cols {
		if hasValue[i] && !mixed[i] {
			cols[i].Type = seen[i]
		}
	}
	return dataset.FromColumns(cols), nil
}

// displayValue renders a DuckDB driver value as display text and the
// column type it implies.
func displayValue(v any) (cell string, dtype dataset.DType, isNull bool) {
	switch val := v.(type) {
	case nil:
		return "", dataset.DTypeString, true
	case int8:
		return strconv.FormatInt(int64(val), 10), dataset.DTypeInt, false
	case int16:
		return strconv.FormatInt(int64(val), 10), dataset.DTypeInt, false
	case int32:
		return strconv.FormatInt(int64(val), 10), dataset.DTypeInt, false
	case int64:
		return strconv.FormatInt(val, 10), dataset.DTypeInt, false
	case uint64:
		return strconv.FormatUint(val, 10), dataset.DTypeInt, false
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32), dataset.DTypeFloat, false
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), dataset.DTypeFloat, false
	case bool:
		return strconv.FormatBool(val), dataset.DTypeBool, false
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format("2006-01-02"), dataset.DTypeDate, false
		}
		return val.Format("2006-01-02 15:04:05"), dataset.DTypeDateTime, false
	case []byte:
		return fmt.Sprintf("Blob (Length: %d)", len(val)), dataset.DTypeString, false
	case string:
		return val, dataset.DTypeString, false
	default:
		return fmt.Sprintf("%v", val), dataset.DTypeString, false
	}
}
