package query

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rotisserie/eris"

	"github.com/mwhite/griddle/internal/dataset"
)

// SQLiteEngine implements Engine on an in-memory SQLite database.
// Registered tables are materialized as real SQLite tables so the full
// SQLite SELECT grammar (WHERE, ORDER BY, joins, aggregates) is available
// to user queries.
type SQLiteEngine struct {
	db *sql.DB
}

// NewSQLiteEngine opens a fresh in-memory SQLite database.
func NewSQLiteEngine() (*SQLiteEngine, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, eris.Wrap(err, "open sqlite")
	}
	// The engine is used from a single event loop; a second connection
	// would see a different :memory: database.
	db.SetMaxOpenConns(1)
	return &SQLiteEngine{db: db}, nil
}

// Close implements Engine.
func (e *SQLiteEngine) Close() error {
	return e.db.Close()
}

// Register implements Engine. Any existing table with the same name is
// dropped first.
func (e *SQLiteEngine) Register(ctx context.Context, name string, table *dataset.Table) error {
	qname := quoteIdent(name)
	if _, err := e.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+qname); err != nil {
		return eris.Wrapf(err, "drop table %s", name)
	}

	cols := table.Columns()
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = quoteIdent(c.Name) + " " + sqliteType(c.Type)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", qname, strings.Join(defs, ", "))
	if _, err := e.db.ExecContext(ctx, create); err != nil {
		return eris.Wrapf(err, "create table %s", name)
	}

	if table.Height() == 0 {
		return nil
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "begin insert transaction")
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)", qname, placeholders))
	if err != nil {
		return eris.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for r := 0; r < table.Height(); r++ {
		for c := range cols {
			args[c] = bindValue(cols[c], r)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return eris.Wrapf(err, "insert row %d", r)
		}
	}
	return tx.Commit()
}

// Execute implements Engine. Result columns take their types from the
// driver where the driver reports one; text columns are re-normalized
// through dataset inference so a query result behaves like a fresh load.
func (e *SQLiteEngine) Execute(ctx context.Context, queryStr string) (*dataset.Table, error) {
	rows, err := e.db.QueryContext(ctx, queryStr)
	if err != nil {
		return nil, eris.Wrap(err, "execute query")
	}
	defer rows.Close()

	table, err := scanRows(rows)
	if err != nil {
		return nil, err
	}
	dataset.Infer(table)
	return table, nil
}

// scanRows drains a result set into a Table.
func scanRows(rows *sql.Rows) (*dataset.Table, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, eris.Wrap(err, "result columns")
	}

	cols := make([]dataset.Column, len(names))
	for i, name := range names {
		cols[i] = dataset.Column{Name: name}
	}
	// Tracks whether every non-null value in a column shared one driver
	// type; mixed columns fall back to string.
	seen := make([]dataset.DType, len(names))
	mixed := make([]bool, len(names))
	hasValue := make([]bool, len(names))

	dest := make([]any, len(names))
	for i := range dest {
		dest[i] = new(any)
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, eris.Wrap(err, "scan row")
		}
		for i := range cols {
			v := *(dest[i].(*any))
			cell, dtype, isNull := fromDriverValue(v)
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
		return nil, eris.Wrap(err, "iterate rows")
	}

	for i := range cols {
		if hasValue[i] && !mixed[i] {
			cols[i].Type = seen[i]
		}
	}
	return dataset.FromColumns(cols), nil
}

// fromDriverValue converts a scanned driver value to display text plus the
// column type it implies.
func fromDriverValue(v any) (cell string, dtype dataset.DType, isNull bool) {
	switch val := v.(type) {
	case nil:
		return "", dataset.DTypeString, true
	case int64:
		return strconv.FormatInt(val, 10), dataset.DTypeInt, false
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), dataset.DTypeFloat, false
	case bool:
		return strconv.FormatBool(val), dataset.DTypeBool, false
	case time.Time:
		return val.Format("2006-01-02 15:04:05"), dataset.DTypeDateTime, false
	case []byte:
		return string(val), dataset.DTypeString, false
	case string:
		return val, dataset.DTypeString, false
	default:
		return fmt.Sprintf("%v", val), dataset.DTypeString, false
	}
}

// bindValue converts one cell to a driver argument, preserving the
// column's inferred type so SQLite stores typed values.
func bindValue(c dataset.Column, row int) any {
	if c.Nulls[row] {
		return nil
	}
	cell := c.Cells[row]
	s := strings.TrimSpace(cell)
	switch c.Type {
	case dataset.DTypeInt:
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v
		}
	case dataset.DTypeFloat:
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	case dataset.DTypeBool:
		if v, err := strconv.ParseBool(strings.ToLower(s)); err == nil {
			return v
		}
	}
	return cell
}

// sqliteType maps a column type to a SQLite column affinity.
func sqliteType(t dataset.DType) string {
	switch t {
	case dataset.DTypeInt:
		return "INTEGER"
	case dataset.DTypeFloat:
		return "REAL"
	case dataset.DTypeBool:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

// quoteIdent quotes an identifier for use in DDL.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
