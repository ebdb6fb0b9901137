// Package query provides the SQL engine the viewer delegates dataset
// transforms to. The viewer never interprets query grammar itself: it
// registers the active table under a fixed name and hands query strings to
// an Engine verbatim.
package query

import (
	"context"

	"github.com/mwhite/griddle/internal/dataset"
)

// CurrentTableName is the fixed name the active table is registered under
// before the viewer's select/order/filter shortcuts run. The shortcuts
// synthesize plain SELECT statements against this name.
const CurrentTableName = "cur"

// Engine evaluates SQL against registered tables.
// Implemented by SQLiteEngine (in-memory SQLite) and by the DuckDB-backed
// reader used for columnar files.
type Engine interface {
	// Register makes table queryable under name, replacing any previous
	// registration of that name.
	Register(ctx context.Context, name string, table *dataset.Table) error

	// Execute evaluates a query string and returns the result as a new
	// table. The query grammar is entirely the engine's own.
	Execute(ctx context.Context, queryStr string) (*dataset.Table, error)

	// Close releases any resources held by the engine.
	Close() error
}
