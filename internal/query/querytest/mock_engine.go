// Package querytest provides a shared test double for the query.Engine
// interface.
package querytest

import (
	"context"
	"fmt"

	"github.com/mwhite/griddle/internal/dataset"
	"github.com/mwhite/griddle/internal/query"
)

// MockEngine implements query.Engine for testing. Each method delegates to
// an optional function field; when the field is nil, canned values are
// returned and calls are recorded for later assertions.
type MockEngine struct {
	// Result is returned from Execute when ExecuteFunc is nil.
	Result *dataset.Table

	// Registered maps registration names to the last table registered
	// under that name.
	Registered map[string]*dataset.Table

	// Queries records every query string passed to Execute, in order.
	Queries []string

	// Optional overrides.
	RegisterFunc func(ctx context.Context, name string, table *dataset.Table) error
	ExecuteFunc  func(ctx context.Context, queryStr string) (*dataset.Table, error)
}

// Compile-time check.
var _ query.Engine = (*MockEngine)(nil)

func (m *MockEngine) Register(ctx context.Context, name string, table *dataset.Table) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, table)
	}
	if m.Registered == nil {
		m.Registered = make(map[string]*dataset.Table)
	}
	m.Registered[name] = table
	return nil
}

func (m *MockEngine) Execute(ctx context.Context, queryStr string) (*dataset.Table, error) {
	m.Queries = append(m.Queries, queryStr)
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, queryStr)
	}
	if m.Result == nil {
		return nil, fmt.Errorf("mock engine has no result configured")
	}
	return m.Result, nil
}

func (m *MockEngine) Close() error { return nil }
