package dataset

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewPadsShortRecords(t *testing.T) {
	tbl := New([]string{"a", "b", "c"}, [][]string{
		{"1", "2", "3"},
		{"4"},
	})

	if tbl.Height() != 2 || tbl.Width() != 3 {
		t.Fatalf("got %dx%d, want 2x3", tbl.Height(), tbl.Width())
	}
	if diff := cmp.Diff([]string{"4", "", ""}, tbl.Row(1)); diff != "" {
		t.Errorf("Row(1) mismatch (-want +got):\n%s", diff)
	}
	if !tbl.Columns()[1].Nulls[1] || !tbl.Columns()[2].Nulls[1] {
		t.Error("missing fields should be marked null")
	}
}

func TestEmptyTable(t *testing.T) {
	tbl := New(nil, nil)
	if tbl.Height() != 0 || tbl.Width() != 0 {
		t.Errorf("empty table should be 0x0, got %dx%d", tbl.Height(), tbl.Width())
	}
}

func TestFilterRows(t *testing.T) {
	tbl := New([]string{"name", "city"}, [][]string{
		{"alice", "amsterdam"},
		{"bob", "berlin"},
		{"carol", "amsterdam"},
	})

	got := tbl.FilterRows(func(row []string) bool { return row[1] == "amsterdam" })
	if got.Height() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.Height())
	}
	if diff := cmp.Diff([]string{"carol", "amsterdam"}, got.Row(1)); diff != "" {
		t.Errorf("Row(1) mismatch (-want +got):\n%s", diff)
	}
	// Source table is untouched.
	if tbl.Height() != 3 {
		t.Errorf("filter must not mutate the source table")
	}
}

func TestTakeRowsPreservesTypes(t *testing.T) {
	tbl := New([]string{"n"}, [][]string{{"1"}, {"2"}, {"3"}})
	Infer(tbl)

	got := tbl.TakeRows([]int{2, 0})
	if got.Columns()[0].Type != DTypeInt {
		t.Error("TakeRows should carry the inferred column type")
	}
	if diff := cmp.Diff([]string{"3"}, got.Row(0)); diff != "" {
		t.Errorf("row order mismatch (-want +got):\n%s", diff)
	}
}
