package reader

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mwhite/griddle/internal/dataset"
)

func TestReadCSVWithHeader(t *testing.T) {
	path := writeTemp(t, "people.csv", "name,age,score\nalice,30,1.5\nbob,25,2.0\n")
	table, err := ReadFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if diff := cmp.Diff([]string{"name", "age", "score"}, table.ColumnNames()); diff != "" {
		t.Errorf("column names mismatch (-want +got):\n%s", diff)
	}
	cols := table.Columns()
	if cols[0].Type != dataset.DTypeString || cols[1].Type != dataset.DTypeInt || cols[2].Type != dataset.DTypeFloat {
		t.Errorf("column types = %v, %v, %v; want String, Int, Float", cols[0].Type, cols[1].Type, cols[2].Type)
	}
	if diff := cmp.Diff([]string{"bob", "25", "2.0"}, table.Row(1)); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVRaggedRows(t *testing.T) {
	path := writeTemp(t, "ragged.csv", "a,b,c\n1,2,3\n4,5\n")
	table, err := ReadFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if table.Height() != 2 {
		t.Fatalf("Height() = %d, want 2", table.Height())
	}
	if !table.Columns()[2].Nulls[1] {
		t.Errorf("missing trailing field should be null")
	}
	if diff := cmp.Diff([]string{"4", "5", ""}, table.Row(1)); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTSVByExtension(t *testing.T) {
	path := writeTemp(t, "data.tsv", "x\ty\n1\thello world\n")
	table, err := ReadFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if diff := cmp.Diff([]string{"x", "y"}, table.ColumnNames()); diff != "" {
		t.Errorf("column names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "hello world"}, table.Row(0)); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVNoHeader(t *testing.T) {
	path := writeTemp(t, "bare.csv", "1,2\n3,4\n")
	opts := DefaultOptions()
	opts.HasHeader = false
	table, err := ReadFile(path, opts)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if diff := cmp.Diff([]string{"column_1", "column_2"}, table.ColumnNames()); diff != "" {
		t.Errorf("column names mismatch (-want +got):\n%s", diff)
	}
	if table.Height() != 2 {
		t.Errorf("Height() = %d, want 2", table.Height())
	}
}

func TestReadCSVCustomSeparator(t *testing.T) {
	path := writeTemp(t, "semi.csv", "a;b\n1;2\n")
	opts := DefaultOptions()
	opts.Separator = ';'
	table, err := ReadFile(path, opts)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if diff := cmp.Diff([]string{"a", "b"}, table.ColumnNames()); diff != "" {
		t.Errorf("column names mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVInferOff(t *testing.T) {
	path := writeTemp(t, "raw.csv", "n\n42\n")
	opts := DefaultOptions()
	opts.InferMode = dataset.InferOff
	table, err := ReadFile(path, opts)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if got := table.Columns()[0].Type; got != dataset.DTypeString {
		t.Errorf("column type = %v, want String with inference off", got)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile("/nonexistent/nope.csv", DefaultOptions()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in     string
		want   Format
		wantOK bool
	}{
		{"", FormatAuto, true},
		{"auto", FormatAuto, true},
		{"csv", FormatCSV, true},
		{"CSV", FormatCSV, true},
		{"tsv", FormatTSV, true},
		{"fwf", FormatFwf, true},
		{"parquet", FormatParquet, true},
		{"xlsx", FormatAuto, false},
	}
	for _, tc := range cases {
		got, ok := ParseFormat(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("ParseFormat(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestFormatFromExtension(t *testing.T) {
	cases := []struct {
		path string
		want Format
	}{
		{"data.csv", FormatCSV},
		{"data.tsv", FormatTSV},
		{"data.tab", FormatTSV},
		{"data.fwf", FormatFwf},
		{"data.txt", FormatFwf},
		{"data.parquet", FormatParquet},
		{"data.unknown", FormatCSV},
	}
	for _, tc := range cases {
		if got := formatFromExtension(tc.path); got != tc.want {
			t.Errorf("formatFromExtension(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
