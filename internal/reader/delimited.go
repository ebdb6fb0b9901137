package reader

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/mwhite/griddle/internal/dataset"
)

// readDelimited reads a CSV/TSV file. Records may have varying field
// counts; short records become null-padded rows.
func readDelimited(path string, opts Options) (*dataset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "open file")
	}
	defer f.Close()

	r := csv.NewReader(f)
	if opts.Separator != 0 {
		r.Comma = opts.Separator
	}
	r.FieldsPerRecord = -1 // tolerate ragged rows
	r.LazyQuotes = true

	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "parse delimited record")
		}
		records = append(records, record)
	}

	width := 0
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}

	var headers []string
	if opts.HasHeader && len(records) > 0 {
		headers = records[0]
		records = records[1:]
		for len(headers) < width {
			headers = append(headers, defaultHeaders(width)[len(headers)])
		}
	} else {
		headers = defaultHeaders(width)
	}

	return dataset.New(headers, records), nil
}
