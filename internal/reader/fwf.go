package reader

import (
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/mwhite/griddle/internal/dataset"
)

// readFwf reads a fixed-width file. When opts.Widths is empty, column
// boundaries are inferred from the columns of whitespace shared by every
// line (see InferWidths).
func readFwf(path string, opts Options) (*dataset.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "open file")
	}

	lines := splitLines(string(data))
	widths := opts.Widths
	if len(widths) == 0 {
		widths = InferWidths(lines)
	}

	records := make([][]string, 0, len(lines))
	for _, line := range lines {
		records = append(records, sliceFields(line, widths))
	}

	var headers []string
	if opts.HasHeader && len(records) > 0 {
		headers = records[0]
		records = records[1:]
	} else {
		headers = defaultHeaders(len(widths))
	}

	return dataset.New(headers, records), nil
}

func splitLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// sliceFields cuts a line into trimmed fields of the given rune widths,
// skipping one separator character between consecutive fields. Fields past
// the end of a short line are empty.
func sliceFields(line string, widths []int) []string {
	runes := []rune(line)
	fields := make([]string, len(widths))
	pos := 0
	for i, w := range widths {
		end := pos + w
		if pos > len(runes) {
			pos = len(runes)
		}
		if end > len(runes) {
			end = len(runes)
		}
		fields[i] = strings.TrimSpace(string(runes[pos:end]))
		pos += w + 1 // skip the separator column
	}
	return fields
}

// InferWidths derives fixed-width column widths from lines of text. For
// every line it records the set of rune indices holding whitespace; the
// intersection across all lines gives the candidate separator positions,
// with the longest line length appended as the end sentinel. Walking the
// sorted candidates, a new column starts wherever two consecutive
// candidates are not adjacent: a run of two or more shared whitespace
// columns acts as a field separator, while an isolated shared whitespace
// column is a single separator character rather than padding.
//
// A file with no shared whitespace column at all yields a single column
// spanning the longest line.
func InferWidths(lines []string) []int {
	if len(lines) == 0 {
		return nil
	}

	maxLen := 0
	var shared map[int]bool
	for i, line := range lines {
		length := 0
		spaces := make(map[int]bool)
		for idx, r := range []rune(line) {
			length++
			if r == ' ' || r == '\t' {
				spaces[idx] = true
			}
		}
		if length > maxLen {
			maxLen = length
		}
		if i == 0 {
			shared = spaces
			continue
		}
		for idx := range shared {
			if !spaces[idx] {
				delete(shared, idx)
			}
		}
	}

	candidates := make([]int, 0, len(shared)+1)
	for idx := range shared {
		candidates = append(candidates, idx)
	}
	candidates = append(candidates, maxLen)
	sort.Ints(candidates)

	var widths []int
	start := 0
	for i, idx := range candidates {
		if i+1 < len(candidates) {
			if candidates[i+1]-idx > 1 {
				widths = append(widths, idx-start)
				start = idx + 1
			}
		} else {
			widths = append(widths, idx-start)
		}
	}
	return widths
}
