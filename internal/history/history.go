// Package history keeps a bounded, insertion-ordered log of committed
// palette commands. The log is capacity-bounded with FIFO eviction and is
// iterated most-recent-first when feeding palette suggestions.
package history

import (
	"bufio"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// DefaultCapacity bounds the ring when the config does not override it.
const DefaultCapacity = 1000

// Ring is a bounded command log. The zero value is not usable; use New.
type Ring struct {
	entries  []string
	capacity int
}

// New creates an empty ring with the given capacity. Non-positive
// capacities fall back to DefaultCapacity.
func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{capacity: capacity}
}

// Push appends a committed command, evicting the oldest entry when full.
// Blank commands are ignored.
func (r *Ring) Push(command string) {
	command = strings.TrimSpace(command)
	if command == "" {
		return
	}
	r.entries = append(r.entries, command)
	if len(r.entries) > r.capacity {
		r.entries = r.entries[len(r.entries)-r.capacity:]
	}
}

// Len returns the number of stored entries.
func (r *Ring) Len() int {
	return len(r.entries)
}

// Iter returns the stored commands most-recent-first.
func (r *Ring) Iter() []string {
	out := make([]string, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, r.entries[i])
	}
	return out
}

// Recent returns at most n commands, most-recent-first. Used to bound the
// suggestion feed for the palette.
func (r *Ring) Recent(n int) []string {
	all := r.Iter()
	if n < len(all) {
		all = all[:n]
	}
	return all
}

// Load reads a history file (one command per line, oldest first) into a new
// ring. A missing file yields an empty ring, not an error.
func Load(path string, capacity int) (*Ring, error) {
	r := New(capacity)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, eris.Wrap(err, "open history file")
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		r.Push(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "read history file")
	}
	return r, nil
}

// Save writes the ring to path, oldest first, so a later Load reproduces
// the same iteration order.
func (r *Ring) Save(path string) error {
	var sb strings.Builder
	for _, entry := range r.entries {
		sb.WriteString(entry)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return eris.Wrap(err, "write history file")
	}
	return nil
}
