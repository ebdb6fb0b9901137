package tui

import "math/rand"

// Viewport tracks a selection cursor and the visible window over an ordered
// row sequence. All mutations keep the invariants
// offset <= selected <= offset+pageSize-1 (when pageSize > 0) and
// selected < total (when total > 0).
type Viewport struct {
	selected int
	offset   int
	pageSize int
	total    int
}

// NewViewport returns a viewport at the top of a sequence of total rows.
func NewViewport(total, pageSize int) Viewport {
	v := Viewport{total: total, pageSize: pageSize}
	v.clamp()
	return v
}

func (v Viewport) Selected() int { return v.selected }
func (v Viewport) Offset() int   { return v.offset }
func (v Viewport) PageSize() int { return v.pageSize }
func (v Viewport) Total() int    { return v.total }

// Window returns the visible slice bounds: offset and row count.
func (v Viewport) Window() (offset, count int) {
	count = v.pageSize
	if v.offset+count > v.total {
		count = v.total - v.offset
	}
	if count < 0 {
		count = 0
	}
	return v.offset, count
}

// Select moves the cursor to i, saturating at both ends. Out-of-range input
// is never an error.
func (v *Viewport) Select(i int) {
	v.selected = i
	v.clamp()
}

// SelectRelative moves the cursor by delta with saturating arithmetic.
func (v *Viewport) SelectRelative(delta int) {
	v.Select(v.selected + delta)
}

func (v *Viewport) SelectFirst() { v.Select(0) }

func (v *Viewport) SelectLast() { v.Select(v.total - 1) }

// SelectRandom draws a row uniformly from [0, total).
func (v *Viewport) SelectRandom() {
	if v.total <= 0 {
		return
	}
	v.Select(rand.Intn(v.total))
}

// SetPageSize records the rendered row count so page movement adapts to
// terminal resizes between keystrokes.
func (v *Viewport) SetPageSize(n int) {
	if n < 1 {
		n = 1
	}
	v.pageSize = n
	v.clamp()
}

// Reset replaces the underlying dataset: cursor and window return to the
// top. Row identity is not stable across a transform, so the prior
// position is never preserved.
func (v *Viewport) Reset(total int) {
	v.selected = 0
	v.offset = 0
	v.total = total
	if v.total < 0 {
		v.total = 0
	}
}

func (v *Viewport) clamp() {
	if v.total <= 0 {
		v.selected = 0
		v.offset = 0
		return
	}
	if v.selected < 0 {
		v.selected = 0
	}
	if v.selected >= v.total {
		v.selected = v.total - 1
	}
	v.offset = calculateScrollOffset(v.selected, v.offset, v.pageSize)
}

// calculateScrollOffset computes the new scroll offset to keep cursor
// visible within pageSize.
func calculateScrollOffset(cursor, currentOffset, pageSize int) int {
	if cursor < currentOffset {
		return cursor
	}
	if pageSize > 0 && cursor >= currentOffset+pageSize {
		return cursor - pageSize + 1
	}
	return currentOffset
}

// Scroll is a clamped 1-D line offset for the detail sheet. Total line
// count depends on terminal width, so Adjust re-clamps on every render
// instead of caching bounds.
type Scroll struct {
	offset int
}

func (s Scroll) Offset() int { return s.offset }

// Adjust clamps the offset into [0, max(0, totalLines-height)].
func (s *Scroll) Adjust(totalLines, height int) {
	max := totalLines - height
	if max < 0 {
		max = 0
	}
	if s.offset > max {
		s.offset = max
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

// Up moves one line toward the top, saturating at 0.
func (s *Scroll) Up() {
	if s.offset > 0 {
		s.offset--
	}
}

// Down moves one line toward the bottom; the next Adjust call clamps it.
func (s *Scroll) Down() {
	s.offset++
}
