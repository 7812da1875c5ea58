package logic

// Viewport tracks which slice of the event list is on screen
type Viewport struct {
	offset int
	height int
	total  int
}

// NewViewport creates an empty viewport
func NewViewport() *Viewport {
	return &Viewport{height: 1}
}

// Offset returns the index of the first visible row
func (v *Viewport) Offset() int { return v.offset }

// Height returns the number of visible rows
func (v *Viewport) Height() int { return v.height }

// Total returns the number of rows in the list
func (v *Viewport) Total() int { return v.total }

// SetHeight sets the number of visible rows (at least one)
func (v *Viewport) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	v.height = height
	v.clamp()
}

// SetTotal sets the list length
func (v *Viewport) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	v.total = total
	v.clamp()
}

// Range returns the visible rows as a half-open interval
func (v *Viewport) Range() (start, end int) {
	end = v.offset + v.height
	if end > v.total {
		end = v.total
	}
	return v.offset, end
}

// EnsureVisible scrolls the minimum amount needed to show index
func (v *Viewport) EnsureVisible(index int) {
	if index < 0 || index >= v.total {
		return
	}
	// If selected item is above viewport, scroll up
	if index < v.offset {
		v.offset = index
	}
	// If selected item is below viewport, scroll down
	if index >= v.offset+v.height {
		v.offset = index - v.height + 1
	}
	v.clamp()
}

// Scroll moves the viewport by delta rows. Returns false if it did not move.
func (v *Viewport) Scroll(delta int) bool {
	old := v.offset
	v.offset += delta
	v.clamp()
	return v.offset != old
}

// RowAt maps a line inside the viewport to a list index, -1 when the
// line shows no row
func (v *Viewport) RowAt(line int) int {
	if line < 0 || line >= v.height {
		return -1
	}
	index := v.offset + line
	if index >= v.total {
		return -1
	}
	return index
}

// HasAbove reports whether rows are hidden above the viewport
func (v *Viewport) HasAbove() bool { return v.offset > 0 }

// HasBelow reports whether rows are hidden below the viewport
func (v *Viewport) HasBelow() bool { return v.offset+v.height < v.total }

func (v *Viewport) clamp() {
	// The maximum offset should ensure we can still fill the viewport
	maxOffset := v.total - v.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.offset > maxOffset {
		v.offset = maxOffset
	}
	if v.offset < 0 {
		v.offset = 0
	}
}
