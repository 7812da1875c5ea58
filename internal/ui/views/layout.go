package views

// Screen layout, top to bottom: title, filter bar, "more above" marker,
// the list rows, "more below" marker, live region, key help.
const (
	PadX          = 1 // horizontal padding of the main container
	TitleLine     = 0
	FilterBarLine = 1
	ListTop       = 3
	FooterLines   = 3

	defaultWidth  = 80
	defaultHeight = 24
)

// ListHeight returns how many rows fit for a terminal of the given height
func ListHeight(height int) int {
	if height <= 0 {
		height = defaultHeight
	}
	h := height - ListTop - FooterLines
	if h < 1 {
		h = 1
	}
	return h
}

// Span is a horizontal screen range [Start, End)
type Span struct {
	Start int
	End   int
}

// Contains reports whether column x falls inside the span
func (s Span) Contains(x int) bool {
	return x >= s.Start && x < s.End
}

// Rect is a screen rectangle
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether the rectangle has no area
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
