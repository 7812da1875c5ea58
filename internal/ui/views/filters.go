package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FilterButton is one category button of the filter bar
type FilterButton struct {
	Name    string
	Count   int
	Applied bool // the filter currently shown
	Focused bool // holds the roving tab stop and keyboard focus
}

const filterBarPrefix = "Filter: "

// FilterBarRenderer renders the category buttons and locates them on screen
type FilterBarRenderer struct {
	styles *Styles
}

// NewFilterBarRenderer creates a new filter bar renderer
func NewFilterBarRenderer(styles *Styles) *FilterBarRenderer {
	return &FilterBarRenderer{styles: styles}
}

func buttonText(b FilterButton) string {
	text := fmt.Sprintf(" %s (%d) ", b.Name, b.Count)
	if b.Applied {
		text = fmt.Sprintf("[%s (%d)]", b.Name, b.Count)
	}
	return text
}

// Render renders the filter bar
func (f *FilterBarRenderer) Render(buttons []FilterButton) string {
	if len(buttons) == 0 {
		return ""
	}
	parts := []string{f.styles.Dim.Render(filterBarPrefix)}
	for i, b := range buttons {
		style := f.styles.Filter
		switch {
		case b.Focused:
			style = f.styles.FilterFocused
		case b.Applied:
			style = f.styles.FilterActive
		}
		if i > 0 {
			parts = append(parts, " ")
		}
		parts = append(parts, style.Render(buttonText(b)))
	}
	return strings.Join(parts, "")
}

// Spans returns the screen columns each button occupies, in button order
func (f *FilterBarRenderer) Spans(buttons []FilterButton) []Span {
	spans := make([]Span, len(buttons))
	x := PadX + lipgloss.Width(filterBarPrefix)
	for i, b := range buttons {
		if i > 0 {
			x++
		}
		w := lipgloss.Width(buttonText(b))
		spans[i] = Span{Start: x, End: x + w}
		x += w
	}
	return spans
}

// Hit returns the index of the button under column x, or -1
func (f *FilterBarRenderer) Hit(buttons []FilterButton, x int) int {
	for i, s := range f.Spans(buttons) {
		if s.Contains(x) {
			return i
		}
	}
	return -1
}
