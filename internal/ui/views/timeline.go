package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Row is one timeline entry as displayed in the list
type Row struct {
	Year     string
	Title    string
	Category string
	Location string
	Focused  bool // holds the roving tab stop
}

// yearWidth is wide enough for "66000000 BCE"
const yearWidth = 12

// TimelineRenderer handles rendering of timeline rows
type TimelineRenderer struct {
	styles *Styles
}

// NewTimelineRenderer creates a new timeline renderer
func NewTimelineRenderer(styles *Styles) *TimelineRenderer {
	return &TimelineRenderer{styles: styles}
}

// RenderRow renders a single row padded or truncated to width
func (t *TimelineRenderer) RenderRow(row Row, width int) string {
	bg := lipgloss.NewStyle()
	marker := "  "
	if row.Focused {
		bg = t.styles.RowFocused
		marker = "▸ "
	}

	year := fmt.Sprintf("%*s", yearWidth, row.Year)
	parts := []string{
		bg.Render(marker),
		t.styles.Year.Inherit(bg).Render(year),
		bg.Render("  "),
		bg.Bold(row.Focused).Render(row.Title),
	}
	if row.Category != "" {
		category := lipgloss.NewStyle().Foreground(lipgloss.Color(CategoryColor(row.Category))).Inherit(bg)
		parts = append(parts, bg.Render(" · "), category.Render(row.Category))
	}
	if row.Location != "" {
		parts = append(parts, bg.Render(" · "), t.styles.Dim.Inherit(bg).Render(row.Location))
	}
	line := strings.Join(parts, "")

	if width <= 0 {
		return line
	}
	line = ansi.Truncate(line, width, "…")
	if row.Focused {
		if w := lipgloss.Width(line); w < width {
			line += bg.Render(strings.Repeat(" ", width-w))
		}
	}
	return line
}

// RenderRows renders the rows inside the viewport window [offset, offset+height)
func (t *TimelineRenderer) RenderRows(rows []Row, offset, height, width int) []string {
	lines := make([]string, 0, height)
	for i := offset; i < len(rows) && len(lines) < height; i++ {
		lines = append(lines, t.RenderRow(rows[i], width))
	}
	return lines
}
