package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// Placement returns where a rendered popup sits when centered on screen
func (pr *PopupRenderer) Placement(styledPopup string, width, height int) Rect {
	w := lipgloss.Width(styledPopup)
	h := lipgloss.Height(styledPopup)
	if w > width {
		w = width
	}
	if h > height {
		h = height
	}
	return Rect{X: (width - w) / 2, Y: (height - h) / 2, Width: w, Height: h}
}

// RenderPopupOverlay draws an already styled popup centered over the main
// content. The base is greyed out except for lines mentioning keep.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, styledPopup, keep string, width, height int) string {
	if width <= 0 || height <= 0 {
		return styledPopup
	}
	rect := pr.Placement(styledPopup, width, height)
	base := splitToLines(pr.desaturateKeeping(mainContent, keep), height)
	popup := splitToLines(styledPopup, rect.Height)

	out := make([]string, height)
	for i := 0; i < height; i++ {
		line := padRightANSI(base[i], width)
		if i < rect.Y || i >= rect.Y+rect.Height {
			out[i] = line
			continue
		}
		left := ansi.Truncate(line, rect.X, "")
		segment := padRightANSI(popup[i-rect.Y], rect.Width)
		right := dropColumns(line, rect.X+rect.Width)
		out[i] = padRightANSI(left+segment+right, width)
	}
	return strings.Join(out, "\n")
}

// desaturateKeeping turns everything greyscale except lines containing keep (plain text match)
func (pr *PopupRenderer) desaturateKeeping(s, keep string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		plain := ansi.Strip(line)
		if keep != "" && strings.Contains(plain, keep) {
			continue
		}
		lines[i] = pr.styles.Backdrop.Render(plain)
	}
	return strings.Join(lines, "\n")
}

func splitToLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	truncated := ansi.Truncate(s, cols, "")
	return strings.TrimPrefix(s, truncated)
}

func padRightANSI(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
