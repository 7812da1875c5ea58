package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Control is a button inside the modal
type Control struct {
	ID      string
	Label   string
	Focused bool
}

// ModalView is the detail dialog of one event
type ModalView struct {
	Title       string
	Heading     string // "<year> – <title>"
	ImageRef    string
	ImageFailed bool
	Description string
	Category    string
	Location    string
	Cause       string
	Controls    []Control
}

const maxModalWidth = 64

// ModalRenderer renders the detail dialog body
type ModalRenderer struct {
	styles *Styles
}

// NewModalRenderer creates a new modal renderer
func NewModalRenderer(styles *Styles) *ModalRenderer {
	return &ModalRenderer{styles: styles}
}

// contentWidth is the text width inside the box for a terminal of width w
func (m *ModalRenderer) contentWidth(w int) int {
	if w <= 0 {
		w = defaultWidth
	}
	frame := m.styles.ModalBox.GetHorizontalFrameSize()
	cw := w - 6 - frame
	if cw > maxModalWidth {
		cw = maxModalWidth
	}
	if cw < 10 {
		cw = 10
	}
	return cw
}

// Render renders the styled dialog box for a terminal of the given width
func (m *ModalRenderer) Render(v ModalView, termWidth int) string {
	cw := m.contentWidth(termWidth)
	wrap := lipgloss.NewStyle().Width(cw)

	var b strings.Builder
	b.WriteString(wrap.Inherit(m.styles.ModalTitle).Render(v.Heading))
	b.WriteString("\n\n")

	if v.ImageFailed || v.ImageRef == "" {
		b.WriteString(wrap.Inherit(m.styles.ImageFallback).Render("[ image unavailable: " + v.Title + " ]"))
	} else {
		b.WriteString(wrap.Inherit(m.styles.Dim).Render("Image: " + v.ImageRef))
	}
	b.WriteString("\n\n")

	if v.Description != "" {
		b.WriteString(wrap.Render(v.Description))
		b.WriteString("\n\n")
	}

	for _, field := range []struct{ label, value string }{
		{"Category", v.Category},
		{"Location", v.Location},
		{"Cause", v.Cause},
	} {
		if field.value == "" {
			continue
		}
		b.WriteString(wrap.Render(m.styles.ModalLabel.Render(field.label+": ") + field.value))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	controls := make([]string, len(v.Controls))
	for i, c := range v.Controls {
		style := m.styles.Control
		if c.Focused {
			style = m.styles.ControlFocus
		}
		controls[i] = style.Render("[" + c.Label + "]")
	}
	b.WriteString(strings.Join(controls, " "))

	return m.styles.ModalBox.Render(b.String())
}
