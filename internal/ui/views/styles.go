package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Filter        lipgloss.Style
	FilterActive  lipgloss.Style
	FilterFocused lipgloss.Style
	Row           lipgloss.Style
	RowFocused    lipgloss.Style
	Year          lipgloss.Style
	Category      lipgloss.Style
	Alert         lipgloss.Style
	LivePolite    lipgloss.Style
	LiveAssertive lipgloss.Style
	ModalBox      lipgloss.Style
	ModalTitle    lipgloss.Style
	ModalLabel    lipgloss.Style
	ImageFallback lipgloss.Style
	Control       lipgloss.Style
	ControlFocus  lipgloss.Style
	HelpBox       lipgloss.Style
	Backdrop      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Dim:    lipgloss.NewStyle().Faint(true),
		Help:   lipgloss.NewStyle().Faint(true),
		Main:   lipgloss.NewStyle().Padding(0, PadX),
		Scroll: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		FilterActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // yellow
			Bold(true),
		FilterFocused: lipgloss.NewStyle().
			Background(lipgloss.Color("33")).
			Foreground(lipgloss.Color("231")),
		Row:        lipgloss.NewStyle(),
		RowFocused: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Year:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")), // cyan
		Category:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Alert: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("203")).
			Foreground(lipgloss.Color("203")).
			Padding(0, 1),
		LivePolite:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		LiveAssertive: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		ModalBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		ModalTitle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		ModalLabel:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		ImageFallback: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Control:       lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("252")),
		ControlFocus: lipgloss.NewStyle().
			Padding(0, 1).
			Background(lipgloss.Color("33")).
			Foreground(lipgloss.Color("231")).
			Bold(true),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		Backdrop: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// CategoryColor returns a stable color for a category name
func CategoryColor(category string) string {
	palette := []string{"78", "33", "214", "203", "51", "170"}
	sum := 0
	for _, r := range category {
		sum += int(r)
	}
	return palette[sum%len(palette)]
}
