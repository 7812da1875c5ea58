package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	inputtypes "timeline/internal/ui/input/types"
)

var errNoProgram = errors.New("program not set")

// HelpRenderer renders the key reference from the key map
type HelpRenderer struct {
	keys inputtypes.KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys inputtypes.KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

type helpSection struct {
	title    string
	bindings []key.Binding
}

func (r *HelpRenderer) sections() []helpSection {
	k := r.keys
	return []helpSection{
		{"Timeline and filters", []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Home, k.End, k.PageUp, k.PageDown, k.Activate}},
		{"Focus", []key.Binding{k.Tab, k.ShiftTab}},
		{"Event details", []key.Binding{k.Close, k.PrevEvent, k.NextEvent}},
		{"Other", []key.Binding{k.Help, k.Quit}},
	}
}

// RenderHelpContent renders the key reference with colors
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	keyWidth := 0
	for _, s := range r.sections() {
		for _, b := range s.bindings {
			if w := lipgloss.Width(b.Help().Key); w > keyWidth {
				keyWidth = w
			}
		}
	}

	var help strings.Builder
	help.WriteString(titleStyle.Render("Timeline Help"))
	help.WriteString("\n")
	for _, s := range r.sections() {
		help.WriteString(sectionStyle.Render(s.title))
		help.WriteString("\n")
		for _, b := range s.bindings {
			h := b.Help()
			pad := strings.Repeat(" ", keyWidth-lipgloss.Width(h.Key)+2)
			help.WriteString(fmt.Sprintf("  %s%s%s\n", keyStyle.Render(h.Key), pad, descStyle.Render(h.Desc)))
		}
	}
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Mouse: click a row to open it, click outside a dialog to close it"))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return errNoProgram
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	configureVimKeyBindings(&config)

	root.SetConfig(config)
	return root.Run()
}

// configureVimKeyBindings adds j/k/g/G movement on top of the default keys
func configureVimKeyBindings(config *oviewer.Config) {
	if config.Keybind == nil {
		config.Keybind = make(map[string][]string)
	}
	config.Keybind["down"] = []string{"Enter", "Down", "ctrl+n", "j"}
	config.Keybind["up"] = []string{"Up", "ctrl+p", "k"}
	config.Keybind["top"] = []string{"Home", "g"}
	config.Keybind["bottom"] = []string{"End", "G"}
}
