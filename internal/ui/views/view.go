package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ReadyMarker is printed in the first line when running under the e2e harness
const ReadyMarker = "__READY__"

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Loading  bool
	Spinner  string
	LoadErr  error
	Location string
	Skipped  int

	Filters        []FilterButton
	Rows           []Row
	ViewportOffset int
	ViewportHeight int
	ScrollLocked   bool

	Modal *ModalView

	LiveMessage   string
	LiveAssertive bool

	HelpModel   help.Model
	KeyMap      help.KeyMap
	ShowHelp    bool
	HelpContent string

	ShowReadyMarker bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles         *Styles
	timelineRender *TimelineRenderer
	filterRender   *FilterBarRenderer
	modalRender    *ModalRenderer
	popupRender    *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:         styles,
		timelineRender: NewTimelineRenderer(styles),
		filterRender:   NewFilterBarRenderer(styles),
		modalRender:    NewModalRenderer(styles),
		popupRender:    NewPopupRenderer(styles),
	}
}

func dimensions(state ViewState) (int, int) {
	w, h := state.Width, state.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width, height := dimensions(state)
	inner := width - 2*PadX

	lines := make([]string, 0, height)
	lines = append(lines, r.renderTitle(state, inner))
	lines = append(lines, r.filterRender.Render(state.Filters))

	listHeight := state.ViewportHeight
	if listHeight <= 0 {
		listHeight = ListHeight(height)
	}

	above, below := "", ""
	var body []string
	switch {
	case state.Loading:
		body = []string{r.styles.Dim.Render(fmt.Sprintf("%s Loading timeline events...", state.Spinner))}
	case state.LoadErr != nil:
		alert := r.styles.Alert.Width(inner - 2).Render(
			fmt.Sprintf("Could not load timeline events from %s\n%v", state.Location, state.LoadErr))
		body = strings.Split(alert, "\n")
	case len(state.Rows) == 0:
		body = []string{r.styles.Dim.Render("No events found")}
	default:
		body = r.timelineRender.RenderRows(state.Rows, state.ViewportOffset, listHeight, inner)
		if state.ViewportOffset > 0 {
			above = r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above", state.ViewportOffset))
		}
		if rest := len(state.Rows) - state.ViewportOffset - listHeight; rest > 0 {
			below = r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below", rest))
		}
	}
	lines = append(lines, above)
	for i := 0; i < listHeight; i++ {
		if i < len(body) {
			lines = append(lines, body[i])
		} else {
			lines = append(lines, "")
		}
	}
	lines = append(lines, below)
	lines = append(lines, r.renderLiveRegion(state))
	lines = append(lines, r.renderHelpLine(state))

	for i, line := range lines {
		lines[i] = ansi.Truncate(line, inner, "")
	}
	main := r.styles.Main.MaxHeight(height).Render(strings.Join(lines, "\n"))

	out := main
	if state.Modal != nil {
		box := r.modalRender.Render(*state.Modal, width)
		out = r.popupRender.RenderPopupOverlay(out, box, state.Modal.Title, width, height)
	}
	if state.ShowHelp && state.HelpContent != "" {
		box := r.styles.HelpBox.Render(state.HelpContent)
		out = r.popupRender.RenderPopupOverlay(out, box, "", width, height)
	}
	return out
}

func (r *Renderer) renderTitle(state ViewState, width int) string {
	logo := r.styles.Title.Render("timeline")
	if state.ShowReadyMarker {
		logo += " " + r.styles.Dim.Render(ReadyMarker)
	}

	var indicators []string
	if state.ScrollLocked {
		indicators = append(indicators, "scroll locked")
	}
	if state.Skipped > 0 {
		indicators = append(indicators, fmt.Sprintf("%d skipped", state.Skipped))
	}
	if state.Location != "" {
		indicators = append(indicators, state.Location)
	}
	if len(indicators) == 0 {
		return logo
	}

	right := r.styles.Dim.Render(strings.Join(indicators, " | "))
	padding := width - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

// renderLiveRegion shows the pending announcement, assertive over polite
func (r *Renderer) renderLiveRegion(state ViewState) string {
	if state.LiveMessage == "" {
		return ""
	}
	if state.LiveAssertive {
		return r.styles.LiveAssertive.Render(state.LiveMessage)
	}
	return r.styles.LivePolite.Render(state.LiveMessage)
}

func (r *Renderer) renderHelpLine(state ViewState) string {
	if state.KeyMap == nil {
		return r.styles.Help.Render("Press ? for help")
	}
	return state.HelpModel.View(state.KeyMap)
}

// FilterHit returns the index of the filter button at column x, or -1
func (r *Renderer) FilterHit(state ViewState, x int) int {
	return r.filterRender.Hit(state.Filters, x)
}

// ModalRect returns the screen area of the detail dialog, empty when closed
func (r *Renderer) ModalRect(state ViewState) Rect {
	if state.Modal == nil {
		return Rect{}
	}
	width, height := dimensions(state)
	box := r.modalRender.Render(*state.Modal, width)
	return r.popupRender.Placement(box, width, height)
}
