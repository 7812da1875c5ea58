package viewmodels

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"

	"timeline/internal/categories"
	"timeline/internal/logic"
	uilogic "timeline/internal/ui/logic"
	"timeline/internal/ui/services/roving"
	"timeline/internal/ui/state"
	"timeline/internal/ui/surface"
	"timeline/internal/ui/views"
)

// Element IDs of the page and the detail dialog
const (
	FiltersGroupID  surface.ElementID = "filters"
	TimelineGroupID surface.ElementID = "timeline"

	ModalID       surface.ElementID = "modal"
	ModalTitleID  surface.ElementID = "modal-title"
	ModalImageID  surface.ElementID = "modal-image"
	ModalCloseID  surface.ElementID = "modal-close"
	ModalPrevID   surface.ElementID = "modal-prev"
	ModalNextID   surface.ElementID = "modal-next"
)

const (
	filterPrefix = "filter:"
	eventPrefix  = "event:"
)

// FilterElementID returns the element of the filter button for category
func FilterElementID(category string) surface.ElementID {
	return surface.ElementID(filterPrefix + category)
}

// EventElementID returns the element of the list row for an event
func EventElementID(eventID string) surface.ElementID {
	return surface.ElementID(eventPrefix + eventID)
}

// EventIDFromElement returns the event rendered as element id
func EventIDFromElement(id surface.ElementID) (string, bool) {
	s := string(id)
	if !strings.HasPrefix(s, eventPrefix) {
		return "", false
	}
	return strings.TrimPrefix(s, eventPrefix), true
}

// ModalControls lists the dialog buttons in tab order with their labels
var ModalControls = []struct {
	ID    surface.ElementID
	Label string
}{
	{ModalCloseID, "Close"},
	{ModalPrevID, "Previous"},
	{ModalNextID, "Next"},
}

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state    *state.AppState
	doc      *surface.Document
	store    logic.EventStore
	index    categories.CategoryIndex
	timeline *roving.Service
	filters  *roving.Service
	viewport *uilogic.Viewport

	width       int
	height      int
	help        help.Model
	keys        help.KeyMap
	spinner     string
	readyMarker bool
	helpContent string
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, doc *surface.Document, store logic.EventStore, index categories.CategoryIndex,
	timeline, filters *roving.Service, viewport *uilogic.Viewport) *ViewModel {
	return &ViewModel{
		state:    appState,
		doc:      doc,
		store:    store,
		index:    index,
		timeline: timeline,
		filters:  filters,
		viewport: viewport,
		help:     help.New(),
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width
}

// SetHelp sets the key map shown in the footer
func (vm *ViewModel) SetHelp(keys help.KeyMap) {
	vm.keys = keys
}

// SetHelpContent sets the text of the inline help overlay
func (vm *ViewModel) SetHelpContent(content string) {
	vm.helpContent = content
}

// SetSpinner sets the current spinner frame
func (vm *ViewModel) SetSpinner(frame string) {
	vm.spinner = frame
}

// SetReadyMarker toggles the e2e readiness marker
func (vm *ViewModel) SetReadyMarker(on bool) {
	vm.readyMarker = on
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	vs := views.ViewState{
		Width:           vm.width,
		Height:          vm.height,
		Loading:         vm.state.Loading,
		Spinner:         vm.spinner,
		LoadErr:         vm.state.LoadErr,
		Location:        vm.state.Location,
		Skipped:         vm.state.Skipped,
		Filters:         vm.buildFilters(),
		Rows:            vm.buildRows(),
		ViewportOffset:  vm.viewport.Offset(),
		ViewportHeight:  vm.viewport.Height(),
		ScrollLocked:    vm.doc.ScrollLocked(),
		Modal:           vm.buildModal(),
		HelpModel:       vm.help,
		KeyMap:          vm.keys,
		ShowHelp:        vm.state.ShowHelp,
		HelpContent:     vm.helpContent,
		ShowReadyMarker: vm.readyMarker,
	}
	if msg := vm.doc.LiveRegion(surface.Assertive); msg != "" {
		vs.LiveMessage, vs.LiveAssertive = msg, true
	} else {
		vs.LiveMessage = vm.doc.LiveRegion(surface.Polite)
	}
	return vs
}

func (vm *ViewModel) buildFilters() []views.FilterButton {
	if vm.state.Loading || vm.state.LoadErr != nil {
		return nil
	}
	focused := vm.doc.ActiveElement()
	cats := vm.index.Categories()
	out := make([]views.FilterButton, len(cats))
	for i, c := range cats {
		out[i] = views.FilterButton{
			Name:    c.Name,
			Count:   c.Count,
			Applied: c.Name == vm.state.ActiveFilter,
			Focused: focused == FilterElementID(c.Name),
		}
	}
	return out
}

// buildRows highlights the row at the timeline ActiveIndex
func (vm *ViewModel) buildRows() []views.Row {
	active := vm.timeline.ActiveIndex()
	rows := make([]views.Row, len(vm.state.Visible))
	for i, e := range vm.state.Visible {
		rows[i] = views.Row{
			Year:     e.DisplayYear(),
			Title:    e.Title,
			Category: e.Category,
			Location: e.Location,
			Focused:  i == active,
		}
	}
	return rows
}

func (vm *ViewModel) buildModal() *views.ModalView {
	if vm.state.ModalEventID == "" {
		return nil
	}
	e := vm.store.GetEvent(vm.state.ModalEventID)
	if e == nil {
		return nil
	}
	focused := vm.doc.ActiveElement()
	controls := make([]views.Control, len(ModalControls))
	for i, c := range ModalControls {
		controls[i] = views.Control{ID: string(c.ID), Label: c.Label, Focused: focused == c.ID}
	}
	return &views.ModalView{
		Title:       e.Title,
		Heading:     e.Heading(),
		ImageRef:    e.ImageURL,
		ImageFailed: vm.state.ImageFailed,
		Description: e.Description,
		Category:    e.Category,
		Location:    e.Location,
		Cause:       e.Cause,
		Controls:    controls,
	}
}
