package input

import (
	"timeline/internal/ui/services/modal"
	"timeline/internal/ui/services/roving"
	"timeline/internal/ui/surface"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Surface  surface.Surface
	Timeline *roving.Service
	Modal    *modal.Service
}

// ActiveIndex returns the focused index of the event list
func (c *ModelContext) ActiveIndex() int {
	return c.Timeline.ActiveIndex()
}

// TotalItems returns the number of events in the list
func (c *ModelContext) TotalItems() int {
	return c.Timeline.Len()
}

// FocusedElement returns the ID of the focused element
func (c *ModelContext) FocusedElement() string {
	return string(c.Surface.ActiveElement())
}

// ModalUp reports whether the detail dialog is on screen
func (c *ModelContext) ModalUp() bool {
	return c.Modal != nil && c.Modal.IsUp()
}
