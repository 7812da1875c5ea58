package handlers

import (
	"log/slog"

	"timeline/internal/categories"
	"timeline/internal/eventbus"
	"timeline/internal/logic"
	"timeline/internal/ui/state"
)

// EventHandler handles domain events and updates state
type EventHandler struct {
	state  *state.AppState
	store  logic.EventStore
	index  categories.CategoryIndex
	logger *slog.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState, store logic.EventStore, index categories.CategoryIndex, logger *slog.Logger) *EventHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &EventHandler{
		state:  appState,
		store:  store,
		index:  index,
		logger: logger,
	}
}

// HandleEvent applies a domain event to the store and state. It reports
// whether the event list was replaced, in which case the caller rebuilds
// the focusable elements.
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) bool {
	switch e := event.(type) {
	case eventbus.EventsLoadedEvent:
		h.store.Replace(e.Events)
		h.index.Rebuild(h.store.GetAllEvents())
		h.state.SetLoaded(e.Location, e.Skipped)
		h.logger.Debug("timeline replaced", "location", e.Location, "events", h.store.Len(), "skipped", e.Skipped)
		return true

	case eventbus.EventsLoadFailedEvent:
		h.store.Replace(nil)
		h.index.Rebuild(nil)
		h.state.SetFailed(e.Location, e.Err)
		return true
	}
	return false
}
