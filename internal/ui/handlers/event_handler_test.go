package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"timeline/internal/categories"
	"timeline/internal/domain"
	"timeline/internal/eventbus"
	"timeline/internal/logic"
	"timeline/internal/ui/state"
)

func newHandler() (*EventHandler, *state.AppState, *logic.MemoryEventStore, categories.CategoryIndex) {
	st := state.NewAppState()
	store := logic.NewMemoryEventStore()
	index := categories.NewIndex(nil)
	return NewEventHandler(st, store, index, nil), st, store, index
}

func TestEventsLoadedFillsStoreAndIndex(t *testing.T) {
	h, st, store, index := newHandler()

	changed := h.HandleEvent(eventbus.EventsLoadedEvent{
		Location: "events.json",
		Events: []*domain.Event{
			{ID: "dodo", Title: "Dodo", Category: "Birds"},
			{ID: "thylacine", Title: "Thylacine", Category: "Mammals"},
		},
		Skipped: 1,
	})

	assert.True(t, changed)
	assert.False(t, st.Loading)
	assert.Equal(t, 1, st.Skipped)
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 1, index.Count("Birds"))
}

func TestEventsLoadFailedClearsState(t *testing.T) {
	h, st, store, _ := newHandler()
	h.HandleEvent(eventbus.EventsLoadedEvent{Events: []*domain.Event{{ID: "dodo", Title: "Dodo"}}})

	changed := h.HandleEvent(eventbus.EventsLoadFailedEvent{Location: "x.json", Err: errors.New("boom")})

	assert.True(t, changed)
	assert.EqualError(t, st.LoadErr, "boom")
	assert.Equal(t, 0, store.Len())
}

func TestUnrelatedEventsAreIgnored(t *testing.T) {
	h, _, _, _ := newHandler()
	assert.False(t, h.HandleEvent(eventbus.FilterChangedEvent{Category: "Birds"}))
}
