package state

import (
	"timeline/internal/domain"
)

// AppState contains all the application state
type AppState struct {
	// Source
	Loading  bool
	Location string
	LoadErr  error
	Skipped  int // records dropped while loading

	// Events currently listed, in source order, after filtering
	Visible      []*domain.Event
	ActiveFilter string

	// Detail modal
	ModalEventID string
	ImageFailed  bool // the image of the modal event could not be shown

	// UI state
	Width     int
	Height    int
	ShowHelp  bool // inline help overlay, used when the pager is unavailable
	InPager   bool
	Announced bool // the load announcement has been made
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Loading:      true,
		ActiveFilter: domain.AllCategories,
	}
}

// VisibleIDs returns the IDs of the listed events in order
func (s *AppState) VisibleIDs() []string {
	ids := make([]string, len(s.Visible))
	for i, e := range s.Visible {
		ids[i] = e.ID
	}
	return ids
}

// IndexOf returns the list position of the event with id, or -1
func (s *AppState) IndexOf(id string) int {
	for i, e := range s.Visible {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// SetLoaded records a successful load
func (s *AppState) SetLoaded(location string, skipped int) {
	s.Loading = false
	s.Location = location
	s.LoadErr = nil
	s.Skipped = skipped
}

// SetFailed records a failed load
func (s *AppState) SetFailed(location string, err error) {
	s.Loading = false
	s.Location = location
	s.LoadErr = err
	s.Visible = nil
}
