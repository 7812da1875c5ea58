package logic

import "timeline/internal/domain"

// EventStore provides access to the loaded timeline events
type EventStore interface {
	// Replace swaps the whole event list, keeping its order
	Replace(events []*domain.Event)
	GetEvent(id string) *domain.Event
	GetAllEvents() []*domain.Event
	// Neighbour returns the event offset places away from id within ids,
	// wrapping at both ends
	Neighbour(ids []string, id string, offset int) *domain.Event
	Len() int
}
