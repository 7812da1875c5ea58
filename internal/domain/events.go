package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventEventsLoaded     EventType = "EventsLoaded"
	EventEventsLoadFailed EventType = "EventsLoadFailed"
	EventFilterChanged    EventType = "FilterChanged"
	EventModalOpened      EventType = "ModalOpened"
	EventModalClosed      EventType = "ModalClosed"
	EventAnnounced        EventType = "Announced"
	EventConfigChanged    EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// EventsLoadedEvent is emitted when the event source has been read
type EventsLoadedEvent struct {
	Location string
	Events   []*Event
	Skipped  int // records dropped during validation
}

func (e EventsLoadedEvent) Type() EventType { return EventEventsLoaded }

// EventsLoadFailedEvent is emitted when the event source could not be read
type EventsLoadFailedEvent struct {
	Location string
	Err      error
}

func (e EventsLoadFailedEvent) Type() EventType { return EventEventsLoadFailed }

// FilterChangedEvent is emitted when the category filter changes
type FilterChangedEvent struct {
	Category string
	Count    int
}

func (e FilterChangedEvent) Type() EventType { return EventFilterChanged }

// ModalOpenedEvent is emitted once the detail modal has settled open
type ModalOpenedEvent struct {
	SessionID string
	EventID   string
	Title     string
}

func (e ModalOpenedEvent) Type() EventType { return EventModalOpened }

// ModalClosedEvent is emitted when the detail modal has closed
type ModalClosedEvent struct {
	SessionID string
	EventID   string
	Aborted   bool // closed before it settled open
}

func (e ModalClosedEvent) Type() EventType { return EventModalClosed }

// AnnouncedEvent mirrors a live-region write
type AnnouncedEvent struct {
	Politeness string
	Message    string
}

func (e AnnouncedEvent) Type() EventType { return EventAnnounced }

// ConfigChangedEvent is emitted when configuration needs to be saved
type ConfigChangedEvent struct {
	LastFilter string
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
