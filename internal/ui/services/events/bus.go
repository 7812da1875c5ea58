package events

import (
	"fmt"
)

// Bus is a simple event bus for UI services. Handlers run synchronously
// on the publishing goroutine, in subscription order, so UI state derived
// from an event is consistent before Publish returns.
type Bus struct {
	listeners map[string][]func(interface{})
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]func(interface{})),
	}
}

// Subscribe registers a listener for the type of the sample event
func (b *Bus) Subscribe(sample interface{}, handler func(interface{})) {
	eventType := getEventType(sample)
	b.listeners[eventType] = append(b.listeners[eventType], handler)
}

// Publish sends an event to all listeners
func (b *Bus) Publish(event interface{}) {
	if b == nil {
		return
	}
	for _, handler := range b.listeners[getEventType(event)] {
		handler(event)
	}
}

// getEventType extracts the type name from an event
func getEventType(event interface{}) string {
	return fmt.Sprintf("%T", event)
}
