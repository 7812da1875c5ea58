package logic

import (
	"sync"

	"timeline/internal/domain"
)

// MemoryEventStore is an in-memory implementation of EventStore
type MemoryEventStore struct {
	mu     sync.RWMutex
	events []*domain.Event
	byID   map[string]*domain.Event
}

// NewMemoryEventStore creates a new memory-based event store
func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{
		byID: make(map[string]*domain.Event),
	}
}

func (s *MemoryEventStore) Replace(events []*domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append([]*domain.Event(nil), events...)
	s.byID = make(map[string]*domain.Event, len(events))
	for _, e := range events {
		s.byID[e.ID] = e
	}
}

func (s *MemoryEventStore) GetEvent(id string) *domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

func (s *MemoryEventStore) GetAllEvents() []*domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	return append([]*domain.Event(nil), s.events...)
}

func (s *MemoryEventStore) Neighbour(ids []string, id string, offset int) *domain.Event {
	n := len(ids)
	if n == 0 {
		return nil
	}
	pos := -1
	for i, candidate := range ids {
		if candidate == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil
	}
	next := ((pos+offset)%n + n) % n
	return s.GetEvent(ids[next])
}

func (s *MemoryEventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

var _ EventStore = (*MemoryEventStore)(nil)
