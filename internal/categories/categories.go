package categories

import (
	"fmt"
	"sync"

	"timeline/internal/domain"
)

// Uncategorized collects events that have no category
const Uncategorized = "Other"

// Category is one entry of the filter bar
type Category struct {
	Name        string
	Count       int
	Description string
}

// CategoryIndex groups events by category for filtering
type CategoryIndex interface {
	Rebuild(events []*domain.Event)
	Categories() []Category
	Has(name string) bool
	Count(name string) int
	Filter(name string) []*domain.Event
}

// categoryIndex is the concrete implementation
type categoryIndex struct {
	mu      sync.RWMutex
	all     []*domain.Event
	order   []string                   // first-seen order
	members map[string][]*domain.Event // category -> events in source order
}

// NewIndex creates an index over events
func NewIndex(events []*domain.Event) CategoryIndex {
	ci := &categoryIndex{}
	ci.Rebuild(events)
	return ci
}

// Rebuild replaces the indexed events
func (ci *categoryIndex) Rebuild(events []*domain.Event) {
	ci.mu.Lock()
	defer ci.mu.Unlock()

	ci.all = append([]*domain.Event(nil), events...)
	ci.order = nil
	ci.members = make(map[string][]*domain.Event)
	for _, e := range events {
		name := categoryOf(e)
		if _, seen := ci.members[name]; !seen {
			ci.order = append(ci.order, name)
		}
		ci.members[name] = append(ci.members[name], e)
	}
}

// Categories returns "All" followed by every category in first-seen order
func (ci *categoryIndex) Categories() []Category {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	out := make([]Category, 0, len(ci.order)+1)
	out = append(out, Category{
		Name:        domain.AllCategories,
		Count:       len(ci.all),
		Description: "Show all events from all categories",
	})
	for _, name := range ci.order {
		out = append(out, Category{
			Name:        name,
			Count:       len(ci.members[name]),
			Description: fmt.Sprintf("Show only %s events", name),
		})
	}
	return out
}

// Has reports whether name is "All" or a known category
func (ci *categoryIndex) Has(name string) bool {
	if name == domain.AllCategories {
		return true
	}
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	_, ok := ci.members[name]
	return ok
}

// Count returns the number of events shown under name
func (ci *categoryIndex) Count(name string) int {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	if name == domain.AllCategories {
		return len(ci.all)
	}
	return len(ci.members[name])
}

// Filter returns the events shown under name in source order. Unknown
// categories yield an empty list.
func (ci *categoryIndex) Filter(name string) []*domain.Event {
	ci.mu.RLock()
	defer ci.mu.RUnlock()

	src := ci.members[name]
	if name == domain.AllCategories {
		src = ci.all
	}
	return append([]*domain.Event(nil), src...)
}

func categoryOf(e *domain.Event) string {
	if e.Category == "" {
		return Uncategorized
	}
	return e.Category
}
