package roving

import (
	"errors"
	"fmt"

	"timeline/internal/ui/surface"
)

// ErrDuplicateKey is returned when two items of a FocusSet share an identity key
var ErrDuplicateKey = errors.New("duplicate identity key")

// FocusableItem is a reference to one interactive element of a list
type FocusableItem struct {
	Index      int    // position in the set, assigned by NewFocusSet
	Key        string // identity, stable across re-renders
	Element    surface.ElementID
	Label      string // spoken in positional announcements
	OnActivate func()
}

// FocusSet is an ordered list of items in reading order
type FocusSet struct {
	items []FocusableItem
}

// NewFocusSet indexes items in order and checks that keys are unique
func NewFocusSet(items []FocusableItem) (FocusSet, error) {
	seen := make(map[string]struct{}, len(items))
	out := make([]FocusableItem, len(items))
	for i, item := range items {
		if _, dup := seen[item.Key]; dup {
			return FocusSet{}, fmt.Errorf("focus set item %d %q: %w", i, item.Key, ErrDuplicateKey)
		}
		seen[item.Key] = struct{}{}
		item.Index = i
		out[i] = item
	}
	return FocusSet{items: out}, nil
}

// Len returns the number of items
func (fs FocusSet) Len() int { return len(fs.items) }

// Item returns the item at i
func (fs FocusSet) Item(i int) (FocusableItem, bool) {
	if i < 0 || i >= len(fs.items) {
		return FocusableItem{}, false
	}
	return fs.items[i], true
}

// IndexOf returns the index of the item with the given key, or -1
func (fs FocusSet) IndexOf(key string) int {
	for i, item := range fs.items {
		if item.Key == key {
			return i
		}
	}
	return -1
}

// IndexOfElement returns the index of the item rendered as id, or -1
func (fs FocusSet) IndexOfElement(id surface.ElementID) int {
	for i, item := range fs.items {
		if item.Element == id {
			return i
		}
	}
	return -1
}

// prefixOf reports whether fs lists the same keys as the start of other,
// as happens when a list is re-rendered or truncated
func (fs FocusSet) prefixOf(other FocusSet) bool {
	if len(fs.items) > len(other.items) {
		return false
	}
	for i := range fs.items {
		if fs.items[i].Key != other.items[i].Key {
			return false
		}
	}
	return true
}

// Direction represents movement directions
type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
	DirectionFirst    Direction = "first"
	DirectionLast     Direction = "last"
)

// ActiveIndexChangedEvent is published whenever ActiveIndex changes
type ActiveIndexChangedEvent struct {
	Name     string // controller name, distinguishes several lists
	OldIndex int
	NewIndex int
}

// Options configures a controller
type Options struct {
	// Name identifies the controller in events and logs
	Name string
	// Announce enables positional announcements on directional moves
	Announce bool
	// Format builds the positional announcement; defaults to
	// "item <index+1> of <n>: <label>"
	Format func(index, total int, label string) string
}

func defaultFormat(index, total int, label string) string {
	return fmt.Sprintf("item %d of %d: %s", index+1, total, label)
}
