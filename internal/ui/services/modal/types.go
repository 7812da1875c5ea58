package modal

import (
	"fmt"
	"time"

	"timeline/internal/ui/surface"
)

// DefaultSettleDelay is the pause between presenting the modal and
// trapping focus in it
const DefaultSettleDelay = 150 * time.Millisecond

// State is a phase of the modal lifecycle
type State int

const (
	Closed State = iota
	Opening
	Open
	Closing
)

func (s State) String() string {
	switch s {
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "closed"
	}
}

// Subject is what the modal shows
type Subject struct {
	ID    string
	Title string
}

// Session describes the modal currently on screen
type Session struct {
	ID      string // correlation ID for logs
	Open    bool
	Subject Subject
	Trigger surface.ElementID // focused element when the open was requested
}

// Presenter mounts and unmounts the modal subtree.
//
// Present renders subject under the modal mount point and returns the
// modal root and its primary dismiss control. It is called again with a
// new subject while the modal is up; implementations should update the
// existing subtree in place so that focused controls survive.
type Presenter interface {
	Present(subject Subject) (root, dismiss surface.ElementID)
	Dismiss()
}

// Announcer is the part of the announcement channel the lifecycle uses
type Announcer interface {
	Announce(message string, p surface.Politeness, ttl time.Duration)
}

// FocusTrap is the part of the focus trap the lifecycle drives
type FocusTrap interface {
	ActivateReturningTo(root, returnTarget surface.ElementID)
	Deactivate()
	Active() bool
}

// Options configures the lifecycle
type Options struct {
	SettleDelay time.Duration
	// AnnounceTTL is the lifetime of open/close announcements; <= 0 uses
	// the announcer default
	AnnounceTTL time.Duration
	// Available reports whether a subject can still be shown when the
	// settle delay ends. nil means always.
	Available func(Subject) bool
	// OpenedMessage and ClosedMessage build the assertive announcements
	OpenedMessage func(Subject) string
	ClosedMessage func(Subject) string
}

func defaultOpenedMessage(s Subject) string {
	return fmt.Sprintf("Modal opened for %s. Use Tab to navigate, Escape to close.", s.Title)
}

func defaultClosedMessage(s Subject) string {
	return fmt.Sprintf("Modal closed. Returned to %s timeline event.", s.Title)
}

// StateChangedEvent is published on every lifecycle transition
type StateChangedEvent struct {
	From    State
	To      State
	Session Session
}
