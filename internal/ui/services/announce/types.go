package announce

import (
	"time"

	"timeline/internal/ui/surface"
)

// DefaultTTL is how long an announcement stays in the live region when no
// explicit lifetime is given
const DefaultTTL = 1500 * time.Millisecond

// Announcement is a transient status message for assistive technology
type Announcement struct {
	Message      string
	Politeness   surface.Politeness
	ExpiresAfter time.Duration
}

// AnnouncedEvent is published on the UI bus for every accepted announcement
type AnnouncedEvent struct {
	Announcement Announcement
}

// ClearedEvent is published when a live region is emptied
type ClearedEvent struct {
	Politeness surface.Politeness
	Expired    bool // true when cleared by its own timer
}
