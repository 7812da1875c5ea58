// Package services holds the accessible interaction controllers of the
// timeline UI. Each controller lives in its own subpackage and receives a
// Context at construction instead of reaching for global state.
package services

import (
	"log/slog"

	"timeline/internal/ui/schedule"
	"timeline/internal/ui/services/events"
	"timeline/internal/ui/surface"
)

// Context is the shared environment of the interaction controllers: the
// rendering surface (focus, live region, scroll lock), the scheduler for
// deferred continuations, the UI event bus and the logger.
type Context struct {
	Surface   surface.Surface
	Scheduler schedule.Scheduler
	Bus       *events.Bus
	Logger    *slog.Logger
}

// Log returns the context logger, or a discarding logger when none is set
func (c Context) Log() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
