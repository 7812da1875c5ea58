// Package schedule models deferred work as cancellable continuations.
//
// Everything in the interaction layer runs on a single goroutine, so a
// continuation is never executed concurrently with other state changes:
// Manual runs due continuations inside Advance, and Tea runs them when the
// Bubble Tea update loop delivers the matching FireMsg.
package schedule

import "time"

// Handle cancels a scheduled continuation
type Handle interface {
	// Cancel prevents the continuation from running. Returns false if it
	// already ran or was already cancelled.
	Cancel() bool
}

// Scheduler schedules continuations
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
}

// Cancel is a nil-safe helper for optional handles
func Cancel(h Handle) bool {
	if h == nil {
		return false
	}
	return h.Cancel()
}
