package schedule

import (
	"sort"
	"time"
)

// Manual is a deterministic Scheduler. Time stands still until Advance is
// called; due continuations then run synchronously in deadline order
// (ties in scheduling order).
type Manual struct {
	now     time.Duration
	seq     uint64
	pending []*manualEntry
}

type manualEntry struct {
	deadline time.Duration
	seq      uint64
	fn       func()
	done     bool
}

func (e *manualEntry) Cancel() bool {
	if e.done {
		return false
	}
	e.done = true
	return true
}

// NewManual creates a Manual scheduler at time zero
func NewManual() *Manual {
	return &Manual{}
}

// After schedules fn to run once d has elapsed
func (m *Manual) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	m.seq++
	e := &manualEntry{deadline: m.now + d, seq: m.seq, fn: fn}
	m.pending = append(m.pending, e)
	return e
}

// Advance moves time forward by d and runs every continuation that falls
// due, including ones scheduled by continuations run during this call.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		e := m.nextDue(target)
		if e == nil {
			break
		}
		m.now = e.deadline
		e.done = true
		e.fn()
	}
	m.now = target
	m.compact()
}

// Elapsed returns how far the scheduler has advanced
func (m *Manual) Elapsed() time.Duration {
	return m.now
}

// Pending returns the number of continuations that have not run or been cancelled
func (m *Manual) Pending() int {
	n := 0
	for _, e := range m.pending {
		if !e.done {
			n++
		}
	}
	return n
}

func (m *Manual) nextDue(target time.Duration) *manualEntry {
	var live []*manualEntry
	for _, e := range m.pending {
		if !e.done && e.deadline <= target {
			live = append(live, e)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].deadline != live[j].deadline {
			return live[i].deadline < live[j].deadline
		}
		return live[i].seq < live[j].seq
	})
	return live[0]
}

func (m *Manual) compact() {
	kept := m.pending[:0]
	for _, e := range m.pending {
		if !e.done {
			kept = append(kept, e)
		}
	}
	m.pending = kept
}
