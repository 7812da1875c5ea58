package schedule

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FireMsg is delivered by the Bubble Tea runtime when a continuation is due
type FireMsg struct {
	ID uint64
}

// Tea schedules continuations as tea.Tick commands. Commands queued by
// After are collected with Drain and returned from the model's Update;
// when the tick arrives the model passes the FireMsg to Fire. Cancelled
// continuations are forgotten, so their ticks are ignored on arrival.
type Tea struct {
	nextID uint64
	live   map[uint64]func()
	queued []tea.Cmd
}

type teaHandle struct {
	s  *Tea
	id uint64
}

func (h teaHandle) Cancel() bool {
	if _, ok := h.s.live[h.id]; !ok {
		return false
	}
	delete(h.s.live, h.id)
	return true
}

// NewTea creates a Bubble Tea backed scheduler
func NewTea() *Tea {
	return &Tea{live: make(map[uint64]func())}
}

// After schedules fn to run on the update loop once d has elapsed
func (s *Tea) After(d time.Duration, fn func()) Handle {
	s.nextID++
	id := s.nextID
	s.live[id] = fn
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return FireMsg{ID: id}
	}))
	return teaHandle{s: s, id: id}
}

// Drain returns the tick commands queued since the last call
func (s *Tea) Drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// Fire runs the continuation for msg unless it was cancelled.
// Returns true if a continuation ran.
func (s *Tea) Fire(msg FireMsg) bool {
	fn, ok := s.live[msg.ID]
	if !ok {
		return false
	}
	delete(s.live, msg.ID)
	fn()
	return true
}

// Pending returns the number of live continuations
func (s *Tea) Pending() int {
	return len(s.live)
}
