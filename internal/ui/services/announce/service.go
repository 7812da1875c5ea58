package announce

import (
	"time"

	"timeline/internal/ui/schedule"
	"timeline/internal/ui/services"
	"timeline/internal/ui/surface"
)

// Service delivers announcements to the live region. Each politeness
// level holds at most one message; a new message replaces the pending one
// and re-arms the auto-clear timer.
type Service struct {
	ctx        services.Context
	defaultTTL time.Duration
	slots      map[surface.Politeness]*slot
}

type slot struct {
	current Announcement
	timer   schedule.Handle
}

// NewService creates an announcement channel. defaultTTL <= 0 uses DefaultTTL.
func NewService(ctx services.Context, defaultTTL time.Duration) *Service {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Service{
		ctx:        ctx,
		defaultTTL: defaultTTL,
		slots:      make(map[surface.Politeness]*slot),
	}
}

// Announce replaces whatever is pending at p with message and schedules
// it to be cleared after ttl (the default lifetime when ttl <= 0).
func (s *Service) Announce(message string, p surface.Politeness, ttl time.Duration) {
	if message == "" {
		s.Clear(p)
		return
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	sl := s.slots[p]
	if sl == nil {
		sl = &slot{}
		s.slots[p] = sl
	}
	schedule.Cancel(sl.timer)

	sl.current = Announcement{Message: message, Politeness: p, ExpiresAfter: ttl}
	s.ctx.Surface.SetLiveRegion(p, message)
	s.ctx.Log().Debug("announce", "politeness", p.String(), "message", message, "ttl", ttl)

	if s.ctx.Scheduler != nil {
		var timer schedule.Handle
		timer = s.ctx.Scheduler.After(ttl, func() {
			// A replaced announcement's timer was cancelled, but guard
			// against a continuation that was already in flight.
			if cur := s.slots[p]; cur != nil && cur.timer == timer {
				s.expire(p)
			}
		})
		sl.timer = timer
	}
	s.ctx.Bus.Publish(AnnouncedEvent{Announcement: sl.current})
}

// Clear empties the live region for p and cancels its timer. Safe to call
// when nothing is pending.
func (s *Service) Clear(p surface.Politeness) {
	sl := s.slots[p]
	if sl == nil {
		return
	}
	schedule.Cancel(sl.timer)
	delete(s.slots, p)
	s.ctx.Surface.SetLiveRegion(p, "")
	s.ctx.Bus.Publish(ClearedEvent{Politeness: p})
}

// ClearAll empties both live regions
func (s *Service) ClearAll() {
	s.Clear(surface.Polite)
	s.Clear(surface.Assertive)
}

// Current returns the live announcement at p, if any
func (s *Service) Current(p surface.Politeness) (Announcement, bool) {
	sl := s.slots[p]
	if sl == nil {
		return Announcement{}, false
	}
	return sl.current, true
}

func (s *Service) expire(p surface.Politeness) {
	delete(s.slots, p)
	s.ctx.Surface.SetLiveRegion(p, "")
	s.ctx.Bus.Publish(ClearedEvent{Politeness: p, Expired: true})
}
