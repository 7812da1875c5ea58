package roving

import (
	"timeline/internal/ui/services"
	"timeline/internal/ui/services/announce"
	"timeline/internal/ui/surface"
)

// Service owns the roving focus of one ordered list: which item holds
// keyboard focus, and how directional input moves it.
type Service struct {
	ctx       services.Context
	announcer *announce.Service
	opts      Options
	set       FocusSet
	active    int
}

// NewService creates a controller. announcer may be nil.
func NewService(ctx services.Context, announcer *announce.Service, opts Options) *Service {
	if opts.Format == nil {
		opts.Format = defaultFormat
	}
	return &Service{
		ctx:       ctx,
		announcer: announcer,
		opts:      opts,
		active:    -1,
	}
}

// Initialize binds the controller to set. When set keeps the identity
// keys of the bound set (same list, or the list cut short) the index is
// kept, clamped to the new length; any other change resets it to -1.
func (s *Service) Initialize(set FocusSet) {
	old := s.active
	if !set.prefixOf(s.set) {
		s.active = -1
	} else if s.active >= set.Len() {
		s.active = set.Len() - 1
	}
	s.set = set
	s.publish(old)
}

// Set returns the bound FocusSet
func (s *Service) Set() FocusSet { return s.set }

// ActiveIndex returns the focused index, -1 when none
func (s *Service) ActiveIndex() int { return s.active }

// Len returns the size of the bound set
func (s *Service) Len() int { return s.set.Len() }

// Current returns the item at ActiveIndex
func (s *Service) Current() (FocusableItem, bool) {
	return s.set.Item(s.active)
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	switch direction {
	case DirectionNext:
		s.MoveNext()
	case DirectionPrevious:
		s.MovePrevious()
	case DirectionFirst:
		s.MoveFirst()
	case DirectionLast:
		s.MoveLast()
	}
}

// MoveNext advances focus, wrapping from the last item to the first
func (s *Service) MoveNext() {
	n := s.set.Len()
	if n == 0 {
		return
	}
	s.moveTo((s.active+1)%n, true)
}

// MovePrevious retreats focus, wrapping from the first item to the last.
// With nothing focused yet it lands on the last item.
func (s *Service) MovePrevious() {
	n := s.set.Len()
	if n == 0 {
		return
	}
	if s.active < 0 {
		s.moveTo(n-1, true)
		return
	}
	s.moveTo((s.active-1+n)%n, true)
}

// MoveFirst jumps to the first item
func (s *Service) MoveFirst() {
	if s.set.Len() == 0 {
		return
	}
	s.moveTo(0, true)
}

// MoveLast jumps to the last item
func (s *Service) MoveLast() {
	if s.set.Len() == 0 {
		return
	}
	s.moveTo(s.set.Len()-1, true)
}

// MoveTo focuses index, clamped to the bounds of the set
func (s *Service) MoveTo(index int) {
	if s.set.Len() == 0 {
		return
	}
	s.moveTo(s.clampIndex(index), false)
}

// ActivateCurrent runs the activation callback of the focused item
func (s *Service) ActivateCurrent() {
	item, ok := s.Current()
	if !ok || item.OnActivate == nil {
		return
	}
	item.OnActivate()
}

// OnExternalFocus records that index received focus by other means (a
// pointer click, tab order). Focus is not moved again.
func (s *Service) OnExternalFocus(index int) {
	if s.set.Len() == 0 {
		return
	}
	old := s.active
	s.active = s.clampIndex(index)
	s.publish(old)
}

func (s *Service) moveTo(index int, directional bool) {
	old := s.active
	s.active = index
	item, _ := s.set.Item(index)
	if !s.ctx.Surface.Focus(item.Element) {
		s.ctx.Log().Debug("roving focus target not focusable", "list", s.opts.Name, "element", item.Element)
	}
	if directional && s.opts.Announce && s.announcer != nil {
		s.announcer.Announce(s.opts.Format(index, s.set.Len(), item.Label), surface.Polite, 0)
	}
	s.publish(old)
}

func (s *Service) publish(old int) {
	if old == s.active {
		return
	}
	s.ctx.Bus.Publish(ActiveIndexChangedEvent{Name: s.opts.Name, OldIndex: old, NewIndex: s.active})
}

// Helper methods
func (s *Service) clampIndex(index int) int {
	if index < 0 {
		return 0
	}
	if last := s.set.Len() - 1; index > last {
		return last
	}
	return index
}
