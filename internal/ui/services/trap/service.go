package trap

import (
	"timeline/internal/ui/services"
	"timeline/internal/ui/surface"
)

// Service confines sequential focus movement to a subtree while active
// and puts focus back where it was on release.
//
// The interactive elements are recorded once at activation. Controls that
// appear later inside the subtree are tolerated but do not move the wrap
// points.
type Service struct {
	ctx          services.Context
	active       bool
	root         surface.ElementID
	elements     []surface.ElementID
	returnTarget surface.ElementID
}

// NewService creates an inactive trap
func NewService(ctx services.Context) *Service {
	return &Service{ctx: ctx}
}

// Active reports whether the trap is armed
func (s *Service) Active() bool { return s.active }

// Root returns the trapped subtree root
func (s *Service) Root() surface.ElementID { return s.root }

// Elements returns the recorded interactive elements
func (s *Service) Elements() []surface.ElementID {
	out := make([]surface.ElementID, len(s.elements))
	copy(out, s.elements)
	return out
}

// ReturnTarget returns the element focused before activation
func (s *Service) ReturnTarget() surface.ElementID { return s.returnTarget }

// Activate records the interactive elements under root and the current
// focus target as the return target.
func (s *Service) Activate(root surface.ElementID) {
	s.ActivateReturningTo(root, s.ctx.Surface.ActiveElement())
}

// ActivateReturningTo is Activate with an explicit return target, for
// callers that captured the focus origin before the trap was armed.
// Re-activating replaces the boundary but keeps the original return target.
func (s *Service) ActivateReturningTo(root, returnTarget surface.ElementID) {
	if !s.active {
		s.returnTarget = returnTarget
	}
	s.active = true
	s.root = root
	s.elements = s.ctx.Surface.Interactive(root)
	s.ctx.Log().Debug("focus trap activated", "root", root, "elements", len(s.elements), "return", s.returnTarget)
	s.ctx.Bus.Publish(ActivatedEvent{Root: root, Elements: s.Elements(), ReturnTarget: s.returnTarget})
}

// HandleTabStep applies one tab (Forward) or shift-tab (Backward) step.
// It returns true when the step was consumed; false means the default tab
// order should proceed.
func (s *Service) HandleTabStep(dir Direction) bool {
	if !s.active {
		return false
	}
	if len(s.elements) == 0 {
		// Nothing to cycle through: swallow so focus cannot leave.
		return true
	}

	first := s.elements[0]
	last := s.elements[len(s.elements)-1]
	current := s.ctx.Surface.ActiveElement()

	if !s.ctx.Surface.Contains(s.root, current) {
		if dir == Backward {
			s.ctx.Surface.Focus(last)
		} else {
			s.ctx.Surface.Focus(first)
		}
		return true
	}

	switch {
	case dir == Forward && current == last:
		s.ctx.Surface.Focus(first)
		return true
	case dir == Backward && current == first:
		s.ctx.Surface.Focus(last)
		return true
	}
	return false
}

// Deactivate releases the trap and restores focus to the return target
// when it still exists and can take focus. No-op when inactive.
func (s *Service) Deactivate() {
	if !s.active {
		return
	}
	root := s.root
	target := s.returnTarget

	s.active = false
	s.root = ""
	s.elements = nil
	s.returnTarget = ""

	restored := false
	if target != "" && s.ctx.Surface.IsFocusable(target) {
		restored = s.ctx.Surface.Focus(target)
	}
	s.ctx.Log().Debug("focus trap released", "root", root, "restored", restored)
	s.ctx.Bus.Publish(DeactivatedEvent{Root: root, Restored: restored})
}
