package modal

import (
	"github.com/google/uuid"

	"timeline/internal/ui/schedule"
	"timeline/internal/ui/services"
	"timeline/internal/ui/surface"
)

// Service runs the modal open/close lifecycle. It applies the scroll
// lock, hands focus containment to the trap and reports transitions
// through the announcer.
type Service struct {
	ctx       services.Context
	presenter Presenter
	trap      FocusTrap
	announcer Announcer
	opts      Options

	state   State
	session Session
	root    surface.ElementID
	dismiss surface.ElementID
	settle  schedule.Handle
}

// NewService creates a lifecycle in the Closed state
func NewService(ctx services.Context, presenter Presenter, trap FocusTrap, announcer Announcer, opts Options) *Service {
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.OpenedMessage == nil {
		opts.OpenedMessage = defaultOpenedMessage
	}
	if opts.ClosedMessage == nil {
		opts.ClosedMessage = defaultClosedMessage
	}
	return &Service{
		ctx:       ctx,
		presenter: presenter,
		trap:      trap,
		announcer: announcer,
		opts:      opts,
	}
}

// State returns the lifecycle phase
func (s *Service) State() State { return s.state }

// Session returns the current session; ok is false while Closed
func (s *Service) Session() (Session, bool) {
	return s.session, s.state != Closed
}

// IsUp reports whether the modal is on screen (Opening or Open)
func (s *Service) IsUp() bool {
	return s.state == Opening || s.state == Open
}

// RequestOpen shows subject. From Closed it starts a new session; while
// the modal is up it replaces the subject in place.
func (s *Service) RequestOpen(subject Subject) {
	switch s.state {
	case Closed:
		s.open(subject)
	case Opening:
		if subject == s.session.Subject {
			return
		}
		// The pending settle announces whatever subject is current when it fires
		s.session.Subject = subject
		s.root, s.dismiss = s.presenter.Present(subject)
		s.ctx.Log().Debug("modal subject replaced while opening", "session", s.session.ID, "subject", subject.ID)
	case Open:
		if subject == s.session.Subject {
			return
		}
		s.replaceOpen(subject)
	case Closing:
		// Close is synchronous; an open arriving from inside it is dropped
		s.ctx.Log().Debug("modal open ignored while closing", "subject", subject.ID)
	}
}

func (s *Service) open(subject Subject) {
	s.session = Session{
		ID:      uuid.NewString(),
		Open:    true,
		Subject: subject,
		Trigger: s.ctx.Surface.ActiveElement(),
	}
	s.ctx.Surface.SetScrollLocked(true)
	s.root, s.dismiss = s.presenter.Present(subject)
	s.transition(Opening)
	s.ctx.Log().Info("modal opening", "session", s.session.ID, "subject", subject.ID, "trigger", s.session.Trigger)

	if s.ctx.Scheduler == nil {
		s.settleNow()
		return
	}
	s.settle = s.ctx.Scheduler.After(s.opts.SettleDelay, s.settleNow)
}

func (s *Service) settleNow() {
	s.settle = nil
	if s.state != Opening {
		return
	}
	subject := s.session.Subject
	if s.opts.Available != nil && !s.opts.Available(subject) {
		s.abort()
		return
	}

	s.transition(Open)
	// Focus may have moved while Opening; the trigger is where it goes back to
	s.trap.ActivateReturningTo(s.root, s.session.Trigger)
	s.ctx.Surface.Focus(s.dismiss)
	s.announce(s.opts.OpenedMessage(subject))
	s.ctx.Log().Info("modal open", "session", s.session.ID, "subject", subject.ID)
}

// abort backs out of an Opening whose subject went away. Nothing is
// announced since nothing was announced as opened.
func (s *Service) abort() {
	s.ctx.Log().Warn("modal subject no longer available", "session", s.session.ID, "subject", s.session.Subject.ID)
	s.ctx.Surface.SetScrollLocked(false)
	s.presenter.Dismiss()
	if trigger := s.session.Trigger; trigger != "" && s.ctx.Surface.IsFocusable(trigger) {
		s.ctx.Surface.Focus(trigger)
	}
	s.reset()
}

func (s *Service) replaceOpen(subject Subject) {
	s.session.Subject = subject
	root, dismiss := s.presenter.Present(subject)
	if root != s.root {
		s.trap.ActivateReturningTo(root, s.session.Trigger)
	}
	s.root, s.dismiss = root, dismiss
	if !s.ctx.Surface.Contains(s.root, s.ctx.Surface.ActiveElement()) {
		s.ctx.Surface.Focus(s.dismiss)
	}
	s.announce(s.opts.OpenedMessage(subject))
	s.ctx.Log().Info("modal subject replaced", "session", s.session.ID, "subject", subject.ID)
}

// RequestClose closes the modal from Open or Opening. Other states are
// left alone, so repeated calls are safe.
func (s *Service) RequestClose() {
	if s.state != Open && s.state != Opening {
		return
	}
	wasOpening := s.state == Opening
	s.transition(Closing)

	schedule.Cancel(s.settle)
	s.settle = nil

	if s.trap.Active() {
		s.trap.Deactivate()
	} else if wasOpening {
		// The trap was never armed so focus is restored here
		if trigger := s.session.Trigger; trigger != "" && s.ctx.Surface.IsFocusable(trigger) {
			s.ctx.Surface.Focus(trigger)
		}
	}
	s.ctx.Surface.SetScrollLocked(false)
	s.presenter.Dismiss()
	s.announce(s.opts.ClosedMessage(s.session.Subject))
	s.ctx.Log().Info("modal closed", "session", s.session.ID, "subject", s.session.Subject.ID)
	s.reset()
}

// HandleEscape closes the modal. Returns false when there was nothing to close.
func (s *Service) HandleEscape() bool {
	if !s.IsUp() {
		return false
	}
	s.RequestClose()
	return true
}

// HandleBackdrop closes the modal on a click outside its box
func (s *Service) HandleBackdrop() bool {
	return s.HandleEscape()
}

func (s *Service) reset() {
	s.root, s.dismiss = "", ""
	s.transition(Closed)
	s.session = Session{}
}

func (s *Service) transition(to State) {
	from := s.state
	s.state = to
	if to == Closed {
		s.session.Open = false
	}
	s.ctx.Bus.Publish(StateChangedEvent{From: from, To: to, Session: s.session})
}

func (s *Service) announce(message string) {
	if s.announcer == nil {
		return
	}
	s.announcer.Announce(message, surface.Assertive, s.opts.AnnounceTTL)
}
