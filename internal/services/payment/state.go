package payment

import (
	"billetera/internal/domain"
	"billetera/internal/services/view"
)

// Step is the visible step of the payment view.
type Step string

const (
	StepRequest Step = "REQUEST"
	StepConfirm Step = "CONFIRM"
)

// Form is the request step as the user typed it. Valor stays text until it
// is parsed on submission so a rejected entry is shown back unchanged.
type Form struct {
	Documento string
	Celular   string
	Valor     string
}

// State is everything the payment view renders.
type State struct {
	Step         Step
	Form         Form
	Session      *domain.PaymentSession
	Token        string
	Message      view.Message
	Busy         bool
	ResetPending bool
}

// Initial is the empty REQUEST step.
func Initial() State { return State{Step: StepRequest} }

// SessionID returns the id of the current session, or "" without one.
func (s State) SessionID() domain.SessionID {
	if s.Session == nil {
		return ""
	}
	return s.Session.SessionID
}

func (s State) clone() State {
	if s.Session != nil {
		cp := *s.Session
		s.Session = &cp
	}
	return s
}

// Event is an input to Reduce.
type Event interface{ event() }

type (
	// RequestSubmitted starts a payment request with the given form.
	RequestSubmitted struct{ Form Form }
	// RequestSucceeded carries the session opened by the wallet service.
	RequestSucceeded struct {
		Session domain.PaymentSession
		Message string
	}
	// RequestFailed carries the message to show on the request step.
	RequestFailed struct{ Message string }
	// ConfirmSubmitted starts a confirmation with the given token.
	ConfirmSubmitted struct{ Token string }
	// ConfirmSucceeded completes the session; a reset is now pending.
	ConfirmSucceeded struct{ Message string }
	// ConfirmFailed keeps the session for another attempt.
	ConfirmFailed struct{ Message string }
	// BackPressed abandons the session client-side.
	BackPressed struct{}
	// ResetElapsed clears the view after a confirmed payment.
	ResetElapsed struct{}
)

func (RequestSubmitted) event() {}
func (RequestSucceeded) event() {}
func (RequestFailed) event()    {}
func (ConfirmSubmitted) event() {}
func (ConfirmSucceeded) event() {}
func (ConfirmFailed) event()    {}
func (BackPressed) event()      {}
func (ResetElapsed) event()     {}

// Reduce returns the state that follows s on e. Events that do not apply to
// the current step, or arrive while they cannot happen (a response with no
// call in flight, back while busy), return s unchanged. s is never mutated.
func Reduce(s State, e Event) State {
	next := s.clone()

	switch e := e.(type) {
	case RequestSubmitted:
		if s.Step != StepRequest || s.Busy {
			return s
		}
		next.Form = e.Form
		next.Message = view.Message{}
		next.Busy = true

	case RequestSucceeded:
		if s.Step != StepRequest || !s.Busy {
			return s
		}
		sess := e.Session
		sess.Token = ""
		sess.Status = domain.SessionRequested
		next.Step = StepConfirm
		next.Session = &sess
		next.Token = ""
		next.Message = view.Success(e.Message)
		next.Busy = false

	case RequestFailed:
		if s.Step != StepRequest || !s.Busy {
			return s
		}
		next.Message = view.Error(e.Message)
		next.Busy = false

	case ConfirmSubmitted:
		if s.Step != StepConfirm || s.Busy || s.ResetPending || s.Session == nil {
			return s
		}
		next.Token = e.Token
		next.Session.Token = e.Token
		next.Message = view.Message{}
		next.Busy = true

	case ConfirmSucceeded:
		if s.Step != StepConfirm || !s.Busy || s.Session == nil {
			return s
		}
		next.Session.Status = domain.SessionConfirmed
		next.Message = view.Success(e.Message)
		next.Busy = false
		next.ResetPending = true

	case ConfirmFailed:
		if s.Step != StepConfirm || !s.Busy || s.Session == nil {
			return s
		}
		next.Session.Status = domain.SessionFailed
		next.Message = view.Error(e.Message)
		next.Busy = false

	case BackPressed:
		if s.Step != StepConfirm || s.Busy {
			return s
		}
		return State{Step: StepRequest, Form: s.Form}

	case ResetElapsed:
		if !s.ResetPending {
			return s
		}
		return Initial()

	default:
		return s
	}
	return next
}
