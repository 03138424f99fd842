package payment

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"billetera/internal/domain"
	"billetera/internal/logging"
	"billetera/internal/services/view"
	"billetera/internal/validate"
)

// DefaultResetDelay is how long a confirmed payment stays on screen.
const DefaultResetDelay = 3 * time.Second

// Messages shown when the wallet service succeeds without saying anything.
const (
	MsgRequested = "Hemos enviado un código de 6 dígitos a tu correo."
	MsgConfirmed = "Pago confirmado."
)

// Timer is the handle of a scheduled reset.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d. time.AfterFunc satisfies it once
// wrapped; tests substitute a manual clock.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Option configures a Service.
type Option func(*Service)

// WithResetDelay sets how long a confirmed payment stays visible.
func WithResetDelay(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithAfterFunc replaces the scheduler used for the reset.
func WithAfterFunc(f AfterFunc) Option {
	return func(s *Service) {
		if f != nil {
			s.after = f
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = logging.OrNop(l) }
}

// Service is the controller of one payment view.
//
// The mutex is never held across a wallet call. Each call belongs to the
// generation it started in; Back, the reset and Close move to a new
// generation so a late response is discarded.
type Service struct {
	client domain.WalletClient
	log    *zap.Logger
	delay  time.Duration
	after  AfterFunc

	mu    sync.Mutex
	state State
	gate  view.Gate
	reset Timer
}

// New returns a payment controller in the initial REQUEST step.
func New(client domain.WalletClient, opts ...Option) *Service {
	s := &Service{
		client: client,
		log:    zap.NewNop(),
		delay:  DefaultResetDelay,
		after:  realAfterFunc,
		state:  Initial(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a snapshot of the view.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// SubmitRequest validates form and asks the wallet service for a payment
// session. On success the view moves to CONFIRM.
//
// Steps:
//  1. Refuse if closed, busy, or not on the REQUEST step.
//  2. Validate documento, celular, then parse valor; a failure is shown
//     without calling the wallet service.
//  3. Call RequestPayment without holding the lock.
//  4. Apply the response unless the view moved on meanwhile.
func (s *Service) SubmitRequest(ctx context.Context, form Form) (State, error) {
	s.mu.Lock()
	if err := s.gate.Ready(); err != nil {
		defer s.mu.Unlock()
		return s.snapshot(), err
	}
	if s.state.Step != StepRequest {
		defer s.mu.Unlock()
		return s.snapshot(), view.ErrWrongStep
	}
	s.state = Reduce(s.state, RequestSubmitted{Form: form})

	req, f := paymentRequest(form)
	if f != nil {
		s.state = Reduce(s.state, RequestFailed{Message: f.Message})
		defer s.mu.Unlock()
		s.log.Debug("payment request rejected", zap.String("code", f.Code.String()))
		return s.snapshot(), nil
	}
	gen := s.gate.Begin()
	s.mu.Unlock()

	res := s.client.RequestPayment(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.gate.End(gen) {
		s.log.Debug("dropping stale payment request response")
		return s.snapshot(), nil
	}
	if !res.Success {
		s.state = Reduce(s.state, RequestFailed{Message: res.Message})
		return s.snapshot(), nil
	}
	s.state = Reduce(s.state, RequestSucceeded{
		Session: domain.PaymentSession{
			SessionID: res.Data.SessionID,
			Documento: req.Documento,
			Celular:   req.Celular,
			Valor:     req.Valor,
		},
		Message: orDefault(res.Message, MsgRequested),
	})
	s.log.Info("payment session opened", logging.Redacted("session", res.Data.SessionID.String()))
	return s.snapshot(), nil
}

// SubmitConfirm confirms the current session with token. On success the
// success message stays visible for the reset delay, then the view returns
// to an empty REQUEST step. On failure the session and token are kept for
// another attempt.
func (s *Service) SubmitConfirm(ctx context.Context, token string) (State, error) {
	s.mu.Lock()
	if err := s.gate.Ready(); err != nil {
		defer s.mu.Unlock()
		return s.snapshot(), err
	}
	if s.state.Step != StepConfirm || s.state.ResetPending || s.state.Session == nil {
		defer s.mu.Unlock()
		return s.snapshot(), view.ErrWrongStep
	}
	token = strings.TrimSpace(token)
	s.state = Reduce(s.state, ConfirmSubmitted{Token: token})
	req := domain.ConfirmRequest{SessionID: s.state.Session.SessionID, Token: token}
	gen := s.gate.Begin()
	s.mu.Unlock()

	res := s.client.ConfirmPayment(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.gate.End(gen) {
		s.log.Debug("dropping stale payment confirmation response")
		return s.snapshot(), nil
	}
	if !res.Success {
		s.state = Reduce(s.state, ConfirmFailed{Message: res.Message})
		s.log.Info("payment confirmation failed",
			logging.Redacted("session", req.SessionID.String()),
			zap.String("code", res.Error.String()),
		)
		return s.snapshot(), nil
	}
	s.state = Reduce(s.state, ConfirmSucceeded{Message: orDefault(res.Message, MsgConfirmed)})
	s.log.Info("payment confirmed", logging.Redacted("session", req.SessionID.String()))
	s.scheduleReset()
	return s.snapshot(), nil
}

// Back leaves the CONFIRM step, keeping the request fields and dropping the
// session. It is ignored while a call is in flight or outside CONFIRM, and
// cancels a pending reset.
func (s *Service) Back() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gate.Closed() || s.gate.Busy() || s.state.Step != StepConfirm {
		return s.snapshot()
	}
	s.cancelReset()
	s.gate.Bump()
	s.state = Reduce(s.state, BackPressed{})
	return s.snapshot()
}

// Close cancels a pending reset and refuses further submissions.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelReset()
	s.gate.Close()
}

// scheduleReset arms the reset for the current generation. Callers hold mu.
func (s *Service) scheduleReset() {
	s.cancelReset()
	gen := s.gate.Generation()
	s.reset = s.after(s.delay, func() { s.fireReset(gen) })
}

func (s *Service) fireReset(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.gate.Current(gen) || !s.state.ResetPending {
		return
	}
	s.reset = nil
	s.gate.Bump()
	s.state = Reduce(s.state, ResetElapsed{})
	s.log.Debug("payment view reset")
}

// cancelReset stops a pending reset. Callers hold mu.
func (s *Service) cancelReset() {
	if s.reset != nil {
		s.reset.Stop()
		s.reset = nil
	}
}

// snapshot copies the state for a caller. Callers hold mu.
func (s *Service) snapshot() State {
	out := s.state.clone()
	out.Busy = s.gate.Busy()
	return out
}

func paymentRequest(form Form) (domain.PaymentRequest, *validate.Failure) {
	if f := validate.Documento(form.Documento); f != nil {
		return domain.PaymentRequest{}, f
	}
	if f := validate.Celular(form.Celular); f != nil {
		return domain.PaymentRequest{}, f
	}
	valor, f := validate.ParseAmount(form.Valor)
	if f != nil {
		return domain.PaymentRequest{}, f
	}
	return domain.PaymentRequest{
		Documento: strings.TrimSpace(form.Documento),
		Celular:   strings.TrimSpace(form.Celular),
		Valor:     valor,
	}, nil
}

func orDefault(msg, fallback string) string {
	if strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}
