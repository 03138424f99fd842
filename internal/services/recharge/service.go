package recharge

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"billetera/internal/domain"
	"billetera/internal/logging"
	"billetera/internal/services/view"
	"billetera/internal/validate"
)

// MsgRecharged is shown when the wallet service succeeds without a message.
const MsgRecharged = "Recarga realizada exitosamente."

// Form is the recharge form as typed. Valor is parsed on submission.
type Form struct {
	Documento string
	Celular   string
	Valor     string
}

// State is what the recharge view renders.
type State struct {
	Form    Form
	Message view.Message
	Busy    bool
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = logging.OrNop(l) }
}

// Service credits wallets through a wallet client.
type Service struct {
	client domain.WalletClient
	log    *zap.Logger

	mu    sync.Mutex
	state State
	gate  view.Gate
}

// New returns a recharge controller with an empty form.
func New(client domain.WalletClient, opts ...Option) *Service {
	s := &Service{client: client, log: zap.NewNop()}
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

// Submit recharges the wallet named by form.
//
// Steps:
//  1. Refuse if closed or busy.
//  2. Check documento and celular, then parse valor; a failure is shown
//     without calling the wallet service.
//  3. Call RechargeWallet without holding the lock.
//  4. On success clear the form; on failure keep it and show the reason.
func (s *Service) Submit(ctx context.Context, form Form) (State, error) {
	s.mu.Lock()
	if err := s.gate.Ready(); err != nil {
		defer s.mu.Unlock()
		return s.snapshot(), err
	}
	s.state = State{Form: form}

	req, f := rechargeRequest(form)
	if f != nil {
		defer s.mu.Unlock()
		s.state.Message = view.Error(f.Message)
		return s.snapshot(), nil
	}
	gen := s.gate.Begin()
	s.mu.Unlock()

	res := s.client.RechargeWallet(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.gate.End(gen) {
		return s.snapshot(), nil
	}
	if !res.Success {
		s.state.Message = view.Error(res.Message)
		s.log.Debug("recharge failed", zap.String("code", res.Error.String()))
		return s.snapshot(), nil
	}
	msg := res.Message
	if strings.TrimSpace(msg) == "" {
		msg = MsgRecharged
	}
	s.state = State{Message: view.Success(msg)}
	s.log.Info("wallet recharged", zap.String("valor", req.Valor.String()))
	return s.snapshot(), nil
}

// Close refuses further submissions and drops a response still in flight.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate.Close()
}

func (s *Service) snapshot() State {
	out := s.state
	out.Busy = s.gate.Busy()
	return out
}

func rechargeRequest(form Form) (domain.RechargeRequest, *validate.Failure) {
	if f := validate.Documento(form.Documento); f != nil {
		return domain.RechargeRequest{}, f
	}
	if f := validate.Celular(form.Celular); f != nil {
		return domain.RechargeRequest{}, f
	}
	valor, f := validate.ParseAmount(form.Valor)
	if f != nil {
		return domain.RechargeRequest{}, f
	}
	return domain.RechargeRequest{
		Documento: strings.TrimSpace(form.Documento),
		Celular:   strings.TrimSpace(form.Celular),
		Valor:     valor,
	}, nil
}
