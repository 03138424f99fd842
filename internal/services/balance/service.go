package balance

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"billetera/internal/domain"
	"billetera/internal/logging"
	"billetera/internal/money"
	"billetera/internal/services/view"
)

// MsgFailed is shown when an inquiry fails without a reason.
const MsgFailed = "Error al consultar saldo."

// Form is the balance inquiry form. Celular is optional.
type Form struct {
	Documento string
	Celular   string
}

// State is what the balance view renders. Saldo and Formatted are set only
// after a successful inquiry.
type State struct {
	Form      Form
	Saldo     *decimal.Decimal
	Formatted string
	Message   view.Message
	Busy      bool
}

// HasBalance reports whether a balance is on screen.
func (s State) HasBalance() bool { return s.Saldo != nil }

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = logging.OrNop(l) }
}

// Service reads balances through a wallet client.
type Service struct {
	client domain.WalletClient
	log    *zap.Logger

	mu    sync.Mutex
	state State
	gate  view.Gate
}

// New returns a balance controller with an empty form.
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

// Submit queries the balance of the wallet named by form. The previous
// balance is cleared as soon as a new inquiry starts. The form is kept
// either way.
func (s *Service) Submit(ctx context.Context, form Form) (State, error) {
	s.mu.Lock()
	if err := s.gate.Ready(); err != nil {
		defer s.mu.Unlock()
		return s.snapshot(), err
	}
	s.state = State{Form: form}
	gen := s.gate.Begin()
	s.mu.Unlock()

	res := s.client.CheckBalance(ctx, domain.BalanceQuery{
		Documento: strings.TrimSpace(form.Documento),
		Celular:   strings.TrimSpace(form.Celular),
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.gate.End(gen) {
		return s.snapshot(), nil
	}
	if !res.Success || res.Data == nil {
		msg := res.Message
		if strings.TrimSpace(msg) == "" {
			msg = MsgFailed
		}
		s.state.Message = view.Error(msg)
		s.log.Debug("balance inquiry failed", zap.String("code", res.Error.String()))
		return s.snapshot(), nil
	}
	saldo := res.Data.Saldo
	s.state.Saldo = &saldo
	s.state.Formatted = money.Format(saldo)
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
	if out.Saldo != nil {
		v := *out.Saldo
		out.Saldo = &v
	}
	out.Busy = s.gate.Busy()
	return out
}
