package registration

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"billetera/internal/domain"
	"billetera/internal/logging"
	"billetera/internal/services/view"
)

// MsgRegistered is shown when the wallet service succeeds without a message.
const MsgRegistered = "Cliente registrado exitosamente."

// Form is the registration form as typed.
type Form struct {
	Documento string
	Nombres   string
	Email     string
	Celular   string
}

// State is what the registration view renders.
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

// Service registers clients through a wallet client.
type Service struct {
	client domain.WalletClient
	log    *zap.Logger

	mu    sync.Mutex
	state State
	gate  view.Gate
}

// New returns a registration controller with an empty form.
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

// Submit registers the client described by form. Success clears the form;
// failure keeps it and shows the reason. Input is validated by the wallet
// client before anything is sent.
func (s *Service) Submit(ctx context.Context, form Form) (State, error) {
	s.mu.Lock()
	if err := s.gate.Ready(); err != nil {
		defer s.mu.Unlock()
		return s.snapshot(), err
	}
	s.state = State{Form: form}
	gen := s.gate.Begin()
	s.mu.Unlock()

	res := s.client.RegisterClient(ctx, domain.ClientProfile{
		Documento: strings.TrimSpace(form.Documento),
		Nombres:   strings.TrimSpace(form.Nombres),
		Email:     strings.TrimSpace(form.Email),
		Celular:   strings.TrimSpace(form.Celular),
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.gate.End(gen) {
		return s.snapshot(), nil
	}
	if !res.Success {
		s.state.Message = view.Error(res.Message)
		s.log.Debug("registration failed", zap.String("code", res.Error.String()))
		return s.snapshot(), nil
	}
	msg := res.Message
	if strings.TrimSpace(msg) == "" {
		msg = MsgRegistered
	}
	s.state = State{Message: view.Success(msg)}
	s.log.Info("client registered")
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
