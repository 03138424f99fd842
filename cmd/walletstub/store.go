package main

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"billetera/internal/domain"
)

// Failure codes returned by the stub on top of the front end's own.
const (
	codeClientExists      domain.ErrorCode = "CLIENT_EXISTS"
	codeClientNotFound    domain.ErrorCode = "CLIENT_NOT_FOUND"
	codeInsufficientFunds domain.ErrorCode = "INSUFFICIENT_FUNDS"
	codeSessionNotFound   domain.ErrorCode = "SESSION_NOT_FOUND"
	codeSessionExpired    domain.ErrorCode = "SESSION_EXPIRED"
	codeInvalidToken      domain.ErrorCode = "INVALID_TOKEN"
)

const sessionTTL = 10 * time.Minute

type account struct {
	profile domain.ClientProfile
	saldo   decimal.Decimal
}

type pending struct {
	session domain.PaymentSession
	expires time.Time
}

// stubError is a refusal with its wire code.
type stubError struct {
	code domain.ErrorCode
	msg  string
}

func (e *stubError) Error() string { return e.msg }

// memoryStore holds clients and open payment sessions.
type memoryStore struct {
	mu       sync.Mutex
	now      func() time.Time
	accounts map[string]*account
	sessions map[domain.SessionID]*pending
}

func newMemoryStore(now func() time.Time) *memoryStore {
	if now == nil {
		now = time.Now
	}
	return &memoryStore{
		now:      now,
		accounts: make(map[string]*account),
		sessions: make(map[domain.SessionID]*pending),
	}
}

func (m *memoryStore) register(p domain.ClientProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[p.Documento]; ok {
		return &stubError{codeClientExists, "El cliente ya está registrado."}
	}
	m.accounts[p.Documento] = &account{profile: p}
	return nil
}

// lookup finds the account for documento; a non-empty celular must match.
// Callers hold mu.
func (m *memoryStore) lookup(documento, celular string) (*account, error) {
	a, ok := m.accounts[documento]
	if !ok || (celular != "" && a.profile.Celular != celular) {
		return nil, &stubError{codeClientNotFound, "Cliente no encontrado o datos incorrectos."}
	}
	return a, nil
}

func (m *memoryStore) recharge(r domain.RechargeRequest) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.lookup(r.Documento, r.Celular)
	if err != nil {
		return decimal.Zero, err
	}
	a.saldo = a.saldo.Add(r.Valor)
	return a.saldo, nil
}

func (m *memoryStore) balance(q domain.BalanceQuery) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.lookup(q.Documento, q.Celular)
	if err != nil {
		return decimal.Zero, err
	}
	return a.saldo, nil
}

// open starts a payment session and returns it with its token.
func (m *memoryStore) open(r domain.PaymentRequest) (domain.PaymentSession, error) {
	token, err := newToken()
	if err != nil {
		return domain.PaymentSession{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.lookup(r.Documento, r.Celular)
	if err != nil {
		return domain.PaymentSession{}, err
	}
	if a.saldo.LessThan(r.Valor) {
		return domain.PaymentSession{}, &stubError{codeInsufficientFunds, "Saldo insuficiente."}
	}
	m.sweep()

	s := domain.PaymentSession{
		SessionID: domain.SessionID(uuid.NewString()),
		Documento: r.Documento,
		Celular:   r.Celular,
		Valor:     r.Valor,
		Token:     token,
		Status:    domain.SessionRequested,
	}
	m.sessions[s.SessionID] = &pending{session: s, expires: m.now().Add(sessionTTL)}
	return s, nil
}

// confirm debits a session whose token matches and consumes it. A wrong
// token leaves the session open for another attempt.
func (m *memoryStore) confirm(r domain.ConfirmRequest) (domain.PaymentSession, decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.sessions[r.SessionID]
	if !ok {
		return domain.PaymentSession{}, decimal.Zero, &stubError{codeSessionNotFound, "Sesión de pago no encontrada."}
	}
	if !m.now().Before(p.expires) {
		delete(m.sessions, r.SessionID)
		return domain.PaymentSession{}, decimal.Zero, &stubError{codeSessionExpired, "La sesión de pago expiró."}
	}
	if p.session.Token != r.Token {
		p.session.Status = domain.SessionFailed
		return domain.PaymentSession{}, decimal.Zero, &stubError{codeInvalidToken, "Token inválido."}
	}
	a, err := m.lookup(p.session.Documento, p.session.Celular)
	if err != nil {
		return domain.PaymentSession{}, decimal.Zero, err
	}
	if a.saldo.LessThan(p.session.Valor) {
		return domain.PaymentSession{}, decimal.Zero, &stubError{codeInsufficientFunds, "Saldo insuficiente."}
	}
	a.saldo = a.saldo.Sub(p.session.Valor)
	delete(m.sessions, r.SessionID)
	p.session.Status = domain.SessionConfirmed
	return p.session, a.saldo, nil
}

// sweep drops expired sessions. Callers hold mu.
func (m *memoryStore) sweep() {
	now := m.now()
	for id, p := range m.sessions {
		if !now.Before(p.expires) {
			delete(m.sessions, id)
		}
	}
}

func newToken() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("token: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
