// Package wallettest provides an in-memory domain.WalletClient for tests.
package wallettest

import (
	"context"
	"sync"

	"billetera/internal/domain"
	domaintypes "billetera/internal/domain/types"
	"billetera/internal/validate"
)

// Fake records every call and answers with the configured functions. An
// unset function answers with a bare success. Input is validated the same
// way the HTTP client validates it, so rejected input is never recorded.
type Fake struct {
	RegisterFn func(domain.ClientProfile) domain.RegisterResult
	RechargeFn func(domain.RechargeRequest) domain.RechargeResult
	RequestFn  func(domain.PaymentRequest) domain.PaymentRequestResult
	ConfirmFn  func(domain.ConfirmRequest) domain.ConfirmResult
	BalanceFn  func(domain.BalanceQuery) domain.BalanceResult

	mu        sync.Mutex
	registers []domain.ClientProfile
	recharges []domain.RechargeRequest
	requests  []domain.PaymentRequest
	confirms  []domain.ConfirmRequest
	balances  []domain.BalanceQuery
}

func (f *Fake) RegisterClient(_ context.Context, p domain.ClientProfile) domain.RegisterResult {
	if v := validate.ClientProfile(p); v != nil {
		return domaintypes.Failed[domain.Ack](v.Code, v.Message)
	}
	f.mu.Lock()
	f.registers = append(f.registers, p)
	fn := f.RegisterFn
	f.mu.Unlock()
	if fn == nil {
		return domain.RegisterResult{Success: true, Message: "Cliente registrado."}
	}
	return fn(p)
}

func (f *Fake) RechargeWallet(_ context.Context, r domain.RechargeRequest) domain.RechargeResult {
	if v := validate.RechargeRequest(r); v != nil {
		return domaintypes.Failed[domain.Ack](v.Code, v.Message)
	}
	f.mu.Lock()
	f.recharges = append(f.recharges, r)
	fn := f.RechargeFn
	f.mu.Unlock()
	if fn == nil {
		return domain.RechargeResult{Success: true, Message: "Recarga exitosa."}
	}
	return fn(r)
}

func (f *Fake) RequestPayment(_ context.Context, r domain.PaymentRequest) domain.PaymentRequestResult {
	if v := validate.PaymentRequest(r); v != nil {
		return domaintypes.Failed[domain.PaymentTicket](v.Code, v.Message)
	}
	f.mu.Lock()
	f.requests = append(f.requests, r)
	fn := f.RequestFn
	f.mu.Unlock()
	if fn == nil {
		return domain.PaymentRequestResult{
			Success: true,
			Message: "Token enviado.",
			Data:    &domain.PaymentTicket{SessionID: "session-1"},
		}
	}
	return fn(r)
}

func (f *Fake) ConfirmPayment(_ context.Context, r domain.ConfirmRequest) domain.ConfirmResult {
	if v := validate.ConfirmRequest(r); v != nil {
		return domaintypes.Failed[domain.Ack](v.Code, v.Message)
	}
	f.mu.Lock()
	f.confirms = append(f.confirms, r)
	fn := f.ConfirmFn
	f.mu.Unlock()
	if fn == nil {
		return domain.ConfirmResult{Success: true, Message: "Pago confirmado."}
	}
	return fn(r)
}

func (f *Fake) CheckBalance(_ context.Context, q domain.BalanceQuery) domain.BalanceResult {
	if v := validate.BalanceQuery(q); v != nil {
		return domaintypes.Failed[domain.Balance](v.Code, v.Message)
	}
	f.mu.Lock()
	f.balances = append(f.balances, q)
	fn := f.BalanceFn
	f.mu.Unlock()
	if fn == nil {
		return domain.BalanceResult{Success: true, Message: "Saldo consultado.", Data: &domain.Balance{}}
	}
	return fn(q)
}

// Registers returns the recorded registrations.
func (f *Fake) Registers() []domain.ClientProfile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ClientProfile(nil), f.registers...)
}

// Recharges returns the recorded recharges.
func (f *Fake) Recharges() []domain.RechargeRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.RechargeRequest(nil), f.recharges...)
}

// Requests returns the recorded payment requests.
func (f *Fake) Requests() []domain.PaymentRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.PaymentRequest(nil), f.requests...)
}

// Confirms returns the recorded confirmations.
func (f *Fake) Confirms() []domain.ConfirmRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ConfirmRequest(nil), f.confirms...)
}

// Balances returns the recorded balance queries.
func (f *Fake) Balances() []domain.BalanceQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.BalanceQuery(nil), f.balances...)
}

var _ domain.WalletClient = (*Fake)(nil)
