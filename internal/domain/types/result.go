package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Result is the uniform outcome of every remote-facing operation.
//
// When Success is false, Message always holds a user-displayable text and
// Error a machine-readable code (client-side, synthesized, or passed through
// from the wallet service). Status is the HTTP status when a response arrived.
type Result[T any] struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    *T        `json:"data,omitempty"`
	Error   ErrorCode `json:"error,omitempty"`
	Status  int       `json:"status,omitempty"`
}

// Failed builds a failed Result carrying code and message.
func Failed[T any](code ErrorCode, message string) Result[T] {
	return Result[T]{Success: false, Message: message, Error: code}
}

// Ack is the raw `data` of operations whose payload the front end ignores.
type Ack = json.RawMessage

// PaymentTicket is the `data` of a successful payment request.
type PaymentTicket struct {
	SessionID SessionID `json:"sessionId"`
}

// Balance is the `data` of a successful balance inquiry.
type Balance struct {
	Saldo decimal.Decimal `json:"saldo"`
}

// Per-operation results keep session and balance payloads statically distinct.
type (
	RegisterResult       = Result[Ack]
	RechargeResult       = Result[Ack]
	PaymentRequestResult = Result[PaymentTicket]
	ConfirmResult        = Result[Ack]
	BalanceResult        = Result[Balance]
)
