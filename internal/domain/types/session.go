package types

import "github.com/shopspring/decimal"

// SessionStatus tracks a payment session through confirmation.
type SessionStatus string

const (
	SessionRequested SessionStatus = "REQUESTED"
	SessionConfirmed SessionStatus = "CONFIRMED"
	SessionFailed    SessionStatus = "FAILED"
)

// PaymentSession is the client-side record of a payment awaiting its token.
// It lives only as long as the payment view that created it; expiry is
// enforced by the wallet service, never here.
type PaymentSession struct {
	SessionID SessionID       `json:"sessionId"`
	Documento string          `json:"documento"`
	Celular   string          `json:"celular"`
	Valor     decimal.Decimal `json:"valor"`
	Token     string          `json:"token,omitempty"`
	Status    SessionStatus   `json:"status"`
}
