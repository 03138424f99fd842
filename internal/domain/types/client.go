package types

import "github.com/shopspring/decimal"

// ClientProfile is the registration payload.
type ClientProfile struct {
	Documento string `json:"documento" validate:"notblank"`
	Nombres   string `json:"nombres" validate:"notblank"`
	Email     string `json:"email" validate:"wallet_email"`
	Celular   string `json:"celular" validate:"notblank"`
}

// RechargeRequest credits Valor to the wallet identified by Documento and Celular.
type RechargeRequest struct {
	Documento string          `json:"documento" validate:"notblank"`
	Celular   string          `json:"celular" validate:"notblank"`
	Valor     decimal.Decimal `json:"valor" validate:"positive_decimal"`
}

// PaymentRequest opens a payment session for Valor. The wallet service
// answers with a session id and sends a token to the client out of band.
type PaymentRequest struct {
	Documento string          `json:"documento" validate:"notblank"`
	Celular   string          `json:"celular" validate:"notblank"`
	Valor     decimal.Decimal `json:"valor" validate:"positive_decimal"`
}

// ConfirmRequest confirms a pending payment session with its token.
type ConfirmRequest struct {
	SessionID SessionID `json:"sessionId" validate:"notblank"`
	Token     string    `json:"token" validate:"notblank"`
}

// BalanceQuery selects the wallet to inspect. Celular is optional and only
// sent when set.
type BalanceQuery struct {
	Documento string `json:"documento" validate:"notblank"`
	Celular   string `json:"celular,omitempty"`
}
