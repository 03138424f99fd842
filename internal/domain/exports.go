package domain

import (
	interfaces "billetera/internal/domain/interfaces"
	types "billetera/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	SessionID            = types.SessionID
	ErrorCode            = types.ErrorCode
	ClientProfile        = types.ClientProfile
	RechargeRequest      = types.RechargeRequest
	PaymentRequest       = types.PaymentRequest
	ConfirmRequest       = types.ConfirmRequest
	BalanceQuery         = types.BalanceQuery
	PaymentSession       = types.PaymentSession
	SessionStatus        = types.SessionStatus
	Ack                  = types.Ack
	PaymentTicket        = types.PaymentTicket
	Balance              = types.Balance
	RegisterResult       = types.RegisterResult
	RechargeResult       = types.RechargeResult
	PaymentRequestResult = types.PaymentRequestResult
	ConfirmResult        = types.ConfirmResult
	BalanceResult        = types.BalanceResult
)

// Error codes re-exported from the types subpackage.
const (
	CodeMissingPayload   = types.CodeMissingPayload
	CodeMissingDocumento = types.CodeMissingDocumento
	CodeMissingCelular   = types.CodeMissingCelular
	CodeMissingNombres   = types.CodeMissingNombres
	CodeInvalidEmail     = types.CodeInvalidEmail
	CodeInvalidAmount    = types.CodeInvalidAmount
	CodeMissingParams    = types.CodeMissingParams
	CodeNetworkError     = types.CodeNetworkError
	CodeUnknownError     = types.CodeUnknownError
)

// Session statuses re-exported from the types subpackage.
const (
	SessionRequested = types.SessionRequested
	SessionConfirmed = types.SessionConfirmed
	SessionFailed    = types.SessionFailed
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	WalletClient = interfaces.WalletClient
)
