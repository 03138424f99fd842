package interfaces

import (
	"context"

	domaintypes "billetera/internal/domain/types"
)

// WalletClient is how the front end talks to the remote wallet service.
//
// Implementations never return Go errors: every failure, including input
// validation, is folded into the returned Result.
type WalletClient interface {
	RegisterClient(ctx context.Context, profile domaintypes.ClientProfile) domaintypes.RegisterResult
	RechargeWallet(ctx context.Context, req domaintypes.RechargeRequest) domaintypes.RechargeResult
	RequestPayment(ctx context.Context, req domaintypes.PaymentRequest) domaintypes.PaymentRequestResult
	ConfirmPayment(ctx context.Context, req domaintypes.ConfirmRequest) domaintypes.ConfirmResult
	CheckBalance(ctx context.Context, query domaintypes.BalanceQuery) domaintypes.BalanceResult
}
