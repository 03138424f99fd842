package app

import (
	"time"

	"go.uber.org/zap"

	"billetera/internal/domain"
	"billetera/internal/logging"
	"billetera/internal/services/balance"
	"billetera/internal/services/payment"
	"billetera/internal/services/recharge"
	"billetera/internal/services/registration"
)

// Views is one private set of view controllers. Each browser session, and
// each CLI invocation, gets its own.
type Views struct {
	Register *registration.Service
	Recharge *recharge.Service
	Payment  *payment.Service
	Balance  *balance.Service
}

// NewViews builds a fresh set of controllers over client. Extra payment
// options are applied after the reset delay.
func NewViews(client domain.WalletClient, log *zap.Logger, resetDelay time.Duration, opts ...payment.Option) *Views {
	log = logging.OrNop(log)
	popts := append([]payment.Option{
		payment.WithResetDelay(resetDelay),
		payment.WithLogger(log.Named("payment")),
	}, opts...)
	return &Views{
		Register: registration.New(client, registration.WithLogger(log.Named("registration"))),
		Recharge: recharge.New(client, recharge.WithLogger(log.Named("recharge"))),
		Payment:  payment.New(client, popts...),
		Balance:  balance.New(client, balance.WithLogger(log.Named("balance"))),
	}
}

// Close tears down every controller, cancelling a pending payment reset.
func (v *Views) Close() {
	v.Register.Close()
	v.Recharge.Close()
	v.Payment.Close()
	v.Balance.Close()
}
