package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billetera/internal/domain"
	"billetera/internal/services/view"
)

var form = Form{Documento: "1020", Celular: "300", Valor: "20000"}

func confirmStep() State {
	s := Reduce(Initial(), RequestSubmitted{Form: form})
	return Reduce(s, RequestSucceeded{
		Session: domain.PaymentSession{SessionID: "abc123", Documento: "1020", Celular: "300", Valor: decimal.NewFromInt(20000)},
		Message: "Token enviado",
	})
}

func TestReduce_RequestCycle(t *testing.T) {
	s := Reduce(Initial(), RequestSubmitted{Form: form})
	assert.True(t, s.Busy)
	assert.Equal(t, form, s.Form)

	failed := Reduce(s, RequestFailed{Message: "Cliente no existe"})
	assert.Equal(t, StepRequest, failed.Step)
	assert.Equal(t, view.Error("Cliente no existe"), failed.Message)
	assert.Equal(t, form, failed.Form)
	assert.False(t, failed.Busy)

	ok := confirmStep()
	assert.Equal(t, StepConfirm, ok.Step)
	require.NotNil(t, ok.Session)
	assert.Equal(t, domain.SessionID("abc123"), ok.SessionID())
	assert.Equal(t, domain.SessionRequested, ok.Session.Status)
	assert.Equal(t, view.Success("Token enviado"), ok.Message)
}

func TestReduce_ConfirmFailureKeepsSession(t *testing.T) {
	s := Reduce(confirmStep(), ConfirmSubmitted{Token: "123456"})
	s = Reduce(s, ConfirmFailed{Message: "Token inválido"})

	assert.Equal(t, StepConfirm, s.Step)
	assert.Equal(t, domain.SessionID("abc123"), s.SessionID())
	assert.Equal(t, domain.SessionFailed, s.Session.Status)
	assert.Equal(t, "123456", s.Token)
	assert.True(t, s.Message.IsError())
	assert.False(t, s.ResetPending)
}

func TestReduce_ConfirmSuccessThenReset(t *testing.T) {
	s := Reduce(confirmStep(), ConfirmSubmitted{Token: "123456"})
	s = Reduce(s, ConfirmSucceeded{Message: "Pago confirmado"})

	assert.Equal(t, StepConfirm, s.Step)
	assert.True(t, s.ResetPending)
	assert.Equal(t, domain.SessionConfirmed, s.Session.Status)
	assert.Equal(t, view.Success("Pago confirmado"), s.Message)

	// No further confirmation while the reset is pending.
	assert.Equal(t, s, Reduce(s, ConfirmSubmitted{Token: "999999"}))

	assert.Equal(t, Initial(), Reduce(s, ResetElapsed{}))
}

func TestReduce_Back(t *testing.T) {
	s := Reduce(confirmStep(), ConfirmSubmitted{Token: "123456"})
	assert.Equal(t, s, Reduce(s, BackPressed{}), "back is ignored while busy")

	s = Reduce(s, ConfirmFailed{Message: "Token inválido"})
	back := Reduce(s, BackPressed{})
	assert.Equal(t, State{Step: StepRequest, Form: form}, back)
}

func TestReduce_IgnoresEventsForOtherStep(t *testing.T) {
	initial := Initial()
	for _, e := range []Event{
		RequestSucceeded{Message: "x"},
		RequestFailed{Message: "x"},
		ConfirmSubmitted{Token: "1"},
		ConfirmSucceeded{},
		ConfirmFailed{},
		BackPressed{},
		ResetElapsed{},
	} {
		assert.Equal(t, initial, Reduce(initial, e), "%T", e)
	}

	c := confirmStep()
	assert.Equal(t, c, Reduce(c, RequestSubmitted{Form: Form{}}))
	assert.Equal(t, c, Reduce(c, ResetElapsed{}))
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	before := confirmStep()
	_ = Reduce(before, ConfirmSubmitted{Token: "123456"})

	assert.Empty(t, before.Session.Token)
	assert.Empty(t, before.Token)
	assert.False(t, before.Busy)
}
