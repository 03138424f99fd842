package payment_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billetera/internal/domain"
	"billetera/internal/services/payment"
	"billetera/internal/services/view"
	"billetera/internal/wallet/wallettest"
)

// manualClock runs scheduled functions only when Fire is called.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) payment.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Fire runs every timer that was neither stopped nor fired.
func (c *manualClock) Fire() {
	c.mu.Lock()
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	for _, t := range due {
		t.f()
	}
}

func (c *manualClock) last() *manualTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.timers) == 0 {
		return nil
	}
	return c.timers[len(c.timers)-1]
}

var form = payment.Form{Documento: "1020", Celular: "300", Valor: "20000"}

func newService(t *testing.T, fake *wallettest.Fake) (*payment.Service, *manualClock) {
	t.Helper()
	clock := &manualClock{}
	svc := payment.New(fake,
		payment.WithAfterFunc(clock.AfterFunc),
		payment.WithResetDelay(2*time.Second),
	)
	t.Cleanup(svc.Close)
	return svc, clock
}

func abc123(domain.PaymentRequest) domain.PaymentRequestResult {
	return domain.PaymentRequestResult{
		Success: true,
		Message: "Token enviado",
		Data:    &domain.PaymentTicket{SessionID: "abc123"},
	}
}

func TestSubmitRequest_SuccessMovesToConfirm(t *testing.T) {
	fake := &wallettest.Fake{RequestFn: abc123}
	svc, _ := newService(t, fake)

	st, err := svc.SubmitRequest(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, payment.StepConfirm, st.Step)
	assert.Equal(t, domain.SessionID("abc123"), st.SessionID())
	assert.Equal(t, view.Success("Token enviado"), st.Message)
	assert.True(t, st.Session.Valor.Equal(decimal.NewFromInt(20000)))

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "1020", reqs[0].Documento)
	assert.Equal(t, "300", reqs[0].Celular)

	_, err = svc.SubmitConfirm(context.Background(), "123456")
	require.NoError(t, err)
	confirms := fake.Confirms()
	require.Len(t, confirms, 1)
	assert.Equal(t, domain.ConfirmRequest{SessionID: "abc123", Token: "123456"}, confirms[0])
}

func TestSubmitRequest_FailureStaysOnRequest(t *testing.T) {
	fake := &wallettest.Fake{RequestFn: func(domain.PaymentRequest) domain.PaymentRequestResult {
		return domain.PaymentRequestResult{Message: "Saldo insuficiente", Error: "INSUFFICIENT_FUNDS"}
	}}
	svc, _ := newService(t, fake)

	st, err := svc.SubmitRequest(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, payment.StepRequest, st.Step)
	assert.Equal(t, view.Error("Saldo insuficiente"), st.Message)
	assert.Equal(t, form, st.Form)
	assert.Nil(t, st.Session)
	assert.False(t, st.Busy)
}

func TestSubmitRequest_InvalidInputSkipsWallet(t *testing.T) {
	cases := []struct {
		name string
		form payment.Form
		msg  string
	}{
		{"zero", payment.Form{Documento: "1", Celular: "3", Valor: "0"}, "El valor debe ser un número mayor a cero."},
		{"negative", payment.Form{Documento: "1", Celular: "3", Valor: "-5"}, "El valor debe ser un número mayor a cero."},
		{"text", payment.Form{Documento: "1", Celular: "3", Valor: "diez"}, "El valor debe ser un número mayor a cero."},
		{"no documento", payment.Form{Celular: "3", Valor: "10"}, "El documento es obligatorio."},
		{"no celular", payment.Form{Documento: "1", Celular: "  ", Valor: ""}, "El celular es obligatorio."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &wallettest.Fake{}
			svc, _ := newService(t, fake)

			st, err := svc.SubmitRequest(context.Background(), tc.form)
			require.NoError(t, err)
			assert.Equal(t, payment.StepRequest, st.Step)
			assert.Equal(t, view.Error(tc.msg), st.Message)
			assert.Equal(t, tc.form, st.Form)
			assert.Empty(t, fake.Requests())
		})
	}
}

func TestSubmitConfirm_SuccessResetsAfterDelay(t *testing.T) {
	fake := &wallettest.Fake{RequestFn: abc123}
	svc, clock := newService(t, fake)

	_, err := svc.SubmitRequest(context.Background(), form)
	require.NoError(t, err)
	st, err := svc.SubmitConfirm(context.Background(), "123456")
	require.NoError(t, err)

	assert.Equal(t, payment.StepConfirm, st.Step)
	assert.Equal(t, view.Success("Pago confirmado."), st.Message)
	assert.True(t, st.ResetPending)
	assert.Equal(t, domain.SessionConfirmed, st.Session.Status)

	timer := clock.last()
	require.NotNil(t, timer)
	assert.Equal(t, 2*time.Second, timer.d)

	_, err = svc.SubmitConfirm(context.Background(), "123456")
	assert.ErrorIs(t, err, view.ErrWrongStep)

	clock.Fire()
	assert.Equal(t, payment.Initial(), svc.State())
	assert.Len(t, fake.Confirms(), 1)
}

func TestSubmitConfirm_FailureKeepsSessionAndAllowsRetry(t *testing.T) {
	attempts := 0
	fake := &wallettest.Fake{
		RequestFn: abc123,
		ConfirmFn: func(domain.ConfirmRequest) domain.ConfirmResult {
			attempts++
			if attempts == 1 {
				return domain.ConfirmResult{Message: "Token inválido", Error: "INVALID_TOKEN"}
			}
			return domain.ConfirmResult{Success: true, Message: "Pago exitoso"}
		},
	}
	svc, clock := newService(t, fake)

	_, err := svc.SubmitRequest(context.Background(), form)
	require.NoError(t, err)

	st, err := svc.SubmitConfirm(context.Background(), "000000")
	require.NoError(t, err)
	assert.Equal(t, payment.StepConfirm, st.Step)
	assert.Equal(t, domain.SessionID("abc123"), st.SessionID())
	assert.Equal(t, domain.SessionFailed, st.Session.Status)
	assert.Equal(t, "000000", st.Token)
	assert.Equal(t, view.Error("Token inválido"), st.Message)
	assert.Nil(t, clock.last())

	st, err = svc.SubmitConfirm(context.Background(), "123456")
	require.NoError(t, err)
	assert.Equal(t, view.Success("Pago exitoso"), st.Message)

	confirms := fake.Confirms()
	require.Len(t, confirms, 2)
	assert.Equal(t, confirms[0].SessionID, confirms[1].SessionID)
}

func TestSubmitConfirm_BlankTokenIsRejected(t *testing.T) {
	fake := &wallettest.Fake{RequestFn: abc123}
	svc, _ := newService(t, fake)
	_, err := svc.SubmitRequest(context.Background(), form)
	require.NoError(t, err)

	st, err := svc.SubmitConfirm(context.Background(), "   ")
	require.NoError(t, err)
	assert.True(t, st.Message.IsError())
	assert.Equal(t, payment.StepConfirm, st.Step)
	assert.Empty(t, fake.Confirms())
}

func TestSubmitConfirm_WrongStep(t *testing.T) {
	svc, _ := newService(t, &wallettest.Fake{})

	_, err := svc.SubmitConfirm(context.Background(), "123456")
	assert.ErrorIs(t, err, view.ErrWrongStep)
}

func TestBack_KeepsFieldsAndCancelsReset(t *testing.T) {
	fake := &wallettest.Fake{RequestFn: abc123}
	svc, clock := newService(t, fake)

	_, err := svc.SubmitRequest(context.Background(), form)
	require.NoError(t, err)
	_, err = svc.SubmitConfirm(context.Background(), "123456")
	require.NoError(t, err)

	st := svc.Back()
	assert.Equal(t, payment.State{Step: payment.StepRequest, Form: form}, st)
	assert.True(t, clock.last().stopped)

	clock.Fire()
	assert.Equal(t, form, svc.State().Form, "a cancelled reset must not clear the form")
}

func TestClose_CancelsPendingReset(t *testing.T) {
	fake := &wallettest.Fake{RequestFn: abc123}
	svc, clock := newService(t, fake)

	_, err := svc.SubmitRequest(context.Background(), form)
	require.NoError(t, err)
	confirmed, err := svc.SubmitConfirm(context.Background(), "123456")
	require.NoError(t, err)
	require.True(t, confirmed.ResetPending)

	svc.Close()
	timer := clock.last()
	require.NotNil(t, timer)
	assert.True(t, timer.stopped)

	clock.Fire()
	assert.Equal(t, confirmed, svc.State())

	// A reset callback already on its way when Close ran is ignored too.
	timer.f()
	assert.Equal(t, confirmed, svc.State())

	_, err = svc.SubmitRequest(context.Background(), form)
	assert.ErrorIs(t, err, view.ErrClosed)
}

func TestBack_OutsideConfirmIsIgnored(t *testing.T) {
	svc, _ := newService(t, &wallettest.Fake{})
	assert.Equal(t, payment.Initial(), svc.Back())
}

func TestBusyGuardAndStaleResponse(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	fake := &wallettest.Fake{RequestFn: func(r domain.PaymentRequest) domain.PaymentRequestResult {
		close(started)
		<-release
		return abc123(r)
	}}
	svc, _ := newService(t, fake)

	done := make(chan payment.State)
	go func() {
		st, _ := svc.SubmitRequest(context.Background(), form)
		done <- st
	}()
	<-started

	assert.True(t, svc.State().Busy)
	_, err := svc.SubmitRequest(context.Background(), form)
	assert.ErrorIs(t, err, view.ErrBusy)

	svc.Close()
	close(release)
	st := <-done

	assert.Equal(t, payment.StepRequest, st.Step, "response after Close is dropped")
	_, err = svc.SubmitRequest(context.Background(), form)
	assert.ErrorIs(t, err, view.ErrClosed)
}
