package registration_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billetera/internal/domain"
	"billetera/internal/services/registration"
	"billetera/internal/services/view"
	"billetera/internal/wallet/wallettest"
)

var form = registration.Form{
	Documento: "1020304050",
	Nombres:   "Ana Pérez",
	Email:     "ana@example.com",
	Celular:   "3001234567",
}

func TestSubmit_SuccessClearsForm(t *testing.T) {
	fake := &wallettest.Fake{}
	svc := registration.New(fake)

	st, err := svc.Submit(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, registration.State{Message: view.Success("Cliente registrado.")}, st)
	regs := fake.Registers()
	require.Len(t, regs, 1)
	assert.Equal(t, domain.ClientProfile{
		Documento: "1020304050", Nombres: "Ana Pérez", Email: "ana@example.com", Celular: "3001234567",
	}, regs[0])
}

func TestSubmit_EmptySuccessMessageGetsDefault(t *testing.T) {
	fake := &wallettest.Fake{RegisterFn: func(domain.ClientProfile) domain.RegisterResult {
		return domain.RegisterResult{Success: true}
	}}
	st, err := registration.New(fake).Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, view.Success(registration.MsgRegistered), st.Message)
}

func TestSubmit_FailureKeepsForm(t *testing.T) {
	fake := &wallettest.Fake{RegisterFn: func(domain.ClientProfile) domain.RegisterResult {
		return domain.RegisterResult{Message: "El cliente ya existe", Error: "CLIENT_EXISTS"}
	}}
	st, err := registration.New(fake).Submit(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, form, st.Form)
	assert.Equal(t, view.Error("El cliente ya existe"), st.Message)
}

func TestSubmit_InvalidEmailSkipsWallet(t *testing.T) {
	fake := &wallettest.Fake{}
	bad := form
	bad.Email = "ana@"

	st, err := registration.New(fake).Submit(context.Background(), bad)
	require.NoError(t, err)

	assert.Equal(t, view.Error("El email no es válido."), st.Message)
	assert.Equal(t, bad, st.Form)
	assert.Empty(t, fake.Registers())
}

func TestSubmit_BusyGuard(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	fake := &wallettest.Fake{RegisterFn: func(domain.ClientProfile) domain.RegisterResult {
		close(started)
		<-release
		return domain.RegisterResult{Success: true, Message: "ok"}
	}}
	svc := registration.New(fake)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Submit(context.Background(), form)
	}()
	<-started

	_, err := svc.Submit(context.Background(), form)
	assert.ErrorIs(t, err, view.ErrBusy)
	assert.True(t, svc.State().Busy)

	close(release)
	<-done
	assert.False(t, svc.State().Busy)
	assert.Len(t, fake.Registers(), 1)
}
