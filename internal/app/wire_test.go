package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billetera/internal/domain"
	"billetera/internal/services/balance"
)

func TestNewWire_RefusesMissingURL(t *testing.T) {
	_, err := NewWire(Config{Timeout: time.Second, ResetDelay: time.Second, SessionIdle: time.Minute})
	assert.ErrorIs(t, err, ErrMissingAPIURL)
}

func TestNewWire_ViewsTalkToWallet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":{"saldo":125000}}`))
	}))
	t.Cleanup(srv.Close)

	w, err := NewWire(Config{
		APIURL: srv.URL, LogLevel: "error", LogFormat: "json",
		Timeout: time.Second, ResetDelay: time.Second, SessionIdle: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(w.Close)
	assert.Equal(t, time.Second, w.HTTP.Timeout)

	views := w.NewViews()
	t.Cleanup(views.Close)

	st, err := views.Balance.Submit(context.Background(), balance.Form{Documento: "1"})
	require.NoError(t, err)
	assert.Equal(t, "$125.000", st.Formatted)
}

func TestWire_RegistryAndSealer(t *testing.T) {
	w, err := NewWire(Config{
		APIURL: "http://127.0.0.1:1", LogLevel: "error",
		Timeout: time.Second, ResetDelay: time.Second, SessionIdle: time.Minute,
	})
	require.NoError(t, err)

	reg := w.Registry()
	v, created := reg.GetOrCreate("browser")
	require.True(t, created)
	require.NotNil(t, v.Payment)
	reg.CloseAll()

	s, err := w.Sealer()
	require.NoError(t, err)
	sealed, err := s.Seal("sid", []byte("x"))
	require.NoError(t, err)
	out, err := s.Open("sid", sealed)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), out)

	w.Config.CookieSecret = "short"
	_, err = w.Sealer()
	assert.Error(t, err)
}

func TestViews_CloseRefusesSubmissions(t *testing.T) {
	v := NewViews(domain.WalletClient(nil), nil, time.Second)
	v.Close()
	_, err := v.Balance.Submit(context.Background(), balance.Form{Documento: "1"})
	assert.Error(t, err)
}
