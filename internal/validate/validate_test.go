package validate_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billetera/internal/domain"
	"billetera/internal/validate"
)

func validProfile() domain.ClientProfile {
	return domain.ClientProfile{
		Documento: "1020304050",
		Nombres:   "Ana Pérez",
		Email:     "ana@example.com",
		Celular:   "3001234567",
	}
}

func TestClientProfile_Valid(t *testing.T) {
	t.Parallel()

	assert.Nil(t, validate.ClientProfile(validProfile()))
}

func TestClientProfile_FirstFailingFieldWins(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*domain.ClientProfile)
		code   domain.ErrorCode
	}{
		{"blank documento", func(p *domain.ClientProfile) { p.Documento = "   " }, domain.CodeMissingDocumento},
		{"empty nombres", func(p *domain.ClientProfile) { p.Nombres = "" }, domain.CodeMissingNombres},
		{"bad email", func(p *domain.ClientProfile) { p.Email = "ana@example" }, domain.CodeInvalidEmail},
		{"tab celular", func(p *domain.ClientProfile) { p.Celular = "\t" }, domain.CodeMissingCelular},
		{"documento before email", func(p *domain.ClientProfile) {
			p.Documento = ""
			p.Email = "nope"
		}, domain.CodeMissingDocumento},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProfile()
			tc.mutate(&p)
			f := validate.ClientProfile(p)
			require.NotNil(t, f)
			assert.Equal(t, tc.code, f.Code)
			assert.NotEmpty(t, f.Message)
		})
	}
}

func TestClientProfile_ZeroValueIsMissingPayload(t *testing.T) {
	t.Parallel()

	f := validate.ClientProfile(domain.ClientProfile{})
	require.NotNil(t, f)
	assert.Equal(t, domain.CodeMissingPayload, f.Code)
}

func TestEmail(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"a@b.co", "first.last@mail.example.org", "x+y@d.io"} {
		assert.Nil(t, validate.Email(ok), ok)
	}
	for _, bad := range []string{"", "plain", "a@b", "a@@b.co", "a b@c.co", "@b.co", "a@.co."} {
		f := validate.Email(bad)
		require.NotNil(t, f, bad)
		assert.Equal(t, domain.CodeInvalidEmail, f.Code)
	}
}

func TestAmountRequests(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"0", "-1", "-0.01"} {
		f := validate.RechargeRequest(domain.RechargeRequest{
			Documento: "1", Celular: "3", Valor: decimal.RequireFromString(v),
		})
		require.NotNil(t, f, v)
		assert.Equal(t, domain.CodeInvalidAmount, f.Code)

		f = validate.PaymentRequest(domain.PaymentRequest{
			Documento: "1", Celular: "3", Valor: decimal.RequireFromString(v),
		})
		require.NotNil(t, f, v)
		assert.Equal(t, domain.CodeInvalidAmount, f.Code)
	}

	assert.Nil(t, validate.PaymentRequest(domain.PaymentRequest{
		Documento: "1", Celular: "3", Valor: decimal.RequireFromString("0.01"),
	}))
}

func TestRechargeRequest_MissingFields(t *testing.T) {
	t.Parallel()

	f := validate.RechargeRequest(domain.RechargeRequest{Celular: "3", Valor: decimal.NewFromInt(10)})
	require.NotNil(t, f)
	assert.Equal(t, domain.CodeMissingDocumento, f.Code)

	f = validate.RechargeRequest(domain.RechargeRequest{Documento: "1", Valor: decimal.NewFromInt(10)})
	require.NotNil(t, f)
	assert.Equal(t, domain.CodeMissingCelular, f.Code)
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	d, f := validate.ParseAmount(" 2500.50 ")
	require.Nil(t, f)
	assert.True(t, d.Equal(decimal.RequireFromString("2500.5")))

	for _, raw := range []string{"", "abc", "NaN", "Inf", "0", "-5", "1e"} {
		_, f := validate.ParseAmount(raw)
		require.NotNil(t, f, raw)
		assert.Equal(t, domain.CodeInvalidAmount, f.Code, raw)
	}
}

func TestConfirmRequest(t *testing.T) {
	t.Parallel()

	assert.Nil(t, validate.ConfirmRequest(domain.ConfirmRequest{SessionID: "abc123", Token: "123456"}))

	for _, r := range []domain.ConfirmRequest{
		{},
		{SessionID: "abc123"},
		{Token: "123456"},
		{SessionID: " ", Token: "123456"},
	} {
		f := validate.ConfirmRequest(r)
		require.NotNil(t, f)
		assert.Equal(t, domain.CodeMissingParams, f.Code)
	}
}

func TestBalanceQuery(t *testing.T) {
	t.Parallel()

	assert.Nil(t, validate.BalanceQuery(domain.BalanceQuery{Documento: "1"}))
	assert.Nil(t, validate.BalanceQuery(domain.BalanceQuery{Documento: "1", Celular: "3"}))

	f := validate.BalanceQuery(domain.BalanceQuery{Celular: "3"})
	require.NotNil(t, f)
	assert.Equal(t, domain.CodeMissingDocumento, f.Code)
}

func TestValidatorsAreIdempotent(t *testing.T) {
	t.Parallel()

	p := validProfile()
	p.Email = "broken"
	first := validate.ClientProfile(p)
	second := validate.ClientProfile(p)
	require.NotNil(t, first)
	assert.Equal(t, *first, *second)

	assert.Equal(t, validate.Documento(""), validate.Documento(""))
	assert.Nil(t, validate.Celular("300"))
	assert.Nil(t, validate.Celular("300"))
}
