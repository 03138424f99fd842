package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"billetera/internal/domain"
	domaintypes "billetera/internal/domain/types"
	"billetera/internal/logging"
	"billetera/internal/validate"
)

// Endpoint paths, relative to the configured base URL.
const (
	PathRegister       = "/clients/registroCliente"
	PathRecharge       = "/wallet/recargarBilletera"
	PathRequestPayment = "/wallet/solicitarPago"
	PathConfirmPayment = "/wallet/confirmarPago"
	PathBalance        = "/wallet/consultarSaldo"
)

// HeaderRequestID carries a fresh uuid on every outbound call.
const HeaderRequestID = "X-Request-Id"

const maxBodyBytes = 1 << 20

// Messages used when the wallet service gives none.
const (
	MsgNetworkError = "No fue posible conectar con el servicio de billetera."
	MsgUnknownError = "Respuesta inesperada del servicio de billetera."

	msgRegisterFailed = "Error al crear el cliente."
	msgRechargeFailed = "Error al recargar la billetera."
	msgRequestFailed  = "Error al solicitar el pago."
	msgConfirmFailed  = "Error al confirmar el pago."
	msgBalanceFailed  = "Error al consultar el saldo."
	msgNoSession      = "El servicio no devolvió una sesión de pago."
	msgNoBalance      = "El servicio no devolvió el saldo."
)

// HTTP talks JSON over HTTP to the wallet service rooted at Base.
type HTTP struct {
	Base   string
	HTTP   *http.Client
	Logger *zap.Logger
}

// NewHTTP returns a client for base. A nil httpClient means http.DefaultClient;
// a nil logger discards logs.
func NewHTTP(base string, httpClient *http.Client, logger *zap.Logger) *HTTP {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTP{
		Base:   strings.TrimRight(base, "/"),
		HTTP:   httpClient,
		Logger: logging.OrNop(logger),
	}
}

// amountBody is the wire form of recharge and payment requests; valor travels
// as a JSON number.
type amountBody struct {
	Documento string      `json:"documento"`
	Celular   string      `json:"celular"`
	Valor     json.Number `json:"valor"`
}

func newAmountBody(documento, celular string, valor decimal.Decimal) amountBody {
	return amountBody{Documento: documento, Celular: celular, Valor: json.Number(valor.String())}
}

// RegisterClient posts a new client profile. Fields are sent trimmed.
func (c *HTTP) RegisterClient(ctx context.Context, profile domain.ClientProfile) domain.RegisterResult {
	profile = domain.ClientProfile{
		Documento: strings.TrimSpace(profile.Documento),
		Nombres:   strings.TrimSpace(profile.Nombres),
		Email:     strings.TrimSpace(profile.Email),
		Celular:   strings.TrimSpace(profile.Celular),
	}
	if f := validate.ClientProfile(profile); f != nil {
		return rejected[domain.Ack](f)
	}
	return do[domain.Ack](ctx, c, call{
		op: "register", method: http.MethodPost, path: PathRegister,
		body: profile, fallback: msgRegisterFailed,
	})
}

// RechargeWallet credits a wallet.
func (c *HTTP) RechargeWallet(ctx context.Context, req domain.RechargeRequest) domain.RechargeResult {
	req.Documento, req.Celular = strings.TrimSpace(req.Documento), strings.TrimSpace(req.Celular)
	if f := validate.RechargeRequest(req); f != nil {
		return rejected[domain.Ack](f)
	}
	return do[domain.Ack](ctx, c, call{
		op: "recharge", method: http.MethodPost, path: PathRecharge,
		body: newAmountBody(req.Documento, req.Celular, req.Valor), fallback: msgRechargeFailed,
	})
}

// RequestPayment opens a payment session. A successful result always carries
// a non-empty session id; a success envelope without one is reported as
// UNKNOWN_ERROR.
func (c *HTTP) RequestPayment(ctx context.Context, req domain.PaymentRequest) domain.PaymentRequestResult {
	req.Documento, req.Celular = strings.TrimSpace(req.Documento), strings.TrimSpace(req.Celular)
	if f := validate.PaymentRequest(req); f != nil {
		return rejected[domain.PaymentTicket](f)
	}
	res := do[domain.PaymentTicket](ctx, c, call{
		op: "request-payment", method: http.MethodPost, path: PathRequestPayment,
		body: newAmountBody(req.Documento, req.Celular, req.Valor), fallback: msgRequestFailed,
	})
	if res.Success && (res.Data == nil || strings.TrimSpace(res.Data.SessionID.String()) == "") {
		c.logger().Warn("payment request succeeded without session id", zap.Int("status", res.Status))
		return malformed[domain.PaymentTicket](res.Status, msgNoSession)
	}
	if res.Success {
		c.logger().Debug("payment session opened", logging.Redacted("session", res.Data.SessionID.String()))
	}
	return res
}

// ConfirmPayment confirms a session with its token.
func (c *HTTP) ConfirmPayment(ctx context.Context, req domain.ConfirmRequest) domain.ConfirmResult {
	req.SessionID = domain.SessionID(strings.TrimSpace(req.SessionID.String()))
	req.Token = strings.TrimSpace(req.Token)
	if f := validate.ConfirmRequest(req); f != nil {
		return rejected[domain.Ack](f)
	}
	return do[domain.Ack](ctx, c, call{
		op: "confirm-payment", method: http.MethodPost, path: PathConfirmPayment,
		body: req, fallback: msgConfirmFailed,
	})
}

// balanceData keeps "saldo absent" distinguishable from zero.
type balanceData struct {
	Saldo *decimal.Decimal `json:"saldo"`
}

// CheckBalance reads a wallet balance. celular is sent only when set.
func (c *HTTP) CheckBalance(ctx context.Context, query domain.BalanceQuery) domain.BalanceResult {
	query.Documento, query.Celular = strings.TrimSpace(query.Documento), strings.TrimSpace(query.Celular)
	if f := validate.BalanceQuery(query); f != nil {
		return rejected[domain.Balance](f)
	}
	q := url.Values{}
	q.Set("documento", query.Documento)
	if query.Celular != "" {
		q.Set("celular", query.Celular)
	}
	res := do[balanceData](ctx, c, call{
		op: "check-balance", method: http.MethodGet, path: PathBalance,
		query: q, fallback: msgBalanceFailed,
	})
	out := domain.BalanceResult{
		Success: res.Success,
		Message: res.Message,
		Error:   res.Error,
		Status:  res.Status,
	}
	if !res.Success {
		return out
	}
	if res.Data == nil || res.Data.Saldo == nil {
		c.logger().Warn("balance succeeded without saldo", zap.Int("status", res.Status))
		return malformed[domain.Balance](res.Status, msgNoBalance)
	}
	out.Data = &domain.Balance{Saldo: *res.Data.Saldo}
	return out
}

// call describes one outbound request.
type call struct {
	op       string
	method   string
	path     string
	query    url.Values
	body     any
	fallback string // failure message when the service sends none
}

// envelope is the wire shape of every wallet service response. Success is a
// pointer so a body without it is not mistaken for a failure envelope.
type envelope struct {
	Success *bool            `json:"success"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Error   domain.ErrorCode `json:"error"`
}

// do performs one call and folds every outcome into a Result.
//
// Steps:
//  1. Encode the body and build the request (failure: UNKNOWN_ERROR).
//  2. Send it (connection failure, timeout, cancellation: NETWORK_ERROR).
//  3. Decode the envelope. Without one, non-2xx is NETWORK_ERROR and 2xx is
//     UNKNOWN_ERROR.
//  4. On a failure envelope pass message and code through and ignore data.
//     On a success envelope decode data into T (failure: UNKNOWN_ERROR).
func do[T any](ctx context.Context, c *HTTP, cl call) domaintypes.Result[T] {
	log := c.logger().With(zap.String("op", cl.op))
	reqID := uuid.NewString()

	u := c.Base + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	var rdr io.Reader
	if cl.body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(cl.body); err != nil {
			log.Error("encode request", zap.Error(err))
			return domaintypes.Failed[T](domain.CodeUnknownError, MsgUnknownError)
		}
		rdr = buf
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, u, rdr)
	if err != nil {
		log.Error("build request", zap.Error(err))
		return domaintypes.Failed[T](domain.CodeUnknownError, MsgUnknownError)
	}
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set(HeaderRequestID, reqID)

	start := time.Now()
	resp, err := c.client().Do(req)
	if err != nil {
		log.Warn("wallet service unreachable",
			zap.String("request_id", reqID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return domaintypes.Failed[T](domain.CodeNetworkError, MsgNetworkError)
	}
	defer resp.Body.Close()

	log = log.With(
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn("read response", zap.Error(err))
		return withStatus(domaintypes.Failed[T](domain.CodeNetworkError, MsgNetworkError), resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Success == nil {
		if resp.StatusCode/100 == 2 {
			log.Warn("response is not an envelope")
			return withStatus(domaintypes.Failed[T](domain.CodeUnknownError, MsgUnknownError), resp.StatusCode)
		}
		log.Warn("wallet service error without envelope")
		return withStatus(domaintypes.Failed[T](domain.CodeNetworkError, MsgNetworkError), resp.StatusCode)
	}

	out := domaintypes.Result[T]{
		Success: *env.Success,
		Message: env.Message,
		Error:   env.Error,
		Status:  resp.StatusCode,
	}
	if out.Success && len(env.Data) > 0 && !bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
		var data T
		if err := json.Unmarshal(env.Data, &data); err != nil {
			log.Warn("decode response data", zap.Error(err))
			return withStatus(domaintypes.Failed[T](domain.CodeUnknownError, MsgUnknownError), resp.StatusCode)
		}
		out.Data = &data
	}
	if !out.Success && strings.TrimSpace(out.Message) == "" {
		out.Message = cl.fallback
	}

	log.Debug("wallet call", zap.Bool("success", out.Success), zap.String("error", out.Error.String()))
	return out
}

func (c *HTTP) logger() *zap.Logger { return logging.OrNop(c.Logger) }

func (c *HTTP) client() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func rejected[T any](f *validate.Failure) domaintypes.Result[T] {
	return domaintypes.Failed[T](f.Code, f.Message)
}

func malformed[T any](status int, msg string) domaintypes.Result[T] {
	return withStatus(domaintypes.Failed[T](domain.CodeUnknownError, msg), status)
}

func withStatus[T any](r domaintypes.Result[T], status int) domaintypes.Result[T] {
	r.Status = status
	return r
}

var _ domain.WalletClient = (*HTTP)(nil)
