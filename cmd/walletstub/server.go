package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"billetera/internal/domain"
	"billetera/internal/logging"
	"billetera/internal/money"
	"billetera/internal/validate"
	"billetera/internal/wallet"
	"billetera/internal/web"
)

// envelope is the wire shape of every response.
type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    any              `json:"data,omitempty"`
	Error   domain.ErrorCode `json:"error,omitempty"`
}

// amountData carries a decimal as a JSON number.
type amountData struct {
	Saldo json.Number `json:"saldo"`
}

func saldoData(d decimal.Decimal) amountData { return amountData{Saldo: json.Number(d.String())} }

// server answers the wallet endpoints from a memoryStore.
type server struct {
	store *memoryStore
	log   *zap.Logger
	// deliver stands in for emailing the token to the client.
	deliver func(s domain.PaymentSession)
}

func newServer(store *memoryStore, log *zap.Logger) *server {
	log = logging.OrNop(log)
	s := &server{store: store, log: log}
	s.deliver = func(p domain.PaymentSession) {
		log.Info("payment token issued",
			zap.String("session", p.SessionID.String()),
			zap.String("documento", p.Documento),
			zap.String("token", p.Token),
		)
	}
	return s
}

func (s *server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(web.AccessLog(s.log), web.RecoverPanics(s.log))
	r.HandleFunc(wallet.PathRegister, s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc(wallet.PathRecharge, s.handleRecharge).Methods(http.MethodPost)
	r.HandleFunc(wallet.PathRequestPayment, s.handleRequestPayment).Methods(http.MethodPost)
	r.HandleFunc(wallet.PathConfirmPayment, s.handleConfirmPayment).Methods(http.MethodPost)
	r.HandleFunc(wallet.PathBalance, s.handleBalance).Methods(http.MethodGet)
	return r
}

func (s *server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var p domain.ClientProfile
	if !decode(w, r, &p) {
		return
	}
	if f := validate.ClientProfile(p); f != nil {
		writeFailure(w, http.StatusBadRequest, f.Code, f.Message)
		return
	}
	if err := s.store.register(p); err != nil {
		s.refuse(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{Success: true, Message: "Cliente registrado exitosamente."})
}

func (s *server) handleRecharge(w http.ResponseWriter, r *http.Request) {
	var req domain.RechargeRequest
	if !decode(w, r, &req) {
		return
	}
	if f := validate.RechargeRequest(req); f != nil {
		writeFailure(w, http.StatusBadRequest, f.Code, f.Message)
		return
	}
	saldo, err := s.store.recharge(req)
	if err != nil {
		s.refuse(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Recarga exitosa. Nuevo saldo: " + money.Format(saldo),
		Data:    saldoData(saldo),
	})
}

func (s *server) handleRequestPayment(w http.ResponseWriter, r *http.Request) {
	var req domain.PaymentRequest
	if !decode(w, r, &req) {
		return
	}
	if f := validate.PaymentRequest(req); f != nil {
		writeFailure(w, http.StatusBadRequest, f.Code, f.Message)
		return
	}
	sess, err := s.store.open(req)
	if err != nil {
		s.refuse(w, http.StatusBadRequest, err)
		return
	}
	s.deliver(sess)
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Se ha enviado un token de confirmación a su correo.",
		Data:    domain.PaymentTicket{SessionID: sess.SessionID},
	})
}

func (s *server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req domain.ConfirmRequest
	if !decode(w, r, &req) {
		return
	}
	if f := validate.ConfirmRequest(req); f != nil {
		writeFailure(w, http.StatusBadRequest, f.Code, f.Message)
		return
	}
	sess, saldo, err := s.store.confirm(req)
	if err != nil {
		s.refuse(w, http.StatusBadRequest, err)
		return
	}
	s.log.Info("payment confirmed", zap.String("session", sess.SessionID.String()), zap.String("valor", sess.Valor.String()))
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Pago confirmado exitosamente.",
		Data:    saldoData(saldo),
	})
}

func (s *server) handleBalance(w http.ResponseWriter, r *http.Request) {
	q := domain.BalanceQuery{
		Documento: r.URL.Query().Get("documento"),
		Celular:   r.URL.Query().Get("celular"),
	}
	if f := validate.BalanceQuery(q); f != nil {
		writeFailure(w, http.StatusBadRequest, f.Code, f.Message)
		return
	}
	saldo, err := s.store.balance(q)
	if err != nil {
		s.refuse(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Consulta exitosa.", Data: saldoData(saldo)})
}

// refuse writes a stubError with status, or a 500 for anything else.
func (s *server) refuse(w http.ResponseWriter, status int, err error) {
	var se *stubError
	if errors.As(err, &se) {
		if se.code == codeClientNotFound {
			status = http.StatusNotFound
		}
		writeFailure(w, status, se.code, se.msg)
		return
	}
	s.log.Error("request failed", zap.Error(err))
	writeFailure(w, http.StatusInternalServerError, domain.CodeUnknownError, "Error interno.")
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	if err := dec.Decode(v); err != nil {
		writeFailure(w, http.StatusBadRequest, domain.CodeMissingPayload, validate.MsgMissingPayload)
		return false
	}
	return true
}

func writeFailure(w http.ResponseWriter, status int, code domain.ErrorCode, msg string) {
	writeJSON(w, status, envelope{Success: false, Message: msg, Error: code})
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
