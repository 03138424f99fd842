package web

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"billetera/internal/app"
	"billetera/internal/logging"
	"billetera/internal/services/balance"
	"billetera/internal/services/payment"
	"billetera/internal/services/recharge"
	"billetera/internal/services/registration"
	"billetera/internal/services/view"
)

// viewsFor returns the view set of the requesting browser.
func (s *Server) viewsFor(w http.ResponseWriter, r *http.Request) *app.Views {
	id := s.browserID(w, r)
	v, created := s.views.GetOrCreate(id)
	if created {
		s.log.Debug("new browser session", logging.Redacted("browser", id))
	}
	return v
}

// callContext detaches a controller call from the browser connection so a
// reload mid-call does not surface as a network error. The wallet client's
// own timeout still bounds the call.
func callContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// done finishes a POST by redirecting back to the page. A refusal (busy,
// closed, wrong step) is logged and otherwise ignored: the page shows the
// current state anyway.
func (s *Server) done(w http.ResponseWriter, r *http.Request, path string, err error) {
	if err != nil {
		lvl := zap.DebugLevel
		if !errors.Is(err, view.ErrBusy) && !errors.Is(err, view.ErrWrongStep) {
			lvl = zap.WarnLevel
		}
		s.log.Log(lvl, "submission refused", zap.String("path", r.URL.Path), zap.Error(err))
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulario inválido", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) showRegister(w http.ResponseWriter, r *http.Request) {
	v := s.viewsFor(w, r)
	s.render(w, pageData{Title: "Registro de Cliente", Path: pathRegister, Register: v.Register.State()})
}

func (s *Server) submitRegister(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	v := s.viewsFor(w, r)
	_, err := v.Register.Submit(callContext(r), registration.Form{
		Documento: r.PostFormValue("documento"),
		Nombres:   r.PostFormValue("nombres"),
		Email:     r.PostFormValue("email"),
		Celular:   r.PostFormValue("celular"),
	})
	s.done(w, r, pathRegister, err)
}

func (s *Server) showRecharge(w http.ResponseWriter, r *http.Request) {
	v := s.viewsFor(w, r)
	s.render(w, pageData{Title: "Recargar Billetera", Path: pathRecharge, Recharge: v.Recharge.State()})
}

func (s *Server) submitRecharge(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	v := s.viewsFor(w, r)
	_, err := v.Recharge.Submit(callContext(r), recharge.Form{
		Documento: r.PostFormValue("documento"),
		Celular:   r.PostFormValue("celular"),
		Valor:     r.PostFormValue("valor"),
	})
	s.done(w, r, pathRecharge, err)
}

func (s *Server) showPayment(w http.ResponseWriter, r *http.Request) {
	v := s.viewsFor(w, r)
	st := v.Payment.State()
	s.render(w, pageData{
		Title:   "Realizar Pago",
		Path:    pathPayment,
		Refresh: s.paymentRefresh(st),
		Payment: st,
	})
}

func (s *Server) submitPaymentRequest(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	v := s.viewsFor(w, r)
	_, err := v.Payment.SubmitRequest(callContext(r), payment.Form{
		Documento: r.PostFormValue("documento"),
		Celular:   r.PostFormValue("celular"),
		Valor:     r.PostFormValue("valor"),
	})
	s.done(w, r, pathPayment, err)
}

func (s *Server) submitPaymentConfirm(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	v := s.viewsFor(w, r)
	_, err := v.Payment.SubmitConfirm(callContext(r), r.PostFormValue("token"))
	s.done(w, r, pathPayment, err)
}

func (s *Server) paymentBack(w http.ResponseWriter, r *http.Request) {
	v := s.viewsFor(w, r)
	v.Payment.Back()
	s.done(w, r, pathPayment, nil)
}

func (s *Server) showBalance(w http.ResponseWriter, r *http.Request) {
	v := s.viewsFor(w, r)
	s.render(w, pageData{Title: "Consultar Saldo", Path: pathBalance, Balance: v.Balance.State()})
}

func (s *Server) submitBalance(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	v := s.viewsFor(w, r)
	_, err := v.Balance.Submit(callContext(r), balance.Form{
		Documento: r.PostFormValue("documento"),
		Celular:   r.PostFormValue("celular"),
	})
	s.done(w, r, pathBalance, err)
}
