package web

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"net/http"

	"go.uber.org/zap"

	"billetera/internal/services/balance"
	"billetera/internal/services/payment"
	"billetera/internal/services/recharge"
	"billetera/internal/services/registration"
	"billetera/internal/services/view"
)

const (
	pathRegister = "/registro"
	pathRecharge = "/recarga"
	pathPayment  = "/pago"
	pathBalance  = "/saldo"
)

// page file and nav entry of each view.
var pageFiles = map[string]string{
	pathRegister: "registro.html",
	pathRecharge: "recarga.html",
	pathPayment:  "pago.html",
	pathBalance:  "saldo.html",
}

type navItem struct {
	Path  string
	Label string
}

var nav = []navItem{
	{pathRegister, "Registro"},
	{pathRecharge, "Recarga"},
	{pathPayment, "Pago"},
	{pathBalance, "Saldo"},
}

// pageData is the template input. Only the field of the page being rendered
// is set.
type pageData struct {
	Title   string
	Path    string
	Nav     []navItem
	Refresh int

	Register registration.State
	Recharge recharge.State
	Payment  payment.State
	Balance  balance.State
}

var funcs = template.FuncMap{
	"isError": func(m view.Message) bool { return m.IsError() },
	"confirm": func(s payment.State) bool { return s.Step == payment.StepConfirm },
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageFiles))
	for path, file := range pageFiles {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[path] = t
	}
	return pages, nil
}

// render executes the page for data.Path into a buffer first so a template
// failure becomes a clean 500.
func (s *Server) render(w http.ResponseWriter, data pageData) {
	t, ok := s.pages[data.Path]
	if !ok {
		s.log.Error("no template for page", zap.String("path", data.Path))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	data.Nav = nav

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		s.log.Error("render page", zap.String("path", data.Path), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// paymentRefresh is how many seconds the payment page waits before reloading
// itself: the remaining reset delay while a reset is pending, one second
// while a call is in flight, otherwise never.
func (s *Server) paymentRefresh(st payment.State) int {
	switch {
	case st.ResetPending:
		return int(math.Ceil(s.resetDelay.Seconds()))
	case st.Busy:
		return 1
	}
	return 0
}
