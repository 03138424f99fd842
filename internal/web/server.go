package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"billetera/internal/app"
	"billetera/internal/crypto"
	"billetera/internal/logging"
	"billetera/internal/services/payment"
)

//go:embed templates/*.html
var templateFS embed.FS

// Registry hands out the view set of a browser session.
type Registry interface {
	GetOrCreate(id string) (*app.Views, bool)
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.log = logging.OrNop(l) }
}

// WithResetDelay tells pages how long a confirmed payment stays visible, so
// the browser can refresh once the view has reset.
func WithResetDelay(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.resetDelay = d
		}
	}
}

// Server renders the four views.
type Server struct {
	views      Registry
	sealer     *crypto.Sealer
	log        *zap.Logger
	resetDelay time.Duration
	pages      map[string]*template.Template
}

// New returns a Server over views, sealing cookies with sealer.
func New(views Registry, sealer *crypto.Sealer, opts ...Option) (*Server, error) {
	s := &Server{
		views:      views,
		sealer:     sealer,
		log:        zap.NewNop(),
		resetDelay: payment.DefaultResetDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	s.pages = pages
	return s, nil
}

// Handler returns the router wrapped in recovery and access logging.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(AccessLog(s.log), RecoverPanics(s.log))

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/", http.RedirectHandler(pathRegister, http.StatusSeeOther)).Methods(http.MethodGet)

	r.HandleFunc(pathRegister, s.showRegister).Methods(http.MethodGet)
	r.HandleFunc(pathRegister, s.submitRegister).Methods(http.MethodPost)
	r.HandleFunc(pathRecharge, s.showRecharge).Methods(http.MethodGet)
	r.HandleFunc(pathRecharge, s.submitRecharge).Methods(http.MethodPost)
	r.HandleFunc(pathPayment, s.showPayment).Methods(http.MethodGet)
	r.HandleFunc(pathPayment+"/solicitar", s.submitPaymentRequest).Methods(http.MethodPost)
	r.HandleFunc(pathPayment+"/confirmar", s.submitPaymentConfirm).Methods(http.MethodPost)
	r.HandleFunc(pathPayment+"/atras", s.paymentBack).Methods(http.MethodPost)
	r.HandleFunc(pathBalance, s.showBalance).Methods(http.MethodGet)
	r.HandleFunc(pathBalance, s.submitBalance).Methods(http.MethodPost)
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully, waiting up to grace for requests in flight.
func (s *Server) ListenAndServe(ctx context.Context, addr string, grace time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, grace)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, grace time.Duration) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.log.Info("browser front end listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
