package app

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"billetera/internal/crypto"
	"billetera/internal/domain"
	"billetera/internal/logging"
	"billetera/internal/services/payment"
	"billetera/internal/store"
	"billetera/internal/wallet"
)

// Wire bundles the logger, clients and factories built from a Config.
type Wire struct {
	Config Config
	Logger *zap.Logger
	HTTP   *http.Client
	Wallet domain.WalletClient
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	// Ensure an HTTP client with the configured timeout is available.
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	wc := wallet.NewHTTP(cfg.APIURL, httpClient, logger.Named("wallet"))

	logger.Debug("wired",
		zap.String("api_url", cfg.APIURL),
		zap.Duration("timeout", cfg.Timeout),
		zap.Duration("reset_delay", cfg.ResetDelay),
	)
	return &Wire{
		Config: cfg,
		Logger: logger,
		HTTP:   httpClient,
		Wallet: wc,
	}, nil
}

// NewViews returns a fresh set of view controllers.
func (w *Wire) NewViews(opts ...payment.Option) *Views {
	return NewViews(w.Wallet, w.Logger, w.Config.ResetDelay, opts...)
}

// Registry returns an empty per-browser view registry.
func (w *Wire) Registry() *store.Registry[*Views] {
	return store.NewRegistry(func() *Views { return w.NewViews() }, w.Config.SessionIdle,
		store.WithLogger(w.Logger.Named("store")))
}

// Sealer returns the cookie sealer. Without a configured secret a random one
// is generated, so cookies do not survive a restart.
func (w *Wire) Sealer() (*crypto.Sealer, error) {
	secret := []byte(w.Config.CookieSecret)
	if len(secret) == 0 {
		var err error
		if secret, err = crypto.RandomSecret(); err != nil {
			return nil, fmt.Errorf("cookie secret: %w", err)
		}
		defer crypto.Wipe(secret)
		w.Logger.Info("no cookie secret configured; browser sessions end on restart")
	}
	s, err := crypto.NewSealer(secret)
	if err != nil {
		return nil, fmt.Errorf("cookie secret: %w", err)
	}
	return s, nil
}

// Close flushes the logger.
func (w *Wire) Close() {
	_ = w.Logger.Sync()
}
