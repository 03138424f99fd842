package app

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"billetera/internal/logging"
	"billetera/internal/services/payment"
	"billetera/internal/store"
)

// Configuration keys. Each is read from BILLETERA_<KEY> and from the flag
// with the same name spelled with dashes; api_url is also read from
// WALLET_API_URL.
const (
	KeyAPIURL       = "api_url"
	KeyListen       = "listen"
	KeyLogLevel     = "log_level"
	KeyLogFormat    = "log_format"
	KeyTimeout      = "timeout"
	KeyResetDelay   = "reset_delay"
	KeySessionIdle  = "session_idle"
	KeyCookieSecret = "cookie_secret"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "BILLETERA"

// DefaultEnvFile is loaded when present and no other file is named.
const DefaultEnvFile = ".env"

// ErrMissingAPIURL is returned when no wallet service URL is configured.
var ErrMissingAPIURL = errors.New("wallet service URL is not set (use --api-url, BILLETERA_API_URL or WALLET_API_URL)")

// Config holds runtime wiring options for building the app.
type Config struct {
	APIURL       string        // wallet service base URL, e.g. http://127.0.0.1:8080
	Listen       string        // browser front end listen address
	LogLevel     string        // debug, info, warn, error
	LogFormat    string        // console or json
	Timeout      time.Duration // per-call timeout for the wallet service
	ResetDelay   time.Duration // how long a confirmed payment stays on screen
	SessionIdle  time.Duration // idle expiry of a browser session's views
	CookieSecret string        // seals the browser session cookie; random when empty

	HTTP *http.Client // optional; built from Timeout when nil
}

// LoadConfig reads configuration.
//
// Steps:
//  1. Load envFile (or DefaultEnvFile when empty and present) into the
//     process environment without overriding variables already set.
//  2. Apply defaults, then environment variables, then any flags in flags
//     that the user actually set.
func LoadConfig(envFile string, flags *pflag.FlagSet) (Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyListen, ":3000")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, logging.FormatConsole)
	v.SetDefault(KeyTimeout, 10*time.Second)
	v.SetDefault(KeyResetDelay, payment.DefaultResetDelay)
	v.SetDefault(KeySessionIdle, store.DefaultIdle)

	if err := v.BindEnv(KeyAPIURL, EnvPrefix+"_API_URL", "WALLET_API_URL"); err != nil {
		return Config{}, fmt.Errorf("bind %s: %w", KeyAPIURL, err)
	}

	if flags != nil {
		for _, key := range []string{
			KeyAPIURL, KeyListen, KeyLogLevel, KeyLogFormat,
			KeyTimeout, KeyResetDelay, KeySessionIdle, KeyCookieSecret,
		} {
			f := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", f.Name, err)
			}
		}
	}

	return Config{
		APIURL:       strings.TrimSpace(v.GetString(KeyAPIURL)),
		Listen:       v.GetString(KeyListen),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
		Timeout:      v.GetDuration(KeyTimeout),
		ResetDelay:   v.GetDuration(KeyResetDelay),
		SessionIdle:  v.GetDuration(KeySessionIdle),
		CookieSecret: v.GetString(KeyCookieSecret),
	}, nil
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}
	err := godotenv.Load(path)
	if err == nil || (!explicit && errors.Is(err, fs.ErrNotExist)) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

// Validate reports the first configuration problem.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return ErrMissingAPIURL
	}
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("wallet service URL %q: %w", c.APIURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("wallet service URL %q: want http(s)://host", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.ResetDelay <= 0 {
		return fmt.Errorf("reset delay must be positive, got %s", c.ResetDelay)
	}
	if c.SessionIdle <= 0 {
		return fmt.Errorf("session idle must be positive, got %s", c.SessionIdle)
	}
	return nil
}
