package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"billetera/internal/app"
	"billetera/internal/logging"
	"billetera/internal/services/view"
)

var (
	envFile string
	wire    *app.Wire
)

// errOutcome marks a failure whose message was already printed.
var errOutcome = errors.New("operation failed")

// Execute runs the CLI until it finishes or receives SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errOutcome) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "billetera",
		Short:         "Wallet front end: register, recharge, pay and check balances",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(envFile, cmd.Flags())
			if err != nil {
				return err
			}
			// The browser front end logs JSON unless told otherwise.
			if cmd.Name() == "serve" && !cmd.Flags().Changed("log-format") && os.Getenv("BILLETERA_LOG_FORMAT") == "" {
				cfg.LogFormat = logging.FormatJSON
			}
			wire, err = app.NewWire(cfg)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if wire != nil {
				wire.Close()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.String("api-url", "", "wallet service base URL (env BILLETERA_API_URL or WALLET_API_URL)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", logging.FormatConsole, "log format: console or json")
	pf.Duration("timeout", 0, "per-request timeout for the wallet service (default 10s)")
	pf.StringVar(&envFile, "env-file", "", "load environment from this file (default .env when present)")

	root.AddCommand(registerCmd(), rechargeCmd(), payCmd(), balanceCmd(), serveCmd())
	return root
}

// report prints a view message and turns an error message into errOutcome.
func report(cmd *cobra.Command, m view.Message) error {
	if m.IsError() {
		fmt.Fprintln(cmd.ErrOrStderr(), "✗", m.Text)
		return errOutcome
	}
	if m.Text != "" {
		fmt.Fprintln(cmd.OutOrStdout(), "✓", m.Text)
	}
	return nil
}
