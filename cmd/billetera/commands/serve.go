package commands

import (
	"time"

	"github.com/spf13/cobra"

	"billetera/internal/web"
)

const shutdownGrace = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the browser front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sealer, err := wire.Sealer()
			if err != nil {
				return err
			}
			views := wire.Registry()
			go views.Run(ctx, time.Minute)

			srv, err := web.New(views, sealer,
				web.WithLogger(wire.Logger.Named("web")),
				web.WithResetDelay(wire.Config.ResetDelay),
			)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx, wire.Config.Listen, shutdownGrace)
		},
	}
	cmd.Flags().String("listen", ":3000", "address for the browser front end")
	cmd.Flags().Duration("session-idle", 0, "drop a browser's views after this much inactivity (default 30m)")
	cmd.Flags().Duration("reset-delay", 0, "how long a confirmed payment stays on screen (default 3s)")
	cmd.Flags().String("cookie-secret", "", "secret sealing the session cookie (random when empty)")
	return cmd
}
