package commands

import (
	"github.com/spf13/cobra"

	"billetera/internal/services/registration"
)

func registerCmd() *cobra.Command {
	var form registration.Form
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a wallet client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views := wire.NewViews()
			defer views.Close()

			st, err := views.Register.Submit(cmd.Context(), form)
			if err != nil {
				return err
			}
			return report(cmd, st.Message)
		},
	}
	cmd.Flags().StringVar(&form.Documento, "documento", "", "identity document number")
	cmd.Flags().StringVar(&form.Nombres, "nombres", "", "full name")
	cmd.Flags().StringVar(&form.Email, "email", "", "email address (receives payment tokens)")
	cmd.Flags().StringVar(&form.Celular, "celular", "", "mobile number")
	return cmd
}
