package commands

import (
	"github.com/spf13/cobra"

	"billetera/internal/services/recharge"
)

func rechargeCmd() *cobra.Command {
	var form recharge.Form
	cmd := &cobra.Command{
		Use:   "recharge",
		Short: "Credit a wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views := wire.NewViews()
			defer views.Close()

			st, err := views.Recharge.Submit(cmd.Context(), form)
			if err != nil {
				return err
			}
			return report(cmd, st.Message)
		},
	}
	cmd.Flags().StringVar(&form.Documento, "documento", "", "identity document number")
	cmd.Flags().StringVar(&form.Celular, "celular", "", "mobile number")
	cmd.Flags().StringVar(&form.Valor, "valor", "", "amount to credit")
	return cmd
}
