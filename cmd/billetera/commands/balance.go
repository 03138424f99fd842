package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"billetera/internal/services/balance"
)

func balanceCmd() *cobra.Command {
	var form balance.Form
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show a wallet balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views := wire.NewViews()
			defer views.Close()

			st, err := views.Balance.Submit(cmd.Context(), form)
			if err != nil {
				return err
			}
			if !st.HasBalance() {
				return report(cmd, st.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saldo disponible:", st.Formatted)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Documento, "documento", "", "identity document number")
	cmd.Flags().StringVar(&form.Celular, "celular", "", "mobile number (optional)")
	return cmd
}
