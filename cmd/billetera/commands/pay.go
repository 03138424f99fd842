package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"billetera/internal/services/payment"
)

func payCmd() *cobra.Command {
	var form payment.Form
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Request a payment and confirm it with the emailed token",
		Long: `Request a payment, then type the 6-digit token the wallet service sent
by email. A rejected token can be retried against the same session; an empty
line abandons the payment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views := wire.NewViews()
			defer views.Close()
			out := cmd.OutOrStdout()

			st, err := views.Payment.SubmitRequest(cmd.Context(), form)
			if err != nil {
				return err
			}
			if st.Step != payment.StepConfirm {
				return report(cmd, st.Message)
			}
			_ = report(cmd, st.Message)
			fmt.Fprintln(out, "Session ID:", st.SessionID())

			in := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "Token de 6 dígitos (vacío para volver): ")
				if !in.Scan() {
					fmt.Fprintln(out)
					views.Payment.Back()
					return errOutcome
				}
				token := strings.TrimSpace(in.Text())
				if token == "" {
					views.Payment.Back()
					fmt.Fprintln(out, "Pago no confirmado.")
					return errOutcome
				}

				st, err = views.Payment.SubmitConfirm(cmd.Context(), token)
				if err != nil {
					return err
				}
				if st.ResetPending {
					return report(cmd, st.Message)
				}
				_ = report(cmd, st.Message)
			}
		},
	}
	cmd.Flags().StringVar(&form.Documento, "documento", "", "identity document number")
	cmd.Flags().StringVar(&form.Celular, "celular", "", "mobile number")
	cmd.Flags().StringVar(&form.Valor, "valor", "", "amount to pay")
	return cmd
}
