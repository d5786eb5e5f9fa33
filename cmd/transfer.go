package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halvora/aa-wallet-cli/internal/domain"
)

func newTransferCmd(app *app) *cobra.Command {
	var (
		to           string
		amount       string
		awaitReceipt bool
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Send native value from the smart account",
		Long:  "transfer builds a user operation moving native value to the recipient, submits it through the bundler, and waits for the mined transaction.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := app.connectConfig(ctx)
			if err != nil {
				return err
			}

			if _, err := app.sessions.Connect(ctx, cfg); err != nil {
				return err
			}
			defer func() { _ = app.sessions.Disconnect(ctx) }()

			record, err := app.dispatch.SubmitTransfer(ctx, to, amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "submitted: %s\n", record.OperationHash)

			if !awaitReceipt {
				return nil
			}

			confirmed := record
			waitErr := runConfirmSpinner(ctx, cmd.ErrOrStderr(), "waiting for confirmation...", func(ctx context.Context) error {
				var awaitErr error
				confirmed, awaitErr = app.dispatch.AwaitConfirmation(ctx, record)
				return awaitErr
			})
			if waitErr != nil {
				if errors.Is(waitErr, domain.ErrConfirmationTimeout) {
					fmt.Fprintf(cmd.OutOrStdout(), "still pending: %s\nre-run `aw status` later, or inspect the operation hash on a block explorer\n", record.OperationHash)
					return nil
				}
				return waitErr
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "confirmed: %s\n", confirmed.TransactionHash)
			return err
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Recipient address (0x-prefixed)")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount in the chain's smallest unit, e.g. wei")
	cmd.Flags().BoolVar(&awaitReceipt, "await", true, "Wait for the operation to be mined")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
