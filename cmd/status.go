package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	sessioncard "github.com/halvora/aa-wallet-cli/internal/adapters/render/session"
	"github.com/halvora/aa-wallet-cli/internal/domain"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Connect and show the smart-account session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := app.connectConfig(ctx)
			if err != nil {
				return err
			}

			session, err := app.sessions.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = app.sessions.Disconnect(ctx) }()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(statusPayload(app, session))
			}

			rendered, err := app.renderCard(sessioncard.Card{
				Session: session,
				Chain:   cfg.Chain,
			})
			if err != nil {
				return fmt.Errorf("render session: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the session as JSON")

	return cmd
}

type sessionJSON struct {
	Status      string `json:"status"`
	Account     string `json:"account,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Balance     string `json:"balance,omitempty"`
	ChainID     uint64 `json:"chainId,omitempty"`
}

func statusPayload(app *app, session domain.Session) sessionJSON {
	payload := sessionJSON{
		Status:  string(session.Status),
		ChainID: session.ChainID,
	}
	if session.Status == domain.SessionActive {
		payload.Account = session.AccountAddress.Hex()
		payload.DisplayName = session.DisplayName
		if session.Balance != nil {
			payload.Balance = session.Balance.String()
		}
	}
	return payload
}
