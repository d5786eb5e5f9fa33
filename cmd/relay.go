package cmd

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/halvora/aa-wallet-cli/internal/adapters/relayws"
	"github.com/halvora/aa-wallet-cli/internal/application"
)

func newRelayCmd(app *app) *cobra.Command {
	var (
		listen string
		origin string
	)

	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Relay transaction intents from an embedded application",
		Long:  "relay opens a local websocket endpoint and forwards transaction intents from the trusted origin to the bundler, replying with confirmations or rejections correlated by intent id.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if origin == "" {
				return fmt.Errorf("no trusted origin: pass --origin or set AW_RELAY_ORIGIN")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := app.connectConfig(ctx)
			if err != nil {
				return err
			}

			if _, err := app.sessions.Connect(ctx, cfg); err != nil {
				return err
			}
			defer func() { _ = app.sessions.Disconnect(ctx) }()

			transport, err := relayws.Listen(listen)
			if err != nil {
				return err
			}
			defer func() { _ = transport.Close() }()

			fmt.Fprintf(cmd.OutOrStdout(), "relaying intents from %s on %s\n", origin, transport.URL())

			relay := application.NewRelayService(transport, app.dispatch, app.sessions, nil, application.RelayConfig{
				TrustedOrigin: origin,
			})

			err = relay.Run(ctx)
			if errors.Is(err, relayws.ErrClosed) || ctx.Err() != nil {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&listen, "listen", app.cfg.relayListen, "Address for the relay websocket endpoint")
	cmd.Flags().StringVar(&origin, "origin", app.cfg.relayOrigin, "Origin allowed to submit intents, e.g. https://app.example.org")

	return cmd
}
