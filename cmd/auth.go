package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	signeradapter "github.com/halvora/aa-wallet-cli/internal/adapters/signer"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage wallet credentials",
	}

	cmd.AddCommand(newAuthSetAPIKeyCmd(app), newAuthImportKeyCmd(app), newAuthShowCmd(app), newAuthForgetCmd(app))

	return cmd
}

func newAuthSetAPIKeyCmd(app *app) *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "set-api-key",
		Short: "Store the bundler API key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.secretStore.Put(cmd.Context(), APIKeyRef, value); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "api key stored")
			return err
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Bundler API key")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newAuthImportKeyCmd(app *app) *cobra.Command {
	var privateKey string

	cmd := &cobra.Command{
		Use:   "import-key",
		Short: "Import a hex private key for the local signer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, err := signeradapter.ImportKey(cmd.Context(), app.secretStore, privateKey)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "signing key imported for %s\n", addr.Hex())
			return err
		},
	}

	cmd.Flags().StringVar(&privateKey, "private-key", "", "Hex-encoded secp256k1 private key")
	_ = cmd.MarkFlagRequired("private-key")

	return cmd
}

func newAuthShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the configured signer identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			signer, err := buildSigner(app.cfg, app.secretStore)
			if err != nil {
				return err
			}
			if err := signer.Authenticate(ctx); err != nil {
				return err
			}
			defer func() { _ = signer.Logout(ctx) }()

			address, err := signer.SignerAddress(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signer: %s\n", address.Hex())

			identity, err := signer.IdentityInfo(ctx)
			if err == nil && identity.DisplayName != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "name: %s\n", identity.DisplayName)
			}
			return nil
		},
	}
}

func newAuthForgetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forget",
		Short: "Delete stored wallet credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, ref := range []string{APIKeyRef, signeradapter.SigningKeyRef, signeradapter.DeviceSecretRef} {
				if err := app.secretStore.Delete(cmd.Context(), ref); err != nil {
					return fmt.Errorf("delete %s: %w", ref, err)
				}
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "credentials removed")
			return err
		},
	}
}
