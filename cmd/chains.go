package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/halvora/aa-wallet-cli/internal/domain"
)

func newChainsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chains",
		Short: "Manage the chain registry",
	}

	cmd.AddCommand(newChainsListCmd(app), newChainsAddCmd(app))

	return cmd
}

func newChainsListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered chains",
		RunE: func(cmd *cobra.Command, _ []string) error {
			chains, err := app.registry.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tID\tSYMBOL\tENTRYPOINT")
			for _, chain := range chains {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", chain.Name, chain.ID, chain.NativeSymbol, chain.EntryPoint.Hex())
			}
			return w.Flush()
		},
	}
}

func newChainsAddCmd(app *app) *cobra.Command {
	var (
		id         uint64
		name       string
		rpcURL     string
		entryPoint string
		factory    string
		symbol     string
		decimals   int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register or override a chain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !common.IsHexAddress(entryPoint) {
				return fmt.Errorf("invalid entrypoint address %q", entryPoint)
			}
			if !common.IsHexAddress(factory) {
				return fmt.Errorf("invalid account factory address %q", factory)
			}

			chain := domain.Chain{
				ID:             id,
				Name:           name,
				RPCURL:         rpcURL,
				EntryPoint:     common.HexToAddress(entryPoint),
				AccountFactory: common.HexToAddress(factory),
				NativeSymbol:   symbol,
				NativeDecimals: decimals,
			}
			if err := app.registry.Save(cmd.Context(), chain); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "chain %s (%d) saved\n", name, id)
			return err
		},
	}

	cmd.Flags().Uint64Var(&id, "id", 0, "Chain id")
	cmd.Flags().StringVar(&name, "name", "", "Chain name used with AW_CHAIN")
	cmd.Flags().StringVar(&rpcURL, "rpc-url", "", "Bundler RPC base URL")
	cmd.Flags().StringVar(&entryPoint, "entry-point", "", "Entrypoint contract address")
	cmd.Flags().StringVar(&factory, "account-factory", "", "Account factory contract address")
	cmd.Flags().StringVar(&symbol, "symbol", "ETH", "Native currency symbol")
	cmd.Flags().IntVar(&decimals, "decimals", 18, "Native currency decimals")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("rpc-url")
	_ = cmd.MarkFlagRequired("entry-point")
	_ = cmd.MarkFlagRequired("account-factory")

	return cmd
}
