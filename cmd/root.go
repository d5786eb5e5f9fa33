package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "aw",
		Short:         "Smart-account wallet (aw): gasless transfers through an ERC-4337 bundler",
		Long:          "aw manages a smart-account session from the terminal: sign in, provision the account through a bundler, send sponsored user operations, and relay transaction intents from embedded applications.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAuthCmd(app),
		newStatusCmd(app),
		newTransferCmd(app),
		newRelayCmd(app),
		newChainsCmd(app),
	)

	return rootCmd
}
