package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lg",
		Short:         "Lensgraph CLI (lg): wallet login and on-chain posting for a social graph",
		Long:          "lg manages a wallet-authenticated session against a Lens-style social-graph API and drives the full posting pipeline: typed-data signing, on-chain broadcast and indexing confirmation.",
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
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newPostCmd(app),
		newProfileCmd(app),
		newFeedCmd(app),
	)

	return rootCmd
}
