package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	feedrender "github.com/bnema/lensgraph-cli/internal/adapters/render/feed"
)

func newProfileCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "profile <handle>",
		Short: "Fetch a profile by handle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := app.lookup.Resolve(cmd.Context(), args[0])
			if err != nil {
				return describeFailure(err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(profile)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), feedrender.RenderProfile(profile))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
