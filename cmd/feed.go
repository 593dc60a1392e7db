package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	feedrender "github.com/bnema/lensgraph-cli/internal/adapters/render/feed"
)

func newFeedCmd(app *app) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "feed <handle>",
		Short: "Fetch a profile's recent posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := app.lookup.Recent(cmd.Context(), args[0], limit)
			if err != nil {
				return describeFailure(err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(page)
			}

			rendered := feedrender.RenderFeed(args[0], page, feedrender.RenderOptions{Now: app.now()})
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of posts to fetch")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
