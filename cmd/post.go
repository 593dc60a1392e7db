package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/lensgraph-cli/internal/domain"
)

func newPostCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "post <content>",
		Short: "Publish a text post on-chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, ok := app.auth.Restore(cmd.Context())
			if !ok {
				return describeFailure(domain.NewError(domain.KindNotAuthenticated, "not logged in; run `lg login` first"))
			}

			draft := domain.PublicationDraft{Content: args[0]}

			var outcome domain.BroadcastOutcome
			err := runIndexingSpinner(cmd.Context(), cmd.ErrOrStderr(), "Broadcasting and waiting for indexing...", func(ctx context.Context) error {
				var submitErr error
				outcome, submitErr = app.publish.Submit(ctx, draft, session)
				return submitErr
			})
			if err != nil {
				switch domain.KindOf(err) {
				case domain.KindBroadcastRejected, domain.KindIndexingTimeout:
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Your draft was kept; retry with the same content.")
				}
				return describeFailure(err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Post created and indexed. TxHash: %s\n", outcome.TxHash)
			return nil
		},
	}
}
