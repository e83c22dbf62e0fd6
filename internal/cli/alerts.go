package cli

import (
	"time"

	"github.com/spf13/cobra"

	"ridersync/internal/dto"
)

const defaultAlertsLimit = 20

func newAlertsCommand(opts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Show notifications shown by the daemon, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := opts.dependencies(cmd.Context())
			if err != nil {
				return err
			}

			list, err := deps.Alerts.History(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if opts.Format == FormatJSON {
				views := make([]dto.AlertView, 0, len(list))
				for _, a := range list {
					views = append(views, dto.AlertFromEntity(a))
				}
				return printJSON(cmd, views)
			}

			now := time.Now()
			tw := newTable(cmd.OutOrStdout(), "SHOWN", "ORDER", "TITLE", "STATE")
			for _, a := range list {
				state := "expired"
				switch {
				case a.DismissedAt != nil:
					state = "dismissed"
				case now.Before(a.ExpiresAt):
					state = "active"
				}
				row(tw, a.CreatedAt.Format(dateLayout), "#"+a.ShortID, a.Title, state)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultAlertsLimit, "how many alerts to show")
	return cmd
}
