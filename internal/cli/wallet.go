package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type withdrawalView struct {
	ID     string `json:"id"`
	Amount string `json:"amount"`
	Status string `json:"status"`
	Date   string `json:"date"`
}

const dateLayout = "2006-01-02 15:04"

func newWithdrawCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <amount>",
		Short: "Request a payout from the available balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("amount %q is not a number", args[0])
			}

			deps, err := opts.dependencies(cmd.Context())
			if err != nil {
				return err
			}

			w, err := deps.Wallet.Withdraw(cmd.Context(), amount)
			if err != nil {
				return err
			}

			if opts.Format == FormatJSON {
				return printJSON(cmd, withdrawalView{
					ID:     w.ID,
					Amount: w.Amount.StringFixed(2),
					Status: w.StatusLabel(),
					Date:   w.Date.Format(dateLayout),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "withdrawal %s requested: %s (%s)\n", w.ID, w.Amount.StringFixed(2), w.StatusLabel())
			return nil
		},
	}
}

func newWithdrawalsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "withdrawals",
		Short: "List your payout requests, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := opts.dependencies(cmd.Context())
			if err != nil {
				return err
			}

			list, err := deps.Wallet.History(cmd.Context())
			if err != nil {
				return err
			}

			views := make([]withdrawalView, 0, len(list))
			for _, w := range list {
				views = append(views, withdrawalView{
					ID:     w.ID,
					Amount: w.Amount.StringFixed(2),
					Status: w.StatusLabel(),
					Date:   w.Date.Format(dateLayout),
				})
			}

			if opts.Format == FormatJSON {
				return printJSON(cmd, views)
			}

			tw := newTable(cmd.OutOrStdout(), "ID", "DATE", "AMOUNT", "STATUS")
			for _, v := range views {
				row(tw, v.ID, v.Date, v.Amount, v.Status)
			}
			return tw.Flush()
		},
	}
}
