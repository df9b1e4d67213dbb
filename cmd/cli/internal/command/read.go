package command

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/paycycle/internal/export"
)

const reportDateLayout = "2006-01-02"

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [userId]",
		Short: "List a user's transactions by date, or every user when no id is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				_, err := fmt.Fprint(out, export.NewService(c.app.Store).Summary(args[0]))
				return err
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "USER\tTRANSACTIONS")

			for _, r := range c.app.Store.Data() {
				fmt.Fprintf(w, "%s\t%d\n", r.UserID, len(r.Transactions))
			}

			return w.Flush()
		},
	}
}

func (c *cli) sumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sum <userId>",
		Short: "Print the sum of a user's transaction amounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), c.app.Store.GetSumByUserID(args[0]).String())
			return err
		},
	}
}

func (c *cli) reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <userId>",
		Short: "Print a user's pay-period report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "WEEK START\tWEEK END\tQUANTITY\tAMOUNT\tTOTAL")

			for _, wk := range c.app.Store.GetReportByUserID(args[0]) {
				fmt.Fprintf(w, "%s %s\t%s %s\t%d\t%s\t%s\n",
					wk.Start.Format(reportDateLayout), wk.WeekdayStart,
					wk.End.Format(reportDateLayout), wk.WeekdayEnd,
					len(wk.Transactions), wk.Amount, wk.TotalAmount)
			}

			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&c.includeOpen, "open", false, "include the latest, still open week")

	return cmd
}
