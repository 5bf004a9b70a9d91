package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/spendcat/internal/ledger"
)

func newSummaryCommand(opts *rootOptions) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print per-category totals for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.open(cmd)
			if err != nil {
				return err
			}
			expenses, err := p.readMonth(month)
			if err != nil {
				return err
			}
			if len(expenses) == 0 {
				return noExpenses(month)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tCOUNT\tTOTAL")
			for _, ct := range ledger.Summarize(expenses) {
				fmt.Fprintf(tw, "%s\t%d\t%s %s\n", ct.Category, ct.Count, ct.Total.StringFixed(2), p.cfg.Project.Currency)
			}
			fmt.Fprintf(tw, "Total\t%d\t%s %s\n", len(expenses), ledger.Total(expenses).StringFixed(2), p.cfg.Project.Currency)
			return tw.Flush()
		},
	}
	markMonthRequired(cmd, &month)

	return cmd
}
